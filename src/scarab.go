package main

import (
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs"
	"gopkg.in/op/go-logging.v1"

	"github.com/scarab-search/scarab/src/cli"
	"github.com/scarab-search/scarab/src/core"
	"github.com/scarab-search/scarab/src/index"
	"github.com/scarab-search/scarab/src/metrics"
	"github.com/scarab-search/scarab/src/output"
	"github.com/scarab-search/scarab/src/server"
	"github.com/scarab-search/scarab/src/watch"
)

var log = logging.MustGetLogger("scarab")

var config *core.Configuration
var catalog *index.Catalog

var opts = struct {
	Usage         string        `usage:"Scarab indexes source repositories and makes them searchable, from the command line or over HTTP. Indexes live under ~/.scarab (or $SCARAB_HOME) and are updated incrementally; only files that changed since the last update are re-indexed."`
	Verbosity     cli.Verbosity `short:"v" long:"verbosity" description:"Verbosity of output (higher number = more output)" default:"notice"`
	LogFile       string        `long:"log_file" description:"File to echo full logging output to"`
	LogFileLevel  cli.Verbosity `long:"log_file_level" description:"Log level for file output" default:"debug"`
	Home          string        `long:"home" description:"Directory to keep indexes in (overrides the configured location)"`
	ConfigFile    string        `long:"config" description:"Extra config file to read after the default locations"`
	Version       bool          `long:"version" description:"Print the version of scarab and exit"`
	AssertVersion cli.Version   `long:"assert_version" hidden:"true" description:"Assert the tool matches this version."`

	New struct {
		Args struct {
			Name string `positional-arg-name:"name" required:"true" description:"Name for the new index"`
			Path string `positional-arg-name:"path" required:"true" description:"Directory tree the index will cover"`
		} `positional-args:"true" required:"true"`
	} `command:"new" description:"Creates a new, empty index for a directory tree"`

	List struct {
		Format string `long:"format" choice:"text" choice:"json" default:"text" description:"Format to print the listing in"`
	} `command:"list" description:"Lists the indexes scarab knows about"`

	Remove struct {
		Force bool `short:"f" long:"force" description:"Remove without prompting for confirmation"`
		Args  struct {
			Name string `positional-arg-name:"name" required:"true" description:"Index to remove"`
		} `positional-args:"true" required:"true"`
	} `command:"remove" description:"Removes an index and everything stored for it"`

	Update struct {
		Incremental bool `long:"incremental" description:"Index only files that changed since the last update"`
		Reindex     bool `long:"reindex" description:"Discard the index contents and rebuild from scratch"`
		Watch       bool `long:"watch" description:"Keep running after the update, re-indexing as files change"`
		Args        struct {
			Name string `positional-arg-name:"name" required:"true" description:"Index to update"`
		} `positional-args:"true" required:"true"`
	} `command:"update" description:"Brings an index up to date with the files it covers"`

	Search struct {
		Limit  int    `short:"n" long:"limit" description:"Maximum number of results to return (defaults to the configured limit)"`
		Format string `long:"format" choice:"text" choice:"json" default:"text" description:"Format to print results in"`
		Args   struct {
			Name  string `positional-arg-name:"name" required:"true" description:"Index to search"`
			Query string `positional-arg-name:"query" required:"true" description:"Terms to search for; quote a phrase to match it exactly"`
		} `positional-args:"true" required:"true"`
	} `command:"search" description:"Searches an index"`

	Serve struct {
		Host string `long:"host" description:"Host interface to serve on (defaults to the configured one)"`
		Port int    `long:"port" description:"Port to serve on (defaults to the configured one)"`
	} `command:"serve" description:"Serves the search API and web UI over HTTP"`
}{}

// Definitions of what we do for each command. Functions are called after the
// command line and config files are parsed and return true for success.
var commandFunctions = map[string]func() bool{
	"new": func() bool {
		entry, err := catalog.Create(opts.New.Args.Name, opts.New.Args.Path)
		if err != nil {
			log.Error("%s", err)
			return false
		}
		fmt.Printf("Index '%s' created successfully at '%s'\n", entry.Name, entry.IndexPath)
		return true
	},
	"list": func() bool {
		infos, err := catalog.List()
		if err != nil {
			log.Error("Error listing indexes: %s", err)
			return false
		}
		if opts.List.Format == "json" {
			summaries := make([]output.IndexSummary, len(infos))
			for i, info := range infos {
				entry, err := catalog.Get(info.Name)
				if err != nil {
					log.Error("%s", err)
					return false
				}
				stats, err := catalog.Stats(entry)
				if err != nil {
					log.Error("%s", err)
					return false
				}
				summaries[i] = output.IndexSummary{
					Name:      info.Name,
					Path:      info.IndexPath,
					DocCount:  stats.DocCount,
					SizeBytes: stats.SizeBytes,
				}
			}
			return printFormatted(output.ForFormat("json").IndexList(summaries))
		}
		if len(infos) == 0 {
			fmt.Println("No indexes found")
			return true
		}
		for _, info := range infos {
			fmt.Printf("Index Name: %s, Target Path: %s\n", info.Name, info.TargetPath)
		}
		return true
	},
	"remove": func() bool {
		name := opts.Remove.Args.Name
		if !opts.Remove.Force && cli.StdErrIsATerminal {
			if !cli.PromptYN(fmt.Sprintf("Remove index '%s' and everything stored for it?", name), false) {
				return false
			}
		}
		if err := catalog.Remove(name); err != nil {
			log.Error("%s", err)
			return false
		}
		fmt.Printf("Index '%s' removed successfully\n", name)
		return true
	},
	"update": func() bool {
		name := opts.Update.Args.Name
		if opts.Update.Incremental {
			entry, err := catalog.Get(name)
			if err != nil {
				log.Error("%s", err)
				return false
			}
			if _, err := index.IncrementalUpdate(entry, config); err != nil {
				log.Error("Failed to index data for '%s': %s", name, err)
				return false
			}
			fmt.Printf("Incremental update for '%s' successful\n", name)
		} else if opts.Update.Reindex {
			if _, err := index.Reindex(catalog, name, config); err != nil {
				log.Error("Failed to index data for '%s': %s", name, err)
				return false
			}
			fmt.Printf("Reindex for '%s' successful\n", name)
		} else {
			fmt.Println("Please specify either --incremental or --reindex for update")
			return false
		}
		if opts.Update.Watch {
			entry, err := catalog.Get(name)
			if err != nil {
				log.Error("%s", err)
				return false
			}
			log.Notice("Watching %s for changes...", entry.TargetPath)
			watch.Watch(entry, config) // Doesn't return; the watch runs until we're signalled.
		}
		return true
	},
	"search": func() bool {
		entry, err := catalog.Get(opts.Search.Args.Name)
		if err != nil {
			log.Error("%s", err)
			return false
		}
		limit := opts.Search.Limit
		if limit <= 0 {
			limit = config.Search.DefaultLimit
		}
		results, err := index.Search(entry, opts.Search.Args.Query, limit, config.Search.SnippetLength)
		if err != nil {
			log.Error("Search failed: %s", err)
			return false
		}
		return printFormatted(output.ForFormat(opts.Search.Format).SearchResults(results))
	},
	"serve": func() bool {
		if opts.Serve.Host != "" {
			config.Server.Host = opts.Serve.Host
		}
		if opts.Serve.Port != 0 {
			config.Server.Port = opts.Serve.Port
		}
		s := server.New(config, catalog)
		if err := s.Listen(); err != nil {
			log.Error("%s", err)
			return false
		}
		if err := s.Serve(); err != nil {
			log.Error("%s", err)
			return false
		}
		return true
	},
}

func printFormatted(out string, err error) bool {
	if err != nil {
		log.Error("%s", err)
		return false
	}
	fmt.Println(out)
	return true
}

// Sets various things up and reads the initial configuration.
func readConfig() *core.Configuration {
	filenames := core.DefaultConfigFiles()
	if opts.ConfigFile != "" {
		filenames = append(filenames, opts.ConfigFile)
	}
	config, err := core.ReadConfigFiles(filenames)
	if err != nil {
		log.Fatalf("Error reading config file: %s", err)
	}
	if opts.Home != "" {
		config.Scarab.Home = opts.Home
	}
	return config
}

func main() {
	parser, extraArgs, err := cli.ParseFlags("Scarab", &opts, os.Args)
	if opts.Version {
		fmt.Printf("Scarab version %s\n", core.RawVersion)
		os.Exit(0) // Ignore any parse errors if --version was passed.
	}
	command := cli.ActiveCommand(parser.Command)
	if err != nil || len(extraArgs) > 0 {
		command = cli.ParseFlagsFromArgsOrDie("Scarab", &opts, os.Args)
	}
	cli.InitLogging(opts.Verbosity)
	if opts.LogFile != "" {
		cli.InitFileLogging(opts.LogFile, opts.LogFileLevel)
	}
	if opts.AssertVersion.IsSet && opts.AssertVersion.Compare(core.ScarabVersion) != 0 {
		log.Fatalf("Requested scarab version %s, but this is version %s", opts.AssertVersion, core.RawVersion)
	}
	config = readConfig()
	metrics.InitFromConfig(config)
	catalog = index.NewCatalog(config.HomeDir())
	cli.AtExit(func() {
		if err := catalog.Close(); err != nil {
			log.Warning("Error closing indexes: %s", err)
		}
	})
	success := commandFunctions[command]()
	cli.RunAtExitHandlers()
	if !success {
		os.Exit(1)
	}
}
