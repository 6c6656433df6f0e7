// Utilities for reading the scarab config files.

package core

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/please-build/gcfg"
	"gopkg.in/op/go-logging.v1"

	"github.com/scarab-search/scarab/src/cli"
	"github.com/scarab-search/scarab/src/fs"
)

var log = logging.MustGetLogger("core")

// ConfigFileName is the name of the config file we look for in the working directory.
const ConfigFileName = ".scarabconfig"

// MachineConfigFileName is the machine-level config file - can use this to override
// things for a particular machine (eg. a shared build box with its own index home).
const MachineConfigFileName = "/etc/scarabconfig"

// UserConfigFileName is the user-level config file.
var UserConfigFileName = fs.ExpandHomePath("~/.scarab/config")

// A Configuration contains all the settings that can be configured about scarab.
// The zero value is not usable; use DefaultConfiguration.
type Configuration struct {
	Scarab struct {
		Home       string
		NumThreads int
		Version    cli.Version
	}
	Index struct {
		BatchSize   int
		MaxFileSize cli.ByteSize
	}
	Search struct {
		DefaultLimit  int
		SnippetLength int
	}
	Server struct {
		Host            string
		Port            int
		ReadTimeout     cli.Duration
		WriteTimeout    cli.Duration
		ShutdownTimeout cli.Duration
	}
	Metrics struct {
		Enabled bool
	}
	CustomLabels map[string]string
}

// DefaultConfiguration returns a configuration with the default values filled in.
func DefaultConfiguration() *Configuration {
	config := Configuration{}
	config.Scarab.Home = "~/.scarab"
	config.Scarab.NumThreads = runtime.NumCPU()
	config.Index.BatchSize = 100
	config.Index.MaxFileSize = 10000000 // 10M
	config.Search.DefaultLimit = 10
	config.Search.SnippetLength = 150
	config.Server.Host = "127.0.0.1"
	config.Server.Port = 7730
	config.Server.ReadTimeout = cli.Duration(10 * time.Second)
	config.Server.WriteTimeout = cli.Duration(30 * time.Second)
	config.Server.ShutdownTimeout = cli.Duration(5 * time.Second)
	config.Metrics.Enabled = true
	return &config
}

// ReadConfigFiles reads config files from the given locations, in order.
// Values are filled in by defaults initially and then overridden by each file in turn.
// Files that don't exist are skipped.
func ReadConfigFiles(filenames []string) (*Configuration, error) {
	config := DefaultConfiguration()
	for _, filename := range filenames {
		if err := readConfigFile(config, filename); err != nil {
			return config, err
		}
	}
	if config.Scarab.NumThreads <= 0 {
		config.Scarab.NumThreads = runtime.NumCPU()
	}
	if config.Index.BatchSize < 1 {
		return config, fmt.Errorf("Invalid index batch size %d, must be at least 1", config.Index.BatchSize)
	}
	if config.Search.DefaultLimit < 1 {
		return config, fmt.Errorf("Invalid default search limit %d, must be at least 1", config.Search.DefaultLimit)
	}
	if config.Scarab.Version.IsSet && config.Scarab.Version.Compare(ScarabVersion) != 0 {
		return config, fmt.Errorf("Config requires scarab version %s, but this is version %s", config.Scarab.Version, RawVersion)
	}
	return config, nil
}

// DefaultConfigFiles returns the locations we attempt to read config from, in order.
func DefaultConfigFiles() []string {
	return []string{
		MachineConfigFileName,
		UserConfigFileName,
		ConfigFileName,
	}
}

func readConfigFile(config *Configuration, filename string) error {
	if err := gcfg.ReadFileInto(config, filename); err != nil && os.IsNotExist(err) {
		return nil // It's not an error to not have the file at all.
	} else if gcfg.FatalOnly(err) != nil {
		return err
	} else if err != nil {
		log.Warning("Error in config file %s: %s", filename, err)
		return nil
	}
	log.Debug("Read config from %s", filename)
	return nil
}
