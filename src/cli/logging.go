// Contains various utility functions related to logging.

package cli

import (
	"os"
	"path"

	cli "github.com/peterebden/go-cli-init/v5/logging"
	"golang.org/x/term"
	"gopkg.in/op/go-logging.v1"

	logger "github.com/scarab-search/scarab/src/cli/logging"
)

var log = logger.Log

// StdErrIsATerminal is true if the process' stderr is an interactive TTY.
var StdErrIsATerminal = IsATerminal(os.Stderr)

// StdOutIsATerminal is true if the process' stdout is an interactive TTY.
var StdOutIsATerminal = IsATerminal(os.Stdout)

// A Verbosity is used as a flag to define logging verbosity.
type Verbosity = cli.Verbosity

var logLevel = logging.WARNING
var fileLogLevel = logging.WARNING
var fileBackend logging.Backend

// InitLogging initialises logging backends.
func InitLogging(verbosity Verbosity) {
	logLevel = logging.Level(verbosity)
	setLogBackend(logging.NewLogBackend(os.Stderr, "", 0))
}

// InitFileLogging initialises an optional logging backend to a file.
func InitFileLogging(logFile string, logFileLevel Verbosity) {
	fileLogLevel = logging.Level(logFileLevel)
	if err := os.MkdirAll(path.Dir(logFile), os.ModeDir|0775); err != nil {
		log.Fatalf("Error creating log file directory: %s", err)
	}
	file, err := os.OpenFile(logFile, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		log.Fatalf("Error opening log file: %s", err)
	}
	fileBackend = logging.NewBackendFormatter(logging.NewLogBackend(file, "", 0), logFormatter(false))
	setLogBackend(logging.NewLogBackend(os.Stderr, "", 0))
	AtExit(func() {
		fileBackend = nil
		setLogBackend(logging.NewLogBackend(os.Stderr, "", 0))
		file.Close()
	})
}

func logFormatter(coloured bool) logging.Formatter {
	formatStr := "%{time:15:04:05.000} %{level:7s}: %{message}"
	if coloured {
		formatStr = "%{color}" + formatStr + "%{color:reset}"
	}
	return logging.MustStringFormatter(formatStr)
}

func setLogBackend(backend logging.Backend) {
	backendLeveled := logging.AddModuleLevel(logging.NewBackendFormatter(backend, logFormatter(StdErrIsATerminal)))
	backendLeveled.SetLevel(logLevel, "")
	if fileBackend == nil {
		logging.SetBackend(backendLeveled)
	} else {
		fileBackendLeveled := logging.AddModuleLevel(fileBackend)
		fileBackendLeveled.SetLevel(fileLogLevel, "")
		logging.SetBackend(logging.MultiLogger(backendLeveled, fileBackendLeveled))
	}
}

// IsATerminal returns true if the given file is an interactive TTY.
func IsATerminal(file *os.File) bool {
	return term.IsTerminal(int(file.Fd()))
}
