package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/op/go-logging.v1"
)

func TestParseVerbosity(t *testing.T) {
	var v Verbosity
	assert.NoError(t, v.UnmarshalFlag("error"))
	assert.EqualValues(t, logging.ERROR, v)
	assert.NoError(t, v.UnmarshalFlag("1"))
	assert.EqualValues(t, logging.WARNING, v)
	assert.NoError(t, v.UnmarshalFlag("v"))
	assert.EqualValues(t, logging.NOTICE, v)
	assert.Error(t, v.UnmarshalFlag("blah"))
}

func TestFileLogging(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "logs", "scarab.log")
	InitFileLogging(logFile, Verbosity(logging.DEBUG))
	log.Warning("squirrel incoming")
	b, err := os.ReadFile(logFile)
	assert.NoError(t, err)
	assert.Contains(t, string(b), "squirrel incoming")
	assert.Contains(t, string(b), "WARNING")
}

func TestPipeIsNotATerminal(t *testing.T) {
	r, w, err := os.Pipe()
	assert.NoError(t, err)
	defer r.Close()
	defer w.Close()
	assert.False(t, IsATerminal(r))
}
