package core

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfiguration(t *testing.T) {
	config := DefaultConfiguration()
	assert.Equal(t, "~/.scarab", config.Scarab.Home)
	assert.Equal(t, runtime.NumCPU(), config.Scarab.NumThreads)
	assert.Equal(t, 100, config.Index.BatchSize)
	assert.EqualValues(t, 10000000, config.Index.MaxFileSize)
	assert.Equal(t, 10, config.Search.DefaultLimit)
	assert.Equal(t, 150, config.Search.SnippetLength)
	assert.Equal(t, "127.0.0.1", config.Server.Host)
	assert.Equal(t, 7730, config.Server.Port)
	assert.True(t, config.Metrics.Enabled)
}

func TestReadConfigFile(t *testing.T) {
	filename := writeConfig(t, `
[scarab]
numthreads = 4

[index]
batchsize = 50
maxfilesize = 1M

[search]
defaultlimit = 5
snippetlength = 80

[server]
port = 8080
readtimeout = 15s

[metrics]
enabled = false

[customlabels]
team = echo search
`)
	config, err := ReadConfigFiles([]string{filename})
	require.NoError(t, err)
	assert.Equal(t, 4, config.Scarab.NumThreads)
	assert.Equal(t, 50, config.Index.BatchSize)
	assert.EqualValues(t, 1000000, config.Index.MaxFileSize)
	assert.Equal(t, 5, config.Search.DefaultLimit)
	assert.Equal(t, 80, config.Search.SnippetLength)
	assert.Equal(t, 8080, config.Server.Port)
	assert.EqualValues(t, 15*time.Second, config.Server.ReadTimeout)
	assert.False(t, config.Metrics.Enabled)
	assert.Equal(t, map[string]string{"team": "echo search"}, config.CustomLabels)
}

func TestReadConfigFilesOverride(t *testing.T) {
	first := writeConfig(t, "[index]\nbatchsize = 50\n")
	second := writeConfig(t, "[index]\nbatchsize = 200\n")
	config, err := ReadConfigFiles([]string{first, second})
	require.NoError(t, err)
	assert.Equal(t, 200, config.Index.BatchSize)
}

func TestMissingConfigFileIsNotAnError(t *testing.T) {
	config, err := ReadConfigFiles([]string{"/does/not/exist/.scarabconfig"})
	require.NoError(t, err)
	assert.Equal(t, 100, config.Index.BatchSize)
}

func TestInvalidBatchSize(t *testing.T) {
	filename := writeConfig(t, "[index]\nbatchsize = -1\n")
	_, err := ReadConfigFiles([]string{filename})
	assert.Error(t, err)
}

func TestVersionAssertion(t *testing.T) {
	filename := writeConfig(t, "[scarab]\nversion = "+RawVersion+"\n")
	_, err := ReadConfigFiles([]string{filename})
	assert.NoError(t, err)

	filename = writeConfig(t, "[scarab]\nversion = 99.99.99\n")
	_, err = ReadConfigFiles([]string{filename})
	assert.Error(t, err)
}

func TestHomeDir(t *testing.T) {
	config := DefaultConfiguration()
	t.Setenv("SCARAB_HOME", "")
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), ".scarab"), config.HomeDir())
	t.Setenv("SCARAB_HOME", "/tmp/scarab-home")
	assert.Equal(t, "/tmp/scarab-home", config.HomeDir())
	assert.Equal(t, "/tmp/scarab-home/indexes/kernel", config.IndexDir("kernel"))
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), ".scarabconfig")
	require.NoError(t, os.WriteFile(filename, []byte(content), 0644))
	return filename
}
