package fs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "a/b/c/file.txt")
	assert.NoError(t, EnsureDir(filename))
	assert.True(t, IsDirectory(filepath.Join(dir, "a/b/c")))
}

func TestPathExists(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, PathExists(dir))
	assert.False(t, PathExists(filepath.Join(dir, "nope")))
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(filename, []byte("hello"), 0644))
	assert.True(t, FileExists(filename))
	assert.False(t, FileExists(dir), "directories are not files")
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "sub/out.txt")
	assert.NoError(t, WriteFile(strings.NewReader("contents"), filename, 0644))
	b, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "contents", string(b))
}

func TestWriteFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(filename, []byte("old"), 0644))
	assert.NoError(t, WriteFile(strings.NewReader("new"), filename, 0644))
	b, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, "new", string(b))
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	from := filepath.Join(dir, "from.txt")
	to := filepath.Join(dir, "to.txt")
	require.NoError(t, os.WriteFile(from, []byte("data"), 0644))
	assert.NoError(t, CopyFile(from, to, 0644))
	b, err := os.ReadFile(to)
	require.NoError(t, err)
	assert.Equal(t, "data", string(b))
}
