package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub/deeper"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "top.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub/deeper/nested.txt"), []byte("y"), 0644))

	files := map[string]bool{}
	err := Walk(dir, func(name string, isDir bool) error {
		rel, _ := filepath.Rel(dir, name)
		files[rel] = isDir
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{
		".":                     true,
		"sub":                   true,
		"sub/deeper":            true,
		"top.txt":               false,
		"sub/deeper/nested.txt": false,
	}, files)
}

func TestWalkSkipDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git/objects"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".git/objects/abc"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kept.txt"), []byte("y"), 0644))

	var seen []string
	err := Walk(dir, func(name string, isDir bool) error {
		if isDir && filepath.Base(name) == ".git" {
			return filepath.SkipDir
		}
		rel, _ := filepath.Rel(dir, name)
		seen = append(seen, rel)
		return nil
	})
	require.NoError(t, err)
	assert.Contains(t, seen, "kept.txt")
	assert.NotContains(t, seen, ".git/objects/abc")
}

func TestWalkSingleFile(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "only.txt")
	require.NoError(t, os.WriteFile(filename, []byte("x"), 0644))
	var count int
	require.NoError(t, Walk(filename, func(name string, isDir bool) error {
		assert.Equal(t, filename, name)
		assert.False(t, isDir)
		count++
		return nil
	}))
	assert.Equal(t, 1, count)
}
