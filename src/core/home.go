package core

import (
	"os"
	"path"

	"github.com/scarab-search/scarab/src/fs"
)

// HomeDir returns the directory scarab keeps its indexes in.
// The SCARAB_HOME environment variable takes precedence over the configured value.
func (config *Configuration) HomeDir() string {
	if home := os.Getenv("SCARAB_HOME"); home != "" {
		return fs.ExpandHomePath(home)
	}
	return fs.ExpandHomePath(config.Scarab.Home)
}

// IndexDir returns the directory a named index is stored in.
func (config *Configuration) IndexDir(name string) string {
	return path.Join(config.HomeDir(), "indexes", name)
}
