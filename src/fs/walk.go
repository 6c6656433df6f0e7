package fs

import (
	"os"

	"github.com/karrick/godirwalk"
)

// A Mode describes the type of a directory entry seen during a walk.
// N.B. It only covers the bits that determine the mode type, not the permissions.
type Mode interface {
	IsDir() bool
	IsSymlink() bool
	IsRegular() bool
}

type mode os.FileMode

func (m mode) IsDir() bool {
	return os.FileMode(m).IsDir()
}

func (m mode) IsRegular() bool {
	return os.FileMode(m).IsRegular()
}

func (m mode) IsSymlink() bool {
	return os.FileMode(m)&os.ModeSymlink != 0
}

// Walk implements an equivalent to filepath.Walk.
// It's implemented over github.com/karrick/godirwalk but the provided interface doesn't
// expose that to make it a little easier to handle.
func Walk(rootPath string, callback func(name string, isDir bool) error) error {
	return WalkMode(rootPath, func(name string, mode Mode) error {
		return callback(name, mode.IsDir())
	})
}

// WalkMode is like Walk but the callback receives an additional type specifying the file mode type.
// Callbacks can return filepath.SkipDir to skip recursing into a directory.
func WalkMode(rootPath string, callback func(name string, mode Mode) error) error {
	// Compatibility with filepath.Walk which allows passing a file as the root argument.
	if info, err := os.Lstat(rootPath); err != nil {
		return err
	} else if !info.IsDir() {
		return callback(rootPath, mode(info.Mode()))
	}
	return godirwalk.Walk(rootPath, &godirwalk.Options{Callback: func(name string, info *godirwalk.Dirent) error {
		return callback(name, info)
	}})
}
