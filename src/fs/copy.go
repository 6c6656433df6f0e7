package fs

import (
	"os"
	"path/filepath"
)

// RecursiveCopy copies a single file or a whole directory tree.
// 'mode' is the mode given to copied files; directories get DirPermissions.
// Symlinks are recreated, not followed.
func RecursiveCopy(from string, to string, mode os.FileMode) error {
	info, err := os.Lstat(from)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return WalkMode(from, func(name string, fileMode Mode) error {
			dest := filepath.Join(to, name[len(from):])
			if fileMode.IsDir() {
				return os.MkdirAll(dest, DirPermissions)
			}
			if fileMode.IsSymlink() {
				link, err := os.Readlink(name)
				if err != nil {
					return err
				}
				return os.Symlink(link, dest)
			}
			return CopyFile(name, dest, mode)
		})
	}
	return CopyFile(from, to, mode)
}
