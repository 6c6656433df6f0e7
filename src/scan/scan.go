// Package scan finds the indexable files under a target directory.
package scan

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
	"gopkg.in/op/go-logging.v1"

	"github.com/scarab-search/scarab/src/fs"
)

var log = logging.MustGetLogger("scan")

// A FileMeta records the identity and freshness of one file under a target directory.
type FileMeta struct {
	Path    string // slash-separated, relative to the target root
	Size    uint64
	ModTime uint64 // seconds since the Unix epoch
}

// A Scanner walks a target directory and reports the text files eligible for indexing.
// Hidden entries and anything matching a root .gitignore are skipped, as are binary
// files and files over the size limit.
type Scanner struct {
	root        string
	maxFileSize uint64
	ignore      *gitignore.GitIgnore
}

// New returns a Scanner rooted at the given directory.
// A maxFileSize of 0 means no size limit.
func New(root string, maxFileSize uint64) (*Scanner, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	s := &Scanner{root: abs, maxFileSize: maxFileSize}
	if ign, err := gitignore.CompileIgnoreFile(filepath.Join(abs, ".gitignore")); err == nil {
		s.ignore = ign
	} else if !os.IsNotExist(err) {
		log.Warning("Failed to read .gitignore in %s: %s", root, err)
	}
	return s, nil
}

// Root returns the scanner's absolute root path.
func (s *Scanner) Root() string {
	return s.root
}

// Scan walks the tree and returns metadata for every eligible file, in path order.
func (s *Scanner) Scan() ([]FileMeta, error) {
	var files []FileMeta
	err := fs.WalkMode(s.root, func(name string, mode fs.Mode) error {
		rel, err := filepath.Rel(s.root, name)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if mode.IsDir() {
			if rel == "." {
				return nil
			}
			if strings.HasPrefix(filepath.Base(name), ".") || s.ignored(rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if mode.IsSymlink() || !mode.IsRegular() {
			return nil
		}
		if strings.HasPrefix(filepath.Base(name), ".") || s.ignored(rel) || !fs.IsTextFile(rel) {
			return nil
		}
		info, err := os.Lstat(name)
		if err != nil {
			// The file can legitimately vanish between the walk seeing it and here.
			log.Warning("Failed to stat %s: %s", name, err)
			return nil
		}
		size := uint64(info.Size())
		if s.maxFileSize > 0 && size > s.maxFileSize {
			log.Debug("Skipping %s: %d bytes exceeds the size limit", rel, size)
			return nil
		}
		files = append(files, FileMeta{Path: rel, Size: size, ModTime: uint64(info.ModTime().Unix())})
		return nil
	})
	return files, err
}

// Eligible returns true if the given path, relative to the scanner's root, would be
// picked up by a scan. It does not check the size limit.
func (s *Scanner) Eligible(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") {
			return false
		}
	}
	return !s.ignored(rel) && fs.IsTextFile(rel)
}

func (s *Scanner) ignored(rel string) bool {
	return s.ignore != nil && s.ignore.MatchesPath(rel)
}
