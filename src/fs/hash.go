package fs

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// A PathHasher hashes file contents and remembers the results, so repeated
// queries about an unchanged path don't re-read it.
type PathHasher struct {
	memo  map[string]uint64
	mutex sync.Mutex
	root  string
}

// NewPathHasher returns a new PathHasher based on the given root directory.
func NewPathHasher(root string) *PathHasher {
	return &PathHasher{
		memo: map[string]uint64{},
		root: root,
	}
}

// Hash returns the content hash of the given path.
// It is memoised and so will only hash each path once, unless recalc is true
// which forces a recalculation.
func (hasher *PathHasher) Hash(path string, recalc bool) (uint64, error) {
	path = hasher.ensureRelative(path)
	if !recalc {
		hasher.mutex.Lock()
		cached, present := hasher.memo[path]
		hasher.mutex.Unlock()
		if present {
			return cached, nil
		}
	}
	h, err := hasher.fileHash(filepath.Join(hasher.root, path))
	if err != nil {
		return 0, err
	}
	hasher.mutex.Lock()
	hasher.memo[path] = h
	hasher.mutex.Unlock()
	return h, nil
}

// Changed re-hashes the given path and reports whether its content differs from
// the last remembered state. Paths not seen before, or no longer readable, count
// as changed.
func (hasher *PathHasher) Changed(path string) bool {
	path = hasher.ensureRelative(path)
	hasher.mutex.Lock()
	old, present := hasher.memo[path]
	hasher.mutex.Unlock()
	h, err := hasher.Hash(path, true)
	if err != nil {
		hasher.Forget(path)
		return true
	}
	return !present || h != old
}

// Forget drops the remembered hash for a path, eg. when it is deleted.
func (hasher *PathHasher) Forget(path string) {
	path = hasher.ensureRelative(path)
	hasher.mutex.Lock()
	delete(hasher.memo, path)
	hasher.mutex.Unlock()
}

func (hasher *PathHasher) fileHash(filename string) (uint64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	h := xxhash.New()
	if _, err := io.Copy(h, file); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

// ensureRelative ensures a path is relative to the hasher's root.
// This is important for getting best performance from memoising the path hashes.
func (hasher *PathHasher) ensureRelative(path string) string {
	if strings.HasPrefix(path, hasher.root) {
		return strings.TrimLeft(strings.TrimPrefix(path, hasher.root), "/")
	}
	return path
}
