package index

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/exp/slices"

	"github.com/scarab-search/scarab/src/cli"
	"github.com/scarab-search/scarab/src/fs"
)

// MetaFileName is the name of the metadata file within an index directory.
const MetaFileName = "meta.json"

// indexDirName is the subdirectory the search index itself lives in.
const indexDirName = "index"

// Info describes one index in the catalog, as recorded in its metadata file.
type Info struct {
	Name       string `json:"index_name"`
	IndexPath  string `json:"index_path"`
	TargetPath string `json:"target_path"`
}

// Stats carries size information about an index.
type Stats struct {
	DocCount  uint64 `json:"doc_count"`
	SizeBytes uint64 `json:"size_bytes"`
}

// A NotFoundError is returned when a named index doesn't exist in the catalog.
type NotFoundError struct {
	Name       string
	Suggestion string
}

func (err *NotFoundError) Error() string {
	msg := fmt.Sprintf("Index '%s' not found", err.Name)
	if err.Suggestion != "" {
		msg += ". " + err.Suggestion
	}
	return msg
}

// A Catalog manages the set of indexes under a scarab home directory.
// It is safe for concurrent use; open indexes are cached on it.
type Catalog struct {
	dir   string
	mutex sync.Mutex
	open  map[string]*Entry
}

// An Entry is an open index from the catalog.
type Entry struct {
	Info
	index bleve.Index
}

// SnapshotFile returns the path of the entry's file-state snapshot.
func (e *Entry) SnapshotFile() string {
	return path.Join(e.IndexPath, SnapshotFileName)
}

// NewCatalog returns a catalog rooted at the given scarab home directory.
func NewCatalog(home string) *Catalog {
	return &Catalog{
		dir:  path.Join(home, "indexes"),
		open: map[string]*Entry{},
	}
}

// Create adds a new, empty index tracking the given target directory.
func (c *Catalog) Create(name, target string) (*Entry, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return nil, err
	}
	if !fs.IsDirectory(target) {
		return nil, fmt.Errorf("Target path %s is not a directory", target)
	}
	dir := path.Join(c.dir, name)
	if fs.PathExists(dir) {
		return nil, fmt.Errorf("Index '%s' already exists", name)
	}
	if err := fs.EnsureDir(dir); err != nil {
		return nil, err
	}
	info := Info{Name: name, IndexPath: dir, TargetPath: target}
	if err := writeMeta(dir, info); err != nil {
		return nil, err
	}
	idx, err := bleve.New(path.Join(dir, indexDirName), buildMapping())
	if err != nil {
		return nil, fmt.Errorf("Failed to create index '%s': %w", name, err)
	}
	entry := &Entry{Info: info, index: idx}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.open[name] = entry
	return entry, nil
}

// Get returns the named index, opening it if it isn't already.
func (c *Catalog) Get(name string) (*Entry, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if entry, present := c.open[name]; present {
		return entry, nil
	}
	dir := path.Join(c.dir, name)
	if !fs.PathExists(dir) {
		return nil, c.notFound(name)
	}
	info, err := readMeta(dir)
	if err != nil {
		return nil, fmt.Errorf("Failed to read metadata for index '%s': %w", name, err)
	}
	idx, err := bleve.Open(path.Join(dir, indexDirName))
	if err != nil {
		return nil, fmt.Errorf("Failed to open index '%s': %w", name, err)
	}
	entry := &Entry{Info: info, index: idx}
	c.open[name] = entry
	return entry, nil
}

// List returns metadata for all indexes in the catalog, sorted by name.
// Directories with unreadable metadata are skipped with a warning.
func (c *Catalog) List() ([]Info, error) {
	entries, err := os.ReadDir(c.dir)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	infos := []Info{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := readMeta(path.Join(c.dir, entry.Name()))
		if err != nil {
			log.Warning("Skipping index directory %s: %s", entry.Name(), err)
			continue
		}
		infos = append(infos, info)
	}
	slices.SortFunc(infos, func(a, b Info) bool { return a.Name < b.Name })
	return infos, nil
}

// Remove deletes the named index and everything stored for it.
func (c *Catalog) Remove(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	dir := path.Join(c.dir, name)
	if !fs.PathExists(dir) {
		return c.notFound(name)
	}
	if entry, present := c.open[name]; present {
		if err := entry.index.Close(); err != nil {
			log.Warning("Error closing index '%s': %s", name, err)
		}
		delete(c.open, name)
	}
	return os.RemoveAll(dir)
}

// Reset wipes the named index's documents and snapshot, leaving it empty and
// ready to be filled again.
func (c *Catalog) Reset(name string) (*Entry, error) {
	entry, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	if err := entry.index.Close(); err != nil {
		return nil, err
	}
	delete(c.open, name)
	if err := os.RemoveAll(path.Join(entry.IndexPath, indexDirName)); err != nil {
		return nil, err
	}
	if err := os.Remove(entry.SnapshotFile()); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	idx, err := bleve.New(path.Join(entry.IndexPath, indexDirName), buildMapping())
	if err != nil {
		return nil, err
	}
	fresh := &Entry{Info: entry.Info, index: idx}
	c.open[name] = fresh
	return fresh, nil
}

// Stats returns the document count and on-disk size of an entry.
func (c *Catalog) Stats(entry *Entry) (Stats, error) {
	count, err := entry.index.DocCount()
	if err != nil {
		return Stats{}, err
	}
	var size uint64
	err = filepath.Walk(entry.IndexPath, func(name string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			size += uint64(info.Size())
		}
		return nil
	})
	return Stats{DocCount: count, SizeBytes: size}, err
}

// Close closes all open indexes.
func (c *Catalog) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	var errs *multierror.Error
	for name, entry := range c.open {
		errs = multierror.Append(errs, entry.index.Close())
		delete(c.open, name)
	}
	return errs.ErrorOrNil()
}

// notFound builds the error for a missing index, suggesting close names.
// Callers may hold the mutex; List doesn't take it.
func (c *Catalog) notFound(name string) error {
	names := []string{}
	if infos, err := c.List(); err == nil {
		for _, info := range infos {
			names = append(names, info.Name)
		}
	}
	return &NotFoundError{Name: name, Suggestion: cli.Suggest(name, names, 3)}
}

// validateName rejects names that can't be used as a single path component.
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("Index name must not be empty")
	} else if strings.ContainsAny(name, "/\\") || name == "." || name == ".." {
		return fmt.Errorf("Invalid index name: %s", name)
	}
	return nil
}

func writeMeta(dir string, info Info) error {
	b, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return err
	}
	return fs.WriteFile(bytes.NewReader(append(b, '\n')), path.Join(dir, MetaFileName), 0644)
}

func readMeta(dir string) (Info, error) {
	info := Info{}
	b, err := os.ReadFile(path.Join(dir, MetaFileName))
	if err != nil {
		return info, err
	}
	err = json.Unmarshal(b, &info)
	return info, err
}
