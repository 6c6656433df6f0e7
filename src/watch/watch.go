// Package watch provides a filesystem watcher that keeps an index in sync
// with its target directory.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/op/go-logging.v1"

	"github.com/scarab-search/scarab/src/core"
	"github.com/scarab-search/scarab/src/fs"
	"github.com/scarab-search/scarab/src/index"
	"github.com/scarab-search/scarab/src/scan"
)

var log = logging.MustGetLogger("watch")

const debounceInterval = 50 * time.Millisecond

// Watch blocks, re-running incremental updates for the given index as files
// under its target change. It never returns successfully; it either watches
// forever or dies.
func Watch(entry *index.Entry, config *core.Configuration) {
	w, err := newWatcher(entry, config)
	if err != nil {
		log.Fatalf("%s", err)
	}
	defer w.close()
	w.run()
}

type watcher struct {
	fsw     *fsnotify.Watcher
	entry   *index.Entry
	config  *core.Configuration
	scanner *scan.Scanner
	hasher  *fs.PathHasher
}

func newWatcher(entry *index.Entry, config *core.Configuration) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("Error setting up watcher: %w", err)
	}
	scanner, err := scan.New(entry.TargetPath, uint64(config.Index.MaxFileSize))
	if err != nil {
		fsw.Close()
		return nil, err
	}
	w := &watcher{
		fsw:     fsw,
		entry:   entry,
		config:  config,
		scanner: scanner,
		hasher:  fs.NewPathHasher(scanner.Root()),
	}
	if err := watchTree(fsw, scanner, scanner.Root()); err != nil {
		fsw.Close()
		return nil, err
	}
	// Hash everything up front so later events can be checked for real
	// content changes rather than spurious notifications.
	if files, err := scanner.Scan(); err == nil {
		for _, f := range files {
			w.hasher.Hash(f.Path, false)
		}
	}
	log.Notice("Watching %s for changes", scanner.Root())
	return w, nil
}

func (w *watcher) run() {
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			log.Debug("Event: %s", event)
			names := w.observe(event)
			if len(names) == 0 {
				continue
			}
			// Quick debounce; poll and collect all events for the next brief period.
		outer:
			for {
				select {
				case e, ok := <-w.fsw.Events:
					if !ok {
						return
					}
					names = append(names, w.observe(e)...)
				case <-time.After(debounceInterval):
					break outer
				}
			}
			if !w.contentChanged(names) {
				log.Info("No content changes detected, skipping update")
				continue
			}
			if _, err := index.IncrementalUpdate(w.entry, w.config); err != nil {
				log.Error("Error updating index '%s': %s", w.entry.Name, err)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Error("Error watching files: %s", err)
		}
	}
}

// observe filters one event, returning the paths it makes interesting.
// Newly created directories start being watched as a side effect.
func (w *watcher) observe(event fsnotify.Event) []string {
	rel, err := filepath.Rel(w.scanner.Root(), event.Name)
	if err != nil {
		return nil
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || !w.scanner.Eligible(rel) {
		log.Debug("Skipping notification for %s", event.Name)
		return nil
	}
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Lstat(event.Name); err == nil && info.IsDir() {
			if err := watchTree(w.fsw, w.scanner, event.Name); err != nil {
				log.Warning("Error watching new directory %s: %s", event.Name, err)
			}
		}
	}
	return []string{event.Name}
}

// contentChanged reports whether any of the named paths has new content since
// we last hashed it. Directories and vanished files count as changed.
func (w *watcher) contentChanged(names []string) bool {
	changed := false
	for _, name := range names {
		if info, err := os.Lstat(name); err == nil && info.IsDir() {
			changed = true
			continue
		}
		rel, err := filepath.Rel(w.scanner.Root(), name)
		if err != nil {
			return true
		}
		// Keep hashing the rest so their memos stay current.
		if w.hasher.Changed(filepath.ToSlash(rel)) {
			changed = true
		}
	}
	return changed
}

func (w *watcher) close() {
	if err := w.fsw.Close(); err != nil {
		log.Warning("Error closing watcher: %s", err)
	}
}

// watchTree adds watches for dir and every eligible directory under it.
func watchTree(fsw *fsnotify.Watcher, scanner *scan.Scanner, dir string) error {
	return fs.WalkMode(dir, func(name string, mode fs.Mode) error {
		if !mode.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(scanner.Root(), name)
		if err != nil {
			return err
		}
		if rel = filepath.ToSlash(rel); rel != "." && !scanner.Eligible(rel) {
			return filepath.SkipDir
		}
		log.Info("Adding watch on %s", name)
		return fsw.Add(name)
	})
}
