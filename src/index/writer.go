package index

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/scarab-search/scarab/src/core"
	"github.com/scarab-search/scarab/src/fs"
	"github.com/scarab-search/scarab/src/metrics"
	"github.com/scarab-search/scarab/src/scan"
)

// UpdateResult records what an update did to an index.
type UpdateResult struct {
	Indexed int
	Deleted int
}

// IncrementalUpdate scans the entry's target directory and applies whatever
// changed since the last snapshot, then records the new state.
func IncrementalUpdate(entry *Entry, config *core.Configuration) (UpdateResult, error) {
	start := time.Now()
	result := UpdateResult{}
	scanner, err := scan.New(entry.TargetPath, uint64(config.Index.MaxFileSize))
	if err != nil {
		return result, err
	}
	current, err := scanner.Scan()
	if err != nil {
		return result, err
	}
	previous, err := LoadSnapshot(entry.SnapshotFile())
	if err != nil {
		return result, fmt.Errorf("Snapshot for '%s' is unreadable (%s); run update --reindex to rebuild it", entry.Name, err)
	}
	changes := Diff(previous, current)
	if changes.Empty() {
		log.Info("No changes detected for '%s'", entry.Name)
		metrics.RecordUpdate(entry.Name, "incremental", 0, 0, time.Since(start))
		return result, nil
	}
	log.Info("Updating '%s': %d added, %d modified, %d removed", entry.Name,
		len(changes.Added), len(changes.Modified), len(changes.Removed))
	result, err = applyChanges(entry, changes, config)
	if err != nil {
		return result, err
	}
	if err := SaveSnapshot(entry.SnapshotFile(), current); err != nil {
		return result, err
	}
	log.Info("Indexed %d and deleted %d documents for '%s' in %s",
		result.Indexed, result.Deleted, entry.Name, time.Since(start))
	metrics.RecordUpdate(entry.Name, "incremental", result.Indexed, result.Deleted, time.Since(start))
	return result, nil
}

// Reindex rebuilds the named index from scratch, discarding whatever was in it.
func Reindex(catalog *Catalog, name string, config *core.Configuration) (UpdateResult, error) {
	start := time.Now()
	entry, err := catalog.Reset(name)
	if err != nil {
		return UpdateResult{}, err
	}
	scanner, err := scan.New(entry.TargetPath, uint64(config.Index.MaxFileSize))
	if err != nil {
		return UpdateResult{}, err
	}
	current, err := scanner.Scan()
	if err != nil {
		return UpdateResult{}, err
	}
	result, err := applyChanges(entry, Diff(nil, current), config)
	if err != nil {
		return result, err
	}
	if err := SaveSnapshot(entry.SnapshotFile(), current); err != nil {
		return result, err
	}
	log.Info("Reindexed '%s': %d documents in %s", entry.Name, result.Indexed, time.Since(start))
	metrics.RecordUpdate(entry.Name, "reindex", result.Indexed, result.Deleted, time.Since(start))
	return result, nil
}

// applyChanges deletes removed documents and (re)indexes added and modified
// files, committing in batches.
func applyChanges(entry *Entry, changes Changes, config *core.Configuration) (UpdateResult, error) {
	result := UpdateResult{}
	if len(changes.Removed) > 0 {
		batch := entry.index.NewBatch()
		for _, f := range changes.Removed {
			batch.Delete(f.Path)
		}
		if err := entry.index.Batch(batch); err != nil {
			return result, err
		}
		result.Deleted = len(changes.Removed)
	}
	files := make([]scan.FileMeta, 0, len(changes.Added)+len(changes.Modified))
	files = append(files, changes.Added...)
	files = append(files, changes.Modified...)
	batchSize := config.Index.BatchSize
	if batchSize < 1 {
		batchSize = 1
	}
	for i := 0; i < len(files); i += batchSize {
		end := i + batchSize
		if end > len(files) {
			end = len(files)
		}
		n, err := indexBatch(entry, files[i:end], config.Scarab.NumThreads)
		result.Indexed += n
		if err != nil {
			return result, err
		}
	}
	return result, nil
}

// indexBatch builds documents for one batch in parallel and commits them.
// Files that vanished between scan and read are skipped with a warning.
func indexBatch(entry *Entry, files []scan.FileMeta, parallelism int) (int, error) {
	if parallelism < 1 {
		parallelism = 1
	}
	docs := make([]map[string]interface{}, len(files))
	var g errgroup.Group
	g.SetLimit(parallelism)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			filename := filepath.Join(entry.TargetPath, filepath.FromSlash(f.Path))
			b, err := os.ReadFile(filename)
			if err != nil {
				log.Warning("Skipping %s: %s", f.Path, err)
				return nil
			}
			docs[i] = map[string]interface{}{
				fieldPath:      f.Path,
				fieldContent:   string(b),
				fieldExtension: fs.Extension(f.Path),
				fieldSize:      f.Size,
				fieldModTime:   f.ModTime,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	batch := entry.index.NewBatch()
	count := 0
	for i, doc := range docs {
		if doc == nil {
			continue
		}
		if err := batch.Index(files[i].Path, doc); err != nil {
			return 0, err
		}
		count++
	}
	if err := entry.index.Batch(batch); err != nil {
		return 0, err
	}
	return count, nil
}
