package index

import (
	"golang.org/x/exp/slices"

	"github.com/scarab-search/scarab/src/scan"
)

// Changes describes the difference between two file states.
type Changes struct {
	Added    []scan.FileMeta
	Modified []scan.FileMeta
	Removed  []scan.FileMeta
}

// Empty returns true if nothing changed.
func (c Changes) Empty() bool {
	return len(c.Added) == 0 && len(c.Modified) == 0 && len(c.Removed) == 0
}

// Diff compares a previously recorded file state against a fresh scan.
// Files are keyed by path; a file counts as modified when its size or
// modification time differs. Each returned slice is sorted by path.
func Diff(before, after []scan.FileMeta) Changes {
	previous := make(map[string]scan.FileMeta, len(before))
	for _, f := range before {
		previous[f.Path] = f
	}
	current := make(map[string]struct{}, len(after))
	c := Changes{}
	for _, f := range after {
		current[f.Path] = struct{}{}
		if prev, present := previous[f.Path]; !present {
			c.Added = append(c.Added, f)
		} else if prev.Size != f.Size || prev.ModTime != f.ModTime {
			c.Modified = append(c.Modified, f)
		}
	}
	for _, f := range before {
		if _, present := current[f.Path]; !present {
			c.Removed = append(c.Removed, f)
		}
	}
	byPath := func(a, b scan.FileMeta) bool { return a.Path < b.Path }
	slices.SortFunc(c.Added, byPath)
	slices.SortFunc(c.Modified, byPath)
	slices.SortFunc(c.Removed, byPath)
	return c
}
