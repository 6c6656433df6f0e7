// Package output renders search results and index listings for the CLI.
package output

import (
	"fmt"

	"github.com/scarab-search/scarab/src/index"
)

// An IndexSummary describes one index for listing.
type IndexSummary struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	DocCount  uint64 `json:"doc_count"`
	SizeBytes uint64 `json:"size_bytes"`
}

// A Formatter renders search results and index listings.
type Formatter interface {
	SearchResults(results *index.Results) (string, error)
	IndexList(indexes []IndexSummary) (string, error)
}

// ForFormat returns the formatter matching a --format flag value.
func ForFormat(format string) Formatter {
	if format == "json" {
		return JSONFormatter{Pretty: true}
	}
	return PlainTextFormatter{}
}

// FormatSize renders a byte count in a human-friendly unit.
func FormatSize(bytes uint64) string {
	units := []string{"B", "KB", "MB", "GB"}
	size := float64(bytes)
	i := 0
	for size >= 1024.0 && i < len(units)-1 {
		size /= 1024.0
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d %s", bytes, units[i])
	}
	return fmt.Sprintf("%.1f %s", size, units[i])
}
