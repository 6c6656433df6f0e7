package output

import (
	"fmt"
	"strings"

	"github.com/scarab-search/scarab/src/index"
)

// PlainTextFormatter renders results for reading in a terminal.
type PlainTextFormatter struct{}

// SearchResults renders search hits with their scores and a content preview.
func (PlainTextFormatter) SearchResults(results *index.Results) (string, error) {
	if len(results.Results) == 0 {
		return fmt.Sprintf("No results found for query: '%s'", results.Query), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d results for query '%s':\n\n", len(results.Results), results.Query)
	for _, r := range results.Results {
		fmt.Fprintf(&b, "📄 (score: %.2f) Path: %s\n   Preview: %s\n\n", r.Score, r.Path, r.Snippet)
	}
	return b.String(), nil
}

// IndexList renders the catalog contents with document counts and sizes.
func (PlainTextFormatter) IndexList(indexes []IndexSummary) (string, error) {
	if len(indexes) == 0 {
		return "No indexes found. Create one with: scarab new <name> <path>", nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d index(es):\n\n", len(indexes))
	for _, idx := range indexes {
		fmt.Fprintf(&b, "📂 %s\n   Path: %s\n   Documents: %d\n   Size: %s\n\n",
			idx.Name, idx.Path, idx.DocCount, FormatSize(idx.SizeBytes))
	}
	return b.String(), nil
}
