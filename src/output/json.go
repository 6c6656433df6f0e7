package output

import (
	"encoding/json"

	"github.com/scarab-search/scarab/src/index"
)

// JSONFormatter renders results as JSON, for scripts and tests.
type JSONFormatter struct {
	Pretty bool
}

// SearchResults renders the results envelope as-is.
func (f JSONFormatter) SearchResults(results *index.Results) (string, error) {
	return f.marshal(results)
}

// IndexList renders the catalog contents with document counts and sizes.
func (f JSONFormatter) IndexList(indexes []IndexSummary) (string, error) {
	return f.marshal(map[string]interface{}{
		"count":   len(indexes),
		"indexes": indexes,
	})
}

func (f JSONFormatter) marshal(v interface{}) (string, error) {
	if f.Pretty {
		b, err := json.MarshalIndent(v, "", "  ")
		return string(b), err
	}
	b, err := json.Marshal(v)
	return string(b), err
}
