package index

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/scarab-search/scarab/src/metrics"
)

// A Result is one search hit.
type Result struct {
	Path      string  `json:"path"`
	Extension string  `json:"extension,omitempty"`
	Score     float64 `json:"score"`
	Snippet   string  `json:"snippet"`
}

// Results holds everything found for one query.
type Results struct {
	Query   string   `json:"query"`
	Count   int      `json:"count"`
	Results []Result `json:"results"`
}

// Search runs a query against the entry and returns up to limit results,
// best first. Terms are matched conjunctively against file contents, so
// "int main" only matches files containing both; a query equal to a file's
// relative path matches that file too.
func Search(entry *Entry, queryStr string, limit, snippetLen int) (*Results, error) {
	start := time.Now()
	req := bleve.NewSearchRequestOptions(buildQuery(queryStr), limit, 0, false)
	req.Fields = []string{fieldPath, fieldContent, fieldExtension}
	res, err := entry.index.Search(req)
	if err != nil {
		return nil, err
	}
	results := &Results{Query: queryStr, Results: []Result{}}
	for _, hit := range res.Hits {
		r := Result{Path: hit.ID, Score: hit.Score}
		if ext, ok := hit.Fields[fieldExtension].(string); ok {
			r.Extension = ext
		}
		if content, ok := hit.Fields[fieldContent].(string); ok {
			r.Snippet = extractSnippet(content, queryStr, snippetLen)
		}
		results.Results = append(results.Results, r)
	}
	results.Count = len(results.Results)
	log.Debug("Query %q on '%s': %d of %d hits in %s", queryStr, entry.Name,
		results.Count, res.Total, time.Since(start))
	metrics.RecordSearch(entry.Name, time.Since(start))
	return results, nil
}

// buildQuery turns the user's query string into something we can run.
// A double-quoted query matches as a phrase. Otherwise all terms must appear
// in a file's content for it to match, or the whole string must equal a
// file's path.
func buildQuery(queryStr string) query.Query {
	if trimmed := strings.TrimSpace(queryStr); len(trimmed) > 2 && strings.HasPrefix(trimmed, `"`) && strings.HasSuffix(trimmed, `"`) {
		phrase := bleve.NewMatchPhraseQuery(trimmed[1 : len(trimmed)-1])
		phrase.SetField(fieldContent)
		return phrase
	}
	content := bleve.NewMatchQuery(queryStr)
	content.SetField(fieldContent)
	content.SetOperator(query.MatchQueryOperatorAnd)
	path := bleve.NewMatchQuery(queryStr)
	path.SetField(fieldPath)
	return bleve.NewDisjunctionQuery(content, path)
}

// extractSnippet returns a window of content around the earliest occurrence
// of any query term, with whitespace runs collapsed and "..." marking where
// the file continues.
func extractSnippet(content, queryStr string, maxLen int) string {
	if maxLen <= 0 || len(content) == 0 {
		return ""
	}
	lower := strings.ToLower(content)
	pos := -1
	for _, term := range strings.Fields(strings.ToLower(queryStr)) {
		term = strings.Trim(term, `"`)
		if term == "" {
			continue
		}
		if i := strings.Index(lower, term); i >= 0 && (pos == -1 || i < pos) {
			pos = i
		}
	}
	if pos == -1 {
		pos = 0
	}
	start := pos - maxLen/2
	if start < 0 {
		start = 0
	}
	end := start + maxLen
	if end > len(content) {
		end = len(content)
	}
	for start > 0 && !utf8.RuneStart(content[start]) {
		start--
	}
	for end < len(content) && !utf8.RuneStart(content[end]) {
		end++
	}
	snippet := strings.Join(strings.Fields(content[start:end]), " ")
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(content) {
		snippet += "..."
	}
	return snippet
}
