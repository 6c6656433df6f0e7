package output

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scarab-search/scarab/src/index"
)

var searchResults = &index.Results{
	Query: "int main",
	Count: 2,
	Results: []index.Result{
		{Path: "main.c", Extension: "c", Score: 1.72, Snippet: "int main(int argc, char *argv[]) {"},
		{Path: "src/add.h", Extension: "h", Score: 0.31, Snippet: "int add(int a, int b)"},
	},
}

func TestFormatSize(t *testing.T) {
	cases := []struct {
		in   uint64
		want string
	}{
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{1073741824, "1.0 GB"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatSize(c.in))
	}
}

func TestTextSearchResults(t *testing.T) {
	out, err := PlainTextFormatter{}.SearchResults(searchResults)
	require.NoError(t, err)
	assert.Equal(t, "Found 2 results for query 'int main':\n\n"+
		"📄 (score: 1.72) Path: main.c\n   Preview: int main(int argc, char *argv[]) {\n\n"+
		"📄 (score: 0.31) Path: src/add.h\n   Preview: int add(int a, int b)\n\n", out)
}

func TestTextSearchNoResults(t *testing.T) {
	out, err := PlainTextFormatter{}.SearchResults(&index.Results{Query: "zebra", Results: []index.Result{}})
	require.NoError(t, err)
	assert.Equal(t, "No results found for query: 'zebra'", out)
}

func TestTextIndexList(t *testing.T) {
	out, err := PlainTextFormatter{}.IndexList([]IndexSummary{
		{Name: "kernel", Path: "/home/alice/.scarab/indexes/kernel", DocCount: 1234, SizeBytes: 1536},
	})
	require.NoError(t, err)
	assert.Equal(t, "Found 1 index(es):\n\n"+
		"📂 kernel\n   Path: /home/alice/.scarab/indexes/kernel\n   Documents: 1234\n   Size: 1.5 KB\n\n", out)
}

func TestTextIndexListEmpty(t *testing.T) {
	out, err := PlainTextFormatter{}.IndexList(nil)
	require.NoError(t, err)
	assert.Contains(t, out, "No indexes found")
}

func TestJSONSearchResults(t *testing.T) {
	out, err := JSONFormatter{}.SearchResults(searchResults)
	require.NoError(t, err)
	decoded := map[string]interface{}{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "int main", decoded["query"])
	assert.EqualValues(t, 2, decoded["count"])
	results := decoded["results"].([]interface{})
	require.Len(t, results, 2)
	first := results[0].(map[string]interface{})
	assert.Equal(t, "main.c", first["path"])
	assert.InDelta(t, 1.72, first["score"], 0.001)
}

func TestJSONSearchResultsPretty(t *testing.T) {
	out, err := JSONFormatter{Pretty: true}.SearchResults(searchResults)
	require.NoError(t, err)
	assert.Contains(t, out, "\n  \"query\": \"int main\",\n")
}

func TestJSONIndexList(t *testing.T) {
	out, err := JSONFormatter{}.IndexList([]IndexSummary{
		{Name: "kernel", Path: "/x", DocCount: 3, SizeBytes: 100},
	})
	require.NoError(t, err)
	decoded := map[string]interface{}{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.EqualValues(t, 1, decoded["count"])
	indexes := decoded["indexes"].([]interface{})
	first := indexes[0].(map[string]interface{})
	assert.Equal(t, "kernel", first["name"])
	assert.EqualValues(t, 3, first["doc_count"])
	assert.EqualValues(t, 100, first["size_bytes"])
}

func TestForFormat(t *testing.T) {
	assert.IsType(t, PlainTextFormatter{}, ForFormat("text"))
	assert.IsType(t, JSONFormatter{}, ForFormat("json"))
	assert.IsType(t, PlainTextFormatter{}, ForFormat(""))
}
