package index

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Field names of the stored documents. The document id is the file's
// slash-separated path relative to the target, which makes updates and
// deletes a straight lookup.
const (
	fieldPath      = "path"
	fieldContent   = "content"
	fieldExtension = "extension"
	fieldSize      = "size"
	fieldModTime   = "mod_time"
)

// buildMapping returns the index mapping for file documents. Content gets the
// standard analyzer; path and extension are keyword fields so they only match
// exactly.
func buildMapping() mapping.IndexMapping {
	content := bleve.NewTextFieldMapping()
	content.Analyzer = standard.Name
	content.Store = true
	content.IncludeInAll = false

	exact := bleve.NewTextFieldMapping()
	exact.Analyzer = keyword.Name
	exact.Store = true
	exact.IncludeInAll = false

	numeric := bleve.NewNumericFieldMapping()
	numeric.Store = true
	numeric.IncludeInAll = false

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt(fieldContent, content)
	doc.AddFieldMappingsAt(fieldPath, exact)
	doc.AddFieldMappingsAt(fieldExtension, exact)
	doc.AddFieldMappingsAt(fieldSize, numeric)
	doc.AddFieldMappingsAt(fieldModTime, numeric)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	m.DefaultField = fieldContent
	return m
}
