// Package docai parses Google Document AI process responses into a unified
// annotation model suitable for coordinate-accurate overlay rendering.
//
// The wire format is the Document AI REST JSON shape (camelCase keys), but
// two sibling shapes are tolerated: the legacy protobuf-derived dict with
// snake_case keys, and the layout-parser shape that carries a documentLayout
// block tree instead of per-page elements.
package docai

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Document is the "document" object from a process response.
type Document struct {
	Text            string           `json:"text,omitempty"`
	MimeType        string           `json:"mimeType,omitempty"`
	Pages           []Page           `json:"pages,omitempty"`
	Entities        []Entity         `json:"entities,omitempty"`
	DocumentLayout  *DocumentLayout  `json:"documentLayout,omitempty"`
	ChunkedDocument *ChunkedDocument `json:"chunkedDocument,omitempty"`
}

// Page is one page of the standard (paginated) result shape.
type Page struct {
	PageNumber     FlexInt         `json:"pageNumber,omitempty"`
	Dimension      *Dimension      `json:"dimension,omitempty"`
	Layout         *Layout         `json:"layout,omitempty"`
	Lines          []Line          `json:"lines,omitempty"`
	Paragraphs     []Paragraph     `json:"paragraphs,omitempty"`
	Tables         []Table         `json:"tables,omitempty"`
	FormFields     []FormField     `json:"formFields,omitempty"`
	VisualElements []VisualElement `json:"visualElements,omitempty"`
}

// Dimension is the page size the API analyzed, in the API's units.
type Dimension struct {
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Unit   string  `json:"unit,omitempty"`
}

// Layout pairs a text reference with geometry and a confidence score.
// ValueType is only populated on form-field value layouts (e.g.
// "filled_checkbox").
type Layout struct {
	TextAnchor   *TextAnchor   `json:"textAnchor,omitempty"`
	Confidence   float64       `json:"confidence,omitempty"`
	BoundingPoly *BoundingPoly `json:"boundingPoly,omitempty"`
	Orientation  string        `json:"orientation,omitempty"`
	ValueType    string        `json:"valueType,omitempty"`
}

// TextAnchor references spans of the document-level text blob.
type TextAnchor struct {
	TextSegments []TextSegment `json:"textSegments,omitempty"`
	Content      string        `json:"content,omitempty"`
}

// TextSegment is a half-open [StartIndex, EndIndex) byte range.
type TextSegment struct {
	StartIndex FlexInt `json:"startIndex,omitempty"`
	EndIndex   FlexInt `json:"endIndex,omitempty"`
}

// BoundingPoly carries the normalized (unit-square) vertices of an element.
type BoundingPoly struct {
	NormalizedVertices []Vertex `json:"normalizedVertices,omitempty"`
}

// Vertex is a normalized coordinate pair. A component absent on the wire
// decodes as 0.0, which is the documented default.
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Line is a detected line of text.
type Line struct {
	Layout *Layout `json:"layout,omitempty"`
}

// Paragraph is a detected paragraph.
type Paragraph struct {
	Layout *Layout `json:"layout,omitempty"`
}

// Table is a detected table with header and body rows.
type Table struct {
	Layout     *Layout    `json:"layout,omitempty"`
	HeaderRows []TableRow `json:"headerRows,omitempty"`
	BodyRows   []TableRow `json:"bodyRows,omitempty"`
}

// TableRow is a row of table cells.
type TableRow struct {
	Cells []TableCell `json:"cells,omitempty"`
}

// TableCell is a single table cell.
type TableCell struct {
	Layout  *Layout `json:"layout,omitempty"`
	RowSpan FlexInt `json:"rowSpan,omitempty"`
	ColSpan FlexInt `json:"colSpan,omitempty"`
}

// FormField is a detected key-value pair.
type FormField struct {
	FieldName  *Layout `json:"fieldName,omitempty"`
	FieldValue *Layout `json:"fieldValue,omitempty"`
}

// VisualElement is a non-text detection such as a checkbox mark.
type VisualElement struct {
	Layout *Layout `json:"layout,omitempty"`
	Type   string  `json:"type,omitempty"`
}

// Entity is a document-level extraction from a specialized processor.
type Entity struct {
	Type            string           `json:"type,omitempty"`
	MentionText     string           `json:"mentionText,omitempty"`
	Confidence      float64          `json:"confidence,omitempty"`
	NormalizedValue *NormalizedValue `json:"normalizedValue,omitempty"`
	PageAnchor      *PageAnchor      `json:"pageAnchor,omitempty"`
	ID              string           `json:"id,omitempty"`
	Properties      []Entity         `json:"properties,omitempty"`
}

// NormalizedValue is the canonicalized form of an entity (dates, amounts).
type NormalizedValue struct {
	Text string `json:"text,omitempty"`
}

// PageAnchor locates an entity on one or more pages.
type PageAnchor struct {
	PageRefs []PageRef `json:"pageRefs,omitempty"`
}

// PageRef is a single page reference with optional geometry.
type PageRef struct {
	Page         FlexInt       `json:"page,omitempty"`
	BoundingPoly *BoundingPoly `json:"boundingPoly,omitempty"`
}

// DocumentLayout is the layout-parser block tree.
type DocumentLayout struct {
	Blocks []LayoutBlock `json:"blocks,omitempty"`
}

// LayoutBlock is one node of the block tree. Exactly one of TextBlock,
// TableBlock or ListBlock is populated for a meaningful block.
type LayoutBlock struct {
	BlockID    string       `json:"blockId,omitempty"`
	TextBlock  *TextBlock   `json:"textBlock,omitempty"`
	TableBlock *TableBlock  `json:"tableBlock,omitempty"`
	ListBlock  *ListBlock   `json:"listBlock,omitempty"`
	PageSpan   *PageSpan    `json:"pageSpan,omitempty"`
	Blocks     []LayoutBlock `json:"blocks,omitempty"`
}

// TextBlock holds literal text plus a structural type such as "heading-1".
type TextBlock struct {
	Text   string        `json:"text,omitempty"`
	Type   string        `json:"type,omitempty"`
	Blocks []LayoutBlock `json:"blocks,omitempty"`
}

// TableBlock is a table expressed as rows of cell block lists.
type TableBlock struct {
	HeaderRows []LayoutTableRow `json:"headerRows,omitempty"`
	BodyRows   []LayoutTableRow `json:"bodyRows,omitempty"`
	Caption    string           `json:"caption,omitempty"`
}

// LayoutTableRow is a row in a TableBlock.
type LayoutTableRow struct {
	Cells []LayoutTableCell `json:"cells,omitempty"`
}

// LayoutTableCell holds the blocks that make up one cell.
type LayoutTableCell struct {
	Blocks  []LayoutBlock `json:"blocks,omitempty"`
	RowSpan FlexInt       `json:"rowSpan,omitempty"`
	ColSpan FlexInt       `json:"colSpan,omitempty"`
}

// ListBlock is an ordered or unordered list.
type ListBlock struct {
	ListEntries []ListEntry `json:"listEntries,omitempty"`
	Type        string      `json:"type,omitempty"`
}

// ListEntry is one list item.
type ListEntry struct {
	Blocks []LayoutBlock `json:"blocks,omitempty"`
}

// PageSpan is an inclusive range of 1-indexed page numbers.
type PageSpan struct {
	PageStart FlexInt `json:"pageStart,omitempty"`
	PageEnd   FlexInt `json:"pageEnd,omitempty"`
}

// ChunkedDocument holds retrieval-sized chunks produced by layout chunking.
type ChunkedDocument struct {
	Chunks []Chunk `json:"chunks,omitempty"`
}

// Chunk is one chunk of layout-parser output.
type Chunk struct {
	ChunkID        string    `json:"chunkId,omitempty"`
	Content        string    `json:"content,omitempty"`
	PageSpan       *PageSpan `json:"pageSpan,omitempty"`
	SourceBlockIDs []string  `json:"sourceBlockIds,omitempty"`
}

// FlexInt decodes an integer that may arrive as a JSON number or as a
// string. The REST API serializes int64 fields (startIndex, endIndex, page)
// as strings, while the legacy dict shape uses plain numbers.
type FlexInt int64

// UnmarshalJSON accepts numbers, quoted numbers, null and the empty string.
func (n *FlexInt) UnmarshalJSON(data []byte) error {
	s := string(bytes.TrimSpace(data))
	if s == "null" {
		*n = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*n = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return fmt.Errorf("invalid integer value %q", s)
		}
		v = int64(f)
	}
	*n = FlexInt(v)
	return nil
}

// Int returns the value as a plain int.
func (n FlexInt) Int() int {
	return int(n)
}
