package docai

import (
	"encoding/json"
	"fmt"
)

// AnalysisResult wraps one parsed process response. It is immutable after
// construction: every accessor returns a freshly derived view, so concurrent
// reads need no locking and nothing ever mutates the raw document.
type AnalysisResult struct {
	doc     Document
	raw     map[string]any
	variant Variant
}

// ParseDocument builds an AnalysisResult from the raw "document" JSON of a
// process response. Legacy snake_case documents are canonicalized to the
// REST key shape before typed decoding; data-shape variance beyond that
// (absent fields, string-encoded integers) is absorbed by the wire types.
func ParseDocument(raw []byte) (*AnalysisResult, error) {
	var rawMap map[string]any
	if err := json.Unmarshal(raw, &rawMap); err != nil {
		return nil, fmt.Errorf("failed to decode document JSON: %w", err)
	}

	variant := VariantREST
	docBytes := raw
	if hasLegacyKeys(rawMap) {
		variant = VariantLegacy
		canonical, err := json.Marshal(canonicalizeKeys(rawMap))
		if err != nil {
			return nil, fmt.Errorf("failed to canonicalize legacy document: %w", err)
		}
		docBytes = canonical
	}

	var doc Document
	if err := json.Unmarshal(docBytes, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	if isLayoutResult(&doc) {
		variant = VariantLayout
	}

	return &AnalysisResult{doc: doc, raw: rawMap, variant: variant}, nil
}

// Variant reports which response shape was detected.
func (r *AnalysisResult) Variant() Variant {
	return r.variant
}

// IsLayoutParserResult reports whether the result carries a layout block
// tree and no per-page element content.
func (r *AnalysisResult) IsLayoutParserResult() bool {
	return r.variant == VariantLayout
}

// Text returns the full recognized text blob.
func (r *AnalysisResult) Text() string {
	return r.doc.Text
}

// Pages returns the raw page array.
func (r *AnalysisResult) Pages() []Page {
	return r.doc.Pages
}

// PageDimensions returns the API-reported dimensions for a page, used for
// rotation correction against the rendered raster. ok is false when the page
// or its dimension record is absent.
func (r *AnalysisResult) PageDimensions(pageIndex int) (width, height float64, ok bool) {
	if pageIndex < 0 || pageIndex >= len(r.doc.Pages) {
		return 0, 0, false
	}
	dim := r.doc.Pages[pageIndex].Dimension
	if dim == nil {
		return 0, 0, false
	}
	return dim.Width, dim.Height, true
}

// ToDict returns the raw response tree for archival or debugging display.
func (r *AnalysisResult) ToDict() map[string]any {
	return r.raw
}

// TextLine is one recognized line on a page.
type TextLine struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Polygon    Polygon `json:"vertices"`
}

// PageTextLines returns the recognized lines of one page, in source order.
func (r *AnalysisResult) PageTextLines(pageIndex int) []TextLine {
	if pageIndex < 0 || pageIndex >= len(r.doc.Pages) {
		return nil
	}
	page := r.doc.Pages[pageIndex]
	lines := make([]TextLine, 0, len(page.Lines))
	for _, line := range page.Lines {
		var confidence float64
		if line.Layout != nil {
			confidence = line.Layout.Confidence
		}
		lines = append(lines, TextLine{
			Text:       layoutText(line.Layout, r.doc.Text),
			Confidence: confidence,
			Polygon:    layoutPolygon(line.Layout),
		})
	}
	return lines
}

// EntityRecord is a document-level extraction anchored to its first page
// reference. Multi-page entities keep only the first occurrence's geometry.
type EntityRecord struct {
	Type            string  `json:"type"`
	MentionText     string  `json:"mention_text"`
	NormalizedValue string  `json:"normalized_value"`
	Confidence      float64 `json:"confidence"`
	Page            int     `json:"page"`
	Polygon         Polygon `json:"vertices"`
}

// Entities returns all extracted entities in source order.
func (r *AnalysisResult) Entities() []EntityRecord {
	entities := make([]EntityRecord, 0, len(r.doc.Entities))
	for _, entity := range r.doc.Entities {
		rec := EntityRecord{
			Type:        entity.Type,
			MentionText: entity.MentionText,
			Confidence:  entity.Confidence,
		}
		if entity.NormalizedValue != nil {
			rec.NormalizedValue = entity.NormalizedValue.Text
		}
		if entity.PageAnchor != nil && len(entity.PageAnchor.PageRefs) > 0 {
			ref := entity.PageAnchor.PageRefs[0]
			rec.Page = ref.Page.Int()
			rec.Polygon = extractPolygon(ref.BoundingPoly)
		}
		entities = append(entities, rec)
	}
	return entities
}

// TableRecord is a detected table with its resolved cell texts. ColCount is
// the width of the first body row, else the first header row, else 0; rows
// are not guaranteed to share width.
type TableRecord struct {
	Page       int        `json:"page"`
	HeaderRows [][]string `json:"header_rows"`
	BodyRows   [][]string `json:"body_rows"`
	RowCount   int        `json:"row_count"`
	ColCount   int        `json:"col_count"`
	Polygon    Polygon    `json:"vertices"`
	Confidence float64    `json:"confidence"`
}

// Tables returns all tables across all pages, in page then source order.
func (r *AnalysisResult) Tables() []TableRecord {
	var tables []TableRecord
	for pageIdx, page := range r.doc.Pages {
		for _, table := range page.Tables {
			rec := TableRecord{
				Page:       pageIdx,
				HeaderRows: r.resolveRows(table.HeaderRows),
				BodyRows:   r.resolveRows(table.BodyRows),
				Polygon:    layoutPolygon(table.Layout),
			}
			if table.Layout != nil {
				rec.Confidence = table.Layout.Confidence
			}
			rec.RowCount = len(rec.HeaderRows) + len(rec.BodyRows)
			rec.ColCount = tableColCount(table)
			tables = append(tables, rec)
		}
	}
	return tables
}

func (r *AnalysisResult) resolveRows(rows []TableRow) [][]string {
	resolved := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, layoutText(cell.Layout, r.doc.Text))
		}
		resolved = append(resolved, cells)
	}
	return resolved
}

func tableColCount(table Table) int {
	if len(table.BodyRows) > 0 {
		return len(table.BodyRows[0].Cells)
	}
	if len(table.HeaderRows) > 0 {
		return len(table.HeaderRows[0].Cells)
	}
	return 0
}

// FormFieldRecord is a detected key-value pair. Either side may lack
// geometry; the unified box set emits only the sides that have it.
type FormFieldRecord struct {
	Page         int     `json:"page"`
	Key          string  `json:"key"`
	Value        string  `json:"value"`
	KeyPolygon   Polygon `json:"key_vertices"`
	ValuePolygon Polygon `json:"value_vertices"`
	Confidence   float64 `json:"confidence"`
}

// FormFields returns all form fields across pages, in source order.
func (r *AnalysisResult) FormFields() []FormFieldRecord {
	var fields []FormFieldRecord
	for pageIdx, page := range r.doc.Pages {
		for _, field := range page.FormFields {
			rec := FormFieldRecord{
				Page:         pageIdx,
				Key:          layoutText(field.FieldName, r.doc.Text),
				Value:        layoutText(field.FieldValue, r.doc.Text),
				KeyPolygon:   layoutPolygon(field.FieldName),
				ValuePolygon: layoutPolygon(field.FieldValue),
			}
			if field.FieldName != nil {
				rec.Confidence = field.FieldName.Confidence
			}
			fields = append(fields, rec)
		}
	}
	return fields
}

// ParagraphRecord is a detected paragraph with its resolved text.
type ParagraphRecord struct {
	Page       int     `json:"page"`
	Text       string  `json:"text"`
	Polygon    Polygon `json:"vertices"`
	Confidence float64 `json:"confidence"`
}

// Paragraphs returns all paragraphs across pages, in source order.
func (r *AnalysisResult) Paragraphs() []ParagraphRecord {
	var paragraphs []ParagraphRecord
	for pageIdx, page := range r.doc.Pages {
		for _, para := range page.Paragraphs {
			rec := ParagraphRecord{
				Page:    pageIdx,
				Text:    layoutText(para.Layout, r.doc.Text),
				Polygon: layoutPolygon(para.Layout),
			}
			if para.Layout != nil {
				rec.Confidence = para.Layout.Confidence
			}
			paragraphs = append(paragraphs, rec)
		}
	}
	return paragraphs
}

// FormattedField is one row of the structured fields display.
type FormattedField struct {
	Content         string  `json:"content"`
	NormalizedValue string  `json:"normalized_value,omitempty"`
	Confidence      float64 `json:"confidence"`
	Type            string  `json:"type"`
}

// FormattedFields groups entities and form fields into named sections for a
// fields table. Sections with no content are omitted.
func (r *AnalysisResult) FormattedFields() map[string]map[string]FormattedField {
	formatted := make(map[string]map[string]FormattedField)

	if entities := r.Entities(); len(entities) > 0 {
		section := make(map[string]FormattedField, len(entities))
		for _, ent := range entities {
			section[ent.Type] = FormattedField{
				Content:         ent.MentionText,
				NormalizedValue: ent.NormalizedValue,
				Confidence:      ent.Confidence,
				Type:            "entity",
			}
		}
		formatted["Entities"] = section
	}

	if fields := r.FormFields(); len(fields) > 0 {
		section := make(map[string]FormattedField, len(fields))
		for _, ff := range fields {
			key := ff.Key
			if key == "" {
				key = "(unnamed)"
			}
			section[key] = FormattedField{
				Content:    ff.Value,
				Confidence: ff.Confidence,
				Type:       "form_field",
			}
		}
		formatted["Form Fields"] = section
	}

	return formatted
}
