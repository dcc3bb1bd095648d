package docai

import (
	"fmt"
	"strings"
)

// Element categories of the unified box set. BoundingBoxes always returns
// all six keys, each mapped to an ordered (possibly empty) sequence.
const (
	CategoryText       = "text"
	CategoryTables     = "tables"
	CategoryParagraphs = "paragraphs"
	CategoryFormFields = "form_fields"
	CategoryEntities   = "entities"
	CategoryCheckboxes = "checkboxes"
)

// Categories lists the box categories in their canonical order.
func Categories() []string {
	return []string{
		CategoryText,
		CategoryTables,
		CategoryParagraphs,
		CategoryFormFields,
		CategoryEntities,
		CategoryCheckboxes,
	}
}

// displayLimit is the character budget for box content; longer text is
// truncated with an ellipsis and kept in full inside the details payload.
const displayLimit = 100

// Box is one annotation in the unified box set. Boxes are immutable once
// built; the rotation correction produces display copies instead of
// mutating the canonical polygon.
type Box struct {
	Page       int            `json:"page"`
	Polygon    Polygon        `json:"vertices"`
	Content    string         `json:"content"`
	Type       string         `json:"type"`
	Confidence float64        `json:"confidence"`
	Details    map[string]any `json:"details"`
}

// BoundingBoxes runs all six extractors and groups the surviving boxes by
// category. Every emitted box has a renderable polygon (at least 3 vertices)
// and a non-nil details payload; iteration order is source order.
func (r *AnalysisResult) BoundingBoxes() map[string][]Box {
	boxes := map[string][]Box{
		CategoryText:       r.textLineBoxes(),
		CategoryTables:     r.tableBoxes(),
		CategoryParagraphs: r.paragraphBoxes(),
		CategoryFormFields: r.formFieldBoxes(),
		CategoryEntities:   r.entityBoxes(),
		CategoryCheckboxes: r.checkboxBoxes(),
	}
	for category := range boxes {
		if boxes[category] == nil {
			boxes[category] = []Box{}
		}
	}
	return boxes
}

func (r *AnalysisResult) textLineBoxes() []Box {
	var boxes []Box
	for pageIdx, page := range r.doc.Pages {
		for _, line := range page.Lines {
			if line.Layout == nil {
				continue
			}
			polygon := layoutPolygon(line.Layout)
			if !polygon.Renderable() {
				continue
			}
			text := layoutText(line.Layout, r.doc.Text)
			boxes = append(boxes, Box{
				Page:       pageIdx,
				Polygon:    polygon,
				Content:    truncateForDisplay(text),
				Type:       "text",
				Confidence: line.Layout.Confidence,
				Details: map[string]any{
					"fullContent": text,
				},
			})
		}
	}
	return boxes
}

func (r *AnalysisResult) tableBoxes() []Box {
	var boxes []Box
	for pageIdx, page := range r.doc.Pages {
		for _, table := range page.Tables {
			if table.Layout == nil {
				continue
			}
			polygon := layoutPolygon(table.Layout)
			if !polygon.Renderable() {
				continue
			}
			rowCount := len(table.HeaderRows) + len(table.BodyRows)
			colCount := tableColCount(table)
			boxes = append(boxes, Box{
				Page:       pageIdx,
				Polygon:    polygon,
				Content:    fmt.Sprintf("Table (%d rows x %d cols)", rowCount, colCount),
				Type:       "table",
				Confidence: table.Layout.Confidence,
				Details: map[string]any{
					"rowCount":    rowCount,
					"columnCount": colCount,
				},
			})
		}
	}
	return boxes
}

func (r *AnalysisResult) paragraphBoxes() []Box {
	var boxes []Box
	for pageIdx, page := range r.doc.Pages {
		for _, para := range page.Paragraphs {
			if para.Layout == nil {
				continue
			}
			polygon := layoutPolygon(para.Layout)
			if !polygon.Renderable() {
				continue
			}
			text := layoutText(para.Layout, r.doc.Text)
			boxes = append(boxes, Box{
				Page:       pageIdx,
				Polygon:    polygon,
				Content:    truncateForDisplay(text),
				Type:       "paragraph",
				Confidence: para.Layout.Confidence,
				Details: map[string]any{
					"fullContent": text,
					"length":      len([]rune(text)),
				},
			})
		}
	}
	return boxes
}

// formFieldBoxes emits up to two boxes per field, one for the key and one
// for the value, sharing cross-reference metadata so either side can be
// hovered independently. A side without geometry is simply skipped.
func (r *AnalysisResult) formFieldBoxes() []Box {
	var boxes []Box
	for pageIdx, page := range r.doc.Pages {
		for _, field := range page.FormFields {
			keyText := layoutText(field.FieldName, r.doc.Text)
			valueText := layoutText(field.FieldValue, r.doc.Text)

			if keyPolygon := layoutPolygon(field.FieldName); keyPolygon.Renderable() {
				boxes = append(boxes, Box{
					Page:       pageIdx,
					Polygon:    keyPolygon,
					Content:    "Key: " + truncateForDisplay(keyText),
					Type:       "key",
					Confidence: field.FieldName.Confidence,
					Details: map[string]any{
						"role":         "key",
						"keyContent":   keyText,
						"valueContent": valueText,
					},
				})
			}
			if valuePolygon := layoutPolygon(field.FieldValue); valuePolygon.Renderable() {
				boxes = append(boxes, Box{
					Page:       pageIdx,
					Polygon:    valuePolygon,
					Content:    "Value: " + truncateForDisplay(valueText),
					Type:       "value",
					Confidence: field.FieldValue.Confidence,
					Details: map[string]any{
						"role":         "value",
						"keyContent":   keyText,
						"valueContent": valueText,
					},
				})
			}
		}
	}
	return boxes
}

func (r *AnalysisResult) entityBoxes() []Box {
	var boxes []Box
	for _, ent := range r.Entities() {
		if !ent.Polygon.Renderable() {
			continue
		}
		boxes = append(boxes, Box{
			Page:       ent.Page,
			Polygon:    ent.Polygon,
			Content:    fmt.Sprintf("%s: %s", ent.Type, truncateForDisplay(ent.MentionText)),
			Type:       "entity",
			Confidence: ent.Confidence,
			Details: map[string]any{
				"entityType":      ent.Type,
				"mentionText":     ent.MentionText,
				"normalizedValue": ent.NormalizedValue,
			},
		})
	}
	return boxes
}

func (r *AnalysisResult) checkboxBoxes() []Box {
	var boxes []Box
	for _, cb := range r.Checkboxes() {
		if !cb.Polygon.Renderable() {
			continue
		}
		boxes = append(boxes, Box{
			Page:       cb.Page,
			Polygon:    cb.Polygon,
			Content:    "Checkbox: " + cb.State,
			Type:       "checkbox",
			Confidence: cb.Confidence,
			Details: map[string]any{
				"state": cb.State,
				"key":   cb.Key,
			},
		})
	}
	return boxes
}

// CheckboxRecord is one checkbox detection. State is the raw detection type
// ("filled_checkbox", "unfilled_checkbox") or the form-field value type.
type CheckboxRecord struct {
	Page       int     `json:"page"`
	State      string  `json:"state"`
	Key        string  `json:"key,omitempty"`
	Polygon    Polygon `json:"vertices"`
	Confidence float64 `json:"confidence"`
}

// Checkboxes merges two independent signals: explicit visual checkbox
// detections and form fields whose value type contains "checkbox"
// (case-insensitive). When both signals fire on the same region — identical
// page, state and polygon — the duplicate is dropped.
func (r *AnalysisResult) Checkboxes() []CheckboxRecord {
	var checkboxes []CheckboxRecord
	for pageIdx, page := range r.doc.Pages {
		for _, elem := range page.VisualElements {
			if elem.Type != "filled_checkbox" && elem.Type != "unfilled_checkbox" {
				continue
			}
			rec := CheckboxRecord{
				Page:    pageIdx,
				State:   elem.Type,
				Polygon: layoutPolygon(elem.Layout),
			}
			if elem.Layout != nil {
				rec.Confidence = elem.Layout.Confidence
			}
			checkboxes = append(checkboxes, rec)
		}

		for _, field := range page.FormFields {
			if field.FieldValue == nil {
				continue
			}
			valueType := field.FieldValue.ValueType
			if !strings.Contains(strings.ToLower(valueType), "checkbox") {
				continue
			}
			rec := CheckboxRecord{
				Page:       pageIdx,
				State:      valueType,
				Key:        layoutText(field.FieldName, r.doc.Text),
				Polygon:    layoutPolygon(field.FieldValue),
				Confidence: field.FieldValue.Confidence,
			}
			if isDuplicateCheckbox(checkboxes, rec) {
				continue
			}
			checkboxes = append(checkboxes, rec)
		}
	}
	return checkboxes
}

// isDuplicateCheckbox reports whether an equivalent detection (same page,
// state and polygon) is already present.
func isDuplicateCheckbox(existing []CheckboxRecord, candidate CheckboxRecord) bool {
	for _, cb := range existing {
		if cb.Page != candidate.Page || !strings.EqualFold(cb.State, candidate.State) {
			continue
		}
		if polygonsEqual(cb.Polygon, candidate.Polygon) {
			return true
		}
	}
	return false
}

func polygonsEqual(a, b Polygon) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return len(a) > 0
}

// truncateForDisplay caps text at the display limit, appending an ellipsis.
// Counted in runes so multi-byte text is never split mid-character.
func truncateForDisplay(s string) string {
	runes := []rune(s)
	if len(runes) <= displayLimit {
		return s
	}
	return string(runes[:displayLimit]) + "..."
}
