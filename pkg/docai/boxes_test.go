package docai

import (
	"strings"
	"testing"
)

func TestBoundingBoxesSingleTextLine(t *testing.T) {
	raw := `{
		"text": "Hello\n",
		"pages": [{
			"pageNumber": "1",
			"lines": [{
				"layout": {
					"textAnchor": {"textSegments": [{"startIndex": "0", "endIndex": "5"}]},
					"confidence": 0.98,
					"boundingPoly": {"normalizedVertices": [{"x": 0.1, "y": 0.1}, {"x": 0.5, "y": 0.1}, {"x": 0.5, "y": 0.2}, {"x": 0.1, "y": 0.2}]}
				}
			}]
		}]
	}`

	result := mustParse(t, raw)
	boxes := result.BoundingBoxes()

	text := boxes[CategoryText]
	if len(text) != 1 {
		t.Fatalf("got %d text boxes, want 1", len(text))
	}
	box := text[0]
	if box.Content != "Hello" {
		t.Errorf("content = %q, want %q", box.Content, "Hello")
	}
	if box.Confidence != 0.98 {
		t.Errorf("confidence = %v, want 0.98", box.Confidence)
	}
	if box.Page != 0 {
		t.Errorf("page = %d, want 0", box.Page)
	}
	if len(box.Polygon) != 4 {
		t.Errorf("got %d vertices, want 4", len(box.Polygon))
	}
	if box.Type != "text" {
		t.Errorf("type = %q, want text", box.Type)
	}
}

func TestBoundingBoxesAllCategoriesPresent(t *testing.T) {
	result := mustParse(t, `{"text":"","pages":[]}`)
	boxes := result.BoundingBoxes()

	for _, category := range Categories() {
		slice, ok := boxes[category]
		if !ok {
			t.Errorf("category %q missing from box map", category)
			continue
		}
		if slice == nil {
			t.Errorf("category %q is nil, want empty slice", category)
		}
	}
	if len(boxes) != len(Categories()) {
		t.Errorf("box map has %d keys, want %d", len(boxes), len(Categories()))
	}
}

func TestBoundingBoxesFilterDegeneratePolygons(t *testing.T) {
	// Elements whose polygon has fewer than three vertices never reach the
	// box set, in any category.
	raw := `{
		"text": "AB",
		"pages": [{
			"lines": [{
				"layout": {
					"textAnchor": {"textSegments": [{"startIndex": "0", "endIndex": "2"}]},
					"boundingPoly": {"normalizedVertices": [{"x": 0.1, "y": 0.1}, {"x": 0.5, "y": 0.1}]}
				}
			}],
			"paragraphs": [{
				"layout": {"boundingPoly": {"normalizedVertices": [{"x": 0.2, "y": 0.2}]}}
			}],
			"tables": [{
				"layout": {"boundingPoly": {"normalizedVertices": []}},
				"bodyRows": [{"cells": [{}]}]
			}]
		}],
		"entities": [{
			"type": "total_amount",
			"mentionText": "AB",
			"pageAnchor": {"pageRefs": [{"page": "0", "boundingPoly": {"normalizedVertices": [{"x": 0.1, "y": 0.1}, {"x": 0.2, "y": 0.2}]}}]}
		}]
	}`

	result := mustParse(t, raw)
	boxes := result.BoundingBoxes()
	for _, category := range Categories() {
		if n := len(boxes[category]); n != 0 {
			t.Errorf("category %q has %d boxes, want 0", category, n)
		}
	}

	// The degenerate elements still appear in the per-type accessors.
	if len(result.Tables()) != 1 {
		t.Errorf("Tables() dropped the degenerate table")
	}
	if len(result.Entities()) != 1 {
		t.Errorf("Entities() dropped the degenerate entity")
	}
}

func TestFormFieldBoxesValueOnly(t *testing.T) {
	// A form field with value geometry but no key geometry yields a single
	// value box; the record level API still reports the pair.
	raw := `{
		"text": "Name: Ada",
		"pages": [{
			"formFields": [{
				"fieldName": {
					"textAnchor": {"textSegments": [{"startIndex": "0", "endIndex": "5"}]},
					"confidence": 0.91
				},
				"fieldValue": {
					"textAnchor": {"textSegments": [{"startIndex": "6", "endIndex": "9"}]},
					"confidence": 0.88,
					"boundingPoly": {"normalizedVertices": [{"x": 0.3, "y": 0.1}, {"x": 0.6, "y": 0.1}, {"x": 0.6, "y": 0.15}, {"x": 0.3, "y": 0.15}]}
				}
			}]
		}]
	}`

	result := mustParse(t, raw)
	boxes := result.BoundingBoxes()[CategoryFormFields]
	if len(boxes) != 1 {
		t.Fatalf("got %d form field boxes, want 1", len(boxes))
	}
	box := boxes[0]
	if box.Type != "value" {
		t.Errorf("type = %q, want value", box.Type)
	}
	if box.Content != "Value: Ada" {
		t.Errorf("content = %q, want %q", box.Content, "Value: Ada")
	}
	if box.Details["keyContent"] != "Name:" {
		t.Errorf("keyContent = %v, want %q", box.Details["keyContent"], "Name:")
	}
	if box.Details["valueContent"] != "Ada" {
		t.Errorf("valueContent = %v, want %q", box.Details["valueContent"], "Ada")
	}

	fields := result.FormFields()
	if len(fields) != 1 || fields[0].Key != "Name:" || fields[0].Value != "Ada" {
		t.Errorf("FormFields() = %+v, want the full pair", fields)
	}
}

func TestFormFieldBoxesKeyAndValue(t *testing.T) {
	raw := `{
		"text": "Total: $42",
		"pages": [{
			"formFields": [{
				"fieldName": {
					"textAnchor": {"textSegments": [{"startIndex": "0", "endIndex": "6"}]},
					"confidence": 0.95,
					"boundingPoly": {"normalizedVertices": [{"x": 0.1, "y": 0.1}, {"x": 0.25, "y": 0.1}, {"x": 0.25, "y": 0.15}, {"x": 0.1, "y": 0.15}]}
				},
				"fieldValue": {
					"textAnchor": {"textSegments": [{"startIndex": "7", "endIndex": "10"}]},
					"confidence": 0.92,
					"boundingPoly": {"normalizedVertices": [{"x": 0.3, "y": 0.1}, {"x": 0.4, "y": 0.1}, {"x": 0.4, "y": 0.15}, {"x": 0.3, "y": 0.15}]}
				}
			}]
		}]
	}`

	boxes := mustParse(t, raw).BoundingBoxes()[CategoryFormFields]
	if len(boxes) != 2 {
		t.Fatalf("got %d form field boxes, want 2", len(boxes))
	}
	if boxes[0].Type != "key" || boxes[1].Type != "value" {
		t.Errorf("box types = %q, %q, want key then value", boxes[0].Type, boxes[1].Type)
	}
	if boxes[0].Content != "Key: Total:" {
		t.Errorf("key content = %q", boxes[0].Content)
	}
	// Both sides carry the same cross-reference so either can be hovered.
	if boxes[0].Details["valueContent"] != "$42" || boxes[1].Details["keyContent"] != "Total:" {
		t.Errorf("cross-reference details missing: %v / %v", boxes[0].Details, boxes[1].Details)
	}
}

func TestCheckboxesUnionAndDedup(t *testing.T) {
	// Three distinct signals: one visual detection, one form-field checkbox
	// on a different region, and one form-field duplicate of the visual
	// detection (same page, state, polygon) that must be dropped.
	raw := `{
		"text": "Agree Subscribe",
		"pages": [{
			"visualElements": [
				{
					"type": "filled_checkbox",
					"layout": {
						"confidence": 0.97,
						"boundingPoly": {"normalizedVertices": [{"x": 0.1, "y": 0.5}, {"x": 0.14, "y": 0.5}, {"x": 0.14, "y": 0.54}, {"x": 0.1, "y": 0.54}]}
					}
				},
				{
					"type": "stray_mark",
					"layout": {"boundingPoly": {"normalizedVertices": [{"x": 0.8, "y": 0.8}, {"x": 0.9, "y": 0.8}, {"x": 0.9, "y": 0.9}, {"x": 0.8, "y": 0.9}]}}
				}
			],
			"formFields": [
				{
					"fieldName": {"textAnchor": {"textSegments": [{"startIndex": "0", "endIndex": "5"}]}},
					"fieldValue": {
						"valueType": "filled_checkbox",
						"confidence": 0.93,
						"boundingPoly": {"normalizedVertices": [{"x": 0.1, "y": 0.5}, {"x": 0.14, "y": 0.5}, {"x": 0.14, "y": 0.54}, {"x": 0.1, "y": 0.54}]}
					}
				},
				{
					"fieldName": {"textAnchor": {"textSegments": [{"startIndex": "6", "endIndex": "15"}]}},
					"fieldValue": {
						"valueType": "unfilled_checkbox",
						"confidence": 0.9,
						"boundingPoly": {"normalizedVertices": [{"x": 0.1, "y": 0.6}, {"x": 0.14, "y": 0.6}, {"x": 0.14, "y": 0.64}, {"x": 0.1, "y": 0.64}]}
					}
				},
				{
					"fieldName": {"textAnchor": {"textSegments": [{"startIndex": "0", "endIndex": "5"}]}},
					"fieldValue": {
						"valueType": "text",
						"boundingPoly": {"normalizedVertices": [{"x": 0.2, "y": 0.7}, {"x": 0.3, "y": 0.7}, {"x": 0.3, "y": 0.74}, {"x": 0.2, "y": 0.74}]}
					}
				}
			]
		}]
	}`

	result := mustParse(t, raw)
	checkboxes := result.Checkboxes()
	if len(checkboxes) != 2 {
		t.Fatalf("got %d checkboxes, want 2 (duplicate dropped): %+v", len(checkboxes), checkboxes)
	}
	if checkboxes[0].State != "filled_checkbox" || checkboxes[0].Key != "" {
		t.Errorf("first record = %+v, want the visual detection", checkboxes[0])
	}
	if checkboxes[1].State != "unfilled_checkbox" || checkboxes[1].Key != "Subscribe" {
		t.Errorf("second record = %+v, want the form-field detection", checkboxes[1])
	}

	boxes := result.BoundingBoxes()[CategoryCheckboxes]
	if len(boxes) != 2 {
		t.Fatalf("got %d checkbox boxes, want 2", len(boxes))
	}
	if boxes[0].Content != "Checkbox: filled_checkbox" {
		t.Errorf("content = %q", boxes[0].Content)
	}
}

func TestCheckboxValueTypeCaseInsensitive(t *testing.T) {
	raw := `{
		"text": "Opt-in",
		"pages": [{
			"formFields": [{
				"fieldName": {"textAnchor": {"textSegments": [{"startIndex": "0", "endIndex": "6"}]}},
				"fieldValue": {
					"valueType": "Filled_Checkbox",
					"boundingPoly": {"normalizedVertices": [{"x": 0.1, "y": 0.1}, {"x": 0.2, "y": 0.1}, {"x": 0.2, "y": 0.2}, {"x": 0.1, "y": 0.2}]}
				}
			}]
		}]
	}`

	checkboxes := mustParse(t, raw).Checkboxes()
	if len(checkboxes) != 1 {
		t.Fatalf("got %d checkboxes, want 1", len(checkboxes))
	}
	if checkboxes[0].State != "Filled_Checkbox" {
		t.Errorf("state = %q, want the raw value type preserved", checkboxes[0].State)
	}
}

func TestEntityBoxesFirstPageRefOnly(t *testing.T) {
	raw := `{
		"text": "Acme Corp",
		"entities": [{
			"type": "supplier_name",
			"mentionText": "Acme Corp",
			"confidence": 0.85,
			"normalizedValue": {"text": "ACME CORPORATION"},
			"pageAnchor": {"pageRefs": [
				{"page": "1", "boundingPoly": {"normalizedVertices": [{"x": 0.1, "y": 0.1}, {"x": 0.3, "y": 0.1}, {"x": 0.3, "y": 0.15}, {"x": 0.1, "y": 0.15}]}},
				{"page": "2", "boundingPoly": {"normalizedVertices": [{"x": 0.5, "y": 0.5}, {"x": 0.7, "y": 0.5}, {"x": 0.7, "y": 0.55}, {"x": 0.5, "y": 0.55}]}}
			]}
		}],
		"pages": [{}, {}, {}]
	}`

	result := mustParse(t, raw)
	boxes := result.BoundingBoxes()[CategoryEntities]
	if len(boxes) != 1 {
		t.Fatalf("got %d entity boxes, want 1", len(boxes))
	}
	box := boxes[0]
	if box.Page != 1 {
		t.Errorf("page = %d, want 1 (first page ref)", box.Page)
	}
	if box.Polygon[0].X != 0.1 {
		t.Errorf("polygon from wrong page ref: %+v", box.Polygon)
	}
	if box.Content != "supplier_name: Acme Corp" {
		t.Errorf("content = %q", box.Content)
	}
	if box.Details["normalizedValue"] != "ACME CORPORATION" {
		t.Errorf("normalizedValue = %v", box.Details["normalizedValue"])
	}
}

func TestTruncateForDisplay(t *testing.T) {
	short := "short text"
	if got := truncateForDisplay(short); got != short {
		t.Errorf("short text altered: %q", got)
	}

	long := strings.Repeat("a", 150)
	got := truncateForDisplay(long)
	if len([]rune(got)) != displayLimit+3 {
		t.Errorf("truncated length = %d runes, want %d", len([]rune(got)), displayLimit+3)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated text missing ellipsis: %q", got)
	}

	// Rune-counted, so multi-byte text is never split mid-character.
	wide := strings.Repeat("日", 120)
	got = truncateForDisplay(wide)
	if string([]rune(got)[:displayLimit]) != strings.Repeat("日", displayLimit) {
		t.Errorf("multi-byte truncation corrupted text")
	}
}

func TestLongLineContentKeptInDetails(t *testing.T) {
	text := strings.Repeat("x", 140)
	raw := `{
		"text": "` + text + `",
		"pages": [{
			"lines": [{
				"layout": {
					"textAnchor": {"textSegments": [{"startIndex": "0", "endIndex": "140"}]},
					"boundingPoly": {"normalizedVertices": [{"x": 0.1, "y": 0.1}, {"x": 0.9, "y": 0.1}, {"x": 0.9, "y": 0.2}, {"x": 0.1, "y": 0.2}]}
				}
			}]
		}]
	}`

	boxes := mustParse(t, raw).BoundingBoxes()[CategoryText]
	if len(boxes) != 1 {
		t.Fatalf("got %d boxes, want 1", len(boxes))
	}
	if !strings.HasSuffix(boxes[0].Content, "...") {
		t.Errorf("content not truncated: %q", boxes[0].Content)
	}
	if boxes[0].Details["fullContent"] != text {
		t.Errorf("details lost the full content")
	}
}
