package docai

import (
	"strings"
	"unicode"
)

// Variant identifies which of the observed response shapes a document uses.
// There is no discriminant field on the wire; the shape is determined by
// structural probing.
type Variant int

const (
	// VariantREST is the standard paginated REST JSON shape (camelCase keys).
	VariantREST Variant = iota
	// VariantLegacy is the protobuf-derived dict shape with snake_case keys.
	VariantLegacy
	// VariantLayout is the layout-parser shape: a documentLayout block tree
	// with no per-page element geometry.
	VariantLayout
)

func (v Variant) String() string {
	switch v {
	case VariantLegacy:
		return "legacy"
	case VariantLayout:
		return "layout"
	default:
		return "rest"
	}
}

// isLayoutResult reports whether the document should be routed through the
// layout block walker. Both conditions must hold: a populated block tree AND
// no per-page element content anywhere. Some processors emit a pages array
// with unrelated metadata next to a layout tree; actual per-page content
// takes precedence.
func isLayoutResult(doc *Document) bool {
	if doc.DocumentLayout == nil || len(doc.DocumentLayout.Blocks) == 0 {
		return false
	}
	for _, page := range doc.Pages {
		if len(page.Lines) > 0 || len(page.Paragraphs) > 0 ||
			len(page.Tables) > 0 || len(page.FormFields) > 0 {
			return false
		}
	}
	return true
}

// legacyMarkers are key names that only appear in the snake_case dict shape.
var legacyMarkers = map[string]bool{
	"text_anchor":         true,
	"text_segments":       true,
	"start_index":         true,
	"end_index":           true,
	"normalized_vertices": true,
	"bounding_poly":       true,
	"form_fields":         true,
	"field_name":          true,
	"field_value":         true,
	"page_anchor":         true,
	"page_refs":           true,
	"mention_text":        true,
	"normalized_value":    true,
	"visual_elements":     true,
	"header_rows":         true,
	"body_rows":           true,
	"value_type":          true,
}

// hasLegacyKeys walks the raw tree looking for snake_case marker keys.
func hasLegacyKeys(v any) bool {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			if legacyMarkers[k] {
				return true
			}
			if hasLegacyKeys(child) {
				return true
			}
		}
	case []any:
		for _, child := range t {
			if hasLegacyKeys(child) {
				return true
			}
		}
	}
	return false
}

// canonicalizeKeys rewrites every snake_case map key to camelCase so the
// legacy shape can be decoded by the REST wire types. Keys without
// underscores pass through untouched, so the transform is a no-op on
// already-canonical documents.
func canonicalizeKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, child := range t {
			out[snakeToCamel(k)] = canonicalizeKeys(child)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, child := range t {
			out[i] = canonicalizeKeys(child)
		}
		return out
	default:
		return v
	}
}

func snakeToCamel(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	parts := strings.Split(s, "_")
	var b strings.Builder
	for i, part := range parts {
		if part == "" {
			continue
		}
		if b.Len() == 0 && i == 0 {
			b.WriteString(part)
			continue
		}
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}
