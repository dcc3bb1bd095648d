package docai

import "strings"

// anchorText resolves a text anchor against the document text blob,
// concatenating the referenced spans and trimming surrounding whitespace.
// Absent anchors and anchors without segments resolve to "". Indexes are
// byte offsets; out-of-range values are clamped rather than rejected.
func anchorText(anchor *TextAnchor, fullText string) string {
	if anchor == nil {
		return ""
	}
	if len(anchor.TextSegments) == 0 {
		// Inline content appears on some anchors instead of segments.
		return strings.TrimSpace(anchor.Content)
	}
	var b strings.Builder
	for _, seg := range anchor.TextSegments {
		start := clampIndex(int(seg.StartIndex), len(fullText))
		end := clampIndex(int(seg.EndIndex), len(fullText))
		if start >= end {
			continue
		}
		b.WriteString(fullText[start:end])
	}
	return strings.TrimSpace(b.String())
}

// layoutText resolves the text referenced by a layout, or "" when the layout
// or its anchor is absent.
func layoutText(layout *Layout, fullText string) string {
	if layout == nil {
		return ""
	}
	return anchorText(layout.TextAnchor, fullText)
}

func clampIndex(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}
