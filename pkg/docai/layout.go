package docai

import "strings"

// BlockRecord is one flattened layout block. The layout parser returns no
// per-element geometry, so blocks carry a page span and nesting depth
// instead of a polygon.
type BlockRecord struct {
	Type      string `json:"type"`
	Text      string `json:"text"`
	PageStart int    `json:"page_start"`
	PageEnd   int    `json:"page_end"`
	Level     int    `json:"level"`
}

// DocumentLayout returns the flattened block tree of a layout-parser
// result, pre-order depth-first with nesting depth recorded per block.
func (r *AnalysisResult) DocumentLayout() []BlockRecord {
	if r.doc.DocumentLayout == nil {
		return nil
	}
	return FlattenLayoutBlocks(r.doc.DocumentLayout.Blocks, 0)
}

// ChunkedDocument returns the retrieval chunks of a layout-parser result,
// when chunking was requested.
func (r *AnalysisResult) ChunkedDocument() []Chunk {
	if r.doc.ChunkedDocument == nil {
		return nil
	}
	return r.doc.ChunkedDocument.Chunks
}

// LayoutPageCount derives the page count of a layout-parser result. The
// pages array is usually empty for this shape, so the count falls back to
// the maximum page_end across all flattened blocks (page spans are
// 1-indexed inclusive).
func (r *AnalysisResult) LayoutPageCount() int {
	if len(r.doc.Pages) > 0 {
		return len(r.doc.Pages)
	}
	maxPage := 0
	for _, block := range r.DocumentLayout() {
		if block.PageEnd > maxPage {
			maxPage = block.PageEnd
		}
	}
	return maxPage
}

// FlattenLayoutBlocks flattens a nested block tree into an ordered sequence,
// emitting each block before recursing into its children with level+1.
// A block's type is derived from whichever of its three mutually exclusive
// sub-structures is populated.
func FlattenLayoutBlocks(blocks []LayoutBlock, level int) []BlockRecord {
	var out []BlockRecord
	for _, block := range blocks {
		rec := BlockRecord{
			Type:  blockType(block),
			Text:  blockText(block),
			Level: level,
		}
		if block.PageSpan != nil {
			rec.PageStart = block.PageSpan.PageStart.Int()
			rec.PageEnd = block.PageSpan.PageEnd.Int()
		}
		out = append(out, rec)

		children := blockChildren(block)
		if len(children) > 0 {
			out = append(out, FlattenLayoutBlocks(children, level+1)...)
		}
	}
	return out
}

// blockType maps a block to its flattened type name. Text block types use
// hyphens ("heading-1") regardless of the wire spelling.
func blockType(block LayoutBlock) string {
	switch {
	case block.TextBlock != nil:
		t := strings.ReplaceAll(strings.ToLower(block.TextBlock.Type), "_", "-")
		if t == "" {
			return "paragraph"
		}
		return t
	case block.TableBlock != nil:
		return "table"
	case block.ListBlock != nil:
		return "list"
	default:
		return "block"
	}
}

func blockText(block LayoutBlock) string {
	switch {
	case block.TextBlock != nil:
		return block.TextBlock.Text
	case block.TableBlock != nil:
		return tableBlockText(block.TableBlock)
	case block.ListBlock != nil:
		return listBlockText(block.ListBlock)
	default:
		return ""
	}
}

// tableBlockText reconstructs a pipe-delimited text representation, one
// line per row, header rows first.
func tableBlockText(table *TableBlock) string {
	var lines []string
	for _, row := range append(append([]LayoutTableRow{}, table.HeaderRows...), table.BodyRows...) {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, cellText(cell.Blocks))
		}
		lines = append(lines, strings.Join(cells, " | "))
	}
	return strings.Join(lines, "\n")
}

// listBlockText concatenates each entry's nested text blocks with newlines.
func listBlockText(list *ListBlock) string {
	var entries []string
	for _, entry := range list.ListEntries {
		texts := collectBlockTexts(entry.Blocks)
		if len(texts) > 0 {
			entries = append(entries, strings.Join(texts, "\n"))
		}
	}
	return strings.Join(entries, "\n")
}

func cellText(blocks []LayoutBlock) string {
	return strings.Join(collectBlockTexts(blocks), " ")
}

func collectBlockTexts(blocks []LayoutBlock) []string {
	var texts []string
	for _, block := range blocks {
		if text := blockText(block); text != "" {
			texts = append(texts, text)
		}
		texts = append(texts, collectBlockTexts(blockChildren(block))...)
	}
	return texts
}

// blockChildren returns a block's nested children: text-block children
// first, then children attached at the block level.
func blockChildren(block LayoutBlock) []LayoutBlock {
	var children []LayoutBlock
	if block.TextBlock != nil {
		children = append(children, block.TextBlock.Blocks...)
	}
	children = append(children, block.Blocks...)
	return children
}
