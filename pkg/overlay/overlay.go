// Package overlay turns the unified box set into display-space overlays:
// page filtering, rotation correction, normalized-to-pixel conversion and a
// self-contained HTML rendering for the web UI.
package overlay

import (
	"fmt"
	"strings"

	"github.com/docai-showcase/docai/pkg/docai"
)

// Style is the outline styling for one element category.
type Style struct {
	Color string `json:"color"`
	Width int    `json:"width"`
}

// Styles maps each box category to its display style.
func Styles() map[string]Style {
	return map[string]Style{
		docai.CategoryText:       {Color: "#007ACC", Width: 2},
		docai.CategoryTables:     {Color: "#00B04F", Width: 3},
		docai.CategoryParagraphs: {Color: "#9932CC", Width: 2},
		docai.CategoryFormFields: {Color: "#FF8C00", Width: 2},
		docai.CategoryEntities:   {Color: "#DC143C", Width: 2},
		docai.CategoryCheckboxes: {Color: "#8A2BE2", Width: 2},
	}
}

var displayNames = map[string]string{
	docai.CategoryText:       "Text Line",
	docai.CategoryTables:     "Table",
	docai.CategoryParagraphs: "Paragraph",
	docai.CategoryFormFields: "Form Field",
	docai.CategoryEntities:   "Entity",
	docai.CategoryCheckboxes: "Checkbox",
}

// DisplayName returns the human-readable name of a category.
func DisplayName(category string) string {
	if name, ok := displayNames[category]; ok {
		return name
	}
	return category
}

// Point is a pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PixelPolygon scales a normalized polygon to pixel coordinates, clamping
// every point to the image bounds.
func PixelPolygon(p docai.Polygon, imageWidth, imageHeight int) []Point {
	points := make([]Point, 0, len(p))
	for _, v := range p {
		points = append(points, Point{
			X: clamp(int(v.X*float64(imageWidth)), imageWidth),
			Y: clamp(int(v.Y*float64(imageHeight)), imageHeight),
		})
	}
	return points
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// BoxesForPage filters the unified box set down to one page, preserving
// category keys and source order.
func BoxesForPage(all map[string][]docai.Box, pageIndex int) map[string][]docai.Box {
	out := make(map[string][]docai.Box, len(all))
	for category, boxes := range all {
		filtered := []docai.Box{}
		for _, box := range boxes {
			if box.Page == pageIndex {
				filtered = append(filtered, box)
			}
		}
		out[category] = filtered
	}
	return out
}

// DisplayBoxes returns the page's boxes in display coordinates. When the
// API-reported page orientation disagrees with the raster (one portrait,
// one landscape) every polygon gets the quarter-turn correction. Input
// boxes are never mutated: the transform is canonical-to-display, so
// repeated renders cannot double-rotate.
func DisplayBoxes(all map[string][]docai.Box, pageIndex int, apiWidth, apiHeight float64, imageWidth, imageHeight int) map[string][]docai.Box {
	rotate := docai.AspectMismatch(apiWidth, apiHeight, float64(imageWidth), float64(imageHeight))

	out := make(map[string][]docai.Box, len(all))
	for category, boxes := range all {
		display := []docai.Box{}
		for _, box := range boxes {
			if box.Page != pageIndex {
				continue
			}
			copied := box
			if rotate {
				copied.Polygon = docai.RotateQuarter(box.Polygon)
			} else {
				copied.Polygon = box.Polygon.Clone()
			}
			display = append(display, copied)
		}
		out[category] = display
	}
	return out
}

// Label builds the short on-image label for a box.
func Label(box docai.Box, category string) string {
	switch category {
	case docai.CategoryText:
		content := strings.TrimSpace(box.Content)
		if runes := []rune(content); len(runes) > 30 {
			return string(runes[:27]) + "..."
		}
		return content
	case docai.CategoryTables:
		return fmt.Sprintf("Table %dx%d", detailInt(box, "rowCount"), detailInt(box, "columnCount"))
	case docai.CategoryParagraphs:
		return "Paragraph"
	case docai.CategoryFormFields:
		if role := detailString(box, "role"); role != "" {
			return "KV " + strings.ToUpper(role[:1]) + role[1:]
		}
		return "Form Field"
	case docai.CategoryEntities:
		if entityType := detailString(box, "entityType"); entityType != "" {
			return entityType
		}
		return "Entity"
	case docai.CategoryCheckboxes:
		state := detailString(box, "state")
		if state == "" {
			state = "unknown"
		}
		return "CB: " + state
	default:
		return DisplayName(category)
	}
}

func detailString(box docai.Box, key string) string {
	if s, ok := box.Details[key].(string); ok {
		return s
	}
	return ""
}

func detailInt(box docai.Box, key string) int {
	switch v := box.Details[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
