package overlay

import (
	"fmt"
	"html"
	"strings"

	"github.com/docai-showcase/docai/pkg/docai"
)

// drawOrder puts large background regions first so small boxes stay
// clickable on top.
var drawOrder = []string{
	docai.CategoryParagraphs,
	docai.CategoryTables,
	docai.CategoryFormFields,
	docai.CategoryEntities,
	docai.CategoryCheckboxes,
	docai.CategoryText,
}

// RenderHTML produces a self-contained HTML fragment: the page image with
// absolutely positioned, hoverable box outlines. Boxes must already be in
// display coordinates (see DisplayBoxes).
func RenderHTML(imageDataURI string, boxes map[string][]docai.Box, imageWidth, imageHeight int, zoom float64) string {
	if zoom <= 0 {
		zoom = 1.0
	}
	scaledWidth := int(float64(imageWidth) * zoom)
	scaledHeight := int(float64(imageHeight) * zoom)

	styles := Styles()
	var divs []string
	for _, category := range drawOrder {
		style := styles[category]
		for _, box := range boxes[category] {
			rect, ok := boundingRect(box.Polygon)
			if !ok {
				continue
			}
			divs = append(divs, fmt.Sprintf(
				`<div class="box" title="%s (%.0f%%)" style="left:%dpx;top:%dpx;width:%dpx;height:%dpx;border:%dpx solid %s;"></div>`,
				html.EscapeString(Label(box, category)),
				box.Confidence*100,
				int(rect.minX*float64(scaledWidth)),
				int(rect.minY*float64(scaledHeight)),
				int((rect.maxX-rect.minX)*float64(scaledWidth)),
				int((rect.maxY-rect.minY)*float64(scaledHeight)),
				style.Width,
				style.Color,
			))
		}
	}

	return fmt.Sprintf(`<div class="page" style="position:relative;width:%dpx;height:%dpx;">
<img src="%s" width="%d" height="%d" alt="document page" />
%s
</div>`, scaledWidth, scaledHeight, imageDataURI, scaledWidth, scaledHeight, strings.Join(divs, "\n"))
}

// LegendHTML lists the element categories with their colors.
func LegendHTML() string {
	styles := Styles()

	var items []string
	for _, category := range docai.Categories() {
		items = append(items, fmt.Sprintf(
			`<div class="legend-item"><span class="swatch" style="background:%s"></span>%s</div>`,
			styles[category].Color,
			html.EscapeString(DisplayName(category)),
		))
	}
	return `<div class="legend">` + strings.Join(items, "") + `</div>`
}

type rect struct {
	minX, minY, maxX, maxY float64
}

func boundingRect(p docai.Polygon) (rect, bool) {
	if !p.Renderable() {
		return rect{}, false
	}
	r := rect{minX: p[0].X, minY: p[0].Y, maxX: p[0].X, maxY: p[0].Y}
	for _, v := range p[1:] {
		if v.X < r.minX {
			r.minX = v.X
		}
		if v.X > r.maxX {
			r.maxX = v.X
		}
		if v.Y < r.minY {
			r.minY = v.Y
		}
		if v.Y > r.maxY {
			r.maxY = v.Y
		}
	}
	return r, true
}
