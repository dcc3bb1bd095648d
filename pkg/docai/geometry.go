package docai

// Polygon is an ordered sequence of normalized vertices. Coordinates live in
// the unit square and are scaled by the raster's pixel dimensions at render
// time. Polygons with fewer than 3 vertices cannot be rendered and are
// filtered out of the unified box set.
type Polygon []Vertex

// Renderable reports whether the polygon has enough vertices to draw.
func (p Polygon) Renderable() bool {
	return len(p) >= 3
}

// Clone returns an independent copy of the polygon.
func (p Polygon) Clone() Polygon {
	if p == nil {
		return nil
	}
	out := make(Polygon, len(p))
	copy(out, p)
	return out
}

// extractPolygon reads the normalized vertices of a bounding poly. Missing x
// or y components default to 0.0 independently (the wire type decodes absent
// fields as zero). A nil poly yields an empty polygon; callers check
// Renderable before drawing.
func extractPolygon(poly *BoundingPoly) Polygon {
	if poly == nil {
		return nil
	}
	vertices := make(Polygon, 0, len(poly.NormalizedVertices))
	vertices = append(vertices, poly.NormalizedVertices...)
	return vertices
}

func layoutPolygon(layout *Layout) Polygon {
	if layout == nil {
		return nil
	}
	return extractPolygon(layout.BoundingPoly)
}

// RotateQuarter applies the rotation correction (x, y) -> (1-y, x) to every
// vertex, producing a new polygon. It corrects a 90 degree disagreement
// between the API-reported page orientation and the rasterized image.
// Applying it twice yields a 180 degree rotation, never the original, so it
// must run at most once per page per render.
func RotateQuarter(p Polygon) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = Vertex{X: 1 - v.Y, Y: v.X}
	}
	return out
}

// AspectMismatch reports whether the API page dimensions and the rendered
// raster disagree on orientation: one portrait, the other landscape. The
// check is purely aspect-ratio-class based; a near-square page can trigger
// it incorrectly. The response carries no explicit rotation flag to consult.
func AspectMismatch(apiWidth, apiHeight, imageWidth, imageHeight float64) bool {
	if apiWidth <= 0 || apiHeight <= 0 || imageWidth <= 0 || imageHeight <= 0 {
		return false
	}
	apiPortrait := apiWidth < apiHeight
	imagePortrait := imageWidth < imageHeight
	return apiPortrait != imagePortrait
}
