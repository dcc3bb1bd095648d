package docai

import (
	"encoding/json"
	"math"
	"testing"
)

func TestExtractPolygonVertexDefaulting(t *testing.T) {
	// Vertices that omit x or y decode with 0.0 for each missing
	// component independently.
	raw := `{"normalizedVertices":[{"x":0.1},{"y":0.9},{"x":0.5,"y":0.5},{}]}`
	var poly BoundingPoly
	if err := json.Unmarshal([]byte(raw), &poly); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	polygon := extractPolygon(&poly)
	expected := Polygon{
		{X: 0.1, Y: 0.0},
		{X: 0.0, Y: 0.9},
		{X: 0.5, Y: 0.5},
		{X: 0.0, Y: 0.0},
	}
	if len(polygon) != len(expected) {
		t.Fatalf("got %d vertices, want %d", len(polygon), len(expected))
	}
	for i := range expected {
		if polygon[i] != expected[i] {
			t.Errorf("vertex %d = %+v, want %+v", i, polygon[i], expected[i])
		}
	}
}

func TestExtractPolygonAbsent(t *testing.T) {
	if got := extractPolygon(nil); len(got) != 0 {
		t.Errorf("extractPolygon(nil) = %v, want empty", got)
	}
	if got := layoutPolygon(nil); len(got) != 0 {
		t.Errorf("layoutPolygon(nil) = %v, want empty", got)
	}
}

func TestPolygonRenderable(t *testing.T) {
	tests := []struct {
		name     string
		polygon  Polygon
		expected bool
	}{
		{"empty", Polygon{}, false},
		{"two vertices", Polygon{{X: 0, Y: 0}, {X: 1, Y: 1}}, false},
		{"three vertices", Polygon{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}, true},
		{"quadrilateral", Polygon{{}, {}, {}, {}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.polygon.Renderable(); got != tt.expected {
				t.Errorf("Renderable() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRotateQuarter(t *testing.T) {
	original := Polygon{
		{X: 0.1, Y: 0.2},
		{X: 0.5, Y: 0.2},
		{X: 0.5, Y: 0.4},
		{X: 0.1, Y: 0.4},
	}

	rotated := RotateQuarter(original)
	expected := Polygon{
		{X: 0.8, Y: 0.1},
		{X: 0.8, Y: 0.5},
		{X: 0.6, Y: 0.5},
		{X: 0.6, Y: 0.1},
	}
	for i := range expected {
		if math.Abs(rotated[i].X-expected[i].X) > 1e-9 || math.Abs(rotated[i].Y-expected[i].Y) > 1e-9 {
			t.Errorf("vertex %d = %+v, want %+v", i, rotated[i], expected[i])
		}
	}

	// Applying the transform twice yields a 180 degree rotation, never the
	// original; it must therefore run at most once per page per render.
	twice := RotateQuarter(rotated)
	for i := range original {
		want := Vertex{X: 1 - original[i].X, Y: 1 - original[i].Y}
		if math.Abs(twice[i].X-want.X) > 1e-9 || math.Abs(twice[i].Y-want.Y) > 1e-9 {
			t.Errorf("double rotation vertex %d = %+v, want %+v", i, twice[i], want)
		}
		if twice[i] == original[i] && original[i] != (Vertex{X: 0.5, Y: 0.5}) {
			t.Errorf("double rotation returned original vertex %d", i)
		}
	}

	// The original is never mutated.
	if original[0] != (Vertex{X: 0.1, Y: 0.2}) {
		t.Errorf("RotateQuarter mutated its input: %+v", original[0])
	}
}

func TestAspectMismatch(t *testing.T) {
	tests := []struct {
		name                 string
		apiW, apiH           float64
		imgW, imgH           float64
		expected             bool
	}{
		{"both portrait", 612, 792, 1275, 1650, false},
		{"both landscape", 792, 612, 1650, 1275, false},
		{"api portrait image landscape", 612, 792, 1650, 1275, true},
		{"api landscape image portrait", 792, 612, 1275, 1650, true},
		{"zero api dims", 0, 0, 1275, 1650, false},
		{"zero image dims", 612, 792, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AspectMismatch(tt.apiW, tt.apiH, tt.imgW, tt.imgH)
			if got != tt.expected {
				t.Errorf("AspectMismatch(%v, %v, %v, %v) = %v, want %v",
					tt.apiW, tt.apiH, tt.imgW, tt.imgH, got, tt.expected)
			}
		})
	}
}

// A near-square page can flip orientation class with a tiny dimension
// change; the heuristic has no guard for this by design, since the response
// carries no explicit rotation flag. This documents the edge rather than
// asserting a single correct answer.
func TestAspectMismatchNearSquare(t *testing.T) {
	mismatchA := AspectMismatch(1000, 1001, 1001, 1000)
	mismatchB := AspectMismatch(1000, 1001, 1000, 1001)
	if mismatchA == mismatchB {
		t.Errorf("near-square classification should differ across the flip: %v vs %v", mismatchA, mismatchB)
	}
}
