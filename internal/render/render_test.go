package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func testCamera() Camera {
	return Camera{
		Position: mgl64.Vec3{0, 0, 10},
		Target:   mgl64.Vec3{0, 0, 0},
		Up:       mgl64.Vec3{0, 1, 0},
		FovY:     60,
	}
}

func TestWorldToScreenCentre(t *testing.T) {
	cam := testCamera()

	x, y, ok := cam.WorldToScreen(mgl64.Vec3{0, 0, 0}, 800, 600)
	if !ok {
		t.Fatal("Expected target to be in front of the camera")
	}
	if math.Abs(x-400) > 1e-6 || math.Abs(y-300) > 1e-6 {
		t.Errorf("Expected (400, 300), got (%v, %v)", x, y)
	}
}

func TestWorldToScreenAxes(t *testing.T) {
	cam := testCamera()

	x, _, _ := cam.WorldToScreen(mgl64.Vec3{1, 0, 0}, 800, 600)
	if x <= 400 {
		t.Errorf("Expected +X to project right of centre, got x=%v", x)
	}

	_, y, _ := cam.WorldToScreen(mgl64.Vec3{0, 1, 0}, 800, 600)
	if y >= 300 {
		t.Errorf("Expected +Y to project above centre, got y=%v", y)
	}
}

func TestWorldToScreenBehindCamera(t *testing.T) {
	cam := testCamera()

	if _, _, ok := cam.WorldToScreen(mgl64.Vec3{0, 0, 20}, 800, 600); ok {
		t.Error("Expected point behind the camera to be rejected")
	}
	if _, _, ok := cam.WorldToScreen(mgl64.Vec3{}, 0, 600); ok {
		t.Error("Expected empty target to be rejected")
	}
}

func TestCameraForward(t *testing.T) {
	cam := testCamera()
	if !cam.Forward().ApproxEqualThreshold(mgl64.Vec3{0, 0, -1}, 1e-9) {
		t.Errorf("Expected forward (0,0,-1), got %v", cam.Forward())
	}

	cam.Target = cam.Position
	if cam.Forward().Len() == 0 {
		t.Error("Expected a usable forward for a degenerate camera")
	}
}

func TestTessellateBoxCullsHiddenFaces(t *testing.T) {
	var list DrawList
	list.BoxAt(mgl64.Vec3{}, mgl64.Vec3{2, 2, 2}, Red)

	shapes := Tessellate(testCamera(), &list, 800, 600)
	if len(shapes) != 1 {
		t.Fatalf("Expected 1 visible face, got %d", len(shapes))
	}
	if len(shapes[0].Points) != 4 {
		t.Errorf("Expected a quad, got %d points", len(shapes[0].Points))
	}
	if shapes[0].IsSegment() {
		t.Error("Expected a polygon, got a segment")
	}
}

func TestTessellateWiresAndLines(t *testing.T) {
	var list DrawList
	list.BoxWires(mgl64.Ident4(), mgl64.Vec3{1, 1, 1}, Black)
	list.Line(mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{1, 0, 0}, Yellow)

	shapes := Tessellate(testCamera(), &list, 800, 600)
	if len(shapes) != 13 {
		t.Fatalf("Expected 13 segments, got %d", len(shapes))
	}
	for _, s := range shapes {
		if !s.IsSegment() {
			t.Errorf("Expected only segments, got %d points", len(s.Points))
		}
	}
}

func TestTessellateClipsLinesAtNearPlane(t *testing.T) {
	var list DrawList
	list.Line(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 20}, Yellow)
	list.Line(mgl64.Vec3{0, 0, 15}, mgl64.Vec3{0, 0, 20}, Yellow)

	shapes := Tessellate(testCamera(), &list, 800, 600)
	if len(shapes) != 1 {
		t.Fatalf("Expected only the crossing line to survive, got %d", len(shapes))
	}
}

func TestTessellateSortsFarToNear(t *testing.T) {
	var list DrawList
	list.BoxAt(mgl64.Vec3{0, -0.5, 0}, mgl64.Vec3{80, 1, 80}, Gray)
	list.BoxAt(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{2, 2, 2}, Orange)
	list.Sphere(mgl64.Vec3{3, 1, 3}, 0.5, Red)
	list.Cylinder(mgl64.Vec3{-3, 0, 3}, 0.5, 2, Purple)

	cam := Camera{
		Position: mgl64.Vec3{0, 20, 20},
		Target:   mgl64.Vec3{0, 0, 0},
		Up:       mgl64.Vec3{0, 1, 0},
		FovY:     60,
	}
	shapes := Tessellate(cam, &list, 800, 600)
	if len(shapes) < 100 {
		t.Fatalf("Expected the floor to be split into tiles, got %d shapes", len(shapes))
	}
	for i := 1; i < len(shapes); i++ {
		if shapes[i].Depth > shapes[i-1].Depth {
			t.Fatalf("Expected far-to-near order, shape %d depth %v after %v", i, shapes[i].Depth, shapes[i-1].Depth)
		}
	}
}

func TestShapeTriangles(t *testing.T) {
	quad := Shape{
		Points: []mgl64.Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}},
		Color:  color.RGBA{R: 255, G: 0, B: 51, A: 255},
	}

	vs, is := quad.Triangles(nil, nil)
	if len(vs) != 4 || len(is) != 6 {
		t.Fatalf("Expected 4 vertices and 6 indices, got %d and %d", len(vs), len(is))
	}
	if vs[2].DstX != 10 || vs[2].DstY != 10 {
		t.Errorf("Expected vertex at (10,10), got (%v,%v)", vs[2].DstX, vs[2].DstY)
	}
	if vs[0].ColorR != 1 || vs[0].ColorG != 0 || vs[0].ColorB != 0.2 || vs[0].ColorA != 1 {
		t.Errorf("Expected colour (1,0,0.2,1), got (%v,%v,%v,%v)", vs[0].ColorR, vs[0].ColorG, vs[0].ColorB, vs[0].ColorA)
	}

	// A second shape indexes past the first
	vs, is = quad.Triangles(vs, is)
	want := []uint16{4, 5, 6, 4, 6, 7}
	for i, idx := range is[6:] {
		if idx != want[i] {
			t.Errorf("Expected index %d to be %d, got %d", i+6, want[i], idx)
		}
	}

	segment := Shape{Points: []mgl64.Vec2{{0, 0}, {1, 1}}}
	if vs, is := segment.Triangles(nil, nil); len(vs) != 0 || len(is) != 0 {
		t.Errorf("Expected no triangles for a segment, got %d vertices", len(vs))
	}
}

func TestDrawListCountAndReset(t *testing.T) {
	var list DrawList
	list.BoxAt(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1}, Red)
	list.Sphere(mgl64.Vec3{}, 1, Red)
	list.Sphere(mgl64.Vec3{}, 1, Red)

	if got := list.Count(PrimSphere); got != 2 {
		t.Errorf("Expected 2 spheres, got %d", got)
	}

	list.Reset()
	if len(list.Items) != 0 {
		t.Errorf("Expected empty list after reset, got %d", len(list.Items))
	}
}

func TestFade(t *testing.T) {
	got := Fade(White, 0.5)
	if got.A != 127 || got.R != 127 {
		t.Errorf("Expected premultiplied half white, got %v", got)
	}
	if Fade(Red, 2) != Red {
		t.Errorf("Expected alpha above 1 to clamp, got %v", Fade(Red, 2))
	}
}
