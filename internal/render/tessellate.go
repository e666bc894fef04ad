package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// Faces longer than this are split so painter sorting stays stable for
	// the floor and the boundary walls.
	tileSize     = 4.0
	maxTiles     = 24
	sphereRings  = 6
	sphereSlices = 8
	cylSlices    = 10
)

var lightDir = mgl64.Vec3{0.4, 1.0, 0.3}.Normalize()

// Shape is a projected screen-space polygon (3+ points) or segment (2 points).
type Shape struct {
	Points []mgl64.Vec2
	Depth  float64 // Mean view distance, larger is farther
	Color  color.RGBA
}

// IsSegment reports whether the shape is a line segment.
func (s Shape) IsSegment() bool {
	return len(s.Points) == 2
}

// Triangles fans a polygon into solid-colour triangles sampled from the
// centre of a 1x1 source pixel, appending to vertices and indices. Segments
// produce nothing.
func (s Shape) Triangles(vertices []Vertex, indices []uint16) ([]Vertex, []uint16) {
	if len(s.Points) < 3 {
		return vertices, indices
	}
	cr := float32(s.Color.R) / 255
	cg := float32(s.Color.G) / 255
	cb := float32(s.Color.B) / 255
	ca := float32(s.Color.A) / 255

	base := uint16(len(vertices))
	for _, p := range s.Points {
		vertices = append(vertices, Vertex{
			DstX:   float32(p.X()),
			DstY:   float32(p.Y()),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	for i := 1; i+1 < len(s.Points); i++ {
		indices = append(indices, base, base+uint16(i), base+uint16(i+1))
	}
	return vertices, indices
}

// Tessellate converts a draw list into flat-shaded screen-space shapes
// ordered far to near, ready for painter's-algorithm filling.
func Tessellate(cam Camera, scene *DrawList, width, height int) []Shape {
	if scene == nil || width <= 0 || height <= 0 {
		return nil
	}

	t := tessellator{
		cam:    cam,
		view:   cam.ViewMatrix(),
		proj:   cam.ProjectionMatrix(float64(width) / float64(height)),
		width:  width,
		height: height,
	}

	for _, p := range scene.Items {
		switch p.Kind {
		case PrimBox:
			t.box(p.Model, p.Size, p.Color)
		case PrimBoxWires:
			t.boxWires(p.Model, p.Size, p.Color)
		case PrimLine:
			t.line(p.From, p.To, p.Color)
		case PrimSphere:
			t.sphere(p.From, p.Radius, p.Color)
		case PrimCylinder:
			t.cylinder(p.From, p.Radius, p.Height, p.Color)
		}
	}

	sort.SliceStable(t.shapes, func(i, j int) bool {
		return t.shapes[i].Depth > t.shapes[j].Depth
	})
	return t.shapes
}

type tessellator struct {
	cam    Camera
	view   mgl64.Mat4
	proj   mgl64.Mat4
	width  int
	height int
	shapes []Shape
}

// boxCorners returns the eight corners of a size box under model.
func boxCorners(model mgl64.Mat4, size mgl64.Vec3) [8]mgl64.Vec3 {
	var out [8]mgl64.Vec3
	h := size.Mul(0.5)
	for i := 0; i < 8; i++ {
		local := mgl64.Vec3{h.X(), h.Y(), h.Z()}
		if i&1 == 0 {
			local[0] = -local[0]
		}
		if i&2 == 0 {
			local[1] = -local[1]
		}
		if i&4 == 0 {
			local[2] = -local[2]
		}
		out[i] = mgl64.TransformCoordinate(local, model)
	}
	return out
}

// Corner indices per face, walked around the quad.
var boxFaces = [6][4]int{
	{0, 2, 6, 4}, // -X
	{1, 5, 7, 3}, // +X
	{0, 4, 5, 1}, // -Y
	{2, 3, 7, 6}, // +Y
	{0, 1, 3, 2}, // -Z
	{4, 6, 7, 5}, // +Z
}

var boxEdges = [12][2]int{
	{0, 1}, {2, 3}, {4, 5}, {6, 7},
	{0, 2}, {1, 3}, {4, 6}, {5, 7},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func (t *tessellator) box(model mgl64.Mat4, size mgl64.Vec3, clr color.RGBA) {
	c := boxCorners(model, size)
	center := mgl64.TransformCoordinate(mgl64.Vec3{}, model)
	for _, f := range boxFaces {
		t.quad(c[f[0]], c[f[1]], c[f[2]], c[f[3]], center, clr)
	}
}

func (t *tessellator) boxWires(model mgl64.Mat4, size mgl64.Vec3, clr color.RGBA) {
	c := boxCorners(model, size)
	for _, e := range boxEdges {
		t.line(c[e[0]], c[e[1]], clr)
	}
}

// quad emits a possibly subdivided quad whose outward side faces away from inside.
func (t *tessellator) quad(q0, q1, q2, q3, inside mgl64.Vec3, clr color.RGBA) {
	nu := tiles(q1.Sub(q0).Len())
	nv := tiles(q3.Sub(q0).Len())
	if nu == 1 && nv == 1 {
		t.polygon([]mgl64.Vec3{q0, q1, q2, q3}, inside, clr)
		return
	}

	at := func(u, v float64) mgl64.Vec3 {
		a := q0.Add(q1.Sub(q0).Mul(u))
		b := q3.Add(q2.Sub(q3).Mul(u))
		return a.Add(b.Sub(a).Mul(v))
	}
	for i := 0; i < nu; i++ {
		u0, u1 := float64(i)/float64(nu), float64(i+1)/float64(nu)
		for j := 0; j < nv; j++ {
			v0, v1 := float64(j)/float64(nv), float64(j+1)/float64(nv)
			t.polygon([]mgl64.Vec3{at(u0, v0), at(u1, v0), at(u1, v1), at(u0, v1)}, inside, clr)
		}
	}
}

func tiles(length float64) int {
	n := int(math.Ceil(length / tileSize))
	if n < 1 {
		return 1
	}
	if n > maxTiles {
		return maxTiles
	}
	return n
}

func (t *tessellator) sphere(center mgl64.Vec3, radius float64, clr color.RGBA) {
	if radius <= 0 {
		return
	}
	point := func(ring, slice int) mgl64.Vec3 {
		theta := math.Pi * float64(ring) / sphereRings
		phi := 2 * math.Pi * float64(slice) / sphereSlices
		return center.Add(mgl64.Vec3{
			math.Sin(theta) * math.Cos(phi),
			math.Cos(theta),
			math.Sin(theta) * math.Sin(phi),
		}.Mul(radius))
	}
	for i := 0; i < sphereRings; i++ {
		for j := 0; j < sphereSlices; j++ {
			t.polygon([]mgl64.Vec3{point(i, j), point(i+1, j), point(i+1, j+1), point(i, j+1)}, center, clr)
		}
	}
}

func (t *tessellator) cylinder(base mgl64.Vec3, radius, height float64, clr color.RGBA) {
	if radius <= 0 || height <= 0 {
		return
	}
	up := mgl64.Vec3{0, height, 0}
	mid := base.Add(up.Mul(0.5))
	bottom := make([]mgl64.Vec3, cylSlices)
	top := make([]mgl64.Vec3, cylSlices)
	for i := 0; i < cylSlices; i++ {
		a := 2 * math.Pi * float64(i) / cylSlices
		bottom[i] = base.Add(mgl64.Vec3{math.Cos(a) * radius, 0, math.Sin(a) * radius})
		top[i] = bottom[i].Add(up)
	}
	for i := 0; i < cylSlices; i++ {
		n := (i + 1) % cylSlices
		t.polygon([]mgl64.Vec3{bottom[i], bottom[n], top[n], top[i]}, mid, clr)
	}
	t.polygon(bottom, mid, clr)
	t.polygon(top, mid, clr)
}

// newellNormal returns the polygon normal, robust to repeated vertices.
func newellNormal(pts []mgl64.Vec3) mgl64.Vec3 {
	var n mgl64.Vec3
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		n[0] += (a.Y() - b.Y()) * (a.Z() + b.Z())
		n[1] += (a.Z() - b.Z()) * (a.X() + b.X())
		n[2] += (a.X() - b.X()) * (a.Y() + b.Y())
	}
	return n
}

func centroid(pts []mgl64.Vec3) mgl64.Vec3 {
	var c mgl64.Vec3
	for _, p := range pts {
		c = c.Add(p)
	}
	return c.Mul(1 / float64(len(pts)))
}

func (t *tessellator) polygon(world []mgl64.Vec3, inside mgl64.Vec3, clr color.RGBA) {
	n := newellNormal(world)
	if n.LenSqr() == 0 {
		return
	}
	n = n.Normalize()
	mid := centroid(world)
	if n.Dot(mid.Sub(inside)) < 0 {
		n = n.Mul(-1)
	}

	// Back-face culling
	var toFace mgl64.Vec3
	if t.cam.Projection == Orthographic {
		toFace = t.cam.Forward()
	} else {
		toFace = mid.Sub(t.cam.Position)
	}
	if n.Dot(toFace) >= 0 {
		return
	}

	viewPts := make([]mgl64.Vec3, len(world))
	for i, p := range world {
		viewPts[i] = t.view.Mul4x1(p.Vec4(1)).Vec3()
	}
	viewPts = clipNear(viewPts)
	if len(viewPts) < 3 {
		return
	}

	t.emit(viewPts, shade(clr, n))
}

func (t *tessellator) line(a, b mgl64.Vec3, clr color.RGBA) {
	va := t.view.Mul4x1(a.Vec4(1)).Vec3()
	vb := t.view.Mul4x1(b.Vec4(1)).Vec3()
	inA, inB := -va.Z() >= nearPlane, -vb.Z() >= nearPlane
	switch {
	case !inA && !inB:
		return
	case !inA:
		va = intersectNear(vb, va)
	case !inB:
		vb = intersectNear(va, vb)
	}
	t.emit([]mgl64.Vec3{va, vb}, clr)
}

func (t *tessellator) emit(viewPts []mgl64.Vec3, clr color.RGBA) {
	shape := Shape{Points: make([]mgl64.Vec2, len(viewPts)), Color: clr}
	depth := 0.0
	for i, v := range viewPts {
		x, y := projectView(t.proj, v, t.width, t.height)
		shape.Points[i] = mgl64.Vec2{x, y}
		depth += -v.Z()
	}
	shape.Depth = depth / float64(len(viewPts))
	t.shapes = append(t.shapes, shape)
}

// clipNear clips a view-space polygon against the near plane (Sutherland-Hodgman).
func clipNear(pts []mgl64.Vec3) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, 0, len(pts)+2)
	for i := range pts {
		cur, next := pts[i], pts[(i+1)%len(pts)]
		curIn, nextIn := -cur.Z() >= nearPlane, -next.Z() >= nearPlane
		if curIn {
			out = append(out, cur)
		}
		if curIn != nextIn {
			if curIn {
				out = append(out, intersectNear(cur, next))
			} else {
				out = append(out, intersectNear(next, cur))
			}
		}
	}
	return out
}

// intersectNear returns the point on segment in→out lying on the near plane.
func intersectNear(in, out mgl64.Vec3) mgl64.Vec3 {
	dz := out.Z() - in.Z()
	if dz == 0 {
		return in
	}
	s := (-nearPlane - in.Z()) / dz
	return in.Add(out.Sub(in).Mul(s))
}

// shade applies a fixed directional light to a premultiplied color.
func shade(c color.RGBA, normal mgl64.Vec3) color.RGBA {
	k := 0.55 + 0.45*math.Max(0, normal.Dot(lightDir))
	return color.RGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: c.A,
	}
}
