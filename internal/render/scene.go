package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
)

// PrimitiveKind identifies a world-space draw primitive.
type PrimitiveKind int

const (
	PrimBox PrimitiveKind = iota
	PrimBoxWires
	PrimLine
	PrimSphere
	PrimCylinder
)

// Primitive is one world-space draw command.
type Primitive struct {
	Kind   PrimitiveKind
	Model  mgl64.Mat4 // Box and BoxWires: transform of the box centre
	Size   mgl64.Vec3 // Box and BoxWires: full extents
	From   mgl64.Vec3 // Line start, Sphere centre, Cylinder base centre
	To     mgl64.Vec3 // Line end
	Radius float64
	Height float64
	Color  color.RGBA
}

// DrawList is the ordered sequence of primitives for one frame.
type DrawList struct {
	Items []Primitive
}

// Reset empties the list while keeping its storage.
func (d *DrawList) Reset() {
	d.Items = d.Items[:0]
}

// Box adds a solid box of the given size centred at model's origin.
func (d *DrawList) Box(model mgl64.Mat4, size mgl64.Vec3, clr color.RGBA) {
	d.Items = append(d.Items, Primitive{Kind: PrimBox, Model: model, Size: size, Color: clr})
}

// BoxAt adds an axis-aligned solid box centred at pos.
func (d *DrawList) BoxAt(pos, size mgl64.Vec3, clr color.RGBA) {
	d.Box(mgl64.Translate3D(pos.X(), pos.Y(), pos.Z()), size, clr)
}

// BoxWires adds the twelve edges of a box.
func (d *DrawList) BoxWires(model mgl64.Mat4, size mgl64.Vec3, clr color.RGBA) {
	d.Items = append(d.Items, Primitive{Kind: PrimBoxWires, Model: model, Size: size, Color: clr})
}

// Line adds a segment between two world points.
func (d *DrawList) Line(from, to mgl64.Vec3, clr color.RGBA) {
	d.Items = append(d.Items, Primitive{Kind: PrimLine, From: from, To: to, Color: clr})
}

// Sphere adds a sphere.
func (d *DrawList) Sphere(center mgl64.Vec3, radius float64, clr color.RGBA) {
	d.Items = append(d.Items, Primitive{Kind: PrimSphere, From: center, Radius: radius, Color: clr})
}

// Cylinder adds an upright cylinder standing on base.
func (d *DrawList) Cylinder(base mgl64.Vec3, radius, height float64, clr color.RGBA) {
	d.Items = append(d.Items, Primitive{Kind: PrimCylinder, From: base, Radius: radius, Height: height, Color: clr})
}

// Count returns how many primitives of kind the list holds.
func (d *DrawList) Count(kind PrimitiveKind) int {
	n := 0
	for _, p := range d.Items {
		if p.Kind == kind {
			n++
		}
	}
	return n
}
