// Package physics wraps a rigid-body engine behind the few operations the
// game needs and keeps the mapping from engine bodies to game entities.
package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// BodyID identifies a body inside an Engine. Zero is never issued.
type BodyID uint64

// ShapeKind selects the collision shape of a body.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeCapsule
)

// Shape describes body geometry.
type Shape struct {
	Kind        ShapeKind
	HalfExtents mgl64.Vec3 // Box only
	Radius      float64    // Capsule only
	Height      float64    // Capsule only, total height including the caps
}

// Box returns a box shape with the given full size.
func Box(size mgl64.Vec3) Shape {
	return Shape{Kind: ShapeBox, HalfExtents: size.Mul(0.5)}
}

// Capsule returns an upright capsule shape.
func Capsule(radius, height float64) Shape {
	return Shape{Kind: ShapeCapsule, Radius: radius, Height: height}
}

// Bounds returns the half extents of the shape's axis-aligned box.
func (s Shape) Bounds() mgl64.Vec3 {
	if s.Kind == ShapeCapsule {
		return mgl64.Vec3{s.Radius, s.Height / 2, s.Radius}
	}
	return s.HalfExtents
}

// BodyDesc is a body creation request.
type BodyDesc struct {
	Shape        Shape
	Mass         float64 // Zero makes the body static
	Position     mgl64.Vec3
	Friction     float64
	LockRotation bool // Zero angular factor, characters stay upright
	NeverSleep   bool // Disable deactivation
}

// RayHit is the closest intersection reported by an Engine.
type RayHit struct {
	Body   BodyID
	Point  mgl64.Vec3
	Normal mgl64.Vec3
}

//go:generate go tool mockgen -destination=mocks/engine_mock.go -package=mocks chosenoffset.com/blockout/internal/physics Engine

// Engine is the rigid-body solver the World drives.
type Engine interface {
	AddBody(desc BodyDesc) BodyID
	RemoveBody(id BodyID)

	// Step advances the simulation by dt using at most maxSubSteps sub-steps.
	// Impulses applied since the previous Step take effect here.
	Step(dt float64, maxSubSteps int)

	// RayTest returns the closest body hit on the segment from→to.
	RayTest(from, to mgl64.Vec3) (RayHit, bool)

	LinearVelocity(id BodyID) mgl64.Vec3
	SetLinearVelocity(id BodyID, v mgl64.Vec3)
	ApplyCentralImpulse(id BodyID, impulse mgl64.Vec3)
	Position(id BodyID) mgl64.Vec3
	SetPosition(id BodyID, p mgl64.Vec3)
	ClearForces(id BodyID)

	// SetContactResponse toggles whether the body pushes other bodies and
	// is seen by ray tests.
	SetContactResponse(id BodyID, enabled bool)
}
