package render

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Projection selects how a Camera maps view space to the screen.
type Projection int

const (
	Perspective Projection = iota
	Orthographic
)

const (
	nearPlane = 0.05
	farPlane  = 2000.0
)

// Camera describes the viewpoint of one frame.
type Camera struct {
	Position   mgl64.Vec3
	Target     mgl64.Vec3
	Up         mgl64.Vec3
	FovY       float64 // Degrees; visible height in world units when Orthographic
	Projection Projection
}

// Forward returns the unit view direction, or -Z when position and target coincide.
func (c Camera) Forward() mgl64.Vec3 {
	dir := c.Target.Sub(c.Position)
	if dir.LenSqr() == 0 {
		return mgl64.Vec3{0, 0, -1}
	}
	return dir.Normalize()
}

// ViewMatrix returns the world-to-view transform.
func (c Camera) ViewMatrix() mgl64.Mat4 {
	up := c.Up
	if up.LenSqr() == 0 {
		up = mgl64.Vec3{0, 1, 0}
	}
	return mgl64.LookAtV(c.Position, c.Target, up)
}

// ProjectionMatrix returns the view-to-clip transform for the given aspect ratio.
func (c Camera) ProjectionMatrix(aspect float64) mgl64.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	if c.Projection == Orthographic {
		half := c.FovY / 2
		return mgl64.Ortho(-half*aspect, half*aspect, -half, half, nearPlane, farPlane)
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, nearPlane, farPlane)
}

// WorldToScreen projects p to pixel coordinates on a width×height target.
// ok is false when p lies behind the camera.
func (c Camera) WorldToScreen(p mgl64.Vec3, width, height int) (x, y float64, ok bool) {
	if width <= 0 || height <= 0 {
		return 0, 0, false
	}
	aspect := float64(width) / float64(height)
	viewPos := c.ViewMatrix().Mul4x1(p.Vec4(1)).Vec3()
	if c.Projection == Perspective && -viewPos.Z() < nearPlane {
		return 0, 0, false
	}
	sx, sy := projectView(c.ProjectionMatrix(aspect), viewPos, width, height)
	return sx, sy, true
}

// projectView maps a view-space point in front of the near plane to pixels.
func projectView(proj mgl64.Mat4, v mgl64.Vec3, width, height int) (float64, float64) {
	clip := proj.Mul4x1(v.Vec4(1))
	w := clip.W()
	if w == 0 {
		w = 1
	}
	ndcX := clip.X() / w
	ndcY := clip.Y() / w
	return (ndcX + 1) / 2 * float64(width), (1 - ndcY) / 2 * float64(height)
}
