// Package aabb is a small rigid-body solver built on axis-aligned boxes.
// Bodies never rotate, which matches characters with locked angular motion
// and axis-aligned level geometry.
package aabb

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis-aligned bounding box.
type Box struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// FromCenter builds a box from its centre and half extents.
func FromCenter(center, half mgl64.Vec3) Box {
	return Box{Min: center.Sub(half), Max: center.Add(half)}
}

// Overlaps reports whether the boxes intersect with positive volume.
func (b Box) Overlaps(o Box) bool {
	for i := 0; i < 3; i++ {
		if b.Max[i] <= o.Min[i] || o.Max[i] <= b.Min[i] {
			return false
		}
	}
	return true
}

// Contains reports whether p lies strictly inside the box.
func (b Box) Contains(p mgl64.Vec3) bool {
	for i := 0; i < 3; i++ {
		if p[i] <= b.Min[i] || p[i] >= b.Max[i] {
			return false
		}
	}
	return true
}

// Resolve returns the smallest translation that moves b out of o, or a
// zero vector when they do not overlap.
func (b Box) Resolve(o Box) mgl64.Vec3 {
	if !b.Overlaps(o) {
		return mgl64.Vec3{}
	}

	best := math.Inf(1)
	var push mgl64.Vec3
	for i := 0; i < 3; i++ {
		// Push toward the positive side
		if d := o.Max[i] - b.Min[i]; d < best {
			best = d
			push = mgl64.Vec3{}
			push[i] = d
		}
		// Push toward the negative side
		if d := b.Max[i] - o.Min[i]; d < best {
			best = d
			push = mgl64.Vec3{}
			push[i] = -d
		}
	}
	return push
}

// Ray intersects the segment from→to with the box using the slab method.
// t is the entry parameter in [0, 1] and normal is the face entered through.
// Segments starting inside the box do not hit it.
func (b Box) Ray(from, to mgl64.Vec3) (t float64, normal mgl64.Vec3, ok bool) {
	dir := to.Sub(from)
	tMin, tMax := 0.0, 1.0
	axis, sign := -1, 0.0

	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < 1e-12 {
			if from[i] < b.Min[i] || from[i] > b.Max[i] {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		inv := 1 / dir[i]
		t1 := (b.Min[i] - from[i]) * inv
		t2 := (b.Max[i] - from[i]) * inv
		s := -1.0
		if t1 > t2 {
			t1, t2 = t2, t1
			s = 1.0
		}
		if t1 > tMin {
			tMin = t1
			axis, sign = i, s
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, mgl64.Vec3{}, false
		}
	}

	if axis < 0 {
		// Origin already inside the slabs
		return 0, mgl64.Vec3{}, false
	}
	normal[axis] = sign
	return tMin, normal, true
}
