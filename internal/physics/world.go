package physics

import (
	"log/slog"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// Tag classifies a body for hit dispatch.
type Tag int

const (
	TagStatic Tag = -1
	TagPlayer Tag = 1
	TagEnemy  Tag = 2
)

// String returns the tag name used in logs.
func (t Tag) String() string {
	switch t {
	case TagStatic:
		return "static"
	case TagPlayer:
		return "player"
	case TagEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// Hit is a raycast result resolved to its owning entity.
type Hit struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
	Body   BodyID
	Tag    Tag
	Owner  donburi.Entity
}

type bodyEntry struct {
	tag   Tag
	owner donburi.Entity
}

// World is the game's view of the physics engine. Every body added through
// it is recorded in a side table so hits map back to entities without the
// engine holding references into game state.
type World struct {
	engine Engine
	bodies map[BodyID]bodyEntry
	logger *slog.Logger
}

// NewWorld creates a World driving engine.
func NewWorld(engine Engine, logger *slog.Logger) *World {
	if logger == nil {
		logger = slog.Default()
	}
	return &World{
		engine: engine,
		bodies: make(map[BodyID]bodyEntry),
		logger: logger,
	}
}

// AddBody creates a body owned by owner.
func (w *World) AddBody(desc BodyDesc, tag Tag, owner donburi.Entity) BodyID {
	id := w.engine.AddBody(desc)
	w.bodies[id] = bodyEntry{tag: tag, owner: owner}
	return id
}

// RemoveBody unregisters a body from the engine. It reports false, and
// does nothing, when the body is unknown or already removed.
func (w *World) RemoveBody(id BodyID) bool {
	if _, ok := w.bodies[id]; !ok {
		return false
	}
	w.engine.RemoveBody(id)
	delete(w.bodies, id)
	return true
}

// Contains reports whether id is a live body.
func (w *World) Contains(id BodyID) bool {
	_, ok := w.bodies[id]
	return ok
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	return len(w.bodies)
}

// Owner returns the entity and tag registered for id.
func (w *World) Owner(id BodyID) (donburi.Entity, Tag, bool) {
	e, ok := w.bodies[id]
	if !ok {
		return donburi.Null, 0, false
	}
	return e.owner, e.tag, true
}

// Step advances the simulation.
func (w *World) Step(dt float64, subSteps int) {
	w.engine.Step(dt, subSteps)
}

// Raycast returns the closest hit on the segment from→to. A miss is a
// normal outcome.
func (w *World) Raycast(from, to mgl64.Vec3) (Hit, bool) {
	rh, ok := w.engine.RayTest(from, to)
	if !ok {
		return Hit{}, false
	}
	hit := Hit{Point: rh.Point, Normal: rh.Normal, Body: rh.Body, Tag: TagStatic, Owner: donburi.Null}
	if e, known := w.bodies[rh.Body]; known {
		hit.Tag = e.tag
		hit.Owner = e.owner
	}
	return hit, true
}

// Velocity returns the linear velocity of a live body.
func (w *World) Velocity(id BodyID) mgl64.Vec3 {
	if !w.Contains(id) {
		return mgl64.Vec3{}
	}
	return w.engine.LinearVelocity(id)
}

// SetVelocity replaces the linear velocity of a live body.
func (w *World) SetVelocity(id BodyID, v mgl64.Vec3) {
	if w.Contains(id) {
		w.engine.SetLinearVelocity(id, v)
	}
}

// SetHorizontalVelocity replaces the X and Z velocity, keeping the vertical component.
func (w *World) SetHorizontalVelocity(id BodyID, x, z float64) {
	if !w.Contains(id) {
		return
	}
	v := w.engine.LinearVelocity(id)
	w.engine.SetLinearVelocity(id, mgl64.Vec3{x, v.Y(), z})
}

// ApplyImpulse queues a central impulse for the next Step.
func (w *World) ApplyImpulse(id BodyID, impulse mgl64.Vec3) {
	if w.Contains(id) {
		w.engine.ApplyCentralImpulse(id, impulse)
	}
}

// Position returns the world position of a live body.
func (w *World) Position(id BodyID) mgl64.Vec3 {
	if !w.Contains(id) {
		return mgl64.Vec3{}
	}
	return w.engine.Position(id)
}

// Teleport moves a body to p and drops all motion.
func (w *World) Teleport(id BodyID, p mgl64.Vec3) {
	if !w.Contains(id) {
		return
	}
	w.engine.SetPosition(id, p)
	w.engine.ClearForces(id)
	w.engine.SetLinearVelocity(id, mgl64.Vec3{})
}

// DisableContactResponse turns a body into a ghost: it stays in the world
// but no longer pushes dynamic bodies or blocks rays.
func (w *World) DisableContactResponse(id BodyID) {
	if w.Contains(id) {
		w.engine.SetContactResponse(id, false)
	}
}

// Close removes every remaining body from the engine.
func (w *World) Close() {
	if len(w.bodies) == 0 {
		return
	}
	ids := make([]BodyID, 0, len(w.bodies))
	for id := range w.bodies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		w.engine.RemoveBody(id)
		delete(w.bodies, id)
	}
	w.logger.Info("physics world closed", "removed", len(ids))
}
