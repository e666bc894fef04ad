package aabb

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/blockout/internal/physics"
)

const minSeparation = 1e-4

type body struct {
	id       physics.BodyID
	half     mgl64.Vec3
	pos      mgl64.Vec3
	vel      mgl64.Vec3
	impulse  mgl64.Vec3
	invMass  float64
	friction float64
	response bool
}

func (b *body) static() bool {
	return b.invMass == 0
}

func (b *body) bounds() Box {
	return FromCenter(b.pos, b.half)
}

// Engine is a physics.Engine with gravity, sub-stepped integration and
// box contact resolution.
type Engine struct {
	gravity   mgl64.Vec3
	fixedStep float64
	bodies    map[physics.BodyID]*body
	order     []*body // Insertion order keeps stepping deterministic
	nextID    physics.BodyID
}

// New creates an engine with vertical gravity and a preferred sub-step length.
func New(gravity, fixedStep float64) *Engine {
	if fixedStep <= 0 {
		fixedStep = 1.0 / 60.0
	}
	return &Engine{
		gravity:   mgl64.Vec3{0, gravity, 0},
		fixedStep: fixedStep,
		bodies:    make(map[physics.BodyID]*body),
	}
}

// AddBody implements physics.Engine.
func (e *Engine) AddBody(desc physics.BodyDesc) physics.BodyID {
	e.nextID++
	b := &body{
		id:       e.nextID,
		half:     desc.Shape.Bounds(),
		pos:      desc.Position,
		friction: desc.Friction,
		response: true,
	}
	if desc.Mass > 0 {
		b.invMass = 1 / desc.Mass
	}
	e.bodies[b.id] = b
	e.order = append(e.order, b)
	return b.id
}

// RemoveBody implements physics.Engine. Unknown ids are ignored.
func (e *Engine) RemoveBody(id physics.BodyID) {
	b, ok := e.bodies[id]
	if !ok {
		return
	}
	delete(e.bodies, id)
	for i, o := range e.order {
		if o == b {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of bodies in the engine.
func (e *Engine) Len() int {
	return len(e.bodies)
}

// Step implements physics.Engine. dt is split into equal sub-steps no
// longer than the fixed step, capped at maxSubSteps.
func (e *Engine) Step(dt float64, maxSubSteps int) {
	if dt <= 0 {
		return
	}
	if maxSubSteps < 1 {
		maxSubSteps = 1
	}

	for _, b := range e.order {
		if b.static() {
			b.impulse = mgl64.Vec3{}
			continue
		}
		b.vel = b.vel.Add(b.impulse.Mul(b.invMass))
		b.impulse = mgl64.Vec3{}
	}

	n := int(math.Ceil(dt/e.fixedStep - 1e-9))
	if n < 1 {
		n = 1
	}
	if n > maxSubSteps {
		n = maxSubSteps
	}
	h := dt / float64(n)
	for i := 0; i < n; i++ {
		e.subStep(h)
	}
}

func (e *Engine) subStep(h float64) {
	for _, b := range e.order {
		if b.static() {
			continue
		}
		b.vel = b.vel.Add(e.gravity.Mul(h))
		b.pos = b.pos.Add(b.vel.Mul(h))
	}

	// Dynamic against dynamic
	for i := 0; i < len(e.order); i++ {
		a := e.order[i]
		if a.static() || !a.response {
			continue
		}
		for j := i + 1; j < len(e.order); j++ {
			b := e.order[j]
			if b.static() || !b.response {
				continue
			}
			e.resolveDynamic(a, b)
		}
	}

	// Dynamic against static; ghosts still rest on the level
	for _, b := range e.order {
		if b.static() {
			continue
		}
		for _, s := range e.order {
			if !s.static() {
				continue
			}
			e.resolveStatic(b, s)
		}
	}
}

func (e *Engine) resolveDynamic(a, b *body) {
	push := a.bounds().Resolve(b.bounds())
	depth := push.Len()
	if depth < minSeparation {
		return
	}
	normal := push.Mul(1 / depth)

	total := a.invMass + b.invMass
	a.pos = a.pos.Add(push.Mul(a.invMass / total))
	b.pos = b.pos.Sub(push.Mul(b.invMass / total))

	// Inelastic along the contact normal
	approach := a.vel.Sub(b.vel).Dot(normal)
	if approach >= 0 {
		return
	}
	j := -approach / total
	a.vel = a.vel.Add(normal.Mul(j * a.invMass))
	b.vel = b.vel.Sub(normal.Mul(j * b.invMass))
}

func (e *Engine) resolveStatic(b, s *body) {
	push := b.bounds().Resolve(s.bounds())
	depth := push.Len()
	if depth < minSeparation {
		return
	}
	normal := push.Mul(1 / depth)
	b.pos = b.pos.Add(push)

	vn := b.vel.Dot(normal)
	if vn >= 0 {
		return
	}
	b.vel = b.vel.Sub(normal.Mul(vn))

	// Coulomb friction bounded by the normal velocity removed
	mu := b.friction * s.friction
	if mu <= 0 {
		return
	}
	tangent := b.vel.Sub(normal.Mul(b.vel.Dot(normal)))
	speed := tangent.Len()
	if speed == 0 {
		return
	}
	reduce := math.Min(speed, mu*-vn)
	b.vel = b.vel.Sub(tangent.Mul(reduce / speed))
}

// RayTest implements physics.Engine. Ghost bodies and bodies containing
// the ray origin are ignored.
func (e *Engine) RayTest(from, to mgl64.Vec3) (physics.RayHit, bool) {
	best := math.Inf(1)
	var hit physics.RayHit
	for _, b := range e.order {
		if !b.response {
			continue
		}
		t, normal, ok := b.bounds().Ray(from, to)
		if !ok || t >= best {
			continue
		}
		best = t
		hit = physics.RayHit{
			Body:   b.id,
			Point:  from.Add(to.Sub(from).Mul(t)),
			Normal: normal,
		}
	}
	return hit, !math.IsInf(best, 1)
}

// LinearVelocity implements physics.Engine.
func (e *Engine) LinearVelocity(id physics.BodyID) mgl64.Vec3 {
	if b, ok := e.bodies[id]; ok {
		return b.vel
	}
	return mgl64.Vec3{}
}

// SetLinearVelocity implements physics.Engine.
func (e *Engine) SetLinearVelocity(id physics.BodyID, v mgl64.Vec3) {
	if b, ok := e.bodies[id]; ok && !b.static() {
		b.vel = v
	}
}

// ApplyCentralImpulse implements physics.Engine.
func (e *Engine) ApplyCentralImpulse(id physics.BodyID, impulse mgl64.Vec3) {
	if b, ok := e.bodies[id]; ok {
		b.impulse = b.impulse.Add(impulse)
	}
}

// Position implements physics.Engine.
func (e *Engine) Position(id physics.BodyID) mgl64.Vec3 {
	if b, ok := e.bodies[id]; ok {
		return b.pos
	}
	return mgl64.Vec3{}
}

// SetPosition implements physics.Engine.
func (e *Engine) SetPosition(id physics.BodyID, p mgl64.Vec3) {
	if b, ok := e.bodies[id]; ok {
		b.pos = p
	}
}

// ClearForces implements physics.Engine. Pending impulses are dropped.
func (e *Engine) ClearForces(id physics.BodyID) {
	if b, ok := e.bodies[id]; ok {
		b.impulse = mgl64.Vec3{}
	}
}

// SetContactResponse implements physics.Engine.
func (e *Engine) SetContactResponse(id physics.BodyID, enabled bool) {
	if b, ok := e.bodies[id]; ok {
		b.response = enabled
	}
}
