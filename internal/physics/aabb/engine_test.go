package aabb

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"pgregory.net/rapid"

	"chosenoffset.com/blockout/internal/physics"
)

const dt = 1.0 / 60.0

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func addFloor(e *Engine) physics.BodyID {
	return e.AddBody(physics.BodyDesc{
		Shape:    physics.Box(mgl64.Vec3{80, 1, 80}),
		Position: mgl64.Vec3{0, -0.5, 0},
		Friction: 1,
	})
}

func addCharacter(e *Engine, pos mgl64.Vec3, friction float64) physics.BodyID {
	return e.AddBody(physics.BodyDesc{
		Shape:        physics.Capsule(0.4, 2),
		Mass:         1,
		Position:     pos,
		Friction:     friction,
		LockRotation: true,
		NeverSleep:   true,
	})
}

func TestBoxResolvePicksShallowestAxis(t *testing.T) {
	a := FromCenter(mgl64.Vec3{0, 0.95, 0}, mgl64.Vec3{0.5, 1, 0.5})
	floor := FromCenter(mgl64.Vec3{0, -0.5, 0}, mgl64.Vec3{40, 0.5, 40})

	push := a.Resolve(floor)
	if !push.ApproxEqualThreshold(mgl64.Vec3{0, 0.05, 0}, 1e-9) {
		t.Errorf("Expected push (0,0.05,0), got %v", push)
	}

	apart := FromCenter(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{1, 1, 1})
	if got := apart.Resolve(floor); got != (mgl64.Vec3{}) {
		t.Errorf("Expected no push for separated boxes, got %v", got)
	}
}

func TestBoxRayEntryFace(t *testing.T) {
	b := FromCenter(mgl64.Vec3{5, 0, 0}, mgl64.Vec3{1, 1, 1})

	tHit, normal, ok := b.Ray(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 0, 0})
	if !ok {
		t.Fatal("Expected a hit")
	}
	if !approx(tHit, 0.4) {
		t.Errorf("Expected t=0.4, got %v", tHit)
	}
	if normal != (mgl64.Vec3{-1, 0, 0}) {
		t.Errorf("Expected normal (-1,0,0), got %v", normal)
	}

	if _, _, ok := b.Ray(mgl64.Vec3{5, 0, 0}, mgl64.Vec3{10, 0, 0}); ok {
		t.Error("Expected ray starting inside to miss")
	}
	if _, _, ok := b.Ray(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{3, 0, 0}); ok {
		t.Error("Expected short ray to miss")
	}
}

func TestBodyComesToRestOnFloor(t *testing.T) {
	e := New(-25, dt)
	addFloor(e)
	id := addCharacter(e, mgl64.Vec3{0, 5, 0}, 0)

	for i := 0; i < 180; i++ {
		e.Step(dt, 10)
	}

	pos := e.Position(id)
	if math.Abs(pos.Y()-1.0) > 0.01 {
		t.Errorf("Expected capsule centre to rest at y=1, got %v", pos.Y())
	}
}

func TestImpulseAppliedOnStep(t *testing.T) {
	e := New(-25, dt)
	id := addCharacter(e, mgl64.Vec3{0, 10, 0}, 0)

	e.ApplyCentralImpulse(id, mgl64.Vec3{0, 12, 0})
	if v := e.LinearVelocity(id); v != (mgl64.Vec3{}) {
		t.Errorf("Expected impulse to wait for Step, got velocity %v", v)
	}

	e.Step(dt, 10)
	if v := e.LinearVelocity(id).Y(); !approx(v, 12-25*dt) {
		t.Errorf("Expected vy=%v, got %v", 12-25*dt, v)
	}
}

func TestClearForcesDropsPendingImpulse(t *testing.T) {
	e := New(0, dt)
	id := addCharacter(e, mgl64.Vec3{}, 0)

	e.ApplyCentralImpulse(id, mgl64.Vec3{5, 0, 0})
	e.ClearForces(id)
	e.Step(dt, 10)

	if v := e.LinearVelocity(id); v != (mgl64.Vec3{}) {
		t.Errorf("Expected no velocity, got %v", v)
	}
}

func TestStepCapsSubSteps(t *testing.T) {
	e := New(-25, dt)
	id := addCharacter(e, mgl64.Vec3{0, 100, 0}, 0)

	// 0.5s wants 30 sub-steps; the cap makes it 10 of 0.05s.
	e.Step(0.5, 10)

	if v := e.LinearVelocity(id).Y(); !approx(v, -12.5) {
		t.Errorf("Expected vy=-12.5, got %v", v)
	}
	if y := e.Position(id).Y(); !approx(y, 100-3.4375) {
		t.Errorf("Expected y=%v, got %v", 100-3.4375, y)
	}
}

func TestFrictionSlowsSlidingBodies(t *testing.T) {
	e := New(-25, dt)
	addFloor(e)
	enemy := addCharacter(e, mgl64.Vec3{0, 1, 0}, 1)
	player := addCharacter(e, mgl64.Vec3{10, 1, 0}, 0)

	e.SetLinearVelocity(enemy, mgl64.Vec3{4, 0, 0})
	e.SetLinearVelocity(player, mgl64.Vec3{4, 0, 0})
	e.Step(dt, 10)

	if vx := e.LinearVelocity(enemy).X(); !approx(vx, 4-25*dt) {
		t.Errorf("Expected enemy vx=%v, got %v", 4-25*dt, vx)
	}
	if vx := e.LinearVelocity(player).X(); !approx(vx, 4) {
		t.Errorf("Expected frictionless player to keep vx=4, got %v", vx)
	}
}

func TestDynamicBodiesPushApart(t *testing.T) {
	e := New(0, dt)
	a := addCharacter(e, mgl64.Vec3{0, 0, 0}, 0)
	b := addCharacter(e, mgl64.Vec3{0.5, 0, 0}, 0)

	e.Step(dt, 10)

	gap := e.Position(b).X() - e.Position(a).X()
	if gap < 0.8-1e-6 {
		t.Errorf("Expected bodies separated by at least 0.8, got %v", gap)
	}
}

func TestGhostPassesThroughDynamicsButRestsOnFloor(t *testing.T) {
	e := New(-25, dt)
	addFloor(e)
	ghost := addCharacter(e, mgl64.Vec3{0, 1, 0}, 1)
	other := addCharacter(e, mgl64.Vec3{0.5, 1, 0}, 0)
	e.SetContactResponse(ghost, false)

	for i := 0; i < 30; i++ {
		e.Step(dt, 10)
	}

	if x := e.Position(other).X(); !approx(x, 0.5) {
		t.Errorf("Expected ghost not to push other body, got x=%v", x)
	}
	if y := e.Position(ghost).Y(); math.Abs(y-1) > 0.01 {
		t.Errorf("Expected ghost to rest on floor at y=1, got %v", y)
	}

	// Rays pass through ghosts and hit the floor below
	hit, ok := e.RayTest(mgl64.Vec3{0, 10, 0}, mgl64.Vec3{0, -10, 0})
	if !ok {
		t.Fatal("Expected the floor to be hit")
	}
	if !approx(hit.Point.Y(), 0) {
		t.Errorf("Expected floor hit at y=0, got %v", hit.Point.Y())
	}
}

func TestRayTestReturnsClosestHit(t *testing.T) {
	e := New(0, dt)
	far := e.AddBody(physics.BodyDesc{Shape: physics.Box(mgl64.Vec3{1, 1, 1}), Position: mgl64.Vec3{0, 0, -10}})
	near := e.AddBody(physics.BodyDesc{Shape: physics.Box(mgl64.Vec3{1, 1, 1}), Position: mgl64.Vec3{0, 0, -5}})

	hit, ok := e.RayTest(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, -100})
	if !ok {
		t.Fatal("Expected a hit")
	}
	if hit.Body != near {
		t.Errorf("Expected nearest body %d, got %d", near, hit.Body)
	}
	if hit.Normal != (mgl64.Vec3{0, 0, 1}) {
		t.Errorf("Expected normal (0,0,1), got %v", hit.Normal)
	}

	e.RemoveBody(near)
	hit, _ = e.RayTest(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, -100})
	if hit.Body != far {
		t.Errorf("Expected far body %d after removal, got %d", far, hit.Body)
	}
}

func TestRemoveBodyIsIdempotent(t *testing.T) {
	e := New(-25, dt)
	id := addFloor(e)

	e.RemoveBody(id)
	e.RemoveBody(id)

	if e.Len() != 0 {
		t.Errorf("Expected empty engine, got %d bodies", e.Len())
	}
}

func TestStaticBodiesIgnoreVelocity(t *testing.T) {
	e := New(-25, dt)
	id := addFloor(e)

	e.SetLinearVelocity(id, mgl64.Vec3{1, 1, 1})
	e.ApplyCentralImpulse(id, mgl64.Vec3{0, 100, 0})
	e.Step(dt, 10)

	if pos := e.Position(id); pos != (mgl64.Vec3{0, -0.5, 0}) {
		t.Errorf("Expected static body to stay put, got %v", pos)
	}
}

func TestRestingBodyNeverSinksProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := New(-25, dt)
		addFloor(e)
		x := rapid.Float64Range(-30, 30).Draw(t, "x")
		z := rapid.Float64Range(-30, 30).Draw(t, "z")
		h := rapid.Float64Range(1, 8).Draw(t, "height")
		frameDt := rapid.Float64Range(0.005, 0.1).Draw(t, "dt")
		id := addCharacter(e, mgl64.Vec3{x, h, z}, 1)

		for i := 0; i < 200; i++ {
			e.Step(frameDt, 10)
			if y := e.Position(id).Y(); y < 1-0.05 {
				t.Fatalf("body sank into the floor: y=%v", y)
			}
		}
	})
}
