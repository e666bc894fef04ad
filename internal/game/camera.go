package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/blockout/internal/physics"
	"chosenoffset.com/blockout/internal/render"
	"chosenoffset.com/blockout/internal/simulation"
)

// Orbit is a yaw/pitch pair in radians driven by mouse-look.
type Orbit struct {
	Yaw   float64
	Pitch float64
}

// NewOrbit builds an orbit from angles in degrees.
func NewOrbit(yawDeg, pitchDeg float64) Orbit {
	return Orbit{Yaw: mgl64.DegToRad(yawDeg), Pitch: mgl64.DegToRad(pitchDeg)}
}

// Look turns by a mouse delta. Pitch is clamped to ±limitDeg.
func (o *Orbit) Look(dx, dy, sensitivity, limitDeg float64) {
	o.Yaw -= dx * sensitivity
	o.Pitch -= dy * sensitivity
	limit := mgl64.DegToRad(limitDeg)
	o.Pitch = mgl64.Clamp(o.Pitch, -limit, limit)
}

// Forward returns the unit look direction including pitch.
func (o Orbit) Forward() mgl64.Vec3 {
	cp := math.Cos(o.Pitch)
	return mgl64.Vec3{cp * math.Sin(o.Yaw), math.Sin(o.Pitch), cp * math.Cos(o.Yaw)}
}

// Heading returns the horizontal forward direction.
func (o Orbit) Heading() mgl64.Vec3 {
	return mgl64.Vec3{math.Sin(o.Yaw), 0, math.Cos(o.Yaw)}
}

// Right returns the horizontal direction to the camera's right.
func (o Orbit) Right() mgl64.Vec3 {
	return mgl64.Vec3{-math.Cos(o.Yaw), 0, math.Sin(o.Yaw)}
}

// ChaseCamera follows the player from behind and pulls in front of any
// geometry between the player and its ideal position.
type ChaseCamera struct {
	config   simulation.CameraConfig
	distance float64
	camera   render.Camera
}

// NewChaseCamera returns a chase camera at its resting distance.
func NewChaseCamera(config simulation.CameraConfig) *ChaseCamera {
	return &ChaseCamera{
		config:   config,
		distance: config.Distance,
		camera: render.Camera{
			Up:         mgl64.Vec3{0, 1, 0},
			FovY:       config.FovY,
			Projection: render.Perspective,
		},
	}
}

// Distance returns the current eased distance.
func (c *ChaseCamera) Distance() float64 {
	return c.distance
}

// Camera returns the camera placed by the last Update.
func (c *ChaseCamera) Camera() render.Camera {
	return c.camera
}

// Update eases the distance toward the aiming or resting value and places
// the camera behind playerPos along the orbit.
func (c *ChaseCamera) Update(phys *physics.World, playerPos mgl64.Vec3, view Orbit, aiming bool, dt float64) {
	target := c.config.Distance
	if aiming {
		target = c.config.AimDistance
	}
	c.distance += (target - c.distance) * dt * c.config.Smoothing

	focus := playerPos.Add(mgl64.Vec3{0, c.config.FocusHeight, 0})
	ideal := focus.Sub(view.Forward().Mul(c.distance))

	c.camera.Target = focus
	c.camera.Position = ideal
	if hit, ok := phys.Raycast(focus, ideal); ok {
		c.camera.Position = hit.Point.Add(hit.Normal.Mul(c.config.OcclusionOffset))
	}
}

// FlyCamera is the free camera of the editor.
type FlyCamera struct {
	Position mgl64.Vec3
	View     Orbit
	fovY     float64
}

// NewFlyCamera places the editor camera from config.
func NewFlyCamera(config simulation.EditorConfig, fovY float64) *FlyCamera {
	return &FlyCamera{
		Position: config.InitialPosition,
		View:     NewOrbit(config.InitialYaw, config.InitialPitch),
		fovY:     fovY,
	}
}

// Move flies along the view axes. Directional keys are combined and
// normalised before scaling by speed.
func (f *FlyCamera) Move(input render.InputManager, speed, dt float64) {
	fwd := f.View.Forward()
	right := f.View.Right()

	var dir mgl64.Vec3
	if input.IsKeyPressed(render.KeyW) {
		dir = dir.Add(fwd)
	}
	if input.IsKeyPressed(render.KeyS) {
		dir = dir.Sub(fwd)
	}
	if input.IsKeyPressed(render.KeyA) {
		dir = dir.Add(right)
	}
	if input.IsKeyPressed(render.KeyD) {
		dir = dir.Sub(right)
	}
	if input.IsKeyPressed(render.KeySpace) {
		dir[1]++
	}
	if input.IsKeyPressed(render.KeyLeftControl) {
		dir[1]--
	}
	if dir.LenSqr() > 0 {
		dir = dir.Normalize()
	}
	f.Position = f.Position.Add(dir.Mul(speed * dt))
}

// Camera returns the render camera looking along the view.
func (f *FlyCamera) Camera() render.Camera {
	return render.Camera{
		Position:   f.Position,
		Target:     f.Position.Add(f.View.Forward()),
		Up:         mgl64.Vec3{0, 1, 0},
		FovY:       f.fovY,
		Projection: render.Perspective,
	}
}
