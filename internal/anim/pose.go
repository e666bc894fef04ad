// Package anim computes procedural character poses and lays them out on
// the box rig shared by the player and enemies.
package anim

import (
	"math"

	"chosenoffset.com/blockout/internal/world"
)

const (
	walkCycleSpeed     = 10.0
	walkCycleAmplitude = 35.0
	idleBreathSpeed    = 2.0
	idleBreathAmount   = 0.02
	defaultReloadTime  = 2.0
)

// Input is everything the pose depends on.
type Input struct {
	State      world.LifeState
	Clock      float64 // Animation clock in seconds
	Moving     bool
	Aiming     bool
	Talking    bool
	Reload     float64 // Reload seconds remaining, zero when not reloading
	ReloadTime float64 // Full reload duration
	Recoil     float64 // Fire cooldown remaining as a fraction in [0, 1]
}

// Pose holds joint angles in degrees. TorsoLift is a vertical offset in
// world units.
type Pose struct {
	LeftLeg       float64
	RightLeg      float64
	LeftArmPitch  float64
	LeftArmRoll   float64
	RightArmPitch float64
	RightArmRoll  float64
	TorsoLift     float64
	TorsoPitch    float64
	HeadPitch     float64
	BodyPitch     float64
}

// Solve maps character state to joint angles. It is pure.
func Solve(in Input) Pose {
	var p Pose
	t := in.Clock

	// Base pose
	switch in.State {
	case world.Grounded:
		switch {
		case in.Moving:
			swing := math.Sin(t*walkCycleSpeed) * walkCycleAmplitude
			p.LeftLeg = swing
			p.RightLeg = -swing
		case in.Talking:
			p.TorsoLift = math.Sin(t*idleBreathSpeed*2.5) * idleBreathAmount * 1.8
			p.HeadPitch = math.Cos(t*idleBreathSpeed*1.5) * 5.0
		default:
			p.TorsoLift = math.Sin(t*idleBreathSpeed) * idleBreathAmount
		}
	case world.Jumping:
		p.LeftLeg = 45
		p.RightLeg = -20
	case world.Dying:
		p.BodyPitch = 90
		p.TorsoLift = -1.0
	}

	// Arms
	switch {
	case in.State == world.Dying:
		p.RightArmPitch, p.RightArmRoll = -45, 70
		p.LeftArmPitch, p.LeftArmRoll = 45, -70
	case in.Talking:
		p.RightArmPitch = 25 + math.Sin(t*4)*10
		p.RightArmRoll = -45
		p.LeftArmPitch = 35 + math.Cos(t*3)*10
		p.LeftArmRoll = 45
	case in.Aiming:
		p.TorsoPitch = -10
		p.RightArmPitch, p.RightArmRoll = 90, -20
		p.LeftArmPitch, p.LeftArmRoll = 90, 20
	default:
		p.RightArmPitch, p.RightArmRoll = 75, -15
		p.LeftArmPitch, p.LeftArmRoll = 80, 20
	}

	// Reload overlay
	if in.Reload > 0 {
		total := in.ReloadTime
		if total <= 0 {
			total = defaultReloadTime
		}
		progress := 1 - in.Reload/total
		swing := math.Sin(progress*2*math.Pi) * -15
		p.LeftArmPitch += swing
		p.LeftArmRoll += swing
	}

	// Recoil overlay
	p.RightArmPitch -= in.Recoil * 15
	p.LeftArmPitch -= in.Recoil * 10
	p.RightArmRoll += in.Recoil * 5

	return p
}
