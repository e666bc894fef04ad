// Package world owns the live entities of the arena: level blocks, the
// player, enemies, spawn points and short-lived visual effects.
package world

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"chosenoffset.com/blockout/internal/physics"
)

// LifeState is the lifecycle of a character.
type LifeState int

const (
	Grounded LifeState = iota
	Jumping
	Dying
)

// String returns the state name used in logs.
func (s LifeState) String() string {
	switch s {
	case Grounded:
		return "grounded"
	case Jumping:
		return "jumping"
	case Dying:
		return "dying"
	default:
		return "unknown"
	}
}

// BodyData links an entity to its physics body.
type BodyData struct {
	ID  physics.BodyID
	Tag physics.Tag
}

// BlockData is the visual description of a static block.
type BlockData struct {
	Size  mgl64.Vec3
	Color color.RGBA
}

// CharacterData is shared by the player and enemies.
type CharacterData struct {
	Health     float64
	MaxHealth  float64
	State      LifeState
	Facing     float64 // Degrees around +Y
	Moving     bool
	AnimClock  float64
	DeathTimer float64 // Seconds since entering Dying
}

// Alive reports whether the character is not Dying.
func (c *CharacterData) Alive() bool {
	return c.State != Dying
}

// Damage subtracts amount from health, never going below zero.
func (c *CharacterData) Damage(amount float64) {
	c.Health -= amount
	if c.Health < 0 {
		c.Health = 0
	}
}

// Kill moves a character with no health into Dying. It reports whether the
// transition happened; a character already Dying or still healthy is left alone.
func (c *CharacterData) Kill() bool {
	if c.State == Dying || c.Health > 0 {
		return false
	}
	c.State = Dying
	c.DeathTimer = 0
	c.Moving = false
	return true
}

// PlayerData holds the weapon state of the player.
type PlayerData struct {
	Ammo        int
	ReloadTimer float64 // Seconds left; zero when not reloading
	FireTimer   float64 // Cooldown left before the next shot
	Aiming      bool
}

// Reloading reports whether a reload is in progress.
func (p *PlayerData) Reloading() bool {
	return p.ReloadTimer > 0
}

// EnemyData holds the AI state of an enemy.
type EnemyData struct {
	AITimer float64    // Seconds until the next wander decision
	Wander  mgl64.Vec3 // Unit heading while wandering
}

// Component types
var (
	Body      = donburi.NewComponentType[BodyData]()
	Block     = donburi.NewComponentType[BlockData]()
	Character = donburi.NewComponentType[CharacterData]()
	Player    = donburi.NewComponentType[PlayerData]()
	Enemy     = donburi.NewComponentType[EnemyData]()
)

// Effect is a tracer line or, when Start equals End, an impact marker.
type Effect struct {
	Start mgl64.Vec3
	End   mgl64.Vec3
	Life  float64
	Color color.RGBA
}

// IsImpact reports whether the effect is drawn as a point.
func (e Effect) IsImpact() bool {
	return e.Start == e.End
}
