// Package hud draws the screen-space overlays of the arena: the player
// status during gameplay, enemy health bars and the editor banner.
package hud

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/blockout/internal/render"
)

const (
	textScale = 1.25 // Body text
	ammoScale = 1.8  // Ammo counter

	healthBarWidth = 200
	enemyBarWidth  = 50
	enemyBarHeight = 6

	crosshairRadius = 2
)

// Status is the player state shown during gameplay.
type Status struct {
	Health       float64
	MaxHealth    float64
	Ammo         int
	Magazine     int
	InfiniteAmmo bool
	Reloading    bool
	Aiming       bool
	AttackMode   bool
	InDialogue   bool
	DialogueLine string
}

// EnemyBar is a health bar anchored above an enemy.
type EnemyBar struct {
	Position mgl64.Vec3 // World-space anchor
	Fraction float64    // Health left in [0, 1]
}

// HUD manages the heads-up display
type HUD struct {
	renderer     render.Renderer
	screenWidth  int
	screenHeight int
}

// New creates a HUD for a screen of the given size.
func New(r render.Renderer, screenWidth, screenHeight int) *HUD {
	return &HUD{
		renderer:     r,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
	}
}

// SetScreenSize updates the screen dimensions
func (h *HUD) SetScreenSize(width, height int) {
	h.screenWidth = width
	h.screenHeight = height
}

// AmmoText returns the ammo counter label.
func AmmoText(s Status) string {
	switch {
	case s.Reloading:
		return "RELOADING..."
	case s.InfiniteAmmo:
		return "INF / INF"
	default:
		return fmt.Sprintf("%d / %d", s.Ammo, s.Magazine)
	}
}

// DrawEnemyBars draws a bar for every enemy in front of cam.
func (h *HUD) DrawEnemyBars(screen render.Image, cam render.Camera, bars []EnemyBar) {
	forward := cam.Forward()
	for _, b := range bars {
		if b.Position.Sub(cam.Position).Dot(forward) <= 0 {
			continue
		}
		sx, sy, ok := cam.WorldToScreen(b.Position, h.screenWidth, h.screenHeight)
		if !ok {
			continue
		}
		x := float32(sx) - enemyBarWidth/2
		y := float32(sy)
		frac := float32(mgl64.Clamp(b.Fraction, 0, 1))
		h.renderer.FillRect(screen, x, y, enemyBarWidth, enemyBarHeight, render.Fade(render.Black, 0.5))
		h.renderer.FillRect(screen, x, y, enemyBarWidth*frac, enemyBarHeight, render.Lime)
		h.renderer.StrokeRect(screen, x, y, enemyBarWidth, enemyBarHeight, 1, render.DarkGray)
	}
}

// DrawGameplay draws the player status, crosshair, hints and dialogue.
func (h *HUD) DrawGameplay(screen render.Image, s Status) {
	w, ht := h.screenWidth, h.screenHeight

	// Health bar
	frac := 0.0
	if s.MaxHealth > 0 {
		frac = mgl64.Clamp(s.Health/s.MaxHealth, 0, 1)
	}
	barY := float32(ht - 40)
	h.renderer.FillRect(screen, 20, barY, healthBarWidth, 20, render.Fade(render.Black, 0.5))
	h.renderer.FillRect(screen, 20, barY, float32(healthBarWidth*frac), 20, render.Red)
	h.renderer.StrokeRect(screen, 20, barY, healthBarWidth, 20, 1, render.DarkGray)

	h.renderer.DrawText(screen, AmmoText(s), w-150, ht-40, render.DarkGray, ammoScale)

	if s.Aiming {
		h.renderer.FillCircle(screen, float32(w/2), float32(ht/2), crosshairRadius, render.Red)
	}

	if !s.AttackMode {
		h.renderer.DrawText(screen, "Attack mode is OFF. Press 'E' near characters to talk.", 20, ht-70, render.White, textScale)
	}

	if s.InDialogue {
		h.renderer.FillRect(screen, 10, float32(ht-120), float32(w-20), 110, render.Fade(render.Black, 0.7))
		h.renderer.DrawText(screen, fmt.Sprintf("NPC says: %q", s.DialogueLine), 25, ht-105, render.White, textScale)
		h.renderer.DrawText(screen, "Press [E] to continue...", w-220, ht-40, render.Gray, textScale)
	}
}

// DrawEditor draws the editor banner and centre dot.
func (h *HUD) DrawEditor(screen render.Image, tool string) {
	h.renderer.DrawText(screen, "EDIT MODE | Tab to return to settings", 10, 40, render.Yellow, textScale)
	h.renderer.DrawText(screen, "[LMB] Use Tool", 10, 65, render.Yellow, textScale)
	h.renderer.DrawText(screen, "MODE: "+tool, 10, 90, render.Yellow, textScale)
	h.renderer.FillCircle(screen, float32(h.screenWidth/2), float32(h.screenHeight/2), crosshairRadius, render.White)
}
