package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"chosenoffset.com/blockout/internal/anim"
	"chosenoffset.com/blockout/internal/render"
	"chosenoffset.com/blockout/internal/ui/hud"
	"chosenoffset.com/blockout/internal/ui/settings"
	"chosenoffset.com/blockout/internal/world"
)

const (
	healthBarLift  = 2.4
	impactRadius   = 0.2
	markerRadius   = 0.5
	markerHeight   = 0.2
	eraseBrushSize = 0.5
)

// buildScene fills d with the world as seen in every mode: blocks, spawn
// markers, characters, effects and the editor brush.
func (m *Manager) buildScene(d *render.DrawList) {
	d.Reset()

	m.reg.EachBlock(func(entry *donburi.Entry) {
		b := world.Block.Get(entry)
		pos := m.reg.Position(entry)
		d.BoxAt(pos, b.Size, b.Color)
		d.BoxWires(mgl64.Translate3D(pos.X(), pos.Y(), pos.Z()), b.Size, render.Black)
	})

	for _, sp := range m.reg.SpawnPoints() {
		d.Cylinder(sp, markerRadius, markerHeight, render.Fade(render.Purple, 0.5))
	}

	partner := m.Gameplay.DialoguePartner()
	m.reg.EachEnemy(func(entry *donburi.Entry) {
		c := world.Character.Get(entry)
		in := anim.Input{
			State:   c.State,
			Clock:   c.AnimClock,
			Moving:  c.Moving,
			Talking: m.Gameplay.InDialogue() && entry.Entity() == partner,
		}
		m.drawCharacter(d, m.reg.Position(entry), c.Facing, in, anim.EnemyPalette)
	})

	for _, e := range m.reg.Effects() {
		if e.IsImpact() {
			d.Sphere(e.Start, impactRadius, e.Color)
		} else {
			d.Line(e.Start, e.End, e.Color)
		}
	}

	if player := m.reg.Player(); player != nil {
		c := world.Character.Get(player)
		p := world.Player.Get(player)
		wc := m.config.Weapon
		recoil := 0.0
		if p.FireTimer > 0 && wc.FireCooldown > 0 {
			recoil = mgl64.Clamp(p.FireTimer/wc.FireCooldown, 0, 1)
		}
		in := anim.Input{
			State:      c.State,
			Clock:      c.AnimClock,
			Moving:     c.Moving,
			Aiming:     p.Aiming,
			Talking:    m.Gameplay.InDialogue(),
			Reload:     p.ReloadTimer,
			ReloadTime: wc.ReloadTime,
			Recoil:     recoil,
		}
		m.drawCharacter(d, m.reg.Position(player), c.Facing, in, anim.PlayerPalette)
	}

	if m.State != StateEditor {
		return
	}
	cursor, ok := m.Editor.Cursor()
	if !ok {
		return
	}
	switch m.Settings.Tool {
	case settings.ToolPlace:
		model := mgl64.Translate3D(cursor.X(), cursor.Y(), cursor.Z())
		d.Box(model, m.Settings.BlockSize, render.Fade(render.Lime, 0.5))
		d.BoxWires(model, m.Settings.BlockSize, render.Lime)
	case settings.ToolErase:
		d.Sphere(cursor, eraseBrushSize, render.Fade(render.Red, 0.5))
	case settings.ToolSpawn:
		d.Cylinder(cursor, markerRadius, markerHeight, render.Fade(render.Purple, 0.5))
	}
}

func (m *Manager) drawCharacter(d *render.DrawList, pos mgl64.Vec3, facing float64, in anim.Input, palette anim.Palette) {
	for _, part := range anim.Rig(pos, facing, anim.Solve(in), in, palette) {
		d.Box(part.Model, part.Size, part.Color)
	}
}

// enemyBars lists a health bar for every enemy that is not Dying.
func (m *Manager) enemyBars() []hud.EnemyBar {
	var bars []hud.EnemyBar
	m.reg.EachEnemy(func(entry *donburi.Entry) {
		c := world.Character.Get(entry)
		if !c.Alive() || c.MaxHealth <= 0 {
			return
		}
		bars = append(bars, hud.EnemyBar{
			Position: m.reg.Position(entry).Add(mgl64.Vec3{0, healthBarLift, 0}),
			Fraction: c.Health / c.MaxHealth,
		})
	})
	return bars
}

// status collects the player state shown by the gameplay HUD.
func (m *Manager) status() hud.Status {
	s := hud.Status{
		Magazine:     m.config.Weapon.MagazineSize,
		InfiniteAmmo: m.Settings.InfiniteAmmo,
		AttackMode:   m.Settings.AttackPlayer,
		InDialogue:   m.Gameplay.InDialogue(),
		DialogueLine: m.Gameplay.DialogueLine(),
	}
	if player := m.reg.Player(); player != nil {
		c := world.Character.Get(player)
		p := world.Player.Get(player)
		s.Health = c.Health
		s.MaxHealth = c.MaxHealth
		s.Ammo = p.Ammo
		s.Reloading = p.Reloading()
		s.Aiming = p.Aiming
	}
	return s
}
