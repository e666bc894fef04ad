package game

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"chosenoffset.com/blockout/internal/physics"
	"chosenoffset.com/blockout/internal/render"
	"chosenoffset.com/blockout/internal/simulation"
	"chosenoffset.com/blockout/internal/ui/settings"
	"chosenoffset.com/blockout/internal/world"
)

// Gameplay runs the player, weapon, dialogue and enemy AI for one frame
// and owns the chase camera.
type Gameplay struct {
	config *simulation.Config
	reg    *world.Registry
	phys   *physics.World
	logger *slog.Logger

	View  Orbit
	Chase *ChaseCamera

	partner      donburi.Entity
	dialogueLine string
	respawnTimer float64
}

// NewGameplay creates the gameplay controller for reg's arena.
func NewGameplay(config *simulation.Config, reg *world.Registry, logger *slog.Logger) *Gameplay {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gameplay{
		config:  config,
		reg:     reg,
		phys:    reg.Physics(),
		logger:  logger,
		View:    NewOrbit(config.Player.InitialYaw, config.Player.InitialPitch),
		Chase:   NewChaseCamera(config.Camera),
		partner: donburi.Null,
	}
}

// InDialogue reports whether the player is talking to an enemy.
func (g *Gameplay) InDialogue() bool {
	return g.partner != donburi.Null
}

// DialoguePartner returns the enemy in dialogue, or donburi.Null.
func (g *Gameplay) DialoguePartner() donburi.Entity {
	return g.partner
}

// DialogueLine returns the line picked when the dialogue started.
func (g *Gameplay) DialogueLine() string {
	return g.dialogueLine
}

// RespawnTimer returns the accumulated enemy respawn time.
func (g *Gameplay) RespawnTimer() float64 {
	return g.respawnTimer
}

// Camera returns the camera placed by the last UpdateCamera.
func (g *Gameplay) Camera() render.Camera {
	return g.Chase.Camera()
}

// facingOf converts a horizontal direction into a model yaw in degrees.
func facingOf(dir mgl64.Vec3) float64 {
	return math.Atan2(dir.X(), dir.Z())*180/math.Pi + 180
}

// Update advances gameplay by dt. The physics world is stepped exactly once,
// after every velocity and impulse command of the frame.
func (g *Gameplay) Update(input render.InputManager, s *settings.Settings, dt float64) {
	player := g.reg.Player()
	if player == nil {
		return
	}
	pc := world.Character.Get(player)
	pd := world.Player.Get(player)
	id := g.reg.BodyID(player)
	playerPos := g.phys.Position(id)

	if pc.Alive() {
		dx, dy := input.MouseDelta()
		g.View.Look(dx, dy, g.config.Player.LookSensitivity, g.config.Player.PitchLimit)
	}

	g.checkGround(pc, playerPos)

	if input.IsKeyJustPressed(render.KeyE) {
		if g.InDialogue() {
			g.endDialogue()
		} else if !s.AttackPlayer && pc.Alive() {
			g.startDialogue(pc, playerPos)
		}
	}
	g.freezeDialogue(pc, id)

	switch {
	case pc.Alive() && !g.InDialogue():
		g.updatePlayer(input, s, pc, pd, id, playerPos, dt)
	case !pc.Alive():
		pd.Aiming = false
		g.updateDeath(pc, pd, id, dt)
	default:
		pd.Aiming = false
	}

	dead := g.updateEnemies(s, pc, playerPos, dt)

	if pc.Kill() {
		g.logger.Info("player died")
	}

	g.phys.Step(dt, g.config.Physics.SubSteps)

	g.respawnEnemies(dead, dt)
	g.reg.ReapDeadEnemies()
}

// checkGround lands a jumping player as soon as the probe ray touches
// anything below.
func (g *Gameplay) checkGround(pc *world.CharacterData, playerPos mgl64.Vec3) {
	probe := g.config.Player.Height * g.config.Player.GroundProbe
	if _, ok := g.phys.Raycast(playerPos, playerPos.Sub(mgl64.Vec3{0, probe, 0})); ok && pc.State == world.Jumping {
		pc.State = world.Grounded
	}
}

func (g *Gameplay) startDialogue(pc *world.CharacterData, playerPos mgl64.Vec3) {
	var found *donburi.Entry
	g.reg.EachEnemy(func(entry *donburi.Entry) {
		if found != nil || !world.Character.Get(entry).Alive() {
			return
		}
		if g.reg.Position(entry).Sub(playerPos).LenSqr() < g.config.Enemy.TalkRangeSq {
			found = entry
		}
	})
	if found == nil {
		return
	}

	lines := g.config.Dialogue.Lines
	g.partner = found.Entity()
	g.dialogueLine = lines[g.reg.Rand().Intn(len(lines))]

	toPlayer := playerPos.Sub(g.reg.Position(found))
	world.Character.Get(found).Facing = facingOf(toPlayer)
	pc.Facing = facingOf(toPlayer.Mul(-1))

	g.logger.Info("dialogue started", "enemy", g.partner)
}

func (g *Gameplay) endDialogue() {
	g.logger.Info("dialogue ended", "enemy", g.partner)
	g.partner = donburi.Null
	g.dialogueLine = ""
}

// freezeDialogue holds both participants in place while they talk.
func (g *Gameplay) freezeDialogue(pc *world.CharacterData, id physics.BodyID) {
	if !g.InDialogue() {
		return
	}
	partner := g.reg.Entry(g.partner)
	if partner == nil {
		g.endDialogue()
		return
	}
	pc.Moving = false
	g.phys.SetHorizontalVelocity(id, 0, 0)
	world.Character.Get(partner).Moving = false
	g.phys.SetHorizontalVelocity(g.reg.BodyID(partner), 0, 0)
}

func (g *Gameplay) updatePlayer(input render.InputManager, s *settings.Settings, pc *world.CharacterData, pd *world.PlayerData, id physics.BodyID, playerPos mgl64.Vec3, dt float64) {
	var move mgl64.Vec3
	if input.IsKeyPressed(render.KeyW) {
		move[2] = 1
	}
	if input.IsKeyPressed(render.KeyS) {
		move[2] = -1
	}
	if input.IsKeyPressed(render.KeyA) {
		move[0] = -1
	}
	if input.IsKeyPressed(render.KeyD) {
		move[0] = 1
	}
	pc.Moving = move.X() != 0 || move.Z() != 0

	heading := g.View.Heading()
	worldMove := heading.Mul(move.Z()).Add(g.View.Right().Mul(move.X()))
	if worldMove.LenSqr() > 0 {
		worldMove = worldMove.Normalize()
	}

	pd.Aiming = input.IsMouseButtonPressed(render.MouseButtonRight) &&
		pc.State != world.Jumping && !pd.Reloading()
	if pd.Aiming {
		pc.Facing = facingOf(heading)
	} else if pc.Moving {
		pc.Facing = facingOf(worldMove)
	}

	desired := mgl64.Vec3{0, g.phys.Velocity(id).Y(), 0}
	if pc.Moving {
		speed := g.config.Player.MoveSpeed
		desired[0] = worldMove.X() * speed
		desired[2] = worldMove.Z() * speed
	}
	g.phys.SetVelocity(id, desired)

	if input.IsKeyJustPressed(render.KeySpace) && pc.State == world.Grounded {
		g.phys.ApplyImpulse(id, mgl64.Vec3{0, g.config.Player.JumpImpulse, 0})
		pc.State = world.Jumping
	}

	wc := g.config.Weapon
	if pd.FireTimer > 0 {
		pd.FireTimer -= dt
	}
	if pd.ReloadTimer > 0 {
		pd.ReloadTimer -= dt
		if pd.ReloadTimer <= 0 {
			pd.ReloadTimer = 0
			pd.Ammo = wc.MagazineSize
			g.logger.Debug("reload complete", "ammo", pd.Ammo)
		}
	}

	if input.IsMouseButtonPressed(render.MouseButtonLeft) && pd.FireTimer <= 0 && !pd.Reloading() && pc.State != world.Jumping {
		if pd.Ammo > 0 {
			if !s.InfiniteAmmo {
				pd.Ammo--
			}
			pd.FireTimer = wc.FireCooldown
			g.fire(pc, playerPos)
		} else {
			pd.ReloadTimer = wc.ReloadTime
		}
	}

	if input.IsKeyJustPressed(render.KeyR) && !pd.Reloading() && pd.Ammo < wc.MagazineSize && !s.InfiniteAmmo {
		pd.ReloadTimer = wc.ReloadTime
	}
}

// fire casts the shot along the camera view. Hits leave an impact marker
// and damage living enemies; a tracer always runs from the muzzle.
func (g *Gameplay) fire(pc *world.CharacterData, playerPos mgl64.Vec3) {
	wc := g.config.Weapon
	cam := g.Chase.Camera()
	dir := cam.Forward()
	from := cam.Position
	end := from.Add(dir.Mul(wc.Range))

	if hit, ok := g.phys.Raycast(from, end); ok {
		end = hit.Point
		g.reg.AddEffect(end, end, wc.ImpactLifetime, render.Red)

		if hit.Tag == physics.TagEnemy {
			if entry := g.reg.Entry(hit.Owner); entry != nil {
				if c := world.Character.Get(entry); c.Alive() {
					c.Damage(wc.Damage)
					g.phys.ApplyImpulse(hit.Body, dir.Mul(wc.HitImpulse))
					g.logger.Debug("enemy hit", "enemy", hit.Owner, "health", c.Health)
				}
			}
		}
	}

	muzzle := mgl64.Rotate3DY(mgl64.DegToRad(pc.Facing - 180)).Mul3x1(wc.MuzzleOffset)
	g.reg.AddEffect(playerPos.Add(muzzle), end, wc.TracerLifetime, render.Yellow)
}

// updateDeath holds a dying player still and resets them once the delay
// has passed.
func (g *Gameplay) updateDeath(pc *world.CharacterData, pd *world.PlayerData, id physics.BodyID, dt float64) {
	g.phys.SetVelocity(id, mgl64.Vec3{})
	pc.DeathTimer += dt
	if pc.DeathTimer <= g.config.Player.RespawnDelay {
		return
	}

	g.phys.Teleport(id, g.config.Player.SpawnOrigin)
	pc.Health = pc.MaxHealth
	pc.State = world.Grounded
	pc.DeathTimer = 0
	pd.Ammo = g.config.Weapon.MagazineSize
	g.logger.Info("player respawned")
}

// updateEnemies runs the AI of every enemy and returns how many are Dying.
func (g *Gameplay) updateEnemies(s *settings.Settings, pc *world.CharacterData, playerPos mgl64.Vec3, dt float64) int {
	ec := g.config.Enemy
	dead := 0

	g.reg.EachEnemy(func(entry *donburi.Entry) {
		c := world.Character.Get(entry)
		id := g.reg.BodyID(entry)

		if !c.Alive() {
			dead++
			c.DeathTimer += dt
			c.Moving = false
			g.phys.SetVelocity(id, mgl64.Vec3{})
			return
		}
		if c.Kill() {
			g.phys.DisableContactResponse(id)
			g.logger.Info("enemy died", "enemy", entry.Entity())
			return
		}
		if g.InDialogue() && entry.Entity() == g.partner {
			return
		}
		if s.FreezeEnemies {
			g.phys.SetHorizontalVelocity(id, 0, 0)
			return
		}

		c.AnimClock += dt
		speed := ec.Speed
		if s.SuperSpeed {
			speed = ec.SuperSpeed
		}

		if s.AttackPlayer && pc.Alive() {
			toPlayer := playerPos.Sub(g.reg.Position(entry))
			distance := toPlayer.Len()
			switch {
			case distance < ec.MeleeRange:
				if !s.InfiniteHealth {
					pc.Damage(ec.MeleeDamageRate * dt)
				}
				c.Moving = false
			case distance < ec.ChaseRange:
				dir := toPlayer.Normalize()
				g.phys.SetHorizontalVelocity(id, dir.X()*speed, dir.Z()*speed)
				c.Facing = facingOf(dir)
				c.Moving = true
			default:
				c.Moving = false
				g.phys.SetHorizontalVelocity(id, 0, 0)
			}
			return
		}

		e := world.Enemy.Get(entry)
		e.AITimer -= dt
		if e.AITimer <= 0 {
			rng := g.reg.Rand()
			c.Moving = !c.Moving
			e.AITimer = ec.DecisionMin + rng.Float64()*(ec.DecisionMax-ec.DecisionMin)
			if c.Moving {
				angle := rng.Float64() * 2 * math.Pi
				e.Wander = mgl64.Vec3{math.Sin(angle), 0, math.Cos(angle)}
				c.Facing = mgl64.RadToDeg(angle) + 180
			}
		}
		if c.Moving {
			g.phys.SetHorizontalVelocity(id, e.Wander.X()*speed, e.Wander.Z()*speed)
		} else {
			g.phys.SetHorizontalVelocity(id, 0, 0)
		}
	})

	return dead
}

// respawnEnemies replaces dead enemies at a rate proportional to how many
// are lying around.
func (g *Gameplay) respawnEnemies(dead int, dt float64) {
	if dead == 0 {
		return
	}
	g.respawnTimer += dt * float64(dead)
	if g.respawnTimer < g.config.Respawn.Interval {
		return
	}
	g.respawnTimer = 0
	if p, ok := g.reg.RandomSpawnPoint(); ok {
		g.reg.SpawnEnemy(p)
		g.logger.Info("enemy respawned", "x", p.X(), "y", p.Y(), "z", p.Z())
	}
}

// UpdateCamera places the chase camera from the post-step player position.
func (g *Gameplay) UpdateCamera(dt float64) {
	player := g.reg.Player()
	if player == nil {
		return
	}
	aiming := world.Player.Get(player).Aiming
	g.Chase.Update(g.phys, g.reg.Position(player), g.View, aiming, dt)
}
