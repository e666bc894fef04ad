package game

import (
	"log/slog"
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"

	"chosenoffset.com/blockout/internal/physics"
	"chosenoffset.com/blockout/internal/physics/aabb"
	"chosenoffset.com/blockout/internal/render"
	"chosenoffset.com/blockout/internal/render/rendertest"
	"chosenoffset.com/blockout/internal/simulation"
	"chosenoffset.com/blockout/internal/ui/settings"
	"chosenoffset.com/blockout/internal/world"
)

const frame = 1.0 / 60.0

var quiet = slog.New(slog.DiscardHandler)

type fixture struct {
	config   *simulation.Config
	phys     *physics.World
	reg      *world.Registry
	gameplay *Gameplay
	settings *settings.Settings
	input    *rendertest.Input
}

// newFixture builds a gameplay controller. With arena false only the player
// exists, floating at the spawn origin with nothing to land on.
func newFixture(arena bool) *fixture {
	config := simulation.DefaultConfig()
	phys := physics.NewWorld(aabb.New(config.Physics.Gravity, config.Physics.FixedStep), quiet)
	reg := world.NewRegistry(phys, config, rand.New(rand.NewSource(1)), quiet)
	if arena {
		reg.BuildArena()
	} else {
		reg.SpawnPlayer(config.Player.SpawnOrigin)
	}
	g := NewGameplay(config, reg, quiet)
	g.UpdateCamera(0)
	return &fixture{
		config:   config,
		phys:     phys,
		reg:      reg,
		gameplay: g,
		settings: settings.New(config.Editor),
		input:    rendertest.NewInput(frame),
	}
}

func (f *fixture) step(dt float64) {
	f.gameplay.Update(f.input, f.settings, dt)
	f.gameplay.UpdateCamera(dt)
	f.input.EndFrame()
}

func (f *fixture) player() (*world.CharacterData, *world.PlayerData) {
	entry := f.reg.Player()
	return world.Character.Get(entry), world.Player.Get(entry)
}

func (f *fixture) enemies() []donburi.Entity {
	var out []donburi.Entity
	f.reg.EachEnemy(func(entry *donburi.Entry) {
		out = append(out, entry.Entity())
	})
	return out
}

func (f *fixture) kill(entity donburi.Entity) {
	entry := f.reg.Entry(entity)
	c := world.Character.Get(entry)
	c.Health = 0
	c.Kill()
	f.phys.DisableContactResponse(f.reg.BodyID(entry))
}

func horizontal(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

func TestLastRoundDoesNotStartReload(t *testing.T) {
	f := newFixture(false)
	_, pd := f.player()
	pd.Ammo = 1

	f.input.Buttons[render.MouseButtonLeft] = true
	f.step(frame)

	if pd.Ammo != 0 {
		t.Fatalf("Expected ammo 0, got %d", pd.Ammo)
	}
	if pd.Reloading() {
		t.Fatalf("Expected no reload on the emptying shot, got timer %v", pd.ReloadTimer)
	}
	if got := len(f.reg.Effects()); got != 1 {
		t.Errorf("Expected a lone tracer for a miss, got %d effects", got)
	}

	started := false
	for i := 0; i < 20 && !started; i++ {
		f.step(frame)
		started = pd.Reloading()
	}
	if !started {
		t.Fatal("Expected the next trigger pull on an empty magazine to reload")
	}
	if pd.ReloadTimer != f.config.Weapon.ReloadTime {
		t.Errorf("Expected reload timer %v, got %v", f.config.Weapon.ReloadTime, pd.ReloadTimer)
	}
	if pd.Ammo != 0 {
		t.Errorf("Expected ammo still 0 while reloading, got %d", pd.Ammo)
	}
}

func TestReloadRefillsMagazine(t *testing.T) {
	f := newFixture(false)
	_, pd := f.player()
	pd.Ammo = 5

	f.input.Press(render.KeyR)
	f.step(frame)
	if !pd.Reloading() {
		t.Fatal("Expected R to start a reload")
	}

	for i := 0; i < 130; i++ {
		f.step(frame)
	}
	if pd.Reloading() || pd.Ammo != 30 {
		t.Errorf("Expected a full magazine after reloading, got ammo %d timer %v", pd.Ammo, pd.ReloadTimer)
	}

	f.settings.InfiniteAmmo = true
	pd.Ammo = 5
	f.input.Press(render.KeyR)
	f.step(frame)
	if pd.Reloading() {
		t.Error("Expected R to do nothing with infinite ammo")
	}
}

func TestInfiniteAmmoKeepsCount(t *testing.T) {
	f := newFixture(false)
	f.settings.InfiniteAmmo = true
	_, pd := f.player()

	f.input.Buttons[render.MouseButtonLeft] = true
	for i := 0; i < 30; i++ {
		f.step(frame)
	}
	if pd.Ammo != 30 {
		t.Errorf("Expected 30 rounds, got %d", pd.Ammo)
	}
}

func TestShotDamagesEnemy(t *testing.T) {
	f := newFixture(false)
	cam := f.gameplay.Camera()
	target := cam.Position.Add(cam.Forward().Mul(20))
	enemy := f.reg.SpawnEnemy(target)

	f.input.Buttons[render.MouseButtonLeft] = true
	f.gameplay.Update(f.input, f.settings, frame)

	c := world.Character.Get(f.reg.Entry(enemy))
	if c.Health != 75 {
		t.Errorf("Expected enemy health 75, got %v", c.Health)
	}

	impacts := 0
	for _, e := range f.reg.Effects() {
		if e.IsImpact() {
			impacts++
		}
	}
	if impacts != 1 || len(f.reg.Effects()) != 2 {
		t.Errorf("Expected one impact and one tracer, got %d effects", len(f.reg.Effects()))
	}
}

func TestChaseVelocityTowardPlayer(t *testing.T) {
	tests := []struct {
		name       string
		superSpeed bool
		want       float64
	}{
		{"normal", false, 4},
		{"super speed", true, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(false)
			f.settings.AttackPlayer = true
			f.settings.SuperSpeed = tt.superSpeed
			enemy := f.reg.SpawnEnemy(mgl64.Vec3{10, 5, 0})

			f.step(frame)

			entry := f.reg.Entry(enemy)
			v := horizontal(f.phys.Velocity(f.reg.BodyID(entry)))
			if math.Abs(v.Len()-tt.want) > 1e-9 {
				t.Errorf("Expected speed %v, got %v", tt.want, v.Len())
			}
			if !v.Normalize().ApproxEqualThreshold(mgl64.Vec3{-1, 0, 0}, 1e-9) {
				t.Errorf("Expected heading toward the player, got %v", v.Normalize())
			}
			c := world.Character.Get(entry)
			if !c.Moving || math.Abs(c.Facing-90) > 1e-9 {
				t.Errorf("Expected moving and facing 90, got %v and %v", c.Moving, c.Facing)
			}
		})
	}
}

func TestChaseStopsOutOfRange(t *testing.T) {
	f := newFixture(false)
	f.settings.AttackPlayer = true
	enemy := f.reg.SpawnEnemy(mgl64.Vec3{25, 5, 0})
	entry := f.reg.Entry(enemy)
	f.phys.SetVelocity(f.reg.BodyID(entry), mgl64.Vec3{3, 0, 3})

	f.step(frame)

	if v := horizontal(f.phys.Velocity(f.reg.BodyID(entry))); v.Len() != 0 {
		t.Errorf("Expected no horizontal velocity, got %v", v)
	}
	if world.Character.Get(entry).Moving {
		t.Error("Expected enemy to stop")
	}
}

func TestMeleeDamage(t *testing.T) {
	f := newFixture(false)
	f.settings.AttackPlayer = true
	f.reg.SpawnEnemy(mgl64.Vec3{1, 5, 0})
	pc, _ := f.player()

	f.step(frame)
	want := 100 - 20*frame
	if math.Abs(pc.Health-want) > 1e-9 {
		t.Errorf("Expected health %v, got %v", want, pc.Health)
	}

	f.settings.InfiniteHealth = true
	before := pc.Health
	f.step(frame)
	if pc.Health != before {
		t.Errorf("Expected health unchanged with infinite health, got %v", pc.Health)
	}
}

func TestFrozenEnemiesHold(t *testing.T) {
	f := newFixture(false)
	f.settings.FreezeEnemies = true
	f.settings.AttackPlayer = true
	enemy := f.reg.SpawnEnemy(mgl64.Vec3{10, 5, 0})
	entry := f.reg.Entry(enemy)
	clock := world.Character.Get(entry).AnimClock

	f.step(frame)

	if v := horizontal(f.phys.Velocity(f.reg.BodyID(entry))); v.Len() != 0 {
		t.Errorf("Expected frozen enemy to stay put, got %v", v)
	}
	if world.Character.Get(entry).AnimClock != clock {
		t.Error("Expected frozen enemy's animation clock to stop")
	}
}

func TestWanderFlipsOnDecision(t *testing.T) {
	f := newFixture(false)
	enemy := f.reg.SpawnEnemy(mgl64.Vec3{10, 5, 0})
	entry := f.reg.Entry(enemy)
	world.Enemy.Get(entry).AITimer = frame / 2

	f.step(frame)

	c := world.Character.Get(entry)
	e := world.Enemy.Get(entry)
	if !c.Moving {
		t.Fatal("Expected the first decision to start walking")
	}
	if e.AITimer < 2 || e.AITimer > 5 {
		t.Errorf("Expected next decision in [2,5], got %v", e.AITimer)
	}
	if math.Abs(e.Wander.Len()-1) > 1e-9 || e.Wander.Y() != 0 {
		t.Errorf("Expected a horizontal unit heading, got %v", e.Wander)
	}
	v := horizontal(f.phys.Velocity(f.reg.BodyID(entry)))
	if !v.ApproxEqualThreshold(e.Wander.Mul(4), 1e-9) {
		t.Errorf("Expected wander velocity %v, got %v", e.Wander.Mul(4), v)
	}
}

func TestDialogueRangeBoundary(t *testing.T) {
	tests := []struct {
		distSq float64
		want   bool
	}{
		{15.999, true},
		{16.001, false},
	}
	for _, tt := range tests {
		f := newFixture(false)
		f.reg.SpawnEnemy(mgl64.Vec3{math.Sqrt(tt.distSq), 5, 0})

		f.input.Press(render.KeyE)
		f.step(frame)

		if got := f.gameplay.InDialogue(); got != tt.want {
			t.Errorf("distSq %v: Expected dialogue %v, got %v", tt.distSq, tt.want, got)
		}
	}
}

func TestDialogueLifecycle(t *testing.T) {
	f := newFixture(false)
	enemy := f.reg.SpawnEnemy(mgl64.Vec3{2, 5, 0})
	entry := f.reg.Entry(enemy)
	pc, _ := f.player()

	f.input.Press(render.KeyE)
	f.input.Keys[render.KeyW] = true
	f.step(frame)

	if f.gameplay.DialoguePartner() != enemy {
		t.Fatalf("Expected dialogue with %v, got %v", enemy, f.gameplay.DialoguePartner())
	}
	if !slices.Contains(f.config.Dialogue.Lines, f.gameplay.DialogueLine()) {
		t.Errorf("Expected a configured line, got %q", f.gameplay.DialogueLine())
	}
	if math.Abs(pc.Facing-270) > 1e-9 {
		t.Errorf("Expected player facing 270, got %v", pc.Facing)
	}
	if c := world.Character.Get(entry); math.Abs(c.Facing-90) > 1e-9 {
		t.Errorf("Expected enemy facing 90, got %v", c.Facing)
	}
	if pc.Moving {
		t.Error("Expected the player frozen while talking")
	}
	if v := horizontal(f.phys.Velocity(f.reg.BodyID(f.reg.Player()))); v.Len() != 0 {
		t.Errorf("Expected no player drift during dialogue, got %v", v)
	}

	f.input.Press(render.KeyE)
	f.step(frame)
	if f.gameplay.InDialogue() || f.gameplay.DialogueLine() != "" {
		t.Error("Expected E to end the dialogue")
	}
}

func TestNoDialogueInAttackMode(t *testing.T) {
	f := newFixture(false)
	f.settings.AttackPlayer = true
	f.reg.SpawnEnemy(mgl64.Vec3{2, 5, 0})

	f.input.Press(render.KeyE)
	f.step(frame)
	if f.gameplay.InDialogue() {
		t.Error("Expected no dialogue while enemies attack")
	}
}

func TestNoDialogueWithDyingEnemy(t *testing.T) {
	f := newFixture(false)
	f.kill(f.reg.SpawnEnemy(mgl64.Vec3{2, 5, 0}))

	f.input.Press(render.KeyE)
	f.step(frame)
	if f.gameplay.InDialogue() {
		t.Error("Expected Dying enemies to be ignored")
	}
}

func TestRespawnTimerAccumulatesDeadCount(t *testing.T) {
	f := newFixture(true)
	f.settings.FreezeEnemies = true
	all := f.enemies()
	f.kill(all[0])
	f.kill(all[1])

	for i := 1; i <= 4; i++ {
		f.step(0.5)
		if got := f.gameplay.RespawnTimer(); math.Abs(got-float64(i)) > 1e-9 {
			t.Fatalf("frame %d: Expected timer %v, got %v", i, float64(i), got)
		}
		if got := f.reg.EnemyCount(); got != 5 {
			t.Fatalf("frame %d: Expected 5 enemies, got %d", i, got)
		}
	}

	f.step(0.5)
	if got := f.reg.EnemyCount(); got != 6 {
		t.Errorf("Expected exactly one new enemy, got %d enemies", got)
	}
	if got := f.gameplay.RespawnTimer(); got != 0 {
		t.Errorf("Expected timer reset to 0, got %v", got)
	}
}

func TestDeadEnemiesReapedAfterDelay(t *testing.T) {
	f := newFixture(true)
	f.settings.FreezeEnemies = true
	victim := f.enemies()[0]
	f.kill(victim)

	for i := 0; i < 6; i++ {
		f.step(0.5)
	}
	if f.reg.Entry(victim) == nil {
		t.Fatal("Expected the body to stay for the full countdown")
	}
	f.step(0.5)
	if f.reg.Entry(victim) != nil {
		t.Error("Expected the enemy reaped once its countdown passed 3s")
	}
}

func TestEnemyDiesOnceAndBecomesGhost(t *testing.T) {
	f := newFixture(false)
	enemy := f.reg.SpawnEnemy(mgl64.Vec3{10, 5, 0})
	entry := f.reg.Entry(enemy)
	world.Character.Get(entry).Health = 0

	f.step(frame)

	c := world.Character.Get(entry)
	if c.State != world.Dying {
		t.Fatalf("Expected Dying, got %v", c.State)
	}
	if c.DeathTimer != 0 {
		t.Errorf("Expected the countdown to start next frame, got %v", c.DeathTimer)
	}

	pos := f.reg.Position(entry)
	if _, ok := f.phys.Raycast(pos.Add(mgl64.Vec3{0, 0, 5}), pos.Sub(mgl64.Vec3{0, 0, 5})); ok {
		t.Error("Expected a Dying enemy to stop blocking shots")
	}

	f.step(frame)
	if math.Abs(c.DeathTimer-frame) > 1e-12 {
		t.Errorf("Expected countdown %v, got %v", frame, c.DeathTimer)
	}
}

func TestPlayerRespawnsAfterDelay(t *testing.T) {
	f := newFixture(true)
	f.settings.FreezeEnemies = true
	pc, pd := f.player()
	pd.Ammo = 3
	pc.Health = 0
	id := f.reg.BodyID(f.reg.Player())

	f.step(frame)
	if pc.State != world.Dying {
		t.Fatalf("Expected Dying, got %v", pc.State)
	}

	f.phys.SetVelocity(id, mgl64.Vec3{10, 10, 10})
	for i := 0; i < 6; i++ {
		f.step(0.5)
	}
	if pc.State != world.Dying {
		t.Fatalf("Expected still Dying at exactly 3s, got %v", pc.State)
	}

	f.step(frame)
	if pc.State != world.Grounded || pc.Health != pc.MaxHealth || pd.Ammo != 30 {
		t.Errorf("Expected full reset, got state %v health %v ammo %d", pc.State, pc.Health, pd.Ammo)
	}
	if pos := f.phys.Position(id); !pos.ApproxEqualThreshold(f.config.Player.SpawnOrigin, 0.05) {
		t.Errorf("Expected the player back at the spawn origin, got %v", pos)
	}
	if v := horizontal(f.phys.Velocity(id)); v.Len() != 0 {
		t.Errorf("Expected no leftover horizontal velocity, got %v", v)
	}
}

func TestJumpAndLand(t *testing.T) {
	f := newFixture(true)
	f.settings.FreezeEnemies = true
	pc, _ := f.player()

	for i := 0; i < 120; i++ {
		f.step(frame)
	}
	id := f.reg.BodyID(f.reg.Player())
	if y := f.phys.Position(id).Y(); math.Abs(y-1) > 0.01 {
		t.Fatalf("Expected the player standing on the floor, got y=%v", y)
	}

	f.input.Press(render.KeySpace)
	f.step(frame)
	if pc.State != world.Jumping {
		t.Fatalf("Expected Jumping, got %v", pc.State)
	}
	if vy := f.phys.Velocity(id).Y(); vy <= 0 {
		t.Errorf("Expected upward velocity, got %v", vy)
	}

	landed := false
	for i := 0; i < 120 && !landed; i++ {
		f.step(frame)
		landed = pc.State == world.Grounded
	}
	if !landed {
		t.Error("Expected the ground probe to land the player")
	}
}

func TestMovementFollowsCamera(t *testing.T) {
	f := newFixture(false)
	pc, _ := f.player()
	id := f.reg.BodyID(f.reg.Player())

	f.input.Keys[render.KeyW] = true
	f.step(frame)

	want := f.gameplay.View.Heading().Mul(8)
	if v := horizontal(f.phys.Velocity(id)); !v.ApproxEqualThreshold(want, 1e-9) {
		t.Errorf("Expected velocity %v, got %v", want, v)
	}
	if !pc.Moving {
		t.Error("Expected the player to be moving")
	}

	f.input.Keys[render.KeyD] = true
	f.step(frame)
	if v := horizontal(f.phys.Velocity(id)); math.Abs(v.Len()-8) > 1e-9 {
		t.Errorf("Expected diagonal input normalised to speed 8, got %v", v.Len())
	}
}
