package world

import (
	"image/color"
	"log/slog"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"

	"chosenoffset.com/blockout/internal/physics"
	"chosenoffset.com/blockout/internal/simulation"
)

var (
	blockQuery  = donburi.NewQuery(filter.Contains(Block, Body))
	enemyQuery  = donburi.NewQuery(filter.Contains(Enemy, Character, Body))
	playerQuery = donburi.NewQuery(filter.Contains(Player, Character, Body))
)

// Registry owns every live entity and keeps it paired with exactly one
// physics body. Bodies are removed from the physics world before their
// entity is destroyed.
type Registry struct {
	ecs     donburi.World
	physics *physics.World
	config  *simulation.Config
	rng     *rand.Rand
	logger  *slog.Logger

	player      donburi.Entity
	spawnPoints []mgl64.Vec3
	effects     []Effect
}

// NewRegistry creates an empty registry bound to a physics world.
func NewRegistry(phys *physics.World, config *simulation.Config, rng *rand.Rand, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		ecs:     donburi.NewWorld(),
		physics: phys,
		config:  config,
		rng:     rng,
		logger:  logger,
		player:  donburi.Null,
	}
}

// Physics returns the physics world the registry spawns into.
func (r *Registry) Physics() *physics.World {
	return r.physics
}

// BuildArena creates the configured level: blocks, spawn points, one enemy
// per spawn point and the player.
func (r *Registry) BuildArena() {
	for _, b := range r.config.Arena.Blocks {
		r.SpawnStaticBlock(b.Position, b.Size, b.Color)
	}
	for _, sp := range r.config.Arena.SpawnPoints {
		r.AddSpawnPoint(sp)
		r.SpawnEnemy(sp)
	}
	r.SpawnPlayer(r.config.Player.SpawnOrigin)

	r.logger.Info("arena built",
		"blocks", r.BlockCount(),
		"enemies", r.EnemyCount(),
		"spawn_points", len(r.spawnPoints))
}

// SpawnStaticBlock adds an immovable box to the level.
func (r *Registry) SpawnStaticBlock(pos, size mgl64.Vec3, clr color.RGBA) donburi.Entity {
	entity := r.ecs.Create(Block, Body)
	entry := r.ecs.Entry(entity)

	id := r.physics.AddBody(physics.BodyDesc{
		Shape:    physics.Box(size),
		Position: pos,
		Friction: r.config.Arena.BlockFriction,
	}, physics.TagStatic, entity)

	Block.SetValue(entry, BlockData{Size: size, Color: clr})
	Body.SetValue(entry, BodyData{ID: id, Tag: physics.TagStatic})
	return entity
}

// SpawnPlayer creates the player. Only one player exists; a second call
// returns the existing one.
func (r *Registry) SpawnPlayer(pos mgl64.Vec3) donburi.Entity {
	if r.ecs.Valid(r.player) {
		return r.player
	}

	pc := r.config.Player
	entity := r.ecs.Create(Player, Character, Body)
	entry := r.ecs.Entry(entity)

	id := r.physics.AddBody(physics.BodyDesc{
		Shape:        physics.Capsule(pc.Radius, pc.Height),
		Mass:         pc.Mass,
		Position:     pos,
		Friction:     pc.Friction,
		LockRotation: true,
		NeverSleep:   true,
	}, physics.TagPlayer, entity)

	Body.SetValue(entry, BodyData{ID: id, Tag: physics.TagPlayer})
	Character.SetValue(entry, CharacterData{
		Health:    pc.MaxHealth,
		MaxHealth: pc.MaxHealth,
		State:     Grounded,
	})
	Player.SetValue(entry, PlayerData{Ammo: r.config.Weapon.MagazineSize})

	r.player = entity
	return entity
}

// Player returns the player entry, or nil before SpawnPlayer.
func (r *Registry) Player() *donburi.Entry {
	if !r.ecs.Valid(r.player) {
		return nil
	}
	return r.ecs.Entry(r.player)
}

// SpawnEnemy creates an enemy at pos with full health, a random animation
// phase and a random first AI decision delay.
func (r *Registry) SpawnEnemy(pos mgl64.Vec3) donburi.Entity {
	ec := r.config.Enemy
	entity := r.ecs.Create(Enemy, Character, Body)
	entry := r.ecs.Entry(entity)

	id := r.physics.AddBody(physics.BodyDesc{
		Shape:        physics.Capsule(ec.Radius, ec.Height),
		Mass:         ec.Mass,
		Position:     pos,
		Friction:     ec.Friction,
		LockRotation: true,
		NeverSleep:   true,
	}, physics.TagEnemy, entity)

	Body.SetValue(entry, BodyData{ID: id, Tag: physics.TagEnemy})
	Character.SetValue(entry, CharacterData{
		Health:    ec.MaxHealth,
		MaxHealth: ec.MaxHealth,
		State:     Grounded,
		AnimClock: r.rng.Float64() * ec.AnimPhaseMax,
	})
	Enemy.SetValue(entry, EnemyData{
		AITimer: r.uniform(ec.InitialDecisionMin, ec.InitialDecisionMax),
	})

	r.logger.Debug("enemy spawned", "entity", entity, "x", pos.X(), "y", pos.Y(), "z", pos.Z())
	return entity
}

// uniform returns a random value in [min, max].
func (r *Registry) uniform(min, max float64) float64 {
	return min + r.rng.Float64()*(max-min)
}

// Rand returns the registry's random source.
func (r *Registry) Rand() *rand.Rand {
	return r.rng
}

// RemoveBlock removes every block for which match returns true and reports
// how many were removed.
func (r *Registry) RemoveBlock(match func(entry *donburi.Entry) bool) int {
	var doomed []donburi.Entity
	blockQuery.Each(r.ecs, func(entry *donburi.Entry) {
		if match(entry) {
			doomed = append(doomed, entry.Entity())
		}
	})
	for _, entity := range doomed {
		r.destroy(entity)
	}
	return len(doomed)
}

// RemoveBlockEntity removes one specific block.
func (r *Registry) RemoveBlockEntity(entity donburi.Entity) bool {
	return r.RemoveBlock(func(entry *donburi.Entry) bool {
		return entry.Entity() == entity
	}) > 0
}

// ReapDeadEnemies destroys every Dying enemy whose death timer passed the
// reap delay and reports how many were removed.
func (r *Registry) ReapDeadEnemies() int {
	delay := r.config.Enemy.ReapDelay
	var doomed []donburi.Entity
	enemyQuery.Each(r.ecs, func(entry *donburi.Entry) {
		c := Character.Get(entry)
		if c.State == Dying && c.DeathTimer > delay {
			doomed = append(doomed, entry.Entity())
		}
	})
	for _, entity := range doomed {
		r.destroy(entity)
	}
	if len(doomed) > 0 {
		r.logger.Info("enemies reaped", "count", len(doomed), "remaining", r.EnemyCount())
	}
	return len(doomed)
}

// destroy unregisters the body first, then removes the entity.
func (r *Registry) destroy(entity donburi.Entity) {
	if !r.ecs.Valid(entity) {
		return
	}
	r.physics.RemoveBody(Body.Get(r.ecs.Entry(entity)).ID)
	r.ecs.Remove(entity)
}

// EachEnemy calls fn for every enemy. Order is unspecified and fn must not
// spawn or destroy entities.
func (r *Registry) EachEnemy(fn func(entry *donburi.Entry)) {
	enemyQuery.Each(r.ecs, fn)
}

// EachBlock calls fn for every block.
func (r *Registry) EachBlock(fn func(entry *donburi.Entry)) {
	blockQuery.Each(r.ecs, fn)
}

// EnemyCount returns the number of live enemies, Dying ones included.
func (r *Registry) EnemyCount() int {
	return enemyQuery.Count(r.ecs)
}

// BlockCount returns the number of static blocks.
func (r *Registry) BlockCount() int {
	return blockQuery.Count(r.ecs)
}

// Entry returns the entry for entity, or nil when it no longer exists.
func (r *Registry) Entry(entity donburi.Entity) *donburi.Entry {
	if !r.ecs.Valid(entity) {
		return nil
	}
	return r.ecs.Entry(entity)
}

// Position returns the physics position of an entity's body.
func (r *Registry) Position(entry *donburi.Entry) mgl64.Vec3 {
	return r.physics.Position(Body.Get(entry).ID)
}

// BodyID returns the physics body of an entity.
func (r *Registry) BodyID(entry *donburi.Entry) physics.BodyID {
	return Body.Get(entry).ID
}

// SpawnPoints returns the current spawn points. The slice must not be modified.
func (r *Registry) SpawnPoints() []mgl64.Vec3 {
	return r.spawnPoints
}

// AddSpawnPoint appends a spawn point.
func (r *Registry) AddSpawnPoint(p mgl64.Vec3) {
	r.spawnPoints = append(r.spawnPoints, p)
}

// RemoveSpawnPointNear removes the first spawn point within squared
// distance radiusSq of p.
func (r *Registry) RemoveSpawnPointNear(p mgl64.Vec3, radiusSq float64) bool {
	for i, sp := range r.spawnPoints {
		if sp.Sub(p).LenSqr() < radiusSq {
			r.spawnPoints = append(r.spawnPoints[:i], r.spawnPoints[i+1:]...)
			return true
		}
	}
	return false
}

// RandomSpawnPoint picks a spawn point uniformly at random.
func (r *Registry) RandomSpawnPoint() (mgl64.Vec3, bool) {
	if len(r.spawnPoints) == 0 {
		return mgl64.Vec3{}, false
	}
	return r.spawnPoints[r.rng.Intn(len(r.spawnPoints))], true
}

// AddEffect records a visual effect living for life seconds.
func (r *Registry) AddEffect(start, end mgl64.Vec3, life float64, clr color.RGBA) {
	r.effects = append(r.effects, Effect{Start: start, End: end, Life: life, Color: clr})
}

// Effects returns the live effects. The slice must not be modified.
func (r *Registry) Effects() []Effect {
	return r.effects
}

// DecayEffects ages every effect by dt and drops the ones that expired,
// in the same pass. It returns the number removed.
func (r *Registry) DecayEffects(dt float64) int {
	kept := r.effects[:0]
	for _, e := range r.effects {
		e.Life -= dt
		if e.Life > 0 {
			kept = append(kept, e)
		}
	}
	removed := len(r.effects) - len(kept)
	for i := len(kept); i < len(r.effects); i++ {
		r.effects[i] = Effect{}
	}
	r.effects = kept
	return removed
}

// Close destroys every entity, removing each body from the physics world
// first. It is safe to call more than once.
func (r *Registry) Close() {
	var all []donburi.Entity
	collect := func(entry *donburi.Entry) { all = append(all, entry.Entity()) }
	blockQuery.Each(r.ecs, collect)
	enemyQuery.Each(r.ecs, collect)
	playerQuery.Each(r.ecs, collect)

	for _, entity := range all {
		r.destroy(entity)
	}
	r.player = donburi.Null
	r.effects = nil

	if len(all) > 0 {
		r.logger.Info("registry closed", "entities", len(all))
	}
}

// OpenArena wraps engine in a physics world, builds the arena in a new
// registry and returns it with a release func. Release closes the registry
// before the physics world.
func OpenArena(engine physics.Engine, config *simulation.Config, rng *rand.Rand, logger *slog.Logger) (*Registry, func()) {
	phys := physics.NewWorld(engine, logger)
	reg := NewRegistry(phys, config, rng, logger)
	reg.BuildArena()
	return reg, func() {
		reg.Close()
		phys.Close()
	}
}
