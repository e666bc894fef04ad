// Package simulation provides the tuning rules for the arena simulation.
// Every constant the controllers use lives here so a YAML file can override
// any of them without touching code.
package simulation

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Config holds all simulation rules
type Config struct {
	Physics  PhysicsConfig  `yaml:"physics"`
	Player   PlayerConfig   `yaml:"player"`
	Weapon   WeaponConfig   `yaml:"weapon"`
	Enemy    EnemyConfig    `yaml:"enemy"`
	Respawn  RespawnConfig  `yaml:"respawn"`
	Camera   CameraConfig   `yaml:"camera"`
	Editor   EditorConfig   `yaml:"editor"`
	Dialogue DialogueConfig `yaml:"dialogue"`
	Arena    ArenaConfig    `yaml:"arena"`
}

// PhysicsConfig defines the rigid-body world
type PhysicsConfig struct {
	Gravity   float64 `yaml:"gravity"`    // Vertical acceleration (negative is down)
	SubSteps  int     `yaml:"sub_steps"`  // Max sub-steps per frame step
	FixedStep float64 `yaml:"fixed_step"` // Preferred sub-step length in seconds
}

// PlayerConfig defines the player character
type PlayerConfig struct {
	Height          float64    `yaml:"height"`
	Radius          float64    `yaml:"radius"`
	Mass            float64    `yaml:"mass"`
	Friction        float64    `yaml:"friction"`
	MaxHealth       float64    `yaml:"max_health"`
	MoveSpeed       float64    `yaml:"move_speed"`       // Horizontal speed, set directly each frame
	JumpImpulse     float64    `yaml:"jump_impulse"`     // Upward impulse applied once per jump
	GroundProbe     float64    `yaml:"ground_probe"`     // Ground ray length as a fraction of height
	SpawnOrigin     mgl64.Vec3 `yaml:"spawn_origin"`     // Start and respawn position
	RespawnDelay    float64    `yaml:"respawn_delay"`    // Seconds spent Dying before reset
	LookSensitivity float64    `yaml:"look_sensitivity"` // Radians per pixel of mouse travel
	InitialYaw      float64    `yaml:"initial_yaw"`      // Degrees
	InitialPitch    float64    `yaml:"initial_pitch"`    // Degrees
	PitchLimit      float64    `yaml:"pitch_limit"`      // Degrees, symmetric
}

// WeaponConfig defines the hit-scan rifle
type WeaponConfig struct {
	MagazineSize   int        `yaml:"magazine_size"`
	FireCooldown   float64    `yaml:"fire_cooldown"`
	ReloadTime     float64    `yaml:"reload_time"`
	Range          float64    `yaml:"range"`
	Damage         float64    `yaml:"damage"`
	HitImpulse     float64    `yaml:"hit_impulse"`   // Scale of the impulse along the shot direction
	MuzzleOffset   mgl64.Vec3 `yaml:"muzzle_offset"` // Local offset, rotated by the facing angle
	ImpactLifetime float64    `yaml:"impact_lifetime"`
	TracerLifetime float64    `yaml:"tracer_lifetime"`
}

// EnemyConfig defines enemy bodies and AI
type EnemyConfig struct {
	Height             float64 `yaml:"height"`
	Radius             float64 `yaml:"radius"`
	Mass               float64 `yaml:"mass"`
	Friction           float64 `yaml:"friction"`
	MaxHealth          float64 `yaml:"max_health"`
	Speed              float64 `yaml:"speed"`
	SuperSpeed         float64 `yaml:"super_speed"`
	ChaseRange         float64 `yaml:"chase_range"`
	MeleeRange         float64 `yaml:"melee_range"`
	MeleeDamageRate    float64 `yaml:"melee_damage_rate"` // Damage per second while in melee range
	DecisionMin        float64 `yaml:"decision_min"`      // Wander re-decision interval bounds
	DecisionMax        float64 `yaml:"decision_max"`
	InitialDecisionMin float64 `yaml:"initial_decision_min"`
	InitialDecisionMax float64 `yaml:"initial_decision_max"`
	AnimPhaseMax       float64 `yaml:"anim_phase_max"` // Spawned animation clocks start in [0, max]
	ReapDelay          float64 `yaml:"reap_delay"`     // Seconds a Dying enemy stays before removal
	TalkRangeSq        float64 `yaml:"talk_range_sq"`  // Squared distance for starting dialogue
}

// RespawnConfig defines the enemy replacement policy
type RespawnConfig struct {
	Interval float64 `yaml:"interval"` // Accumulated deadCount*dt needed for one spawn
}

// CameraConfig defines the chase camera
type CameraConfig struct {
	FocusHeight     float64 `yaml:"focus_height"`
	Distance        float64 `yaml:"distance"`
	AimDistance     float64 `yaml:"aim_distance"`
	Smoothing       float64 `yaml:"smoothing"`        // Exponential easing rate per second
	OcclusionOffset float64 `yaml:"occlusion_offset"` // Distance kept in front of occluders
	FovY            float64 `yaml:"fov_y"`            // Degrees
}

// EditorConfig defines the world editor
type EditorConfig struct {
	FlySpeed        float64    `yaml:"fly_speed"`
	RayLength       float64    `yaml:"ray_length"`
	CursorOffset    float64    `yaml:"cursor_offset"`   // Push along the hit normal against z-fighting
	EraseRadiusSq   float64    `yaml:"erase_radius_sq"` // Squared distance for spawn point erasure
	InitialPosition mgl64.Vec3 `yaml:"initial_position"`
	InitialYaw      float64    `yaml:"initial_yaw"`
	InitialPitch    float64    `yaml:"initial_pitch"`
	BlockSize       mgl64.Vec3 `yaml:"block_size"`
	BlockColor      color.RGBA `yaml:"block_color"`
	SizeStep        float64    `yaml:"size_step"`
	MinSize         float64    `yaml:"min_size"`
}

// DialogueConfig holds the lines NPCs pick from
type DialogueConfig struct {
	Lines []string `yaml:"lines"`
}

// ArenaConfig describes the level built at startup
type ArenaConfig struct {
	BlockFriction float64      `yaml:"block_friction"`
	Blocks        []BlockSpec  `yaml:"blocks"`
	SpawnPoints   []mgl64.Vec3 `yaml:"spawn_points"`
}

// BlockSpec is one static box of the arena
type BlockSpec struct {
	Position mgl64.Vec3 `yaml:"position"`
	Size     mgl64.Vec3 `yaml:"size"`
	Color    color.RGBA `yaml:"color"`
}

var (
	arenaGray     = color.RGBA{130, 130, 130, 255}
	arenaDarkGray = color.RGBA{80, 80, 80, 255}
	editorOrange  = color.RGBA{255, 161, 0, 255}
)

// DefaultConfig returns the stock arena rules
func DefaultConfig() *Config {
	return &Config{
		Physics: PhysicsConfig{
			Gravity:   -25.0,
			SubSteps:  10,
			FixedStep: 1.0 / 60.0,
		},
		Player: PlayerConfig{
			Height:          2.0,
			Radius:          0.4,
			Mass:            1.0,
			Friction:        0.0,
			MaxHealth:       100,
			MoveSpeed:       8.0,
			JumpImpulse:     12.0,
			GroundProbe:     0.55,
			SpawnOrigin:     mgl64.Vec3{0, 5, 0},
			RespawnDelay:    3.0,
			LookSensitivity: 0.003,
			InitialYaw:      -90,
			InitialPitch:    20,
			PitchLimit:      89,
		},
		Weapon: WeaponConfig{
			MagazineSize:   30,
			FireCooldown:   0.1,
			ReloadTime:     2.0,
			Range:          1000,
			Damage:         25,
			HitImpulse:     2.0,
			MuzzleOffset:   mgl64.Vec3{0, 1.15, 0.7},
			ImpactLifetime: 0.1,
			TracerLifetime: 0.05,
		},
		Enemy: EnemyConfig{
			Height:             2.0,
			Radius:             0.4,
			Mass:               1.0,
			Friction:           1.0,
			MaxHealth:          100,
			Speed:              4.0,
			SuperSpeed:         8.0,
			ChaseRange:         20.0,
			MeleeRange:         1.5,
			MeleeDamageRate:    20.0,
			DecisionMin:        2.0,
			DecisionMax:        5.0,
			InitialDecisionMin: 1.0,
			InitialDecisionMax: 3.0,
			AnimPhaseMax:       10.0,
			ReapDelay:          3.0,
			TalkRangeSq:        16.0,
		},
		Respawn: RespawnConfig{
			Interval: 5.0,
		},
		Camera: CameraConfig{
			FocusHeight:     1.5,
			Distance:        8.0,
			AimDistance:     3.0,
			Smoothing:       5.0,
			OcclusionOffset: 0.2,
			FovY:            60,
		},
		Editor: EditorConfig{
			FlySpeed:        15.0,
			RayLength:       1000,
			CursorOffset:    0.01,
			EraseRadiusSq:   2.0,
			InitialPosition: mgl64.Vec3{0, 15, 15},
			InitialYaw:      -90,
			InitialPitch:    -45,
			BlockSize:       mgl64.Vec3{2, 2, 2},
			BlockColor:      editorOrange,
			SizeStep:        0.5,
			MinSize:         0.1,
		},
		Dialogue: DialogueConfig{
			Lines: []string{
				"Hello there, traveller.",
				"The weather is strange today, isn't it?",
				"Be careful, I've heard strange noises coming from the ruins.",
				"Are you looking for something?",
				"I'm just admiring the view. It never gets old.",
				"Sometimes I wonder what lies beyond those walls.",
			},
		},
		Arena: defaultArena(),
	}
}

func defaultArena() ArenaConfig {
	return ArenaConfig{
		BlockFriction: 1.0,
		Blocks: []BlockSpec{
			// Floor
			{Position: mgl64.Vec3{0, -0.5, 0}, Size: mgl64.Vec3{80, 1, 80}, Color: arenaGray},

			// Boundary walls
			{Position: mgl64.Vec3{0, 2, 40.5}, Size: mgl64.Vec3{80, 5, 1}, Color: arenaDarkGray},
			{Position: mgl64.Vec3{0, 2, -40.5}, Size: mgl64.Vec3{80, 5, 1}, Color: arenaDarkGray},
			{Position: mgl64.Vec3{40.5, 2, 0}, Size: mgl64.Vec3{1, 5, 80}, Color: arenaDarkGray},
			{Position: mgl64.Vec3{-40.5, 2, 0}, Size: mgl64.Vec3{1, 5, 80}, Color: arenaDarkGray},

			// Cover
			{Position: mgl64.Vec3{0, 1, 15}, Size: mgl64.Vec3{20, 2, 2}, Color: arenaDarkGray},
			{Position: mgl64.Vec3{-15, 1, 5}, Size: mgl64.Vec3{3, 2, 3}, Color: arenaDarkGray},
			{Position: mgl64.Vec3{-12, 1, -10}, Size: mgl64.Vec3{3, 2, 3}, Color: arenaDarkGray},
			{Position: mgl64.Vec3{20, 1, -5}, Size: mgl64.Vec3{10, 2, 2}, Color: arenaDarkGray},
			{Position: mgl64.Vec3{24, 1, -10}, Size: mgl64.Vec3{2, 2, 10}, Color: arenaDarkGray},
			{Position: mgl64.Vec3{0, 2, -20}, Size: mgl64.Vec3{4, 4, 4}, Color: arenaDarkGray},
		},
		SpawnPoints: []mgl64.Vec3{
			{0, 2, 25},
			{20, 2, -25},
			{-25, 2, 0},
			{15, 2, 10},
			{-15, 2, -20},
		},
	}
}

// LoadConfig loads simulation rules from a YAML file layered over the defaults.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read simulation config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse simulation config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config %s: %w", path, err)
	}

	return config, nil
}

// Validate rejects rules the controllers cannot run with
func (c *Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"physics.fixed_step", c.Physics.FixedStep},
		{"player.height", c.Player.Height},
		{"player.radius", c.Player.Radius},
		{"player.mass", c.Player.Mass},
		{"player.max_health", c.Player.MaxHealth},
		{"weapon.fire_cooldown", c.Weapon.FireCooldown},
		{"weapon.reload_time", c.Weapon.ReloadTime},
		{"weapon.range", c.Weapon.Range},
		{"enemy.height", c.Enemy.Height},
		{"enemy.radius", c.Enemy.Radius},
		{"enemy.mass", c.Enemy.Mass},
		{"enemy.max_health", c.Enemy.MaxHealth},
		{"enemy.decision_min", c.Enemy.DecisionMin},
		{"respawn.interval", c.Respawn.Interval},
		{"camera.fov_y", c.Camera.FovY},
		{"editor.ray_length", c.Editor.RayLength},
		{"editor.min_size", c.Editor.MinSize},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", p.name, p.value)
		}
	}

	if c.Physics.SubSteps < 1 {
		return fmt.Errorf("physics.sub_steps must be at least 1, got %d", c.Physics.SubSteps)
	}
	if c.Weapon.MagazineSize < 1 {
		return fmt.Errorf("weapon.magazine_size must be at least 1, got %d", c.Weapon.MagazineSize)
	}
	if c.Enemy.DecisionMax < c.Enemy.DecisionMin {
		return fmt.Errorf("enemy.decision_max (%v) is below decision_min (%v)", c.Enemy.DecisionMax, c.Enemy.DecisionMin)
	}
	if c.Enemy.InitialDecisionMax < c.Enemy.InitialDecisionMin {
		return fmt.Errorf("enemy.initial_decision_max (%v) is below initial_decision_min (%v)",
			c.Enemy.InitialDecisionMax, c.Enemy.InitialDecisionMin)
	}
	if len(c.Dialogue.Lines) == 0 {
		return fmt.Errorf("dialogue.lines must not be empty")
	}

	return nil
}
