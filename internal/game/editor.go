package game

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/blockout/internal/physics"
	"chosenoffset.com/blockout/internal/render"
	"chosenoffset.com/blockout/internal/simulation"
	"chosenoffset.com/blockout/internal/ui/settings"
	"chosenoffset.com/blockout/internal/world"
)

// Editor flies a free camera over the arena and edits blocks and spawn
// points at the point under the crosshair.
type Editor struct {
	config *simulation.Config
	reg    *world.Registry
	logger *slog.Logger

	Fly *FlyCamera

	cursor      mgl64.Vec3
	cursorValid bool
}

// NewEditor creates the editor controller.
func NewEditor(config *simulation.Config, reg *world.Registry, logger *slog.Logger) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor{
		config: config,
		reg:    reg,
		logger: logger,
		Fly:    NewFlyCamera(config.Editor, config.Camera.FovY),
	}
}

// Cursor returns the edit point and whether the view ray hit anything.
func (e *Editor) Cursor() (mgl64.Vec3, bool) {
	return e.cursor, e.cursorValid
}

// Camera returns the editor camera.
func (e *Editor) Camera() render.Camera {
	return e.Fly.Camera()
}

// Enter moves the editor camera to the given viewpoint.
func (e *Editor) Enter(position mgl64.Vec3, view Orbit) {
	e.Fly.Position = position
	e.Fly.View = view
}

// Update flies the camera, refreshes the cursor and applies the current
// tool on a primary click.
func (e *Editor) Update(input render.InputManager, s *settings.Settings, dt float64) {
	ed := e.config.Editor
	dx, dy := input.MouseDelta()
	e.Fly.View.Look(dx, dy, e.config.Player.LookSensitivity, e.config.Player.PitchLimit)
	e.Fly.Move(input, ed.FlySpeed, dt)

	from := e.Fly.Position
	to := from.Add(e.Fly.View.Forward().Mul(ed.RayLength))
	hit, ok := e.reg.Physics().Raycast(from, to)
	e.cursorValid = ok
	if !ok {
		return
	}
	e.cursor = hit.Point.Add(hit.Normal.Mul(ed.CursorOffset))

	if input.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		e.Apply(s, hit, e.cursor)
	}
}

// Apply runs the selected tool at cursor. hit is the ray result the cursor
// was derived from.
func (e *Editor) Apply(s *settings.Settings, hit physics.Hit, cursor mgl64.Vec3) {
	switch s.Tool {
	case settings.ToolPlace:
		e.reg.SpawnStaticBlock(cursor, s.BlockSize, s.BlockColor)
		e.logger.Info("block placed", "x", cursor.X(), "y", cursor.Y(), "z", cursor.Z())
	case settings.ToolSpawn:
		e.reg.AddSpawnPoint(cursor)
		e.logger.Info("spawn point added", "x", cursor.X(), "y", cursor.Y(), "z", cursor.Z())
	case settings.ToolErase:
		if hit.Tag == physics.TagStatic && e.reg.RemoveBlockEntity(hit.Owner) {
			e.logger.Info("block erased", "blocks", e.reg.BlockCount())
		}
		if e.reg.RemoveSpawnPointNear(cursor, e.config.Editor.EraseRadiusSq) {
			e.logger.Info("spawn point erased", "spawn_points", len(e.reg.SpawnPoints()))
		}
	}
}
