// Package game runs the arena: the gameplay and editor controllers, their
// cameras and the Manager that switches between gameplay, settings and
// editing every frame.
package game

import (
	"log/slog"

	"chosenoffset.com/blockout/internal/render"
	"chosenoffset.com/blockout/internal/simulation"
	"chosenoffset.com/blockout/internal/ui/hud"
	"chosenoffset.com/blockout/internal/ui/settings"
	"chosenoffset.com/blockout/internal/world"
)

// State is the active mode of the Manager.
type State int

const (
	StateSettings State = iota
	StateGameplay
	StateEditor
)

// String returns the mode name used in logs.
func (s State) String() string {
	switch s {
	case StateSettings:
		return "settings"
	case StateGameplay:
		return "gameplay"
	case StateEditor:
		return "editor"
	default:
		return "unknown"
	}
}

// Manager handles the overall game state and routes each frame to the
// active mode.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	State        State
	Settings     *settings.Settings
	Gameplay     *Gameplay
	Editor       *Editor
	Renderer     render.Renderer
	InputMgr     render.InputManager
	HUD          *hud.HUD
	Panel        *settings.Panel

	config *simulation.Config
	reg    *world.Registry
	logger *slog.Logger
	scene  render.DrawList
}

// NewManager creates a manager over a built arena. It starts in gameplay
// with the cursor captured.
func NewManager(r render.Renderer, input render.InputManager, config *simulation.Config, reg *world.Registry, logger *slog.Logger, width, height int) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		ScreenWidth:  width,
		ScreenHeight: height,
		State:        StateGameplay,
		Settings:     settings.New(config.Editor),
		Gameplay:     NewGameplay(config, reg, logger),
		Editor:       NewEditor(config, reg, logger),
		Renderer:     r,
		InputMgr:     input,
		HUD:          hud.New(r, width, height),
		Panel:        settings.NewPanel(r, config.Editor, width, height),
		config:       config,
		reg:          reg,
		logger:       logger,
	}
	m.Gameplay.UpdateCamera(0)
	input.SetCursorCaptured(true)
	return m
}

// Update advances one frame. It returns render.ErrQuit when the player
// presses Escape.
func (m *Manager) Update() error {
	m.InputMgr.Poll()
	if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		m.logger.Info("quit requested")
		return render.ErrQuit
	}

	dt := m.InputMgr.DeltaTime()
	if player := m.reg.Player(); player != nil {
		world.Character.Get(player).AnimClock += dt
	}

	if m.InputMgr.IsKeyJustPressed(render.KeyTab) {
		m.switchMode()
	}

	switch m.State {
	case StateGameplay:
		m.Gameplay.Update(m.InputMgr, m.Settings, dt)
	case StateEditor:
		m.Editor.Update(m.InputMgr, m.Settings, dt)
	case StateSettings:
		m.Panel.Update(m.InputMgr, m.Settings)
	}

	m.reg.DecayEffects(dt)

	if m.State == StateGameplay {
		m.Gameplay.UpdateCamera(dt)
	}
	return nil
}

// switchMode toggles between the settings panel and the mode it selects.
func (m *Manager) switchMode() {
	from := m.State
	switch m.State {
	case StateSettings:
		if m.Settings.EditMode {
			m.State = StateEditor
			m.Editor.Enter(m.Gameplay.Camera().Position, m.Gameplay.View)
		} else {
			m.State = StateGameplay
		}
		m.InputMgr.SetCursorCaptured(true)
	default:
		m.State = StateSettings
		m.InputMgr.SetCursorCaptured(false)
	}
	m.logger.Info("mode switched", "from", from, "to", m.State)
}

// Camera returns the camera the current mode renders with.
func (m *Manager) Camera() render.Camera {
	if m.State == StateEditor {
		return m.Editor.Camera()
	}
	return m.Gameplay.Camera()
}

// Draw draws the current state.
func (m *Manager) Draw(screen render.Image) {
	screen.Fill(render.SkyBlue)

	cam := m.Camera()
	m.buildScene(&m.scene)
	m.Renderer.DrawScene(screen, cam, &m.scene)
	m.HUD.DrawEnemyBars(screen, cam, m.enemyBars())

	switch m.State {
	case StateGameplay:
		m.HUD.DrawGameplay(screen, m.status())
	case StateEditor:
		m.HUD.DrawEditor(screen, m.Settings.Tool.String())
	case StateSettings:
		m.Panel.Draw(screen, m.InputMgr, m.Settings)
	}
}

// Layout handles window resize.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != m.ScreenWidth || outsideHeight != m.ScreenHeight {
		m.ScreenWidth = outsideWidth
		m.ScreenHeight = outsideHeight
		m.HUD.SetScreenSize(outsideWidth, outsideHeight)
		m.Panel.SetSize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
