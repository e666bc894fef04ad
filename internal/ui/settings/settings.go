// Package settings holds the runtime toggles of the arena and the panel
// that edits them.
package settings

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"

	"chosenoffset.com/blockout/internal/simulation"
)

// Tool is the editor action bound to the primary button.
type Tool int

const (
	ToolPlace Tool = iota
	ToolErase
	ToolSpawn
)

// String returns the tool label shown in the editor banner.
func (t Tool) String() string {
	switch t {
	case ToolPlace:
		return "PLACE"
	case ToolErase:
		return "ERASE"
	case ToolSpawn:
		return "SPAWN"
	default:
		return "UNKNOWN"
	}
}

// Settings are the runtime toggles edited from the settings panel. The
// game manager owns one instance and hands it to the controllers every
// frame.
type Settings struct {
	FreezeEnemies  bool
	AttackPlayer   bool
	SuperSpeed     bool
	InfiniteHealth bool
	InfiniteAmmo   bool
	EditMode       bool

	Tool       Tool
	BlockSize  mgl64.Vec3
	BlockColor color.RGBA
}

// New returns settings with every toggle off and the editor brush
// taken from config.
func New(config simulation.EditorConfig) *Settings {
	return &Settings{
		Tool:       ToolPlace,
		BlockSize:  config.BlockSize,
		BlockColor: config.BlockColor,
	}
}
