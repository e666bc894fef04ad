package settings

import (
	"fmt"
	"image/color"

	"chosenoffset.com/blockout/internal/render"
	"chosenoffset.com/blockout/internal/simulation"
)

const (
	menuX     = 50
	menuY     = 100
	spacing   = 30
	textScale = 1.25
	hintScale = 0.7
)

// Swatches are the block colours offered by the panel, in display order.
var Swatches = []color.RGBA{
	render.Orange, render.Red, render.Lime, render.Blue,
	render.Purple, render.Gold, render.Gray, render.DarkGray,
}

type widgetKind int

const (
	labelWidget widgetKind = iota
	checkboxWidget
	buttonWidget
	swatchWidget
)

type rect struct {
	x, y, w, h int
}

func pointInRect(px, py int, r rect) bool {
	return px >= r.x && px <= r.x+r.w && py >= r.y && py <= r.y+r.h
}

type widget struct {
	kind    widgetKind
	r       rect
	text    string
	color   color.RGBA
	scale   float64
	checked bool
	onClick func()
}

// Panel is the settings screen: cheat toggles on the left, the world
// editor options on the right.
type Panel struct {
	renderer     render.Renderer
	config       simulation.EditorConfig
	screenWidth  int
	screenHeight int
}

// NewPanel creates a settings panel.
func NewPanel(r render.Renderer, config simulation.EditorConfig, width, height int) *Panel {
	return &Panel{
		renderer:     r,
		config:       config,
		screenWidth:  width,
		screenHeight: height,
	}
}

// SetSize updates the screen dimensions.
func (p *Panel) SetSize(width, height int) {
	p.screenWidth = width
	p.screenHeight = height
}

// Update applies a primary click to the widget under the cursor. It reports
// whether a setting changed.
func (p *Panel) Update(input render.InputManager, s *Settings) bool {
	if !input.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		return false
	}
	mx, my := input.GetCursorPosition()
	for _, w := range p.layout(s) {
		if w.onClick != nil && pointInRect(mx, my, w.r) {
			w.onClick()
			return true
		}
	}
	return false
}

// Draw renders the panel over the frozen scene.
func (p *Panel) Draw(screen render.Image, input render.InputManager, s *Settings) {
	p.renderer.FillRect(screen, 0, 0, float32(p.screenWidth), float32(p.screenHeight), render.Fade(render.Black, 0.6))

	mx, my := input.GetCursorPosition()
	for _, w := range p.layout(s) {
		hover := w.onClick != nil && pointInRect(mx, my, w.r)
		p.drawWidget(screen, w, hover)
	}
}

func (p *Panel) drawWidget(screen render.Image, w widget, hover bool) {
	x, y := float32(w.r.x), float32(w.r.y)
	width, height := float32(w.r.w), float32(w.r.h)

	switch w.kind {
	case labelWidget:
		p.renderer.DrawText(screen, w.text, w.r.x, w.r.y, w.color, w.scale)
	case checkboxWidget:
		boxColor := render.White
		if w.checked {
			boxColor = render.Lime
			p.renderer.FillRect(screen, x+4, y+4, 12, 12, render.Lime)
		}
		p.renderer.StrokeRect(screen, x, y, width, height, 2, boxColor)
		p.renderer.DrawText(screen, w.text, w.r.x+30, w.r.y+2, render.White, textScale)
	case buttonWidget:
		base := w.color
		if w.checked {
			base = render.Lime
		}
		if hover {
			base = render.Fade(base, 0.8)
		}
		p.renderer.FillRect(screen, x, y, width, height, base)
		p.renderer.StrokeRect(screen, x, y, width, height, 2, render.White)
		tw, th := p.renderer.MeasureText(w.text, textScale)
		p.renderer.DrawText(screen, w.text, w.r.x+(w.r.w-tw)/2, w.r.y+(w.r.h-th)/2, render.White, textScale)
	case swatchWidget:
		p.renderer.FillRect(screen, x, y, width, height, w.color)
		if hover || w.checked {
			p.renderer.StrokeRect(screen, x, y, width, height, 3, render.White)
		}
	}
}

// layout lists the widgets for the current settings. Update and Draw share
// it so clicks always land on what was drawn.
func (p *Panel) layout(s *Settings) []widget {
	var ws []widget
	label := func(x, y int, text string, clr color.RGBA, scale float64) {
		ws = append(ws, widget{kind: labelWidget, r: rect{x, y, 0, 0}, text: text, color: clr, scale: scale})
	}
	checkbox := func(x, y int, text string, value *bool) {
		ws = append(ws, widget{
			kind: checkboxWidget, r: rect{x, y, 20, 20}, text: text, checked: *value,
			onClick: func() { *value = !*value },
		})
	}
	button := func(x, y, w, h int, text string, clr color.RGBA, active bool, onClick func()) {
		ws = append(ws, widget{kind: buttonWidget, r: rect{x, y, w, h}, text: text, color: clr, checked: active, onClick: onClick})
	}
	spinner := func(x, y int, text string, value *float64) {
		label(x, y+2, text, render.White, textScale)
		label(x+100, y+2, fmt.Sprintf("%.1f", *value), render.White, textScale)
		button(x+160, y, 25, 25, "-", render.Maroon, false, func() { *value = p.clampSize(*value - p.config.SizeStep) })
		button(x+195, y, 25, 25, "+", render.DarkGreen, false, func() { *value = p.clampSize(*value + p.config.SizeStep) })
	}

	// Cheats
	y := menuY
	label(menuX, y-40, "Settings (Tab to close)", render.White, textScale)
	label(menuX, y, "-- Enemy AI --", render.Yellow, textScale)
	y += spacing
	checkbox(menuX, y, "Freeze Enemies", &s.FreezeEnemies)
	y += spacing
	checkbox(menuX, y, "Attack Player", &s.AttackPlayer)
	y += spacing
	checkbox(menuX, y, "Super Speed Enemies", &s.SuperSpeed)
	y += spacing * 2
	label(menuX, y, "-- Player Settings --", render.SkyBlue, textScale)
	y += spacing
	checkbox(menuX, y, "Infinite Health", &s.InfiniteHealth)
	y += spacing
	checkbox(menuX, y, "Infinite Ammo", &s.InfiniteAmmo)

	// World editor
	x := p.screenWidth / 2
	y = menuY
	label(x, y, "-- World Editor --", render.Orange, textScale)
	y += spacing
	checkbox(x, y, "Edit Mode", &s.EditMode)
	if !s.EditMode {
		return ws
	}
	label(x+30, y+spacing, "Exit menu to enter Edit Mode", render.RayWhite, hintScale)
	y += spacing * 3 / 2

	label(x, y, "Editor Tool:", render.RayWhite, textScale)
	y += spacing
	for i, t := range []struct {
		tool Tool
		text string
		clr  color.RGBA
	}{
		{ToolPlace, "Place", render.DarkGray},
		{ToolErase, "Erase", render.Maroon},
		{ToolSpawn, "Spawn", render.Purple},
	} {
		tool := t.tool
		button(x+i*90, y, 80, 25, t.text, t.clr, s.Tool == tool, func() { s.Tool = tool })
	}
	y += spacing * 3 / 2
	if s.Tool != ToolPlace {
		return ws
	}

	label(x, y, "Block Settings:", render.RayWhite, textScale)
	y += spacing
	spinner(x, y, "Size X:", &s.BlockSize[0])
	y += spacing
	spinner(x, y, "Size Y:", &s.BlockSize[1])
	y += spacing
	spinner(x, y, "Size Z:", &s.BlockSize[2])
	y += spacing * 3 / 2

	label(x, y, "Block Color:", render.RayWhite, textScale)
	y += spacing
	for i, clr := range Swatches {
		clr := clr
		ws = append(ws, widget{
			kind: swatchWidget, r: rect{x + i*40, y, 30, 30}, color: clr, checked: s.BlockColor == clr,
			onClick: func() { s.BlockColor = clr },
		})
	}
	return ws
}

func (p *Panel) clampSize(v float64) float64 {
	if v < p.config.MinSize {
		return p.config.MinSize
	}
	return v
}
