package ebiten

import (
	"errors"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/blockout/internal/render"
)

// Debug font cell size in pixels.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

// EbitenRenderer implements the Renderer interface using Ebiten.
type EbitenRenderer struct {
	white    render.Image
	textImg  render.Image
	vertices []render.Vertex
	indices  []uint16
}

// NewRenderer creates a new Ebiten-based render.
func NewRenderer() render.Renderer {
	r := &EbitenRenderer{}
	r.white = r.NewImage(1, 1)
	r.white.Fill(color.White)
	return r
}

// NewImage creates a new image with the given dimensions.
func (r *EbitenRenderer) NewImage(width, height int) render.Image {
	return &EbitenImage{img: ebiten.NewImage(width, height)}
}

// DrawScene projects the draw list and paints it back to front.
func (r *EbitenRenderer) DrawScene(dst render.Image, cam render.Camera, scene *render.DrawList) {
	ebitenImg := dst.(*EbitenImage).img
	w, h := dst.Size()

	for _, shape := range render.Tessellate(cam, scene, w, h) {
		if shape.IsSegment() {
			a, b := shape.Points[0], shape.Points[1]
			vector.StrokeLine(ebitenImg, float32(a.X()), float32(a.Y()), float32(b.X()), float32(b.Y()), 1.5, shape.Color, true)
			continue
		}
		r.fillPolygon(dst, shape)
	}
}

// fillPolygon fans a convex polygon into triangles sampled from the white pixel.
func (r *EbitenRenderer) fillPolygon(dst render.Image, shape render.Shape) {
	r.vertices, r.indices = shape.Triangles(r.vertices[:0], r.indices[:0])
	dst.DrawTriangles(r.vertices, r.indices, r.white, &render.DrawTrianglesOptions{AntiAlias: false})
}

// FillRect draws a filled rectangle on the destination image.
func (r *EbitenRenderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	vector.DrawFilledRect(dst.(*EbitenImage).img, x, y, width, height, clr, false)
}

// StrokeRect draws a rectangle outline on the destination image.
func (r *EbitenRenderer) StrokeRect(dst render.Image, x, y, width, height, strokeWidth float32, clr color.Color) {
	vector.StrokeRect(dst.(*EbitenImage).img, x, y, width, height, strokeWidth, clr, false)
}

// FillCircle draws a filled circle on the destination image.
func (r *EbitenRenderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	vector.DrawFilledCircle(dst.(*EbitenImage).img, x, y, radius, clr, true)
}

// DrawText draws text with the debug font, tinted and scaled.
func (r *EbitenRenderer) DrawText(dst render.Image, str string, x, y int, clr color.Color, scale float64) {
	ebitenImg := dst.(*EbitenImage).img
	if scale <= 0 {
		scale = 1
	}

	tw, th := r.MeasureText(str, 1)
	if tw == 0 {
		return
	}
	if r.textImg == nil || r.textImg.Bounds().Dx() < tw || r.textImg.Bounds().Dy() < th {
		if r.textImg != nil {
			r.textImg.Dispose()
		}
		r.textImg = r.NewImage(max(tw, 256), max(th, glyphHeight))
	}
	r.textImg.Clear()
	scratch := r.textImg.(*EbitenImage).img
	ebitenutil.DebugPrintAt(scratch, str, 0, 0)

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(scale, scale)
	opts.GeoM.Translate(float64(x), float64(y))
	opts.ColorScale.ScaleWithColor(clr)
	ebitenImg.DrawImage(scratch.SubImage(image.Rect(0, 0, tw, th)).(*ebiten.Image), opts)
}

// MeasureText measures the width and height of text with the given scale.
func (r *EbitenRenderer) MeasureText(str string, scale float64) (width, height int) {
	return int(float64(len(str)*glyphWidth) * scale), int(float64(glyphHeight) * scale)
}

// EbitenImage wraps an ebiten.Image to implement the render.Image interface.
type EbitenImage struct {
	img     *ebiten.Image
	scratch []ebiten.Vertex
}

// Bounds returns the bounds of the image.
func (i *EbitenImage) Bounds() image.Rectangle {
	return i.img.Bounds()
}

// Size returns the width and height of the image.
func (i *EbitenImage) Size() (width, height int) {
	return i.img.Bounds().Dx(), i.img.Bounds().Dy()
}

// Fill fills the entire image with the given color.
func (i *EbitenImage) Fill(clr color.Color) {
	i.img.Fill(clr)
}

// Clear clears the image to transparent.
func (i *EbitenImage) Clear() {
	i.img.Clear()
}

// Dispose releases the image resources.
func (i *EbitenImage) Dispose() {
	if i.img != nil {
		i.img.Dispose()
	}
}

// DrawTriangles draws triangles on this image using the provided vertices.
func (i *EbitenImage) DrawTriangles(vertices []render.Vertex, indices []uint16, img render.Image, opts *render.DrawTrianglesOptions) {
	ebitenVertices := i.scratch[:0]
	for _, v := range vertices {
		ebitenVertices = append(ebitenVertices, ebiten.Vertex{
			DstX:   v.DstX,
			DstY:   v.DstY,
			SrcX:   v.SrcX,
			SrcY:   v.SrcY,
			ColorR: v.ColorR,
			ColorG: v.ColorG,
			ColorB: v.ColorB,
			ColorA: v.ColorA,
		})
	}
	i.scratch = ebitenVertices

	ebitenImg := img.(*EbitenImage).img

	if opts == nil {
		i.img.DrawTriangles(ebitenVertices, indices, ebitenImg, nil)
		return
	}

	i.img.DrawTriangles(ebitenVertices, indices, ebitenImg, &ebiten.DrawTrianglesOptions{
		AntiAlias: opts.AntiAlias,
	})
}

// EbitenInputManager implements the InputManager interface using Ebiten.
type EbitenInputManager struct {
	lastX, lastY int
	dx, dy       float64
	primed       bool
	captured     bool
}

// NewInputManager creates a new Ebiten-based input manager.
func NewInputManager() render.InputManager {
	return &EbitenInputManager{}
}

// Poll samples the cursor and derives this frame's mouse travel.
func (m *EbitenInputManager) Poll() {
	x, y := ebiten.CursorPosition()
	if !m.primed {
		m.lastX, m.lastY = x, y
		m.primed = true
	}
	m.dx = float64(x - m.lastX)
	m.dy = float64(y - m.lastY)
	m.lastX, m.lastY = x, y
}

// IsKeyPressed returns whether the specified key is currently pressed.
func (m *EbitenInputManager) IsKeyPressed(key render.Key) bool {
	return ebiten.IsKeyPressed(keyToEbitenKey(key))
}

// IsKeyJustPressed returns whether the specified key was just pressed this frame.
func (m *EbitenInputManager) IsKeyJustPressed(key render.Key) bool {
	return inpututil.IsKeyJustPressed(keyToEbitenKey(key))
}

// GetCursorPosition returns the current cursor position.
func (m *EbitenInputManager) GetCursorPosition() (x, y int) {
	return ebiten.CursorPosition()
}

// IsMouseButtonPressed returns whether the specified mouse button is currently pressed.
func (m *EbitenInputManager) IsMouseButtonPressed(button render.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(mouseButtonToEbiten(button))
}

// IsMouseButtonJustPressed returns whether the specified mouse button went down this frame.
func (m *EbitenInputManager) IsMouseButtonJustPressed(button render.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(mouseButtonToEbiten(button))
}

// MouseDelta returns cursor travel since the previous Poll.
func (m *EbitenInputManager) MouseDelta() (dx, dy float64) {
	return m.dx, m.dy
}

// DeltaTime returns the fixed tick length.
func (m *EbitenInputManager) DeltaTime() float64 {
	return 1.0 / float64(ebiten.TPS())
}

// SetCursorCaptured switches between captured mouse-look and a free cursor.
func (m *EbitenInputManager) SetCursorCaptured(captured bool) {
	if captured == m.captured {
		return
	}
	m.captured = captured
	if captured {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
	// The cursor jumps when the mode changes; do not report it as travel.
	m.primed = false
}

// keyToEbitenKey converts a render.Key to an ebiten.Key.
func keyToEbitenKey(key render.Key) ebiten.Key {
	switch key {
	case render.KeyW:
		return ebiten.KeyW
	case render.KeyA:
		return ebiten.KeyA
	case render.KeyS:
		return ebiten.KeyS
	case render.KeyD:
		return ebiten.KeyD
	case render.KeyE:
		return ebiten.KeyE
	case render.KeyR:
		return ebiten.KeyR
	case render.KeySpace:
		return ebiten.KeySpace
	case render.KeyTab:
		return ebiten.KeyTab
	case render.KeyLeftControl:
		return ebiten.KeyControlLeft
	case render.KeyEscape:
		return ebiten.KeyEscape
	default:
		return 0
	}
}

// mouseButtonToEbiten converts a render.MouseButton to an ebiten.MouseButton.
func mouseButtonToEbiten(button render.MouseButton) ebiten.MouseButton {
	switch button {
	case render.MouseButtonLeft:
		return ebiten.MouseButtonLeft
	case render.MouseButtonRight:
		return ebiten.MouseButtonRight
	case render.MouseButtonMiddle:
		return ebiten.MouseButtonMiddle
	default:
		return ebiten.MouseButtonLeft
	}
}

// EbitenEngine implements the Engine interface using Ebiten.
type EbitenEngine struct{}

// NewEngine creates a new Ebiten-based game engine.
func NewEngine() render.Engine {
	return &EbitenEngine{}
}

// SetWindowSize sets the window size in pixels.
func (e *EbitenEngine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

// SetWindowTitle sets the window title.
func (e *EbitenEngine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

// SetWindowResizable enables or disables window resizing.
func (e *EbitenEngine) SetWindowResizable(resizable bool) {
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
}

// RunGame runs the game loop with the provided game. A quit request from
// the game ends the loop without error.
func (e *EbitenEngine) RunGame(game render.Game) error {
	err := ebiten.RunGame(&gameAdapter{game: game})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// gameAdapter adapts a render.Game to ebiten.Game interface.
type gameAdapter struct {
	game   render.Game
	screen EbitenImage
}

// Update implements ebiten.Game.
func (a *gameAdapter) Update() error {
	err := a.game.Update()
	if errors.Is(err, render.ErrQuit) {
		return ebiten.Termination
	}
	return err
}

// Draw implements ebiten.Game.
func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.screen.img = screen
	a.game.Draw(&a.screen)
}

// Layout implements ebiten.Game.
func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
