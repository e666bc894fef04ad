// Package rendertest provides scripted input and a recording renderer for
// testing game code without a window.
package rendertest

import (
	"image"
	"image/color"

	"chosenoffset.com/blockout/internal/render"
)

// Input is a render.InputManager driven by the test. Held keys and buttons
// stay down until released; "just pressed" state lasts for one Poll.
type Input struct {
	Keys         map[render.Key]bool
	JustKeys     map[render.Key]bool
	Buttons      map[render.MouseButton]bool
	JustButtons  map[render.MouseButton]bool
	CursorX      int
	CursorY      int
	DX, DY       float64
	Dt           float64
	Captured     bool
	CaptureCalls int

	polls int
}

// NewInput returns an idle input reporting dt per frame.
func NewInput(dt float64) *Input {
	return &Input{
		Keys:        make(map[render.Key]bool),
		JustKeys:    make(map[render.Key]bool),
		Buttons:     make(map[render.MouseButton]bool),
		JustButtons: make(map[render.MouseButton]bool),
		Dt:          dt,
	}
}

// Press marks key as newly pressed and held.
func (in *Input) Press(key render.Key) {
	in.Keys[key] = true
	in.JustKeys[key] = true
}

// Release lets go of key.
func (in *Input) Release(key render.Key) {
	delete(in.Keys, key)
	delete(in.JustKeys, key)
}

// Click marks button as newly pressed and held.
func (in *Input) Click(button render.MouseButton) {
	in.Buttons[button] = true
	in.JustButtons[button] = true
}

// ReleaseButton lets go of button.
func (in *Input) ReleaseButton(button render.MouseButton) {
	delete(in.Buttons, button)
	delete(in.JustButtons, button)
}

// EndFrame clears the one-frame state: just-pressed flags and mouse travel.
func (in *Input) EndFrame() {
	clear(in.JustKeys)
	clear(in.JustButtons)
	in.DX, in.DY = 0, 0
}

// Polls returns how many times Poll was called.
func (in *Input) Polls() int {
	return in.polls
}

func (in *Input) Poll() { in.polls++ }

func (in *Input) IsKeyPressed(key render.Key) bool     { return in.Keys[key] }
func (in *Input) IsKeyJustPressed(key render.Key) bool { return in.JustKeys[key] }
func (in *Input) GetCursorPosition() (int, int)        { return in.CursorX, in.CursorY }

func (in *Input) IsMouseButtonPressed(b render.MouseButton) bool     { return in.Buttons[b] }
func (in *Input) IsMouseButtonJustPressed(b render.MouseButton) bool { return in.JustButtons[b] }

func (in *Input) MouseDelta() (float64, float64) { return in.DX, in.DY }
func (in *Input) DeltaTime() float64             { return in.Dt }

func (in *Input) SetCursorCaptured(captured bool) {
	in.Captured = captured
	in.CaptureCalls++
}

// Call is one recorded draw command.
type Call struct {
	Op    string // "scene", "fill", "stroke", "circle" or "text"
	X, Y  float32
	W, H  float32
	Text  string
	Color color.Color
	Items int // Primitive count for "scene"
}

// Recorder is a render.Renderer that records overlay calls instead of
// drawing them. Text is measured as 6x16 pixel glyphs.
type Recorder struct {
	Calls  []Call
	Camera render.Camera
}

func (r *Recorder) NewImage(width, height int) render.Image {
	return NewImage(width, height)
}

func (r *Recorder) DrawScene(dst render.Image, cam render.Camera, scene *render.DrawList) {
	r.Camera = cam
	r.Calls = append(r.Calls, Call{Op: "scene", Items: len(scene.Items)})
}

func (r *Recorder) FillRect(dst render.Image, x, y, w, h float32, clr color.Color) {
	r.Calls = append(r.Calls, Call{Op: "fill", X: x, Y: y, W: w, H: h, Color: clr})
}

func (r *Recorder) StrokeRect(dst render.Image, x, y, w, h, _ float32, clr color.Color) {
	r.Calls = append(r.Calls, Call{Op: "stroke", X: x, Y: y, W: w, H: h, Color: clr})
}

func (r *Recorder) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	r.Calls = append(r.Calls, Call{Op: "circle", X: x, Y: y, W: radius, H: radius, Color: clr})
}

func (r *Recorder) DrawText(dst render.Image, text string, x, y int, clr color.Color, _ float64) {
	r.Calls = append(r.Calls, Call{Op: "text", X: float32(x), Y: float32(y), Text: text, Color: clr})
}

func (r *Recorder) MeasureText(text string, scale float64) (int, int) {
	return int(float64(len(text)*6) * scale), int(16 * scale)
}

// Texts returns every string drawn, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, c := range r.Calls {
		if c.Op == "text" {
			out = append(out, c.Text)
		}
	}
	return out
}

// Find returns the first call with op whose text equals text, or whose
// text is ignored when text is empty.
func (r *Recorder) Find(op, text string) (Call, bool) {
	for _, c := range r.Calls {
		if c.Op == op && (text == "" || c.Text == text) {
			return c, true
		}
	}
	return Call{}, false
}

// Reset drops the recorded calls.
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

// Image is an in-memory render.Image that tracks its fill colour and how
// many triangles were drawn onto it.
type Image struct {
	width, height int
	Filled        color.Color
	Triangles     int
}

// NewImage returns a blank image of the given size.
func NewImage(width, height int) *Image {
	return &Image{width: width, height: height}
}

func (i *Image) Bounds() image.Rectangle { return image.Rect(0, 0, i.width, i.height) }
func (i *Image) Size() (int, int)        { return i.width, i.height }
func (i *Image) Fill(clr color.Color)    { i.Filled = clr }
func (i *Image) Clear()                  { i.Filled = nil }
func (i *Image) Dispose()                {}

func (i *Image) DrawTriangles(vertices []render.Vertex, indices []uint16, img render.Image, opts *render.DrawTrianglesOptions) {
	i.Triangles += len(indices) / 3
}
