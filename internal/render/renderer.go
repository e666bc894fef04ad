package render

import (
	"errors"
	"image"
	"image/color"
)

// ErrQuit is returned from Game.Update when the player asks to leave.
// Backends translate it into their own clean-termination signal.
var ErrQuit = errors.New("render: quit requested")

// Renderer is the main rendering interface that abstracts the underlying
// graphics engine. Game logic builds a Camera and a DrawList and hands them
// over; it never touches backend types.
type Renderer interface {
	// Image operations
	NewImage(width, height int) Image

	// DrawScene rasterises a world-space draw list as seen from cam.
	DrawScene(dst Image, cam Camera, scene *DrawList)

	// Screen-space shapes
	FillRect(dst Image, x, y, width, height float32, clr color.Color)
	StrokeRect(dst Image, x, y, width, height, strokeWidth float32, clr color.Color)
	FillCircle(dst Image, x, y, radius float32, clr color.Color)

	// Text operations
	DrawText(dst Image, text string, x, y int, clr color.Color, scale float64)
	MeasureText(text string, scale float64) (width, height int)
}

// Image represents a renderable image surface that can be drawn to or drawn from.
type Image interface {
	// Properties
	Bounds() image.Rectangle
	Size() (width, height int)

	// Fill operations
	Fill(clr color.Color)
	Clear()

	// DrawTriangles draws triangles sampled from img onto this image.
	DrawTriangles(vertices []Vertex, indices []uint16, img Image, opts *DrawTrianglesOptions)

	// Resource management
	Dispose()
}

// DrawTrianglesOptions contains options for drawing triangles.
type DrawTrianglesOptions struct {
	AntiAlias bool
}

// Vertex represents a vertex for triangle rendering.
type Vertex struct {
	DstX   float32
	DstY   float32
	SrcX   float32
	SrcY   float32
	ColorR float32
	ColorG float32
	ColorB float32
	ColorA float32
}

// InputManager handles input from the user (keyboard, mouse, frame timing).
type InputManager interface {
	// Poll samples the devices once per frame. Deltas are relative to the
	// previous Poll.
	Poll()

	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
	GetCursorPosition() (x, y int)
	IsMouseButtonPressed(button MouseButton) bool
	IsMouseButtonJustPressed(button MouseButton) bool

	// MouseDelta returns cursor travel in pixels since the last Poll.
	MouseDelta() (dx, dy float64)

	// DeltaTime returns the simulated seconds covered by this frame.
	DeltaTime() float64

	// SetCursorCaptured hides and locks the cursor for mouse-look.
	SetCursorCaptured(captured bool)
}

// Key represents a keyboard key.
type Key int

// Key constants for the keys the game binds
const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyE // Interact key
	KeyR // Reload key
	KeySpace
	KeyTab
	KeyLeftControl
	KeyEscape
)

// MouseButton represents a mouse button.
type MouseButton int

// Mouse button constants
const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Game represents the game interface that the engine will call.
type Game interface {
	// Update advances the simulation by one frame. Returning ErrQuit ends the
	// loop cleanly.
	Update() error

	// Draw draws the game screen. It is called every frame.
	Draw(screen Image)

	// Layout accepts the outside size (e.g., window size) and returns the logical screen size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine represents the game engine that manages the game loop and window.
type Engine interface {
	// SetWindowSize sets the window size in pixels.
	SetWindowSize(width, height int)

	// SetWindowTitle sets the window title.
	SetWindowTitle(title string)

	// SetWindowResizable enables or disables window resizing.
	SetWindowResizable(resizable bool)

	// RunGame runs the game loop with the provided game.
	// This is a blocking call that runs until the game ends.
	RunGame(game Game) error
}
