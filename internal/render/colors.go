package render

import "image/color"

// Palette shared by the scene and the overlays.
var (
	White     = color.RGBA{255, 255, 255, 255}
	Black     = color.RGBA{0, 0, 0, 255}
	RayWhite  = color.RGBA{245, 245, 245, 255}
	Gray      = color.RGBA{130, 130, 130, 255}
	DarkGray  = color.RGBA{80, 80, 80, 255}
	Red       = color.RGBA{230, 41, 55, 255}
	Maroon    = color.RGBA{190, 33, 55, 255}
	Orange    = color.RGBA{255, 161, 0, 255}
	Gold      = color.RGBA{255, 203, 0, 255}
	Yellow    = color.RGBA{253, 249, 0, 255}
	Lime      = color.RGBA{0, 158, 47, 255}
	DarkGreen = color.RGBA{0, 117, 44, 255}
	Blue      = color.RGBA{0, 121, 241, 255}
	SkyBlue   = color.RGBA{102, 191, 255, 255}
	Purple    = color.RGBA{200, 122, 255, 255}
)

// Fade returns c with its opacity scaled by alpha in [0, 1]. color.RGBA is
// alpha-premultiplied, so every channel is scaled.
func Fade(c color.RGBA, alpha float64) color.RGBA {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}
