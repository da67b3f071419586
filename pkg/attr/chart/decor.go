package chart

import (
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// Decorative panel drawing. Shadows and highlights are best-effort: when the
// rounded-corner geometry is invalid for the given box, the panel degrades to
// a plain rectangle instead of aborting the render.

const (
	shadowOffset = 5
	shadowGrow   = 8
)

var (
	shadowColor    = color.NRGBA{0, 0, 0, 25}
	highlightColor = color.NRGBA{255, 255, 255, 15}
)

// canRound reports whether a rounded rectangle with the given radius fits the
// box. A radius that is non-positive, NaN, or larger than half either side
// would produce degenerate arcs.
func canRound(w, h, radius float64) bool {
	if math.IsNaN(radius) || radius <= 0 {
		return false
	}
	return 2*radius <= w && 2*radius <= h
}

// panelPath traces either a rounded or plain rectangle depending on whether
// the radius is drawable. This is the single fallback branch for all
// decorative shapes.
func panelPath(dc *gg.Context, x, y, w, h, radius float64) {
	if canRound(w, h, radius) {
		dc.DrawRoundedRectangle(x, y, w, h, radius)
	} else {
		dc.DrawRectangle(x, y, w, h)
	}
}

// drawPanel renders a filled panel with border, synthetic drop shadow, and a
// translucent highlight over the top third.
func drawPanel(dc *gg.Context, x, y, w, h, radius float64, fill, border color.Color, borderWidth float64) {
	dc.SetColor(shadowColor)
	panelPath(dc, x+shadowOffset, y+shadowOffset, w+shadowGrow, h+shadowGrow, radius)
	dc.Fill()

	dc.SetColor(fill)
	panelPath(dc, x, y, w, h, radius)
	dc.Fill()

	dc.SetColor(border)
	dc.SetLineWidth(borderWidth)
	panelPath(dc, x, y, w, h, radius)
	dc.Stroke()

	dc.SetColor(highlightColor)
	panelPath(dc, x, y, w, h/3, radius)
	dc.Fill()
}
