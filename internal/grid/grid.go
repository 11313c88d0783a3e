// Package grid holds the coordinate math between raw pointer positions,
// the scaled on-screen viewport and the fixed-resolution logical canvas.
package grid

import "math"

// Logical canvas resolution. All stored object positions are expressed in
// this space regardless of the on-screen scale.
const (
	CanvasWidth  = 1920
	CanvasHeight = 1080
)

// DefaultGridSize divides 1920x1080 evenly: 60 columns, 33.75 rows.
const DefaultGridSize = 32

// viewportPadding accounts for the canvas border plus a little breathing
// room when fitting the viewport into its container.
const viewportPadding = 16

// Canvas is a logical drawing surface of a fixed resolution.
type Canvas struct {
	Width  float64
	Height float64
}

// Default returns the standard 1920x1080 landscape canvas.
func Default() Canvas {
	return Canvas{Width: CanvasWidth, Height: CanvasHeight}
}

// Viewport is the scaled, on-screen rendering of a logical canvas.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Scale  float64 `json:"scale"`
}

// ComputeViewport picks the largest scale at which the canvas fits the
// container while preserving its aspect ratio.
func (c Canvas) ComputeViewport(containerWidth, containerHeight float64) Viewport {
	availableWidth := containerWidth - viewportPadding
	availableHeight := containerHeight - viewportPadding

	scaleByWidth := availableWidth / c.Width
	scaleByHeight := availableHeight / c.Height

	scale := math.Min(scaleByWidth, scaleByHeight)
	if scale < 0 {
		scale = 0
	}

	return Viewport{
		Width:  c.Width * scale,
		Height: c.Height * scale,
		Scale:  scale,
	}
}

// Origin returns the top-left position that centers a viewport within its
// container.
func (c Canvas) Origin(containerWidth, containerHeight float64, vp Viewport) (x, y float64) {
	return (containerWidth - vp.Width) / 2, (containerHeight - vp.Height) / 2
}

// ScreenToLogical maps a raw pointer position to logical canvas
// coordinates. The result is clamped to [0, dim-1] so positions at the
// exact viewport edge never escape the canvas bounds.
func (c Canvas) ScreenToLogical(pointerX, pointerY, originX, originY, scale float64) (x, y float64) {
	if scale <= 0 {
		return 0, 0
	}
	x = clamp(math.Floor((pointerX-originX)/scale+0.5), 0, c.Width-1)
	y = clamp(math.Floor((pointerY-originY)/scale+0.5), 0, c.Height-1)
	return x, y
}

// Snap rounds a value to the nearest grid line.
func Snap(value float64, gridSize int) float64 {
	if gridSize <= 0 {
		return value
	}
	g := float64(gridSize)
	return math.Round(value/g) * g
}

// Index returns the grid cell index for a value.
func Index(value float64, gridSize int) int {
	if gridSize <= 0 {
		return 0
	}
	return int(math.Round(value / float64(gridSize)))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
