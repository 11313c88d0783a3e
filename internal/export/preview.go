// Package export renders scene snapshots to static PNG previews.
package export

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"

	"github.com/sceneforge/sceneforge/internal/grid"
	"github.com/sceneforge/sceneforge/internal/project"
	"github.com/sceneforge/sceneforge/internal/scene"
)

// classStyle is the stroke/fill pair for one shape class, matching the
// editor's on-canvas colors.
type classStyle struct {
	r, g, b float64
}

var classStyles = map[scene.Class]classStyle{
	scene.ClassBoundary:  {0xff / 255.0, 0x6b / 255.0, 0x6b / 255.0},
	scene.ClassHitbox:    {0x4e / 255.0, 0xcd / 255.0, 0xc4 / 255.0},
	scene.ClassTrigger:   {0xff / 255.0, 0xe6 / 255.0, 0x6d / 255.0},
	scene.ClassCollision: {0xff / 255.0, 0x95 / 255.0, 0x00 / 255.0},
}

// Renderer paints project snapshots at a configurable scale of the
// logical canvas.
type Renderer struct {
	canvas   grid.Canvas
	assetDir string
}

func NewRenderer(canvas grid.Canvas, assetDir string) *Renderer {
	return &Renderer{canvas: canvas, assetDir: assetDir}
}

// Render draws the project's scene: background, grid, shapes in paint
// order, then placed assets. Scale values outside (0, 1] fall back to
// half size.
func (r *Renderer) Render(p project.Project, scale float64) image.Image {
	if scale <= 0 || scale > 1 {
		scale = 0.5
	}

	w := int(r.canvas.Width * scale)
	h := int(r.canvas.Height * scale)
	dc := gg.NewContext(w, h)
	dc.Scale(scale, scale)

	// Background
	dc.SetRGB(0x1e/255.0, 0x1e/255.0, 0x1e/255.0)
	dc.Clear()

	r.drawGrid(dc, p.Settings.GridSize)

	for _, sh := range p.Shapes {
		r.drawShape(dc, sh)
	}
	for _, a := range p.CanvasAssets {
		r.drawAsset(dc, a)
	}

	return dc.Image()
}

func (r *Renderer) drawGrid(dc *gg.Context, gridSize int) {
	if gridSize <= 0 {
		gridSize = grid.DefaultGridSize
	}
	dc.SetRGBA(0x44/255.0, 0x44/255.0, 0x44/255.0, 1)
	dc.SetLineWidth(1)
	for x := 0.0; x <= r.canvas.Width; x += float64(gridSize) {
		dc.DrawLine(x, 0, x, r.canvas.Height)
		dc.Stroke()
	}
	for y := 0.0; y <= r.canvas.Height; y += float64(gridSize) {
		dc.DrawLine(0, y, r.canvas.Width, y)
		dc.Stroke()
	}
}

func (r *Renderer) drawShape(dc *gg.Context, sh scene.Shape) {
	style, ok := classStyles[sh.Class]
	if !ok {
		style = classStyles[scene.ClassBoundary]
	}

	if sh.Geometry == scene.GeometryCircle {
		cx := sh.X + sh.Radius
		cy := sh.Y + sh.Radius
		dc.DrawCircle(cx, cy, sh.Radius)
	} else {
		dc.DrawRectangle(sh.X, sh.Y, sh.Width, sh.Height)
	}

	dc.SetRGBA(style.r, style.g, style.b, 0.1)
	dc.FillPreserve()
	dc.SetRGBA(style.r, style.g, style.b, 1)
	dc.SetLineWidth(2)
	dc.Stroke()

	if sh.Name != "" {
		dc.SetRGB(1, 1, 1)
		dc.DrawString(sh.Name, sh.X+8, sh.Y+20)
	}
}

// drawAsset paints the asset file when it resolves under the asset dir,
// otherwise a neutral placeholder box. Audio clips always get the
// placeholder.
func (r *Renderer) drawAsset(dc *gg.Context, a scene.Asset) {
	if !a.IsAudio {
		if img := r.loadAssetImage(a.Src); img != nil {
			b := img.Bounds()
			if b.Dx() > 0 && b.Dy() > 0 {
				dc.Push()
				dc.Translate(a.X, a.Y)
				dc.Scale(a.Width/float64(b.Dx()), a.Height/float64(b.Dy()))
				dc.DrawImage(img, 0, 0)
				dc.Pop()
				return
			}
		}
	}

	dc.SetRGBA(0.5, 0.5, 0.5, 0.3)
	dc.DrawRectangle(a.X, a.Y, a.Width, a.Height)
	dc.Fill()
	dc.SetRGB(0.8, 0.8, 0.8)
	dc.SetLineWidth(1)
	dc.DrawRectangle(a.X, a.Y, a.Width, a.Height)
	dc.Stroke()
	if a.Name != "" {
		dc.DrawString(a.Name, a.X+4, a.Y+14)
	}
}

// loadAssetImage resolves a "/assets/..." src against the asset dir.
// Anything that escapes the dir or fails to decode yields nil.
func (r *Renderer) loadAssetImage(src string) image.Image {
	rel, ok := strings.CutPrefix(src, "/assets/")
	if !ok {
		return nil
	}
	path := filepath.Join(r.assetDir, filepath.FromSlash(rel))
	if !strings.HasPrefix(path, filepath.Clean(r.assetDir)+string(os.PathSeparator)) {
		return nil
	}
	img, err := gg.LoadImage(path)
	if err != nil {
		return nil
	}
	return img
}
