package export

import (
	"testing"

	"github.com/sceneforge/sceneforge/internal/grid"
	"github.com/sceneforge/sceneforge/internal/project"
	"github.com/sceneforge/sceneforge/internal/scene"
)

func TestRenderDimensions(t *testing.T) {
	r := NewRenderer(grid.Default(), t.TempDir())

	img := r.Render(project.Project{Settings: project.Settings{GridSize: 32}}, 0.5)
	b := img.Bounds()
	if b.Dx() != 960 || b.Dy() != 540 {
		t.Errorf("size = %dx%d, want 960x540", b.Dx(), b.Dy())
	}
}

func TestRenderInvalidScaleFallsBack(t *testing.T) {
	r := NewRenderer(grid.Default(), t.TempDir())

	img := r.Render(project.Project{}, -3)
	if img.Bounds().Dx() != 960 {
		t.Errorf("width = %d, want half-size fallback", img.Bounds().Dx())
	}
}

func TestRenderPaintsShapes(t *testing.T) {
	r := NewRenderer(grid.Default(), t.TempDir())
	p := project.Project{
		Shapes: []scene.Shape{
			{ID: "s1", Geometry: scene.GeometryRectangle, Class: scene.ClassBoundary, X: 100, Y: 100, Width: 400, Height: 400},
		},
		Settings: project.Settings{GridSize: 32},
	}

	img := r.Render(p, 1)

	// A pixel on the shape's stroke differs from the background.
	bgR, bgG, bgB, _ := img.At(10, 950).RGBA()
	strokeR, strokeG, strokeB, _ := img.At(300, 100).RGBA()
	if bgR == strokeR && bgG == strokeG && bgB == strokeB {
		t.Error("shape stroke not painted")
	}
}

func TestRenderPlaceholderForMissingAsset(t *testing.T) {
	r := NewRenderer(grid.Default(), t.TempDir())
	p := project.Project{
		CanvasAssets: []scene.Asset{
			{ID: "a1", Name: "missing.png", Src: "/assets/missing.png", X: 200, Y: 200, Width: 100, Height: 100},
		},
	}

	img := r.Render(p, 1)

	bgR, _, _, _ := img.At(10, 1000).RGBA()
	boxR, _, _, _ := img.At(250, 250).RGBA()
	if bgR == boxR {
		t.Error("placeholder box not painted for missing asset file")
	}
}

func TestLoadAssetImageRejectsEscapingPath(t *testing.T) {
	r := NewRenderer(grid.Default(), t.TempDir())

	if img := r.loadAssetImage("/assets/../../etc/passwd"); img != nil {
		t.Error("path escaping the asset dir was loaded")
	}
	if img := r.loadAssetImage("http://example.com/x.png"); img != nil {
		t.Error("non-asset src was loaded")
	}
}
