package editor

import (
	"testing"

	"github.com/sceneforge/sceneforge/internal/grid"
	"github.com/sceneforge/sceneforge/internal/scene"
)

// pt builds a pointer event with an identity viewport transform so screen
// coordinates equal logical coordinates.
func pt(x, y float64) Pointer {
	return Pointer{X: x, Y: y, Scale: 1}
}

func newTestEditor() *Editor {
	return New(grid.Default(), grid.DefaultGridSize)
}

func TestDrawToolCreatesShapeAndReverts(t *testing.T) {
	e := newTestEditor()
	e.SetTool(ToolRectangle)
	e.SetClass(scene.ClassHitbox)

	e.PointerDown(pt(100, 100))
	e.PointerMove(pt(120, 110))
	e.PointerUp(pt(130, 130))

	shapes := e.Store().Snapshot().Shapes
	if len(shapes) != 1 {
		t.Fatalf("shapes = %d, want 1", len(shapes))
	}
	sh := shapes[0]
	if sh.X != 100 || sh.Y != 100 || sh.Width != 30 || sh.Height != 30 {
		t.Errorf("shape = %+v, want 30x30 at (100, 100)", sh)
	}
	if sh.Class != scene.ClassHitbox {
		t.Errorf("class = %q, want hitbox", sh.Class)
	}
	if e.Tool() != ToolSelect {
		t.Errorf("tool = %q, want revert to select", e.Tool())
	}
}

func TestDrawToolRevertsEvenWhenUndersized(t *testing.T) {
	e := newTestEditor()
	e.SetTool(ToolCircle)

	e.PointerDown(pt(100, 100))
	e.PointerUp(pt(105, 105))

	if len(e.Store().Snapshot().Shapes) != 0 {
		t.Error("undersized draw created a shape")
	}
	if e.Tool() != ToolSelect {
		t.Errorf("tool = %q, want revert to select", e.Tool())
	}
}

func TestDragMovesShape(t *testing.T) {
	e := newTestEditor()
	e.Store().AddShape(scene.Shape{ID: "s1", X: 200, Y: 200, Width: 80, Height: 60})

	e.PointerDown(pt(210, 215))
	e.PointerMove(pt(240, 230))
	e.PointerUp(pt(260, 235))

	sh := e.Store().Snapshot().Shapes[0]
	if sh.X != 250 || sh.Y != 220 {
		t.Errorf("position = (%v, %v), want (250, 220)", sh.X, sh.Y)
	}
	if got := e.Selection(); len(got) != 1 || got[0] != "s1" {
		t.Errorf("selection = %v, want [s1]", got)
	}
}

func TestDragDoesNotWriteUntilRelease(t *testing.T) {
	e := newTestEditor()
	e.Store().AddShape(scene.Shape{ID: "s1", X: 200, Y: 200, Width: 80, Height: 60})

	e.PointerDown(pt(210, 215))
	e.PointerMove(pt(500, 500))

	sh := e.Store().Snapshot().Shapes[0]
	if sh.X != 200 || sh.Y != 200 {
		t.Error("drag wrote to the store before release")
	}
}

func TestClickLockedShapeSelectsWithoutDrag(t *testing.T) {
	e := newTestEditor()
	e.Store().AddShape(scene.Shape{ID: "s1", X: 200, Y: 200, Width: 80, Height: 60, Locked: true})

	e.PointerDown(pt(210, 215))
	e.PointerMove(pt(400, 400))
	e.PointerUp(pt(400, 400))

	sh := e.Store().Snapshot().Shapes[0]
	if sh.X != 200 || sh.Y != 200 {
		t.Error("locked shape moved")
	}
	if got := e.Selection(); len(got) != 1 || got[0] != "s1" {
		t.Errorf("selection = %v, want [s1]", got)
	}
}

func TestModifierClickTogglesSelection(t *testing.T) {
	e := newTestEditor()
	e.Store().AddShape(scene.Shape{ID: "s1", X: 0, Y: 0, Width: 50, Height: 50})
	e.Store().AddShape(scene.Shape{ID: "s2", X: 100, Y: 0, Width: 50, Height: 50})

	e.PointerDown(pt(10, 10))
	e.PointerUp(pt(10, 10))

	down := pt(110, 10)
	down.Modifier = true
	e.PointerDown(down)
	e.PointerUp(pt(110, 10))

	got := e.Selection()
	if len(got) != 2 {
		t.Fatalf("selection = %v, want both shapes", got)
	}
}

func TestMarqueeSelectsOverlappingObjects(t *testing.T) {
	e := newTestEditor()
	e.Store().AddShape(scene.Shape{ID: "in", X: 100, Y: 100, Width: 50, Height: 50})
	e.Store().AddShape(scene.Shape{ID: "out", X: 900, Y: 900, Width: 50, Height: 50})

	// Start on empty canvas, sweep across the first shape.
	e.PointerDown(pt(50, 50))
	e.PointerMove(pt(200, 200))
	e.PointerUp(pt(300, 300))

	got := e.Selection()
	if len(got) != 1 || got[0] != "in" {
		t.Errorf("selection = %v, want [in]", got)
	}
}

func TestClickEmptyCanvasClearsSelection(t *testing.T) {
	e := newTestEditor()
	e.Store().AddShape(scene.Shape{ID: "s1", X: 0, Y: 0, Width: 50, Height: 50})
	e.SelectSingle("s1")

	e.PointerDown(pt(500, 500))
	e.PointerUp(pt(500, 500))

	if got := e.Selection(); len(got) != 0 {
		t.Errorf("selection = %v, want empty", got)
	}
}

func TestHitTestPicksTopmost(t *testing.T) {
	e := newTestEditor()
	// Identical bounds; s2 paints later so it is on top. Assets paint
	// above all shapes.
	e.Store().AddShape(scene.Shape{ID: "s1", X: 0, Y: 0, Width: 50, Height: 50})
	e.Store().AddShape(scene.Shape{ID: "s2", X: 0, Y: 0, Width: 50, Height: 50})

	e.PointerDown(pt(10, 10))
	e.PointerUp(pt(10, 10))
	if got := e.Selection(); len(got) != 1 || got[0] != "s2" {
		t.Errorf("selection = %v, want [s2]", got)
	}

	e.Store().PlaceAsset(scene.Asset{ID: "a1", X: 0, Y: 0, Width: 50, Height: 50})
	e.PointerDown(pt(10, 10))
	e.PointerUp(pt(10, 10))
	if got := e.Selection(); len(got) != 1 || got[0] != "a1" {
		t.Errorf("selection = %v, want [a1]", got)
	}
}

func TestSetToolCancelsGestureInFlight(t *testing.T) {
	e := newTestEditor()
	e.SetTool(ToolRectangle)
	e.PointerDown(pt(100, 100))

	e.SetTool(ToolSelect)
	e.PointerUp(pt(200, 200))

	if len(e.Store().Snapshot().Shapes) != 0 {
		t.Error("cancelled draft was committed")
	}
}

func TestSetClassRejectsInvalid(t *testing.T) {
	e := newTestEditor()
	e.SetClass(scene.ClassTrigger)
	e.SetClass("bogus")
	if e.Class() != scene.ClassTrigger {
		t.Errorf("class = %q, want trigger preserved", e.Class())
	}
}

func TestViewportTransformAppliedToPointer(t *testing.T) {
	e := newTestEditor()
	e.Store().AddShape(scene.Shape{ID: "s1", X: 200, Y: 200, Width: 80, Height: 60})

	// Half-scale viewport with origin (20, 30): screen (125, 137.5) maps
	// to logical (210, 215).
	p := Pointer{X: 125, Y: 137.5, OriginX: 20, OriginY: 30, Scale: 0.5}
	e.PointerDown(p)

	if got := e.Selection(); len(got) != 1 || got[0] != "s1" {
		t.Errorf("selection = %v, want [s1]", got)
	}
	e.PointerUp(p)
}
