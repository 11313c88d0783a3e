// Package editor is the canvas interaction engine: it owns the scene
// store, the selection, the transform gestures and the shape drawing
// machine, and exposes the command/query surface the input and rendering
// boundaries talk to.
package editor

import (
	"sync"

	"github.com/sceneforge/sceneforge/internal/grid"
	"github.com/sceneforge/sceneforge/internal/scene"
	"github.com/sceneforge/sceneforge/internal/typeid"
)

// Tool is the active canvas tool. Drawing tools revert to select after
// one committed shape.
type Tool string

const (
	ToolSelect    Tool = "select"
	ToolRectangle Tool = "rectangle"
	ToolCircle    Tool = "circle"
)

// Default placement size for assets dropped onto the canvas.
const droppedAssetSize = 200

// Pointer carries one pointer event from the input boundary: raw screen
// coordinates plus the viewport transform needed to reach logical space.
type Pointer struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	OriginX float64 `json:"originX"`
	OriginY float64 `json:"originY"`
	Scale   float64 `json:"scale"`
	// TargetID is the object under the pointer when the renderer already
	// hit-tested; empty means the editor resolves it itself.
	TargetID string `json:"targetId,omitempty"`
	// Modifier is true while a multi-select modifier key is held.
	Modifier bool `json:"modifier,omitempty"`
}

type pointerMode int

const (
	modeIdle pointerMode = iota
	modeDragging
	modeMarquee
	modeDrawing
)

// Editor glues the scene components together behind a single mutex so a
// session goroutine and HTTP handlers can share it. Store mutations are
// already atomic; the mutex only guards gesture and tool state.
type Editor struct {
	mu        sync.Mutex
	store     *scene.Store
	selection *scene.Selection
	draw      *scene.DrawMachine
	canvas    grid.Canvas
	gridSize  int

	tool  Tool
	class scene.Class

	mode          pointerMode
	drag          *scene.DragGesture
	dragPointer   [2]float64
	marquee       scene.Rect
	marqueeAnchor [2]float64
}

func New(canvas grid.Canvas, gridSize int) *Editor {
	store := scene.NewStore()
	return &Editor{
		store:     store,
		selection: scene.NewSelection(),
		draw:      scene.NewDrawMachine(store, typeid.NewShapeID),
		canvas:    canvas,
		gridSize:  gridSize,
		tool:      ToolSelect,
		class:     scene.ClassBoundary,
	}
}

// Store exposes the scene store for the persistence layer and tests.
func (e *Editor) Store() *scene.Store { return e.store }

// Canvas returns the logical canvas this editor operates on.
func (e *Editor) Canvas() grid.Canvas { return e.canvas }

// GridSize returns the snapping grid size in logical pixels.
func (e *Editor) GridSize() int { return e.gridSize }

// SetTool arms a tool. Switching tools cancels any gesture in flight.
func (e *Editor) SetTool(t Tool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tool = t
	e.mode = modeIdle
	e.drag = nil
	e.draw.Cancel()
}

// Tool returns the active tool.
func (e *Editor) Tool() Tool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tool
}

// SetClass sets the default category applied to newly drawn shapes.
func (e *Editor) SetClass(c scene.Class) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if scene.ValidClass(c) {
		e.class = c
	}
}

// Class returns the current default shape category.
func (e *Editor) Class() scene.Class {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.class
}

// PointerDown dispatches a press to the active tool: drawing tools start
// a draft shape, the select tool either begins a drag on the hit object
// or opens a marquee on empty canvas.
func (e *Editor) PointerDown(p Pointer) {
	e.mu.Lock()
	defer e.mu.Unlock()

	x, y := e.canvas.ScreenToLogical(p.X, p.Y, p.OriginX, p.OriginY, p.Scale)

	if e.tool == ToolRectangle || e.tool == ToolCircle {
		geometry := scene.GeometryRectangle
		if e.tool == ToolCircle {
			geometry = scene.GeometryCircle
		}
		e.selection.Clear()
		e.draw.Begin(geometry, e.class, x, y)
		e.mode = modeDrawing
		return
	}

	targetID := p.TargetID
	if targetID == "" {
		targetID = e.hitTest(x, y)
	}

	if targetID == "" {
		if !p.Modifier {
			e.selection.Clear()
		}
		e.marqueeAnchor = [2]float64{x, y}
		e.marquee = scene.Rect{X: x, Y: y}
		e.mode = modeMarquee
		return
	}

	if p.Modifier {
		e.selection.Toggle(targetID)
	} else if !e.selection.Contains(targetID) {
		e.selection.SelectSingle(targetID)
	}

	if g, ok := scene.BeginDrag(e.store, targetID, x, y); ok {
		e.drag = g
		e.dragPointer = [2]float64{x, y}
		e.mode = modeDragging
	}
}

// PointerMove advances whichever gesture is active. Drag updates are
// visual-only; nothing is written to the store until PointerUp.
func (e *Editor) PointerMove(p Pointer) {
	e.mu.Lock()
	defer e.mu.Unlock()

	x, y := e.canvas.ScreenToLogical(p.X, p.Y, p.OriginX, p.OriginY, p.Scale)

	switch e.mode {
	case modeDrawing:
		e.draw.Move(x, y)
	case modeDragging:
		e.dragPointer = [2]float64{x, y}
	case modeMarquee:
		e.marquee = boxBetween(e.marqueeAnchor[0], e.marqueeAnchor[1], x, y)
	}
}

// PointerUp commits the active gesture: the drag writes its single store
// mutation, the marquee resolves its selection, and a draw either
// appends a shape or discards an undersized draft. Drawing tools revert
// to select afterwards.
func (e *Editor) PointerUp(p Pointer) {
	e.mu.Lock()

	x, y := e.canvas.ScreenToLogical(p.X, p.Y, p.OriginX, p.OriginY, p.Scale)

	// Store.notify runs subscribers synchronously on the mutating
	// goroutine, and subscribers call back into the editor. Store
	// writes therefore happen after e.mu is released.
	var commit func()

	switch e.mode {
	case modeDrawing:
		if sh, ok := e.draw.Finalize(x, y); ok {
			commit = func() { e.store.AddShape(sh) }
		}
		e.tool = ToolSelect
	case modeDragging:
		if g := e.drag; g != nil {
			e.drag = nil
			commit = func() { g.Commit(x, y) }
		}
	case modeMarquee:
		box := boxBetween(e.marqueeAnchor[0], e.marqueeAnchor[1], x, y)
		if !box.IsEmpty() {
			e.selection.SelectByMarquee(box, e.store.Objects())
		}
	}
	e.mode = modeIdle
	e.mu.Unlock()

	if commit != nil {
		commit()
	}
}

// hitTest returns the topmost object whose bounds contain the point.
// Assets paint above shapes, and later slice entries above earlier ones.
func (e *Editor) hitTest(x, y float64) string {
	objects := e.store.Objects()
	for i := len(objects) - 1; i >= 0; i-- {
		if objects[i].Bounds().Contains(x, y) {
			return objects[i].ObjectID()
		}
	}
	return ""
}

// BeginResize exposes the resize gesture to the transform-handle
// boundary; it refuses locked objects.
func (e *Editor) BeginResize(id string) (*scene.ResizeGesture, bool) {
	return scene.BeginResize(e.store, id)
}

// Selection returns the live ids, validated against the store.
func (e *Editor) Selection() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selection.Resolve(e.store)
}

// SelectSingle replaces the selection with one id.
func (e *Editor) SelectSingle(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection.SelectSingle(id)
}

// SelectMany replaces the selection, as group selection does.
func (e *Editor) SelectMany(ids []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection.SelectMany(ids)
}

// ClearSelection empties the selection.
func (e *Editor) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection.Clear()
}

func boxBetween(x0, y0, x1, y1 float64) scene.Rect {
	x := x0
	if x1 < x {
		x = x1
	}
	y := y0
	if y1 < y {
		y = y1
	}
	w := x1 - x0
	if w < 0 {
		w = -w
	}
	h := y1 - y0
	if h < 0 {
		h = -h
	}
	return scene.Rect{X: x, Y: y, Width: w, Height: h}
}
