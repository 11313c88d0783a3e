package scene

import "math"

// MinDrawSize is the smallest committed draw gesture. A release below
// this in either dimension is treated as an accidental click and the
// draft is discarded.
const MinDrawSize = 20

// previewMinSize keeps the live preview visible from the first frame of
// the gesture.
const previewMinSize = 10

// DrawMachine is the click-drag-release protocol for creating shapes.
// It has two states, idle and drawing; cancellation is implicit by
// releasing below the minimum size. Exactly one shape is appended to the
// store per successful gesture, after which the tool reverts to select.
type DrawMachine struct {
	store *Store
	newID func() string

	drawing  bool
	geometry Geometry
	class    Class
	startX   float64
	startY   float64
	preview  Shape
}

// NewDrawMachine wires the machine to the store it commits into. newID
// supplies fresh unique shape ids.
func NewDrawMachine(store *Store, newID func() string) *DrawMachine {
	return &DrawMachine{store: store, newID: newID}
}

// Drawing reports whether a gesture is in progress.
func (m *DrawMachine) Drawing() bool { return m.drawing }

// Preview returns the current preview shape. Preview shapes are not in
// the store: they are not selectable, not draggable, and never persisted.
func (m *DrawMachine) Preview() (Shape, bool) {
	return m.preview, m.drawing
}

// Begin enters the drawing state at the given logical position. The
// class falls back to boundary when unset.
func (m *DrawMachine) Begin(geometry Geometry, class Class, x, y float64) {
	if m.drawing {
		return
	}
	if !ValidClass(class) {
		class = ClassBoundary
	}
	m.drawing = true
	m.geometry = geometry
	m.class = class
	m.startX, m.startY = x, y
	m.preview = m.buildPreview(x, y)
}

// Move recomputes the preview from the gesture origin and the current
// pointer. No-op when idle.
func (m *DrawMachine) Move(x, y float64) {
	if !m.drawing {
		return
	}
	m.preview = m.buildPreview(x, y)
}

// Finalize leaves the drawing state and returns the finished shape when
// the dragged region is at least MinDrawSize in both dimensions;
// otherwise nothing is created. Either way the preview is discarded and
// the caller should revert the tool to select. The shape is not written
// to the store here, so callers may finalize under their own lock and
// commit after releasing it.
func (m *DrawMachine) Finalize(x, y float64) (Shape, bool) {
	if !m.drawing {
		return Shape{}, false
	}
	m.drawing = false

	width := math.Abs(x - m.startX)
	height := math.Abs(y - m.startY)
	if width < MinDrawSize || height < MinDrawSize {
		m.preview = Shape{}
		return Shape{}, false
	}

	sh := Shape{
		ID:       m.newID(),
		Geometry: m.geometry,
		Class:    m.class,
		X:        math.Min(m.startX, x),
		Y:        math.Min(m.startY, y),
		Width:    width,
		Height:   height,
	}
	if m.geometry == GeometryCircle {
		sh.Radius = math.Min(width, height) / 2
		sh.Width = sh.Radius * 2
		sh.Height = sh.Radius * 2
	}

	m.preview = Shape{}
	return sh, true
}

// End finalizes the gesture and appends the committed shape to the
// store.
func (m *DrawMachine) End(x, y float64) (Shape, bool) {
	sh, ok := m.Finalize(x, y)
	if ok {
		m.store.AddShape(sh)
	}
	return sh, ok
}

// Cancel discards the draft and returns to idle, symmetric with the
// undersized-release path.
func (m *DrawMachine) Cancel() {
	m.drawing = false
	m.preview = Shape{}
}

func (m *DrawMachine) buildPreview(x, y float64) Shape {
	width := math.Abs(x - m.startX)
	height := math.Abs(y - m.startY)

	sh := Shape{
		ID:       "preview",
		Geometry: m.geometry,
		Class:    m.class,
		X:        math.Min(m.startX, x),
		Y:        math.Min(m.startY, y),
		Width:    math.Max(width, previewMinSize),
		Height:   math.Max(height, previewMinSize),
		Preview:  true,
	}
	if m.geometry == GeometryCircle {
		sh.Radius = math.Max(math.Min(width, height)/2, previewMinSize/2)
		sh.Width = sh.Radius * 2
		sh.Height = sh.Radius * 2
	}
	return sh
}
