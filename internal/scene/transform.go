package scene

import "math"

// Transform gestures translate continuous pointer input into a single
// committed store mutation. Begin captures the anchor state, Update
// produces candidate geometry for visual feedback only, and Commit writes
// the final values exactly once. A gesture begun on a locked object is
// rejected outright.

// DragGesture moves an object. The anchor is the pointer position minus
// the object's position at Begin, so the object does not jump under the
// cursor.
type DragGesture struct {
	store    *Store
	id       string
	kind     Kind
	anchorX  float64
	anchorY  float64
	finished bool
}

// BeginDrag starts a drag on the object under the pointer. It returns
// false when the id does not resolve or the object is locked.
func BeginDrag(store *Store, id string, pointerX, pointerY float64) (*DragGesture, bool) {
	obj, ok := store.Object(id)
	if !ok || obj.IsLocked() {
		return nil, false
	}
	b := obj.Bounds()
	return &DragGesture{
		store:   store,
		id:      id,
		kind:    obj.Kind(),
		anchorX: pointerX - b.X,
		anchorY: pointerY - b.Y,
	}, true
}

// Update returns the candidate position for the current pointer. No store
// write happens here; intermediate frames may be dropped or coalesced by
// the renderer without affecting correctness.
func (g *DragGesture) Update(pointerX, pointerY float64) (x, y float64) {
	return pointerX - g.anchorX, pointerY - g.anchorY
}

// Commit writes the final position. Repeated commits are no-ops.
func (g *DragGesture) Commit(pointerX, pointerY float64) {
	if g.finished {
		return
	}
	g.finished = true
	x, y := g.Update(pointerX, pointerY)
	switch g.kind {
	case KindAsset:
		g.store.UpdateAsset(g.id, func(a Asset) Asset {
			a.X, a.Y = x, y
			return a
		})
	case KindShape:
		g.store.UpdateShape(g.id, func(sh Shape) Shape {
			sh.X, sh.Y = x, y
			return sh
		})
	}
}

// ResizeGesture scales or rotates an object through its transform
// handles. Scale factors are relative to the geometry captured at Begin
// and are reset on commit so repeated gestures never compound.
type ResizeGesture struct {
	store    *Store
	id       string
	kind     Kind
	geometry Geometry
	origW    float64
	origH    float64
	origR    float64
	finished bool
}

// BeginResize starts a resize/rotate gesture. It returns false when the
// id does not resolve or the object is locked.
func BeginResize(store *Store, id string) (*ResizeGesture, bool) {
	obj, ok := store.Object(id)
	if !ok || obj.IsLocked() {
		return nil, false
	}
	b := obj.Bounds()
	g := &ResizeGesture{
		store: store,
		id:    id,
		kind:  obj.Kind(),
		origW: b.Width,
		origH: b.Height,
	}
	if sh, isShape := obj.(Shape); isShape {
		g.geometry = sh.Geometry
		g.origR = sh.Radius
	}
	return g, true
}

func (g *ResizeGesture) minSize() float64 {
	if g.kind == KindAsset {
		return MinAssetSize
	}
	return MinShapeSize
}

// Update returns the candidate dimensions for the given scale factors,
// with the minimum-size floor applied. Visual feedback only.
func (g *ResizeGesture) Update(scaleX, scaleY float64) (width, height float64) {
	if g.geometry == GeometryCircle {
		r := math.Max(g.minSize(), g.origR*math.Max(scaleX, scaleY))
		return r * 2, r * 2
	}
	width = math.Max(g.minSize(), g.origW*scaleX)
	height = math.Max(g.minSize(), g.origH*scaleY)
	return width, height
}

// Commit writes the final geometry in a single store mutation. Circles
// stay uniform: the larger scale factor drives the radius and the
// position shifts so the rendered center matches the handle result.
// Repeated commits are no-ops.
func (g *ResizeGesture) Commit(x, y, scaleX, scaleY, rotation float64) {
	if g.finished {
		return
	}
	g.finished = true

	switch g.kind {
	case KindAsset:
		w := math.Max(MinAssetSize, g.origW*scaleX)
		h := math.Max(MinAssetSize, g.origH*scaleY)
		g.store.UpdateAsset(g.id, func(a Asset) Asset {
			a.X, a.Y = x, y
			a.Width, a.Height = w, h
			a.Rotation = rotation
			return a
		})
	case KindShape:
		if g.geometry == GeometryCircle {
			r := math.Max(MinShapeSize, g.origR*math.Max(scaleX, scaleY))
			g.store.UpdateShape(g.id, func(sh Shape) Shape {
				sh.X, sh.Y = x-r, y-r
				sh.Radius = r
				sh.Width, sh.Height = r*2, r*2
				sh.Rotation = rotation
				return sh
			})
			return
		}
		w := math.Max(MinShapeSize, g.origW*scaleX)
		h := math.Max(MinShapeSize, g.origH*scaleY)
		g.store.UpdateShape(g.id, func(sh Shape) Shape {
			sh.X, sh.Y = x, y
			sh.Width, sh.Height = w, h
			sh.Rotation = rotation
			return sh
		})
	}
}
