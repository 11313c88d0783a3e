package scene

import (
	"sync"
)

// Snapshot is an immutable view of the store handed to subscribers and
// the persistence layer. Slices in a snapshot are never mutated after
// publication.
type Snapshot struct {
	Assets       []Asset // library assets, not yet placed
	CanvasAssets []Asset
	Shapes       []Shape
	Groups       []Group
	Revision     int64
}

// Store is the single source of truth for the live scene. Every other
// component mutates it exclusively through the methods below; each method
// is one atomic step and publishes a fresh snapshot to subscribers.
//
// Precondition violations (stale ids, duplicate ids, out-of-range
// reorders) degrade to no-ops rather than errors so async UI callbacks
// can never crash the session.
type Store struct {
	mu           sync.RWMutex
	assets       []Asset
	canvasAssets []Asset
	shapes       []Shape
	groups       []Group
	revision     int64

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

func NewStore() *Store {
	return &Store{subs: make(map[int]func(Snapshot))}
}

// Subscribe registers a callback invoked after every committed mutation.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// Snapshot returns the current state. The returned slices are the live
// immutable snapshots; callers must not modify them.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Assets:       s.assets,
		CanvasAssets: s.canvasAssets,
		Shapes:       s.shapes,
		Groups:       s.groups,
		Revision:     s.revision,
	}
}

// IsEmpty reports whether the scene holds no content at all. The
// autosave policy skips empty scenes so a blank session never clobbers a
// prior real save.
func (s *Store) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.assets) == 0 && len(s.canvasAssets) == 0 && len(s.shapes) == 0
}

// Replace swaps in a whole scene at once, used by project load/import.
func (s *Store) Replace(assets, canvasAssets []Asset, shapes []Shape, groups []Group) {
	s.mu.Lock()
	s.assets = assets
	s.canvasAssets = canvasAssets
	s.shapes = shapes
	s.groups = groups
	s.revision++
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// AddLibraryAsset appends an asset to the library (not yet placed).
func (s *Store) AddLibraryAsset(a Asset) {
	s.mu.Lock()
	s.assets = Append(s.assets, a)
	s.revision++
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// SetLibrary replaces the whole asset library, as a folder re-scan does.
func (s *Store) SetLibrary(assets []Asset) {
	s.mu.Lock()
	s.assets = assets
	s.revision++
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// PlaceAsset appends an asset to the canvas. The id must be unique across
// canvas assets and shapes; a duplicate id is a no-op.
func (s *Store) PlaceAsset(a Asset) {
	s.mu.Lock()
	if s.idInUseLocked(a.ID) {
		s.mu.Unlock()
		return
	}
	s.canvasAssets = Append(s.canvasAssets, a)
	s.revision++
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// AddShape appends a shape to the canvas under the same id-uniqueness
// rule as PlaceAsset.
func (s *Store) AddShape(sh Shape) {
	s.mu.Lock()
	if s.idInUseLocked(sh.ID) {
		s.mu.Unlock()
		return
	}
	s.shapes = Append(s.shapes, normalizeShape(sh))
	s.revision++
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

func (s *Store) idInUseLocked(id string) bool {
	return IndexByID(s.canvasAssets, id) >= 0 || IndexByID(s.shapes, id) >= 0
}

// UpdateAsset patches a placed asset. Stale ids are no-ops and do not
// notify.
func (s *Store) UpdateAsset(id string, patch func(Asset) Asset) {
	s.mu.Lock()
	if IndexByID(s.canvasAssets, id) < 0 {
		s.mu.Unlock()
		return
	}
	s.canvasAssets = UpdateByID(s.canvasAssets, id, patch)
	s.revision++
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// UpdateShape patches a shape, re-normalizing the circle invariant
// afterwards. Stale ids are no-ops and do not notify.
func (s *Store) UpdateShape(id string, patch func(Shape) Shape) {
	s.mu.Lock()
	if IndexByID(s.shapes, id) < 0 {
		s.mu.Unlock()
		return
	}
	s.shapes = UpdateByID(s.shapes, id, func(sh Shape) Shape {
		return normalizeShape(patch(sh))
	})
	s.revision++
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// Remove deletes the object with the given id from whichever collection
// holds it. Unknown ids are no-ops and do not notify.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	if !s.idInUseLocked(id) {
		s.mu.Unlock()
		return
	}
	s.canvasAssets = RemoveByID(s.canvasAssets, id)
	s.shapes = RemoveByID(s.shapes, id)
	s.revision++
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// ReorderObject moves the object one step forward or backward in paint
// order within its own collection.
func (s *Store) ReorderObject(id string, dir Direction) {
	s.mu.Lock()
	if !s.idInUseLocked(id) {
		s.mu.Unlock()
		return
	}
	if IndexByID(s.canvasAssets, id) >= 0 {
		s.canvasAssets = Reorder(s.canvasAssets, id, dir)
	} else {
		s.shapes = Reorder(s.shapes, id, dir)
	}
	s.revision++
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// ToggleLock flips the locked flag on the object with the given id.
func (s *Store) ToggleLock(id string) {
	s.mu.Lock()
	if !s.idInUseLocked(id) {
		s.mu.Unlock()
		return
	}
	s.canvasAssets = UpdateByID(s.canvasAssets, id, func(a Asset) Asset {
		a.Locked = !a.Locked
		return a
	})
	s.shapes = UpdateByID(s.shapes, id, func(sh Shape) Shape {
		sh.Locked = !sh.Locked
		return sh
	})
	s.revision++
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// Object resolves an id against the canvas. The bool result is false for
// dangling ids; callers drop those silently.
func (s *Store) Object(id string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := FindByID(s.canvasAssets, id); ok {
		return a, true
	}
	if sh, ok := FindByID(s.shapes, id); ok {
		return sh, true
	}
	return nil, false
}

// Objects returns every canvas object in paint order, shapes first the
// way the renderer composites them under placed assets.
func (s *Store) Objects() []Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Object, 0, len(s.shapes)+len(s.canvasAssets))
	for _, sh := range s.shapes {
		out = append(out, sh)
	}
	for _, a := range s.canvasAssets {
		out = append(out, a)
	}
	return out
}

// AddGroup appends a saved group.
func (s *Store) AddGroup(g Group) {
	s.mu.Lock()
	s.groups = append(append([]Group(nil), s.groups...), g)
	s.revision++
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// RemoveGroup deletes a saved group without touching its members.
func (s *Store) RemoveGroup(id string) {
	s.mu.Lock()
	out := make([]Group, 0, len(s.groups))
	for _, g := range s.groups {
		if g.ID != id {
			out = append(out, g)
		}
	}
	s.groups = out
	s.revision++
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

func (s *Store) notify(snap Snapshot) {
	s.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}

// normalizeShape keeps the circle invariant consistent no matter what a
// patch did: radius = width/2 = height/2.
func normalizeShape(sh Shape) Shape {
	if sh.Geometry != GeometryCircle {
		return sh
	}
	if sh.Radius <= 0 {
		sh.Radius = sh.Width / 2
	}
	sh.Width = sh.Radius * 2
	sh.Height = sh.Radius * 2
	return sh
}
