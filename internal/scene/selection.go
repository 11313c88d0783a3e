package scene

// Selection tracks which object ids are selected. It holds a weak
// reference into the store: ids are validated lazily via Resolve, and a
// dangling id is simply dropped rather than treated as an error.
//
// Insertion order is preserved; the first element is the primary
// selection the transform handles attach to.
type Selection struct {
	ids []string
}

func NewSelection() *Selection {
	return &Selection{}
}

// IDs returns the selected ids in insertion order.
func (s *Selection) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Primary returns the first selected id, or "".
func (s *Selection) Primary() string {
	if len(s.ids) == 0 {
		return ""
	}
	return s.ids[0]
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id string) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Len returns the number of selected ids.
func (s *Selection) Len() int { return len(s.ids) }

// SelectSingle replaces the selection with just id.
func (s *Selection) SelectSingle(id string) {
	s.ids = []string{id}
}

// SelectMany replaces the selection with the given ids, keeping order.
func (s *Selection) SelectMany(ids []string) {
	s.ids = make([]string, len(ids))
	copy(s.ids, ids)
}

// Toggle adds id when absent and removes it when present. Used when a
// modifier key is held.
func (s *Selection) Toggle(id string) {
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
	s.ids = append(s.ids, id)
}

// Clear empties the selection, as clicking empty canvas does.
func (s *Selection) Clear() {
	s.ids = nil
}

// SelectByMarquee replaces the selection with every object whose bounding
// box overlaps the marquee box, in the objects' paint order. Edge-touching
// objects are not selected. It returns the selected ids; a result with
// more than one id is the UI's cue to offer group creation.
func (s *Selection) SelectByMarquee(box Rect, objects []Object) []string {
	var hit []string
	for _, obj := range objects {
		if obj.Bounds().Intersects(box) {
			hit = append(hit, obj.ObjectID())
		}
	}
	s.SelectMany(hit)
	return s.IDs()
}

// Resolve drops ids that no longer resolve against the store and returns
// the survivors. Called at render and transform time.
func (s *Selection) Resolve(store *Store) []string {
	kept := s.ids[:0:0]
	for _, id := range s.ids {
		if _, ok := store.Object(id); ok {
			kept = append(kept, id)
		}
	}
	s.ids = kept
	return s.IDs()
}
