package scene

// Collection operations shared by assets and shapes. All of them return a
// new slice and leave the input untouched, so callers holding older
// snapshots never observe a mutation. Operations on ids that no longer
// resolve are deliberate no-ops: transform callbacks from the UI boundary
// may race with deletes, and a stale reference must never crash the
// editor.

// Direction selects a neighbor for z-order reordering. Paint order is
// slice order, back to front.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

type identifiable interface {
	ObjectID() string
}

// IndexByID returns the position of id in col, or -1.
func IndexByID[T identifiable](col []T, id string) int {
	for i, el := range col {
		if el.ObjectID() == id {
			return i
		}
	}
	return -1
}

// FindByID returns the element with the given id, if present.
func FindByID[T identifiable](col []T, id string) (T, bool) {
	if i := IndexByID(col, id); i >= 0 {
		return col[i], true
	}
	var zero T
	return zero, false
}

// Append returns col with el added at the end (topmost in paint order).
func Append[T identifiable](col []T, el T) []T {
	out := make([]T, len(col), len(col)+1)
	copy(out, col)
	return append(out, el)
}

// UpdateByID replaces the element with patch applied. The input slice is
// returned unchanged when the id is absent.
func UpdateByID[T identifiable](col []T, id string, patch func(T) T) []T {
	i := IndexByID(col, id)
	if i < 0 {
		return col
	}
	out := make([]T, len(col))
	copy(out, col)
	out[i] = patch(out[i])
	return out
}

// RemoveByID filters out the element with the given id. Removing an
// absent id returns the input unchanged.
func RemoveByID[T identifiable](col []T, id string) []T {
	i := IndexByID(col, id)
	if i < 0 {
		return col
	}
	out := make([]T, 0, len(col)-1)
	out = append(out, col[:i]...)
	return append(out, col[i+1:]...)
}

// Reorder swaps the element with its neighbor in the given direction.
// At either end of the slice the call is a no-op.
func Reorder[T identifiable](col []T, id string, dir Direction) []T {
	i := IndexByID(col, id)
	if i < 0 {
		return col
	}
	j := i + int(dir)
	if j < 0 || j >= len(col) {
		return col
	}
	out := make([]T, len(col))
	copy(out, col)
	out[i], out[j] = out[j], out[i]
	return out
}
