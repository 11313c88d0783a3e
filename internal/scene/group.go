package scene

import (
	"strconv"
	"time"
)

// Group is a named, saved selection. Member ids are non-owning
// references: members may be deleted later, leaving the group partially
// stale, and Bounds is a snapshot taken at creation that is never
// recomputed when members move.
type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ObjectIDs   []string  `json:"objectIds"`
	Bounds      Rect      `json:"bounds"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ComputeBounds returns the union bounding box of the given objects.
// Empty input yields a degenerate zero box, not an error.
func ComputeBounds(objects []Object) Rect {
	var bounds Rect
	for _, obj := range objects {
		bounds = bounds.Union(obj.Bounds())
	}
	return bounds
}

// NewGroup builds a group from the supplied objects, snapshotting bounds
// and member ids verbatim. A blank name defaults to "Group N" where N is
// existingCount+1.
func NewGroup(id, name, description string, objects []Object, existingCount int) Group {
	if name == "" {
		name = defaultGroupName(existingCount)
	}
	ids := make([]string, len(objects))
	for i, obj := range objects {
		ids[i] = obj.ObjectID()
	}
	return Group{
		ID:          id,
		Name:        name,
		Description: description,
		ObjectIDs:   ids,
		Bounds:      ComputeBounds(objects),
		CreatedAt:   time.Now().UTC(),
	}
}

func defaultGroupName(existingCount int) string {
	return "Group " + strconv.Itoa(existingCount+1)
}

// ResolveMembers filters the group's member ids down to those that still
// exist in the store, in their recorded order. Stale ids are dropped
// silently; groups do not auto-repair or notify on partial staleness.
func (g Group) ResolveMembers(store *Store) []string {
	live := make([]string, 0, len(g.ObjectIDs))
	for _, id := range g.ObjectIDs {
		if _, ok := store.Object(id); ok {
			live = append(live, id)
		}
	}
	return live
}
