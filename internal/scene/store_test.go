package scene

import "testing"

func TestAddShapeRejectsDuplicateID(t *testing.T) {
	s := NewStore()
	s.AddShape(Shape{ID: "s1", Width: 50, Height: 50})
	s.AddShape(Shape{ID: "s1", Width: 99, Height: 99})

	snap := s.Snapshot()
	if len(snap.Shapes) != 1 {
		t.Fatalf("shapes = %d, want 1", len(snap.Shapes))
	}
	if snap.Shapes[0].Width != 50 {
		t.Error("duplicate add overwrote the original shape")
	}
}

func TestPlaceAssetRejectsIDUsedByShape(t *testing.T) {
	s := NewStore()
	s.AddShape(Shape{ID: "obj1"})
	s.PlaceAsset(Asset{ID: "obj1"})

	if len(s.Snapshot().CanvasAssets) != 0 {
		t.Error("asset placed with an id already used by a shape")
	}
}

func TestAddShapeNormalizesCircle(t *testing.T) {
	s := NewStore()
	s.AddShape(Shape{ID: "c1", Geometry: GeometryCircle, Radius: 25})

	sh := s.Snapshot().Shapes[0]
	if sh.Width != 50 || sh.Height != 50 {
		t.Errorf("circle size = %vx%v, want 50x50", sh.Width, sh.Height)
	}
}

func TestUpdateShapeKeepsCircleInvariant(t *testing.T) {
	s := NewStore()
	s.AddShape(Shape{ID: "c1", Geometry: GeometryCircle, Radius: 25})

	s.UpdateShape("c1", func(sh Shape) Shape {
		sh.Radius = 40
		return sh
	})

	sh := s.Snapshot().Shapes[0]
	if sh.Width != 80 || sh.Height != 80 {
		t.Errorf("after radius patch size = %vx%v, want 80x80", sh.Width, sh.Height)
	}
}

func TestRemoveUnknownIDIsNoOp(t *testing.T) {
	s := NewStore()
	s.AddShape(Shape{ID: "s1"})
	s.Remove("missing")

	if len(s.Snapshot().Shapes) != 1 {
		t.Error("remove of unknown id changed the scene")
	}
}

func TestToggleLock(t *testing.T) {
	s := NewStore()
	s.AddShape(Shape{ID: "s1"})

	s.ToggleLock("s1")
	obj, _ := s.Object("s1")
	if !obj.IsLocked() {
		t.Error("first toggle did not lock")
	}

	s.ToggleLock("s1")
	obj, _ = s.Object("s1")
	if obj.IsLocked() {
		t.Error("second toggle did not unlock")
	}
}

func TestObjectsPaintOrder(t *testing.T) {
	s := NewStore()
	s.AddShape(Shape{ID: "s1"})
	s.PlaceAsset(Asset{ID: "a1"})
	s.AddShape(Shape{ID: "s2"})

	objects := s.Objects()
	// Shapes paint first (under), assets after (over).
	want := []string{"s1", "s2", "a1"}
	if len(objects) != len(want) {
		t.Fatalf("objects = %d, want %d", len(objects), len(want))
	}
	for i, id := range want {
		if objects[i].ObjectID() != id {
			t.Errorf("objects[%d] = %q, want %q", i, objects[i].ObjectID(), id)
		}
	}
}

func TestSubscribeNotifiesAfterEachMutation(t *testing.T) {
	s := NewStore()
	var got []int64
	unsubscribe := s.Subscribe(func(snap Snapshot) {
		got = append(got, snap.Revision)
	})

	s.AddShape(Shape{ID: "s1"})
	s.UpdateShape("s1", func(sh Shape) Shape { sh.X = 10; return sh })

	if len(got) != 2 {
		t.Fatalf("notifications = %d, want 2", len(got))
	}
	if got[0] >= got[1] {
		t.Errorf("revisions not increasing: %v", got)
	}

	unsubscribe()
	s.Remove("s1")
	if len(got) != 2 {
		t.Error("notified after unsubscribe")
	}
}

func TestIsEmpty(t *testing.T) {
	s := NewStore()
	if !s.IsEmpty() {
		t.Error("new store not empty")
	}

	s.AddShape(Shape{ID: "s1"})
	if s.IsEmpty() {
		t.Error("store with a shape reported empty")
	}

	s.Remove("s1")
	if !s.IsEmpty() {
		t.Error("store not empty after removing its only shape")
	}
}

func TestReplaceSwapsWholeScene(t *testing.T) {
	s := NewStore()
	s.AddShape(Shape{ID: "old"})

	s.Replace(nil, []Asset{{ID: "a1"}}, []Shape{{ID: "new"}}, nil)

	snap := s.Snapshot()
	if len(snap.Shapes) != 1 || snap.Shapes[0].ID != "new" {
		t.Errorf("shapes after replace = %+v", snap.Shapes)
	}
	if len(snap.CanvasAssets) != 1 || snap.CanvasAssets[0].ID != "a1" {
		t.Errorf("canvas assets after replace = %+v", snap.CanvasAssets)
	}
}

func TestStaleIDMutationsDoNotNotify(t *testing.T) {
	s := NewStore()
	s.AddShape(Shape{ID: "s1", Width: 50, Height: 50})
	base := s.Snapshot().Revision

	var notified int
	defer s.Subscribe(func(Snapshot) { notified++ })()

	s.UpdateShape("ghost", func(sh Shape) Shape { return sh })
	s.UpdateAsset("ghost", func(a Asset) Asset { return a })
	s.Remove("ghost")
	s.ToggleLock("ghost")
	s.ReorderObject("ghost", Forward)

	if notified != 0 {
		t.Errorf("stale-id mutations notified %d times, want 0", notified)
	}
	if got := s.Snapshot().Revision; got != base {
		t.Errorf("revision = %d, want %d unchanged", got, base)
	}
}
