package scene

import "testing"

func TestSelectionToggle(t *testing.T) {
	sel := NewSelection()

	sel.Toggle("a")
	sel.Toggle("b")
	if !sel.Contains("a") || !sel.Contains("b") {
		t.Fatal("toggle did not add ids")
	}

	sel.Toggle("a")
	if sel.Contains("a") {
		t.Error("second toggle did not remove id")
	}
	if sel.Primary() != "b" {
		t.Errorf("primary = %q, want b", sel.Primary())
	}
}

func TestSelectSingleReplaces(t *testing.T) {
	sel := NewSelection()
	sel.SelectMany([]string{"a", "b", "c"})
	sel.SelectSingle("d")

	if sel.Len() != 1 || sel.Primary() != "d" {
		t.Errorf("ids = %v, want [d]", sel.IDs())
	}
}

func TestSelectByMarqueeExcludesEdgeTouch(t *testing.T) {
	sel := NewSelection()
	objects := []Object{
		Shape{ID: "inside", X: 10, Y: 10, Width: 20, Height: 20},
		Shape{ID: "overlap", X: 40, Y: 40, Width: 30, Height: 30},
		// Left edge exactly at the marquee's right edge.
		Shape{ID: "touching", X: 50, Y: 0, Width: 20, Height: 20},
		Shape{ID: "outside", X: 200, Y: 200, Width: 20, Height: 20},
	}

	hit := sel.SelectByMarquee(Rect{X: 0, Y: 0, Width: 50, Height: 50}, objects)

	want := []string{"inside", "overlap"}
	if len(hit) != len(want) {
		t.Fatalf("hit = %v, want %v", hit, want)
	}
	for i := range want {
		if hit[i] != want[i] {
			t.Errorf("hit[%d] = %q, want %q", i, hit[i], want[i])
		}
	}
}

func TestSelectByMarqueeMultiHitSignalsGrouping(t *testing.T) {
	sel := NewSelection()
	objects := []Object{
		Shape{ID: "a", X: 5, Y: 5, Width: 10, Height: 10},
		Shape{ID: "b", X: 25, Y: 25, Width: 10, Height: 10},
	}

	hit := sel.SelectByMarquee(Rect{X: 0, Y: 0, Width: 100, Height: 100}, objects)
	if len(hit) != 2 {
		t.Errorf("hit = %v, want both objects", hit)
	}
}

func TestResolveDropsDanglingIDs(t *testing.T) {
	store := NewStore()
	store.AddShape(Shape{ID: "alive"})

	sel := NewSelection()
	sel.SelectMany([]string{"alive", "deleted"})

	kept := sel.Resolve(store)
	if len(kept) != 1 || kept[0] != "alive" {
		t.Errorf("kept = %v, want [alive]", kept)
	}
	if sel.Contains("deleted") {
		t.Error("dangling id survived resolve")
	}
}
