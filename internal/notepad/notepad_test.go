package notepad

import (
	"strings"
	"testing"

	"github.com/sceneforge/sceneforge/internal/scene"
)

func TestAppendObjectRef(t *testing.T) {
	n := New()

	n.AppendObjectRef(scene.Shape{ID: "s1", Name: "North Wall"})
	n.AppendObjectRef(scene.Asset{ID: "asset_abc"})

	got := n.Text()
	want := "[North Wall] [asset_abc]"
	if got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
}

func TestAppendCoordinates(t *testing.T) {
	n := New()
	n.AppendCoordinates(100.6, 239.4)

	if got := n.Text(); got != "(101, 239)" {
		t.Errorf("text = %q, want rounded coordinates", got)
	}
}

func TestAppendGroup(t *testing.T) {
	n := New()
	n.AppendGroup(scene.Group{
		Name:      "Spawn",
		ObjectIDs: []string{"a", "b"},
		Bounds:    scene.Rect{X: 10, Y: 20, Width: 100, Height: 50},
	})

	got := n.Text()
	if got != "[group Spawn: 2 objects at (10, 20) 100x50]" {
		t.Errorf("text = %q", got)
	}
}

func TestClear(t *testing.T) {
	n := New()
	n.AppendCoordinates(1, 2)
	n.Clear()
	if n.Text() != "" {
		t.Error("buffer not empty after Clear")
	}
}

func TestSceneContextListsObjects(t *testing.T) {
	snap := scene.Snapshot{
		CanvasAssets: []scene.Asset{
			{ID: "a1", Name: "tree.png", X: 100.4, Y: 50, Width: 200, Height: 200},
		},
		Shapes: []scene.Shape{
			{ID: "s1", Name: "North Wall", Geometry: scene.GeometryRectangle, Class: scene.ClassBoundary, X: 0, Y: 0, Width: 128, Height: 32},
		},
	}

	got := SceneContext(snap, "s1")

	for _, want := range []string{
		"Total objects: 2",
		"Selected: s1",
		"tree.png at (100, 50) size 200x200",
		"North Wall (boundary rectangle) at (0, 0) size 128x32",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("context missing %q\n%s", want, got)
		}
	}
}

func TestSceneContextEmptyScene(t *testing.T) {
	got := SceneContext(scene.Snapshot{}, "")

	if !strings.Contains(got, "(no assets)") || !strings.Contains(got, "(no shapes)") {
		t.Errorf("empty markers missing:\n%s", got)
	}
	if !strings.Contains(got, "Selected: none") {
		t.Error("empty selection not reported as none")
	}
}

func TestSceneContextFallsBackToID(t *testing.T) {
	snap := scene.Snapshot{
		Shapes: []scene.Shape{{ID: "shape_xyz", Width: 20, Height: 20}},
	}
	if !strings.Contains(SceneContext(snap, ""), "shape_xyz") {
		t.Error("unnamed shape not listed by id")
	}
}
