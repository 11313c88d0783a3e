package project

import (
	"context"
	"testing"
	"time"

	"github.com/sceneforge/sceneforge/internal/scene"
)

// waitForRecord polls the storage until the autosave record appears or
// the deadline passes.
func waitForRecord(t *testing.T, svc *Service, deadline time.Duration) *Project {
	t.Helper()
	ctx := context.Background()
	stop := time.Now().Add(deadline)
	for time.Now().Before(stop) {
		if p, err := svc.Load(ctx, AutosaveName); err == nil {
			return p
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("autosave record never appeared")
	return nil
}

func TestAutosaveDebouncesBurst(t *testing.T) {
	store := scene.NewStore()
	svc := NewService(NewMemoryStorage())
	a := NewAutosaver(svc, store, 32, 30*time.Millisecond)
	a.Start()
	defer a.Stop()

	// A burst of edits inside the debounce window.
	store.AddShape(scene.Shape{ID: "s1", Width: 50, Height: 50})
	store.UpdateShape("s1", func(sh scene.Shape) scene.Shape { sh.X = 10; return sh })
	store.UpdateShape("s1", func(sh scene.Shape) scene.Shape { sh.X = 20; return sh })

	p := waitForRecord(t, svc, time.Second)
	if len(p.Shapes) != 1 {
		t.Fatalf("shapes = %d, want 1", len(p.Shapes))
	}
	// The record reflects the last edit of the burst, not the first.
	if p.Shapes[0].X != 20 {
		t.Errorf("X = %v, want 20 (final state of the burst)", p.Shapes[0].X)
	}
}

func TestAutosaveSkipsEmptyScene(t *testing.T) {
	store := scene.NewStore()
	svc := NewService(NewMemoryStorage())
	a := NewAutosaver(svc, store, 32, 10*time.Millisecond)
	a.Start()
	defer a.Stop()

	// The scene is empty again by the time the debounce fires.
	store.AddShape(scene.Shape{ID: "s1"})
	store.Remove("s1")

	time.Sleep(60 * time.Millisecond)

	if _, err := svc.Load(context.Background(), AutosaveName); err == nil {
		t.Error("empty scene was autosaved")
	}
}

func TestAutosaveStopCancelsPendingWrite(t *testing.T) {
	store := scene.NewStore()
	svc := NewService(NewMemoryStorage())
	a := NewAutosaver(svc, store, 32, 50*time.Millisecond)
	a.Start()

	store.AddShape(scene.Shape{ID: "s1", Width: 50, Height: 50})
	a.Stop()

	time.Sleep(100 * time.Millisecond)

	if _, err := svc.Load(context.Background(), AutosaveName); err == nil {
		t.Error("autosave fired after Stop")
	}
}

func TestFlushWritesImmediately(t *testing.T) {
	ctx := context.Background()
	store := scene.NewStore()
	svc := NewService(NewMemoryStorage())
	a := NewAutosaver(svc, store, 32, time.Hour)
	a.Start()
	defer a.Stop()

	store.AddShape(scene.Shape{ID: "s1", Width: 50, Height: 50})
	a.Flush(ctx)

	if _, err := svc.Load(ctx, AutosaveName); err != nil {
		t.Errorf("no record after flush: %v", err)
	}
}

func TestLoadStartupRestoresScene(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStorage())
	if err := svc.SaveSnapshot(ctx, AutosaveName, scene.Snapshot{
		Shapes: []scene.Shape{{ID: "s1", Width: 50, Height: 50}},
	}, 32); err != nil {
		t.Fatal(err)
	}

	store := scene.NewStore()
	a := NewAutosaver(svc, store, 32, time.Hour)
	if err := a.LoadStartup(ctx); err != nil {
		t.Fatalf("LoadStartup: %v", err)
	}

	if len(store.Snapshot().Shapes) != 1 {
		t.Error("scene not restored from autosave")
	}
}

func TestLoadStartupMissingRecordIsNotAnError(t *testing.T) {
	store := scene.NewStore()
	a := NewAutosaver(NewService(NewMemoryStorage()), store, 32, time.Hour)

	if err := a.LoadStartup(context.Background()); err != nil {
		t.Errorf("LoadStartup on empty storage: %v", err)
	}
	if !store.IsEmpty() {
		t.Error("store not empty after first-run startup")
	}
}

func TestLoadStartupSkipsEmptyRecord(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStorage())
	if err := svc.SaveSnapshot(ctx, AutosaveName, scene.Snapshot{}, 32); err != nil {
		t.Fatal(err)
	}

	store := scene.NewStore()
	store.AddShape(scene.Shape{ID: "keep"})

	a := NewAutosaver(svc, store, 32, time.Hour)
	if err := a.LoadStartup(ctx); err != nil {
		t.Fatal(err)
	}

	shapes := store.Snapshot().Shapes
	if len(shapes) != 1 || shapes[0].ID != "keep" {
		t.Error("empty autosave record replaced the live scene")
	}
}
