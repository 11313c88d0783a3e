package project

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/sceneforge/sceneforge/internal/scene"
)

// Autosaver persists the live scene under the reserved "autosave" name
// after a quiet period. The debounce timer re-arms on every store
// change, so a burst of edits produces exactly one write, timed from the
// last change. At most one write is in flight at a time; a trigger that
// lands while a write is outstanding is skipped, not queued. Empty
// scenes are never autosaved so a blank session cannot clobber a prior
// real save.
//
// Autosave failures are logged only; they never interrupt the editing
// session.
type Autosaver struct {
	service  *Service
	store    *scene.Store
	gridSize int
	debounce time.Duration

	mu          sync.Mutex
	timer       *time.Timer
	inFlight    bool
	stopped     bool
	unsubscribe func()
}

func NewAutosaver(service *Service, store *scene.Store, gridSize int, debounce time.Duration) *Autosaver {
	return &Autosaver{
		service:  service,
		store:    store,
		gridSize: gridSize,
		debounce: debounce,
	}
}

// Start subscribes to the store; every committed mutation re-arms the
// debounce timer.
func (a *Autosaver) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.unsubscribe != nil {
		return
	}
	a.stopped = false
	a.unsubscribe = a.store.Subscribe(func(scene.Snapshot) {
		a.arm()
	})
}

// Stop cancels the pending timer and unsubscribes. A final Flush is the
// caller's responsibility.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopped = true
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if a.unsubscribe != nil {
		a.unsubscribe()
		a.unsubscribe = nil
	}
}

func (a *Autosaver) arm() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.debounce, a.fire)
}

func (a *Autosaver) fire() {
	a.mu.Lock()
	if a.stopped || a.inFlight {
		a.mu.Unlock()
		return
	}
	a.inFlight = true
	a.mu.Unlock()

	a.write(context.Background())

	a.mu.Lock()
	a.inFlight = false
	a.mu.Unlock()
}

// Flush saves immediately, best-effort, bypassing the debounce but still
// honoring the empty-scene guard. Used on shutdown, mirroring the
// page-unload save (which is not guaranteed to complete either).
func (a *Autosaver) Flush(ctx context.Context) {
	a.write(ctx)
}

func (a *Autosaver) write(ctx context.Context) {
	if a.store.IsEmpty() {
		return
	}
	snap := a.store.Snapshot()
	if err := a.service.SaveSnapshot(ctx, AutosaveName, snap, a.gridSize); err != nil {
		slog.Error("autosave failed", "error", err)
		return
	}
	slog.Debug("autosaved scene", "revision", snap.Revision)
}

// LoadStartup restores the autosave record into the store when it holds
// any content. A missing record leaves the store empty; that is the
// normal first-run path, not an error.
func (a *Autosaver) LoadStartup(ctx context.Context) error {
	p, err := a.service.Load(ctx, AutosaveName)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	if !p.HasContent() {
		return nil
	}
	a.store.Replace(p.Assets, p.CanvasAssets, p.Shapes, p.Groups)
	slog.Info("restored autosave", "canvasAssets", len(p.CanvasAssets), "shapes", len(p.Shapes))
	return nil
}
