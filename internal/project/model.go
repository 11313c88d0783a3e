package project

import (
	"time"

	"github.com/sceneforge/sceneforge/internal/grid"
	"github.com/sceneforge/sceneforge/internal/scene"
)

// Version is written into every persisted record. There is no migration
// logic beyond defaulting missing collections on read.
const Version = "1.0"

// AutosaveName is the reserved project name used by the autosave policy.
// A user project saved under this name is silently overwritten by the
// next autosave; this is a documented limitation, not hardened against.
const AutosaveName = "autosave"

// Settings carries per-project editor settings.
type Settings struct {
	GridSize int `json:"gridSize"`
}

// Project is the persisted unit: a full snapshot of the scene plus the
// asset library, keyed by name. Round-tripping a record through
// save→load reproduces every field exactly except Timestamp, which is
// regenerated on save.
type Project struct {
	Name         string        `json:"name"`
	Version      string        `json:"version"`
	Timestamp    int64         `json:"timestamp"`
	Assets       []scene.Asset `json:"assets"`
	CanvasAssets []scene.Asset `json:"canvasAssets"`
	Shapes       []scene.Shape `json:"shapes"`
	Groups       []scene.Group `json:"groups"`
	Settings     Settings      `json:"settings"`
}

// FromSnapshot builds a record from a live scene snapshot.
func FromSnapshot(name string, snap scene.Snapshot, gridSize int) Project {
	p := Project{
		Name:         name,
		Version:      Version,
		Timestamp:    nowMilli(),
		Assets:       snap.Assets,
		CanvasAssets: snap.CanvasAssets,
		Shapes:       snap.Shapes,
		Groups:       snap.Groups,
		Settings:     Settings{GridSize: gridSize},
	}
	p.Normalize()
	return p
}

// Normalize defaults missing collections to empty so records written by
// older versions load without error. Applied on read, not on write, to
// keep old records forward-compatible.
func (p *Project) Normalize() {
	if p.Version == "" {
		p.Version = Version
	}
	if p.Assets == nil {
		p.Assets = []scene.Asset{}
	}
	if p.CanvasAssets == nil {
		p.CanvasAssets = []scene.Asset{}
	}
	if p.Shapes == nil {
		p.Shapes = []scene.Shape{}
	}
	if p.Groups == nil {
		p.Groups = []scene.Group{}
	}
	if p.Settings.GridSize <= 0 {
		p.Settings.GridSize = grid.DefaultGridSize
	}
}

func nowMilli() int64 {
	return time.Now().UnixMilli()
}

// HasContent reports whether the record holds any scene content. The
// startup load ignores empty autosave records.
func (p *Project) HasContent() bool {
	return len(p.Assets) > 0 || len(p.CanvasAssets) > 0 || len(p.Shapes) > 0
}
