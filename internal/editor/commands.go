package editor

import (
	"encoding/json"
	"fmt"

	"github.com/sceneforge/sceneforge/internal/grid"
	"github.com/sceneforge/sceneforge/internal/scene"
	"github.com/sceneforge/sceneforge/internal/typeid"
)

// Context actions mirror the editor's right-click menu. They all resolve
// ids lazily and degrade to no-ops on stale references.

// ToggleLock flips an object's locked flag. Locked objects reject drag
// and resize but still accept lock-toggle and delete.
func (e *Editor) ToggleLock(id string) {
	e.store.ToggleLock(id)
}

// Delete removes an object and drops it from the selection.
func (e *Editor) Delete(id string) {
	e.store.Remove(id)
	e.mu.Lock()
	e.selection.Resolve(e.store)
	e.mu.Unlock()
}

// BringForward moves the object one step toward the front of the paint
// order.
func (e *Editor) BringForward(id string) {
	e.store.ReorderObject(id, scene.Forward)
}

// SendBackward moves the object one step toward the back.
func (e *Editor) SendBackward(id string) {
	e.store.ReorderObject(id, scene.Backward)
}

// RenameShape sets a shape's display name. Blank names are ignored.
func (e *Editor) RenameShape(id, name string) {
	if name == "" {
		return
	}
	e.store.UpdateShape(id, func(sh scene.Shape) scene.Shape {
		sh.Name = name
		return sh
	})
}

// ChangeClass re-tags a shape's category.
func (e *Editor) ChangeClass(id string, class scene.Class) {
	if !scene.ValidClass(class) {
		return
	}
	e.store.UpdateShape(id, func(sh scene.Shape) scene.Shape {
		sh.Class = class
		return sh
	})
}

// QuickAdd drops a preset rectangle of the given class at a position.
// Preset sizes are expressed in grid cells.
func (e *Editor) QuickAdd(class scene.Class, x, y float64) scene.Shape {
	if !scene.ValidClass(class) {
		class = scene.ClassBoundary
	}
	g := float64(e.gridSize)
	var w, h float64
	switch class {
	case scene.ClassBoundary:
		w, h = g*4, g
	case scene.ClassHitbox:
		w, h = g*2, g*2
	case scene.ClassTrigger:
		w, h = g*3, g*3
	case scene.ClassCollision:
		w, h = g*2.5, g*2.5
	}
	sh := scene.Shape{
		ID:       typeid.NewShapeID(),
		Geometry: scene.GeometryRectangle,
		Class:    class,
		X:        x,
		Y:        y,
		Width:    w,
		Height:   h,
	}
	e.store.AddShape(sh)
	return sh
}

// DropAsset places a library asset on the canvas at a drop point with
// the default placement size. Only the select tool accepts drops.
func (e *Editor) DropAsset(a scene.Asset, x, y float64) (scene.Asset, bool) {
	if e.Tool() != ToolSelect {
		return scene.Asset{}, false
	}
	a.ID = typeid.NewAssetID()
	a.X, a.Y = x, y
	a.Width, a.Height = droppedAssetSize, droppedAssetSize
	a.Rotation = 0
	a.Locked = false
	e.store.PlaceAsset(a)
	return a, true
}

// CreateGroup snapshots the current multi-selection into a named group.
// It returns false when fewer than one object is selected.
func (e *Editor) CreateGroup(name, description string) (scene.Group, bool) {
	ids := e.Selection()
	if len(ids) == 0 {
		return scene.Group{}, false
	}
	objects := make([]scene.Object, 0, len(ids))
	for _, id := range ids {
		if obj, ok := e.store.Object(id); ok {
			objects = append(objects, obj)
		}
	}
	if len(objects) == 0 {
		return scene.Group{}, false
	}
	g := scene.NewGroup(typeid.NewGroupID(), name, description, objects, len(e.store.Snapshot().Groups))
	e.store.AddGroup(g)
	return g, true
}

// SelectGroup re-selects a saved group's surviving members.
func (e *Editor) SelectGroup(id string) []string {
	snap := e.store.Snapshot()
	for _, g := range snap.Groups {
		if g.ID == id {
			live := g.ResolveMembers(e.store)
			e.SelectMany(live)
			return live
		}
	}
	return nil
}

// DeleteGroup removes a saved group; member objects are untouched.
func (e *Editor) DeleteGroup(id string) {
	e.store.RemoveGroup(id)
}

// SnapPoint snaps a logical position to the editor's grid.
func (e *Editor) SnapPoint(x, y float64) (float64, float64) {
	return grid.Snap(x, e.gridSize), grid.Snap(y, e.gridSize)
}

// RenderState is the full view the rendering boundary needs after each
// committed mutation. The renderer subscribes; the editor never calls it
// directly.
type RenderState struct {
	CanvasAssets []scene.Asset  `json:"canvasAssets"`
	Shapes       []scene.Shape  `json:"shapes"`
	Preview      *scene.Shape   `json:"preview,omitempty"`
	SelectedIDs  []string       `json:"selectedIds"`
	Groups       []scene.Group  `json:"groups"`
	Tool         Tool           `json:"tool"`
	Class        scene.Class    `json:"shapeType"`
	GridSize     int            `json:"gridSize"`
	Revision     int64          `json:"revision"`
}

// State assembles the current render state.
func (e *Editor) State() RenderState {
	snap := e.store.Snapshot()
	st := RenderState{
		CanvasAssets: snap.CanvasAssets,
		Shapes:       snap.Shapes,
		SelectedIDs:  e.Selection(),
		Groups:       snap.Groups,
		Tool:         e.Tool(),
		Class:        e.Class(),
		GridSize:     e.gridSize,
		Revision:     snap.Revision,
	}
	e.mu.Lock()
	if p, ok := e.draw.Preview(); ok {
		st.Preview = &p
	}
	e.mu.Unlock()
	return st
}

// Command is the JSON envelope both the wasm binding and the session
// layer feed into the editor.
type Command struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

const (
	CmdPointerDown  = "pointer.down"
	CmdPointerMove  = "pointer.move"
	CmdPointerUp    = "pointer.up"
	CmdToolSet      = "tool.set"
	CmdClassSet     = "class.set"
	CmdSelectSet    = "selection.set"
	CmdSelectToggle = "selection.toggle"
	CmdSelectClear  = "selection.clear"
	CmdObjectLock   = "object.lock"
	CmdObjectDelete = "object.delete"
	CmdObjectOrder  = "object.reorder"
	CmdShapeRename  = "shape.rename"
	CmdShapeClass   = "shape.class"
	CmdShapeQuick   = "shape.quickadd"
	CmdAssetDrop    = "asset.drop"
	CmdGroupCreate  = "group.create"
	CmdGroupSelect  = "group.select"
	CmdGroupDelete  = "group.delete"
)

type objectPayload struct {
	ObjectID string      `json:"objectId"`
	Name     string      `json:"name,omitempty"`
	Class    scene.Class `json:"shapeType,omitempty"`
	Forward  bool        `json:"forward,omitempty"`
}

type toolPayload struct {
	Tool  Tool        `json:"tool,omitempty"`
	Class scene.Class `json:"shapeType,omitempty"`
}

type selectionPayload struct {
	IDs []string `json:"ids"`
}

type quickAddPayload struct {
	Class scene.Class `json:"shapeType"`
	X     float64     `json:"x"`
	Y     float64     `json:"y"`
}

type assetDropPayload struct {
	Asset scene.Asset `json:"asset"`
	X     float64     `json:"x"`
	Y     float64     `json:"y"`
}

type groupPayload struct {
	GroupID     string `json:"groupId,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// Apply dispatches a command envelope. Unknown command types and
// malformed payloads are reported to the caller; the scene itself is
// never left in a partial state because every mutation is atomic.
func (e *Editor) Apply(cmd Command) error {
	switch cmd.Type {
	case CmdPointerDown, CmdPointerMove, CmdPointerUp:
		var p Pointer
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return fmt.Errorf("invalid pointer payload: %w", err)
		}
		switch cmd.Type {
		case CmdPointerDown:
			e.PointerDown(p)
		case CmdPointerMove:
			e.PointerMove(p)
		case CmdPointerUp:
			e.PointerUp(p)
		}

	case CmdToolSet:
		var p toolPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return fmt.Errorf("invalid tool payload: %w", err)
		}
		e.SetTool(p.Tool)
		if p.Class != "" {
			e.SetClass(p.Class)
		}

	case CmdClassSet:
		var p toolPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return fmt.Errorf("invalid class payload: %w", err)
		}
		e.SetClass(p.Class)

	case CmdSelectSet:
		var p selectionPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return fmt.Errorf("invalid selection payload: %w", err)
		}
		e.SelectMany(p.IDs)

	case CmdSelectToggle:
		var p objectPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return fmt.Errorf("invalid selection payload: %w", err)
		}
		e.mu.Lock()
		e.selection.Toggle(p.ObjectID)
		e.mu.Unlock()

	case CmdSelectClear:
		e.ClearSelection()

	case CmdObjectLock:
		var p objectPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return fmt.Errorf("invalid object payload: %w", err)
		}
		e.ToggleLock(p.ObjectID)

	case CmdObjectDelete:
		var p objectPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return fmt.Errorf("invalid object payload: %w", err)
		}
		e.Delete(p.ObjectID)

	case CmdObjectOrder:
		var p objectPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return fmt.Errorf("invalid object payload: %w", err)
		}
		if p.Forward {
			e.BringForward(p.ObjectID)
		} else {
			e.SendBackward(p.ObjectID)
		}

	case CmdShapeRename:
		var p objectPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return fmt.Errorf("invalid shape payload: %w", err)
		}
		e.RenameShape(p.ObjectID, p.Name)

	case CmdShapeClass:
		var p objectPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return fmt.Errorf("invalid shape payload: %w", err)
		}
		e.ChangeClass(p.ObjectID, p.Class)

	case CmdShapeQuick:
		var p quickAddPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return fmt.Errorf("invalid quickadd payload: %w", err)
		}
		e.QuickAdd(p.Class, p.X, p.Y)

	case CmdAssetDrop:
		var p assetDropPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return fmt.Errorf("invalid asset payload: %w", err)
		}
		e.DropAsset(p.Asset, p.X, p.Y)

	case CmdGroupCreate:
		var p groupPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return fmt.Errorf("invalid group payload: %w", err)
		}
		e.CreateGroup(p.Name, p.Description)

	case CmdGroupSelect:
		var p groupPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return fmt.Errorf("invalid group payload: %w", err)
		}
		e.SelectGroup(p.GroupID)

	case CmdGroupDelete:
		var p groupPayload
		if err := json.Unmarshal(cmd.Payload, &p); err != nil {
			return fmt.Errorf("invalid group payload: %w", err)
		}
		e.DeleteGroup(p.GroupID)

	default:
		return fmt.Errorf("unknown command type: %s", cmd.Type)
	}
	return nil
}
