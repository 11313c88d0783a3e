//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/sceneforge/sceneforge/internal/editor"
	"github.com/sceneforge/sceneforge/internal/grid"
	"github.com/sceneforge/sceneforge/internal/notepad"
	"github.com/sceneforge/sceneforge/internal/scene"
)

var (
	ed  *editor.Editor
	pad *notepad.Notepad
)

func main() {
	canvas := grid.Default()
	ed = editor.New(canvas, grid.DefaultGridSize)
	pad = notepad.New()

	sceneEditor := js.Global().Get("Object").New()

	// --- Commands (frontend → engine) ---
	sceneEditor.Set("pointerDown", js.FuncOf(pointerDown))
	sceneEditor.Set("pointerMove", js.FuncOf(pointerMove))
	sceneEditor.Set("pointerUp", js.FuncOf(pointerUp))
	sceneEditor.Set("setTool", js.FuncOf(setTool))
	sceneEditor.Set("setClass", js.FuncOf(setClass))
	sceneEditor.Set("setSelection", js.FuncOf(setSelection))
	sceneEditor.Set("clearSelection", js.FuncOf(clearSelection))
	sceneEditor.Set("applyCommand", js.FuncOf(applyCommand))
	sceneEditor.Set("loadScene", js.FuncOf(loadScene))

	// --- Queries (frontend ← engine) ---
	sceneEditor.Set("getState", js.FuncOf(getState))
	sceneEditor.Set("getSelection", js.FuncOf(getSelection))
	sceneEditor.Set("computeViewport", js.FuncOf(computeViewport))
	sceneEditor.Set("screenToLogical", js.FuncOf(screenToLogical))
	sceneEditor.Set("snapPoint", js.FuncOf(snapPoint))
	sceneEditor.Set("getNotepad", js.FuncOf(getNotepad))
	sceneEditor.Set("getSceneContext", js.FuncOf(getSceneContext))

	// Register on global scope
	js.Global().Set("sceneEditor", sceneEditor)

	// Signal that WASM is ready
	js.Global().Set("sceneEditorReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// pointerFromArgs reads (x, y, originX, originY, scale, targetId, modifier).
func pointerFromArgs(args []js.Value) (editor.Pointer, bool) {
	if len(args) < 5 {
		return editor.Pointer{}, false
	}
	p := editor.Pointer{
		X:       args[0].Float(),
		Y:       args[1].Float(),
		OriginX: args[2].Float(),
		OriginY: args[3].Float(),
		Scale:   args[4].Float(),
	}
	if len(args) > 5 && args[5].Type() == js.TypeString {
		p.TargetID = args[5].String()
	}
	if len(args) > 6 && args[6].Type() == js.TypeBoolean {
		p.Modifier = args[6].Bool()
	}
	return p, true
}

// --- Command Handlers ---

func pointerDown(this js.Value, args []js.Value) interface{} {
	p, ok := pointerFromArgs(args)
	if !ok {
		return nil
	}
	ed.PointerDown(p)
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	p, ok := pointerFromArgs(args)
	if !ok {
		return nil
	}
	ed.PointerMove(p)
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	p, ok := pointerFromArgs(args)
	if !ok {
		return nil
	}
	ed.PointerUp(p)
	return nil
}

func setTool(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	ed.SetTool(editor.Tool(args[0].String()))
	return nil
}

func setClass(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	ed.SetClass(scene.Class(args[0].String()))
	return nil
}

func setSelection(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		ed.ClearSelection()
		return nil
	}

	arr := args[0]
	length := arr.Length()
	ids := make([]string, length)
	for i := 0; i < length; i++ {
		ids[i] = arr.Index(i).String()
	}
	ed.SelectMany(ids)
	return nil
}

func clearSelection(this js.Value, args []js.Value) interface{} {
	ed.ClearSelection()
	return nil
}

// applyCommand dispatches a JSON command envelope, the same protocol the
// WebSocket session speaks.
func applyCommand(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing command JSON"})
	}

	var cmd editor.Command
	if err := json.Unmarshal([]byte(args[0].String()), &cmd); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	if err := ed.Apply(cmd); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func loadScene(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing scene JSON"})
	}

	var snap scene.Snapshot
	if err := json.Unmarshal([]byte(args[0].String()), &snap); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	ed.Store().Replace(snap.Assets, snap.CanvasAssets, snap.Shapes, snap.Groups)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Query Handlers ---

func getState(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(ed.State())
	if err != nil {
		return js.ValueOf("{}")
	}
	return js.ValueOf(string(data))
}

func getSelection(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(ed.Selection())
	if err != nil {
		return js.ValueOf("[]")
	}
	return js.ValueOf(string(data))
}

func computeViewport(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("{}")
	}
	vp := ed.Canvas().ComputeViewport(args[0].Float(), args[1].Float())
	data, err := json.Marshal(vp)
	if err != nil {
		return js.ValueOf("{}")
	}
	return js.ValueOf(string(data))
}

func screenToLogical(this js.Value, args []js.Value) interface{} {
	if len(args) < 5 {
		return js.ValueOf(map[string]interface{}{"x": 0, "y": 0})
	}
	x, y := ed.Canvas().ScreenToLogical(
		args[0].Float(), args[1].Float(),
		args[2].Float(), args[3].Float(),
		args[4].Float(),
	)
	return js.ValueOf(map[string]interface{}{"x": x, "y": y})
}

func snapPoint(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf(map[string]interface{}{"x": 0, "y": 0})
	}
	x, y := ed.SnapPoint(args[0].Float(), args[1].Float())
	return js.ValueOf(map[string]interface{}{"x": x, "y": y})
}

func getNotepad(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(pad.Text())
}

func getSceneContext(this js.Value, args []js.Value) interface{} {
	selected := ""
	if ids := ed.Selection(); len(ids) > 0 {
		selected = ids[0]
	}
	return js.ValueOf(notepad.SceneContext(ed.Store().Snapshot(), selected))
}
