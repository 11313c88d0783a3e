package session

import (
	"encoding/json"

	"github.com/sceneforge/sceneforge/internal/editor"
)

type Message struct {
	Type     string          `json:"type"`
	ClientID string          `json:"clientId,omitempty"`
	Seq      int64           `json:"seq,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

const (
	// Connection
	TypeWelcome = "welcome"

	// Scene sync: full render state pushed after every mutation
	TypeSceneSync = "scene.sync"

	// Editor commands submitted by a client
	TypeCommand = "command"

	// Cursor presence
	TypeCursorUpdate = "cursor.update"
	TypeCursorState  = "cursor.state"
	TypeCursorLeave  = "cursor.leave"

	TypeError = "error"
)

type WelcomePayload struct {
	ClientID string             `json:"clientId"`
	State    editor.RenderState `json:"state"`
}

type SyncPayload struct {
	State editor.RenderState `json:"state"`
}

type CursorPayload struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Tool string  `json:"tool,omitempty"`
}

type CursorStatePayload struct {
	Cursors map[string]*CursorPayload `json:"cursors"`
}

type CursorLeavePayload struct {
	ClientID string `json:"clientId"`
}

type ErrorPayload struct {
	Message string `json:"message"`
	Seq     int64  `json:"seq,omitempty"`
}
