package session

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// CursorTracker holds the last reported cursor per connected client.
type CursorTracker struct {
	mu      sync.RWMutex
	cursors map[string]*CursorPayload // clientID -> cursor
}

func NewCursorTracker() *CursorTracker {
	return &CursorTracker{
		cursors: make(map[string]*CursorPayload),
	}
}

func (ct *CursorTracker) Update(clientID string, c *CursorPayload) {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.cursors[clientID] = c
}

func (ct *CursorTracker) Remove(clientID string) {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	delete(ct.cursors, clientID)
}

func (ct *CursorTracker) GetAll() map[string]*CursorPayload {
	ct.mu.RLock()
	defer ct.mu.RUnlock()

	result := make(map[string]*CursorPayload, len(ct.cursors))
	for k, v := range ct.cursors {
		result[k] = v
	}
	return result
}

func (ct *CursorTracker) StateMessage() *Message {
	all := ct.GetAll()
	payload, err := json.Marshal(CursorStatePayload{Cursors: all})
	if err != nil {
		slog.Error("marshal cursor state", "error", err)
		return nil
	}
	return &Message{
		Type:    TypeCursorState,
		Payload: payload,
	}
}
