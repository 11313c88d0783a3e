// Package session connects browser views to the editor over WebSocket.
// Every connected client sees the same scene: commands from any client
// mutate it and a full render-state sync is pushed to all of them.
package session

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/coder/websocket"

	"github.com/sceneforge/sceneforge/internal/editor"
	"github.com/sceneforge/sceneforge/internal/scene"
	"github.com/sceneforge/sceneforge/internal/typeid"
)

type Hub struct {
	mu          sync.RWMutex
	clients     map[string]*Client // clientID -> client
	editor      *editor.Editor
	cursors     *CursorTracker
	register    chan *Client
	unregister  chan *Client
	stop        chan struct{}
	unsubscribe func()
}

func NewHub(ed *editor.Editor) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		editor:     ed,
		cursors:    NewCursorTracker(),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	// Any store mutation, whatever its source, reaches every client.
	h.unsubscribe = h.editor.Store().Subscribe(func(scene.Snapshot) {
		h.broadcastSync()
	})

	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.stop:
			if h.unsubscribe != nil {
				h.unsubscribe()
			}
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.stop)
}

// Register and Unregister select on stop so pump goroutines do not
// block once the hub has shut down.
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.stop:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.stop:
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()

	payload, err := json.Marshal(WelcomePayload{
		ClientID: client.ID,
		State:    h.editor.State(),
	})
	if err != nil {
		slog.Error("marshal welcome", "error", err)
	} else {
		client.Send(&Message{Type: TypeWelcome, Payload: payload})
	}

	if stateMsg := h.cursors.StateMessage(); stateMsg != nil {
		client.Send(stateMsg)
	}

	slog.Info("client joined", "client", client.ID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.ID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.ID)
	h.cursors.Remove(client.ID)
	h.mu.Unlock()

	client.closeSend()

	leavePayload, _ := json.Marshal(CursorLeavePayload{ClientID: client.ID})
	h.broadcast(&Message{Type: TypeCursorLeave, Payload: leavePayload}, "")

	slog.Info("client left", "client", client.ID)
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypeCommand:
		h.handleCommand(sender, msg)
	case TypeCursorUpdate:
		h.handleCursorUpdate(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", sender.ID)
	}
}

// handleCommand applies an editor command. Failures go back to the
// sender only; successful mutations reach everyone through the store
// subscription, so no sync is sent here.
func (h *Hub) handleCommand(sender *Client, msg *Message) {
	var cmd editor.Command
	if err := json.Unmarshal(msg.Payload, &cmd); err != nil {
		h.sendError(sender, msg.Seq, "invalid command payload")
		return
	}

	if err := h.editor.Apply(cmd); err != nil {
		slog.Warn("command rejected", "type", cmd.Type, "client", sender.ID, "error", err)
		h.sendError(sender, msg.Seq, err.Error())
	}
}

func (h *Hub) handleCursorUpdate(sender *Client, msg *Message) {
	var cursor CursorPayload
	if err := json.Unmarshal(msg.Payload, &cursor); err != nil {
		slog.Warn("invalid cursor payload", "error", err)
		return
	}

	h.cursors.Update(sender.ID, &cursor)

	outPayload, _ := json.Marshal(cursor)
	h.broadcast(&Message{
		Type:     TypeCursorUpdate,
		ClientID: sender.ID,
		Payload:  outPayload,
	}, sender.ID)
}

func (h *Hub) broadcastSync() {
	payload, err := json.Marshal(SyncPayload{State: h.editor.State()})
	if err != nil {
		slog.Error("marshal scene sync", "error", err)
		return
	}
	h.broadcast(&Message{Type: TypeSceneSync, Payload: payload}, "")
}

func (h *Hub) sendError(c *Client, seq int64, message string) {
	payload, _ := json.Marshal(ErrorPayload{Message: message, Seq: seq})
	c.Send(&Message{Type: TypeError, Payload: payload})
}

func (h *Hub) broadcast(msg *Message, excludeClientID string) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		if c.ID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}

// ServeWS upgrades the request and runs the client pumps.
func (h *Hub) ServeWS(originPatterns []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: originPatterns,
		})
		if err != nil {
			slog.Error("websocket accept", "error", err)
			return
		}

		client := NewClient(h, conn, typeid.NewClientID())

		h.Register(client)

		ctx := r.Context()
		go client.WritePump(ctx)
		client.ReadPump(ctx)
	}
}
