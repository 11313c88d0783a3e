package notepad

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sceneforge/sceneforge/internal/editor"
)

type Handler struct {
	notepad *Notepad
	editor  *editor.Editor
}

func NewHandler(n *Notepad, ed *editor.Editor) *Handler {
	return &Handler{notepad: n, editor: ed}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/notepad", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/api/notepad", h.Clear).Methods(http.MethodDelete)
	r.HandleFunc("/api/notepad/object/{id}", h.AppendObject).Methods(http.MethodPost)
	r.HandleFunc("/api/notepad/group/{id}", h.AppendGroup).Methods(http.MethodPost)
	r.HandleFunc("/api/notepad/coords", h.AppendCoords).Methods(http.MethodPost)
	r.HandleFunc("/api/notepad/context", h.Context).Methods(http.MethodGet)
}

type textResponse struct {
	Text string `json:"text"`
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, textResponse{Text: h.notepad.Text()})
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	h.notepad.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AppendObject(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	obj, ok := h.editor.Store().Object(id)
	if !ok {
		http.Error(w, "object not found", http.StatusNotFound)
		return
	}

	h.notepad.AppendObjectRef(obj)
	writeJSON(w, http.StatusOK, textResponse{Text: h.notepad.Text()})
}

func (h *Handler) AppendGroup(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	snap := h.editor.Store().Snapshot()
	for _, g := range snap.Groups {
		if g.ID == id {
			h.notepad.AppendGroup(g)
			writeJSON(w, http.StatusOK, textResponse{Text: h.notepad.Text()})
			return
		}
	}
	http.Error(w, "group not found", http.StatusNotFound)
}

func (h *Handler) AppendCoords(w http.ResponseWriter, r *http.Request) {
	var req struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.notepad.AppendCoordinates(req.X, req.Y)
	writeJSON(w, http.StatusOK, textResponse{Text: h.notepad.Text()})
}

// Context returns the paste-ready scene inventory as plain text.
func (h *Handler) Context(w http.ResponseWriter, r *http.Request) {
	selected := ""
	if ids := h.editor.Selection(); len(ids) > 0 {
		selected = ids[0]
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(SceneContext(h.editor.Store().Snapshot(), selected))); err != nil {
		slog.Debug("write scene context", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}
