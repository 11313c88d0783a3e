package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sceneforge/sceneforge/internal/editor"
)

// Handler exposes the persistence layer over HTTP. Save and load operate
// on the live editor scene; export/import move the same record shape in
// and out as files.
type Handler struct {
	service *Service
	editor  *editor.Editor
}

func NewHandler(service *Service, ed *editor.Editor) *Handler {
	return &Handler{service: service, editor: ed}
}

// Save handles POST /api/projects/{name}: snapshots the live scene under
// the given name, overwriting any existing record.
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	snap := h.editor.Store().Snapshot()
	if err := h.service.SaveSnapshot(r.Context(), name, snap, h.editor.GridSize()); err != nil {
		slog.Error("save project failed", "name", name, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "save failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "saved", "name": name})
}

// Get handles GET /api/projects/{name}: returns the stored record
// without touching the live scene.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	p, err := h.service.Load(r.Context(), name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// Open handles POST /api/projects/{name}/open: loads the record and
// replaces the live scene with it.
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	p, err := h.service.Load(r.Context(), name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.editor.Store().Replace(p.Assets, p.CanvasAssets, p.Shapes, p.Groups)
	writeJSON(w, http.StatusOK, p)
}

// List handles GET /api/projects.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.List(r.Context())
	if err != nil {
		slog.Error("list projects failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, names)
}

// Delete handles DELETE /api/projects/{name}. Deleting a missing record
// succeeds.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := h.service.Delete(r.Context(), name); err != nil {
		slog.Error("delete project failed", "name", name, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Export handles GET /api/projects/{name}/export: downloads the stored
// record as <name>.json. The live scene is never substituted for a
// missing record.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	p, err := h.service.Load(r.Context(), name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.json"`, name))
	if err := h.service.Export(w, *p, name); err != nil {
		slog.Error("export project failed", "name", name, "error", err)
	}
}

// ExportCurrent handles GET /api/scene/export?name=...: downloads the
// live scene without requiring a prior save.
func (h *Handler) ExportCurrent(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "project"
	}

	snap := h.editor.Store().Snapshot()
	p := FromSnapshot(name, snap, h.editor.GridSize())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.json"`, name))
	if err := h.service.Export(w, p, name); err != nil {
		slog.Error("export scene failed", "name", name, "error", err)
	}
}

// Import handles POST /api/projects/import: parses the uploaded file and
// replaces the live scene. A malformed file is rejected with a visible
// error and the scene is left untouched.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		// Fall back to a raw JSON body.
		p, impErr := h.service.Import(r.Body)
		if impErr != nil {
			handleServiceError(w, impErr)
			return
		}
		h.applyImport(w, p)
		return
	}
	defer file.Close()

	p, err := h.service.Import(file)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	h.applyImport(w, p)
}

func (h *Handler) applyImport(w http.ResponseWriter, p *Project) {
	h.editor.Store().Replace(p.Assets, p.CanvasAssets, p.Shapes, p.Groups)
	writeJSON(w, http.StatusOK, p)
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, ErrImport):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid project file"})
	default:
		slog.Error("service error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
