package export

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/gorilla/mux"

	"github.com/sceneforge/sceneforge/internal/editor"
	"github.com/sceneforge/sceneforge/internal/project"
)

// Handler serves PNG previews of stored projects and the live scene.
type Handler struct {
	renderer *Renderer
	service  *project.Service
	editor   *editor.Editor
	gridSize int
}

func NewHandler(renderer *Renderer, service *project.Service, ed *editor.Editor, gridSize int) *Handler {
	return &Handler{renderer: renderer, service: service, editor: ed, gridSize: gridSize}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/projects/{name}/preview", h.Preview).Methods(http.MethodGet)
	r.HandleFunc("/api/scene/preview", h.PreviewCurrent).Methods(http.MethodGet)
}

// Preview renders a stored project to PNG.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	p, err := h.service.Load(r.Context(), name)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}
		slog.Error("failed to load project for preview", "name", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.writePNG(w, *p, name, previewScale(r))
}

// PreviewCurrent renders the live scene without persisting it.
func (h *Handler) PreviewCurrent(w http.ResponseWriter, r *http.Request) {
	p := project.FromSnapshot("scene", h.editor.Store().Snapshot(), h.gridSize)
	h.writePNG(w, p, "scene", previewScale(r))
}

func (h *Handler) writePNG(w http.ResponseWriter, p project.Project, name string, scale float64) {
	img := h.renderer.Render(p, scale)

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".png"))
	if err := gg.NewContextForImage(img).EncodePNG(w); err != nil {
		slog.Error("failed to encode preview", "name", name, "error", err)
	}
}

func previewScale(r *http.Request) float64 {
	s, err := strconv.ParseFloat(r.URL.Query().Get("scale"), 64)
	if err != nil {
		return 0.5
	}
	return s
}
