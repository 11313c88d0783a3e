package asset

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/sceneforge/sceneforge/internal/editor"
	"github.com/sceneforge/sceneforge/internal/scene"
	"github.com/sceneforge/sceneforge/internal/typeid"
)

// maxBatchSize bounds one upload request, not one file.
const maxBatchSize = 64 << 20

// UploadResponse reports the outcome of a batch upload: the assets that
// made it into the library plus a message per rejected file.
type UploadResponse struct {
	Added    []scene.Asset `json:"added"`
	Rejected []string      `json:"rejected,omitempty"`
}

// Handler serves asset ingestion and retrieval. Uploaded files land in
// the asset library; placement on the canvas happens separately via the
// editor's drop command.
type Handler struct {
	dir    string
	editor *editor.Editor
}

// NewHandler creates an asset handler storing files in dir.
func NewHandler(dir string, ed *editor.Editor) *Handler {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Error("create asset dir", "error", err, "dir", dir)
	}
	return &Handler{dir: dir, editor: ed}
}

// Upload handles POST /assets/upload (multipart form, repeated "file"
// fields). Files failing validation are excluded individually; the rest
// of the batch proceeds.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBatchSize)

	if err := r.ParseMultipartForm(maxBatchSize); err != nil {
		http.Error(w, "upload too large", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	folder := r.FormValue("folder")
	if folder == "" {
		folder = "uploaded"
	}

	var resp UploadResponse
	for _, header := range r.MultipartForm.File["file"] {
		contentType := header.Header.Get("Content-Type")

		if err := Validate(header.Filename, contentType, header.Size); err != nil {
			resp.Rejected = append(resp.Rejected, err.Error())
			continue
		}

		f, err := header.Open()
		if err != nil {
			slog.Error("open uploaded file", "name", header.Filename, "error", err)
			resp.Rejected = append(resp.Rejected, "failed to read: "+header.Filename)
			continue
		}

		a, err := h.storeFile(f, header.Filename, contentType, header.Size, folder)
		f.Close()
		if err != nil {
			slog.Error("store asset", "name", header.Filename, "error", err)
			resp.Rejected = append(resp.Rejected, "failed to store: "+header.Filename)
			continue
		}

		h.editor.Store().AddLibraryAsset(a)
		resp.Added = append(resp.Added, a)
	}

	slog.Info("asset upload", "added", len(resp.Added), "rejected", len(resp.Rejected))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// storeFile writes the file under an id-derived name and returns the
// library asset record pointing at it.
func (h *Handler) storeFile(src io.Reader, name, contentType string, size int64, folder string) (scene.Asset, error) {
	assetID := typeid.NewAssetID()
	filename := assetID + filepath.Ext(name)
	path := filepath.Join(h.dir, filename)

	out, err := os.Create(path)
	if err != nil {
		return scene.Asset{}, fmt.Errorf("create asset file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(path)
		return scene.Asset{}, fmt.Errorf("write asset file: %w", err)
	}

	return scene.Asset{
		ID:       assetID,
		Name:     name,
		Src:      "/assets/" + filename,
		Folder:   folder,
		MimeType: contentType,
		Size:     size,
		IsAudio:  IsAudio(name, contentType),
	}, nil
}

// Library handles GET /assets/library: the current asset library.
func (h *Handler) Library(w http.ResponseWriter, r *http.Request) {
	snap := h.editor.Store().Snapshot()
	assets := snap.Assets
	if assets == nil {
		assets = []scene.Asset{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(assets)
}

// Serve returns an http.Handler for stored asset files. Asset ids are
// unique, so files are immutable and cacheable forever.
func (h *Handler) Serve() http.Handler {
	fs := http.FileServer(http.Dir(h.dir))
	return http.StripPrefix("/assets/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		fs.ServeHTTP(w, r)
	}))
}

// Delete removes an asset file from disk (for cleanup).
func (h *Handler) Delete(assetID string) error {
	matches, err := filepath.Glob(filepath.Join(h.dir, assetID+".*"))
	if err != nil || len(matches) == 0 {
		return fmt.Errorf("asset not found: %s", assetID)
	}
	return os.Remove(matches[0])
}
