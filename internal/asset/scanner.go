package asset

import (
	"encoding/json"
	"io/fs"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/sceneforge/sceneforge/internal/scene"
	"github.com/sceneforge/sceneforge/internal/typeid"
)

// Scan walks the asset directory and rebuilds the library from what is
// on disk. The parent directory of each file becomes its folder
// provenance tag; files that fail validation are skipped.
func Scan(dir string) ([]scene.Asset, error) {
	var assets []scene.Asset

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			slog.Warn("scan asset folder", "path", path, "error", err)
			return nil
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		contentType := mime.TypeByExtension(filepath.Ext(path))
		if Validate(d.Name(), contentType, info.Size()) != nil {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = d.Name()
		}
		folder := filepath.Dir(rel)
		if folder == "." {
			folder = "root"
		}

		assets = append(assets, scene.Asset{
			ID:       typeid.NewAssetID(),
			Name:     d.Name(),
			Src:      "/assets/" + filepath.ToSlash(rel),
			Folder:   folder,
			MimeType: contentType,
			Size:     info.Size(),
			IsAudio:  IsAudio(d.Name(), contentType),
		})
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return assets, nil
}

// Rescan handles POST /assets/scan: rebuilds the library from disk,
// replacing its previous contents the way a folder re-selection does.
func (h *Handler) Rescan(w http.ResponseWriter, r *http.Request) {
	assets, err := Scan(h.dir)
	if err != nil {
		slog.Error("scan assets failed", "dir", h.dir, "error", err)
		http.Error(w, "scan failed", http.StatusInternalServerError)
		return
	}

	h.editor.Store().SetLibrary(assets)

	w.Header().Set("Content-Type", "application/json")
	if assets == nil {
		assets = []scene.Asset{}
	}
	json.NewEncoder(w).Encode(assets)
}
