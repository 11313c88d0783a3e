package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/sceneforge/sceneforge/internal/asset"
	"github.com/sceneforge/sceneforge/internal/config"
	"github.com/sceneforge/sceneforge/internal/editor"
	"github.com/sceneforge/sceneforge/internal/export"
	"github.com/sceneforge/sceneforge/internal/grid"
	mw "github.com/sceneforge/sceneforge/internal/middleware"
	"github.com/sceneforge/sceneforge/internal/notepad"
	"github.com/sceneforge/sceneforge/internal/project"
	"github.com/sceneforge/sceneforge/internal/session"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storage, err := project.OpenSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("open project storage", "error", err)
		os.Exit(1)
	}
	defer storage.Close()

	canvas := grid.Canvas{Width: float64(cfg.CanvasWidth), Height: float64(cfg.CanvasHeight)}
	ed := editor.New(canvas, cfg.GridSize)

	projectService := project.NewService(storage)
	projectHandler := project.NewHandler(projectService, ed)

	autosaver := project.NewAutosaver(projectService, ed.Store(), cfg.GridSize, cfg.AutosaveDebounce)
	if err := autosaver.LoadStartup(ctx); err != nil {
		slog.Warn("restore autosave", "error", err)
	}
	autosaver.Start()

	if assets, err := asset.Scan(cfg.AssetDir); err != nil {
		slog.Warn("scan asset folder", "dir", cfg.AssetDir, "error", err)
	} else if len(assets) > 0 {
		ed.Store().SetLibrary(assets)
	}

	hub := session.NewHub(ed)
	go hub.Run()

	assetHandler := asset.NewHandler(cfg.AssetDir, ed)
	renderer := export.NewRenderer(canvas, cfg.AssetDir)
	exportHandler := export.NewHandler(renderer, projectService, ed, cfg.GridSize)
	notepadHandler := notepad.NewHandler(notepad.New(), ed)

	origins := splitOrigins(cfg.AllowedOrigins)

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.RequestID)
	r.Use(mw.Logger)
	r.Use(mw.CORS(origins))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Asset endpoints
	r.HandleFunc("/assets/upload", assetHandler.Upload).Methods("POST", "OPTIONS")
	r.HandleFunc("/assets/library", assetHandler.Library).Methods("GET")
	r.HandleFunc("/assets/scan", assetHandler.Rescan).Methods("POST", "OPTIONS")
	r.PathPrefix("/assets/").Handler(assetHandler.Serve()).Methods("GET")

	// Project persistence
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/projects", projectHandler.List).Methods("GET")
	api.HandleFunc("/projects/import", projectHandler.Import).Methods("POST", "OPTIONS")
	api.HandleFunc("/projects/{name}", projectHandler.Save).Methods("POST", "PUT")
	api.HandleFunc("/projects/{name}", projectHandler.Get).Methods("GET")
	api.HandleFunc("/projects/{name}", projectHandler.Delete).Methods("DELETE")
	api.HandleFunc("/projects/{name}/open", projectHandler.Open).Methods("POST")
	api.HandleFunc("/projects/{name}/export", projectHandler.Export).Methods("GET")
	api.HandleFunc("/scene/export", projectHandler.ExportCurrent).Methods("GET")

	exportHandler.RegisterRoutes(r)
	notepadHandler.RegisterRoutes(r)

	// WebSocket endpoint for live editor sessions
	r.HandleFunc("/ws/scene", hub.ServeWS(wsOriginPatterns(origins)))

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		hub.Stop()

		// Flush an in-flight or pending autosave before closing
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		autosaver.Stop()
		autosaver.Flush(flushCtx)
		flushCancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// wsOriginPatterns strips schemes: websocket.AcceptOptions matches on
// host patterns, not full origins.
func wsOriginPatterns(origins []string) []string {
	patterns := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimPrefix(o, "http://")
		o = strings.TrimPrefix(o, "https://")
		patterns = append(patterns, o)
	}
	return patterns
}
