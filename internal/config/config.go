package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port             int           `envconfig:"PORT" default:"8080"`
	DBPath           string        `envconfig:"DB_PATH" default:"./data/projects.db"`
	AssetDir         string        `envconfig:"ASSET_DIR" default:"./data/assets"`
	AutosaveDebounce time.Duration `envconfig:"AUTOSAVE_DEBOUNCE" default:"30s"`
	AllowedOrigins   string        `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	CanvasWidth      int           `envconfig:"CANVAS_WIDTH" default:"1920"`
	CanvasHeight     int           `envconfig:"CANVAS_HEIGHT" default:"1080"`
	GridSize         int           `envconfig:"GRID_SIZE" default:"32"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
