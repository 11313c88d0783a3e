package asset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// MaxSize is the per-file ingestion ceiling.
const MaxSize = 10 << 20 // 10MB

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
)

var supportedTypes = map[string]bool{
	"image/png":     true,
	"image/jpeg":    true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
	"image/bmp":     true,
	"audio/mpeg":    true,
	"audio/wav":     true,
	"audio/ogg":     true,
	"audio/mp4":     true,
	"audio/x-m4a":   true,
	"audio/aac":     true,
	"audio/flac":    true,
}

var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".ogg":  true,
	".m4a":  true,
	".aac":  true,
	".flac": true,
}

// Validate checks one file against the ingestion rules. A failed file is
// excluded from its batch; the remaining files still proceed.
func Validate(name, contentType string, size int64) error {
	if !supportedTypes[contentType] {
		return fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, name, contentType)
	}
	if size > MaxSize {
		return fmt.Errorf("%w (max 10MB): %s", ErrTooLarge, name)
	}
	return nil
}

// IsAudio reports whether a file is an audio clip, by MIME type or by
// extension when the type is missing.
func IsAudio(name, contentType string) bool {
	if strings.HasPrefix(contentType, "audio/") {
		return true
	}
	return audioExtensions[strings.ToLower(filepath.Ext(name))]
}
