package asset

import (
	"errors"
	"testing"
)

func TestValidateAcceptsSupportedTypes(t *testing.T) {
	cases := []struct {
		name, contentType string
	}{
		{"tree.png", "image/png"},
		{"photo.jpg", "image/jpeg"},
		{"icon.svg", "image/svg+xml"},
		{"theme.mp3", "audio/mpeg"},
		{"effect.wav", "audio/wav"},
	}
	for _, tc := range cases {
		if err := Validate(tc.name, tc.contentType, 1024); err != nil {
			t.Errorf("Validate(%s, %s) = %v", tc.name, tc.contentType, err)
		}
	}
}

func TestValidateRejectsUnsupportedType(t *testing.T) {
	err := Validate("script.exe", "application/octet-stream", 1024)
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("err = %v, want ErrUnsupportedType", err)
	}
}

func TestValidateRejectsOversizedFile(t *testing.T) {
	if err := Validate("huge.png", "image/png", MaxSize+1); !errors.Is(err, ErrTooLarge) {
		t.Errorf("err = %v, want ErrTooLarge", err)
	}
	if err := Validate("fits.png", "image/png", MaxSize); err != nil {
		t.Errorf("file at the exact limit rejected: %v", err)
	}
}

func TestIsAudio(t *testing.T) {
	if !IsAudio("theme.mp3", "audio/mpeg") {
		t.Error("audio MIME type not detected")
	}
	if !IsAudio("THEME.MP3", "") {
		t.Error("audio extension not detected without a MIME type")
	}
	if IsAudio("tree.png", "image/png") {
		t.Error("image detected as audio")
	}
}
