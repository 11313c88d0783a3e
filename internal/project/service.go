package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sceneforge/sceneforge/internal/scene"
)

// ErrImport is returned when an imported file cannot be parsed as a
// project record. Import is the one persistence operation that fails
// loudly: it is user-initiated and needs feedback.
var ErrImport = errors.New("invalid project file")

// Service implements named project snapshots over an injected Storage
// engine. Save failures are returned, never panicked; callers on
// background paths log and continue.
type Service struct {
	storage Storage
}

func NewService(storage Storage) *Service {
	return &Service{storage: storage}
}

// Save serializes the record and writes it under name, overwriting any
// existing record. The stored Name and Timestamp are set here; the
// caller's values are ignored.
func (s *Service) Save(ctx context.Context, p Project, name string) error {
	p.Name = name
	p.Version = Version
	p.Timestamp = nowMilli()
	p.Normalize()

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	if err := s.storage.Put(ctx, name, data); err != nil {
		return fmt.Errorf("store project %q: %w", name, err)
	}
	return nil
}

// SaveSnapshot persists a live scene snapshot under name.
func (s *Service) SaveSnapshot(ctx context.Context, name string, snap scene.Snapshot, gridSize int) error {
	return s.Save(ctx, FromSnapshot(name, snap, gridSize), name)
}

// Load reads the record stored under name. Missing optional fields are
// defaulted on read so old records stay loadable.
func (s *Service) Load(ctx context.Context, name string) (*Project, error) {
	data, err := s.storage.Get(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load project %q: %w", name, err)
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode project %q: %w", name, err)
	}
	p.Normalize()
	return &p, nil
}

// List returns all stored project names.
func (s *Service) List(ctx context.Context) ([]string, error) {
	names, err := s.storage.ListKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return names, nil
}

// Delete removes the record. Deleting a name that does not exist is a
// no-op success.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := s.storage.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete project %q: %w", name, err)
	}
	return nil
}

// Export writes the record as indented JSON, byte-for-byte parseable by
// Import.
func (s *Service) Export(w io.Writer, p Project, name string) error {
	p.Name = name
	p.Version = Version
	p.Timestamp = nowMilli()
	p.Normalize()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// Import parses a project file. Malformed content surfaces ErrImport and
// leaves all stored records and the live scene untouched.
func (s *Service) Import(r io.Reader) (*Project, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import: %w", err)
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImport, err)
	}
	p.Normalize()
	return &p, nil
}
