package project

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestSQLiteStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	storage, err := OpenSQLite(filepath.Join(t.TempDir(), "projects.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer storage.Close()

	if _, err := storage.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) = %v, want ErrNotFound", err)
	}

	if err := storage.Put(ctx, "level-1", []byte(`{"name":"level-1"}`)); err != nil {
		t.Fatalf("put: %v", err)
	}

	data, err := storage.Get(ctx, "level-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != `{"name":"level-1"}` {
		t.Errorf("data = %s", data)
	}

	// Overwrite under the same name.
	if err := storage.Put(ctx, "level-1", []byte(`{"name":"level-1","version":"1.0"}`)); err != nil {
		t.Fatalf("put overwrite: %v", err)
	}
	data, _ = storage.Get(ctx, "level-1")
	if string(data) != `{"name":"level-1","version":"1.0"}` {
		t.Errorf("data after overwrite = %s", data)
	}

	if err := storage.Put(ctx, "level-2", []byte(`{}`)); err != nil {
		t.Fatal(err)
	}
	names, err := storage.ListKeys(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "level-1" || names[1] != "level-2" {
		t.Errorf("names = %v", names)
	}

	if err := storage.Delete(ctx, "level-1"); err != nil {
		t.Fatal(err)
	}
	if _, err := storage.Get(ctx, "level-1"); !errors.Is(err, ErrNotFound) {
		t.Error("record survived delete")
	}
}
