package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/pdf-editor/internal/lifecycle"
	"github.com/JaimeStill/pdf-editor/pkg/storage"
)

func newStorage(t *testing.T) (storage.System, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "blobs")

	sys, err := storage.New(&storage.Config{BasePath: dir}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if err := sys.Start(lifecycle.New()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return sys, dir
}

func TestNew_EmptyBasePath(t *testing.T) {
	if _, err := storage.New(&storage.Config{}, slog.Default()); err == nil {
		t.Fatal("New() succeeded with empty BasePath, want error")
	}
}

func TestStart_CreatesDirectory(t *testing.T) {
	_, dir := newStorage(t)

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("base path not created: %v", err)
	}
	if !info.IsDir() {
		t.Error("base path is not a directory")
	}
}

func TestStore_RetrieveRoundTrip(t *testing.T) {
	sys, _ := newStorage(t)
	ctx := context.Background()

	if err := sys.Store(ctx, "documents/a/file.pdf", []byte("first")); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}
	if err := sys.Store(ctx, "documents/a/file.pdf", []byte("second")); err != nil {
		t.Fatalf("Store() overwrite failed: %v", err)
	}

	got, err := sys.Retrieve(ctx, "documents/a/file.pdf")
	if err != nil {
		t.Fatalf("Retrieve() failed: %v", err)
	}
	if !bytes.Equal(got, []byte("second")) {
		t.Errorf("Retrieve() = %q, want %q", got, "second")
	}

	entries, err := os.ReadDir(filepath.Dir(mustPath(t, sys, "documents/a/file.pdf")))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want 1 (no temp files left behind)", len(entries))
	}
}

func TestRetrieve_NotFound(t *testing.T) {
	sys, _ := newStorage(t)

	_, err := sys.Retrieve(context.Background(), "missing.pdf")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Retrieve() error = %v, want ErrNotFound", err)
	}
}

func TestInvalidKeys(t *testing.T) {
	sys, _ := newStorage(t)
	ctx := context.Background()

	for _, key := range []string{"", ".", "../escape.pdf", "a/../../escape.pdf", "/etc/passwd"} {
		t.Run(key, func(t *testing.T) {
			if err := sys.Store(ctx, key, []byte("x")); !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("Store(%q) error = %v, want ErrInvalidKey", key, err)
			}
			if _, err := sys.Path(ctx, key); !errors.Is(err, storage.ErrInvalidKey) {
				t.Errorf("Path(%q) error = %v, want ErrInvalidKey", key, err)
			}
		})
	}
}

func TestDelete_PrunesEmptyDirectories(t *testing.T) {
	sys, dir := newStorage(t)
	ctx := context.Background()

	if err := sys.Store(ctx, "documents/a/file.pdf", []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := sys.Delete(ctx, "documents/a/file.pdf"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := sys.Delete(ctx, "documents/a/file.pdf"); err != nil {
		t.Errorf("second Delete() = %v, want nil", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "documents")); !os.IsNotExist(err) {
		t.Error("empty parent directories were not removed")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Error("base path must survive cleanup")
	}
}

func TestValidate(t *testing.T) {
	sys, _ := newStorage(t)
	ctx := context.Background()

	ok, err := sys.Validate(ctx, "a.pdf")
	if err != nil || ok {
		t.Fatalf("Validate() = %v, %v; want false, nil", ok, err)
	}

	if err := sys.Store(ctx, "a.pdf", nil); err != nil {
		t.Fatal(err)
	}
	ok, err = sys.Validate(ctx, "a.pdf")
	if err != nil || !ok {
		t.Errorf("Validate() = %v, %v; want true, nil", ok, err)
	}
}

func mustPath(t *testing.T, sys storage.System, key string) string {
	t.Helper()
	p, err := sys.Path(context.Background(), key)
	if err != nil {
		t.Fatalf("Path(%q) failed: %v", key, err)
	}
	return p
}
