package sqlite

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *sqliteStore {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "test.db"))
}

func TestSaveOpen_Roundtrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	testData := "file contents"
	if err := store.Save(ctx, "k1", "report.pdf", strings.NewReader(testData)); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	obj, err := store.Open(ctx, "k1")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		t.Fatalf("reading object failed: %v", err)
	}
	if string(data) != testData {
		t.Errorf("data mismatch: got %q, want %q", string(data), testData)
	}
}

func TestSave_DuplicateKeyFails(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "k1", "a.txt", strings.NewReader("x")); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := store.Save(ctx, "k1", "b.txt", strings.NewReader("y")); err == nil {
		t.Error("Save() should fail on a duplicate primary key")
	}
}

func TestOpen_NotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Open(context.Background(), "missing")
	if err == nil {
		t.Error("Open() should return error for unknown key")
	}
}

func TestDelete_RemovesObject(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "k1", "report.pdf", strings.NewReader("x")); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := store.Delete(ctx, "k1"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := store.Open(ctx, "k1"); err == nil {
		t.Error("Open() should fail after deletion")
	}
}

func TestDelete_MissingKeyIsNoop(t *testing.T) {
	store := newTestStore(t)

	if err := store.Delete(context.Background(), "missing"); err != nil {
		t.Errorf("Delete() of a missing key should succeed, got %v", err)
	}
}
