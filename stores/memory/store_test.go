package memory

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
)

func TestNewStore(t *testing.T) {
	store := NewStore()
	if store == nil {
		t.Fatal("NewStore() returned nil")
	}
}

func TestSaveOpen_Roundtrip(t *testing.T) {
	store := NewStore()
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

func TestOpen_NotFound(t *testing.T) {
	store := NewStore()

	_, err := store.Open(context.Background(), "missing")
	if err == nil {
		t.Error("Open() should return error for unknown key")
	}
}

func TestDelete_RemovesObject(t *testing.T) {
	store := NewStore()
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
	store := NewStore()

	if err := store.Delete(context.Background(), "missing"); err != nil {
		t.Errorf("Delete() of a missing key should succeed, got %v", err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i))
			if err := store.Save(ctx, key, key+".bin", strings.NewReader("data")); err != nil {
				t.Errorf("Save(%s) failed: %v", key, err)
				return
			}
			obj, err := store.Open(ctx, key)
			if err != nil {
				t.Errorf("Open(%s) failed: %v", key, err)
				return
			}
			obj.Close()
		}(i)
	}
	wg.Wait()
}
