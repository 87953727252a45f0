package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mamadbah2/suraksha/internal/repository/kv"
)

func TestStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db", "suraksha.db")

	store, err := NewStore(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := store.Get(ctx, "records"); !errors.Is(err, kv.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	if err := store.Put(ctx, "records", []byte(`["a"]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, "records", []byte(`["b"]`)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Get(ctx, "records")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `["b"]` {
		t.Fatalf("unexpected value %q", got)
	}
}
