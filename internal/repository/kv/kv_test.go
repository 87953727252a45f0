package kv

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryStoreMissingKey(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Get(context.Background(), "absent"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	value := []byte(`[1,2,3]`)
	if err := store.Put(ctx, "k", value); err != nil {
		t.Fatalf("put: %v", err)
	}
	value[0] = 'x'

	got, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[1,2,3]` {
		t.Fatalf("stored value aliased caller slice: %q", got)
	}

	got[1] = 'y'
	again, _ := store.Get(ctx, "k")
	if string(again) != `[1,2,3]` {
		t.Fatalf("returned value aliased stored slice: %q", again)
	}
}
