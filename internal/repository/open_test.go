package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mamadbah2/suraksha/internal/config"
	"github.com/mamadbah2/suraksha/internal/repository/file"
	"github.com/mamadbah2/suraksha/internal/repository/kv"
	"github.com/mamadbah2/suraksha/internal/repository/sqlite"
)

func TestOpenLocalDrivers(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		driver string
		check  func(t *testing.T, store kv.Store)
	}{
		{driver: config.DriverMemory, check: func(t *testing.T, store kv.Store) {
			if _, ok := store.(*kv.MemoryStore); !ok {
				t.Fatalf("expected memory store, got %T", store)
			}
		}},
		{driver: config.DriverFile, check: func(t *testing.T, store kv.Store) {
			if _, ok := store.(*file.Store); !ok {
				t.Fatalf("expected file store, got %T", store)
			}
		}},
		{driver: config.DriverSQLite, check: func(t *testing.T, store kv.Store) {
			if _, ok := store.(*sqlite.Store); !ok {
				t.Fatalf("expected sqlite store, got %T", store)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			cfg := config.Config{Storage: config.StorageConfig{
				Driver:     tt.driver,
				Key:        config.DefaultStorageKey,
				FileDir:    filepath.Join(dir, "files"),
				SQLitePath: filepath.Join(dir, "suraksha.db"),
			}}
			store, closeFn, err := Open(context.Background(), cfg, nil)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer func() { _ = closeFn(context.Background()) }()
			tt.check(t, store)
		})
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := config.Config{Storage: config.StorageConfig{Driver: "etcd"}}
	if _, _, err := Open(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
