package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
)

func TestNewStoreWrapsOpenError(t *testing.T) {
	prev := sqlOpen
	sqlOpen = func(driverName, dataSourceName string) (*sql.DB, error) {
		if driverName != defaultDriver {
			t.Fatalf("unexpected driver %s", driverName)
		}
		if dataSourceName != defaultDSN {
			t.Fatalf("expected default dsn, got %s", dataSourceName)
		}
		return nil, errors.New("boom")
	}
	defer func() { sqlOpen = prev }()

	_, err := NewStore(context.Background(), "")
	if err == nil || !strings.Contains(err.Error(), "open postgres") {
		t.Fatalf("expected wrapped open error, got %v", err)
	}
}
