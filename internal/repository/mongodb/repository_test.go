package mongodb

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestNewMongoDBRepositoryReleasesClientWhenPingFails(t *testing.T) {
	calls := 0
	orig := disconnect
	disconnect = func(ctx context.Context, client *mongo.Client) error {
		calls++
		return orig(ctx, client)
	}
	t.Cleanup(func() { disconnect = orig })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	repo, err := NewMongoDBRepository(ctx, "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200&connectTimeoutMS=200", "suraksha")
	if err == nil {
		t.Fatal("expected ping failure against a closed port")
	}
	if repo != nil {
		t.Fatal("no repository should be returned on failure")
	}
	if !strings.Contains(err.Error(), "failed to ping mongodb") {
		t.Fatalf("unexpected error %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected the client to be disconnected once, got %d", calls)
	}
}
