package mongo

import (
	"context"
	"os"
	"testing"

	"github.com/99minutos/storefront/internal/core/ports"
)

// Runs against a live server when MONGO_TEST_URI is set.
func TestSessionStore_Live(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx := context.Background()
	client, db, err := Connect(ctx, Config{URI: uri, Database: "storefront_test"})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = Disconnect(client) })

	s := NewSessionStore(db, "test-"+t.Name())
	t.Cleanup(func() { _ = s.Erase(ctx) })

	if err := s.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	empty, err := s.Read(ctx)
	if err != nil || empty != (ports.StoredSession{}) {
		t.Fatalf("expected empty session, got %+v (%v)", empty, err)
	}

	for _, tok := range []string{"tok-1", "tok-2"} {
		in := ports.StoredSession{AuthToken: tok, CurrentUser: `{"id":"u1"}`}
		if err := s.Write(ctx, in); err != nil {
			t.Fatalf("write: %v", err)
		}
		if got, _ := s.Read(ctx); got != in {
			t.Fatalf("expected %+v, got %+v", in, got)
		}
	}

	if err := s.Erase(ctx); err != nil {
		t.Fatalf("erase: %v", err)
	}
	if got, _ := s.Read(ctx); got != (ports.StoredSession{}) {
		t.Fatalf("expected empty after erase, got %+v", got)
	}
}
