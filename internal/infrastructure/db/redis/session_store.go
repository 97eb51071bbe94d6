package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/infrastructure/metrics"
)

const backend = "redis"

// SessionStore keeps the session in one hash per profile.
// Key format: storefront:session:<profile>, fields authToken and currentUser.
type SessionStore struct {
	client  *redis.Client
	profile string
}

var (
	_ ports.SessionStore = (*SessionStore)(nil)
	_ ports.Pinger       = (*SessionStore)(nil)
)

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client, profile string) *SessionStore {
	return &SessionStore{client: client, profile: profile}
}

// Read returns both entries; a missing hash is an empty session.
func (s *SessionStore) Read(ctx context.Context) (ports.StoredSession, error) {
	vals, err := s.client.HGetAll(ctx, s.key()).Result()
	metrics.SessionStoreOpsTotal.WithLabelValues(backend, "read", metrics.Outcome(err)).Inc()
	if err != nil {
		return ports.StoredSession{}, fmt.Errorf("session read: %w", err)
	}
	return ports.StoredSession{
		AuthToken:   vals[ports.EntryAuthToken],
		CurrentUser: vals[ports.EntryCurrentUser],
	}, nil
}

// Write replaces both entries in one MULTI/EXEC transaction.
func (s *SessionStore) Write(ctx context.Context, in ports.StoredSession) error {
	key := s.key()
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			ports.EntryAuthToken, in.AuthToken,
			ports.EntryCurrentUser, in.CurrentUser,
		)
		return nil
	})
	metrics.SessionStoreOpsTotal.WithLabelValues(backend, "write", metrics.Outcome(err)).Inc()
	if err != nil {
		return fmt.Errorf("session write: %w", err)
	}
	return nil
}

// Erase deletes the hash.
func (s *SessionStore) Erase(ctx context.Context) error {
	err := s.client.Del(ctx, s.key()).Err()
	metrics.SessionStoreOpsTotal.WithLabelValues(backend, "erase", metrics.Outcome(err)).Inc()
	if err != nil {
		return fmt.Errorf("session erase: %w", err)
	}
	return nil
}

func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *SessionStore) key() string {
	return SessionKey(s.profile)
}

// SessionKey is the hash key for a profile.
func SessionKey(profile string) string {
	return fmt.Sprintf("storefront:session:%s", profile)
}
