package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/infrastructure/metrics"
)

const (
	sessionCollection = "client_sessions"
	backend           = "mongo"
)

// SessionStore keeps one document per profile. The whole document is
// replaced on write, so both entries change together.
type SessionStore struct {
	coll    *mongo.Collection
	profile string
}

var (
	_ ports.SessionStore = (*SessionStore)(nil)
	_ ports.Pinger       = (*SessionStore)(nil)
)

func NewSessionStore(db *mongo.Database, profile string) *SessionStore {
	return &SessionStore{coll: db.Collection(sessionCollection), profile: profile}
}

type mongoSession struct {
	Profile     string `bson:"_id"`
	AuthToken   string `bson:"authToken"`
	CurrentUser string `bson:"currentUser"`
	UpdatedAt   int64  `bson:"updated_at"`
}

// Read returns the profile's entries; no document is an empty session.
func (s *SessionStore) Read(ctx context.Context) (ports.StoredSession, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoSession
	err := s.coll.FindOne(ctx, bson.M{"_id": s.profile}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		err = nil
	}
	metrics.SessionStoreOpsTotal.WithLabelValues(backend, "read", metrics.Outcome(err)).Inc()
	if err != nil {
		return ports.StoredSession{}, fmt.Errorf("find session: %w", err)
	}
	return ports.StoredSession{AuthToken: doc.AuthToken, CurrentUser: doc.CurrentUser}, nil
}

// Write upserts the profile's document.
func (s *SessionStore) Write(ctx context.Context, in ports.StoredSession) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoSession{
		Profile:     s.profile,
		AuthToken:   in.AuthToken,
		CurrentUser: in.CurrentUser,
		UpdatedAt:   time.Now().Unix(),
	}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": s.profile}, doc, options.Replace().SetUpsert(true))
	metrics.SessionStoreOpsTotal.WithLabelValues(backend, "write", metrics.Outcome(err)).Inc()
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// Erase deletes the profile's document.
func (s *SessionStore) Erase(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": s.profile})
	metrics.SessionStoreOpsTotal.WithLabelValues(backend, "erase", metrics.Outcome(err)).Inc()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Ping runs the server ping command against the session database.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.coll.Database().RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}
