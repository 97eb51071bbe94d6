package ports

import "context"

// Durable entry names. Every backend stores exactly these two.
const (
	EntryAuthToken   = "authToken"
	EntryCurrentUser = "currentUser"
)

// StoredSession is the raw persisted form: the opaque token and the user
// profile serialised as JSON.
type StoredSession struct {
	AuthToken   string
	CurrentUser string
}

// SessionStore persists the session across process runs.
type SessionStore interface {
	// Read returns the stored entries; missing entries come back empty.
	Read(ctx context.Context) (StoredSession, error)
	// Write stores both entries in one operation so that neither can be
	// left stale relative to the other.
	Write(ctx context.Context, s StoredSession) error
	// Erase removes both entries.
	Erase(ctx context.Context) error
}

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}
