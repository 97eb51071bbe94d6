package app

import (
	"context"
	"fmt"

	"github.com/99minutos/storefront/internal/core/ports"
	"github.com/99minutos/storefront/internal/infrastructure/config"
	"github.com/99minutos/storefront/internal/infrastructure/db/file"
	mongodb "github.com/99minutos/storefront/internal/infrastructure/db/mongo"
	redisdb "github.com/99minutos/storefront/internal/infrastructure/db/redis"
)

// OpenSessionStore connects the configured session backend. The returned
// closer is nil for the file backend.
func OpenSessionStore(ctx context.Context, cfg *config.Config) (ports.SessionStore, func() error, error) {
	switch cfg.Session.Backend {
	case config.BackendRedis:
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, nil, fmt.Errorf("open session store: %w", err)
		}
		return redisdb.NewSessionStore(client, cfg.Session.Profile), client.Close, nil

	case config.BackendMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, fmt.Errorf("open session store: %w", err)
		}
		return mongodb.NewSessionStore(db, cfg.Session.Profile), func() error { return mongodb.Disconnect(client) }, nil

	default:
		path, err := cfg.SessionFile()
		if err != nil {
			return nil, nil, fmt.Errorf("open session store: %w", err)
		}
		return file.NewSessionStore(path), nil, nil
	}
}
