package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Session store backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

type Config struct {
	APIURL    string `env:"STOREFRONT_API_URL, default=http://localhost:5000/api"`
	LogLevel  string `env:"LOG_LEVEL,          default=warn"`
	LogPretty bool   `env:"LOG_PRETTY,         default=true"`

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Serve   ServeConfig
	Dev     DevServerConfig
}

type SessionConfig struct {
	Backend string `env:"SESSION_BACKEND, default=file"`
	File    string `env:"SESSION_FILE"`
	Profile string `env:"SESSION_PROFILE, default=default"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=storefront"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// ServeConfig is the local web UI.
type ServeConfig struct {
	Addr string `env:"SERVE_ADDR, default=127.0.0.1:8080"`
}

// DevServerConfig is the in-memory reference backend.
type DevServerConfig struct {
	Addr      string        `env:"DEVSERVER_ADDR, default=127.0.0.1:5000"`
	JWTSecret string        `env:"JWT_SECRET,     default=storefront-dev-secret"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,      default=24h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through the given lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.APIURL = strings.TrimRight(strings.TrimSpace(c.APIURL), "/")
	if c.APIURL == "" {
		return fmt.Errorf("load config: STOREFRONT_API_URL is empty")
	}
	switch c.Session.Backend {
	case BackendFile, BackendRedis, BackendMongo:
	default:
		return fmt.Errorf("load config: unknown SESSION_BACKEND %q", c.Session.Backend)
	}
	return nil
}

// SessionFile is the file backend's path: SESSION_FILE when set, otherwise
// <user config dir>/storefront/session.json.
func (c *Config) SessionFile() (string, error) {
	if c.Session.File != "" {
		return c.Session.File, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve session file: %w", err)
	}
	return filepath.Join(dir, "storefront", "session.json"), nil
}
