package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://localhost:5000/api" {
		t.Errorf("unexpected api url %q", cfg.APIURL)
	}
	if cfg.Session.Backend != BackendFile || cfg.Session.Profile != "default" {
		t.Errorf("unexpected session config %+v", cfg.Session)
	}
	if cfg.Dev.TokenTTL != 24*time.Hour {
		t.Errorf("unexpected token ttl %s", cfg.Dev.TokenTTL)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"STOREFRONT_API_URL": "https://shop.example.com/api/",
		"SESSION_BACKEND":    "redis",
		"REDIS_DB":           "3",
		"TOKEN_TTL":          "90m",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "https://shop.example.com/api" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.APIURL)
	}
	if cfg.Session.Backend != BackendRedis || cfg.Redis.DB != 3 || cfg.Dev.TokenTTL != 90*time.Minute {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestLoadFrom_UnknownBackend(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"SESSION_BACKEND": "sqlite",
	}))
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestSessionFile(t *testing.T) {
	cfg := &Config{Session: SessionConfig{File: "/tmp/x/session.json"}}
	if p, _ := cfg.SessionFile(); p != "/tmp/x/session.json" {
		t.Fatalf("expected explicit path, got %q", p)
	}

	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("HOME", "/home/test")
	cfg.Session.File = ""
	p, err := cfg.SessionFile()
	if err != nil {
		t.Fatalf("session file: %v", err)
	}
	if filepath.Base(p) != "session.json" || filepath.Base(filepath.Dir(p)) != "storefront" {
		t.Fatalf("unexpected default path %q", p)
	}
}
