package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_FirstCallWins(t *testing.T) {
	t.Cleanup(Reset)

	var first, second bytes.Buffer
	Init(Options{Level: "debug", Output: &first})
	Init(Options{Level: "error", Output: &second})

	log := Get()
	log.Debug().Msg("hello")
	if first.Len() == 0 || second.Len() != 0 {
		t.Fatalf("expected output on the first writer only (first=%q second=%q)", first.String(), second.String())
	}
}

func TestComponent_TagsEntries(t *testing.T) {
	t.Cleanup(Reset)

	var buf bytes.Buffer
	Init(Options{Level: "info", Output: &buf})
	log := Component("cart")
	log.Info().Msg("loaded")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode: %v (%q)", err, buf.String())
	}
	if entry["component"] != "cart" || entry["message"] != "loaded" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestTag_KeepsParentFields(t *testing.T) {
	var buf bytes.Buffer
	parent := zerolog.New(&buf).With().Str("request_id", "r1").Logger()
	log := Tag(parent, "seller")
	log.Warn().Msg("slow")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode: %v (%q)", err, buf.String())
	}
	if entry["component"] != "seller" || entry["request_id"] != "r1" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestGet_PanicsBeforeInit(t *testing.T) {
	Reset()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Get()
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
