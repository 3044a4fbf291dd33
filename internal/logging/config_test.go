package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		" DEBUG ": zerolog.DebugLevel,
		"warning": zerolog.WarnLevel,
		"off":     zerolog.Disabled,
	}
	for raw, want := range cases {
		got, ok := parseLevel(raw)
		if !ok || got != want {
			t.Fatalf("parseLevel(%q)=%v,%v want %v", raw, got, ok, want)
		}
	}
	if _, ok := parseLevel("loud"); ok {
		t.Fatalf("expected unknown level to be rejected")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogTimestamp, "false")
	t.Setenv(EnvLogBypass, "true")
	cfg := defaultConfig(ProfileRuntime)
	applyEnvOverrides(&cfg)
	if cfg.Level != zerolog.ErrorLevel || cfg.Timestamp || !cfg.Bypass {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestBypassEmitsJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := build(Config{Level: zerolog.InfoLevel, Bypass: true, Out: &buf})
	logger.Info().Str("pdu_type", "EntityState").Msg("decoded")
	if !strings.HasPrefix(buf.String(), "{") || !strings.Contains(buf.String(), `"pdu_type":"EntityState"`) {
		t.Fatalf("expected JSON line, got %q", buf.String())
	}
}
