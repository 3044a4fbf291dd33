package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/disctl/internal/testutil/testlog"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "disctl.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadOverlaysDefinedKeysOnly(t *testing.T) {
	testlog.Start(t)

	path := writeConfig(t, `
[receiver]
listen = "127.0.0.1:3001"
exercise = 7

[http]
enabled = false
shutdown_timeout = "250ms"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def := DefaultConfig()
	if cfg.Receiver.Listen != "127.0.0.1:3001" || cfg.Receiver.Exercise != 7 {
		t.Fatalf("receiver overlay not applied: %+v", cfg.Receiver)
	}
	if cfg.Receiver.ReadBuffer != def.Receiver.ReadBuffer {
		t.Fatalf("read_buffer should keep default, got %d", cfg.Receiver.ReadBuffer)
	}
	if cfg.HTTP.Enabled || cfg.HTTP.ShutdownTimeout != 250*time.Millisecond {
		t.Fatalf("http overlay not applied: %+v", cfg.HTTP)
	}
	if cfg.HTTP.Addr != def.HTTP.Addr || cfg.Limits != def.Limits {
		t.Fatalf("undefined keys should keep defaults")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	testlog.Start(t)

	path := writeConfig(t, "[receiver]\nlisen = \":3000\"\n")
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "unknown key") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	testlog.Start(t)

	cases := map[string]string{
		"exercise":   "[receiver]\nexercise = 300\n",
		"listen":     "[receiver]\nlisten = \"nope\"\n",
		"limits":     "[limits]\nmax_pdu_bytes = 4\n",
		"elements":   "[limits]\nmax_elements = 0\n",
		"duration":   "[http]\nshutdown_timeout = \"soon\"\n",
		"captureDir": "[capture]\nenabled = true\ndir = \"\"\n",
	}
	for name, body := range cases {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestTemplateMatchesDefaults(t *testing.T) {
	testlog.Start(t)

	path := writeConfig(t, Template())
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	def := DefaultConfig()
	if cfg.Receiver != def.Receiver || cfg.Limits != def.Limits || cfg.Capture != def.Capture {
		t.Fatalf("template diverges from defaults: %+v", cfg)
	}
	if cfg.HTTP.Addr != def.HTTP.Addr || cfg.HTTP.ShutdownTimeout != def.HTTP.ShutdownTimeout {
		t.Fatalf("template http diverges from defaults: %+v", cfg.HTTP)
	}
}

func TestWriteTemplateRefusesOverwrite(t *testing.T) {
	testlog.Start(t)

	path := writeConfig(t, "")
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected refusal to overwrite")
	}
	if err := WriteTemplate(path, true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
}

func TestRenderRoundTrips(t *testing.T) {
	testlog.Start(t)

	cfg := DefaultConfig()
	cfg.Receiver.Exercise = 3
	cfg.Capture.Enabled = true
	out, err := Render(cfg)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var raw fileConfig
	if _, err := toml.Decode(string(out), &raw); err != nil {
		t.Fatalf("decode rendered config: %v\n%s", err, out)
	}
	if raw.Receiver.Exercise != 3 || !raw.Capture.Enabled || raw.HTTP.ShutdownTimeout != "5s" {
		t.Fatalf("unexpected rendered config:\n%s", out)
	}
}
