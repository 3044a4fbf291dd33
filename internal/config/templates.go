package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Template returns the annotated starter config.
func Template() string {
	return template
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

// Render encodes an effective config back to TOML.
func Render(cfg Config) ([]byte, error) {
	out := struct {
		Receiver ReceiverConfig `toml:"receiver"`
		Limits   LimitsConfig   `toml:"limits"`
		HTTP     struct {
			Enabled         bool     `toml:"enabled"`
			Addr            string   `toml:"addr"`
			CorsOrigins     []string `toml:"cors_origins"`
			RecentCapacity  int      `toml:"recent_capacity"`
			ShutdownTimeout string   `toml:"shutdown_timeout"`
		} `toml:"http"`
		Capture CaptureConfig `toml:"capture"`
	}{Receiver: cfg.Receiver, Limits: cfg.Limits, Capture: cfg.Capture}
	out.HTTP.Enabled = cfg.HTTP.Enabled
	out.HTTP.Addr = cfg.HTTP.Addr
	out.HTTP.CorsOrigins = cfg.HTTP.CorsOrigins
	out.HTTP.RecentCapacity = cfg.HTTP.RecentCapacity
	out.HTTP.ShutdownTimeout = cfg.HTTP.ShutdownTimeout.String()
	return toml.Marshal(out)
}

const template = `# disctl listener configuration

[receiver]
# UDP address to read DIS datagrams from.
listen = ":3000"
# Only accept this exercise ID; 0 accepts every exercise.
exercise = 0
read_buffer = 65535

[limits]
max_pdu_bytes = 8192
max_elements = 4096

[http]
enabled = true
addr = ":9300"
cors_origins = ["http://localhost:3000"]
recent_capacity = 256
shutdown_timeout = "5s"

[capture]
enabled = false
dir = "disctl-capture"
`
