package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/disctl/internal/protocol/wire"
)

// DefaultPort is the conventional DIS UDP port.
const DefaultPort = 3000

type Config struct {
	Receiver ReceiverConfig `toml:"receiver"`
	Limits   LimitsConfig   `toml:"limits"`
	HTTP     HTTPConfig     `toml:"http"`
	Capture  CaptureConfig  `toml:"capture"`
}

type ReceiverConfig struct {
	Listen string `toml:"listen"`
	// Exercise filters datagrams by exercise ID; 0 accepts all.
	Exercise   uint8 `toml:"exercise"`
	ReadBuffer int   `toml:"read_buffer"`
}

type LimitsConfig struct {
	MaxPduBytes int `toml:"max_pdu_bytes"`
	MaxElements int `toml:"max_elements"`
}

// Wire converts the limits to decoder limits.
func (l LimitsConfig) Wire() wire.Limits {
	return wire.Limits{MaxPduBytes: l.MaxPduBytes, MaxElements: l.MaxElements}.WithDefaults()
}

type HTTPConfig struct {
	Enabled         bool          `toml:"enabled"`
	Addr            string        `toml:"addr"`
	CorsOrigins     []string      `toml:"cors_origins"`
	RecentCapacity  int           `toml:"recent_capacity"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

type CaptureConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

func DefaultConfig() Config {
	return Config{
		Receiver: ReceiverConfig{
			Listen:     fmt.Sprintf(":%d", DefaultPort),
			ReadBuffer: 65535,
		},
		Limits: LimitsConfig{
			MaxPduBytes: wire.DefaultMaxPduBytes,
			MaxElements: wire.DefaultMaxElements,
		},
		HTTP: HTTPConfig{
			Enabled:         true,
			Addr:            ":9300",
			CorsOrigins:     []string{"http://localhost:3000"},
			RecentCapacity:  256,
			ShutdownTimeout: 5 * time.Second,
		},
		Capture: CaptureConfig{
			Dir: "disctl-capture",
		},
	}
}

// fileConfig mirrors the TOML layout; durations arrive as strings.
type fileConfig struct {
	Receiver struct {
		Listen     string `toml:"listen"`
		Exercise   int    `toml:"exercise"`
		ReadBuffer int    `toml:"read_buffer"`
	} `toml:"receiver"`
	Limits struct {
		MaxPduBytes int `toml:"max_pdu_bytes"`
		MaxElements int `toml:"max_elements"`
	} `toml:"limits"`
	HTTP struct {
		Enabled         bool     `toml:"enabled"`
		Addr            string   `toml:"addr"`
		CorsOrigins     []string `toml:"cors_origins"`
		RecentCapacity  int      `toml:"recent_capacity"`
		ShutdownTimeout string   `toml:"shutdown_timeout"`
	} `toml:"http"`
	Capture struct {
		Enabled bool   `toml:"enabled"`
		Dir     string `toml:"dir"`
	} `toml:"capture"`
}

// Load overlays the keys present in path onto DefaultConfig and validates
// the result.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config (%s): unknown key %s", path, undecoded[0])
	}

	if meta.IsDefined("receiver", "listen") {
		cfg.Receiver.Listen = strings.TrimSpace(raw.Receiver.Listen)
	}
	if meta.IsDefined("receiver", "exercise") {
		if raw.Receiver.Exercise < 0 || raw.Receiver.Exercise > 255 {
			return Config{}, fmt.Errorf("receiver.exercise out of range: %d", raw.Receiver.Exercise)
		}
		cfg.Receiver.Exercise = uint8(raw.Receiver.Exercise)
	}
	if meta.IsDefined("receiver", "read_buffer") {
		cfg.Receiver.ReadBuffer = raw.Receiver.ReadBuffer
	}

	if meta.IsDefined("limits", "max_pdu_bytes") {
		cfg.Limits.MaxPduBytes = raw.Limits.MaxPduBytes
	}
	if meta.IsDefined("limits", "max_elements") {
		cfg.Limits.MaxElements = raw.Limits.MaxElements
	}

	if meta.IsDefined("http", "enabled") {
		cfg.HTTP.Enabled = raw.HTTP.Enabled
	}
	if meta.IsDefined("http", "addr") {
		cfg.HTTP.Addr = strings.TrimSpace(raw.HTTP.Addr)
	}
	if meta.IsDefined("http", "cors_origins") {
		cfg.HTTP.CorsOrigins = normalizeOrigins(raw.HTTP.CorsOrigins)
	}
	if meta.IsDefined("http", "recent_capacity") {
		cfg.HTTP.RecentCapacity = raw.HTTP.RecentCapacity
	}
	if meta.IsDefined("http", "shutdown_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.HTTP.ShutdownTimeout))
		if err != nil {
			return Config{}, fmt.Errorf("parse http.shutdown_timeout: %w", err)
		}
		cfg.HTTP.ShutdownTimeout = d
	}

	if meta.IsDefined("capture", "enabled") {
		cfg.Capture.Enabled = raw.Capture.Enabled
	}
	if meta.IsDefined("capture", "dir") {
		cfg.Capture.Dir = strings.TrimSpace(raw.Capture.Dir)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if _, _, err := net.SplitHostPort(cfg.Receiver.Listen); err != nil {
		return fmt.Errorf("receiver.listen invalid: %w", err)
	}
	if cfg.Receiver.ReadBuffer < 12 || cfg.Receiver.ReadBuffer > 65535 {
		return fmt.Errorf("receiver.read_buffer must be within [12, 65535], got %d", cfg.Receiver.ReadBuffer)
	}
	if cfg.Limits.MaxPduBytes < 12 || cfg.Limits.MaxPduBytes > 65535 {
		return fmt.Errorf("limits.max_pdu_bytes must be within [12, 65535], got %d", cfg.Limits.MaxPduBytes)
	}
	if cfg.Limits.MaxElements < 1 {
		return fmt.Errorf("limits.max_elements must be positive, got %d", cfg.Limits.MaxElements)
	}
	if cfg.HTTP.Enabled {
		if _, _, err := net.SplitHostPort(cfg.HTTP.Addr); err != nil {
			return fmt.Errorf("http.addr invalid: %w", err)
		}
		if cfg.HTTP.RecentCapacity < 1 {
			return fmt.Errorf("http.recent_capacity must be positive, got %d", cfg.HTTP.RecentCapacity)
		}
		if cfg.HTTP.ShutdownTimeout <= 0 {
			return fmt.Errorf("http.shutdown_timeout must be positive")
		}
	}
	if cfg.Capture.Enabled && cfg.Capture.Dir == "" {
		return fmt.Errorf("capture.dir required when capture is enabled")
	}
	return nil
}

func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimSpace(origin)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
