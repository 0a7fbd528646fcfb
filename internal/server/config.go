package server

import (
	"time"

	"github.com/raysh454/jobcheck/internal/logging"
)

// Config holds HTTP surface settings.
type Config struct {
	// ListenAddr is the address HTTPServer listens on.
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"`

	// ReadTimeout bounds reading one request.
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout"`

	// MaxRequestBytes caps a posting submission body. Zero means 1 MiB.
	MaxRequestBytes int64 `json:"max_request_bytes" yaml:"max_request_bytes"`

	// AllowedOrigin is echoed in Access-Control-Allow-Origin.
	AllowedOrigin string `json:"allowed_origin" yaml:"allowed_origin"`

	Logger logging.Logger `json:"-" yaml:"-"`
}

// DefaultConfig listens on :8080 and allows any origin.
func DefaultConfig() Config {
	return Config{
		ListenAddr:      ":8080",
		ReadTimeout:     15 * time.Second,
		MaxRequestBytes: 1 << 20,
		AllowedOrigin:   "*",
	}
}
