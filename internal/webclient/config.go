package webclient

import "time"

// Config tunes the net/http backend.
type Config struct {
	// Timeout bounds a whole request including reading the body. Zero means 30s.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is sent on every request when set.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxBodyBytes caps how much of a response body is read. Zero means 1 MiB.
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes"`
}

const (
	defaultTimeout      = 30 * time.Second
	defaultMaxBodyBytes = 1 << 20
)
