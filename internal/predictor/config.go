package predictor

import "time"

// Config selects and tunes the prediction backend.
type Config struct {
	// Endpoint is the backend URL. Empty disables the backend.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Timeout bounds one prediction call.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// DefaultConfig leaves the backend disabled.
func DefaultConfig() Config {
	return Config{Timeout: 5 * time.Second}
}
