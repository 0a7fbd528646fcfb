package demobackend

import "time"

// Modes control how /predict answers.
const (
	ModeOK        = "ok"        // 200 with {key: probability}
	ModeError     = "error"     // 500
	ModeMalformed = "malformed" // 200 with a body no client can read
	ModeSlow      = "slow"      // ModeOK after Delay
)

// Config holds configuration for the demo backend.
type Config struct {
	// Port is the port on which the demo backend listens.
	Port int

	// ResponseKey names the probability field in answers.
	ResponseKey string

	// Probability is returned as is when in [0, 1]; a negative value makes
	// the backend derive one from keyword hits in full_text.
	Probability float64

	Mode  string
	Delay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Port:        5000,
		ResponseKey: "fraud_proba",
		Probability: -1,
		Mode:        ModeOK,
		Delay:       10 * time.Second,
	}
}
