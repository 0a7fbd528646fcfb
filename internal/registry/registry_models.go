package registry

import "time"

// Summary is a compact history row.
type Summary struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	FraudProbability float64   `json:"fraud_probability"`
	LocalProbability float64   `json:"local_probability"`
	Source           string    `json:"source"`
	Class            string    `json:"class"`
	ScoringVersion   string    `json:"scoring_version"`
	CreatedAt        time.Time `json:"created_at"`
}
