// Package eda serves the dataset summary (class balance, description
// length buckets, missing-field rates) shown next to the checker.
package eda

import (
	"encoding/json"
	"fmt"
	"os"
)

// MissingFields are the fields the missing-rate chart covers, in order.
var MissingFields = []string{
	"company_profile",
	"requirements",
	"benefits",
	"salary_range",
	"employment_type",
	"industry",
}

// Buckets counts descriptions by length.
type Buckets struct {
	Short  int `json:"short"`
	Medium int `json:"medium"`
	Long   int `json:"long"`
}

// File is the on-disk summary format.
type File struct {
	ClassCounts struct {
		Real int `json:"Real"`
		Fake int `json:"Fake"`
	} `json:"class_counts"`
	LengthBuckets struct {
		All     Buckets `json:"all"`
		ByClass struct {
			Real Buckets `json:"real"`
			Fake Buckets `json:"fake"`
		} `json:"by_class"`
	} `json:"length_buckets"`
	Missing struct {
		Real map[string]float64 `json:"real"`
		Fake map[string]float64 `json:"fake"`
	} `json:"missing"`
}

// Summary is the API shape.
type Summary struct {
	Total         int                `json:"total"`
	Real          int                `json:"real"`
	Fraud         int                `json:"fraud"`
	FraudRate     float64            `json:"fraud_rate"`
	Lengths       Buckets            `json:"lengths"`
	LengthsReal   Buckets            `json:"lengths_real"`
	LengthsFake   Buckets            `json:"lengths_fake"`
	MissingReal   map[string]float64 `json:"missing_real"`
	MissingFake   map[string]float64 `json:"missing_fake"`
	Fallback      bool               `json:"fallback"`
	FallbackCause string             `json:"fallback_cause,omitempty"`
}

// Fallback returns the built-in stats used when no summary file loads.
func Fallback() *Summary {
	s := &Summary{
		Real:        17014,
		Fraud:       10866,
		Lengths:     Buckets{Short: 5234, Medium: 12456, Long: 10190},
		MissingReal: zeroMissing(),
		MissingFake: zeroMissing(),
		Fallback:    true,
	}
	s.Total = s.Real + s.Fraud
	s.FraudRate = float64(s.Fraud) / float64(s.Total)
	return s
}

// Load reads the summary file at path. It always returns a usable summary:
// on any error the fallback stats come back together with the error.
func Load(path string) (*Summary, error) {
	if path == "" {
		s := Fallback()
		s.FallbackCause = "no summary file configured"
		return s, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fallbackFor(fmt.Errorf("read eda summary: %w", err))
	}
	s, err := Parse(raw)
	if err != nil {
		return fallbackFor(err)
	}
	return s, nil
}

// Parse decodes a summary. Absent counts default to zero.
func Parse(raw []byte) (*Summary, error) {
	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode eda summary: %w", err)
	}
	s := &Summary{
		Real:        f.ClassCounts.Real,
		Fraud:       f.ClassCounts.Fake,
		Lengths:     f.LengthBuckets.All,
		LengthsReal: f.LengthBuckets.ByClass.Real,
		LengthsFake: f.LengthBuckets.ByClass.Fake,
		MissingReal: pick(f.Missing.Real),
		MissingFake: pick(f.Missing.Fake),
	}
	s.Total = s.Real + s.Fraud
	if s.Total > 0 {
		s.FraudRate = float64(s.Fraud) / float64(s.Total)
	}
	return s, nil
}

func fallbackFor(err error) (*Summary, error) {
	s := Fallback()
	s.FallbackCause = err.Error()
	return s, err
}

func pick(m map[string]float64) map[string]float64 {
	out := zeroMissing()
	for _, f := range MissingFields {
		out[f] = m[f]
	}
	return out
}

func zeroMissing() map[string]float64 {
	out := make(map[string]float64, len(MissingFields))
	for _, f := range MissingFields {
		out[f] = 0
	}
	return out
}
