package server

import (
	"github.com/raysh454/jobcheck/internal/assessor"
	"github.com/raysh454/jobcheck/internal/registry"
	"github.com/raysh454/jobcheck/internal/utils"
)

// AnalysesResponse lists stored analyses, newest first.
type AnalysesResponse struct {
	Total    int                `json:"total" example:"42"`
	Analyses []registry.Summary `json:"analyses"`
}

// DiffResponse compares two stored analyses.
type DiffResponse struct {
	BaseID string              `json:"base_id" example:"0b7c4a1e-6d0a-4d8e-9f8e-3c2b1a0f9e8d"`
	HeadID string              `json:"head_id" example:"5f2d9c3b-1a4e-4c6f-8b7a-2e1d0c9b8a7f"`
	Score  *assessor.ScoreDiff `json:"score"`
	Fields []utils.FieldDiff   `json:"fields"`
}

// WSError is sent over the analysis socket when a message cannot be handled.
type WSError struct {
	Error string `json:"error" example:"invalid JSON"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"not found"`
}
