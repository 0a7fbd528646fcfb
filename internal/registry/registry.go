package registry

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/raysh454/jobcheck/internal/analyzer"
	"github.com/raysh454/jobcheck/internal/logging"
)

//go:embed schema.sql
var schemaFS embed.FS

var ErrAnalysisNotFound = errors.New("analysis not found")

// DefaultListLimit applies when List is called with a non-positive limit.
const DefaultListLimit = 50

// Registry keeps the history of analyzed postings in SQLite.
type Registry struct {
	db     *sql.DB
	logger logging.Logger
}

// Open opens (creating if needed) the SQLite database at path. Use
// ":memory:" for a throwaway store; the single pooled connection keeps it
// alive until Close.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// one writer keeps modernc sqlite from returning SQLITE_BUSY
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec(`PRAGMA journal_mode = WAL; PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite pragmas: %w", err)
	}
	return db, nil
}

// NewRegistry returns a Registry and runs migrations from schema.sql.
func NewRegistry(db *sql.DB, logger logging.Logger) (*Registry, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}

	return &Registry{db: db, logger: logger.With(logging.Field{Key: "component", Value: "registry"})}, nil
}

// Save stores v, assigning v.ID when empty, and returns the id.
func (r *Registry) Save(ctx context.Context, v *analyzer.Verdict) (string, error) {
	if v == nil {
		return "", fmt.Errorf("nil verdict")
	}
	assigned := v.ID == ""
	if assigned {
		v.ID = uuid.New().String()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}

	raw, err := json.Marshal(v)
	if err != nil {
		if assigned {
			v.ID = ""
		}
		return "", fmt.Errorf("encode verdict: %w", err)
	}

	var local float64
	var version, class string
	if v.Analysis != nil {
		local = v.Analysis.FraudProbability
		version = v.Analysis.Version
	}
	if v.Report != nil {
		class = string(v.Report.Class)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO analyses
             (id, created_at, title, fraud_probability, local_probability, source, class, scoring_version, verdict)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.CreatedAt.UnixMilli(), v.Posting.Title, v.FraudProbability, local, string(v.Source), class, version, string(raw),
	)
	if err != nil {
		if assigned {
			v.ID = ""
		}
		return "", fmt.Errorf("insert analysis: %w", err)
	}

	r.logger.Debug("analysis stored", logging.Field{Key: "id", Value: v.ID})
	return v.ID, nil
}

// Get returns a stored verdict by id.
func (r *Registry) Get(ctx context.Context, id string) (*analyzer.Verdict, error) {
	row := r.db.QueryRowContext(ctx, `SELECT verdict FROM analyses WHERE id = ? LIMIT 1`, id)
	var raw string
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAnalysisNotFound
		}
		return nil, err
	}
	var v analyzer.Verdict
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("decode verdict %s: %w", id, err)
	}
	return &v, nil
}

// List returns the most recent analyses, newest first.
func (r *Registry) List(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, fraud_probability, local_probability, source, class, scoring_version, created_at
         FROM analyses
         ORDER BY created_at DESC, id
         LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Summary, 0)
	for rows.Next() {
		var s Summary
		var created int64
		if err := rows.Scan(&s.ID, &s.Title, &s.FraudProbability, &s.LocalProbability, &s.Source, &s.Class, &s.ScoringVersion, &created); err != nil {
			return nil, err
		}
		s.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

// Count returns the number of stored analyses.
func (r *Registry) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analyses`).Scan(&n)
	return n, err
}

// PruneBefore deletes analyses created before cutoff and returns how many
// were removed.
func (r *Registry) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM analyses WHERE created_at < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("prune analyses: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		r.logger.Info("pruned analyses", logging.Field{Key: "removed", Value: n}, logging.Field{Key: "cutoff", Value: cutoff.Format(time.RFC3339)})
	}
	return n, nil
}

func (r *Registry) Close() error {
	return r.db.Close()
}
