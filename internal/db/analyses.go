package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-ats-checker/internal/types"
)

// SaveAnalysis stores a result. Saving the same ID twice replaces the report.
func (db *DB) SaveAnalysis(ctx context.Context, res *types.AnalysisResult) error {
	id, err := uuid.Parse(res.AnalysisID)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, res.AnalysisID)
	}

	report, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	created := res.AnalysisTimestamp
	if created.IsZero() {
		created = time.Now()
	}

	_, err = db.pool.Exec(ctx, `
INSERT INTO analyses (id, ats_score, keyword_match_rate, keyword_strategy, similarity_strategy,
	resume_length, job_description_length, report, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET ats_score = $2, keyword_match_rate = $3, report = $8`,
		id, res.ATSScore, res.KeywordMatchRate, res.Strategies.Keywords, res.Strategies.Similarity,
		res.ResumeLength, res.JobDescriptionLength, report, created.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis %s: %w", id, err)
	}
	return nil
}

// GetAnalysis returns a stored result, or nil when the ID is unknown.
func (db *DB) GetAnalysis(ctx context.Context, analysisID string) (*types.AnalysisResult, error) {
	id, err := uuid.Parse(analysisID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, analysisID)
	}

	var report []byte
	err = db.pool.QueryRow(ctx, `SELECT report FROM analyses WHERE id = $1`, id).Scan(&report)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}

	var res types.AnalysisResult
	if err := json.Unmarshal(report, &res); err != nil {
		return nil, fmt.Errorf("failed to decode analysis %s: %w", id, err)
	}
	return &res, nil
}

// ListAnalyses returns the most recent analyses first.
func (db *DB) ListAnalyses(ctx context.Context, limit, offset int) ([]AnalysisSummary, error) {
	if offset < 0 {
		offset = 0
	}

	rows, err := db.pool.Query(ctx, `
SELECT id, ats_score, keyword_match_rate, keyword_strategy, similarity_strategy, created_at
FROM analyses ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		ClampLimit(limit), offset,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	out := []AnalysisSummary{}
	for rows.Next() {
		var (
			s  AnalysisSummary
			id uuid.UUID
		)
		if err := rows.Scan(&id, &s.ATSScore, &s.KeywordMatchRate, &s.KeywordStrategy, &s.SimilarityStrategy, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		s.ID = id.String()
		s.CreatedAt = s.CreatedAt.UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return out, nil
}

// DeleteAnalysis removes a stored result and reports whether it existed.
func (db *DB) DeleteAnalysis(ctx context.Context, analysisID string) (bool, error) {
	id, err := uuid.Parse(analysisID)
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidID, analysisID)
	}
	tag, err := db.pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete analysis %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
