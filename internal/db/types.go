package db

import (
	"errors"
	"time"
)

// ErrInvalidID is returned for analysis IDs that are not UUIDs.
var ErrInvalidID = errors.New("invalid analysis id")

// DefaultListLimit and MaxListLimit bound ListAnalyses pages.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// AnalysisSummary is one row of the history listing.
type AnalysisSummary struct {
	ID                 string    `json:"analysis_id"`
	ATSScore           int       `json:"ats_score"`
	KeywordMatchRate   float64   `json:"keyword_match_rate"`
	KeywordStrategy    string    `json:"keyword_strategy"`
	SimilarityStrategy string    `json:"similarity_strategy"`
	CreatedAt          time.Time `json:"created_at"`
}

// ClampLimit applies the default and maximum page sizes.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}
