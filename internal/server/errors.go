package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-ats-checker/internal/db"
	"github.com/jonathan/resume-ats-checker/internal/engine"
	"github.com/jonathan/resume-ats-checker/internal/ingestion"
)

// Messages returned by the analysis endpoints.
const (
	MsgResumeRequired    = "Either resume_file or resume_text must be provided"
	MsgInvalidJSON       = "Invalid JSON body"
	MsgHistoryDisabled   = "Analysis history is not enabled"
	MsgAnalysisNotFound  = "Analysis not found"
	MsgInvalidPagination = "limit and offset must be non-negative integers"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var formatErr *ingestion.FormatError
	switch {
	case err == nil:
		return http.StatusOK
	case engine.IsInputError(err), errors.As(err, &formatErr), errors.Is(err, db.ErrInvalidID):
		return http.StatusBadRequest
	}
	// ComputationError and anything unexpected
	return http.StatusInternalServerError
}

// errorMessage returns the client-facing message for err.
func errorMessage(err error) string {
	var (
		inputErr  *engine.InputError
		formatErr *ingestion.FormatError
	)
	switch {
	case errors.As(err, &inputErr):
		return inputErr.Message
	case errors.As(err, &formatErr):
		return ingestion.UnsupportedFormatMessage
	case errors.Is(err, db.ErrInvalidID):
		return err.Error()
	}
	return "Analysis failed: " + err.Error()
}
