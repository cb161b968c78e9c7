package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/jonathan/resume-ats-checker/internal/db"
	"github.com/jonathan/resume-ats-checker/internal/engine"
	"github.com/jonathan/resume-ats-checker/internal/ingestion"
	"github.com/jonathan/resume-ats-checker/internal/logger"
	"github.com/jonathan/resume-ats-checker/internal/types"
)

const resumeFileField = "resume_file"

// handleRoot describes the API.
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"message": "AI Resume ATS Checker API",
		"version": Version,
		"endpoints": map[string]string{
			"analyze":      "/api/analyze",
			"analyze-json": "/api/analyze-json",
			"analyses":     "/api/analyses",
			"health":       "/api/health",
		},
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "Resume ATS Checker",
	})
}

// handleAnalyze scores a multipart or urlencoded form. The resume comes
// from resume_file when present, otherwise from resume_text.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		s.errorResponse(w, http.StatusBadRequest, "Invalid form data: "+err.Error())
		return
	}

	var req types.AnalyzeRequest
	if err := mapstructure.Decode(formValues(r), &req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid form data: "+err.Error())
		return
	}

	resume, found, err := s.readResumeFile(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if found {
		req.ResumeText = resume
	}
	if !found && req.ResumeText == "" {
		s.errorResponse(w, http.StatusBadRequest, MsgResumeRequired)
		return
	}

	s.analyze(w, r, &req)
}

// handleAnalyzeJSON scores a JSON body {"resume_text", "job_description"}.
func (s *Server) handleAnalyzeJSON(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	var req types.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}
	s.analyze(w, r, &req)
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request, req *types.AnalyzeRequest) {
	if err := engine.ValidateRequest(req); err != nil {
		s.fail(w, err)
		return
	}

	res, err := s.analyzer.Analyze(r.Context(), req.ResumeText, req.JobDescription)
	if err != nil {
		s.fail(w, err)
		return
	}

	if s.store != nil {
		if err := s.store.SaveAnalysis(r.Context(), res); err != nil {
			s.log.Warn("failed to save analysis",
				zap.String("analysis_id", res.AnalysisID),
				zap.Error(err),
			)
		}
	}

	s.log.Debug("analysis complete",
		zap.String("analysis_id", res.AnalysisID),
		zap.Int("ats_score", res.ATSScore),
		zap.String("job", logger.Truncate(req.JobDescription, 80)),
	)
	s.jsonResponse(w, http.StatusOK, res)
}

// readResumeFile decodes the uploaded resume, if any.
func (s *Server) readResumeFile(r *http.Request) (string, bool, error) {
	if r.MultipartForm == nil {
		return "", false, nil
	}
	file, header, err := r.FormFile(resumeFileField)
	if errors.Is(err, http.ErrMissingFile) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &engine.InputError{Field: resumeFileField, Message: "Failed to read resume file"}
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", false, &engine.InputError{Field: resumeFileField, Message: "Failed to read resume file"}
	}

	text, err := ingestion.Decode(header.Filename, data)
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusNotFound, MsgHistoryDisabled)
		return
	}

	limit, err1 := queryInt(r, "limit")
	offset, err2 := queryInt(r, "offset")
	if err1 != nil || err2 != nil {
		s.errorResponse(w, http.StatusBadRequest, MsgInvalidPagination)
		return
	}
	limit = db.ClampLimit(limit)

	items, err := s.store.ListAnalyses(r.Context(), limit, offset)
	if err != nil {
		s.log.Error("failed to list analyses", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list analyses")
		return
	}
	if items == nil {
		items = []db.AnalysisSummary{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"analyses": items,
		"count":    len(items),
		"limit":    limit,
		"offset":   offset,
	})
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusNotFound, MsgHistoryDisabled)
		return
	}

	res, err := s.store.GetAnalysis(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, db.ErrInvalidID) {
			s.fail(w, err)
			return
		}
		s.log.Error("failed to get analysis", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get analysis")
		return
	}
	if res == nil {
		s.errorResponse(w, http.StatusNotFound, MsgAnalysisNotFound)
		return
	}
	s.jsonResponse(w, http.StatusOK, res)
}

// fail maps err to a status and writes it.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.Error("analysis failed", zap.Error(err))
	}
	s.errorResponse(w, status, errorMessage(err))
}

// formValues flattens the first value of every form field for decoding.
func formValues(r *http.Request) map[string]any {
	values := make(map[string]any, len(r.PostForm))
	for key, v := range r.PostForm {
		if len(v) > 0 {
			values[key] = v[0]
		}
	}
	return values
}

// queryInt parses a non-negative integer query parameter. Missing means 0.
func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New("invalid " + key)
	}
	return n, nil
}
