package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ats-checker/internal/config"
	"github.com/jonathan/resume-ats-checker/internal/db"
	"github.com/jonathan/resume-ats-checker/internal/engine"
	"github.com/jonathan/resume-ats-checker/internal/ingestion"
	"github.com/jonathan/resume-ats-checker/internal/server/ratelimit"
	"github.com/jonathan/resume-ats-checker/internal/types"
)

const (
	testResume = "Jane Doe. Senior backend engineer with Python and Django experience building APIs."
	testJob    = "We need a Python engineer who knows Django."
)

type fakeAnalyzer struct {
	mu     sync.Mutex
	resume string
	job    string
	err    error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, resume, job string) (*types.AnalysisResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resume, f.job = resume, job
	if f.err != nil {
		return nil, f.err
	}
	return &types.AnalysisResult{AnalysisID: "analysis-1", ATSScore: 72, Suggestions: []string{"ok"}}, nil
}

type fakeStore struct {
	saved   []*types.AnalysisResult
	items   []db.AnalysisSummary
	byID    map[string]*types.AnalysisResult
	saveErr error
	gotArgs [2]int
}

func (f *fakeStore) SaveAnalysis(_ context.Context, res *types.AnalysisResult) error {
	f.saved = append(f.saved, res)
	return f.saveErr
}

func (f *fakeStore) GetAnalysis(_ context.Context, id string) (*types.AnalysisResult, error) {
	if id == "not-a-uuid" {
		return nil, db.ErrInvalidID
	}
	return f.byID[id], nil
}

func (f *fakeStore) ListAnalyses(_ context.Context, limit, offset int) ([]db.AnalysisSummary, error) {
	f.gotArgs = [2]int{limit, offset}
	return f.items, nil
}

func newTestServer(t *testing.T, deps Deps) http.Handler {
	t.Helper()
	if deps.Analyzer == nil {
		deps.Analyzer = &fakeAnalyzer{}
	}
	if deps.Limiter == nil {
		deps.Limiter = ratelimit.NewLimiter(&ratelimit.Config{Enabled: false})
	}
	s := New(config.ServerConfig{Port: 0, MaxUploadBytes: 1 << 20}, deps)
	t.Cleanup(s.rateLimiter.Stop)
	return s.Handler()
}

func do(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func jsonRequest(t *testing.T, payload any) *http.Request {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze-json", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(t *testing.T, fields map[string]string, fileName, fileContent string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("resume_file", fileName)
		require.NoError(t, err)
		_, err = fw.Write([]byte(fileContent))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestRootAndHealth(t *testing.T) {
	h := newTestServer(t, Deps{})

	w := do(t, h, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "AI Resume ATS Checker API", body["message"])
	assert.Equal(t, Version, body["version"])
	assert.Contains(t, body["endpoints"], "analyze-json")

	w = do(t, h, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"Resume ATS Checker"}`, w.Body.String())

	w = do(t, h, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAnalyzeJSON(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	store := &fakeStore{}
	h := newTestServer(t, Deps{Analyzer: analyzer, Store: store})

	w := do(t, h, jsonRequest(t, map[string]string{
		"resume_text":     "  " + testResume + "\n",
		"job_description": testJob,
	}))

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "analysis-1", body["analysis_id"])
	assert.EqualValues(t, 72, body["ats_score"])
	assert.Equal(t, "  "+testResume+"\n", analyzer.resume)
	assert.Equal(t, testJob, analyzer.job)
	assert.Len(t, store.saved, 1)
}

func TestAnalyzeJSON_Errors(t *testing.T) {
	tests := []struct {
		name       string
		req        func(t *testing.T) *http.Request
		analyzeErr error
		wantStatus int
		wantError  string
	}{
		{
			name: "invalid json",
			req: func(*testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/api/analyze-json", strings.NewReader("{"))
			},
			wantStatus: http.StatusBadRequest,
			wantError:  MsgInvalidJSON,
		},
		{
			name: "short resume",
			req: func(t *testing.T) *http.Request {
				return jsonRequest(t, map[string]string{"resume_text": "too short", "job_description": testJob})
			},
			wantStatus: http.StatusBadRequest,
			wantError:  engine.MsgResumeTooShort,
		},
		{
			name: "short job description",
			req: func(t *testing.T) *http.Request {
				return jsonRequest(t, map[string]string{"resume_text": testResume, "job_description": "Go dev"})
			},
			wantStatus: http.StatusBadRequest,
			wantError:  engine.MsgJobTooShort,
		},
		{
			name: "computation failure",
			req: func(t *testing.T) *http.Request {
				return jsonRequest(t, map[string]string{"resume_text": testResume, "job_description": testJob})
			},
			analyzeErr: &engine.ComputationError{Stage: "keywords", Cause: errors.New("boom")},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Analysis failed: analysis failed in keywords: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, Deps{Analyzer: &fakeAnalyzer{err: tt.analyzeErr}})
			w := do(t, h, tt.req(t))
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantError, decodeBody(t, w)["error"])
		})
	}
}

func TestAnalyzeForm(t *testing.T) {
	tests := []struct {
		name       string
		req        func(t *testing.T) *http.Request
		wantStatus int
		wantError  string
		wantResume string
	}{
		{
			name: "resume text",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, map[string]string{"resume_text": testResume, "job_description": testJob}, "", "")
			},
			wantStatus: http.StatusOK,
			wantResume: testResume,
		},
		{
			name: "resume file wins over text",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, map[string]string{"resume_text": "ignored", "job_description": testJob},
					"resume.txt", testResume+"\r\n\r\n\r\n")
			},
			wantStatus: http.StatusOK,
			wantResume: testResume,
		},
		{
			name: "html file",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, map[string]string{"job_description": testJob},
					"resume.html", "<html><body><main><p>"+testResume+"</p></main></body></html>")
			},
			wantStatus: http.StatusOK,
			wantResume: testResume,
		},
		{
			name: "unsupported file",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, map[string]string{"job_description": testJob}, "resume.pdf", "%PDF-1.4")
			},
			wantStatus: http.StatusBadRequest,
			wantError:  ingestion.UnsupportedFormatMessage,
		},
		{
			name: "no resume",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, map[string]string{"job_description": testJob}, "", "")
			},
			wantStatus: http.StatusBadRequest,
			wantError:  MsgResumeRequired,
		},
		{
			name: "urlencoded form",
			req: func(*testing.T) *http.Request {
				form := url.Values{"resume_text": {testResume}, "job_description": {testJob}}
				req := httptest.NewRequest(http.MethodPost, "/api/analyze", strings.NewReader(form.Encode()))
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
				return req
			},
			wantStatus: http.StatusOK,
			wantResume: testResume,
		},
		{
			name: "missing job description",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, map[string]string{"resume_text": testResume}, "", "")
			},
			wantStatus: http.StatusBadRequest,
			wantError:  engine.MsgJobTooShort,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &fakeAnalyzer{}
			h := newTestServer(t, Deps{Analyzer: analyzer})
			w := do(t, h, tt.req(t))

			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, decodeBody(t, w)["error"])
				return
			}
			assert.Equal(t, tt.wantResume, analyzer.resume)
			assert.Equal(t, testJob, analyzer.job)
		})
	}
}

func TestAnalyze_SaveFailureStillReturnsResult(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("db down")}
	h := newTestServer(t, Deps{Store: store})

	w := do(t, h, jsonRequest(t, map[string]string{"resume_text": testResume, "job_description": testJob}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, store.saved, 1)
}

func TestHistory(t *testing.T) {
	id := "8d3f4b8e-0a57-4a43-9a55-1e2a4f9c8b71"
	store := &fakeStore{
		items: []db.AnalysisSummary{{ID: id, ATSScore: 70}},
		byID:  map[string]*types.AnalysisResult{id: {AnalysisID: id, ATSScore: 70}},
	}
	h := newTestServer(t, Deps{Store: store})

	w := do(t, h, httptest.NewRequest(http.MethodGet, "/api/analyses?limit=500&offset=5", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 1, body["count"])
	assert.EqualValues(t, db.MaxListLimit, body["limit"])
	assert.Equal(t, [2]int{db.MaxListLimit, 5}, store.gotArgs)

	w = do(t, h, httptest.NewRequest(http.MethodGet, "/api/analyses", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, [2]int{db.DefaultListLimit, 0}, store.gotArgs)

	w = do(t, h, httptest.NewRequest(http.MethodGet, "/api/analyses?limit=-1", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, h, httptest.NewRequest(http.MethodGet, "/api/analyses/"+id, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, decodeBody(t, w)["analysis_id"])

	w = do(t, h, httptest.NewRequest(http.MethodGet, "/api/analyses/1f0c2f9e-0000-4000-8000-000000000000", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, MsgAnalysisNotFound, decodeBody(t, w)["error"])

	w = do(t, h, httptest.NewRequest(http.MethodGet, "/api/analyses/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHistory_Disabled(t *testing.T) {
	h := newTestServer(t, Deps{})

	for _, path := range []string{"/api/analyses", "/api/analyses/abc"} {
		w := do(t, h, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, MsgHistoryDisabled, decodeBody(t, w)["error"])
	}
}

func TestAuth(t *testing.T) {
	tokens := NewTokenService("test-secret", 1)
	h := newTestServer(t, Deps{Tokens: tokens})

	w := do(t, h, jsonRequest(t, map[string]string{"resume_text": testResume, "job_description": testJob}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := tokens.GenerateToken("cli")
	require.NoError(t, err)
	req := jsonRequest(t, map[string]string{"resume_text": testResume, "job_description": testJob})
	req.Header.Set("Authorization", "Bearer "+token)
	w = do(t, h, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, h, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.NewLimiter(&ratelimit.Config{
		Enabled:         true,
		DefaultLimit:    100,
		DefaultWindow:   time.Minute,
		EndpointConfigs: ratelimit.AnalysisEndpoints(1, time.Minute, 1),
	})
	h := newTestServer(t, Deps{Limiter: limiter})

	newReq := func() *http.Request {
		req := jsonRequest(t, map[string]string{"resume_text": testResume, "job_description": testJob})
		req.RemoteAddr = "10.0.0.1:1234"
		return req
	}

	w := do(t, h, newReq())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = do(t, h, newReq())
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decodeBody(t, w)["error"])

	// health is never limited
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		assert.Equal(t, http.StatusOK, do(t, h, req).Code)
	}
}

func TestCORS(t *testing.T) {
	s := New(config.ServerConfig{CORSOrigin: "https://ats.example.com"}, Deps{
		Analyzer: &fakeAnalyzer{},
		Limiter:  ratelimit.NewLimiter(&ratelimit.Config{Enabled: false}),
	})

	w := do(t, s.Handler(), httptest.NewRequest(http.MethodOptions, "/api/analyze", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://ats.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"input", &engine.InputError{Field: "resume_text", Message: "x"}, http.StatusBadRequest},
		{"wrapped input", fmt.Errorf("analyze: %w", &engine.InputError{Message: "x"}), http.StatusBadRequest},
		{"format", &ingestion.FormatError{Name: "a.pdf"}, http.StatusBadRequest},
		{"invalid id", db.ErrInvalidID, http.StatusBadRequest},
		{"computation", &engine.ComputationError{Stage: "skills", Cause: errors.New("x")}, http.StatusInternalServerError},
		{"other", errors.New("x"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestStart_ShutsDownOnCancel(t *testing.T) {
	s := New(config.ServerConfig{Port: 0}, Deps{Analyzer: &fakeAnalyzer{}})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
