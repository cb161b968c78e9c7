// Package server provides the HTTP REST API for the ATS checker.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-ats-checker/internal/config"
	"github.com/jonathan/resume-ats-checker/internal/db"
	"github.com/jonathan/resume-ats-checker/internal/logger"
	"github.com/jonathan/resume-ats-checker/internal/server/middleware"
	"github.com/jonathan/resume-ats-checker/internal/server/ratelimit"
	"github.com/jonathan/resume-ats-checker/internal/types"
)

// Version is reported by the info endpoint.
const Version = "1.0.0"

const shutdownTimeout = 30 * time.Second

// Analyzer scores a resume against a job description.
type Analyzer interface {
	Analyze(ctx context.Context, resume, job string) (*types.AnalysisResult, error)
}

// Store persists analysis results.
type Store interface {
	SaveAnalysis(ctx context.Context, res *types.AnalysisResult) error
	GetAnalysis(ctx context.Context, analysisID string) (*types.AnalysisResult, error)
	ListAnalyses(ctx context.Context, limit, offset int) ([]db.AnalysisSummary, error)
}

// Deps are the collaborators of the server. Store and Tokens are optional:
// a nil Store disables history and a nil Tokens disables authentication.
type Deps struct {
	Analyzer Analyzer
	Store    Store
	Tokens   *TokenService
	Limiter  *ratelimit.Limiter
	Logger   *zap.Logger
}

// Server represents the HTTP server.
type Server struct {
	httpServer     *http.Server
	analyzer       Analyzer
	store          Store
	tokens         *TokenService
	rateLimiter    *ratelimit.Limiter
	log            *zap.Logger
	corsOrigin     string
	maxUploadBytes int64
}

// New creates a server. A nil Limiter is replaced with the default limiter.
func New(cfg config.ServerConfig, deps Deps) *Server {
	s := &Server{
		analyzer:       deps.Analyzer,
		store:          deps.Store,
		tokens:         deps.Tokens,
		rateLimiter:    deps.Limiter,
		log:            logger.OrNop(deps.Logger),
		corsOrigin:     cfg.CORSOrigin,
		maxUploadBytes: cfg.MaxUploadBytes,
	}
	if s.rateLimiter == nil {
		s.rateLimiter = ratelimit.NewLimiter(nil)
	}
	if s.corsOrigin == "" {
		s.corsOrigin = "*"
	}
	if s.maxUploadBytes <= 0 {
		s.maxUploadBytes = 5 << 20
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	mux.Handle("POST /api/analyze", s.protect(s.handleAnalyze))
	mux.Handle("POST /api/analyze-json", s.protect(s.handleAnalyzeJSON))
	mux.Handle("GET /api/analyses", s.protect(s.handleListAnalyses))
	mux.Handle("GET /api/analyses/{id}", s.protect(s.handleGetAnalysis))

	return s.withRateLimit(s.withLogging(s.withCORS(mux)))
}

// protect applies bearer authentication when a token service is configured.
func (s *Server) protect(h http.HandlerFunc) http.Handler {
	if s.tokens == nil {
		return h
	}
	return middleware.AuthMiddleware(s.tokens.AsTokenValidator())(h)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		s.rateLimiter.Stop()
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.rateLimiter.Stop()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging logs each request with its status and duration.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// withRateLimit rejects clients that exceed their bucket.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID uses the IP from RemoteAddr. Forwarded headers are not
// trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		seconds := int(math.Ceil(info.RetryAfter.Seconds()))
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.log.Warn("rate limit exceeded",
		zap.String("client", s.extractClientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit),
	)
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
