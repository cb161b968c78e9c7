package ratelimit

import (
	"strings"
	"time"

	"github.com/jonathan/resume-ats-checker/internal/config"
)

// EndpointConfig is the limit applied to one route.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends with "/"
	Method string        // HTTP method
	Limit  int           // requests per window; 0 means unlimited
	Window time.Duration // refill window
	Burst  int           // bucket capacity, Limit when 0
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig converts the loaded settings into a limiter configuration.
func NewConfig(rc config.RateLimitConfig) *Config {
	if !rc.Enabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    rc.DefaultLimit,
		DefaultWindow:   rc.DefaultWindow,
		CleanupInterval: rc.CleanupInterval,
		Whitelist:       ipSet(rc.Whitelist),
		Blacklist:       ipSet(rc.Blacklist),
		EndpointConfigs: AnalysisEndpoints(rc.AnalyzeLimit, rc.AnalyzeWindow, rc.AnalyzeBurst),
	}
}

// AnalysisEndpoints returns the limits for the scoring routes, which are the
// only CPU-heavy endpoints. Everything else uses the default limit.
func AnalysisEndpoints(limit int, window time.Duration, burst int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/analyze", Method: "POST", Limit: limit, Window: window, Burst: burst},
		{Path: "/api/analyze-json", Method: "POST", Limit: limit, Window: window, Burst: burst},
	}
}

func ipSet(ips []string) map[string]bool {
	set := make(map[string]bool, len(ips))
	for _, ip := range ips {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
