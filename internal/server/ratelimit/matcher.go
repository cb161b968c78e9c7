package ratelimit

import (
	"strings"
)

// unlimitedPaths are never limited on GET.
var unlimitedPaths = map[string]bool{
	"/":           true,
	"/api/health": true,
}

// MatchEndpoint returns the configuration for path and method, or nil when
// the default limit applies. Exact matches win over prefix matches.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == "GET" && unlimitedPaths[path] {
		return &EndpointConfig{}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
