package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClaims struct {
	subject string
}

func (c testClaims) GetSubject() (string, error) { return c.subject, nil }

// testTokenValidator accepts the tokens in its map.
type testTokenValidator map[string]string

func (v testTokenValidator) ValidateToken(tokenString string) (SubjectGetter, error) {
	subject, ok := v[tokenString]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return testClaims{subject: subject}, nil
}

func TestAuthMiddleware(t *testing.T) {
	validator := testTokenValidator{
		"good-token":  "cli",
		"empty-token": "",
	}

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantSubject string
	}{
		{name: "valid token", header: "Bearer good-token", wantStatus: http.StatusOK, wantSubject: "cli"},
		{name: "lowercase scheme", header: "bearer good-token", wantStatus: http.StatusOK, wantSubject: "cli"},
		{name: "extra whitespace", header: "  Bearer    good-token ", wantStatus: http.StatusOK, wantSubject: "cli"},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic good-token", wantStatus: http.StatusUnauthorized},
		{name: "no token", header: "Bearer", wantStatus: http.StatusUnauthorized},
		{name: "too many parts", header: "Bearer good-token extra", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer bad-token", wantStatus: http.StatusUnauthorized},
		{name: "empty subject", header: "Bearer empty-token", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotSubject string
			handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				s, err := GetSubject(r)
				require.NoError(t, err)
				gotSubject = s
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodPost, "/api/analyze", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantSubject, gotSubject)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
				assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestGetSubject_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetSubject(req)
	assert.Error(t, err)
}
