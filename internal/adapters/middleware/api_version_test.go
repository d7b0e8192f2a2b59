package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAPIVersionMiddleware(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		version  string
		expected string
	}{
		{name: "configured version", version: "v2", expected: "v2"},
		{name: "empty version falls back", version: "", expected: "v1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			handler := NewAPIVersionMiddleware(tc.version).Middleware(
				http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusOK)
				}),
			)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/monitoring/health", nil))

			assert.Equal(t, tc.expected, rec.Header().Get("API-Version"))
		})
	}
}
