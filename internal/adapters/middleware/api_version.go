package middleware

import (
	"net/http"
)

// APIVersionMiddleware stamps every response with the monitoring API
// version so dashboard clients can detect contract drift.
type APIVersionMiddleware struct {
	version string
}

func NewAPIVersionMiddleware(version string) APIVersionMiddleware {
	if version == "" {
		version = "v1"
	}

	return APIVersionMiddleware{
		version: version,
	}
}

func (mw APIVersionMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("API-Version", mw.version)

		next.ServeHTTP(w, r)
	})
}
