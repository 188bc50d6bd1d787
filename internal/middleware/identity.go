package middleware

import (
	"net/http"

	"folio/internal/httputil"
)

// Identity trusts the authenticating proxy in front of this service and
// lifts its X-User-ID header into the request context. Requests without an
// identity are rejected; session management itself lives outside this
// service.
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			userID := r.Header.Get("X-User-ID")
			if userID == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing X-User-ID header")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, userID))
		})
	}
}
