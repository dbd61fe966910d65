package middleware

import (
	"fmt"
	"net/http"
)

// CacheControl lets clients cache catalog reads for maxAge seconds.
// Requests carrying a bearer token are marked private so shared caches
// never replay them to another user. A non-positive maxAge disables caching.
func CacheControl(maxAge int) func(http.Handler) http.Handler {
	public := fmt.Sprintf("public, max-age=%d", maxAge)
	private := fmt.Sprintf("private, max-age=%d", maxAge)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				switch {
				case maxAge <= 0:
					w.Header().Set("Cache-Control", "no-store")
				case r.Header.Get("Authorization") != "":
					w.Header().Set("Cache-Control", private)
				default:
					w.Header().Set("Cache-Control", public)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
