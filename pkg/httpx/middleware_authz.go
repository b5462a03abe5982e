package httpx

import "net/http"

// RequireAdmin rejects callers without the admin flag with 403. It must run
// after AuthnMiddleware.
func RequireAdmin() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}
			if !p.Admin {
				WriteError(w, http.StatusForbidden, "forbidden", "administrator privileges required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
