package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/pkordes/site-visits/internal/auth"
)

// NewAuthHandler returns a middleware that resolves the caller from the
// Authorization header and stores it in the request context.
//
// A request without the header passes through unauthenticated; routes that
// need a caller reject it further down. A header that is present but does
// not verify is answered with 401 here.
func NewAuthHandler(v *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}
			p, err := v.ParseHeader(header)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "invalid bearer token")
				return
			}
			recordActor(r.Context(), p.ProfileID.String())
			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
		})
	}
}

// writeError writes the API's JSON error envelope. It mirrors the handler
// package's ErrorResponse so clients see one error shape everywhere.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
