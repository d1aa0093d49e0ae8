// Package middleware provides reusable HTTP middleware for the site-visit API.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// preflightMaxAge lets browsers reuse a preflight for ten minutes. Every
// PATCH, DELETE and transition POST from the dashboard needs one.
const preflightMaxAge = 600

// NewCORSHandler returns a middleware that applies CORS headers based on allowedOrigins.
// Each entry in allowedOrigins must be a full origin (scheme + host, no trailing slash),
// or "*" to accept any origin. Bearer tokens travel in the Authorization header rather
// than cookies, so credentials are never allowed.
//
// The request ID header is both accepted (a client may supply its own) and exposed, so
// browser code can read it off an error response.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         preflightMaxAge,
	})
	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}
