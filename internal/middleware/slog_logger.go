package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RequestIDHeader carries the request ID back to the client, so a caller
// reporting a failed transition can quote the ID that appears in the logs.
const RequestIDHeader = "X-Request-Id"

// requestFields is filled in by inner middleware while the request runs and
// read by the logger once it has finished.
type requestFields struct {
	actorID string
}

type requestFieldsKey struct{}

// recordActor notes the acting profile for the request log line. It is a
// no-op when the logger is not installed.
func recordActor(ctx context.Context, id string) {
	if f, ok := ctx.Value(requestFieldsKey{}).(*requestFields); ok {
		f.actorID = id
	}
}

// NewSlogLogger returns a middleware that logs each request as a structured
// JSON line via the provided slog.Logger. Besides method, path, status and
// duration it records the chi route pattern (so /visits/{id} aggregates
// across visits), the request ID set by chi's RequestID middleware, and the
// acting profile once the auth middleware has resolved one.
//
// 5xx responses are logged at error level and 4xx at warn.
//
// Wire it after chimiddleware.RequestID and before NewAuthHandler.
func NewSlogLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := chimiddleware.GetReqID(r.Context())
			if reqID != "" {
				w.Header().Set(RequestIDHeader, reqID)
			}

			fields := &requestFields{}
			r = r.WithContext(context.WithValue(r.Context(), requestFieldsKey{}, fields))

			// WrapResponseWriter intercepts WriteHeader so we can read the
			// status code after the downstream handler has run.
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()),
				slog.String("request_id", reqID),
			}
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					attrs = append(attrs, slog.String("route", pattern))
				}
			}
			if fields.actorID != "" {
				attrs = append(attrs, slog.String("actor_id", fields.actorID))
			}
			log.LogAttrs(r.Context(), levelFor(status), "request", attrs...)
		})
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}
