// Package handler implements the HTTP handlers for the site-visit API.
// All handlers are methods on Server, which implements gen.StrictServerInterface.
// Methods are split into resource files (visit.go, notification.go, etc.) but
// all share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/site-visits/internal/auth"
	"github.com/pkordes/site-visits/internal/domain"
	"github.com/pkordes/site-visits/internal/handler/gen"
	"github.com/pkordes/site-visits/internal/service"
)

// VisitServicer defines the site-visit operations the handlers depend on.
// Defining the interface here (in the consumer package) lets handler tests
// inject a mock without touching the database or service layer.
type VisitServicer interface {
	Create(ctx context.Context, requesterID domain.ProfileID, in service.VisitInput) (domain.Visit, error)
	GetByID(ctx context.Context, id domain.VisitID) (domain.Visit, error)
	List(ctx context.Context, f domain.VisitFilter, p domain.PaginationParams) ([]domain.Visit, int64, error)
	Edit(ctx context.Context, id domain.VisitID, actorID domain.ProfileID, p service.VisitPatch) (domain.Visit, error)
	Delete(ctx context.Context, id domain.VisitID, actorID domain.ProfileID) error
	Transition(ctx context.Context, id domain.VisitID, actorID domain.ProfileID, op domain.Operation, p service.TransitionPayload) (domain.Visit, error)
	ActiveDrivers(ctx context.Context) ([]domain.Profile, error)
}

// NotificationServicer defines the notification inbox operations.
type NotificationServicer interface {
	List(ctx context.Context, recipient domain.ProfileID, unreadOnly bool, p domain.PaginationParams) ([]domain.Notification, int64, error)
	MarkRead(ctx context.Context, id uuid.UUID, recipient domain.ProfileID) error
}

// TripLogServicer produces the trip log export.
type TripLogServicer interface {
	Export(ctx context.Context, from, to *time.Time) ([]domain.TripLogRow, error)
}

// Server implements gen.StrictServerInterface for all API endpoints.
// Wire it in main.go via NewHTTPHandler.
type Server struct {
	visits        VisitServicer
	notifications NotificationServicer
	tripLog       TripLogServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(visits VisitServicer, notifications NotificationServicer, tripLog TripLogServicer) *Server {
	return &Server{visits: visits, notifications: notifications, tripLog: tripLog}
}

// publicOperations are served without a caller identity.
var publicOperations = []string{"GetHealth"}

// NewHTTPHandler mounts srv on base (a fresh chi router when nil) behind the
// generated strict adapter. Every operation except the public ones requires an
// authenticated caller; errors the handlers do not map themselves are written
// as the JSON error envelope.
func NewHTTPHandler(srv *Server, log *slog.Logger, base chi.Router) http.Handler {
	strict := gen.NewStrictHandlerWithOptions(srv,
		[]gen.StrictMiddlewareFunc{RequirePrincipal(publicOperations...)},
		gen.StrictHTTPServerOptions{
			RequestErrorHandlerFunc:  requestErrorHandler,
			ResponseErrorHandlerFunc: responseErrorHandler(log),
		})
	return gen.HandlerWithOptions(strict, gen.ChiServerOptions{
		BaseRouter:       base,
		ErrorHandlerFunc: paramErrorHandler,
	})
}

// RequirePrincipal rejects requests that reached an operation without an
// authenticated caller. Operations named in public are let through.
func RequirePrincipal(public ...string) gen.StrictMiddlewareFunc {
	return func(f gen.StrictHandlerFunc, operationID string) gen.StrictHandlerFunc {
		if slices.Contains(public, operationID) {
			return f
		}
		return func(ctx context.Context, w http.ResponseWriter, r *http.Request, request interface{}) (interface{}, error) {
			if _, ok := auth.FromContext(ctx); !ok {
				return nil, domain.ErrUnauthenticated
			}
			return f(ctx, w, r, request)
		}
	}
}

// caller returns the authenticated profile. RequirePrincipal guarantees one
// for every non-public operation.
func caller(ctx context.Context) (domain.ProfileID, error) {
	p, ok := auth.FromContext(ctx)
	if !ok {
		return domain.ProfileID{}, domain.ErrUnauthenticated
	}
	return p.ProfileID, nil
}

// paramErrorHandler answers path and query parameters that failed to bind.
func paramErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	writeError(w, http.StatusBadRequest, errorBody("bad_request", err.Error()))
}

// requestErrorHandler answers request bodies the strict adapter could not decode.
func requestErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, errorBody("request_too_large", "request body too large"))
		return
	}
	writeError(w, http.StatusBadRequest, errorBody("bad_request", err.Error()))
}

// responseErrorHandler maps errors a handler returned instead of a typed
// response. Anything unclassified is logged and hidden behind a 500.
func responseErrorHandler(log *slog.Logger) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		switch {
		case errors.Is(err, domain.ErrUnauthenticated):
			writeError(w, http.StatusUnauthorized, errorBody("unauthenticated", "a bearer token is required"))
		case errors.Is(err, domain.ErrConflict):
			writeError(w, http.StatusConflict, conflictBody())
		case errors.Is(err, domain.ErrInfrastructure):
			log.ErrorContext(r.Context(), "backing service failure", "path", r.URL.Path, "error", err)
			writeError(w, http.StatusServiceUnavailable, errorBody("unavailable", "a backing service failed; retry the request"))
		default:
			log.ErrorContext(r.Context(), "unhandled error", "path", r.URL.Path, "error", err)
			writeError(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
		}
	}
}
