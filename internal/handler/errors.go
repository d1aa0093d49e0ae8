package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pkordes/site-visits/internal/domain"
	"github.com/pkordes/site-visits/internal/handler/gen"
)

// errorBody returns an ErrorResponse with the given code and message.
func errorBody(code, message string) gen.ErrorResponse {
	return gen.ErrorResponse{Error: gen.ErrorDetail{Code: code, Message: message}}
}

func conflictBody() gen.ErrorResponse {
	return errorBody("conflict", "the visit was changed by another request; reload and retry")
}

// classify maps a domain error onto its HTTP status and response body.
// It returns status 0 for errors that have no client-facing mapping; the
// caller hands those back to the strict adapter.
func classify(err error) (int, gen.ErrorResponse) {
	var (
		invalid *domain.ValidationError
		denied  *domain.AuthorizationError
		illegal *domain.IllegalTransitionError
		missing *domain.NotFoundError
	)
	switch {
	case errors.As(err, &invalid):
		body := errorBody("validation_error", invalid.Field+" "+invalid.Message)
		body.Error.Field = &invalid.Field
		return http.StatusUnprocessableEntity, body
	case errors.As(err, &denied):
		return http.StatusForbidden, errorBody("forbidden", "not permitted to "+string(denied.Operation)+": "+denied.Reason)
	case errors.As(err, &illegal):
		body := errorBody("illegal_transition", "cannot "+string(illegal.Operation)+" a visit in status "+string(illegal.Current))
		current := gen.VisitStatus(illegal.Current)
		body.Error.CurrentStatus = &current
		return http.StatusConflict, body
	case errors.As(err, &missing):
		return http.StatusNotFound, errorBody("not_found", missing.Error())
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, conflictBody()
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, errorBody("validation_error", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorBody("forbidden", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, errorBody("not_found", "resource not found")
	}
	return 0, gen.ErrorResponse{}
}

// fieldError returns a 422 body for input the handler rejects before calling
// the service layer.
func fieldError(field, message string) gen.ErrorResponse {
	body := errorBody("validation_error", field+" "+message)
	body.Error.Field = &field
	return body
}

// writeError writes body with status outside the strict adapter.
func writeError(w http.ResponseWriter, status int, body gen.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
