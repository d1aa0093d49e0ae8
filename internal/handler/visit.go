package handler

import (
	"context"
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/site-visits/internal/domain"
	"github.com/pkordes/site-visits/internal/handler/gen"
	"github.com/pkordes/site-visits/internal/service"
)

// CreateVisit handles POST /visits.
func (s *Server) CreateVisit(ctx context.Context, req gen.CreateVisitRequestObject) (gen.CreateVisitResponseObject, error) {
	actor, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	in, bad := requestToVisitInput(req.Body)
	if bad != nil {
		return gen.CreateVisit422JSONResponse(*bad), nil
	}

	created, err := s.visits.Create(ctx, actor, in)
	if err != nil {
		switch status, body := classify(err); status {
		case http.StatusForbidden:
			return gen.CreateVisit403JSONResponse(body), nil
		case http.StatusUnprocessableEntity:
			return gen.CreateVisit422JSONResponse(body), nil
		}
		return nil, err
	}
	return gen.CreateVisit201JSONResponse(visitToResponse(created)), nil
}

// ListVisits handles GET /visits.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListVisits(ctx context.Context, req gen.ListVisitsRequestObject) (gen.ListVisitsResponseObject, error) {
	f, bad := paramsToFilter(req.Params)
	if bad != nil {
		return gen.ListVisits422JSONResponse(*bad), nil
	}
	params := domain.NewPaginationParams(req.Params.Page, req.Params.Limit)

	visits, total, err := s.visits.List(ctx, f, params)
	if err != nil {
		return nil, err
	}

	data := make([]gen.Visit, len(visits))
	for i, v := range visits {
		data[i] = visitToResponse(v)
	}
	return gen.ListVisits200JSONResponse{
		Data: data,
		Pagination: gen.Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	}, nil
}

// GetVisit handles GET /visits/{id}.
func (s *Server) GetVisit(ctx context.Context, req gen.GetVisitRequestObject) (gen.GetVisitResponseObject, error) {
	v, err := s.visits.GetByID(ctx, domain.VisitID(req.Id))
	if err != nil {
		if status, body := classify(err); status == http.StatusNotFound {
			return gen.GetVisit404JSONResponse(body), nil
		}
		return nil, err
	}
	return gen.GetVisit200JSONResponse(visitToResponse(v)), nil
}

// UpdateVisit handles PATCH /visits/{id}.
func (s *Server) UpdateVisit(ctx context.Context, req gen.UpdateVisitRequestObject) (gen.UpdateVisitResponseObject, error) {
	actor, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	updated, err := s.visits.Edit(ctx, domain.VisitID(req.Id), actor, requestToPatch(req.Body))
	if err != nil {
		switch status, body := classify(err); status {
		case http.StatusForbidden:
			return gen.UpdateVisit403JSONResponse(body), nil
		case http.StatusNotFound:
			return gen.UpdateVisit404JSONResponse(body), nil
		case http.StatusConflict:
			return gen.UpdateVisit409JSONResponse(body), nil
		case http.StatusUnprocessableEntity:
			return gen.UpdateVisit422JSONResponse(body), nil
		}
		return nil, err
	}
	return gen.UpdateVisit200JSONResponse(visitToResponse(updated)), nil
}

// DeleteVisit handles DELETE /visits/{id}.
func (s *Server) DeleteVisit(ctx context.Context, req gen.DeleteVisitRequestObject) (gen.DeleteVisitResponseObject, error) {
	actor, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.visits.Delete(ctx, domain.VisitID(req.Id), actor); err != nil {
		switch status, body := classify(err); status {
		case http.StatusForbidden:
			return gen.DeleteVisit403JSONResponse(body), nil
		case http.StatusNotFound:
			return gen.DeleteVisit404JSONResponse(body), nil
		case http.StatusConflict:
			return gen.DeleteVisit409JSONResponse(body), nil
		}
		return nil, err
	}
	return gen.DeleteVisit204Response{}, nil
}

// TransitionVisit handles POST /visits/{id}/transitions.
func (s *Server) TransitionVisit(ctx context.Context, req gen.TransitionVisitRequestObject) (gen.TransitionVisitResponseObject, error) {
	actor, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	op, err := domain.ParseTransition(string(req.Body.Operation))
	if err != nil {
		return gen.TransitionVisit422JSONResponse(fieldError("operation", "must be one of approve, decline, request_clarification, submit_clarification, start_trip, complete_trip")), nil
	}

	v, err := s.visits.Transition(ctx, domain.VisitID(req.Id), actor, op, requestToPayload(req.Body))
	if err != nil {
		switch status, body := classify(err); status {
		case http.StatusForbidden:
			return gen.TransitionVisit403JSONResponse(body), nil
		case http.StatusNotFound:
			return gen.TransitionVisit404JSONResponse(body), nil
		case http.StatusConflict:
			return gen.TransitionVisit409JSONResponse(body), nil
		case http.StatusUnprocessableEntity:
			return gen.TransitionVisit422JSONResponse(body), nil
		}
		return nil, err
	}
	return gen.TransitionVisit200JSONResponse(visitToResponse(v)), nil
}

// --- mapping helpers --------------------------------------------------------

// requestToVisitInput converts a CreateVisitRequest body into service input.
// An unknown visibility is rejected here; everything else is the service's call.
func requestToVisitInput(body *gen.CreateVisitRequest) (service.VisitInput, *gen.ErrorResponse) {
	in := service.VisitInput{
		CustomerName:  body.CustomerName,
		CustomerPhone: body.CustomerPhone,
		ProjectIDs:    body.ProjectIds,
		VisitDate:     body.VisitDate.Time,
		VisitTime:     body.VisitTime,
	}
	if body.PickupLocation != nil {
		in.PickupLocation = *body.PickupLocation
	}
	if body.Notes != nil {
		in.Notes = *body.Notes
	}
	if body.Visibility != nil {
		vis, err := domain.ParseVisibility(string(*body.Visibility))
		if err != nil {
			bad := fieldError("visibility", "must be public or private")
			return service.VisitInput{}, &bad
		}
		in.Visibility = vis
	}
	return in, nil
}

func requestToPatch(body *gen.UpdateVisitRequest) service.VisitPatch {
	p := service.VisitPatch{
		CustomerName:   body.CustomerName,
		CustomerPhone:  body.CustomerPhone,
		PickupLocation: body.PickupLocation,
		ProjectIDs:     body.ProjectIds,
		VisitTime:      body.VisitTime,
		Notes:          body.Notes,
	}
	if body.VisitDate != nil {
		d := body.VisitDate.Time
		p.VisitDate = &d
	}
	return p
}

func requestToPayload(body *gen.TransitionRequest) service.TransitionPayload {
	var p service.TransitionPayload
	if body.DriverId != nil {
		id := domain.ProfileID(*body.DriverId)
		p.DriverID = &id
	}
	if body.Reason != nil {
		p.Reason = *body.Reason
	}
	if body.Note != nil {
		p.Note = *body.Note
	}
	if body.Response != nil {
		p.Response = *body.Response
	}
	if body.Odometer != nil {
		r := domain.OdometerReading(*body.Odometer)
		p.Odometer = &r
	}
	return p
}

// paramsToFilter validates the listing query and builds the repo filter.
func paramsToFilter(p gen.ListVisitsParams) (domain.VisitFilter, *gen.ErrorResponse) {
	var f domain.VisitFilter
	if p.Status != nil {
		st, err := domain.ParseStatus(string(*p.Status))
		if err != nil {
			bad := fieldError("status", "is not a visit status")
			return f, &bad
		}
		f.Status = &st
	}
	if p.RequesterId != nil {
		id := domain.ProfileID(*p.RequesterId)
		f.RequesterID = &id
	}
	if p.DriverId != nil {
		id := domain.ProfileID(*p.DriverId)
		f.DriverID = &id
	}
	f.From, f.To = dateRange(p.From, p.To)
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		bad := fieldError("from", "must not be after to")
		return f, &bad
	}
	return f, nil
}

// dateRange unwraps optional query dates.
func dateRange(from, to *openapi_types.Date) (*time.Time, *time.Time) {
	var f, t *time.Time
	if from != nil {
		f = &from.Time
	}
	if to != nil {
		t = &to.Time
	}
	return f, t
}

// visitToResponse converts a domain.Visit into the generated gen.Visit type.
// Distance is derived once both odometer readings exist.
func visitToResponse(v domain.Visit) gen.Visit {
	resp := gen.Visit{
		Id:                v.ID.UUID(),
		RequesterId:       v.RequesterID.UUID(),
		CustomerName:      v.CustomerName,
		CustomerPhone:     v.CustomerPhone,
		ProjectIds:        v.ProjectIDs,
		VisitDate:         openapi_types.Date{Time: v.VisitDate},
		VisitTime:         v.VisitTime,
		Visibility:        gen.Visibility(v.Visibility),
		Status:            gen.VisitStatus(v.Status),
		ApprovedAt:        v.ApprovedAt,
		RejectionReason:   v.RejectionReason,
		ClarificationNote: v.ClarificationNote,
		Version:           v.Version,
		CreatedAt:         v.CreatedAt,
		UpdatedAt:         v.UpdatedAt,
	}
	if resp.ProjectIds == nil {
		resp.ProjectIds = []string{}
	}
	if v.PickupLocation != "" {
		resp.PickupLocation = &v.PickupLocation
	}
	if v.Notes != "" {
		resp.Notes = &v.Notes
	}
	if v.DriverID != nil {
		id := v.DriverID.UUID()
		resp.DriverId = &id
	}
	if v.ApprovedBy != nil {
		id := v.ApprovedBy.UUID()
		resp.ApprovedBy = &id
	}
	if v.StartOdometer != nil {
		start := int64(*v.StartOdometer)
		resp.StartOdometer = &start
	}
	if v.EndOdometer != nil {
		end := int64(*v.EndOdometer)
		resp.EndOdometer = &end
	}
	if v.StartOdometer != nil && v.EndOdometer != nil {
		d := int64(*v.EndOdometer - *v.StartOdometer)
		resp.Distance = &d
	}
	return resp
}
