package handler

import (
	"context"
	"net/http"

	"github.com/pkordes/site-visits/internal/domain"
	"github.com/pkordes/site-visits/internal/handler/gen"
)

// ListNotifications handles GET /notifications.
// Only the caller's own notifications are listed; ?unread=true hides read ones.
func (s *Server) ListNotifications(ctx context.Context, req gen.ListNotificationsRequestObject) (gen.ListNotificationsResponseObject, error) {
	me, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	params := domain.NewPaginationParams(req.Params.Page, req.Params.Limit)
	unread := req.Params.Unread != nil && *req.Params.Unread

	ns, total, err := s.notifications.List(ctx, me, unread, params)
	if err != nil {
		return nil, err
	}

	data := make([]gen.Notification, len(ns))
	for i, n := range ns {
		data[i] = notificationToResponse(n)
	}
	return gen.ListNotifications200JSONResponse{
		Data: data,
		Pagination: gen.Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	}, nil
}

// MarkNotificationRead handles POST /notifications/{id}/read.
// Another profile's notification is reported as not found.
func (s *Server) MarkNotificationRead(ctx context.Context, req gen.MarkNotificationReadRequestObject) (gen.MarkNotificationReadResponseObject, error) {
	me, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.notifications.MarkRead(ctx, req.Id, me); err != nil {
		if status, body := classify(err); status == http.StatusNotFound {
			return gen.MarkNotificationRead404JSONResponse(body), nil
		}
		return nil, err
	}
	return gen.MarkNotificationRead204Response{}, nil
}

func notificationToResponse(n domain.Notification) gen.Notification {
	return gen.Notification{
		Id:                n.ID,
		RecipientId:       n.RecipientID.UUID(),
		Title:             n.Title,
		Message:           n.Message,
		Category:          gen.NotificationCategory(n.Category),
		RelatedEntityType: n.RelatedEntityType,
		RelatedEntityId:   n.RelatedEntityID,
		Read:              n.Read,
		CreatedAt:         n.CreatedAt,
	}
}
