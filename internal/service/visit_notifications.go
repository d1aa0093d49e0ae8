package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/site-visits/internal/domain"
	"github.com/pkordes/site-visits/internal/telemetry"
)

// notificationsFor builds the messages a committed transition produces.
// before is the visit as read, after as written.
func notificationsFor(op domain.Operation, before, after domain.Visit, actor, driver domain.Profile, now time.Time) []domain.Notification {
	when := visitWhen(after)
	msg := func(to domain.ProfileID, cat domain.Category, title, body string) domain.Notification {
		return domain.Notification{
			ID:                uuid.New(),
			RecipientID:       to,
			Title:             title,
			Message:           body,
			Category:          cat,
			RelatedEntityType: domain.EntitySiteVisit,
			RelatedEntityID:   after.ID.UUID(),
			CreatedAt:         now,
		}
	}

	switch op {
	case domain.OpApprove:
		assigned := fmt.Sprintf("You have been assigned a site visit for %s on %s.", after.CustomerName, when)
		if after.PickupLocation != "" {
			assigned += " Pickup: " + after.PickupLocation + "."
		}
		return []domain.Notification{
			msg(after.RequesterID, domain.CategorySuccess, "Site visit approved",
				fmt.Sprintf("Your site visit for %s on %s has been approved. Driver: %s.", after.CustomerName, when, driver.FullName)),
			msg(driver.ID, domain.CategoryInfo, "New site visit assigned", assigned),
		}

	case domain.OpDecline:
		return []domain.Notification{
			msg(after.RequesterID, domain.CategoryError, "Site visit declined",
				fmt.Sprintf("Your site visit for %s on %s was declined. Reason: %s", after.CustomerName, when, deref(after.RejectionReason))),
		}

	case domain.OpRequestClarification:
		return []domain.Notification{
			msg(after.RequesterID, domain.CategoryWarning, "Site visit needs clarification",
				fmt.Sprintf("More information is needed for your site visit for %s on %s: %s", after.CustomerName, when, deref(after.ClarificationNote))),
		}

	case domain.OpSubmitClarification:
		// The approver who asked is the one waiting for the answer.
		if before.ApprovedBy == nil {
			return nil
		}
		return []domain.Notification{
			msg(*before.ApprovedBy, domain.CategoryInfo, "Clarification received",
				fmt.Sprintf("%s answered your question about the site visit for %s on %s.", actor.FullName, after.CustomerName, when)),
		}

	case domain.OpStartTrip:
		return []domain.Notification{
			msg(after.RequesterID, domain.CategoryInfo, "Site visit trip started",
				fmt.Sprintf("The driver is on the way for your site visit for %s on %s.", after.CustomerName, when)),
		}

	case domain.OpCompleteTrip:
		body := fmt.Sprintf("Your site visit for %s on %s is complete.", after.CustomerName, when)
		if d, ok := telemetry.Distance(after); ok {
			body += " Distance travelled: " + telemetry.FormatDistance(d) + "."
		}
		return []domain.Notification{
			msg(after.RequesterID, domain.CategorySuccess, "Site visit completed", body),
		}
	}
	return nil
}

// dispatch hands each notification to the notifier. State is already
// committed, so a failure is logged and otherwise ignored.
func (s *VisitService) dispatch(ctx context.Context, ns []domain.Notification) {
	for _, n := range ns {
		if err := s.notifier.Notify(ctx, n); err != nil {
			s.log.WarnContext(ctx, "notification failed",
				"visit_id", n.RelatedEntityID,
				"recipient_id", n.RecipientID,
				"title", n.Title,
				"error", err,
			)
		}
	}
}

func visitWhen(v domain.Visit) string {
	return v.VisitDate.Format("2006-01-02") + " at " + v.VisitTime
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
