package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/site-visits/internal/domain"
	"github.com/pkordes/site-visits/internal/service"
)

var testNow = time.Date(2025, 3, 9, 8, 35, 0, 0, time.UTC)

// world is a small user directory plus a VisitService over in-memory stores.
type world struct {
	visits   *memVisitRepo
	profiles *memProfileRepo
	notes    *recordingNotifier
	svc      *service.VisitService

	requester, otherRequester domain.Profile
	approver, approver2       domain.Profile
	driver, driver2           domain.Profile
	inactiveDriver            domain.Profile
}

func person(name string, role domain.Role) domain.Profile {
	return domain.Profile{ID: domain.NewProfileID(), FullName: name, Role: role, Active: true}
}

func newWorld(t *testing.T) *world {
	t.Helper()
	w := &world{
		visits:         newMemVisitRepo(),
		notes:          &recordingNotifier{},
		requester:      person("Ravi Kumar", domain.RoleSalesExecutive),
		otherRequester: person("Priya Nair", domain.RoleSalesManager),
		approver:       person("Meera Iyer", domain.RoleAdmin),
		approver2:      person("Vikram Shah", domain.RoleSuperAdmin),
		driver:         person("Suresh", domain.RoleDriver),
		driver2:        person("Imran", domain.RoleDriver),
		inactiveDriver: person("Bala", domain.RoleDriver),
	}
	w.inactiveDriver.Active = false
	w.profiles = newMemProfileRepo(w.requester, w.otherRequester, w.approver, w.approver2,
		w.driver, w.driver2, w.inactiveDriver)
	w.svc = service.NewVisitService(w.visits, w.profiles, w.notes, discardLogger(),
		service.WithClock(func() time.Time { return testNow }))
	return w
}

func ashaRao() service.VisitInput {
	return service.VisitInput{
		CustomerName:   "Asha Rao",
		CustomerPhone:  "9990001111",
		PickupLocation: "MG Road office",
		ProjectIDs:     []string{"prestige-lakeside"},
		VisitDate:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		VisitTime:      "11:00",
		Notes:          "Customer prefers mornings.",
	}
}

func (w *world) pending(t *testing.T) domain.Visit {
	t.Helper()
	v, err := w.svc.Create(context.Background(), w.requester.ID, ashaRao())
	require.NoError(t, err)
	return v
}

func (w *world) approved(t *testing.T) domain.Visit {
	t.Helper()
	v, err := w.svc.Approve(context.Background(), w.pending(t).ID, w.approver.ID, w.driver.ID)
	require.NoError(t, err)
	return v
}

func (w *world) started(t *testing.T, odometer domain.OdometerReading) domain.Visit {
	t.Helper()
	v, err := w.svc.StartTrip(context.Background(), w.approved(t).ID, w.driver.ID, odometer)
	require.NoError(t, err)
	return v
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func requireIllegal(t *testing.T, err error, current domain.Status) {
	t.Helper()
	require.ErrorIs(t, err, domain.ErrIllegalTransition)
	var ite *domain.IllegalTransitionError
	require.True(t, errors.As(err, &ite))
	assert.Equal(t, current, ite.Current)
}

// ---- Create ----------------------------------------------------------------

func TestVisitService_Create_Valid(t *testing.T) {
	w := newWorld(t)

	got, err := w.svc.Create(context.Background(), w.requester.ID, ashaRao())

	require.NoError(t, err)
	assert.False(t, got.ID.IsZero())
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, w.requester.ID, got.RequesterID)
	assert.Equal(t, domain.VisibilityPrivate, got.Visibility, "visibility defaults to private")
	assert.Equal(t, 1, got.Version)
	assert.Equal(t, testNow, got.CreatedAt)
	assert.Nil(t, got.DriverID)
	assert.Zero(t, w.notes.count(), "creation notifies nobody")
}

func TestVisitService_Create_Validation(t *testing.T) {
	cases := map[string]func(in *service.VisitInput){
		"missing customer":   func(in *service.VisitInput) { in.CustomerName = "  " },
		"missing phone":      func(in *service.VisitInput) { in.CustomerPhone = "" },
		"no project":         func(in *service.VisitInput) { in.ProjectIDs = []string{" "} },
		"missing date":       func(in *service.VisitInput) { in.VisitDate = time.Time{} },
		"malformed time":     func(in *service.VisitInput) { in.VisitTime = "11am" },
		"unknown visibility": func(in *service.VisitInput) { in.Visibility = "team" },
		"notes too long":     func(in *service.VisitInput) { in.Notes = words(301) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			w := newWorld(t)
			in := ashaRao()
			mutate(&in)

			_, err := w.svc.Create(context.Background(), w.requester.ID, in)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestVisitService_Create_NotesAtLimit(t *testing.T) {
	w := newWorld(t)
	in := ashaRao()
	in.Notes = words(300)

	_, err := w.svc.Create(context.Background(), w.requester.ID, in)

	assert.NoError(t, err)
}

func TestVisitService_Create_Forbidden(t *testing.T) {
	w := newWorld(t)
	retired := person("Old Hand", domain.RoleSalesExecutive)
	retired.Active = false
	w.profiles.profiles[retired.ID] = retired

	for name, actor := range map[string]domain.ProfileID{
		"approver":         w.approver.ID,
		"driver":           w.driver.ID,
		"inactive profile": retired.ID,
		"unknown profile":  domain.NewProfileID(),
	} {
		_, err := w.svc.Create(context.Background(), actor, ashaRao())
		assert.ErrorIs(t, err, domain.ErrForbidden, name)
	}
}

// ---- Approve / decline ----------------------------------------------------

func TestVisitService_ScenarioA_Approve(t *testing.T) {
	w := newWorld(t)
	v := w.pending(t)
	require.Equal(t, domain.StatusPending, v.Status)

	got, err := w.svc.Approve(context.Background(), v.ID, w.approver.ID, w.driver.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
	require.NotNil(t, got.DriverID)
	assert.Equal(t, w.driver.ID, *got.DriverID)
	require.NotNil(t, got.ApprovedBy)
	assert.Equal(t, w.approver.ID, *got.ApprovedBy)
	require.NotNil(t, got.ApprovedAt)
	assert.Equal(t, testNow, *got.ApprovedAt)
	assert.NoError(t, got.CheckInvariants())

	toRequester := w.notes.to(w.requester.ID)
	toDriver := w.notes.to(w.driver.ID)
	require.Len(t, toRequester, 1)
	require.Len(t, toDriver, 1)
	assert.Equal(t, domain.CategorySuccess, toRequester[0].Category)
	assert.Equal(t, "Site visit approved", toRequester[0].Title)
	assert.Equal(t, "New site visit assigned", toDriver[0].Title)
	assert.Equal(t, domain.EntitySiteVisit, toDriver[0].RelatedEntityType)
	assert.Equal(t, v.ID.UUID(), toDriver[0].RelatedEntityID)
	assert.Equal(t, 2, w.notes.count())
}

func TestVisitService_Approve_SecondCallIsIllegal(t *testing.T) {
	w := newWorld(t)
	v := w.approved(t)

	_, err := w.svc.Approve(context.Background(), v.ID, w.approver2.ID, w.driver2.ID)

	requireIllegal(t, err, domain.StatusApproved)
	stored, _ := w.visits.stored(v.ID)
	assert.Equal(t, w.driver.ID, *stored.DriverID, "driver must not be reassigned")
}

func TestVisitService_Approve_DriverMustBeActiveDriver(t *testing.T) {
	w := newWorld(t)
	v := w.pending(t)

	for name, driverID := range map[string]domain.ProfileID{
		"inactive driver":    w.inactiveDriver.ID,
		"not a driver":       w.otherRequester.ID,
		"unknown profile id": domain.NewProfileID(),
	} {
		_, err := w.svc.Approve(context.Background(), v.ID, w.approver.ID, driverID)
		assert.ErrorIs(t, err, domain.ErrNotFound, name)
	}

	stored, _ := w.visits.stored(v.ID)
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Equal(t, 1, stored.Version, "record untouched")
	assert.Zero(t, w.notes.count())
}

func TestVisitService_Approve_RequiresDriverID(t *testing.T) {
	w := newWorld(t)
	v := w.pending(t)

	_, err := w.svc.Transition(context.Background(), v.ID, w.approver.ID, domain.OpApprove, service.TransitionPayload{})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestVisitService_Approve_ByRequesterForbidden(t *testing.T) {
	w := newWorld(t)
	v := w.pending(t)

	_, err := w.svc.Approve(context.Background(), v.ID, w.requester.ID, w.driver.ID)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestVisitService_ScenarioB_Decline(t *testing.T) {
	w := newWorld(t)
	v := w.pending(t)

	got, err := w.svc.Decline(context.Background(), v.ID, w.approver.ID, "Project closed for visits")

	require.NoError(t, err)
	assert.Equal(t, domain.StatusDeclined, got.Status)
	require.NotNil(t, got.RejectionReason)
	assert.Equal(t, "Project closed for visits", *got.RejectionReason)

	sent := w.notes.to(w.requester.ID)
	require.Len(t, sent, 1)
	assert.Equal(t, domain.CategoryError, sent[0].Category)
	assert.Contains(t, sent[0].Message, "Project closed for visits")

	_, err = w.svc.Approve(context.Background(), v.ID, w.approver.ID, w.driver.ID)
	requireIllegal(t, err, domain.StatusDeclined)
}

func TestVisitService_Decline_EmptyReason(t *testing.T) {
	w := newWorld(t)
	v := w.pending(t)

	_, err := w.svc.Decline(context.Background(), v.ID, w.approver.ID, "   ")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestVisitService_Transition_PolicyDecidesBeforePayload(t *testing.T) {
	ctx := context.Background()
	zero := domain.OdometerReading(0)

	tests := []struct {
		name    string
		setup   func(t *testing.T, w *world) domain.Visit
		actor   func(w *world) domain.ProfileID
		op      domain.Operation
		payload func(w *world) service.TransitionPayload
		check   func(t *testing.T, err error)
	}{
		{
			name:    "unassigned driver with bad odometer is forbidden",
			setup:   func(t *testing.T, w *world) domain.Visit { return w.approved(t) },
			actor:   func(w *world) domain.ProfileID { return w.driver2.ID },
			op:      domain.OpStartTrip,
			payload: func(*world) service.TransitionPayload { return service.TransitionPayload{Odometer: &zero} },
			check:   func(t *testing.T, err error) { assert.ErrorIs(t, err, domain.ErrForbidden) },
		},
		{
			name: "approve of declined visit with inactive driver is illegal",
			setup: func(t *testing.T, w *world) domain.Visit {
				v, err := w.svc.Decline(ctx, w.pending(t).ID, w.approver.ID, "closed")
				require.NoError(t, err)
				return v
			},
			actor: func(w *world) domain.ProfileID { return w.approver.ID },
			op:    domain.OpApprove,
			payload: func(w *world) service.TransitionPayload {
				return service.TransitionPayload{DriverID: &w.inactiveDriver.ID}
			},
			check: func(t *testing.T, err error) { requireIllegal(t, err, domain.StatusDeclined) },
		},
		{
			name: "decline of declined visit without reason is illegal",
			setup: func(t *testing.T, w *world) domain.Visit {
				v, err := w.svc.Decline(ctx, w.pending(t).ID, w.approver.ID, "closed")
				require.NoError(t, err)
				return v
			},
			actor:   func(w *world) domain.ProfileID { return w.approver.ID },
			op:      domain.OpDecline,
			payload: func(*world) service.TransitionPayload { return service.TransitionPayload{} },
			check:   func(t *testing.T, err error) { requireIllegal(t, err, domain.StatusDeclined) },
		},
		{
			name: "empty response from non-owner is forbidden",
			setup: func(t *testing.T, w *world) domain.Visit {
				v, err := w.svc.RequestClarification(ctx, w.pending(t).ID, w.approver.ID, "Which tower?")
				require.NoError(t, err)
				return v
			},
			actor:   func(w *world) domain.ProfileID { return w.otherRequester.ID },
			op:      domain.OpSubmitClarification,
			payload: func(*world) service.TransitionPayload { return service.TransitionPayload{} },
			check:   func(t *testing.T, err error) { assert.ErrorIs(t, err, domain.ErrForbidden) },
		},
		{
			name:    "complete before start without odometer is illegal",
			setup:   func(t *testing.T, w *world) domain.Visit { return w.approved(t) },
			actor:   func(w *world) domain.ProfileID { return w.driver.ID },
			op:      domain.OpCompleteTrip,
			payload: func(*world) service.TransitionPayload { return service.TransitionPayload{} },
			check:   func(t *testing.T, err error) { requireIllegal(t, err, domain.StatusApproved) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld(t)
			v := tt.setup(t, w)
			sent := w.notes.count()

			_, err := w.svc.Transition(ctx, v.ID, tt.actor(w), tt.op, tt.payload(w))

			tt.check(t, err)
			assert.NotErrorIs(t, err, domain.ErrValidation)
			assert.NotErrorIs(t, err, domain.ErrNotFound)
			stored, _ := w.visits.stored(v.ID)
			assert.Equal(t, v.Version, stored.Version, "record untouched")
			assert.Equal(t, sent, w.notes.count())
		})
	}
}

// ---- Trip telemetry --------------------------------------------------------

func TestVisitService_ScenarioC_Trip(t *testing.T) {
	w := newWorld(t)
	v := w.approved(t)
	ctx := context.Background()

	started, err := w.svc.StartTrip(ctx, v.ID, w.driver.ID, 1200)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTripStarted, started.Status)
	require.NotNil(t, started.StartOdometer)
	assert.Equal(t, domain.OdometerReading(1200), *started.StartOdometer)

	_, err = w.svc.CompleteTrip(ctx, v.ID, w.driver.ID, 1185)
	require.ErrorIs(t, err, domain.ErrValidation)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "must be greater than 1200", ve.Message)
	stored, _ := w.visits.stored(v.ID)
	assert.Equal(t, domain.StatusTripStarted, stored.Status)

	done, err := w.svc.CompleteTrip(ctx, v.ID, w.driver.ID, 1240)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, done.Status)
	assert.NoError(t, done.CheckInvariants())

	toRequester := w.notes.to(w.requester.ID)
	last := toRequester[len(toRequester)-1]
	assert.Equal(t, "Site visit completed", last.Title)
	assert.Contains(t, last.Message, "40 km")
}

func TestVisitService_StartTrip_OdometerBoundary(t *testing.T) {
	w := newWorld(t)

	_, err := w.svc.StartTrip(context.Background(), w.approved(t).ID, w.driver.ID, 0)
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := w.svc.StartTrip(context.Background(), w.approved(t).ID, w.driver.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTripStarted, got.Status)
}

func TestVisitService_StartTrip_OnlyAssignedDriver(t *testing.T) {
	w := newWorld(t)
	v := w.approved(t)

	_, err := w.svc.StartTrip(context.Background(), v.ID, w.driver2.ID, 1200)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = w.svc.StartTrip(context.Background(), v.ID, w.approver.ID, 1200)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestVisitService_StartTrip_BeforeApproval(t *testing.T) {
	w := newWorld(t)
	v := w.pending(t)

	// No driver is assigned yet, so the driver is not the assigned one.
	_, err := w.svc.StartTrip(context.Background(), v.ID, w.driver.ID, 1200)

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestVisitService_CompleteTrip_Twice(t *testing.T) {
	w := newWorld(t)
	v := w.started(t, 1200)
	_, err := w.svc.CompleteTrip(context.Background(), v.ID, w.driver.ID, 1240)
	require.NoError(t, err)

	_, err = w.svc.CompleteTrip(context.Background(), v.ID, w.driver.ID, 1300)

	requireIllegal(t, err, domain.StatusCompleted)
}

// ---- Clarification ---------------------------------------------------------

func TestVisitService_ClarificationRoundTrip(t *testing.T) {
	w := newWorld(t)
	v := w.pending(t)
	ctx := context.Background()

	asked, err := w.svc.RequestClarification(ctx, v.ID, w.approver.ID, "Which tower does the customer want to see?")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingClarification, asked.Status)
	require.NotNil(t, asked.ClarificationNote)
	sent := w.notes.to(w.requester.ID)
	require.Len(t, sent, 1)
	assert.Equal(t, domain.CategoryWarning, sent[0].Category)
	assert.Contains(t, sent[0].Message, "Which tower")

	answered, err := w.svc.SubmitClarification(ctx, v.ID, w.requester.ID, "Tower B, unit 1204.")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, answered.Status)
	assert.Nil(t, answered.ClarificationNote)
	assert.Equal(t, 1, answered.ClarificationResponses)
	assert.Equal(t,
		"Customer prefers mornings.\n\n[Clarification response 2025-03-09T08:35:00Z]\nTower B, unit 1204.",
		answered.Notes)
	require.Len(t, w.notes.to(w.approver.ID), 1, "the approver who asked hears back")

	approved, err := w.svc.Approve(ctx, v.ID, w.approver.ID, w.driver.ID)
	require.NoError(t, err)
	assert.Contains(t, approved.Notes, "Tower B", "trail survives approval")
}

func TestVisitService_SubmitClarification_WordBoundary(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	v := w.pending(t)
	_, err := w.svc.RequestClarification(ctx, v.ID, w.approver.ID, "More detail please")
	require.NoError(t, err)

	_, err = w.svc.SubmitClarification(ctx, v.ID, w.requester.ID, words(501))
	require.ErrorIs(t, err, domain.ErrValidation)
	stored, _ := w.visits.stored(v.ID)
	assert.Equal(t, domain.StatusPendingClarification, stored.Status)

	_, err = w.svc.SubmitClarification(ctx, v.ID, w.requester.ID, words(500))
	assert.NoError(t, err)
}

func TestVisitService_SubmitClarification_OnlyOwner(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	v := w.pending(t)
	_, err := w.svc.RequestClarification(ctx, v.ID, w.approver.ID, "More detail please")
	require.NoError(t, err)

	_, err = w.svc.SubmitClarification(ctx, v.ID, w.otherRequester.ID, "answer")

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestVisitService_RequestClarification_OnlyFromPending(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	v := w.pending(t)
	_, err := w.svc.RequestClarification(ctx, v.ID, w.approver.ID, "first")
	require.NoError(t, err)

	_, err = w.svc.RequestClarification(ctx, v.ID, w.approver.ID, "second")

	requireIllegal(t, err, domain.StatusPendingClarification)
}

func TestVisitService_ApproveFromClarificationClearsNote(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	v := w.pending(t)
	_, err := w.svc.RequestClarification(ctx, v.ID, w.approver.ID, "Which tower?")
	require.NoError(t, err)

	got, err := w.svc.Approve(ctx, v.ID, w.approver.ID, w.driver.ID)

	require.NoError(t, err)
	assert.Nil(t, got.ClarificationNote)
	assert.NoError(t, got.CheckInvariants())
}

// ---- Edit / delete ---------------------------------------------------------

func TestVisitService_Edit(t *testing.T) {
	w := newWorld(t)
	v := w.pending(t)
	name, when := "Asha R. Rao", "15:30"

	got, err := w.svc.Edit(context.Background(), v.ID, w.requester.ID, service.VisitPatch{CustomerName: &name, VisitTime: &when})

	require.NoError(t, err)
	assert.Equal(t, "Asha R. Rao", got.CustomerName)
	assert.Equal(t, "15:30", got.VisitTime)
	assert.Equal(t, "9990001111", got.CustomerPhone, "unset fields unchanged")
	assert.Equal(t, 2, got.Version)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Zero(t, w.notes.count())
}

func TestVisitService_Edit_Rules(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	name := "Someone Else"

	v := w.pending(t)
	_, err := w.svc.Edit(ctx, v.ID, w.otherRequester.ID, service.VisitPatch{CustomerName: &name})
	assert.ErrorIs(t, err, domain.ErrForbidden, "non-owner")

	empty := ""
	_, err = w.svc.Edit(ctx, v.ID, w.requester.ID, service.VisitPatch{CustomerPhone: &empty})
	assert.ErrorIs(t, err, domain.ErrValidation, "required field cleared")

	_, err = w.svc.RequestClarification(ctx, v.ID, w.approver.ID, "Which tower?")
	require.NoError(t, err)
	_, err = w.svc.Edit(ctx, v.ID, w.requester.ID, service.VisitPatch{CustomerName: &name})
	requireIllegal(t, err, domain.StatusPendingClarification)
}

func TestVisitService_Edit_NotesTrailIsAppendOnly(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	v := w.pending(t)
	_, err := w.svc.RequestClarification(ctx, v.ID, w.approver.ID, "Which tower?")
	require.NoError(t, err)
	answered, err := w.svc.SubmitClarification(ctx, v.ID, w.requester.ID, "Tower B")
	require.NoError(t, err)

	replaced := "Fresh notes"
	_, err = w.svc.Edit(ctx, v.ID, w.requester.ID, service.VisitPatch{Notes: &replaced})
	assert.ErrorIs(t, err, domain.ErrValidation)

	appended := answered.Notes + "\n\nCustomer will bring family."
	got, err := w.svc.Edit(ctx, v.ID, w.requester.ID, service.VisitPatch{Notes: &appended})
	require.NoError(t, err)
	assert.Equal(t, appended, got.Notes)
}

func TestVisitService_Edit_MarkerTextInOwnNotesIsNotATrail(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	in := ashaRao()
	in.Notes = "[Clarification response pending] ask about parking"
	v, err := w.svc.Create(ctx, w.requester.ID, in)
	require.NoError(t, err)

	replaced := "Parking sorted."
	got, err := w.svc.Edit(ctx, v.ID, w.requester.ID, service.VisitPatch{Notes: &replaced})

	require.NoError(t, err)
	assert.Equal(t, "Parking sorted.", got.Notes)
	assert.Zero(t, got.ClarificationResponses)
}

func TestVisitService_Delete(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	v := w.pending(t)
	assert.ErrorIs(t, w.svc.Delete(ctx, v.ID, w.otherRequester.ID), domain.ErrForbidden)
	require.NoError(t, w.svc.Delete(ctx, v.ID, w.requester.ID))
	_, err := w.svc.GetByID(ctx, v.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	approved := w.approved(t)
	requireIllegal(t, w.svc.Delete(ctx, approved.ID, w.requester.ID), domain.StatusApproved)
}

// ---- Concurrency -----------------------------------------------------------

// raceApprovals runs two approvals of the same visit from different
// approvers with different drivers and returns both outcomes.
func raceApprovals(svc *service.VisitService, id domain.VisitID, a1, d1, a2, d2 domain.ProfileID) [2]error {
	var errs [2]error
	done := make(chan struct{}, 2)
	go func() {
		_, errs[0] = svc.Approve(context.Background(), id, a1, d1)
		done <- struct{}{}
	}()
	go func() {
		_, errs[1] = svc.Approve(context.Background(), id, a2, d2)
		done <- struct{}{}
	}()
	<-done
	<-done
	return errs
}

func assertOneApprovalWon(t *testing.T, errs [2]error) int {
	t.Helper()
	winner := -1
	for i, err := range errs {
		if err == nil {
			require.Equal(t, -1, winner, "both approvals succeeded")
			winner = i
			continue
		}
		requireIllegal(t, err, domain.StatusApproved)
	}
	require.NotEqual(t, -1, winner, "neither approval succeeded: %v", errs)
	return winner
}

func TestVisitService_ScenarioD_ConcurrentApprove(t *testing.T) {
	w := newWorld(t)
	v := w.pending(t)
	// Both approvals read the pending visit before either writes.
	w.visits.barrier = newReadBarrier(2)

	errs := raceApprovals(w.svc, v.ID, w.approver.ID, w.driver.ID, w.approver2.ID, w.driver2.ID)

	winner := assertOneApprovalWon(t, errs)
	want := []domain.ProfileID{w.driver.ID, w.driver2.ID}[winner]
	stored, _ := w.visits.stored(v.ID)
	assert.Equal(t, want, *stored.DriverID)
	assert.Equal(t, 2, stored.Version, "exactly one write landed")
	assert.Len(t, w.notes.to(w.requester.ID), 1)
	assert.Equal(t, 2, w.notes.count(), "only the winner notifies")
}

func TestVisitService_RetriesWhenOnlyVersionMoved(t *testing.T) {
	w := newWorld(t)
	v := w.pending(t)
	reads := 0
	r := &mockVisitRepo{
		getByID: func(ctx context.Context, id domain.VisitID) (domain.Visit, error) {
			got, err := w.visits.GetByID(ctx, id)
			reads++
			if reads == 1 {
				w.visits.bump(id) // a concurrent edit lands between read and write
			}
			return got, err
		},
		update: w.visits.Update,
	}
	svc := service.NewVisitService(r, w.profiles, w.notes, discardLogger())

	got, err := svc.Approve(context.Background(), v.ID, w.approver.ID, w.driver.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
	assert.Equal(t, 2, reads)
	assert.Equal(t, 3, got.Version)
}

func TestVisitService_ConflictAfterRetriesExhausted(t *testing.T) {
	w := newWorld(t)
	v := w.pending(t)
	updates := 0
	r := &mockVisitRepo{
		getByID: w.visits.GetByID,
		update: func(context.Context, domain.Visit) (domain.Visit, error) {
			updates++
			return domain.Visit{}, domain.ErrConflict
		},
	}
	svc := service.NewVisitService(r, w.profiles, w.notes, discardLogger())

	_, err := svc.Approve(context.Background(), v.ID, w.approver.ID, w.driver.ID)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 3, updates)
	assert.Zero(t, w.notes.count(), "no notification without a committed write")
}

// ---- Failure semantics -----------------------------------------------------

func TestVisitService_StoreFailureIsInfrastructure(t *testing.T) {
	w := newWorld(t)
	down := errors.New("connection refused")
	r := &mockVisitRepo{
		getByID: func(context.Context, domain.VisitID) (domain.Visit, error) { return domain.Visit{}, down },
		list: func(context.Context, domain.VisitFilter, domain.PaginationParams) ([]domain.Visit, int64, error) {
			return nil, 0, down
		},
	}
	svc := service.NewVisitService(r, w.profiles, w.notes, discardLogger())

	_, err := svc.Approve(context.Background(), domain.NewVisitID(), w.approver.ID, w.driver.ID)
	assert.ErrorIs(t, err, domain.ErrInfrastructure)
	assert.ErrorIs(t, err, down)

	_, _, err = svc.List(context.Background(), domain.VisitFilter{}, domain.NewPaginationParams(nil, nil))
	assert.ErrorIs(t, err, domain.ErrInfrastructure)
}

func TestVisitService_WriteFailureIsInfrastructureAndSilent(t *testing.T) {
	w := newWorld(t)
	v := w.pending(t)
	down := errors.New("disk full")
	r := &mockVisitRepo{
		getByID: w.visits.GetByID,
		update:  func(context.Context, domain.Visit) (domain.Visit, error) { return domain.Visit{}, down },
		delete:  func(context.Context, domain.VisitID, int) error { return down },
	}
	svc := service.NewVisitService(r, w.profiles, w.notes, discardLogger())
	ctx := context.Background()

	_, err := svc.Approve(ctx, v.ID, w.approver.ID, w.driver.ID)
	assert.ErrorIs(t, err, domain.ErrInfrastructure)
	assert.ErrorIs(t, err, down)
	assert.NotErrorIs(t, err, domain.ErrConflict)
	assert.Zero(t, w.notes.count(), "no notification without a committed write")

	err = svc.Delete(ctx, v.ID, w.requester.ID)
	assert.ErrorIs(t, err, domain.ErrInfrastructure)
	assert.ErrorIs(t, err, down)

	stored, ok := w.visits.stored(v.ID)
	require.True(t, ok, "visit still present")
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Equal(t, 1, stored.Version)
}

func TestVisitService_Delete_ConflictAfterRetriesExhausted(t *testing.T) {
	w := newWorld(t)
	v := w.pending(t)
	deletes := 0
	r := &mockVisitRepo{
		getByID: w.visits.GetByID,
		delete: func(context.Context, domain.VisitID, int) error {
			deletes++
			return domain.ErrConflict
		},
	}
	svc := service.NewVisitService(r, w.profiles, w.notes, discardLogger())

	err := svc.Delete(context.Background(), v.ID, w.requester.ID)

	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 3, deletes)
}

func TestVisitService_NotificationFailureKeepsTransition(t *testing.T) {
	w := newWorld(t)
	v := w.pending(t)
	w.notes.err = errors.New("inbox unavailable")

	got, err := w.svc.Approve(context.Background(), v.ID, w.approver.ID, w.driver.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
	stored, _ := w.visits.stored(v.ID)
	assert.Equal(t, domain.StatusApproved, stored.Status)
}

func TestVisitService_UnknownVisit(t *testing.T) {
	w := newWorld(t)

	_, err := w.svc.Decline(context.Background(), domain.NewVisitID(), w.approver.ID, "closed")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVisitService_TransitionRejectsNonTransitions(t *testing.T) {
	w := newWorld(t)
	v := w.pending(t)

	_, err := w.svc.Transition(context.Background(), v.ID, w.requester.ID, domain.OpEdit, service.TransitionPayload{})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- Listing ---------------------------------------------------------------

func TestVisitService_List_EmptyIsNotNil(t *testing.T) {
	w := newWorld(t)

	visits, total, err := w.svc.List(context.Background(), domain.VisitFilter{}, domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.NotNil(t, visits)
	assert.Zero(t, total)
}

func TestVisitService_ActiveDrivers(t *testing.T) {
	w := newWorld(t)

	drivers, err := w.svc.ActiveDrivers(context.Background())

	require.NoError(t, err)
	var ids []domain.ProfileID
	for _, d := range drivers {
		ids = append(ids, d.ID)
	}
	assert.ElementsMatch(t, []domain.ProfileID{w.driver.ID, w.driver2.ID}, ids)
}

// ---- Invariants under arbitrary sequences ----------------------------------

// TestVisitService_InvariantsHoldForEveryOperationSequence drives every
// sequence of up to four transitions through the engine and checks the
// stored record after each step.
func TestVisitService_InvariantsHoldForEveryOperationSequence(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	type step struct {
		op      domain.Operation
		actor   domain.ProfileID
		payload service.TransitionPayload
	}
	low, high := domain.OdometerReading(1100), domain.OdometerReading(1240)
	start := domain.OdometerReading(1200)
	steps := []step{
		{domain.OpApprove, w.approver.ID, service.TransitionPayload{DriverID: &w.driver.ID}},
		{domain.OpDecline, w.approver.ID, service.TransitionPayload{Reason: "closed"}},
		{domain.OpRequestClarification, w.approver.ID, service.TransitionPayload{Note: "which tower?"}},
		{domain.OpSubmitClarification, w.requester.ID, service.TransitionPayload{Response: "tower B"}},
		{domain.OpStartTrip, w.driver.ID, service.TransitionPayload{Odometer: &start}},
		{domain.OpCompleteTrip, w.driver.ID, service.TransitionPayload{Odometer: &low}},
		{domain.OpCompleteTrip, w.driver.ID, service.TransitionPayload{Odometer: &high}},
	}

	var walk func(prefix []int)
	walk = func(prefix []int) {
		if len(prefix) == 4 {
			return
		}
		for i := range steps {
			seq := append(append([]int{}, prefix...), i)
			v := w.pending(t)
			for _, s := range seq {
				_, _ = w.svc.Transition(ctx, v.ID, steps[s].actor, steps[s].op, steps[s].payload)
				stored, _ := w.visits.stored(v.ID)
				require.NoError(t, stored.CheckInvariants(), "sequence %v", seq)
				if stored.DriverID != nil {
					assert.Contains(t, []domain.Status{domain.StatusApproved, domain.StatusTripStarted, domain.StatusCompleted}, stored.Status)
				}
				assert.NotEqual(t, domain.StatusCancelled, stored.Status)
			}
			walk(seq)
		}
	}
	walk(nil)
}
