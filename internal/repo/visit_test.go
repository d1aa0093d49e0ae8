package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/site-visits/internal/domain"
)

func TestVisitRepo_CreateAndGet(t *testing.T) {
	forEachStore(t, func(t *testing.T, s stores) {
		ctx := context.Background()
		requester := profile(t, s, "Ravi Kumar", domain.RoleSalesExecutive)
		input := visitFixture(requester.ID)

		created, err := s.visits.Create(ctx, input)
		require.NoError(t, err)

		got, err := s.visits.GetByID(ctx, created.ID)
		require.NoError(t, err)

		assert.Equal(t, input.ID, got.ID)
		assert.Equal(t, requester.ID, got.RequesterID)
		assert.Equal(t, input.CustomerName, got.CustomerName)
		assert.Equal(t, input.ProjectIDs, got.ProjectIDs)
		assert.True(t, got.VisitDate.Equal(input.VisitDate), "VisitDate mismatch: %v", got.VisitDate)
		assert.Equal(t, "10:30", got.VisitTime)
		assert.Equal(t, domain.VisibilityPrivate, got.Visibility)
		assert.Equal(t, domain.StatusPending, got.Status)
		assert.Equal(t, 1, got.Version)
		assert.Nil(t, got.DriverID)
		assert.Nil(t, got.StartOdometer)
		assert.True(t, got.CreatedAt.Equal(input.CreatedAt), "CreatedAt mismatch")
	})
}

func TestVisitRepo_GetByID_NotFound(t *testing.T) {
	forEachStore(t, func(t *testing.T, s stores) {
		_, err := s.visits.GetByID(context.Background(), domain.NewVisitID())

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestVisitRepo_Update_RoundTripsOptionalFields(t *testing.T) {
	forEachStore(t, func(t *testing.T, s stores) {
		ctx := context.Background()
		requester := profile(t, s, "Ravi Kumar", domain.RoleSalesExecutive)
		approver := profile(t, s, "Meera Iyer", domain.RoleAdmin)
		driver := profile(t, s, "Suresh", domain.RoleDriver)

		created, err := s.visits.Create(ctx, visitFixture(requester.ID))
		require.NoError(t, err)

		approvedAt := time.Now().UTC().Truncate(time.Microsecond)
		start, end := domain.OdometerReading(1200), domain.OdometerReading(1240)
		next := created.Clone()
		next.Status = domain.StatusCompleted
		next.DriverID = &driver.ID
		next.ApprovedBy = &approver.ID
		next.ApprovedAt = &approvedAt
		next.StartOdometer = &start
		next.EndOdometer = &end
		next.ClarificationResponses = 2
		next.UpdatedAt = approvedAt

		updated, err := s.visits.Update(ctx, next)
		require.NoError(t, err)
		assert.Equal(t, 2, updated.Version)

		got, err := s.visits.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, got.Version)
		assert.Equal(t, domain.StatusCompleted, got.Status)
		require.NotNil(t, got.DriverID)
		assert.Equal(t, driver.ID, *got.DriverID)
		require.NotNil(t, got.ApprovedAt)
		assert.True(t, got.ApprovedAt.Equal(approvedAt))
		require.NotNil(t, got.EndOdometer)
		assert.Equal(t, end, *got.EndOdometer)
		assert.Equal(t, 2, got.ClarificationResponses)
		assert.NoError(t, got.CheckInvariants())
	})
}

func TestVisitRepo_Update_StaleVersionConflicts(t *testing.T) {
	forEachStore(t, func(t *testing.T, s stores) {
		ctx := context.Background()
		requester := profile(t, s, "Ravi Kumar", domain.RoleSalesExecutive)

		created, err := s.visits.Create(ctx, visitFixture(requester.ID))
		require.NoError(t, err)

		first := created.Clone()
		first.CustomerName = "first writer"
		_, err = s.visits.Update(ctx, first)
		require.NoError(t, err)

		// Second writer still holds version 1.
		second := created.Clone()
		second.CustomerName = "second writer"
		_, err = s.visits.Update(ctx, second)
		assert.ErrorIs(t, err, domain.ErrConflict)

		got, err := s.visits.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "first writer", got.CustomerName)
	})
}

func TestVisitRepo_Update_NotFound(t *testing.T) {
	forEachStore(t, func(t *testing.T, s stores) {
		requester := profile(t, s, "Ravi Kumar", domain.RoleSalesExecutive)

		_, err := s.visits.Update(context.Background(), visitFixture(requester.ID))

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestVisitRepo_Delete(t *testing.T) {
	forEachStore(t, func(t *testing.T, s stores) {
		ctx := context.Background()
		requester := profile(t, s, "Ravi Kumar", domain.RoleSalesExecutive)
		created, err := s.visits.Create(ctx, visitFixture(requester.ID))
		require.NoError(t, err)

		assert.ErrorIs(t, s.visits.Delete(ctx, created.ID, created.Version+1), domain.ErrConflict)
		require.NoError(t, s.visits.Delete(ctx, created.ID, created.Version))

		_, err = s.visits.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound, "visit should be gone after delete")
		assert.ErrorIs(t, s.visits.Delete(ctx, created.ID, created.Version), domain.ErrNotFound)
	})
}

func TestVisitRepo_List_FiltersAndPages(t *testing.T) {
	forEachStore(t, func(t *testing.T, s stores) {
		ctx := context.Background()
		alice := profile(t, s, "Alice", domain.RoleSalesExecutive)
		bob := profile(t, s, "Bob", domain.RoleSalesManager)
		driver := profile(t, s, "Suresh", domain.RoleDriver)

		for i := 0; i < 3; i++ {
			v := visitFixture(alice.ID)
			v.VisitDate = v.VisitDate.AddDate(0, 0, i)
			_, err := s.visits.Create(ctx, v)
			require.NoError(t, err)
		}
		approved := visitFixture(bob.ID)
		approved.Status = domain.StatusApproved
		approved.DriverID = &driver.ID
		_, err := s.visits.Create(ctx, approved)
		require.NoError(t, err)

		mine, total, err := s.visits.List(ctx, domain.VisitFilter{RequesterID: &alice.ID}, domain.PaginationParams{Page: 1, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, mine, 2)
		assert.True(t, mine[0].VisitDate.After(mine[1].VisitDate), "newest visit date first")

		page2, _, err := s.visits.List(ctx, domain.VisitFilter{RequesterID: &alice.ID}, domain.PaginationParams{Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.Len(t, page2, 1)

		status := domain.StatusApproved
		assigned, total, err := s.visits.List(ctx, domain.VisitFilter{Status: &status, DriverID: &driver.ID}, domain.PaginationParams{Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, assigned, 1)
		assert.Equal(t, approved.ID, assigned[0].ID)

		from := approved.VisitDate.AddDate(0, 0, 1)
		later, total, err := s.visits.List(ctx, domain.VisitFilter{From: &from}, domain.PaginationParams{Page: 1, Limit: 20})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, later, 2)
	})
}

func TestVisitRepo_List_EmptyIsNotNil(t *testing.T) {
	forEachStore(t, func(t *testing.T, s stores) {
		nobody := domain.NewProfileID()

		visits, total, err := s.visits.List(context.Background(), domain.VisitFilter{RequesterID: &nobody}, domain.PaginationParams{Page: 1, Limit: 20})

		require.NoError(t, err)
		assert.NotNil(t, visits)
		assert.Empty(t, visits)
		assert.Zero(t, total)
	})
}
