package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/site-visits/internal/domain"
	"github.com/pkordes/site-visits/internal/repo"
	"github.com/pkordes/site-visits/internal/service"
	"github.com/pkordes/site-visits/testutil"
)

// TestVisitService_ConcurrentApprove_SQLite races two approvals through the
// real SQL store. Whatever the interleaving, exactly one must win.
func TestVisitService_ConcurrentApprove_SQLite(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)

	requester := person("Ravi Kumar", domain.RoleSalesExecutive)
	a1 := person("Meera Iyer", domain.RoleAdmin)
	a2 := person("Vikram Shah", domain.RoleSuperAdmin)
	d1 := person("Suresh", domain.RoleDriver)
	d2 := person("Imran", domain.RoleDriver)
	for _, p := range []domain.Profile{requester, a1, a2, d1, d2} {
		_, err := db.ExecContext(ctx,
			`INSERT INTO profiles (id, full_name, role, is_active) VALUES (?, ?, ?, ?)`,
			p.ID.String(), p.FullName, string(p.Role), p.Active)
		require.NoError(t, err, "seed profile")
	}

	visits := repo.NewSQLiteVisitRepo(db)
	notes := &recordingNotifier{}
	svc := service.NewVisitService(visits, repo.NewSQLiteProfileRepo(db), notes, discardLogger(),
		service.WithClock(func() time.Time { return testNow }))

	v, err := svc.Create(ctx, requester.ID, ashaRao())
	require.NoError(t, err)

	errs := raceApprovals(svc, v.ID, a1.ID, d1.ID, a2.ID, d2.ID)

	winner := assertOneApprovalWon(t, errs)
	stored, err := visits.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, stored.Status)
	assert.Equal(t, []domain.ProfileID{d1.ID, d2.ID}[winner], *stored.DriverID)
	assert.Equal(t, []domain.ProfileID{a1.ID, a2.ID}[winner], *stored.ApprovedBy)
	assert.Equal(t, 2, stored.Version)
	assert.Equal(t, 2, notes.count())
}
