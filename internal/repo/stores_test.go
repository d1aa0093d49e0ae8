package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/site-visits/internal/domain"
	"github.com/pkordes/site-visits/internal/repo"
	"github.com/pkordes/site-visits/testutil"
)

// stores bundles one backend's repositories with a way to seed the user
// directory, which the service itself never writes.
type stores struct {
	visits        repo.VisitRepo
	profiles      repo.ProfileRepo
	notifications repo.NotificationRepo
	seedProfile   func(t *testing.T, p domain.Profile)
}

// forEachStore runs fn against SQLite and, when TEST_DATABASE_URL is set,
// against Postgres inside a transaction that is rolled back afterwards.
func forEachStore(t *testing.T, fn func(t *testing.T, s stores)) {
	t.Run("sqlite", func(t *testing.T) {
		db := testutil.NewSQLiteDB(t)
		fn(t, stores{
			visits:        repo.NewSQLiteVisitRepo(db),
			profiles:      repo.NewSQLiteProfileRepo(db),
			notifications: repo.NewSQLiteNotificationRepo(db),
			seedProfile: func(t *testing.T, p domain.Profile) {
				t.Helper()
				_, err := db.ExecContext(context.Background(),
					`INSERT INTO profiles (id, full_name, role, is_active) VALUES (?, ?, ?, ?)`,
					p.ID.String(), p.FullName, string(p.Role), p.Active)
				require.NoError(t, err, "seed profile")
			},
		})
	})

	t.Run("postgres", func(t *testing.T) {
		pool := testutil.NewPool(t)
		tx, err := pool.Begin(context.Background())
		require.NoError(t, err, "begin transaction")
		t.Cleanup(func() {
			// Rollback discards all changes made during the test.
			_ = tx.Rollback(context.Background())
		})

		fn(t, stores{
			visits:        repo.NewVisitRepo(tx),
			profiles:      repo.NewProfileRepo(tx),
			notifications: repo.NewNotificationRepo(tx),
			seedProfile: func(t *testing.T, p domain.Profile) {
				t.Helper()
				_, err := tx.Exec(context.Background(),
					`INSERT INTO profiles (id, full_name, role, is_active) VALUES ($1, $2, $3, $4)`,
					p.ID.UUID(), p.FullName, string(p.Role), p.Active)
				require.NoError(t, err, "seed profile")
			},
		})
	})
}

// profile seeds and returns an active profile with the given role.
func profile(t *testing.T, s stores, name string, role domain.Role) domain.Profile {
	t.Helper()
	p := domain.Profile{ID: domain.NewProfileID(), FullName: name, Role: role, Active: true}
	s.seedProfile(t, p)
	return p
}

// visitFixture returns a pending visit owned by requester with sensible
// defaults. Timestamps are truncated to what both backends store exactly.
func visitFixture(requester domain.ProfileID) domain.Visit {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return domain.Visit{
		ID:             domain.NewVisitID(),
		RequesterID:    requester,
		CustomerName:   "Anita Rao",
		CustomerPhone:  "+91 98450 00000",
		PickupLocation: "MG Road office",
		ProjectIDs:     []string{"prestige-lakeside", "brigade-orchards"},
		VisitDate:      time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		VisitTime:      "10:30",
		Visibility:     domain.VisibilityPrivate,
		Status:         domain.StatusPending,
		Notes:          "Customer prefers mornings.",
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
