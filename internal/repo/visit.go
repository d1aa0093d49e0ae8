// Package repo contains all record store access for the site-visit service.
// Each resource has its own file with an interface and a Postgres
// implementation; the *_sqlite.go files hold the SQLite implementations.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/site-visits/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// VisitRepo defines the persistence operations for site visits.
// The service layer depends on this interface, not on a concrete backend.
type VisitRepo interface {
	// Create inserts a new visit exactly as given (id and timestamps included)
	// and returns the stored record.
	Create(ctx context.Context, v domain.Visit) (domain.Visit, error)

	// GetByID retrieves a single visit.
	// Returns domain.ErrNotFound if no visit with that ID exists.
	GetByID(ctx context.Context, id domain.VisitID) (domain.Visit, error)

	// List returns one page of visits matching f, newest visit date first,
	// together with the total number of matches.
	List(ctx context.Context, f domain.VisitFilter, p domain.PaginationParams) ([]domain.Visit, int64, error)

	// Update overwrites every mutable field of the visit if and only if the
	// stored version still equals v.Version, and returns the stored record
	// with its version incremented.
	// Returns domain.ErrConflict when the stored version has moved on and
	// domain.ErrNotFound when the visit no longer exists.
	Update(ctx context.Context, v domain.Visit) (domain.Visit, error)

	// Delete removes the visit if and only if its stored version equals version.
	// Returns domain.ErrConflict or domain.ErrNotFound like Update.
	Delete(ctx context.Context, id domain.VisitID, version int) error
}

// pgVisitRepo is the Postgres implementation of VisitRepo.
type pgVisitRepo struct {
	db db
}

// NewVisitRepo constructs a VisitRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewVisitRepo(db db) VisitRepo {
	return &pgVisitRepo{db: db}
}

const visitColumns = `
	id, requester_id, customer_name, customer_phone, pickup_location, project_ids,
	visit_date, visit_time, visibility, status, driver_id, approved_by, approved_at,
	notes, rejection_reason, clarification_note, clarification_responses,
	start_odometer, end_odometer, version, created_at, updated_at`

func (r *pgVisitRepo) Create(ctx context.Context, v domain.Visit) (domain.Visit, error) {
	const q = `
		INSERT INTO site_visits (
			id, requester_id, customer_name, customer_phone, pickup_location, project_ids,
			visit_date, visit_time, visibility, status, driver_id, approved_by, approved_at,
			notes, rejection_reason, clarification_note, clarification_responses,
			start_odometer, end_odometer, version, created_at, updated_at
		) VALUES (
			@id, @requester_id, @customer_name, @customer_phone, @pickup_location, @project_ids,
			@visit_date, @visit_time, @visibility, @status, @driver_id, @approved_by, @approved_at,
			@notes, @rejection_reason, @clarification_note, @clarification_responses,
			@start_odometer, @end_odometer, @version, @created_at, @updated_at
		)
		RETURNING ` + visitColumns

	args, err := visitArgs(v)
	if err != nil {
		return domain.Visit{}, fmt.Errorf("repo.VisitRepo.Create: %w", err)
	}
	args["id"] = v.ID.UUID()
	args["requester_id"] = v.RequesterID.UUID()
	args["visibility"] = string(v.Visibility)
	args["created_at"] = v.CreatedAt

	result, err := scanVisit(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Visit{}, fmt.Errorf("repo.VisitRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgVisitRepo) GetByID(ctx context.Context, id domain.VisitID) (domain.Visit, error) {
	q := `SELECT ` + visitColumns + ` FROM site_visits WHERE id = @id`

	result, err := scanVisit(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id.UUID()}))
	if err != nil {
		return domain.Visit{}, fmt.Errorf("repo.VisitRepo.GetByID: %w", err)
	}
	return result, nil
}

// List filters with "@arg IS NULL OR column = @arg" so that one static
// statement serves every filter combination.
func (r *pgVisitRepo) List(ctx context.Context, f domain.VisitFilter, p domain.PaginationParams) ([]domain.Visit, int64, error) {
	const where = `
		WHERE (@status::text IS NULL OR status = @status::text)
		  AND (@requester_id::uuid IS NULL OR requester_id = @requester_id::uuid)
		  AND (@driver_id::uuid IS NULL OR driver_id = @driver_id::uuid)
		  AND (@from::date IS NULL OR visit_date >= @from::date)
		  AND (@to::date IS NULL OR visit_date <= @to::date)`

	args := pgx.NamedArgs{
		"status":       statusArg(f.Status),
		"requester_id": profileIDArg(f.RequesterID),
		"driver_id":    profileIDArg(f.DriverID),
		"from":         dateArg(f.From),
		"to":           dateArg(f.To),
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM site_visits`+where, args).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.VisitRepo.List: count: %w", err)
	}

	args["limit"] = p.Limit
	args["offset"] = p.Offset()
	q := `SELECT ` + visitColumns + ` FROM site_visits` + where + `
		ORDER BY visit_date DESC, visit_time DESC, created_at DESC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.VisitRepo.List: %w", err)
	}
	defer rows.Close()

	visits := []domain.Visit{}
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.VisitRepo.List: scan: %w", err)
		}
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.VisitRepo.List: rows: %w", err)
	}
	return visits, total, nil
}

// Update is a compare-and-swap on version. When no row matches, a follow-up
// existence check tells a stale version apart from a deleted visit.
func (r *pgVisitRepo) Update(ctx context.Context, v domain.Visit) (domain.Visit, error) {
	const q = `
		UPDATE site_visits
		SET customer_name           = @customer_name,
		    customer_phone          = @customer_phone,
		    pickup_location         = @pickup_location,
		    project_ids             = @project_ids,
		    visit_date              = @visit_date,
		    visit_time              = @visit_time,
		    status                  = @status,
		    driver_id               = @driver_id,
		    approved_by             = @approved_by,
		    approved_at             = @approved_at,
		    notes                   = @notes,
		    rejection_reason        = @rejection_reason,
		    clarification_note      = @clarification_note,
		    clarification_responses = @clarification_responses,
		    start_odometer          = @start_odometer,
		    end_odometer            = @end_odometer,
		    updated_at              = @updated_at,
		    version                 = version + 1
		WHERE id = @id AND version = @version
		RETURNING ` + visitColumns

	args, err := visitArgs(v)
	if err != nil {
		return domain.Visit{}, fmt.Errorf("repo.VisitRepo.Update: %w", err)
	}
	args["id"] = v.ID.UUID()

	result, err := scanVisit(r.db.QueryRow(ctx, q, args))
	if errors.Is(err, domain.ErrNotFound) {
		err = r.missOrConflict(ctx, v.ID)
	}
	if err != nil {
		return domain.Visit{}, fmt.Errorf("repo.VisitRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgVisitRepo) Delete(ctx context.Context, id domain.VisitID, version int) error {
	const q = `DELETE FROM site_visits WHERE id = @id AND version = @version`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id.UUID(), "version": version})
	if err != nil {
		return fmt.Errorf("repo.VisitRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.VisitRepo.Delete: %w", r.missOrConflict(ctx, id))
	}
	return nil
}

// missOrConflict runs after a versioned write matched no row.
func (r *pgVisitRepo) missOrConflict(ctx context.Context, id domain.VisitID) error {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM site_visits WHERE id = @id)`,
		pgx.NamedArgs{"id": id.UUID()}).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrConflict
	}
	return domain.ErrNotFound
}

// visitArgs maps the mutable fields of v onto named query arguments.
// Nil pointers become NULL.
func visitArgs(v domain.Visit) (pgx.NamedArgs, error) {
	vt, err := timeOfDay(v.VisitTime)
	if err != nil {
		return nil, err
	}
	projects := v.ProjectIDs
	if projects == nil {
		projects = []string{}
	}
	return pgx.NamedArgs{
		"customer_name":           v.CustomerName,
		"customer_phone":          v.CustomerPhone,
		"pickup_location":         v.PickupLocation,
		"project_ids":             projects,
		"visit_date":              pgtype.Date{Time: v.VisitDate, Valid: true},
		"visit_time":              vt,
		"status":                  string(v.Status),
		"driver_id":               profileIDArg(v.DriverID),
		"approved_by":             profileIDArg(v.ApprovedBy),
		"approved_at":             v.ApprovedAt,
		"notes":                   v.Notes,
		"rejection_reason":        v.RejectionReason,
		"clarification_note":      v.ClarificationNote,
		"clarification_responses": v.ClarificationResponses,
		"start_odometer":          odometerArg(v.StartOdometer),
		"end_odometer":            odometerArg(v.EndOdometer),
		"version":                 v.Version,
		"updated_at":              v.UpdatedAt,
	}, nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanVisit to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanVisit maps a single database row (in visitColumns order) into a domain.Visit.
func scanVisit(s scanner) (domain.Visit, error) {
	var (
		v                          domain.Visit
		id, requester              pgtype.UUID
		driver, approvedBy         pgtype.UUID
		visitDate                  pgtype.Date
		visitTime                  pgtype.Time
		visibility, status         string
		approvedAt                 pgtype.Timestamptz
		rejection, clarificationNt pgtype.Text
		startOdo, endOdo           pgtype.Int8
	)

	err := s.Scan(
		&id, &requester, &v.CustomerName, &v.CustomerPhone, &v.PickupLocation, &v.ProjectIDs,
		&visitDate, &visitTime, &visibility, &status, &driver, &approvedBy, &approvedAt,
		&v.Notes, &rejection, &clarificationNt, &v.ClarificationResponses, &startOdo, &endOdo,
		&v.Version, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return domain.Visit{}, domain.ErrNotFound
		}
		return domain.Visit{}, err
	}

	v.ID = domain.VisitID(id.Bytes)
	v.RequesterID = domain.ProfileID(requester.Bytes)
	v.VisitDate = visitDate.Time
	v.VisitTime = formatTimeOfDay(visitTime.Microseconds)
	v.Visibility = domain.Visibility(visibility)
	v.Status = domain.Status(status)
	v.DriverID = profileIDFromPg(driver)
	v.ApprovedBy = profileIDFromPg(approvedBy)
	if approvedAt.Valid {
		t := approvedAt.Time
		v.ApprovedAt = &t
	}
	if rejection.Valid {
		v.RejectionReason = &rejection.String
	}
	if clarificationNt.Valid {
		v.ClarificationNote = &clarificationNt.String
	}
	v.StartOdometer = odometerFromPg(startOdo)
	v.EndOdometer = odometerFromPg(endOdo)
	return v, nil
}

func profileIDArg(p *domain.ProfileID) *uuid.UUID {
	if p == nil {
		return nil
	}
	u := p.UUID()
	return &u
}

func statusArg(s *domain.Status) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}

func dateArg(t *time.Time) *pgtype.Date {
	if t == nil {
		return nil
	}
	return &pgtype.Date{Time: *t, Valid: true}
}

func odometerArg(r *domain.OdometerReading) *int64 {
	if r == nil {
		return nil
	}
	v := int64(*r)
	return &v
}

func profileIDFromPg(u pgtype.UUID) *domain.ProfileID {
	if !u.Valid {
		return nil
	}
	id := domain.ProfileID(u.Bytes)
	return &id
}

func odometerFromPg(n pgtype.Int8) *domain.OdometerReading {
	if !n.Valid {
		return nil
	}
	r := domain.OdometerReading(n.Int64)
	return &r
}

// timeOfDay converts an "HH:MM" visit time into a Postgres time value.
func timeOfDay(s string) (pgtype.Time, error) {
	t, err := time.Parse(visitTimeLayout, s)
	if err != nil {
		return pgtype.Time{}, fmt.Errorf("visit_time %q: %w", s, err)
	}
	micros := int64(t.Hour())*int64(time.Hour/time.Microsecond) +
		int64(t.Minute())*int64(time.Minute/time.Microsecond)
	return pgtype.Time{Microseconds: micros, Valid: true}, nil
}

func formatTimeOfDay(micros int64) string {
	d := time.Duration(micros) * time.Microsecond
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

// isNoRows matches the empty-result error of both pgx and database/sql.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

// visitTimeLayout is the wire and storage format of Visit.VisitTime.
const visitTimeLayout = "15:04"
