package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/site-visits/internal/domain"
)

// sqliteVisitRepo is the SQLite implementation of VisitRepo, used for
// single-node deployments and local development.
type sqliteVisitRepo struct {
	db sqlDB
}

// NewSQLiteVisitRepo constructs a VisitRepo backed by a SQLite database
// opened with OpenSQLite.
func NewSQLiteVisitRepo(db sqlDB) VisitRepo {
	return &sqliteVisitRepo{db: db}
}

func (r *sqliteVisitRepo) Create(ctx context.Context, v domain.Visit) (domain.Visit, error) {
	q := `INSERT INTO site_visits (` + visitColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	projects, err := json.Marshal(nonNilProjects(v.ProjectIDs))
	if err != nil {
		return domain.Visit{}, fmt.Errorf("repo.SQLiteVisitRepo.Create: %w", err)
	}
	_, err = r.db.ExecContext(ctx, q,
		v.ID.String(), v.RequesterID.String(), v.CustomerName, v.CustomerPhone, v.PickupLocation, string(projects),
		v.VisitDate.Format(sqliteDateLayout), v.VisitTime, string(v.Visibility), string(v.Status),
		nullProfileID(v.DriverID), nullProfileID(v.ApprovedBy), sqliteNullTime(v.ApprovedAt),
		v.Notes, nullString(v.RejectionReason), nullString(v.ClarificationNote), v.ClarificationResponses,
		nullOdometer(v.StartOdometer), nullOdometer(v.EndOdometer),
		v.Version, sqliteTime(v.CreatedAt), sqliteTime(v.UpdatedAt),
	)
	if err != nil {
		return domain.Visit{}, fmt.Errorf("repo.SQLiteVisitRepo.Create: %w", err)
	}
	return r.GetByID(ctx, v.ID)
}

func (r *sqliteVisitRepo) GetByID(ctx context.Context, id domain.VisitID) (domain.Visit, error) {
	q := `SELECT ` + visitColumns + ` FROM site_visits WHERE id = ?`

	v, err := scanSQLiteVisit(r.db.QueryRowContext(ctx, q, id.String()))
	if err != nil {
		return domain.Visit{}, fmt.Errorf("repo.SQLiteVisitRepo.GetByID: %w", err)
	}
	return v, nil
}

func (r *sqliteVisitRepo) List(ctx context.Context, f domain.VisitFilter, p domain.PaginationParams) ([]domain.Visit, int64, error) {
	var (
		conds []string
		args  []any
	)
	if f.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, string(*f.Status))
	}
	if f.RequesterID != nil {
		conds = append(conds, "requester_id = ?")
		args = append(args, f.RequesterID.String())
	}
	if f.DriverID != nil {
		conds = append(conds, "driver_id = ?")
		args = append(args, f.DriverID.String())
	}
	if f.From != nil {
		conds = append(conds, "visit_date >= ?")
		args = append(args, f.From.Format(sqliteDateLayout))
	}
	if f.To != nil {
		conds = append(conds, "visit_date <= ?")
		args = append(args, f.To.Format(sqliteDateLayout))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM site_visits`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.SQLiteVisitRepo.List: count: %w", err)
	}

	q := `SELECT ` + visitColumns + ` FROM site_visits` + where + `
		ORDER BY visit_date DESC, visit_time DESC, created_at DESC
		LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.SQLiteVisitRepo.List: %w", err)
	}
	defer rows.Close()

	visits := []domain.Visit{}
	for rows.Next() {
		v, err := scanSQLiteVisit(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.SQLiteVisitRepo.List: scan: %w", err)
		}
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.SQLiteVisitRepo.List: rows: %w", err)
	}
	return visits, total, nil
}

func (r *sqliteVisitRepo) Update(ctx context.Context, v domain.Visit) (domain.Visit, error) {
	const q = `
		UPDATE site_visits
		SET customer_name = ?, customer_phone = ?, pickup_location = ?, project_ids = ?,
		    visit_date = ?, visit_time = ?, status = ?, driver_id = ?, approved_by = ?,
		    approved_at = ?, notes = ?, rejection_reason = ?, clarification_note = ?,
		    clarification_responses = ?, start_odometer = ?, end_odometer = ?, updated_at = ?, version = version + 1
		WHERE id = ? AND version = ?`

	projects, err := json.Marshal(nonNilProjects(v.ProjectIDs))
	if err != nil {
		return domain.Visit{}, fmt.Errorf("repo.SQLiteVisitRepo.Update: %w", err)
	}
	res, err := r.db.ExecContext(ctx, q,
		v.CustomerName, v.CustomerPhone, v.PickupLocation, string(projects),
		v.VisitDate.Format(sqliteDateLayout), v.VisitTime, string(v.Status),
		nullProfileID(v.DriverID), nullProfileID(v.ApprovedBy),
		sqliteNullTime(v.ApprovedAt), v.Notes, nullString(v.RejectionReason), nullString(v.ClarificationNote),
		v.ClarificationResponses, nullOdometer(v.StartOdometer), nullOdometer(v.EndOdometer), sqliteTime(v.UpdatedAt),
		v.ID.String(), v.Version,
	)
	if err != nil {
		return domain.Visit{}, fmt.Errorf("repo.SQLiteVisitRepo.Update: %w", err)
	}
	if err := r.checkAffected(ctx, res, v.ID); err != nil {
		return domain.Visit{}, fmt.Errorf("repo.SQLiteVisitRepo.Update: %w", err)
	}

	out := v.Clone()
	out.Version++
	return out, nil
}

func (r *sqliteVisitRepo) Delete(ctx context.Context, id domain.VisitID, version int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM site_visits WHERE id = ? AND version = ?`, id.String(), version)
	if err != nil {
		return fmt.Errorf("repo.SQLiteVisitRepo.Delete: %w", err)
	}
	if err := r.checkAffected(ctx, res, id); err != nil {
		return fmt.Errorf("repo.SQLiteVisitRepo.Delete: %w", err)
	}
	return nil
}

// checkAffected turns a versioned write that matched no row into
// domain.ErrConflict or domain.ErrNotFound.
func (r *sqliteVisitRepo) checkAffected(ctx context.Context, res sql.Result, id domain.VisitID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM site_visits WHERE id = ?)`, id.String()).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return domain.ErrConflict
	}
	return domain.ErrNotFound
}

func scanSQLiteVisit(s scanner) (domain.Visit, error) {
	var (
		v                              domain.Visit
		id, requester, projects        string
		visitDate, visibility, status  string
		createdAt, updatedAt           string
		driver, approvedBy, approvedAt sql.NullString
		rejection, clarificationNote   sql.NullString
		startOdo, endOdo               sql.NullInt64
	)
	err := s.Scan(
		&id, &requester, &v.CustomerName, &v.CustomerPhone, &v.PickupLocation, &projects,
		&visitDate, &v.VisitTime, &visibility, &status, &driver, &approvedBy, &approvedAt,
		&v.Notes, &rejection, &clarificationNote, &v.ClarificationResponses, &startOdo, &endOdo,
		&v.Version, &createdAt, &updatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return domain.Visit{}, domain.ErrNotFound
		}
		return domain.Visit{}, err
	}

	if v.ID, err = domain.ParseVisitID(id); err != nil {
		return domain.Visit{}, fmt.Errorf("id: %w", err)
	}
	if v.RequesterID, err = domain.ParseProfileID(requester); err != nil {
		return domain.Visit{}, fmt.Errorf("requester_id: %w", err)
	}
	if err := json.Unmarshal([]byte(projects), &v.ProjectIDs); err != nil {
		return domain.Visit{}, fmt.Errorf("project_ids: %w", err)
	}
	if v.VisitDate, err = time.Parse(sqliteDateLayout, visitDate); err != nil {
		return domain.Visit{}, fmt.Errorf("visit_date: %w", err)
	}
	if v.CreatedAt, err = parseSQLiteTime(createdAt); err != nil {
		return domain.Visit{}, fmt.Errorf("created_at: %w", err)
	}
	if v.UpdatedAt, err = parseSQLiteTime(updatedAt); err != nil {
		return domain.Visit{}, fmt.Errorf("updated_at: %w", err)
	}
	if v.DriverID, err = parseNullProfileID(driver); err != nil {
		return domain.Visit{}, fmt.Errorf("driver_id: %w", err)
	}
	if v.ApprovedBy, err = parseNullProfileID(approvedBy); err != nil {
		return domain.Visit{}, fmt.Errorf("approved_by: %w", err)
	}
	if approvedAt.Valid {
		t, err := parseSQLiteTime(approvedAt.String)
		if err != nil {
			return domain.Visit{}, fmt.Errorf("approved_at: %w", err)
		}
		v.ApprovedAt = &t
	}
	v.Visibility = domain.Visibility(visibility)
	v.Status = domain.Status(status)
	if rejection.Valid {
		v.RejectionReason = &rejection.String
	}
	if clarificationNote.Valid {
		v.ClarificationNote = &clarificationNote.String
	}
	if startOdo.Valid {
		r := domain.OdometerReading(startOdo.Int64)
		v.StartOdometer = &r
	}
	if endOdo.Valid {
		r := domain.OdometerReading(endOdo.Int64)
		v.EndOdometer = &r
	}
	return v, nil
}

func nonNilProjects(p []string) []string {
	if p == nil {
		return []string{}
	}
	return p
}

func nullProfileID(p *domain.ProfileID) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: p.String(), Valid: true}
}

func parseNullProfileID(s sql.NullString) (*domain.ProfileID, error) {
	if !s.Valid {
		return nil, nil
	}
	id, err := domain.ParseProfileID(s.String)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullOdometer(r *domain.OdometerReading) sql.NullInt64 {
	if r == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*r), Valid: true}
}
