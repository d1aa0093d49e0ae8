package repo

import (
	"context"
	"fmt"

	"github.com/pkordes/site-visits/internal/domain"
)

type sqliteProfileRepo struct {
	db sqlDB
}

// NewSQLiteProfileRepo constructs a ProfileRepo backed by SQLite.
func NewSQLiteProfileRepo(db sqlDB) ProfileRepo {
	return &sqliteProfileRepo{db: db}
}

func (r *sqliteProfileRepo) GetByID(ctx context.Context, id domain.ProfileID) (domain.Profile, error) {
	const q = `SELECT id, full_name, role, is_active FROM profiles WHERE id = ?`

	p, err := scanSQLiteProfile(r.db.QueryRowContext(ctx, q, id.String()))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("repo.SQLiteProfileRepo.GetByID: %w", err)
	}
	return p, nil
}

func (r *sqliteProfileRepo) ListActiveByRole(ctx context.Context, role domain.Role) ([]domain.Profile, error) {
	const q = `
		SELECT id, full_name, role, is_active
		FROM profiles
		WHERE role = ? AND is_active = 1
		ORDER BY full_name, id`

	rows, err := r.db.QueryContext(ctx, q, string(role))
	if err != nil {
		return nil, fmt.Errorf("repo.SQLiteProfileRepo.ListActiveByRole: %w", err)
	}
	defer rows.Close()

	profiles := []domain.Profile{}
	for rows.Next() {
		p, err := scanSQLiteProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.SQLiteProfileRepo.ListActiveByRole: scan: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SQLiteProfileRepo.ListActiveByRole: rows: %w", err)
	}
	return profiles, nil
}

func scanSQLiteProfile(s scanner) (domain.Profile, error) {
	var (
		p        domain.Profile
		id, role string
	)
	if err := s.Scan(&id, &p.FullName, &role, &p.Active); err != nil {
		if isNoRows(err) {
			return domain.Profile{}, domain.ErrNotFound
		}
		return domain.Profile{}, err
	}
	pid, err := domain.ParseProfileID(id)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("id: %w", err)
	}
	p.ID = pid
	p.Role = domain.Role(role)
	return p, nil
}
