package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/site-visits/internal/domain"
)

// ProfileRepo is read-only access to the user directory.
// Profiles are owned by the identity system; this service never writes them.
type ProfileRepo interface {
	// GetByID returns the profile, active or not.
	// Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, id domain.ProfileID) (domain.Profile, error)

	// ListActiveByRole returns active profiles with the given role ordered by name.
	ListActiveByRole(ctx context.Context, role domain.Role) ([]domain.Profile, error)
}

type pgProfileRepo struct {
	db db
}

// NewProfileRepo constructs a ProfileRepo backed by the provided db connection.
func NewProfileRepo(db db) ProfileRepo {
	return &pgProfileRepo{db: db}
}

func (r *pgProfileRepo) GetByID(ctx context.Context, id domain.ProfileID) (domain.Profile, error) {
	const q = `SELECT id, full_name, role, is_active FROM profiles WHERE id = @id`

	p, err := scanProfile(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id.UUID()}))
	if err != nil {
		return domain.Profile{}, fmt.Errorf("repo.ProfileRepo.GetByID: %w", err)
	}
	return p, nil
}

func (r *pgProfileRepo) ListActiveByRole(ctx context.Context, role domain.Role) ([]domain.Profile, error) {
	const q = `
		SELECT id, full_name, role, is_active
		FROM profiles
		WHERE role = @role AND is_active
		ORDER BY full_name, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"role": string(role)})
	if err != nil {
		return nil, fmt.Errorf("repo.ProfileRepo.ListActiveByRole: %w", err)
	}
	defer rows.Close()

	profiles := []domain.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ProfileRepo.ListActiveByRole: scan: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ProfileRepo.ListActiveByRole: rows: %w", err)
	}
	return profiles, nil
}

func scanProfile(s scanner) (domain.Profile, error) {
	var (
		p    domain.Profile
		id   pgtype.UUID
		role string
	)
	if err := s.Scan(&id, &p.FullName, &role, &p.Active); err != nil {
		if isNoRows(err) {
			return domain.Profile{}, domain.ErrNotFound
		}
		return domain.Profile{}, err
	}
	p.ID = domain.ProfileID(id.Bytes)
	p.Role = domain.Role(role)
	return p, nil
}
