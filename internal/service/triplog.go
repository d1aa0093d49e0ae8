package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/pkordes/site-visits/internal/domain"
	"github.com/pkordes/site-visits/internal/repo"
	"github.com/pkordes/site-visits/internal/telemetry"
)

// TripLogService assembles a flat export of every visit that reached the
// road, with driver names resolved and distances derived.
type TripLogService struct {
	visits   repo.VisitRepo
	profiles repo.ProfileRepo
}

// NewTripLogService constructs a TripLogService backed by the provided repos.
func NewTripLogService(visits repo.VisitRepo, profiles repo.ProfileRepo) *TripLogService {
	return &TripLogService{visits: visits, profiles: profiles}
}

// Export returns one row per started or completed visit whose visit date
// falls within [from, to] (either bound optional), newest first.
func (s *TripLogService) Export(ctx context.Context, from, to *time.Time) ([]domain.TripLogRow, error) {
	names := map[domain.ProfileID]string{}
	rows := []domain.TripLogRow{}

	for _, status := range []domain.Status{domain.StatusTripStarted, domain.StatusCompleted} {
		f := domain.VisitFilter{Status: &status, From: from, To: to}
		p := domain.PaginationParams{Page: 1, Limit: domain.MaxPageLimit}
		for {
			visits, total, err := s.visits.List(ctx, f, p)
			if err != nil {
				return nil, fmt.Errorf("service.TripLogService.Export: %w", storeErr("list visits", err))
			}
			for _, v := range visits {
				row, err := s.row(ctx, v, names)
				if err != nil {
					return nil, fmt.Errorf("service.TripLogService.Export: %w", err)
				}
				rows = append(rows, row)
			}
			if !p.HasMore(total) || len(visits) == 0 {
				break
			}
			p = p.Next()
		}
	}

	slices.SortStableFunc(rows, func(a, b domain.TripLogRow) int {
		if c := b.VisitDate.Compare(a.VisitDate); c != 0 {
			return c
		}
		return cmp.Compare(b.VisitTime, a.VisitTime)
	})
	return rows, nil
}

// row flattens one visit. names caches driver lookups across the export.
func (s *TripLogService) row(ctx context.Context, v domain.Visit, names map[domain.ProfileID]string) (domain.TripLogRow, error) {
	if v.DriverID == nil || v.StartOdometer == nil {
		return domain.TripLogRow{}, fmt.Errorf("visit %s is %s without driver or start odometer", v.ID, v.Status)
	}

	name, ok := names[*v.DriverID]
	if !ok {
		p, err := s.profiles.GetByID(ctx, *v.DriverID)
		switch {
		case err == nil:
			name = p.FullName
		case errors.Is(err, domain.ErrNotFound):
			// Left blank; the id is still exported.
		default:
			return domain.TripLogRow{}, storeErr("load driver", err)
		}
		names[*v.DriverID] = name
	}

	row := domain.TripLogRow{
		VisitID:       v.ID,
		VisitDate:     v.VisitDate,
		VisitTime:     v.VisitTime,
		CustomerName:  v.CustomerName,
		RequesterID:   v.RequesterID,
		DriverID:      *v.DriverID,
		DriverName:    name,
		Status:        v.Status,
		StartOdometer: *v.StartOdometer,
		EndOdometer:   v.EndOdometer,
	}
	if d, ok := telemetry.Distance(v); ok {
		row.Distance = &d
	}
	return row, nil
}
