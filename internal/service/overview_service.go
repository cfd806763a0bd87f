package service

import (
	"context"

	"hotel/internal/domain"
	"hotel/internal/models"
)

type overviewStore interface {
	domain.RoomRepository
	domain.ReservationRepository
	domain.StaffRepository
}

// OverviewService builds the admin dashboard figures and report data.
type OverviewService struct {
	repo overviewStore
}

func NewOverviewService(repo overviewStore) *OverviewService {
	return &OverviewService{repo: repo}
}

// Overview counts rooms, reservations and staff. Revenue only includes
// reservations that were not cancelled.
func (s *OverviewService) Overview(ctx context.Context, actor *models.User) (*models.Overview, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}

	rooms, err := s.repo.ListRooms(ctx, false)
	if err != nil {
		return nil, err
	}
	reservations, err := s.repo.ListReservations(ctx)
	if err != nil {
		return nil, err
	}
	staff, err := s.repo.ListStaff(ctx)
	if err != nil {
		return nil, err
	}

	return Summarize(rooms, reservations, staff), nil
}

func Summarize(rooms []*models.Room, reservations []*models.Reservation, staff []*models.Staff) *models.Overview {
	ov := &models.Overview{
		TotalRooms:        len(rooms),
		TotalReservations: len(reservations),
		TotalStaff:        len(staff),
	}
	for _, r := range rooms {
		if r.Available {
			ov.AvailableRooms++
		}
	}
	for _, r := range reservations {
		switch r.Status {
		case models.StatusPending:
			ov.PendingReservations++
		case models.StatusConfirmed:
			ov.ConfirmedReservations++
		}
		if r.Active() {
			ov.TotalRevenue += r.TotalPrice
		}
	}
	for _, m := range staff {
		if m.Active {
			ov.ActiveStaff++
		}
	}
	return ov
}

// Report is the data behind the reservations spreadsheet export.
type Report struct {
	Reservations []*models.Reservation
	Rooms        map[string]*models.Room
	Overview     *models.Overview
}

func (s *OverviewService) ReservationReport(ctx context.Context, actor *models.User) (*Report, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}

	rooms, err := s.repo.ListRooms(ctx, false)
	if err != nil {
		return nil, err
	}
	reservations, err := s.repo.ListReservations(ctx)
	if err != nil {
		return nil, err
	}
	staff, err := s.repo.ListStaff(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Room, len(rooms))
	for _, r := range rooms {
		byID[r.ID] = r
	}
	return &Report{
		Reservations: reservations,
		Rooms:        byID,
		Overview:     Summarize(rooms, reservations, staff),
	}, nil
}
