package service

import (
	"context"
	"strings"
	"time"

	"hotel/internal/domain"
	"hotel/internal/models"

	"github.com/rs/zerolog"
)

const msgStaffNotFound = "Staff member not found"

type StaffService struct {
	staff  domain.StaffRepository
	logger *zerolog.Logger
	now    func() time.Time
}

func NewStaffService(staff domain.StaffRepository, logger *zerolog.Logger) *StaffService {
	return &StaffService{
		staff:  staff,
		logger: logger,
		now:    time.Now,
	}
}

type CreateStaffInput struct {
	UserID     string
	Name       string
	Email      string
	Phone      string
	Position   string
	Department string
	HireDate   *models.Date
	Active     *bool
}

func (s *StaffService) ListStaff(ctx context.Context, actor *models.User) ([]*models.Staff, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	return s.staff.ListStaff(ctx)
}

func (s *StaffService) GetStaff(ctx context.Context, actor *models.User, id string) (*models.Staff, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	st, err := s.staff.GetStaff(ctx, id)
	if err != nil {
		return nil, notFound(err, msgStaffNotFound)
	}
	return st, nil
}

// CreateStaff hires someone today and marks them active unless told otherwise.
func (s *StaffService) CreateStaff(ctx context.Context, actor *models.User, in CreateStaffInput) (*models.Staff, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}

	st := &models.Staff{
		UserID:     strings.TrimSpace(in.UserID),
		Name:       strings.TrimSpace(in.Name),
		Email:      strings.TrimSpace(in.Email),
		Phone:      strings.TrimSpace(in.Phone),
		Position:   strings.TrimSpace(in.Position),
		Department: strings.TrimSpace(in.Department),
		Active:     true,
	}
	if st.Name == "" || st.Email == "" || st.Position == "" || st.Department == "" {
		return nil, domain.Validation(MsgMissingFields)
	}

	if in.HireDate != nil && !in.HireDate.IsZero() {
		st.HireDate = *in.HireDate
	} else {
		y, m, d := s.now().Date()
		st.HireDate = models.NewDate(y, m, d)
	}
	if in.Active != nil {
		st.Active = *in.Active
	}

	if err := s.staff.CreateStaff(ctx, st); err != nil {
		return nil, err
	}

	s.logger.Info().Str("staff_id", st.ID).Str("by", actor.ID).Msg("staff member created")
	return st, nil
}

func (s *StaffService) UpdateStaff(ctx context.Context, actor *models.User, id string, patch models.StaffUpdate) (*models.Staff, error) {
	if err := RequireAdmin(actor); err != nil {
		return nil, err
	}
	for _, field := range []*string{patch.Name, patch.Email, patch.Position, patch.Department} {
		if field != nil && strings.TrimSpace(*field) == "" {
			return nil, domain.Validation(MsgMissingFields)
		}
	}

	st, err := s.staff.UpdateStaff(ctx, id, patch)
	if err != nil {
		return nil, notFound(err, msgStaffNotFound)
	}
	return st, nil
}

func (s *StaffService) DeleteStaff(ctx context.Context, actor *models.User, id string) error {
	if err := RequireAdmin(actor); err != nil {
		return err
	}
	if err := s.staff.DeleteStaff(ctx, id); err != nil {
		return notFound(err, msgStaffNotFound)
	}
	s.logger.Info().Str("staff_id", id).Str("by", actor.ID).Msg("staff member deleted")
	return nil
}
