package models

import "time"

type Staff struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Position   string    `json:"position"`
	Department string    `json:"department"`
	HireDate   Date      `json:"hireDate"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type StaffUpdate struct {
	UserID     *string `json:"userId,omitempty"`
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Position   *string `json:"position,omitempty"`
	Department *string `json:"department,omitempty"`
	HireDate   *Date   `json:"hireDate,omitempty"`
	Active     *bool   `json:"active,omitempty"`
}

func (u StaffUpdate) Apply(s *Staff) {
	if u.UserID != nil {
		s.UserID = *u.UserID
	}
	if u.Name != nil {
		s.Name = *u.Name
	}
	if u.Email != nil {
		s.Email = *u.Email
	}
	if u.Phone != nil {
		s.Phone = *u.Phone
	}
	if u.Position != nil {
		s.Position = *u.Position
	}
	if u.Department != nil {
		s.Department = *u.Department
	}
	if u.HireDate != nil {
		s.HireDate = *u.HireDate
	}
	if u.Active != nil {
		s.Active = *u.Active
	}
}
