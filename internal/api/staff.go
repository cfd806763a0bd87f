package api

import (
	"net/http"

	"hotel/internal/auth"
	"hotel/internal/models"
	"hotel/internal/service"

	"github.com/julienschmidt/httprouter"
)

type createStaffRequest struct {
	UserID     string       `json:"userId"`
	Name       string       `json:"name" validate:"required"`
	Email      string       `json:"email" validate:"required,email"`
	Phone      string       `json:"phone"`
	Position   string       `json:"position" validate:"required"`
	Department string       `json:"department" validate:"required"`
	HireDate   *models.Date `json:"hireDate"`
	Active     *bool        `json:"active"`
}

func (s *HTTPServer) handleListStaff(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	staff, err := s.svc.Staff.ListStaff(r.Context(), auth.CurrentUser(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to fetch staff")
		return
	}
	writeJSON(w, http.StatusOK, staff)
}

func (s *HTTPServer) handleGetStaff(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	st, err := s.svc.Staff.GetStaff(r.Context(), auth.CurrentUser(r.Context()), ps.ByName("id"))
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to fetch staff member")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *HTTPServer) handleCreateStaff(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor := auth.CurrentUser(r.Context())
	if err := service.RequireAdmin(actor); err != nil {
		s.writeServiceError(w, r, err, "Unauthorized")
		return
	}

	var req createStaffRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err, "Invalid request")
		return
	}

	st, err := s.svc.Staff.CreateStaff(r.Context(), actor, service.CreateStaffInput{
		UserID:     req.UserID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Position:   req.Position,
		Department: req.Department,
		HireDate:   req.HireDate,
		Active:     req.Active,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to create staff member")
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (s *HTTPServer) handleUpdateStaff(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := auth.CurrentUser(r.Context())
	if err := service.RequireAdmin(actor); err != nil {
		s.writeServiceError(w, r, err, "Unauthorized")
		return
	}

	var patch models.StaffUpdate
	if err := decodeJSON(r, &patch); err != nil {
		s.writeServiceError(w, r, err, "Invalid request")
		return
	}

	st, err := s.svc.Staff.UpdateStaff(r.Context(), actor, ps.ByName("id"), patch)
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to update staff member")
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *HTTPServer) handleDeleteStaff(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := s.svc.Staff.DeleteStaff(r.Context(), auth.CurrentUser(r.Context()), ps.ByName("id")); err != nil {
		s.writeServiceError(w, r, err, "Failed to delete staff member")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
