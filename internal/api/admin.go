package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"hotel/internal/auth"
	"hotel/internal/database"
	"hotel/internal/export"
	"hotel/internal/logging"
	"hotel/internal/service"

	"github.com/julienschmidt/httprouter"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type seedResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message"`
	Counts  *database.SeedResult `json:"counts"`
}

// OnSeed registers fn to run after a successful seed, e.g. to push the new
// reservations to the spreadsheet mirror.
func (s *HTTPServer) OnSeed(fn func(ctx context.Context) error) {
	s.afterSeed = fn
}

func (s *HTTPServer) handleOverview(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ov, err := s.svc.Overview.Overview(r.Context(), auth.CurrentUser(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to build overview")
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

func (s *HTTPServer) handleListUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	users, err := s.svc.Users.ListUsers(r.Context(), auth.CurrentUser(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to fetch users")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *HTTPServer) handleExportReservations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	report, err := s.svc.Overview.ReservationReport(r.Context(), auth.CurrentUser(r.Context()))
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to build report")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteReservationsXLSX(&buf, report.Reservations, report.Rooms, report.Overview); err != nil {
		s.writeServiceError(w, r, err, "Failed to export reservations")
		return
	}

	filename := fmt.Sprintf("reservations-%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// handleSeed loads the demo dataset. It is open to anyone while the store
// has no users, so a fresh install can bootstrap its first admin.
func (s *HTTPServer) handleSeed(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !s.cfg.API.SeedEnabled {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	actor := auth.CurrentUser(r.Context())
	if !actor.IsAdmin() {
		count, err := s.svc.Users.CountUsers(r.Context())
		if err != nil {
			s.writeServiceError(w, r, err, "Failed to seed database")
			return
		}
		if count > 0 {
			s.writeServiceError(w, r, service.RequireAdmin(actor), "Unauthorized")
			return
		}
	}

	counts, err := s.db.Seed(r.Context(), auth.HashPassword)
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to seed database")
		return
	}

	log := logging.FromContext(r.Context(), s.log)
	log.Info().Interface("counts", counts).Msg("database seeded")
	if s.afterSeed != nil {
		if err := s.afterSeed(r.Context()); err != nil {
			log.Warn().Err(err).Msg("post-seed hook failed")
		}
	}

	writeJSON(w, http.StatusOK, seedResponse{
		Success: true,
		Message: "Database seeded successfully",
		Counts:  counts,
	})
}
