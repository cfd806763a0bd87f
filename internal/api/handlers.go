package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"hotel/internal/auth"
	"hotel/internal/domain"
	"hotel/internal/export"
	"hotel/internal/models"
	"hotel/internal/service"

	"github.com/julienschmidt/httprouter"
)

const msgInvalidDates = "Invalid dates"

type createRoomRequest struct {
	Number        string          `json:"number" validate:"required"`
	Name          string          `json:"name" validate:"required"`
	Type          models.RoomType `json:"type" validate:"required"`
	Description   string          `json:"description" validate:"required"`
	Capacity      int             `json:"capacity" validate:"required"`
	PricePerNight float64         `json:"pricePerNight" validate:"required"`
	ImageURL      string          `json:"imageUrl"`
	Amenities     []string        `json:"amenities"`
}

// Dates stay strings here so a malformed date is reported as such rather
// than as a broken JSON body.
type createReservationRequest struct {
	RoomID     string `json:"roomId" validate:"required"`
	CheckIn    string `json:"checkIn" validate:"required"`
	CheckOut   string `json:"checkOut" validate:"required"`
	Guests     int    `json:"guests" validate:"required"`
	GuestName  string `json:"guestName" validate:"required"`
	GuestEmail string `json:"guestEmail" validate:"required,email"`
	GuestPhone string `json:"guestPhone"`
}

func (s *HTTPServer) handleListRooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q, err := parseAvailabilityQuery(r)
	if err != nil {
		s.writeServiceError(w, r, err, "Invalid query")
		return
	}

	rooms, err := s.svc.Rooms.SearchRooms(r.Context(), q, r.URL.Query().Get("all") == "true")
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to fetch rooms")
		return
	}
	writeJSON(w, http.StatusOK, rooms)
}

// parseAvailabilityQuery reads checkIn, checkOut, capacity (or minCapacity)
// and maxPrice. Absent parameters do not filter, and neither do zero or
// negative numbers.
func parseAvailabilityQuery(r *http.Request) (service.AvailabilityQuery, error) {
	var q service.AvailabilityQuery
	values := r.URL.Query()

	for name, dst := range map[string]**models.Date{"checkIn": &q.CheckIn, "checkOut": &q.CheckOut} {
		raw := strings.TrimSpace(values.Get(name))
		if raw == "" {
			continue
		}
		d, err := models.ParseDate(raw)
		if err != nil {
			return q, domain.Validation(msgInvalidDates)
		}
		*dst = &d
	}

	rawCapacity := values.Get("capacity")
	if rawCapacity == "" {
		rawCapacity = values.Get("minCapacity")
	}
	if rawCapacity = strings.TrimSpace(rawCapacity); rawCapacity != "" {
		capacity, err := strconv.Atoi(rawCapacity)
		if err != nil {
			return q, domain.Validation("Invalid capacity")
		}
		if capacity > 0 {
			q.MinCapacity = &capacity
		}
	}

	if raw := strings.TrimSpace(values.Get("maxPrice")); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return q, domain.Validation("Invalid maxPrice")
		}
		if maxPrice > 0 {
			q.MaxPrice = &maxPrice
		}
	}
	return q, nil
}

func (s *HTTPServer) handleGetRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	room, err := s.svc.Rooms.GetRoom(r.Context(), ps.ByName("id"))
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to fetch room")
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (s *HTTPServer) handleCreateRoom(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor := auth.CurrentUser(r.Context())
	if err := service.RequireAdmin(actor); err != nil {
		s.writeServiceError(w, r, err, "Unauthorized")
		return
	}

	var req createRoomRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err, "Invalid request")
		return
	}

	room, err := s.svc.Rooms.CreateRoom(r.Context(), actor, service.CreateRoomInput{
		Number:        req.Number,
		Name:          req.Name,
		Type:          req.Type,
		Description:   req.Description,
		Capacity:      req.Capacity,
		PricePerNight: req.PricePerNight,
		ImageURL:      req.ImageURL,
		Amenities:     req.Amenities,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to create room")
		return
	}
	writeJSON(w, http.StatusCreated, room)
}

func (s *HTTPServer) handleUpdateRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := auth.CurrentUser(r.Context())
	if err := service.RequireAdmin(actor); err != nil {
		s.writeServiceError(w, r, err, "Unauthorized")
		return
	}

	var upd models.RoomUpdate
	if err := decodeJSON(r, &upd); err != nil {
		s.writeServiceError(w, r, err, "Invalid request")
		return
	}

	room, err := s.svc.Rooms.UpdateRoom(r.Context(), actor, ps.ByName("id"), upd)
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to update room")
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (s *HTTPServer) handleDeleteRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := s.svc.Rooms.DeleteRoom(r.Context(), auth.CurrentUser(r.Context()), ps.ByName("id")); err != nil {
		s.writeServiceError(w, r, err, "Failed to delete room")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *HTTPServer) handleListReservations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	all := r.URL.Query().Get("all") == "true"
	reservations, err := s.svc.Reservations.ListReservations(r.Context(), auth.CurrentUser(r.Context()), all)
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to fetch reservations")
		return
	}
	writeJSON(w, http.StatusOK, reservations)
}

func (s *HTTPServer) handleCreateReservation(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	actor := auth.CurrentUser(r.Context())
	if err := service.RequireUser(actor); err != nil {
		s.writeServiceError(w, r, err, "Unauthorized")
		return
	}

	var req createReservationRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeServiceError(w, r, err, "Invalid request")
		return
	}
	checkIn, errIn := models.ParseDate(req.CheckIn)
	checkOut, errOut := models.ParseDate(req.CheckOut)
	if errIn != nil || errOut != nil {
		writeError(w, http.StatusBadRequest, msgInvalidDates)
		return
	}

	res, err := s.svc.Reservations.CreateReservation(r.Context(), actor, service.CreateReservationInput{
		RoomID:     req.RoomID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     req.Guests,
		GuestName:  req.GuestName,
		GuestEmail: req.GuestEmail,
		GuestPhone: req.GuestPhone,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to create reservation")
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *HTTPServer) handleGetReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, err := s.svc.Reservations.GetReservation(r.Context(), auth.CurrentUser(r.Context()), ps.ByName("id"))
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to fetch reservation")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *HTTPServer) handleUpdateReservation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	actor := auth.CurrentUser(r.Context())
	if err := service.RequireUser(actor); err != nil {
		s.writeServiceError(w, r, err, "Unauthorized")
		return
	}

	var patch models.ReservationUpdate
	if err := decodeJSON(r, &patch); err != nil {
		s.writeServiceError(w, r, err, "Invalid request")
		return
	}

	res, err := s.svc.Reservations.UpdateReservation(r.Context(), actor, ps.ByName("id"), patch)
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to update reservation")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleConfirmation renders the booking confirmation as a PDF download.
func (s *HTTPServer) handleConfirmation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	res, room, err := s.svc.Reservations.GetReservationWithRoom(r.Context(), auth.CurrentUser(r.Context()), ps.ByName("id"))
	if err != nil {
		s.writeServiceError(w, r, err, "Failed to fetch reservation")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteConfirmationPDF(&buf, s.cfg.App.Name, res, room); err != nil {
		s.writeServiceError(w, r, err, "Failed to render confirmation")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="reservation-%s.pdf"`, res.ID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
