package service

import (
	"math"
	"time"

	"hotel/internal/models"
)

// AvailabilityQuery narrows the room search. Nil fields do not filter.
type AvailabilityQuery struct {
	CheckIn     *models.Date
	CheckOut    *models.Date
	MinCapacity *int
	MaxPrice    *float64
}

// hasDates reports whether both ends of the stay were given; a single date
// does not filter.
func (q AvailabilityQuery) hasDates() bool {
	return q.CheckIn != nil && q.CheckOut != nil && !q.CheckIn.IsZero() && !q.CheckOut.IsZero()
}

// Overlaps reports whether [aIn, aOut) and [bIn, bOut) share a night.
// Touching endpoints do not overlap.
func Overlaps(aIn, aOut, bIn, bOut models.Date) bool {
	return aIn.Before(bOut.Time) && aOut.After(bIn.Time)
}

// Nights counts whole nights between check-in and check-out, rounding up.
func Nights(checkIn, checkOut models.Date) int {
	d := checkOut.Sub(checkIn.Time)
	return int(math.Ceil(float64(d) / float64(24*time.Hour)))
}

// FindAvailableRooms filters catalog down to bookable rooms, keeping catalog order.
// reservations may contain any status; cancelled ones never block a room.
func FindAvailableRooms(catalog []*models.Room, reservations []*models.Reservation, q AvailabilityQuery) []*models.Room {
	blocked := make(map[string]struct{})
	if q.hasDates() {
		for _, r := range reservations {
			if r.Active() && Overlaps(r.CheckIn, r.CheckOut, *q.CheckIn, *q.CheckOut) {
				blocked[r.RoomID] = struct{}{}
			}
		}
	}

	result := make([]*models.Room, 0, len(catalog))
	for _, room := range catalog {
		if !room.Available {
			continue
		}
		if q.MinCapacity != nil && room.Capacity < *q.MinCapacity {
			continue
		}
		if q.MaxPrice != nil && room.PricePerNight > *q.MaxPrice {
			continue
		}
		if _, ok := blocked[room.ID]; ok {
			continue
		}
		result = append(result, room)
	}
	return result
}
