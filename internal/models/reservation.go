package models

import "time"

type Reservation struct {
	ID         string            `json:"id"`
	UserID     string            `json:"userId"`
	RoomID     string            `json:"roomId"`
	CheckIn    Date              `json:"checkIn"`
	CheckOut   Date              `json:"checkOut"`
	Guests     int               `json:"guests"`
	Status     ReservationStatus `json:"status"`
	GuestName  string            `json:"guestName"`
	GuestEmail string            `json:"guestEmail"`
	GuestPhone string            `json:"guestPhone"`
	TotalPrice float64           `json:"totalPrice"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// Active reports whether the reservation still holds its room.
func (r *Reservation) Active() bool {
	return r.Status != StatusCancelled
}

// ReservationUpdate is a typed patch. Dates and price are not patchable.
type ReservationUpdate struct {
	Status     *ReservationStatus `json:"status,omitempty"`
	Guests     *int               `json:"guests,omitempty"`
	GuestName  *string            `json:"guestName,omitempty"`
	GuestEmail *string            `json:"guestEmail,omitempty"`
	GuestPhone *string            `json:"guestPhone,omitempty"`
}

func (u ReservationUpdate) Empty() bool {
	return u.Status == nil && u.Guests == nil && u.GuestName == nil && u.GuestEmail == nil && u.GuestPhone == nil
}

func (u ReservationUpdate) Apply(r *Reservation) {
	if u.Status != nil {
		r.Status = *u.Status
	}
	if u.Guests != nil {
		r.Guests = *u.Guests
	}
	if u.GuestName != nil {
		r.GuestName = *u.GuestName
	}
	if u.GuestEmail != nil {
		r.GuestEmail = *u.GuestEmail
	}
	if u.GuestPhone != nil {
		r.GuestPhone = *u.GuestPhone
	}
}
