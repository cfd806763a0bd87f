package models

import "time"

type Room struct {
	ID            string    `json:"id" yaml:"id"`
	Number        string    `json:"number" yaml:"number"`
	Name          string    `json:"name" yaml:"name"`
	Type          RoomType  `json:"type" yaml:"type"`
	Description   string    `json:"description" yaml:"description"`
	Capacity      int       `json:"capacity" yaml:"capacity"`
	PricePerNight float64   `json:"pricePerNight" yaml:"price_per_night"`
	ImageURL      string    `json:"imageUrl" yaml:"image_url"`
	Amenities     []string  `json:"amenities" yaml:"amenities"`
	Available     bool      `json:"available" yaml:"available"`
	CreatedAt     time.Time `json:"createdAt" yaml:"-"`
	UpdatedAt     time.Time `json:"updatedAt" yaml:"-"`
}

// RoomUpdate carries only the fields an administrator changed.
type RoomUpdate struct {
	Number        *string   `json:"number,omitempty"`
	Name          *string   `json:"name,omitempty"`
	Type          *RoomType `json:"type,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Capacity      *int      `json:"capacity,omitempty"`
	PricePerNight *float64  `json:"pricePerNight,omitempty"`
	ImageURL      *string   `json:"imageUrl,omitempty"`
	Amenities     *[]string `json:"amenities,omitempty"`
	Available     *bool     `json:"available,omitempty"`
}

// Apply copies the present fields onto r.
func (u RoomUpdate) Apply(r *Room) {
	if u.Number != nil {
		r.Number = *u.Number
	}
	if u.Name != nil {
		r.Name = *u.Name
	}
	if u.Type != nil {
		r.Type = *u.Type
	}
	if u.Description != nil {
		r.Description = *u.Description
	}
	if u.Capacity != nil {
		r.Capacity = *u.Capacity
	}
	if u.PricePerNight != nil {
		r.PricePerNight = *u.PricePerNight
	}
	if u.ImageURL != nil {
		r.ImageURL = *u.ImageURL
	}
	if u.Amenities != nil {
		r.Amenities = append([]string(nil), (*u.Amenities)...)
	}
	if u.Available != nil {
		r.Available = *u.Available
	}
}
