package database

import (
	"context"
	"fmt"
	"time"

	"hotel/internal/models"
)

// SeedResult reports how many demo records were inserted.
type SeedResult struct {
	Users        int `json:"users"`
	Rooms        int `json:"rooms"`
	Reservations int `json:"reservations"`
	Staff        int `json:"staff"`
}

type seedUser struct {
	user     models.User
	password string
}

func demoUsers() []seedUser {
	return []seedUser{
		{models.User{ID: "user-1", Name: "Jan Kowalski", Email: "jan@example.com", Role: models.RoleUser, Phone: "+48 500 100 200"}, "password123"},
		{models.User{ID: "user-2", Name: "Anna Nowak", Email: "anna@example.com", Role: models.RoleAdmin, Phone: "+48 500 300 400"}, "admin123"},
		{models.User{ID: "user-3", Name: "Piotr Wisniewski", Email: "piotr@example.com", Role: models.RoleStaff, Phone: "+48 500 500 600"}, "staff123"},
		{models.User{ID: "user-4", Name: "Maria Zielinska", Email: "maria@example.com", Role: models.RoleUser, Phone: "+48 500 700 800"}, "password123"},
	}
}

func demoRooms() []models.Room {
	basic := []string{"Wi-Fi", "TV", "Air Conditioning", "Mini Bar", "Safe"}
	premium := append(append([]string{}, basic...), "Balcony", "Room Service", "Jacuzzi", "Kitchen")
	return []models.Room{
		{
			ID: "room-1", Number: "101", Name: "Classic Single", Type: models.RoomSingle,
			Description: "A cozy single room with a comfortable bed, work desk, and modern bathroom. " +
				"Perfect for solo travelers on business or leisure trips.",
			Capacity: 1, PricePerNight: 250, ImageURL: "/rooms/single.jpg", Amenities: basic, Available: true,
		},
		{
			ID: "room-2", Number: "205", Name: "Premium Double", Type: models.RoomDouble,
			Description: "Spacious double room with a king-size bed, seating area, and panoramic city views. " +
				"Ideal for couples seeking comfort and style.",
			Capacity: 2, PricePerNight: 420, ImageURL: "/rooms/double.jpg",
			Amenities: append(append([]string{}, basic...), "Balcony", "Room Service"), Available: true,
		},
		{
			ID: "room-3", Number: "310", Name: "Executive Suite", Type: models.RoomSuite,
			Description: "Luxurious suite with a separate living area, premium furnishings, and exclusive amenities. " +
				"The perfect retreat for distinguished guests.",
			Capacity: 3, PricePerNight: 780, ImageURL: "/rooms/suite.jpg", Amenities: premium, Available: true,
		},
		{
			ID: "room-4", Number: "401", Name: "Royal Deluxe", Type: models.RoomDeluxe,
			Description: "Our finest room featuring a master bedroom, luxury bathroom with marble finishes, " +
				"and a private terrace. An unparalleled experience.",
			Capacity: 4, PricePerNight: 1200, ImageURL: "/rooms/deluxe.jpg",
			Amenities: append(append([]string{}, premium...), "Private Terrace", "Butler Service"), Available: true,
		},
		{
			ID: "room-5", Number: "102", Name: "Comfort Single", Type: models.RoomSingle,
			Description: "A well-appointed single room with modern amenities and a garden view. " +
				"Great value for comfortable stays.",
			Capacity: 1, PricePerNight: 220, ImageURL: "/rooms/single2.jpg",
			Amenities: []string{"Wi-Fi", "TV", "Air Conditioning", "Safe"}, Available: true,
		},
		{
			ID: "room-6", Number: "208", Name: "Garden Double", Type: models.RoomDouble,
			Description: "Charming double room overlooking our landscaped gardens. " +
				"Features a queen-size bed and a relaxing atmosphere.",
			Capacity: 2, PricePerNight: 380, ImageURL: "/rooms/double2.jpg",
			Amenities: append(append([]string{}, basic...), "Garden View"), Available: false,
		},
	}
}

func demoReservations() []models.Reservation {
	return []models.Reservation{
		{
			ID: "res-1", UserID: "user-1", RoomID: "room-2",
			CheckIn: models.NewDate(2026, time.March, 1), CheckOut: models.NewDate(2026, time.March, 5),
			Guests: 2, Status: models.StatusConfirmed, TotalPrice: 1680,
			GuestName: "Jan Kowalski", GuestEmail: "jan@example.com", GuestPhone: "+48 500 100 200",
		},
		{
			ID: "res-2", UserID: "user-4", RoomID: "room-3",
			CheckIn: models.NewDate(2026, time.March, 10), CheckOut: models.NewDate(2026, time.March, 14),
			Guests: 2, Status: models.StatusPending, TotalPrice: 3120,
			GuestName: "Maria Zielinska", GuestEmail: "maria@example.com", GuestPhone: "+48 500 700 800",
		},
		{
			ID: "res-3", UserID: "user-1", RoomID: "room-1",
			CheckIn: models.NewDate(2026, time.February, 15), CheckOut: models.NewDate(2026, time.February, 18),
			Guests: 1, Status: models.StatusCancelled, TotalPrice: 750,
			GuestName: "Jan Kowalski", GuestEmail: "jan@example.com", GuestPhone: "+48 500 100 200",
		},
	}
}

func demoStaff() []models.Staff {
	return []models.Staff{
		{ID: "staff-1", UserID: "user-3", Name: "Piotr Wisniewski", Email: "piotr@example.com", Phone: "+48 500 500 600",
			Position: "Receptionist", Department: "Front Desk", HireDate: models.NewDate(2024, time.June, 15), Active: true},
		{ID: "staff-2", UserID: "user-2", Name: "Anna Nowak", Email: "anna@example.com", Phone: "+48 500 300 400",
			Position: "Hotel Manager", Department: "Management", HireDate: models.NewDate(2023, time.January, 10), Active: true},
		{ID: "staff-3", Name: "Katarzyna Dabrowska", Email: "kasia@example.com", Phone: "+48 500 900 100",
			Position: "Housekeeper", Department: "Housekeeping", HireDate: models.NewDate(2024, time.September, 1), Active: true},
		{ID: "staff-4", Name: "Tomasz Lewandowski", Email: "tomasz@example.com", Phone: "+48 500 200 300",
			Position: "Concierge", Department: "Guest Services", HireDate: models.NewDate(2025, time.February, 20), Active: false},
	}
}

// Seed loads the demo dataset. Records that already exist are left untouched,
// so seeding twice is harmless. hash turns the demo passwords into stored hashes.
func (db *DB) Seed(ctx context.Context, hash func(string) (string, error)) (*SeedResult, error) {
	users := demoUsers()
	hashes := make([]string, len(users))
	for i, u := range users {
		h, err := hash(u.password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password for %s: %w", u.user.Email, err)
		}
		hashes[i] = h
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().UTC()
	result := &SeedResult{}

	insert := func(counter *int, query string, args ...interface{}) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		*counter += int(n)
		return nil
	}

	for i, su := range users {
		u := su.user
		err := insert(&result.Users, `INSERT OR IGNORE INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			u.ID, u.Name, u.Email, u.Role, u.Phone, hashes[i], now, now)
		if err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", u.Email, err)
		}
	}

	for _, r := range demoRooms() {
		amenities, err := encodeAmenities(r.Amenities)
		if err != nil {
			return nil, err
		}
		err = insert(&result.Rooms, `INSERT OR IGNORE INTO rooms (`+roomColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Number, r.Name, r.Type, r.Description, r.Capacity, r.PricePerNight, r.ImageURL, amenities, r.Available, now, now)
		if err != nil {
			return nil, fmt.Errorf("failed to seed room %s: %w", r.Number, err)
		}
	}

	for _, r := range demoReservations() {
		err := insert(&result.Reservations, `INSERT OR IGNORE INTO reservations (`+reservationColumns+`)
                VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.UserID, r.RoomID, r.CheckIn.String(), r.CheckOut.String(), r.Guests, r.Status,
			r.GuestName, r.GuestEmail, r.GuestPhone, r.TotalPrice, now, now)
		if err != nil {
			return nil, fmt.Errorf("failed to seed reservation %s: %w", r.ID, err)
		}
	}

	for _, s := range demoStaff() {
		err := insert(&result.Staff, `INSERT OR IGNORE INTO staff (`+staffColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID, s.UserID, s.Name, s.Email, s.Phone, s.Position, s.Department, s.HireDate.String(), s.Active, now, now)
		if err != nil {
			return nil, fmt.Errorf("failed to seed staff %s: %w", s.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit seed: %w", err)
	}

	db.logger.Info().
		Int("users", result.Users).
		Int("rooms", result.Rooms).
		Int("reservations", result.Reservations).
		Int("staff", result.Staff).
		Msg("demo data seeded")
	return result, nil
}
