package models

type Role string

const (
	RoleUser  Role = "USER"
	RoleStaff Role = "STAFF"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "PENDING"
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCancelled ReservationStatus = "CANCELLED"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

type RoomType string

const (
	RoomSingle RoomType = "SINGLE"
	RoomDouble RoomType = "DOUBLE"
	RoomSuite  RoomType = "SUITE"
	RoomDeluxe RoomType = "DELUXE"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomSingle, RoomDouble, RoomSuite, RoomDeluxe:
		return true
	}
	return false
}

const (
	// DateLayout is the calendar date format used on the wire and in storage.
	DateLayout = "2006-01-02"

	// DefaultRoomImage is assigned to rooms created without an image.
	DefaultRoomImage = "/rooms/default.jpg"

	// SessionCookieName holds the signed session token.
	SessionCookieName = "hotel-current-user"

	// DefaultSessionTTL is one week in seconds.
	DefaultSessionTTL = 7 * 24 * 60 * 60

	// LoginAttemptsLimit is the number of login attempts per email within LoginAttemptsWindow.
	LoginAttemptsLimit = 10

	// LoginAttemptsWindow in seconds.
	LoginAttemptsWindow = 15 * 60

	// BcryptCost matches the cost used for seeded accounts.
	BcryptCost = 10
)
