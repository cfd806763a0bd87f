package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Date is a calendar day without a time component. It marshals as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts YYYY-MM-DD and, for clients that send full timestamps, RFC3339.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	y, m, d := t.UTC().Date()
	return NewDate(y, m, d), nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Overview aggregates dashboard figures for administrators.
type Overview struct {
	TotalRooms            int     `json:"totalRooms"`
	AvailableRooms        int     `json:"availableRooms"`
	TotalReservations     int     `json:"totalReservations"`
	PendingReservations   int     `json:"pendingReservations"`
	ConfirmedReservations int     `json:"confirmedReservations"`
	TotalStaff            int     `json:"totalStaff"`
	ActiveStaff           int     `json:"activeStaff"`
	TotalRevenue          float64 `json:"totalRevenue"`
}
