package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hotel/internal/models"

	"github.com/google/uuid"
)

const roomColumns = `id, number, name, type, description, capacity, price_per_night, image_url, amenities, available, created_at, updated_at`

func scanRoom(s rowScanner) (*models.Room, error) {
	var (
		r         models.Room
		amenities string
	)
	err := s.Scan(
		&r.ID, &r.Number, &r.Name, &r.Type, &r.Description, &r.Capacity,
		&r.PricePerNight, &r.ImageURL, &amenities, &r.Available, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(amenities), &r.Amenities); err != nil {
		return nil, fmt.Errorf("failed to decode amenities for room %s: %w", r.ID, err)
	}
	if r.Amenities == nil {
		r.Amenities = []string{}
	}
	return &r, nil
}

func encodeAmenities(a []string) (string, error) {
	if a == nil {
		a = []string{}
	}
	b, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("failed to encode amenities: %w", err)
	}
	return string(b), nil
}

// ListRooms returns rooms ordered by number. With onlyAvailable the result is
// limited to rooms open for booking.
func (db *DB) ListRooms(ctx context.Context, onlyAvailable bool) ([]*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms`
	if onlyAvailable {
		query += ` WHERE available = 1`
	}
	query += ` ORDER BY number`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	rooms := make([]*models.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (db *DB) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	row := db.QueryRowContext(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = ?`, id)
	room, err := scanRoom(row)
	if err != nil {
		return nil, translate(err)
	}
	return room, nil
}

// GetRoomByNumber is used by the catalog importer to upsert rooms.
func (db *DB) GetRoomByNumber(ctx context.Context, number string) (*models.Room, error) {
	row := db.QueryRowContext(ctx, `SELECT `+roomColumns+` FROM rooms WHERE number = ?`, number)
	room, err := scanRoom(row)
	if err != nil {
		return nil, translate(err)
	}
	return room, nil
}

func (db *DB) CreateRoom(ctx context.Context, room *models.Room) error {
	amenities, err := encodeAmenities(room.Amenities)
	if err != nil {
		return err
	}
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	now := time.Now().UTC()

	query := `INSERT INTO rooms (` + roomColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = db.ExecContext(ctx, query,
		room.ID, room.Number, room.Name, room.Type, room.Description, room.Capacity,
		room.PricePerNight, room.ImageURL, amenities, room.Available, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", translate(err))
	}
	room.CreatedAt = now
	room.UpdatedAt = now
	return nil
}

// UpdateRoom applies upd to the stored room and returns the result.
func (db *DB) UpdateRoom(ctx context.Context, id string, upd models.RoomUpdate) (*models.Room, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	room, err := scanRoom(tx.QueryRowContext(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = ?`, id))
	if err != nil {
		return nil, translate(err)
	}
	upd.Apply(room)

	amenities, err := encodeAmenities(room.Amenities)
	if err != nil {
		return nil, err
	}
	room.UpdatedAt = time.Now().UTC()

	query := `UPDATE rooms SET number = ?, name = ?, type = ?, description = ?, capacity = ?,
              price_per_night = ?, image_url = ?, amenities = ?, available = ?, updated_at = ?
              WHERE id = ?`
	_, err = tx.ExecContext(ctx, query,
		room.Number, room.Name, room.Type, room.Description, room.Capacity,
		room.PricePerNight, room.ImageURL, amenities, room.Available, room.UpdatedAt, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update room: %w", translate(err))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit room update: %w", err)
	}
	return room, nil
}

func (db *DB) DeleteRoom(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
