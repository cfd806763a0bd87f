package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hotel/internal/models"

	"github.com/google/uuid"
)

const reservationColumns = `id, user_id, room_id, check_in, check_out, guests, status,
        guest_name, guest_email, guest_phone, total_price, created_at, updated_at`

func scanReservation(s rowScanner) (*models.Reservation, error) {
	var (
		r                 models.Reservation
		checkIn, checkOut string
	)
	err := s.Scan(
		&r.ID, &r.UserID, &r.RoomID, &checkIn, &checkOut, &r.Guests, &r.Status,
		&r.GuestName, &r.GuestEmail, &r.GuestPhone, &r.TotalPrice, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if r.CheckIn, err = models.ParseDate(checkIn); err != nil {
		return nil, fmt.Errorf("reservation %s: %w", r.ID, err)
	}
	if r.CheckOut, err = models.ParseDate(checkOut); err != nil {
		return nil, fmt.Errorf("reservation %s: %w", r.ID, err)
	}
	return &r, nil
}

func (db *DB) queryReservations(ctx context.Context, query string, args ...interface{}) ([]*models.Reservation, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()

	reservations := make([]*models.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

// ListReservations returns every reservation, newest first.
func (db *DB) ListReservations(ctx context.Context) ([]*models.Reservation, error) {
	return db.queryReservations(ctx,
		`SELECT `+reservationColumns+` FROM reservations ORDER BY created_at DESC, id`)
}

func (db *DB) ListReservationsByUser(ctx context.Context, userID string) ([]*models.Reservation, error) {
	return db.queryReservations(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE user_id = ? ORDER BY created_at DESC, id`, userID)
}

// ListActiveReservations returns reservations that still block their room.
func (db *DB) ListActiveReservations(ctx context.Context) ([]*models.Reservation, error) {
	return db.queryReservations(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE status != ? ORDER BY check_in`, models.StatusCancelled)
}

func (db *DB) GetReservation(ctx context.Context, id string) (*models.Reservation, error) {
	row := db.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id)
	res, err := scanReservation(row)
	if err != nil {
		return nil, translate(err)
	}
	return res, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func insertReservation(ctx context.Context, ex execer, res *models.Reservation) error {
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	now := time.Now().UTC()

	query := `INSERT INTO reservations (` + reservationColumns + `)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := ex.ExecContext(ctx, query,
		res.ID, res.UserID, res.RoomID, res.CheckIn.String(), res.CheckOut.String(), res.Guests, res.Status,
		res.GuestName, res.GuestEmail, res.GuestPhone, res.TotalPrice, now, now,
	)
	if err != nil {
		return translate(err)
	}
	res.CreatedAt = now
	res.UpdatedAt = now
	return nil
}

func (db *DB) CreateReservation(ctx context.Context, res *models.Reservation) error {
	if err := insertReservation(ctx, db, res); err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

func (db *DB) CreateReservationWithLock(ctx context.Context, res *models.Reservation) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 1. Check overlap inside transaction (half-open intervals)
	var overlapping int
	queryCount := `SELECT COUNT(*) FROM reservations
                   WHERE room_id = ? AND status != ? AND check_in < ? AND check_out > ?`
	err = tx.QueryRowContext(ctx, queryCount,
		res.RoomID, models.StatusCancelled, res.CheckOut.String(), res.CheckIn.String()).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("failed to check overlap in tx: %w", err)
	}
	if overlapping > 0 {
		return ErrOverlap
	}

	// 2. Create reservation
	if err := insertReservation(ctx, tx, res); err != nil {
		return fmt.Errorf("failed to insert reservation in tx: %w", err)
	}

	return tx.Commit()
}

// UpdateReservation applies a patch. Dates and total price are never touched.
func (db *DB) UpdateReservation(ctx context.Context, id string, upd models.ReservationUpdate) (*models.Reservation, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	res, err := scanReservation(tx.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id))
	if err != nil {
		return nil, translate(err)
	}
	upd.Apply(res)
	res.UpdatedAt = time.Now().UTC()

	query := `UPDATE reservations SET status = ?, guests = ?, guest_name = ?, guest_email = ?, guest_phone = ?, updated_at = ?
              WHERE id = ?`
	_, err = tx.ExecContext(ctx, query,
		res.Status, res.Guests, res.GuestName, res.GuestEmail, res.GuestPhone, res.UpdatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reservation update: %w", err)
	}
	return res, nil
}
