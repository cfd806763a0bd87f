package database

import (
	"database/sql"
	"errors"
	"fmt"

	"hotel/internal/domain"

	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound  = fmt.Errorf("record not found: %w", domain.ErrNotFound)
	ErrDuplicate = fmt.Errorf("duplicate record: %w", domain.ErrConflict)
	// ErrOverlap is returned by CreateReservationWithLock when the room is taken.
	ErrOverlap = fmt.Errorf("room already reserved for these dates: %w", domain.ErrConflict)
)

// translate maps driver errors onto the package sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return ErrDuplicate
	}
	return err
}
