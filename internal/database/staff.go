package database

import (
	"context"
	"fmt"
	"time"

	"hotel/internal/models"

	"github.com/google/uuid"
)

const staffColumns = `id, user_id, name, email, phone, position, department, hire_date, active, created_at, updated_at`

func scanStaff(s rowScanner) (*models.Staff, error) {
	var (
		st       models.Staff
		hireDate string
	)
	err := s.Scan(&st.ID, &st.UserID, &st.Name, &st.Email, &st.Phone, &st.Position, &st.Department,
		&hireDate, &st.Active, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if st.HireDate, err = models.ParseDate(hireDate); err != nil {
		return nil, fmt.Errorf("staff %s: %w", st.ID, err)
	}
	return &st, nil
}

func (db *DB) ListStaff(ctx context.Context) ([]*models.Staff, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+staffColumns+` FROM staff ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	defer rows.Close()

	members := make([]*models.Staff, 0)
	for rows.Next() {
		st, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		members = append(members, st)
	}
	return members, rows.Err()
}

func (db *DB) GetStaff(ctx context.Context, id string) (*models.Staff, error) {
	st, err := scanStaff(db.QueryRowContext(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = ?`, id))
	if err != nil {
		return nil, translate(err)
	}
	return st, nil
}

func (db *DB) CreateStaff(ctx context.Context, st *models.Staff) error {
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	now := time.Now().UTC()

	query := `INSERT INTO staff (` + staffColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query,
		st.ID, st.UserID, st.Name, st.Email, st.Phone, st.Position, st.Department,
		st.HireDate.String(), st.Active, now, now)
	if err != nil {
		return fmt.Errorf("failed to create staff: %w", translate(err))
	}
	st.CreatedAt = now
	st.UpdatedAt = now
	return nil
}

func (db *DB) UpdateStaff(ctx context.Context, id string, upd models.StaffUpdate) (*models.Staff, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	st, err := scanStaff(tx.QueryRowContext(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = ?`, id))
	if err != nil {
		return nil, translate(err)
	}
	upd.Apply(st)
	st.UpdatedAt = time.Now().UTC()

	query := `UPDATE staff SET user_id = ?, name = ?, email = ?, phone = ?, position = ?, department = ?,
              hire_date = ?, active = ?, updated_at = ? WHERE id = ?`
	_, err = tx.ExecContext(ctx, query,
		st.UserID, st.Name, st.Email, st.Phone, st.Position, st.Department,
		st.HireDate.String(), st.Active, st.UpdatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update staff: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit staff update: %w", err)
	}
	return st, nil
}

func (db *DB) DeleteStaff(ctx context.Context, id string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM staff WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete staff: %w", err)
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
