package repository

import (
	"context"
	"time"

	"github.com/gestione-turni/backend/internal/domain"
)

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	query := `
		SELECT name, start_time::text, end_time::text, sort_order, notes, created_at, version
		FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	shift := &domain.Shift{
		ID: id,
	}

	dst := []any{&shift.Name, &shift.StartTime, &shift.EndTime, &shift.SortOrder, &shift.Notes, &shift.CreatedAt, &shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return shift, nil
}

// GetAllShifts returns the shifts in display order. The order is the column
// order of the weekly grid.
func (r *Repository) GetAllShifts() ([]*domain.Shift, error) {
	query := `
		SELECT id, name, start_time::text, end_time::text, sort_order, notes, created_at, version
		FROM shifts ORDER BY sort_order, id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift := &domain.Shift{}
		dst := []any{&shift.ID, &shift.Name, &shift.StartTime, &shift.EndTime, &shift.SortOrder, &shift.Notes, &shift.CreatedAt, &shift.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

// CreateShift appends the new shift at the end of the display order.
func (r *Repository) CreateShift(shift *domain.Shift) error {
	query := `
		INSERT INTO shifts (name, start_time, end_time, notes, sort_order)
		VALUES ($1, $2::time, $3::time, $4, (SELECT COALESCE(MAX(sort_order), 0) + 1 FROM shifts))
		RETURNING id, sort_order, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{shift.Name, shift.StartTime, shift.EndTime, shift.Notes}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.ID, &shift.SortOrder, &shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateShift(shift *domain.Shift) error {
	query := `
		UPDATE shifts
		SET
			name = $1,
			start_time = $2::time,
			end_time = $3::time,
			sort_order = $4,
			notes = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{shift.Name, shift.StartTime, shift.EndTime, shift.SortOrder, shift.Notes, shift.ID, shift.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	return nil
}

// DeleteShift fails with a foreign key violation while any assignment still
// references the shift; the handler turns that into a business error.
func (r *Repository) DeleteShift(id int64) error {
	query := `
		DELETE FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}
