package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gestione-turni/backend/internal/domain"
)

// GetOrCreateWeek returns the week row keyed by its Monday, creating it on
// first touch. The upsert keeps concurrent first touches from racing: both
// callers end up with the same row.
func (r *Repository) GetOrCreateWeek(monday time.Time) (*domain.Week, error) {
	query := `
		INSERT INTO weeks (monday_date)
		VALUES ($1)
		ON CONFLICT (monday_date) DO UPDATE SET monday_date = EXCLUDED.monday_date
		RETURNING id, monday_date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	week := &domain.Week{}
	if err := r.dbpool.QueryRowContext(ctx, query, monday).Scan(&week.ID, &week.MondayDate); err != nil {
		return nil, err
	}

	return week, nil
}

func (r *Repository) GetAssignmentsForWeek(weekID int64) ([]*domain.Assignment, error) {
	query := `
		SELECT id, week_id, day_index, shift_id, person_id
		FROM assignments WHERE week_id = $1 ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, weekID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.Assignment, 0)
	for rows.Next() {
		a := &domain.Assignment{}
		if err := rows.Scan(&a.ID, &a.WeekID, &a.DayIndex, &a.ShiftID, &a.PersonID); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *Repository) GetMetaForWeek(weekID int64) ([]*domain.AssignmentMeta, error) {
	query := `
		SELECT id, week_id, day_index, shift_id, override_start_time::text, override_end_time::text, role
		FROM assignment_meta WHERE week_id = $1 ORDER BY day_index, shift_id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, weekID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metas := make([]*domain.AssignmentMeta, 0)
	for rows.Next() {
		m := &domain.AssignmentMeta{}
		if err := rows.Scan(&m.ID, &m.WeekID, &m.DayIndex, &m.ShiftID, &m.OverrideStart, &m.OverrideEnd, &m.Role); err != nil {
			return nil, err
		}
		metas = append(metas, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return metas, nil
}

// SetCell upserts the assignment row of one cell. A nil personID clears the
// cell (the row is kept with a NULL person; grid reads treat both the same).
// The meta row is only written when the patch carries at least one field, and
// only the supplied fields are touched.
func (r *Repository) SetCell(weekID int64, dayIndex int, shiftID int64, personID *int64, patch domain.CellPatch) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	assignmentQuery := `
		INSERT INTO assignments (week_id, day_index, shift_id, person_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT ON CONSTRAINT assignments_cell_key
		DO UPDATE SET person_id = EXCLUDED.person_id, updated_at = NOW()
	`

	if _, err := tx.ExecContext(ctx, assignmentQuery, weekID, dayIndex, shiftID, personID); err != nil {
		return err
	}

	if !patch.Empty() {
		// the CASE guards keep untouched columns at their stored value
		metaQuery := `
			INSERT INTO assignment_meta (week_id, day_index, shift_id, override_start_time, override_end_time, role)
			VALUES ($1, $2, $3, $5::time, $7::time, $9)
			ON CONFLICT ON CONSTRAINT assignment_meta_cell_key
			DO UPDATE SET
				override_start_time = CASE WHEN $4 THEN $5::time ELSE assignment_meta.override_start_time END,
				override_end_time   = CASE WHEN $6 THEN $7::time ELSE assignment_meta.override_end_time END,
				role                = CASE WHEN $8 THEN $9 ELSE assignment_meta.role END
		`

		args := []any{
			weekID, dayIndex, shiftID,
			patch.OverrideStart != nil, patchValue(patch.OverrideStart),
			patch.OverrideEnd != nil, patchValue(patch.OverrideEnd),
			patch.Role != nil, patchValue(patch.Role),
		}
		if _, err := tx.ExecContext(ctx, metaQuery, args...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// patchValue maps a patch field to its SQL value: nil and pointer-to-empty
// both become NULL, so the INSERT arm and the "clear" update arm coincide.
func patchValue(field *string) any {
	if field == nil || *field == "" {
		return nil
	}
	return *field
}

// ClearWeek removes every assignment and meta row of the week; the grid
// reverts to fully empty.
func (r *Repository) ClearWeek(weekID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM assignments WHERE week_id = $1`, weekID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM assignment_meta WHERE week_id = $1`, weekID); err != nil {
		return err
	}

	return tx.Commit()
}

var ErrCopySameWeek = errors.New("source and destination week are the same")

// CopyWeek replaces the destination week's assignments and meta with copies
// of the source week's, in one transaction: a concurrent plan read sees
// either the old destination or the fully copied one, never a partial copy.
func (r *Repository) CopyWeek(srcWeekID, dstWeekID int64) error {
	if srcWeekID == dstWeekID {
		return ErrCopySameWeek
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM assignments WHERE week_id = $1`, dstWeekID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM assignment_meta WHERE week_id = $1`, dstWeekID); err != nil {
		return err
	}

	copyAssignmentsQuery := `
		INSERT INTO assignments (week_id, day_index, shift_id, person_id)
		SELECT $1, day_index, shift_id, person_id
		FROM assignments WHERE week_id = $2
	`
	if _, err := tx.ExecContext(ctx, copyAssignmentsQuery, dstWeekID, srcWeekID); err != nil {
		return err
	}

	copyMetaQuery := `
		INSERT INTO assignment_meta (week_id, day_index, shift_id, override_start_time, override_end_time, role)
		SELECT $1, day_index, shift_id, override_start_time, override_end_time, role
		FROM assignment_meta WHERE week_id = $2
	`
	if _, err := tx.ExecContext(ctx, copyMetaQuery, dstWeekID, srcWeekID); err != nil {
		return err
	}

	return tx.Commit()
}
