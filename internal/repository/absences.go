package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/gestione-turni/backend/internal/domain"
)

func (r *Repository) GetAllAbsences() ([]*domain.ExtraAbsence, error) {
	query := `
		SELECT id, person_id, kind, start_date, end_date, notes
		FROM extra_absences ORDER BY start_date DESC, id
	`

	return r.queryAbsences(query)
}

// GetAbsencesIntersecting returns the records whose inclusive range touches
// [start, end], in id order so the absence index overwrites deterministically.
func (r *Repository) GetAbsencesIntersecting(start, end time.Time) ([]*domain.ExtraAbsence, error) {
	query := `
		SELECT id, person_id, kind, start_date, end_date, notes
		FROM extra_absences
		WHERE start_date <= $2 AND end_date >= $1
		ORDER BY id
	`

	return r.queryAbsences(query, start, end)
}

func (r *Repository) queryAbsences(query string, args ...any) ([]*domain.ExtraAbsence, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	absences := make([]*domain.ExtraAbsence, 0)
	for rows.Next() {
		a := &domain.ExtraAbsence{}
		if err := rows.Scan(&a.ID, &a.PersonID, &a.Kind, &a.StartDate, &a.EndDate, &a.Notes); err != nil {
			return nil, err
		}
		absences = append(absences, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return absences, nil
}

func (r *Repository) CreateAbsence(absence *domain.ExtraAbsence) error {
	query := `
		INSERT INTO extra_absences (person_id, kind, start_date, end_date, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{absence.PersonID, absence.Kind, absence.StartDate, absence.EndDate, absence.Notes}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&absence.ID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteAbsence(id int64) error {
	query := `
		DELETE FROM extra_absences WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
