package repository

import (
	"context"
	"time"

	"github.com/gestione-turni/backend/internal/domain"
)

func (r *Repository) GetPersonByID(id int64) (*domain.Person, error) {
	query := `
		SELECT full_name, is_active, notes, rotation_anchor_date, created_at, version
		FROM people WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	person := &domain.Person{
		ID: id,
	}

	dst := []any{&person.FullName, &person.IsActive, &person.Notes, &person.RotationAnchorDate, &person.CreatedAt, &person.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return person, nil
}

func (r *Repository) GetAllPeople() ([]*domain.Person, error) {
	query := `
		SELECT id, full_name, is_active, notes, rotation_anchor_date, created_at, version
		FROM people ORDER BY full_name, id
	`

	return r.queryPeople(query)
}

// GetActivePeople returns the people the planner considers, ordered by name.
func (r *Repository) GetActivePeople() ([]*domain.Person, error) {
	query := `
		SELECT id, full_name, is_active, notes, rotation_anchor_date, created_at, version
		FROM people WHERE is_active = TRUE ORDER BY full_name, id
	`

	return r.queryPeople(query)
}

func (r *Repository) queryPeople(query string, args ...any) ([]*domain.Person, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	people := make([]*domain.Person, 0)
	for rows.Next() {
		person := &domain.Person{}
		dst := []any{&person.ID, &person.FullName, &person.IsActive, &person.Notes, &person.RotationAnchorDate, &person.CreatedAt, &person.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		people = append(people, person)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return people, nil
}

func (r *Repository) CreatePerson(person *domain.Person) error {
	query := `
		INSERT INTO people (full_name, notes)
		VALUES ($1, $2)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, person.FullName, person.Notes).Scan(&person.ID, &person.IsActive, &person.CreatedAt, &person.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdatePerson(person *domain.Person) error {
	query := `
		UPDATE people
		SET
			full_name = $1,
			is_active = $2,
			notes = $3,
			rotation_anchor_date = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{person.FullName, person.IsActive, person.Notes, person.RotationAnchorDate, person.ID, person.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&person.CreatedAt, &person.Version); err != nil {
		return err
	}

	return nil
}

// SetRotationAnchor updates only the anchor date; nil clears the rotation.
func (r *Repository) SetRotationAnchor(personID int64, anchor *time.Time) error {
	query := `
		UPDATE people
		SET rotation_anchor_date = $1, version = version + 1
		WHERE id = $2
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, anchor, personID)
	return err
}

func (r *Repository) DeletePerson(id int64) error {
	query := `
		DELETE FROM people WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}
