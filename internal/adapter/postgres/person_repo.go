package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weighttrack/internal/domain"
)

const personColumns = "id, user_id, name, nickname, starting_weight_kg, height_cm, date_of_birth, created_at"

func scanPerson(row interface{ Scan(...any) error }) (*domain.Person, error) {
	var (
		p        domain.Person
		nickname sql.NullString
		starting sql.NullFloat64
		height   sql.NullFloat64
		dob      sql.NullTime
	)
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &nickname, &starting, &height, &dob, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Nickname = stringPtr(nickname)
	p.StartingWeightKg = floatPtr(starting)
	p.HeightCm = floatPtr(height)
	p.DateOfBirth = datePtr(dob)
	return &p, nil
}

// CreatePerson inserts a new person.
func (d *DB) CreatePerson(ctx context.Context, p domain.Person) (*domain.Person, error) {
	return scanPerson(d.sql.QueryRowContext(ctx,
		`INSERT INTO persons (user_id, name, nickname, starting_weight_kg, height_cm, date_of_birth, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING `+personColumns,
		p.UserID, p.Name, nullString(p.Nickname), nullFloat(p.StartingWeightKg), nullFloat(p.HeightCm), nullDate(p.DateOfBirth), time.Now().UTC(),
	))
}

// GetPerson returns the person if it belongs to userID.
func (d *DB) GetPerson(ctx context.Context, userID, id int64) (*domain.Person, error) {
	return scanPerson(d.sql.QueryRowContext(ctx,
		"SELECT "+personColumns+" FROM persons WHERE id = $1 AND user_id = $2", id, userID))
}

// ListPersons returns the user's persons ordered by id.
func (d *DB) ListPersons(ctx context.Context, userID int64) ([]domain.Person, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+personColumns+" FROM persons WHERE user_id = $1 ORDER BY id;", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Person{}
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// UpdatePerson replaces the editable fields of a person owned by p.UserID.
func (d *DB) UpdatePerson(ctx context.Context, p domain.Person) (*domain.Person, error) {
	return scanPerson(d.sql.QueryRowContext(ctx,
		`UPDATE persons SET name = $1, nickname = $2, starting_weight_kg = $3, height_cm = $4, date_of_birth = $5
		 WHERE id = $6 AND user_id = $7 RETURNING `+personColumns,
		p.Name, nullString(p.Nickname), nullFloat(p.StartingWeightKg), nullFloat(p.HeightCm), nullDate(p.DateOfBirth), p.ID, p.UserID,
	))
}

// DeletePerson removes a person. Entries, goals and milestones go with it
// through ON DELETE CASCADE.
func (d *DB) DeletePerson(ctx context.Context, userID, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM persons WHERE id = $1 AND user_id = $2;", id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
