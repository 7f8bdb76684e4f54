package postgres

import (
	"context"
	"database/sql"
	"errors"

	"weighttrack/internal/domain"
)

const entryColumns = "w.id, w.person_id, w.datetime, w.weight_kg, w.note"

func scanEntry(row interface{ Scan(...any) error }) (*domain.WeightEntry, error) {
	var (
		e    domain.WeightEntry
		note sql.NullString
	)
	err := row.Scan(&e.ID, &e.PersonID, &e.Datetime, &e.WeightKg, &note)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.Datetime = e.Datetime.UTC()
	e.Note = stringPtr(note)
	return &e, nil
}

// AddWeightEntry inserts a new weight entry.
func (d *DB) AddWeightEntry(ctx context.Context, e domain.WeightEntry) (*domain.WeightEntry, error) {
	return scanEntry(d.sql.QueryRowContext(ctx,
		`INSERT INTO weight_entries AS w (person_id, datetime, weight_kg, note)
		 VALUES ($1, $2, $3, $4) RETURNING `+entryColumns,
		e.PersonID, e.Datetime.UTC(), e.WeightKg, nullString(e.Note),
	))
}

// GetWeightEntry returns the entry if its person belongs to userID.
func (d *DB) GetWeightEntry(ctx context.Context, userID, id int64) (*domain.WeightEntry, error) {
	return scanEntry(d.sql.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM weight_entries w
		 JOIN persons p ON p.id = w.person_id
		 WHERE w.id = $1 AND p.user_id = $2`,
		id, userID,
	))
}

// UpdateWeightEntry changes the datetime, weight and note of an entry.
func (d *DB) UpdateWeightEntry(ctx context.Context, userID int64, e domain.WeightEntry) (*domain.WeightEntry, error) {
	return scanEntry(d.sql.QueryRowContext(ctx,
		`UPDATE weight_entries AS w SET datetime = $1, weight_kg = $2, note = $3
		 FROM persons p
		 WHERE p.id = w.person_id AND w.id = $4 AND p.user_id = $5
		 RETURNING `+entryColumns,
		e.Datetime.UTC(), e.WeightKg, nullString(e.Note), e.ID, userID,
	))
}

// DeleteWeightEntry removes an entry.
func (d *DB) DeleteWeightEntry(ctx context.Context, userID, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		`DELETE FROM weight_entries w USING persons p
		 WHERE p.id = w.person_id AND w.id = $1 AND p.user_id = $2;`,
		id, userID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListWeightEntries returns the person's entries in ascending datetime order.
func (d *DB) ListWeightEntries(ctx context.Context, personID int64) ([]domain.WeightEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM weight_entries w WHERE w.person_id = $1 ORDER BY w.datetime, w.id;", personID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.WeightEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}
