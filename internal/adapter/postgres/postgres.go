// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"weighttrack/internal/domain"

	_ "github.com/lib/pq"
)

// DB wraps a *sql.DB and implements domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Ensure interfaces are met.
var _ domain.UserRepository = (*DB)(nil)
var _ domain.PersonRepository = (*DB)(nil)
var _ domain.WeightRepository = (*DB)(nil)
var _ domain.GoalRepository = (*DB)(nil)

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Ping reports whether the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.sql.PingContext(ctx)
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS users (id BIGSERIAL PRIMARY KEY, email TEXT UNIQUE NOT NULL, password_hash TEXT NOT NULL DEFAULT '', created_at TIMESTAMPTZ NOT NULL);",
		`CREATE TABLE IF NOT EXISTS persons (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			nickname TEXT,
			starting_weight_kg DOUBLE PRECISION CHECK (starting_weight_kg BETWEEN 20 AND 300),
			height_cm DOUBLE PRECISION CHECK (height_cm > 0),
			date_of_birth DATE,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_persons_user_id ON persons(user_id);",
		`CREATE TABLE IF NOT EXISTS weight_entries (
			id BIGSERIAL PRIMARY KEY,
			person_id BIGINT NOT NULL REFERENCES persons(id) ON DELETE CASCADE,
			datetime TIMESTAMPTZ NOT NULL,
			weight_kg DOUBLE PRECISION NOT NULL CHECK (weight_kg BETWEEN 20 AND 300),
			note TEXT
		);`,
		"CREATE INDEX IF NOT EXISTS idx_weight_entries_person_datetime ON weight_entries(person_id, datetime);",
		`CREATE TABLE IF NOT EXISTS goals (
			id BIGSERIAL PRIMARY KEY,
			person_id BIGINT NOT NULL REFERENCES persons(id) ON DELETE CASCADE,
			start_date DATE NOT NULL,
			end_date DATE NOT NULL CHECK (end_date >= start_date),
			target_weight_kg DOUBLE PRECISION NOT NULL CHECK (target_weight_kg BETWEEN 20 AND 300),
			start_weight_kg DOUBLE PRECISION CHECK (start_weight_kg BETWEEN 20 AND 300),
			lock_start_to_first_log BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_goals_person_id ON goals(person_id);",
		`CREATE TABLE IF NOT EXISTS milestones (
			id BIGSERIAL PRIMARY KEY,
			goal_id BIGINT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			target_date DATE NOT NULL,
			target_weight_kg DOUBLE PRECISION NOT NULL CHECK (target_weight_kg BETWEEN 20 AND 300),
			note TEXT
		);`,
		"CREATE INDEX IF NOT EXISTS idx_milestones_goal_id ON milestones(goal_id);",
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullDate(d *domain.Date) sql.NullTime {
	if d == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: d.Time, Valid: true}
}

func stringPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	return &n.String
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return &n.Float64
}

func datePtr(n sql.NullTime) *domain.Date {
	if !n.Valid {
		return nil
	}
	d := domain.DateOf(n.Time.UTC())
	return &d
}
