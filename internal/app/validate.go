package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"weighttrack/internal/domain"
)

// ErrInvalidInput marks a request rejected by validation. Concrete errors wrap
// it with a message naming the offending field.
var ErrInvalidInput = errors.New("invalid input")

// ErrUnsupportedUnit is returned for weight units other than kg and lb.
var ErrUnsupportedUnit = errors.New(`unit must be "kg" or "lb"`)

// Physiological bounds for any stored weight, in kilograms.
const (
	MinWeightKg = 20.0
	MaxWeightKg = 300.0
	maxHeightCm = 300.0
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...)
}

func validateWeight(field string, kg float64) error {
	if kg < MinWeightKg || kg > MaxWeightKg {
		return invalid("%s must be within [%g, %g] kg", field, MinWeightKg, MaxWeightKg)
	}
	return nil
}

func validatePerson(p *domain.Person) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return invalid("name is required")
	}
	p.Nickname = trimOptional(p.Nickname)
	if p.StartingWeightKg != nil {
		if err := validateWeight("starting_weight_kg", *p.StartingWeightKg); err != nil {
			return err
		}
	}
	if p.HeightCm != nil && (*p.HeightCm <= 0 || *p.HeightCm > maxHeightCm) {
		return invalid("height_cm must be within (0, %g]", maxHeightCm)
	}
	if p.DateOfBirth != nil && p.DateOfBirth.IsZero() {
		p.DateOfBirth = nil
	}
	if p.DateOfBirth != nil && p.DateOfBirth.After(time.Now()) {
		return invalid("date_of_birth must not be in the future")
	}
	return nil
}

func validateEntry(e *domain.WeightEntry) error {
	if e.Datetime.IsZero() {
		return invalid("datetime is required")
	}
	e.Note = trimOptional(e.Note)
	return validateWeight("weight_kg", e.WeightKg)
}

func validateGoal(g *domain.Goal) error {
	if g.StartDate.IsZero() || g.EndDate.IsZero() {
		return invalid("start_date and end_date are required")
	}
	if g.EndDate.Before(g.StartDate.Time) {
		return invalid("end_date must not be before start_date")
	}
	if err := validateWeight("target_weight_kg", g.TargetWeightKg); err != nil {
		return err
	}
	if g.StartWeightKg != nil {
		return validateWeight("start_weight_kg", *g.StartWeightKg)
	}
	return nil
}

func validateMilestone(m *domain.Milestone) error {
	m.Title = strings.TrimSpace(m.Title)
	if m.Title == "" {
		return invalid("title is required")
	}
	if m.TargetDate.IsZero() {
		return invalid("target_date is required")
	}
	m.Note = trimOptional(m.Note)
	return validateWeight("target_weight_kg", m.TargetWeightKg)
}

// trimOptional trims s and maps blank strings to nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
