package domain

// Supported weight units.
const (
	UnitKg = "kg"
	UnitLb = "lb"
)

const kgToLb = 2.2046226218

// ConvertWeight converts a weight value between "kg" and "lb".
// Returns v unchanged if from == to or if the units are unrecognised.
func ConvertWeight(v float64, from, to string) float64 {
	switch {
	case from == to:
		return v
	case from == UnitKg && to == UnitLb:
		return v * kgToLb
	case from == UnitLb && to == UnitKg:
		return v / kgToLb
	}
	return v
}

// ValidUnit reports whether unit is a supported weight unit.
func ValidUnit(unit string) bool {
	return unit == UnitKg || unit == UnitLb
}

// InUnit returns a copy of s with every weight expressed in unit. Weights are
// computed in kilograms; an unknown unit leaves the values untouched.
func (s Summary) InUnit(unit string) Summary {
	if unit == s.Unit || !ValidUnit(unit) {
		return s
	}
	conv := func(v float64) float64 { return ConvertWeight(v, s.Unit, unit) }
	convPtr := func(v *float64) *float64 {
		if v == nil {
			return nil
		}
		c := conv(*v)
		return &c
	}

	out := s
	out.Unit = unit
	out.Person.StartingWeightKg = convPtr(s.Person.StartingWeightKg)

	out.Entries = make([]WeightEntry, len(s.Entries))
	for i, e := range s.Entries {
		e.WeightKg = conv(e.WeightKg)
		out.Entries[i] = e
	}
	if s.Latest != nil {
		latest := *s.Latest
		latest.WeightKg = conv(latest.WeightKg)
		out.Latest = &latest
	}
	out.Change = convPtr(s.Change)
	if s.Trend != nil {
		trend := *s.Trend
		trend.Start.Y = conv(trend.Start.Y)
		trend.End.Y = conv(trend.End.Y)
		out.Trend = &trend
	}
	if s.Goal != nil {
		goal := *s.Goal
		goal.TargetWeightKg = conv(goal.TargetWeightKg)
		goal.StartWeightKg = convPtr(goal.StartWeightKg)
		out.Goal = &goal
	}
	if s.Progress != nil {
		progress := *s.Progress
		progress.ToGoKg = convPtr(progress.ToGoKg)
		out.Progress = &progress
	}
	out.Milestones = make([]Milestone, len(s.Milestones))
	for i, m := range s.Milestones {
		m.TargetWeightKg = conv(m.TargetWeightKg)
		out.Milestones[i] = m
	}
	return out
}
