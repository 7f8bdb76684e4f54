package domain

import "time"

// Trend is the least-squares line through a window of entries, evaluated at
// the window's first and last timestamps.
type Trend struct {
	Start TrendPoint `json:"start"`
	End   TrendPoint `json:"end"`
}

// TrendPoint is one end of a Trend.
type TrendPoint struct {
	X time.Time `json:"x"`
	Y float64   `json:"y"`
}

// Slope returns the trend's change in kilograms per day.
func (t Trend) Slope() float64 {
	days := t.End.X.Sub(t.Start.X).Hours() / 24
	if days == 0 {
		return 0
	}
	return (t.End.Y - t.Start.Y) / days
}

// FitTrend fits weight against time by ordinary least squares over sorted
// entries. Time is measured in seconds from the first entry.
//
// It returns nil for fewer than two entries, and also when every entry shares
// the same timestamp: a zero-variance x-axis has no defined slope.
func FitTrend(sorted []WeightEntry) *Trend {
	n := len(sorted)
	if n < 2 {
		return nil
	}
	first, last := sorted[0].Datetime, sorted[n-1].Datetime

	var meanX, meanY float64
	for _, e := range sorted {
		meanX += e.Datetime.Sub(first).Seconds()
		meanY += e.WeightKg
	}
	meanX /= float64(n)
	meanY /= float64(n)

	var sxx, sxy float64
	for _, e := range sorted {
		dx := e.Datetime.Sub(first).Seconds() - meanX
		sxx += dx * dx
		sxy += dx * (e.WeightKg - meanY)
	}
	if sxx == 0 {
		return nil
	}
	slope := sxy / sxx
	at := func(t time.Time) float64 {
		return meanY + slope*(t.Sub(first).Seconds()-meanX)
	}
	return &Trend{
		Start: TrendPoint{X: first, Y: at(first)},
		End:   TrendPoint{X: last, Y: at(last)},
	}
}
