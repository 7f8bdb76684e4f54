package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"weighttrack/internal/domain"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    domain.Date
		wantErr bool
	}{
		{"2026-03-01", domain.NewDate(2026, time.March, 1), false},
		{" 2026-03-01 ", domain.NewDate(2026, time.March, 1), false},
		{"2026-03-01T22:30:00+02:00", domain.NewDate(2026, time.March, 1), false},
		{"01/03/2026", domain.Date{}, true},
		{"", domain.Date{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := domain.ParseDate(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tc.want.Time) {
				t.Errorf("ParseDate(%q) = %v; want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestDateJSON(t *testing.T) {
	var v struct {
		D  domain.Date  `json:"d"`
		DP *domain.Date `json:"dp"`
	}
	if err := json.Unmarshal([]byte(`{"d":"2026-01-15","dp":null}`), &v); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v.D.String() != "2026-01-15" {
		t.Errorf("expected 2026-01-15, got %s", v.D)
	}
	if v.DP != nil {
		t.Errorf("expected nil pointer, got %v", v.DP)
	}

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"d":"2026-01-15","dp":null}` {
		t.Errorf("unexpected json: %s", b)
	}

	if err := json.Unmarshal([]byte(`{"d":"yesterday"}`), &v); err == nil {
		t.Error("expected error for bad date")
	}
}

func TestDaysUntil(t *testing.T) {
	a := domain.NewDate(2026, time.January, 1)
	b := domain.NewDate(2026, time.January, 31)
	if got := a.DaysUntil(b); got != 30 {
		t.Errorf("expected 30, got %d", got)
	}
	if got := b.DaysUntil(a); got != -30 {
		t.Errorf("expected -30, got %d", got)
	}
}

func TestDateOfUsesOwnLocation(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*60*60)
	ts := time.Date(2026, time.May, 2, 1, 0, 0, 0, loc) // 2026-05-01 15:00 UTC
	if got := domain.DateOf(ts).String(); got != "2026-05-02" {
		t.Errorf("expected 2026-05-02, got %s", got)
	}
}

func TestDateAddDays(t *testing.T) {
	d := domain.NewDate(2026, time.February, 27)
	if got := d.AddDays(2).String(); got != "2026-03-01" {
		t.Errorf("expected 2026-03-01, got %s", got)
	}
	if got := d.AddDays(-27).String(); got != "2026-01-31" {
		t.Errorf("expected 2026-01-31, got %s", got)
	}
	if n := d.DaysUntil(d.AddDays(10)); n != 10 {
		t.Errorf("expected 10 days, got %d", n)
	}
}
