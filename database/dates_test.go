package database

import (
	"testing"
	"time"
)

func TestParseDueDate(t *testing.T) {
	now := time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		raw  string
		want time.Time
	}{
		{"15.10.2025", time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC)},
		{"2025-10-15", time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC)},
		{"15.10", time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, c := range cases {
		got, err := ParseDueDate(c.raw, now)
		if err != nil {
			t.Errorf("ParseDueDate(%q) unexpected error: %v", c.raw, err)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("ParseDueDate(%q) = %s, want %s", c.raw, got, c.want)
		}
	}
}

func TestParseDueDate_ShortFormUsesCurrentYear(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	got, err := ParseDueDate("09.05", now)
	if err != nil {
		t.Fatal(err)
	}
	if got.Year() != 2026 {
		t.Errorf("short form must pick the current year, got %d", got.Year())
	}
}

func TestParseDueDate_Malformed(t *testing.T) {
	now := time.Now()

	for _, raw := range []string{"", "завтра", "32.13.2025", "15/10/2025"} {
		if _, err := ParseDueDate(raw, now); err == nil {
			t.Errorf("ParseDueDate(%q) must fail", raw)
		}
	}
}

func TestParseEventDate(t *testing.T) {
	if _, err := ParseEventDate("15.09.2025"); err != nil {
		t.Errorf("valid event date rejected: %v", err)
	}
	if _, err := ParseEventDate("2025-09-15"); err == nil {
		t.Error("event dates are strictly DD.MM.YYYY")
	}
}
