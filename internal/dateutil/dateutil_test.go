package dateutil

import (
	"testing"
	"time"
)

func TestDateKeyUsesLocation(t *testing.T) {
	t.Parallel()

	// 2026-03-01 01:30 UTC is still 2026-02-28 in New York.
	newYork, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	value := time.Date(2026, time.March, 1, 1, 30, 0, 0, time.UTC)

	if got := DateKey(value, time.UTC); got != "2026-03-01" {
		t.Fatalf("DateKey(UTC) = %q, want %q", got, "2026-03-01")
	}
	if got := DateKey(value, newYork); got != "2026-02-28" {
		t.Fatalf("DateKey(New York) = %q, want %q", got, "2026-02-28")
	}
}

func TestDateKeyNilLocationDefaultsToUTC(t *testing.T) {
	t.Parallel()

	value := time.Date(2026, time.January, 5, 23, 59, 0, 0, time.UTC)
	if got := DateKey(value, nil); got != "2026-01-05" {
		t.Fatalf("DateKey(nil location) = %q, want %q", got, "2026-01-05")
	}
}

func TestDayRangeSpansExactlyOneDay(t *testing.T) {
	t.Parallel()

	value := time.Date(2026, time.July, 14, 16, 45, 12, 0, time.UTC)
	start, end := DayRange(value, time.UTC)

	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Fatalf("DayRange start = %v, want midnight", start)
	}
	if got := end.Sub(start); got != 24*time.Hour {
		t.Fatalf("DayRange span = %v, want 24h", got)
	}
}

func TestIsValidDateKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "valid", value: "2026-02-28", want: true},
		{name: "missing zero padding", value: "2026-2-8", want: false},
		{name: "wrong order", value: "28-02-2026", want: false},
		{name: "not a date", value: "today", want: false},
		{name: "empty", value: "", want: false},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if got := IsValidDateKey(test.value); got != test.want {
				t.Fatalf("IsValidDateKey(%q) = %v, want %v", test.value, got, test.want)
			}
		})
	}
}

func TestWithinLastDays(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, time.August, 29, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		dateKey string
		days    int
		want    bool
	}{
		{name: "today", dateKey: "2026-08-29", days: 7, want: true},
		{name: "window start", dateKey: "2026-08-23", days: 7, want: true},
		{name: "day before window", dateKey: "2026-08-22", days: 7, want: false},
		{name: "future", dateKey: "2026-08-30", days: 7, want: false},
		{name: "single day window", dateKey: "2026-08-29", days: 1, want: true},
		{name: "zero days", dateKey: "2026-08-29", days: 0, want: false},
		{name: "invalid key", dateKey: "not-a-date", days: 7, want: false},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if got := WithinLastDays(test.dateKey, today, test.days); got != test.want {
				t.Fatalf("WithinLastDays(%q, today, %d) = %v, want %v", test.dateKey, test.days, got, test.want)
			}
		})
	}
}
