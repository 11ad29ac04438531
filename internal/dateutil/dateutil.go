package dateutil

import "time"

const DateLayout = "2006-01-02"

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

func DateKey(value time.Time, location *time.Location) string {
	return DateAtLocation(value, location).Format(DateLayout)
}

func ParseDateKey(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

func IsValidDateKey(value string) bool {
	_, err := ParseDateKey(value)
	return err == nil
}

// WithinLastDays reports whether the date key falls inside the window
// ending at today and starting days-1 days earlier.
func WithinLastDays(dateKey string, today time.Time, days int) bool {
	parsed, err := ParseDateKey(dateKey)
	if err != nil || days <= 0 {
		return false
	}
	end := DateAtLocation(today, time.UTC)
	start := end.AddDate(0, 0, -(days - 1))
	return !parsed.Before(start) && !parsed.After(end)
}
