package timeutil

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// LocalToInstant converts a (date, wall-clock time) pair in the given IANA
// timezone into an absolute instant. It is the single wall-clock-to-instant
// boundary of the system: availability listing, booking persistence and
// reminder scheduling all go through here, so they can never disagree on an
// offset. DST gaps and overlaps resolve per the zone database rules applied
// by time.Date.
func LocalToInstant(date, hhmm, tz string) (time.Time, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	mins, err := ToMinutes(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), mins/60, mins%60, 0, 0, loc), nil
}

// InstantToHHMM renders an absolute instant as tenant-local "HH:MM". Inverse
// direction of LocalToInstant, same single authority.
func InstantToHHMM(t time.Time, tz string) (string, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return "", fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return t.In(loc).Format("15:04"), nil
}

// DayBounds returns the [midnight, next midnight) instant window of a civil
// date in the given timezone. On DST transition days the window is 23 or 25
// hours long, as the zone rules dictate.
func DayBounds(date, tz string) (time.Time, time.Time, error) {
	start, err := LocalToInstant(date, "00:00", tz)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	day, _ := time.Parse(dateLayout, date)
	next := day.AddDate(0, 0, 1).Format(dateLayout)
	end, err := LocalToInstant(next, "00:00", tz)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// Weekday returns 0=Sunday .. 6=Saturday for a civil date. The weekday of a
// booking date is a property of the date itself, independent of timezone.
func Weekday(date string) (int, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return int(day.Weekday()), nil
}
