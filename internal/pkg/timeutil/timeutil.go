package timeutil

import (
	"fmt"
	"time"
)

const MinutesPerDay = 24 * 60

// ToMinutes parses a wall-clock "HH:MM" string into minutes since midnight.
func ToMinutes(hhmm string) (int, error) {
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", hhmm)
	}
	for _, c := range []byte{hhmm[0], hhmm[1], hhmm[3], hhmm[4]} {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("invalid time %q: want HH:MM", hhmm)
		}
	}
	h := int(hhmm[0]-'0')*10 + int(hhmm[1]-'0')
	m := int(hhmm[3]-'0')*10 + int(hhmm[4]-'0')
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", hhmm)
	}
	return h*60 + m, nil
}

// ToHHMM is the inverse of ToMinutes.
func ToHHMM(minutes int) (string, error) {
	if minutes < 0 || minutes >= MinutesPerDay {
		return "", fmt.Errorf("minutes %d out of range [0, %d)", minutes, MinutesPerDay)
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap, so
// back-to-back appointments are allowed.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// OverlapsTime is Overlaps for absolute instants, same half-open semantics.
func OverlapsTime(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
