package availability

import (
	"sort"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
	"github.com/lulabtechnology/saas-clinicas/internal/pkg/timeutil"
)

// BookingWindow is an occupied wall-clock interval of the day, half-open.
type BookingWindow struct {
	Start string // "HH:MM"
	End   string // "HH:MM"
}

// BuildCandidates generates candidate start offsets (minutes since midnight)
// for a service of the given duration.
//
// Each rule is stepped independently: t = rule.start, t += slot_size, while
// t+duration still fits inside that rule's window. A slot must fit within a
// single rule's window — overlapping rules are not merged. A rule whose
// window is shorter than the service duration contributes nothing; that is
// not an error. Candidates are deduplicated and sorted ascending.
func BuildCandidates(rules []domain.AvailabilityRule, serviceDuration int) ([]int, error) {
	seen := make(map[int]struct{})
	for _, rule := range rules {
		start, err := timeutil.ToMinutes(rule.StartTime)
		if err != nil {
			return nil, err
		}
		end, err := timeutil.ToMinutes(rule.EndTime)
		if err != nil {
			return nil, err
		}
		if rule.SlotSizeMinutes <= 0 || end <= start {
			continue
		}
		for t := start; t+serviceDuration <= end; t += rule.SlotSizeMinutes {
			seen[t] = struct{}{}
		}
	}

	out := make([]int, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Ints(out)
	return out, nil
}

// FilterAvailable drops candidates whose window [t, t+duration) overlaps any
// existing booking window. Half-open semantics: a slot ending exactly where
// a booking starts survives, so back-to-back appointments are allowed.
// Callers must supply only non-cancelled bookings — a cancelled booking
// frees its slot, while pending and confirmed ones keep holding it.
func FilterAvailable(candidates []int, serviceDuration int, existing []BookingWindow) ([]int, error) {
	busy := make([][2]int, 0, len(existing))
	for _, w := range existing {
		s, err := timeutil.ToMinutes(w.Start)
		if err != nil {
			return nil, err
		}
		e, err := timeutil.ToMinutes(w.End)
		if err != nil {
			return nil, err
		}
		busy = append(busy, [2]int{s, e})
	}

	out := make([]int, 0, len(candidates))
	for _, t := range candidates {
		taken := false
		for _, b := range busy {
			if timeutil.Overlaps(t, t+serviceDuration, b[0], b[1]) {
				taken = true
				break
			}
		}
		if !taken {
			out = append(out, t)
		}
	}
	return out, nil
}

// BuildSlotsForDay composes BuildCandidates and FilterAvailable into the
// "HH:MM" list served to booking clients.
func BuildSlotsForDay(rules []domain.AvailabilityRule, serviceDuration int, existing []BookingWindow) ([]string, error) {
	candidates, err := BuildCandidates(rules, serviceDuration)
	if err != nil {
		return nil, err
	}
	free, err := FilterAvailable(candidates, serviceDuration, existing)
	if err != nil {
		return nil, err
	}

	slots := make([]string, 0, len(free))
	for _, t := range free {
		hhmm, err := timeutil.ToHHMM(t)
		if err != nil {
			return nil, err
		}
		slots = append(slots, hhmm)
	}
	return slots, nil
}
