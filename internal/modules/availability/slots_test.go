package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lulabtechnology/saas-clinicas/internal/domain"
)

func mondayRule(start, end string, slotSize int) domain.AvailabilityRule {
	return domain.AvailabilityRule{
		TenantID:        1,
		ProfessionalID:  1,
		Weekday:         1,
		StartTime:       start,
		EndTime:         end,
		SlotSizeMinutes: slotSize,
	}
}

func TestBuildSlotsForDay_MorningBlock(t *testing.T) {
	rules := []domain.AvailabilityRule{mondayRule("09:00", "12:00", 30)}

	slots, err := BuildSlotsForDay(rules, 30, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}, slots)
}

func TestBuildSlotsForDay_ExistingBookingRemovesSlot(t *testing.T) {
	rules := []domain.AvailabilityRule{mondayRule("09:00", "12:00", 30)}
	existing := []BookingWindow{{Start: "10:00", End: "10:30"}}

	slots, err := BuildSlotsForDay(rules, 30, existing)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00", "11:30"}, slots)
}

func TestBuildSlotsForDay_DurationLongerThanStep(t *testing.T) {
	rules := []domain.AvailabilityRule{mondayRule("09:00", "12:00", 30)}

	// 11:15 + 45 = 12:00 fits exactly; 11:30 + 45 would spill over
	slots, err := BuildSlotsForDay(rules, 45, nil)
	require.NoError(t, err)
	assert.Contains(t, slots, "11:15")
	assert.NotContains(t, slots, "11:30")
	assert.Equal(t, "11:15", slots[len(slots)-1])
}

func TestBuildSlotsForDay_BackToBackAllowed(t *testing.T) {
	rules := []domain.AvailabilityRule{mondayRule("09:00", "12:00", 30)}
	existing := []BookingWindow{{Start: "10:00", End: "10:30"}}

	slots, err := BuildSlotsForDay(rules, 30, existing)
	require.NoError(t, err)
	// 09:30 ends exactly where the booking starts, 10:30 starts exactly
	// where it ends: both survive
	assert.Contains(t, slots, "09:30")
	assert.Contains(t, slots, "10:30")
}

func TestFilterAvailable_OneMinuteOverlapRejected(t *testing.T) {
	// candidate 10:29 with 30min duration overlaps [10:00,10:30) by a minute
	free, err := FilterAvailable([]int{10*60 + 29}, 30, []BookingWindow{{Start: "10:00", End: "10:30"}})
	require.NoError(t, err)
	assert.Empty(t, free)
}

func TestBuildCandidates_WindowTooShort(t *testing.T) {
	rules := []domain.AvailabilityRule{mondayRule("09:00", "09:30", 15)}

	candidates, err := BuildCandidates(rules, 45)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestBuildCandidates_RulesAreIndependent(t *testing.T) {
	// two adjacent blocks: a 60-minute service must fit inside a single
	// rule's window, the union 11:00-13:00 does not make 11:30 bookable
	rules := []domain.AvailabilityRule{
		mondayRule("11:00", "12:00", 30),
		mondayRule("12:00", "13:00", 30),
	}

	candidates, err := BuildCandidates(rules, 60)
	require.NoError(t, err)
	assert.Equal(t, []int{11 * 60, 12 * 60}, candidates)
}

func TestBuildCandidates_MultipleRulesDeduplicated(t *testing.T) {
	rules := []domain.AvailabilityRule{
		mondayRule("09:00", "11:00", 30),
		mondayRule("10:00", "12:00", 30),
	}

	candidates, err := BuildCandidates(rules, 30)
	require.NoError(t, err)
	assert.Equal(t, []int{540, 570, 600, 630, 660, 690}, candidates)
}

func TestBuildSlotsForDay_InvariantSlotFitsProducingRule(t *testing.T) {
	rules := []domain.AvailabilityRule{
		mondayRule("08:00", "11:45", 25),
		mondayRule("14:10", "18:05", 40),
	}
	duration := 35

	candidates, err := BuildCandidates(rules, duration)
	require.NoError(t, err)

	for _, c := range candidates {
		fits := false
		for _, r := range rules {
			start, _ := minutesOf(t, r.StartTime)
			end, _ := minutesOf(t, r.EndTime)
			if c >= start && c+duration <= end {
				fits = true
			}
		}
		assert.True(t, fits, "candidate %d does not fit any single rule window", c)
	}
}

func minutesOf(t *testing.T, hhmm string) (int, error) {
	t.Helper()
	h := int(hhmm[0]-'0')*10 + int(hhmm[1]-'0')
	m := int(hhmm[3]-'0')*10 + int(hhmm[4]-'0')
	return h*60 + m, nil
}
