package availability

import (
	"time"

	"doctor-booking-service/internal/app/models"
	"doctor-booking-service/internal/pkg/constvars"
)

// overlaps reports whether two rules of the same recurrence class produce
// intersecting intervals on some shared calendar day. Intervals are half-open.
func overlaps(a, b *models.AvailabilityRule, loc *time.Location) bool {
	if a.Recurrence != b.Recurrence {
		return false
	}

	switch a.Recurrence {
	case constvars.RecurrenceNone:
		return a.StartTime.Before(b.EndTime) && b.StartTime.Before(a.EndTime)
	case constvars.RecurrenceDaily:
		return clockRangesIntersect(a, b, loc)
	case constvars.RecurrenceWeekly:
		return a.AnchorDate(loc).Weekday() == b.AnchorDate(loc).Weekday() && clockRangesIntersect(a, b, loc)
	default:
		return false
	}
}

func clockRangesIntersect(a, b *models.AvailabilityRule, loc *time.Location) bool {
	aStart, aEnd := a.ClockRange(loc)
	bStart, bEnd := b.ClockRange(loc)
	return aStart < bEnd && bStart < aEnd
}

// findOverlap returns the first existing rule that candidate overlaps, skipping
// the rule with candidate's own id.
func findOverlap(candidate *models.AvailabilityRule, existing []models.AvailabilityRule, loc *time.Location) *models.AvailabilityRule {
	for i := range existing {
		if existing[i].ID == candidate.ID {
			continue
		}
		if overlaps(candidate, &existing[i], loc) {
			return &existing[i]
		}
	}
	return nil
}
