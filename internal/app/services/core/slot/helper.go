package slot

import (
	"sort"
	"time"

	"doctor-booking-service/internal/app/models"
	"doctor-booking-service/internal/pkg/utils"
)

// generateSlotsBetween slices [start, end) into fixed-length slots spaced by
// slot+buffer minutes. A trailing slot that would cross end is dropped.
func generateSlotsBetween(start, end time.Time, slotMinutes, bufferMinutes int) []interval {
	if slotMinutes <= 0 {
		return nil
	}
	step := time.Duration(slotMinutes+bufferMinutes) * time.Minute
	lenSlot := time.Duration(slotMinutes) * time.Minute
	var out []interval
	for t := start; ; t = t.Add(step) {
		if t.Add(lenSlot).After(end) {
			break
		}
		out = append(out, interval{Start: t, End: t.Add(lenSlot)})
	}
	return out
}

// bookedKey identifies a booked slot within one doctor's resolution.
func bookedKey(date, startTime string) string {
	return date + "|" + startTime
}

func bookedSet(bookings []models.Booking) map[string]struct{} {
	set := make(map[string]struct{}, len(bookings))
	for _, b := range bookings {
		if b.IsConfirmed() {
			set[bookedKey(b.Date, b.StartTime)] = struct{}{}
		}
	}
	return set
}

// resolveDay merges the slots of every rule active on day, dropping booked
// start times and duplicates. The first rule in rules wins a duplicate.
func resolveDay(doctorID string, day time.Time, rules []models.AvailabilityRule, booked map[string]struct{}, cfg Config, loc *time.Location) []models.ResolvedSlot {
	date := utils.FormatDate(day)
	seen := make(map[string]struct{})
	var out []models.ResolvedSlot

	for i := range rules {
		rule := &rules[i]
		if !rule.ActiveOn(day, loc) {
			continue
		}
		start, end := rule.OccurrenceOn(day, loc)
		for _, iv := range generateSlotsBetween(start, end, cfg.SlotMinutes, cfg.BufferMinutes) {
			startClock := utils.FormatClock(iv.Start)
			if _, ok := booked[bookedKey(date, startClock)]; ok {
				continue
			}
			if _, ok := seen[startClock]; ok {
				continue
			}
			seen[startClock] = struct{}{}
			out = append(out, models.ResolvedSlot{
				DoctorID:  doctorID,
				Date:      date,
				StartTime: startClock,
				EndTime:   utils.FormatClock(iv.End),
				RuleID:    rule.ID,
				StartAt:   iv.Start,
				EndAt:     iv.End,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartAt.Before(out[j].StartAt)
	})
	return out
}
