package models

import (
	"time"

	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/utils"
)

type AvailabilityRule struct {
	ID         string    `json:"id" bson:"_id"`
	DoctorID   string    `json:"doctorId" bson:"doctorId"`
	StartTime  time.Time `json:"startTime" bson:"startTime"`
	EndTime    time.Time `json:"endTime" bson:"endTime"`
	Recurrence string    `json:"recurring" bson:"recurrence"`
	TimeModel  `bson:",inline"`
}

// AnchorDate is the calendar day of StartTime in loc. One-off rules live only
// on it; recurring rules use it for their clock range and, when weekly, their
// weekday.
func (r *AvailabilityRule) AnchorDate(loc *time.Location) time.Time {
	return utils.DateOf(r.StartTime, loc)
}

// ActiveOn reports whether the rule produces an interval on date, which must
// be midnight in loc. Daily and weekly rules apply to any date, before their
// anchor included.
func (r *AvailabilityRule) ActiveOn(date time.Time, loc *time.Location) bool {
	anchor := r.AnchorDate(loc)
	switch r.Recurrence {
	case constvars.RecurrenceNone:
		return date.Equal(anchor)
	case constvars.RecurrenceDaily:
		return true
	case constvars.RecurrenceWeekly:
		return date.Weekday() == anchor.Weekday()
	default:
		return false
	}
}

// OccurrenceOn projects the rule's clock range onto date. A rule ending at the
// following midnight ends at the midnight after date.
func (r *AvailabilityRule) OccurrenceOn(date time.Time, loc *time.Location) (time.Time, time.Time) {
	start := r.StartTime.In(loc)
	occurrenceStart := time.Date(date.Year(), date.Month(), date.Day(), start.Hour(), start.Minute(), start.Second(), 0, loc)
	return occurrenceStart, occurrenceStart.Add(r.EndTime.Sub(r.StartTime))
}

// ClockRange returns the half-open [start, end) range in seconds since local
// midnight. end is 86400 for a rule ending at the following midnight.
func (r *AvailabilityRule) ClockRange(loc *time.Location) (int, int) {
	start := r.StartTime.In(loc)
	startSeconds := start.Hour()*3600 + start.Minute()*60 + start.Second()
	return startSeconds, startSeconds + int(r.EndTime.Sub(r.StartTime)/time.Second)
}
