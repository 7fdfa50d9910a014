package models

import "time"

// ResolvedSlot is derived from an availability rule for one date and never
// stored. Two slots are equal when doctor, date and start time match.
type ResolvedSlot struct {
	DoctorID  string    `json:"doctorId"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	RuleID    string    `json:"ruleId"`
	StartAt   time.Time `json:"-"`
	EndAt     time.Time `json:"-"`
}

func (s ResolvedSlot) Key() string {
	return SlotKey(s.DoctorID, s.Date, s.StartTime)
}
