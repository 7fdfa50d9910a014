package models

import (
	"fmt"
	"time"

	"doctor-booking-service/internal/pkg/constvars"
)

// Booking is a reservation of one resolved slot. Date is YYYY-MM-DD and the
// times are HH:MM, both in the service timezone.
type Booking struct {
	ID          string     `json:"id" bson:"_id"`
	DoctorID    string     `json:"doctorId" bson:"doctorId"`
	PatientID   string     `json:"patientId" bson:"patientId"`
	Date        string     `json:"date" bson:"date"`
	StartTime   string     `json:"startTime" bson:"startTime"`
	EndTime     string     `json:"endTime" bson:"endTime"`
	Status      string     `json:"status" bson:"status"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty" bson:"cancelledAt,omitempty"`
	TimeModel   `bson:",inline"`
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == constvars.BookingStatusConfirmed
}

func (b *Booking) SlotKey() string {
	return SlotKey(b.DoctorID, b.Date, b.StartTime)
}

// SlotKey identifies a (doctor, date, startTime) tuple.
func SlotKey(doctorID, date, startTime string) string {
	return fmt.Sprintf(constvars.LockKeyBookingSlotFormat, doctorID, date, startTime)
}
