package models

import "time"

type BookingEvent struct {
	EventType  string    `json:"eventType"`
	BookingID  string    `json:"bookingId"`
	DoctorID   string    `json:"doctorId"`
	PatientID  string    `json:"patientId"`
	Date       string    `json:"date"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewBookingEvent(eventType string, booking *Booking) BookingEvent {
	return BookingEvent{
		EventType:  eventType,
		BookingID:  booking.ID,
		DoctorID:   booking.DoctorID,
		PatientID:  booking.PatientID,
		Date:       booking.Date,
		StartTime:  booking.StartTime,
		EndTime:    booking.EndTime,
		Status:     booking.Status,
		OccurredAt: time.Now().UTC(),
	}
}
