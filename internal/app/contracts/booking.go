package contracts

import (
	"context"
	"net/http"
	"time"

	"doctor-booking-service/internal/app/models"
)

type BookingController interface {
	CreateBooking(w http.ResponseWriter, r *http.Request)
	CancelBooking(w http.ResponseWriter, r *http.Request)
	ListPatientBookings(w http.ResponseWriter, r *http.Request)
	ListDoctorBookings(w http.ResponseWriter, r *http.Request)
}

type BookingUsecase interface {
	Book(ctx context.Context, doctorID, patientID string, date time.Time, startTime, endTime string) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID, requestingPatientID string) (*models.Booking, error)
	ListForPatient(ctx context.Context, patientID string) ([]models.Booking, error)
	ListForDoctor(ctx context.Context, doctorID string, from, to time.Time) ([]models.Booking, error)
}

// BookingRepository persists bookings. Insert must reject a second confirmed
// booking for the same doctor, date and start time with a CONFLICT error.
type BookingRepository interface {
	Insert(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, bookingID string) (*models.Booking, error)
	FindConfirmedBySlot(ctx context.Context, doctorID, date, startTime string) (*models.Booking, error)
	FindConfirmedByDoctorBetween(ctx context.Context, doctorID, fromDate, toDate string) ([]models.Booking, error)
	FindByPatientID(ctx context.Context, patientID string) ([]models.Booking, error)
	FindByDoctorBetween(ctx context.Context, doctorID, fromDate, toDate string) ([]models.Booking, error)
	// TransitionStatus moves the booking from one status to another atomically.
	// It reports false when the stored status was not from.
	TransitionStatus(ctx context.Context, bookingID, from, to string, at time.Time) (bool, error)
}
