package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"doctor-booking-service/internal/app/contracts"
	"doctor-booking-service/internal/app/models"
	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/exceptions"
)

// bookingMemoryRepository keeps bookings in process memory. confirmed indexes
// the booking id holding each slot key.
type bookingMemoryRepository struct {
	mu        sync.RWMutex
	bookings  map[string]models.Booking
	confirmed map[string]string
}

func NewBookingMemoryRepository() contracts.BookingRepository {
	return &bookingMemoryRepository{
		bookings:  make(map[string]models.Booking),
		confirmed: make(map[string]string),
	}
}

func (r *bookingMemoryRepository) Insert(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if booking.IsConfirmed() {
		key := booking.SlotKey()
		if _, taken := r.confirmed[key]; taken {
			return exceptions.ErrSlotAlreadyBooked(nil, booking.Date, booking.StartTime, booking.DoctorID)
		}
		r.confirmed[key] = booking.ID
	}
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *bookingMemoryRepository) FindByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[bookingID]
	if !ok {
		return nil, nil
	}
	return &booking, nil
}

func (r *bookingMemoryRepository) FindConfirmedBySlot(ctx context.Context, doctorID, date, startTime string) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.confirmed[models.SlotKey(doctorID, date, startTime)]
	if !ok {
		return nil, nil
	}
	booking := r.bookings[id]
	return &booking, nil
}

func (r *bookingMemoryRepository) FindConfirmedByDoctorBetween(ctx context.Context, doctorID, fromDate, toDate string) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool {
		return b.DoctorID == doctorID && b.IsConfirmed() && b.Date >= fromDate && b.Date <= toDate
	}), nil
}

func (r *bookingMemoryRepository) FindByPatientID(ctx context.Context, patientID string) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool {
		return b.PatientID == patientID
	}), nil
}

func (r *bookingMemoryRepository) FindByDoctorBetween(ctx context.Context, doctorID, fromDate, toDate string) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool {
		return b.DoctorID == doctorID && b.Date >= fromDate && b.Date <= toDate
	}), nil
}

func (r *bookingMemoryRepository) TransitionStatus(ctx context.Context, bookingID, from, to string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[bookingID]
	if !ok || booking.Status != from {
		return false, nil
	}

	if from == constvars.BookingStatusConfirmed {
		delete(r.confirmed, booking.SlotKey())
	}
	booking.Status = to
	if to == constvars.BookingStatusCancelled {
		cancelledAt := at
		booking.CancelledAt = &cancelledAt
	}
	booking.UpdatedAt = at
	r.bookings[bookingID] = booking
	return true, nil
}

func (r *bookingMemoryRepository) filter(match func(models.Booking) bool) []models.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Booking, 0)
	for _, b := range r.bookings {
		if match(b) {
			result = append(result, b)
		}
	}
	sortBookings(result)
	return result
}

func sortBookings(bookings []models.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].Date != bookings[j].Date {
			return bookings[i].Date < bookings[j].Date
		}
		if bookings[i].StartTime != bookings[j].StartTime {
			return bookings[i].StartTime < bookings[j].StartTime
		}
		return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
	})
}
