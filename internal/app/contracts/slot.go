package contracts

import (
	"context"
	"iter"
	"net/http"
	"time"

	"doctor-booking-service/internal/app/models"
)

type SlotController interface {
	FindDoctorSlots(w http.ResponseWriter, r *http.Request)
}

type SlotUsecase interface {
	Resolve(ctx context.Context, doctorID string, from, to time.Time) (iter.Seq2[time.Time, []models.ResolvedSlot], error)
	IsSlotAvailable(ctx context.Context, doctorID string, date time.Time, startTime, endTime string) (bool, error)
	Location() *time.Location
}
