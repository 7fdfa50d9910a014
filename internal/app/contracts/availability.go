package contracts

import (
	"context"
	"net/http"
	"time"

	"doctor-booking-service/internal/app/models"
)

type AvailabilityController interface {
	ListForDoctor(w http.ResponseWriter, r *http.Request)
	CreateAvailability(w http.ResponseWriter, r *http.Request)
	UpdateAvailability(w http.ResponseWriter, r *http.Request)
	DeleteAvailability(w http.ResponseWriter, r *http.Request)
}

type AvailabilityUsecase interface {
	Create(ctx context.Context, doctorID string, startTime, endTime time.Time, recurrence string) (*models.AvailabilityRule, error)
	Update(ctx context.Context, doctorID, ruleID string, startTime, endTime time.Time, recurrence string) (*models.AvailabilityRule, error)
	Delete(ctx context.Context, doctorID, ruleID string) error
	ListForDoctor(ctx context.Context, doctorID string) ([]models.AvailabilityRule, error)
}

// AvailabilityRepository stores rules. Lists are ordered by startTime ascending.
type AvailabilityRepository interface {
	Insert(ctx context.Context, rule *models.AvailabilityRule) error
	Replace(ctx context.Context, rule *models.AvailabilityRule) (bool, error)
	Delete(ctx context.Context, doctorID, ruleID string) (bool, error)
	FindByID(ctx context.Context, doctorID, ruleID string) (*models.AvailabilityRule, error)
	FindByDoctorID(ctx context.Context, doctorID string) ([]models.AvailabilityRule, error)
}
