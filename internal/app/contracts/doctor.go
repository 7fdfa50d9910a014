package contracts

import (
	"context"
	"net/http"

	"doctor-booking-service/internal/app/models"
)

type DoctorController interface {
	ListVerifiedDoctors(w http.ResponseWriter, r *http.Request)
	FindDoctorByID(w http.ResponseWriter, r *http.Request)
}

type DoctorUsecase interface {
	ListVerified(ctx context.Context, credential, query string) ([]models.Doctor, error)
	FindByID(ctx context.Context, credential, doctorID string) (*models.Doctor, error)
}

// DoctorDirectoryClient reads the roster from the remote directory API. The
// bearer credential is passed per call.
type DoctorDirectoryClient interface {
	FetchVerified(ctx context.Context, credential string) ([]models.Doctor, error)
	FetchByID(ctx context.Context, credential, doctorID string) (*models.Doctor, error)
}
