package utils

import (
	"doctor-booking-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

func GenerateID() string {
	return uuid.NewString()
}

func GenerateRequestID() string {
	return constvars.REQUEST_ID_PREFIX + uuid.NewString()
}
