package controllers

import (
	"net/http"

	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/dto/responses"
	"doctor-booking-service/internal/pkg/utils"
)

type HealthController struct {
	StorageDriver string
	LockerDriver  string
}

func NewHealthController(storageDriver, lockerDriver string) *HealthController {
	return &HealthController{
		StorageDriver: storageDriver,
		LockerDriver:  lockerDriver,
	}
}

func (ctrl *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.HealthyMessage, responses.Health{
		Status:        constvars.ResponseSuccess,
		StorageDriver: ctrl.StorageDriver,
		LockerDriver:  ctrl.LockerDriver,
	})
}
