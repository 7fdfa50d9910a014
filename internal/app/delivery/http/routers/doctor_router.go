package routers

import (
	"doctor-booking-service/internal/app/contracts"

	"github.com/go-chi/chi/v5"
)

func attachDoctorRoutes(router chi.Router, doctorController contracts.DoctorController, slotController contracts.SlotController) {
	router.Get("/verified", doctorController.ListVerifiedDoctors)
	router.Get("/{doctor_id}", doctorController.FindDoctorByID)
	router.Get("/{doctor_id}/slots", slotController.FindDoctorSlots)
}
