package routers

import (
	"doctor-booking-service/internal/app/contracts"
	"doctor-booking-service/internal/app/delivery/http/middlewares"
	"doctor-booking-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachAvailabilityRoutes(router chi.Router, middlewares *middlewares.Middlewares, availabilityController contracts.AvailabilityController) {
	router.Use(middlewares.RequireRole(constvars.RoleDoctor))

	router.Get("/doctor", availabilityController.ListForDoctor)
	router.Post("/", availabilityController.CreateAvailability)
	router.Put("/{availability_id}", availabilityController.UpdateAvailability)
	router.Delete("/{availability_id}", availabilityController.DeleteAvailability)
}
