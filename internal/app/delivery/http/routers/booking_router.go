package routers

import (
	"doctor-booking-service/internal/app/contracts"
	"doctor-booking-service/internal/app/delivery/http/middlewares"
	"doctor-booking-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachBookingRoutes(router chi.Router, middlewares *middlewares.Middlewares, bookingLimiter *middlewares.RateLimiter, bookingController contracts.BookingController) {
	router.With(middlewares.RequireRole(constvars.RoleDoctor)).Get("/doctor", bookingController.ListDoctorBookings)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.RequireRole(constvars.RolePatient))

		r.With(bookingLimiter.Limit).Post("/", bookingController.CreateBooking)
		r.Get("/me", bookingController.ListPatientBookings)
		r.Delete("/{booking_id}", bookingController.CancelBooking)
	})
}
