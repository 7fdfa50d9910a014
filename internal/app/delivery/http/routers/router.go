package routers

import (
	"fmt"
	"strings"
	"time"

	"doctor-booking-service/internal/app/config"
	"doctor-booking-service/internal/app/contracts"
	"doctor-booking-service/internal/app/delivery/http/controllers"
	"doctor-booking-service/internal/app/delivery/http/middlewares"
	"doctor-booking-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// bookingLimiterBlockTime is how long an IP stays blocked after exhausting
// its booking bucket.
const bookingLimiterBlockTime = 10 * time.Second

type Controllers struct {
	Doctor       contracts.DoctorController
	Availability contracts.AvailabilityController
	Slot         contracts.SlotController
	Booking      contracts.BookingController
	Health       *controllers.HealthController
}

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	controllers Controllers,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   internalConfig.App.AllowedOrigins,
		AllowedMethods:   []string{constvars.MethodGet, constvars.MethodPost, constvars.MethodPut, constvars.MethodDelete, constvars.MethodOptions},
		AllowedHeaders:   []string{constvars.HeaderAccept, constvars.HeaderAuthorization, constvars.HeaderContentType, constvars.HeaderCSRFToken, constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderLink, constvars.HeaderXRequestID, constvars.HeaderRetryAfter},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.GlobalRateLimit())
	router.Use(middlewares.BodyLimit)

	bookingLimiter := NewBookingRateLimiter(internalConfig, middlewares)

	endpointPrefix := fmt.Sprintf("/%s", strings.Trim(internalConfig.App.EndpointPrefix, "/"))

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Get("/health", controllers.Health.Health)

		r.Group(func(r chi.Router) {
			r.Use(middlewares.Authenticate)

			r.Route("/doctors", func(r chi.Router) {
				attachDoctorRoutes(r, controllers.Doctor, controllers.Slot)
			})

			r.Route("/availability", func(r chi.Router) {
				attachAvailabilityRoutes(r, middlewares, controllers.Availability)
			})

			r.Route("/bookings", func(r chi.Router) {
				attachBookingRoutes(r, middlewares, bookingLimiter, controllers.Booking)
			})
		})
	})
}

// NewBookingRateLimiter spreads BookingRateLimitPerMinute evenly over a minute
// with BookingRateLimitBurst tokens up front.
func NewBookingRateLimiter(internalConfig *config.InternalConfig, m *middlewares.Middlewares) *middlewares.RateLimiter {
	perMinute := internalConfig.Booking.BookingRateLimitPerMinute
	if perMinute <= 0 {
		perMinute = 30
	}
	return middlewares.NewRateLimiter(
		internalConfig.Booking.BookingRateLimitBurst,
		time.Minute/time.Duration(perMinute),
		bookingLimiterBlockTime,
		m.Log,
	)
}
