package contracts

import (
	"context"

	"doctor-booking-service/internal/app/models"
)

type BookingEventPublisher interface {
	PublishBookingEvent(ctx context.Context, event models.BookingEvent) error
}
