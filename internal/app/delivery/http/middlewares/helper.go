package middlewares

import (
	"context"

	"doctor-booking-service/internal/app/models"
	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/exceptions"
)

func CallerIdentityFromContext(ctx context.Context) (models.CallerIdentity, error) {
	caller, ok := ctx.Value(constvars.CONTEXT_CALLER_IDENTITY_KEY).(models.CallerIdentity)
	if !ok || caller.ID == "" {
		return models.CallerIdentity{}, exceptions.ErrMissingCallerIdentity(nil)
	}
	return caller, nil
}
