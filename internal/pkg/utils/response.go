package utils

import (
	"errors"
	"net/http"

	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/dto/responses"
	"doctor-booking-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	response := responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// BuildErrorResponse writes the error envelope. Unknown errors are reported as
// INTERNAL without leaking their message to the client.
func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	response := exceptions.CustomError{
		StatusCode:    constvars.StatusInternalServerError,
		Success:       false,
		ClientMessage: constvars.ErrClientSomethingWrongWithApplication,
		Kind:          exceptions.KindInternal,
	}

	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		response.StatusCode = customErr.StatusCode
		response.ClientMessage = customErr.ClientMessage
		response.Kind = customErr.Kind
		response.IsRetryable = customErr.Retryable()
		for _, location := range customErr.Locations {
			log.Error(customErr.DevMessage,
				zap.String(constvars.LoggingErrorKey, string(customErr.Kind)),
				zap.Any(constvars.LoggingLocationKey, location),
			)
		}
		if GetEnvString("APP_ENV", constvars.EnvironmentDevelopment) != constvars.EnvironmentProduction {
			response.DevMessage = customErr.DevMessage
			response.Locations = customErr.Locations
		}
	} else {
		log.Error(err.Error())
	}

	if response.StatusCode == constvars.StatusTooManyRequests {
		w.Header().Set(constvars.HeaderRetryAfter, "1")
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(response.StatusCode)
	json.NewEncoder(w).Encode(response)
}
