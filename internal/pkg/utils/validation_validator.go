package utils

import (
	"doctor-booking-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("recurrence", validateRecurrence)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateRecurrence(fl validator.FieldLevel) bool {
	return IsKnownRecurrence(fl.Field().String())
}

func IsKnownRecurrence(value string) bool {
	switch value {
	case constvars.RecurrenceNone, constvars.RecurrenceDaily, constvars.RecurrenceWeekly:
		return true
	}
	return false
}
