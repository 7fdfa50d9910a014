package exceptions

import (
	"fmt"

	"doctor-booking-service/internal/pkg/constvars"
)

var (
	ErrURLParamIDValidation = func(err error, paramName string) *CustomError {
		return buildNewCustomError(err, constvars.StatusBadRequest, KindValidation, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevURLParamIDValidation, paramName))
	}
	ErrInputValidation = func(err error) *CustomError {
		return buildNewCustomError(err, constvars.StatusBadRequest, KindValidation, FormatFirstValidationError(err), constvars.ErrDevValidationFailed)
	}
	ErrCannotParseJSON = func(err error) *CustomError {
		return buildNewCustomError(err, constvars.StatusBadRequest, KindValidation, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCannotParseJSON)
	}
	ErrCannotParseTime = func(err error, value string) *CustomError {
		return buildNewCustomError(err, constvars.StatusBadRequest, KindValidation, constvars.ErrClientCannotProcessRequest, fmt.Sprintf(constvars.ErrDevCannotParseTime, value))
	}
	ErrCannotMarshalJSON = func(err error) *CustomError {
		return buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevCannotMarshalJSON)
	}
	ErrServerDeadlineExceeded = func(err error) *CustomError {
		return transient(buildNewCustomError(err, constvars.StatusGatewayTimeout, KindInternal, constvars.ErrClientServerLongRespond, constvars.ErrDevServerDeadlineExceeded))
	}
	ErrServerProcess = func(err error) *CustomError {
		return buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientCannotProcessRequest, constvars.ErrDevServerProcess)
	}
	ErrPanicRecovered = func(err error) *CustomError {
		return buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevPanicRecovered)
	}
	ErrTooManyRequests = func(err error) *CustomError {
		return transient(buildNewCustomError(err, constvars.StatusTooManyRequests, KindInternal, constvars.ErrClientTooManyRequests, constvars.ErrDevRateLimited))
	}

	// Auth
	ErrTokenMissing = func(err error) *CustomError {
		return buildNewCustomError(err, constvars.StatusUnauthorized, KindUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenMissing)
	}
	ErrTokenInvalid = func(err error) *CustomError {
		return buildNewCustomError(err, constvars.StatusUnauthorized, KindUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenInvalid)
	}
	ErrTokenClaims = func(err error) *CustomError {
		return buildNewCustomError(err, constvars.StatusUnauthorized, KindUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevAuthTokenClaims)
	}
	ErrTokenGenerate = func(err error) *CustomError {
		return buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevAuthGenerateToken)
	}
	ErrRoleNotAllowed = func(err error, role string) *CustomError {
		return buildNewCustomError(err, constvars.StatusForbidden, KindForbidden, constvars.ErrClientRoleNotAllowed, fmt.Sprintf(constvars.ErrDevAuthRoleNotAllowed, role))
	}
	ErrMissingCallerIdentity = func(err error) *CustomError {
		return buildNewCustomError(err, constvars.StatusUnauthorized, KindUnauthorized, constvars.ErrClientNotLoggedIn, constvars.ErrDevMissingCallerIdentity)
	}

	// Availability
	ErrInvalidInterval = func(err error, startTime, endTime string) *CustomError {
		return buildNewCustomError(err, constvars.StatusBadRequest, KindValidation, constvars.ErrClientInvalidInterval, fmt.Sprintf(constvars.ErrDevInvalidInterval, startTime, endTime))
	}
	ErrIntervalSpansDays = func(err error, startTime, endTime string) *CustomError {
		return buildNewCustomError(err, constvars.StatusBadRequest, KindValidation, constvars.ErrClientIntervalSpansDays, fmt.Sprintf(constvars.ErrDevIntervalSpansDays, startTime, endTime))
	}
	ErrInvalidRecurrence = func(err error, recurrence string) *CustomError {
		return buildNewCustomError(err, constvars.StatusBadRequest, KindValidation, constvars.ErrClientInvalidRecurrence, fmt.Sprintf(constvars.ErrDevInvalidRecurrence, recurrence))
	}
	ErrAvailabilityOverlap = func(err error, ruleID, doctorID, recurrence string) *CustomError {
		return buildNewCustomError(err, constvars.StatusConflict, KindOverlap, constvars.ErrClientAvailabilityOverlap, fmt.Sprintf(constvars.ErrDevAvailabilityOverlap, ruleID, doctorID, recurrence))
	}
	ErrAvailabilityNotFound = func(err error, ruleID, doctorID string) *CustomError {
		return buildNewCustomError(err, constvars.StatusNotFound, KindNotFound, constvars.ErrClientAvailabilityNotFound, fmt.Sprintf(constvars.ErrDevAvailabilityNotFound, ruleID, doctorID))
	}

	// Slots
	ErrInvalidWindow = func(err error, from, to string) *CustomError {
		return buildNewCustomError(err, constvars.StatusBadRequest, KindValidation, constvars.ErrClientInvalidWindow, fmt.Sprintf(constvars.ErrDevInvalidWindow, from, to))
	}
	ErrWindowTooLarge = func(err error, days, maxDays int) *CustomError {
		return buildNewCustomError(err, constvars.StatusBadRequest, KindValidation, constvars.ErrClientWindowTooLarge, fmt.Sprintf(constvars.ErrDevWindowTooLarge, days, maxDays))
	}

	// Bookings
	ErrSlotUnavailable = func(err error, date, startTime, doctorID string) *CustomError {
		return buildNewCustomError(err, constvars.StatusConflict, KindSlotUnavailable, constvars.ErrClientSlotUnavailable, fmt.Sprintf(constvars.ErrDevSlotUnavailable, date, startTime, doctorID))
	}
	ErrSlotAlreadyBooked = func(err error, date, startTime, doctorID string) *CustomError {
		return buildNewCustomError(err, constvars.StatusConflict, KindConflict, constvars.ErrClientSlotAlreadyBooked, fmt.Sprintf(constvars.ErrDevSlotAlreadyBooked, date, startTime, doctorID))
	}
	ErrBookingNotFound = func(err error, bookingID string) *CustomError {
		return buildNewCustomError(err, constvars.StatusNotFound, KindNotFound, constvars.ErrClientBookingNotFound, fmt.Sprintf(constvars.ErrDevBookingNotFound, bookingID))
	}
	ErrBookingForbidden = func(err error, patientID, bookingID string) *CustomError {
		return buildNewCustomError(err, constvars.StatusForbidden, KindForbidden, constvars.ErrClientBookingForbidden, fmt.Sprintf(constvars.ErrDevBookingForbidden, patientID, bookingID))
	}
	ErrBookingInvalidTransition = func(err error, bookingID, from, to string) *CustomError {
		return buildNewCustomError(err, constvars.StatusConflict, KindInvalidTransition, constvars.ErrClientBookingAlreadyCancelled, fmt.Sprintf(constvars.ErrDevBookingInvalidTransition, bookingID, from, to))
	}

	// Directory
	ErrDoctorNotFound = func(err error, doctorID string) *CustomError {
		return buildNewCustomError(err, constvars.StatusNotFound, KindNotFound, constvars.ErrClientDoctorNotFound, fmt.Sprintf(constvars.ErrDevDoctorNotFound, doctorID))
	}
	ErrDirectoryRemoteStatus = func(err error, statusCode int, url string) *CustomError {
		return transient(buildNewCustomError(err, constvars.StatusBadGateway, KindInternal, constvars.ErrClientDirectoryUnavailable, fmt.Sprintf(constvars.ErrDevUnexpectedRemoteStatus, statusCode, url)))
	}

	// Locks
	ErrLockNotAcquired = func(err error, key string) *CustomError {
		return buildNewCustomError(err, constvars.StatusConflict, KindConflict, constvars.ErrClientResourceBusy, fmt.Sprintf(constvars.ErrDevLockNotAcquired, key))
	}
	ErrLockNotOwned = func(err error, key string) *CustomError {
		return buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevLockNotOwned, key))
	}

	// Mongo DB
	ErrMongoDBFindDocument = func(err error) *CustomError {
		return transient(buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindDocument))
	}
	ErrMongoDBDeleteDocument = func(err error) *CustomError {
		return transient(buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToDeleteDocument))
	}
	ErrMongoDBIterateDocuments = func(err error) *CustomError {
		return transient(buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToIterateDocuments))
	}
	ErrMongoDBUpdateDocument = func(err error) *CustomError {
		return transient(buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateDocument))
	}
	ErrMongoDBInsertDocument = func(err error) *CustomError {
		return transient(buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertDocument))
	}
	ErrMongoDBCreateIndex = func(err error, indexName string) *CustomError {
		return buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevDBFailedToCreateIndex, indexName))
	}

	// Postgres DB
	ErrPostgresDBFindData = func(err error) *CustomError {
		return transient(buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToFindData))
	}
	ErrPostgresDBDeleteData = func(err error) *CustomError {
		return transient(buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToDeleteData))
	}
	ErrPostgresDBIterateDataset = func(err error) *CustomError {
		return transient(buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToIterateDataset))
	}
	ErrPostgresDBUpdateData = func(err error) *CustomError {
		return transient(buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToUpdateData))
	}
	ErrPostgresDBInsertData = func(err error) *CustomError {
		return transient(buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToInsertData))
	}
	ErrPostgresDBMigrate = func(err error) *CustomError {
		return buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevDBFailedToMigrate)
	}

	// Redis
	ErrRedisGetNoData = func(err error, redisKey string) *CustomError {
		return transient(buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRedisGetNoData, redisKey)))
	}
	ErrRedisSet = func(err error) *CustomError {
		return transient(buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisSetData))
	}
	ErrRedisDelete = func(err error) *CustomError {
		return transient(buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisDeleteData))
	}
	ErrRedisExpire = func(err error) *CustomError {
		return transient(buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, constvars.ErrDevRedisExpireData))
	}

	// RabbitMQ
	ErrRabbitMQPublishMessage = func(err error, queueName string) *CustomError {
		return transient(buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevRabbitMQPublishMessage, queueName)))
	}

	// Minio
	ErrMinioPresignObject = func(err error, bucketName string) *CustomError {
		return transient(buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientSomethingWrongWithApplication, fmt.Sprintf(constvars.ErrDevMinioPresignObject, bucketName)))
	}

	// HTTP
	ErrCreateHTTPRequest = func(err error) *CustomError {
		return buildNewCustomError(err, constvars.StatusInternalServerError, KindInternal, constvars.ErrClientCannotProcessRequest, constvars.ErrDevCreateHTTPRequest)
	}
	ErrSendHTTPRequest = func(err error) *CustomError {
		return transient(buildNewCustomError(err, constvars.StatusBadGateway, KindInternal, constvars.ErrClientDirectoryUnavailable, constvars.ErrDevSendHTTPRequest))
	}
	ErrDecodeResponse = func(err error, url string) *CustomError {
		return buildNewCustomError(err, constvars.StatusBadGateway, KindInternal, constvars.ErrClientDirectoryUnavailable, fmt.Sprintf(constvars.ErrDevDecodeHTTPResponse, url))
	}
)

// transient marks infrastructure failures as retryable. Errors that already
// carried a domain kind keep their own retry semantics.
func transient(e *CustomError) *CustomError {
	if e.Kind == KindInternal {
		e.IsRetryable = true
	}
	return e
}
