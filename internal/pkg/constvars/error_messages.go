package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":   "is required",
	"min":        "must be at least %s characters long",
	"max":        "maximum at %s characters long",
	"oneof":      "must be one of [%s]",
	"gt":         "must be greater than %s",
	"datetime":   "must follow the layout %s",
	"recurrence": "must be one of [none, daily, weekly]",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"oneof":    true,
	"gt":       true,
	"datetime": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientTooManyRequests               = "too many requests, please slow down"

	ErrClientInvalidInterval         = "end time must be after start time"
	ErrClientIntervalSpansDays       = "start and end time must be on the same day"
	ErrClientInvalidRecurrence       = "recurring must be one of none, daily or weekly"
	ErrClientInvalidWindow           = "from date must not be after to date"
	ErrClientWindowTooLarge          = "requested date window is too large"
	ErrClientAvailabilityOverlap     = "availability overlaps with an existing availability"
	ErrClientAvailabilityNotFound    = "availability not found"
	ErrClientDoctorNotFound          = "doctor not found"
	ErrClientBookingNotFound         = "booking not found"
	ErrClientBookingForbidden        = "you can only manage your own bookings"
	ErrClientSlotUnavailable         = "the selected time slot is no longer available"
	ErrClientSlotAlreadyBooked       = "the selected time slot has just been booked"
	ErrClientBookingAlreadyCancelled = "booking is already cancelled"
	ErrClientResourceBusy            = "the resource is busy, please retry"
	ErrClientDirectoryUnavailable    = "doctor directory is unavailable"
	ErrClientRoleNotAllowed          = "your role can't access this feature"
)

// Error messages for developers
const (
	ErrDevInvalidInput           = "invalid input"
	ErrDevCannotParseJSON        = "cannot parse JSON"
	ErrDevCannotParseTime        = "cannot parse time value %s"
	ErrDevValidationFailed       = "validation failed"
	ErrDevInvalidRequestPayload  = "invalid request payload"
	ErrDevURLParamIDValidation   = "url param %s failed validation"
	ErrDevMissingCallerIdentity  = "caller identity missing from context"
	ErrDevServerDeadlineExceeded = "deadline exceeded"
	ErrDevServerProcess          = "server failed to process the request"
	ErrDevCannotMarshalJSON      = "cannot marshal JSON"
	ErrDevCreateHTTPRequest      = "failed to create HTTP request"
	ErrDevSendHTTPRequest        = "failed to send HTTP request"
	ErrDevDecodeHTTPResponse     = "failed to decode HTTP response from %s"
	ErrDevUnexpectedRemoteStatus = "unexpected status %d from %s"
	ErrDevRateLimited            = "rate limit exceeded"
	ErrDevPanicRecovered         = "panic recovered while serving request"
	ErrDevUnknownStorageDriver   = "unknown storage driver %s"
	ErrDevUnknownLockerDriver    = "unknown locker driver %s"

	ErrDevAuthSigningMethod  = "unexpected signing method"
	ErrDevAuthTokenInvalid   = "invalid token"
	ErrDevAuthTokenMissing   = "token missing"
	ErrDevAuthTokenClaims    = "token claims missing subject or role"
	ErrDevAuthRoleNotAllowed = "role %s is not allowed on this route"
	ErrDevAuthGenerateToken  = "failed to generate token"

	ErrDevInvalidInterval          = "start time %s is not before end time %s"
	ErrDevIntervalSpansDays        = "interval %s - %s spans more than one calendar day"
	ErrDevInvalidRecurrence        = "unknown recurrence %q"
	ErrDevInvalidWindow            = "window from %s is after to %s"
	ErrDevWindowTooLarge           = "window of %d days exceeds maximum of %d days"
	ErrDevAvailabilityOverlap      = "availability overlaps rule %s of doctor %s in recurrence class %s"
	ErrDevAvailabilityNotFound     = "availability rule %s not found for doctor %s"
	ErrDevDoctorNotFound           = "doctor %s not found in directory"
	ErrDevBookingNotFound          = "booking %s not found"
	ErrDevBookingForbidden         = "patient %s is not the owner of booking %s"
	ErrDevSlotUnavailable          = "slot %s %s of doctor %s is not in the current resolution"
	ErrDevSlotAlreadyBooked        = "slot %s %s of doctor %s already has a confirmed booking"
	ErrDevBookingInvalidTransition = "booking %s cannot transition from %s to %s"
	ErrDevLockNotAcquired          = "failed to acquire lock %s"
	ErrDevLockNotOwned             = "lock %s not owned by this client"

	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToDeleteDocument   = "failed to delete document from database"
	ErrDevDBFailedToIterateDocuments = "failed to iterate documents from database"
	ErrDevDBFailedToCreateIndex      = "failed to create index %s"
	ErrDevDBFailedToInsertData       = "failed to insert data into postgres"
	ErrDevDBFailedToUpdateData       = "failed to update data on postgres"
	ErrDevDBFailedToFindData         = "failed to find data on postgres"
	ErrDevDBFailedToDeleteData       = "failed to delete data from postgres"
	ErrDevDBFailedToIterateDataset   = "failed to iterate dataset from postgres"
	ErrDevDBFailedToMigrate          = "failed to apply postgres schema"

	ErrDevRedisGetNoData  = "failed to get data from redis with key %s"
	ErrDevRedisSetData    = "failed to set data into redis"
	ErrDevRedisDeleteData = "failed to delete data from redis"
	ErrDevRedisExpireData = "failed to extend expiration of redis key"

	ErrDevRabbitMQPublishMessage = "failed to publish message into queue %s"
	ErrDevMinioPresignObject     = "failed to presign object from bucket %s"
)
