package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDataKey           = "data"
	LoggingQueryParamsKey    = "query_params"
	LoggingResponseKey       = "response"
	LoggingRequestKey        = "request"
	LoggingResponseLengthKey = "response_length"
	LoggingErrorKey          = "error"
	LoggingLocationKey       = "location"

	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"

	LoggingCallerIDKey   = "caller_id"
	LoggingCallerRoleKey = "caller_role"

	LoggingDoctorIDKey      = "doctor_id"
	LoggingPatientIDKey     = "patient_id"
	LoggingRuleIDKey        = "rule_id"
	LoggingBookingIDKey     = "booking_id"
	LoggingRecurrenceKey    = "recurrence"
	LoggingDateKey          = "date"
	LoggingStartTimeKey     = "start_time"
	LoggingEndTimeKey       = "end_time"
	LoggingWindowFromKey    = "window_from"
	LoggingWindowToKey      = "window_to"
	LoggingSlotCountKey     = "slot_count"
	LoggingRuleCountKey     = "rule_count"
	LoggingEventTypeKey     = "event_type"
	LoggingQueueNameKey     = "queue_name"
	LoggingBucketNameKey    = "bucket_name"
	LoggingObjectKey        = "object_key"
	LoggingSearchQueryKey   = "search_query"
	LoggingCacheHitKey      = "cache_hit"
	LoggingRemoteStatusKey  = "remote_status"
	LoggingRemoteURLKey     = "remote_url"
	LoggingStorageDriverKey = "storage_driver"
	LoggingLockerDriverKey  = "locker_driver"

	LoggingRedisKey              = "redis_key"
	LoggingLockValueKey          = "lock_value"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockAttemptsKey       = "lock_attempts"
)
