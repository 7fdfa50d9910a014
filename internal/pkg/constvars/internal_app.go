package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_CALLER_IDENTITY_KEY      ContextKey = "caller_identity"
)

const (
	REQUEST_ID_PREFIX = "DRBK_SVC_"
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

const (
	StorageDriverMongo    = "mongo"
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"

	LockerDriverRedis = "redis"
	LockerDriverLocal = "local"
)

const (
	ResourceDoctors      = "doctors"
	ResourceAvailability = "availability"
	ResourceBookings     = "bookings"
)

const (
	MongoCollectionAvailabilityRules = "availability_rules"
	MongoCollectionBookings          = "bookings"

	PostgresTableAvailabilityRules = "availability_rules"
	PostgresTableBookings          = "bookings"
)
