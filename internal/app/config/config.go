package config

import (
	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/utils"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		MongoDB: MongoDB{
			Port:     utils.GetEnvString("MONGODB_PORT", "27017"),
			Host:     utils.GetEnvString("MONGODB_HOST", "localhost"),
			DbName:   utils.GetEnvString("MONGODB_DB_NAME", "doctor_booking"),
			Username: utils.GetEnvString("MONGODB_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MONGODB_PASSWORD", "defaultPassword"),
		},
		PostgresDB: PostgresDB{
			Port:     utils.GetEnvString("POSTGRES_PORT", "5432"),
			Host:     utils.GetEnvString("POSTGRES_HOST", "localhost"),
			DBName:   utils.GetEnvString("POSTGRES_DB_NAME", "doctor_booking"),
			Username: utils.GetEnvString("POSTGRES_USERNAME", "postgres"),
			Password: utils.GetEnvString("POSTGRES_PASSWORD", "postgres"),
			SSLMode:  utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),
			MaxConns: utils.GetEnvInt("POSTGRES_MAX_CONNS", 10),
		},
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "defaultUsername"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "defaultPassword"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", constvars.EnvironmentDevelopment),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1.0"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "UTC"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "/api"),
			StorageDriver:              utils.GetEnvString("APP_STORAGE_DRIVER", constvars.StorageDriverMemory),
			LockerDriver:               utils.GetEnvString("APP_LOCKER_DRIVER", constvars.LockerDriverLocal),
			AllowedOrigins:             utils.GetEnvStringSlice("APP_ALLOWED_ORIGINS", []string{"*"}),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 100),
			MaxTimeRequestsPerSeconds:  utils.GetEnvInt("APP_MAX_TIME_REQUESTS_PER_SECONDS", 60),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 1),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT", 10),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 1),
		},
		Slot: AppSlot{
			DurationMinutes: utils.GetEnvInt("SLOT_DURATION_MINUTES", 60),
			BufferMinutes:   utils.GetEnvInt("SLOT_BUFFER_MINUTES", 0),
			MaxWindowDays:   utils.GetEnvInt("SLOT_MAX_WINDOW_DAYS", 62),
		},
		Booking: AppBooking{
			LockTTLInSeconds:          utils.GetEnvInt("LOCK_TTL_SECONDS", 10),
			LockRetryIntervalInMillis: utils.GetEnvInt("LOCK_RETRY_INTERVAL_MILLIS", 50),
			BookingRateLimitPerMinute: utils.GetEnvInt("BOOKING_RATE_LIMIT_PER_MINUTE", 30),
			BookingRateLimitBurst:     utils.GetEnvInt("BOOKING_RATE_LIMIT_BURST", 5),
		},
		Directory: AppDirectory{
			BaseUrl:                 utils.GetEnvString("DIRECTORY_BASE_URL", "http://localhost:8081"),
			RosterCacheTTLInSeconds: utils.GetEnvInt("DIRECTORY_ROSTER_CACHE_TTL_SECONDS", 60),
			HTTPTimeoutInSeconds:    utils.GetEnvInt("DIRECTORY_HTTP_TIMEOUT_SECONDS", 5),
		},
		Minio: AppMinio{
			Enabled:                         utils.GetEnvBool("MINIO_ENABLED", false),
			BucketName:                      utils.GetEnvString("MINIO_BUCKET_NAME", "doctor-images"),
			PreSignedUrlExpiryTimeInMinutes: utils.GetEnvInt("MINIO_PRE_SIGNED_URL_EXPIRY_MINUTES", 60),
		},
		RabbitMQ: AppRabbitMQ{
			Enabled:            utils.GetEnvBool("RABBITMQ_ENABLED", false),
			BookingEventsQueue: utils.GetEnvString("RABBITMQ_BOOKING_EVENTS_QUEUE", "booking_events"),
		},
		Redis: AppRedis{
			Enabled: utils.GetEnvBool("REDIS_ENABLED", false),
		},
	}
}
