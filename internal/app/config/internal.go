package config

type InternalConfig struct {
	App       App          `mapstructure:"app"`
	JWT       AppJWT       `mapstructure:"jwt"`
	Slot      AppSlot      `mapstructure:"slot"`
	Booking   AppBooking   `mapstructure:"booking"`
	Directory AppDirectory `mapstructure:"directory"`
	Minio     AppMinio     `mapstructure:"minio"`
	RabbitMQ  AppRabbitMQ  `mapstructure:"rabbitmq"`
	Redis     AppRedis     `mapstructure:"redis"`
}

type App struct {
	Env                        string   `mapstructure:"env"`
	Port                       string   `mapstructure:"port"`
	Version                    string   `mapstructure:"version"`
	Timezone                   string   `mapstructure:"timezone"`
	EndpointPrefix             string   `mapstructure:"endpoint_prefix"`
	StorageDriver              string   `mapstructure:"storage_driver"`
	LockerDriver               string   `mapstructure:"locker_driver"`
	AllowedOrigins             []string `mapstructure:"allowed_origins"`
	MaxRequests                int      `mapstructure:"max_requests"`
	MaxTimeRequestsPerSeconds  int      `mapstructure:"max_time_requests_per_seconds"`
	RequestBodyLimitInMegabyte int      `mapstructure:"request_body_limit_in_megabyte"`
	RequestTimeoutInSeconds    int      `mapstructure:"request_timeout_in_seconds"`
	ShutdownTimeoutInSeconds   int      `mapstructure:"shutdown_timeout_in_seconds"`
}

type AppJWT struct {
	Secret        string `mapstructure:"secret"`
	ExpTimeInHour int    `mapstructure:"exp_time_in_hour"`
}

type AppSlot struct {
	DurationMinutes int `mapstructure:"duration_minutes"`
	BufferMinutes   int `mapstructure:"buffer_minutes"`
	MaxWindowDays   int `mapstructure:"max_window_days"`
}

type AppBooking struct {
	LockTTLInSeconds          int `mapstructure:"lock_ttl_in_seconds"`
	LockRetryIntervalInMillis int `mapstructure:"lock_retry_interval_in_millis"`
	BookingRateLimitPerMinute int `mapstructure:"booking_rate_limit_per_minute"`
	BookingRateLimitBurst     int `mapstructure:"booking_rate_limit_burst"`
}

type AppDirectory struct {
	BaseUrl                 string `mapstructure:"base_url"`
	RosterCacheTTLInSeconds int    `mapstructure:"roster_cache_ttl_in_seconds"`
	HTTPTimeoutInSeconds    int    `mapstructure:"http_timeout_in_seconds"`
}

type AppMinio struct {
	Enabled                         bool   `mapstructure:"enabled"`
	BucketName                      string `mapstructure:"bucket_name"`
	PreSignedUrlExpiryTimeInMinutes int    `mapstructure:"pre_signed_url_expiry_time_in_minutes"`
}

type AppRabbitMQ struct {
	Enabled            bool   `mapstructure:"enabled"`
	BookingEventsQueue string `mapstructure:"booking_events_queue"`
}

type AppRedis struct {
	Enabled bool `mapstructure:"enabled"`
}
