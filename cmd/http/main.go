package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doctor-booking-service/internal/app/config"
	"doctor-booking-service/internal/app/contracts"
	"doctor-booking-service/internal/app/delivery/http/controllers"
	"doctor-booking-service/internal/app/delivery/http/middlewares"
	"doctor-booking-service/internal/app/delivery/http/routers"
	"doctor-booking-service/internal/app/drivers/database"
	"doctor-booking-service/internal/app/drivers/logger"
	"doctor-booking-service/internal/app/drivers/messaging"
	"doctor-booking-service/internal/app/drivers/storage"
	"doctor-booking-service/internal/app/services/core/availability"
	"doctor-booking-service/internal/app/services/core/booking"
	"doctor-booking-service/internal/app/services/core/doctors"
	"doctor-booking-service/internal/app/services/core/slot"
	"doctor-booking-service/internal/app/services/shared/locker"
	"doctor-booking-service/internal/app/services/shared/publisher"
	"doctor-booking-service/internal/app/services/shared/redis"
	sharedStorage "doctor-booking-service/internal/app/services/shared/storage"
	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/migrations"

	"github.com/go-chi/chi/v5"
	migrate "github.com/rubenv/sql-migrate"
	"go.uber.org/zap"
)

// Version and Tag are overridden at build time with -ldflags.
var (
	Version = "develop"
	Tag     = "0.0.1-rc"
)

type repositories struct {
	availability contracts.AvailabilityRepository
	booking      contracts.BookingRepository
}

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)
	zapLogger.Info("Starting doctor booking service",
		zap.String("version", Version),
		zap.String("tag", Tag),
		zap.String(constvars.LoggingStorageDriverKey, internalConfig.App.StorageDriver),
		zap.String(constvars.LoggingLockerDriverKey, internalConfig.App.LockerDriver),
	)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		zapLogger.Fatal("Error loading location", zap.Error(err))
	}
	time.Local = location

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	ctx := context.Background()
	if err := bootstrapingTheApp(ctx, bootstrap, location); err != nil {
		shutdownDrivers(bootstrap)
		zapLogger.Fatal("Error bootstraping the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: bootstrap.Router,
	}

	go func() {
		zapLogger.Info("Server listening", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	zapLogger.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Error closing drivers", zap.Error(err))
	}
}

func shutdownDrivers(bootstrap *config.Bootstrap) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = bootstrap.Shutdown(ctx)
}

func bootstrapingTheApp(ctx context.Context, bootstrap *config.Bootstrap, location *time.Location) error {
	internalConfig := bootstrap.InternalConfig
	log := bootstrap.Logger

	repos, err := setupRepositories(ctx, bootstrap)
	if err != nil {
		return err
	}

	// Redis is shared by the locker and the roster cache.
	var redisRepository contracts.RedisRepository
	if internalConfig.App.LockerDriver == constvars.LockerDriverRedis || internalConfig.Redis.Enabled {
		redisClient, err := database.NewRedisClient(ctx, bootstrap.DriverConfig, log)
		if err != nil {
			return err
		}
		bootstrap.Redis = redisClient
		redisRepository = redis.NewRedisRepository(redisClient)
	}

	var lockerService contracts.LockerService
	switch internalConfig.App.LockerDriver {
	case constvars.LockerDriverRedis:
		lockerService = locker.NewRedisLockService(redisRepository, log)
	case constvars.LockerDriverLocal:
		lockerService = locker.NewLocalLockService()
	default:
		return fmt.Errorf(constvars.ErrDevUnknownLockerDriver, internalConfig.App.LockerDriver)
	}

	var eventPublisher contracts.BookingEventPublisher
	if internalConfig.RabbitMQ.Enabled {
		connection, err := messaging.NewRabbitMQ(bootstrap.DriverConfig, log)
		if err != nil {
			return err
		}
		bootstrap.RabbitMQ = connection
		eventPublisher, err = publisher.NewRabbitMQPublisher(connection, internalConfig.RabbitMQ.BookingEventsQueue, log)
		if err != nil {
			return err
		}
	}

	images := doctors.ImageConfig{
		BucketName: internalConfig.Minio.BucketName,
		Expiry:     time.Duration(internalConfig.Minio.PreSignedUrlExpiryTimeInMinutes) * time.Minute,
	}
	if internalConfig.Minio.Enabled {
		minioClient, err := storage.NewMinio(bootstrap.DriverConfig, log)
		if err != nil {
			return err
		}
		bootstrap.Minio = minioClient
		images.Storage = sharedStorage.NewMinioStorage(minioClient)
	}

	var rosterCache contracts.RedisRepository
	if internalConfig.Redis.Enabled {
		rosterCache = redisRepository
	}

	lockOptions := locker.Options{
		TTL:           time.Duration(internalConfig.Booking.LockTTLInSeconds) * time.Second,
		RetryInterval: time.Duration(internalConfig.Booking.LockRetryIntervalInMillis) * time.Millisecond,
	}
	requestTimeout := time.Duration(internalConfig.App.RequestTimeoutInSeconds) * time.Second

	// Availability
	availabilityUsecase := availability.NewAvailabilityUsecase(repos.availability, lockerService, lockOptions, location, log)
	availabilityController := controllers.NewAvailabilityController(log, availabilityUsecase, location, requestTimeout)

	// Slots
	slotUsecase := slot.NewSlotUsecase(repos.availability, repos.booking, slot.Config{
		SlotMinutes:   internalConfig.Slot.DurationMinutes,
		BufferMinutes: internalConfig.Slot.BufferMinutes,
		MaxWindowDays: internalConfig.Slot.MaxWindowDays,
	}, location, log)
	slotController := controllers.NewSlotController(log, slotUsecase, requestTimeout)

	// Bookings
	bookingUsecase := booking.NewBookingUsecase(repos.booking, slotUsecase, lockerService, lockOptions, eventPublisher, log)
	bookingController := controllers.NewBookingController(log, bookingUsecase, location, requestTimeout)

	// Doctors
	directoryClient := doctors.NewDoctorDirectoryClient(
		internalConfig.Directory.BaseUrl,
		time.Duration(internalConfig.Directory.HTTPTimeoutInSeconds)*time.Second,
		log,
	)
	doctorUsecase := doctors.NewDoctorUsecase(
		directoryClient,
		rosterCache,
		time.Duration(internalConfig.Directory.RosterCacheTTLInSeconds)*time.Second,
		images,
		log,
	)
	doctorController := controllers.NewDoctorController(log, doctorUsecase, requestTimeout)

	routers.SetupRoutes(bootstrap.Router, internalConfig, middlewares.NewMiddlewares(log, internalConfig), routers.Controllers{
		Doctor:       doctorController,
		Availability: availabilityController,
		Slot:         slotController,
		Booking:      bookingController,
		Health:       controllers.NewHealthController(internalConfig.App.StorageDriver, internalConfig.App.LockerDriver),
	})
	return nil
}

func setupRepositories(ctx context.Context, bootstrap *config.Bootstrap) (repositories, error) {
	log := bootstrap.Logger

	switch bootstrap.InternalConfig.App.StorageDriver {
	case constvars.StorageDriverMongo:
		client, err := database.NewMongoDB(ctx, bootstrap.DriverConfig, log)
		if err != nil {
			return repositories{}, err
		}
		bootstrap.MongoDB = client

		db := client.Database(bootstrap.DriverConfig.MongoDB.DbName)
		if err := availability.EnsureMongoIndexes(ctx, db); err != nil {
			return repositories{}, err
		}
		if err := booking.EnsureMongoIndexes(ctx, db); err != nil {
			return repositories{}, err
		}
		return repositories{
			availability: availability.NewAvailabilityMongoRepository(db, log),
			booking:      booking.NewBookingMongoRepository(db, log),
		}, nil

	case constvars.StorageDriverPostgres:
		pool, err := database.NewPostgresPool(ctx, bootstrap.DriverConfig, log)
		if err != nil {
			return repositories{}, err
		}
		bootstrap.Postgres = pool

		if _, err := migrations.Run(pool, migrate.Up, log); err != nil {
			return repositories{}, err
		}
		return repositories{
			availability: availability.NewAvailabilityPostgresRepository(pool, log),
			booking:      booking.NewBookingPostgresRepository(pool, log),
		}, nil

	case constvars.StorageDriverMemory:
		log.Warn("Using in-memory storage, data is lost on restart")
		return repositories{
			availability: availability.NewAvailabilityMemoryRepository(),
			booking:      booking.NewBookingMemoryRepository(),
		}, nil

	default:
		return repositories{}, fmt.Errorf(constvars.ErrDevUnknownStorageDriver, bootstrap.InternalConfig.App.StorageDriver)
	}
}
