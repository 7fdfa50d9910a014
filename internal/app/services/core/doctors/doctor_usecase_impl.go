package doctors

import (
	"context"
	"time"

	"doctor-booking-service/internal/app/contracts"
	"doctor-booking-service/internal/app/models"
	"doctor-booking-service/internal/pkg/constvars"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const presignConcurrency = 8

// ImageConfig enables pre-signed image URLs. A nil Storage disables them.
type ImageConfig struct {
	Storage    contracts.Storage
	BucketName string
	Expiry     time.Duration
}

type doctorUsecase struct {
	DirectoryClient contracts.DoctorDirectoryClient
	RedisRepository contracts.RedisRepository
	RosterCacheTTL  time.Duration
	Images          ImageConfig
	Log             *zap.Logger
}

// NewDoctorUsecase wires the directory. redisRepository may be nil, which
// disables roster caching.
func NewDoctorUsecase(
	directoryClient contracts.DoctorDirectoryClient,
	redisRepository contracts.RedisRepository,
	rosterCacheTTL time.Duration,
	images ImageConfig,
	logger *zap.Logger,
) contracts.DoctorUsecase {
	return &doctorUsecase{
		DirectoryClient: directoryClient,
		RedisRepository: redisRepository,
		RosterCacheTTL:  rosterCacheTTL,
		Images:          images,
		Log:             logger,
	}
}

func (uc *doctorUsecase) ListVerified(ctx context.Context, credential, query string) ([]models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.ListVerified called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSearchQueryKey, query),
	)

	roster, cacheHit := uc.cachedRoster(ctx)
	if !cacheHit {
		fetched, err := uc.DirectoryClient.FetchVerified(ctx, credential)
		if err != nil {
			uc.Log.Error("doctorUsecase.ListVerified error calling DirectoryClient.FetchVerified",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, err
		}

		roster, err = uc.presignImages(ctx, fetched)
		if err != nil {
			return nil, err
		}
		uc.cacheRoster(ctx, roster)
	}

	result := Search(roster, query)
	uc.Log.Info("doctorUsecase.ListVerified succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Bool(constvars.LoggingCacheHitKey, cacheHit),
		zap.Int(constvars.LoggingResponseLengthKey, len(result)),
	)
	return result, nil
}

func (uc *doctorUsecase) FindByID(ctx context.Context, credential, doctorID string) (*models.Doctor, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("doctorUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	doctor, err := uc.DirectoryClient.FetchByID(ctx, credential, doctorID)
	if err != nil {
		uc.Log.Error("doctorUsecase.FindByID error calling DirectoryClient.FetchByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	signed, err := uc.presignImages(ctx, []models.Doctor{*doctor})
	if err != nil {
		return nil, err
	}

	uc.Log.Info("doctorUsecase.FindByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)
	return &signed[0], nil
}

// presignImages fills ImageURL for doctors that only carry an object key.
func (uc *doctorUsecase) presignImages(ctx context.Context, roster []models.Doctor) ([]models.Doctor, error) {
	result := make([]models.Doctor, len(roster))
	copy(result, roster)
	if uc.Images.Storage == nil {
		return result, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(presignConcurrency)
	for i := range result {
		if result[i].ImageURL != "" || result[i].ImageObjectKey == "" {
			continue
		}
		g.Go(func() error {
			signedURL, err := uc.Images.Storage.GetObjectUrlWithExpiryTime(gctx, uc.Images.BucketName, result[i].ImageObjectKey, uc.Images.Expiry)
			if err != nil {
				return err
			}
			result[i].ImageURL = signedURL
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Error("doctorUsecase.presignImages error calling Storage.GetObjectUrlWithExpiryTime",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketNameKey, uc.Images.BucketName),
			zap.Error(err),
		)
		return nil, err
	}
	return result, nil
}

func (uc *doctorUsecase) cachedRoster(ctx context.Context) ([]models.Doctor, bool) {
	if uc.RedisRepository == nil || uc.RosterCacheTTL <= 0 {
		return nil, false
	}

	raw, err := uc.RedisRepository.Get(ctx, constvars.CacheKeyDoctorRoster)
	if err != nil || raw == "" {
		if err != nil {
			uc.Log.Warn("doctorUsecase.cachedRoster redis get failed", zap.Error(err))
		}
		return nil, false
	}

	var roster []models.Doctor
	if err := json.Unmarshal([]byte(raw), &roster); err != nil {
		uc.Log.Warn("doctorUsecase.cachedRoster discarding unreadable cache entry", zap.Error(err))
		return nil, false
	}
	return roster, true
}

func (uc *doctorUsecase) cacheRoster(ctx context.Context, roster []models.Doctor) {
	if uc.RedisRepository == nil || uc.RosterCacheTTL <= 0 {
		return
	}
	if err := uc.RedisRepository.Set(ctx, constvars.CacheKeyDoctorRoster, roster, uc.RosterCacheTTL); err != nil {
		uc.Log.Warn("doctorUsecase.cacheRoster redis set failed", zap.Error(err))
	}
}
