package availability

import (
	"context"
	"fmt"
	"time"

	"doctor-booking-service/internal/app/contracts"
	"doctor-booking-service/internal/app/models"
	"doctor-booking-service/internal/app/services/shared/locker"
	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/exceptions"
	"doctor-booking-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type availabilityUsecase struct {
	AvailabilityRepository contracts.AvailabilityRepository
	LockerService          contracts.LockerService
	LockOptions            locker.Options
	Location               *time.Location
	Log                    *zap.Logger
}

func NewAvailabilityUsecase(
	availabilityRepository contracts.AvailabilityRepository,
	lockerService contracts.LockerService,
	lockOptions locker.Options,
	location *time.Location,
	logger *zap.Logger,
) contracts.AvailabilityUsecase {
	return &availabilityUsecase{
		AvailabilityRepository: availabilityRepository,
		LockerService:          lockerService,
		LockOptions:            lockOptions,
		Location:               location,
		Log:                    logger,
	}
}

func (uc *availabilityUsecase) Create(ctx context.Context, doctorID string, startTime, endTime time.Time, recurrence string) (*models.AvailabilityRule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("availabilityUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingRecurrenceKey, recurrence),
	)

	if err := uc.validateInterval(startTime, endTime, recurrence); err != nil {
		uc.Log.Error("availabilityUsecase.Create invalid interval",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	release, err := uc.lockDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	defer release()

	rule := &models.AvailabilityRule{
		ID:         utils.GenerateID(),
		DoctorID:   doctorID,
		StartTime:  startTime.In(uc.Location),
		EndTime:    endTime.In(uc.Location),
		Recurrence: recurrence,
	}
	rule.SetCreatedAtUpdatedAt()

	if err := uc.ensureNoOverlap(ctx, rule); err != nil {
		uc.Log.Error("availabilityUsecase.Create overlap check failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := uc.AvailabilityRepository.Insert(ctx, rule); err != nil {
		uc.Log.Error("availabilityUsecase.Create error calling AvailabilityRepository.Insert",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("availabilityUsecase.Create succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRuleIDKey, rule.ID),
	)
	return rule, nil
}

func (uc *availabilityUsecase) Update(ctx context.Context, doctorID, ruleID string, startTime, endTime time.Time, recurrence string) (*models.AvailabilityRule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("availabilityUsecase.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingRuleIDKey, ruleID),
	)

	if err := uc.validateInterval(startTime, endTime, recurrence); err != nil {
		return nil, err
	}

	release, err := uc.lockDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	defer release()

	existing, err := uc.AvailabilityRepository.FindByID(ctx, doctorID, ruleID)
	if err != nil {
		uc.Log.Error("availabilityUsecase.Update error calling AvailabilityRepository.FindByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if existing == nil {
		return nil, exceptions.ErrAvailabilityNotFound(nil, ruleID, doctorID)
	}

	updated := *existing
	updated.StartTime = startTime.In(uc.Location)
	updated.EndTime = endTime.In(uc.Location)
	updated.Recurrence = recurrence
	updated.SetUpdatedAt()

	if err := uc.ensureNoOverlap(ctx, &updated); err != nil {
		return nil, err
	}

	found, err := uc.AvailabilityRepository.Replace(ctx, &updated)
	if err != nil {
		uc.Log.Error("availabilityUsecase.Update error calling AvailabilityRepository.Replace",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if !found {
		return nil, exceptions.ErrAvailabilityNotFound(nil, ruleID, doctorID)
	}

	uc.Log.Info("availabilityUsecase.Update succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRuleIDKey, ruleID),
	)
	return uc.inLocation(updated), nil
}

func (uc *availabilityUsecase) Delete(ctx context.Context, doctorID, ruleID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("availabilityUsecase.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingRuleIDKey, ruleID),
	)

	release, err := uc.lockDoctor(ctx, doctorID)
	if err != nil {
		return err
	}
	defer release()

	found, err := uc.AvailabilityRepository.Delete(ctx, doctorID, ruleID)
	if err != nil {
		uc.Log.Error("availabilityUsecase.Delete error calling AvailabilityRepository.Delete",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	if !found {
		return exceptions.ErrAvailabilityNotFound(nil, ruleID, doctorID)
	}

	uc.Log.Info("availabilityUsecase.Delete succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRuleIDKey, ruleID),
	)
	return nil
}

func (uc *availabilityUsecase) ListForDoctor(ctx context.Context, doctorID string) ([]models.AvailabilityRule, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("availabilityUsecase.ListForDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
	)

	rules, err := uc.AvailabilityRepository.FindByDoctorID(ctx, doctorID)
	if err != nil {
		uc.Log.Error("availabilityUsecase.ListForDoctor error calling AvailabilityRepository.FindByDoctorID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	result := make([]models.AvailabilityRule, 0, len(rules))
	for _, rule := range rules {
		result = append(result, *uc.inLocation(rule))
	}

	uc.Log.Info("availabilityUsecase.ListForDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingRuleCountKey, len(result)),
	)
	return result, nil
}

func (uc *availabilityUsecase) validateInterval(startTime, endTime time.Time, recurrence string) error {
	if !utils.IsKnownRecurrence(recurrence) {
		return exceptions.ErrInvalidRecurrence(nil, recurrence)
	}

	start := startTime.Format(time.RFC3339)
	end := endTime.Format(time.RFC3339)
	if !startTime.Before(endTime) {
		return exceptions.ErrInvalidInterval(nil, start, end)
	}
	day := utils.DateOf(startTime, uc.Location)
	nextMidnight := day.AddDate(0, 0, 1)
	if !day.Equal(utils.DateOf(endTime, uc.Location)) && !endTime.Equal(nextMidnight) {
		return exceptions.ErrIntervalSpansDays(nil, start, end)
	}
	return nil
}

func (uc *availabilityUsecase) ensureNoOverlap(ctx context.Context, candidate *models.AvailabilityRule) error {
	existing, err := uc.AvailabilityRepository.FindByDoctorID(ctx, candidate.DoctorID)
	if err != nil {
		return err
	}
	if conflicting := findOverlap(candidate, existing, uc.Location); conflicting != nil {
		return exceptions.ErrAvailabilityOverlap(nil, conflicting.ID, candidate.DoctorID, candidate.Recurrence)
	}
	return nil
}

func (uc *availabilityUsecase) lockDoctor(ctx context.Context, doctorID string) (func(), error) {
	key := fmt.Sprintf(constvars.LockKeyAvailabilityDoctorFormat, doctorID)
	return locker.Acquire(ctx, uc.LockerService, uc.Log, key, uc.LockOptions)
}

func (uc *availabilityUsecase) inLocation(rule models.AvailabilityRule) *models.AvailabilityRule {
	rule.StartTime = rule.StartTime.In(uc.Location)
	rule.EndTime = rule.EndTime.In(uc.Location)
	return &rule
}
