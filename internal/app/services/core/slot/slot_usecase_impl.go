package slot

import (
	"context"
	"iter"
	"time"

	"doctor-booking-service/internal/app/contracts"
	"doctor-booking-service/internal/app/models"
	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/exceptions"
	"doctor-booking-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type slotUsecase struct {
	AvailabilityRepository contracts.AvailabilityRepository
	BookingRepository      contracts.BookingRepository
	Config                 Config
	Loc                    *time.Location
	Log                    *zap.Logger
}

func NewSlotUsecase(
	availabilityRepository contracts.AvailabilityRepository,
	bookingRepository contracts.BookingRepository,
	config Config,
	location *time.Location,
	logger *zap.Logger,
) contracts.SlotUsecase {
	if config.SlotMinutes <= 0 {
		config.SlotMinutes = 60
	}
	if config.BufferMinutes < 0 {
		config.BufferMinutes = 0
	}
	if config.MaxWindowDays <= 0 {
		config.MaxWindowDays = 62
	}
	return &slotUsecase{
		AvailabilityRepository: availabilityRepository,
		BookingRepository:      bookingRepository,
		Config:                 config,
		Loc:                    location,
		Log:                    logger,
	}
}

func (uc *slotUsecase) Location() *time.Location {
	return uc.Loc
}

// Resolve loads the doctor's rules and confirmed bookings once and returns a
// sequence that computes each day's slots when pulled. Days without slots are
// skipped. Ranging over the sequence again yields the same days.
func (uc *slotUsecase) Resolve(ctx context.Context, doctorID string, from, to time.Time) (iter.Seq2[time.Time, []models.ResolvedSlot], error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	from = utils.DateOf(from, uc.Loc)
	to = utils.DateOf(to, uc.Loc)
	uc.Log.Info("slotUsecase.Resolve called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingWindowFromKey, utils.FormatDate(from)),
		zap.String(constvars.LoggingWindowToKey, utils.FormatDate(to)),
	)

	if from.After(to) {
		return nil, exceptions.ErrInvalidWindow(nil, utils.FormatDate(from), utils.FormatDate(to))
	}
	if days := utils.DaysBetween(from, to); days > uc.Config.MaxWindowDays {
		return nil, exceptions.ErrWindowTooLarge(nil, days, uc.Config.MaxWindowDays)
	}

	rules, err := uc.AvailabilityRepository.FindByDoctorID(ctx, doctorID)
	if err != nil {
		uc.Log.Error("slotUsecase.Resolve error calling AvailabilityRepository.FindByDoctorID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	bookings, err := uc.BookingRepository.FindConfirmedByDoctorBetween(ctx, doctorID, utils.FormatDate(from), utils.FormatDate(to))
	if err != nil {
		uc.Log.Error("slotUsecase.Resolve error calling BookingRepository.FindConfirmedByDoctorBetween",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	booked := bookedSet(bookings)
	cfg := uc.Config
	loc := uc.Loc

	uc.Log.Info("slotUsecase.Resolve succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingRuleCountKey, len(rules)),
	)

	return func(yield func(time.Time, []models.ResolvedSlot) bool) {
		if len(rules) == 0 {
			return
		}
		for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
			if ctx.Err() != nil {
				return
			}
			slots := resolveDay(doctorID, day, rules, booked, cfg, loc)
			if len(slots) == 0 {
				continue
			}
			if !yield(day, slots) {
				return
			}
		}
	}, nil
}

// IsSlotAvailable reports whether (startTime, endTime) on date is part of the
// doctor's current resolution.
func (uc *slotUsecase) IsSlotAvailable(ctx context.Context, doctorID string, date time.Time, startTime, endTime string) (bool, error) {
	day := utils.DateOf(date, uc.Loc)
	days, err := uc.Resolve(ctx, doctorID, day, day)
	if err != nil {
		return false, err
	}

	for _, slots := range days {
		for _, s := range slots {
			if s.StartTime == startTime && s.EndTime == endTime {
				return true, nil
			}
		}
	}
	return false, nil
}
