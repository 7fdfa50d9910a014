package booking

import (
	"context"
	"time"

	"doctor-booking-service/internal/app/contracts"
	"doctor-booking-service/internal/app/models"
	"doctor-booking-service/internal/app/services/shared/locker"
	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/exceptions"
	"doctor-booking-service/internal/pkg/utils"

	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

type bookingUsecase struct {
	BookingRepository contracts.BookingRepository
	SlotUsecase       contracts.SlotUsecase
	LockerService     contracts.LockerService
	LockOptions       locker.Options
	Publisher         contracts.BookingEventPublisher
	Log               *zap.Logger
	now               func() time.Time
}

// NewBookingUsecase builds the booking coordinator. publisher may be nil, in
// which case no booking events are emitted.
func NewBookingUsecase(
	bookingRepository contracts.BookingRepository,
	slotUsecase contracts.SlotUsecase,
	lockerService contracts.LockerService,
	lockOptions locker.Options,
	publisher contracts.BookingEventPublisher,
	logger *zap.Logger,
) contracts.BookingUsecase {
	return &bookingUsecase{
		BookingRepository: bookingRepository,
		SlotUsecase:       slotUsecase,
		LockerService:     lockerService,
		LockOptions:       lockOptions,
		Publisher:         publisher,
		Log:               logger,
		now:               time.Now,
	}
}

func (uc *bookingUsecase) Book(ctx context.Context, doctorID, patientID string, date time.Time, startTime, endTime string) (*models.Booking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	day := utils.DateOf(date, uc.SlotUsecase.Location())
	dateStr := utils.FormatDate(day)
	uc.Log.Info("bookingUsecase.Book called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
		zap.String(constvars.LoggingDateKey, dateStr),
		zap.String(constvars.LoggingStartTimeKey, startTime),
		zap.String(constvars.LoggingEndTimeKey, endTime),
	)

	start, err := utils.ParseClockOnDate(day, startTime)
	if err != nil {
		return nil, err
	}
	end, err := utils.ParseClockOnDate(day, endTime)
	if err != nil {
		return nil, err
	}
	// 00:00 as an end time is the midnight closing the day.
	if end.Equal(day) {
		end = end.AddDate(0, 0, 1)
	}
	if !start.Before(end) {
		return nil, exceptions.ErrInvalidInterval(nil, startTime, endTime)
	}
	startTime, endTime = utils.FormatClock(start), utils.FormatClock(end)

	lease, err := locker.AcquireLease(ctx, uc.LockerService, uc.Log, models.SlotKey(doctorID, dateStr, startTime), uc.LockOptions)
	if err != nil {
		uc.Log.Error("bookingUsecase.Book error acquiring slot lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	defer lease.Release()

	existing, err := uc.BookingRepository.FindConfirmedBySlot(ctx, doctorID, dateStr, startTime)
	if err != nil {
		uc.Log.Error("bookingUsecase.Book error calling BookingRepository.FindConfirmedBySlot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if existing != nil {
		return nil, exceptions.ErrSlotAlreadyBooked(nil, dateStr, startTime, doctorID)
	}

	available, err := uc.SlotUsecase.IsSlotAvailable(ctx, doctorID, day, startTime, endTime)
	if err != nil {
		uc.Log.Error("bookingUsecase.Book error calling SlotUsecase.IsSlotAvailable",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if !available {
		return nil, exceptions.ErrSlotUnavailable(nil, dateStr, startTime, doctorID)
	}

	booking := &models.Booking{
		ID:        utils.GenerateID(),
		DoctorID:  doctorID,
		PatientID: patientID,
		Date:      dateStr,
		StartTime: startTime,
		EndTime:   endTime,
		Status:    constvars.BookingStatusConfirmed,
	}
	booking.SetCreatedAtUpdatedAt()

	// The checks above may have outlived most of the lock TTL.
	if err := lease.KeepAlive(ctx); err != nil {
		return nil, err
	}

	if err := uc.BookingRepository.Insert(ctx, booking); err != nil {
		uc.Log.Error("bookingUsecase.Book error calling BookingRepository.Insert",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.publish(ctx, constvars.BookingEventConfirmed, booking)

	uc.Log.Info("bookingUsecase.Book succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, booking.ID),
	)
	return booking, nil
}

func (uc *bookingUsecase) Cancel(ctx context.Context, bookingID, requestingPatientID string) (*models.Booking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.Cancel called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
		zap.String(constvars.LoggingPatientIDKey, requestingPatientID),
	)

	booking, err := uc.BookingRepository.FindByID(ctx, bookingID)
	if err != nil {
		uc.Log.Error("bookingUsecase.Cancel error calling BookingRepository.FindByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if booking == nil {
		return nil, exceptions.ErrBookingNotFound(nil, bookingID)
	}
	if booking.PatientID != requestingPatientID {
		return nil, exceptions.ErrBookingForbidden(nil, requestingPatientID, bookingID)
	}
	if !booking.IsConfirmed() {
		return nil, exceptions.ErrBookingInvalidTransition(nil, bookingID, booking.Status, constvars.BookingStatusCancelled)
	}

	cancelledAt := uc.now().UTC()
	ok, err := uc.BookingRepository.TransitionStatus(ctx, bookingID, constvars.BookingStatusConfirmed, constvars.BookingStatusCancelled, cancelledAt)
	if err != nil {
		uc.Log.Error("bookingUsecase.Cancel error calling BookingRepository.TransitionStatus",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if !ok {
		return nil, exceptions.ErrBookingInvalidTransition(nil, bookingID, constvars.BookingStatusCancelled, constvars.BookingStatusCancelled)
	}

	booking.Status = constvars.BookingStatusCancelled
	booking.CancelledAt = &cancelledAt
	booking.UpdatedAt = cancelledAt

	uc.publish(ctx, constvars.BookingEventCancelled, booking)

	uc.Log.Info("bookingUsecase.Cancel succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBookingIDKey, bookingID),
	)
	return booking, nil
}

func (uc *bookingUsecase) ListForPatient(ctx context.Context, patientID string) ([]models.Booking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.ListForPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, patientID),
	)

	bookings, err := uc.BookingRepository.FindByPatientID(ctx, patientID)
	if err != nil {
		uc.Log.Error("bookingUsecase.ListForPatient error calling BookingRepository.FindByPatientID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return bookings, nil
}

func (uc *bookingUsecase) ListForDoctor(ctx context.Context, doctorID string, from, to time.Time) ([]models.Booking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	fromDate := utils.FormatDate(utils.DateOf(from, uc.SlotUsecase.Location()))
	toDate := utils.FormatDate(utils.DateOf(to, uc.SlotUsecase.Location()))
	uc.Log.Info("bookingUsecase.ListForDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, doctorID),
		zap.String(constvars.LoggingWindowFromKey, fromDate),
		zap.String(constvars.LoggingWindowToKey, toDate),
	)

	if fromDate > toDate {
		return nil, exceptions.ErrInvalidWindow(nil, fromDate, toDate)
	}

	bookings, err := uc.BookingRepository.FindByDoctorBetween(ctx, doctorID, fromDate, toDate)
	if err != nil {
		uc.Log.Error("bookingUsecase.ListForDoctor error calling BookingRepository.FindByDoctorBetween",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return bookings, nil
}

// publish emits a booking event. The booking is already committed, so a
// failure is logged and otherwise ignored.
func (uc *bookingUsecase) publish(ctx context.Context, eventType string, booking *models.Booking) {
	if uc.Publisher == nil {
		return
	}

	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := uc.Publisher.PublishBookingEvent(publishCtx, models.NewBookingEvent(eventType, booking)); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		uc.Log.Warn("bookingUsecase.publish failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventTypeKey, eventType),
			zap.String(constvars.LoggingBookingIDKey, booking.ID),
			zap.Error(err),
		)
	}
}
