package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"doctor-booking-service/internal/app/contracts"
	"doctor-booking-service/internal/app/models"
	"doctor-booking-service/internal/app/services/core/availability"
	"doctor-booking-service/internal/app/services/core/slot"
	"doctor-booking-service/internal/app/services/shared/locker"
	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishBookingEvent(ctx context.Context, event models.BookingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockLockerService struct {
	mock.Mock
}

func (m *MockLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}

func (m *MockLockerService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	args := m.Called(ctx, key, lockValue, expiration)
	return args.Error(0)
}

// slowBookingRepository delays the conflict lookup so the slot lock nears its TTL.
type slowBookingRepository struct {
	contracts.BookingRepository
	delay time.Duration
}

func (r *slowBookingRepository) FindConfirmedBySlot(ctx context.Context, doctorID, date, startTime string) (*models.Booking, error) {
	time.Sleep(r.delay)
	return r.BookingRepository.FindConfirmedBySlot(ctx, doctorID, date, startTime)
}

type fixture struct {
	repo    contracts.BookingRepository
	usecase contracts.BookingUsecase
}

func newFixture(t *testing.T, publisher contracts.BookingEventPublisher) *fixture {
	t.Helper()
	rules := availability.NewAvailabilityMemoryRepository()
	start := time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)
	require.NoError(t, rules.Insert(context.Background(), &models.AvailabilityRule{
		ID:         "rule-1",
		DoctorID:   "doc-1",
		StartTime:  start,
		EndTime:    start.Add(2 * time.Hour),
		Recurrence: constvars.RecurrenceDaily,
	}))

	repo := NewBookingMemoryRepository()
	slots := slot.NewSlotUsecase(rules, repo, slot.Config{SlotMinutes: 60}, time.UTC, zap.NewNop())
	uc := NewBookingUsecase(
		repo,
		slots,
		locker.NewLocalLockService(),
		locker.Options{TTL: time.Second, RetryInterval: 2 * time.Millisecond},
		publisher,
		zap.NewNop(),
	)
	return &fixture{repo: repo, usecase: uc}
}

var monday = time.Date(2030, 1, 7, 0, 0, 0, 0, time.UTC)

func TestBook_Succeeds(t *testing.T) {
	f := newFixture(t, nil)

	b, err := f.usecase.Book(context.Background(), "doc-1", "pat-1", monday, "09:00", "10:00")
	require.NoError(t, err)
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "2030-01-07", b.Date)
	assert.Equal(t, constvars.BookingStatusConfirmed, b.Status)

	stored, err := f.repo.FindConfirmedBySlot(context.Background(), "doc-1", "2030-01-07", "09:00")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, b.ID, stored.ID)
}

func TestBook_SameSlotTwiceIsConflict(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.usecase.Book(ctx, "doc-1", "pat-1", monday, "09:00", "10:00")
	require.NoError(t, err)

	_, err = f.usecase.Book(ctx, "doc-1", "pat-2", monday, "09:00", "10:00")
	require.Error(t, err)
	assert.True(t, exceptions.IsKind(err, exceptions.KindConflict))
	assert.True(t, exceptions.IsRetryable(err))
}

func TestBook_SlotOutsideResolutionIsUnavailable(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		date  time.Time
		start string
		end   string
	}{
		{"outside rule hours", monday, "12:00", "13:00"},
		{"misaligned start", monday, "09:30", "10:30"},
		{"wrong end", monday, "09:00", "09:30"},
		{"after rule end", monday, "11:00", "12:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.usecase.Book(ctx, "doc-1", "pat-1", tt.date, tt.start, tt.end)
			require.Error(t, err)
			assert.True(t, exceptions.IsKind(err, exceptions.KindSlotUnavailable))
		})
	}
}

func TestBook_InvalidClockIsValidationError(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.usecase.Book(context.Background(), "doc-1", "pat-1", monday, "10:00", "09:00")
	assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))

	_, err = f.usecase.Book(context.Background(), "doc-1", "pat-1", monday, "nine", "10:00")
	assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))
}

func TestBook_ConcurrentDoubleBookingExactlyOneWins(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	const patients = 10
	var wg sync.WaitGroup
	errs := make(chan error, patients)
	for i := 0; i < patients; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.usecase.Book(ctx, "doc-1", "pat-"+string(rune('a'+i)), monday, "10:00", "11:00")
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, exceptions.IsKind(err, exceptions.KindConflict), err.Error())
	}
	assert.Equal(t, 1, succeeded)

	confirmed, err := f.repo.FindConfirmedByDoctorBetween(ctx, "doc-1", "2030-01-07", "2030-01-07")
	require.NoError(t, err)
	assert.Len(t, confirmed, 1)
}

func TestBook_PublishesConfirmedEventAndToleratesPublishFailure(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("PublishBookingEvent", mock.Anything, mock.MatchedBy(func(e models.BookingEvent) bool {
		return e.EventType == constvars.BookingEventConfirmed && e.StartTime == "09:00"
	})).Return(errors.New("broker down")).Once()

	f := newFixture(t, publisher)
	b, err := f.usecase.Book(context.Background(), "doc-1", "pat-1", monday, "09:00", "10:00")
	require.NoError(t, err)
	assert.Equal(t, constvars.BookingStatusConfirmed, b.Status)
	publisher.AssertExpectations(t)
}

func TestCancel(t *testing.T) {
	publisher := new(MockPublisher)
	publisher.On("PublishBookingEvent", mock.Anything, mock.Anything).Return(nil)

	f := newFixture(t, publisher)
	ctx := context.Background()

	b, err := f.usecase.Book(ctx, "doc-1", "pat-1", monday, "09:00", "10:00")
	require.NoError(t, err)

	_, err = f.usecase.Cancel(ctx, "missing", "pat-1")
	assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))

	_, err = f.usecase.Cancel(ctx, b.ID, "pat-2")
	assert.True(t, exceptions.IsKind(err, exceptions.KindForbidden))

	cancelled, err := f.usecase.Cancel(ctx, b.ID, "pat-1")
	require.NoError(t, err)
	assert.Equal(t, constvars.BookingStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	_, err = f.usecase.Cancel(ctx, b.ID, "pat-1")
	require.Error(t, err)
	assert.True(t, exceptions.IsKind(err, exceptions.KindInvalidTransition))

	publisher.AssertNumberOfCalls(t, "PublishBookingEvent", 2)
}

func TestCancel_FreesSlotForRebooking(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	b, err := f.usecase.Book(ctx, "doc-1", "pat-1", monday, "09:00", "10:00")
	require.NoError(t, err)
	_, err = f.usecase.Cancel(ctx, b.ID, "pat-1")
	require.NoError(t, err)

	again, err := f.usecase.Book(ctx, "doc-1", "pat-2", monday, "09:00", "10:00")
	require.NoError(t, err)
	assert.NotEqual(t, b.ID, again.ID)

	history, err := f.usecase.ListForDoctor(ctx, "doc-1", monday, monday)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestListings(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.usecase.Book(ctx, "doc-1", "pat-1", monday.AddDate(0, 0, 1), "10:00", "11:00")
	require.NoError(t, err)
	_, err = f.usecase.Book(ctx, "doc-1", "pat-1", monday, "09:00", "10:00")
	require.NoError(t, err)
	_, err = f.usecase.Book(ctx, "doc-1", "pat-2", monday, "10:00", "11:00")
	require.NoError(t, err)

	mine, err := f.usecase.ListForPatient(ctx, "pat-1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "2030-01-07", mine[0].Date)
	assert.Equal(t, "2030-01-08", mine[1].Date)

	doctors, err := f.usecase.ListForDoctor(ctx, "doc-1", monday, monday)
	require.NoError(t, err)
	assert.Len(t, doctors, 2)

	_, err = f.usecase.ListForDoctor(ctx, "doc-1", monday.AddDate(0, 0, 1), monday)
	assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))
}

func TestMemoryRepository_RejectsSecondConfirmedInsert(t *testing.T) {
	repo := NewBookingMemoryRepository()
	ctx := context.Background()
	first := &models.Booking{ID: "b-1", DoctorID: "doc-1", Date: "2030-01-07", StartTime: "09:00", Status: constvars.BookingStatusConfirmed}
	second := &models.Booking{ID: "b-2", DoctorID: "doc-1", Date: "2030-01-07", StartTime: "09:00", Status: constvars.BookingStatusConfirmed}

	require.NoError(t, repo.Insert(ctx, first))
	err := repo.Insert(ctx, second)
	assert.True(t, exceptions.IsKind(err, exceptions.KindConflict))

	ok, err := repo.TransitionStatus(ctx, "b-1", constvars.BookingStatusConfirmed, constvars.BookingStatusCancelled, time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.TransitionStatus(ctx, "b-1", constvars.BookingStatusConfirmed, constvars.BookingStatusCancelled, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, repo.Insert(ctx, second))
}

func TestBook_RefreshesSlotLockBeforeInsert(t *testing.T) {
	const slotKey = "booking:doc-1:2030-01-07:09:00"
	ttl := 4 * time.Millisecond

	newUsecase := func(lockerService contracts.LockerService) (contracts.BookingRepository, contracts.BookingUsecase) {
		rules := availability.NewAvailabilityMemoryRepository()
		start := time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)
		require.NoError(t, rules.Insert(context.Background(), &models.AvailabilityRule{
			ID:         "rule-1",
			DoctorID:   "doc-1",
			StartTime:  start,
			EndTime:    start.Add(2 * time.Hour),
			Recurrence: constvars.RecurrenceDaily,
		}))
		repo := NewBookingMemoryRepository()
		slow := &slowBookingRepository{BookingRepository: repo, delay: 10 * time.Millisecond}
		slots := slot.NewSlotUsecase(rules, repo, slot.Config{SlotMinutes: 60}, time.UTC, zap.NewNop())
		return repo, NewBookingUsecase(slow, slots, lockerService, locker.Options{TTL: ttl}, nil, zap.NewNop())
	}

	t.Run("refreshed lock lets the booking through", func(t *testing.T) {
		lockerService := new(MockLockerService)
		lockerService.On("TryLock", mock.Anything, slotKey, ttl).Return(true, "token-1", nil).Once()
		lockerService.On("Refresh", mock.Anything, slotKey, "token-1", ttl).Return(nil).Once()
		lockerService.On("Unlock", mock.Anything, slotKey, "token-1").Return(nil).Once()

		repo, uc := newUsecase(lockerService)
		booking, err := uc.Book(context.Background(), "doc-1", "pat-1", monday, "09:00", "10:00")
		require.NoError(t, err)

		stored, err := repo.FindByID(context.Background(), booking.ID)
		require.NoError(t, err)
		assert.NotNil(t, stored)
		lockerService.AssertExpectations(t)
	})

	t.Run("lost lock aborts before insert", func(t *testing.T) {
		lockerService := new(MockLockerService)
		lockerService.On("TryLock", mock.Anything, slotKey, ttl).Return(true, "token-1", nil).Once()
		lockerService.On("Refresh", mock.Anything, slotKey, "token-1", ttl).Return(exceptions.ErrLockNotOwned(nil, slotKey)).Once()
		lockerService.On("Unlock", mock.Anything, slotKey, "token-1").Return(exceptions.ErrLockNotOwned(nil, slotKey)).Once()

		repo, uc := newUsecase(lockerService)
		_, err := uc.Book(context.Background(), "doc-1", "pat-1", monday, "09:00", "10:00")
		require.Error(t, err)

		existing, err := repo.FindConfirmedBySlot(context.Background(), "doc-1", "2030-01-07", "09:00")
		require.NoError(t, err)
		assert.Nil(t, existing)
		lockerService.AssertExpectations(t)
	})
}

func TestBook_LastSlotEndingAtMidnight(t *testing.T) {
	rules := availability.NewAvailabilityMemoryRepository()
	start := time.Date(2030, 1, 7, 22, 0, 0, 0, time.UTC)
	require.NoError(t, rules.Insert(context.Background(), &models.AvailabilityRule{
		ID:         "rule-late",
		DoctorID:   "doc-1",
		StartTime:  start,
		EndTime:    start.Add(2 * time.Hour),
		Recurrence: constvars.RecurrenceDaily,
	}))
	repo := NewBookingMemoryRepository()
	slots := slot.NewSlotUsecase(rules, repo, slot.Config{SlotMinutes: 60}, time.UTC, zap.NewNop())
	uc := NewBookingUsecase(
		repo,
		slots,
		locker.NewLocalLockService(),
		locker.Options{TTL: time.Second, RetryInterval: 2 * time.Millisecond},
		nil,
		zap.NewNop(),
	)

	b, err := uc.Book(context.Background(), "doc-1", "pat-1", monday.AddDate(0, 0, 1), "23:00", "00:00")
	require.NoError(t, err)
	assert.Equal(t, "2030-01-08", b.Date)
	assert.Equal(t, "23:00", b.StartTime)
	assert.Equal(t, "00:00", b.EndTime)
}
