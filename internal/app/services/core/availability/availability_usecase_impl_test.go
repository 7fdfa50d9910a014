package availability

import (
	"context"
	"sync"
	"testing"
	"time"

	"doctor-booking-service/internal/app/contracts"
	"doctor-booking-service/internal/app/services/shared/locker"
	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestUsecase(t *testing.T) (contracts.AvailabilityUsecase, contracts.AvailabilityRepository) {
	t.Helper()
	repo := NewAvailabilityMemoryRepository()
	uc := NewAvailabilityUsecase(
		repo,
		locker.NewLocalLockService(),
		locker.Options{TTL: time.Second, RetryInterval: 5 * time.Millisecond},
		time.UTC,
		zap.NewNop(),
	)
	return uc, repo
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestCreate_Succeeds(t *testing.T) {
	uc, repo := newTestUsecase(t)
	ctx := context.Background()

	rule, err := uc.Create(ctx, "doc-1", at(t, "2030-01-07T09:00:00Z"), at(t, "2030-01-07T11:00:00Z"), constvars.RecurrenceWeekly)
	require.NoError(t, err)
	assert.NotEmpty(t, rule.ID)
	assert.Equal(t, "doc-1", rule.DoctorID)
	assert.Equal(t, constvars.RecurrenceWeekly, rule.Recurrence)
	assert.False(t, rule.CreatedAt.IsZero())

	stored, err := repo.FindByID(ctx, "doc-1", rule.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name       string
		start      string
		end        string
		recurrence string
	}{
		{"end before start", "2030-01-07T11:00:00Z", "2030-01-07T09:00:00Z", constvars.RecurrenceNone},
		{"zero length", "2030-01-07T09:00:00Z", "2030-01-07T09:00:00Z", constvars.RecurrenceNone},
		{"spans midnight", "2030-01-07T22:00:00Z", "2030-01-08T00:30:00Z", constvars.RecurrenceDaily},
		{"unknown recurrence", "2030-01-07T09:00:00Z", "2030-01-07T10:00:00Z", "monthly"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTestUsecase(t)
			_, err := uc.Create(context.Background(), "doc-1", at(t, tt.start), at(t, tt.end), tt.recurrence)
			require.Error(t, err)
			assert.True(t, exceptions.IsKind(err, exceptions.KindValidation))
		})
	}
}

func TestCreate_DetectsOverlapWithinRecurrenceClass(t *testing.T) {
	tests := []struct {
		name        string
		first       [2]string
		second      [2]string
		recurrence  string
		wantOverlap bool
	}{
		{"one-off intersecting", [2]string{"2030-01-07T09:00:00Z", "2030-01-07T11:00:00Z"}, [2]string{"2030-01-07T10:00:00Z", "2030-01-07T12:00:00Z"}, constvars.RecurrenceNone, true},
		{"one-off touching", [2]string{"2030-01-07T09:00:00Z", "2030-01-07T10:00:00Z"}, [2]string{"2030-01-07T10:00:00Z", "2030-01-07T11:00:00Z"}, constvars.RecurrenceNone, false},
		{"one-off other day", [2]string{"2030-01-07T09:00:00Z", "2030-01-07T11:00:00Z"}, [2]string{"2030-01-08T09:00:00Z", "2030-01-08T11:00:00Z"}, constvars.RecurrenceNone, false},
		{"daily different anchors same clock", [2]string{"2030-01-07T09:00:00Z", "2030-01-07T11:00:00Z"}, [2]string{"2030-03-01T10:30:00Z", "2030-03-01T12:00:00Z"}, constvars.RecurrenceDaily, true},
		{"weekly same weekday", [2]string{"2030-01-07T09:00:00Z", "2030-01-07T11:00:00Z"}, [2]string{"2030-01-14T10:00:00Z", "2030-01-14T12:00:00Z"}, constvars.RecurrenceWeekly, true},
		{"weekly different weekday", [2]string{"2030-01-07T09:00:00Z", "2030-01-07T11:00:00Z"}, [2]string{"2030-01-08T09:00:00Z", "2030-01-08T11:00:00Z"}, constvars.RecurrenceWeekly, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newTestUsecase(t)
			ctx := context.Background()

			_, err := uc.Create(ctx, "doc-1", at(t, tt.first[0]), at(t, tt.first[1]), tt.recurrence)
			require.NoError(t, err)

			_, err = uc.Create(ctx, "doc-1", at(t, tt.second[0]), at(t, tt.second[1]), tt.recurrence)
			if tt.wantOverlap {
				require.Error(t, err)
				assert.True(t, exceptions.IsKind(err, exceptions.KindOverlap))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreate_DifferentRecurrenceClassesDoNotConflict(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, "doc-1", at(t, "2030-01-07T09:00:00Z"), at(t, "2030-01-07T11:00:00Z"), constvars.RecurrenceDaily)
	require.NoError(t, err)
	_, err = uc.Create(ctx, "doc-1", at(t, "2030-01-07T09:00:00Z"), at(t, "2030-01-07T11:00:00Z"), constvars.RecurrenceNone)
	assert.NoError(t, err)
}

func TestCreate_OtherDoctorsDoNotConflict(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, "doc-1", at(t, "2030-01-07T09:00:00Z"), at(t, "2030-01-07T11:00:00Z"), constvars.RecurrenceDaily)
	require.NoError(t, err)
	_, err = uc.Create(ctx, "doc-2", at(t, "2030-01-07T09:00:00Z"), at(t, "2030-01-07T11:00:00Z"), constvars.RecurrenceDaily)
	assert.NoError(t, err)
}

func TestCreate_ConcurrentOverlappingWritesOnlyOneWins(t *testing.T) {
	uc, repo := newTestUsecase(t)
	ctx := context.Background()

	const writers = 8
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Create(ctx, "doc-1", at(t, "2030-01-07T09:00:00Z"), at(t, "2030-01-07T11:00:00Z"), constvars.RecurrenceDaily)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, exceptions.IsKind(err, exceptions.KindOverlap), err.Error())
	}
	assert.Equal(t, 1, succeeded)

	rules, err := repo.FindByDoctorID(ctx, "doc-1")
	require.NoError(t, err)
	assert.Len(t, rules, 1)
}

func TestUpdate_ReplacesRuleAndIgnoresItselfForOverlap(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	rule, err := uc.Create(ctx, "doc-1", at(t, "2030-01-07T09:00:00Z"), at(t, "2030-01-07T11:00:00Z"), constvars.RecurrenceDaily)
	require.NoError(t, err)

	updated, err := uc.Update(ctx, "doc-1", rule.ID, at(t, "2030-01-07T10:00:00Z"), at(t, "2030-01-07T12:00:00Z"), constvars.RecurrenceDaily)
	require.NoError(t, err)
	assert.Equal(t, rule.ID, updated.ID)
	assert.Equal(t, 10, updated.StartTime.Hour())
	assert.Equal(t, rule.CreatedAt, updated.CreatedAt)
}

func TestUpdate_RejectsMoveOntoSameClassRule(t *testing.T) {
	uc, repo := newTestUsecase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, "doc-1", at(t, "2030-01-07T09:00:00Z"), at(t, "2030-01-07T10:00:00Z"), constvars.RecurrenceDaily)
	require.NoError(t, err)
	second, err := uc.Create(ctx, "doc-1", at(t, "2030-01-07T11:00:00Z"), at(t, "2030-01-07T12:00:00Z"), constvars.RecurrenceDaily)
	require.NoError(t, err)

	_, err = uc.Update(ctx, "doc-1", second.ID, at(t, "2030-01-07T09:30:00Z"), at(t, "2030-01-07T10:30:00Z"), constvars.RecurrenceDaily)
	require.Error(t, err)
	assert.True(t, exceptions.IsKind(err, exceptions.KindOverlap))

	stored, err := repo.FindByID(ctx, "doc-1", second.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.StartTime.Equal(at(t, "2030-01-07T11:00:00Z")))
	assert.True(t, stored.EndTime.Equal(at(t, "2030-01-07T12:00:00Z")))
}

func TestCreate_AcceptsRuleEndingAtMidnight(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	rule, err := uc.Create(ctx, "doc-1", at(t, "2030-01-07T22:00:00Z"), at(t, "2030-01-08T00:00:00Z"), constvars.RecurrenceDaily)
	require.NoError(t, err)
	assert.True(t, rule.EndTime.Equal(at(t, "2030-01-08T00:00:00Z")))

	_, err = uc.Create(ctx, "doc-1", at(t, "2030-01-07T23:00:00Z"), at(t, "2030-01-08T00:00:00Z"), constvars.RecurrenceDaily)
	assert.True(t, exceptions.IsKind(err, exceptions.KindOverlap))
}

func TestUpdate_UnknownOrForeignRuleIsNotFound(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	rule, err := uc.Create(ctx, "doc-1", at(t, "2030-01-07T09:00:00Z"), at(t, "2030-01-07T11:00:00Z"), constvars.RecurrenceNone)
	require.NoError(t, err)

	_, err = uc.Update(ctx, "doc-2", rule.ID, at(t, "2030-01-07T09:00:00Z"), at(t, "2030-01-07T10:00:00Z"), constvars.RecurrenceNone)
	assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))

	_, err = uc.Update(ctx, "doc-1", "missing", at(t, "2030-01-07T09:00:00Z"), at(t, "2030-01-07T10:00:00Z"), constvars.RecurrenceNone)
	assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
}

func TestDelete(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	rule, err := uc.Create(ctx, "doc-1", at(t, "2030-01-07T09:00:00Z"), at(t, "2030-01-07T11:00:00Z"), constvars.RecurrenceNone)
	require.NoError(t, err)

	err = uc.Delete(ctx, "doc-2", rule.ID)
	assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))

	require.NoError(t, uc.Delete(ctx, "doc-1", rule.ID))

	err = uc.Delete(ctx, "doc-1", rule.ID)
	assert.True(t, exceptions.IsKind(err, exceptions.KindNotFound))
}

func TestListForDoctor_OrderedByStartTime(t *testing.T) {
	uc, _ := newTestUsecase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, "doc-1", at(t, "2030-01-09T09:00:00Z"), at(t, "2030-01-09T10:00:00Z"), constvars.RecurrenceNone)
	require.NoError(t, err)
	_, err = uc.Create(ctx, "doc-1", at(t, "2030-01-07T09:00:00Z"), at(t, "2030-01-07T10:00:00Z"), constvars.RecurrenceNone)
	require.NoError(t, err)

	rules, err := uc.ListForDoctor(ctx, "doc-1")
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.True(t, rules[0].StartTime.Before(rules[1].StartTime))

	empty, err := uc.ListForDoctor(ctx, "doc-unknown")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestCreate_NormalizesToServiceTimezone(t *testing.T) {
	loc := time.FixedZone("WIB", 7*60*60)

	uc := NewAvailabilityUsecase(
		NewAvailabilityMemoryRepository(),
		locker.NewLocalLockService(),
		locker.Options{},
		loc,
		zap.NewNop(),
	)

	// 23:00Z to 01:00Z spans days in UTC but is 06:00-08:00 at UTC+7.
	rule, err := uc.Create(context.Background(), "doc-1", at(t, "2030-01-06T23:00:00Z"), at(t, "2030-01-07T01:00:00Z"), constvars.RecurrenceNone)
	require.NoError(t, err)
	assert.Equal(t, loc, rule.StartTime.Location())
	assert.Equal(t, 6, rule.StartTime.Hour())
}
