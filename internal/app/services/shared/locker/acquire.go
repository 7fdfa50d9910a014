package locker

import (
	"context"
	"time"

	"doctor-booking-service/internal/app/contracts"
	"doctor-booking-service/internal/pkg/constvars"
	"doctor-booking-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

// Options controls how long a lock is held and how often Acquire polls.
type Options struct {
	TTL           time.Duration
	RetryInterval time.Duration
}

// Lease is a held lock. Release must be called exactly once.
type Lease struct {
	lockerService contracts.LockerService
	log           *zap.Logger
	key           string
	token         string
	ttl           time.Duration
	expiresAt     time.Time
	now           func() time.Time
	ctx           context.Context
}

// Acquire polls TryLock until it succeeds or ctx is done. On success it returns
// a release func that must be called exactly once.
func Acquire(ctx context.Context, lockerService contracts.LockerService, log *zap.Logger, key string, opts Options) (func(), error) {
	lease, err := AcquireLease(ctx, lockerService, log, key, opts)
	if err != nil {
		return nil, err
	}
	return lease.Release, nil
}

// AcquireLease is Acquire for callers that need to extend the lock while
// holding it.
func AcquireLease(ctx context.Context, lockerService contracts.LockerService, log *zap.Logger, key string, opts Options) (*Lease, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if opts.TTL <= 0 {
		opts.TTL = 10 * time.Second
	}
	retryInterval := opts.RetryInterval
	if retryInterval <= 0 {
		retryInterval = 50 * time.Millisecond
	}

	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	attempts := 0
	for {
		attempts++
		acquired, token, err := lockerService.TryLock(ctx, key, opts.TTL)
		if err != nil {
			return nil, err
		}
		if acquired {
			log.Debug("locker.Acquire acquired lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Int(constvars.LoggingLockAttemptsKey, attempts),
			)
			lease := &Lease{
				lockerService: lockerService,
				log:           log,
				key:           key,
				token:         token,
				ttl:           opts.TTL,
				now:           time.Now,
				ctx:           ctx,
			}
			lease.expiresAt = lease.now().Add(opts.TTL)
			return lease, nil
		}

		select {
		case <-ctx.Done():
			log.Warn("locker.Acquire gave up waiting for lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, key),
				zap.Int(constvars.LoggingLockAttemptsKey, attempts),
			)
			return nil, exceptions.ErrLockNotAcquired(ctx.Err(), key)
		case <-ticker.C:
		}
	}
}

// KeepAlive refreshes the lock when less than half of its TTL is left. It
// fails with ErrLockNotOwned once the lock has been lost to another holder.
func (l *Lease) KeepAlive(ctx context.Context) error {
	if l.expiresAt.Sub(l.now()) > l.ttl/2 {
		return nil
	}

	if err := l.lockerService.Refresh(ctx, l.key, l.token, l.ttl); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		l.log.Warn("locker.Lease.KeepAlive failed to refresh lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, l.key),
			zap.Error(err),
		)
		return err
	}
	l.expiresAt = l.now().Add(l.ttl)
	return nil
}

func (l *Lease) Release() {
	requestID, _ := l.ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	// The request context may already be cancelled; release must still run.
	releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(l.ctx), l.ttl)
	defer cancel()
	if err := l.lockerService.Unlock(releaseCtx, l.key, l.token); err != nil {
		l.log.Warn("locker.Acquire failed to release lock",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRedisKey, l.key),
			zap.Error(err),
		)
	}
}
