package locker

import (
	"context"
	"sync"
	"time"

	"doctor-booking-service/internal/app/contracts"
	"doctor-booking-service/internal/pkg/exceptions"

	"github.com/google/uuid"
)

type localLock struct {
	token     string
	expiresAt time.Time
}

// localLockService keeps locks in process memory. It only serializes callers
// within a single service instance.
type localLockService struct {
	mu    sync.Mutex
	locks map[string]localLock
	now   func() time.Time
}

func NewLocalLockService() contracts.LockerService {
	return &localLockService{
		locks: make(map[string]localLock),
		now:   time.Now,
	}
}

func (s *localLockService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	if err := ctx.Err(); err != nil {
		return false, "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if current, ok := s.locks[key]; ok && now.Before(current.expiresAt) {
		return false, "", nil
	}

	token := uuid.NewString()
	s.locks[key] = localLock{token: token, expiresAt: now.Add(expiration)}
	return true, token, nil
}

func (s *localLockService) Unlock(ctx context.Context, key, lockValue string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.locks[key]
	if !ok || !s.now().Before(current.expiresAt) {
		delete(s.locks, key)
		return exceptions.ErrLockNotOwned(nil, key)
	}
	if current.token != lockValue {
		return exceptions.ErrLockNotOwned(nil, key)
	}
	delete(s.locks, key)
	return nil
}

func (s *localLockService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	current, ok := s.locks[key]
	if !ok || current.token != lockValue || !now.Before(current.expiresAt) {
		return exceptions.ErrLockNotOwned(nil, key)
	}
	current.expiresAt = now.Add(expiration)
	s.locks[key] = current
	return nil
}
