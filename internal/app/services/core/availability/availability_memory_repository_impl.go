package availability

import (
	"context"
	"sort"
	"sync"

	"doctor-booking-service/internal/app/contracts"
	"doctor-booking-service/internal/app/models"
)

type availabilityMemoryRepository struct {
	mu    sync.RWMutex
	rules map[string]models.AvailabilityRule
}

func NewAvailabilityMemoryRepository() contracts.AvailabilityRepository {
	return &availabilityMemoryRepository{
		rules: make(map[string]models.AvailabilityRule),
	}
}

func (r *availabilityMemoryRepository) Insert(ctx context.Context, rule *models.AvailabilityRule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule.ID] = *rule
	return nil
}

func (r *availabilityMemoryRepository) Replace(ctx context.Context, rule *models.AvailabilityRule) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.rules[rule.ID]
	if !ok || existing.DoctorID != rule.DoctorID {
		return false, nil
	}
	r.rules[rule.ID] = *rule
	return true, nil
}

func (r *availabilityMemoryRepository) Delete(ctx context.Context, doctorID, ruleID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.rules[ruleID]
	if !ok || existing.DoctorID != doctorID {
		return false, nil
	}
	delete(r.rules, ruleID)
	return true, nil
}

func (r *availabilityMemoryRepository) FindByID(ctx context.Context, doctorID, ruleID string) (*models.AvailabilityRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	existing, ok := r.rules[ruleID]
	if !ok || existing.DoctorID != doctorID {
		return nil, nil
	}
	return &existing, nil
}

func (r *availabilityMemoryRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]models.AvailabilityRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.AvailabilityRule, 0)
	for _, rule := range r.rules {
		if rule.DoctorID == doctorID {
			result = append(result, rule)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].StartTime.Equal(result[j].StartTime) {
			return result[i].ID < result[j].ID
		}
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}
