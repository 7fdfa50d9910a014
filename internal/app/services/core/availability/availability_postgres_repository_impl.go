package availability

import (
	"context"
	"errors"

	"doctor-booking-service/internal/app/contracts"
	"doctor-booking-service/internal/app/models"
	"doctor-booking-service/internal/pkg/exceptions"
	"doctor-booking-service/internal/pkg/queries"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type availabilityPostgresRepository struct {
	DB  *pgxpool.Pool
	Log *zap.Logger
}

func NewAvailabilityPostgresRepository(db *pgxpool.Pool, logger *zap.Logger) contracts.AvailabilityRepository {
	return &availabilityPostgresRepository{
		DB:  db,
		Log: logger,
	}
}

func (r *availabilityPostgresRepository) Insert(ctx context.Context, rule *models.AvailabilityRule) error {
	_, err := r.DB.Exec(ctx, queries.InsertAvailabilityRule,
		rule.ID, rule.DoctorID, rule.StartTime, rule.EndTime, rule.Recurrence, rule.CreatedAt, rule.UpdatedAt)
	if err != nil {
		return exceptions.ErrPostgresDBInsertData(err)
	}
	return nil
}

func (r *availabilityPostgresRepository) Replace(ctx context.Context, rule *models.AvailabilityRule) (bool, error) {
	tag, err := r.DB.Exec(ctx, queries.ReplaceAvailabilityRule,
		rule.StartTime, rule.EndTime, rule.Recurrence, rule.UpdatedAt, rule.ID, rule.DoctorID)
	if err != nil {
		return false, exceptions.ErrPostgresDBUpdateData(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *availabilityPostgresRepository) Delete(ctx context.Context, doctorID, ruleID string) (bool, error) {
	tag, err := r.DB.Exec(ctx, queries.DeleteAvailabilityRule, ruleID, doctorID)
	if err != nil {
		return false, exceptions.ErrPostgresDBDeleteData(err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *availabilityPostgresRepository) FindByID(ctx context.Context, doctorID, ruleID string) (*models.AvailabilityRule, error) {
	var rule models.AvailabilityRule
	err := r.DB.QueryRow(ctx, queries.GetAvailabilityRuleByID, ruleID, doctorID).Scan(
		&rule.ID, &rule.DoctorID, &rule.StartTime, &rule.EndTime, &rule.Recurrence, &rule.CreatedAt, &rule.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &rule, nil
}

func (r *availabilityPostgresRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]models.AvailabilityRule, error) {
	rows, err := r.DB.Query(ctx, queries.GetAvailabilityRulesByDoctorID, doctorID)
	if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	rules := make([]models.AvailabilityRule, 0)
	for rows.Next() {
		var rule models.AvailabilityRule
		if err := rows.Scan(&rule.ID, &rule.DoctorID, &rule.StartTime, &rule.EndTime, &rule.Recurrence, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
			return nil, exceptions.ErrPostgresDBIterateDataset(err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, exceptions.ErrPostgresDBIterateDataset(err)
	}
	return rules, nil
}
