// internal/repository/sqlite/plan_repo.go
package sqlite

import (
	"anton/sportpath-core/internal/domain"
	"anton/sportpath-core/internal/event"
	"anton/sportpath-core/internal/repository"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// planRepository implements repository.PlanRepository on the embedded store.
type planRepository struct {
	db  *gorm.DB
	bus *event.Bus
}

// NewPlanRepository creates a new TrainingPlan repository.
func NewPlanRepository(db *gorm.DB, bus *event.Bus) repository.PlanRepository {
	return &planRepository{db: db, bus: bus}
}

func (r *planRepository) CreatePlan(ctx context.Context, title string, days []domain.PlanDay) (*domain.TrainingPlan, error) {
	if strings.TrimSpace(title) == "" {
		return nil, &repository.ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if len(days) == 0 {
		return nil, &repository.ValidationError{Field: "days", Reason: "must contain at least one day"}
	}

	normalized := make([]domain.PlanDay, len(days))
	for i, day := range days {
		normalized[i] = day
		normalized[i].Date = domain.StartOfDay(day.Date)
		normalized[i].Completed = false
		if normalized[i].ID == uuid.Nil {
			normalized[i].ID = uuid.New()
		}
	}

	plan := &domain.TrainingPlan{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: time.Now().UTC(),
		Status:    domain.PlanStatusActive,
		Days:      datatypes.NewJSONSlice(normalized),
	}

	// Terminating the old active plan and inserting the new one commit as
	// one unit, so readers never see zero or two active plans.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.TrainingPlan{}).
			Where("status = ?", domain.PlanStatusActive).
			Update("status", domain.PlanStatusTerminated).Error; err != nil {
			return err
		}
		return tx.Create(plan).Error
	})
	if err != nil {
		return nil, storeErr(err)
	}

	r.bus.Publish(event.Change{Scope: event.ScopePlans})
	return plan, nil
}

func (r *planRepository) TerminatePlan(ctx context.Context, id uuid.UUID) error {
	changed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var plan domain.TrainingPlan
		if err := tx.First(&plan, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // already gone, nothing to terminate
			}
			return err
		}
		if plan.Status != domain.PlanStatusActive {
			return nil
		}
		changed = true
		return tx.Model(&plan).Update("status", domain.PlanStatusTerminated).Error
	})
	if err != nil {
		return storeErr(err)
	}
	if changed {
		r.bus.Publish(event.Change{Scope: event.ScopePlans})
	}
	return nil
}

func (r *planRepository) ActivePlan(ctx context.Context) (*domain.TrainingPlan, error) {
	var plan domain.TrainingPlan
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.PlanStatusActive).
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &plan, nil
}

func (r *planRepository) PlanByID(ctx context.Context, id uuid.UUID) (*domain.TrainingPlan, error) {
	var plan domain.TrainingPlan
	err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &plan, nil
}

func (r *planRepository) PlansByStatus(ctx context.Context, statuses ...domain.PlanStatus) ([]domain.TrainingPlan, error) {
	var plans []domain.TrainingPlan
	err := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return plans, nil
}

func (r *planRepository) ToggleDayCompletion(ctx context.Context, planID uuid.UUID, date time.Time) (bool, error) {
	completed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		plan, err := freshPlan(tx, planID)
		if err != nil {
			return err
		}
		value, ok := plan.ToggleDay(date)
		if !ok {
			return repository.ErrNotFound
		}
		completed = value
		return tx.Model(plan).Update("days", plan.Days).Error
	})
	if err != nil {
		return false, wrapTxErr(err)
	}
	r.bus.Publish(event.Change{Scope: event.ScopePlans})
	return completed, nil
}

func (r *planRepository) UpdateDayDate(ctx context.Context, planID, dayID uuid.UUID, date time.Time) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		plan, err := freshPlan(tx, planID)
		if err != nil {
			return err
		}
		if !plan.SetDayDate(dayID, date) {
			return repository.ErrNotFound
		}
		return tx.Model(plan).Update("days", plan.Days).Error
	})
	if err != nil {
		return wrapTxErr(err)
	}
	r.bus.Publish(event.Change{Scope: event.ScopePlans})
	return nil
}

// freshPlan re-fetches the live plan inside the transaction. Mutating a
// record that no longer exists is a stale-reference error, never a silent
// no-op.
func freshPlan(tx *gorm.DB, id uuid.UUID) (*domain.TrainingPlan, error) {
	var plan domain.TrainingPlan
	if err := tx.First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrStaleReference
		}
		return nil, err
	}
	return &plan, nil
}

// wrapTxErr keeps repository sentinels intact and marks everything else as
// a store failure.
func wrapTxErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrStaleReference) {
		return err
	}
	return storeErr(err)
}
