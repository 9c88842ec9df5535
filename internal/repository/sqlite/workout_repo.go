// internal/repository/sqlite/workout_repo.go
package sqlite

import (
	"anton/sportpath-core/internal/domain"
	"anton/sportpath-core/internal/event"
	"anton/sportpath-core/internal/repository"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// workoutRepository implements repository.WorkoutRepository on the
// embedded store.
type workoutRepository struct {
	db  *gorm.DB
	bus *event.Bus
}

// NewWorkoutRepository creates a new WorkoutEntry repository.
func NewWorkoutRepository(db *gorm.DB, bus *event.Bus) repository.WorkoutRepository {
	return &workoutRepository{db: db, bus: bus}
}

func (r *workoutRepository) LogWorkout(ctx context.Context, date time.Time, description string, mood *domain.WorkoutMood, notes string) (*domain.WorkoutEntry, bool, error) {
	day := domain.StartOfDay(date)

	var result *domain.WorkoutEntry
	existed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Existence check and insert share the transaction; the unique
		// index on date backs the one-entry-per-day invariant.
		var existing domain.WorkoutEntry
		err := tx.Where("date = ?", day).First(&existing).Error
		if err == nil {
			result = &existing
			existed = true
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		entry := domain.WorkoutEntry{
			ID:          uuid.New(),
			Date:        day,
			Description: description,
			Mood:        mood,
			Notes:       notes,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		result = &entry
		return nil
	})
	if err != nil {
		return nil, false, storeErr(err)
	}

	if !existed {
		r.bus.Publish(event.Change{Scope: event.ScopeWorkouts})
	}
	return result, existed, nil
}

func (r *workoutRepository) ByDate(ctx context.Context, date time.Time) (*domain.WorkoutEntry, error) {
	var entry domain.WorkoutEntry
	err := r.db.WithContext(ctx).
		Where("date = ?", domain.StartOfDay(date)).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &entry, nil
}

func (r *workoutRepository) All(ctx context.Context) ([]domain.WorkoutEntry, error) {
	var entries []domain.WorkoutEntry
	if err := r.db.WithContext(ctx).Order("date ASC").Find(&entries).Error; err != nil {
		return nil, storeErr(err)
	}
	return entries, nil
}
