package sqlite

import (
	"anton/sportpath-core/internal/domain"
	"anton/sportpath-core/internal/event"
	"anton/sportpath-core/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func someDays(start time.Time, n int) []domain.PlanDay {
	days := make([]domain.PlanDay, n)
	for i := range days {
		days[i] = domain.PlanDay{Date: start.AddDate(0, 0, i)}
	}
	return days
}

func TestCreatePlanValidation(t *testing.T) {
	db, bus := newTestStore(t)
	repo := NewPlanRepository(db, bus)
	ctx := context.Background()

	_, err := repo.CreatePlan(ctx, "   ", someDays(localDate(2025, time.January, 1), 2))
	var verr *repository.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "title", verr.Field)

	_, err = repo.CreatePlan(ctx, "Marathon", nil)
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "days", verr.Field)
}

func TestCreatePlanKeepsSingleActive(t *testing.T) {
	db, bus := newTestStore(t)
	repo := NewPlanRepository(db, bus)
	ctx := context.Background()

	first, err := repo.CreatePlan(ctx, "Spring prep", someDays(localDate(2025, time.March, 1), 3))
	require.NoError(t, err)
	require.Equal(t, domain.PlanStatusActive, first.Status)

	time.Sleep(2 * time.Millisecond)
	second, err := repo.CreatePlan(ctx, "Marathon", someDays(localDate(2025, time.April, 1), 5))
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	third, err := repo.CreatePlan(ctx, "Recovery", someDays(localDate(2025, time.May, 1), 2))
	require.NoError(t, err)

	// After every create exactly one plan is active.
	active, err := repo.ActivePlan(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	require.Equal(t, third.ID, active.ID)

	var activeCount int64
	require.NoError(t, db.Model(&domain.TrainingPlan{}).
		Where("status = ?", domain.PlanStatusActive).
		Count(&activeCount).Error)
	require.EqualValues(t, 1, activeCount)

	// Superseded plans land in the previous-plans list, newest first.
	previous, err := repo.PlansByStatus(ctx, domain.PlanStatusCompleted, domain.PlanStatusTerminated)
	require.NoError(t, err)
	require.Len(t, previous, 2)
	require.Equal(t, second.ID, previous[0].ID)
	require.Equal(t, first.ID, previous[1].ID)
}

func TestCreatePlanNormalizesDays(t *testing.T) {
	db, bus := newTestStore(t)
	repo := NewPlanRepository(db, bus)
	ctx := context.Background()

	noon := time.Date(2025, time.March, 1, 12, 30, 0, 0, time.Local)
	plan, err := repo.CreatePlan(ctx, "Marathon", []domain.PlanDay{
		{Date: noon, TaskDescription: "Easy run", Completed: true},
	})
	require.NoError(t, err)

	stored, err := repo.PlanByID(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, stored.Days, 1)
	require.Equal(t, "Easy run", stored.Days[0].TaskDescription)
	require.Equal(t, 0, stored.Days[0].Date.Hour())
	require.False(t, stored.Days[0].Completed, "new days always start incomplete")
	require.NotEqual(t, uuid.Nil, stored.Days[0].ID)
}

func TestTerminatePlan(t *testing.T) {
	db, bus := newTestStore(t)
	repo := NewPlanRepository(db, bus)
	ctx := context.Background()

	plan, err := repo.CreatePlan(ctx, "Marathon", someDays(localDate(2025, time.June, 1), 3))
	require.NoError(t, err)

	require.NoError(t, repo.TerminatePlan(ctx, plan.ID))
	active, err := repo.ActivePlan(ctx)
	require.NoError(t, err)
	require.Nil(t, active)

	stored, err := repo.PlanByID(ctx, plan.ID)
	require.NoError(t, err)
	require.Equal(t, domain.PlanStatusTerminated, stored.Status)

	// Terminating again, or terminating a plan that never existed, is a
	// silent no-op.
	require.NoError(t, repo.TerminatePlan(ctx, plan.ID))
	require.NoError(t, repo.TerminatePlan(ctx, uuid.New()))
}

func TestTerminateNoOpPublishesNothing(t *testing.T) {
	db, bus := newTestStore(t)
	repo := NewPlanRepository(db, bus)
	ctx := context.Background()

	counts := countChanges(bus)
	require.NoError(t, repo.TerminatePlan(ctx, uuid.New()))
	require.Zero(t, counts[event.ScopePlans])

	_, err := repo.CreatePlan(ctx, "Marathon", someDays(localDate(2025, time.June, 1), 1))
	require.NoError(t, err)
	require.Equal(t, 1, counts[event.ScopePlans])
}

func TestToggleDayCompletion(t *testing.T) {
	db, bus := newTestStore(t)
	repo := NewPlanRepository(db, bus)
	ctx := context.Background()

	day := localDate(2025, time.July, 1)
	plan, err := repo.CreatePlan(ctx, "Marathon", someDays(day, 3))
	require.NoError(t, err)

	completed, err := repo.ToggleDayCompletion(ctx, plan.ID, day.Add(19*time.Hour))
	require.NoError(t, err)
	require.True(t, completed)

	stored, err := repo.PlanByID(ctx, plan.ID)
	require.NoError(t, err)
	require.InDelta(t, 100.0/3.0, stored.CompletionPercentage(), 1e-9)

	completed, err = repo.ToggleDayCompletion(ctx, plan.ID, day)
	require.NoError(t, err)
	require.False(t, completed)

	_, err = repo.ToggleDayCompletion(ctx, plan.ID, day.AddDate(0, 0, 30))
	require.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.ToggleDayCompletion(ctx, uuid.New(), day)
	require.ErrorIs(t, err, repository.ErrStaleReference)
}

func TestUpdateDayDateCascades(t *testing.T) {
	db, bus := newTestStore(t)
	repo := NewPlanRepository(db, bus)
	ctx := context.Background()

	d0 := localDate(2025, time.August, 1)
	plan, err := repo.CreatePlan(ctx, "Marathon", someDays(d0, 3))
	require.NoError(t, err)

	require.NoError(t, repo.UpdateDayDate(ctx, plan.ID, plan.Days[1].ID, d0.AddDate(0, 0, 5)))

	stored, err := repo.PlanByID(ctx, plan.ID)
	require.NoError(t, err)
	require.True(t, domain.SameDay(stored.Days[0].Date, d0))
	require.True(t, domain.SameDay(stored.Days[1].Date, d0.AddDate(0, 0, 5)))
	require.True(t, domain.SameDay(stored.Days[2].Date, d0.AddDate(0, 0, 6)))

	require.ErrorIs(t, repo.UpdateDayDate(ctx, plan.ID, uuid.New(), d0), repository.ErrNotFound)
	require.ErrorIs(t, repo.UpdateDayDate(ctx, uuid.New(), plan.Days[0].ID, d0), repository.ErrStaleReference)
}

func TestPlanByIDNotFound(t *testing.T) {
	db, bus := newTestStore(t)
	repo := NewPlanRepository(db, bus)

	_, err := repo.PlanByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, repository.ErrNotFound)
}
