package sqlite

import (
	"anton/sportpath-core/internal/domain"
	"anton/sportpath-core/internal/event"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLogWorkoutOncePerDay(t *testing.T) {
	db, bus := newTestStore(t)
	repo := NewWorkoutRepository(db, bus)
	ctx := context.Background()
	counts := countChanges(bus)

	morning := time.Date(2025, time.March, 5, 8, 0, 0, 0, time.Local)
	mood := domain.MoodGood
	entry, existed, err := repo.LogWorkout(ctx, morning, "Running 5km", &mood, "felt great")
	require.NoError(t, err)
	require.False(t, existed)
	require.Equal(t, 0, entry.Date.Hour(), "date is normalized to start-of-day")

	// A second log on the same calendar day is a no-op that returns the
	// original entry untouched.
	evening := time.Date(2025, time.March, 5, 20, 0, 0, 0, time.Local)
	again, existed, err := repo.LogWorkout(ctx, evening, "Swimming", nil, "")
	require.NoError(t, err)
	require.True(t, existed)
	require.Equal(t, entry.ID, again.ID)
	require.Equal(t, "Running 5km", again.Description)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.Equal(t, 1, counts[event.ScopeWorkouts], "duplicate log publishes no change")
}

func TestByDateNormalizes(t *testing.T) {
	db, bus := newTestStore(t)
	repo := NewWorkoutRepository(db, bus)
	ctx := context.Background()

	logged := time.Date(2025, time.March, 5, 9, 30, 0, 0, time.Local)
	_, _, err := repo.LogWorkout(ctx, logged, "Running", nil, "")
	require.NoError(t, err)

	afternoon := time.Date(2025, time.March, 5, 14, 0, 0, 0, time.Local)
	entry, err := repo.ByDate(ctx, afternoon)
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.Equal(t, "Running", entry.Description)

	nextDay, err := repo.ByDate(ctx, afternoon.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Nil(t, nextDay)
}

func TestAllOrderedByDate(t *testing.T) {
	db, bus := newTestStore(t)
	repo := NewWorkoutRepository(db, bus)
	ctx := context.Background()

	for _, day := range []int{12, 3, 25} {
		_, _, err := repo.LogWorkout(ctx, localDate(2025, time.March, day), "Workout", nil, "")
		require.NoError(t, err)
	}

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, 3, all[0].Date.Day())
	require.Equal(t, 12, all[1].Date.Day())
	require.Equal(t, 25, all[2].Date.Day())
}

func TestMoodRoundTrip(t *testing.T) {
	db, bus := newTestStore(t)
	repo := NewWorkoutRepository(db, bus)
	ctx := context.Background()

	mood := domain.MoodAmazing
	_, _, err := repo.LogWorkout(ctx, localDate(2025, time.April, 1), "Intervals", &mood, "tough")
	require.NoError(t, err)

	entry, err := repo.ByDate(ctx, localDate(2025, time.April, 1))
	require.NoError(t, err)
	require.NotNil(t, entry.Mood)
	require.Equal(t, domain.MoodAmazing, *entry.Mood)
	require.Equal(t, "tough", entry.Notes)

	_, _, err = repo.LogWorkout(ctx, localDate(2025, time.April, 2), "Recovery", nil, "")
	require.NoError(t, err)
	plain, err := repo.ByDate(ctx, localDate(2025, time.April, 2))
	require.NoError(t, err)
	require.Nil(t, plain.Mood)
}
