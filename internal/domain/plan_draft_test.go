package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewPlanDraftStartsToday(t *testing.T) {
	start := time.Date(2025, time.July, 4, 18, 0, 0, 0, time.Local)
	draft := NewPlanDraft(start)

	require.Len(t, draft.Days, 1)
	require.True(t, SameDay(draft.Days[0].Date, start))
	require.Equal(t, 0, draft.Days[0].Date.Hour())
	require.False(t, draft.Days[0].Completed)
}

func TestAddDayIsConsecutive(t *testing.T) {
	start := localDate(2025, time.July, 4)
	draft := NewPlanDraft(start)
	draft.AddDay()
	draft.AddDay()

	require.Len(t, draft.Days, 3)
	for i, day := range draft.Days {
		require.True(t, SameDay(day.Date, start.AddDate(0, 0, i)), "day %d", i)
	}
}

func TestSetDateShiftsSubsequentDays(t *testing.T) {
	d0 := localDate(2025, time.January, 1)
	draft := NewPlanDraft(d0)
	draft.AddDay()
	draft.AddDay()

	require.True(t, draft.SetDate(draft.Days[1].ID, d0.AddDate(0, 0, 5)))

	require.True(t, SameDay(draft.Days[0].Date, d0))
	require.True(t, SameDay(draft.Days[1].Date, localDate(2025, time.January, 6)))
	require.True(t, SameDay(draft.Days[2].Date, localDate(2025, time.January, 7)))

	require.False(t, draft.SetDate(uuid.New(), d0))
}

func TestSetTask(t *testing.T) {
	draft := NewPlanDraft(localDate(2025, time.July, 4))
	require.True(t, draft.SetTask(draft.Days[0].ID, "Long run"))
	require.Equal(t, "Long run", draft.Days[0].TaskDescription)
	require.False(t, draft.SetTask(uuid.New(), "nope"))
}
