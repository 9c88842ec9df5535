// Package projection maintains the UI-facing derived state so the UI never
// re-queries the repositories on render. The projector subscribes to the
// change feed and rebuilds its projections wholesale on every change,
// which is fine at this data scale.
package projection

import (
	"anton/sportpath-core/internal/domain"
	"anton/sportpath-core/internal/event"
	"anton/sportpath-core/internal/repository"
	"context"
	"log"
	"sync"
	"time"
)

// MonthDynamics is one bar of the forward-looking dynamics chart: the
// fraction of the month's calendar days that have a logged workout.
type MonthDynamics struct {
	Month    string  // abbreviated label, e.g. "Jan"
	Fraction float64 // in [0, 1]
}

// dynamicsMonths is how many months the chart covers, current month first.
const dynamicsMonths = 6

// weekDays indexes Monday..Sunday of the current week.
const weekDays = 7

// Projector is the read model over the plan and workout repositories.
// All accessors return consistent post-commit snapshots; the projector
// never returns errors, it clears derived state when the store misbehaves.
type Projector struct {
	plans    repository.PlanRepository
	workouts repository.WorkoutRepository
	now      func() time.Time

	unsubscribe func()

	mu             sync.RWMutex
	activePlan     *domain.TrainingPlan
	todays         []domain.PlanDay
	workoutsByDay  map[string]domain.WorkoutEntry
	hasAnyWorkouts bool
	monthly        []MonthDynamics
	week           [weekDays]bool
}

// New builds the projector, subscribes it to the change feed and computes
// the initial projections. Callers own the subscription and must Close the
// projector when done with it.
func New(plans repository.PlanRepository, workouts repository.WorkoutRepository, bus *event.Bus) *Projector {
	p := &Projector{
		plans:    plans,
		workouts: workouts,
		now:      time.Now,
	}
	p.unsubscribe = bus.Subscribe(func(event.Change) {
		// Workout changes can affect the plan display and vice versa, so
		// every scope triggers a full recompute.
		p.Refresh()
	})
	p.Refresh()
	return p
}

// Close releases the change-feed subscription.
func (p *Projector) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
}

// Refresh recomputes every projection from current repository state.
func (p *Projector) Refresh() {
	ctx := context.Background()
	now := p.now()

	entries, err := p.workouts.All(ctx)
	if err != nil {
		log.Printf("ERROR: projector could not load workouts: %v", err)
		entries = nil
	}
	active, err := p.plans.ActivePlan(ctx)
	if err != nil {
		log.Printf("ERROR: projector could not load active plan: %v", err)
		active = nil
	}

	byDay := make(map[string]domain.WorkoutEntry, len(entries))
	for _, entry := range entries {
		byDay[domain.DayKey(entry.Date)] = entry
	}

	var todays []domain.PlanDay
	if active != nil {
		todays = active.DaysOn(now)
	}

	p.mu.Lock()
	p.activePlan = active
	p.todays = todays
	p.workoutsByDay = byDay
	p.hasAnyWorkouts = len(entries) > 0
	p.monthly = monthlyDynamics(entries, now, dynamicsMonths)
	p.week = weekCompletion(active, now)
	p.mu.Unlock()
}

// ActivePlan returns the current active plan, or nil.
func (p *Projector) ActivePlan() *domain.TrainingPlan {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.activePlan
}

// TodaysActivities returns the active plan's days scheduled for today.
// Empty when there is no active plan.
func (p *Projector) TodaysActivities() []domain.PlanDay {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.todays
}

// WorkoutExists reports whether a workout is logged on date's calendar
// day, regardless of the time component.
func (p *Projector) WorkoutExists(date time.Time) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.workoutsByDay[domain.DayKey(date)]
	return ok
}

// Workout returns the entry logged on date's calendar day.
func (p *Projector) Workout(date time.Time) (domain.WorkoutEntry, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	entry, ok := p.workoutsByDay[domain.DayKey(date)]
	return entry, ok
}

// HasAnyWorkouts reports whether anything has been logged at all.
func (p *Projector) HasAnyWorkouts() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.hasAnyWorkouts
}

// MonthlyDynamics returns six months of workout-day fractions, current
// month first. Months that have not happened yet read as 0 unless
// workouts are pre-logged; the chart looks ahead, not back.
func (p *Projector) MonthlyDynamics() []MonthDynamics {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.monthly
}

// WeekCompletion reports, for Monday through Sunday of the current week,
// whether the active plan has a completed day on that date.
func (p *Projector) WeekCompletion() [weekDays]bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.week
}

// monthlyDynamics buckets entries by calendar month, counting distinct
// workout days, for count months starting with the month containing from.
func monthlyDynamics(entries []domain.WorkoutEntry, from time.Time, count int) []MonthDynamics {
	anchor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location())

	out := make([]MonthDynamics, 0, count)
	for i := 0; i < count; i++ {
		monthStart := anchor.AddDate(0, i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0)

		days := make(map[string]struct{})
		for _, entry := range entries {
			day := domain.StartOfDay(entry.Date)
			if !day.Before(monthStart) && day.Before(monthEnd) {
				days[domain.DayKey(day)] = struct{}{}
			}
		}

		fraction := 0.0
		if total := domain.DaysInMonth(monthStart); total > 0 {
			fraction = float64(len(days)) / float64(total)
		}
		fraction = min(max(fraction, 0), 1)

		out = append(out, MonthDynamics{
			Month:    monthStart.Format("Jan"),
			Fraction: fraction,
		})
	}
	return out
}

// weekCompletion maps the active plan's completed days onto Monday..Sunday
// of the week containing now.
func weekCompletion(plan *domain.TrainingPlan, now time.Time) [weekDays]bool {
	var week [weekDays]bool
	if plan == nil {
		return week
	}
	// time.Weekday counts Sunday as 0; shift so Monday is index 0.
	offset := (int(now.Weekday()) + 6) % 7
	weekStart := domain.StartOfDay(now).AddDate(0, 0, -offset)
	for i := 0; i < weekDays; i++ {
		date := weekStart.AddDate(0, 0, i)
		for _, day := range plan.Days {
			if day.Completed && domain.SameDay(day.Date, date) {
				week[i] = true
				break
			}
		}
	}
	return week
}
