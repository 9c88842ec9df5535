// internal/domain/training_plan.go
package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PlanStatus is the lifecycle state of a TrainingPlan.
type PlanStatus string

const (
	PlanStatusActive     PlanStatus = "active"     // The plan currently guiding daily tasks
	PlanStatusCompleted  PlanStatus = "completed"  // Finished; no transition sets this yet
	PlanStatusTerminated PlanStatus = "terminated" // Cut short by the user
)

// TrainingPlan is a multi-day schedule leading up to a competition.
// Days are owned by the plan with value semantics: they have no identity
// outside it and are stored inline as a JSON column.
type TrainingPlan struct {
	ID        uuid.UUID                    `gorm:"type:text;primaryKey" json:"id"`
	Title     string                       `gorm:"not null" json:"title"`
	CreatedAt time.Time                    `json:"createdAt"`
	Status    PlanStatus                   `gorm:"index" json:"status"`
	Days      datatypes.JSONSlice[PlanDay] `json:"days"`
}

// PlanDay is a single scheduled day inside a plan. Dates are always
// start-of-day in the user's local calendar.
type PlanDay struct {
	ID              uuid.UUID `json:"id"`
	Date            time.Time `json:"date"`
	TaskDescription string    `json:"taskDescription"`
	Completed       bool      `json:"completed"`
}

// IsActive reports whether the plan is the one currently in progress.
func (p *TrainingPlan) IsActive() bool {
	return p.Status == PlanStatusActive
}

// EndDate returns the latest date among the plan's days. The second return
// value is false for a plan with no days.
func (p *TrainingPlan) EndDate() (time.Time, bool) {
	if len(p.Days) == 0 {
		return time.Time{}, false
	}
	end := p.Days[0].Date
	for _, day := range p.Days[1:] {
		if day.Date.After(end) {
			end = day.Date
		}
	}
	return end, true
}

// DaysLeft counts the full days remaining between the start of "today"
// (derived from now) and the end of the plan's last day. Never negative.
func (p *TrainingPlan) DaysLeft(now time.Time) int {
	end, ok := p.EndDate()
	if !ok {
		return 0
	}
	startOfToday := StartOfDay(now)
	endOfLastDay := EndOfDay(end)
	if endOfLastDay.Before(startOfToday) {
		return 0
	}
	return int(endOfLastDay.Sub(startOfToday) / (24 * time.Hour))
}

// CompletionPercentage is 100 * completed days / total days, 0 for an
// empty plan. The exact rational value is returned; formatting is the
// caller's concern.
func (p *TrainingPlan) CompletionPercentage() float64 {
	if len(p.Days) == 0 {
		return 0
	}
	completed := 0
	for _, day := range p.Days {
		if day.Completed {
			completed++
		}
	}
	return float64(completed) / float64(len(p.Days)) * 100
}

// DaysOn returns the plan's days falling on the same calendar day as date.
func (p *TrainingPlan) DaysOn(date time.Time) []PlanDay {
	var out []PlanDay
	for _, day := range p.Days {
		if SameDay(day.Date, date) {
			out = append(out, day)
		}
	}
	return out
}

// SetDayDate moves the identified day to date (normalized to start-of-day)
// and shifts every subsequent day so the sequence stays consecutive.
// Returns false when no day has that id.
func (p *TrainingPlan) SetDayDate(dayID uuid.UUID, date time.Time) bool {
	idx := -1
	for i := range p.Days {
		if p.Days[i].ID == dayID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	cascadeDates(p.Days, idx, date)
	return true
}

// cascadeDates sets days[idx] to the start of date and re-dates every
// subsequent day one calendar day after its predecessor.
func cascadeDates(days []PlanDay, idx int, date time.Time) {
	current := StartOfDay(date)
	days[idx].Date = current
	for i := idx + 1; i < len(days); i++ {
		current = current.AddDate(0, 0, 1)
		days[i].Date = current
	}
}

// ToggleDay flips the completed flag of the day on the given calendar day.
// The second return value is false when the plan has no day on that date.
func (p *TrainingPlan) ToggleDay(date time.Time) (bool, bool) {
	for i := range p.Days {
		if SameDay(p.Days[i].Date, date) {
			p.Days[i].Completed = !p.Days[i].Completed
			return p.Days[i].Completed, true
		}
	}
	return false, false
}
