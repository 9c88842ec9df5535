package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlanDraft accumulates the day list while the user is building a plan,
// before anything touches the store. Dates are assigned consecutively
// starting from the given day; moving one day's date shifts every later
// day so the sequence stays consecutive.
type PlanDraft struct {
	Title string
	Days  []PlanDay
}

// NewPlanDraft starts a draft with a single day on start's calendar day.
func NewPlanDraft(start time.Time) *PlanDraft {
	d := &PlanDraft{}
	d.appendDay(StartOfDay(start))
	return d
}

// AddDay appends a day one calendar day after the current last day.
func (d *PlanDraft) AddDay() {
	next := StartOfDay(time.Now())
	if n := len(d.Days); n > 0 {
		next = d.Days[n-1].Date.AddDate(0, 0, 1)
	}
	d.appendDay(next)
}

func (d *PlanDraft) appendDay(date time.Time) {
	d.Days = append(d.Days, PlanDay{ID: uuid.New(), Date: date})
}

// SetDate moves the identified day and cascades the shift to all
// subsequent days. Returns false when no day has that id.
func (d *PlanDraft) SetDate(dayID uuid.UUID, date time.Time) bool {
	idx := -1
	for i := range d.Days {
		if d.Days[i].ID == dayID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	cascadeDates(d.Days, idx, date)
	return true
}

// SetTask updates a draft day's task description.
func (d *PlanDraft) SetTask(dayID uuid.UUID, task string) bool {
	for i := range d.Days {
		if d.Days[i].ID == dayID {
			d.Days[i].TaskDescription = task
			return true
		}
	}
	return false
}
