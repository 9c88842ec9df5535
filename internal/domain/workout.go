package domain

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutMood is how the user felt about a logged workout.
type WorkoutMood string

const (
	MoodAmazing  WorkoutMood = "Amazing"
	MoodGood     WorkoutMood = "Good"
	MoodOkay     WorkoutMood = "Okay"
	MoodBad      WorkoutMood = "Bad"
	MoodTerrible WorkoutMood = "Terrible"
)

// AllMoods lists the moods in display order.
func AllMoods() []WorkoutMood {
	return []WorkoutMood{MoodAmazing, MoodGood, MoodOkay, MoodBad, MoodTerrible}
}

// Valid reports whether m is one of the known mood levels.
func (m WorkoutMood) Valid() bool {
	switch m {
	case MoodAmazing, MoodGood, MoodOkay, MoodBad, MoodTerrible:
		return true
	}
	return false
}

// IconName is the asset name the UI shows for this mood.
func (m WorkoutMood) IconName() string {
	switch m {
	case MoodAmazing:
		return "happyIcon"
	case MoodGood:
		return "goodIcon"
	case MoodOkay:
		return "normalIcon"
	case MoodBad:
		return "sadIcon"
	case MoodTerrible:
		return "badIcon"
	}
	return ""
}

// IconColor is the mood's accent color as a hex string.
func (m WorkoutMood) IconColor() string {
	switch m {
	case MoodAmazing:
		return "#FFD700"
	case MoodGood:
		return "#3CB371"
	case MoodOkay:
		return "#6495ED"
	case MoodBad:
		return "#FFA500"
	case MoodTerrible:
		return "#DC143C"
	}
	return ""
}

// WorkoutEntry is one logged workout. Date is always start-of-day and is
// the dedup key: at most one entry exists per calendar day.
type WorkoutEntry struct {
	ID          uuid.UUID    `gorm:"type:text;primaryKey" json:"id"`
	Date        time.Time    `gorm:"uniqueIndex" json:"date"`
	Description string       `json:"description"`
	Mood        *WorkoutMood `gorm:"type:text" json:"mood,omitempty"`
	Notes       string       `json:"notes,omitempty"`
}
