package repository

import (
	"anton/sportpath-core/internal/domain"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Error constants for the repository layer.
var (
	ErrNotFound         = RepositoryError("not found")
	ErrStaleReference   = RepositoryError("stale record reference")
	ErrStoreUnavailable = RepositoryError("store unavailable")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// ValidationError reports invalid caller input. It is always recoverable:
// the UI keeps the form open and shows the reason.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PlanRepository manages training plans and their embedded days.
//
// Every mutation publishes a change event after its transaction commits.
// Mutations take identifiers, not record handles: the live record is
// re-fetched inside the transaction before it is touched.
type PlanRepository interface {
	// CreatePlan atomically terminates every currently active plan and
	// inserts the new plan as the active one. Readers never observe zero
	// or more than one active plan around this call. Fails with
	// *ValidationError when title or days is empty.
	CreatePlan(ctx context.Context, title string, days []domain.PlanDay) (*domain.TrainingPlan, error)

	// TerminatePlan moves an active plan to terminated. A plan that no
	// longer exists or is not active makes this a no-op, not an error.
	TerminatePlan(ctx context.Context, id uuid.UUID) error

	// ActivePlan returns the single active plan, or nil when there is none.
	ActivePlan(ctx context.Context) (*domain.TrainingPlan, error)

	// PlanByID returns the plan or ErrNotFound.
	PlanByID(ctx context.Context, id uuid.UUID) (*domain.TrainingPlan, error)

	// PlansByStatus returns plans matching any of the given statuses,
	// newest first by creation time.
	PlansByStatus(ctx context.Context, statuses ...domain.PlanStatus) ([]domain.TrainingPlan, error)

	// ToggleDayCompletion flips the completed flag of the plan's day on
	// the given calendar day and returns the new value. ErrStaleReference
	// when the plan is gone, ErrNotFound when it has no day on that date.
	ToggleDayCompletion(ctx context.Context, planID uuid.UUID, date time.Time) (bool, error)

	// UpdateDayDate moves one day to a new date and shifts all subsequent
	// days so the sequence stays consecutive.
	UpdateDayDate(ctx context.Context, planID, dayID uuid.UUID, date time.Time) error
}

// WorkoutRepository manages the append-only workout log.
type WorkoutRepository interface {
	// LogWorkout stores an entry for date's calendar day. When an entry
	// already exists for that day the call is a no-op and the existing
	// entry is returned with existed=true; the stored entry is never
	// overwritten.
	LogWorkout(ctx context.Context, date time.Time, description string, mood *domain.WorkoutMood, notes string) (entry *domain.WorkoutEntry, existed bool, err error)

	// ByDate returns the entry for date's calendar day, or nil.
	ByDate(ctx context.Context, date time.Time) (*domain.WorkoutEntry, error)

	// All returns every entry, oldest first.
	All(ctx context.Context) ([]domain.WorkoutEntry, error)
}

// ProfileRepository manages the singleton user profile and its avatar blob.
type ProfileRepository interface {
	// GetOrCreate returns the profile, creating the default one on first
	// access.
	GetOrCreate(ctx context.Context) (*domain.UserProfile, error)

	// UpdateDetails replaces the display name and email.
	UpdateDetails(ctx context.Context, name, email string) error

	// SetAvatar stores the raw image bytes and points the profile at them.
	// The bytes are opaque to the core.
	SetAvatar(ctx context.Context, data []byte) error

	// Avatar returns the stored image bytes, or nil when none is set.
	Avatar(ctx context.Context) ([]byte, error)
}
