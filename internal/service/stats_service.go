package service

import (
	"anton/sportpath-core/internal/domain"
	"anton/sportpath-core/internal/repository"
	"context"
)

// Statistics is the profile page's derived display state. It is a pure
// function of repository state, recomputed on every relevant change event.
type Statistics struct {
	TotalTrainings        int `json:"totalTrainings"`
	CurrentStreak         int `json:"currentStreak"`
	MaxStreak             int `json:"maxStreak"`
	MotivationsSent       int `json:"motivationsSent"`
	CompetitionsCompleted int `json:"competitionsCompleted"`
}

// StatsService aggregates display statistics over the other repositories.
type StatsService interface {
	Statistics(ctx context.Context) (Statistics, error)
}

// statsService implements the StatsService interface.
type statsService struct {
	plans    repository.PlanRepository
	workouts repository.WorkoutRepository
}

// NewStatsService creates a new instance of statsService.
func NewStatsService(plans repository.PlanRepository, workouts repository.WorkoutRepository) StatsService {
	return &statsService{plans: plans, workouts: workouts}
}

func (s *statsService) Statistics(ctx context.Context) (Statistics, error) {
	entries, err := s.workouts.All(ctx)
	if err != nil {
		return Statistics{}, err
	}
	// Competitions completed counts every plan no longer active,
	// whichever terminal state it reached.
	finished, err := s.plans.PlansByStatus(ctx,
		domain.PlanStatusCompleted, domain.PlanStatusTerminated)
	if err != nil {
		return Statistics{}, err
	}

	total := len(entries)
	return Statistics{
		TotalTrainings: total,
		// Streaks deliberately mirror the total for now; real
		// consecutive-day semantics are undecided.
		CurrentStreak:         total,
		MaxStreak:             total,
		MotivationsSent:       0,
		CompetitionsCompleted: len(finished),
	}, nil
}
