package main

import (
	"anton/sportpath-core/internal/config"
	"anton/sportpath-core/internal/event"
	"anton/sportpath-core/internal/projection"
	"anton/sportpath-core/internal/repository/sqlite"
	"anton/sportpath-core/internal/service"
	"anton/sportpath-core/internal/storage"
	"context"
	"log"
	"time"
)

// The core has no server: main is the composition root the UI shell would
// embed. It opens the store once, wires the repositories, projector and
// aggregator together, and dumps a status snapshot.
func main() {
	log.Println("Starting SportPath core...")

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("FATAL: Could not open store at %s: %v", cfg.Database.Path, err)
	}
	log.Printf("Store opened at %s.", cfg.Database.Path)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize local storage: %v", err)
	}

	bus := event.NewBus()
	planRepo := sqlite.NewPlanRepository(db, bus)
	workoutRepo := sqlite.NewWorkoutRepository(db, bus)
	profileRepo := sqlite.NewProfileRepository(db, bus, fileStorage)

	statsService := service.NewStatsService(planRepo, workoutRepo)
	projector := projection.New(planRepo, workoutRepo, bus)
	defer projector.Close()

	ctx := context.Background()

	profile, err := profileRepo.GetOrCreate(ctx)
	if err != nil {
		log.Fatalf("FATAL: Could not load profile: %v", err)
	}
	log.Printf("Profile: %s <%s>", profile.Name, profile.Email)

	if plan := projector.ActivePlan(); plan != nil {
		log.Printf("Active plan %q: %d days, %.1f%% complete, %d days left",
			plan.Title, len(plan.Days), plan.CompletionPercentage(), plan.DaysLeft(time.Now()))
	} else {
		log.Println("No active plan.")
	}
	log.Printf("Today's activities: %d", len(projector.TodaysActivities()))

	stats, err := statsService.Statistics(ctx)
	if err != nil {
		log.Fatalf("FATAL: Could not compute statistics: %v", err)
	}
	log.Printf("Stats: trainings=%d streak=%d competitions=%d",
		stats.TotalTrainings, stats.CurrentStreak, stats.CompetitionsCompleted)

	for _, month := range projector.MonthlyDynamics() {
		log.Printf("  %s: %.0f%%", month.Month, month.Fraction*100)
	}
}
