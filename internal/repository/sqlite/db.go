// internal/repository/sqlite/db.go
package sqlite

import (
	"anton/sportpath-core/internal/domain"
	"anton/sportpath-core/internal/repository"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens (or creates) the embedded store at path and migrates the
// schema. The returned handle is the single process-wide store instance;
// it is constructed once at startup and injected into each repository.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, storeErr(err)
	}
	if err := db.AutoMigrate(
		&domain.TrainingPlan{},
		&domain.WorkoutEntry{},
		&domain.UserProfile{},
	); err != nil {
		return nil, storeErr(err)
	}
	return db, nil
}

// storeErr wraps a failure of the underlying store so callers can match
// repository.ErrStoreUnavailable. Store failures are surfaced, never
// swallowed.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", repository.ErrStoreUnavailable, err)
}
