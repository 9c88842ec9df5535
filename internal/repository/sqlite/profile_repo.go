// internal/repository/sqlite/profile_repo.go
package sqlite

import (
	"anton/sportpath-core/internal/domain"
	"anton/sportpath-core/internal/event"
	"anton/sportpath-core/internal/repository"
	"anton/sportpath-core/internal/storage"
	"context"
	"errors"
	"log"
	"path"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// profileRepository implements repository.ProfileRepository. Profile
// details live in the store; the avatar blob lives in file storage and the
// row only holds its object key.
type profileRepository struct {
	db    *gorm.DB
	bus   *event.Bus
	files storage.FileStorage
}

// NewProfileRepository creates a new UserProfile repository.
func NewProfileRepository(db *gorm.DB, bus *event.Bus, files storage.FileStorage) repository.ProfileRepository {
	return &profileRepository{db: db, bus: bus, files: files}
}

func (r *profileRepository) GetOrCreate(ctx context.Context) (*domain.UserProfile, error) {
	created := false
	var profile domain.UserProfile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&profile, "id = ?", domain.ProfileID).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		profile = domain.DefaultProfile()
		created = true
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, storeErr(err)
	}
	if created {
		r.bus.Publish(event.Change{Scope: event.ScopeProfile})
	}
	return &profile, nil
}

func (r *profileRepository) UpdateDetails(ctx context.Context, name, email string) error {
	if _, err := r.GetOrCreate(ctx); err != nil {
		return err
	}
	err := r.db.WithContext(ctx).
		Model(&domain.UserProfile{ID: domain.ProfileID}).
		Updates(map[string]any{"name": name, "email": email}).Error
	if err != nil {
		return storeErr(err)
	}
	r.bus.Publish(event.Change{Scope: event.ScopeProfile})
	return nil
}

func (r *profileRepository) SetAvatar(ctx context.Context, data []byte) error {
	profile, err := r.GetOrCreate(ctx)
	if err != nil {
		return err
	}

	key := path.Join("avatars", uuid.New().String())
	if err := r.files.Put(ctx, key, data); err != nil {
		return err
	}

	err = r.db.WithContext(ctx).
		Model(&domain.UserProfile{ID: domain.ProfileID}).
		Update("avatar_key", key).Error
	if err != nil {
		// The row is the source of truth; drop the orphaned blob.
		if delErr := r.files.Delete(ctx, key); delErr != nil {
			log.Printf("WARN: could not remove orphaned avatar %s: %v", key, delErr)
		}
		return storeErr(err)
	}

	if old := profile.AvatarKey; old != "" && old != key {
		if err := r.files.Delete(ctx, old); err != nil {
			log.Printf("WARN: could not remove replaced avatar %s: %v", old, err)
		}
	}

	r.bus.Publish(event.Change{Scope: event.ScopeProfile})
	return nil
}

func (r *profileRepository) Avatar(ctx context.Context) ([]byte, error) {
	profile, err := r.GetOrCreate(ctx)
	if err != nil {
		return nil, err
	}
	if profile.AvatarKey == "" {
		return nil, nil
	}
	data, err := r.files.Get(ctx, profile.AvatarKey)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, nil
	}
	return data, err
}
