package domain

// ProfileID is the fixed primary key of the singleton user profile.
const ProfileID = "currentUserProfile"

// UserProfile is the single on-device user record. It is lazily created on
// first access and mutated in place, never duplicated or deleted. The
// avatar itself lives in blob storage; AvatarKey points at it.
type UserProfile struct {
	ID        string `gorm:"primaryKey" json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarKey string `json:"avatarKey,omitempty"`
}

// DefaultProfile is the profile created on first access.
func DefaultProfile() UserProfile {
	return UserProfile{
		ID:    ProfileID,
		Name:  "Anton",
		Email: "anton@email.com",
	}
}
