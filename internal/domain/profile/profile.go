package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopsight/backend/internal/domain/shared"
)

// UserProfile holds the storefront-facing profile of an authenticated user.
// The owner is the identity-provider subject; one profile per user.
type UserProfile struct {
	shared.OwnedAggregateRoot
	DisplayName string `gorm:"type:varchar(100);not null"`
	Email       string `gorm:"type:varchar(254);not null;uniqueIndex"`
	AvatarKey   string `gorm:"type:varchar(512)"` // object storage key
	Bio         string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (UserProfile) TableName() string {
	return "user_profiles"
}

// NewUserProfile creates a profile owned by the given user
func NewUserProfile(ownerID uuid.UUID, displayName, email string) (*UserProfile, error) {
	if err := validateDisplayName(displayName); err != nil {
		return nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	p := &UserProfile{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		DisplayName:        displayName,
		Email:              email,
	}

	p.AddDomainEvent(NewProfileCreatedEvent(p))

	return p, nil
}

// Update changes the profile's editable fields
func (p *UserProfile) Update(displayName, bio string) error {
	if err := validateDisplayName(displayName); err != nil {
		return err
	}
	if len(bio) > 2000 {
		return shared.NewDomainError("INVALID_BIO", "Bio cannot exceed 2000 characters")
	}

	p.DisplayName = displayName
	p.Bio = bio
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProfileUpdatedEvent(p))

	return nil
}

// SetAvatarKey records the object storage key of the avatar image
func (p *UserProfile) SetAvatarKey(key string) error {
	if len(key) > 512 {
		return shared.NewDomainError("INVALID_AVATAR_KEY", "Avatar key cannot exceed 512 characters")
	}

	p.AvatarKey = key
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// MarkDeleted records the deletion event before the row is removed
func (p *UserProfile) MarkDeleted() {
	p.AddDomainEvent(NewProfileDeletedEvent(p))
}

// validateDisplayName validates the display name
func validateDisplayName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_DISPLAY_NAME", "Display name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_DISPLAY_NAME", "Display name cannot exceed 100 characters")
	}
	return nil
}

// validateEmail performs a light structural check; full verification
// is the identity provider's job.
func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || len(email) > 254 {
		return shared.NewDomainError("INVALID_EMAIL", "Email address is malformed")
	}
	return nil
}
