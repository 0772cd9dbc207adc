package profile

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopsight/backend/internal/domain/profile"
)

// CreateProfileRequest represents a request to create the caller's profile
type CreateProfileRequest struct {
	DisplayName string `json:"display_name" binding:"required,min=1,max=100" example:"Jamie R."`
	Email       string `json:"email" binding:"required,email,max=254"`
	Bio         string `json:"bio" binding:"max=2000"`
}

// UpdateProfileRequest represents a request to edit a profile
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,min=1,max=100"`
	Bio         *string `json:"bio" binding:"omitempty,max=2000"`
}

// ProfileResponse represents a user profile in API responses
type ProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	AvatarKey   string    `json:"avatar_key,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// ProfileListFilter represents filter options for profile listings
type ProfileListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
}

// AvatarUploadResponse carries a presigned upload target for an avatar
type AvatarUploadResponse struct {
	UploadURL string    `json:"upload_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ToProfileResponse converts a domain profile to a response DTO
func ToProfileResponse(p *profile.UserProfile) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		DisplayName: p.DisplayName,
		Email:       p.Email,
		AvatarKey:   p.AvatarKey,
		Bio:         p.Bio,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

// ToProfileResponses converts a slice of domain profiles
func ToProfileResponses(profiles []profile.UserProfile) []ProfileResponse {
	responses := make([]ProfileResponse, len(profiles))
	for i := range profiles {
		responses[i] = ToProfileResponse(&profiles[i])
	}
	return responses
}
