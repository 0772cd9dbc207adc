package profile

import (
	"github.com/google/uuid"
	"github.com/shopsight/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeUserProfile = "UserProfile"

// Event type constants
const (
	EventTypeProfileCreated = "ProfileCreated"
	EventTypeProfileUpdated = "ProfileUpdated"
	EventTypeProfileDeleted = "ProfileDeleted"
)

// ProfileCreatedEvent is published when a user creates their profile
type ProfileCreatedEvent struct {
	shared.BaseDomainEvent
	ProfileID   uuid.UUID `json:"profile_id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
}

// NewProfileCreatedEvent creates a new ProfileCreatedEvent
func NewProfileCreatedEvent(p *UserProfile) *ProfileCreatedEvent {
	return &ProfileCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProfileCreated, AggregateTypeUserProfile, p.ID),
		ProfileID:       p.ID,
		OwnerID:         p.OwnerID,
		DisplayName:     p.DisplayName,
		Email:           p.Email,
	}
}

// ProfileUpdatedEvent is published when a profile is edited
type ProfileUpdatedEvent struct {
	shared.BaseDomainEvent
	ProfileID   uuid.UUID `json:"profile_id"`
	DisplayName string    `json:"display_name"`
}

// NewProfileUpdatedEvent creates a new ProfileUpdatedEvent
func NewProfileUpdatedEvent(p *UserProfile) *ProfileUpdatedEvent {
	return &ProfileUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProfileUpdated, AggregateTypeUserProfile, p.ID),
		ProfileID:       p.ID,
		DisplayName:     p.DisplayName,
	}
}

// ProfileDeletedEvent is published when a profile is removed
type ProfileDeletedEvent struct {
	shared.BaseDomainEvent
	ProfileID uuid.UUID `json:"profile_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
}

// NewProfileDeletedEvent creates a new ProfileDeletedEvent
func NewProfileDeletedEvent(p *UserProfile) *ProfileDeletedEvent {
	return &ProfileDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProfileDeleted, AggregateTypeUserProfile, p.ID),
		ProfileID:       p.ID,
		OwnerID:         p.OwnerID,
	}
}
