package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	catalogapp "github.com/shopsight/backend/internal/application/catalog"
	"github.com/shopsight/backend/internal/domain/profile"
	"github.com/shopsight/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Presigned URL lifetimes for avatars
const (
	avatarUploadExpiry   = 15 * time.Minute
	avatarDownloadExpiry = 1 * time.Hour
)

// ProfileService handles user profile operations
type ProfileService struct {
	profileRepo profile.ProfileRepository
	storage     catalogapp.ObjectStorageService
	logger      *zap.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo profile.ProfileRepository, storage catalogapp.ObjectStorageService, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		storage:     storage,
		logger:      logger,
	}
}

// Create creates the caller's profile. One profile per user.
func (s *ProfileService) Create(ctx context.Context, caller shared.Caller, req CreateProfileRequest) (*ProfileResponse, error) {
	exists, err := s.profileRepo.ExistsByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Profile already exists for this user")
	}

	if _, err := s.profileRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already in use")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	p, err := profile.NewUserProfile(caller.UserID, req.DisplayName, req.Email)
	if err != nil {
		return nil, err
	}

	if req.Bio != "" {
		if err := p.Update(req.DisplayName, req.Bio); err != nil {
			return nil, err
		}
	}

	if err := s.profileRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := s.toResponseWithAvatar(ctx, p)
	return &response, nil
}

// GetByID retrieves a profile by ID
func (s *ProfileService) GetByID(ctx context.Context, profileID uuid.UUID) (*ProfileResponse, error) {
	p, err := s.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	response := s.toResponseWithAvatar(ctx, p)
	return &response, nil
}

// GetOwn retrieves the caller's profile
func (s *ProfileService) GetOwn(ctx context.Context, caller shared.Caller) (*ProfileResponse, error) {
	p, err := s.profileRepo.FindByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	response := s.toResponseWithAvatar(ctx, p)
	return &response, nil
}

// List retrieves profiles with pagination. Admin only; enforced by the caller.
func (s *ProfileService) List(ctx context.Context, filter ProfileListFilter) (*shared.Paginated[ProfileResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	f.Search = filter.Search

	profiles, err := s.profileRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}

	total, err := s.profileRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToProfileResponses(profiles), total, f.Page, f.PageSize)
	return &result, nil
}

// Update edits the caller's profile
func (s *ProfileService) Update(ctx context.Context, caller shared.Caller, req UpdateProfileRequest) (*ProfileResponse, error) {
	p, err := s.profileRepo.FindByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	displayName := p.DisplayName
	if req.DisplayName != nil {
		displayName = *req.DisplayName
	}
	bio := p.Bio
	if req.Bio != nil {
		bio = *req.Bio
	}

	if err := p.Update(displayName, bio); err != nil {
		return nil, err
	}

	if err := s.profileRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := s.toResponseWithAvatar(ctx, p)
	return &response, nil
}

// Delete removes a profile. The owner or an admin may delete.
func (s *ProfileService) Delete(ctx context.Context, caller shared.Caller, profileID uuid.UUID) error {
	p, err := s.profileRepo.FindByID(ctx, profileID)
	if err != nil {
		return err
	}

	if !caller.CanModify(p.OwnerID) {
		return shared.ErrForbidden
	}

	p.MarkDeleted()
	if err := s.profileRepo.Delete(ctx, p); err != nil {
		return err
	}

	// Best effort; the profile row is already gone
	if p.AvatarKey != "" {
		if err := s.storage.DeleteObject(ctx, p.AvatarKey); err != nil {
			s.logger.Warn("failed to delete avatar object",
				zap.String("profile_id", p.ID.String()),
				zap.String("avatar_key", p.AvatarKey),
				zap.Error(err),
			)
		}
	}
	return nil
}

// RequestAvatarUpload issues a presigned upload URL for the caller's avatar
func (s *ProfileService) RequestAvatarUpload(ctx context.Context, caller shared.Caller, contentType string) (*AvatarUploadResponse, error) {
	p, err := s.profileRepo.FindByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("avatars/%s/avatar-%s", p.OwnerID, uuid.New())
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, avatarUploadExpiry)
	if err != nil {
		return nil, err
	}

	return &AvatarUploadResponse{
		UploadURL: url,
		Key:       key,
		ExpiresAt: expiresAt,
	}, nil
}

// ConfirmAvatarUpload records the uploaded object as the caller's avatar
func (s *ProfileService) ConfirmAvatarUpload(ctx context.Context, caller shared.Caller, key string) (*ProfileResponse, error) {
	p, err := s.profileRepo.FindByOwner(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	exists, err := s.storage.ObjectExists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("OBJECT_NOT_FOUND", "Avatar has not been uploaded yet")
	}

	oldKey := p.AvatarKey
	if err := p.SetAvatarKey(key); err != nil {
		return nil, err
	}

	if err := s.profileRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	if oldKey != "" && oldKey != key {
		if err := s.storage.DeleteObject(ctx, oldKey); err != nil {
			s.logger.Warn("failed to delete replaced avatar object",
				zap.String("profile_id", p.ID.String()),
				zap.String("avatar_key", oldKey),
				zap.Error(err),
			)
		}
	}

	response := s.toResponseWithAvatar(ctx, p)
	return &response, nil
}

// toResponseWithAvatar attaches a presigned download URL when an avatar exists
func (s *ProfileService) toResponseWithAvatar(ctx context.Context, p *profile.UserProfile) ProfileResponse {
	response := ToProfileResponse(p)
	if p.AvatarKey != "" && s.storage != nil {
		if url, _, err := s.storage.GenerateDownloadURL(ctx, p.AvatarKey, avatarDownloadExpiry); err == nil {
			response.AvatarURL = url
		}
	}
	return response
}
