package profile

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopsight/backend/internal/domain/profile"
	"github.com/shopsight/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProfileRepository is a mock implementation of profile.ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*profile.UserProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*profile.UserProfile, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) FindByEmail(ctx context.Context, email string) (*profile.UserProfile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profile.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) FindAll(ctx context.Context, filter shared.Filter) ([]profile.UserProfile, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]profile.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) Save(ctx context.Context, p *profile.UserProfile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfileRepository) Delete(ctx context.Context, p *profile.UserProfile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProfileRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProfileRepository) ExistsByOwner(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, ownerID)
	return args.Bool(0), args.Error(1)
}

// MockObjectStorage is a mock implementation of catalog.ObjectStorageService
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) GenerateUploadURL(ctx context.Context, storageKey, contentType string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, contentType, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	args := m.Called(ctx, storageKey, expiresIn)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockObjectStorage) DeleteObject(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) ObjectExists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}

func newTestProfile(t *testing.T, ownerID uuid.UUID) *profile.UserProfile {
	t.Helper()
	p, err := profile.NewUserProfile(ownerID, "Jamie R.", "jamie@example.com")
	require.NoError(t, err)
	p.ClearDomainEvents()
	return p
}

func TestProfileService_Create(t *testing.T) {
	ctx := context.Background()
	caller := shared.Caller{UserID: uuid.New()}

	t.Run("creates the caller's profile", func(t *testing.T) {
		repo := new(MockProfileRepository)
		service := NewProfileService(repo, new(MockObjectStorage), zap.NewNop())

		repo.On("ExistsByOwner", ctx, caller.UserID).Return(false, nil)
		repo.On("FindByEmail", ctx, "jamie@example.com").Return(nil, shared.ErrNotFound)
		repo.On("Save", ctx, mock.AnythingOfType("*profile.UserProfile")).Return(nil)

		resp, err := service.Create(ctx, caller, CreateProfileRequest{
			DisplayName: "Jamie R.",
			Email:       "jamie@example.com",
			Bio:         "Collects mugs.",
		})

		require.NoError(t, err)
		assert.Equal(t, caller.UserID, resp.OwnerID)
		assert.Equal(t, "Jamie R.", resp.DisplayName)
		assert.Equal(t, "Collects mugs.", resp.Bio)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a second profile for the same user", func(t *testing.T) {
		repo := new(MockProfileRepository)
		service := NewProfileService(repo, new(MockObjectStorage), zap.NewNop())

		repo.On("ExistsByOwner", ctx, caller.UserID).Return(true, nil)

		_, err := service.Create(ctx, caller, CreateProfileRequest{
			DisplayName: "Jamie R.",
			Email:       "jamie@example.com",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects an email already in use", func(t *testing.T) {
		repo := new(MockProfileRepository)
		service := NewProfileService(repo, new(MockObjectStorage), zap.NewNop())

		other := newTestProfile(t, uuid.New())
		repo.On("ExistsByOwner", ctx, caller.UserID).Return(false, nil)
		repo.On("FindByEmail", ctx, "jamie@example.com").Return(other, nil)

		_, err := service.Create(ctx, caller, CreateProfileRequest{
			DisplayName: "Impostor",
			Email:       "jamie@example.com",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestProfileService_GetOwn(t *testing.T) {
	ctx := context.Background()
	caller := shared.Caller{UserID: uuid.New()}

	t.Run("returns the caller's profile with avatar URL", func(t *testing.T) {
		repo := new(MockProfileRepository)
		storage := new(MockObjectStorage)
		service := NewProfileService(repo, storage, zap.NewNop())

		p := newTestProfile(t, caller.UserID)
		require.NoError(t, p.SetAvatarKey("avatars/key-1"))
		repo.On("FindByOwner", ctx, caller.UserID).Return(p, nil)
		storage.On("GenerateDownloadURL", ctx, "avatars/key-1", mock.Anything).
			Return("https://cdn.example.com/avatar-1", time.Now().Add(time.Hour), nil)

		resp, err := service.GetOwn(ctx, caller)

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/avatar-1", resp.AvatarURL)
	})

	t.Run("missing profile propagates", func(t *testing.T) {
		repo := new(MockProfileRepository)
		service := NewProfileService(repo, new(MockObjectStorage), zap.NewNop())

		repo.On("FindByOwner", ctx, caller.UserID).Return(nil, shared.ErrNotFound)

		_, err := service.GetOwn(ctx, caller)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProfileService_List(t *testing.T) {
	ctx := context.Background()

	repo := new(MockProfileRepository)
	service := NewProfileService(repo, new(MockObjectStorage), zap.NewNop())

	profiles := []profile.UserProfile{*newTestProfile(t, uuid.New())}
	repo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.Search == "jamie"
	})).Return(profiles, nil)
	repo.On("Count", ctx, mock.Anything).Return(int64(1), nil)

	result, err := service.List(ctx, ProfileListFilter{Search: "jamie"})

	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, int64(1), result.Total)
}

func TestProfileService_Update(t *testing.T) {
	ctx := context.Background()
	caller := shared.Caller{UserID: uuid.New()}

	repo := new(MockProfileRepository)
	service := NewProfileService(repo, new(MockObjectStorage), zap.NewNop())

	p := newTestProfile(t, caller.UserID)
	repo.On("FindByOwner", ctx, caller.UserID).Return(p, nil)
	repo.On("Save", ctx, p).Return(nil)

	bio := "Now also collects teapots."
	resp, err := service.Update(ctx, caller, UpdateProfileRequest{Bio: &bio})

	require.NoError(t, err)
	assert.Equal(t, "Jamie R.", resp.DisplayName, "unset fields keep their value")
	assert.Equal(t, bio, resp.Bio)
	repo.AssertExpectations(t)
}

func TestProfileService_Delete(t *testing.T) {
	ctx := context.Background()
	owner := shared.Caller{UserID: uuid.New()}

	t.Run("owner deletes own profile and avatar", func(t *testing.T) {
		repo := new(MockProfileRepository)
		storage := new(MockObjectStorage)
		service := NewProfileService(repo, storage, zap.NewNop())

		p := newTestProfile(t, owner.UserID)
		require.NoError(t, p.SetAvatarKey("avatars/key-1"))
		repo.On("FindByID", ctx, p.ID).Return(p, nil)
		repo.On("Delete", ctx, p).Return(nil)
		storage.On("DeleteObject", ctx, "avatars/key-1").Return(nil)

		err := service.Delete(ctx, owner, p.ID)

		require.NoError(t, err)
		storage.AssertExpectations(t)
	})

	t.Run("avatar cleanup failure does not fail the delete", func(t *testing.T) {
		repo := new(MockProfileRepository)
		storage := new(MockObjectStorage)
		service := NewProfileService(repo, storage, zap.NewNop())

		p := newTestProfile(t, owner.UserID)
		require.NoError(t, p.SetAvatarKey("avatars/key-1"))
		repo.On("FindByID", ctx, p.ID).Return(p, nil)
		repo.On("Delete", ctx, p).Return(nil)
		storage.On("DeleteObject", ctx, "avatars/key-1").Return(errors.New("bucket unavailable"))

		err := service.Delete(ctx, owner, p.ID)

		require.NoError(t, err, "storage cleanup is best effort")
		storage.AssertExpectations(t)
	})

	t.Run("admin deletes any profile", func(t *testing.T) {
		repo := new(MockProfileRepository)
		service := NewProfileService(repo, new(MockObjectStorage), zap.NewNop())

		p := newTestProfile(t, owner.UserID)
		repo.On("FindByID", ctx, p.ID).Return(p, nil)
		repo.On("Delete", ctx, p).Return(nil)

		admin := shared.Caller{UserID: uuid.New(), Groups: []string{shared.AdminGroup}}
		err := service.Delete(ctx, admin, p.ID)

		require.NoError(t, err)
	})

	t.Run("strangers cannot delete", func(t *testing.T) {
		repo := new(MockProfileRepository)
		service := NewProfileService(repo, new(MockObjectStorage), zap.NewNop())

		p := newTestProfile(t, owner.UserID)
		repo.On("FindByID", ctx, p.ID).Return(p, nil)

		stranger := shared.Caller{UserID: uuid.New()}
		err := service.Delete(ctx, stranger, p.ID)

		assert.ErrorIs(t, err, shared.ErrForbidden)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestProfileService_AvatarUpload(t *testing.T) {
	ctx := context.Background()
	caller := shared.Caller{UserID: uuid.New()}

	t.Run("issues a presigned upload URL", func(t *testing.T) {
		repo := new(MockProfileRepository)
		storage := new(MockObjectStorage)
		service := NewProfileService(repo, storage, zap.NewNop())

		p := newTestProfile(t, caller.UserID)
		repo.On("FindByOwner", ctx, caller.UserID).Return(p, nil)

		expiresAt := time.Now().Add(15 * time.Minute)
		storage.On("GenerateUploadURL", ctx, mock.AnythingOfType("string"), "image/jpeg", mock.Anything).
			Return("https://bucket.example.com/upload", expiresAt, nil)

		resp, err := service.RequestAvatarUpload(ctx, caller, "image/jpeg")

		require.NoError(t, err)
		assert.Equal(t, "https://bucket.example.com/upload", resp.UploadURL)
		assert.True(t, strings.HasPrefix(resp.Key, "avatars/"+caller.UserID.String()+"/avatar-"))
	})

	t.Run("confirm records the avatar and drops the old one", func(t *testing.T) {
		repo := new(MockProfileRepository)
		storage := new(MockObjectStorage)
		service := NewProfileService(repo, storage, zap.NewNop())

		p := newTestProfile(t, caller.UserID)
		require.NoError(t, p.SetAvatarKey("avatars/old-key"))
		repo.On("FindByOwner", ctx, caller.UserID).Return(p, nil)
		repo.On("Save", ctx, p).Return(nil)
		storage.On("ObjectExists", ctx, "avatars/new-key").Return(true, nil)
		storage.On("DeleteObject", ctx, "avatars/old-key").Return(nil)
		storage.On("GenerateDownloadURL", ctx, "avatars/new-key", mock.Anything).
			Return("https://cdn.example.com/new", time.Now().Add(time.Hour), nil)

		resp, err := service.ConfirmAvatarUpload(ctx, caller, "avatars/new-key")

		require.NoError(t, err)
		assert.Equal(t, "avatars/new-key", resp.AvatarKey)
		storage.AssertExpectations(t)
	})

	t.Run("confirm rejects a missing object", func(t *testing.T) {
		repo := new(MockProfileRepository)
		storage := new(MockObjectStorage)
		service := NewProfileService(repo, storage, zap.NewNop())

		p := newTestProfile(t, caller.UserID)
		repo.On("FindByOwner", ctx, caller.UserID).Return(p, nil)
		storage.On("ObjectExists", ctx, "avatars/ghost").Return(false, nil)

		_, err := service.ConfirmAvatarUpload(ctx, caller, "avatars/ghost")

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OBJECT_NOT_FOUND", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
