package review

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopsight/backend/internal/domain/catalog"
	"github.com/shopsight/backend/internal/domain/review"
	"github.com/shopsight/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockReviewRepository is a mock implementation of review.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.Review), args.Error(1)
}

func (m *MockReviewRepository) FindAll(ctx context.Context, filter shared.Filter) ([]review.Review, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]review.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]review.Review, error) {
	args := m.Called(ctx, productID, filter)
	return args.Get(0).([]review.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]review.Review, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]review.Review), args.Error(1)
}

func (m *MockReviewRepository) Save(ctx context.Context, r *review.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, r *review.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReviewRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByStatus(ctx context.Context, status catalog.ProductStatus, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, status, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, category string, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, category, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByStatus(ctx context.Context) (map[catalog.ProductStatus]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[catalog.ProductStatus]int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func newPublishedProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(uuid.New(), "WIDGET-01", "Widget")
	require.NoError(t, err)
	require.NoError(t, product.Publish())
	product.ClearDomainEvents()
	return product
}

func TestReviewService_Create(t *testing.T) {
	ctx := context.Background()
	caller := shared.Caller{UserID: uuid.New()}

	t.Run("creates a review for a published product", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		productRepo := new(MockProductRepository)
		service := NewReviewService(reviewRepo, productRepo)

		product := newPublishedProduct(t)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		reviewRepo.On("Save", ctx, mock.AnythingOfType("*review.Review")).Return(nil)

		resp, err := service.Create(ctx, caller, CreateReviewRequest{
			ProductID: product.ID,
			Rating:    4,
			Title:     "Solid",
			Body:      "Does what it says.",
		})

		require.NoError(t, err)
		assert.Equal(t, product.ID, resp.ProductID)
		assert.Equal(t, caller.UserID, resp.OwnerID)
		assert.Equal(t, 4, resp.Rating)
		assert.Equal(t, string(review.SentimentPending), resp.Sentiment)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("rejects reviews for archived products", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		productRepo := new(MockProductRepository)
		service := NewReviewService(reviewRepo, productRepo)

		product := newPublishedProduct(t)
		require.NoError(t, product.Archive())
		product.ClearDomainEvents()
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := service.Create(ctx, caller, CreateReviewRequest{
			ProductID: product.ID,
			Rating:    1,
			Body:      "Too late.",
		})

		assert.ErrorIs(t, err, shared.ErrProductArchived)
		reviewRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects reviews for draft products", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		productRepo := new(MockProductRepository)
		service := NewReviewService(reviewRepo, productRepo)

		product, err := catalog.NewProduct(uuid.New(), "WIDGET-02", "Unreleased")
		require.NoError(t, err)
		product.ClearDomainEvents()
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err = service.Create(ctx, caller, CreateReviewRequest{
			ProductID: product.ID,
			Rating:    5,
			Body:      "Saw a preview.",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRODUCT_NOT_PUBLISHED", domainErr.Code)
	})

	t.Run("unknown product is reported as not found", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		productRepo := new(MockProductRepository)
		service := NewReviewService(reviewRepo, productRepo)

		productID := uuid.New()
		productRepo.On("FindByID", ctx, productID).Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, caller, CreateReviewRequest{
			ProductID: productID,
			Rating:    3,
			Body:      "Hmm.",
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestReviewService_Update(t *testing.T) {
	ctx := context.Background()
	owner := shared.Caller{UserID: uuid.New()}

	newStoredReview := func(t *testing.T) *review.Review {
		t.Helper()
		rev, err := review.NewReview(owner.UserID, uuid.New(), 4, "Good", "Liked it.")
		require.NoError(t, err)
		require.NoError(t, rev.AssignSentiment(review.SentimentPositive, `{"positive":1}`))
		rev.ClearDomainEvents()
		return rev
	}

	t.Run("author edits reset the sentiment", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		service := NewReviewService(reviewRepo, new(MockProductRepository))

		rev := newStoredReview(t)
		reviewRepo.On("FindByID", ctx, rev.ID).Return(rev, nil)
		reviewRepo.On("Save", ctx, rev).Return(nil)

		rating := 2
		body := "Broke after a week."
		resp, err := service.Update(ctx, owner, rev.ID, UpdateReviewRequest{
			Rating: &rating,
			Body:   &body,
		})

		require.NoError(t, err)
		assert.Equal(t, 2, resp.Rating)
		assert.Equal(t, "Good", resp.Title, "unset fields keep their value")
		assert.Equal(t, string(review.SentimentPending), resp.Sentiment)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("only the author may edit", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		service := NewReviewService(reviewRepo, new(MockProductRepository))

		rev := newStoredReview(t)
		reviewRepo.On("FindByID", ctx, rev.ID).Return(rev, nil)

		stranger := shared.Caller{UserID: uuid.New()}
		rating := 1
		_, err := service.Update(ctx, stranger, rev.ID, UpdateReviewRequest{Rating: &rating})

		assert.ErrorIs(t, err, shared.ErrForbidden)
		reviewRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("admins cannot edit someone else's review", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		service := NewReviewService(reviewRepo, new(MockProductRepository))

		rev := newStoredReview(t)
		reviewRepo.On("FindByID", ctx, rev.ID).Return(rev, nil)

		admin := shared.Caller{UserID: uuid.New(), Groups: []string{shared.AdminGroup}}
		rating := 5
		_, err := service.Update(ctx, admin, rev.ID, UpdateReviewRequest{Rating: &rating})

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestReviewService_Delete(t *testing.T) {
	ctx := context.Background()
	owner := shared.Caller{UserID: uuid.New()}

	newStoredReview := func(t *testing.T) *review.Review {
		t.Helper()
		rev, err := review.NewReview(owner.UserID, uuid.New(), 3, "", "Average.")
		require.NoError(t, err)
		rev.ClearDomainEvents()
		return rev
	}

	t.Run("author deletes own review", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		service := NewReviewService(reviewRepo, new(MockProductRepository))

		rev := newStoredReview(t)
		reviewRepo.On("FindByID", ctx, rev.ID).Return(rev, nil)
		reviewRepo.On("Delete", ctx, rev).Return(nil)

		err := service.Delete(ctx, owner, rev.ID)

		require.NoError(t, err)
		reviewRepo.AssertExpectations(t)
	})

	t.Run("admin deletes any review", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		service := NewReviewService(reviewRepo, new(MockProductRepository))

		rev := newStoredReview(t)
		reviewRepo.On("FindByID", ctx, rev.ID).Return(rev, nil)
		reviewRepo.On("Delete", ctx, rev).Return(nil)

		admin := shared.Caller{UserID: uuid.New(), Groups: []string{shared.AdminGroup}}
		err := service.Delete(ctx, admin, rev.ID)

		require.NoError(t, err)
	})

	t.Run("strangers cannot delete", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		service := NewReviewService(reviewRepo, new(MockProductRepository))

		rev := newStoredReview(t)
		reviewRepo.On("FindByID", ctx, rev.ID).Return(rev, nil)

		stranger := shared.Caller{UserID: uuid.New()}
		err := service.Delete(ctx, stranger, rev.ID)

		assert.ErrorIs(t, err, shared.ErrForbidden)
		reviewRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
