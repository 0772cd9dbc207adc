package review

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopsight/backend/internal/domain/catalog"
	"github.com/shopsight/backend/internal/domain/review"
	"github.com/shopsight/backend/internal/domain/shared"
)

// ReviewService handles review-related business operations
type ReviewService struct {
	reviewRepo  review.ReviewRepository
	productRepo catalog.ProductRepository
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo review.ReviewRepository, productRepo catalog.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// Create submits a new review for a product. Archived products no
// longer accept reviews.
func (s *ReviewService) Create(ctx context.Context, caller shared.Caller, req CreateReviewRequest) (*ReviewResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	if !product.AcceptsReviews() {
		if product.IsArchived() {
			return nil, shared.ErrProductArchived
		}
		return nil, shared.NewDomainError("PRODUCT_NOT_PUBLISHED", "Reviews can only be submitted for published products")
	}

	rev, err := review.NewReview(caller.UserID, product.ID, req.Rating, req.Title, req.Body)
	if err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Save(ctx, rev); err != nil {
		return nil, err
	}

	response := ToReviewResponse(rev)
	return &response, nil
}

// GetByID retrieves a review by ID
func (s *ReviewService) GetByID(ctx context.Context, reviewID uuid.UUID) (*ReviewResponse, error) {
	rev, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	response := ToReviewResponse(rev)
	return &response, nil
}

// ListByProduct retrieves reviews for a product with pagination
func (s *ReviewService) ListByProduct(ctx context.Context, productID uuid.UUID, filter ReviewListFilter) (*shared.Paginated[ReviewResponse], error) {
	f := s.buildFilter(filter)

	reviews, err := s.reviewRepo.FindByProduct(ctx, productID, f)
	if err != nil {
		return nil, err
	}

	countFilter := f
	countFilter.Filters["product_id"] = productID
	total, err := s.reviewRepo.Count(ctx, countFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToReviewResponses(reviews), total, f.Page, f.PageSize)
	return &result, nil
}

// ListByOwner retrieves reviews written by the given user
func (s *ReviewService) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter ReviewListFilter) ([]ReviewResponse, error) {
	f := s.buildFilter(filter)

	reviews, err := s.reviewRepo.FindByOwner(ctx, ownerID, f)
	if err != nil {
		return nil, err
	}

	return ToReviewResponses(reviews), nil
}

// Update edits a review. Only the author may edit; the stored sentiment
// is reset and re-analyzed asynchronously.
func (s *ReviewService) Update(ctx context.Context, caller shared.Caller, reviewID uuid.UUID, req UpdateReviewRequest) (*ReviewResponse, error) {
	rev, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	if !rev.IsOwnedBy(caller.UserID) {
		return nil, shared.ErrForbidden
	}

	rating := rev.Rating
	if req.Rating != nil {
		rating = *req.Rating
	}
	title := rev.Title
	if req.Title != nil {
		title = *req.Title
	}
	body := rev.Body
	if req.Body != nil {
		body = *req.Body
	}

	if err := rev.Update(rating, title, body); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Save(ctx, rev); err != nil {
		return nil, err
	}

	response := ToReviewResponse(rev)
	return &response, nil
}

// Delete removes a review. The author or an admin may delete.
func (s *ReviewService) Delete(ctx context.Context, caller shared.Caller, reviewID uuid.UUID) error {
	rev, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if !caller.CanModify(rev.OwnerID) {
		return shared.ErrForbidden
	}

	rev.MarkDeleted()
	return s.reviewRepo.Delete(ctx, rev)
}

// buildFilter converts the API filter into a repository filter
func (s *ReviewService) buildFilter(filter ReviewListFilter) shared.Filter {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	f.Search = filter.Search
	if filter.Sentiment != "" {
		f.Filters["sentiment"] = filter.Sentiment
	}
	if filter.Rating != nil {
		f.Filters["rating"] = *filter.Rating
	}
	if filter.MinRating != nil {
		f.Filters["min_rating"] = *filter.MinRating
	}
	return f
}
