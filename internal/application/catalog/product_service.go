package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopsight/backend/internal/domain/catalog"
	"github.com/shopsight/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Presigned URL lifetimes for product images
const (
	imageUploadExpiry   = 15 * time.Minute
	imageDownloadExpiry = 1 * time.Hour
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	storage     ObjectStorageService
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, storage ObjectStorageService, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		storage:     storage,
		logger:      logger,
	}
}

// Create creates a new product owned by the caller
func (s *ProductService) Create(ctx context.Context, caller shared.Caller, req CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	product, err := catalog.NewProduct(caller.UserID, req.SKU, req.Name)
	if err != nil {
		return nil, err
	}

	if req.Description != "" || req.Category != "" {
		if err := product.Update(req.Name, req.Description, req.Category); err != nil {
			return nil, err
		}
	}

	if req.Price != nil {
		currency := req.Currency
		if currency == "" {
			currency = "USD"
		}
		if err := product.SetPrice(*req.Price, currency); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := s.toResponseWithImage(ctx, product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	response := s.toResponseWithImage(ctx, product)
	return &response, nil
}

// GetBySKU retrieves a product by its SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}

	response := s.toResponseWithImage(ctx, product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	f := s.buildFilter(filter)

	products, err := s.productRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToProductResponses(products), total, f.Page, f.PageSize)
	return &result, nil
}

// Update updates a product's editable fields
func (s *ProductService) Update(ctx context.Context, caller shared.Caller, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !caller.CanModify(product.OwnerID) {
		return nil, shared.ErrForbidden
	}

	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := product.Description
	if req.Description != nil {
		description = *req.Description
	}
	category := product.Category
	if req.Category != nil {
		category = *req.Category
	}

	if err := product.Update(name, description, category); err != nil {
		return nil, err
	}

	if req.Price != nil {
		currency := product.Currency
		if req.Currency != nil {
			currency = *req.Currency
		}
		if err := product.SetPrice(*req.Price, currency); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := s.toResponseWithImage(ctx, product)
	return &response, nil
}

// Publish moves a draft product to active status
func (s *ProductService) Publish(ctx context.Context, caller shared.Caller, productID uuid.UUID) (*ProductResponse, error) {
	return s.transition(ctx, caller, productID, (*catalog.Product).Publish)
}

// Archive retires a product. Archived products remain readable but no
// longer accept reviews.
func (s *ProductService) Archive(ctx context.Context, caller shared.Caller, productID uuid.UUID) (*ProductResponse, error) {
	return s.transition(ctx, caller, productID, (*catalog.Product).Archive)
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, caller shared.Caller, productID uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	if !caller.CanModify(product.OwnerID) {
		return shared.ErrForbidden
	}

	product.MarkDeleted()
	return s.productRepo.Delete(ctx, product)
}

// CountByStatus reports the number of products per lifecycle status
func (s *ProductService) CountByStatus(ctx context.Context) (*ProductStatusCountResponse, error) {
	counts, err := s.productRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	resp := &ProductStatusCountResponse{
		Draft:    counts[catalog.ProductStatusDraft],
		Active:   counts[catalog.ProductStatusActive],
		Archived: counts[catalog.ProductStatusArchived],
	}
	resp.Total = resp.Draft + resp.Active + resp.Archived
	return resp, nil
}

// RequestImageUpload issues a presigned upload URL for the product image
func (s *ProductService) RequestImageUpload(ctx context.Context, caller shared.Caller, productID uuid.UUID, contentType string) (*ImageUploadResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !caller.CanModify(product.OwnerID) {
		return nil, shared.ErrForbidden
	}

	key := fmt.Sprintf("products/%s/image-%s", product.ID, uuid.New())
	url, expiresAt, err := s.storage.GenerateUploadURL(ctx, key, contentType, imageUploadExpiry)
	if err != nil {
		return nil, err
	}

	return &ImageUploadResponse{
		UploadURL: url,
		Key:       key,
		ExpiresAt: expiresAt,
	}, nil
}

// ConfirmImageUpload records the uploaded object as the product image
func (s *ProductService) ConfirmImageUpload(ctx context.Context, caller shared.Caller, productID uuid.UUID, key string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !caller.CanModify(product.OwnerID) {
		return nil, shared.ErrForbidden
	}

	exists, err := s.storage.ObjectExists(ctx, key)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.NewDomainError("OBJECT_NOT_FOUND", "Image has not been uploaded yet")
	}

	oldKey := product.ImageKey
	if err := product.SetImageKey(key); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	if oldKey != "" && oldKey != key {
		if err := s.storage.DeleteObject(ctx, oldKey); err != nil {
			s.logger.Warn("failed to delete replaced image object",
				zap.String("product_id", product.ID.String()),
				zap.String("image_key", oldKey),
				zap.Error(err),
			)
		}
	}

	response := s.toResponseWithImage(ctx, product)
	return &response, nil
}

// transition applies a status change after an ownership check
func (s *ProductService) transition(ctx context.Context, caller shared.Caller, productID uuid.UUID, fn func(*catalog.Product) error) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !caller.CanModify(product.OwnerID) {
		return nil, shared.ErrForbidden
	}

	if err := fn(product); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := s.toResponseWithImage(ctx, product)
	return &response, nil
}

// toResponseWithImage attaches a presigned download URL when an image exists
func (s *ProductService) toResponseWithImage(ctx context.Context, product *catalog.Product) ProductResponse {
	response := ToProductResponse(product)
	if product.ImageKey != "" && s.storage != nil {
		if url, _, err := s.storage.GenerateDownloadURL(ctx, product.ImageKey, imageDownloadExpiry); err == nil {
			response.ImageURL = url
		}
	}
	return response
}

// buildFilter converts the API filter into a repository filter
func (s *ProductService) buildFilter(filter ProductListFilter) shared.Filter {
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
	if filter.Status != "" {
		f.Filters["status"] = filter.Status
	}
	if filter.Category != "" {
		f.Filters["category"] = filter.Category
	}
	if filter.MinPrice != nil {
		f.Filters["min_price"] = *filter.MinPrice
	}
	if filter.MaxPrice != nil {
		f.Filters["max_price"] = *filter.MaxPrice
	}
	return f
}
