package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopsight/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySKU finds a product by its SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByStatus finds products by status
	FindByStatus(ctx context.Context, status ProductStatus, filter shared.Filter) ([]Product, error)

	// FindByCategory finds products with the given category label
	FindByCategory(ctx context.Context, category string, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product and writes its pending
	// domain events to the outbox in the same transaction
	Save(ctx context.Context, product *Product) error

	// Delete removes a product and writes its pending domain events
	// to the outbox in the same transaction
	Delete(ctx context.Context, product *Product) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts products per status
	CountByStatus(ctx context.Context) (map[ProductStatus]int64, error)

	// ExistsBySKU checks if a product with the given SKU exists
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
}
