package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopsight/backend/internal/domain/shared"
)

// ProductStatus represents the lifecycle status of a product
type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusActive   ProductStatus = "active"
	ProductStatusArchived ProductStatus = "archived"
)

// IsValid returns true for a known product status
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusDraft, ProductStatusActive, ProductStatusArchived:
		return true
	}
	return false
}

// Product represents a sellable item in the storefront catalog
// It is the aggregate root for product-related operations
type Product struct {
	shared.OwnedAggregateRoot
	SKU         string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	Category    string          `gorm:"type:varchar(100);index"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency    string          `gorm:"type:varchar(3);not null;default:'USD'"`
	ImageKey    string          `gorm:"type:varchar(512)"` // object storage key, not a URL
	Status      ProductStatus   `gorm:"type:varchar(20);not null;default:'draft';index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product in draft status
func NewProduct(ownerID uuid.UUID, sku, name string) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}

	product := &Product{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		SKU:                strings.ToUpper(sku),
		Name:               name,
		Price:              decimal.Zero,
		Currency:           "USD",
		Status:             ProductStatusDraft,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's descriptive fields
func (p *Product) Update(name, description, category string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if len(category) > 100 {
		return shared.NewDomainError("INVALID_CATEGORY", "Category cannot exceed 100 characters")
	}

	p.Name = name
	p.Description = description
	p.Category = category
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPrice sets the product price and currency
func (p *Product) SetPrice(price decimal.Decimal, currency string) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if err := validateCurrency(currency); err != nil {
		return err
	}

	oldPrice := p.Price
	p.Price = price
	p.Currency = strings.ToUpper(currency)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, oldPrice))

	return nil
}

// SetImageKey records the object storage key of the product image
func (p *Product) SetImageKey(key string) error {
	if len(key) > 512 {
		return shared.NewDomainError("INVALID_IMAGE_KEY", "Image key cannot exceed 512 characters")
	}

	p.ImageKey = key
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Publish moves a draft product to active status
func (p *Product) Publish() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already published")
	}
	if p.Status == ProductStatusArchived {
		return shared.NewDomainError("CANNOT_PUBLISH", "Cannot publish an archived product")
	}

	oldStatus := p.Status
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, ProductStatusActive))

	return nil
}

// Archive retires the product. Archived products stay readable but no
// longer accept reviews, and cannot be re-published.
func (p *Product) Archive() error {
	if p.Status == ProductStatusArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Product is already archived")
	}

	oldStatus := p.Status
	p.Status = ProductStatusArchived
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, ProductStatusArchived))
	p.AddDomainEvent(NewProductArchivedEvent(p))

	return nil
}

// MarkDeleted records the deletion event before the row is removed
func (p *Product) MarkDeleted() {
	p.AddDomainEvent(NewProductDeletedEvent(p))
}

// IsActive returns true if the product is published
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// IsArchived returns true if the product has been archived
func (p *Product) IsArchived() bool {
	return p.Status == ProductStatusArchived
}

// AcceptsReviews returns true if new reviews may be attached
func (p *Product) AcceptsReviews() bool {
	return p.Status == ProductStatusActive
}

// validateSKU validates the stock keeping unit code
func validateSKU(sku string) error {
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	for _, r := range sku {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_SKU", "SKU can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}

// validateCurrency validates an ISO 4217 currency code
func validateCurrency(currency string) error {
	if len(currency) != 3 {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency must be a three-letter ISO code")
	}
	for _, r := range currency {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')) {
			return shared.NewDomainError("INVALID_CURRENCY", "Currency must be a three-letter ISO code")
		}
	}
	return nil
}
