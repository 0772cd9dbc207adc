package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/shopsight/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	SKU         string           `json:"sku" binding:"required,min=1,max=50" example:"COFFEE-MUG-01"`
	Name        string           `json:"name" binding:"required,min=1,max=200" example:"Stoneware Coffee Mug"`
	Description string           `json:"description" binding:"max=5000"`
	Category    string           `json:"category" binding:"max=100" example:"kitchen"`
	Price       *decimal.Decimal `json:"price"`
	Currency    string           `json:"currency" binding:"omitempty,len=3" example:"USD"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=5000"`
	Category    *string          `json:"category" binding:"omitempty,max=100"`
	Price       *decimal.Decimal `json:"price"`
	Currency    *string          `json:"currency" binding:"omitempty,len=3"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"owner_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	ImageKey    string          `json:"image_key,omitempty"`
	ImageURL    string          `json:"image_url,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Version     int             `json:"version"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search   string   `form:"search"`
	Status   string   `form:"status" binding:"omitempty,oneof=draft active archived"`
	Category string   `form:"category"`
	MinPrice *float64 `form:"min_price"`
	MaxPrice *float64 `form:"max_price"`
	Page     int      `form:"page" binding:"min=0"`
	PageSize int      `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string   `form:"order_by" binding:"omitempty,oneof=created_at updated_at name price sku"`
	OrderDir string   `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductStatusCountResponse reports the number of products per status
type ProductStatusCountResponse struct {
	Draft    int64 `json:"draft"`
	Active   int64 `json:"active"`
	Archived int64 `json:"archived"`
	Total    int64 `json:"total"`
}

// ImageUploadResponse carries a presigned upload target for a product image
type ImageUploadResponse struct {
	UploadURL string    `json:"upload_url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Currency:    p.Currency,
		ImageKey:    p.ImageKey,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		Version:     p.Version,
	}
}

// ToProductResponses converts a slice of domain products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
