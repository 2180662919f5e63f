package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Category      string          `json:"category,omitempty"`
	UOM           string          `json:"uom"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
// El SKU no se modifica: identifica al producto de cara al exterior.
type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	Category      *string          `json:"category,omitempty"`
	UOM           *string          `json:"uom,omitempty"`
	MinStockLevel *decimal.Decimal `json:"min_stock_level,omitempty"`
}

// ProductResponse representación de un producto en la API.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Category      string          `json:"category,omitempty"`
	UOM           string          `json:"uom"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
