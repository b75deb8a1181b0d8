package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmacare/backend/internal/domain/catalog"
)

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=500"`
}

// UpdateCategoryRequest represents a request to update a category
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description" binding:"omitempty,max=500"`
}

// CategoryListFilter represents filter options for the category list
type CategoryListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Status       string    `json:"status"`
	ProductCount int64     `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required,min=1,max=200"`
	Description   string           `json:"description" binding:"max=1000"`
	Barcode       string           `json:"barcode" binding:"max=50"`
	BatchNumber   string           `json:"batch_number" binding:"max=100"`
	CategoryID    *uuid.UUID       `json:"category_id"`
	SupplierID    *uuid.UUID       `json:"supplier_id"`
	PackageUnit   string           `json:"package_unit" binding:"required"`
	SupplierPrice decimal.Decimal  `json:"supplier_price"`
	UnitPrice     decimal.Decimal  `json:"unit_price"`
	StockQuantity *decimal.Decimal `json:"stock_quantity"`
	ReorderLevel  *decimal.Decimal `json:"reorder_level"`
	ExpiryDate    *time.Time       `json:"expiry_date"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description   *string          `json:"description" binding:"omitempty,max=1000"`
	Barcode       *string          `json:"barcode" binding:"omitempty,max=50"`
	BatchNumber   *string          `json:"batch_number" binding:"omitempty,max=100"`
	CategoryID    *uuid.UUID       `json:"category_id"`
	SupplierID    *uuid.UUID       `json:"supplier_id"`
	PackageUnit   *string          `json:"package_unit"`
	SupplierPrice *decimal.Decimal `json:"supplier_price"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	ReorderLevel  *decimal.Decimal `json:"reorder_level"`
	ExpiryDate    *time.Time       `json:"expiry_date"`
	Status        *string          `json:"status" binding:"omitempty,oneof=active inactive discontinued"`
}

// AdjustStockRequest represents a manual stock adjustment
type AdjustStockRequest struct {
	Delta  decimal.Decimal `json:"delta" binding:"required"`
	Reason string          `json:"reason" binding:"max=500"`
}

// ProductListFilter represents filter options for the product list
type ProductListFilter struct {
	Search     string     `form:"search"`
	CategoryID *uuid.UUID `form:"category_id"`
	SupplierID *uuid.UUID `form:"supplier_id"`
	Status     string     `form:"status" binding:"omitempty,oneof=active inactive discontinued"`
	LowStock   bool       `form:"low_stock"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Barcode       string          `json:"barcode,omitempty"`
	BatchNumber   string          `json:"batch_number,omitempty"`
	CategoryID    *uuid.UUID      `json:"category_id,omitempty"`
	SupplierID    *uuid.UUID      `json:"supplier_id,omitempty"`
	PackageUnit   string          `json:"package_unit"`
	SupplierPrice decimal.Decimal `json:"supplier_price"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	ProfitMargin  decimal.Decimal `json:"profit_margin"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	ReorderLevel  decimal.Decimal `json:"reorder_level"`
	LowStock      bool            `json:"low_stock"`
	ExpiryDate    *time.Time      `json:"expiry_date,omitempty"`
	Expired       bool            `json:"expired"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// ToCategoryResponse converts a domain Category to a response DTO
func ToCategoryResponse(category *catalog.Category, productCount int64) CategoryResponse {
	return CategoryResponse{
		ID:           category.ID,
		Name:         category.Name,
		Description:  category.Description,
		Status:       string(category.Status),
		ProductCount: productCount,
		CreatedAt:    category.CreatedAt,
		UpdatedAt:    category.UpdatedAt,
	}
}

// ToProductResponse converts a domain Product to a response DTO
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Barcode:       product.Barcode,
		BatchNumber:   product.BatchNumber,
		CategoryID:    product.CategoryID,
		SupplierID:    product.SupplierID,
		PackageUnit:   string(product.PackageUnit),
		SupplierPrice: product.SupplierPrice,
		UnitPrice:     product.UnitPrice,
		ProfitMargin:  product.GetProfitMargin(),
		StockQuantity: product.StockQuantity,
		ReorderLevel:  product.ReorderLevel,
		LowStock:      product.IsBelowReorderLevel(),
		ExpiryDate:    product.ExpiryDate,
		Expired:       product.IsExpired(),
		Status:        string(product.Status),
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
		Version:       product.Version,
	}
}

// ToProductResponses converts domain products to response DTOs
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
