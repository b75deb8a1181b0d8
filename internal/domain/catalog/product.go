package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pharmacare/backend/internal/domain/shared"
	"github.com/pharmacare/backend/internal/domain/shared/valueobject"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "active"
	ProductStatusInactive     ProductStatus = "inactive"
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// Product represents a medicine/SKU in the catalog.
// It is the aggregate root for product-related operations and carries the
// on-hand stock that order reservation draws from.
type Product struct {
	shared.BaseAggregateRoot
	Name          string                  `gorm:"type:varchar(200);not null;index"`
	Description   string                  `gorm:"type:text"`
	Barcode       string                  `gorm:"type:varchar(50);index"`
	BatchNumber   string                  `gorm:"type:varchar(50)"`
	CategoryID    *uuid.UUID              `gorm:"type:uuid;index"`
	SupplierID    *uuid.UUID              `gorm:"type:uuid;index"`
	PackageUnit   valueobject.PackageUnit `gorm:"type:varchar(20);not null"`
	SupplierPrice decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"` // Cost price
	UnitPrice     decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"` // Selling price
	StockQuantity decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	ReorderLevel  decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"` // Low-stock alert threshold
	ExpiryDate    *time.Time              `gorm:"index"`
	Status        ProductStatus           `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name string, unit valueobject.PackageUnit) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if !unit.IsValid() {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unknown package unit: "+string(unit))
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		PackageUnit:       unit,
		SupplierPrice:     decimal.Zero,
		UnitPrice:         decimal.Zero,
		StockQuantity:     decimal.Zero,
		ReorderLevel:      decimal.Zero,
		Status:            ProductStatusActive,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// NewProductWithPrices creates a new product with prices
func NewProductWithPrices(name string, unit valueobject.PackageUnit, supplierPrice, unitPrice valueobject.Money) (*Product, error) {
	product, err := NewProduct(name, unit)
	if err != nil {
		return nil, err
	}

	if err := product.SetPrices(supplierPrice, unitPrice); err != nil {
		return nil, err
	}

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetBarcode sets the product barcode
func (p *Product) SetBarcode(barcode string) error {
	if barcode != "" && len(barcode) > 50 {
		return shared.NewDomainError("INVALID_BARCODE", "Barcode cannot exceed 50 characters")
	}

	p.Barcode = barcode
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetBatch sets the batch number and expiry date of the current lot
func (p *Product) SetBatch(batchNumber string, expiryDate *time.Time) error {
	if batchNumber != "" && len(batchNumber) > 50 {
		return shared.NewDomainError("INVALID_BATCH", "Batch number cannot exceed 50 characters")
	}

	p.BatchNumber = batchNumber
	p.ExpiryDate = expiryDate
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetCategory sets the product category
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))
}

// SetSupplier sets the product's supplier
func (p *Product) SetSupplier(supplierID *uuid.UUID) {
	p.SupplierID = supplierID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetPackageUnit changes the package unit the product is sold in
func (p *Product) SetPackageUnit(unit valueobject.PackageUnit) error {
	if !unit.IsValid() {
		return shared.NewDomainError("INVALID_UNIT", "Unknown package unit: "+string(unit))
	}

	p.PackageUnit = unit
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetPrices sets both supplier and selling prices
func (p *Product) SetPrices(supplierPrice, unitPrice valueobject.Money) error {
	if supplierPrice.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Supplier price cannot be negative")
	}
	if unitPrice.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	oldSupplierPrice := p.SupplierPrice
	oldUnitPrice := p.UnitPrice

	p.SupplierPrice = supplierPrice.Amount()
	p.UnitPrice = unitPrice.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, oldSupplierPrice, oldUnitPrice))

	return nil
}

// SetReorderLevel sets the stock threshold below which a low-stock alert fires
func (p *Product) SetReorderLevel(level decimal.Decimal) error {
	if level.IsNegative() {
		return shared.NewDomainError("INVALID_REORDER_LEVEL", "Reorder level cannot be negative")
	}

	p.ReorderLevel = level
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetStockQuantity replaces the on-hand quantity, e.g. after a physical count.
// Order reservation must not use this; it goes through conditional updates in
// the persistence layer so concurrent orders cannot oversell.
func (p *Product) SetStockQuantity(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}

	oldQuantity := p.StockQuantity
	p.StockQuantity = quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockAdjustedEvent(p, oldQuantity))

	return nil
}

// HasSufficientStock reports whether the on-hand quantity covers the request
func (p *Product) HasSufficientStock(quantity decimal.Decimal) bool {
	return p.StockQuantity.GreaterThanOrEqual(quantity)
}

// IsBelowReorderLevel reports whether stock has fallen to or under the alert threshold
func (p *Product) IsBelowReorderLevel() bool {
	if p.ReorderLevel.IsZero() {
		return false
	}
	return p.StockQuantity.LessThanOrEqual(p.ReorderLevel)
}

// IsExpired reports whether the current lot is past its expiry date
func (p *Product) IsExpired() bool {
	return p.ExpiryDate != nil && p.ExpiryDate.Before(time.Now())
}

// Activate activates the product
func (p *Product) Activate() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("CANNOT_ACTIVATE", "Cannot activate a discontinued product")
	}

	oldStatus := p.Status
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, ProductStatusActive))

	return nil
}

// Deactivate deactivates the product
func (p *Product) Deactivate() error {
	if p.Status == ProductStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Product is already inactive")
	}
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("CANNOT_DEACTIVATE", "Cannot deactivate a discontinued product")
	}

	oldStatus := p.Status
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, ProductStatusInactive))

	return nil
}

// Discontinue marks the product as discontinued
// A discontinued product cannot be reactivated
func (p *Product) Discontinue() error {
	if p.Status == ProductStatusDiscontinued {
		return shared.NewDomainError("ALREADY_DISCONTINUED", "Product is already discontinued")
	}

	oldStatus := p.Status
	p.Status = ProductStatusDiscontinued
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStatusChangedEvent(p, oldStatus, ProductStatusDiscontinued))

	return nil
}

// IsActive returns true if the product is active
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// IsDiscontinued returns true if the product is discontinued
func (p *Product) IsDiscontinued() bool {
	return p.Status == ProductStatusDiscontinued
}

// GetUnitPriceMoney returns the selling price as Money value object
func (p *Product) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.UnitPrice)
}

// GetSupplierPriceMoney returns the cost price as Money value object
func (p *Product) GetSupplierPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.SupplierPrice)
}

// GetProfitMargin returns the profit margin percentage
// Returns 0 if supplier price is zero
func (p *Product) GetProfitMargin() decimal.Decimal {
	if p.SupplierPrice.IsZero() {
		return decimal.Zero
	}
	profit := p.UnitPrice.Sub(p.SupplierPrice)
	return profit.Div(p.SupplierPrice).Mul(decimal.NewFromInt(100))
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
