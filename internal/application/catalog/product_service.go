package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pharmacare/backend/internal/domain/catalog"
	"github.com/pharmacare/backend/internal/domain/shared"
	"github.com/pharmacare/backend/internal/domain/shared/valueobject"
)

// ProductService handles product business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	unit, err := valueobject.NewPackageUnit(req.PackageUnit)
	if err != nil {
		return nil, err
	}

	if req.Barcode != "" {
		exists, err := s.productRepo.ExistsByBarcode(ctx, req.Barcode)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A product with this barcode already exists")
		}
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if err == shared.ErrNotFound {
				return nil, shared.NewDomainError("NOT_FOUND", "Category not found")
			}
			return nil, err
		}
	}

	product, err := catalog.NewProductWithPrices(req.Name, unit,
		valueobject.NewMoneyUSD(req.SupplierPrice), valueobject.NewMoneyUSD(req.UnitPrice))
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := product.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.Barcode != "" {
		if err := product.SetBarcode(req.Barcode); err != nil {
			return nil, err
		}
	}
	if req.BatchNumber != "" || req.ExpiryDate != nil {
		if err := product.SetBatch(req.BatchNumber, req.ExpiryDate); err != nil {
			return nil, err
		}
	}
	product.SetCategory(req.CategoryID)
	product.SetSupplier(req.SupplierID)
	if req.StockQuantity != nil {
		if err := product.SetStockQuantity(*req.StockQuantity); err != nil {
			return nil, err
		}
	}
	if req.ReorderLevel != nil {
		if err := product.SetReorderLevel(*req.ReorderLevel); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// GetByBarcode retrieves a product by barcode
func (s *ProductService) GetByBarcode(ctx context.Context, barcode string) (*ProductResponse, error) {
	product, err := s.productRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}
	if filter.SupplierID != nil {
		domainFilter.Filters["supplier_id"] = *filter.SupplierID
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.LowStock {
		domainFilter.Filters["low_stock"] = true
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// ListLowStock retrieves active products at or under their reorder level
func (s *ProductService) ListLowStock(ctx context.Context) ([]ProductResponse, error) {
	products, err := s.productRepo.FindBelowReorderLevel(ctx)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Description != nil {
		name := product.Name
		if req.Name != nil {
			name = *req.Name
		}
		description := product.Description
		if req.Description != nil {
			description = *req.Description
		}
		if err := product.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.Barcode != nil && *req.Barcode != product.Barcode {
		if *req.Barcode != "" {
			exists, err := s.productRepo.ExistsByBarcode(ctx, *req.Barcode)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "A product with this barcode already exists")
			}
		}
		if err := product.SetBarcode(*req.Barcode); err != nil {
			return nil, err
		}
	}

	if req.BatchNumber != nil || req.ExpiryDate != nil {
		batch := product.BatchNumber
		if req.BatchNumber != nil {
			batch = *req.BatchNumber
		}
		expiry := product.ExpiryDate
		if req.ExpiryDate != nil {
			expiry = req.ExpiryDate
		}
		if err := product.SetBatch(batch, expiry); err != nil {
			return nil, err
		}
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.CategoryID); err != nil {
			if err == shared.ErrNotFound {
				return nil, shared.NewDomainError("NOT_FOUND", "Category not found")
			}
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}
	if req.SupplierID != nil {
		product.SetSupplier(req.SupplierID)
	}

	if req.PackageUnit != nil {
		unit, err := valueobject.NewPackageUnit(*req.PackageUnit)
		if err != nil {
			return nil, err
		}
		if err := product.SetPackageUnit(unit); err != nil {
			return nil, err
		}
	}

	if req.SupplierPrice != nil || req.UnitPrice != nil {
		supplierPrice := product.SupplierPrice
		if req.SupplierPrice != nil {
			supplierPrice = *req.SupplierPrice
		}
		unitPrice := product.UnitPrice
		if req.UnitPrice != nil {
			unitPrice = *req.UnitPrice
		}
		if err := product.SetPrices(valueobject.NewMoneyUSD(supplierPrice), valueobject.NewMoneyUSD(unitPrice)); err != nil {
			return nil, err
		}
	}

	if req.ReorderLevel != nil {
		if err := product.SetReorderLevel(*req.ReorderLevel); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		var err error
		switch catalog.ProductStatus(*req.Status) {
		case catalog.ProductStatusActive:
			err = product.Activate()
		case catalog.ProductStatusInactive:
			err = product.Deactivate()
		case catalog.ProductStatusDiscontinued:
			err = product.Discontinue()
		}
		if err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// AdjustStock applies a manual stock adjustment through the same atomic
// conditional update the order lifecycle uses
func (s *ProductService) AdjustStock(ctx context.Context, id uuid.UUID, req AdjustStockRequest) (*ProductResponse, error) {
	if err := s.productRepo.AdjustStock(ctx, id, req.Delta); err != nil {
		if err == shared.ErrInsufficientStock {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Adjustment would drive stock below zero")
		}
		return nil, err
	}

	s.logger.Info("stock adjusted",
		zap.String("product_id", id.String()),
		zap.String("delta", req.Delta.String()),
		zap.String("reason", req.Reason))

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}
