package trade

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pharmacare/backend/internal/domain/catalog"
	"github.com/pharmacare/backend/internal/domain/partner"
	"github.com/pharmacare/backend/internal/domain/shared"
	"github.com/pharmacare/backend/internal/domain/shared/valueobject"
	"github.com/pharmacare/backend/internal/domain/trade"
)

// MockSalesOrderRepository is a mock implementation of SalesOrderRepository
type MockSalesOrderRepository struct {
	mock.Mock
}

func (m *MockSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*trade.SalesOrder, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.SalesOrder, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalesOrderRepository) CountByStatus(ctx context.Context, status trade.OrderStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) SaveWithLock(ctx context.Context, order *trade.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) SaveWithReservation(ctx context.Context, order *trade.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) SaveWithRestore(ctx context.Context, order *trade.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSalesOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
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

func (m *MockProductRepository) FindByBarcode(ctx context.Context, barcode string) (*catalog.Product, error) {
	args := m.Called(ctx, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByStatus(ctx context.Context, status catalog.ProductStatus, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBelowReorderLevel(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByStatus(ctx context.Context, status catalog.ProductStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsByBarcode(ctx context.Context, barcode string) (bool, error) {
	args := m.Called(ctx, barcode)
	return args.Bool(0), args.Error(1)
}

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, phone string) (*partner.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// Test fixtures

const testOrderNumber = "SO-2026-00001"

func newTestService() (*SalesOrderService, *MockSalesOrderRepository, *MockProductRepository, *MockCustomerRepository) {
	orderRepo := new(MockSalesOrderRepository)
	productRepo := new(MockProductRepository)
	customerRepo := new(MockCustomerRepository)
	service := NewSalesOrderService(orderRepo, productRepo, customerRepo, zap.NewNop())
	return service, orderRepo, productRepo, customerRepo
}

func newTestCustomer(t *testing.T) *partner.Customer {
	customer, err := partner.NewCustomer("City Clinic")
	require.NoError(t, err)
	return customer
}

func newTestProduct(t *testing.T, name string, stock int64) *catalog.Product {
	product, err := catalog.NewProductWithPrices(name, valueobject.PackageUnitBox,
		valueobject.NewMoneyUSDFromFloat(4.0), valueobject.NewMoneyUSDFromFloat(5.0))
	require.NoError(t, err)
	require.NoError(t, product.SetStockQuantity(decimal.NewFromInt(stock)))
	product.ClearDomainEvents()
	return product
}

func newPendingOrder(t *testing.T, product *catalog.Product, qty int64) *trade.SalesOrder {
	order, err := trade.NewSalesOrder(testOrderNumber, uuid.New(), "City Clinic")
	require.NoError(t, err)
	_, err = order.AddItem(product.ID, product.Name, product.PackageUnit,
		decimal.NewFromInt(qty), product.GetUnitPriceMoney(), product.GetSupplierPriceMoney())
	require.NoError(t, err)
	order.ClearDomainEvents()
	return order
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func strPtr(s string) *string {
	return &s
}

func TestSalesOrderService_Create(t *testing.T) {
	t.Run("creates order with price snapshots", func(t *testing.T) {
		service, orderRepo, productRepo, customerRepo := newTestService()
		ctx := context.Background()

		customer := newTestCustomer(t)
		product := newTestProduct(t, "Paracetamol 500mg", 100)

		customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		orderRepo.On("GenerateOrderNumber", ctx).Return(testOrderNumber, nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		orderRepo.On("Save", ctx, mock.AnythingOfType("*trade.SalesOrder")).Return(nil)

		resp, err := service.Create(ctx, CreateSalesOrderRequest{
			CustomerID: customer.ID,
			Items: []CreateSalesOrderItemInput{
				{ProductID: product.ID, Quantity: decimal.NewFromInt(4)},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, testOrderNumber, resp.OrderNumber)
		assert.Equal(t, "City Clinic", resp.CustomerName)
		assert.Equal(t, "pending", resp.Status)
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.NewFromInt(5)))
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(20)))
		assert.True(t, resp.PaidAmount.IsZero())
		orderRepo.AssertExpectations(t)
	})

	t.Run("duplicate product makes two independent lines", func(t *testing.T) {
		service, orderRepo, productRepo, customerRepo := newTestService()
		ctx := context.Background()

		customer := newTestCustomer(t)
		product := newTestProduct(t, "Paracetamol 500mg", 100)

		customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		orderRepo.On("GenerateOrderNumber", ctx).Return(testOrderNumber, nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		orderRepo.On("Save", ctx, mock.AnythingOfType("*trade.SalesOrder")).Return(nil)

		resp, err := service.Create(ctx, CreateSalesOrderRequest{
			CustomerID: customer.ID,
			Items: []CreateSalesOrderItemInput{
				{ProductID: product.ID, Quantity: decimal.NewFromInt(2)},
				{ProductID: product.ID, Quantity: decimal.NewFromInt(3)},
			},
		})

		require.NoError(t, err)
		assert.Len(t, resp.Items, 2)
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(25)))
	})

	t.Run("insufficient stock rejects whole request", func(t *testing.T) {
		service, orderRepo, productRepo, customerRepo := newTestService()
		ctx := context.Background()

		customer := newTestCustomer(t)
		plenty := newTestProduct(t, "Vitamin C", 100)
		scarce := newTestProduct(t, "Insulin Pen", 2)

		customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		orderRepo.On("GenerateOrderNumber", ctx).Return(testOrderNumber, nil)
		productRepo.On("FindByID", ctx, plenty.ID).Return(plenty, nil)
		productRepo.On("FindByID", ctx, scarce.ID).Return(scarce, nil)

		_, err := service.Create(ctx, CreateSalesOrderRequest{
			CustomerID: customer.ID,
			Items: []CreateSalesOrderItemInput{
				{ProductID: plenty.ID, Quantity: decimal.NewFromInt(1)},
				{ProductID: scarce.ID, Quantity: decimal.NewFromInt(5)},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
		assert.Contains(t, domainErr.Message, "Insulin Pen")
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown product names the failing line", func(t *testing.T) {
		service, orderRepo, productRepo, customerRepo := newTestService()
		ctx := context.Background()

		customer := newTestCustomer(t)
		missingID := uuid.New()

		customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		orderRepo.On("GenerateOrderNumber", ctx).Return(testOrderNumber, nil)
		productRepo.On("FindByID", ctx, missingID).Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, CreateSalesOrderRequest{
			CustomerID: customer.ID,
			Items: []CreateSalesOrderItemInput{
				{ProductID: missingID, Quantity: decimal.NewFromInt(1)},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown customer", func(t *testing.T) {
		service, _, _, customerRepo := newTestService()
		ctx := context.Background()

		customerID := uuid.New()
		customerRepo.On("FindByID", ctx, customerID).Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, CreateSalesOrderRequest{
			CustomerID: customerID,
			Items:      []CreateSalesOrderItemInput{{ProductID: uuid.New(), Quantity: decimal.NewFromInt(1)}},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestSalesOrderService_UpdateStatus_Payments(t *testing.T) {
	t.Run("partial payment moves to progress", func(t *testing.T) {
		service, orderRepo, _, _ := newTestService()
		ctx := context.Background()

		product := newTestProduct(t, "Paracetamol 500mg", 100)
		order := newPendingOrder(t, product, 4) // total 20

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		orderRepo.On("SaveWithLock", ctx, order).Return(nil)

		resp, err := service.UpdateStatus(ctx, order.ID, UpdateOrderStatusRequest{
			PaymentAmount: decPtr(10),
		})

		require.NoError(t, err)
		assert.Equal(t, "progress", resp.Status)
		assert.True(t, resp.PaidAmount.Equal(decimal.NewFromInt(10)))
		orderRepo.AssertNotCalled(t, "SaveWithReservation", mock.Anything, mock.Anything)
	})

	t.Run("full payment approves and reserves stock", func(t *testing.T) {
		service, orderRepo, _, _ := newTestService()
		ctx := context.Background()

		product := newTestProduct(t, "Paracetamol 500mg", 100)
		order := newPendingOrder(t, product, 4)

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		orderRepo.On("SaveWithReservation", ctx, order).Return(nil)

		resp, err := service.UpdateStatus(ctx, order.ID, UpdateOrderStatusRequest{
			PaymentAmount: decPtr(20),
		})

		require.NoError(t, err)
		assert.Equal(t, "approved", resp.Status)
		assert.True(t, resp.StockReserved)
		orderRepo.AssertCalled(t, "SaveWithReservation", ctx, order)
		orderRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("overpayment is rejected without mutation", func(t *testing.T) {
		service, orderRepo, _, _ := newTestService()
		ctx := context.Background()

		product := newTestProduct(t, "Paracetamol 500mg", 100)
		order := newPendingOrder(t, product, 4)
		require.NoError(t, order.RecordPayment(valueobject.NewMoneyUSDFromFloat(20)))
		order.StockReserved = true // as if reservation already persisted
		order.ClearDomainEvents()

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err := service.UpdateStatus(ctx, order.ID, UpdateOrderStatusRequest{
			PaymentAmount: decPtr(5),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OVERPAYMENT", domainErr.Code)
		assert.True(t, order.PaidAmount.Equal(decimal.NewFromInt(20)))
		orderRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("failed reservation propagates and persists nothing", func(t *testing.T) {
		service, orderRepo, _, _ := newTestService()
		ctx := context.Background()

		product := newTestProduct(t, "Insulin Pen", 2)
		order := newPendingOrder(t, product, 5)

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		orderRepo.On("SaveWithReservation", ctx, order).
			Return(shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock for Insulin Pen"))

		_, err := service.UpdateStatus(ctx, order.ID, UpdateOrderStatusRequest{
			PaymentAmount: decPtr(25),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	})

	t.Run("empty request is a validation error", func(t *testing.T) {
		service, orderRepo, _, _ := newTestService()
		ctx := context.Background()

		product := newTestProduct(t, "Paracetamol 500mg", 100)
		order := newPendingOrder(t, product, 1)
		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err := service.UpdateStatus(ctx, order.ID, UpdateOrderStatusRequest{})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	})
}

func TestSalesOrderService_UpdateStatus_Overrides(t *testing.T) {
	t.Run("cancel of reserved order restores stock", func(t *testing.T) {
		service, orderRepo, _, _ := newTestService()
		ctx := context.Background()

		product := newTestProduct(t, "Paracetamol 500mg", 100)
		order := newPendingOrder(t, product, 4)
		require.NoError(t, order.RecordPayment(valueobject.NewMoneyUSDFromFloat(20)))
		require.NoError(t, order.MarkStockReserved())
		order.ClearDomainEvents()

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		orderRepo.On("SaveWithRestore", ctx, order).Return(nil)

		resp, err := service.UpdateStatus(ctx, order.ID, UpdateOrderStatusRequest{
			Status: strPtr("cancelled"),
			Reason: "customer returned the goods",
		})

		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		assert.NotNil(t, resp.StockRestoredAt)
		orderRepo.AssertCalled(t, "SaveWithRestore", ctx, order)
	})

	t.Run("reject of unreserved order touches no stock", func(t *testing.T) {
		service, orderRepo, _, _ := newTestService()
		ctx := context.Background()

		product := newTestProduct(t, "Paracetamol 500mg", 100)
		order := newPendingOrder(t, product, 4)

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		orderRepo.On("SaveWithLock", ctx, order).Return(nil)

		resp, err := service.UpdateStatus(ctx, order.ID, UpdateOrderStatusRequest{
			Status: strPtr("rejected"),
			Reason: "prescription invalid",
		})

		require.NoError(t, err)
		assert.Equal(t, "rejected", resp.Status)
		orderRepo.AssertNotCalled(t, "SaveWithRestore", mock.Anything, mock.Anything)
		orderRepo.AssertNotCalled(t, "SaveWithReservation", mock.Anything, mock.Anything)
	})

	t.Run("cancelling an already cancelled order fails", func(t *testing.T) {
		service, orderRepo, _, _ := newTestService()
		ctx := context.Background()

		product := newTestProduct(t, "Paracetamol 500mg", 100)
		order := newPendingOrder(t, product, 4)
		require.NoError(t, order.Cancel("first cancel"))
		order.ClearDomainEvents()

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err := service.UpdateStatus(ctx, order.ID, UpdateOrderStatusRequest{
			Status: strPtr("cancelled"),
			Reason: "second cancel",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestSalesOrderService_Update(t *testing.T) {
	t.Run("replaces items with fresh snapshots", func(t *testing.T) {
		service, orderRepo, productRepo, _ := newTestService()
		ctx := context.Background()

		oldProduct := newTestProduct(t, "Paracetamol 500mg", 100)
		newProduct := newTestProduct(t, "Ibuprofen 200mg", 50)
		order := newPendingOrder(t, oldProduct, 4)

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		productRepo.On("FindByID", ctx, newProduct.ID).Return(newProduct, nil)
		orderRepo.On("SaveWithLock", ctx, order).Return(nil)

		resp, err := service.Update(ctx, order.ID, UpdateSalesOrderRequest{
			Items: []CreateSalesOrderItemInput{
				{ProductID: newProduct.ID, Quantity: decimal.NewFromInt(3)},
			},
		})

		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, newProduct.ID, resp.Items[0].ProductID)
		assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(15)))
	})

	t.Run("rejects edit after payment", func(t *testing.T) {
		service, orderRepo, _, _ := newTestService()
		ctx := context.Background()

		product := newTestProduct(t, "Paracetamol 500mg", 100)
		order := newPendingOrder(t, product, 4)
		require.NoError(t, order.RecordPayment(valueobject.NewMoneyUSDFromFloat(5)))
		order.ClearDomainEvents()

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err := service.Update(ctx, order.ID, UpdateSalesOrderRequest{Remark: strPtr("late edit")})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestSalesOrderService_GetStatusSummary(t *testing.T) {
	service, orderRepo, _, _ := newTestService()
	ctx := context.Background()

	orderRepo.On("CountByStatus", ctx, trade.OrderStatusPending).Return(int64(3), nil)
	orderRepo.On("CountByStatus", ctx, trade.OrderStatusProgress).Return(int64(2), nil)
	orderRepo.On("CountByStatus", ctx, trade.OrderStatusApproved).Return(int64(5), nil)
	orderRepo.On("CountByStatus", ctx, trade.OrderStatusRejected).Return(int64(1), nil)
	orderRepo.On("CountByStatus", ctx, trade.OrderStatusCancelled).Return(int64(1), nil)

	summary, err := service.GetStatusSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Pending)
	assert.Equal(t, int64(12), summary.Total)
}
