package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	tradeapp "github.com/pharmacare/backend/internal/application/trade"
	"github.com/pharmacare/backend/internal/domain/catalog"
	"github.com/pharmacare/backend/internal/domain/partner"
	"github.com/pharmacare/backend/internal/domain/shared/valueobject"
	"github.com/pharmacare/backend/internal/domain/trade"
	"github.com/pharmacare/backend/internal/infrastructure/persistence"
	"github.com/pharmacare/backend/internal/interfaces/http/middleware"
)

// orderTestEnv wires a real service over an in-memory database so the
// endpoints are exercised end to end, including stock reservation.
type orderTestEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	customer *partner.Customer
	product  *catalog.Product
}

func newOrderTestEnv(t *testing.T) *orderTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Category{},
		&catalog.Product{},
		&partner.Customer{},
		&trade.SalesOrder{},
		&trade.SalesOrderItem{},
	))

	orderRepo := persistence.NewGormSalesOrderRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	customerRepo := persistence.NewGormCustomerRepository(db)

	service := tradeapp.NewSalesOrderService(orderRepo, productRepo, customerRepo, zap.NewNop())

	customer, err := partner.NewCustomer("John Smith")
	require.NoError(t, err)
	require.NoError(t, customerRepo.Save(context.Background(), customer))

	product, err := catalog.NewProductWithPrices("Amoxicillin 500mg", valueobject.PackageUnitBox,
		valueobject.NewMoneyUSDFromFloat(3.0), valueobject.NewMoneyUSDFromFloat(5.0))
	require.NoError(t, err)
	require.NoError(t, product.SetStockQuantity(decimal.NewFromInt(50)))
	require.NoError(t, productRepo.Save(context.Background(), product))

	r := gin.New()
	r.Use(middleware.RequestID())
	NewSalesOrderHandler(service).RegisterRoutes(r.Group("/api/v1"))

	return &orderTestEnv{router: r, db: db, customer: customer, product: product}
}

func (env *orderTestEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func (env *orderTestEnv) createOrder(t *testing.T, quantity int64) tradeapp.SalesOrderResponse {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/v1/sales-order/add", gin.H{
		"customer_id": env.customer.ID,
		"items": []gin.H{
			{"product_id": env.product.ID, "quantity": quantity},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data tradeapp.SalesOrderResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

func (env *orderTestEnv) stock(t *testing.T) decimal.Decimal {
	t.Helper()
	product, err := persistence.NewGormProductRepository(env.db).FindByID(context.Background(), env.product.ID)
	require.NoError(t, err)
	return product.StockQuantity
}

func TestSalesOrderHandler_Create(t *testing.T) {
	env := newOrderTestEnv(t)

	order := env.createOrder(t, 4)

	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, "John Smith", order.CustomerName)
	assert.Regexp(t, `^SO-\d{4}-\d{5}$`, order.OrderNumber)
	assert.Len(t, order.Items, 1)
	// Unit price comes from the product record, not the request
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(20)),
		"expected 20, got %s", order.TotalAmount)

	// Creation does not touch stock
	assert.True(t, env.stock(t).Equal(decimal.NewFromInt(50)))
}

func TestSalesOrderHandler_Create_UnknownCustomer(t *testing.T) {
	env := newOrderTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/sales-order/add", gin.H{
		"customer_id": uuid.New(),
		"items": []gin.H{
			{"product_id": env.product.ID, "quantity": 1},
		},
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}

func TestSalesOrderHandler_Create_NoItems(t *testing.T) {
	env := newOrderTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/sales-order/add", gin.H{
		"customer_id": env.customer.ID,
		"items":       []gin.H{},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSalesOrderHandler_PaymentLifecycle(t *testing.T) {
	env := newOrderTestEnv(t)
	order := env.createOrder(t, 4) // total 20

	// Partial payment moves the order to progress
	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/v1/sales-order/%s/status", order.ID),
		gin.H{"payment_amount": "8"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data tradeapp.SalesOrderResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "progress", resp.Data.Status)
	assert.False(t, resp.Data.StockReserved)
	assert.True(t, env.stock(t).Equal(decimal.NewFromInt(50)))

	// Paying the balance approves the order and reserves stock
	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/v1/sales-order/%s/status", order.ID),
		gin.H{"payment_amount": "12"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "approved", resp.Data.Status)
	assert.True(t, resp.Data.StockReserved)
	assert.NotNil(t, resp.Data.ReservedAt)
	assert.True(t, env.stock(t).Equal(decimal.NewFromInt(46)),
		"expected 46, got %s", env.stock(t))
}

func TestSalesOrderHandler_Overpayment(t *testing.T) {
	env := newOrderTestEnv(t)
	order := env.createOrder(t, 4) // total 20

	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/v1/sales-order/%s/status", order.ID),
		gin.H{"payment_amount": "25"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "OVERPAYMENT")

	// The order is untouched
	var resp struct {
		Data tradeapp.SalesOrderResponse `json:"data"`
	}
	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/sales-order/%s", order.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pending", resp.Data.Status)
	assert.True(t, resp.Data.PaidAmount.IsZero())
}

func TestSalesOrderHandler_CancelAfterReservation_RestoresStock(t *testing.T) {
	env := newOrderTestEnv(t)
	order := env.createOrder(t, 10) // total 50

	w := env.do(t, http.MethodPut, fmt.Sprintf("/api/v1/sales-order/%s/status", order.ID),
		gin.H{"payment_amount": "50"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.True(t, env.stock(t).Equal(decimal.NewFromInt(40)))

	w = env.do(t, http.MethodPut, fmt.Sprintf("/api/v1/sales-order/%s/status", order.ID),
		gin.H{"status": "cancelled", "reason": "customer changed their mind"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data tradeapp.SalesOrderResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.Data.Status)
	assert.NotNil(t, resp.Data.StockRestoredAt)
	assert.True(t, env.stock(t).Equal(decimal.NewFromInt(50)),
		"expected 50 after restore, got %s", env.stock(t))
}

func TestSalesOrderHandler_InsufficientStock(t *testing.T) {
	env := newOrderTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/sales-order/add", gin.H{
		"customer_id": env.customer.ID,
		"items": []gin.H{
			{"product_id": env.product.ID, "quantity": 500},
		},
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "INSUFFICIENT_STOCK")
	assert.Contains(t, w.Body.String(), "Amoxicillin 500mg")
}

func TestSalesOrderHandler_ListAndSummary(t *testing.T) {
	env := newOrderTestEnv(t)
	env.createOrder(t, 1)
	env.createOrder(t, 2)

	w := env.do(t, http.MethodGet, "/api/v1/sales-order?status=pending", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listResp struct {
		Data []tradeapp.SalesOrderListItemResponse `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listResp))
	assert.Len(t, listResp.Data, 2)
	assert.Equal(t, int64(2), listResp.Meta.Total)

	w = env.do(t, http.MethodGet, "/api/v1/sales-order/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summaryResp struct {
		Data tradeapp.OrderStatusSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaryResp))
	assert.Equal(t, int64(2), summaryResp.Data.Pending)
	assert.Equal(t, int64(2), summaryResp.Data.Total)
}

func TestSalesOrderHandler_Delete(t *testing.T) {
	env := newOrderTestEnv(t)
	order := env.createOrder(t, 1)

	w := env.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/sales-order/%s", order.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/v1/sales-order/%s", order.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSalesOrderHandler_InvalidID(t *testing.T) {
	env := newOrderTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/v1/sales-order/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
