package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/pharmacare/backend/internal/domain/shared"
)

// SalesOrderRepository defines persistence operations for sales orders
type SalesOrderRepository interface {
	// FindByID finds a sales order by its ID, with items loaded
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrder, error)

	// FindByOrderNumber finds a sales order by its order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*SalesOrder, error)

	// FindAll finds sales orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]SalesOrder, error)

	// Count counts sales orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts sales orders in a given status
	CountByStatus(ctx context.Context, status OrderStatus) (int64, error)

	// Save creates or updates a sales order together with its items
	Save(ctx context.Context, order *SalesOrder) error

	// SaveWithLock updates a sales order with optimistic version checking
	SaveWithLock(ctx context.Context, order *SalesOrder) error

	// SaveWithReservation persists the order and decrements product stock for
	// every line item in a single transaction. Each decrement is a conditional
	// update that only applies while sufficient stock remains; any failing
	// item rolls the whole transaction back and the returned error names the
	// offending product.
	SaveWithReservation(ctx context.Context, order *SalesOrder) error

	// SaveWithRestore persists the order and increments product stock back for
	// every line item in a single transaction. It is the exact inverse of
	// SaveWithReservation and is applied at most once per reservation.
	SaveWithRestore(ctx context.Context, order *SalesOrder) error

	// Delete removes a sales order and its items
	Delete(ctx context.Context, id uuid.UUID) error

	// GenerateOrderNumber generates the next order number (SO-YYYY-NNNNN)
	GenerateOrderNumber(ctx context.Context) (string, error)
}
