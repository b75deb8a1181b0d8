package report

import (
	"context"

	"github.com/pharmacare/backend/internal/domain/shared"
	"github.com/pharmacare/backend/internal/domain/trade"
)

// SummaryInvalidator drops the cached dashboard summary whenever an order
// event changes the figures behind it.
type SummaryInvalidator struct {
	dashboardService *DashboardService
}

// NewSummaryInvalidator creates a new SummaryInvalidator
func NewSummaryInvalidator(dashboardService *DashboardService) *SummaryInvalidator {
	return &SummaryInvalidator{dashboardService: dashboardService}
}

// EventTypes returns the order events that affect the summary
func (h *SummaryInvalidator) EventTypes() []string {
	return []string{
		trade.EventTypeSalesOrderCreated,
		trade.EventTypeSalesOrderPaymentRecorded,
		trade.EventTypeSalesOrderApproved,
		trade.EventTypeSalesOrderRejected,
		trade.EventTypeSalesOrderCancelled,
	}
}

// Handle invalidates the cached summary
func (h *SummaryInvalidator) Handle(ctx context.Context, event shared.DomainEvent) error {
	h.dashboardService.InvalidateSummary(ctx)
	return nil
}

var _ shared.EventHandler = (*SummaryInvalidator)(nil)
