package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/pharmacare/backend/internal/domain/shared"
)

// NotificationRepository defines the interface for notification persistence
type NotificationRepository interface {
	// FindByID finds a notification by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)

	// FindAll finds all notifications matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]Notification, error)

	// FindUnread finds unread notifications, newest first
	FindUnread(ctx context.Context, filter shared.Filter) ([]Notification, error)

	// Save creates or updates a notification
	Save(ctx context.Context, notification *Notification) error

	// MarkAllRead marks every unread notification as read
	MarkAllRead(ctx context.Context) error

	// Delete deletes a notification
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts notifications matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountUnread counts unread notifications
	CountUnread(ctx context.Context) (int64, error)
}
