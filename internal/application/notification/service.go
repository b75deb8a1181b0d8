package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/pharmacare/backend/internal/domain/notification"
	"github.com/pharmacare/backend/internal/domain/shared"
)

// NotificationService handles notification read operations
type NotificationService struct {
	notificationRepo notification.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo notification.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List retrieves notifications with filtering and pagination, newest first
func (s *NotificationService) List(ctx context.Context, filter NotificationListFilter) ([]NotificationResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Filters:  make(map[string]interface{}),
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}

	var (
		notifications []notification.Notification
		err           error
	)
	if filter.UnreadOnly {
		notifications, err = s.notificationRepo.FindUnread(ctx, domainFilter)
	} else {
		notifications, err = s.notificationRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	countFilter := domainFilter
	if filter.UnreadOnly {
		countFilter.Filters["read"] = false
	}
	total, err := s.notificationRepo.Count(ctx, countFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToNotificationResponses(notifications), total, nil
}

// UnreadCount returns the number of unread notifications
func (s *NotificationService) UnreadCount(ctx context.Context) (*UnreadCountResponse, error) {
	count, err := s.notificationRepo.CountUnread(ctx)
	if err != nil {
		return nil, err
	}
	return &UnreadCountResponse{Count: count}, nil
}

// MarkRead marks a single notification as read. Marking an already read
// notification is a no-op.
func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) (*NotificationResponse, error) {
	n, err := s.notificationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	n.MarkRead()
	if err := s.notificationRepo.Save(ctx, n); err != nil {
		return nil, err
	}

	response := ToNotificationResponse(n)
	return &response, nil
}

// MarkAllRead marks every unread notification as read
func (s *NotificationService) MarkAllRead(ctx context.Context) error {
	return s.notificationRepo.MarkAllRead(ctx)
}

// Delete deletes a notification
func (s *NotificationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.notificationRepo.Delete(ctx, id)
}
