package service

import (
	"context"
	"errors"
	"fmt"

	"e1xp_creator_backend/internal/model"
	"e1xp_creator_backend/internal/repository"

	"github.com/google/uuid"
)

type NotificationService struct {
	repo      NotificationRepository
	publisher NotificationPublisher
}

// NewNotificationService builds the store-backed sink. publisher may be
// nil when no live feed is attached (tests).
func NewNotificationService(repo NotificationRepository, publisher NotificationPublisher) *NotificationService {
	return &NotificationService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *NotificationService) Create(ctx context.Context, n *model.Notification) error {
	err := s.repo.CreateNotification(ctx, n)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	if s.publisher != nil {
		s.publisher.Publish(n)
	}

	return nil
}

func (s *NotificationService) ListByUser(ctx context.Context, userAddress string, unreadOnly bool) ([]*model.Notification, error) {
	notifications, err := s.repo.GetNotificationsByUser(ctx, userAddress, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}
	return notifications, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, id uuid.UUID) error {
	err := s.repo.MarkNotificationRead(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userAddress string) error {
	err := s.repo.MarkAllNotificationsRead(ctx, userAddress)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

func (s *NotificationService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.DeleteNotification(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	return nil
}
