package service

import (
	"context"
	"errors"
	"fmt"

	"vendorhub/internal/model"
	"vendorhub/internal/notify"
)

type NotificationList struct {
	Notifications []model.Notification `json:"notifications"`
	Unread        int                  `json:"unread"`
}

type NotificationService struct {
	feed notify.Feed
}

func NewNotificationService(feed notify.Feed) *NotificationService {
	return &NotificationService{feed: feed}
}

func (s *NotificationService) List(ctx context.Context, vendorID string) (*NotificationList, error) {
	items, err := s.feed.List(ctx, vendorID, notify.FeedLimit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	list := &NotificationList{Notifications: items}
	if list.Notifications == nil {
		list.Notifications = []model.Notification{}
	}
	for _, n := range items {
		if !n.Read {
			list.Unread++
		}
	}
	return list, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, vendorID, id string) error {
	if err := s.feed.MarkRead(ctx, vendorID, id); err != nil {
		if errors.Is(err, notify.ErrNotificationNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, vendorID string) error {
	if err := s.feed.MarkAllRead(ctx, vendorID); err != nil {
		return fmt.Errorf("mark notifications read: %w", err)
	}
	return nil
}
