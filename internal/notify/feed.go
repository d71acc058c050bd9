package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"vendorhub/internal/model"
)

// FeedLimit is how many notifications a vendor's feed keeps.
const FeedLimit = 50

var ErrNotificationNotFound = errors.New("notification not found")

// Feed stores the notifications shown in the dashboard header, newest
// first.
type Feed interface {
	Push(ctx context.Context, n model.Notification) error
	List(ctx context.Context, vendorID string, limit int) ([]model.Notification, error)
	MarkRead(ctx context.Context, vendorID, id string) error
	MarkAllRead(ctx context.Context, vendorID string) error
}

// FeedNotifier turns status events into feed entries.
type FeedNotifier struct {
	feed Feed
	now  func() time.Time
}

func NewFeedNotifier(feed Feed) *FeedNotifier {
	return &FeedNotifier{feed: feed, now: time.Now}
}

func (f *FeedNotifier) Notify(ctx context.Context, e Event) error {
	return f.feed.Push(ctx, model.Notification{
		ID:          uuid.NewString(),
		VendorID:    e.VendorID,
		OrderID:     e.OrderID,
		Status:      e.To,
		Message:     e.Message,
		Description: e.Description,
		CreatedAt:   f.now().UTC(),
	})
}

// MemoryFeed keeps feeds in process memory.
type MemoryFeed struct {
	mu    sync.Mutex
	feeds map[string][]model.Notification
}

func NewMemoryFeed() *MemoryFeed {
	return &MemoryFeed{feeds: make(map[string][]model.Notification)}
}

func (m *MemoryFeed) Push(_ context.Context, n model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	feed := append([]model.Notification{n}, m.feeds[n.VendorID]...)
	if len(feed) > FeedLimit {
		feed = feed[:FeedLimit]
	}
	m.feeds[n.VendorID] = feed
	return nil
}

func (m *MemoryFeed) List(_ context.Context, vendorID string, limit int) ([]model.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	feed := m.feeds[vendorID]
	if limit <= 0 || limit > len(feed) {
		limit = len(feed)
	}
	out := make([]model.Notification, limit)
	copy(out, feed[:limit])
	return out, nil
}

func (m *MemoryFeed) MarkRead(_ context.Context, vendorID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.feeds[vendorID] {
		if m.feeds[vendorID][i].ID == id {
			m.feeds[vendorID][i].Read = true
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (m *MemoryFeed) MarkAllRead(_ context.Context, vendorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.feeds[vendorID] {
		m.feeds[vendorID][i].Read = true
	}
	return nil
}
