package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"vendorhub/internal/model"
)

const feedTTL = 7 * 24 * time.Hour

// RedisFeed keeps each vendor's feed as a capped list of JSON entries plus
// a set holding the ids already read.
type RedisFeed struct {
	client *redis.Client
	prefix string
}

// NewRedisFeed connects to redisURL and checks the connection.
func NewRedisFeed(ctx context.Context, redisURL string) (*RedisFeed, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opt)

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return NewRedisFeedWithClient(client), nil
}

func NewRedisFeedWithClient(client *redis.Client) *RedisFeed {
	return &RedisFeed{client: client, prefix: "vendorhub:feed:"}
}

func (r *RedisFeed) Close() error { return r.client.Close() }

func (r *RedisFeed) listKey(vendorID string) string { return r.prefix + vendorID }
func (r *RedisFeed) readKey(vendorID string) string { return r.prefix + vendorID + ":read" }

func (r *RedisFeed) Push(ctx context.Context, n model.Notification) error {
	b, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, r.listKey(n.VendorID), b)
	pipe.LTrim(ctx, r.listKey(n.VendorID), 0, FeedLimit-1)
	pipe.Expire(ctx, r.listKey(n.VendorID), feedTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("push notification: %w", err)
	}
	return nil
}

func (r *RedisFeed) List(ctx context.Context, vendorID string, limit int) ([]model.Notification, error) {
	if limit <= 0 || limit > FeedLimit {
		limit = FeedLimit
	}
	raw, err := r.client.LRange(ctx, r.listKey(vendorID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	read, err := r.client.SMembers(ctx, r.readKey(vendorID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list read notifications: %w", err)
	}
	readSet := make(map[string]struct{}, len(read))
	for _, id := range read {
		readSet[id] = struct{}{}
	}

	out := make([]model.Notification, 0, len(raw))
	for _, s := range raw {
		var n model.Notification
		if err := json.Unmarshal([]byte(s), &n); err != nil {
			return nil, fmt.Errorf("decode notification: %w", err)
		}
		_, n.Read = readSet[n.ID]
		out = append(out, n)
	}
	return out, nil
}

func (r *RedisFeed) MarkRead(ctx context.Context, vendorID, id string) error {
	items, err := r.List(ctx, vendorID, FeedLimit)
	if err != nil {
		return err
	}
	for _, n := range items {
		if n.ID == id {
			return r.markRead(ctx, vendorID, id)
		}
	}
	return ErrNotificationNotFound
}

func (r *RedisFeed) MarkAllRead(ctx context.Context, vendorID string) error {
	items, err := r.List(ctx, vendorID, FeedLimit)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	ids := make([]string, len(items))
	for i, n := range items {
		ids[i] = n.ID
	}
	return r.markRead(ctx, vendorID, ids...)
}

func (r *RedisFeed) markRead(ctx context.Context, vendorID string, ids ...string) error {
	members := make([]interface{}, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	pipe := r.client.TxPipeline()
	pipe.SAdd(ctx, r.readKey(vendorID), members...)
	pipe.Expire(ctx, r.readKey(vendorID), feedTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	return nil
}
