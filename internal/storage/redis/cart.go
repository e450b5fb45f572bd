// Package redis implements the durable cart storage on Redis: one JSON
// record per customer under a well-known key, with pub/sub change
// notifications so concurrent sessions converge on the latest write.
package redis

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rentkart/rentkart/internal/domain/cart"
)

const (
	keyPrefix     = "rentkart:cart:"
	changeChannel = "rentkart:cart.changed"
)

var _ cart.Storage = (*CartStorage)(nil)

// CartStorage stores cart records in Redis. Writes are last-write-wins by
// design; each write publishes the customer key on the change channel.
type CartStorage struct {
	client *redis.Client
	lg     *zap.Logger
}

// NewCartStorage creates a CartStorage over the given client.
func NewCartStorage(client *redis.Client, lg *zap.Logger) *CartStorage {
	return &CartStorage{client: client, lg: lg}
}

// Connect dials Redis and verifies the connection.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "ping redis")
	}
	return client, nil
}

// Read returns the serialized cart record for the key, or cart.ErrNotFound.
func (s *CartStorage) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, cart.ErrNotFound
		}
		return nil, errors.Wrap(err, "read cart record")
	}
	return data, nil
}

// Write replaces the cart record and notifies watchers. Records do not
// expire: a cart survives until checkout clears it.
func (s *CartStorage) Write(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, keyPrefix+key, data, 0).Err(); err != nil {
		return errors.Wrap(err, "write cart record")
	}
	if err := s.client.Publish(ctx, changeChannel, key).Err(); err != nil {
		// Notification is best effort; readers converge on next load anyway.
		s.lg.Debug("cart change publish failed", zap.Error(err))
	}
	return nil
}

// Watch delivers a signal whenever the record for key is rewritten by any
// writer. The channel closes when ctx is cancelled.
func (s *CartStorage) Watch(ctx context.Context, key string) (<-chan struct{}, error) {
	sub := s.client.Subscribe(ctx, changeChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, errors.Wrap(err, "subscribe cart changes")
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if msg.Payload != key {
					continue
				}
				select {
				case out <- struct{}{}:
				default: // coalesce bursts
				}
			}
		}
	}()
	return out, nil
}
