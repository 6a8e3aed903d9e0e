// Package redispubsub fans notifications out over Redis pub/sub so that any
// server instance holding a user's WebSocket can deliver them.
package redispubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"yen-network/internal/domain"
	"yen-network/internal/dto"
)

const channelSegment = "notify:"

// Channel returns the channel carrying one user's notifications.
func Channel(keyPrefix, userID string) string {
	return keyPrefix + channelSegment + userID
}

// Publisher publishes stored notifications as JSON feed messages.
type Publisher struct {
	client    *redis.Client
	keyPrefix string
}

// NewPublisher creates a Publisher.
func NewPublisher(client *redis.Client, keyPrefix string) *Publisher {
	if client == nil {
		panic("Redis client cannot be nil for Publisher")
	}
	return &Publisher{client: client, keyPrefix: keyPrefix}
}

// Publish sends n, framed as a feed message, on the recipient's channel.
func (p *Publisher) Publish(ctx context.Context, n *domain.Notification) error {
	payload, err := json.Marshal(dto.NewNotificationMessage(n))
	if err != nil {
		return fmt.Errorf("redispubsub: marshal notification %s: %w", n.ID, err)
	}
	channel := Channel(p.keyPrefix, n.UserID)
	if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("redispubsub: publish on %s: %w", channel, err)
	}
	return nil
}

// DeliverFunc receives the raw payload addressed to userID. It returns
// false when the payload was dropped.
type DeliverFunc func(userID string, payload []byte) bool

// Subscriber listens on every user channel under the prefix.
type Subscriber struct {
	client    *redis.Client
	keyPrefix string
}

// NewSubscriber creates a Subscriber.
func NewSubscriber(client *redis.Client, keyPrefix string) *Subscriber {
	if client == nil {
		panic("Redis client cannot be nil for Subscriber")
	}
	return &Subscriber{client: client, keyPrefix: keyPrefix}
}

// Run pattern-subscribes and hands each message to deliver until ctx is
// done. The returned channel is closed once the subscription is active.
func (s *Subscriber) Run(ctx context.Context, deliver DeliverFunc) (<-chan struct{}, <-chan error) {
	ready := make(chan struct{})
	errc := make(chan error, 1)
	pattern := s.keyPrefix + channelSegment + "*"
	log := logrus.WithFields(logrus.Fields{"component": "notification_subscriber", "pattern": pattern})

	go func() {
		defer close(errc)

		sub := s.client.PSubscribe(ctx, pattern)
		defer sub.Close()

		// Receive blocks until Redis confirms the subscription.
		if _, err := sub.Receive(ctx); err != nil {
			close(ready)
			if !errors.Is(err, context.Canceled) {
				errc <- fmt.Errorf("redispubsub: psubscribe %s: %w", pattern, err)
			}
			return
		}
		close(ready)
		log.Info("Notification subscriber started")

		ch := sub.Channel()
		prefix := s.keyPrefix + channelSegment
		for {
			select {
			case <-ctx.Done():
				log.Info("Notification subscriber stopped")
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				userID := strings.TrimPrefix(msg.Channel, prefix)
				if !deliver(userID, []byte(msg.Payload)) {
					log.WithField("user_id", userID).Debug("Notification dropped by hub")
				}
			}
		}
	}()

	return ready, errc
}
