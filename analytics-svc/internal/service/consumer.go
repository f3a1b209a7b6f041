package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/MozaAdirafi/tabletap/analytics-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

const (
	minBackoff = 200 * time.Millisecond
	maxBackoff = 10 * time.Second
)

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Consumer drops a restaurant's cached dashboards whenever one of its
// orders changes.
type Consumer struct {
	Reader MessageReader
	Cache  DashboardCache
}

func NewConsumer(reader MessageReader, cache DashboardCache) *Consumer {
	return &Consumer{Reader: reader, Cache: cache}
}

func (c *Consumer) Start(ctx context.Context) error {
	log.Println("[CONSUMER] starting dashboard invalidation consumer")
	defer c.Reader.Close()

	backoff := minBackoff
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Printf("[CONSUMER] error reading message: %v", err)
			if !sleep(ctx, backoff) {
				return nil
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}
		backoff = minBackoff
		c.ProcessEvent(ctx, message.Value)
	}
}

func (c *Consumer) ProcessEvent(ctx context.Context, payload []byte) {
	var event domain.OrderEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		log.Printf("[CONSUMER] error unmarshaling message: %v", err)
		return
	}
	if event.RestaurantID == "" {
		log.Printf("[CONSUMER] skipping %s event without restaurant", event.Type)
		return
	}
	if err := c.Cache.Invalidate(ctx, event.RestaurantID); err != nil {
		log.Printf("[CONSUMER] error invalidating dashboards for %s: %v", event.RestaurantID, err)
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
