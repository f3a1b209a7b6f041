package livesync

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/MozaAdirafi/tabletap/order-svc/internal/domain"

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

// Consumer feeds the order topic into a Broker. After the stream recovers
// from a read failure every subscriber gets a fresh snapshot before new
// events, which covers anything missed while disconnected.
type Consumer struct {
	Reader MessageReader
	Broker *Broker
}

func NewConsumer(reader MessageReader, broker *Broker) *Consumer {
	return &Consumer{Reader: reader, Broker: broker}
}

func (c *Consumer) Start(ctx context.Context) error {
	log.Println("[LIVESYNC] starting order event consumer")
	defer c.Reader.Close()

	backoff := minBackoff
	interrupted := false
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			log.Printf("[LIVESYNC] error reading message: %v", err)
			interrupted = true
			if !sleep(ctx, backoff) {
				return nil
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}
		backoff = minBackoff

		if interrupted {
			c.Broker.Resync(ctx)
			interrupted = false
		}
		c.process(message)
	}
}

func (c *Consumer) process(message kafka.Message) {
	var event domain.OrderEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		log.Printf("[LIVESYNC] error unmarshaling message: %v", err)
		return
	}
	if event.RestaurantID == "" || event.OrderID == 0 {
		log.Printf("[LIVESYNC] skipping event without order reference at offset %d", message.Offset)
		return
	}
	c.Broker.Publish(event)
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
