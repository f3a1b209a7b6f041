package livesync

import (
	"context"

	"github.com/MozaAdirafi/tabletap/order-svc/internal/domain"
)

// LocalPublisher hands events straight to an in-process broker. It is used
// when no Kafka broker is configured.
type LocalPublisher struct {
	Broker *Broker
}

func NewLocalPublisher(broker *Broker) *LocalPublisher {
	return &LocalPublisher{Broker: broker}
}

func (p *LocalPublisher) Publish(_ context.Context, event domain.OrderEvent) error {
	p.Broker.Publish(event)
	return nil
}
