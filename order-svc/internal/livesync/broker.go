package livesync

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/MozaAdirafi/tabletap/order-svc/internal/domain"
)

const snapshotTimeout = 5 * time.Second

var ErrBrokerClosed = errors.New("live sync broker is closed")

type Kind string

const (
	KindSnapshot Kind = "snapshot"
	KindCreated  Kind = "created"
	KindUpdated  Kind = "updated"
	KindDeleted  Kind = "deleted"
)

// Update is what a subscriber receives. A snapshot carries the full current
// order set of the scope; every other kind carries one order mutation.
type Update struct {
	Kind    Kind           `json:"kind"`
	Orders  []domain.Order `json:"orders,omitempty"`
	Order   *domain.Order  `json:"order,omitempty"`
	OrderID int64          `json:"order_id,omitempty"`
	Version int            `json:"version,omitempty"`
}

// Scope selects the orders of one restaurant, optionally narrowed to one
// order.
type Scope struct {
	RestaurantID string
	OrderID      int64
}

func (s Scope) Matches(event domain.OrderEvent) bool {
	if event.RestaurantID != s.RestaurantID {
		return false
	}
	return s.OrderID == 0 || s.OrderID == event.OrderID
}

type SnapshotSource interface {
	Get(ctx context.Context, restaurantID string, orderID int64) (*domain.Order, error)
	List(ctx context.Context, restaurantID string, status domain.Status) ([]domain.Order, error)
}

// Broker fans committed order events out to subscribers.
//
// A subscriber is registered before its snapshot is read. Events arriving in
// between are buffered and replayed after the snapshot, dropping any the
// snapshot already reflects. Each subscriber tracks the last version it saw
// per order, so an event is delivered at most once and never older than what
// the subscriber already holds.
type Broker struct {
	source SnapshotSource

	mu     sync.Mutex
	subs   map[uint64]*subscriber
	nextID uint64
	closed bool
}

func NewBroker(source SnapshotSource) *Broker {
	return &Broker{
		source: source,
		subs:   make(map[uint64]*subscriber),
	}
}

// Subscribe registers onChange for scope. onChange is called first with a
// snapshot and then with every later mutation, from a single goroutine per
// subscriber. The returned func stops delivery.
func (b *Broker) Subscribe(ctx context.Context, scope Scope, onChange func(Update)) (func(), error) {
	sub := newSubscriber(scope, onChange)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrBrokerClosed
	}
	b.nextID++
	sub.id = b.nextID
	b.subs[sub.id] = sub
	b.mu.Unlock()

	// A resync may start a newer read while this one runs; keep reading until
	// the subscriber holds a snapshot no older than any read started for it.
	gen := uint64(1)
	for {
		orders, err := b.snapshot(ctx, scope)
		if err != nil {
			b.remove(sub)
			return nil, err
		}
		if sub.completeSnapshot(gen, orders) {
			break
		}
		gen = sub.beginSnapshot()
	}
	go sub.deliver()

	return func() { b.remove(sub) }, nil
}

// Publish routes a committed event to every matching subscriber.
func (b *Broker) Publish(event domain.OrderEvent) {
	for _, sub := range b.matching(event) {
		sub.offer(event)
	}
}

// Resync re-reads the snapshot for every subscriber and delivers it as a
// fresh snapshot update. It is used after the event stream was interrupted.
func (b *Broker) Resync(ctx context.Context) {
	b.mu.Lock()
	subs := make([]*subscriber, 0, len(b.subs))
	for _, sub := range b.subs {
		subs = append(subs, sub)
	}
	b.mu.Unlock()

	for _, sub := range subs {
		gen := sub.beginSnapshot()
		orders, err := b.snapshot(ctx, sub.scope)
		if err != nil {
			log.Printf("[LIVESYNC] resync snapshot for %s failed: %v", sub.scope.RestaurantID, err)
			sub.abortSnapshot(gen)
			continue
		}
		sub.completeSnapshot(gen, orders)
	}
	log.Printf("[LIVESYNC] resynced %d subscribers", len(subs))
}

func (b *Broker) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *Broker) Close() {
	b.mu.Lock()
	subs := b.subs
	b.subs = make(map[uint64]*subscriber)
	b.closed = true
	b.mu.Unlock()

	for _, sub := range subs {
		sub.stop()
	}
}

func (b *Broker) matching(event domain.OrderEvent) []*subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()

	var matched []*subscriber
	for _, sub := range b.subs {
		if sub.scope.Matches(event) {
			matched = append(matched, sub)
		}
	}
	return matched
}

func (b *Broker) remove(sub *subscriber) {
	b.mu.Lock()
	delete(b.subs, sub.id)
	b.mu.Unlock()
	sub.stop()
}

func (b *Broker) snapshot(ctx context.Context, scope Scope) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, snapshotTimeout)
	defer cancel()

	if scope.OrderID == 0 {
		return b.source.List(ctx, scope.RestaurantID, "")
	}
	order, err := b.source.Get(ctx, scope.RestaurantID, scope.OrderID)
	if err != nil {
		return nil, err
	}
	return []domain.Order{*order}, nil
}
