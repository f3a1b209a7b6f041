package livesync

import (
	"sync"

	"github.com/MozaAdirafi/tabletap/order-svc/internal/domain"
)

// subscriber holds one live feed. gen is the newest snapshot read started
// for it, applied the newest one queued.
type subscriber struct {
	id       uint64
	scope    Scope
	onChange func(Update)

	mu       sync.Mutex
	pending  bool
	gen      uint64
	applied  uint64
	buffered []domain.OrderEvent
	seen     map[int64]int
	queue    []Update
	stopped  bool

	wake     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func newSubscriber(scope Scope, onChange func(Update)) *subscriber {
	return &subscriber{
		scope:    scope,
		onChange: onChange,
		pending:  true,
		gen:      1,
		seen:     make(map[int64]int),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

func (s *subscriber) offer(event domain.OrderEvent) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	if s.pending {
		s.buffered = append(s.buffered, event)
		s.mu.Unlock()
		return
	}
	s.apply(event)
	s.mu.Unlock()
	s.signal()
}

// beginSnapshot starts a new snapshot read and returns its generation. Reads
// of older generations are discarded when they complete.
func (s *subscriber) beginSnapshot() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		s.pending = true
	}
	s.gen++
	return s.gen
}

// abortSnapshot gives up on read gen. Buffered events are replayed against
// the versions already seen, as if no snapshot had been requested. A
// subscriber that never received a snapshot stays pending so its own read
// can retry.
func (s *subscriber) abortSnapshot(gen uint64) {
	s.mu.Lock()
	if s.stopped || gen < s.gen || s.applied == 0 {
		s.mu.Unlock()
		return
	}
	s.applied = gen
	for _, event := range s.buffered {
		s.apply(event)
	}
	s.buffered = nil
	s.pending = false
	s.mu.Unlock()
	s.signal()
}

// completeSnapshot queues the result of read gen. It reports false when the
// read was superseded and the subscriber still holds no snapshot, in which
// case the caller must read again.
func (s *subscriber) completeSnapshot(gen uint64, orders []domain.Order) bool {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return true
	}
	if gen < s.gen {
		settled := s.applied > 0
		s.mu.Unlock()
		return settled
	}
	s.applied = gen

	inSnapshot := make(map[int64]bool, len(orders))
	seen := make(map[int64]int, len(orders)+len(s.seen))
	for id, version := range s.seen {
		seen[id] = version
	}
	for _, order := range orders {
		inSnapshot[order.ID] = true
		if order.Version > seen[order.ID] {
			seen[order.ID] = order.Version
		}
	}
	// An order missing from the snapshot with a buffered delete was created and
	// removed before the read; none of its buffered events are news.
	for _, event := range s.buffered {
		if event.Type == domain.EventOrderDeleted && !inSnapshot[event.OrderID] && event.Version > seen[event.OrderID] {
			seen[event.OrderID] = event.Version
		}
	}
	s.seen = seen

	if orders == nil {
		orders = []domain.Order{}
	}
	s.queue = append(s.queue, Update{Kind: KindSnapshot, Orders: orders})
	for _, event := range s.buffered {
		s.apply(event)
	}
	s.buffered = nil
	s.pending = false
	s.mu.Unlock()
	s.signal()
	return true
}

// apply must be called with s.mu held.
func (s *subscriber) apply(event domain.OrderEvent) {
	last := s.seen[event.OrderID]
	if event.Version <= last {
		return
	}
	s.seen[event.OrderID] = event.Version
	if event.Type == domain.EventOrderDeleted && last == 0 {
		return
	}

	update := Update{OrderID: event.OrderID, Version: event.Version, Order: event.Order}
	switch event.Type {
	case domain.EventOrderCreated:
		update.Kind = KindCreated
	case domain.EventOrderDeleted:
		update.Kind = KindDeleted
		update.Order = nil
	default:
		update.Kind = KindUpdated
	}
	s.queue = append(s.queue, update)
}

func (s *subscriber) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscriber) deliver() {
	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}
		for {
			update, ok := s.next()
			if !ok {
				break
			}
			s.onChange(update)
		}
	}
}

func (s *subscriber) next() (Update, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || len(s.queue) == 0 {
		return Update{}, false
	}
	update := s.queue[0]
	s.queue[0] = Update{}
	s.queue = s.queue[1:]
	return update, true
}

func (s *subscriber) stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		s.stopped = true
		s.queue = nil
		s.buffered = nil
		s.mu.Unlock()
		close(s.done)
	})
}
