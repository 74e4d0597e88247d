package memory

import (
	"context"
	"slices"
	"time"

	"logistics/internal/core/domain/model/event"
	"logistics/internal/core/ports"
)

// Store holds every collection of the delay pipeline under one exclusion
// domain.
//
// The domain is a one-slot semaphore rather than a sync.Mutex so that
// acquiring it can give up when the caller's context is done.
type Store struct {
	sem chan struct{}

	drivers table[driverDTO]
	orders  table[orderDTO]
	ledger  table[struct{}]
	history []event.Record

	now func() time.Time
}

var _ ports.StateStore = (*Store)(nil)

// StoreOption tunes a Store.
type StoreOption func(*Store)

// WithClock sets the clock used to stamp snapshots.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		sem:     make(chan struct{}, 1),
		drivers: newTable[driverDTO](),
		orders:  newTable[orderDTO](),
		ledger:  newTable[struct{}](),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// lock acquires the exclusion domain or returns ctx.Err().
func (s *Store) lock(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) unlock() {
	<-s.sem
}

// Snapshot copies all four collections while holding the exclusion domain.
func (s *Store) Snapshot(ctx context.Context) (ports.Snapshot, error) {
	if err := s.lock(ctx); err != nil {
		return ports.Snapshot{}, err
	}
	defer s.unlock()

	drivers, err := driversToDomain(s.drivers.all())
	if err != nil {
		return ports.Snapshot{}, err
	}

	orders, err := ordersToDomain(s.orders.all())
	if err != nil {
		return ports.Snapshot{}, err
	}

	return ports.Snapshot{
		Drivers:         drivers,
		Orders:          orders,
		ProcessedEvents: slices.Clone(s.ledger.keys),
		History:         slices.Clone(s.history),
		TakenAt:         s.now().UTC(),
	}, nil
}

// Wipe clears all four collections atomically.
func (s *Store) Wipe(ctx context.Context) error {
	if err := s.lock(ctx); err != nil {
		return err
	}
	defer s.unlock()

	s.drivers.clear()
	s.orders.clear()
	s.ledger.clear()
	s.history = nil
	return nil
}

// apply writes a committed change set. Callers hold the exclusion domain.
func (s *Store) apply(c *changeSet) {
	for _, id := range c.drivers.keys {
		s.drivers.put(id, c.drivers.rows[id])
	}
	for _, id := range c.orders.keys {
		s.orders.put(id, c.orders.rows[id])
	}
	for _, r := range c.records {
		s.ledger.put(r.EventID, struct{}{})
		s.history = append(s.history, r)
	}
}
