// Package state holds the client's shared mutable state as owned values.
//
// Each Value carries a single notify-on-change hook list. Renderers subscribe
// to the values they draw and release the subscription when their view
// closes.
package state

import (
	"sort"
	"sync"
)

// Value is a mutex-guarded value with change subscribers.
type Value[T any] struct {
	mu     sync.RWMutex
	v      T
	nextID int
	subs   map[int]func(T)
}

// New returns a Value holding initial.
func New[T any](initial T) *Value[T] {
	return &Value[T]{v: initial, subs: make(map[int]func(T))}
}

// Get returns the current value.
func (s *Value[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.v
}

// Set replaces the value and notifies subscribers in subscription order.
// Subscribers run outside the lock and may call Get or Set.
func (s *Value[T]) Set(v T) {
	s.mu.Lock()
	s.v = v
	subs := s.snapshot()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}

// Update applies fn to the current value under the lock, then notifies.
func (s *Value[T]) Update(fn func(T) T) T {
	s.mu.Lock()
	s.v = fn(s.v)
	v := s.v
	subs := s.snapshot()
	s.mu.Unlock()

	for _, sub := range subs {
		sub(v)
	}
	return v
}

// Subscribe registers fn for future changes. The returned function removes
// the subscription; calling it more than once is harmless.
func (s *Value[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Subscribers reports how many subscriptions are live.
func (s *Value[T]) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

func (s *Value[T]) snapshot() []func(T) {
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]func(T), 0, len(ids))
	for _, id := range ids {
		out = append(out, s.subs[id])
	}
	return out
}
