package session

import "sync"

// Subject holds one current value and pushes every new value to its
// subscribers, in subscription order, on the publishing goroutine.
// A new subscriber immediately receives the current value.
//
// Callbacks may read Value and may unsubscribe, but must not Publish or
// Subscribe on the same Subject.
type Subject[T any] struct {
	notify sync.Mutex // orders replays and publications

	mu     sync.RWMutex
	value  T
	nextID int
	subs   []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

func NewSubject[T any](initial T) *Subject[T] {
	return &Subject[T]{value: initial}
}

func (s *Subject[T]) Value() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

func (s *Subject[T]) Publish(v T) {
	s.notify.Lock()
	defer s.notify.Unlock()

	s.mu.Lock()
	s.value = v
	subs := make([]subscriber[T], len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(v)
	}
}

// Subscribe registers fn and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (s *Subject[T]) Subscribe(fn func(T)) func() {
	s.notify.Lock()
	defer s.notify.Unlock()

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	v := s.value
	s.mu.Unlock()

	fn(v)

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *Subject[T]) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}
