// Package memory is an in-process document store with the same semantics as
// the Firestore adapters: all-or-nothing transactions, create-if-absent writes
// and live queries that re-deliver the full result set after every commit.
package memory

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"creatorconnect/internal/domain/entity"
	"creatorconnect/internal/domain/repository"
)

type state struct {
	users          map[string]entity.User
	requests       map[string]entity.CollabRequest
	collaborations map[string]entity.Collaboration
	ratings        map[string]entity.Rating
	notifications  map[string]entity.AppNotification
	chats          map[string]entity.Chat
	messages       map[string][]entity.Message
}

func newState() *state {
	return &state{
		users:          map[string]entity.User{},
		requests:       map[string]entity.CollabRequest{},
		collaborations: map[string]entity.Collaboration{},
		ratings:        map[string]entity.Rating{},
		notifications:  map[string]entity.AppNotification{},
		chats:          map[string]entity.Chat{},
		messages:       map[string][]entity.Message{},
	}
}

// clone copies the top-level maps. Stored values are never mutated in place,
// so nested slices and maps can be shared between versions.
func (s *state) clone() *state {
	return &state{
		users:          copyMap(s.users),
		requests:       copyMap(s.requests),
		collaborations: copyMap(s.collaborations),
		ratings:        copyMap(s.ratings),
		notifications:  copyMap(s.notifications),
		chats:          copyMap(s.chats),
		messages:       copyMap(s.messages),
	}
}

type Store struct {
	// writeMu serializes every write, transactional or not.
	writeMu sync.Mutex

	mu    sync.RWMutex
	state *state

	subsMu  sync.Mutex
	subs    map[uint64]*subscription
	nextSub uint64
}

func NewStore() *Store {
	return &Store{
		state: newState(),
		subs:  map[uint64]*subscription{},
	}
}

func (s *Store) current() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// update applies fn to a private copy of the state and publishes it only if
// fn succeeds.
func (s *Store) update(fn func(next *state) error) error {
	s.writeMu.Lock()
	err := s.updateLocked(fn)
	s.writeMu.Unlock()
	if err == nil {
		s.notify()
	}
	return err
}

func (s *Store) updateLocked(fn func(next *state) error) error {
	next := s.current().clone()
	if err := fn(next); err != nil {
		return err
	}
	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
	return nil
}

type subscription struct {
	mu      sync.Mutex
	closed  atomic.Bool
	deliver func(st *state)
}

func (s *Store) notify() {
	s.subsMu.Lock()
	ids := make([]uint64, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	subs := make([]*subscription, 0, len(ids))
	for _, id := range ids {
		subs = append(subs, s.subs[id])
	}
	s.subsMu.Unlock()

	for _, sub := range subs {
		sub.run(s)
	}
}

// run delivers the current snapshot. Deliveries for one subscription are
// serialized and always read the newest state, so a listener never observes
// an older snapshot after a newer one.
func (sub *subscription) run(s *Store) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.closed.Load() {
		return
	}
	sub.deliver(s.current())
}

func subscribe[T any](ctx context.Context, s *Store, query func(st *state) []*T, fn repository.SnapshotFunc[T]) repository.Unsubscribe {
	sub := &subscription{
		deliver: func(st *state) {
			fn(query(st), nil)
		},
	}

	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = sub
	s.subsMu.Unlock()

	stop := make(chan struct{})
	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			sub.closed.Store(true)
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
			close(stop)
		})
	}

	if done := ctx.Done(); done != nil {
		go func() {
			select {
			case <-done:
				unsubscribe()
			case <-stop:
			}
		}()
	}

	sub.run(s)
	return unsubscribe
}

// SubscriberCount reports live subscriptions; tests use it to check release.
func (s *Store) SubscriberCount() int {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	return len(s.subs)
}

func copyMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// appendCopy never writes into the backing array of in.
func appendCopy[T any](in []T, items ...T) []T {
	out := make([]T, 0, len(in)+len(items))
	out = append(out, in...)
	return append(out, items...)
}
