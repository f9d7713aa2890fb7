// Package authstate fans one session's auth state out to subscribers.
package authstate

import (
	"sort"
	"sync"

	authpages "github.com/goliatone/go-auth-pages"
)

// Broadcaster holds the latest state and notifies subscribers of changes.
// A subscriber joining after the state is known gets it right away.
// Callbacks may unsubscribe themselves but must not call Set or Subscribe
// on the same broadcaster synchronously.
type Broadcaster struct {
	mu     sync.Mutex
	notify sync.Mutex
	state  authpages.AuthState
	subs   map[int]func(authpages.AuthState)
	next   int
}

// New returns a broadcaster in the Unknown state.
func New() *Broadcaster {
	return &Broadcaster{subs: map[int]func(authpages.AuthState){}}
}

// State returns the latest state.
func (b *Broadcaster) State() authpages.AuthState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Subscribe satisfies authpages.AuthStateSource.
func (b *Broadcaster) Subscribe(fn func(authpages.AuthState)) func() {
	if fn == nil {
		return func() {}
	}

	b.notify.Lock()
	defer b.notify.Unlock()

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	state := b.state
	b.mu.Unlock()

	if state.IsKnown() {
		fn(state)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Set records state and notifies every subscriber in subscription order.
func (b *Broadcaster) Set(state authpages.AuthState) {
	b.notify.Lock()
	defer b.notify.Unlock()

	b.mu.Lock()
	b.state = state
	ids := make([]int, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	b.mu.Unlock()

	sort.Ints(ids)
	for _, id := range ids {
		b.mu.Lock()
		fn, ok := b.subs[id]
		b.mu.Unlock()
		if ok {
			fn(state)
		}
	}
}

// Subscribers reports how many subscriptions are live.
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
