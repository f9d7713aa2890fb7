package authpages

import (
	"context"
	"sync"
)

// ObserveOnce blocks until source delivers its first notification and returns
// it. The subscription is released as soon as that notification arrives and
// in every other exit path. The only error is ctx ending first.
func ObserveOnce(ctx context.Context, source AuthStateSource) (AuthState, error) {
	if source == nil {
		return AuthState{}, ErrMissingSource
	}

	first := make(chan AuthState, 1)
	sub := &subscription{}
	var once sync.Once

	sub.attach(source.SubscribeAuthState(func(state AuthState) {
		once.Do(func() {
			first <- state
			sub.release()
		})
	}))
	defer sub.release()

	select {
	case state := <-first:
		return state, nil
	case <-ctx.Done():
		return AuthState{}, ctx.Err()
	}
}

// WaitForAuthState waits until the provider has decided whether anyone is
// signed in.
func WaitForAuthState(ctx context.Context, source AuthStateSource) (AuthState, error) {
	return ObserveOnce(ctx, source)
}

// CurrentPrincipal returns the signed in principal, or nil when the first
// notification reports nobody.
func CurrentPrincipal(ctx context.Context, source AuthStateSource) (*Principal, error) {
	state, err := ObserveOnce(ctx, source)
	if err != nil {
		return nil, err
	}
	if !state.IsPresent() {
		return nil, nil
	}
	p := *state.Principal
	return &p, nil
}

// Watch exposes the continuous state stream as a channel. The channel is
// closed and the subscription released once ctx is done. Notifications are
// delivered in provider order; a slow reader holds up the provider callback.
func Watch(ctx context.Context, source AuthStateSource) <-chan AuthState {
	out := make(chan AuthState, 1)
	if source == nil {
		close(out)
		return out
	}

	var mu sync.Mutex
	closed := false

	unsubscribe := source.SubscribeAuthState(func(state AuthState) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case out <- state:
		case <-ctx.Done():
		}
	})

	go func() {
		<-ctx.Done()
		unsubscribe()
		mu.Lock()
		closed = true
		close(out)
		mu.Unlock()
	}()

	return out
}

// subscription releases an unsubscribe handle exactly once, even when the
// release is requested before the provider has returned the handle (which
// happens when the first notification is delivered synchronously).
type subscription struct {
	mu       sync.Mutex
	cancel   func()
	released bool
}

func (s *subscription) attach(cancel func()) {
	if cancel == nil {
		return
	}
	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		cancel()
		return
	}
	s.cancel = cancel
	s.mu.Unlock()
}

func (s *subscription) release() {
	s.mu.Lock()
	s.released = true
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
