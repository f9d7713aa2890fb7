package authpages_test

import (
	"context"
	"testing"
	"time"

	authpages "github.com/goliatone/go-auth-pages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveOnceWaitsForFirstNotification(t *testing.T) {
	src := newSource()
	result := make(chan authpages.AuthState, 1)

	go func() {
		state, err := authpages.ObserveOnce(context.Background(), src)
		assert.NoError(t, err)
		result <- state
	}()

	require.Eventually(t, func() bool { return src.Subscribers() == 1 }, time.Second, time.Millisecond)

	src.Set(authpages.Present(authpages.Principal{UID: "u1", Email: "ada@example.com"}))
	src.Set(authpages.Absent())

	select {
	case state := <-result:
		require.True(t, state.IsPresent())
		assert.Equal(t, "u1", state.Principal.UID)
	case <-time.After(time.Second):
		t.Fatal("no state delivered")
	}
	assert.Equal(t, 0, src.Subscribers())
}

func TestObserveOnceReleasesOnSynchronousDelivery(t *testing.T) {
	src := newSource()
	src.Set(authpages.Absent())

	state, err := authpages.ObserveOnce(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, authpages.StateAbsent, state.Kind)
	assert.Equal(t, 0, src.Subscribers())
}

func TestObserveOnceContextDone(t *testing.T) {
	src := newSource()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := authpages.ObserveOnce(ctx, src)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, src.Subscribers())
}

func TestObserveOnceWithoutSource(t *testing.T) {
	_, err := authpages.ObserveOnce(context.Background(), nil)
	assert.Equal(t, authpages.ErrMissingSource, err)
}

func TestCurrentPrincipal(t *testing.T) {
	src := newSource()
	src.Set(authpages.Absent())

	p, err := authpages.CurrentPrincipal(context.Background(), src)
	require.NoError(t, err)
	assert.Nil(t, p)

	src.Set(authpages.Present(authpages.Principal{UID: "u2", DisplayName: "Grace"}))
	p, err = authpages.CurrentPrincipal(context.Background(), src)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Grace", p.DisplayName)

	state, err := authpages.WaitForAuthState(context.Background(), src)
	require.NoError(t, err)
	assert.True(t, state.IsKnown())
}

func TestWatchStreamsUntilCancelled(t *testing.T) {
	src := newSource()
	src.Set(authpages.Absent())

	ctx, cancel := context.WithCancel(context.Background())
	states := authpages.Watch(ctx, src)

	first := <-states
	assert.Equal(t, authpages.StateAbsent, first.Kind)

	src.Set(authpages.Present(authpages.Principal{UID: "u3"}))
	second := <-states
	assert.True(t, second.IsPresent())

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-states:
			return !ok
		default:
			return false
		}
	}, time.Second, time.Millisecond)
	assert.Equal(t, 0, src.Subscribers())
}
