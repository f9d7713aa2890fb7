package authstate

import (
	"testing"

	authpages "github.com/goliatone/go-auth-pages"
	"github.com/stretchr/testify/assert"
)

func TestSubscribeBeforeStateIsKnown(t *testing.T) {
	b := New()

	var got []authpages.AuthState
	b.Subscribe(func(s authpages.AuthState) { got = append(got, s) })
	assert.Empty(t, got)

	b.Set(authpages.Absent())
	b.Set(authpages.Present(authpages.Principal{UID: "u1"}))

	assert.Len(t, got, 2)
	assert.Equal(t, authpages.StateAbsent, got[0].Kind)
	assert.Equal(t, "u1", got[1].Principal.UID)
}

func TestSubscribeAfterStateIsKnownDeliversImmediately(t *testing.T) {
	b := New()
	b.Set(authpages.Absent())

	var got []authpages.AuthState
	b.Subscribe(func(s authpages.AuthState) { got = append(got, s) })

	assert.Len(t, got, 1)
	assert.Equal(t, authpages.StateAbsent, got[0].Kind)
}

func TestUnsubscribeFromInsideCallback(t *testing.T) {
	b := New()

	calls := 0
	var unsubscribe func()
	unsubscribe = b.Subscribe(func(authpages.AuthState) {
		calls++
		if unsubscribe != nil {
			unsubscribe()
		}
	})

	b.Set(authpages.Absent())
	b.Set(authpages.Absent())

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, b.Subscribers())
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	b := New()
	unsubscribe := b.Subscribe(func(authpages.AuthState) {})
	b.Subscribe(func(authpages.AuthState) {})

	unsubscribe()
	unsubscribe()

	assert.Equal(t, 1, b.Subscribers())
}
