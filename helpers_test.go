package authpages_test

import (
	"context"
	"testing"

	authpages "github.com/goliatone/go-auth-pages"
	"github.com/goliatone/go-auth-pages/internal/authstate"
	"github.com/goliatone/go-auth-pages/provider/memory"
	"github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// source adapts a broadcaster to authpages.AuthStateSource.
type source struct {
	*authstate.Broadcaster
}

func newSource() source {
	return source{authstate.New()}
}

func (s source) SubscribeAuthState(fn func(authpages.AuthState)) func() {
	return s.Subscribe(fn)
}

func newStore() *memory.Store {
	return memory.New(memory.WithBcryptCost(bcrypt.MinCost))
}

// seedAccount creates an account and returns a token signed in to it.
func seedAccount(t *testing.T, store *memory.Store, email, password string) string {
	t.Helper()
	sess := store.Session(context.Background(), "")
	_, err := sess.SignUp(context.Background(), email, password)
	require.NoError(t, err)
	return sess.Token()
}

func quiet() authpages.PageOption {
	return authpages.WithPageLogger(authpages.NopLogger())
}

func assertTextCode(t *testing.T, err error, code string) {
	t.Helper()
	var rich *errors.Error
	require.True(t, errors.As(err, &rich), "expected rich error, got %v", err)
	assert.Equal(t, code, rich.TextCode)
}
