package memory

import (
	"context"
	"sync"

	authpages "github.com/goliatone/go-auth-pages"
	"github.com/goliatone/go-auth-pages/internal/authstate"
)

// Session is one viewer's connection to the store. It satisfies
// authpages.IdentityClient.
type Session struct {
	store *Store
	state *authstate.Broadcaster
	mu    sync.Mutex
	token string
}

// Token returns the session token, empty when signed out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SubscribeAuthState satisfies authpages.AuthStateSource.
func (s *Session) SubscribeAuthState(fn func(authpages.AuthState)) func() {
	return s.state.Subscribe(fn)
}

// SignIn satisfies authpages.IdentityClient.
func (s *Session) SignIn(ctx context.Context, email, password string) (authpages.Principal, error) {
	if err := ctx.Err(); err != nil {
		return authpages.Principal{}, err
	}
	p, token, err := s.store.signIn(email, password)
	if err != nil {
		return authpages.Principal{}, err
	}
	s.setToken(token)
	s.state.Set(authpages.Present(p))
	return p, nil
}

// SignUp satisfies authpages.IdentityClient. A new account is signed in.
func (s *Session) SignUp(ctx context.Context, email, password string) (authpages.Principal, error) {
	if err := ctx.Err(); err != nil {
		return authpages.Principal{}, err
	}
	p, token, err := s.store.signUp(email, password)
	if err != nil {
		return authpages.Principal{}, err
	}
	s.setToken(token)
	s.state.Set(authpages.Present(p))
	return p, nil
}

// SignOut satisfies authpages.IdentityClient.
func (s *Session) SignOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.store.signOut(s.Token()); err != nil {
		return err
	}
	s.setToken("")
	s.state.Set(authpages.Absent())
	return nil
}

// SendPasswordReset satisfies authpages.IdentityClient.
func (s *Session) SendPasswordReset(ctx context.Context, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.store.sendPasswordReset(email)
}

// UpdateProfile satisfies authpages.IdentityClient. Like the hosted
// provider it does not notify subscribers; the change shows on the next
// session.
func (s *Session) UpdateProfile(ctx context.Context, principal authpages.Principal, update authpages.ProfileUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.store.updateProfile(principal.UID, update)
	return err
}

func (s *Session) setToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}
