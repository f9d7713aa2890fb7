package identitytoolkit

import (
	"context"
	"sync"

	authpages "github.com/goliatone/go-auth-pages"
	"github.com/goliatone/go-auth-pages/internal/authstate"
	"github.com/goliatone/go-errors"
)

// Session is one viewer's sign in state. It satisfies
// authpages.IdentityClient. Sign out is local: the credential is dropped.
type Session struct {
	client *Client
	state  *authstate.Broadcaster
	mu     sync.Mutex
	cred   *Credential
}

// NewSession returns a session whose state stays Unknown until Restore runs.
func (c *Client) NewSession() *Session {
	return &Session{client: c, state: authstate.New()}
}

// Session restores idToken and returns a session whose state is already
// known.
func (c *Client) Session(ctx context.Context, idToken string) *Session {
	s := c.NewSession()
	s.Restore(ctx, idToken)
	return s
}

// Restore verifies idToken and publishes the resulting state. Empty, expired
// or invalid tokens publish Absent.
func (s *Session) Restore(ctx context.Context, idToken string) {
	if idToken == "" {
		s.state.Set(authpages.Absent())
		return
	}

	principal, err := s.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.client.logger.Debug("session token rejected", "error", err)
		s.state.Set(authpages.Absent())
		return
	}

	s.setCredential(&Credential{Principal: principal, IDToken: idToken})
	s.state.Set(authpages.Present(principal))
}

// Token returns the current ID token, empty when signed out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == nil {
		return ""
	}
	return s.cred.IDToken
}

// SubscribeAuthState satisfies authpages.AuthStateSource.
func (s *Session) SubscribeAuthState(fn func(authpages.AuthState)) func() {
	return s.state.Subscribe(fn)
}

// SignIn satisfies authpages.IdentityClient.
func (s *Session) SignIn(ctx context.Context, email, password string) (authpages.Principal, error) {
	cred, err := s.client.SignInWithPassword(ctx, email, password)
	if err != nil {
		return authpages.Principal{}, err
	}
	s.setCredential(cred)
	s.state.Set(authpages.Present(cred.Principal))
	return cred.Principal, nil
}

// SignUp satisfies authpages.IdentityClient. The new account is signed in.
func (s *Session) SignUp(ctx context.Context, email, password string) (authpages.Principal, error) {
	cred, err := s.client.SignUp(ctx, email, password)
	if err != nil {
		return authpages.Principal{}, err
	}
	s.setCredential(cred)
	s.state.Set(authpages.Present(cred.Principal))
	return cred.Principal, nil
}

// SignOut satisfies authpages.IdentityClient.
func (s *Session) SignOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.setCredential(nil)
	s.state.Set(authpages.Absent())
	return nil
}

// SendPasswordReset satisfies authpages.IdentityClient.
func (s *Session) SendPasswordReset(ctx context.Context, email string) error {
	return s.client.SendPasswordResetEmail(ctx, email)
}

// UpdateProfile satisfies authpages.IdentityClient. Only the signed in
// principal can be updated.
func (s *Session) UpdateProfile(ctx context.Context, principal authpages.Principal, update authpages.ProfileUpdate) error {
	s.mu.Lock()
	cred := s.cred
	s.mu.Unlock()

	if cred == nil || cred.Principal.UID != principal.UID {
		return authpages.NewProviderError(authpages.KindInvalidCredential, "principal is not signed in").
			WithMetadata(map[string]any{"uid": principal.UID})
	}

	updated, err := s.client.UpdateProfile(ctx, cred.IDToken, update)
	if err != nil {
		return err
	}

	if updated.Principal.UID == "" {
		updated.Principal = cred.Principal
		updated.Principal.DisplayName = update.DisplayName
	}
	if updated.RefreshToken == "" {
		updated.RefreshToken = cred.RefreshToken
	}
	s.setCredential(updated)
	return nil
}

// Principal returns the signed in principal, if any.
func (s *Session) Principal() (authpages.Principal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cred == nil {
		return authpages.Principal{}, errors.New("no principal signed in", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized)
	}
	return s.cred.Principal, nil
}

func (s *Session) setCredential(cred *Credential) {
	s.mu.Lock()
	s.cred = cred
	s.mu.Unlock()
}
