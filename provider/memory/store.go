// Package memory is an in-process identity provider for local runs and
// tests. It stands in for the external service and is not meant to hold real
// accounts.
package memory

import (
	"context"
	"strings"
	"sync"

	authpages "github.com/goliatone/go-auth-pages"
	"github.com/goliatone/go-auth-pages/internal/authstate"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	principal authpages.Principal
	hash      []byte
	disabled  bool
}

// Store holds accounts and the tokens handed to sessions.
type Store struct {
	mu       sync.Mutex
	accounts map[string]*account // by lower case email
	tokens   map[string]string   // token to uid
	resets   []string
	cost     int
	// Fail, when set, is consulted before every operation; a non nil error
	// fails the operation. Used to simulate provider outages.
	Fail func(op string) error
}

// Option configures a Store.
type Option func(*Store) *Store

// WithBcryptCost sets the hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(s *Store) *Store {
		s.cost = cost
		return s
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		accounts: map[string]*account{},
		tokens:   map[string]string{},
		cost:     bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		s = opt(s)
	}
	return s
}

// Disable marks the account for email as disabled.
func (s *Store) Disable(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if acc, ok := s.accounts[key(email)]; ok {
		acc.disabled = true
	}
}

// PasswordResets lists the addresses a reset was sent to.
func (s *Store) PasswordResets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.resets...)
}

// Session resolves token into a session. Unknown or empty tokens give a
// signed out session. The state is known before Session returns.
func (s *Store) Session(_ context.Context, token string) *Session {
	sess := &Session{store: s, state: authstate.New()}

	s.mu.Lock()
	uid, ok := s.tokens[token]
	var principal *authpages.Principal
	if ok {
		for _, acc := range s.accounts {
			if acc.principal.UID == uid && !acc.disabled {
				p := acc.principal
				principal = &p
				break
			}
		}
	}
	s.mu.Unlock()

	if principal != nil {
		sess.token = token
		sess.state.Set(authpages.Present(*principal))
	} else {
		sess.state.Set(authpages.Absent())
	}
	return sess
}

func (s *Store) fail(op string) error {
	if s.Fail == nil {
		return nil
	}
	return s.Fail(op)
}

func (s *Store) signIn(email, password string) (authpages.Principal, string, error) {
	if err := s.fail("signIn"); err != nil {
		return authpages.Principal{}, "", err
	}
	if !authpages.IsValidEmail(email) {
		return authpages.Principal{}, "", authpages.NewProviderError(authpages.KindInvalidEmail, "invalid email")
	}

	// copy what the checks need; bcrypt runs outside the lock
	s.mu.Lock()
	acc, ok := s.accounts[key(email)]
	var (
		principal authpages.Principal
		hash      []byte
		disabled  bool
	)
	if ok {
		principal, hash, disabled = acc.principal, acc.hash, acc.disabled
	}
	s.mu.Unlock()

	if !ok {
		return authpages.Principal{}, "", authpages.NewProviderError(authpages.KindUserNotFound, "user not found")
	}
	if disabled {
		return authpages.Principal{}, "", authpages.NewProviderError(authpages.KindUserDisabled, "user disabled")
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return authpages.Principal{}, "", authpages.NewProviderError(authpages.KindWrongPassword, "wrong password")
	}

	return principal, s.issue(principal.UID), nil
}

func (s *Store) signUp(email, password string) (authpages.Principal, string, error) {
	if err := s.fail("signUp"); err != nil {
		return authpages.Principal{}, "", err
	}
	if !authpages.IsValidEmail(email) {
		return authpages.Principal{}, "", authpages.NewProviderError(authpages.KindInvalidEmail, "invalid email")
	}
	if len(password) < 6 {
		return authpages.Principal{}, "", authpages.NewProviderError(authpages.KindWeakPassword, "password should be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return authpages.Principal{}, "", err
	}

	s.mu.Lock()
	if _, exists := s.accounts[key(email)]; exists {
		s.mu.Unlock()
		return authpages.Principal{}, "", authpages.NewProviderError(authpages.KindEmailAlreadyInUse, "email exists")
	}
	acc := &account{
		principal: authpages.Principal{UID: uuid.NewString(), Email: strings.TrimSpace(email)},
		hash:      hash,
	}
	s.accounts[key(email)] = acc
	principal := acc.principal
	s.mu.Unlock()

	return principal, s.issue(principal.UID), nil
}

func (s *Store) sendPasswordReset(email string) error {
	if err := s.fail("sendPasswordReset"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[key(email)]; !ok {
		return authpages.NewProviderError(authpages.KindUserNotFound, "user not found")
	}
	s.resets = append(s.resets, email)
	return nil
}

func (s *Store) updateProfile(uid string, update authpages.ProfileUpdate) (authpages.Principal, error) {
	if err := s.fail("updateProfile"); err != nil {
		return authpages.Principal{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range s.accounts {
		if acc.principal.UID == uid {
			acc.principal.DisplayName = update.DisplayName
			return acc.principal, nil
		}
	}
	return authpages.Principal{}, authpages.NewProviderError(authpages.KindUserNotFound, "user not found")
}

func (s *Store) signOut(token string) error {
	if err := s.fail("signOut"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}

func (s *Store) issue(uid string) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = uid
	s.mu.Unlock()
	return token
}

func key(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
