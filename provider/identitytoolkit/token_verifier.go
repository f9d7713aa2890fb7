package identitytoolkit

import (
	"context"
	"sync"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	authpages "github.com/goliatone/go-auth-pages"
	"github.com/goliatone/go-errors"
)

type idTokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// TokenVerifier validates ID tokens against the project's issuer, audience
// and signing keys.
type TokenVerifier struct {
	config  Config
	mu      sync.Mutex
	keyFunc jwt.Keyfunc
	logger  authpages.Logger
}

// NewTokenVerifier returns a verifier for cfg. With no KeyFunc, the JWKS is
// fetched on first use and refreshed in the background.
func NewTokenVerifier(cfg Config) (*TokenVerifier, error) {
	cfg = cfg.withDefaults()
	if cfg.ProjectID == "" {
		return nil, ErrMissingProjectID.Clone()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = authpages.NopLogger()
	}
	return &TokenVerifier{
		config:  cfg,
		keyFunc: cfg.KeyFunc,
		logger:  logger,
	}, nil
}

// Verify parses idToken and returns the principal it names.
func (v *TokenVerifier) Verify(ctx context.Context, idToken string) (authpages.Principal, error) {
	if err := ctx.Err(); err != nil {
		return authpages.Principal{}, err
	}

	keyFunc, err := v.keys(ctx)
	if err != nil {
		return authpages.Principal{}, networkError("jwks", err)
	}

	claims := &idTokenClaims{}
	_, err = jwt.ParseWithClaims(idToken, claims, keyFunc,
		jwt.WithValidMethods(v.config.SigningMethods),
		jwt.WithIssuer(v.config.issuer()),
		jwt.WithAudience(v.config.ProjectID),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30*time.Second),
	)
	if err != nil {
		return authpages.Principal{}, normalizeValidationError(err)
	}

	uid := claims.Subject
	if uid == "" {
		uid = claims.UserID
	}
	if uid == "" {
		return authpages.Principal{}, ErrTokenMalformed.Clone()
	}

	return authpages.Principal{
		UID:         uid,
		Email:       claims.Email,
		DisplayName: claims.Name,
	}, nil
}

func (v *TokenVerifier) keys(ctx context.Context) (jwt.Keyfunc, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.keyFunc != nil {
		return v.keyFunc, nil
	}

	jwks, err := keyfunc.Get(v.config.JWKSURL, keyfunc.Options{
		Ctx: context.WithoutCancel(ctx),
		RefreshErrorHandler: func(err error) {
			v.logger.Error("failed to do a background refresh of JWT set", "error", err)
		},
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  time.Minute * 5,
		RefreshTimeout:    time.Second * 10,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, err
	}

	v.keyFunc = jwks.Keyfunc
	return v.keyFunc, nil
}

func normalizeValidationError(err error) error {
	clone := ErrTokenMalformed.Clone()
	if errors.Is(err, jwt.ErrTokenExpired) {
		clone = ErrTokenExpired.Clone()
	}
	clone.Source = err
	return clone.WithMetadata(map[string]any{
		"provider": "identitytoolkit",
		"cause":    err.Error(),
	})
}
