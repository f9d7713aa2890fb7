// Package identitytoolkit talks to the hosted identity service over its REST
// API and verifies the ID tokens it issues.
package identitytoolkit

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	authpages "github.com/goliatone/go-auth-pages"
)

// Credential is what a successful sign in or sign up returns.
type Credential struct {
	Principal    authpages.Principal
	IDToken      string
	RefreshToken string
	ExpiresAt    time.Time
}

// Client calls the accounts endpoints.
type Client struct {
	config     Config
	httpClient *http.Client
	verifier   *TokenVerifier
	logger     authpages.Logger
}

// New creates a client. JWKS keys are fetched lazily unless cfg.KeyFunc is
// set.
func New(cfg Config) (*Client, error) {
	cfg = cfg.withDefaults()
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey.Clone()
	}

	verifier, err := NewTokenVerifier(cfg)
	if err != nil {
		return nil, err
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = authpages.NopLogger()
	}

	return &Client{
		config:     cfg,
		httpClient: client,
		verifier:   verifier,
		logger:     logger,
	}, nil
}

type accountResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

// credential builds the result of op. An absent expiresIn leaves ExpiresAt
// zero; a malformed one fails the call.
func (r accountResponse) credential(op string, now time.Time) (*Credential, error) {
	var expiresAt time.Time
	if r.ExpiresIn != "" {
		seconds, err := strconv.Atoi(r.ExpiresIn)
		if err != nil {
			return nil, responseError(op, err).WithMetadata(map[string]any{"expires_in": r.ExpiresIn})
		}
		expiresAt = now.Add(time.Duration(seconds) * time.Second)
	}
	return &Credential{
		Principal: authpages.Principal{
			UID:         r.LocalID,
			Email:       r.Email,
			DisplayName: r.DisplayName,
		},
		IDToken:      r.IDToken,
		RefreshToken: r.RefreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// SignInWithPassword verifies an email and password.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Credential, error) {
	var out accountResponse
	err := c.call(ctx, "accounts:signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return c.credential("accounts:signInWithPassword", out)
}

// SignUp creates an email and password account.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Credential, error) {
	var out accountResponse
	err := c.call(ctx, "accounts:signUp", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return c.credential("accounts:signUp", out)
}

// SendPasswordResetEmail asks the service to mail a reset link.
func (c *Client) SendPasswordResetEmail(ctx context.Context, email string) error {
	return c.call(ctx, "accounts:sendOobCode", map[string]any{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}, nil)
}

// UpdateProfile changes the display name of the account behind idToken.
func (c *Client) UpdateProfile(ctx context.Context, idToken string, update authpages.ProfileUpdate) (*Credential, error) {
	var out accountResponse
	err := c.call(ctx, "accounts:update", map[string]any{
		"idToken":           idToken,
		"displayName":       update.DisplayName,
		"returnSecureToken": true,
	}, &out)
	if err != nil {
		return nil, err
	}
	cred, err := c.credential("accounts:update", out)
	if err != nil {
		return nil, err
	}
	if cred.IDToken == "" {
		cred.IDToken = idToken
	}
	return cred, nil
}

func (c *Client) credential(op string, out accountResponse) (*Credential, error) {
	cred, err := out.credential(op, time.Now())
	if err != nil {
		c.logger.Error("identity toolkit returned a malformed expiresIn", "method", op, "expires_in", out.ExpiresIn)
		return nil, err
	}
	return cred, nil
}

// VerifyIDToken checks an ID token and returns its principal.
func (c *Client) VerifyIDToken(ctx context.Context, idToken string) (authpages.Principal, error) {
	return c.verifier.Verify(ctx, idToken)
}

func (c *Client) call(ctx context.Context, method string, payload map[string]any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := c.config.Endpoint + "/v1/" + method + "?" + url.Values{"key": {c.config.APIKey}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("identity toolkit request failed", "method", method, "error", err)
		return networkError(method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkError(method, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr apiErrorBody
		_ = json.Unmarshal(raw, &apiErr)
		c.logger.Debug("identity toolkit rejected request",
			"method", method,
			"status", resp.StatusCode,
			"message", apiErr.Error.Message,
		)
		return apiError(method, resp.StatusCode, apiErr.Error.Message)
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.logger.Error("identity toolkit response not decoded", "method", method, "error", err)
		return responseError(method, err)
	}
	return nil
}
