package identitytoolkit

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	authpages "github.com/goliatone/go-auth-pages"
)

const (
	defaultEndpoint = "https://identitytoolkit.googleapis.com"
	defaultJWKSURL  = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"
	issuerPrefix    = "https://securetoken.google.com/"
)

// Config holds the project settings for the Identity Toolkit API.
type Config struct {
	// APIKey is the web API key sent as the key query parameter.
	APIKey string

	// ProjectID is the token audience; the issuer derives from it.
	ProjectID string

	// Endpoint overrides the API base URL (emulators, tests).
	// Default: https://identitytoolkit.googleapis.com
	Endpoint string

	// JWKSURL overrides where ID token signing keys are fetched from.
	JWKSURL string

	// KeyFunc replaces JWKS lookups entirely (tests).
	KeyFunc jwt.Keyfunc

	// SigningMethods lists accepted JWT algorithms. Default: RS256.
	SigningMethods []string

	// Timeout bounds every API call when HTTPClient is not set.
	// Default: 10 seconds.
	Timeout time.Duration

	HTTPClient *http.Client

	Logger authpages.Logger
}

// DefaultConfig returns a Config for projectID with defaults filled in.
func DefaultConfig(apiKey, projectID string) Config {
	return Config{
		APIKey:         apiKey,
		ProjectID:      projectID,
		Endpoint:       defaultEndpoint,
		JWKSURL:        defaultJWKSURL,
		SigningMethods: []string{"RS256"},
		Timeout:        10 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	if c.Endpoint == "" {
		c.Endpoint = defaultEndpoint
	}
	c.Endpoint = strings.TrimSuffix(c.Endpoint, "/")
	if c.JWKSURL == "" {
		c.JWKSURL = defaultJWKSURL
	}
	if len(c.SigningMethods) == 0 {
		c.SigningMethods = []string{"RS256"}
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Second
	}
	return c
}

func (c Config) issuer() string {
	return issuerPrefix + c.ProjectID
}
