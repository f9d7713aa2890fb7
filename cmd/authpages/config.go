package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/joho/godotenv"
)

const (
	providerMemory          = "memory"
	providerIdentityToolkit = "identitytoolkit"
)

// Config is read from the environment, after loading an optional .env file.
type Config struct {
	Addr     string `env:"PAGES_ADDR" envDefault:":8572"`
	Provider string `env:"PAGES_PROVIDER" envDefault:"memory"`
	Debug    bool   `env:"PAGES_DEBUG" envDefault:"false"`

	APIKey           string        `env:"PAGES_API_KEY"`
	ProjectID        string        `env:"PAGES_PROJECT_ID"`
	IdentityEndpoint string        `env:"PAGES_IDENTITY_ENDPOINT"`
	IdentityTimeout  time.Duration `env:"PAGES_IDENTITY_TIMEOUT" envDefault:"10s"`

	SeedEmail    string `env:"PAGES_SEED_EMAIL"`
	SeedPassword string `env:"PAGES_SEED_PASSWORD"`

	CookieName     string        `env:"PAGES_COOKIE_NAME" envDefault:"pages_session"`
	CookieSecure   bool          `env:"PAGES_COOKIE_SECURE" envDefault:"true"`
	CookieDuration time.Duration `env:"PAGES_COOKIE_DURATION" envDefault:"336h"`

	CSRFDisabled   bool          `env:"PAGES_CSRF_DISABLED" envDefault:"false"`
	CSRFKey        string        `env:"PAGES_CSRF_KEY"`
	CSRFExpiration time.Duration `env:"PAGES_CSRF_EXPIRATION" envDefault:"2h"`

	// ViewsDir overrides embedded templates with files on disk.
	ViewsDir string `env:"PAGES_VIEWS_DIR"`
}

func loadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	identityRequired := validation.By(func(value interface{}) error {
		if c.Provider != providerIdentityToolkit {
			return nil
		}
		if s, _ := value.(string); s == "" {
			return fmt.Errorf("required by the %s provider", providerIdentityToolkit)
		}
		return nil
	})

	return validation.ValidateStruct(&c,
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.Provider, validation.Required, validation.In(providerMemory, providerIdentityToolkit)),
		validation.Field(&c.APIKey, identityRequired),
		validation.Field(&c.ProjectID, identityRequired),
		validation.Field(&c.CookieName, validation.Required),
		validation.Field(&c.CSRFKey, validation.Length(32, 0)),
	)
}
