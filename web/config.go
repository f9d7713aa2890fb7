package web

import (
	"time"

	authpages "github.com/goliatone/go-auth-pages"
)

// Paths are the routes each page is served from.
type Paths struct {
	Landing string
	Index   string
	Login   string
	Signup  string
	Home    string
}

// Views are the template names rendered for each page.
type Views struct {
	Landing string
	Login   string
	Signup  string
	Home    string
	Error   string
}

// Config holds the host settings.
type Config struct {
	Paths Paths
	Views Views
	// HomeURL and LoginURL are the navigation targets handed to the pages.
	HomeURL  string
	LoginURL string

	CookieName     string
	CookieSecure   bool
	CookieDuration time.Duration

	CSRF CSRFConfig

	// Debug dumps every bound action to the logger.
	Debug bool
}

// DefaultConfig returns the layout the static pages used.
func DefaultConfig() Config {
	return Config{
		Paths: Paths{
			Landing: "/",
			Index:   "/index.html",
			Login:   "/login.html",
			Signup:  "/signup.html",
			Home:    "/home.html",
		},
		Views: Views{
			Landing: "index",
			Login:   "login",
			Signup:  "signup",
			Home:    "home",
			Error:   "error",
		},
		HomeURL:        authpages.DefaultHomeURL,
		LoginURL:       authpages.DefaultLoginURL,
		CookieName:     "pages_session",
		CookieSecure:   true,
		CookieDuration: time.Hour * 24 * 14,
	}
}

// guardConfig derives the auth page paths from the routes.
func (c Config) guardConfig() authpages.GuardConfig {
	return authpages.GuardConfig{
		LoginPath:  c.Paths.Login,
		SignupPath: c.Paths.Signup,
	}
}
