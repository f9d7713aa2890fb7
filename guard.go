package authpages

import (
	"net/url"
	"strings"
	"sync/atomic"
)

const (
	// DefaultLoginURL is where RequireAuth sends anonymous viewers.
	DefaultLoginURL = "login.html"
	// DefaultHomeURL is where RedirectIfAuthenticated sends signed in viewers.
	DefaultHomeURL = "home.html"
	// RedirectParam carries the page the viewer originally asked for.
	RedirectParam = "redirect"
)

// GuardConfig holds the paths a guard treats as auth pages.
type GuardConfig struct {
	// LoginPath and SignupPath are compared byte for byte against the
	// current path; a viewer on them is never given a redirect parameter.
	LoginPath  string
	SignupPath string
}

// DefaultGuardConfig returns the paths the static pages are served from.
func DefaultGuardConfig() GuardConfig {
	return GuardConfig{
		LoginPath:  "/login.html",
		SignupPath: "/signup.html",
	}
}

// Guard redirects viewers based on the provider's auth state.
type Guard struct {
	source  AuthStateSource
	surface interface {
		Location
		Navigator
	}
	config GuardConfig
	logger Logger
}

// GuardOption configures a Guard.
type GuardOption func(*Guard) *Guard

// WithGuardConfig overrides the auth page paths.
func WithGuardConfig(cfg GuardConfig) GuardOption {
	return func(g *Guard) *Guard {
		if cfg.LoginPath != "" {
			g.config.LoginPath = cfg.LoginPath
		}
		if cfg.SignupPath != "" {
			g.config.SignupPath = cfg.SignupPath
		}
		return g
	}
}

// WithGuardLogger sets the guard logger.
func WithGuardLogger(logger Logger) GuardOption {
	return func(g *Guard) *Guard {
		if logger != nil {
			g.logger = logger
		}
		return g
	}
}

// NewGuard builds a guard over source that reads the address from and
// navigates through surface.
func NewGuard(source AuthStateSource, surface interface {
	Location
	Navigator
}, opts ...GuardOption) *Guard {
	g := &Guard{
		source:  source,
		surface: surface,
		config:  DefaultGuardConfig(),
		logger:  defLogger{},
	}
	for _, opt := range opts {
		g = opt(g)
	}
	return g
}

// RequireAuth protects a page. Only the first notification counts: a
// principal runs onAuthenticated, nobody navigates to redirectURL (default
// DefaultLoginURL). The subscription is released once the first notification
// has been handled; the returned function releases it earlier.
func (g *Guard) RequireAuth(onAuthenticated func(Principal), redirectURL string) (stop func()) {
	if redirectURL == "" {
		redirectURL = DefaultLoginURL
	}

	var resolved atomic.Bool
	sub := &subscription{}

	sub.attach(g.source.SubscribeAuthState(func(state AuthState) {
		if !resolved.CompareAndSwap(false, true) {
			return
		}
		defer sub.release()

		if state.IsPresent() {
			g.logger.Info("user authenticated", "email", state.Principal.Email)
			if onAuthenticated != nil {
				onAuthenticated(*state.Principal)
			}
			return
		}

		target := g.loginRedirect(redirectURL)
		g.logger.Info("user not authenticated, redirecting to login", "target", target)
		g.surface.Navigate(target)
	}))

	return sub.release
}

// RedirectIfAuthenticated sends a signed in viewer away from the login and
// signup pages: to the redirect query parameter when it is set, otherwise to
// redirectURL (default DefaultHomeURL). It reacts to every notification until
// stop is called.
func (g *Guard) RedirectIfAuthenticated(redirectURL string) (stop func()) {
	if redirectURL == "" {
		redirectURL = DefaultHomeURL
	}

	return g.source.SubscribeAuthState(func(state AuthState) {
		if !state.IsPresent() {
			return
		}

		target := redirectURL
		if requested := g.surface.Query().Get(RedirectParam); requested != "" {
			target = requested
		}

		g.logger.Info("user already authenticated, redirecting", "target", target)
		g.surface.Navigate(target)
	})
}

func (g *Guard) loginRedirect(redirectURL string) string {
	current := g.surface.Path()
	if current == g.config.LoginPath || current == g.config.SignupPath {
		return redirectURL
	}
	return WithRedirectParam(redirectURL, current)
}

// WithRedirectParam appends redirect=<page> to target, escaping page the way
// encodeURIComponent does.
func WithRedirectParam(target, page string) string {
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	return target + sep + RedirectParam + "=" + EncodeURIComponent(page)
}

// EncodeURIComponent escapes s like the browser function of the same name:
// spaces become %20 and "/" is escaped.
func EncodeURIComponent(s string) string {
	escaped := url.QueryEscape(s)
	escaped = strings.ReplaceAll(escaped, "+", "%20")
	for _, keep := range []string{"!", "'", "(", ")", "*", "~"} {
		escaped = strings.ReplaceAll(escaped, url.QueryEscape(keep), keep)
	}
	return escaped
}
