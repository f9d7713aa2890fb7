package authpages

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
)

// Navigation delays after a successful form submission.
const (
	LoginRedirectDelay  = 1500 * time.Millisecond
	SignupRedirectDelay = 2 * time.Second
)

// Page holds what every page controller depends on.
type Page struct {
	Client    IdentityClient
	Guard     *Guard
	Surface   Surface
	Scheduler Scheduler
	Logger    Logger
	// Context scopes provider calls made by the page.
	Context  context.Context
	HomeURL  string
	LoginURL string
}

// PageOption configures a Page.
type PageOption func(*Page) *Page

// WithPageLogger sets the page logger.
func WithPageLogger(logger Logger) PageOption {
	return func(p *Page) *Page {
		if logger != nil {
			p.Logger = logger
		}
		return p
	}
}

// WithScheduler replaces the timer used for delayed navigation.
func WithScheduler(s Scheduler) PageOption {
	return func(p *Page) *Page {
		if s != nil {
			p.Scheduler = s
		}
		return p
	}
}

// WithGuard replaces the guard built from the client and surface.
func WithGuard(g *Guard) PageOption {
	return func(p *Page) *Page {
		if g != nil {
			p.Guard = g
		}
		return p
	}
}

// WithContext scopes provider calls to ctx.
func WithContext(ctx context.Context) PageOption {
	return func(p *Page) *Page {
		if ctx != nil {
			p.Context = ctx
		}
		return p
	}
}

// WithURLs overrides the home and login targets.
func WithURLs(home, login string) PageOption {
	return func(p *Page) *Page {
		if home != "" {
			p.HomeURL = home
		}
		if login != "" {
			p.LoginURL = login
		}
		return p
	}
}

func newPage(client IdentityClient, surface Surface, opts ...PageOption) Page {
	p := &Page{
		Client:    client,
		Surface:   surface,
		Scheduler: TimerScheduler,
		Logger:    defLogger{},
		Context:   context.Background(),
		HomeURL:   DefaultHomeURL,
		LoginURL:  DefaultLoginURL,
	}
	for _, opt := range opts {
		p = opt(p)
	}
	if p.Guard == nil && client != nil && surface != nil {
		p.Guard = NewGuard(client, surface, WithGuardLogger(p.Logger))
	}
	return *p
}

// elements resolves ids on the surface, failing on the first missing one.
func (p *Page) elements(ids ...string) (map[string]Element, error) {
	if p.Client == nil {
		return nil, ErrMissingClient
	}
	if p.Surface == nil {
		return nil, errors.New("surface is required", errors.CategoryInternal).
			WithCode(errors.CodeInternal)
	}
	found := make(map[string]Element, len(ids))
	for _, id := range ids {
		el := p.Surface.Element(id)
		if el == nil {
			return nil, ErrMissingElement.Clone().WithMetadata(map[string]any{
				"element": id,
			})
		}
		found[id] = el
	}
	return found, nil
}

// logout signs out and goes to the login page whatever the outcome.
func (p *Page) logout() {
	if err := p.Client.SignOut(p.Context); err != nil {
		p.Logger.Error("logout error", "error", err)
	} else {
		p.Logger.Info("user logged out successfully")
	}
	p.Surface.Navigate(p.LoginURL)
}

func (p *Page) navigateLater(delay time.Duration, target string) {
	p.Scheduler.AfterFunc(delay, func() {
		p.Surface.Navigate(target)
	})
}

// messages toggles the error and success banners of a form page.
type messages struct {
	errorEl   Element
	successEl Element
}

func (m messages) showError(text string) {
	m.errorEl.SetText(text)
	m.errorEl.SetVisible(true)
	m.successEl.SetVisible(false)
}

func (m messages) showSuccess(text string) {
	m.successEl.SetText(text)
	m.successEl.SetVisible(true)
	m.errorEl.SetVisible(false)
}

func (m messages) hide() {
	m.errorEl.SetVisible(false)
	m.successEl.SetVisible(false)
}

// submitOnEnter submits form when Enter is pressed outside a button.
func submitOnEnter(surface Surface, form Element) {
	surface.OnKeyDown(func(ev Event) {
		if ev.Key == "Enter" && ev.TargetTag != "BUTTON" {
			form.Dispatch(Event{Type: EventSubmit})
		}
	})
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
