// Package web serves the auth pages over HTTP. Every request mounts the page
// controller on an in-memory document, replays the posted action, and
// renders the result; navigation becomes a redirect or a Refresh header.
package web

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	authpages "github.com/goliatone/go-auth-pages"
	"github.com/goliatone/go-auth-pages/surface"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// RouteRegistrar captures the router methods used by the host.
type RouteRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

// Session is a per request identity client that exposes its token so the
// host can keep the cookie in sync.
type Session interface {
	authpages.IdentityClient
	Token() string
}

// SessionProvider resolves the session cookie into a Session whose auth
// state is known.
type SessionProvider interface {
	Session(ctx context.Context, token string) (Session, error)
}

// SessionProviderFunc adapts a function into a SessionProvider.
type SessionProviderFunc func(ctx context.Context, token string) (Session, error)

func (f SessionProviderFunc) Session(ctx context.Context, token string) (Session, error) {
	return f(ctx, token)
}

// Host renders the pages.
type Host struct {
	config       Config
	csrf         CSRFConfig
	sessions     SessionProvider
	logger       authpages.Logger
	errorHandler func(router.Context, error) error
}

// Option configures a Host.
type Option func(*Host) *Host

// WithConfig replaces the host config.
func WithConfig(cfg Config) Option {
	return func(h *Host) *Host {
		h.config = cfg
		return h
	}
}

// WithLogger sets the host logger, also handed to the pages.
func WithLogger(logger authpages.Logger) Option {
	return func(h *Host) *Host {
		if logger != nil {
			h.logger = logger
		}
		return h
	}
}

// WithErrorHandler replaces the error view renderer.
func WithErrorHandler(handler func(router.Context, error) error) Option {
	return func(h *Host) *Host {
		if handler != nil {
			h.errorHandler = handler
		}
		return h
	}
}

// NewHost builds a host over sessions.
func NewHost(sessions SessionProvider, opts ...Option) *Host {
	h := &Host{
		config:   DefaultConfig(),
		sessions: sessions,
		logger:   authpages.NopLogger(),
	}
	h.errorHandler = h.defaultErrHandler

	for _, opt := range opts {
		h = opt(h)
	}

	if h.sessions == nil {
		panic("Missing SessionProvider in pages host...")
	}

	h.csrf = h.config.CSRF.withDefaults()

	return h
}

// RegisterRoutes mounts GET and POST handlers for every page.
func (h *Host) RegisterRoutes(r RouteRegistrar) {
	routes := []struct {
		path string
		kind PageKind
	}{
		{h.config.Paths.Landing, LandingPage},
		{h.config.Paths.Index, LandingPage},
		{h.config.Paths.Login, LoginPage},
		{h.config.Paths.Signup, SignupPage},
		{h.config.Paths.Home, HomePage},
	}

	for _, route := range routes {
		if route.path == "" {
			continue
		}
		r.Get(route.path, h.Show(route.kind)).SetName("pages." + route.kind.String() + ".get")
		r.Post(route.path, h.Act(route.kind)).SetName("pages." + route.kind.String() + ".post")
	}
}

// Show renders kind as loaded by a browser.
func (h *Host) Show(kind PageKind) router.HandlerFunc {
	return func(ctx router.Context) error {
		browserID, err := h.csrfBrowserID(ctx)
		if err != nil {
			return h.errorHandler(ctx, err)
		}
		return h.serve(ctx, kind, nil, browserID, http.StatusFound)
	}
}

// Act binds a PageAction, replays it on kind and renders the result.
func (h *Host) Act(kind PageKind) router.HandlerFunc {
	return func(ctx router.Context) error {
		payload := new(PageAction)
		if err := ctx.Bind(payload); err != nil {
			return h.errorHandler(ctx, errors.Wrap(err, errors.CategoryBadInput, "unable to read page action").
				WithCode(errors.CodeBadRequest))
		}

		browserID, err := h.csrfBrowserID(ctx)
		if err != nil {
			return h.errorHandler(ctx, err)
		}
		if !h.csrf.Disabled {
			if err := h.verifyCSRF(payload.Token, browserID); err != nil {
				return h.errorHandler(ctx, err)
			}
		}

		if err := payload.Validate(kind); err != nil {
			return h.errorHandler(ctx, errors.Wrap(err, errors.CategoryValidation, "invalid page action").
				WithCode(errors.CodeBadRequest).
				WithMetadata(map[string]any{"page": kind.String(), "action": payload.Action}))
		}

		if h.config.Debug {
			h.logger.Debug("page action", "page", kind.String(), "payload", print.MaybePrettyJSON(payload))
		}

		return h.serve(ctx, kind, payload, browserID, http.StatusSeeOther)
	}
}

func (h *Host) csrfBrowserID(ctx router.Context) (string, error) {
	if h.csrf.Disabled {
		return "", nil
	}
	return h.browserID(ctx)
}

func (h *Host) serve(ctx router.Context, kind PageKind, action *PageAction, browserID string, redirectStatus int) error {
	requestID := uuid.NewString()
	reqCtx := ctx.Context()
	token := ctx.Cookies(h.config.CookieName)

	sess, err := h.sessions.Session(reqCtx, token)
	if err != nil {
		return h.errorHandler(ctx, err)
	}

	doc := kind.document(ctx.OriginalURL())
	page := kind.controller(sess, doc,
		authpages.WithPageLogger(h.logger),
		authpages.WithScheduler(doc),
		authpages.WithContext(reqCtx),
		authpages.WithURLs(h.config.HomeURL, h.config.LoginURL),
		authpages.WithGuard(authpages.NewGuard(sess, doc,
			authpages.WithGuardConfig(h.config.guardConfig()),
			authpages.WithGuardLogger(h.logger),
		)),
	)

	if err := page.Mount(); err != nil {
		return h.errorHandler(ctx, err)
	}
	defer page.Unmount()

	if action != nil {
		doc.Fill(action.values())
		if el := doc.Get(action.Action); el != nil {
			el.Dispatch(authpages.Event{Type: kind.actions()[action.Action]})
		}
	}
	doc.Flush()

	h.syncCookie(ctx, token, sess.Token())

	h.logger.Debug("page served",
		"request_id", requestID,
		"page", kind.String(),
		"path", doc.Path(),
		"navigations", len(doc.Navigations()),
	)

	immediate, delayed, ok := navigation(doc.Navigations())
	if ok && immediate != "" {
		return ctx.Redirect(h.localTarget(immediate), redirectStatus)
	}
	if ok {
		delayed.URL = h.localTarget(delayed.URL)
		ctx.SetHeader("Refresh", refreshHeader(delayed))
	}

	view := router.ViewContext{
		"el":         templateElements(doc.Snapshot()),
		"page":       kind.String(),
		"request_id": requestID,
		"csrf_field": CSRFFieldName,
	}
	if !h.csrf.Disabled {
		view["csrf_token"] = h.CSRFToken(browserID)
	}

	return ctx.Render(h.config.view(kind), view)
}

// templateElements keys the snapshot by template safe names: "length-req"
// becomes "length_req".
func templateElements(snapshot map[string]surface.ElementView) map[string]surface.ElementView {
	out := make(map[string]surface.ElementView, len(snapshot))
	for id, view := range snapshot {
		out[strings.ReplaceAll(id, "-", "_")] = view
	}
	return out
}

// navigation picks the outcome of a request: the first immediate
// navigation, otherwise the first delayed one.
func navigation(navs []surface.Navigation) (immediate string, delayed surface.Navigation, ok bool) {
	for _, nav := range navs {
		if nav.Delay == 0 {
			return nav.URL, surface.Navigation{}, true
		}
	}
	if len(navs) > 0 {
		return "", navs[0], true
	}
	return "", surface.Navigation{}, false
}

// localTarget keeps navigation on this site. Targets with a scheme or host,
// including scheme relative ones, are replaced by the home URL.
func (h *Host) localTarget(target string) string {
	if isLocalTarget(target) {
		return target
	}
	h.logger.Warn("rejected off site navigation", "target", target)
	return h.config.HomeURL
}

func isLocalTarget(target string) bool {
	if strings.HasPrefix(target, "//") || strings.Contains(target, "\\") {
		return false
	}
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}

func refreshHeader(nav surface.Navigation) string {
	seconds := strconv.FormatFloat(nav.Delay.Seconds(), 'f', -1, 64)
	return seconds + "; url=" + nav.URL
}

func (h *Host) syncCookie(ctx router.Context, before, after string) {
	if before == after {
		return
	}

	if after == "" {
		ctx.Cookie(&router.Cookie{
			Name:     h.config.CookieName,
			Value:    "",
			Expires:  time.Now().Add(-time.Hour * (24 * 365)),
			HTTPOnly: true,
			Secure:   h.config.CookieSecure,
			SameSite: "Lax",
		})
		return
	}

	ctx.Cookie(&router.Cookie{
		Name:     h.config.CookieName,
		Value:    after,
		Expires:  time.Now().Add(h.config.CookieDuration),
		HTTPOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: "Lax",
	})
}

func (h *Host) defaultErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}
	if richErr.Code == 0 {
		richErr = richErr.Clone().WithCode(errors.CodeInternal)
	}

	h.logger.Error(
		"pages host error",
		"error", richErr.Message,
		"category", richErr.Category,
		"text_code", richErr.TextCode,
		"path", c.OriginalURL(),
		"details", print.MaybePrettyJSON(richErr.Metadata),
	)

	return c.Status(richErr.Code).Render(h.config.Views.Error, router.ViewContext{
		"error": richErr,
	})
}
