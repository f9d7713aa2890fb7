package web_test

import (
	"context"
	"net/http"
	"testing"

	authpages "github.com/goliatone/go-auth-pages"
	"github.com/goliatone/go-auth-pages/provider/memory"
	"github.com/goliatone/go-auth-pages/web"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestActRejectsBadCSRFToken(t *testing.T) {
	tests := []struct {
		name     string
		token    func(*web.Host) string
		status   int
		textCode string
	}{
		{
			name:     "missing",
			token:    func(*web.Host) string { return "" },
			status:   http.StatusBadRequest,
			textCode: web.TextCodeCSRFMissing,
		},
		{
			name:     "other browser",
			token:    func(h *web.Host) string { return h.CSRFToken("browser-2") },
			status:   http.StatusForbidden,
			textCode: web.TextCodeCSRFMismatch,
		},
		{
			name:     "garbage",
			token:    func(*web.Host) string { return "not-a-token" },
			status:   http.StatusForbidden,
			textCode: web.TextCodeCSRFMismatch,
		},
		{
			name: "other key",
			token: func(*web.Host) string {
				cfg := web.DefaultConfig()
				cfg.CSRF.SecureKey = []byte("fedcba9876543210fedcba9876543210")
				return web.NewHost(web.SessionProviderFunc(nil), web.WithConfig(cfg)).CSRFToken(testBrowserID)
			},
			status:   http.StatusForbidden,
			textCode: web.TextCodeCSRFMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, store := newHost(t)
			seed(t, store)

			action := web.PageAction{
				Action:   authpages.LoginFormID,
				Email:    "ada@example.com",
				Password: "Abcdefg1",
				Token:    tt.token(host),
			}

			ctx := new(MockContext)
			ctx.On("OriginalURL").Return("/login.html")
			ctx.On("Cookies", "pages_csrf").Return(testBrowserID)
			ctx.On("Bind", mock.Anything).Run(bindAction(action)).Return(nil)
			ctx.On("Status", tt.status).Return()
			ctx.On("Render", "error", mock.MatchedBy(func(v router.ViewContext) bool {
				richErr, ok := v["error"].(*errors.Error)
				return ok && richErr.TextCode == tt.textCode
			})).Return(nil)

			require.NoError(t, host.Act(web.LoginPage)(ctx))
			ctx.AssertExpectations(t)
			ctx.AssertNotCalled(t, "Cookie", mock.Anything)
			ctx.AssertNotCalled(t, "Redirect", mock.Anything, mock.Anything)
		})
	}
}

func TestShowIssuesBrowserCookie(t *testing.T) {
	host, _ := newHost(t)

	var issued string
	ctx := new(MockContext)
	ctx.On("Context").Return(context.Background())
	ctx.On("OriginalURL").Return("/login.html")
	ctx.On("Cookies", "pages_session").Return("")
	ctx.On("Cookies", "pages_csrf").Return("")
	ctx.On("Cookie", mock.MatchedBy(func(c *router.Cookie) bool {
		return c.Name == "pages_csrf" && c.HTTPOnly && len(c.Value) == 2*web.DefaultCSRFTokenLength
	})).Run(func(args mock.Arguments) {
		issued = args.Get(0).(*router.Cookie).Value
	}).Return()

	var token string
	ctx.On("Render", "login", mock.MatchedBy(func(v router.ViewContext) bool {
		token, _ = v["csrf_token"].(string)
		return v["csrf_field"] == web.CSRFFieldName && token != ""
	})).Return(nil)

	require.NoError(t, host.Show(web.LoginPage)(ctx))
	ctx.AssertExpectations(t)

	// the rendered token is bound to the issued browser id
	assert.NotEmpty(t, issued)
	assert.NotEqual(t, host.CSRFToken(testBrowserID), token)
}

func TestCSRFDisabled(t *testing.T) {
	cfg := web.DefaultConfig()
	cfg.CSRF.Disabled = true
	store := memory.New(memory.WithBcryptCost(bcrypt.MinCost))
	host := web.NewHost(web.SessionProviderFunc(func(ctx context.Context, token string) (web.Session, error) {
		return store.Session(ctx, token), nil
	}), web.WithConfig(cfg))

	ctx := new(MockContext)
	ctx.On("Context").Return(context.Background())
	ctx.On("OriginalURL").Return("/signup.html")
	ctx.On("Cookies", "pages_session").Return("")
	ctx.On("Bind", mock.Anything).Run(bindAction(web.PageAction{Action: authpages.PasswordInputID, Password: "Abcdefg1"})).Return(nil)
	ctx.On("Render", "signup", mock.MatchedBy(func(v router.ViewContext) bool {
		_, ok := v["csrf_token"]
		return !ok
	})).Return(nil)

	require.NoError(t, host.Act(web.SignupPage)(ctx))
	ctx.AssertExpectations(t)
	ctx.AssertNotCalled(t, "Cookies", "pages_csrf")
}

func TestNewHostRejectsShortCSRFKey(t *testing.T) {
	cfg := web.DefaultConfig()
	cfg.CSRF.SecureKey = []byte("short")
	assert.Panics(t, func() {
		web.NewHost(web.SessionProviderFunc(nil), web.WithConfig(cfg))
	})
}
