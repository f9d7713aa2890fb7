package authpages_test

import (
	"testing"

	authpages "github.com/goliatone/go-auth-pages"
	"github.com/goliatone/go-auth-pages/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuard(src source, doc *surface.Document) *authpages.Guard {
	return authpages.NewGuard(src, doc, authpages.WithGuardLogger(authpages.NopLogger()))
}

func TestRequireAuthRedirectsAnonymousViewer(t *testing.T) {
	tests := []struct {
		name     string
		location string
		redirect string
		want     string
	}{
		{"protected page", "http://localhost/dashboard.html", "", "login.html?redirect=%2Fdashboard.html"},
		{"home page", "http://localhost/home.html", "login.html", "login.html?redirect=%2Fhome.html"},
		{"login page", "http://localhost/login.html", "", "login.html"},
		{"signup page", "http://localhost/signup.html", "", "login.html"},
		{"escaped path", "http://localhost/my%20page.html", "", "login.html?redirect=%2Fmy%20page.html"},
		{"target with query", "http://localhost/reports", "/signin?next=1", "/signin?next=1&redirect=%2Freports"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newSource()
			doc := surface.New(tt.location)
			called := false

			newGuard(src, doc).RequireAuth(func(authpages.Principal) { called = true }, tt.redirect)
			src.Set(authpages.Absent())

			assert.False(t, called)
			require.Len(t, doc.Navigations(), 1)
			assert.Equal(t, tt.want, doc.Navigations()[0].URL)
		})
	}
}

func TestRequireAuthOnlyHonorsFirstNotification(t *testing.T) {
	src := newSource()
	doc := surface.New("http://localhost/home.html")

	var seen []authpages.Principal
	newGuard(src, doc).RequireAuth(func(p authpages.Principal) { seen = append(seen, p) }, "")

	assert.Equal(t, 1, src.Subscribers())
	src.Set(authpages.Present(authpages.Principal{UID: "u1"}))
	src.Set(authpages.Absent())
	src.Set(authpages.Present(authpages.Principal{UID: "u2"}))

	require.Len(t, seen, 1)
	assert.Equal(t, "u1", seen[0].UID)
	assert.Empty(t, doc.Navigations())
	assert.Equal(t, 0, src.Subscribers())
}

func TestRequireAuthStopBeforeResolution(t *testing.T) {
	src := newSource()
	doc := surface.New("http://localhost/home.html")

	stop := newGuard(src, doc).RequireAuth(func(authpages.Principal) { t.Fatal("callback ran") }, "")
	stop()
	stop()
	src.Set(authpages.Absent())

	assert.Empty(t, doc.Navigations())
	assert.Equal(t, 0, src.Subscribers())
}

func TestRedirectIfAuthenticated(t *testing.T) {
	t.Run("uses redirect parameter", func(t *testing.T) {
		src := newSource()
		doc := surface.New("http://localhost/login.html?redirect=%2Fdashboard.html")

		newGuard(src, doc).RedirectIfAuthenticated("")
		src.Set(authpages.Present(authpages.Principal{UID: "u1"}))

		last, ok := doc.LastNavigation()
		require.True(t, ok)
		assert.Equal(t, "/dashboard.html", last.URL)
	})

	t.Run("falls back to home", func(t *testing.T) {
		src := newSource()
		doc := surface.New("http://localhost/signup.html")

		newGuard(src, doc).RedirectIfAuthenticated("")
		src.Set(authpages.Present(authpages.Principal{UID: "u1"}))

		last, ok := doc.LastNavigation()
		require.True(t, ok)
		assert.Equal(t, authpages.DefaultHomeURL, last.URL)
	})

	t.Run("reacts to every sign in until stopped", func(t *testing.T) {
		src := newSource()
		doc := surface.New("http://localhost/login.html")

		stop := newGuard(src, doc).RedirectIfAuthenticated("/app")
		src.Set(authpages.Absent())
		assert.Empty(t, doc.Navigations())

		src.Set(authpages.Present(authpages.Principal{UID: "u1"}))
		src.Set(authpages.Absent())
		src.Set(authpages.Present(authpages.Principal{UID: "u1"}))
		assert.Len(t, doc.Navigations(), 2)

		stop()
		src.Set(authpages.Present(authpages.Principal{UID: "u1"}))
		assert.Len(t, doc.Navigations(), 2)
	})
}

func TestGuardConfigPaths(t *testing.T) {
	src := newSource()
	doc := surface.New("http://localhost/auth/sign-in")

	guard := authpages.NewGuard(src, doc,
		authpages.WithGuardLogger(authpages.NopLogger()),
		authpages.WithGuardConfig(authpages.GuardConfig{LoginPath: "/auth/sign-in"}),
	)
	guard.RequireAuth(nil, "/auth/sign-in")
	src.Set(authpages.Absent())

	last, ok := doc.LastNavigation()
	require.True(t, ok)
	assert.Equal(t, "/auth/sign-in", last.URL)
}

func TestEncodeURIComponent(t *testing.T) {
	tests := map[string]string{
		"/dashboard.html": "%2Fdashboard.html",
		"a b":             "a%20b",
		"q=1&b=2":         "q%3D1%26b%3D2",
		"it's(ok)!*~":     "it's(ok)!*~",
		"café":            "caf%C3%A9",
	}
	for in, want := range tests {
		assert.Equal(t, want, authpages.EncodeURIComponent(in), in)
	}

	assert.Equal(t, "login.html?redirect=%2Fx", authpages.WithRedirectParam("login.html", "/x"))
}
