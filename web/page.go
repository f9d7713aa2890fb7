package web

import (
	authpages "github.com/goliatone/go-auth-pages"
	"github.com/goliatone/go-auth-pages/surface"
)

// PageKind identifies one of the pages.
type PageKind int

const (
	LandingPage PageKind = iota
	LoginPage
	SignupPage
	HomePage
)

func (k PageKind) String() string {
	switch k {
	case LandingPage:
		return "landing"
	case LoginPage:
		return "login"
	case SignupPage:
		return "signup"
	case HomePage:
		return "home"
	default:
		return "unknown"
	}
}

// actions lists the element ids a page accepts posts for and the event each
// one raises.
func (k PageKind) actions() map[string]string {
	switch k {
	case LoginPage:
		return map[string]string{
			authpages.LoginFormID:          authpages.EventSubmit,
			authpages.ForgotPasswordLinkID: authpages.EventClick,
		}
	case SignupPage:
		return map[string]string{
			authpages.SignupFormID:    authpages.EventSubmit,
			authpages.PasswordInputID: authpages.EventInput,
		}
	case HomePage, LandingPage:
		return map[string]string{
			authpages.LogoutButtonID: authpages.EventClick,
		}
	default:
		return nil
	}
}

func (k PageKind) document(location string) *surface.Document {
	switch k {
	case LoginPage:
		return surface.NewLogin(location)
	case SignupPage:
		return surface.NewSignup(location)
	case HomePage:
		return surface.NewHome(location)
	default:
		return surface.NewLanding(location)
	}
}

type controller interface {
	Mount() error
	Unmount()
}

func (k PageKind) controller(client authpages.IdentityClient, doc *surface.Document, opts ...authpages.PageOption) controller {
	switch k {
	case LoginPage:
		return authpages.NewLoginPage(client, doc, opts...)
	case SignupPage:
		return authpages.NewSignupPage(client, doc, opts...)
	case HomePage:
		return authpages.NewHomePage(client, doc, opts...)
	default:
		return authpages.NewLandingPage(client, doc, opts...)
	}
}

func (c Config) view(kind PageKind) string {
	switch kind {
	case LoginPage:
		return c.Views.Login
	case SignupPage:
		return c.Views.Signup
	case HomePage:
		return c.Views.Home
	default:
		return c.Views.Landing
	}
}
