package authpages

import "sync/atomic"

// Element ids used by the public landing page.
const (
	LoadingStatusID          = "loadingStatus"
	AuthenticatedStatusID    = "authenticatedStatus"
	UnauthenticatedStatusID  = "unauthenticatedStatus"
	UserEmailDisplayID       = "userEmailDisplay"
	UserDisplayNameDisplayID = "userDisplayNameDisplay"
	HiddenClass              = "hidden"
)

// LandingPage is public: it never redirects, it only shows the section that
// matches the current auth state.
type LandingPage struct {
	Page
	loading         Element
	authenticated   Element
	unauthenticated Element
	email           Element
	displayName     Element
	logoutBtn       Element
	logoutAttached  atomic.Bool
	stop            func()
}

// NewLandingPage builds the landing controller. Call Mount to wire it.
func NewLandingPage(client IdentityClient, surface Surface, opts ...PageOption) *LandingPage {
	return &LandingPage{Page: newPage(client, surface, opts...)}
}

// Mount subscribes to the auth state for the lifetime of the page.
func (l *LandingPage) Mount() error {
	els, err := l.elements(
		LoadingStatusID, AuthenticatedStatusID, UnauthenticatedStatusID,
		UserEmailDisplayID, UserDisplayNameDisplayID, LogoutButtonID,
	)
	if err != nil {
		return err
	}

	l.loading = els[LoadingStatusID]
	l.authenticated = els[AuthenticatedStatusID]
	l.unauthenticated = els[UnauthenticatedStatusID]
	l.email = els[UserEmailDisplayID]
	l.displayName = els[UserDisplayNameDisplayID]
	l.logoutBtn = els[LogoutButtonID]

	l.stop = l.Client.SubscribeAuthState(l.render)
	return nil
}

// Unmount releases the auth state subscription.
func (l *LandingPage) Unmount() {
	if l.stop != nil {
		l.stop()
	}
}

func (l *LandingPage) render(state AuthState) {
	l.loading.SetVisible(false)

	if !state.IsPresent() {
		l.Logger.Debug("landing page: user not authenticated")
		l.authenticated.AddClass(HiddenClass)
		l.unauthenticated.RemoveClass(HiddenClass)
		return
	}

	p := state.Principal
	l.Logger.Debug("landing page: user authenticated", "email", p.Email)

	l.authenticated.RemoveClass(HiddenClass)
	l.unauthenticated.AddClass(HiddenClass)

	l.email.SetText(orDefault(p.Email, "Not provided"))
	l.displayName.SetText(orDefault(p.DisplayName, "Not set"))

	if l.logoutAttached.CompareAndSwap(false, true) {
		l.logoutBtn.On(EventClick, func(Event) { l.logout() })
	}
}
