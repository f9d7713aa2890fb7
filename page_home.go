package authpages

// Element ids used by the home page.
const (
	UserEmailID       = "userEmail"
	UserDisplayNameID = "userDisplayName"
	UserIDID          = "userId"
	LogoutButtonID    = "logoutBtn"
)

// HomePage is the protected page. It renders nothing about the viewer until
// the guard has seen a principal.
type HomePage struct {
	Page
	email       Element
	displayName Element
	uid         Element
	logoutBtn   Element
	stop        func()
	// Principal is set once the guard let the viewer in.
	Principal *Principal
}

// NewHomePage builds the home controller. Call Mount to wire it.
func NewHomePage(client IdentityClient, surface Surface, opts ...PageOption) *HomePage {
	return &HomePage{Page: newPage(client, surface, opts...)}
}

// Mount installs the auth guard; the page is initialized when it lets the
// viewer through.
func (h *HomePage) Mount() error {
	els, err := h.elements(UserEmailID, UserDisplayNameID, UserIDID, LogoutButtonID)
	if err != nil {
		return err
	}

	h.email = els[UserEmailID]
	h.displayName = els[UserDisplayNameID]
	h.uid = els[UserIDID]
	h.logoutBtn = els[LogoutButtonID]

	h.stop = h.Guard.RequireAuth(h.initialize, h.LoginURL)
	return nil
}

// Unmount releases the guard subscription if it is still held.
func (h *HomePage) Unmount() {
	if h.stop != nil {
		h.stop()
	}
}

func (h *HomePage) initialize(p Principal) {
	h.Logger.Info("initializing protected home page", "email", p.Email)
	h.Principal = &p

	h.email.SetText(orDefault(p.Email, "Not provided"))
	h.displayName.SetText(orDefault(p.DisplayName, "Not set"))
	h.uid.SetText(orDefault(p.UID, "Unknown"))

	h.logoutBtn.On(EventClick, func(Event) { h.logout() })
}
