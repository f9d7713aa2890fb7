package authpages

import "strings"

// Element ids used by the login page.
const (
	LoginFormID          = "loginForm"
	EmailInputID         = "email"
	PasswordInputID      = "password"
	LoginButtonID        = "loginBtn"
	ErrorMessageID       = "errorMessage"
	SuccessMessageID     = "successMessage"
	ForgotPasswordLinkID = "forgotPasswordLink"
)

// LoginPage signs viewers in and sends password reset emails.
type LoginPage struct {
	Page
	form     Element
	email    Element
	password Element
	button   Element
	forgot   Element
	msg      messages
	stop     func()
}

// NewLoginPage builds the login controller. Call Mount to wire it.
func NewLoginPage(client IdentityClient, surface Surface, opts ...PageOption) *LoginPage {
	return &LoginPage{Page: newPage(client, surface, opts...)}
}

// Mount binds the page to its elements, installs the signed-in redirect and
// registers the form handlers.
func (l *LoginPage) Mount() error {
	els, err := l.elements(
		LoginFormID, EmailInputID, PasswordInputID, LoginButtonID,
		ErrorMessageID, SuccessMessageID, ForgotPasswordLinkID,
	)
	if err != nil {
		return err
	}

	l.form = els[LoginFormID]
	l.email = els[EmailInputID]
	l.password = els[PasswordInputID]
	l.button = els[LoginButtonID]
	l.forgot = els[ForgotPasswordLinkID]
	l.msg = messages{errorEl: els[ErrorMessageID], successEl: els[SuccessMessageID]}

	l.stop = l.Guard.RedirectIfAuthenticated(l.HomeURL)

	l.form.On(EventSubmit, func(Event) { l.Submit() })
	l.forgot.On(EventClick, func(Event) { l.ForgotPassword() })
	submitOnEnter(l.Surface, l.form)

	l.Logger.Debug("login page loaded and ready")
	return nil
}

// Unmount releases the auth state subscription.
func (l *LoginPage) Unmount() {
	if l.stop != nil {
		l.stop()
	}
}

// Submit runs the sign in flow with the current form values.
func (l *LoginPage) Submit() {
	email := strings.TrimSpace(l.email.Value())
	password := l.password.Value()

	if email == "" || password == "" {
		l.msg.showError("Please fill in all fields")
		return
	}

	if !IsValidEmail(email) {
		l.msg.showError("Please enter a valid email address")
		return
	}

	l.setLoading(true)
	l.msg.hide()
	defer l.setLoading(false)

	principal, err := l.Client.SignIn(l.Context, email, password)
	if err != nil {
		l.Logger.Error("login error", "error", err)
		l.msg.showError(ErrorMessage(err, "Login failed. Please try again"))
		return
	}

	l.Logger.Info("user signed in successfully", "email", principal.Email)
	l.msg.showSuccess("Login successful! Redirecting...")
	l.navigateLater(LoginRedirectDelay, l.HomeURL)
}

// ForgotPassword sends a reset email to the address in the email field.
func (l *LoginPage) ForgotPassword() {
	email := strings.TrimSpace(l.email.Value())

	if email == "" {
		l.msg.showError("Please enter your email address first")
		return
	}

	if !IsValidEmail(email) {
		l.msg.showError("Please enter a valid email address")
		return
	}

	if err := l.Client.SendPasswordReset(l.Context, email); err != nil {
		l.Logger.Error("password reset error", "error", err)
		l.msg.showError(ErrorMessage(err, "Login failed. Please try again"))
		return
	}

	l.msg.showSuccess("Password reset email sent! Check your inbox.")
}

func (l *LoginPage) setLoading(loading bool) {
	l.button.SetDisabled(loading)
	if loading {
		l.button.SetText("Signing in...")
	} else {
		l.button.SetText("Sign In")
	}
	l.email.SetDisabled(loading)
	l.password.SetDisabled(loading)
}
