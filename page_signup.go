package authpages

import "strings"

// Element ids used by the signup page. Email, password and message ids are
// shared with the login page.
const (
	SignupFormID           = "signupForm"
	DisplayNameInputID     = "displayName"
	ConfirmPasswordInputID = "confirmPassword"
	SignupButtonID         = "signupBtn"
	LengthReqID            = "length-req"
	UppercaseReqID         = "uppercase-req"
	LowercaseReqID         = "lowercase-req"
	NumberReqID            = "number-req"
)

// Requirement indicator classes.
const (
	RequirementMet   = "requirement-met"
	RequirementUnmet = "requirement-unmet"
)

// SignupPage creates accounts.
type SignupPage struct {
	Page
	form        Element
	displayName Element
	email       Element
	password    Element
	confirm     Element
	button      Element
	reqs        [4]Element
	msg         messages
	stop        func()
}

// NewSignupPage builds the signup controller. Call Mount to wire it.
func NewSignupPage(client IdentityClient, surface Surface, opts ...PageOption) *SignupPage {
	return &SignupPage{Page: newPage(client, surface, opts...)}
}

// Mount binds the page to its elements, installs the signed-in redirect and
// registers the form handlers.
func (s *SignupPage) Mount() error {
	els, err := s.elements(
		SignupFormID, DisplayNameInputID, EmailInputID, PasswordInputID,
		ConfirmPasswordInputID, SignupButtonID, ErrorMessageID, SuccessMessageID,
		LengthReqID, UppercaseReqID, LowercaseReqID, NumberReqID,
	)
	if err != nil {
		return err
	}

	s.form = els[SignupFormID]
	s.displayName = els[DisplayNameInputID]
	s.email = els[EmailInputID]
	s.password = els[PasswordInputID]
	s.confirm = els[ConfirmPasswordInputID]
	s.button = els[SignupButtonID]
	s.reqs = [4]Element{els[LengthReqID], els[UppercaseReqID], els[LowercaseReqID], els[NumberReqID]}
	s.msg = messages{errorEl: els[ErrorMessageID], successEl: els[SuccessMessageID]}

	s.stop = s.Guard.RedirectIfAuthenticated(s.HomeURL)

	s.password.On(EventInput, func(Event) { s.ShowRequirements() })
	s.form.On(EventSubmit, func(Event) { s.Submit() })
	submitOnEnter(s.Surface, s.form)

	s.Logger.Debug("signup page loaded and ready")
	return nil
}

// Unmount releases the auth state subscription.
func (s *SignupPage) Unmount() {
	if s.stop != nil {
		s.stop()
	}
}

// ShowRequirements marks each password requirement as met or unmet.
func (s *SignupPage) ShowRequirements() {
	reqs := CheckPassword(s.password.Value())
	for i, met := range []bool{reqs.Length, reqs.Uppercase, reqs.Lowercase, reqs.Number} {
		if met {
			s.reqs[i].SetClassName(RequirementMet)
		} else {
			s.reqs[i].SetClassName(RequirementUnmet)
		}
	}
}

// Submit validates the form, creates the account and sets its display name.
func (s *SignupPage) Submit() {
	displayName := strings.TrimSpace(s.displayName.Value())
	email := strings.TrimSpace(s.email.Value())
	password := s.password.Value()
	confirm := s.confirm.Value()

	if displayName == "" || email == "" || password == "" || confirm == "" {
		s.msg.showError("Please fill in all fields")
		return
	}

	if !IsValidEmail(email) {
		s.msg.showError("Please enter a valid email address")
		return
	}

	if !IsValidPassword(password) {
		s.msg.showError("Password does not meet requirements")
		return
	}

	if password != confirm {
		s.msg.showError("Passwords do not match")
		return
	}

	s.setLoading(true)
	s.msg.hide()
	defer s.setLoading(false)

	principal, err := s.Client.SignUp(s.Context, email, password)
	if err != nil {
		s.Logger.Error("signup error", "error", err)
		s.msg.showError(ErrorMessage(err, "Account creation failed. Please try again"))
		return
	}

	if err := s.Client.UpdateProfile(s.Context, principal, ProfileUpdate{DisplayName: displayName}); err != nil {
		s.Logger.Error("signup profile error", "error", err, "uid", principal.UID)
		s.msg.showError(ErrorMessage(err, "Account creation failed. Please try again"))
		return
	}

	s.Logger.Info("user created successfully", "email", principal.Email)
	s.msg.showSuccess("Account created successfully! Redirecting...")
	s.navigateLater(SignupRedirectDelay, s.HomeURL)
}

func (s *SignupPage) setLoading(loading bool) {
	s.button.SetDisabled(loading)
	if loading {
		s.button.SetText("Creating Account...")
	} else {
		s.button.SetText("Create Account")
	}
	s.displayName.SetDisabled(loading)
	s.email.SetDisabled(loading)
	s.password.SetDisabled(loading)
	s.confirm.SetDisabled(loading)
}
