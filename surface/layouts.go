package surface

import authpages "github.com/goliatone/go-auth-pages"

// Element ids for each page, as laid out by the page templates.
var (
	LoginIDs = []string{
		authpages.LoginFormID, authpages.EmailInputID, authpages.PasswordInputID,
		authpages.LoginButtonID, authpages.ErrorMessageID, authpages.SuccessMessageID,
		authpages.ForgotPasswordLinkID,
	}
	SignupIDs = []string{
		authpages.SignupFormID, authpages.DisplayNameInputID, authpages.EmailInputID,
		authpages.PasswordInputID, authpages.ConfirmPasswordInputID, authpages.SignupButtonID,
		authpages.ErrorMessageID, authpages.SuccessMessageID, authpages.LengthReqID,
		authpages.UppercaseReqID, authpages.LowercaseReqID, authpages.NumberReqID,
	}
	HomeIDs = []string{
		authpages.UserEmailID, authpages.UserDisplayNameID, authpages.UserIDID,
		authpages.LogoutButtonID,
	}
	LandingIDs = []string{
		authpages.LoadingStatusID, authpages.AuthenticatedStatusID,
		authpages.UnauthenticatedStatusID, authpages.UserEmailDisplayID,
		authpages.UserDisplayNameDisplayID, authpages.LogoutButtonID,
	}
)

// NewLogin returns a document with the login page elements in their initial
// state: messages hidden.
func NewLogin(rawURL string) *Document {
	d := New(rawURL, LoginIDs...)
	d.Get(authpages.ErrorMessageID).SetVisible(false)
	d.Get(authpages.SuccessMessageID).SetVisible(false)
	d.Get(authpages.LoginButtonID).SetText("Sign In")
	return d
}

// NewSignup returns a document with the signup page elements in their
// initial state.
func NewSignup(rawURL string) *Document {
	d := New(rawURL, SignupIDs...)
	d.Get(authpages.ErrorMessageID).SetVisible(false)
	d.Get(authpages.SuccessMessageID).SetVisible(false)
	d.Get(authpages.SignupButtonID).SetText("Create Account")
	for _, id := range []string{authpages.LengthReqID, authpages.UppercaseReqID, authpages.LowercaseReqID, authpages.NumberReqID} {
		d.Get(id).SetClassName(authpages.RequirementUnmet)
	}
	return d
}

// NewHome returns a document with the home page elements.
func NewHome(rawURL string) *Document {
	return New(rawURL, HomeIDs...)
}

// NewLanding returns a document with the landing page elements: the loading
// status shown and both auth sections hidden.
func NewLanding(rawURL string) *Document {
	d := New(rawURL, LandingIDs...)
	d.Get(authpages.AuthenticatedStatusID).AddClass(authpages.HiddenClass)
	d.Get(authpages.UnauthenticatedStatusID).AddClass(authpages.HiddenClass)
	return d
}
