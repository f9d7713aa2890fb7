package authpages_test

import (
	"context"
	"testing"

	authpages "github.com/goliatone/go-auth-pages"
	"github.com/goliatone/go-auth-pages/provider/memory"
	"github.com/goliatone/go-auth-pages/surface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mountSignup(t *testing.T, client authpages.IdentityClient) *surface.Document {
	t.Helper()
	doc := surface.NewSignup("http://localhost/signup.html")
	page := authpages.NewSignupPage(client, doc, quiet(), authpages.WithScheduler(doc))
	require.NoError(t, page.Mount())
	t.Cleanup(page.Unmount)
	return doc
}

func signupForm(name, email, password, confirm string) map[string]string {
	return map[string]string{
		authpages.DisplayNameInputID:     name,
		authpages.EmailInputID:           email,
		authpages.PasswordInputID:        password,
		authpages.ConfirmPasswordInputID: confirm,
	}
}

func TestSignupPageRequirements(t *testing.T) {
	doc := mountSignup(t, newStore().Session(context.Background(), ""))
	password := doc.Get(authpages.PasswordInputID)

	password.SetValue("abc")
	password.Input()
	assert.True(t, doc.Get(authpages.LengthReqID).HasClass(authpages.RequirementUnmet))
	assert.True(t, doc.Get(authpages.UppercaseReqID).HasClass(authpages.RequirementUnmet))
	assert.True(t, doc.Get(authpages.LowercaseReqID).HasClass(authpages.RequirementMet))
	assert.True(t, doc.Get(authpages.NumberReqID).HasClass(authpages.RequirementUnmet))

	password.SetValue("Abcdefg1")
	password.Input()
	for _, id := range []string{authpages.LengthReqID, authpages.UppercaseReqID, authpages.LowercaseReqID, authpages.NumberReqID} {
		assert.Equal(t, authpages.RequirementMet, doc.Get(id).ClassName(), id)
	}
}

func TestSignupPageValidation(t *testing.T) {
	tests := []struct {
		name string
		form map[string]string
		want string
	}{
		{"missing name", signupForm("", "ada@example.com", "Abcdefg1", "Abcdefg1"), "Please fill in all fields"},
		{"missing confirm", signupForm("Ada", "ada@example.com", "Abcdefg1", ""), "Please fill in all fields"},
		{"invalid email", signupForm("Ada", "a b@c.com", "Abcdefg1", "Abcdefg1"), "Please enter a valid email address"},
		{"weak password", signupForm("Ada", "ada@example.com", "abcdefgh", "abcdefgh"), "Password does not meet requirements"},
		{"mismatch", signupForm("Ada", "ada@example.com", "Abcdefg1", "Abcdefg2"), "Passwords do not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore()
			doc := mountSignup(t, store.Session(context.Background(), ""))

			doc.Fill(tt.form)
			doc.Get(authpages.SignupFormID).Submit()

			assert.Equal(t, tt.want, doc.Get(authpages.ErrorMessageID).Text())
			assert.True(t, doc.Get(authpages.ErrorMessageID).Visible())
			assert.Empty(t, doc.Navigations())

			_, err := store.Session(context.Background(), "").SignIn(context.Background(), "ada@example.com", "Abcdefg1")
			assert.Equal(t, authpages.KindUserNotFound, authpages.ProviderErrorKindOf(err))
		})
	}
}

func TestSignupPageCreatesAccount(t *testing.T) {
	store := newStore()
	sess := store.Session(context.Background(), "")
	doc := mountSignup(t, sess)

	doc.Fill(signupForm(" Ada ", "ada@example.com", "Abcdefg1", "Abcdefg1"))
	doc.Get(authpages.SignupFormID).Submit()

	success := doc.Get(authpages.SuccessMessageID)
	assert.True(t, success.Visible())
	assert.Equal(t, "Account created successfully! Redirecting...", success.Text())
	assert.Equal(t, "Create Account", doc.Get(authpages.SignupButtonID).Text())
	assert.False(t, doc.Get(authpages.SignupButtonID).Disabled())

	doc.Flush()
	assert.Equal(t, []surface.Navigation{
		{URL: "home.html"},
		{URL: "home.html", Delay: authpages.SignupRedirectDelay},
	}, doc.Navigations())

	p, err := authpages.CurrentPrincipal(context.Background(), store.Session(context.Background(), sess.Token()))
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Ada", p.DisplayName)
	assert.Equal(t, "ada@example.com", p.Email)
}

func TestSignupPageProviderErrors(t *testing.T) {
	t.Run("email in use", func(t *testing.T) {
		store := newStore()
		seedAccount(t, store, "ada@example.com", "Abcdefg1")
		doc := mountSignup(t, store.Session(context.Background(), ""))

		doc.Fill(signupForm("Ada", "ada@example.com", "Abcdefg1", "Abcdefg1"))
		doc.Get(authpages.SignupFormID).Submit()

		assert.Equal(t, "An account with this email already exists", doc.Get(authpages.ErrorMessageID).Text())
		assert.Equal(t, 0, doc.Pending())
	})

	t.Run("profile update fails", func(t *testing.T) {
		store := newStore()
		store.Fail = failOn("updateProfile", authpages.KindNetworkRequestFailed)
		doc := mountSignup(t, store.Session(context.Background(), ""))

		doc.Fill(signupForm("Ada", "ada@example.com", "Abcdefg1", "Abcdefg1"))
		doc.Get(authpages.SignupFormID).Submit()

		assert.Equal(t, "Network error. Please check your connection", doc.Get(authpages.ErrorMessageID).Text())
		assert.False(t, doc.Get(authpages.SuccessMessageID).Visible())
		assert.Equal(t, 0, doc.Pending())
	})
}

func failOn(op string, kind authpages.ProviderErrorKind) func(string) error {
	return func(got string) error {
		if got == op {
			return authpages.NewProviderError(kind, op+" failed")
		}
		return nil
	}
}

var _ authpages.IdentityClient = (*memory.Session)(nil)

func TestSignupPageEnterSubmits(t *testing.T) {
	store := newStore()
	doc := mountSignup(t, store.Session(context.Background(), ""))
	errMsg := doc.Get(authpages.ErrorMessageID)

	doc.KeyDown("Enter", "button")
	assert.False(t, errMsg.Visible())

	doc.KeyDown("Enter", "input")
	assert.True(t, errMsg.Visible())
	assert.Equal(t, "Please fill in all fields", errMsg.Text())

	doc.Fill(signupForm("Ada", "ada@example.com", "Abcdefg1", "Abcdefg1"))
	doc.KeyDown("Enter", "input")
	assert.Equal(t, "Account created successfully! Redirecting...", doc.Get(authpages.SuccessMessageID).Text())

	_, err := store.Session(context.Background(), "").SignIn(context.Background(), "ada@example.com", "Abcdefg1")
	assert.NoError(t, err)
}
