package web

import (
	validation "github.com/go-ozzo/ozzo-validation"
	authpages "github.com/goliatone/go-auth-pages"
)

// PageAction is a form post replayed on the page. Action names the element
// that raised the event; the other fields are copied into the inputs of the
// same id.
type PageAction struct {
	Action          string `form:"action" json:"action"`
	DisplayName     string `form:"displayName" json:"displayName"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"-"`
	ConfirmPassword string `form:"confirmPassword" json:"-"`
	Token           string `form:"_token" json:"-"`
}

// Validate checks Action against the events the page listens to.
func (a *PageAction) Validate(kind PageKind) error {
	events := kind.actions()
	allowed := make([]interface{}, 0, len(events))
	for id := range events {
		allowed = append(allowed, id)
	}

	return validation.ValidateStruct(a,
		validation.Field(
			&a.Action,
			validation.Required,
			validation.In(allowed...),
		),
	)
}

// values maps the payload onto element ids.
func (a *PageAction) values() map[string]string {
	return map[string]string{
		authpages.DisplayNameInputID:     a.DisplayName,
		authpages.EmailInputID:           a.Email,
		authpages.PasswordInputID:        a.Password,
		authpages.ConfirmPasswordInputID: a.ConfirmPassword,
	}
}
