package identitytoolkit

import (
	"strings"

	authpages "github.com/goliatone/go-auth-pages"
	"github.com/goliatone/go-errors"
)

const (
	TextCodeTokenExpired     = "identitytoolkit_token_expired"
	TextCodeTokenMalformed   = "identitytoolkit_token_malformed"
	TextCodeMissingAPIKey    = "identitytoolkit_missing_api_key"
	TextCodeMissingProjectID = "identitytoolkit_missing_project_id"
	TextCodeBadResponse      = "identitytoolkit_bad_response"
)

// ErrMissingAPIKey is returned by New when Config.APIKey is empty.
var ErrMissingAPIKey = errors.New("identitytoolkit: api key is required", errors.CategoryBadInput).
	WithTextCode(TextCodeMissingAPIKey).
	WithCode(errors.CodeBadRequest)

// ErrMissingProjectID is returned when Config.ProjectID is empty.
var ErrMissingProjectID = errors.New("identitytoolkit: project id is required", errors.CategoryBadInput).
	WithTextCode(TextCodeMissingProjectID).
	WithCode(errors.CodeBadRequest)

// ErrTokenExpired is returned for ID tokens past their expiry.
var ErrTokenExpired = errors.New("id token expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for ID tokens that fail verification.
var ErrTokenMalformed = errors.New("id token malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// apiCodes maps REST error messages to provider error kinds.
var apiCodes = map[string]authpages.ProviderErrorKind{
	"EMAIL_NOT_FOUND":             authpages.KindUserNotFound,
	"INVALID_PASSWORD":            authpages.KindWrongPassword,
	"INVALID_EMAIL":               authpages.KindInvalidEmail,
	"MISSING_EMAIL":               authpages.KindInvalidEmail,
	"USER_DISABLED":               authpages.KindUserDisabled,
	"TOO_MANY_ATTEMPTS_TRY_LATER": authpages.KindTooManyRequests,
	"INVALID_LOGIN_CREDENTIALS":   authpages.KindInvalidCredential,
	"INVALID_ID_TOKEN":            authpages.KindInvalidCredential,
	"EMAIL_EXISTS":                authpages.KindEmailAlreadyInUse,
	"OPERATION_NOT_ALLOWED":       authpages.KindOperationNotAllowed,
	"PASSWORD_LOGIN_DISABLED":     authpages.KindOperationNotAllowed,
	"WEAK_PASSWORD":               authpages.KindWeakPassword,
}

type apiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// apiError converts a REST error message such as
// "WEAK_PASSWORD : Password should be at least 6 characters" into a
// provider error.
func apiError(op string, status int, message string) *errors.Error {
	code, detail, _ := strings.Cut(message, ":")
	code = strings.TrimSpace(code)
	detail = strings.TrimSpace(detail)

	kind := apiCodes[code]
	text := detail
	if text == "" {
		text = code
	}
	if text == "" {
		text = "identity toolkit request failed"
	}

	return authpages.NewProviderError(kind, text).WithMetadata(map[string]any{
		"provider":  "identitytoolkit",
		"operation": op,
		"status":    status,
		"api_code":  code,
	})
}

func networkError(op string, err error) *errors.Error {
	perr := authpages.NewProviderError(authpages.KindNetworkRequestFailed, err.Error())
	perr.Source = err
	return perr.WithMetadata(map[string]any{
		"provider":  "identitytoolkit",
		"operation": op,
	})
}

func responseError(op string, err error) *errors.Error {
	return errors.Wrap(err, errors.CategoryExternal, "Unexpected response from the identity service").
		WithTextCode(TextCodeBadResponse).
		WithCode(errors.CodeInternal).
		WithMetadata(map[string]any{
			"provider":  "identitytoolkit",
			"operation": op,
		})
}
