package authpages

import (
	"net/http"
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeMissingSource  = "pages_missing_source"
	TextCodeMissingElement = "pages_missing_element"
	TextCodeMissingClient  = "pages_missing_client"
)

// ErrMissingSource is returned when no state source was supplied.
var ErrMissingSource = errors.New("auth state source is required", errors.CategoryInternal).
	WithTextCode(TextCodeMissingSource).
	WithCode(errors.CodeInternal)

// ErrMissingClient is returned when a page is mounted without an identity client.
var ErrMissingClient = errors.New("identity client is required", errors.CategoryInternal).
	WithTextCode(TextCodeMissingClient).
	WithCode(errors.CodeInternal)

// ErrMissingElement is returned when a page is mounted on a surface that lacks
// one of its elements.
var ErrMissingElement = errors.New("page element not found", errors.CategoryInternal).
	WithTextCode(TextCodeMissingElement).
	WithCode(errors.CodeInternal)

// ProviderErrorKind is the closed set of provider failure codes the pages
// understand.
type ProviderErrorKind int

const (
	KindUnknown ProviderErrorKind = iota
	KindUserNotFound
	KindWrongPassword
	KindInvalidEmail
	KindUserDisabled
	KindTooManyRequests
	KindNetworkRequestFailed
	KindInvalidCredential
	KindEmailAlreadyInUse
	KindOperationNotAllowed
	KindWeakPassword
)

var providerCodes = map[ProviderErrorKind]string{
	KindUserNotFound:         "auth/user-not-found",
	KindWrongPassword:        "auth/wrong-password",
	KindInvalidEmail:         "auth/invalid-email",
	KindUserDisabled:         "auth/user-disabled",
	KindTooManyRequests:      "auth/too-many-requests",
	KindNetworkRequestFailed: "auth/network-request-failed",
	KindInvalidCredential:    "auth/invalid-credential",
	KindEmailAlreadyInUse:    "auth/email-already-in-use",
	KindOperationNotAllowed:  "auth/operation-not-allowed",
	KindWeakPassword:         "auth/weak-password",
}

// Code returns the provider code, e.g. "auth/user-not-found". Unknown kinds
// return an empty string.
func (k ProviderErrorKind) Code() string {
	return providerCodes[k]
}

func (k ProviderErrorKind) String() string {
	if code := k.Code(); code != "" {
		return code
	}
	return "unknown"
}

// ParseProviderErrorKind maps a provider code to its kind. Both the prefixed
// ("auth/wrong-password") and bare ("wrong-password") forms are accepted.
func ParseProviderErrorKind(code string) ProviderErrorKind {
	code = strings.TrimSpace(code)
	if code == "" {
		return KindUnknown
	}
	if !strings.HasPrefix(code, "auth/") {
		code = "auth/" + code
	}
	for kind, c := range providerCodes {
		if c == code {
			return kind
		}
	}
	return KindUnknown
}

// NewProviderError builds the rich error a provider returns for kind. The
// provider code travels in TextCode.
func NewProviderError(kind ProviderErrorKind, message string) *errors.Error {
	category, status := providerErrorClass(kind)
	if message == "" {
		message = "identity provider request failed"
	}
	textCode := kind.Code()
	if textCode == "" {
		textCode = "auth/unknown"
	}
	return errors.New(message, category).
		WithTextCode(textCode).
		WithCode(status)
}

func providerErrorClass(kind ProviderErrorKind) (errors.Category, int) {
	switch kind {
	case KindUserNotFound:
		return errors.CategoryNotFound, errors.CodeNotFound
	case KindWrongPassword, KindInvalidCredential:
		return errors.CategoryAuth, errors.CodeUnauthorized
	case KindUserDisabled, KindOperationNotAllowed:
		return errors.CategoryAuthz, errors.CodeForbidden
	case KindInvalidEmail, KindWeakPassword:
		return errors.CategoryValidation, errors.CodeBadRequest
	case KindEmailAlreadyInUse:
		return errors.CategoryConflict, errors.CodeConflict
	case KindTooManyRequests:
		return errors.CategoryRateLimit, errors.CodeTooManyRequests
	case KindNetworkRequestFailed:
		return errors.CategoryOperation, http.StatusServiceUnavailable
	default:
		return errors.CategoryInternal, errors.CodeInternal
	}
}

// ProviderErrorKindOf extracts the kind from a provider error. Anything that
// is not a rich error with a known provider code is KindUnknown.
func ProviderErrorKindOf(err error) ProviderErrorKind {
	if err == nil {
		return KindUnknown
	}
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return KindUnknown
	}
	return ParseProviderErrorKind(richErr.TextCode)
}

// ErrorMessage turns a provider failure into the text shown to the viewer.
// Unrecognized failures show the provider message, or fallback when there is
// none.
func ErrorMessage(err error, fallback string) string {
	switch ProviderErrorKindOf(err) {
	case KindUserNotFound:
		return "No account found with this email address"
	case KindWrongPassword:
		return "Incorrect password"
	case KindInvalidEmail:
		return "Invalid email address"
	case KindUserDisabled:
		return "This account has been disabled"
	case KindTooManyRequests:
		return "Too many failed attempts. Please try again later"
	case KindNetworkRequestFailed:
		return "Network error. Please check your connection"
	case KindInvalidCredential:
		return "Invalid email or password"
	case KindEmailAlreadyInUse:
		return "An account with this email already exists"
	case KindOperationNotAllowed:
		return "Email/password accounts are not enabled"
	case KindWeakPassword:
		return "Password is too weak"
	case KindUnknown:
		// new provider codes land here until they get their own message
		if msg := providerMessage(err); msg != "" {
			return msg
		}
		return fallback
	}
	return fallback
}

func providerMessage(err error) string {
	if err == nil {
		return ""
	}
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr.Message
	}
	return err.Error()
}
