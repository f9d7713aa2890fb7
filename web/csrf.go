package web

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

const (
	TextCodeCSRFMissing  = "pages_csrf_missing"
	TextCodeCSRFMismatch = "pages_csrf_mismatch"
	TextCodeCSRFExpired  = "pages_csrf_expired"
)

var (
	ErrCSRFMissing = errors.New("CSRF token missing", errors.CategoryBadInput).
			WithTextCode(TextCodeCSRFMissing).
			WithCode(errors.CodeBadRequest)

	ErrCSRFMismatch = errors.New("CSRF token mismatch", errors.CategoryAuthz).
			WithTextCode(TextCodeCSRFMismatch).
			WithCode(errors.CodeForbidden)

	ErrCSRFExpired = errors.New("CSRF token expired", errors.CategoryAuthz).
			WithTextCode(TextCodeCSRFExpired).
			WithCode(errors.CodeForbidden)
)

// DefaultCSRFTokenLength is the byte length of browser ids.
const DefaultCSRFTokenLength = 32

// CSRFFieldName is the form field carrying the token.
const CSRFFieldName = "_token"

// CSRFConfig protects page posts with stateless tokens: an HMAC over the
// issue time and a random browser id kept in its own cookie.
type CSRFConfig struct {
	Disabled bool
	// SecureKey signs tokens; at least 32 bytes. A random key is generated
	// when empty, which invalidates tokens on restart.
	SecureKey  []byte
	CookieName string
	Expiration time.Duration
}

func (c CSRFConfig) withDefaults() CSRFConfig {
	if c.CookieName == "" {
		c.CookieName = "pages_csrf"
	}
	if c.Expiration == 0 {
		c.Expiration = 2 * time.Hour
	}
	c.SecureKey = initializeSecureKey(c.SecureKey)
	return c
}

func initializeSecureKey(current []byte) []byte {
	if len(current) > 0 {
		if len(current) < 32 {
			panic(fmt.Errorf("csrf: secure key must be at least 32 bytes, got %d", len(current)))
		}
		return current
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		panic(fmt.Errorf("csrf: unable to initialize secure key: %w", err))
	}
	return key
}

// browserID returns the id stored in the CSRF cookie, issuing one when the
// browser has none.
func (h *Host) browserID(ctx router.Context) (string, error) {
	if id := ctx.Cookies(h.csrf.CookieName); id != "" {
		return id, nil
	}

	nonce := make([]byte, DefaultCSRFTokenLength)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	id := hex.EncodeToString(nonce)

	ctx.Cookie(&router.Cookie{
		Name:     h.csrf.CookieName,
		Value:    id,
		HTTPOnly: true,
		Secure:   h.config.CookieSecure,
		SameSite: "Lax",
	})
	return id, nil
}

// CSRFToken issues a token for browserID.
func (h *Host) CSRFToken(browserID string) string {
	return h.signCSRF(time.Now().UTC().Unix(), browserID)
}

func (h *Host) signCSRF(timestamp int64, browserID string) string {
	payload := strconv.FormatInt(timestamp, 10) + ":" + browserID

	mac := hmac.New(sha256.New, h.csrf.SecureKey)
	mac.Write([]byte(payload))

	token := payload + ":" + hex.EncodeToString(mac.Sum(nil))
	return base64.RawURLEncoding.EncodeToString([]byte(token))
}

func (h *Host) verifyCSRF(token, browserID string) error {
	if token == "" {
		return ErrCSRFMissing.Clone()
	}

	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return ErrCSRFMismatch.Clone()
	}

	parts := strings.Split(string(decoded), ":")
	if len(parts) != 3 {
		return ErrCSRFMismatch.Clone()
	}

	timestamp, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return ErrCSRFMismatch.Clone()
	}

	signature, err := hex.DecodeString(parts[2])
	if err != nil {
		return ErrCSRFMismatch.Clone()
	}

	mac := hmac.New(sha256.New, h.csrf.SecureKey)
	mac.Write([]byte(parts[0] + ":" + parts[1]))
	if !hmac.Equal(signature, mac.Sum(nil)) {
		return ErrCSRFMismatch.Clone()
	}

	if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(browserID)) != 1 {
		return ErrCSRFMismatch.Clone()
	}

	if time.Now().UTC().After(time.Unix(timestamp, 0).Add(h.csrf.Expiration)) {
		return ErrCSRFExpired.Clone()
	}

	return nil
}
