// Package checksum reproduces the request signatures expected by the campus backend.
//
// Every signature is HMAC-SHA1 over a concatenated message that ends with the current
// timestamp slot (local time truncated to the hour), base64 encoded and then escaped with
// the backend's own rules. Two calls inside the same hour with the same inputs produce the
// same signature.
package checksum

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMissingSecret is returned when a signer is built without all four secret values.
var ErrMissingSecret = errors.New("missing signing secret")

// Variant selects which of the three signing constructions is used.
type Variant string

const (
	VariantK Variant = "k"
	VariantY Variant = "y"
	VariantA Variant = "a"
)

// ParseVariant accepts k, y or a in any case.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantK, VariantY, VariantA:
		return v, nil
	default:
		return "", fmt.Errorf("unknown checksum variant %q (valid: k, y, a)", s)
	}
}

// Secrets holds the values baked into the mobile app.
type Secrets struct {
	MainKey    string // SECRET_KEY_MAIN, HMAC key for variants K and A
	AltKey     string // SECRET_KEY_ALT, HMAC key for variant Y
	LongKey    string // SECRET_KEY_LONG, message prefix for variant A
	SharedCode string // SUPER_SECRET_CODE, message infix for variants K and Y
}

// Missing returns the environment names of every empty secret.
func (s Secrets) Missing() []string {
	var missing []string
	if s.MainKey == "" {
		missing = append(missing, "SECRET_KEY_MAIN")
	}
	if s.AltKey == "" {
		missing = append(missing, "SECRET_KEY_ALT")
	}
	if s.LongKey == "" {
		missing = append(missing, "SECRET_KEY_LONG")
	}
	if s.SharedCode == "" {
		missing = append(missing, "SUPER_SECRET_CODE")
	}
	return missing
}

// Validate reports every missing secret at once.
func (s Secrets) Validate() error {
	if missing := s.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingSecret, strings.Join(missing, ", "))
	}
	return nil
}

// String never prints secret material.
func (s Secrets) String() string {
	return fmt.Sprintf("Secrets{main:%s alt:%s long:%s code:%s}",
		redact(s.MainKey), redact(s.AltKey), redact(s.LongKey), redact(s.SharedCode))
}

func redact(v string) string {
	if v == "" {
		return "<unset>"
	}
	return fmt.Sprintf("<%d chars>", len(v))
}

// Clock supplies the wall-clock time used for the timestamp slot.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// TimestampSlot formats t as DD/MM/YYYY HH:00 in t's own location.
func TimestampSlot(t time.Time) string {
	return t.Format("02/01/2006 15") + ":00"
}

// URLEncode applies the backend's escaping: every '=' becomes "%3d" and every space becomes '+'.
// Base64 output never contains spaces; the rule is kept so the output matches the app byte for byte.
func URLEncode(checksum string) string {
	return strings.ReplaceAll(strings.ReplaceAll(checksum, "=", "%3d"), " ", "+")
}

func hmacBase64(key, message string) string {
	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(message))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// SignK signs identifier + shared code + campus code + slot with the main key.
// An empty identifier is allowed for endpoints that only sign the campus code.
func SignK(secrets Secrets, identifier, campusCode, slot string) string {
	message := identifier + secrets.SharedCode + campusCode + slot
	return URLEncode(hmacBase64(secrets.MainKey, message))
}

// SignY signs username + shared code + campus code + slot with the alternate key.
func SignY(secrets Secrets, username, campusCode, slot string) string {
	message := username + secrets.SharedCode + campusCode + slot
	return URLEncode(hmacBase64(secrets.AltKey, message))
}

// SignA signs long key + parameter + slot with the main key.
func SignA(secrets Secrets, parameter, slot string) string {
	message := secrets.LongKey + parameter + slot
	return URLEncode(hmacBase64(secrets.MainKey, message))
}

// Signer binds validated secrets to a clock. It holds no per-call state and is safe to copy
// and to share between goroutines.
type Signer struct {
	secrets Secrets
	clock   Clock
}

// New validates secrets and returns a Signer. A nil clock uses time.Now in the local zone.
func New(secrets Secrets, clock Clock) (Signer, error) {
	if err := secrets.Validate(); err != nil {
		return Signer{}, err
	}
	if clock == nil {
		clock = ClockFunc(time.Now)
	}
	return Signer{secrets: secrets, clock: clock}, nil
}

// Slot returns the current timestamp slot.
func (s Signer) Slot() string {
	return TimestampSlot(s.clock.Now())
}

// K signs with variant K for the current slot.
func (s Signer) K(identifier, campusCode string) string {
	return SignK(s.secrets, identifier, campusCode, s.Slot())
}

// Y signs with variant Y for the current slot.
func (s Signer) Y(username, campusCode string) string {
	return SignY(s.secrets, username, campusCode, s.Slot())
}

// A signs with variant A for the current slot.
func (s Signer) A(parameter string) string {
	return SignA(s.secrets, parameter, s.Slot())
}
