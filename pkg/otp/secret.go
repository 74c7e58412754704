package otp

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"image"
	"net/url"
	"strconv"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

// GenerateSecret generates a cryptographically random secret key.
// The secret is returned as a base32-encoded string suitable for use
// in the Config.Secret field.
func GenerateSecret() (string, error) {
	// 20 bytes (160 bits), the RFC 4226 recommended minimum
	secret := make([]byte, 20)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("otp: failed to generate random secret: %w", err)
	}

	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(secret)
	return encoded, nil
}

// Key describes a provisioned OTP credential as exchanged with
// authenticator apps via otpauth:// URIs and QR codes.
type Key struct {
	Type        Type
	Secret      string
	Issuer      string
	AccountName string
	Algorithm   Algorithm
	Digits      uint
	Period      uint
	Counter     uint64
}

// URI renders the key as an otpauth:// URI per the Google Authenticator
// key URI format.
func (k Key) URI() string {
	v := url.Values{}
	v.Set("secret", k.Secret)
	v.Set("issuer", k.Issuer)
	v.Set("algorithm", k.Algorithm.String())
	v.Set("digits", fmt.Sprintf("%d", k.Digits))

	label := url.PathEscape(fmt.Sprintf("%s:%s", k.Issuer, k.AccountName))

	if k.Type == TypeHOTP {
		v.Set("counter", fmt.Sprintf("%d", k.Counter))
		return fmt.Sprintf("otpauth://hotp/%s?%s", label, v.Encode())
	}

	v.Set("period", fmt.Sprintf("%d", k.Period))
	return fmt.Sprintf("otpauth://totp/%s?%s", label, v.Encode())
}

// ParseKeyURI parses an otpauth:// URI, as produced by URI or scanned from
// an enrollment QR code, into a Key. Absent digits and period parameters
// default to 6 and 30.
func ParseKeyURI(uri string) (Key, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return Key{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if u.Scheme != "otpauth" {
		return Key{}, fmt.Errorf("%w: scheme must be otpauth", ErrInvalidConfig)
	}

	var key Key
	switch Type(u.Host) {
	case TypeTOTP, TypeHOTP:
		key.Type = Type(u.Host)
	default:
		return Key{}, fmt.Errorf("%w: type must be 'totp' or 'hotp'", ErrInvalidConfig)
	}

	q := u.Query()
	key.Secret = q.Get("secret")
	if key.Secret == "" {
		return Key{}, fmt.Errorf("%w: secret must not be empty", ErrInvalidConfig)
	}
	if _, err := DecodeSecret(key.Secret); err != nil {
		return Key{}, fmt.Errorf("%w: secret must be valid base32: %v", ErrInvalidConfig, err)
	}

	key.Issuer = q.Get("issuer")

	// The label is "issuer:account" or just "account"
	label := strings.TrimPrefix(u.Path, "/")
	if issuer, account, ok := strings.Cut(label, ":"); ok {
		if key.Issuer == "" {
			key.Issuer = issuer
		}
		key.AccountName = account
	} else {
		key.AccountName = label
	}

	key.Algorithm, err = ParseAlgorithm(q.Get("algorithm"))
	if err != nil {
		return Key{}, err
	}

	key.Digits = 6
	if s := q.Get("digits"); s != "" {
		digits, err := strconv.ParseUint(s, 10, 8)
		if err != nil || digits < 1 || digits > MaxDigits {
			return Key{}, fmt.Errorf("%w: invalid digits %q", ErrInvalidConfig, s)
		}
		key.Digits = uint(digits)
	}

	if key.Type == TypeHOTP {
		if s := q.Get("counter"); s != "" {
			counter, err := strconv.ParseUint(s, 10, 64)
			if err != nil {
				return Key{}, fmt.Errorf("%w: invalid counter %q", ErrInvalidConfig, s)
			}
			key.Counter = counter
		}
		return key, nil
	}

	key.Period = DefaultStep
	if s := q.Get("period"); s != "" {
		period, err := strconv.ParseUint(s, 10, 32)
		if err != nil || period == 0 {
			return Key{}, fmt.Errorf("%w: invalid period %q", ErrInvalidConfig, s)
		}
		key.Period = uint(period)
	}

	return key, nil
}

// Image renders the key's otpauth:// URI as a QR code image of the
// requested dimensions, suitable for scanning by authenticator apps.
func (k Key) Image(width, height int) (image.Image, error) {
	code, err := qr.Encode(k.URI(), qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("otp: failed to encode QR code: %w", err)
	}

	code, err = barcode.Scale(code, width, height)
	if err != nil {
		return nil, fmt.Errorf("otp: failed to scale QR code: %w", err)
	}

	return code, nil
}
