package otp

import (
	"context"
	"encoding/base32"
	"fmt"
	"strings"
)

// Type represents the OTP algorithm type.
type Type string

const (
	// TypeTOTP represents Time-based OTP (RFC 6238).
	TypeTOTP Type = "totp"
	// TypeHOTP represents Counter-based OTP (RFC 4226).
	TypeHOTP Type = "hotp"
)

// Config holds OTP authenticator configuration.
type Config struct {
	// Type specifies the OTP type (TOTP or HOTP).
	Type Type
	// Secret is the base32-encoded shared secret key (required).
	Secret string
	// Issuer is the name of the issuing organization (e.g., "MyApp").
	Issuer string
	// AccountName is the account identifier (e.g., "user@example.com").
	AccountName string
	// Digits specifies the number of digits in the OTP code (6, 7, or 8).
	// Default: 6
	Digits uint
	// Period specifies the time step in seconds for TOTP.
	// Default: 30
	Period uint
	// Counter specifies the initial counter value for HOTP.
	// Default: 0
	Counter uint64
	// Algorithm specifies the hash algorithm to use.
	// Default: SHA1
	Algorithm Algorithm
	// Skew specifies the number of time periods to check before and after
	// the current time for TOTP validation (tolerance for clock skew).
	// Default: 1
	Skew uint
}

// validate checks that the configuration is valid.
func (c Config) validate() error {
	if c.Type != TypeTOTP && c.Type != TypeHOTP {
		return fmt.Errorf("%w: type must be 'totp' or 'hotp'", ErrInvalidConfig)
	}

	if strings.TrimSpace(c.Secret) == "" {
		return fmt.Errorf("%w: secret must not be empty", ErrInvalidConfig)
	}

	if _, err := DecodeSecret(c.Secret); err != nil {
		return fmt.Errorf("%w: secret must be valid base32: %v", ErrInvalidConfig, err)
	}

	if c.Digits != 0 && c.Digits != 6 && c.Digits != 7 && c.Digits != 8 {
		return fmt.Errorf("%w: digits must be 6, 7, or 8", ErrInvalidConfig)
	}

	if c.Algorithm.Hash() == nil {
		return fmt.Errorf("%w: algorithm must be SHA1, SHA256, or SHA512", ErrInvalidConfig)
	}

	return nil
}

// DecodeSecret decodes a base32 secret into the raw key bytes the engines
// consume. Whitespace is ignored, case is normalized, and padding is added
// if missing, matching the lenient format used by authenticator setup tools.
func DecodeSecret(secret string) ([]byte, error) {
	clean := strings.ToUpper(strings.Join(strings.Fields(secret), ""))
	if n := len(clean) % 8; n != 0 {
		clean += "========"[:8-n]
	}
	return base32.StdEncoding.DecodeString(clean)
}

// Authenticator validates OTP codes against a configured secret and policy.
// It is safe for concurrent use.
type Authenticator struct {
	cfg  Config
	hotp *Hotp
	totp *Totp
}

// NewAuthenticator creates a new OTP authenticator.
// The configuration is validated and an error is returned if invalid.
func NewAuthenticator(cfg Config) (*Authenticator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Apply defaults
	if cfg.Digits == 0 {
		cfg.Digits = 6
	}
	if cfg.Period == 0 {
		cfg.Period = DefaultStep
	}
	if cfg.Skew == 0 {
		cfg.Skew = DefaultSkew
	}

	key, err := DecodeSecret(cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("%w: secret must be valid base32: %v", ErrInvalidConfig, err)
	}

	a := &Authenticator{cfg: cfg}

	if cfg.Type == TypeTOTP {
		a.totp, err = NewTotp(cfg.Algorithm, key)
		if err != nil {
			return nil, err
		}
		a.totp.Step = uint64(cfg.Period)
		a.totp.Skew = cfg.Skew
	} else {
		a.hotp, err = NewHotp(cfg.Algorithm, key)
		if err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Authenticate validates an OTP code.
// For TOTP, it validates against the current time with skew tolerance.
// For HOTP, it validates against the configured counter value.
//
// Unlike the engine-level Verify, a code whose length differs from the
// configured digit count is rejected outright rather than compared against
// a reference value truncated to that other width.
func (a *Authenticator) Authenticate(ctx context.Context, code string) error {
	if a == nil {
		return ErrNilAuthenticator
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("%w: code must not be empty", ErrInvalidCode)
	}
	if uint(len(code)) != a.cfg.Digits {
		return fmt.Errorf("%w: code must be %d digits", ErrInvalidCode, a.cfg.Digits)
	}

	if a.cfg.Type == TypeTOTP {
		if !a.totp.VerifyNow(code) {
			return ErrInvalidCode
		}
		return nil
	}

	if !a.hotp.Verify(code, a.cfg.Counter) {
		return ErrInvalidCode
	}

	return nil
}

// ValidateCounter validates an HOTP code and returns the new counter value.
// This method is only valid for HOTP authenticators.
// The returned counter should be stored and used for the next validation;
// the authenticator itself tracks no counter state.
func (a *Authenticator) ValidateCounter(ctx context.Context, code string, counter uint64) (uint64, error) {
	if a == nil {
		return 0, ErrNilAuthenticator
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	if a.cfg.Type != TypeHOTP {
		return 0, fmt.Errorf("%w: ValidateCounter is only valid for HOTP", ErrInvalidConfig)
	}

	code = strings.TrimSpace(code)
	if code == "" {
		return 0, fmt.Errorf("%w: code must not be empty", ErrInvalidCode)
	}
	if uint(len(code)) != a.cfg.Digits {
		return 0, fmt.Errorf("%w: code must be %d digits", ErrInvalidCode, a.cfg.Digits)
	}

	if !a.hotp.Verify(code, counter) {
		return 0, ErrInvalidCode
	}

	return counter + 1, nil
}

// Generate generates an OTP code.
// For TOTP, it generates the code for the current time.
// For HOTP, a counter value must be provided.
func (a *Authenticator) Generate(counter ...uint64) (string, error) {
	if a == nil {
		return "", ErrNilAuthenticator
	}

	if a.cfg.Type == TypeTOTP {
		code, err := a.totp.GenerateNow(int(a.cfg.Digits))
		if err != nil {
			return "", fmt.Errorf("otp: failed to generate TOTP code: %w", err)
		}
		return code, nil
	}

	if len(counter) == 0 {
		return "", fmt.Errorf("otp: counter required for HOTP generation")
	}

	code, err := a.hotp.Generate(counter[0], int(a.cfg.Digits))
	if err != nil {
		return "", fmt.Errorf("otp: failed to generate HOTP code: %w", err)
	}

	return code, nil
}

// GetProvisioningURI returns the otpauth:// URI for QR code generation.
// This URI can be encoded as a QR code and scanned by authenticator apps.
func (a *Authenticator) GetProvisioningURI() string {
	if a == nil {
		return ""
	}

	key := Key{
		Type:        a.cfg.Type,
		Secret:      a.cfg.Secret,
		Issuer:      a.cfg.Issuer,
		AccountName: a.cfg.AccountName,
		Algorithm:   a.cfg.Algorithm,
		Digits:      a.cfg.Digits,
		Period:      a.cfg.Period,
		Counter:     a.cfg.Counter,
	}
	return key.URI()
}
