package otp

import (
	"strconv"
	"time"
)

// Default TOTP policy per RFC 6238.
const (
	// DefaultStep is the default time step in seconds.
	DefaultStep = 30
	// DefaultSkew is the default number of adjacent steps tolerated on each
	// side during verification.
	DefaultSkew = 1
)

// Totp generates time-based one-time passwords per RFC 6238 by driving an
// HOTP engine with a counter derived from Unix time.
//
// Step and Skew may be adjusted after construction but must not be modified
// while the engine is in concurrent use; once settled, a Totp is safe for
// concurrent use.
type Totp struct {
	// Hotp is the underlying counter-based engine.
	Hotp *Hotp
	// Step is the duration in seconds of one counter increment. Must be > 0.
	Step uint64
	// Skew is the number of steps tolerated on each side during Verify to
	// absorb clock drift between verifier and token generator.
	Skew uint
	// Now supplies the current Unix time for GenerateNow and VerifyNow.
	// Defaults to the system clock when nil.
	Now func() uint64
}

// NewTotp creates a TOTP engine from a hash algorithm and a raw secret,
// with a 30-second step and a one-step skew tolerance.
func NewTotp(alg Algorithm, secret []byte) (*Totp, error) {
	inner, err := NewHotp(alg, secret)
	if err != nil {
		return nil, err
	}
	return &Totp{
		Hotp: inner,
		Step: DefaultStep,
		Skew: DefaultSkew,
	}, nil
}

// Counter converts a Unix time in seconds to the HOTP counter value for the
// configured step.
func (t *Totp) Counter(unixTime uint64) uint64 {
	return unixTime / t.Step
}

// Sign computes the HMAC signature for the step containing unixTime.
func (t *Totp) Sign(unixTime uint64) []byte {
	return t.Hotp.Sign(t.Counter(unixTime))
}

// Code derives the numeric code for the step containing unixTime.
func (t *Totp) Code(unixTime uint64, digits int) (uint32, error) {
	return t.Hotp.Code(t.Counter(unixTime), digits)
}

// GenerateTo renders the code for the step containing unixTime into dst,
// writing exactly len(dst) ASCII decimal characters, left-padded with '0'.
func (t *Totp) GenerateTo(unixTime uint64, dst []byte) error {
	return t.Hotp.GenerateTo(t.Counter(unixTime), dst)
}

// Generate returns the code for the step containing unixTime as a
// zero-padded string of exactly digits characters.
func (t *Totp) Generate(unixTime uint64, digits int) (string, error) {
	return t.Hotp.Generate(t.Counter(unixTime), digits)
}

// Verify reports whether token matches the code for any step within the
// skew tolerance of unixTime. The current step is checked first, then for
// each offset in 1..Skew the future step and the past step, in that order,
// covering 2*Skew+1 windows in total. Past windows that would precede the
// Unix epoch are skipped rather than wrapped.
//
// Like Hotp.Verify, the reference digit count is the token's own length,
// and a malformed token never matches.
func (t *Totp) Verify(token string, unixTime uint64) bool {
	if len(token) == 0 || len(token) > MaxDigits {
		return false
	}
	expected, err := strconv.ParseUint(token, 10, 32)
	if err != nil {
		return false
	}

	if t.Hotp.truncate(t.Counter(unixTime), len(token)) == uint32(expected) {
		return true
	}

	for offset := uint64(1); offset <= uint64(t.Skew); offset++ {
		drift := offset * t.Step

		if t.Hotp.truncate(t.Counter(unixTime+drift), len(token)) == uint32(expected) {
			return true
		}

		if unixTime >= drift {
			if t.Hotp.truncate(t.Counter(unixTime-drift), len(token)) == uint32(expected) {
				return true
			}
		}
	}

	return false
}

// GenerateNow returns the code for the current time as reported by the
// engine's clock.
func (t *Totp) GenerateNow(digits int) (string, error) {
	return t.Generate(t.now(), digits)
}

// VerifyNow reports whether token is valid for the current time as reported
// by the engine's clock.
func (t *Totp) VerifyNow(token string) bool {
	return t.Verify(token, t.now())
}

func (t *Totp) now() uint64 {
	if t.Now != nil {
		return t.Now()
	}
	return uint64(time.Now().Unix())
}
