package otp

import (
	"crypto/hmac"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"strconv"
)

// Common errors returned by the OTP engines and authenticator.
var (
	// ErrEmptySecret indicates an empty secret was supplied at construction.
	ErrEmptySecret = errors.New("otp: secret must not be empty")
	// ErrInvalidDigits indicates a digit count outside the supported 1..9 range.
	ErrInvalidDigits = errors.New("otp: digits must be between 1 and 9")
	// ErrInvalidCode indicates the provided OTP code is invalid.
	ErrInvalidCode = errors.New("otp: invalid code")
	// ErrInvalidConfig indicates the configuration is invalid.
	ErrInvalidConfig = errors.New("otp: invalid configuration")
	// ErrNilAuthenticator indicates a nil authenticator was used.
	ErrNilAuthenticator = errors.New("otp: authenticator is nil")
)

// MaxDigits is the widest supported code. Beyond 9 digits the truncated
// value (at most 2^31-1) can no longer cover the output space.
const MaxDigits = 9

// pow10 holds 10^0 .. 10^9; the last entry needs more than 32 bits.
var pow10 = [MaxDigits + 1]uint64{
	1, 10, 100, 1000, 10000, 100000,
	1000000, 10000000, 100000000, 1000000000,
}

// Hotp generates counter-based one-time passwords per RFC 4226.
//
// A Hotp holds only the keyed HMAC parameters; it is immutable after
// construction and safe for concurrent use.
type Hotp struct {
	newHash func() hash.Hash
	key     []byte
}

// NewHotp creates an HOTP engine from a hash algorithm and a raw secret.
// The secret must already be decoded from any textual encoding (base32 etc.)
// and must not be empty. The secret bytes are copied.
func NewHotp(alg Algorithm, secret []byte) (*Hotp, error) {
	newHash := alg.Hash()
	if newHash == nil {
		return nil, fmt.Errorf("%w: unknown algorithm %d", ErrInvalidConfig, alg)
	}
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &Hotp{newHash: newHash, key: key}, nil
}

// Sign computes the HMAC signature over the 8-byte big-endian encoding of
// counter. The signature length depends on the algorithm: 20 bytes for SHA1,
// 32 for SHA256, 64 for SHA512.
func (h *Hotp) Sign(counter uint64) []byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], counter)
	mac := hmac.New(h.newHash, h.key)
	mac.Write(buf[:])
	return mac.Sum(nil)
}

// Code derives the numeric code for counter using RFC 4226 dynamic
// truncation. The result is in [0, 10^digits). digits must be in 1..9.
func (h *Hotp) Code(counter uint64, digits int) (uint32, error) {
	if digits < 1 || digits > MaxDigits {
		return 0, ErrInvalidDigits
	}
	return h.truncate(counter, digits), nil
}

// truncate implements RFC 4226 §5.3: the low nibble of the final signature
// byte selects a 4-byte big-endian window, the sign bit is cleared, and the
// value is reduced modulo 10^digits. offset+4 never exceeds the signature
// length for any supported algorithm (minimum length 20).
func (h *Hotp) truncate(counter uint64, digits int) uint32 {
	sig := h.Sign(counter)
	offset := sig[len(sig)-1] & 0x0f
	value := binary.BigEndian.Uint32(sig[offset:offset+4]) & 0x7fffffff
	return value % uint32(pow10[digits])
}

// GenerateTo renders the code for counter into dst, writing exactly len(dst)
// ASCII decimal characters, left-padded with '0'. The buffer length selects
// the digit count and must be in 1..9; 6 to 8 is the recommended range.
func (h *Hotp) GenerateTo(counter uint64, dst []byte) error {
	if len(dst) < 1 || len(dst) > MaxDigits {
		return ErrInvalidDigits
	}
	value := h.truncate(counter, len(dst))
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = '0' + byte(value%10)
		value /= 10
	}
	return nil
}

// Generate returns the code for counter as a zero-padded string of exactly
// digits characters.
func (h *Hotp) Generate(counter uint64, digits int) (string, error) {
	if digits < 1 || digits > MaxDigits {
		return "", ErrInvalidDigits
	}
	buf := make([]byte, digits)
	if err := h.GenerateTo(counter, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// Verify reports whether token matches the code for counter.
//
// The digit count of the reference code is taken from the token's own
// length, so a token of unexpected length is compared against a value
// truncated to that length. Tokens that are empty, longer than 9
// characters, or fail to parse as a base-10 unsigned integer never match.
func (h *Hotp) Verify(token string, counter uint64) bool {
	if len(token) == 0 || len(token) > MaxDigits {
		return false
	}
	expected, err := strconv.ParseUint(token, 10, 32)
	if err != nil {
		return false
	}
	return h.truncate(counter, len(token)) == uint32(expected)
}
