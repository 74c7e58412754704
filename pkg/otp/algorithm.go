package otp

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
)

// Algorithm selects the hash function backing the HMAC computation.
// The zero value is SHA1, the RFC 4226 default. SHA1 is cryptographically
// weak but remains the interoperable choice for authenticator apps.
type Algorithm int

const (
	// AlgorithmSHA1 uses HMAC-SHA1 (default, widely supported).
	AlgorithmSHA1 Algorithm = iota
	// AlgorithmSHA256 uses HMAC-SHA256.
	AlgorithmSHA256
	// AlgorithmSHA512 uses HMAC-SHA512.
	AlgorithmSHA512
)

// Hash returns the hash constructor for the algorithm, or nil if the
// algorithm is unknown.
func (a Algorithm) Hash() func() hash.Hash {
	switch a {
	case AlgorithmSHA1:
		return sha1.New
	case AlgorithmSHA256:
		return sha256.New
	case AlgorithmSHA512:
		return sha512.New
	}
	return nil
}

// String returns the algorithm name as used in otpauth:// URIs.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmSHA1:
		return "SHA1"
	case AlgorithmSHA256:
		return "SHA256"
	case AlgorithmSHA512:
		return "SHA512"
	}
	return "UNKNOWN"
}

// ParseAlgorithm converts an algorithm name (as found in otpauth:// URIs,
// case-insensitive) to an Algorithm. An empty name yields the SHA1 default.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "", "SHA1", "sha1":
		return AlgorithmSHA1, nil
	case "SHA256", "sha256":
		return AlgorithmSHA256, nil
	case "SHA512", "sha512":
		return AlgorithmSHA512, nil
	}
	return 0, fmt.Errorf("%w: unknown algorithm %q", ErrInvalidConfig, name)
}
