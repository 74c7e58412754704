// Package otp generates and verifies one-time passwords using the HOTP
// (RFC 4226) and TOTP (RFC 6238) algorithms.
//
// The package has two layers. The engine layer (Hotp, Totp) is the
// algorithmic core: it consumes raw secret bytes and a counter or Unix
// time, and exposes HMAC signing, dynamic truncation, fixed-width code
// rendering, and verification. The authenticator layer (Authenticator)
// wraps an engine with the conveniences a service needs: base32 secret
// handling, configuration validation, provisioning URIs, and QR codes.
//
// # Engine layer
//
// Engines are pure: the same inputs always produce the same code, and no
// state changes after construction.
//
//	hotp, err := otp.NewHotp(otp.AlgorithmSHA1, secretBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	code, err := hotp.Generate(counter, 6) // "000443" style, zero-padded
//	ok := hotp.Verify(code, counter)
//
// TOTP adds the time-to-counter translation and a symmetric skew window:
//
//	totp, err := otp.NewTotp(otp.AlgorithmSHA1, secretBytes)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	totp.Step = 30 // seconds per counter increment
//	totp.Skew = 1  // steps tolerated on each side
//
//	code, err := totp.Generate(unixTime, 6)
//	ok := totp.Verify(code, unixTime) // also accepts one step of drift
//
// Callers needing zero-allocation rendering can write into their own
// buffer; the buffer length selects the digit count:
//
//	var buf [6]byte
//	if err := totp.GenerateTo(unixTime, buf[:]); err != nil {
//	    log.Fatal(err)
//	}
//
// # Authenticator layer
//
// The Authenticator consumes base32 secrets as produced by GenerateSecret
// and enrollment tools:
//
//	config := otp.Config{
//	    Type:        otp.TypeTOTP,
//	    Secret:      "JBSWY3DPEHPK3PXP",
//	    Issuer:      "MyApp",
//	    AccountName: "user@example.com",
//	    Digits:      6,
//	    Period:      30,
//	    Algorithm:   otp.AlgorithmSHA1,
//	    Skew:        1, // Allow 1 period of clock skew
//	}
//
//	auth, err := otp.NewAuthenticator(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Validate a code from user's authenticator app
//	err = auth.Authenticate(ctx, "123456")
//	if err != nil {
//	    log.Printf("Authentication failed: %v", err)
//	}
//
//	// Generate provisioning URI for QR code
//	uri := auth.GetProvisioningURI()
//	// Display uri as QR code for user to scan
//
// For HOTP, validation returns the counter value to persist:
//
//	newCounter, err := auth.ValidateCounter(ctx, "123456", currentCounter)
//	if err != nil {
//	    log.Printf("Authentication failed: %v", err)
//	} else {
//	    currentCounter = newCounter
//	}
//
// # Replay protection
//
// Verification is purely computational: a code that was valid once stays
// valid for the rest of its window, and HOTP counters are not tracked
// across calls. Callers that need replay protection must persist the last
// accepted counter or timestamp themselves.
//
// # Hash Algorithms
//
// The package supports multiple hash algorithms:
//   - AlgorithmSHA1 (default, widely supported)
//   - AlgorithmSHA256 (more secure)
//   - AlgorithmSHA512 (most secure)
//
// Note that not all authenticator apps support SHA256 and SHA512.
//
// # Thread Safety
//
// Engines and Authenticators are safe for concurrent use once constructed.
// Multiple goroutines can call their methods simultaneously.
package otp
