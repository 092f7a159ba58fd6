// Package otp generates and hashes the short numeric one-time codes used for
// email verification and password reset.
package otp

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"strconv"
	"time"
)

// TTL is how long an issued code stays valid.
const TTL = 5 * time.Minute

// Generate returns a uniform random code in [0, 999999] as a plain decimal
// string. The code is not zero-padded.
func Generate() string {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return strconv.Itoa(rng.Intn(1000000))
}

// KeyedHash returns the hex HMAC-SHA256 of code under secret. Only this hash
// is ever stored; equality checks never touch the plaintext at rest.
func KeyedHash(code string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(code))
	return hex.EncodeToString(mac.Sum(nil))
}

// Equal compares two keyed hashes in constant time.
func Equal(a, b string) bool {
	return hmac.Equal([]byte(a), []byte(b))
}
