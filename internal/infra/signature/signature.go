// Package signature implements the keyed digest that authenticates both
// outbound order submissions and inbound callback notifications. One
// construction serves both directions: SHA-512 over the canonical payload
// bytes immediately followed by the raw secret, rendered as lowercase hex.
package signature

import (
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

// Sign computes the hex digest for payload under secret.
func Sign(payload, secret []byte) string {
	h := sha512.New()
	h.Write(payload)
	h.Write(secret)
	return hex.EncodeToString(h.Sum(nil))
}

// Verify recomputes the digest and compares it to digestHex in constant
// time. A malformed or truncated digest compares false; it is never an
// error, so an attacker learns nothing from the failure mode.
func Verify(payload, secret []byte, digestHex string) bool {
	want, err := hex.DecodeString(digestHex)
	if err != nil {
		return false
	}
	h := sha512.New()
	h.Write(payload)
	h.Write(secret)
	return subtle.ConstantTimeCompare(h.Sum(nil), want) == 1
}

// HashPassword derives the SHA-256 hex digest that stands in for the
// administrative password on status-change and report calls. It is computed
// once at the client-context boundary; the cleartext is never sent there.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}
