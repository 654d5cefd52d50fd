// Package callback verifies asynchronous gateway notifications. This is the
// integrity boundary of the client: a forged digest would let an attacker
// fabricate payment confirmations, so the signature check happens strictly
// before any parsing of the payload.
package callback

import (
	"encoding/base64"
	"fmt"

	"cardpay-client/internal/domain"
	"cardpay-client/internal/domain/model"
	"cardpay-client/internal/infra/decoding"
	"cardpay-client/internal/infra/signature"
)

// Verifier checks and decodes inbound notifications for one shared secret.
// It is stateless after construction and safe for concurrent use.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Parse decodes the transport encoding, verifies the digest over the raw
// bytes, and only then hands them to the response decoder. Unverified
// content is never parsed.
func (v *Verifier) Parse(encoded, digestHex string) (model.Outcome, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &domain.DecodeError{
			Content: []byte(encoded),
			Reason:  fmt.Sprintf("payload is not valid base64: %v", err),
		}
	}
	if !signature.Verify(raw, v.secret, digestHex) {
		return nil, domain.ErrSignatureMismatch
	}
	return decoding.Outcome(raw)
}
