// Package signature authenticates webhook deliveries with HMAC-SHA256.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

// Encoding is the text encoding of the digest carried in the signature
// header. Which one applies is a protocol contract with the sender: Shopify
// sends base64, GitHub-style senders send hex.
type Encoding string

const (
	EncodingBase64 Encoding = "base64"
	EncodingHex    Encoding = "hex"
)

// Verifier checks a client-supplied signature against the HMAC-SHA256 of the
// raw request body. It holds the shared secret read-only; Verify is pure and
// safe for concurrent use.
type Verifier struct {
	secret   []byte
	encoding Encoding
}

func NewVerifier(secret string, encoding Encoding) *Verifier {
	return &Verifier{secret: []byte(secret), encoding: encoding}
}

// Verify reports whether provided is a valid signature for rawBody. An empty
// secret or an absent/empty header fails closed. The result is a bare bool:
// callers must not be able to tell a missing header from a wrong signature.
//
// The signature must be computed over the untouched body bytes; re-serialized
// JSON will not verify.
func (v *Verifier) Verify(rawBody []byte, provided string) bool {
	if len(v.secret) == 0 || provided == "" {
		return false
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(rawBody)
	digest := mac.Sum(nil)

	var expected string
	switch v.encoding {
	case EncodingHex:
		expected = hex.EncodeToString(digest)
	default:
		expected = base64.StdEncoding.EncodeToString(digest)
	}

	// hmac.Equal does not short-circuit on the first mismatching byte, so
	// response timing carries no information about the matching prefix.
	return hmac.Equal([]byte(expected), []byte(provided))
}
