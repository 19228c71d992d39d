// file: internal/verify/verify.go

// Package verify checks detached Ed25519 signatures carried in the
// x-hpos-admin-signature header against the canonical request payload.
package verify

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"strings"
)

// ErrSignatureLength reports a decoded signature of the wrong size.
var ErrSignatureLength = errors.New("signature is not 64 bytes")

// Verifier holds the admin verification key. It is safe for concurrent use;
// the key is never mutated after construction.
type Verifier struct {
	publicKey ed25519.PublicKey
}

// NewVerifier creates a Verifier over an admin public key.
func NewVerifier(publicKey ed25519.PublicKey) *Verifier {
	return &Verifier{publicKey: publicKey}
}

// Verify reports whether signatureB64 is a valid unpadded standard-base64
// Ed25519 signature over payload. The outcome is strictly binary: malformed
// encoding, wrong length, and a failed cryptographic check are all false.
// It performs no logging; payload and signature bytes never leave this call.
func (v *Verifier) Verify(payload []byte, signatureB64 string) bool {
	sig, err := DecodeSignature(signatureB64)
	if err != nil {
		return false
	}
	return ed25519.Verify(v.publicKey, payload, sig)
}

// DecodeSignature decodes a transport-encoded detached signature. The wire
// form is unpadded standard base64; trailing padding is tolerated. Anything
// that does not decode to exactly 64 bytes is an error.
func DecodeSignature(signatureB64 string) ([]byte, error) {
	sig, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(signatureB64, "="))
	if err != nil {
		return nil, err
	}
	if len(sig) != ed25519.SignatureSize {
		return nil, ErrSignatureLength
	}
	return sig, nil
}

// EncodeSignature renders a signature the way the header carries it.
func EncodeSignature(sig []byte) string {
	return base64.RawStdEncoding.EncodeToString(sig)
}
