// file: internal/verify/signer.go

package verify

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
)

// Signer is the producing half of the contract. The daemon never signs;
// this exists for the hpadmin CLI and for tests that need real signatures.
type Signer struct {
	privateKey ed25519.PrivateKey
}

// NewSigner creates a Signer from a 32-byte Ed25519 seed.
func NewSigner(seed []byte) (*Signer, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("seed has length %d, want %d", len(seed), ed25519.SeedSize)
	}
	return &Signer{privateKey: ed25519.NewKeyFromSeed(seed)}, nil
}

// GenerateSigner creates a Signer with a fresh random key pair.
func GenerateSigner() (*Signer, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key pair: %w", err)
	}
	return &Signer{privateKey: priv}, nil
}

// Sign produces the header value for a canonical payload: an unpadded
// standard-base64 detached Ed25519 signature.
func (s *Signer) Sign(payload []byte) string {
	return EncodeSignature(ed25519.Sign(s.privateKey, payload))
}

// PublicKey returns the verification half of the key pair.
func (s *Signer) PublicKey() ed25519.PublicKey {
	return s.privateKey.Public().(ed25519.PublicKey)
}

// Seed returns the 32-byte seed, for writing key files.
func (s *Signer) Seed() []byte {
	return s.privateKey.Seed()
}
