// file: internal/keystore/keystore.go

// Package keystore loads the administrator's Ed25519 verification key from
// the HPOS state document. The key is read exactly once at startup and held
// immutable for the process lifetime; every failure here is fatal because a
// daemon without a trustworthy key must never serve traffic.
package keystore

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"
)

// KeyStore holds the admin public key for the life of the process.
type KeyStore struct {
	publicKey ed25519.PublicKey
}

// stateDocument is the subset of the HPOS state file this daemon consumes.
// The document is owned by the wider HPOS tooling; only the admin public key
// field matters here. Current documents nest it under a "v1" version key,
// pre-versioned documents keep it at top level.
type stateDocument struct {
	V1    *stateSettings `json:"v1"`
	Admin *adminSettings `json:"admin"`
}

type stateSettings struct {
	Admin *adminSettings `json:"admin"`
}

type adminSettings struct {
	PublicKey string `json:"public_key"`
}

// Load reads the state document at path and extracts the admin public key.
func Load(path string) (*KeyStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read state file %q: %w", path, err)
	}

	key, err := parseState(data)
	if err != nil {
		return nil, fmt.Errorf("state file %q: %w", path, err)
	}

	return &KeyStore{publicKey: key}, nil
}

// PublicKey returns the admin verification key. The returned slice must be
// treated as read-only; it is shared by every concurrent verification.
func (ks *KeyStore) PublicKey() ed25519.PublicKey {
	return ks.publicKey
}

// parseState extracts and decodes the admin public key from raw state bytes.
func parseState(data []byte) (ed25519.PublicKey, error) {
	var doc stateDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse state document: %w", err)
	}

	var encoded string
	switch {
	case doc.V1 != nil && doc.V1.Admin != nil:
		encoded = doc.V1.Admin.PublicKey
	case doc.Admin != nil:
		encoded = doc.Admin.PublicKey
	}
	if encoded == "" {
		return nil, fmt.Errorf("admin public key field is missing")
	}

	return DecodePublicKey(encoded)
}

// DecodePublicKey decodes an unpadded standard-base64 admin public key.
// Padded input is tolerated; the decoded key must be exactly 32 bytes.
func DecodePublicKey(encoded string) (ed25519.PublicKey, error) {
	raw, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
	if err != nil {
		return nil, fmt.Errorf("admin public key is not valid base64: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("admin public key has length %d, want %d", len(raw), ed25519.PublicKeySize)
	}
	return ed25519.PublicKey(raw), nil
}

// EncodePublicKey renders a key the way the state document stores it.
func EncodePublicKey(key ed25519.PublicKey) string {
	return base64.RawStdEncoding.EncodeToString(key)
}
