// file: internal/keystore/keystore_test.go

package keystore

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func testKey(t *testing.T) ed25519.PublicKey {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	return pub
}

func writeState(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write state file: %v", err)
	}
	return path
}

func TestLoadVersionedDocument(t *testing.T) {
	pub := testKey(t)
	path := writeState(t, fmt.Sprintf(
		`{"v1":{"admin":{"public_key":"%s","email":"admin@example.com"},"seed":"ignored"}}`,
		EncodePublicKey(pub)))

	ks, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !bytes.Equal(ks.PublicKey(), pub) {
		t.Error("loaded key does not match the one written")
	}
}

func TestLoadUnversionedDocument(t *testing.T) {
	pub := testKey(t)
	path := writeState(t, fmt.Sprintf(
		`{"admin":{"public_key":"%s"}}`, EncodePublicKey(pub)))

	ks, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !bytes.Equal(ks.PublicKey(), pub) {
		t.Error("loaded key does not match the one written")
	}
}

func TestLoadPaddedKeyTolerated(t *testing.T) {
	pub := testKey(t)
	padded := base64.StdEncoding.EncodeToString(pub)
	path := writeState(t, fmt.Sprintf(`{"admin":{"public_key":"%s"}}`, padded))

	ks, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !bytes.Equal(ks.PublicKey(), pub) {
		t.Error("loaded key does not match the one written")
	}
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "unparsable document",
			content: `{not json`,
		},
		{
			name:    "missing admin section",
			content: `{"v1":{"seed":"abc"}}`,
		},
		{
			name:    "empty public key field",
			content: `{"admin":{"public_key":""}}`,
		},
		{
			name:    "invalid base64",
			content: `{"admin":{"public_key":"!!!not-base64!!!"}}`,
		},
		{
			name:    "wrong key length",
			content: `{"admin":{"public_key":"aGVsbG8"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeState(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Fatal("Load() succeeded, want error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("Load() succeeded for missing file, want error")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	pub := testKey(t)

	decoded, err := DecodePublicKey(EncodePublicKey(pub))
	if err != nil {
		t.Fatalf("DecodePublicKey() error = %v", err)
	}
	if !bytes.Equal(decoded, pub) {
		t.Error("round-tripped key does not match original")
	}
}
