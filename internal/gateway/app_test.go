// file: internal/gateway/app_test.go

package gateway

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pjkundert/hp-admin-crypto/config"
	"github.com/pjkundert/hp-admin-crypto/internal/keystore"
	"github.com/pjkundert/hp-admin-crypto/internal/verify"
)

func testConfig(t *testing.T, statePath string) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.State.Path = statePath
	cfg.Logging.Level = "error"
	cfg.Logging.OutputPath = "stdout"
	cfg.Logging.Encoding = "json"
	cfg.Server.Address = "127.0.0.1:0"
	cfg.Server.MaxBodyBytes = 1 << 20
	return cfg
}

func TestNewAppLoadsKeyBeforeServing(t *testing.T) {
	signer, err := verify.GenerateSigner()
	if err != nil {
		t.Fatalf("failed to generate signer: %v", err)
	}

	statePath := filepath.Join(t.TempDir(), "state.json")
	doc := fmt.Sprintf(`{"v1":{"admin":{"public_key":"%s"}}}`,
		keystore.EncodePublicKey(signer.PublicKey()))
	if err := os.WriteFile(statePath, []byte(doc), 0o600); err != nil {
		t.Fatalf("failed to write state file: %v", err)
	}

	app, err := NewApp(testConfig(t, statePath))
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	defer app.Close()

	if app.keys == nil || app.server == nil {
		t.Error("NewApp() left keystore or server unset")
	}
}

func TestNewAppFailsWithoutState(t *testing.T) {
	// A missing or corrupt state file must prevent startup entirely.
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name: "missing file",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "absent.json")
			},
		},
		{
			name: "corrupt document",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "state.json")
				os.WriteFile(path, []byte(`{"v1":{}}`), 0o600)
				return path
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewApp(testConfig(t, tt.setup(t))); err == nil {
				t.Fatal("NewApp() succeeded, want startup error")
			}
		})
	}
}
