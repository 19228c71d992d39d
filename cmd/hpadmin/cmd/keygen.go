// file: cmd/hpadmin/cmd/keygen.go
package cmd

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pjkundert/hp-admin-crypto/internal/keystore"
	"github.com/pjkundert/hp-admin-crypto/internal/verify"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen --seed-out <seed-file>",
	Short: "Generate a new admin key pair",
	Long: `The keygen command generates a fresh Ed25519 admin key pair. The private
seed is written to a file (created with mode 0600), and the public half is
printed in the exact encoding the HPOS state document stores it in, ready to
paste into the document's admin.public_key field.

With --state-out, a minimal state document containing the public key is
written as well, which is enough to run the sidecar against.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		seedOut, _ := cmd.Flags().GetString("seed-out")
		stateOut, _ := cmd.Flags().GetString("state-out")

		signer, err := verify.GenerateSigner()
		if err != nil {
			return err
		}

		seed := base64.RawStdEncoding.EncodeToString(signer.Seed())
		if err := os.WriteFile(seedOut, []byte(seed+"\n"), 0o600); err != nil {
			return fmt.Errorf("failed to write seed file: %w", err)
		}

		publicKey := keystore.EncodePublicKey(signer.PublicKey())

		if stateOut != "" {
			doc := fmt.Sprintf("{\"v1\":{\"admin\":{\"public_key\":\"%s\"}}}\n", publicKey)
			if err := os.WriteFile(stateOut, []byte(doc), 0o600); err != nil {
				return fmt.Errorf("failed to write state document: %w", err)
			}
		}

		fmt.Printf("seed written to %s\n", seedOut)
		fmt.Printf("admin public_key: %s\n", publicKey)
		if stateOut != "" {
			fmt.Printf("state document written to %s\n", stateOut)
		}
		return nil
	},
}

func init() {
	keygenCmd.Flags().String("seed-out", "", "Path to write the private seed file (required)")
	keygenCmd.Flags().String("state-out", "", "Optionally write a minimal state document with the public key")
	keygenCmd.MarkFlagRequired("seed-out")
}
