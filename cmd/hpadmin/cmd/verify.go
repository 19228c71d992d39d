// file: cmd/hpadmin/cmd/verify.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pjkundert/hp-admin-crypto/internal/keystore"
	"github.com/pjkundert/hp-admin-crypto/internal/payload"
	"github.com/pjkundert/hp-admin-crypto/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify --state <state-file> --method <verb> --uri <request-target> --signature <base64>",
	Short: "Check a request signature offline against a state document",
	Long: `The verify command runs the exact decision the sidecar would make for a
(method, uri, body, signature) tuple, using the admin public key from the
given state document. It prints the outcome and exits non-zero on a deny,
which makes it usable from scripts and for debugging rejected requests.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		statePath, _ := cmd.Flags().GetString("state")
		method, _ := cmd.Flags().GetString("method")
		uri, _ := cmd.Flags().GetString("uri")
		signature, _ := cmd.Flags().GetString("signature")

		body, err := readBodyFlags(cmd)
		if err != nil {
			return err
		}

		keys, err := keystore.Load(statePath)
		if err != nil {
			return err
		}

		message, err := payload.Canonicalize(method, uri, body)
		if err != nil {
			return fmt.Errorf("failed to canonicalize request: %w", err)
		}

		if !verify.NewVerifier(keys.PublicKey()).Verify(message, signature) {
			return fmt.Errorf("signature verification failed")
		}

		fmt.Println("signature ok")
		return nil
	},
}

func init() {
	verifyCmd.Flags().String("state", "", "Path to the HPOS state document (required)")
	verifyCmd.Flags().String("method", "", "HTTP method of the signed request (required)")
	verifyCmd.Flags().String("uri", "", "Request-target of the signed request (required)")
	verifyCmd.Flags().String("signature", "", "Detached signature header value (required)")
	verifyCmd.Flags().String("body", "", "Request body as a literal string")
	verifyCmd.Flags().String("body-file", "", "Read the request body from a file")
	verifyCmd.MarkFlagRequired("state")
	verifyCmd.MarkFlagRequired("method")
	verifyCmd.MarkFlagRequired("uri")
	verifyCmd.MarkFlagRequired("signature")
}
