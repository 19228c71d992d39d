// file: cmd/hpadmin/cmd/sign.go
package cmd

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pjkundert/hp-admin-crypto/internal/payload"
	"github.com/pjkundert/hp-admin-crypto/internal/verify"
)

var signCmd = &cobra.Command{
	Use:   "sign --seed <seed-file> --method <verb> --uri <request-target>",
	Short: "Sign a request the way the admin browser does",
	Long: `The sign command canonicalizes a (method, uri, body) triple and produces
the detached signature value to send in the x-hpos-admin-signature header.
The body is read from --body, or from --body-file, or is empty.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		seedPath, _ := cmd.Flags().GetString("seed")
		method, _ := cmd.Flags().GetString("method")
		uri, _ := cmd.Flags().GetString("uri")

		body, err := readBodyFlags(cmd)
		if err != nil {
			return err
		}

		signer, err := loadSigner(seedPath)
		if err != nil {
			return err
		}

		message, err := payload.Canonicalize(method, uri, body)
		if err != nil {
			return fmt.Errorf("failed to canonicalize request: %w", err)
		}

		fmt.Println(signer.Sign(message))
		return nil
	},
}

func init() {
	signCmd.Flags().String("seed", "", "Path to the private seed file (required)")
	signCmd.Flags().String("method", "", "HTTP method of the request to sign (required)")
	signCmd.Flags().String("uri", "", "Request-target of the request to sign (required)")
	signCmd.Flags().String("body", "", "Request body as a literal string")
	signCmd.Flags().String("body-file", "", "Read the request body from a file")
	signCmd.MarkFlagRequired("seed")
	signCmd.MarkFlagRequired("method")
	signCmd.MarkFlagRequired("uri")
}

// loadSigner reads a base64 seed file written by keygen.
func loadSigner(path string) (*verify.Signer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	encoded := strings.TrimSpace(string(data))
	seed, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
	if err != nil {
		return nil, fmt.Errorf("seed file is not valid base64: %w", err)
	}

	return verify.NewSigner(seed)
}

// readBodyFlags resolves --body / --body-file; both absent means empty body.
func readBodyFlags(cmd *cobra.Command) ([]byte, error) {
	bodyStr, _ := cmd.Flags().GetString("body")
	bodyFile, _ := cmd.Flags().GetString("body-file")

	if bodyStr != "" && bodyFile != "" {
		return nil, fmt.Errorf("--body and --body-file are mutually exclusive")
	}
	if bodyFile != "" {
		data, err := os.ReadFile(bodyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read body file: %w", err)
		}
		return data, nil
	}
	return []byte(bodyStr), nil
}
