package cli

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/desk-scheduler/internal/infrastructure/crypto"
)

func newKeysCmd() *cobra.Command {
	var encryptPassword string

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Generate a DESKSCHED_CRED_KEY, optionally encrypting a password with it",
		RunE: func(cmd *cobra.Command, args []string) error {
			keyB64 := strings.TrimSpace(os.Getenv("DESKSCHED_CRED_KEY"))
			if keyB64 == "" {
				var err error
				keyB64, err = crypto.NewKey()
				if err != nil {
					return err
				}
				fmt.Fprintf(os.Stdout, "export DESKSCHED_CRED_KEY=%s\n", keyB64)
			}

			if encryptPassword != "" {
				key, err := base64.StdEncoding.DecodeString(keyB64)
				if err != nil {
					return fmt.Errorf("DESKSCHED_CRED_KEY: %w", err)
				}
				aead, err := crypto.New(key)
				if err != nil {
					return err
				}
				enc, err := aead.Encrypt(encryptPassword)
				if err != nil {
					return err
				}
				fmt.Fprintf(os.Stdout, "export DESKSCHED_PASSWORD_ENC=%s\n", enc)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&encryptPassword, "encrypt-password", "", "password to encrypt with the key")
	return cmd
}
