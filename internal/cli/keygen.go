package cli

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pilacorp/go-rdf-proof/crypto"
)

func newKeygenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a signing key file",
		Args:  cobra.NoArgs,
		RunE:  a.runKeygen,
	}
	cmd.Flags().Bool("force", false, "overwrite an existing key file")
	cmd.Flags().String("public-out", "", "also write a public-only key file")
	return cmd
}

func (a *app) runKeygen(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	publicOut, _ := cmd.Flags().GetString("public-out")
	path := a.cfg.KeyFile

	if _, err := os.Stat(path); err == nil && !force {
		return errors.Errorf("key file %s already exists, use --force to replace it", path)
	}

	kf, err := crypto.GenerateKey(a.cfg.Curve)
	if err != nil {
		return errors.Wrap(err, "generating key")
	}
	if err := kf.Save(path); err != nil {
		return err
	}
	if publicOut != "" {
		if err := kf.Public().Save(publicOut); err != nil {
			return err
		}
	}

	mb, err := kf.PublicKeyMultibase()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Curve: %s\n", kf.Curve)
	fmt.Fprintf(out, "Public key: %s\n", kf.PublicKey)
	fmt.Fprintf(out, "publicKeyMultibase: %s\n", mb)
	fmt.Fprintf(out, "Key saved to %s\n", path)
	return nil
}
