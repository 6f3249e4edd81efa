package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pilacorp/go-rdf-proof/pipeline"
	"github.com/pilacorp/go-rdf-proof/proof"
)

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [document]",
		Short: "Verify the signature of a proof document (default: the output file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.Output
			if len(args) == 1 {
				path = args[0]
			}
			return a.verify(cmd.Context(), cmd.OutOrStdout(), path)
		},
	}
}

func (a *app) verify(ctx context.Context, out io.Writer, path string) error {
	doc, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading document")
	}

	v, err := a.cfg.Verifier()
	if err != nil {
		return err
	}

	parsed, err := pipeline.VerifyDocument(ctx, v, doc)
	if err != nil {
		return errors.Wrapf(err, "verifying %s", path)
	}

	cid, err := proof.ContentID(doc)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Signature verification successful!")
	fmt.Fprintf(out, "Created: %s\n", parsed.Created())
	fmt.Fprintf(out, "CID: %s\n", cid)
	return nil
}
