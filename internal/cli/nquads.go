package cli

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pilacorp/go-rdf-proof/pipeline"
	"github.com/pilacorp/go-rdf-proof/proof"
	"github.com/pilacorp/go-rdf-proof/rdf"
)

func newNQuadsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nquads [file]",
		Short: "Export a proof document's triples as N-Quads, or render N-Quads back into a document",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runNQuads,
	}
	cmd.Flags().Bool("render", false, "read N-Quads and print the rendered document")
	return cmd
}

func (a *app) runNQuads(cmd *cobra.Command, args []string) error {
	path := a.cfg.Output
	if len(args) == 1 {
		path = args[0]
	}
	in, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading input")
	}

	if render, _ := cmd.Flags().GetBool("render"); render {
		return a.renderNQuads(cmd, string(in))
	}

	doc, err := proof.Parse(in)
	if err != nil {
		return errors.Wrapf(err, "parsing %s", path)
	}
	subject := a.cfg.Subject
	if subject == "" {
		subject = pipeline.DefaultSubject
	}
	store, err := doc.Store(subject)
	if err != nil {
		return err
	}
	nq, err := store.ToNQuads()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), nq)
	return nil
}

func (a *app) renderNQuads(cmd *cobra.Command, input string) error {
	store, err := rdf.FromNQuads(input, []rdf.StoreOpt{rdf.WithCapacity(a.cfg.Capacity)})
	if err != nil {
		return errors.Wrap(err, "reading N-Quads")
	}
	store.Canonicalize()

	var created, signature string
	for _, t := range store.Triples() {
		switch t.Kind() {
		case rdf.PredicateProofCreated:
			created = t.Object
		case rdf.PredicateJWS:
			signature = t.Object
		}
	}
	if signature != "" {
		if err := proof.CheckSignature(signature); err != nil {
			return err
		}
	}

	doc, err := a.cfg.Builder().Render(store, created, signature)
	if err != nil {
		return errors.Wrap(err, "rendering document")
	}
	_, err = cmd.OutOrStdout().Write(doc)
	return err
}
