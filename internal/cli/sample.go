package cli

import (
	"context"
	_ "embed"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/pilacorp/go-rdf-proof/crypto"
	"github.com/pilacorp/go-rdf-proof/pipeline"
	"github.com/pilacorp/go-rdf-proof/signer"
)

// sampleDocument is a P-256 signed proof document; sampleKey holds the
// matching public key.
var (
	//go:embed sample/sample_document.json
	sampleDocument []byte

	//go:embed sample/sample_key.yaml
	sampleKey []byte
)

func sampleVerifier() (signer.Verifier, error) {
	kf, err := crypto.ParseKeyFile(sampleKey)
	if err != nil {
		return nil, errors.Wrap(err, "sample key")
	}
	mv, err := kf.Verifier()
	if err != nil {
		return nil, errors.Wrap(err, "sample key")
	}
	return signer.NewLocalVerifier(mv)
}

// verifySample checks the embedded sample document against its key.
func verifySample(ctx context.Context, out io.Writer) error {
	v, err := sampleVerifier()
	if err != nil {
		return err
	}
	parsed, err := pipeline.VerifyDocument(ctx, v, sampleDocument)
	if err != nil {
		return errors.Wrap(err, "verifying sample document")
	}
	fmt.Fprintf(out, "%s", sampleDocument)
	fmt.Fprintln(out, "Signature verification successful!")
	fmt.Fprintf(out, "Created: %s\n", parsed.Created())
	return nil
}
