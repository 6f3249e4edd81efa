package pipeline

import (
	"github.com/sirupsen/logrus"

	"github.com/pilacorp/go-rdf-proof/proof"
	"github.com/pilacorp/go-rdf-proof/rdf"
	"github.com/pilacorp/go-rdf-proof/signer"
)

// Default triple values for one credential.
const (
	DefaultSubject            = "credential1"
	DefaultProofType          = "EcdsaSignature2018"
	DefaultVerificationMethod = "did:example:123456789abcdefghi#key1"
	DefaultProofPurpose       = "assertionMethod"
)

// Opt configures a Pipeline.
type Opt func(p *Pipeline)

// WithSubject sets the subject shared by the proof triples. An empty subject
// makes every run use a fresh urn:uuid subject.
func WithSubject(subject string) Opt {
	return func(p *Pipeline) {
		p.subject = subject
	}
}

// WithProofType sets the ProofType object.
func WithProofType(proofType string) Opt {
	return func(p *Pipeline) {
		p.proofType = proofType
	}
}

// WithVerificationMethod sets the VerificationMethod object.
func WithVerificationMethod(method string) Opt {
	return func(p *Pipeline) {
		p.verificationMethod = method
	}
}

// WithProofPurpose sets the ProofPurpose object.
func WithProofPurpose(purpose string) Opt {
	return func(p *Pipeline) {
		p.proofPurpose = purpose
	}
}

// WithCreatedPlaceholder stores placeholder as the ProofCreated object
// instead of the run's timestamp. The rendered created value always comes
// from the clock.
func WithCreatedPlaceholder(placeholder string) Opt {
	return func(p *Pipeline) {
		p.createdPlaceholder = &placeholder
	}
}

// WithCapacity sets the triple store capacity of each run.
func WithCapacity(n int) Opt {
	return func(p *Pipeline) {
		p.storeOpts = append(p.storeOpts, rdf.WithCapacity(n))
	}
}

// WithBuilder replaces the document builder.
func WithBuilder(b *proof.Builder) Opt {
	return func(p *Pipeline) {
		if b != nil {
			p.builder = b
		}
	}
}

// WithVerifier sets the verifier used by Verify. Run also checks every fresh
// signature with it and emits nothing when the check fails.
func WithVerifier(v signer.Verifier) Opt {
	return func(p *Pipeline) {
		p.verifier = v
	}
}

// WithLogger replaces the logger.
func WithLogger(l *logrus.Entry) Opt {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// WithSchemaValidation checks every signed document against the proof schema
// before it is emitted.
func WithSchemaValidation() Opt {
	return func(p *Pipeline) {
		p.validate = true
	}
}
