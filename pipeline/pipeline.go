// Package pipeline builds, signs and emits one proof document per run:
//
//	init -> populate -> canonicalize -> render unsigned -> sign -> render signed -> emit
//
// With a verifier configured, the fresh signature is checked before emit.
// Any failing step halts the run. Nothing is emitted after a failed signature.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/pilacorp/go-rdf-proof/errs"
	"github.com/pilacorp/go-rdf-proof/internal/logging"
	"github.com/pilacorp/go-rdf-proof/proof"
	"github.com/pilacorp/go-rdf-proof/rdf"
	"github.com/pilacorp/go-rdf-proof/signer"
	"github.com/pilacorp/go-rdf-proof/sink"
)

// ErrBusy is returned by Run while another run holds the pipeline.
var ErrBusy = errors.New("pipeline: run already in progress")

// Result describes a completed run.
type Result struct {
	Subject   string
	Created   string
	Signature string
	// Unsigned is the document the signature was computed over.
	Unsigned []byte
	Document []byte
	Triples  []rdf.Triple
	CID      string
}

// Pipeline runs the credential build cycle against its collaborators.
type Pipeline struct {
	clock    Clock
	signer   signer.Signer
	sink     sink.Sink
	verifier signer.Verifier
	builder  *proof.Builder

	subject            string
	proofType          string
	verificationMethod string
	proofPurpose       string
	createdPlaceholder *string
	storeOpts          []rdf.StoreOpt
	validate           bool

	log *logrus.Entry
	sem *semaphore.Weighted
}

// New creates a Pipeline. The clock, signer and sink are required.
func New(clock Clock, s signer.Signer, out sink.Sink, opts ...Opt) (*Pipeline, error) {
	if clock == nil || s == nil || out == nil {
		return nil, errs.New(errs.KindConfig, "pipeline.New", "clock, signer and sink are required")
	}
	p := &Pipeline{
		clock:              clock,
		signer:             s,
		sink:               out,
		builder:            proof.NewBuilder(),
		subject:            DefaultSubject,
		proofType:          DefaultProofType,
		verificationMethod: DefaultVerificationMethod,
		proofPurpose:       DefaultProofPurpose,
		log:                logging.Component("pipeline"),
		sem:                semaphore.NewWeighted(1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run executes one full cycle and returns what it produced.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if !p.sem.TryAcquire(1) {
		return nil, ErrBusy
	}
	defer p.sem.Release(1)

	subject := p.subject
	if subject == "" {
		subject = "urn:uuid:" + uuid.NewString()
	}
	created := p.clock.Now()
	log := p.log.WithFields(logging.Fields{"subject": subject, "created": created})

	store, err := p.populate(subject, created)
	if err != nil {
		return nil, fmt.Errorf("failed to populate store: %w", err)
	}
	store.Canonicalize()

	draft := proof.NewDraft(p.builder, store, created)
	unsigned, err := draft.RenderUnsigned()
	if err != nil {
		return nil, fmt.Errorf("failed to render unsigned document: %w", err)
	}
	log.WithField("bytes", len(unsigned)).Debug("rendered unsigned document")

	signature, err := p.signer.Sign(ctx, unsigned)
	if err != nil {
		log.WithError(err).Warn("signing failed, nothing emitted")
		return nil, fmt.Errorf("failed to sign document: %w", withKind(err, errs.KindSign, "signer error"))
	}

	doc, err := draft.RenderSigned(signature)
	if err != nil {
		return nil, fmt.Errorf("failed to render signed document: %w", err)
	}
	if p.validate {
		if err := proof.Validate(doc); err != nil {
			return nil, fmt.Errorf("signed document failed validation: %w", err)
		}
	}
	if p.verifier != nil {
		if err := p.checkSignature(ctx, unsigned, signature); err != nil {
			log.WithError(err).Warn("signature self-check failed, nothing emitted")
			return nil, err
		}
	}

	if err := p.sink.Emit(ctx, doc); err != nil {
		log.WithError(err).Error("emit failed")
		return nil, fmt.Errorf("failed to emit document: %w", withKind(err, errs.KindSink, "sink error"))
	}

	cid, err := proof.ContentID(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to compute content id: %w", err)
	}
	log.WithField("cid", cid).Info("document emitted")

	return &Result{
		Subject:   subject,
		Created:   created,
		Signature: signature,
		Unsigned:  unsigned,
		Document:  doc,
		Triples:   store.Triples(),
		CID:       cid,
	}, nil
}

func (p *Pipeline) checkSignature(ctx context.Context, unsigned []byte, signature string) error {
	ok, err := p.verifier.Verify(ctx, unsigned, signature)
	if err != nil {
		return fmt.Errorf("failed to verify fresh signature: %w", withKind(err, errs.KindVerify, "verifier error"))
	}
	if !ok {
		return errs.New(errs.KindVerify, "pipeline.Run", "fresh signature does not verify")
	}
	return nil
}

// withKind gives collaborator errors that carry no kind the one of the step
// that failed.
func withKind(err error, kind errs.Kind, msg string) error {
	if errs.KindOf(err) != "" {
		return err
	}
	return errs.Wrap(kind, "pipeline.Run", msg, err)
}

func (p *Pipeline) populate(subject, created string) (*rdf.Store, error) {
	createdObject := created
	if p.createdPlaceholder != nil {
		createdObject = *p.createdPlaceholder
	}

	store := rdf.NewStore(p.storeOpts...)
	rows := [][2]string{
		{rdf.ProofType, p.proofType},
		{rdf.ProofCreated, createdObject},
		{rdf.VerificationMethod, p.verificationMethod},
		{rdf.ProofPurpose, p.proofPurpose},
		{rdf.JWS, ""},
	}
	for _, r := range rows {
		if err := store.Add(subject, r[0], r[1]); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// Verify checks that doc is a well-formed proof document whose jws verifies
// over its unsigned rendering.
func (p *Pipeline) Verify(ctx context.Context, doc []byte) (*proof.Document, error) {
	if p.verifier == nil {
		return nil, errs.New(errs.KindConfig, "pipeline.Verify", "no verifier configured")
	}
	return VerifyDocument(ctx, p.verifier, doc)
}

// VerifyDocument parses doc and checks its signature with v.
func VerifyDocument(ctx context.Context, v signer.Verifier, doc []byte) (*proof.Document, error) {
	parsed, err := proof.Parse(doc)
	if err != nil {
		return nil, err
	}
	if parsed.Signature() == "" {
		return nil, errs.New(errs.KindVerify, "pipeline.Verify", "document is not signed")
	}
	content, err := parsed.SignedContent()
	if err != nil {
		return nil, err
	}
	ok, err := v.Verify(ctx, content, parsed.Signature())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.New(errs.KindVerify, "pipeline.Verify", "signature does not match document")
	}
	logging.Component("pipeline").WithField("created", parsed.Created()).Debug("document verified")
	return parsed, nil
}
