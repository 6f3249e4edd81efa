package proof

import (
	"bytes"
	"encoding/json"

	"github.com/pilacorp/go-rdf-proof/errs"
	"github.com/pilacorp/go-rdf-proof/rdf"
)

// Block is a decoded proof block. A nil field was absent from the document.
type Block struct {
	Type               *string `json:"type,omitempty"`
	Created            *string `json:"created,omitempty"`
	VerificationMethod *string `json:"verificationMethod,omitempty"`
	ProofPurpose       *string `json:"proofPurpose,omitempty"`
	JWS                *string `json:"jws,omitempty"`
}

// Document is a decoded proof document.
type Document struct {
	Context     []string `json:"@context"`
	Description string   `json:"description"`
	Proof       Block    `json:"proof"`

	raw []byte
}

// Parse validates and decodes a rendered proof document.
func Parse(doc []byte) (*Document, error) {
	if len(doc) == 0 {
		return nil, errs.New(errs.KindParse, "proof.Parse", "document is empty")
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}
	d := &Document{raw: bytes.Clone(doc)}
	if err := json.Unmarshal(doc, d); err != nil {
		return nil, errs.Wrap(errs.KindParse, "proof.Parse", "failed to unmarshal document", err)
	}
	return d, nil
}

// Signature returns the jws value, or "" when absent.
func (d *Document) Signature() string {
	return deref(d.Proof.JWS)
}

// Created returns the created value, or "" when absent.
func (d *Document) Created() string {
	return deref(d.Proof.Created)
}

// Store rebuilds the canonical triple set the document was rendered from.
// The ProofCreated and jws triples carry the document's values.
func (d *Document) Store(subject string, opts ...rdf.StoreOpt) (*rdf.Store, error) {
	s := rdf.NewStore(opts...)
	fields := []struct {
		predicate string
		value     *string
	}{
		{rdf.ProofType, d.Proof.Type},
		{rdf.ProofCreated, d.Proof.Created},
		{rdf.VerificationMethod, d.Proof.VerificationMethod},
		{rdf.ProofPurpose, d.Proof.ProofPurpose},
		{rdf.JWS, d.Proof.JWS},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		if err := s.Add(subject, f.predicate, *f.value); err != nil {
			return nil, err
		}
	}
	s.Canonicalize()
	return s, nil
}

// SignedContent returns the unsigned rendering the jws was computed over.
// The parsed bytes must be exactly what Render produces for the decoded
// fields; any other layout is rejected.
func (d *Document) SignedContent() ([]byte, error) {
	store, err := d.Store("document")
	if err != nil {
		return nil, err
	}
	maxSize := DefaultMaxSize
	if len(d.raw) > maxSize {
		maxSize = len(d.raw)
	}
	b := NewBuilder(WithMaxSize(maxSize), WithDescription(d.Description), WithContext(d.Context...))

	again, err := b.Render(store, d.Created(), d.Signature())
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(again, d.raw) {
		return nil, errs.New(errs.KindParse, "proof.SignedContent", "document is not in canonical layout")
	}
	return b.Render(store, d.Created(), "")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
