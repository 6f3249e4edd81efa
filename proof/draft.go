package proof

import (
	"bytes"
	"fmt"

	"github.com/pilacorp/go-rdf-proof/errs"
	"github.com/pilacorp/go-rdf-proof/rdf"
)

type draftState int

const (
	draftOpen draftState = iota
	draftUnsigned
	draftSigned
)

// Draft is the two-step rendering of one document: RenderUnsigned produces
// the bytes to sign, RenderSigned embeds the signature over them. Each step
// runs once, in order.
type Draft struct {
	builder  *Builder
	store    *rdf.Store
	created  string
	state    draftState
	unsigned []byte
}

// NewDraft starts a draft over a canonical store and a timestamp.
func NewDraft(builder *Builder, store *rdf.Store, created string) *Draft {
	if builder == nil {
		builder = NewBuilder()
	}
	return &Draft{builder: builder, store: store, created: created}
}

// RenderUnsigned renders the document with an empty jws value.
func (d *Draft) RenderUnsigned() ([]byte, error) {
	if d.state != draftOpen {
		return nil, errs.New(errs.KindRender, "draft.RenderUnsigned", "document already rendered")
	}
	out, err := d.builder.Render(d.store, d.created, "")
	if err != nil {
		return nil, err
	}
	d.unsigned = out
	d.state = draftUnsigned
	return bytes.Clone(out), nil
}

// RenderSigned renders the final document carrying signature, which must be
// non-empty uppercase hex of even length.
func (d *Draft) RenderSigned(signature string) ([]byte, error) {
	switch d.state {
	case draftOpen:
		return nil, errs.New(errs.KindRender, "draft.RenderSigned", "RenderUnsigned has not run")
	case draftSigned:
		return nil, errs.New(errs.KindRender, "draft.RenderSigned", "document already signed")
	}
	if err := CheckSignature(signature); err != nil {
		return nil, err
	}
	out, err := d.builder.Render(d.store, d.created, signature)
	if err != nil {
		return nil, err
	}
	d.state = draftSigned
	return out, nil
}

// Unsigned returns the bytes produced by RenderUnsigned, or nil.
func (d *Draft) Unsigned() []byte {
	return bytes.Clone(d.unsigned)
}

// CheckSignature reports whether s is a usable jws value: non-empty, even
// length, digits and upper-case A-F only.
func CheckSignature(s string) error {
	if s == "" {
		return errs.New(errs.KindSign, "proof.CheckSignature", "signature is empty")
	}
	if len(s)%2 != 0 {
		return errs.New(errs.KindSign, "proof.CheckSignature",
			fmt.Sprintf("signature has odd length %d", len(s)))
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'A' || c > 'F') {
			return errs.New(errs.KindSign, "proof.CheckSignature",
				fmt.Sprintf("signature has non upper-case hex byte %q at %d", c, i))
		}
	}
	return nil
}
