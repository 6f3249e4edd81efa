// Package proof renders a canonical triple store into the fixed JSON-LD proof
// document layout, and parses such documents back.
package proof

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pilacorp/go-rdf-proof/errs"
	"github.com/pilacorp/go-rdf-proof/rdf"
)

const (
	// DefaultMaxSize is the largest rendered document, in bytes.
	DefaultMaxSize = 2048
	// DefaultDescription is the document's description value.
	DefaultDescription = "Hello World!"
)

// DefaultContext is the document's @context.
var DefaultContext = []string{"http://schema.org/", "https://w3id.org/security/v2"}

// Proof block field names, in rendering order.
const (
	FieldType               = "type"
	FieldCreated            = "created"
	FieldVerificationMethod = "verificationMethod"
	FieldProofPurpose       = "proofPurpose"
	FieldJWS                = "jws"
)

var fieldOrder = []rdf.Predicate{
	rdf.PredicateProofType,
	rdf.PredicateProofCreated,
	rdf.PredicateVerificationMethod,
	rdf.PredicateProofPurpose,
	rdf.PredicateJWS,
}

// BuilderOpt configures a Builder.
type BuilderOpt func(*Builder)

// WithMaxSize sets the maximum rendered size in bytes. Values below 1 are ignored.
func WithMaxSize(n int) BuilderOpt {
	return func(b *Builder) {
		if n > 0 {
			b.maxSize = n
		}
	}
}

// WithDescription sets the description value.
func WithDescription(description string) BuilderOpt {
	return func(b *Builder) {
		b.description = description
	}
}

// WithContext replaces the @context entries.
func WithContext(context ...string) BuilderOpt {
	return func(b *Builder) {
		b.context = append([]string(nil), context...)
	}
}

// Builder renders proof documents. It holds no per-document state, so one
// Builder may be reused for any number of renders.
type Builder struct {
	maxSize     int
	description string
	context     []string
}

// NewBuilder returns a Builder with the default layout values.
func NewBuilder(opts ...BuilderOpt) *Builder {
	b := &Builder{
		maxSize:     DefaultMaxSize,
		description: DefaultDescription,
		context:     append([]string(nil), DefaultContext...),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// MaxSize returns the maximum rendered size in bytes.
func (b *Builder) MaxSize() int {
	return b.maxSize
}

// Render walks the canonical store once and emits the proof document.
//
// created and signature always come from the arguments: the ProofCreated and
// jws triples only mark their fields as present. A recognized predicate that
// has no triple is omitted from the output.
func (b *Builder) Render(store *rdf.Store, created, signature string) ([]byte, error) {
	if store == nil {
		return nil, errs.New(errs.KindRender, "proof.Render", "store is nil")
	}
	if !store.IsCanonical() {
		return nil, errs.New(errs.KindRender, "proof.Render", "store is not canonical")
	}

	values := make(map[rdf.Predicate]string, len(fieldOrder))
	for _, t := range store.Triples() {
		kind := t.Kind()
		if !kind.Recognized() {
			continue
		}
		if _, dup := values[kind]; dup {
			return nil, errs.New(errs.KindRender, "proof.Render",
				fmt.Sprintf("predicate %s appears more than once", kind))
		}
		switch kind {
		case rdf.PredicateProofCreated:
			values[kind] = created
		case rdf.PredicateJWS:
			values[kind] = signature
		default:
			values[kind] = t.Object
		}
	}

	var buf bytes.Buffer
	buf.WriteString("{\n  \"@context\": [")
	for i, c := range b.context {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(quote(c))
	}
	buf.WriteString("],\n  \"description\": ")
	buf.WriteString(quote(b.description))
	buf.WriteString(",\n  \"proof\": {\n")

	first := true
	for _, kind := range fieldOrder {
		v, ok := values[kind]
		if !ok {
			continue
		}
		if !first {
			buf.WriteString(",\n")
		}
		first = false
		buf.WriteString("    ")
		buf.WriteString(quote(fieldName(kind)))
		buf.WriteString(": ")
		buf.WriteString(quote(v))
	}
	if !first {
		buf.WriteString("\n")
	}
	buf.WriteString("  }\n}\n")

	if buf.Len() > b.maxSize {
		return nil, errs.New(errs.KindRenderOverflow, "proof.Render",
			fmt.Sprintf("document is %d bytes, limit is %d", buf.Len(), b.maxSize))
	}
	return buf.Bytes(), nil
}

func fieldName(p rdf.Predicate) string {
	switch p {
	case rdf.PredicateProofType:
		return FieldType
	case rdf.PredicateProofCreated:
		return FieldCreated
	case rdf.PredicateVerificationMethod:
		return FieldVerificationMethod
	case rdf.PredicateProofPurpose:
		return FieldProofPurpose
	case rdf.PredicateJWS:
		return FieldJWS
	default:
		panic(fmt.Sprintf("proof: no field for predicate %d", p))
	}
}

// quote returns s as a JSON string literal without HTML escaping.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
