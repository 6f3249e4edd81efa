package rdf

import (
	"fmt"
	"strings"

	"github.com/piprate/json-gold/ld"

	"github.com/pilacorp/go-rdf-proof/errs"
)

const (
	// DefaultSubjectBase turns bare subjects such as "credential1" into IRIs.
	DefaultSubjectBase = "urn:rdfproof:"
	// DefaultVocabulary is prefixed to bare predicate names.
	DefaultVocabulary = "https://w3id.org/security#"

	defaultGraph = "@default"
)

// NQuadsOptions holds the IRI mapping used for N-Quads export and import.
type NQuadsOptions struct {
	SubjectBase string
	Vocabulary  string
}

// NQuadsOpt are the options for N-Quads operations.
type NQuadsOpt func(opts *NQuadsOptions)

// WithSubjectBase sets the prefix used for subjects that are not IRIs.
func WithSubjectBase(base string) NQuadsOpt {
	return func(opts *NQuadsOptions) {
		opts.SubjectBase = base
	}
}

// WithVocabulary sets the prefix used for predicates that are not IRIs.
func WithVocabulary(vocab string) NQuadsOpt {
	return func(opts *NQuadsOptions) {
		opts.Vocabulary = vocab
	}
}

func prepareNQuadsOpts(opts []NQuadsOpt) *NQuadsOptions {
	o := &NQuadsOptions{
		SubjectBase: DefaultSubjectBase,
		Vocabulary:  DefaultVocabulary,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Dataset converts the store's triples, in their current order, into a
// json-gold RDF dataset with a single default graph. Objects become
// xsd:string literals.
func (s *Store) Dataset(opts ...NQuadsOpt) *ld.RDFDataset {
	o := prepareNQuadsOpts(opts)

	dataset := ld.NewRDFDataset()
	quads := make([]*ld.Quad, 0, len(s.triples))
	for _, t := range s.triples {
		quads = append(quads, ld.NewQuad(
			toNode(t.Subject, o.SubjectBase),
			ld.NewIRI(expand(t.Predicate, o.Vocabulary)),
			ld.NewLiteral(t.Object, ld.XSDString, ""),
			defaultGraph,
		))
	}
	dataset.Graphs[defaultGraph] = quads
	return dataset
}

// ToNQuads serializes the store as N-Quads.
func (s *Store) ToNQuads(opts ...NQuadsOpt) (string, error) {
	serializer := &ld.NQuadRDFSerializer{}
	out, err := serializer.Serialize(s.Dataset(opts...))
	if err != nil {
		return "", fmt.Errorf("failed to serialize N-Quads: %w", err)
	}
	view, ok := out.(string)
	if !ok {
		return "", fmt.Errorf("failed to serialize N-Quads, invalid view %T", out)
	}
	return view, nil
}

// FromNQuads parses N-Quads from the default graph into a new store, mapping
// IRIs back through the subject base and vocabulary. Quads whose object is
// not a literal are rejected.
func FromNQuads(input string, storeOpts []StoreOpt, opts ...NQuadsOpt) (*Store, error) {
	o := prepareNQuadsOpts(opts)

	dataset, err := ld.ParseNQuads(input)
	if err != nil {
		return nil, errs.Wrap(errs.KindParse, "rdf.FromNQuads", "invalid N-Quads", err)
	}

	store := NewStore(storeOpts...)
	for _, q := range dataset.Graphs[defaultGraph] {
		lit, ok := q.Object.(*ld.Literal)
		if !ok {
			return nil, errs.New(errs.KindParse, "rdf.FromNQuads",
				fmt.Sprintf("object %q is not a literal", q.Object.GetValue()))
		}
		subject := strings.TrimPrefix(q.Subject.GetValue(), o.SubjectBase)
		predicate := strings.TrimPrefix(q.Predicate.GetValue(), o.Vocabulary)
		if err := store.Add(subject, predicate, lit.Value); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func toNode(subject, base string) ld.Node {
	if strings.HasPrefix(subject, "_:") {
		return ld.NewBlankNode(subject)
	}
	return ld.NewIRI(expand(subject, base))
}

// expand prefixes name with base unless it already carries a scheme.
func expand(name, base string) string {
	if strings.Contains(name, ":") {
		return name
	}
	return base + name
}
