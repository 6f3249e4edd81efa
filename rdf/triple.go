// Package rdf holds the bounded triple store used to describe a proof block,
// and the canonical order applied to it before rendering.
package rdf

import "strings"

// Predicate is the tagged kind of a triple's predicate over the closed proof
// vocabulary. Anything outside the vocabulary is PredicateUnrecognized; the raw
// name stays on the Triple.
type Predicate int

const (
	PredicateUnrecognized Predicate = iota
	PredicateProofType
	PredicateProofCreated
	PredicateVerificationMethod
	PredicateProofPurpose
	PredicateJWS
)

// Vocabulary names, matched case-sensitively.
const (
	ProofType          = "ProofType"
	ProofCreated       = "ProofCreated"
	VerificationMethod = "VerificationMethod"
	ProofPurpose       = "ProofPurpose"
	JWS                = "jws"
)

var predicateNames = map[string]Predicate{
	ProofType:          PredicateProofType,
	ProofCreated:       PredicateProofCreated,
	VerificationMethod: PredicateVerificationMethod,
	ProofPurpose:       PredicateProofPurpose,
	JWS:                PredicateJWS,
}

// ParsePredicate maps a predicate name to its kind.
func ParsePredicate(name string) Predicate {
	if p, ok := predicateNames[name]; ok {
		return p
	}
	return PredicateUnrecognized
}

// String returns the vocabulary name, or "Unrecognized".
func (p Predicate) String() string {
	switch p {
	case PredicateProofType:
		return ProofType
	case PredicateProofCreated:
		return ProofCreated
	case PredicateVerificationMethod:
		return VerificationMethod
	case PredicateProofPurpose:
		return ProofPurpose
	case PredicateJWS:
		return JWS
	default:
		return "Unrecognized"
	}
}

// Recognized reports whether p is part of the proof vocabulary.
func (p Predicate) Recognized() bool {
	return p != PredicateUnrecognized
}

// Triple is a (subject, predicate, object) fact.
type Triple struct {
	Subject   string
	Predicate string
	Object    string

	kind Predicate
}

// NewTriple trims the three fields and resolves the predicate kind.
func NewTriple(subject, predicate, object string) Triple {
	t := Triple{
		Subject:   trimSpace(subject),
		Predicate: trimSpace(predicate),
		Object:    trimSpace(object),
	}
	t.kind = ParsePredicate(t.Predicate)
	return t
}

// Kind returns the predicate kind resolved at insertion time.
func (t Triple) Kind() Predicate {
	return t.kind
}

// asciiSpace is the ASCII whitespace set, vertical tab included.
const asciiSpace = " \t\n\v\f\r"

func trimSpace(s string) string {
	// Stored values never share a backing array with the caller's string.
	return strings.Clone(strings.Trim(s, asciiSpace))
}
