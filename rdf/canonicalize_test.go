package rdf

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func proofTriples() [][3]string {
	return [][3]string{
		{" credential1  ", " ProofType ", "EcdsaSignature2018"},
		{" credential1 ", " ProofCreated ", "2025-10-23T05:50:16Z"},
		{" credential1 ", " VerificationMethod ", "did:example:123456789abcdefghi#key1"},
		{" credential1 ", " ProofPurpose ", "assertionMethod"},
		{" credential1 ", " jws ", ""},
	}
}

func storeOf(t *testing.T, rows [][3]string) *Store {
	t.Helper()
	s := NewStore()
	for _, r := range rows {
		require.NoError(t, s.Add(r[0], r[1], r[2]))
	}
	return s
}

func TestCanonicalizeOrder(t *testing.T) {
	s := storeOf(t, proofTriples())
	assert.False(t, s.IsCanonical())

	s.Canonicalize()

	var preds []string
	for _, tr := range s.Triples() {
		preds = append(preds, tr.Predicate)
	}
	// Byte order puts upper case before lower case.
	assert.Equal(t, []string{"ProofCreated", "ProofPurpose", "ProofType", "VerificationMethod", "jws"}, preds)
	assert.True(t, s.IsCanonical())
}

func TestCanonicalizeSubjectThenPredicateThenObject(t *testing.T) {
	s := storeOf(t, [][3]string{
		{"b", "p", "1"},
		{"a", "q", "1"},
		{"a", "p", "2"},
		{"a", "p", "1"},
		{"a", "p", "1"},
	})
	s.Canonicalize()

	assert.Equal(t, []Triple{
		NewTriple("a", "p", "1"),
		NewTriple("a", "p", "1"),
		NewTriple("a", "p", "2"),
		NewTriple("a", "q", "1"),
		NewTriple("b", "p", "1"),
	}, s.Triples())
}

func TestCanonicalizeIdempotent(t *testing.T) {
	s := storeOf(t, proofTriples())
	s.Canonicalize()
	once := s.Triples()

	s.Canonicalize()
	assert.Equal(t, once, s.Triples())
}

func TestCanonicalizeOrderIndependent(t *testing.T) {
	rows := append(proofTriples(),
		[3]string{"credential2", "ProofType", "Ed25519Signature2020"},
		[3]string{"credential1", "note", "unrecognized predicates are kept"},
		[3]string{"credential1", "ProofType", "EcdsaSignature2018"},
	)

	reference := storeOf(t, rows)
	reference.Canonicalize()

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 25; i++ {
		shuffled := append([][3]string(nil), rows...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		s := storeOf(t, shuffled)
		s.Canonicalize()
		assert.Equal(t, reference.Triples(), s.Triples())
	}
}

func TestCompare(t *testing.T) {
	a := NewTriple("s", "p", "o")
	assert.Equal(t, 0, Compare(a, NewTriple("s", "p", "o")))
	assert.Equal(t, -1, Compare(a, NewTriple("s", "p", "p")))
	assert.Equal(t, 1, Compare(a, NewTriple("s", "P", "o")))
	assert.Equal(t, -1, Compare(NewTriple("", "z", "z"), a))
}
