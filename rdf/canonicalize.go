package rdf

import (
	"strings"

	"golang.org/x/exp/slices"
)

// Compare orders triples by subject, then predicate, then object, each
// compared byte-wise. It returns 0 only for byte-identical triples.
func Compare(a, b Triple) int {
	if c := strings.Compare(a.Subject, b.Subject); c != 0 {
		return c
	}
	if c := strings.Compare(a.Predicate, b.Predicate); c != 0 {
		return c
	}
	return strings.Compare(a.Object, b.Object)
}

// Canonicalize sorts triples in place into canonical order. Equal triples are
// indistinguishable, so stability is not needed.
func Canonicalize(triples []Triple) {
	slices.SortFunc(triples, Compare)
}
