package rdf

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/pilacorp/go-rdf-proof/errs"
)

// DefaultCapacity is the maximum number of triples a Store holds unless
// WithCapacity says otherwise.
const DefaultCapacity = 100

// StoreOpt configures a Store.
type StoreOpt func(*Store)

// WithCapacity sets the maximum number of triples. Values below 1 are ignored.
func WithCapacity(n int) StoreOpt {
	return func(s *Store) {
		if n > 0 {
			s.capacity = n
		}
	}
}

// Store is an append-only, bounded, ordered collection of triples. It keeps
// insertion order until Canonicalize is called.
//
// A Store is not safe for concurrent use.
type Store struct {
	triples  []Triple
	capacity int
}

// NewStore returns an empty store.
func NewStore(opts ...StoreOpt) *Store {
	s := &Store{capacity: DefaultCapacity}
	for _, opt := range opts {
		opt(s)
	}
	s.triples = make([]Triple, 0, s.capacity)
	return s
}

// Add trims the inputs and appends the triple. A full store is left
// unchanged and an errs.KindCapacityExceeded error is returned.
func (s *Store) Add(subject, predicate, object string) error {
	if len(s.triples) >= s.capacity {
		return errs.New(errs.KindCapacityExceeded, "store.Add",
			fmt.Sprintf("store is full (%d triples)", s.capacity))
	}
	s.triples = append(s.triples, NewTriple(subject, predicate, object))
	return nil
}

// Size returns the number of stored triples.
func (s *Store) Size() int {
	return len(s.triples)
}

// Capacity returns the maximum number of triples.
func (s *Store) Capacity() int {
	return s.capacity
}

// Triples returns a copy of the triples in their current order.
func (s *Store) Triples() []Triple {
	return slices.Clone(s.triples)
}

// Clear drops every triple, keeping the capacity.
func (s *Store) Clear() {
	s.triples = s.triples[:0]
}

// Canonicalize sorts the store in place into canonical order.
func (s *Store) Canonicalize() {
	Canonicalize(s.triples)
}

// IsCanonical reports whether the triples are already in canonical order.
func (s *Store) IsCanonical() bool {
	return slices.IsSortedFunc(s.triples, Compare)
}
