package graph

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"
)

// ErrInvalidQuad is returned when a quad cannot be stored: its subject is not
// an IRI or blank node, or its predicate is not an IRI.
var ErrInvalidQuad = errors.New("graph: invalid quad")

// QuadReader is the subset of quad.Reader the Store consumes.
type QuadReader interface {
	ReadQuad() (quad.Quad, error)
}

// Store is an in-memory, insertion-ordered edge index. Named graph labels are
// ignored; all quads land in one default graph. Repeated edges are kept.
//
// A Store may be filled and read concurrently, although decoders expect it to
// be fully loaded before they run.
type Store struct {
	mu    sync.RWMutex
	nodes map[string]*entry
	order []string // subject keys in first-seen order
	size  int
}

type entry struct {
	node  quad.Value
	preds map[quad.IRI][]quad.Value
	// predicate order for Predicates
	porder []quad.IRI
}

// New creates an empty Store.
func New() *Store {
	return &Store{nodes: make(map[string]*entry)}
}

var _ Graph = (*Store)(nil)

// Add stores a single quad.
func (s *Store) Add(q quad.Quad) error {
	if !IsNode(q.Subject) {
		return fmt.Errorf("%w: subject %v", ErrInvalidQuad, q.Subject)
	}
	p, ok := q.Predicate.(quad.IRI)
	if !ok {
		return fmt.Errorf("%w: predicate %v", ErrInvalidQuad, q.Predicate)
	}
	if q.Object == nil {
		return fmt.Errorf("%w: missing object", ErrInvalidQuad)
	}
	p = p.Full()
	subj := q.Subject
	if iri, ok := subj.(quad.IRI); ok {
		subj = iri.Full()
	}
	obj := q.Object
	if iri, ok := obj.(quad.IRI); ok {
		obj = iri.Full()
	}

	k := Key(subj)
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.nodes[k]
	if e == nil {
		e = &entry{node: subj, preds: make(map[quad.IRI][]quad.Value)}
		s.nodes[k] = e
		s.order = append(s.order, k)
	}
	if _, seen := e.preds[p]; !seen {
		e.porder = append(e.porder, p)
	}
	e.preds[p] = append(e.preds[p], obj)
	s.size++
	return nil
}

// AddQuads stores quads in order, stopping at the first invalid one.
func (s *Store) AddQuads(qs ...quad.Quad) error {
	for _, q := range qs {
		if err := s.Add(q); err != nil {
			return err
		}
	}
	return nil
}

// ReadFrom drains r into the store and returns the number of quads added.
func (s *Store) ReadFrom(r QuadReader) (int, error) {
	n := 0
	for {
		q, err := r.ReadQuad()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return n, nil
			}
			return n, fmt.Errorf("graph: read quad %d: %w", n+1, err)
		}
		if err := s.Add(q); err != nil {
			return n, err
		}
		n++
	}
}

// ReadNQuads parses an N-Quads (or N-Triples) document into the store.
func (s *Store) ReadNQuads(r io.Reader) (int, error) {
	return s.ReadFrom(nquads.NewReader(r, false))
}

// ParseNQuads builds a new Store from N-Quads text.
func ParseNQuads(text string) (*Store, error) {
	s := New()
	if _, err := s.ReadNQuads(strings.NewReader(text)); err != nil {
		return nil, err
	}
	return s, nil
}

// Len returns the number of stored edges.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

// TypesOf implements Graph.
func (s *Store) TypesOf(node quad.Value) []quad.IRI {
	vs := s.ValuesOf(node, RDFType)
	if len(vs) == 0 {
		return nil
	}
	out := make([]quad.IRI, 0, len(vs))
	seen := make(map[quad.IRI]struct{}, len(vs))
	for _, v := range vs {
		iri, ok := v.(quad.IRI)
		if !ok {
			continue
		}
		if _, dup := seen[iri]; dup {
			continue
		}
		seen[iri] = struct{}{}
		out = append(out, iri)
	}
	return out
}

// ValuesOf implements Graph. The returned slice is owned by the caller.
func (s *Store) ValuesOf(node quad.Value, pred quad.IRI) []quad.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e := s.nodes[Key(node)]
	if e == nil {
		return nil
	}
	vs := e.preds[pred.Full()]
	if len(vs) == 0 {
		return nil
	}
	return append([]quad.Value(nil), vs...)
}

// Predicates lists the predicates leaving node in first-seen order.
func (s *Store) Predicates(node quad.Value) []quad.IRI {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e := s.nodes[Key(node)]
	if e == nil {
		return nil
	}
	return append([]quad.IRI(nil), e.porder...)
}

// Subjects lists every node with at least one outgoing edge, in first-seen
// order.
func (s *Store) Subjects() []quad.Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]quad.Value, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.nodes[k].node)
	}
	return out
}

// SubjectsOf lists the subjects having an edge (?, pred, obj).
func (s *Store) SubjectsOf(pred quad.IRI, obj quad.Value) []quad.Value {
	pred = pred.Full()
	want := Key(obj)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []quad.Value
	for _, k := range s.order {
		e := s.nodes[k]
		for _, v := range e.preds[pred] {
			if Key(v) == want {
				out = append(out, e.node)
				break
			}
		}
	}
	return out
}

// ObjectsOf lists every object of pred across the graph, in edge order.
func (s *Store) ObjectsOf(pred quad.IRI) []quad.Value {
	pred = pred.Full()
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []quad.Value
	for _, k := range s.order {
		out = append(out, s.nodes[k].preds[pred]...)
	}
	return out
}
