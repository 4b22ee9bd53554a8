// Package graph is the read-only view of an RDF graph the decoders work
// against, plus an in-memory Store built from cayleygraph/quad values.
//
// Edges leaving a node are returned in the order they were added. That order
// is stable but carries no meaning beyond what callers assign to it (array
// items and string enumerations keep it, object properties do not).
package graph

import (
	"github.com/cayleygraph/quad"

	"github.com/reoring/wotschema/vocab"
)

// Graph answers the two questions a schema decoder asks of a node.
// Implementations must be safe for concurrent readers.
type Graph interface {
	// TypesOf returns the distinct rdf:type IRIs of node.
	TypesOf(node quad.Value) []quad.IRI
	// ValuesOf returns every object of an edge (node, pred, ?) in edge order.
	ValuesOf(node quad.Value, pred quad.IRI) []quad.Value
}

// RDFType is rdf:type as a quad IRI.
const RDFType = quad.IRI(vocab.RDFType)

// IsNode reports whether v can be the subject of an edge (IRI or blank node).
func IsNode(v quad.Value) bool {
	switch v.(type) {
	case quad.IRI, quad.BNode:
		return true
	}
	return false
}

// Key is the identity of a node used for maps and cycle detection.
func Key(v quad.Value) string {
	if v == nil {
		return ""
	}
	if iri, ok := v.(quad.IRI); ok {
		return iri.Full().String()
	}
	return v.String()
}

// First returns the first value of pred on node, if any.
func First(g Graph, node quad.Value, pred quad.IRI) (quad.Value, bool) {
	vs := g.ValuesOf(node, pred)
	if len(vs) == 0 {
		return nil, false
	}
	return vs[0], true
}

// HasType reports whether node carries the type t.
func HasType(g Graph, node quad.Value, t quad.IRI) bool {
	t = t.Full()
	for _, it := range g.TypesOf(node) {
		if it.Full() == t {
			return true
		}
	}
	return false
}
