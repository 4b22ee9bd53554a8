package schemagraph

import (
	"github.com/cayleygraph/quad"

	"github.com/reoring/wotschema/dataschema"
	"github.com/reoring/wotschema/graph"
)

// Classification is the result of inspecting the type edges of a node.
type Classification struct {
	// OK is false when no kind marker is present.
	OK   bool
	Kind dataschema.Kind
	// Markers lists every kind found, in precedence order. More than one
	// means the node is ambiguous and Kind holds the highest-precedence one.
	Markers []dataschema.Kind
	// SemanticTypes are the remaining type IRIs in graph order.
	SemanticTypes []string
}

// Ambiguous reports whether several kind markers were present.
func (c Classification) Ambiguous() bool { return len(c.Markers) > 1 }

// Classify maps the type edges of node onto a schema kind. Precedence when
// several markers are present: object, array, string, number, integer,
// boolean, null.
func Classify(g graph.Graph, node quad.Value) Classification {
	var (
		c     Classification
		found = make(map[dataschema.Kind]bool, 1)
	)
	for _, t := range g.TypesOf(node) {
		iri := string(t.Full())
		if k, ok := dataschema.KindOfMarker(iri); ok {
			found[k] = true
			continue
		}
		c.SemanticTypes = append(c.SemanticTypes, iri)
	}
	for _, k := range dataschema.Kinds {
		if found[k] {
			c.Markers = append(c.Markers, k)
		}
	}
	if len(c.Markers) == 0 {
		return c
	}
	c.OK = true
	c.Kind = c.Markers[0]
	return c
}
