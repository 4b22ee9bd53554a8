package schemagraph

import (
	"github.com/cayleygraph/quad"

	"github.com/reoring/wotschema"
	"github.com/reoring/wotschema/dataschema"
	"github.com/reoring/wotschema/graph"
)

// Enumerator is a graph that can list its subject nodes.
type Enumerator interface {
	graph.Graph
	Subjects() []quad.Value
}

// Roots returns the schema nodes of g that are not the value of a
// js:properties or js:items edge, in graph order. These are the candidate
// roots a caller scanning a whole document would decode.
func Roots(g Enumerator) []quad.Value {
	subjects := g.Subjects()
	nested := make(map[string]struct{})
	for _, s := range subjects {
		for _, v := range g.ValuesOf(s, predProperties) {
			nested[graph.Key(v)] = struct{}{}
		}
		for _, v := range g.ValuesOf(s, predItems) {
			nested[graph.Key(v)] = struct{}{}
		}
	}
	var out []quad.Value
	for _, s := range subjects {
		if _, ok := nested[graph.Key(s)]; ok {
			continue
		}
		if Classify(g, s).OK {
			out = append(out, s)
		}
	}
	return out
}

// Roots lists the candidate roots of the decoder's graph. It returns nil
// when the graph cannot enumerate its subjects.
func (d *Decoder) Roots() []quad.Value {
	e, ok := d.g.(Enumerator)
	if !ok {
		return nil
	}
	return Roots(e)
}

// Result is the outcome of decoding one node.
type Result struct {
	Node   quad.Value
	Schema dataschema.Schema
	Issues wotschema.Issues
}

// DecodeAll decodes each node in order and drops the ones that are not
// schemas.
func (d *Decoder) DecodeAll(nodes []quad.Value) []Result {
	out := make([]Result, 0, len(nodes))
	for _, n := range nodes {
		s, iss := d.Decode(n)
		if s == nil {
			continue
		}
		out = append(out, Result{Node: n, Schema: s, Issues: iss})
	}
	return out
}
