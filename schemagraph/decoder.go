// Package schemagraph rebuilds data-schema trees from an RDF graph described
// with the WoT JSON Schema vocabulary.
//
// Decoding is best-effort. A node without a kind marker is simply not a
// schema (nil result, no issue). Malformed input inside a tree is reported as
// wotschema.Issues and only drops the smallest affected subtree.
//
// Cycles: the decoder tracks the nodes on the active recursion path; meeting
// one of them again ends that branch with a cyclic_reference issue. A node
// shared by two sibling branches (a DAG) is decoded once per branch.
package schemagraph

import (
	"math"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/sirupsen/logrus"

	"github.com/reoring/wotschema"
	"github.com/reoring/wotschema/dataschema"
	"github.com/reoring/wotschema/graph"
	"github.com/reoring/wotschema/metrics"
	"github.com/reoring/wotschema/vocab"
)

// Options controls decoding.
type Options struct {
	// MaxDepth bounds nesting below the root node (0 = unlimited). Deeper
	// subtrees are dropped with a max_depth issue.
	MaxDepth int
	// Severity overrides the default severity per issue code. Codes mapped to
	// wotschema.Ignore are not reported at all.
	Severity map[string]wotschema.Severity
	// Logger receives every reported issue. Nil disables logging.
	Logger logrus.FieldLogger
	// Metrics records decode counters. Nil disables metrics.
	Metrics *metrics.Metrics
}

// Decoder decodes schema nodes of one graph. It holds no per-call state and
// is safe for concurrent use as long as the graph is.
type Decoder struct {
	g    graph.Graph
	opts Options
}

// NewDecoder creates a Decoder over g.
func NewDecoder(g graph.Graph, opts Options) *Decoder {
	return &Decoder{g: g, opts: opts}
}

// Graph returns the graph the decoder reads.
func (d *Decoder) Graph() graph.Graph { return d.g }

// Decode rebuilds the schema rooted at node. A nil Schema means node carries
// no schema kind marker.
func (d *Decoder) Decode(node quad.Value) (dataschema.Schema, wotschema.Issues) {
	st := &state{d: d, onPath: make(map[string]struct{})}
	s := st.decode(node, wotschema.Root(), 0)
	kind := "none"
	if s != nil {
		kind = s.Kind().String()
	}
	d.opts.Metrics.ObserveDecode(kind)
	return s, st.issues
}

// Decode is a convenience wrapper using default options and discarding
// issues.
func Decode(g graph.Graph, node quad.Value) (dataschema.Schema, bool) {
	s, _ := NewDecoder(g, Options{}).Decode(node)
	return s, s != nil
}

// state is the per-call traversal state.
type state struct {
	d      *Decoder
	onPath map[string]struct{}
	issues wotschema.Issues
}

var (
	predProperties   = quad.IRI(vocab.Properties)
	predPropertyName = quad.IRI(vocab.PropertyName)
	predRequired     = quad.IRI(vocab.Required)
	predItems        = quad.IRI(vocab.Items)
	predMinItems     = quad.IRI(vocab.MinItems)
	predMaxItems     = quad.IRI(vocab.MaxItems)
	predMinimum      = quad.IRI(vocab.Minimum)
	predMaximum      = quad.IRI(vocab.Maximum)
	predEnum         = quad.IRI(vocab.Enum)
)

func (st *state) decode(node quad.Value, at wotschema.PathRef, depth int) dataschema.Schema {
	if !graph.IsNode(node) {
		return nil
	}
	c := Classify(st.d.g, node)
	if !c.OK {
		return nil
	}
	key := graph.Key(node)
	if _, cyc := st.onPath[key]; cyc {
		st.report(at, node, wotschema.CodeCyclicReference)
		return nil
	}
	if limit := st.d.opts.MaxDepth; limit > 0 && depth > limit {
		st.report(at, node, wotschema.CodeMaxDepth, "max", limit)
		return nil
	}
	if c.Ambiguous() {
		names := make([]string, len(c.Markers))
		for i, k := range c.Markers {
			names[i] = k.String()
		}
		st.report(at, node, wotschema.CodeAmbiguousKind, "kinds", strings.Join(names, ","), "chosen", c.Kind.String())
	}
	st.onPath[key] = struct{}{}
	defer delete(st.onPath, key)
	st.d.opts.Metrics.ObserveNode()

	switch c.Kind {
	case dataschema.KindObject:
		return st.object(node, at, depth, c.SemanticTypes)
	case dataschema.KindArray:
		return st.array(node, at, depth, c.SemanticTypes)
	case dataschema.KindString:
		return st.str(node, at, c.SemanticTypes)
	case dataschema.KindNumber:
		return dataschema.NewNumber(c.SemanticTypes,
			st.float(node, predMinimum, at.Field("minimum")),
			st.float(node, predMaximum, at.Field("maximum")))
	case dataschema.KindInteger:
		return dataschema.NewInteger(c.SemanticTypes,
			st.integer(node, predMinimum, at.Field("minimum")),
			st.integer(node, predMaximum, at.Field("maximum")))
	case dataschema.KindBoolean:
		return dataschema.NewBoolean(c.SemanticTypes)
	case dataschema.KindNull:
		return dataschema.NewNull(c.SemanticTypes)
	}
	return nil
}

func (st *state) object(node quad.Value, at wotschema.PathRef, depth int, types []string) dataschema.Schema {
	g := st.d.g
	var props []dataschema.Property
	seen := make(map[string]struct{})
	for i, v := range g.ValuesOf(node, predProperties) {
		name, ok := st.propertyName(v)
		if !ok {
			st.report(at.Field("properties").Index(i), v, wotschema.CodeMissingPropertyName)
			continue
		}
		sub := st.decode(v, at.Field("properties").Field(name), depth+1)
		if sub == nil {
			continue
		}
		if _, dup := seen[name]; dup {
			st.report(at.Field("properties").Field(name), v, wotschema.CodeDuplicateProperty, "name", name)
		}
		seen[name] = struct{}{}
		props = append(props, dataschema.Property{Name: name, Schema: sub})
	}

	var required []string
	for i, v := range g.ValuesOf(node, predRequired) {
		name, ok := literalText(v)
		if !ok {
			st.report(at.Field("required").Index(i), node, wotschema.CodeInvalidLiteral, "predicate", "required", "value", v)
			continue
		}
		required = append(required, name)
	}

	o := dataschema.NewObject(types, props, required)
	for _, name := range o.DanglingRequired() {
		st.report(at.Field("required"), node, wotschema.CodeDanglingRequired, "name", name)
	}
	return o
}

// propertyName reads the js:propertyName literal of a property node.
func (st *state) propertyName(v quad.Value) (string, bool) {
	if !graph.IsNode(v) {
		return "", false
	}
	for _, n := range st.d.g.ValuesOf(v, predPropertyName) {
		if s, ok := literalText(n); ok {
			return s, true
		}
	}
	return "", false
}

func (st *state) array(node quad.Value, at wotschema.PathRef, depth int, types []string) dataschema.Schema {
	var items []dataschema.Schema
	for i, v := range st.d.g.ValuesOf(node, predItems) {
		// unrecognized item nodes are skipped without an issue
		if sub := st.decode(v, at.Field("items").Index(i), depth+1); sub != nil {
			items = append(items, sub)
		}
	}
	return dataschema.NewArray(types, items,
		st.count(node, predMinItems, at.Field("minItems")),
		st.count(node, predMaxItems, at.Field("maxItems")))
}

func (st *state) str(node quad.Value, at wotschema.PathRef, types []string) dataschema.Schema {
	var enum []string
	for i, v := range st.d.g.ValuesOf(node, predEnum) {
		s, ok := graph.LexicalForm(v)
		if !ok {
			st.report(at.Field("enum").Index(i), node, wotschema.CodeInvalidLiteral, "predicate", "enum", "value", v)
			continue
		}
		enum = append(enum, s)
	}
	return dataschema.NewString(types, enum)
}

// count reads a non-negative integer bound (minItems/maxItems).
func (st *state) count(node quad.Value, pred quad.IRI, at wotschema.PathRef) *uint64 {
	v, lit, ok := st.first(node, pred)
	if !ok {
		return nil
	}
	switch x := lit.(type) {
	case int64:
		if x >= 0 {
			u := uint64(x)
			return &u
		}
	case float64:
		if x >= 0 && x == math.Trunc(x) && x < math.MaxInt64 {
			u := uint64(x)
			return &u
		}
	}
	st.report(at, node, wotschema.CodeInvalidLiteral, "predicate", vocab.Short(string(pred)), "value", v)
	return nil
}

func (st *state) float(node quad.Value, pred quad.IRI, at wotschema.PathRef) *float64 {
	v, lit, ok := st.first(node, pred)
	if !ok {
		return nil
	}
	switch x := lit.(type) {
	case int64:
		f := float64(x)
		return &f
	case float64:
		if !math.IsNaN(x) {
			return &x
		}
	}
	st.report(at, node, wotschema.CodeInvalidLiteral, "predicate", vocab.Short(string(pred)), "value", v)
	return nil
}

// integer reads an integer bound. Fractional values are truncated toward
// zero and flagged as lossy.
func (st *state) integer(node quad.Value, pred quad.IRI, at wotschema.PathRef) *int64 {
	v, lit, ok := st.first(node, pred)
	if !ok {
		return nil
	}
	switch x := lit.(type) {
	case int64:
		return &x
	case float64:
		if math.IsNaN(x) || x >= math.MaxInt64 || x < math.MinInt64 {
			break
		}
		t := math.Trunc(x)
		if t != x {
			st.report(at, node, wotschema.CodeLossyCoercion, "value", v, "result", int64(t))
		}
		i := int64(t)
		return &i
	}
	st.report(at, node, wotschema.CodeInvalidLiteral, "predicate", vocab.Short(string(pred)), "value", v)
	return nil
}

// first returns the first value of pred and its literal scalar. ok is false
// when the edge is absent; a non-literal value yields a nil scalar.
func (st *state) first(node quad.Value, pred quad.IRI) (quad.Value, any, bool) {
	v, ok := graph.First(st.d.g, node, pred)
	if !ok {
		return nil, nil, false
	}
	lit, _ := graph.LiteralValue(v)
	return v, lit, true
}

// literalText accepts literal terms only and returns their lexical form.
func literalText(v quad.Value) (string, bool) {
	if _, ok := graph.LiteralValue(v); !ok {
		return "", false
	}
	return graph.LexicalForm(v)
}

func (st *state) report(at wotschema.PathRef, node quad.Value, code string, kv ...any) {
	st.d.opts.Reporter().Report(&st.issues, at, node, code, kv...)
}
