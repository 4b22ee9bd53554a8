package td

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/sirupsen/logrus"

	"github.com/reoring/wotschema"
	"github.com/reoring/wotschema/dataschema"
	"github.com/reoring/wotschema/graph"
	"github.com/reoring/wotschema/schemagraph"
	"github.com/reoring/wotschema/vocab"
)

// ErrNotThing is returned by Read when the node is not typed td:Thing.
var ErrNotThing = errors.New("td: node is not a Thing")

var (
	typeThing    = quad.IRI(vocab.Thing)
	typeProperty = quad.IRI(vocab.PropertyAffordance)
	typeAction   = quad.IRI(vocab.ActionAffordance)
	typeEvent    = quad.IRI(vocab.EventAffordance)

	predTitle      = quad.IRI(vocab.Title)
	predName       = quad.IRI(vocab.Name)
	predBase       = quad.IRI(vocab.HasBase)
	predSecurity   = quad.IRI(vocab.HasSecurityConfiguration)
	predProperty   = quad.IRI(vocab.HasPropertyAffordance)
	predAction     = quad.IRI(vocab.HasActionAffordance)
	predEvent      = quad.IRI(vocab.HasEventAffordance)
	predForm       = quad.IRI(vocab.HasForm)
	predInput      = quad.IRI(vocab.HasInputSchema)
	predOutput     = quad.IRI(vocab.HasOutputSchema)
	predNotify     = quad.IRI(vocab.HasNotificationSchema)
	predObservable = quad.IRI(vocab.IsObservable)
	predSafe       = quad.IRI(vocab.IsSafe)
	predIdempotent = quad.IRI(vocab.IsIdempotent)

	predTarget      = quad.IRI(vocab.HasTarget)
	predContentType = quad.IRI(vocab.ForContentType)
	predOperation   = quad.IRI(vocab.HasOperationType)
	predSubProtocol = quad.IRI(vocab.ForSubProtocol)
	predMethod      = quad.IRI(vocab.MethodName)
)

// Operation types assumed for forms that declare none.
var defaultOps = map[string][]string{
	"property": {OpReadProperty, OpWriteProperty},
	"action":   {OpInvokeAction},
	"event":    {OpSubscribeEvent},
}

// predicateLister is implemented by graphs that can list the predicates of a
// node (graph.Store does). Security configuration bags need it.
type predicateLister interface {
	Predicates(node quad.Value) []quad.IRI
}

type reader struct {
	g    graph.Graph
	dec  *schemagraph.Decoder
	rep  schemagraph.Reporter
	opts schemagraph.Options
	base *url.URL

	issues wotschema.Issues
}

// Read materializes the Thing rooted at node. Affordance schemas are decoded
// with opts; problems found along the way are returned as issues with paths
// in TD JSON layout (/properties/temp/forms/0). The error is non-nil only
// when node is not a Thing.
func Read(g graph.Graph, node quad.Value, opts schemagraph.Options) (Thing, wotschema.Issues, error) {
	if !graph.IsNode(node) || !graph.HasType(g, node, typeThing) {
		return Thing{}, nil, fmt.Errorf("%w: %v", ErrNotThing, node)
	}
	r := &reader{g: g, dec: schemagraph.NewDecoder(g, opts), rep: opts.Reporter(), opts: opts}
	t := r.thing(node)
	if opts.Logger != nil {
		opts.Logger.WithFields(logrus.Fields{
			"thing":      t.title,
			"properties": len(t.properties),
			"actions":    len(t.actions),
			"events":     len(t.events),
			"issues":     len(r.issues),
		}).Debug("thing description read")
	}
	return t, r.issues, nil
}

// ReadAll reads every td:Thing subject of g in graph order.
func ReadAll(g schemagraph.Enumerator, opts schemagraph.Options) ([]Thing, wotschema.Issues) {
	var (
		out []Thing
		all wotschema.Issues
	)
	for _, s := range g.Subjects() {
		if !graph.HasType(g, s, typeThing) {
			continue
		}
		t, iss, err := Read(g, s, opts)
		if err != nil {
			continue
		}
		out = append(out, t)
		all = append(all, iss...)
	}
	return out, all
}

func (r *reader) thing(node quad.Value) Thing {
	t := Thing{node: node}
	t.title, _ = r.text(node, predTitle)
	if b, ok := r.text(node, predBase); ok {
		if u, err := url.Parse(b); err == nil && u.IsAbs() {
			r.base = u
			t.base = u.String()
		} else {
			r.rep.Report(&r.issues, wotschema.At("/base"), node, wotschema.CodeInvalidTarget, "value", b)
		}
	}
	t.types = r.semanticTypes(node, typeThing)

	for i, v := range r.g.ValuesOf(node, predSecurity) {
		if s, ok := r.security(v, wotschema.Root().Field("security").Index(i)); ok {
			t.security = append(t.security, s)
		}
	}
	for _, v := range r.g.ValuesOf(node, predProperty) {
		if p, ok := r.property(v); ok {
			t.properties = append(t.properties, p)
		}
	}
	for _, v := range r.g.ValuesOf(node, predAction) {
		if a, ok := r.action(v); ok {
			t.actions = append(t.actions, a)
		}
	}
	for _, v := range r.g.ValuesOf(node, predEvent) {
		if e, ok := r.event(v); ok {
			t.events = append(t.events, e)
		}
	}
	return t
}

func (r *reader) property(node quad.Value) (PropertyAffordance, bool) {
	if !graph.IsNode(node) {
		return PropertyAffordance{}, false
	}
	name := r.name(node)
	at := wotschema.Root().Field("properties").Field(name)
	a := r.affordance(node, at, "property", typeProperty)

	// the property node doubles as its data schema
	s, iss := r.dec.Decode(node)
	r.issues = append(r.issues, rebase(at, iss)...)

	observable, _ := r.boolean(node, predObservable)
	r.opts.Metrics.ObserveAffordance("property")
	return NewPropertyAffordance(name, a, s, observable), true
}

func (r *reader) action(node quad.Value) (ActionAffordance, bool) {
	if !graph.IsNode(node) {
		return ActionAffordance{}, false
	}
	name := r.name(node)
	at := wotschema.Root().Field("actions").Field(name)
	a := r.affordance(node, at, "action", typeAction)
	var fields ActionFields
	fields.Input = r.schema(node, predInput, at.Field("input"))
	fields.Output = r.schema(node, predOutput, at.Field("output"))
	fields.Safe, _ = r.boolean(node, predSafe)
	fields.Idempotent, _ = r.boolean(node, predIdempotent)
	r.opts.Metrics.ObserveAffordance("action")
	return NewActionAffordance(name, a, fields), true
}

func (r *reader) event(node quad.Value) (EventAffordance, bool) {
	if !graph.IsNode(node) {
		return EventAffordance{}, false
	}
	name := r.name(node)
	at := wotschema.Root().Field("events").Field(name)
	a := r.affordance(node, at, "event", typeEvent)
	data := r.schema(node, predNotify, at.Field("data"))
	r.opts.Metrics.ObserveAffordance("event")
	return NewEventAffordance(name, a, data), true
}

func (r *reader) affordance(node quad.Value, at wotschema.PathRef, kind string, class quad.IRI) Affordance {
	b := NewAffordance()
	if title, ok := r.text(node, predTitle); ok {
		b.SetTitle(title)
	}
	b.AddSemanticType(r.semanticTypes(node, class)...)
	for i, v := range r.g.ValuesOf(node, predForm) {
		if f, ok := r.form(v, at.Field("forms").Index(i), defaultOps[kind]); ok {
			b.AddForm(f)
		}
	}
	return b.Build()
}

func (r *reader) form(node quad.Value, at wotschema.PathRef, defaults []string) (Form, bool) {
	if !graph.IsNode(node) {
		return Form{}, false
	}
	raw, ok := r.text(node, predTarget)
	if !ok {
		r.rep.Report(&r.issues, at, node, wotschema.CodeMissingTarget)
		return Form{}, false
	}
	u, err := url.Parse(raw)
	if err != nil {
		r.rep.Report(&r.issues, at.Field("href"), node, wotschema.CodeInvalidTarget, "value", raw)
		return Form{}, false
	}
	if !u.IsAbs() && r.base != nil {
		u = r.base.ResolveReference(u)
	}
	b := NewForm(u.String())

	for i, v := range r.g.ValuesOf(node, predOperation) {
		op, ok := graph.LexicalForm(v)
		if !ok {
			continue
		}
		if _, known := vocab.OperationIRI(normalizeOp(op)); !known {
			r.rep.Report(&r.issues, at.Field("op").Index(i), node, wotschema.CodeUnknownOperation, "value", op)
		}
		b.AddOperationType(op)
	}
	if len(b.f.ops) == 0 {
		b.AddOperationType(defaults...)
	}
	if ct, ok := r.text(node, predContentType); ok {
		b.SetContentType(ct)
	}
	if m, ok := r.text(node, predMethod); ok {
		b.SetMethod(strings.ToUpper(m))
	}
	if sp, ok := r.text(node, predSubProtocol); ok {
		b.SetSubProtocol(sp)
	}
	return b.Build(), true
}

func (r *reader) security(node quad.Value, at wotschema.PathRef) (SecurityScheme, bool) {
	if !graph.IsNode(node) {
		return SecurityScheme{}, false
	}
	var (
		name  string
		types []string
	)
	for _, t := range r.g.TypesOf(node) {
		iri := string(t.Full())
		if s, ok := SchemeForType(iri); ok && name == "" {
			name = s
			continue
		}
		types = append(types, iri)
	}
	if name == "" {
		r.rep.Report(&r.issues, at, node, wotschema.CodeUnknownScheme)
		return SecurityScheme{}, false
	}
	config := make(map[string]string)
	if pl, ok := r.g.(predicateLister); ok {
		for _, p := range pl.Predicates(node) {
			local := strings.TrimPrefix(string(p.Full()), vocab.WoTSec)
			if local == string(p.Full()) {
				continue
			}
			if v, ok := r.text(node, p); ok {
				config[local] = v
			}
		}
	}
	return NewSecurityScheme(name, config, types...), true
}

// schema decodes the schema linked from node by pred. A link to something
// that is not a schema is reported; an absent link is not.
func (r *reader) schema(node quad.Value, pred quad.IRI, at wotschema.PathRef) dataschema.Schema {
	v, ok := graph.First(r.g, node, pred)
	if !ok {
		return nil
	}
	s, iss := r.dec.Decode(v)
	r.issues = append(r.issues, rebase(at, iss)...)
	if s == nil {
		r.rep.Report(&r.issues, at, v, wotschema.CodeMissingSchema)
	}
	return s
}

// name is the affordance key: td:name, then td:title, then the node id.
func (r *reader) name(node quad.Value) string {
	if n, ok := r.text(node, predName); ok {
		return n
	}
	if n, ok := r.text(node, predTitle); ok {
		return n
	}
	return graph.Key(node)
}

// semanticTypes returns the types of node other than class and the schema
// kind markers.
func (r *reader) semanticTypes(node quad.Value, class quad.IRI) []string {
	var out []string
	for _, t := range r.g.TypesOf(node) {
		iri := string(t.Full())
		if iri == string(class.Full()) {
			continue
		}
		if _, marker := dataschema.KindOfMarker(iri); marker {
			continue
		}
		out = append(out, iri)
	}
	return out
}

func (r *reader) text(node quad.Value, pred quad.IRI) (string, bool) {
	v, ok := graph.First(r.g, node, pred)
	if !ok {
		return "", false
	}
	return graph.LexicalForm(v)
}

func (r *reader) boolean(node quad.Value, pred quad.IRI) (bool, bool) {
	v, ok := graph.First(r.g, node, pred)
	if !ok {
		return false, false
	}
	lit, _ := graph.LiteralValue(v)
	switch x := lit.(type) {
	case bool:
		return x, true
	case string:
		return x == "true", x == "true" || x == "false"
	}
	return false, false
}

// rebase moves decoder issues, whose paths start at the schema root, under
// prefix.
func rebase(prefix wotschema.PathRef, iss wotschema.Issues) wotschema.Issues {
	p := prefix.Pointer()
	for i := range iss {
		if iss[i].Path == "/" {
			iss[i].Path = p
		} else {
			iss[i].Path = p + iss[i].Path
		}
	}
	return iss
}
