package td

import "github.com/cayleygraph/quad"

// Thing is a Thing Description read from a graph.
type Thing struct {
	node       quad.Value
	title      string
	base       string
	types      []string
	security   []SecurityScheme
	properties []PropertyAffordance
	actions    []ActionAffordance
	events     []EventAffordance
}

// Node is the graph node the Thing was read from.
func (t Thing) Node() quad.Value { return t.node }

func (t Thing) Title() string { return t.title }

// Base is the IRI relative form targets were resolved against.
func (t Thing) Base() (string, bool) { return t.base, t.base != "" }

func (t Thing) SemanticTypes() []string { return append([]string(nil), t.types...) }

func (t Thing) HasSemanticType(iri string) bool {
	for _, x := range t.types {
		if x == iri {
			return true
		}
	}
	return false
}

func (t Thing) SecuritySchemes() []SecurityScheme {
	return append([]SecurityScheme(nil), t.security...)
}

func (t Thing) Properties() []PropertyAffordance {
	return append([]PropertyAffordance(nil), t.properties...)
}

func (t Thing) Actions() []ActionAffordance { return append([]ActionAffordance(nil), t.actions...) }

func (t Thing) Events() []EventAffordance { return append([]EventAffordance(nil), t.events...) }

func (t Thing) Property(name string) (PropertyAffordance, bool) {
	for _, p := range t.properties {
		if p.name == name {
			return p, true
		}
	}
	return PropertyAffordance{}, false
}

func (t Thing) Action(name string) (ActionAffordance, bool) {
	for _, a := range t.actions {
		if a.name == name {
			return a, true
		}
	}
	return ActionAffordance{}, false
}

func (t Thing) Event(name string) (EventAffordance, bool) {
	for _, e := range t.events {
		if e.name == name {
			return e, true
		}
	}
	return EventAffordance{}, false
}

// FirstPropertyBySemanticType returns the first property annotated with iri.
func (t Thing) FirstPropertyBySemanticType(iri string) (PropertyAffordance, bool) {
	for _, p := range t.properties {
		if p.HasSemanticType(iri) {
			return p, true
		}
	}
	return PropertyAffordance{}, false
}

// FirstActionBySemanticType returns the first action annotated with iri.
func (t Thing) FirstActionBySemanticType(iri string) (ActionAffordance, bool) {
	for _, a := range t.actions {
		if a.HasSemanticType(iri) {
			return a, true
		}
	}
	return ActionAffordance{}, false
}
