package td

import "github.com/reoring/wotschema/dataschema"

// Affordance is the part shared by property, action and event affordances:
// an optional title, semantic types and forms.
type Affordance struct {
	title    string
	hasTitle bool
	types    []string
	forms    []Form
}

func (a Affordance) Title() (string, bool) { return a.title, a.hasTitle }

func (a Affordance) SemanticTypes() []string { return append([]string(nil), a.types...) }

// Forms returns the forms in declaration order.
func (a Affordance) Forms() []Form { return append([]Form(nil), a.forms...) }

// HasFormWithOperationType reports whether any form supports op.
func (a Affordance) HasFormWithOperationType(op string) bool {
	_, ok := a.FirstFormForOperationType(op)
	return ok
}

// FirstFormForOperationType returns the first form, in declaration order,
// that supports op.
func (a Affordance) FirstFormForOperationType(op string) (Form, bool) {
	for _, f := range a.forms {
		if f.HasOperationType(op) {
			return f, true
		}
	}
	return Form{}, false
}

// FormsForOperationType returns every form supporting op.
func (a Affordance) FormsForOperationType(op string) []Form {
	var out []Form
	for _, f := range a.forms {
		if f.HasOperationType(op) {
			out = append(out, f)
		}
	}
	return out
}

func (a Affordance) HasSemanticType(t string) bool {
	for _, x := range a.types {
		if x == t {
			return true
		}
	}
	return false
}

// HasOneSemanticType reports whether at least one of ts is present.
func (a Affordance) HasOneSemanticType(ts ...string) bool {
	for _, t := range ts {
		if a.HasSemanticType(t) {
			return true
		}
	}
	return false
}

// HasAllSemanticTypes reports whether every one of ts is present. It is true
// for an empty ts.
func (a Affordance) HasAllSemanticTypes(ts ...string) bool {
	for _, t := range ts {
		if !a.HasSemanticType(t) {
			return false
		}
	}
	return true
}

// AffordanceBuilder assembles an Affordance.
type AffordanceBuilder struct {
	a Affordance
}

func NewAffordance(forms ...Form) *AffordanceBuilder {
	b := &AffordanceBuilder{}
	return b.AddForm(forms...)
}

func (b *AffordanceBuilder) SetTitle(title string) *AffordanceBuilder {
	b.a.title, b.a.hasTitle = title, true
	return b
}

// AddSemanticType appends semantic types, skipping duplicates.
func (b *AffordanceBuilder) AddSemanticType(ts ...string) *AffordanceBuilder {
	for _, t := range ts {
		if t != "" && !b.a.HasSemanticType(t) {
			b.a.types = append(b.a.types, t)
		}
	}
	return b
}

func (b *AffordanceBuilder) AddForm(fs ...Form) *AffordanceBuilder {
	b.a.forms = append(b.a.forms, fs...)
	return b
}

func (b *AffordanceBuilder) Build() Affordance {
	a := b.a
	a.types = append([]string(nil), b.a.types...)
	a.forms = append([]Form(nil), b.a.forms...)
	return a
}

// PropertyAffordance exposes a piece of Thing state. Its data schema is read
// from the affordance node itself.
type PropertyAffordance struct {
	Affordance
	name       string
	schema     dataschema.Schema
	observable bool
}

func NewPropertyAffordance(name string, a Affordance, schema dataschema.Schema, observable bool) PropertyAffordance {
	return PropertyAffordance{Affordance: a, name: name, schema: schema, observable: observable}
}

func (p PropertyAffordance) Name() string { return p.name }

// Schema is nil when the property declares no data schema.
func (p PropertyAffordance) Schema() dataschema.Schema { return p.schema }

func (p PropertyAffordance) Observable() bool { return p.observable }

// ActionAffordance is an operation a Thing can perform.
type ActionAffordance struct {
	Affordance
	name       string
	input      dataschema.Schema
	output     dataschema.Schema
	safe       bool
	idempotent bool
}

// ActionFields carries the action-specific fields for NewActionAffordance.
type ActionFields struct {
	Input      dataschema.Schema
	Output     dataschema.Schema
	Safe       bool
	Idempotent bool
}

func NewActionAffordance(name string, a Affordance, fields ActionFields) ActionAffordance {
	return ActionAffordance{
		Affordance: a,
		name:       name,
		input:      fields.Input,
		output:     fields.Output,
		safe:       fields.Safe,
		idempotent: fields.Idempotent,
	}
}

func (a ActionAffordance) Name() string { return a.name }

func (a ActionAffordance) InputSchema() (dataschema.Schema, bool) { return a.input, a.input != nil }

func (a ActionAffordance) OutputSchema() (dataschema.Schema, bool) { return a.output, a.output != nil }

func (a ActionAffordance) Safe() bool { return a.safe }

func (a ActionAffordance) Idempotent() bool { return a.idempotent }

// EventAffordance is a notification source.
type EventAffordance struct {
	Affordance
	name string
	data dataschema.Schema
}

func NewEventAffordance(name string, a Affordance, data dataschema.Schema) EventAffordance {
	return EventAffordance{Affordance: a, name: name, data: data}
}

func (e EventAffordance) Name() string { return e.name }

func (e EventAffordance) DataSchema() (dataschema.Schema, bool) { return e.data, e.data != nil }
