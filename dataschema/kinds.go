package dataschema

// Property is a named entry of an object schema.
type Property struct {
	Name   string
	Schema Schema
}

// Object is an object schema.
type Object struct {
	base
	names    []string
	props    map[string]Schema
	required []string
}

// NewObject builds an object schema. A repeated property name keeps its first
// position and its last schema. required may name properties that are absent.
func NewObject(semanticTypes []string, props []Property, required []string) *Object {
	o := &Object{base: newBase(semanticTypes), props: make(map[string]Schema, len(props))}
	for _, p := range props {
		if p.Schema == nil {
			continue
		}
		if _, ok := o.props[p.Name]; !ok {
			o.names = append(o.names, p.Name)
		}
		o.props[p.Name] = p.Schema
	}
	o.required = dedupe(required, nil)
	return o
}

func (*Object) Kind() Kind { return KindObject }

// PropertyNames returns the property names in first-seen order.
func (o *Object) PropertyNames() []string { return append([]string(nil), o.names...) }

// Properties returns a copy of the property map.
func (o *Object) Properties() map[string]Schema {
	out := make(map[string]Schema, len(o.props))
	for k, v := range o.props {
		out[k] = v
	}
	return out
}

// Property returns the schema of a property.
func (o *Object) Property(name string) (Schema, bool) {
	s, ok := o.props[name]
	return s, ok
}

// Len returns the number of properties.
func (o *Object) Len() int { return len(o.names) }

// Required returns the required names in first-seen order.
func (o *Object) Required() []string { return append([]string(nil), o.required...) }

func (o *Object) IsRequired(name string) bool {
	for _, r := range o.required {
		if r == name {
			return true
		}
	}
	return false
}

// DanglingRequired returns required names without a matching property.
func (o *Object) DanglingRequired() []string {
	var out []string
	for _, r := range o.required {
		if _, ok := o.props[r]; !ok {
			out = append(out, r)
		}
	}
	return out
}

// Array is an array schema. Each entry of Items is an acceptable shape; the
// same shape may appear more than once.
type Array struct {
	base
	items    []Schema
	minItems *uint64
	maxItems *uint64
}

// NewArray builds an array schema; nil bounds are absent.
func NewArray(semanticTypes []string, items []Schema, minItems, maxItems *uint64) *Array {
	a := &Array{base: newBase(semanticTypes)}
	for _, it := range items {
		if it != nil {
			a.items = append(a.items, it)
		}
	}
	a.minItems = copyPtr(minItems)
	a.maxItems = copyPtr(maxItems)
	return a
}

func (*Array) Kind() Kind { return KindArray }

// Items returns the item schemas in encounter order.
func (a *Array) Items() []Schema { return append([]Schema(nil), a.items...) }

func (a *Array) MinItems() (uint64, bool) { return deref(a.minItems) }
func (a *Array) MaxItems() (uint64, bool) { return deref(a.maxItems) }

// String is a string schema. An empty enumeration means unconstrained.
type String struct {
	base
	enum []string
}

// NewString builds a string schema. Enumeration order and duplicates are kept.
func NewString(semanticTypes []string, enum []string) *String {
	s := &String{base: newBase(semanticTypes)}
	if len(enum) > 0 {
		s.enum = append([]string(nil), enum...)
	}
	return s
}

func (*String) Kind() Kind { return KindString }

func (s *String) Enum() []string { return append([]string(nil), s.enum...) }

// Number is a number schema.
type Number struct {
	base
	minimum *float64
	maximum *float64
}

func NewNumber(semanticTypes []string, minimum, maximum *float64) *Number {
	return &Number{base: newBase(semanticTypes), minimum: copyPtr(minimum), maximum: copyPtr(maximum)}
}

func (*Number) Kind() Kind { return KindNumber }

func (n *Number) Minimum() (float64, bool) { return deref(n.minimum) }
func (n *Number) Maximum() (float64, bool) { return deref(n.maximum) }

// Integer is an integer schema; bounds are whole numbers.
type Integer struct {
	base
	minimum *int64
	maximum *int64
}

func NewInteger(semanticTypes []string, minimum, maximum *int64) *Integer {
	return &Integer{base: newBase(semanticTypes), minimum: copyPtr(minimum), maximum: copyPtr(maximum)}
}

func (*Integer) Kind() Kind { return KindInteger }

func (i *Integer) Minimum() (int64, bool) { return deref(i.minimum) }
func (i *Integer) Maximum() (int64, bool) { return deref(i.maximum) }

// Boolean is a boolean schema.
type Boolean struct{ base }

func NewBoolean(semanticTypes []string) *Boolean { return &Boolean{base: newBase(semanticTypes)} }

func (*Boolean) Kind() Kind { return KindBoolean }

// Null is a null schema.
type Null struct{ base }

func NewNull(semanticTypes []string) *Null { return &Null{base: newBase(semanticTypes)} }

func (*Null) Kind() Kind { return KindNull }

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

// Ptr returns a pointer to v, for optional constructor arguments.
func Ptr[T any](v T) *T { return &v }
