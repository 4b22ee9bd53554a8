package dataschema

// Equal reports whether two trees are structurally equal. Semantic types and
// required names compare as sets, properties ignore order, items and
// enumerations compare in order.
func Equal(a, b Schema) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() || !sameSet(a.SemanticTypes(), b.SemanticTypes()) {
		return false
	}
	switch x := a.(type) {
	case *Object:
		y := b.(*Object)
		if len(x.props) != len(y.props) || !sameSet(x.required, y.required) {
			return false
		}
		for name, xs := range x.props {
			ys, ok := y.props[name]
			if !ok || !Equal(xs, ys) {
				return false
			}
		}
		return true
	case *Array:
		y := b.(*Array)
		if !eqPtr(x.minItems, y.minItems) || !eqPtr(x.maxItems, y.maxItems) || len(x.items) != len(y.items) {
			return false
		}
		for i := range x.items {
			if !Equal(x.items[i], y.items[i]) {
				return false
			}
		}
		return true
	case *String:
		y := b.(*String)
		if len(x.enum) != len(y.enum) {
			return false
		}
		for i := range x.enum {
			if x.enum[i] != y.enum[i] {
				return false
			}
		}
		return true
	case *Number:
		y := b.(*Number)
		return eqPtr(x.minimum, y.minimum) && eqPtr(x.maximum, y.maximum)
	case *Integer:
		y := b.(*Integer)
		return eqPtr(x.minimum, y.minimum) && eqPtr(x.maximum, y.maximum)
	case *Boolean, *Null:
		return true
	}
	return false
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	m := make(map[string]struct{}, len(a))
	for _, s := range a {
		m[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := m[s]; !ok {
			return false
		}
	}
	return true
}

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
