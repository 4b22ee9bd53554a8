// Package dataschema defines the decoded data-schema tree: one immutable type
// per schema kind behind the Schema interface.
//
// Values are built once by their constructors, which copy every input slice
// and map; accessors return copies. Trees are acyclic and never share
// mutable state, so they are safe to use from several goroutines.
package dataschema

import "github.com/reoring/wotschema/vocab"

// Kind identifies which of the seven schema kinds a Schema is.
type Kind int

const (
	KindObject Kind = iota
	KindArray
	KindString
	KindNumber
	KindInteger
	KindBoolean
	KindNull
)

// Kinds lists every kind in classification precedence order.
var Kinds = []Kind{KindObject, KindArray, KindString, KindNumber, KindInteger, KindBoolean, KindNull}

// String returns the TD JSON "type" name of the kind.
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	}
	return "unknown"
}

// Marker returns the JSON Schema vocabulary IRI that marks a node of this
// kind.
func (k Kind) Marker() string {
	switch k {
	case KindObject:
		return vocab.ObjectSchema
	case KindArray:
		return vocab.ArraySchema
	case KindString:
		return vocab.StringSchema
	case KindNumber:
		return vocab.NumberSchema
	case KindInteger:
		return vocab.IntegerSchema
	case KindBoolean:
		return vocab.BooleanSchema
	case KindNull:
		return vocab.NullSchema
	}
	return ""
}

// KindOfMarker is the inverse of Kind.Marker.
func KindOfMarker(iri string) (Kind, bool) {
	for _, k := range Kinds {
		if k.Marker() == iri {
			return k, true
		}
	}
	return 0, false
}

// Schema is the root node interface of a decoded tree.
type Schema interface {
	Kind() Kind
	// SemanticTypes returns the ontology types of the node, excluding the
	// kind marker.
	SemanticTypes() []string
	HasSemanticType(iri string) bool
	sealed()
}

type base struct {
	types []string
}

func newBase(types []string) base {
	return base{types: dedupe(types, isMarker)}
}

func (b base) SemanticTypes() []string { return append([]string(nil), b.types...) }

func (b base) HasSemanticType(iri string) bool {
	for _, t := range b.types {
		if t == iri {
			return true
		}
	}
	return false
}

func (base) sealed() {}

func isMarker(iri string) bool {
	_, ok := KindOfMarker(iri)
	return ok
}

// dedupe copies in, dropping repeats and entries rejected by skip.
func dedupe(in []string, skip func(string) bool) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if skip != nil && skip(s) {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
