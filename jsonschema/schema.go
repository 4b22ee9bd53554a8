// Package jsonschema projects decoded data schemas back into the JSON form
// used by Thing Description documents.
package jsonschema

import (
	"github.com/goccy/go-json"

	"github.com/reoring/wotschema/dataschema"
)

// Schema is the TD JSON rendering of a data schema.
type Schema struct {
	// Core
	Type          string   `json:"type,omitempty" yaml:"type,omitempty"`
	SemanticTypes []string `json:"@type,omitempty" yaml:"@type,omitempty"`

	// String
	Enum []string `json:"enum,omitempty" yaml:"enum,omitempty"`

	// Number and integer. Holds int64 for integer schemas so that bounds print
	// without a fraction.
	Minimum any `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum any `json:"maximum,omitempty" yaml:"maximum,omitempty"`

	// Object
	Properties map[string]*Schema `json:"properties,omitempty" yaml:"properties,omitempty"`
	Required   []string           `json:"required,omitempty" yaml:"required,omitempty"`

	// Array. Items is a *Schema for a single item schema and a []*Schema
	// otherwise.
	Items    any     `json:"items,omitempty" yaml:"items,omitempty"`
	MinItems *uint64 `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems *uint64 `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
}

// FromDataSchema converts a decoded tree. A nil input yields nil.
func FromDataSchema(s dataschema.Schema) *Schema {
	if s == nil {
		return nil
	}
	out := &Schema{Type: s.Kind().String(), SemanticTypes: s.SemanticTypes()}
	switch v := s.(type) {
	case *dataschema.Object:
		props := v.Properties()
		if len(props) > 0 {
			out.Properties = make(map[string]*Schema, len(props))
			for name, p := range props {
				out.Properties[name] = FromDataSchema(p)
			}
		}
		out.Required = v.Required()
	case *dataschema.Array:
		items := v.Items()
		switch len(items) {
		case 0:
		case 1:
			out.Items = FromDataSchema(items[0])
		default:
			list := make([]*Schema, len(items))
			for i, it := range items {
				list[i] = FromDataSchema(it)
			}
			out.Items = list
		}
		if n, ok := v.MinItems(); ok {
			out.MinItems = &n
		}
		if n, ok := v.MaxItems(); ok {
			out.MaxItems = &n
		}
	case *dataschema.String:
		out.Enum = v.Enum()
	case *dataschema.Number:
		if x, ok := v.Minimum(); ok {
			out.Minimum = x
		}
		if x, ok := v.Maximum(); ok {
			out.Maximum = x
		}
	case *dataschema.Integer:
		if x, ok := v.Minimum(); ok {
			out.Minimum = x
		}
		if x, ok := v.Maximum(); ok {
			out.Maximum = x
		}
	}
	return out
}

// Marshal renders s as indented JSON.
func Marshal(s *Schema) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
