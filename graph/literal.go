package graph

import (
	"strconv"
	"strings"
	"time"

	"github.com/cayleygraph/quad"

	"github.com/reoring/wotschema/vocab"
)

// LiteralValue returns the scalar carried by a literal term: string, int64,
// float64 or bool. IRIs and blank nodes are not literals.
//
// Typed literals are converted by their XSD datatype; a lexical form that
// does not parse under its datatype is returned as a string.
func LiteralValue(v quad.Value) (any, bool) {
	switch t := v.(type) {
	case nil, quad.IRI, quad.BNode:
		return nil, false
	case quad.String:
		return string(t), true
	case quad.LangString:
		return string(t.Value), true
	case quad.TypedString:
		return typedLiteral(t), true
	case quad.Int:
		return int64(t), true
	case quad.Float:
		return float64(t), true
	case quad.Bool:
		return bool(t), true
	case quad.Time:
		return time.Time(t).Format(time.RFC3339Nano), true
	}
	return nil, false
}

// LexicalForm renders a term as text: the lexical form of literals and the
// full IRI of IRIs. Blank nodes have no lexical form.
func LexicalForm(v quad.Value) (string, bool) {
	switch t := v.(type) {
	case quad.IRI:
		return string(t.Full()), true
	case quad.BNode, nil:
		return "", false
	case quad.String:
		return string(t), true
	case quad.LangString:
		return string(t.Value), true
	case quad.TypedString:
		return string(t.Value), true
	}
	lit, ok := LiteralValue(v)
	if !ok {
		return "", false
	}
	switch x := lit.(type) {
	case string:
		return x, true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), true
	case bool:
		return strconv.FormatBool(x), true
	}
	return "", false
}

func typedLiteral(t quad.TypedString) any {
	if pv, err := t.ParseValue(); err == nil {
		if _, still := pv.(quad.TypedString); !still {
			if lit, ok := LiteralValue(pv); ok {
				return lit
			}
		}
	}
	lex := strings.TrimSpace(string(t.Value))
	dt := string(t.Type.Full())
	if !strings.HasPrefix(dt, vocab.XSD) {
		return string(t.Value)
	}
	switch strings.TrimPrefix(dt, vocab.XSD) {
	case "integer", "int", "long", "short", "byte",
		"nonNegativeInteger", "positiveInteger", "nonPositiveInteger", "negativeInteger",
		"unsignedLong", "unsignedInt", "unsignedShort", "unsignedByte":
		if i, err := strconv.ParseInt(lex, 10, 64); err == nil {
			return i
		}
	case "decimal", "double", "float":
		if f, err := strconv.ParseFloat(lex, 64); err == nil {
			return f
		}
	case "boolean":
		if b, err := strconv.ParseBool(lex); err == nil {
			return b
		}
	}
	return string(t.Value)
}
