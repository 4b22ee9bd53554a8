// Package testgraph builds graph fixtures from compact, Turtle-like lines for
// tests. Each line is "subject predicate object"; the text is rendered as
// N-Quads and loaded through the real reader.
//
// Terms:
//
//	a                  rdf:type
//	js:X td:X hctl:X   vocabulary IRIs (also htv:, wotsec:, xsd:, ex:)
//	<http://...>       absolute IRI
//	_:b0               blank node
//	"text"             plain literal (the rest of the line, may contain spaces)
//	"1"^^xsd:integer   typed literal
//	42 / -1.5 / true   integer, decimal and boolean literals
package testgraph

import (
	"strconv"
	"strings"
	"testing"

	"github.com/reoring/wotschema/graph"
	"github.com/reoring/wotschema/vocab"
)

// Ex is the namespace behind the ex: prefix.
const Ex = "http://example.org/#"

var prefixes = map[string]string{
	"js":     vocab.JS,
	"td":     vocab.TD,
	"hctl":   vocab.HCTL,
	"htv":    vocab.HTV,
	"wotsec": vocab.WoTSec,
	"xsd":    vocab.XSD,
	"ex":     Ex,
}

// Build parses lines into a Store, failing the test on error.
func Build(tb testing.TB, lines ...string) *graph.Store {
	tb.Helper()
	g, err := graph.ParseNQuads(NQuads(lines...))
	if err != nil {
		tb.Fatalf("testgraph: %v", err)
	}
	return g
}

// NQuads renders lines as an N-Quads document.
func NQuads(lines ...string) string {
	var b strings.Builder
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		parts := strings.SplitN(l, " ", 3)
		if len(parts) != 3 {
			panic("testgraph: want 'subject predicate object': " + l)
		}
		b.WriteString(term(parts[0]))
		b.WriteByte(' ')
		b.WriteString(term(parts[1]))
		b.WriteByte(' ')
		b.WriteString(object(strings.TrimSpace(parts[2])))
		b.WriteString(" .\n")
	}
	return b.String()
}

func term(t string) string {
	switch {
	case t == "a":
		return "<" + vocab.RDFType + ">"
	case strings.HasPrefix(t, "_:"), strings.HasPrefix(t, "<"):
		return t
	}
	if i := strings.IndexByte(t, ':'); i > 0 {
		if ns, ok := prefixes[t[:i]]; ok {
			return "<" + ns + t[i+1:] + ">"
		}
	}
	panic("testgraph: unknown term " + t)
}

func object(o string) string {
	if strings.HasPrefix(o, `"`) {
		if i := strings.LastIndex(o, `"^^`); i > 0 {
			return o[:i+1] + "^^" + term(o[i+3:])
		}
		return o
	}
	if _, err := strconv.ParseInt(o, 10, 64); err == nil {
		return `"` + o + `"^^<` + vocab.XSD + `integer>`
	}
	if _, err := strconv.ParseFloat(o, 64); err == nil {
		return `"` + o + `"^^<` + vocab.XSD + `decimal>`
	}
	if o == "true" || o == "false" {
		return `"` + o + `"^^<` + vocab.XSD + `boolean>`
	}
	return term(o)
}
