package wotschema

// Package wotschema models W3C Web of Things Thing Descriptions read from RDF
// graphs:
//
// - Decoding of JSON-Schema-like data schemas from a graph (schemagraph)
// - An immutable, tagged schema tree with seven kinds (dataschema)
// - Affordances and forms with operation/semantic-type selection (td)
// - A stable, non-fatal diagnostics model via Issues (path, code, message)
//
// Design policy:
// - Keep only shared diagnostic types in the root package; put the decoder,
//   model and graph backend in their own packages.
// - Decoding is best-effort: local anomalies become Issues and never abort
//   sibling subtrees.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  g := graph.New()
//  if _, err := g.ReadNQuads(r); err != nil { ... }
//  dec := schemagraph.NewDecoder(g, schemagraph.Options{})
//  s, issues := dec.Decode(node)
//
//  thing, issues, err := td.Read(g, thingNode, schemagraph.Options{})
//  form, ok := thing.Actions()[0].FirstFormForOperationType(td.OpInvokeAction)
