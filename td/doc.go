// Package td models Thing Description interaction affordances and reads them
// from RDF graphs.
//
// Forms, affordances and Things are immutable values. Operation types are
// kept as TD JSON names (readproperty, invokeaction, ...); the predicates that
// take an operation accept either the name or the td: operation IRI.
package td
