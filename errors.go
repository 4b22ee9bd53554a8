package wotschema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Issue codes raised while decoding schema graphs and Thing Descriptions.
const (
	CodeAmbiguousKind       = "ambiguous_kind"
	CodeMissingPropertyName = "missing_property_name"
	CodeDuplicateProperty   = "duplicate_property"
	CodeDanglingRequired    = "dangling_required"
	CodeLossyCoercion       = "lossy_coercion"
	CodeInvalidLiteral      = "invalid_literal"
	CodeCyclicReference     = "cyclic_reference"
	CodeMaxDepth            = "max_depth"
	// Thing Description reader
	CodeMissingTarget    = "missing_target"
	CodeInvalidTarget    = "invalid_target"
	CodeUnknownScheme    = "unknown_security_scheme"
	CodeMissingSchema    = "missing_schema"
	CodeUnknownOperation = "unknown_operation"
)

// Issue is a single non-fatal diagnostic. Decoding never stops because of an
// Issue; callers decide whether any of them is fatal.
type Issue struct {
	Path     string // JSON Pointer into the decoded tree (for example: /properties/count).
	Code     string // One of the codes listed above.
	Message  string
	Node     string // Graph node the issue was raised on (N-Quads term syntax).
	Severity Severity
	// Params carries structured parameters (e.g., {"value":"1.5"}) for i18n
	// and observability.
	Params map[string]any
}

// Issues is a collection of diagnostics that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. cyclic_reference at /properties/self
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Worst returns the highest severity among the issues, or Ignore when empty.
func (iss Issues) Worst() Severity {
	w := Ignore
	for _, it := range iss {
		if it.Severity > w {
			w = it.Severity
		}
	}
	return w
}

// AtLeast returns the issues whose severity is at least min.
func (iss Issues) AtLeast(min Severity) Issues {
	var out Issues
	for _, it := range iss {
		if it.Severity >= min {
			out = append(out, it)
		}
	}
	return out
}

// Codes returns the distinct codes present, sorted.
func (iss Issues) Codes() []string {
	seen := make(map[string]struct{}, len(iss))
	var out []string
	for _, it := range iss {
		if _, ok := seen[it.Code]; ok {
			continue
		}
		seen[it.Code] = struct{}{}
		out = append(out, it.Code)
	}
	sort.Strings(out)
	return out
}

// Has reports whether any issue carries the given code.
func (iss Issues) Has(code string) bool {
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// Err returns the issues as an error when at least one reaches min, nil
// otherwise.
func (iss Issues) Err(min Severity) error {
	if bad := iss.AtLeast(min); len(bad) > 0 {
		return bad
	}
	return nil
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
