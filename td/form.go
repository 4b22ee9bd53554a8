package td

import (
	"net/http"

	"github.com/reoring/wotschema/vocab"
)

// DefaultContentType is used by forms that do not declare hctl:forContentType.
const DefaultContentType = "application/json"

// Operation types, as they appear in TD JSON documents.
const (
	OpReadProperty       = "readproperty"
	OpWriteProperty      = "writeproperty"
	OpObserveProperty    = "observeproperty"
	OpUnobserveProperty  = "unobserveproperty"
	OpInvokeAction       = "invokeaction"
	OpSubscribeEvent     = "subscribeevent"
	OpUnsubscribeEvent   = "unsubscribeevent"
	OpReadAllProperties  = "readallproperties"
	OpWriteAllProperties = "writeallproperties"
)

// normalizeOp accepts both operation IRIs and TD JSON names.
func normalizeOp(op string) string {
	if n, ok := vocab.OperationName(op); ok {
		return n
	}
	return op
}

// Form is a hypermedia control: a target plus the operations it supports.
// Forms are immutable; build them with NewForm.
type Form struct {
	target      string
	ops         []string
	contentType string
	method      string
	subprotocol string
}

// Target is the absolute request IRI.
func (f Form) Target() string { return f.target }

// OperationTypes lists the supported operations in declaration order.
func (f Form) OperationTypes() []string { return append([]string(nil), f.ops...) }

// HasOperationType reports whether the form supports op. op may be an
// operation IRI or its TD JSON name.
func (f Form) HasOperationType(op string) bool {
	op = normalizeOp(op)
	for _, o := range f.ops {
		if o == op {
			return true
		}
	}
	return false
}

func (f Form) ContentType() string { return f.contentType }

// Method returns the declared HTTP method, if any.
func (f Form) Method() (string, bool) { return f.method, f.method != "" }

// MethodOrDefault returns the declared method or the HTTP binding default for
// op: PUT for writeproperty, POST for invokeaction and GET otherwise.
func (f Form) MethodOrDefault(op string) string {
	if f.method != "" {
		return f.method
	}
	switch normalizeOp(op) {
	case OpWriteProperty, OpWriteAllProperties:
		return http.MethodPut
	case OpInvokeAction:
		return http.MethodPost
	}
	return http.MethodGet
}

func (f Form) SubProtocol() (string, bool) { return f.subprotocol, f.subprotocol != "" }

// FormBuilder assembles a Form.
type FormBuilder struct {
	f Form
}

// NewForm starts a form for target.
func NewForm(target string) *FormBuilder {
	return &FormBuilder{f: Form{target: target, contentType: DefaultContentType}}
}

// AddOperationType appends operation types, skipping ones already present.
func (b *FormBuilder) AddOperationType(ops ...string) *FormBuilder {
	for _, op := range ops {
		if op == "" || b.f.HasOperationType(op) {
			continue
		}
		b.f.ops = append(b.f.ops, normalizeOp(op))
	}
	return b
}

// SetContentType overrides the content type. An empty value restores the
// default.
func (b *FormBuilder) SetContentType(ct string) *FormBuilder {
	if ct == "" {
		ct = DefaultContentType
	}
	b.f.contentType = ct
	return b
}

func (b *FormBuilder) SetMethod(m string) *FormBuilder {
	b.f.method = m
	return b
}

func (b *FormBuilder) SetSubProtocol(sp string) *FormBuilder {
	b.f.subprotocol = sp
	return b
}

// Build returns the form. The builder may be reused afterwards.
func (b *FormBuilder) Build() Form {
	f := b.f
	f.ops = append([]string(nil), b.f.ops...)
	return f
}
