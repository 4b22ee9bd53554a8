package schemagraph_test

import (
	"sync"
	"testing"

	"github.com/cayleygraph/quad"

	"github.com/reoring/wotschema"
	ds "github.com/reoring/wotschema/dataschema"
	"github.com/reoring/wotschema/internal/testgraph"
	"github.com/reoring/wotschema/schemagraph"
)

const ex = testgraph.Ex

// userAccount renders the UserAccount object schema rooted at blank node id.
func userAccount(id string) []string {
	return []string{
		id + " a js:ObjectSchema",
		id + " a ex:UserAccount",
		id + " js:properties " + id + "_fn",
		id + "_fn a js:StringSchema",
		id + "_fn a ex:FullName",
		id + `_fn js:propertyName "full_name"`,
		id + ` js:required "full_name"`,
	}
}

func decode(t *testing.T, lines []string, root string, opts schemagraph.Options) (ds.Schema, wotschema.Issues) {
	t.Helper()
	g := testgraph.Build(t, lines...)
	return schemagraph.NewDecoder(g, opts).Decode(quad.BNode(root[2:]))
}

func TestDecode_SimpleSemanticObject(t *testing.T) {
	lines := []string{
		"_:o a js:ObjectSchema",
		"_:o a ex:SemObject",
		"_:o js:properties _:b",
		"_:b a js:BooleanSchema",
		"_:b a ex:SemBool",
		`_:b js:propertyName "boolean_value"`,
		"_:o js:properties _:n",
		"_:n a js:NumberSchema",
		"_:n a ex:SemNumber",
		`_:n js:propertyName "number_value"`,
		"_:n js:maximum 100.05",
		"_:n js:minimum -100.05",
		"_:o js:properties _:i",
		"_:i a js:IntegerSchema",
		"_:i a ex:SemInt",
		`_:i js:propertyName "integer_value"`,
		"_:i js:maximum 100",
		"_:i js:minimum -100",
		"_:o js:properties _:s",
		"_:s a js:StringSchema",
		"_:s a ex:SemString",
		`_:s js:propertyName "string_value"`,
		`_:s js:enum "label1"`,
		"_:s js:enum <http://example.org/label2>",
		`_:s js:enum "label3"`,
		"_:o js:properties _:z",
		"_:z a js:NullSchema",
		"_:z a ex:SemNull",
		`_:z js:propertyName "null_value"`,
		`_:o js:required "integer_value"`,
		`_:o js:required "number_value"`,
	}
	s, issues := decode(t, lines, "_:o", schemagraph.Options{})
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	obj, ok := s.(*ds.Object)
	if !ok {
		t.Fatalf("expected object, got %T", s)
	}
	if !obj.HasSemanticType(ex+"SemObject") || obj.Len() != 5 || len(obj.Required()) != 2 {
		t.Fatalf("unexpected object metadata: types=%v props=%d req=%v", obj.SemanticTypes(), obj.Len(), obj.Required())
	}

	want := map[string]ds.Kind{
		"boolean_value": ds.KindBoolean,
		"number_value":  ds.KindNumber,
		"integer_value": ds.KindInteger,
		"string_value":  ds.KindString,
		"null_value":    ds.KindNull,
	}
	for name, kind := range want {
		p, ok := obj.Property(name)
		if !ok || p.Kind() != kind {
			t.Fatalf("property %s: got %v", name, p)
		}
	}

	num, _ := obj.Property("number_value")
	if lo, ok := num.(*ds.Number).Minimum(); !ok || lo != -100.05 {
		t.Fatalf("number minimum: %v %v", lo, ok)
	}
	if hi, ok := num.(*ds.Number).Maximum(); !ok || hi != 100.05 {
		t.Fatalf("number maximum: %v %v", hi, ok)
	}
	in, _ := obj.Property("integer_value")
	if lo, ok := in.(*ds.Integer).Minimum(); !ok || lo != -100 {
		t.Fatalf("integer minimum: %v %v", lo, ok)
	}

	str, _ := obj.Property("string_value")
	enum := str.(*ds.String).Enum()
	if len(enum) != 3 || enum[0] != "label1" || enum[1] != "http://example.org/label2" || enum[2] != "label3" {
		t.Fatalf("unexpected enum %v", enum)
	}
	if !str.HasSemanticType(ex + "SemString") {
		t.Fatalf("missing semantic type on string property")
	}
}

func TestDecode_ObjectWithArrayOfObjects(t *testing.T) {
	lines := []string{
		"_:db a js:ObjectSchema",
		"_:db a ex:UserDB",
		"_:db js:properties _:count",
		"_:count a js:IntegerSchema",
		"_:count a ex:UserCount",
		`_:count js:propertyName "count"`,
		"_:db js:properties _:list",
		"_:list a js:ArraySchema",
		"_:list a ex:UserAccountList",
		`_:list js:propertyName "user_list"`,
		"_:list js:minItems 0",
		"_:list js:maxItems 100",
		"_:list js:items _:u",
		`_:db js:required "count"`,
	}
	lines = append(lines, userAccount("_:u")...)
	s, issues := decode(t, lines, "_:db", schemagraph.Options{})
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	obj := s.(*ds.Object)
	if obj.Len() != 2 || !obj.IsRequired("count") {
		t.Fatalf("unexpected object: %v %v", obj.PropertyNames(), obj.Required())
	}
	p, _ := obj.Property("user_list")
	arr := p.(*ds.Array)
	if lo, ok := arr.MinItems(); !ok || lo != 0 {
		t.Fatalf("minItems: %v %v", lo, ok)
	}
	if hi, ok := arr.MaxItems(); !ok || hi != 100 {
		t.Fatalf("maxItems: %v %v", hi, ok)
	}
	items := arr.Items()
	if len(items) != 1 {
		t.Fatalf("expected one item, got %d", len(items))
	}
	user := items[0].(*ds.Object)
	fn, ok := user.Property("full_name")
	if !ok || fn.Kind() != ds.KindString || !fn.HasSemanticType(ex+"FullName") {
		t.Fatalf("unexpected full_name: %v", fn)
	}
	if r := user.Required(); len(r) != 1 || r[0] != "full_name" {
		t.Fatalf("unexpected user required: %v", r)
	}
}

func TestDecode_ConcreteCountScenario(t *testing.T) {
	lines := []string{
		"_:o a js:ObjectSchema",
		"_:o js:properties _:c",
		"_:c a js:IntegerSchema",
		`_:c js:propertyName "count"`,
		`_:o js:required "count"`,
	}
	s, issues := decode(t, lines, "_:o", schemagraph.Options{})
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	want := ds.NewObject(nil, []ds.Property{{Name: "count", Schema: ds.NewInteger(nil, nil, nil)}}, []string{"count"})
	if !ds.Equal(s, want) {
		t.Fatalf("decoded tree differs from expected")
	}
}

func TestDecode_NestedSemanticObject(t *testing.T) {
	lines := []string{
		"_:o a js:ObjectSchema",
		"_:o a ex:SemObject",
		"_:o js:properties _:s",
		"_:s a js:StringSchema",
		`_:s js:propertyName "string_value"`,
		"_:o js:properties _:in",
		"_:in a js:ObjectSchema",
		"_:in a ex:AnotherSemObject",
		`_:in js:propertyName "inner_object"`,
		"_:in js:properties _:b",
		"_:b a js:BooleanSchema",
		`_:b js:propertyName "boolean_value"`,
		"_:in js:properties _:i",
		"_:i a js:IntegerSchema",
		`_:i js:propertyName "integer_value"`,
		`_:in js:required "integer_value"`,
		`_:o js:required "string_value"`,
	}
	s, _ := decode(t, lines, "_:o", schemagraph.Options{})
	obj := s.(*ds.Object)
	if obj.Len() != 2 || !obj.IsRequired("string_value") {
		t.Fatalf("unexpected outer object")
	}
	p, _ := obj.Property("inner_object")
	inner := p.(*ds.Object)
	if !inner.HasSemanticType(ex+"AnotherSemObject") || inner.Len() != 2 || !inner.IsRequired("integer_value") {
		t.Fatalf("unexpected inner object: %v %v", inner.PropertyNames(), inner.Required())
	}
}

func TestDecode_ArrayWithTwoItemShapesKeepsOrder(t *testing.T) {
	lines := []string{
		"_:l a js:ArraySchema",
		"_:l a ex:UserAccountList",
		"_:l js:minItems 0",
		"_:l js:maxItems 100",
		"_:l js:items _:s1",
		"_:l js:items _:s2",
		"_:s2 a js:StringSchema",
	}
	lines = append(lines, userAccount("_:s1")...)
	s, _ := decode(t, lines, "_:l", schemagraph.Options{})
	want := ds.NewArray([]string{ex + "UserAccountList"}, []ds.Schema{
		ds.NewObject([]string{ex + "UserAccount"},
			[]ds.Property{{Name: "full_name", Schema: ds.NewString([]string{ex + "FullName"}, nil)}},
			[]string{"full_name"}),
		ds.NewString(nil, nil),
	}, ds.Ptr[uint64](0), ds.Ptr[uint64](100))
	if !ds.Equal(s, want) {
		t.Fatalf("array differs from expected: %#v", s)
	}
}

func TestDecode_ArrayWithSameShapeTwice(t *testing.T) {
	lines := []string{
		"_:l a js:ArraySchema",
		"_:l js:items _:u1",
		"_:l js:items _:u2",
	}
	lines = append(lines, userAccount("_:u1")...)
	lines = append(lines, userAccount("_:u2")...)
	s, _ := decode(t, lines, "_:l", schemagraph.Options{})
	items := s.(*ds.Array).Items()
	if len(items) != 2 || items[0].Kind() != ds.KindObject || items[1].Kind() != ds.KindObject {
		t.Fatalf("expected two object items, got %v", items)
	}
}

func TestDecode_UnrecognizedNodeIsEmpty(t *testing.T) {
	lines := []string{
		"_:x a ex:Thing",
		`_:x js:propertyName "nope"`,
	}
	s, issues := decode(t, lines, "_:x", schemagraph.Options{})
	if s != nil || len(issues) != 0 {
		t.Fatalf("expected empty result without issues, got %v %v", s, issues)
	}
	g := testgraph.Build(t, lines...)
	if _, ok := schemagraph.Decode(g, quad.IRI("http://example.org/missing")); ok {
		t.Fatalf("unknown node decoded")
	}
	if _, ok := schemagraph.Decode(g, quad.String("literal")); ok {
		t.Fatalf("literal decoded")
	}
}

func TestDecode_UnrecognizedItemsAreSkipped(t *testing.T) {
	lines := []string{
		"_:l a js:ArraySchema",
		"_:l js:items _:junk",
		"_:l js:items _:ok",
		"_:junk a ex:NotASchema",
		"_:ok a js:BooleanSchema",
	}
	s, issues := decode(t, lines, "_:l", schemagraph.Options{})
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	if items := s.(*ds.Array).Items(); len(items) != 1 || items[0].Kind() != ds.KindBoolean {
		t.Fatalf("unexpected items %v", items)
	}
}

func TestDecode_RequiredIndependentOfProperties(t *testing.T) {
	lines := []string{
		"_:o a js:ObjectSchema",
		`_:o js:required "a"`,
		`_:o js:required "b"`,
	}
	s, issues := decode(t, lines, "_:o", schemagraph.Options{})
	obj := s.(*ds.Object)
	if obj.Len() != 0 || !obj.IsRequired("a") || !obj.IsRequired("b") || len(obj.Required()) != 2 {
		t.Fatalf("required set not preserved: %v", obj.Required())
	}
	if len(issues) != 2 || !issues.Has(wotschema.CodeDanglingRequired) {
		t.Fatalf("expected two dangling_required issues, got %v", issues)
	}
}

func TestDecode_MissingPropertyNameIsSkipped(t *testing.T) {
	lines := []string{
		"_:o a js:ObjectSchema",
		"_:o js:properties _:anon",
		"_:anon a js:StringSchema",
		"_:o js:properties _:named",
		"_:named a js:BooleanSchema",
		`_:named js:propertyName "flag"`,
	}
	s, issues := decode(t, lines, "_:o", schemagraph.Options{})
	obj := s.(*ds.Object)
	if obj.Len() != 1 {
		t.Fatalf("expected only the named property, got %v", obj.PropertyNames())
	}
	if len(issues) != 1 || issues[0].Code != wotschema.CodeMissingPropertyName || issues[0].Path != "/properties/0" {
		t.Fatalf("unexpected issues: %+v", issues)
	}
}

func TestDecode_DuplicatePropertyNameLastWins(t *testing.T) {
	lines := []string{
		"_:o a js:ObjectSchema",
		"_:o js:properties _:p1",
		"_:p1 a js:StringSchema",
		`_:p1 js:propertyName "v"`,
		"_:o js:properties _:p2",
		"_:p2 a js:NumberSchema",
		`_:p2 js:propertyName "v"`,
	}
	s, issues := decode(t, lines, "_:o", schemagraph.Options{})
	obj := s.(*ds.Object)
	p, _ := obj.Property("v")
	if obj.Len() != 1 || p.Kind() != ds.KindNumber {
		t.Fatalf("expected last write to win, got %v", p)
	}
	if !issues.Has(wotschema.CodeDuplicateProperty) || issues.Worst() != wotschema.Info {
		t.Fatalf("expected an info-level duplicate_property issue, got %v", issues)
	}
}

func TestDecode_AmbiguousKindUsesPrecedence(t *testing.T) {
	lines := []string{
		"_:x a js:IntegerSchema",
		"_:x a js:ObjectSchema",
		"_:x a ex:Sem",
	}
	s, issues := decode(t, lines, "_:x", schemagraph.Options{})
	if s.Kind() != ds.KindObject {
		t.Fatalf("expected object by precedence, got %v", s.Kind())
	}
	types := s.SemanticTypes()
	if len(types) != 1 || types[0] != ex+"Sem" {
		t.Fatalf("kind markers leaked: %v", types)
	}
	if len(issues) != 1 || issues[0].Code != wotschema.CodeAmbiguousKind || issues[0].Severity != wotschema.Warn {
		t.Fatalf("expected ambiguous_kind warning, got %+v", issues)
	}
}

func TestDecode_IntegerCoercion(t *testing.T) {
	lines := []string{
		"_:i a js:IntegerSchema",
		"_:i js:minimum 1.75",
		`_:i js:maximum "ten"`,
	}
	s, issues := decode(t, lines, "_:i", schemagraph.Options{})
	in := s.(*ds.Integer)
	if lo, ok := in.Minimum(); !ok || lo != 1 {
		t.Fatalf("expected truncated minimum 1, got %v %v", lo, ok)
	}
	if _, ok := in.Maximum(); ok {
		t.Fatalf("invalid maximum must be dropped")
	}
	if !issues.Has(wotschema.CodeLossyCoercion) || !issues.Has(wotschema.CodeInvalidLiteral) {
		t.Fatalf("expected lossy and invalid literal issues, got %v", issues)
	}
	for _, is := range issues {
		if is.Code == wotschema.CodeLossyCoercion && is.Path != "/minimum" {
			t.Fatalf("unexpected path %q", is.Path)
		}
	}
}

func TestDecode_NegativeMinItemsIsInvalid(t *testing.T) {
	lines := []string{
		"_:l a js:ArraySchema",
		"_:l js:minItems -1",
		"_:l js:maxItems 2.0",
	}
	s, issues := decode(t, lines, "_:l", schemagraph.Options{})
	arr := s.(*ds.Array)
	if _, ok := arr.MinItems(); ok {
		t.Fatalf("negative minItems must be dropped")
	}
	if hi, ok := arr.MaxItems(); !ok || hi != 2 {
		t.Fatalf("whole decimal maxItems should be kept: %v %v", hi, ok)
	}
	if len(issues) != 1 || issues[0].Code != wotschema.CodeInvalidLiteral {
		t.Fatalf("unexpected issues: %v", issues)
	}
}

func TestDecode_EnumKeepsOrderAndDuplicates(t *testing.T) {
	lines := []string{
		"_:s a js:StringSchema",
		`_:s js:enum "b"`,
		`_:s js:enum "a"`,
		"_:s js:enum <http://example.org/a>",
		`_:s js:enum "b"`,
		"_:s js:enum _:blank",
	}
	s, issues := decode(t, lines, "_:s", schemagraph.Options{})
	enum := s.(*ds.String).Enum()
	want := []string{"b", "a", "http://example.org/a", "b"}
	if len(enum) != len(want) {
		t.Fatalf("got %v want %v", enum, want)
	}
	for i := range want {
		if enum[i] != want[i] {
			t.Fatalf("got %v want %v", enum, want)
		}
	}
	if len(issues) != 1 || issues[0].Path != "/enum/4" {
		t.Fatalf("expected blank node enum issue, got %+v", issues)
	}
}

func TestDecode_CycleTerminatesBranch(t *testing.T) {
	lines := []string{
		"_:o a js:ObjectSchema",
		"_:o js:properties _:self",
		"_:self a js:ObjectSchema",
		`_:self js:propertyName "self"`,
		"_:self js:properties _:o",
		`_:o js:propertyName "back"`,
		"_:o js:properties _:ok",
		"_:ok a js:BooleanSchema",
		`_:ok js:propertyName "ok"`,
	}
	s, issues := decode(t, lines, "_:o", schemagraph.Options{})
	obj := s.(*ds.Object)
	if _, ok := obj.Property("ok"); !ok {
		t.Fatalf("sibling of the cyclic branch must still decode")
	}
	self, ok := obj.Property("self")
	if !ok {
		t.Fatalf("expected self property")
	}
	if self.(*ds.Object).Len() != 0 {
		t.Fatalf("cyclic back edge must be cut")
	}
	if !issues.Has(wotschema.CodeCyclicReference) {
		t.Fatalf("expected cyclic_reference, got %v", issues)
	}
	for _, is := range issues {
		if is.Code == wotschema.CodeCyclicReference && is.Path != "/properties/self/properties/back" {
			t.Fatalf("unexpected cycle path %q", is.Path)
		}
	}
}

func TestDecode_ArraySelfLoop(t *testing.T) {
	lines := []string{
		"_:l a js:ArraySchema",
		"_:l js:items _:l",
	}
	s, issues := decode(t, lines, "_:l", schemagraph.Options{})
	if len(s.(*ds.Array).Items()) != 0 {
		t.Fatalf("self loop must not produce items")
	}
	if issues.Worst() != wotschema.Error || issues.Err(wotschema.Error) == nil {
		t.Fatalf("cycle should be error severity: %v", issues)
	}
}

func TestDecode_SharedNodeIsNotACycle(t *testing.T) {
	lines := []string{
		"_:o a js:ObjectSchema",
		"_:o js:properties _:l1",
		"_:o js:properties _:l2",
		"_:l1 a js:ArraySchema",
		`_:l1 js:propertyName "first"`,
		"_:l1 js:items _:shared",
		"_:l2 a js:ArraySchema",
		`_:l2 js:propertyName "second"`,
		"_:l2 js:items _:shared",
		"_:shared a js:NumberSchema",
	}
	s, issues := decode(t, lines, "_:o", schemagraph.Options{})
	if len(issues) != 0 {
		t.Fatalf("shared subtrees are not cycles: %v", issues)
	}
	obj := s.(*ds.Object)
	for _, name := range []string{"first", "second"} {
		p, _ := obj.Property(name)
		if len(p.(*ds.Array).Items()) != 1 {
			t.Fatalf("%s lost its item", name)
		}
	}
}

func TestDecode_MaxDepth(t *testing.T) {
	lines := []string{
		"_:a a js:ArraySchema",
		"_:a js:items _:b",
		"_:b a js:ArraySchema",
		"_:b js:items _:c",
		"_:c a js:BooleanSchema",
	}
	s, issues := decode(t, lines, "_:a", schemagraph.Options{MaxDepth: 1})
	b := s.(*ds.Array).Items()[0].(*ds.Array)
	if len(b.Items()) != 0 {
		t.Fatalf("depth 2 should be cut")
	}
	if len(issues) != 1 || issues[0].Code != wotschema.CodeMaxDepth || issues[0].Path != "/items/0/items/0" {
		t.Fatalf("unexpected issues %+v", issues)
	}
}

func TestDecode_Idempotent(t *testing.T) {
	lines := append([]string{
		"_:l a js:ArraySchema",
		"_:l js:items _:u",
	}, userAccount("_:u")...)
	g := testgraph.Build(t, lines...)
	dec := schemagraph.NewDecoder(g, schemagraph.Options{})
	a, _ := dec.Decode(quad.BNode("l"))
	b, _ := dec.Decode(quad.BNode("l"))
	if !ds.Equal(a, b) {
		t.Fatalf("decoding twice gave different trees")
	}
}

func TestDecode_ConcurrentCallsShareNothing(t *testing.T) {
	lines := append([]string{
		"_:l a js:ArraySchema",
		"_:l js:items _:u",
		"_:l js:items _:l",
	}, userAccount("_:u")...)
	g := testgraph.Build(t, lines...)
	dec := schemagraph.NewDecoder(g, schemagraph.Options{})
	want, wantIssues := dec.Decode(quad.BNode("l"))

	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, iss := dec.Decode(quad.BNode("l"))
			if !ds.Equal(got, want) || len(iss) != len(wantIssues) {
				errs <- "concurrent decode diverged"
			}
		}()
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Fatal(e)
	}
}

func TestDecode_SeverityOverride(t *testing.T) {
	lines := []string{
		"_:o a js:ObjectSchema",
		`_:o js:required "ghost"`,
	}
	_, issues := decode(t, lines, "_:o", schemagraph.Options{
		Severity: map[string]wotschema.Severity{wotschema.CodeDanglingRequired: wotschema.Ignore},
	})
	if len(issues) != 0 {
		t.Fatalf("ignored code still reported: %v", issues)
	}
	_, issues = decode(t, lines, "_:o", schemagraph.Options{
		Severity: map[string]wotschema.Severity{wotschema.CodeDanglingRequired: wotschema.Error},
	})
	if issues.Err(wotschema.Error) == nil {
		t.Fatalf("expected escalated error")
	}
}
