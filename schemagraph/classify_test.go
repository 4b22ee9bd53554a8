package schemagraph_test

import (
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/reoring/wotschema"
	ds "github.com/reoring/wotschema/dataschema"
	"github.com/reoring/wotschema/internal/testgraph"
	"github.com/reoring/wotschema/metrics"
	"github.com/reoring/wotschema/schemagraph"
)

func TestClassify(t *testing.T) {
	g := testgraph.Build(t,
		"_:all a js:NullSchema",
		"_:all a js:BooleanSchema",
		"_:all a js:IntegerSchema",
		"_:all a js:NumberSchema",
		"_:all a js:StringSchema",
		"_:all a js:ArraySchema",
		"_:num a js:IntegerSchema",
		"_:num a js:NumberSchema",
		"_:num a ex:Temperature",
		"_:plain a ex:Temperature",
	)
	tests := []struct {
		node      string
		ok        bool
		kind      ds.Kind
		ambiguous bool
		types     int
	}{
		{"all", true, ds.KindArray, true, 0},
		{"num", true, ds.KindNumber, true, 1},
		{"plain", false, 0, false, 1},
		{"absent", false, 0, false, 0},
	}
	for _, tc := range tests {
		t.Run(tc.node, func(t *testing.T) {
			c := schemagraph.Classify(g, quad.BNode(tc.node))
			if c.OK != tc.ok || c.Ambiguous() != tc.ambiguous || len(c.SemanticTypes) != tc.types {
				t.Fatalf("unexpected classification %+v", c)
			}
			if tc.ok && c.Kind != tc.kind {
				t.Fatalf("kind: got %v want %v", c.Kind, tc.kind)
			}
		})
	}
}

func TestRootsAndDecodeAll(t *testing.T) {
	lines := append([]string{
		"_:db a js:ObjectSchema",
		"_:db js:properties _:list",
		"_:list a js:ArraySchema",
		`_:list js:propertyName "users"`,
		"_:list js:items _:u",
		"_:flag a js:BooleanSchema",
		"_:thing a ex:Thing",
	}, userAccount("_:u")...)
	g := testgraph.Build(t, lines...)

	roots := schemagraph.Roots(g)
	dec := schemagraph.NewDecoder(g, schemagraph.Options{})
	if len(dec.Roots()) != len(roots) {
		t.Fatalf("decoder roots differ")
	}
	if len(roots) != 2 || roots[0] != quad.BNode("db") || roots[1] != quad.BNode("flag") {
		t.Fatalf("unexpected roots %v", roots)
	}

	res := dec.DecodeAll(append(roots, quad.BNode("thing")))
	if len(res) != 2 {
		t.Fatalf("expected two results, got %d", len(res))
	}
	if res[0].Schema.Kind() != ds.KindObject || res[1].Schema.Kind() != ds.KindBoolean {
		t.Fatalf("unexpected kinds %v %v", res[0].Schema.Kind(), res[1].Schema.Kind())
	}
}

func TestDecode_LogsIssues(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	g := testgraph.Build(t,
		"_:o a js:ObjectSchema",
		`_:o js:required "ghost"`,
	)
	dec := schemagraph.NewDecoder(g, schemagraph.Options{Logger: logger.WithField("component", "test")})
	dec.Decode(quad.BNode("o"))

	if len(hook.Entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(hook.Entries))
	}
	e := hook.LastEntry()
	if e.Level != logrus.WarnLevel || e.Data["code"] != wotschema.CodeDanglingRequired || e.Data["path"] != "/required" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if e.Data["component"] != "test" {
		t.Fatalf("logger fields lost: %v", e.Data)
	}
}

func TestDecode_RecordsMetrics(t *testing.T) {
	m, err := metrics.New(prometheus.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	g := testgraph.Build(t,
		"_:o a js:ObjectSchema",
		"_:o js:properties _:p",
		"_:p a js:IntegerSchema",
		`_:p js:propertyName "n"`,
		"_:p js:minimum 0.5",
	)
	dec := schemagraph.NewDecoder(g, schemagraph.Options{Metrics: m})
	dec.Decode(quad.BNode("o"))
	dec.Decode(quad.BNode("missing"))

	if v := testutil.ToFloat64(m.Decodes.WithLabelValues("object")); v != 1 {
		t.Fatalf("object decodes = %v", v)
	}
	if v := testutil.ToFloat64(m.Decodes.WithLabelValues("none")); v != 1 {
		t.Fatalf("empty decodes = %v", v)
	}
	if v := testutil.ToFloat64(m.Nodes); v != 2 {
		t.Fatalf("nodes = %v", v)
	}
	if v := testutil.ToFloat64(m.Issues.WithLabelValues(wotschema.CodeLossyCoercion)); v != 1 {
		t.Fatalf("lossy issues = %v", v)
	}
}
