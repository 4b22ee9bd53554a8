package schemagraph

import (
	"fmt"

	"github.com/cayleygraph/quad"
	"github.com/sirupsen/logrus"

	"github.com/reoring/wotschema"
	"github.com/reoring/wotschema/i18n"
	"github.com/reoring/wotschema/metrics"
)

// Reporter turns issue codes into wotschema.Issue values. It applies
// severity overrides, localizes the message, counts the issue and logs it.
// The zero value reports with default severities and no side effects.
type Reporter struct {
	Severity map[string]wotschema.Severity
	Logger   logrus.FieldLogger
	Metrics  *metrics.Metrics
}

// Reporter returns a Reporter sharing the options' severity table, logger
// and metrics.
func (o Options) Reporter() Reporter {
	return Reporter{Severity: o.Severity, Logger: o.Logger, Metrics: o.Metrics}
}

// Report appends an issue for code at the given path unless its severity is
// wotschema.Ignore. kv is a flat list of message parameters.
func (r Reporter) Report(dst *wotschema.Issues, at wotschema.PathRef, node quad.Value, code string, kv ...any) {
	sev := wotschema.DefaultSeverity(code)
	if o, ok := r.Severity[code]; ok {
		sev = o
	}
	if sev == wotschema.Ignore {
		return
	}
	data := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		data[fmt.Sprint(kv[i])] = fmt.Sprint(kv[i+1])
	}
	is := at.Issue(code, i18n.T(code, data), kv...)
	is.Severity = sev
	if node != nil {
		is.Node = node.String()
	}
	*dst = append(*dst, is)
	r.Metrics.ObserveIssue(code)
	logIssue(r.Logger, is)
}

func logIssue(l logrus.FieldLogger, is wotschema.Issue) {
	if l == nil {
		return
	}
	e := l.WithFields(logrus.Fields{"code": is.Code, "path": is.Path, "node": is.Node})
	switch is.Severity {
	case wotschema.Error:
		e.Error(is.Message)
	case wotschema.Warn:
		e.Warn(is.Message)
	default:
		e.Info(is.Message)
	}
}
