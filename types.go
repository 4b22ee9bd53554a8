package wotschema

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Info
	Warn
	Error
)

func (s Severity) String() string {
	switch s {
	case Ignore:
		return "ignore"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	}
	return "unknown"
}

// ParseSeverity maps a config string onto a Severity. Unknown names yield
// (Warn, false).
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "ignore":
		return Ignore, true
	case "info":
		return Info, true
	case "warn", "warning":
		return Warn, true
	case "error":
		return Error, true
	}
	return Warn, false
}

// DefaultSeverity is the severity attached to each issue code unless the
// caller overrides it.
func DefaultSeverity(code string) Severity {
	switch code {
	case CodeDuplicateProperty:
		return Info
	case CodeCyclicReference, CodeMaxDepth:
		return Error
	}
	return Warn
}
