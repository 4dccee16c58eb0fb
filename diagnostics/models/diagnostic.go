package models

// Severity classifies a diagnostic extracted from tool output.
type Severity uint8

const (
	SevWarning Severity = iota
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// LineRef points at the source line the compiler blamed for an error.
type LineRef struct {
	Line    int
	Excerpt string
}

// Diagnostic is a single error or warning reported by the toolchain.
// LineRef is nil when the tool output carried no "l.<n>" marker.
type Diagnostic struct {
	Severity Severity
	Message  string
	LineRef  *LineRef
}

func (d Diagnostic) IsError() bool {
	return d.Severity == SevError
}
