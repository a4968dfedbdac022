package ir

// Severity follows the LSP numbering so values can be sent as-is.
type Severity int

const (
	SeverityError       Severity = 1
	SeverityWarning     Severity = 2
	SeverityInformation Severity = 3
	SeverityHint        Severity = 4
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// DiagnosticSource is reported as the source of every diagnostic.
const DiagnosticSource = "logical-english"

// Diagnostic is one finding of the validator.
type Diagnostic struct {
	Range    Range    `json:"range"`
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`    // "W101", "W102", ...
	Message  string   `json:"message"` // human-readable message
}

// TextEdit replaces Range with NewText.
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"new_text"`
}

// CodeAction is a quick fix offered for one or more diagnostics.
type CodeAction struct {
	Title       string       `json:"title"`
	Edit        TextEdit     `json:"edit"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}
