package errors

import (
	"encoding/json"
	"errors"

	"github.com/novalang/novalang/internal/source"
)

// Report is NovaLang's canonical structured diagnostic. Every recoverable
// condition in the AstToHir and HirToMir passes (spec.md §7) is reported
// this way instead of aborting the pass.
type Report struct {
	Schema  string         `json:"schema"`         // Always "novalang.error/v1"
	Code    string         `json:"code"`           // HIR001, DSC001, MIR002, ...
	Phase   string         `json:"phase"`          // "asttohir", "descriptor", "lower"
	Message string         `json:"message"`
	Span    *source.Span   `json:"span,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Fix     *Fix           `json:"fix,omitempty"`
}

// Fix is a suggested remediation with a confidence score.
type Fix struct {
	Suggestion string  `json:"suggestion"`
	Confidence float64 `json:"confidence"`
}

// ReportError wraps a Report so it survives errors.As unwrapping.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport extracts a Report from an error chain, if present.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps r as an error.
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// ToJSON renders the report deterministically.
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// New builds a Report for code with the given message, taking Phase from
// the code registry (empty when code is not registered).
func New(code, message string, span *source.Span) *Report {
	phase := ""
	if info, ok := Lookup(code); ok {
		phase = info.Phase
	}
	return &Report{
		Schema:  "novalang.error/v1",
		Code:    code,
		Phase:   phase,
		Message: message,
		Span:    span,
		Data:    map[string]any{},
	}
}
