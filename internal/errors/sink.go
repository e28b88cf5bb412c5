package errors

import "github.com/novalang/novalang/internal/source"

// Sink accumulates recoverable diagnostics during a single lowering pass.
// Unlike a returned error, appending to a Sink never aborts the caller —
// see spec.md §7: lowering is non-throwing for recoverable semantic
// issues.
type Sink struct {
	reports []*Report
}

// Warnf appends a new Report built from code/message to the sink.
func (s *Sink) Warnf(code, message string) *Report {
	r := New(code, message, nil)
	s.reports = append(s.reports, r)
	return r
}

// WarnAt appends a new Report anchored at pos.
func (s *Sink) WarnAt(code, message string, pos source.Pos) *Report {
	r := New(code, message, &source.Span{Start: pos, End: pos})
	s.reports = append(s.reports, r)
	return r
}

// Reports returns every diagnostic recorded so far, in recording order.
func (s *Sink) Reports() []*Report {
	return s.reports
}

// Empty reports whether no diagnostics have been recorded.
func (s *Sink) Empty() bool {
	return len(s.reports) == 0
}
