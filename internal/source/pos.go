// Package source carries the immutable location records attached to every
// AST, HIR, and MIR entity.
package source

import "fmt"

// Pos is an immutable source location: file, line, column, byte offset and
// byte length of the span it names.
type Pos struct {
	File   string
	Line   int
	Column int
	Offset int
	Length int
}

// Unknown is the distinguished "no location" value.
var Unknown = Pos{}

// IsUnknown reports whether p carries no real location.
func (p Pos) IsUnknown() bool { return p == Unknown }

func (p Pos) String() string {
	if p.IsUnknown() {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// Span is a half-open range between two positions.
type Span struct {
	Start Pos
	End   Pos
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
