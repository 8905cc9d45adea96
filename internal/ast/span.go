package ast

import "fmt"

// Span is a half-open source region [Start, End) with 1-based line/column
// of the start position. The zero value is used for synthesized nodes.
type Span struct {
	Start  int
	End    int
	Line   int
	Column int
}

func (s Span) String() string {
	if s == (Span{}) {
		return "<synthetic>"
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsZero reports whether the span carries no source position.
func (s Span) IsZero() bool {
	return s == Span{}
}
