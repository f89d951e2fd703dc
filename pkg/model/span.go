package model

import "fmt"

// Span marks a source location range, from the first byte of the first
// token a node consumes to the last byte of its last token. Every model
// node carries one so diagnostics can point at exactly where it came from.
type Span struct {
	StartLine   int
	StartCol    int
	EndLine     int
	EndCol      int
	StartOffset int
	EndOffset   int
}

// Zero reports whether the span was never set (e.g. a synthesized node).
func (s Span) Zero() bool {
	return s.StartLine == 0 && s.StartCol == 0
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartCol, s.EndLine, s.EndCol)
}

// Join returns the smallest span covering both a and b. Used by productions
// that consume several tokens and need to report the whole range.
func Join(a, b Span) Span {
	if a.Zero() {
		return b
	}
	if b.Zero() {
		return a
	}
	joined := a
	if b.EndLine > joined.EndLine || (b.EndLine == joined.EndLine && b.EndCol > joined.EndCol) {
		joined.EndLine = b.EndLine
		joined.EndCol = b.EndCol
		joined.EndOffset = b.EndOffset
	}
	return joined
}
