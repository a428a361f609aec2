package token

// Position represents a location in the source text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Span represents a half-open byte range [Start.Offset, End.Offset) in the source.
type Span struct {
	Start Position
	End   Position
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// IsValid returns true if both start and end positions are valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Text returns the slice of src covered by the span. Out-of-range spans
// are clamped to src.
func (s Span) Text(src string) string {
	start, end := s.Start.Offset, s.End.Offset
	if start < 0 {
		start = 0
	}
	if end > len(src) {
		end = len(src)
	}
	if start >= end {
		return ""
	}
	return src[start:end]
}
