package hocon

import (
	"fmt"
	"strings"
)

// ParseError reports the deepest point a failed parse reached and what the
// grammar expected there. Offset is a byte offset into the input; Line and
// Column are 1-based, with Column counted in bytes.
type ParseError struct {
	Offset   int
	Line     int
	Column   int
	Expected []string

	sourceLine string
}

func newParseError(input string, offset int, expected []string) *ParseError {
	if offset > len(input) {
		offset = len(input)
	}
	if len(expected) == 0 {
		expected = []string{"value"}
	}
	line, column, text := locate(input, offset)
	return &ParseError{
		Offset:     offset,
		Line:       line,
		Column:     column,
		Expected:   expected,
		sourceLine: text,
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: expected %s", e.Line, e.Column, joinExpected(e.Expected))
}

// Detail renders the diagnostic together with the offending source line and
// a caret under the failing column.
func (e *ParseError) Detail() string {
	var sb strings.Builder
	sb.WriteString(e.Error())
	sb.WriteByte('\n')
	sb.WriteString(e.sourceLine)
	sb.WriteByte('\n')
	for i := 0; i < e.Column-1; i++ {
		if i < len(e.sourceLine) && e.sourceLine[i] == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	sb.WriteByte('^')
	return sb.String()
}

func joinExpected(expected []string) string {
	if len(expected) == 1 {
		return expected[0]
	}
	return strings.Join(expected[:len(expected)-1], ", ") + " or " + expected[len(expected)-1]
}

// locate computes the 1-based line and column of a byte offset and returns
// the text of the line it falls on.
func locate(input string, offset int) (line, column int, text string) {
	line = 1
	lineStart := 0
	for i := 0; i < offset; i++ {
		if input[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	lineEnd := len(input)
	if i := strings.IndexByte(input[lineStart:], '\n'); i >= 0 {
		lineEnd = lineStart + i
	}
	return line, offset - lineStart + 1, input[lineStart:lineEnd]
}
