package mathtext

import "strings"

// scanState tracks which inline delimiter, if any, is currently open.
type scanState int

const (
	stateNone scanState = iota
	stateDollar
	stateParen
)

// CleanInlineMathBoundaries trims line breaks and the horizontal whitespace
// around them immediately inside inline math delimiters ($...$ and \(...\)).
// Display math ($$...$$) and escaped dollars (\$) are left alone.
// Unterminated spans are copied through unchanged.
func CleanInlineMathBoundaries(input string) string {
	if !strings.ContainsAny(input, `$\`) {
		return input
	}

	out := make([]byte, 0, len(input))
	state := stateNone
	i := 0

	for i < len(input) {
		switch state {
		case stateNone:
			if isInlineDollar(input, i) {
				out = append(out, '$')
				i = skipLeadingBoundary(input, i+1)
				state = stateDollar
				continue
			}
			if isParen(input, i, '(') {
				out = append(out, '\\', '(')
				i = skipLeadingBoundary(input, i+2)
				state = stateParen
				continue
			}
		case stateDollar:
			if isInlineDollar(input, i) {
				out = trimTrailingBoundary(out)
				out = append(out, '$')
				i++
				state = stateNone
				continue
			}
		case stateParen:
			if isParen(input, i, ')') {
				out = trimTrailingBoundary(out)
				out = append(out, '\\', ')')
				i += 2
				state = stateNone
				continue
			}
		}

		out = append(out, input[i])
		i++
	}

	return string(out)
}

// isEscaped reports whether the byte at index is preceded by an odd number
// of consecutive backslashes.
func isEscaped(s string, index int) bool {
	n := 0
	for j := index - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

// isInlineDollar reports whether s[i] is a single, unescaped dollar sign.
// The same test serves for openers and closers; a neighbouring '$' means
// display math.
func isInlineDollar(s string, i int) bool {
	if s[i] != '$' {
		return false
	}
	if i+1 < len(s) && s[i+1] == '$' {
		return false
	}
	if i > 0 && s[i-1] == '$' {
		return false
	}
	return !isEscaped(s, i)
}

// isParen reports whether s[i:] starts an unescaped \( or \) delimiter.
func isParen(s string, i int, paren byte) bool {
	return s[i] == '\\' && i+1 < len(s) && s[i+1] == paren && !isEscaped(s, i)
}

func isHorizontalSpace(c byte) bool {
	return c == ' ' || c == '\t'
}

// skipLeadingBoundary returns the index of the first byte after the boundary
// whitespace starting at i. Spaces and tabs only count once a line break has
// been consumed, so "$ x$" keeps its space.
func skipLeadingBoundary(s string, i int) int {
	sawNewline := false
	for i < len(s) {
		switch c := s[i]; {
		case c == '\n':
			sawNewline = true
			i++
		case c == '\r':
			sawNewline = true
			i++
			if i < len(s) && s[i] == '\n' {
				i++
			}
		case sawNewline && isHorizontalSpace(c):
			i++
		default:
			return i
		}
	}
	return i
}

// trimTrailingBoundary drops trailing line breaks (LF, CRLF or lone CR) from
// b, each together with the spaces and tabs preceding it, until b no longer
// ends with a line break.
func trimTrailingBoundary(b []byte) []byte {
	end := len(b)
	for end > 0 {
		switch b[end-1] {
		case '\n':
			end--
			if end > 0 && b[end-1] == '\r' {
				end--
			}
		case '\r':
			end--
		default:
			return b[:end]
		}
		for end > 0 && isHorizontalSpace(b[end-1]) {
			end--
		}
	}
	return b[:end]
}
