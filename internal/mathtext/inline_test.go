package mathtext

import (
	"strings"
	"testing"
)

func TestCleanInlineMathBoundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "dollar span with wrapped lines",
			input:    "Energy is $\n E = mc^2 \n$ and mass matters.",
			expected: "Energy is $E = mc^2$ and mass matters.",
		},
		{
			name:     "paren span with wrapped lines",
			input:    "We can write \\(\n  x + y\n\\) as a sum.",
			expected: "We can write \\(x + y\\) as a sum.",
		},
		{
			name:     "escaped dollar is literal",
			input:    "The price is \\$20 even after trimming $\nx\n$.",
			expected: "The price is \\$20 even after trimming $x$.",
		},
		{
			name:     "display math untouched",
			input:    "$$\nx^2 + y^2 = z^2\n$$ end.",
			expected: "$$\nx^2 + y^2 = z^2\n$$ end.",
		},
		{
			name:     "display math after text untouched",
			input:    "Equation: $$\n x^2 + y^2 = z^2\n$$ end.",
			expected: "Equation: $$\n x^2 + y^2 = z^2\n$$ end.",
		},
		{
			name:     "display and inline in one text",
			input:    "$$\na\n$$ and $\nb\n$",
			expected: "$$\na\n$$ and $b$",
		},
		{
			name:     "no delimiters",
			input:    "plain text\nwith lines",
			expected: "plain text\nwith lines",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "spaces without line break are kept",
			input:    "$ x $ and \\( y \\)",
			expected: "$ x $ and \\( y \\)",
		},
		{
			name:     "CRLF boundaries",
			input:    "x $\r\n\ty\r\n$ z",
			expected: "x $y$ z",
		},
		{
			name:     "lone CR boundaries",
			input:    "x $\ry\r$ z",
			expected: "x $y$ z",
		},
		{
			name:     "several trailing blank lines",
			input:    "$x \n \n$",
			expected: "$x$",
		},
		{
			name:     "interior newlines preserved",
			input:    "$\na +\n b\n$",
			expected: "$a +\n b$",
		},
		{
			name:     "empty span collapses",
			input:    "a $\n\n$ b",
			expected: "a $$ b",
		},
		{
			name:     "unterminated span passes through",
			input:    "cost $\n  5 and more\n",
			expected: "cost $5 and more\n",
		},
		{
			name:     "escaped backslash does not escape dollar",
			input:    "a \\\\$x\n$",
			expected: "a \\\\$x$",
		},
		{
			name:     "escaped paren opener is literal",
			input:    "\\\\(\n x\n\\\\)",
			expected: "\\\\(\n x\n\\\\)",
		},
		{
			name:     "dollar inside paren span is content",
			input:    "\\(\n a $ b\n\\)",
			expected: "\\(a $ b\\)",
		},
		{
			name:     "paren closer ignored inside dollar span",
			input:    "$\n a \\) b\n$",
			expected: "$a \\) b$",
		},
		{
			name:     "multiple spans",
			input:    "$\na\n$, $\nb\n$ and \\(\nc\n\\)",
			expected: "$a$, $b$ and \\(c\\)",
		},
		{
			name:     "unicode content",
			input:    "Let $\n α ≤ β \n$ hold.",
			expected: "Let $α ≤ β$ hold.",
		},
		{
			name:     "backslash only text",
			input:    "C:\\path\\to\\file",
			expected: "C:\\path\\to\\file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CleanInlineMathBoundaries(tt.input)
			if got != tt.expected {
				t.Errorf("CleanInlineMathBoundaries(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCleanInlineMathBoundaries_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Energy is $\n E = mc^2 \n$ and mass matters.",
		"We can write \\(\n  x + y\n\\) as a sum.",
		"x $\r\n\ty\r\n$ z",
		"$x \n \n$",
		"a $\n\n$ b",
		"cost $\n  5 and more\n",
		"$$\na\n$$ and $\nb\n$",
		"\\$ $\n\\$\n$",
	}

	for _, input := range inputs {
		once := CleanInlineMathBoundaries(input)
		twice := CleanInlineMathBoundaries(once)
		if once != twice {
			t.Errorf("not idempotent for %q: once = %q, twice = %q", input, once, twice)
		}
	}
}

func TestCleanInlineMathBoundaries_EscapedDollarSurvives(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"\\$5",
		"pay \\$5 now $\nx\n$",
		"$\nx \\$ y\n$",
		"\\(\n \\$ \n\\)",
	}

	for _, input := range inputs {
		got := CleanInlineMathBoundaries(input)
		if strings.Count(got, `\$`) != strings.Count(input, `\$`) {
			t.Errorf("CleanInlineMathBoundaries(%q) = %q, escaped dollars changed", input, got)
		}
	}
}

func TestIsEscaped(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		index    int
		expected bool
	}{
		{"start of string", "$", 0, false},
		{"one backslash", `\$`, 1, true},
		{"two backslashes", `\\$`, 2, false},
		{"three backslashes", `\\\$`, 3, true},
		{"other character before", `a$`, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := isEscaped(tt.input, tt.index); got != tt.expected {
				t.Errorf("isEscaped(%q, %d) = %v, want %v", tt.input, tt.index, got, tt.expected)
			}
		})
	}
}

func TestTrimTrailingBoundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"nothing to trim", "abc", "abc"},
		{"trailing spaces only kept", "abc  ", "abc  "},
		{"newline and indentation", "abc \t\n", "abc"},
		{"crlf", "abc\r\n", "abc"},
		{"stacked lines", "abc\n \n\t\n", "abc"},
		{"only whitespace", " \n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := string(trimTrailingBoundary([]byte(tt.input)))
			if got != tt.expected {
				t.Errorf("trimTrailingBoundary(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
