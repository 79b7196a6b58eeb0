package mdsite

import "testing"

func TestNormalizeMath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text unchanged",
			input: "no math here",
			want:  "no math here",
		},
		{
			name:  "inline boundaries cleaned",
			input: "a $\n  x + y\n$ b",
			want:  "a $x + y$ b",
		},
		{
			name:  "tagged block rewritten after cleaning",
			input: "$$\\begin{aligned}\nx \\tag{1}\n\\end{aligned}$$",
			want:  "\\begin{align}\nx \\tag{1}\n\\end{align}",
		},
		{
			name:  "both transforms in one document",
			input: "Let \\(\n n\n\\).\n\\begin{align*}n \\tag{2}\\end{align*}",
			want:  "Let \\(n\\).\n\\begin{align}\nn \\tag{2}\n\\end{align}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := NormalizeMath(tt.input); got != tt.want {
				t.Errorf("NormalizeMath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMathWrappers(t *testing.T) {
	t.Parallel()

	if got := CleanInlineMathBoundaries("$\n x \n$"); got != "$x$" {
		t.Errorf("CleanInlineMathBoundaries() = %q, want %q", got, "$x$")
	}
	if got := NormalizeAlignEnvironmentTags(`\\end{aligned}`); got != `\end{aligned}` {
		t.Errorf("NormalizeAlignEnvironmentTags() = %q, want %q", got, `\end{aligned}`)
	}
}
