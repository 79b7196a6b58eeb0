package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		opts         RenderOptions
		input        string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "heading gets an id",
			input:        "# Hello World",
			wantContains: []string{`<h1 id="hello-world">Hello World</h1>`},
		},
		{
			name:         "GFM table",
			input:        "| A | B |\n|---|---|\n| 1 | 2 |",
			wantContains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:         "strikethrough",
			input:        "~~gone~~",
			wantContains: []string{"<del>gone</del>"},
		},
		{
			name:         "footnote",
			input:        "Text[^1]\n\n[^1]: Note",
			wantContains: []string{"footnote"},
		},
		{
			name:         "inline math kept verbatim",
			input:        "Product $a*b*c$ here.",
			wantContains: []string{"a*b*c"},
			wantExcludes: []string{"<em>"},
		},
		{
			name:         "fenced code highlighted with classes",
			input:        "```go\nfunc main() {}\n```",
			wantContains: []string{`class="`, "main"},
			wantExcludes: []string{"style=\"color"},
		},
		{
			name:         "raw HTML omitted by default",
			input:        "<div class=\"card\">x</div>",
			wantExcludes: []string{`<div class="card">`},
		},
		{
			name:         "raw HTML allowed",
			opts:         RenderOptions{AllowHTML: true},
			input:        "<div class=\"card\">x</div>",
			wantContains: []string{`<div class="card">x</div>`},
		},
		{
			name:         "sanitizer strips scripts and keeps classes",
			opts:         RenderOptions{AllowHTML: true, Sanitize: true},
			input:        "<script>alert(1)</script>\n\n<span class=\"note\" onclick=\"x()\">hi</span>",
			wantContains: []string{`class="note"`, "hi"},
			wantExcludes: []string{"<script", "onclick"},
		},
		{
			name:         "hard wraps",
			opts:         RenderOptions{HardWraps: true},
			input:        "line one\nline two",
			wantContains: []string{"<br />"},
		},
		{
			name:         "soft wraps by default",
			input:        "line one\nline two",
			wantExcludes: []string{"<br"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := NewGoldmarkConverter(tt.opts)
			got, err := conv.ToHTML(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}

			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() = %q, want to contain %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("ToHTML() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}

func TestGoldmarkConverter_ToHTML_Trimmed(t *testing.T) {
	t.Parallel()

	conv := NewGoldmarkConverter(RenderOptions{})
	got, err := conv.ToHTML(context.Background(), "\n\nparagraph\n\n")
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	if got != "<p>paragraph</p>" {
		t.Errorf("ToHTML() = %q, want %q", got, "<p>paragraph</p>")
	}
}

func TestGoldmarkConverter_ToHTML_ContextCancellation(t *testing.T) {
	t.Parallel()

	conv := NewGoldmarkConverter(RenderOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conv.ToHTML(ctx, "# Title")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}

func TestMathPreprocessor_PreprocessMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "inline boundaries then tags",
			input:    "See $\n x \n$.\n\n$$\\begin{aligned}\n a &= b \\tag{1}\n\\end{aligned}$$",
			expected: "See $x$.\n\n\\begin{align}\na &= b \\tag{1}\n\\end{align}",
		},
		{
			name:     "no math",
			input:    "# Title\n\nBody",
			expected: "# Title\n\nBody",
		},
		{
			name:     "line endings normalized after math",
			input:    "a\r\nb\rc",
			expected: "a\nb\nc",
		},
		{
			name:     "blank runs compressed",
			input:    "a\n\n\n\n\nb",
			expected: "a\n\nb",
		},
		{
			name:     "highlight becomes placeholders",
			input:    "a ==key== b",
			expected: "a " + MarkStartPlaceholder + "key" + MarkEndPlaceholder + " b",
		},
		{
			name:     "tagged block with CRLF still normalized",
			input:    "$$\\begin{aligned}\r\n a \\tag{1}\r\n\\end{aligned}$$",
			expected: "\\begin{align}\na \\tag{1}\n\\end{align}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := &MathPreprocessor{}
			got := p.PreprocessMarkdown(context.Background(), tt.input)
			if got != tt.expected {
				t.Errorf("PreprocessMarkdown() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConvertHighlights - ==text== outside code and math
// ---------------------------------------------------------------------------

func TestConvertHighlights(t *testing.T) {
	t.Parallel()

	const open, closing = MarkStartPlaceholder, MarkEndPlaceholder

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "==x==", open + "x" + closing},
		{"two on a line", "==a== and ==b==", open + "a" + closing + " and " + open + "b" + closing},
		{"does not cross lines", "==a\nb==", "==a\nb=="},
		{"empty pair untouched", "====", "===="},
		{"inline code", "`==x==`", "`==x==`"},
		{"fenced code", "```\na ==x== b\n```", "```\na ==x== b\n```"},
		{"inline math", "$a ==b==$", "$a ==b==$"},
		{"display math", "$$\na == b == c\n$$", "$$\na == b == c\n$$"},
		{"paren math", "\\(a ==b== c\\)", "\\(a ==b== c\\)"},
		{"environment", "\\begin{align}\na ==b==\n\\end{align}", "\\begin{align}\na ==b==\n\\end{align}"},
		{"after math", "$x$ then ==y==", "$x$ then " + open + "y" + closing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := convertHighlights(tt.input); got != tt.expected {
				t.Errorf("convertHighlights(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestConvertMarkPlaceholders(t *testing.T) {
	t.Parallel()

	got := ConvertMarkPlaceholders("<p>" + MarkStartPlaceholder + "x" + MarkEndPlaceholder + "</p>")
	if want := "<p><mark>x</mark></p>"; got != want {
		t.Errorf("ConvertMarkPlaceholders() = %q, want %q", got, want)
	}
}

func TestMathPreprocessor_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := "$\n x \n$"
	p := &MathPreprocessor{}
	if got := p.PreprocessMarkdown(ctx, input); got != input {
		t.Errorf("PreprocessMarkdown() with canceled context = %q, want input unchanged", got)
	}
}
