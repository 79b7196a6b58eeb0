package pipeline

import (
	"context"
	"regexp"
	"strings"

	"github.com/alnah/go-mdsite/internal/mathtext"
)

// Highlight placeholders use Unicode Private Use Area characters. They pass
// through Goldmark unchanged and become <mark> tags after conversion.
const (
	MarkStartPlaceholder = "\uE000"
	MarkEndPlaceholder   = "\uE001"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// highlightOrVerbatim matches a ==highlight== or, earlier in the
	// alternation, a code or math span that must be left as written.
	highlightOrVerbatim = regexp.MustCompile("(?s)" +
		"```.*?```|~~~.*?~~~|`[^`\n]*`" +
		`|\$\$.*?\$\$|\$[^$\n]*\$` +
		`|\\\(.*?\\\)|\\\[.*?\\\]|\\begin\{[^}]*\}.*?\\end\{[^}]*\}` +
		`|==([^\n]+?)==`)
)

// MarkdownPreprocessor defines the contract for markdown preprocessing.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// MathPreprocessor normalizes math markup before Goldmark sees it.
type MathPreprocessor struct{}

// Compile-time interface check.
var _ MarkdownPreprocessor = (*MathPreprocessor)(nil)

// PreprocessMarkdown cleans inline math boundaries, then rewrites tagged
// alignment blocks. Order matters: tag detection runs on cleaned text.
// Line endings, blank runs and highlights are handled afterwards so the
// math transforms see the body as written.
func (p *MathPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	// Check for cancellation before processing
	if ctx.Err() != nil {
		return content
	}

	content = mathtext.CleanInlineMathBoundaries(content)
	content = mathtext.NormalizeAlignEnvironmentTags(content)
	content = normalizeLineEndings(content)
	content = convertHighlights(content)
	content = compressBlankLines(content)
	return content
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to 2 maximum.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// convertHighlights turns ==text== into placeholder markers. Code spans,
// fences and math are copied through untouched.
func convertHighlights(content string) string {
	if !strings.Contains(content, "==") {
		return content
	}
	return highlightOrVerbatim.ReplaceAllStringFunc(content, func(m string) string {
		if len(m) < 4 || !strings.HasPrefix(m, "==") || !strings.HasSuffix(m, "==") {
			return m
		}
		return MarkStartPlaceholder + m[2:len(m)-2] + MarkEndPlaceholder
	})
}

// ConvertMarkPlaceholders converts placeholder markers to <mark> tags.
// Called after Goldmark conversion to finish ==highlight== markup.
func ConvertMarkPlaceholders(content string) string {
	return strings.ReplaceAll(
		strings.ReplaceAll(content, MarkStartPlaceholder, "<mark>"),
		MarkEndPlaceholder, "</mark>",
	)
}
