package mathtext

import (
	"regexp"
	"strings"
	"unicode"
)

// space is the whitespace class used between delimiters: ASCII space and
// control whitespace, vertical tab, every Unicode separator (NBSP and the
// line and paragraph separators included) and the byte order mark.
const space = `[\t\n\v\f\r\p{Z}\x{FEFF}]`

// Precompiled patterns. They hold no per-call state.
var (
	// \tag{...} or \tag*{...}, optionally with whitespace before the brace.
	tagPattern = regexp.MustCompile(`\\tag\*?` + space + `*\{`)

	// A backslash run directly before end{aligned}; only runs of two are repaired.
	alignedEndingPattern = regexp.MustCompile(`(\\+)end\{aligned\}`)
)

// alignBlock describes one delimiter style wrapping an alignment
// environment. The first capture group of pattern is the body.
type alignBlock struct {
	name    string
	pattern *regexp.Regexp
}

// alignBlocks are applied in order; each pass sees the previous pass's
// output, so a block rewritten to \begin{align} is never matched again by
// the bare aligned pattern.
var alignBlocks = []alignBlock{
	{
		name:    "bracket-aligned",
		pattern: regexp.MustCompile(`(?s)\\\[` + space + `*\\begin\{aligned\}(.*?)\\end\{aligned\}` + space + `*\\\]`),
	},
	{
		name:    "dollar-aligned",
		pattern: regexp.MustCompile(`(?s)\$\$` + space + `*\\begin\{aligned\}(.*?)\\end\{aligned\}` + space + `*\$\$`),
	},
	{
		name:    "align-star",
		pattern: regexp.MustCompile(`(?s)\\begin\{align\*\}(.*?)\\end\{align\*\}`),
	},
	{
		name:    "aligned",
		pattern: regexp.MustCompile(`(?s)\\begin\{aligned\}(.*?)\\end\{aligned\}`),
	},
}

// NormalizeAlignEnvironmentTags rewrites aligned and align* blocks whose body
// carries a \tag command into \begin{align}...\end{align}, dropping any outer
// \[...\] or $$...$$ delimiters. Untagged blocks are left as found.
//
// Independently of tagging, a doubled backslash before end{aligned} is
// collapsed to a single one.
func NormalizeAlignEnvironmentTags(input string) string {
	output := fixEscapedAlignedEndings(input)

	if !tagPattern.MatchString(output) {
		return output
	}

	for _, block := range alignBlocks {
		output = rewriteTagged(block.pattern, output)
	}
	return output
}

// fixEscapedAlignedEndings turns \\end{aligned} into \end{aligned}. Runs of
// one or three and more backslashes are kept: a single one is already
// correct and longer runs carry a line break (\\) before the ending.
func fixEscapedAlignedEndings(s string) string {
	if !strings.Contains(s, `end{aligned}`) {
		return s
	}
	return alignedEndingPattern.ReplaceAllStringFunc(s, func(match string) string {
		if len(match)-len("end{aligned}") == 2 {
			return `\end{aligned}`
		}
		return match
	})
}

// rewriteTagged replaces every non-overlapping match of re whose body
// contains a tag with a canonical align block.
func rewriteTagged(re *regexp.Regexp, s string) string {
	matches := re.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		body := s[m[2]:m[3]]
		if !tagPattern.MatchString(body) {
			continue
		}
		b.WriteString(s[last:start])
		b.WriteString(buildAlignBlock(body))
		last = end
	}
	if last == 0 {
		return s
	}
	b.WriteString(s[last:])
	return b.String()
}

// isSpace matches the characters of the space class.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\uFEFF':
		return true
	}
	return unicode.In(r, unicode.Z)
}

// buildAlignBlock wraps the trimmed body in an align environment.
func buildAlignBlock(body string) string {
	trimmed := strings.TrimFunc(body, isSpace)
	if trimmed == "" {
		return `\begin{align}\end{align}`
	}
	return "\\begin{align}\n" + trimmed + "\n\\end{align}"
}
