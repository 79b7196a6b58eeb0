package mdsite

import "github.com/alnah/go-mdsite/internal/mathtext"

// CleanInlineMathBoundaries removes line breaks (and the indentation that
// follows them) just inside inline math delimiters, so "$\n x \n$" becomes
// "$x$". Display math ($$) and escaped dollars are left alone.
func CleanInlineMathBoundaries(text string) string {
	return mathtext.CleanInlineMathBoundaries(text)
}

// NormalizeAlignEnvironmentTags rewrites aligned and align* blocks that carry
// a \tag into a numbered align environment, and repairs \\end{aligned}
// written with a doubled backslash.
func NormalizeAlignEnvironmentTags(text string) string {
	return mathtext.NormalizeAlignEnvironmentTags(text)
}

// NormalizeMath applies both math transforms in pipeline order.
func NormalizeMath(text string) string {
	return mathtext.NormalizeAlignEnvironmentTags(mathtext.CleanInlineMathBoundaries(text))
}
