// Package mathtext normalizes math markup in Markdown source before it is
// handed to the Markdown renderer.
//
// Two independent transforms are provided:
//   - CleanInlineMathBoundaries removes line breaks (and the indentation that
//     follows them) sitting just inside inline math delimiters, so that
//     "$\n x \n$" becomes "$x$".
//   - NormalizeAlignEnvironmentTags rewrites tagged aligned/align* blocks into
//     numbered align blocks so MathJax renders \tag{...} correctly.
//
// Both are pure: string in, string out, safe for concurrent use. The content
// pipeline applies them in that order.
package mathtext
