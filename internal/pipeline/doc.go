// Package pipeline implements the Markdown-to-HTML rendering pipeline for
// site content.
//
// Stages, in call order:
//   - Math preprocessing (inline math boundary cleanup, align tag
//     normalization) via the mathtext package
//   - Markdown to HTML conversion via Goldmark (GFM, footnotes, MathJax
//     passthrough, chroma syntax highlighting)
//   - Optional HTML sanitizing via bluemonday
//   - Relative media path rewriting
//
// Typesetting itself happens in the visitor's browser: the HTML produced here
// keeps TeX source intact for MathJax.
package pipeline
