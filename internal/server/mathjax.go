package server

import "github.com/alnah/go-mdsite/internal/config"

// MathJaxSrc is the MathJax v3 bundle loaded by every page.
const MathJaxSrc = "https://cdn.jsdelivr.net/npm/mathjax@3/es5/tex-mml-chtml.js"

// MathJaxConfig is assigned to window.MathJax before the bundle loads.
type MathJaxConfig struct {
	Tex     TexConfig      `json:"tex"`
	Options MathJaxOptions `json:"options"`
}

// TexConfig configures the TeX input processor.
type TexConfig struct {
	InlineMath          [][2]string             `json:"inlineMath"`
	DisplayMath         [][2]string             `json:"displayMath"`
	ProcessEnvironments bool                    `json:"processEnvironments"` // bare \begin{align} blocks
	Macros              map[string]config.Macro `json:"macros"`
}

// MathJaxOptions holds document-level MathJax options.
type MathJaxOptions struct {
	SkipHTMLTags []string `json:"skipHtmlTags"`
}

// NewMathJaxConfig returns the page configuration for the given macros.
// A nil map yields an empty macro table.
func NewMathJaxConfig(macros map[string]config.Macro) MathJaxConfig {
	if macros == nil {
		macros = map[string]config.Macro{}
	}
	return MathJaxConfig{
		Tex: TexConfig{
			InlineMath:          [][2]string{{"$", "$"}, {`\(`, `\)`}},
			DisplayMath:         [][2]string{{"$$", "$$"}, {`\[`, `\]`}},
			ProcessEnvironments: true,
			Macros:              macros,
		},
		Options: MathJaxOptions{
			SkipHTMLTags: []string{"script", "noscript", "style", "textarea", "pre", "code"},
		},
	}
}
