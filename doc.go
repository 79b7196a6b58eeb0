// Package mdsite renders a personal website from Markdown: blog posts with
// MathJax-ready math, code highlighting, and project and experience cards.
//
// # Quick Start
//
// Create a Site over a content tree and render a post:
//
//	site, err := mdsite.New(
//	    mdsite.WithContentDirs("content/posts", "content/projects", "content/experience"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	post, err := site.Post(ctx, "hello-world")
//	if errors.Is(err, mdsite.ErrPostNotFound) {
//	    // 404
//	}
//	fmt.Println(post.HTML)
//
// # Rendering Pipeline
//
// Every post body goes through the same stages:
//
//  1. Front matter removal (YAML between "---" lines)
//  2. Math normalization: CleanInlineMathBoundaries, then
//     NormalizeAlignEnvironmentTags
//  3. Markdown to HTML via Goldmark (GFM, footnotes, MathJax passthrough,
//     chroma highlighting with CSS classes)
//  4. Optional sanitizing (bluemonday) and relative media path rewriting
//
// TeX is not typeset here. The HTML keeps the math source intact for MathJax
// in the browser.
//
// # Math Normalization
//
// The two math transforms are exported for use on their own:
//
//	mdsite.CleanInlineMathBoundaries("$\n x \n$")        // "$x$"
//	mdsite.NormalizeAlignEnvironmentTags(`\[\begin{aligned}a\tag{1}\end{aligned}\]`)
//
// Both are total functions: any input is accepted and no error is returned.
//
// # Configuration
//
// Use functional options to customize the site:
//
//	site, err := mdsite.New(
//	    mdsite.WithRenderOptions(mdsite.RenderOptions{Sanitize: true, HighlightStyle: "dracula"}),
//	    mdsite.WithMediaPrefix("/media"),
//	    mdsite.WithRecentPosts(3),
//	)
package mdsite
