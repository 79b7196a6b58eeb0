package pipeline

import (
	"net/url"
	"path"
	"strings"

	"github.com/alnah/go-mdsite/internal/fileutil"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RewriteRelativePaths resolves relative image and link paths in a rendered
// post against the site's media prefix (e.g. "/media/"), so that
// "img/plot.png" written next to the post source is served from
// "/media/img/plot.png" on every page that shows it.
// If prefix is empty, returns the HTML unchanged.
//
// Rewrites:
//   - img[src]: relative paths to images
//   - a[href]: relative file paths (not anchors, not URLs)
//   - a[href] to a sibling Markdown file: the post route, so "limits.md#proof"
//     becomes "/blog/limits#proof"
//
// Leaves alone anything with a scheme (https:, mailto:, data:),
// protocol-relative and site-absolute paths, and paths that climb above the
// media root.
func RewriteRelativePaths(htmlContent, prefix string) (string, error) {
	if prefix == "" || !strings.Contains(htmlContent, "<") {
		return htmlContent, nil
	}

	doc, err := parseFragment(htmlContent)
	if err != nil {
		return "", err
	}

	rewriteNode(doc, prefix)

	return renderFragment(doc)
}

// parseFragment parses an HTML fragment in a body context, wrapped in a
// container node for uniform traversal.
func parseFragment(content string) (*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, err
	}

	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// renderFragment renders the container's children without an
// <html><body> wrapper.
func renderFragment(doc *html.Node) (string, error) {
	var buf strings.Builder
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// rewriteNode traverses the DOM and rewrites relative paths.
func rewriteNode(n *html.Node, prefix string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Img:
			rewriteAttr(n, "src", prefix)
		case atom.A:
			if !rewritePostLink(n) {
				rewriteAttr(n, "href", prefix)
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rewriteNode(c, prefix)
	}
}

// rewriteAttr rewrites a single attribute if it's a relative path.
func rewriteAttr(n *html.Node, attrName, prefix string) {
	for i, attr := range n.Attr {
		if attr.Key != attrName || !isRelativePath(attr.Val) {
			continue
		}

		u, err := url.Parse(attr.Val)
		if err != nil || u.Path == "" {
			continue
		}

		cleaned := path.Clean(u.Path)
		if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
			continue // Outside the media root, leave original path
		}

		u.Path = path.Join("/", prefix, cleaned)
		n.Attr[i].Val = u.String()
	}
}

// PostRoute is the path under which posts are served.
const PostRoute = "/blog"

// rewritePostLink points a relative link to a Markdown file at its post page.
// Reports whether the link was rewritten.
func rewritePostLink(n *html.Node) bool {
	for i, attr := range n.Attr {
		if attr.Key != "href" || !isRelativePath(attr.Val) {
			continue
		}

		u, err := url.Parse(attr.Val)
		if err != nil || !fileutil.IsMarkdown(u.Path) {
			return false
		}

		u.Path = path.Join(PostRoute, fileutil.SlugFromPath(path.Base(u.Path)))
		u.RawQuery = ""
		n.Attr[i].Val = u.String()
		return true
	}
	return false
}

// isRelativePath returns true if the path should be rewritten.
func isRelativePath(p string) bool {
	if p == "" {
		return false
	}

	// Skip anchors, site-absolute and protocol-relative paths
	if strings.HasPrefix(p, "#") || strings.HasPrefix(p, "/") {
		return false
	}

	// Skip anything carrying a scheme (http:, https:, mailto:, data:, ...)
	u, err := url.Parse(p)
	if err != nil || u.Scheme != "" {
		return false
	}

	return true
}
