package pipeline

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Heading levels listed in a post's table of contents.
const (
	TOCMinLevel = 2
	TOCMaxLevel = 3
)

// TOCEntry is one heading of a rendered post.
type TOCEntry struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Number string `json:"number"` // "1.", "1.2.", ...
	Depth  int    `json:"depth"`  // 1-based, after normalization
}

var headingLevels = map[atom.Atom]int{
	atom.H1: 1, atom.H2: 2, atom.H3: 3,
	atom.H4: 4, atom.H5: 5, atom.H6: 6,
}

// TableOfContents lists the headings of an HTML fragment whose level lies
// in [minLevel, maxLevel], in document order and numbered hierarchically.
// Headings without an id attribute cannot be linked and are skipped.
func TableOfContents(htmlContent string, minLevel, maxLevel int) ([]TOCEntry, error) {
	if !strings.Contains(htmlContent, "<h") {
		return nil, nil
	}

	doc, err := parseFragment(htmlContent)
	if err != nil {
		return nil, err
	}

	var entries []TOCEntry
	numbers := &numbering{}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level, ok := headingLevels[n.DataAtom]; ok {
				id := attr(n, "id")
				if id != "" && level >= minLevel && level <= maxLevel {
					num, depth := numbers.next(level)
					entries = append(entries, TOCEntry{
						ID:     id,
						Text:   strings.Join(strings.Fields(textContent(n)), " "),
						Number: num,
						Depth:  depth,
					})
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return entries, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// numbering assigns "1.2." style numbers. The first heading seen defines
// depth 1, and a jump of several levels nests only one step deeper.
type numbering struct {
	counters [6]int
	minLevel int // 0 until the first heading
	last     int // depth of the previous heading
}

func (n *numbering) next(level int) (string, int) {
	if n.minLevel == 0 {
		n.minLevel = level
	}

	depth := max(level-n.minLevel+1, 1)
	if n.last > 0 && depth > n.last+1 {
		depth = n.last + 1
	}

	for i := depth; i < len(n.counters); i++ {
		n.counters[i] = 0
	}
	n.counters[depth-1]++
	n.last = depth

	var b strings.Builder
	for i := range depth {
		b.WriteString(strconv.Itoa(n.counters[i]))
		b.WriteByte('.')
	}
	return b.String(), depth
}
