package pipeline

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// TeXDelimiters keeps \(..\), \[..\] and \begin{env}..\end{env} math out of
// Markdown parsing, so backslash escapes never touch it (a "\\" row break
// stays "\\"). Spans are emitted as written for MathJax, HTML-escaped and
// wrapped like the goldmark-mathjax output. Dollar math is left to
// goldmark-mathjax.
var TeXDelimiters goldmark.Extender = &texDelimiters{}

type texDelimiters struct{}

func (e *texDelimiters) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(util.Prioritized(&texBlockParser{}, 702)),
		parser.WithInlineParsers(util.Prioritized(&texInlineParser{}, 502)),
	)
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&texRenderer{}, 503),
	))
}

// KindTeXBlock and KindTeXInline identify TeX math nodes.
var (
	KindTeXBlock  = ast.NewNodeKind("TeXBlock")
	KindTeXInline = ast.NewNodeKind("TeXInline")
)

// TeXBlock is display math starting a line: its lines are kept verbatim.
type TeXBlock struct {
	ast.BaseBlock
	closer []byte
	closed bool
}

func (n *TeXBlock) Kind() ast.NodeKind { return KindTeXBlock }

func (n *TeXBlock) IsRaw() bool { return true }

func (n *TeXBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// TeXInline is math inside a paragraph. Its children are raw text segments,
// one per source line, delimiters included.
type TeXInline struct {
	ast.BaseInline
	Display bool
}

func (n *TeXInline) Kind() ast.NodeKind { return KindTeXInline }

func (n *TeXInline) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

var envOpenRe = regexp.MustCompile(`^\\begin\{([A-Za-z]+\*?)\}`)

// texOpener returns the length of the math opener at the start of line and
// its closer, or ok == false.
func texOpener(line []byte) (openLen int, closer []byte, ok bool) {
	switch {
	case bytes.HasPrefix(line, []byte(`\(`)):
		return 2, []byte(`\)`), true
	case bytes.HasPrefix(line, []byte(`\[`)):
		return 2, []byte(`\]`), true
	}
	if m := envOpenRe.FindSubmatchIndex(line); m != nil {
		name := line[m[2]:m[3]]
		return m[1], append(append([]byte(`\end{`), name...), '}'), true
	}
	return 0, nil, false
}

// indexCloser finds closer in line at or after from, skipping a closer
// whose backslash is itself escaped (as in "\\)").
func indexCloser(line []byte, from int, closer []byte) int {
	for i := from; i+len(closer) <= len(line); i++ {
		if !bytes.HasPrefix(line[i:], closer) {
			continue
		}
		n := 0
		for j := i - 1; j >= 0 && line[j] == '\\'; j-- {
			n++
		}
		if n%2 == 0 {
			return i
		}
	}
	return -1
}

// texBlockParser opens on \[ or \begin{env} at the start of a line and
// closes on the line holding the matching closer. A blank line also closes
// it, so an unterminated environment cannot swallow the rest of a post.
type texBlockParser struct{}

func (b *texBlockParser) Trigger() []byte { return []byte{'\\'} }

func (b *texBlockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || line[pos] != '\\' {
		return nil, parser.NoChildren
	}
	openLen, closer, ok := texOpener(line[pos:])
	if !ok || bytes.Equal(closer, []byte(`\)`)) {
		return nil, parser.NoChildren
	}

	node := &TeXBlock{closer: closer}
	node.closed = indexCloser(line, pos+openLen, closer) >= 0
	node.Lines().Append(segment.WithStart(segment.Start + pos))
	reader.AdvanceToEOL()
	return node, parser.NoChildren
}

func (b *texBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	n := node.(*TeXBlock)
	if n.closed {
		return parser.Close
	}
	line, segment := reader.PeekLine()
	if util.IsBlank(line) {
		return parser.Close
	}
	n.Lines().Append(segment)
	reader.AdvanceToEOL()
	if indexCloser(line, 0, n.closer) >= 0 {
		n.closed = true
		return parser.Close
	}
	return parser.Continue | parser.NoChildren
}

func (b *texBlockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (b *texBlockParser) CanInterruptParagraph() bool { return true }

func (b *texBlockParser) CanAcceptIndentedLine() bool { return false }

// texInlineParser reads a delimited span that may cross lines. Without a
// closer in the paragraph it declines, and the backslash is parsed as usual.
type texInlineParser struct{}

func (p *texInlineParser) Trigger() []byte { return []byte{'\\'} }

func (p *texInlineParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, segment := block.PeekLine()
	openLen, closer, ok := texOpener(line)
	if !ok {
		return nil
	}
	savedLine, savedPos := block.Position()

	node := &TeXInline{Display: !bytes.Equal(closer, []byte(`\)`))}
	from := openLen
	for {
		if i := indexCloser(line, from, closer); i >= 0 {
			stop := i + len(closer)
			node.AppendChild(node, ast.NewRawTextSegment(segment.WithStop(segment.Start+stop)))
			block.Advance(stop)
			return node
		}
		node.AppendChild(node, ast.NewRawTextSegment(segment))
		block.AdvanceLine()
		line, segment = block.PeekLine()
		if line == nil {
			block.SetPosition(savedLine, savedPos)
			return nil
		}
		from = 0
	}
}

type texRenderer struct{}

func (r *texRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindTeXBlock, r.renderBlock)
	reg.Register(KindTeXInline, r.renderInline)
}

func (r *texRenderer) renderBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`<p><span class="math display">`)
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		value := lines.At(i).Value(source)
		if i == lines.Len()-1 {
			value = bytes.TrimRight(value, "\r\n")
		}
		_, _ = w.Write(util.EscapeHTML(value))
	}
	_, _ = w.WriteString("</span></p>\n")
	return ast.WalkContinue, nil
}

func (r *texRenderer) renderInline(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString(`</span>`)
		return ast.WalkContinue, nil
	}
	class := "math inline"
	if node.(*TeXInline).Display {
		class = "math display"
	}
	_, _ = w.WriteString(`<span class="` + class + `">`)
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		_, _ = w.Write(util.EscapeHTML(c.(*ast.Text).Segment.Value(source)))
	}
	return ast.WalkSkipChildren, nil
}
