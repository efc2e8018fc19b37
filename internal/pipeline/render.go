package pipeline

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-mdstack/internal/macro"
)

// nodeRenderer renders the nodes introduced by the inline passes, and the
// goldmark nodes where macro markers are never expanded.
type nodeRenderer struct {
	html.Config
}

func newNodeRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &nodeRenderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.RegisterFuncs.
func (r *nodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMarkup, r.renderMarkup)
	reg.Register(KindLiteral, r.renderLiteral)
	reg.Register(KindFontSize, r.renderFontSize)
	reg.Register(KindIconGroup, r.renderIconGroup)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindHTMLBlock, r.renderHTMLBlock)
	reg.Register(ast.KindRawHTML, r.renderRawHTML)
}

func (r *nodeRenderer) renderMarkup(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.Write(node.(*Markup).Value)
	}
	return ast.WalkContinue, nil
}

// renderLiteral mirrors goldmark's text rendering, line breaks included.
func (r *nodeRenderer) renderLiteral(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Literal)
	r.Writer.Write(w, n.Value)
	switch {
	case n.HardLineBreak || (n.SoftLineBreak && r.HardWraps):
		if r.XHTML {
			_, _ = w.WriteString("<br />\n")
		} else {
			_, _ = w.WriteString("<br>\n")
		}
	case n.SoftLineBreak:
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderFontSize(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<span class="`)
		_, _ = w.Write(util.EscapeHTML([]byte(node.(*FontSize).Class)))
		_, _ = w.WriteString(`">`)
	} else {
		_, _ = w.WriteString("</span>")
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderIconGroup(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.Write(node.(*IconGroup).Value)
	}
	return ast.WalkContinue, nil
}

// The three renderers below follow goldmark's html.Renderer and restore macro
// invocations that Protect encoded in text the inline parser never sees.

func (r *nodeRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</code></pre>\n")
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("<pre><code>")
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		r.Writer.RawWrite(w, macro.Restore(seg.Value(source)))
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderHTMLBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.HTMLBlock)
	if entering {
		if !r.Unsafe {
			_, _ = w.WriteString("<!-- raw HTML omitted -->\n")
			return ast.WalkContinue, nil
		}
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			r.Writer.SecureWrite(w, macro.Restore(seg.Value(source)))
		}
		return ast.WalkContinue, nil
	}
	if n.HasClosure() {
		if r.Unsafe {
			r.Writer.SecureWrite(w, macro.Restore(n.ClosureLine.Value(source)))
		} else {
			_, _ = w.WriteString("<!-- raw HTML omitted -->\n")
		}
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderRawHTML(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkSkipChildren, nil
	}
	if !r.Unsafe {
		_, _ = w.WriteString("<!-- raw HTML omitted -->")
		return ast.WalkSkipChildren, nil
	}
	segs := node.(*ast.RawHTML).Segments
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		_, _ = w.Write(macro.Restore(seg.Value(source)))
	}
	return ast.WalkSkipChildren, nil
}
