package pipeline

import (
	"github.com/yuin/goldmark/ast"
)

// rewriteFunc turns the text of a run into replacement nodes. It returns nil
// when the text has nothing to rewrite.
type rewriteFunc func(text []byte) []ast.Node

// rewriteText applies fn to every run of plain-text nodes below root.
//
// Adjacent text nodes are joined before fn sees them, so a pattern split by
// the inline parser is still found. A run ends at a line break; the break
// moves to the last replacement node. Code, raw HTML, autolinks, image alt
// text and pass output are never visited.
func rewriteText(root ast.Node, source []byte, fn rewriteFunc) {
	var parents []ast.Node
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindCodeSpan, ast.KindRawHTML, ast.KindAutoLink, ast.KindImage,
			KindMarkup, KindIconGroup:
			return ast.WalkSkipChildren, nil
		}
		if n.HasChildren() {
			parents = append(parents, n)
		}
		return ast.WalkContinue, nil
	})

	for _, p := range parents {
		rewriteChildren(p, source, fn)
	}
}

func rewriteChildren(parent ast.Node, source []byte, fn rewriteFunc) {
	for c := parent.FirstChild(); c != nil; {
		value, ok := textValue(c, source)
		if !ok {
			c = c.NextSibling()
			continue
		}

		run := []ast.Node{c}
		buf := append([]byte(nil), value...)
		last := c
		for {
			if soft, hard := lineBreaks(last); soft || hard {
				break
			}
			next := last.NextSibling()
			v, ok := textValue(next, source)
			if !ok {
				break
			}
			run = append(run, next)
			buf = append(buf, v...)
			last = next
		}
		following := last.NextSibling()

		if repl := fn(buf); repl != nil {
			soft, hard := lineBreaks(last)
			if soft || hard {
				var tail *Literal
				if len(repl) > 0 {
					tail, _ = repl[len(repl)-1].(*Literal)
				}
				if tail == nil {
					tail = &Literal{}
					repl = append(repl, tail)
				}
				tail.SoftLineBreak, tail.HardLineBreak = soft, hard
			}
			for _, n := range repl {
				parent.InsertBefore(parent, run[0], n)
			}
			for _, n := range run {
				parent.RemoveChild(parent, n)
			}
		}
		c = following
	}
}

// textValue returns the text carried by n when n is plain text.
func textValue(n ast.Node, source []byte) ([]byte, bool) {
	switch t := n.(type) {
	case *ast.Text:
		if t.IsRaw() {
			return nil, false
		}
		return t.Segment.Value(source), true
	case *ast.String:
		if t.IsCode() || t.IsRaw() {
			return nil, false
		}
		return t.Value, true
	case *Literal:
		return t.Value, true
	}
	return nil, false
}

func lineBreaks(n ast.Node) (soft, hard bool) {
	switch t := n.(type) {
	case *ast.Text:
		return t.SoftLineBreak(), t.HardLineBreak()
	case *Literal:
		return t.SoftLineBreak, t.HardLineBreak
	}
	return false, false
}

// literalPieces collects replacement nodes, merging adjacent text.
type literalPieces struct {
	nodes   []ast.Node
	pending []byte
}

func (p *literalPieces) text(b []byte) {
	p.pending = append(p.pending, b...)
}

func (p *literalPieces) node(n ast.Node) {
	p.flush()
	p.nodes = append(p.nodes, n)
}

func (p *literalPieces) flush() {
	if len(p.pending) > 0 {
		p.nodes = append(p.nodes, NewLiteral(p.pending))
		p.pending = p.pending[:0]
	}
}

func (p *literalPieces) result() []ast.Node {
	p.flush()
	return p.nodes
}
