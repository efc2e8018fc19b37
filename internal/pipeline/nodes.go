package pipeline

import (
	"github.com/yuin/goldmark/ast"
)

// KindMarkup is the NodeKind of Markup.
var KindMarkup = ast.NewNodeKind("Markup")

// Markup is a fragment of finished HTML: macro results and error markers.
// Later passes never look inside it.
type Markup struct {
	ast.BaseInline
	Value []byte
}

// NewMarkup returns a Markup node holding value.
func NewMarkup(value string) *Markup {
	return &Markup{Value: []byte(value)}
}

// Kind implements ast.Node.Kind.
func (n *Markup) Kind() ast.NodeKind { return KindMarkup }

// Dump implements ast.Node.Dump.
func (n *Markup) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Value": string(n.Value)}, nil)
}

// KindLiteral is the NodeKind of Literal.
var KindLiteral = ast.NewNodeKind("Literal")

// Literal is plain text produced by a pass. Unlike ast.String it keeps the
// line break that ended the text it replaced.
type Literal struct {
	ast.BaseInline
	Value         []byte
	SoftLineBreak bool
	HardLineBreak bool
}

// NewLiteral returns a Literal holding a copy of value.
func NewLiteral(value []byte) *Literal {
	return &Literal{Value: append([]byte(nil), value...)}
}

// Kind implements ast.Node.Kind.
func (n *Literal) Kind() ast.NodeKind { return KindLiteral }

// Dump implements ast.Node.Dump.
func (n *Literal) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Value": string(n.Value)}, nil)
}

// KindFontSize is the NodeKind of FontSize.
var KindFontSize = ast.NewNodeKind("FontSize")

// Font size classes.
const (
	ClassBig   = "big"
	ClassSmall = "small"
	ClassHalf  = "half"
)

// FontSize wraps its children in a span with a size class.
type FontSize struct {
	ast.BaseInline
	Class string
}

// NewFontSize returns an empty FontSize container.
func NewFontSize(class string) *FontSize {
	return &FontSize{Class: class}
}

// Kind implements ast.Node.Kind.
func (n *FontSize) Kind() ast.NodeKind { return KindFontSize }

// Dump implements ast.Node.Dump.
func (n *FontSize) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Class": n.Class}, nil)
}

// KindIconGroup is the NodeKind of IconGroup.
var KindIconGroup = ast.NewNodeKind("IconGroup")

// IconGroup is one rendered group of an icon reference.
type IconGroup struct {
	ast.BaseInline
	Ref   string
	Value []byte
}

// Kind implements ast.Node.Kind.
func (n *IconGroup) Kind() ast.NodeKind { return KindIconGroup }

// Dump implements ast.Node.Dump.
func (n *IconGroup) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Ref": n.Ref}, nil)
}
