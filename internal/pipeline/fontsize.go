package pipeline

import (
	"regexp"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// fontSizePattern matches the three paired delimiters. Each alternative is
// non-greedy and requires the same delimiter on both sides.
var fontSizePattern = regexp.MustCompile(`\^\^(.+?)\^\^|,,(.+?),,|==(.+?)==`)

// fontSizeClasses is indexed by the capture group that matched.
var fontSizeClasses = [...]string{ClassBig, ClassSmall, ClassHalf}

// fontSizeTransformer wraps ^^big^^, ,,small,, and ==half== in FontSize
// containers. The content stays plain text so the icon pass still sees it.
type fontSizeTransformer struct{}

// Transform implements parser.ASTTransformer.
func (t *fontSizeTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	rewriteText(doc, reader.Source(), t.rewrite)
}

func (t *fontSizeTransformer) rewrite(text []byte) []ast.Node {
	matches := fontSizePattern.FindAllSubmatchIndex(text, -1)
	if matches == nil {
		return nil
	}

	var pieces literalPieces
	pos := 0
	for _, m := range matches {
		pieces.text(text[pos:m[0]])
		for g, class := range fontSizeClasses {
			start, end := m[2+2*g], m[3+2*g]
			if start < 0 {
				continue
			}
			span := NewFontSize(class)
			span.AppendChild(span, NewLiteral(text[start:end]))
			pieces.node(span)
			break
		}
		pos = m[1]
	}
	pieces.text(text[pos:])
	return pieces.result()
}
