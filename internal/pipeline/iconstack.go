package pipeline

import (
	"regexp"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-mdstack/internal/icons"
)

var iconPattern = regexp.MustCompile(`::(.+?)::`)

// iconTransformer renders ::group:group:: references. A reference with no
// drawable group stays exactly as written; a single group that cannot be
// drawn stays as its own ::group:: text.
type iconTransformer struct {
	composer    *icons.Composer
	defaultFile string
}

// Transform implements parser.ASTTransformer.
func (t *iconTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	rewriteText(doc, reader.Source(), t.rewrite)
}

func (t *iconTransformer) rewrite(text []byte) []ast.Node {
	matches := iconPattern.FindAllSubmatchIndex(text, -1)
	if matches == nil {
		return nil
	}

	var pieces literalPieces
	changed := false
	pos := 0
	for _, m := range matches {
		pieces.text(text[pos:m[0]])
		pos = m[1]

		ref := icons.Parse(string(text[m[2]:m[3]]), t.defaultFile)
		parts, ok := t.composer.Compose(ref)
		if !ok {
			pieces.text(text[m[0]:m[1]])
			continue
		}
		changed = true
		for _, p := range parts {
			if p.Markup == "" {
				pieces.text([]byte(p.Text))
				continue
			}
			pieces.node(&IconGroup{Ref: ref.Source, Value: []byte(p.Markup)})
		}
	}
	if !changed {
		return nil
	}
	pieces.text(text[pos:])
	return pieces.result()
}
