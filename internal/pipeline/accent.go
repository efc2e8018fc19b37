package pipeline

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var accentPattern = regexp.MustCompile(`\+([^+\s]+)\+`)

// DefaultAccents maps +code+ shortcuts to the text that replaces them.
// Punctuation codes produce combining marks that attach to the previous
// letter.
var DefaultAccents = map[string]string{
	"'": "\u0301", // combining acute
	`"`: "\u0300", // combining grave
	",": "\u0328", // combining ogonek
	".": "\u032E", // combining breve below
	"i": "\u0269", // latin small iota
	"u": "\u028A", // latin small upsilon
}

// accentTransformer replaces +code+ with the registered accent.
//
// A code is recognised when it is a key of the map, or when it is a single
// letter followed by a key mapped to a combining mark: +a'+ becomes "a"
// followed by the acute. Unknown codes and ::icon:: references are left as
// written, delimiters included.
type accentTransformer struct {
	accents map[string]string
}

// Transform implements parser.ASTTransformer.
func (t *accentTransformer) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	rewriteText(doc, reader.Source(), t.rewrite)
}

func (t *accentTransformer) rewrite(text []byte) []ast.Node {
	if !accentPattern.Match(text) {
		return nil
	}
	skip := append(iconPattern.FindAllIndex(text, -1), []int{len(text), len(text)})

	var out []byte
	changed := false
	pos := 0
	for _, m := range skip {
		seg, ok := t.replace(text[pos:m[0]])
		changed = changed || ok
		out = append(out, seg...)
		out = append(out, text[m[0]:m[1]]...)
		pos = m[1]
	}
	if !changed {
		return nil
	}
	return []ast.Node{NewLiteral(out)}
}

func (t *accentTransformer) replace(text []byte) ([]byte, bool) {
	changed := false
	out := accentPattern.ReplaceAllFunc(text, func(m []byte) []byte {
		if v, ok := t.lookup(string(m[1 : len(m)-1])); ok {
			changed = true
			return []byte(v)
		}
		return m
	})
	return out, changed
}

func (t *accentTransformer) lookup(code string) (string, bool) {
	if v, ok := t.accents[code]; ok {
		return v, true
	}
	for key, v := range t.accents {
		base := strings.TrimSuffix(code, key)
		if len(base) == len(code) || utf8.RuneCountInString(base) != 1 || !isCombining(v) {
			continue
		}
		return base + v, true
	}
	return "", false
}

// isCombining reports whether s is a single combining mark.
func isCombining(s string) bool {
	r, size := utf8.DecodeRuneInString(s)
	return size == len(s) && unicode.Is(unicode.Mn, r)
}
