package pipeline

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-mdstack/internal/macro"
)

// renderStateKey stores the *renderState of the current render in the
// parser context. Nested renders get a fresh parser context pointing at the
// same state.
var renderStateKey = parser.NewContextKey()

// renderState is what one top-level render shares with everything it
// expands.
type renderState struct {
	ctx   *macro.Context
	depth int
}

func newRenderState() *renderState {
	return &renderState{ctx: macro.NewContext()}
}

// stateFrom returns the render state held by pc, creating one for callers
// that parse without going through Extension.Render.
func stateFrom(pc parser.Context) *renderState {
	if st, ok := pc.Get(renderStateKey).(*renderState); ok {
		return st
	}
	st := newRenderState()
	pc.Set(renderStateKey, st)
	return st
}

// macroParser expands @{payload} markers left by macro.Protect.
type macroParser struct {
	ext *Extension
}

// Trigger implements parser.InlineParser.
func (p *macroParser) Trigger() []byte {
	return []byte{'@'}
}

// Parse implements parser.InlineParser. A marker that does not decode is
// left to the other parsers and ends up as text.
func (p *macroParser) Parse(_ ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	payload, width, ok := macro.MatchMarker(line)
	if !ok {
		return nil
	}
	inv, err := macro.Decode(payload)
	if err != nil {
		return nil
	}
	block.Advance(width)
	return NewMarkup(p.ext.expand(stateFrom(pc), inv))
}
