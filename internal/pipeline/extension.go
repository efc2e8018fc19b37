package pipeline

import (
	"bytes"
	"html"
	"io"
	"log/slog"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-mdstack/internal/icons"
	"github.com/alnah/go-mdstack/internal/macro"
)

// DefaultMaxDepth is the macro nesting limit used when none is configured.
const DefaultMaxDepth = 10

// Pass priorities. Lower runs first: macros expand while inline content is
// parsed, then accents, font sizes and icons run in that order.
const (
	macroParserPriority  = 150
	accentPriority       = 100
	fontSizePriority     = 200
	iconPriority         = 300
	nodeRendererPriority = 500
)

// ExtensionConfig configures an Extension.
type ExtensionConfig struct {
	// Macros is copied at construction; later changes are not seen.
	Macros macro.Registry

	// MaxDepth bounds macro nesting. Zero selects DefaultMaxDepth.
	MaxDepth int

	// Accents replaces DefaultAccents when non-nil.
	Accents map[string]string

	// IconResolver finds icon elements. Nil draws text glyphs only.
	IconResolver icons.Resolver

	// DefaultIconFile is used by icon layers that name no file.
	DefaultIconFile string

	Logger *slog.Logger
}

// Extension adds macros, accents, font sizes and icon stacks to goldmark.
// An Extension belongs to the single goldmark instance it extends because
// nested renders go back through that instance.
type Extension struct {
	macros          macro.Registry
	maxDepth        int
	accents         map[string]string
	composer        *icons.Composer
	defaultIconFile string
	logger          *slog.Logger

	md goldmark.Markdown
}

// NewExtension returns an Extension for cfg.
func NewExtension(cfg ExtensionConfig) *Extension {
	e := &Extension{
		macros:          cfg.Macros.Clone(),
		maxDepth:        cfg.MaxDepth,
		accents:         DefaultAccents,
		defaultIconFile: cfg.DefaultIconFile,
		logger:          cfg.Logger,
	}
	if e.maxDepth <= 0 {
		e.maxDepth = DefaultMaxDepth
	}
	if cfg.Accents != nil {
		e.accents = make(map[string]string, len(cfg.Accents))
		for k, v := range cfg.Accents {
			e.accents[k] = v
		}
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	resolver := cfg.IconResolver
	if resolver == nil {
		resolver = icons.NopResolver{}
	}
	e.composer = &icons.Composer{Resolver: resolver, Logger: e.logger}
	return e
}

// Extend implements goldmark.Extender.
func (e *Extension) Extend(m goldmark.Markdown) {
	e.md = m
	m.Parser().AddOptions(
		parser.WithInlineParsers(
			util.Prioritized(&macroParser{ext: e}, macroParserPriority),
		),
		parser.WithASTTransformers(
			util.Prioritized(&accentTransformer{accents: e.accents}, accentPriority),
			util.Prioritized(&fontSizeTransformer{}, fontSizePriority),
			util.Prioritized(&iconTransformer{composer: e.composer, defaultFile: e.defaultIconFile}, iconPriority),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(newNodeRenderer(), nodeRendererPriority),
		),
	)
}

// Render parses and renders source with a fresh macro context. source must
// already have been through Preprocess.
func (e *Extension) Render(w io.Writer, source []byte) error {
	_, err := e.render(w, source, newRenderState())
	return err
}

func (e *Extension) render(w io.Writer, source []byte, st *renderState) (ast.Node, error) {
	pc := parser.NewContext()
	pc.Set(renderStateKey, st)
	doc := e.md.Parser().Parse(text.NewReader(source), parser.WithContext(pc))
	return doc, e.md.Renderer().Render(w, source, doc)
}

// renderFragment runs Markdown produced during a render through the whole
// pipeline, sharing st. With inline set, a lone paragraph is unwrapped.
func (e *Extension) renderFragment(st *renderState, markdown string, inline bool) string {
	src := []byte(Preprocess(markdown))
	var buf bytes.Buffer
	doc, err := e.render(&buf, src, st)
	if err != nil {
		e.logger.Warn("nested render failed", "error", err)
		return html.EscapeString(markdown)
	}
	out := buf.String()
	if inline && doc.ChildCount() == 1 && doc.FirstChild().Kind() == ast.KindParagraph &&
		strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>\n") {
		out = out[len("<p>") : len(out)-len("</p>\n")]
	}
	return out
}

// expand runs one invocation and returns the markup that replaces it.
// Nothing here is fatal: limits, unknown names and panicking macros all
// produce an inline error marker.
func (e *Extension) expand(st *renderState, inv macro.Invocation) (out string) {
	st.depth++
	defer func() { st.depth-- }()

	if st.depth > e.maxDepth {
		e.logger.Warn("macro depth limit reached", "macro", inv.Name, "limit", e.maxDepth)
		return errorMarkup("max macro depth exceeded")
	}
	fn, ok := e.macros.Lookup(inv.Name)
	if !ok {
		e.logger.Debug("undefined macro", "macro", inv.Name)
		return errorMarkup("@" + inv.Name + " undefined")
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("macro panicked", "macro", inv.Name, "panic", r)
			out = errorMarkup("@" + inv.Name + " failed")
		}
	}()

	env := &macro.Env{
		Context: st.ctx,
		Depth:   st.depth,
		Render: func(markdown string) string {
			return e.renderFragment(st, markdown, false)
		},
		RenderInline: func(markdown string) string {
			return e.renderFragment(st, markdown, true)
		},
	}

	res := fn(inv.Args, env)
	switch res.Kind {
	case macro.KindHTML:
		return res.Value
	case macro.KindText:
		return e.renderFragment(st, res.Value, true)
	default:
		return ""
	}
}

// ErrorStyle is the inline style of macro error markers.
const ErrorStyle = "color:red; border-bottom:1px dotted red;"

func errorMarkup(msg string) string {
	return `<span class="macro-error" style="` + ErrorStyle + `">Error: ` + html.EscapeString(msg) + `</span>`
}
