package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// GoldmarkOptions tunes the goldmark renderer.
type GoldmarkOptions struct {
	// SoftWraps keeps single newlines as spaces instead of <br />.
	SoftWraps bool

	// Unsafe lets raw HTML written in the document through. Macro output is
	// always emitted.
	Unsafe bool

	// HighlightStyle is the chroma style for fenced code. Empty uses CSS
	// classes only.
	HighlightStyle string
}

// GoldmarkConverter converts Markdown to an HTML fragment using goldmark
// extended with the mdstack passes.
type GoldmarkConverter struct {
	md  goldmark.Markdown
	ext *Extension
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM, footnotes,
// syntax highlighting and ext.
func NewGoldmarkConverter(ext *Extension, opts GoldmarkOptions) *GoldmarkConverter {
	hl := []highlighting.Option{
		highlighting.WithFormatOptions(
			chromahtml.WithClasses(opts.HighlightStyle == ""),
		),
	}
	if opts.HighlightStyle != "" {
		hl = append(hl, highlighting.WithStyle(opts.HighlightStyle))
	}

	rendererOpts := []renderer.Option{html.WithXHTML()}
	if !opts.SoftWraps {
		rendererOpts = append(rendererOpts, html.WithHardWraps())
	}
	if opts.Unsafe {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(hl...),
			ext,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return &GoldmarkConverter{md: md, ext: ext}
}

// ToHTML converts preprocessed Markdown to an HTML fragment. Every call gets
// its own macro context.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, r)}
			}
		}()
		var buf bytes.Buffer
		if err := c.ext.Render(&buf, []byte(content)); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
