package mdstack

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alnah/go-mdstack/internal/assets"
	"github.com/alnah/go-mdstack/internal/fileutil"
	"github.com/alnah/go-mdstack/internal/icons"
	"github.com/alnah/go-mdstack/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector          = (*pipeline.CSSInjection)(nil)
	_ pipeline.PageWrapper          = (*pipeline.PageTemplate)(nil)
	_ pdfConverter                  = (*rodConverter)(nil)
	_ pdfRenderer                   = (*rodRenderer)(nil)
)

// Converter runs the Markdown pipeline: macro protection, goldmark with the
// macro, accent, font-size and icon passes, then the page shell and optional
// PDF rendering.
//
// A Converter is safe for concurrent Convert calls; each call gets its own
// macro context. PDF rendering shares one browser, so batch PDF builds use a
// ConverterPool.
type Converter struct {
	cfg           converterConfig
	assetLoader   AssetLoader
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	cssInjector   pipeline.CSSInjector
	pageWrapper   pipeline.PageWrapper
	pdfConverter  pdfConverter
	now           func() time.Time
}

// NewConverter creates a Converter with default configuration.
// Returns error if assets, icons or the page template cannot be loaded.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:  defaultTimeout,
			macros:   DefaultMacros(),
			accents:  DefaultAccents(),
			iconMode: IconsReference,
		},
		preprocessor: &pipeline.CommonMarkPreprocessor{},
		cssInjector:  &pipeline.CSSInjection{},
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.logger == nil {
		c.cfg.logger = slog.New(slog.DiscardHandler)
	}

	if c.assetLoader == nil {
		loader, err := NewAssetLoader(c.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		c.assetLoader = loader
	}

	if err := c.resolveStyle(); err != nil {
		return nil, err
	}

	if c.pageWrapper == nil {
		tmpl, err := c.assetLoader.LoadTemplate(DefaultTemplate)
		if err != nil {
			return nil, fmt.Errorf("loading page template: %w", err)
		}
		page, err := pipeline.NewPageTemplate(tmpl)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
		}
		c.pageWrapper = page
	}

	if c.htmlConverter == nil {
		resolver, err := c.iconResolver()
		if err != nil {
			return nil, err
		}
		ext := pipeline.NewExtension(pipeline.ExtensionConfig{
			Macros:          c.cfg.macros,
			MaxDepth:        c.cfg.maxDepth,
			Accents:         c.cfg.accents,
			IconResolver:    resolver,
			DefaultIconFile: c.cfg.defaultIconFile,
			Logger:          c.cfg.logger,
		})
		c.htmlConverter = pipeline.NewGoldmarkConverter(ext, pipeline.GoldmarkOptions{
			SoftWraps:      c.cfg.softWraps,
			Unsafe:         c.cfg.unsafeHTML,
			HighlightStyle: c.cfg.highlightStyle,
		})
	}

	// The browser itself starts on the first PDF request.
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout)
	}

	return c, nil
}

// iconResolver builds the resolver selected by the icon options.
func (c *Converter) iconResolver() (IconResolver, error) {
	dirOpts := []icons.DirOption{
		icons.WithPublicPath(c.cfg.iconPublicPath),
		icons.WithMode(c.cfg.iconMode),
		icons.WithLogger(c.cfg.logger),
	}
	switch {
	case c.cfg.iconResolver != nil:
		return c.cfg.iconResolver, nil
	case c.cfg.iconFS != nil:
		return icons.NewDirResolver(c.cfg.iconFS, dirOpts...), nil
	case c.cfg.iconDir != "":
		r, err := icons.NewDirResolverFromPath(c.cfg.iconDir, dirOpts...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidIconDir, err)
		}
		return r, nil
	}
	return icons.NopResolver{}, nil
}

// Convert runs the full pipeline on one document.
// The context is used for cancellation and timeout.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	if input.SourceDir != "" {
		body, err = pipeline.RewriteRelativePaths(body, input.SourceDir)
		if err != nil {
			return nil, fmt.Errorf("rewriting relative paths: %w", err)
		}
	}

	title := input.Title
	if title == "" {
		title = pipeline.ExtractTitle(body)
	}
	date, err := ResolveDate(input.Date, c.now())
	if err != nil {
		return nil, err
	}

	page, err := c.pageWrapper.WrapPage(ctx, &pipeline.PageData{
		Title: title,
		Lang:  input.Lang,
		Date:  date,
		Body:  body,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
	}

	// Converter style first, per-document CSS last so it can override.
	css := c.cfg.resolvedStyle
	if input.CSS != "" {
		css += "\n" + input.CSS
	}
	page = c.cssInjector.InjectCSS(ctx, page, css)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		Body:  body,
		Title: title,
		HTML:  []byte(page),
	}
	if !input.PDF {
		return res, nil
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, page, &pdfOptions{Page: input.Page})
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdfBytes
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}

// resolveStyle turns the style input (name, path, or CSS content) into CSS.
func (c *Converter) resolveStyle() error {
	input := c.cfg.styleInput
	if input == "" {
		input = DefaultStyle
	}

	if fileutil.IsFilePath(input) {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("loading style file %q: %w", input, err)
		}
		c.cfg.resolvedStyle = string(content)
		return nil
	}

	if fileutil.IsCSS(input) {
		c.cfg.resolvedStyle = input
		return nil
	}

	css, err := c.assetLoader.LoadStyle(input)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	c.cfg.resolvedStyle = css
	return nil
}

// validateInput checks that required fields are present and valid.
//
// This is a trust boundary for library users who build Input manually; CLI
// input went through config validation already.
func (c *Converter) validateInput(input Input) error {
	if input.Markdown == "" {
		return ErrEmptyMarkdown
	}
	return input.Page.Validate()
}
