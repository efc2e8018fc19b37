package mdstack

import (
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size   string  // "letter", "a4", "legal"
	Margin float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:   PageSizeLetter,
		Margin: DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	switch strings.ToLower(p.Size) {
	case PageSizeLetter, PageSizeA4, PageSizeLegal:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}
	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// Input is one document to convert.
type Input struct {
	// Markdown is the document source. Required.
	Markdown string

	// SourceDir resolves relative image, link and icon references to
	// file:// URLs. Needed for PDF output, which renders from a temp file.
	SourceDir string

	// Title of the page. Empty uses the first heading.
	Title string

	// Lang is the html lang attribute. Empty uses "en".
	Lang string

	// Date is shown under the title: a literal, "auto" or "auto:FORMAT"
	// (see ResolveDate).
	Date string

	// CSS is appended after the converter style.
	CSS string

	// PDF requests a PDF rendering in Result.PDF.
	PDF bool

	// Page sets the PDF page size and margin. Nil uses DefaultPageSettings.
	Page *PageSettings
}

// Result holds the outputs of one conversion.
type Result struct {
	// Body is the rendered HTML fragment.
	Body string

	// Title is the resolved page title.
	Title string

	// HTML is the complete page: template, inline CSS and Body.
	HTML []byte

	// PDF is set when Input.PDF was requested.
	PDF []byte
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout         time.Duration
	macros          Macros
	maxDepth        int
	accents         map[string]string
	iconDir         string
	iconFS          fs.FS
	iconPublicPath  string
	iconMode        IconMode
	iconResolver    IconResolver
	defaultIconFile string
	styleInput      string
	resolvedStyle   string
	assetPath       string
	logger          *slog.Logger
	unsafeHTML      bool
	softWraps       bool
	highlightStyle  string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout bounds each Convert call, PDF rendering included.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdstack: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithMacros registers macros on top of DefaultMacros. A macro with a
// built-in name replaces it.
func WithMacros(m Macros) Option {
	return func(c *Converter) {
		c.cfg.macros = c.cfg.macros.Merge(m)
	}
}

// WithMaxDepth bounds macro nesting. Zero keeps DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(c *Converter) {
		c.cfg.maxDepth = n
	}
}

// WithAccents adds +code+ shortcuts on top of DefaultAccents.
func WithAccents(accents map[string]string) Option {
	return func(c *Converter) {
		for k, v := range accents {
			c.cfg.accents[k] = v
		}
	}
}

// WithIcons reads icon SVG files from dir. In IconsReference mode layers
// link to publicPath+file#id; in IconsInline mode the element is copied
// into the page.
func WithIcons(dir, publicPath string, mode IconMode) Option {
	return func(c *Converter) {
		c.cfg.iconDir = dir
		c.cfg.iconPublicPath = publicPath
		c.cfg.iconMode = mode
	}
}

// WithIconFS is WithIcons over an fs.FS, such as an embed.FS.
func WithIconFS(fsys fs.FS, publicPath string, mode IconMode) Option {
	return func(c *Converter) {
		c.cfg.iconFS = fsys
		c.cfg.iconPublicPath = publicPath
		c.cfg.iconMode = mode
	}
}

// WithIconResolver installs a custom icon lookup. It takes precedence over
// WithIcons and WithIconFS.
func WithIconResolver(r IconResolver) Option {
	return func(c *Converter) {
		c.cfg.iconResolver = r
	}
}

// WithDefaultIconFile sets the file used by icon layers naming only an id.
func WithDefaultIconFile(name string) Option {
	return func(c *Converter) {
		c.cfg.defaultIconFile = name
	}
}

// WithStyle sets the CSS style for conversions.
// Accepts a style name ("default", "print"), a file path
// ("./custom.css"), or CSS content ("body { ... }").
func WithStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.styleInput = style
	}
}

// WithAssetPath loads styles and templates from basePath before the
// embedded ones.
func WithAssetPath(basePath string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = basePath
	}
}

// WithAssetLoader sets a custom asset loader. It takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.assetLoader = loader
	}
}

// WithLogger receives asset read failures and dropped icon filters.
// The default logger discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		c.cfg.logger = l
	}
}

// WithUnsafeHTML lets raw HTML written in the document through. Macro
// output is emitted either way.
func WithUnsafeHTML(unsafe bool) Option {
	return func(c *Converter) {
		c.cfg.unsafeHTML = unsafe
	}
}

// WithSoftWraps keeps single newlines as soft breaks instead of <br />.
func WithSoftWraps(soft bool) Option {
	return func(c *Converter) {
		c.cfg.softWraps = soft
	}
}

// WithHighlightStyle inlines the named chroma style into code blocks.
// By default code blocks carry CSS classes only.
func WithHighlightStyle(name string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = name
	}
}
