package icons

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// Mode selects how resolved layers are emitted.
type Mode string

const (
	// ModeReference emits <use href="publicPath/file.svg#id">.
	ModeReference Mode = "reference"
	// ModeInline copies the element markup into the page.
	ModeInline Mode = "inline"
)

// FilterFile is the asset file holding color filters, one per color, with
// ids of the form filter-<color>.
const FilterFile = "color-filter.svg"

// maxIconFileSize caps how much of an icon file is read.
const maxIconFileSize = 4 << 20

// Asset is a resolved layer. Exactly one field is set, depending on the mode.
type Asset struct {
	Href   string
	Markup string
}

// Resolver finds icon elements. Implementations must be safe for concurrent
// use because one resolver is shared by every render of an engine.
type Resolver interface {
	// Lookup resolves id in file. ok is false when the file or the id does
	// not exist.
	Lookup(file, id string) (asset Asset, ok bool)

	// Filter returns the url() target of the filter for color.
	Filter(color string) (url string, ok bool)
}

// NopResolver resolves nothing. Only text glyphs and spacers render.
type NopResolver struct{}

func (NopResolver) Lookup(string, string) (Asset, bool) { return Asset{}, false }

func (NopResolver) Filter(string) (string, bool) { return "", false }

// DirResolver resolves icons from SVG files in a file system.
type DirResolver struct {
	fsys       fs.FS
	publicPath string
	mode       Mode
	logger     *slog.Logger

	mu    sync.Mutex
	cache map[string]*goquery.Document // nil value caches a missing file
}

// DirOption configures a DirResolver.
type DirOption func(*DirResolver)

// WithPublicPath sets the URL prefix used for references, e.g. "/icons/".
func WithPublicPath(p string) DirOption {
	return func(r *DirResolver) { r.publicPath = p }
}

// WithMode selects reference or inline output.
func WithMode(m Mode) DirOption {
	return func(r *DirResolver) { r.mode = m }
}

// WithLogger sets the logger for unreadable asset files.
func WithLogger(l *slog.Logger) DirOption {
	return func(r *DirResolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewDirResolver returns a resolver reading from fsys.
func NewDirResolver(fsys fs.FS, opts ...DirOption) *DirResolver {
	r := &DirResolver{
		fsys:   fsys,
		mode:   ModeReference,
		logger: slog.New(slog.DiscardHandler),
		cache:  make(map[string]*goquery.Document),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewDirResolverFromPath returns a resolver over the directory basePath.
func NewDirResolverFromPath(basePath string, opts ...DirOption) (*DirResolver, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIconDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidIconDir, basePath)
	}
	return NewDirResolver(os.DirFS(basePath), opts...), nil
}

// Lookup implements Resolver.
func (r *DirResolver) Lookup(file, id string) (Asset, bool) {
	el, ok := r.find(file, id)
	if !ok {
		return Asset{}, false
	}
	if r.mode == ModeInline {
		markup, err := inlineMarkup(el)
		if err != nil {
			r.logger.Warn("icon element not renderable", "file", file, "id", id, "error", err)
			return Asset{}, false
		}
		return Asset{Markup: markup}, true
	}
	return Asset{Href: r.publicPath + file + "#" + id}, true
}

// Filter implements Resolver.
func (r *DirResolver) Filter(color string) (string, bool) {
	id := "filter-" + color
	if _, ok := r.find(FilterFile, id); !ok {
		return "", false
	}
	return r.publicPath + FilterFile + "#" + id, true
}

func (r *DirResolver) find(file, id string) (*goquery.Selection, bool) {
	doc := r.load(file)
	if doc == nil {
		return nil, false
	}
	sel := doc.Find("[id]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("id")
		return v == id
	}).First()
	return sel, sel.Length() > 0
}

// load returns the parsed file, reading it at most once.
func (r *DirResolver) load(file string) *goquery.Document {
	r.mu.Lock()
	defer r.mu.Unlock()

	if doc, ok := r.cache[file]; ok {
		return doc
	}

	doc, err := r.read(file)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.logger.Warn("icon file unreadable", "file", file, "error", err)
		}
		r.cache[file] = nil
		return nil
	}
	r.cache[file] = doc
	return doc
}

func (r *DirResolver) read(file string) (*goquery.Document, error) {
	if !fs.ValidPath(file) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidIconFile, file)
	}
	f, err := r.fsys.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxIconFileSize))
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIconFile, err)
	}
	return doc, nil
}

// inlineMarkup returns the markup drawn for el. A symbol contributes its
// children; any other element is copied whole. Ids are dropped so the same
// icon can appear many times on a page, and width and height are dropped so
// the element fills the 16-unit box.
func inlineMarkup(el *goquery.Selection) (string, error) {
	c := el.Clone()
	c.Find("[id]").RemoveAttr("id")
	if goquery.NodeName(c) == "symbol" {
		return c.Html()
	}
	c.RemoveAttr("id").RemoveAttr("width").RemoveAttr("height")
	return goquery.OuterHtml(c)
}
