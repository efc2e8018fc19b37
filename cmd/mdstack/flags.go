package main

import (
	"errors"
	"io"

	flag "github.com/spf13/pflag"
)

// errHelpShown reports that -h printed the usage; the command did nothing.
var errHelpShown = errors.New("help shown")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags fill the page shell.
type documentFlags struct {
	title string
	lang  string
	date  string
}

// iconFlags locate SVG icon files.
type iconFlags struct {
	dir         string
	publicPath  string
	defaultFile string
	inline      bool
}

// assetFlags holds asset-related flags (styles, templates, extra CSS).
type assetFlags struct {
	style     string // name, path or inline CSS
	css       string // extra CSS file appended after the style
	assetPath string // override asset directory
}

// pdfFlags control PDF output.
type pdfFlags struct {
	enabled bool
	size    string
	margin  float64
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common    commonFlags
	output    string
	workers   int
	timeout   string
	maxDepth  int
	softWraps bool
	unsafe    bool
	document  documentFlags
	icons     iconFlags
	assets    assetFlags
	pdf       pdfFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show timing and debug logs")
}

// addDocumentFlags adds page shell flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "page title (\"\" = first heading)")
	fs.StringVar(&f.lang, "lang", "", "html lang attribute")
	fs.StringVar(&f.date, "date", "", "page date (\"auto\" = today)")
}

// addIconFlags adds icon lookup flags to a FlagSet.
func addIconFlags(fs *flag.FlagSet, f *iconFlags) {
	fs.StringVar(&f.dir, "icons", "", "directory holding icon SVG files")
	fs.StringVar(&f.publicPath, "public-path", "", "href prefix of referenced icons")
	fs.StringVar(&f.defaultFile, "default-icon", "", "icon file for bare ids (default \"default.svg\")")
	fs.BoolVar(&f.inline, "inline-icons", false, "copy icon elements into the page")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.css, "css", "", "extra CSS file appended after the style")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// addPDFFlags adds PDF flags to a FlagSet.
func addPDFFlags(fs *flag.FlagSet, f *pdfFlags) {
	fs.BoolVar(&f.enabled, "pdf", false, "also render a PDF (requires Chrome)")
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, usage io.Writer) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet(cmdBuild, flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &buildFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-document timeout (e.g., 30s, 2m)")
	fs.IntVar(&f.maxDepth, "max-depth", 0, "macro nesting limit (0 = default)")
	fs.BoolVar(&f.softWraps, "soft-wraps", false, "keep single newlines as spaces")
	fs.BoolVar(&f.unsafe, "unsafe", false, "pass raw HTML through")

	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addIconFlags(fs, &f.icons)
	addAssetFlags(fs, &f.assets)
	addPDFFlags(fs, &f.pdf)

	fs.Usage = func() { printBuildUsage(usage) }

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, nil, errHelpShown
		}
		return nil, nil, wrapUsage(err)
	}
	return f, fs.Args(), nil
}
