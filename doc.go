// Package mdstack renders Markdown extended with macros, accent shortcuts,
// font-size markers and stacked SVG icons to HTML pages and, optionally, PDF.
//
// # Quick Start
//
//	conv, err := mdstack.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, mdstack.Input{
//	    Markdown: "# Hello\n\n@box{^^World^^}",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("hello.html", result.HTML, 0644)
//
// # Syntax
//
// Macros are written @name{arg}{arg}. The built-ins are:
//
//	@count{a}{b}        numbered line, counter shared by the document
//	@def{name}{body}    stores a template; {0}, {1} are placeholders
//	@call{name}{x}{y}   renders a stored template with arguments
//	@box{markdown}      renders its argument inside a framed block
//
// Inline shortcuts:
//
//	+e'+  +e"+  +i+     accents (combining marks and extra letters)
//	^^big^^  ,,small,,  ==half==
//	::star::            icon from the default file
//	::set#star+cr+s0.5,#A:moon+w8::
//	                    layers joined by ',' share one box, ':' starts a
//	                    new box; '+' adds modifiers: c colour (r, y, g, b),
//	                    x and y offsets, s scale, w box width, h half width,
//	                    z zero width; '#A' with no file draws the text "A"
//
// Code spans and fenced code blocks are left untouched. Errors inside
// the document never abort the render: unknown or failing macros are replaced
// by a red inline marker, and unresolved icons fall back to their source
// text.
//
// # Configuration
//
//	conv, err := mdstack.NewConverter(
//	    mdstack.WithIcons("./icons", "/static/icons/", mdstack.IconsReference),
//	    mdstack.WithMacros(mdstack.Macros{"shout": shout}),
//	    mdstack.WithMaxDepth(5),
//	    mdstack.WithStyle(mdstack.PrintStyle),
//	)
//
// # Parallel Processing
//
// Convert is safe for concurrent use. For batch PDF output, use
// ConverterPool so each worker drives its own browser:
//
//	pool := mdstack.NewConverterPool(mdstack.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	...
//	defer pool.Release(conv)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library downloads a
// managed Chromium on first run (~/.cache/rod/browser/). For containers and
// CI, set ROD_NO_SANDBOX=1; ROD_BROWSER_BIN selects a custom binary.
package mdstack
