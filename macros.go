package mdstack

import (
	"github.com/alnah/go-mdstack/internal/icons"
	"github.com/alnah/go-mdstack/internal/macro"
	"github.com/alnah/go-mdstack/internal/pipeline"
)

// Macro extension points. A macro receives its brace arguments and an
// environment giving access to the render state and to the pipeline itself.
type (
	// Macro is a macro body.
	Macro = macro.Func

	// Macros maps names to bodies.
	Macros = macro.Registry

	// MacroEnv is passed to every invocation.
	MacroEnv = macro.Env

	// MacroContext is the state shared by one render.
	MacroContext = macro.Context

	// MacroOutput is what a macro returns.
	MacroOutput = macro.Output
)

// DefaultMaxDepth is the macro nesting limit used when none is configured.
const DefaultMaxDepth = pipeline.DefaultMaxDepth

// DefaultMacros returns the built-in macros: count, def, call and box.
func DefaultMacros() Macros {
	return macro.Builtins()
}

// TextOutput returns Markdown that is rendered again by the pipeline.
func TextOutput(markdown string) MacroOutput {
	return macro.Text(markdown)
}

// HTMLOutput returns markup inserted as is.
func HTMLOutput(markup string) MacroOutput {
	return macro.HTML(markup)
}

// EmptyOutput removes the invocation.
var EmptyOutput = macro.Empty

// DefaultAccents returns a copy of the built-in +code+ shortcuts.
func DefaultAccents() map[string]string {
	out := make(map[string]string, len(pipeline.DefaultAccents))
	for k, v := range pipeline.DefaultAccents {
		out[k] = v
	}
	return out
}

// Icon extension points.
type (
	// IconResolver finds icon elements for ::file.svg#id:: references.
	IconResolver = icons.Resolver

	// IconAsset is a resolved icon element.
	IconAsset = icons.Asset

	// IconMode selects how resolved icons are emitted.
	IconMode = icons.Mode
)

// Icon modes.
const (
	IconsReference = icons.ModeReference
	IconsInline    = icons.ModeInline
)

// DefaultIconFile is the icon file used by layers naming only an id.
const DefaultIconFile = icons.DefaultFile
