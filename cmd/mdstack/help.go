package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-mdstack"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdstack <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Render markdown files to HTML (and PDF)")
	fmt.Fprintln(w, "  icon       Show how an icon reference is parsed")
	fmt.Fprintln(w, "  styles     List built-in styles")
	fmt.Fprintln(w, "  doctor     Check the browser, icons and temp directory")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "'mdstack doc.md' is short for 'mdstack build doc.md'.")
	fmt.Fprintln(w, "Run 'mdstack help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdstack build <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render markdown files with macros, accents, font sizes and icon stacks.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Per-document timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "      --title <s>           Page title (\"\" = first heading)")
	fmt.Fprintln(w, "      --lang <s>            html lang attribute (default \"en\")")
	fmt.Fprintln(w, "      --date <s>            Date: \"auto\", \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets (case-insensitive): iso, european, us, long")
	fmt.Fprintln(w, "                            Use [text] to escape literals: [Date]: YYYY")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markdown:")
	fmt.Fprintln(w, "      --max-depth <n>       Macro nesting limit (default 10)")
	fmt.Fprintln(w, "      --soft-wraps          Keep single newlines as spaces")
	fmt.Fprintln(w, "      --unsafe              Pass raw HTML through")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Icons:")
	fmt.Fprintln(w, "      --icons <dir>         Directory holding icon SVG files")
	fmt.Fprintln(w, "      --public-path <s>     href prefix of referenced icons")
	fmt.Fprintln(w, "      --default-icon <f>    Icon file for bare ids (default \"default.svg\")")
	fmt.Fprintln(w, "      --inline-icons        Copy icon elements into the page")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <s>           Style name, CSS file or inline CSS")
	fmt.Fprintln(w, "      --css <path>          Extra CSS file appended after the style")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with styles/ and templates/ overrides")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --pdf                 Also render a PDF (requires Chrome)")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0.25-3.0)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show timing and debug logs")
}

// printIconUsage prints usage for the icon command.
func printIconUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdstack icon <reference> [--default-icon <file>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show how the text between :: delimiters is parsed.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Syntax:")
	fmt.Fprintln(w, "  group:group       Groups render side by side")
	fmt.Fprintln(w, "  layer,layer       Layers of a group are stacked")
	fmt.Fprintln(w, "  [file.svg#]id     Icon element; #text draws text")
	fmt.Fprintln(w, "  +mods             w<n> width, h half, z zero width, c<r|y|g|b> color,")
	fmt.Fprintln(w, "                    x<n> y<n> offset, s<n> scale")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Example: mdstack icon 'circle+cr,check+s0.8:#A'")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case cmdBuild:
		printBuildUsage(env.Stdout)
	case cmdIcon:
		printIconUsage(env.Stdout)
	case cmdStyles:
		fmt.Fprintln(env.Stdout, "Usage: mdstack styles")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "List built-in styles usable with --style.")
	case cmdDoctor:
		printDoctorUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: mdstack version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: mdstack help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}

// runStyles lists the embedded styles.
func runStyles(env *Environment) {
	fmt.Fprintln(env.Stdout, strings.Join(mdstack.Styles(), "\n"))
}
