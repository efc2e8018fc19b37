package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-mdstack/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches args (os.Args layout) and returns the process exit code.
// A bare markdown path is shorthand for "build <path>".
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) && looksLikeMarkdown(cmd) {
		cmd, rest = cmdBuild, args[1:]
	}

	var err error
	switch cmd {
	case cmdBuild:
		err = runBuild(ctx, rest, env)
	case cmdIcon:
		err = runIcon(rest, env)
	case cmdStyles:
		runStyles(env)
	case cmdDoctor:
		err = runDoctor(rest, env)
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "mdstack %s\n", Version)
	case cmdHelp, "-h", "--help":
		runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err != nil {
		if !errors.Is(err, errHelpShown) {
			fmt.Fprintln(env.Stderr, "error:", err.Error()+hintFor(err))
		}
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// Command names.
const (
	cmdBuild   = "build"
	cmdIcon    = "icon"
	cmdStyles  = "styles"
	cmdDoctor  = "doctor"
	cmdVersion = "version"
	cmdHelp    = "help"
)

func isCommand(s string) bool {
	switch s {
	case cmdBuild, cmdIcon, cmdStyles, cmdDoctor, cmdVersion, cmdHelp:
		return true
	}
	return false
}

// looksLikeMarkdown reports whether s names a markdown file rather than a flag.
func looksLikeMarkdown(s string) bool {
	return !strings.HasPrefix(s, "-") && fileutil.IsMarkdown(s)
}
