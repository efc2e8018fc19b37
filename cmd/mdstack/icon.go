package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdstack/internal/icons"
)

// runIcon parses an icon reference and dumps the result, so authors can see
// which file, id and modifiers each layer resolved to.
func runIcon(args []string, env *Environment) error {
	fs := flag.NewFlagSet(cmdIcon, flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	defaultFile := fs.String("default-icon", icons.DefaultFile, "icon file for bare ids")
	fs.Usage = func() { printIconUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelpShown
		}
		return wrapUsage(err)
	}
	if fs.NArg() != 1 {
		printIconUsage(env.Stderr)
		return fmt.Errorf("%w: icon takes exactly one reference", ErrUsage)
	}

	payload := strings.TrimSuffix(strings.TrimPrefix(fs.Arg(0), "::"), "::")
	ref := icons.Parse(payload, *defaultFile)

	pp.ColoringEnabled = !color.NoColor
	_, err := pp.Fprintln(env.Stdout, ref)
	return err
}
