package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdstack"
	"github.com/alnah/go-mdstack/internal/fileutil"
	"github.com/alnah/go-mdstack/internal/hints"
	"github.com/alnah/go-mdstack/internal/icons"
)

// Doctor statuses, worst last.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorReport is what "mdstack doctor" found.
type doctorReport struct {
	Status   string       `json:"status"`
	Chrome   chromeReport `json:"chrome"`
	Icons    iconsReport  `json:"icons"`
	Env      envReport    `json:"environment"`
	Styles   []string     `json:"styles"`
	TempDir  bool         `json:"temp_writable"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// chromeReport covers the browser used for --pdf only; HTML builds work
// without it, so a missing browser is a warning.
type chromeReport struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type iconsReport struct {
	Dir         string `json:"dir,omitempty"`
	DefaultFile bool   `json:"default_file"`
	Filters     bool   `json:"color_filters"`
}

type envReport struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	Container string `json:"container,omitempty"` // signal that gave it away
	CI        bool   `json:"ci"`
}

func (r *doctorReport) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *doctorReport) fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// runDoctor checks that the machine can build pages and reports what it
// found. Only errors fail the command.
func runDoctor(args []string, env *Environment) error {
	fs := flag.NewFlagSet(cmdDoctor, flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	jsonOut := fs.Bool("json", false, "print the report as JSON")
	iconDir := fs.String("icons", os.Getenv("MDSTACK_ICONS"), "icon directory to check")
	fs.Usage = func() { printDoctorUsage(env.Stderr) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return errHelpShown
		}
		return wrapUsage(err)
	}

	report := diagnose(*iconDir)
	if *jsonOut {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printDoctorReport(env.Stdout, report)
	}

	if report.Status == statusErrors {
		return fmt.Errorf("doctor found %d problem(s)", len(report.Errors))
	}
	return nil
}

// diagnose runs every check. iconDir may be empty.
func diagnose(iconDir string) *doctorReport {
	r := &doctorReport{
		Env:    envReport{OS: runtime.GOOS, Arch: runtime.GOARCH},
		Styles: mdstack.Styles(),
	}

	checkChrome(r)
	checkEnvironment(r)
	checkIcons(r, iconDir)
	checkTempDir(r)

	switch {
	case len(r.Errors) > 0:
		r.Status = statusErrors
	case len(r.Warnings) > 0:
		r.Status = statusWarnings
	default:
		r.Status = statusReady
	}
	return r
}

func checkChrome(r *doctorReport) {
	path := os.Getenv("ROD_BROWSER_BIN")
	if path == "" {
		var found bool
		if path, found = launcher.LookPath(); !found {
			r.warn("Chrome/Chromium not found: --pdf will download one on first use, or set ROD_BROWSER_BIN")
			return
		}
	}
	if !fileutil.FileExists(path) {
		r.warn("ROD_BROWSER_BIN points at a missing file: %s", path)
		return
	}

	r.Chrome.Found = true
	r.Chrome.Path = path
	r.Chrome.Sandbox = os.Getenv("ROD_NO_SANDBOX") != "1"

	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- browser path from env or rod lookup
	if err != nil {
		r.warn("could not read Chrome version: %v", err)
		return
	}
	r.Chrome.Version = strings.TrimSpace(string(out))
}

func checkEnvironment(r *doctorReport) {
	r.Env.Container = hints.ContainerSignal()
	r.Env.CI = hints.InCI()
	if (r.Env.Container != "" || r.Env.CI) && r.Chrome.Found && r.Chrome.Sandbox {
		r.warn("container or CI detected: set ROD_NO_SANDBOX=1 for --pdf")
	}
}

func checkIcons(r *doctorReport, dir string) {
	if dir == "" {
		return
	}
	r.Icons.Dir = dir
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		r.fail("icon directory %s is not readable", dir)
		return
	}
	r.Icons.DefaultFile = fileutil.FileExists(filepath.Join(dir, icons.DefaultFile))
	if !r.Icons.DefaultFile {
		r.warn("%s missing from %s: bare icon ids will not resolve", icons.DefaultFile, dir)
	}
	r.Icons.Filters = fileutil.FileExists(filepath.Join(dir, icons.FilterFile))
	if !r.Icons.Filters {
		r.warn("%s missing from %s: color modifiers will be ignored", icons.FilterFile, dir)
	}
}

func checkTempDir(r *doctorReport) {
	f, err := os.CreateTemp("", "mdstack-doctor-*")
	if err != nil {
		r.fail("temp directory %s is not writable", os.TempDir())
		return
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	r.TempDir = true
}

// printDoctorReport writes the human-readable report.
func printDoctorReport(w io.Writer, r *doctorReport) {
	ok := color.New(color.FgGreen).Sprint("[OK]")
	warn := color.New(color.FgYellow).Sprint("[WARN]")
	bad := color.New(color.FgRed, color.Bold).Sprint("[ERROR]")

	fmt.Fprintln(w, "mdstack doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium (PDF only)")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  %s %s\n", ok, r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  %s %s\n", ok, r.Chrome.Version)
		}
		sandbox := "enabled"
		if !r.Chrome.Sandbox {
			sandbox = "disabled (ROD_NO_SANDBOX=1)"
		}
		fmt.Fprintf(w, "  %s Sandbox: %s\n", ok, sandbox)
	} else {
		fmt.Fprintf(w, "  %s Not found\n", warn)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  %s Platform: %s/%s\n", ok, r.Env.OS, r.Env.Arch)
	if r.Env.Container != "" {
		fmt.Fprintf(w, "  %s Container: %s\n", ok, r.Env.Container)
	}
	if r.Env.CI {
		fmt.Fprintf(w, "  %s CI: detected\n", ok)
	}
	fmt.Fprintf(w, "  %s Styles: %s\n", ok, strings.Join(r.Styles, ", "))
	if r.TempDir {
		fmt.Fprintf(w, "  %s Temp directory: writable\n", ok)
	}
	fmt.Fprintln(w)

	if r.Icons.Dir != "" {
		fmt.Fprintln(w, "Icons")
		fmt.Fprintf(w, "  %s %s\n", ok, r.Icons.Dir)
		fmt.Fprintln(w)
	}

	for _, msg := range r.Warnings {
		fmt.Fprintf(w, "%s %s\n", warn, msg)
	}
	for _, msg := range r.Errors {
		fmt.Fprintf(w, "%s %s\n", bad, msg)
	}
	if len(r.Warnings)+len(r.Errors) > 0 {
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: ready")
	case statusWarnings:
		fmt.Fprintln(w, "Status: ready with warnings")
	default:
		fmt.Fprintln(w, "Status: not ready (see errors above)")
	}
}

func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdstack doctor [--json] [--icons <dir>]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the browser used for --pdf, the icon directory and the temp directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json          Print the report as JSON")
	fmt.Fprintln(w, "      --icons <dir>   Icon directory to check (default $MDSTACK_ICONS)")
}
