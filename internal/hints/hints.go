// Package hints appends actionable advice to CLI error messages. Every hint
// reads "\n  hint: <text>" so it lines up under the error it explains.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-mdstack/internal/fileutil"
)

const prefix = "\n  hint: "

// ciVars are set by the CI systems whose runners need ROD_NO_SANDBOX.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// ContainerSignal names the first container indicator found, or "" outside
// a container. MDSTACK_CONTAINER=1 forces detection.
func ContainerSignal() string {
	switch {
	case os.Getenv("MDSTACK_CONTAINER") == "1":
		return "MDSTACK_CONTAINER=1"
	case fileutil.FileExists("/.dockerenv"):
		return "/.dockerenv"
	case os.Getenv("container") != "":
		return "container=" + os.Getenv("container")
	case os.Getenv("KUBERNETES_SERVICE_HOST") != "":
		return "KUBERNETES_SERVICE_HOST"
	}
	return ""
}

// IsInContainer reports whether ContainerSignal found anything. It is a
// variable so tests can pin it.
var IsInContainer = func() bool { return ContainerSignal() != "" }

// InCI reports whether a known CI variable is set.
func InCI() bool {
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect explains how to get Chrome running for --pdf.
func ForBrowserConnect() string {
	var tips []string
	if (InCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		tips = append(tips, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		tips = append(tips, "set ROD_BROWSER_BIN to use custom Chrome")
	}
	return join(tips...)
}

func ForTimeout() string {
	return join("for large documents, use --timeout flag")
}

// ForConfigNotFound points at --config, and at the user config file when
// searchedPaths (from config.SearchPaths) lists one.
func ForConfigNotFound(searchedPaths []string) string {
	tip := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-mdstack") {
			tip += " or create " + p
			break
		}
	}
	return join(tip)
}

func ForOutputDirectory() string {
	return join("check parent directory exists and is writable")
}

// ForStyleNotFound lists the built-in styles, or nothing if there are none.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return join("available: " + strings.Join(available, ", "))
}

func ForIconDir() string {
	return join("--icons must point at a directory holding the SVG files, e.g. --icons ./icons")
}

// ForMacroDepth follows a "max macro depth exceeded" warning.
func ForMacroDepth() string {
	return join("raise macros.maxDepth or --max-depth if the nesting is intended")
}

// join renders tips as one hint line; no tips, no hint.
func join(tips ...string) string {
	if len(tips) == 0 {
		return ""
	}
	return prefix + strings.Join(tips, "; ")
}
