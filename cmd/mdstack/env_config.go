package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-mdstack/internal/config"
)

// envPrefix is the prefix of every environment variable read by mdstack.
const envPrefix = "MDSTACK_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // MDSTACK_CONFIG: config name or path
	Style      string        // MDSTACK_STYLE: CSS style name or path
	Timeout    time.Duration // MDSTACK_TIMEOUT: per-document timeout
	InputDir   string        // MDSTACK_INPUT_DIR: default input directory
	OutputDir  string        // MDSTACK_OUTPUT_DIR: default output directory
	IconDir    string        // MDSTACK_ICONS: icon directory
	PublicPath string        // MDSTACK_PUBLIC_PATH: icon href prefix
	Date       string        // MDSTACK_DATE: document date
	PageSize   string        // MDSTACK_PAGE_SIZE: a4, letter, legal
	PDF        bool          // MDSTACK_PDF: also render PDFs
	Workers    int           // MDSTACK_WORKERS: parallel workers
}

// knownEnvVars lists valid MDSTACK_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDSTACK_CONFIG":      true,
	"MDSTACK_STYLE":       true,
	"MDSTACK_TIMEOUT":     true,
	"MDSTACK_INPUT_DIR":   true,
	"MDSTACK_OUTPUT_DIR":  true,
	"MDSTACK_ICONS":       true,
	"MDSTACK_PUBLIC_PATH": true,
	"MDSTACK_DATE":        true,
	"MDSTACK_PAGE_SIZE":   true,
	"MDSTACK_PDF":         true,
	"MDSTACK_WORKERS":     true,
	"MDSTACK_CONTAINER":   true, // doctor: force container detection
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDSTACK_CONFIG"),
		Style:      os.Getenv("MDSTACK_STYLE"),
		InputDir:   os.Getenv("MDSTACK_INPUT_DIR"),
		OutputDir:  os.Getenv("MDSTACK_OUTPUT_DIR"),
		IconDir:    os.Getenv("MDSTACK_ICONS"),
		PublicPath: os.Getenv("MDSTACK_PUBLIC_PATH"),
		Date:       os.Getenv("MDSTACK_DATE"),
		PageSize:   os.Getenv("MDSTACK_PAGE_SIZE"),
	}

	if timeout := os.Getenv("MDSTACK_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if workers := os.Getenv("MDSTACK_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}
	if pdf := os.Getenv("MDSTACK_PDF"); pdf != "" {
		cfg.PDF, _ = strconv.ParseBool(pdf)
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDSTACK_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Style != "" && cfg.Style == "" {
		cfg.Style = env.Style
	}
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.IconDir != "" && cfg.Icons.BasePath == "" {
		cfg.Icons.BasePath = env.IconDir
	}
	if env.PublicPath != "" && cfg.Icons.PublicPath == "" {
		cfg.Icons.PublicPath = env.PublicPath
	}
	if env.Date != "" && cfg.Document.Date == "" {
		cfg.Document.Date = env.Date
	}
	// The default config already names "letter", so any env size wins.
	if env.PageSize != "" {
		cfg.PDF.Size = env.PageSize
	}
	if env.PDF {
		cfg.PDF.Enabled = true
	}
}
