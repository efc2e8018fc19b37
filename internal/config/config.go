// Package config loads and validates YAML build configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdstack/internal/fileutil"
	"github.com/alnah/go-mdstack/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDirName is the directory under the user config dir searched for
// named configs.
const AppDirName = "go-mdstack"

// Field length limits.
const (
	MaxTitleLength    = 200
	MaxLangLength     = 35 // BCP 47 upper bound in practice
	MaxDateLength     = 60 // "auto:MMMM D, YYYY" or a literal date
	MaxPathLength     = 4096
	MaxURLLength      = 2048
	MaxAccentCodeLen  = 16
	MaxAccentValueLen = 32
	MaxAccents        = 256
	MaxMacroDepth     = 100
)

// Config holds all configuration for a build.
type Config struct {
	Input    InputConfig       `yaml:"input"`
	Output   OutputConfig      `yaml:"output"`
	Document DocumentConfig    `yaml:"document"`
	Style    string            `yaml:"style"` // name, path or inline CSS (empty = default)
	Assets   AssetsConfig      `yaml:"assets"`
	Icons    IconsConfig       `yaml:"icons"`
	Macros   MacrosConfig      `yaml:"macros"`
	Accents  map[string]string `yaml:"accents"` // extra +code+ shortcuts, merged over the defaults
	HTML     HTMLConfig        `yaml:"html"`
	PDF      PDFConfig         `yaml:"pdf"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = must specify
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = same as source
}

// DocumentConfig fills the page shell.
type DocumentConfig struct {
	Title string `yaml:"title"` // empty = first heading, then file name
	Lang  string `yaml:"lang"`  // default "en"
	Date  string `yaml:"date"`  // literal, "auto" or "auto:FORMAT"
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // empty = embedded assets only
}

// IconsConfig locates SVG icon files for the ::icon:: syntax.
type IconsConfig struct {
	BasePath    string `yaml:"basePath"`    // directory holding the SVG files (empty = icons disabled)
	PublicPath  string `yaml:"publicPath"`  // href prefix in reference mode
	DefaultFile string `yaml:"defaultFile"` // file for bare ids (default "default.svg")
	Mode        string `yaml:"mode"`        // "reference" (default) or "inline"
}

// MacrosConfig bounds macro expansion.
type MacrosConfig struct {
	MaxDepth int `yaml:"maxDepth"` // 0 = default
}

// HTMLConfig tunes the markdown renderer.
type HTMLConfig struct {
	SoftWraps bool `yaml:"softWraps"` // keep soft line breaks instead of <br />
	Unsafe    bool `yaml:"unsafe"`    // pass raw HTML through
}

// PDFConfig defines PDF export options.
type PDFConfig struct {
	Enabled bool    `yaml:"enabled"`
	Size    string  `yaml:"size"`   // "letter", "a4", "legal" (default "letter")
	Margin  float64 `yaml:"margin"` // inches (default 0.5)
}

// Validate checks field lengths, enums and ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"document.title", c.Document.Title, MaxTitleLength},
		{"document.lang", c.Document.Lang, MaxLangLength},
		{"document.date", c.Document.Date, MaxDateLength},
		{"style", c.Style, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"icons.basePath", c.Icons.BasePath, MaxPathLength},
		{"icons.publicPath", c.Icons.PublicPath, MaxURLLength},
		{"icons.defaultFile", c.Icons.DefaultFile, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.Icons.Mode) {
	case "", "reference", "inline":
	default:
		return fmt.Errorf("%w: icons.mode %q (must be reference or inline)", ErrInvalidValue, c.Icons.Mode)
	}
	if c.Icons.DefaultFile != "" && !strings.HasSuffix(strings.ToLower(c.Icons.DefaultFile), ".svg") {
		return fmt.Errorf("%w: icons.defaultFile %q must be an .svg file", ErrInvalidValue, c.Icons.DefaultFile)
	}

	if c.Macros.MaxDepth < 0 || c.Macros.MaxDepth > MaxMacroDepth {
		return fmt.Errorf("%w: macros.maxDepth must be between 0 and %d, got %d", ErrInvalidValue, MaxMacroDepth, c.Macros.MaxDepth)
	}

	if len(c.Accents) > MaxAccents {
		return fmt.Errorf("%w: accents has %d entries (max %d)", ErrInvalidValue, len(c.Accents), MaxAccents)
	}
	for code, value := range c.Accents {
		if code == "" || strings.ContainsAny(code, "+ \t\r\n") {
			return fmt.Errorf("%w: accents code %q must be non-empty without '+' or spaces", ErrInvalidValue, code)
		}
		if err := validateFieldLength("accents["+code+"]", value, MaxAccentValueLen); err != nil {
			return err
		}
		if err := validateFieldLength("accents code", code, MaxAccentCodeLen); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.PDF.Size) {
	case "", "letter", "a4", "legal":
	default:
		return fmt.Errorf("%w: pdf.size %q (must be letter, a4, or legal)", ErrInvalidValue, c.PDF.Size)
	}
	if c.PDF.Margin != 0 && (c.PDF.Margin < 0.25 || c.PDF.Margin > 3.0) {
		return fmt.Errorf("%w: pdf.margin must be between 0.25 and 3.0 inches, got %.2f", ErrInvalidValue, c.PDF.Margin)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration: embedded assets, icons
// disabled, no PDF.
func DefaultConfig() *Config {
	return &Config{
		Document: DocumentConfig{Lang: "en"},
		Icons:    IconsConfig{Mode: "reference"},
		PDF:      PDFConfig{Size: "letter"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing entry of SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
