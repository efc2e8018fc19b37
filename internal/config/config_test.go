package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestDefaultConfig
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Document.Lang != "en" {
		t.Errorf("Document.Lang = %q, want en", cfg.Document.Lang)
	}
	if cfg.Icons.Mode != "reference" {
		t.Errorf("Icons.Mode = %q, want reference", cfg.Icons.Mode)
	}
	if cfg.Icons.BasePath != "" {
		t.Errorf("Icons.BasePath = %q, want empty", cfg.Icons.BasePath)
	}
	if cfg.PDF.Enabled {
		t.Error("PDF.Enabled = true, want false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestValidate
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "icons inline mode",
			mutate: func(c *Config) { c.Icons.Mode = "Inline" },
		},
		{
			name:    "unknown icons mode",
			mutate:  func(c *Config) { c.Icons.Mode = "embed" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "default icon file must be svg",
			mutate:  func(c *Config) { c.Icons.DefaultFile = "icons.png" },
			wantErr: ErrInvalidValue,
		},
		{
			name:   "macro depth in range",
			mutate: func(c *Config) { c.Macros.MaxDepth = 20 },
		},
		{
			name:    "negative macro depth",
			mutate:  func(c *Config) { c.Macros.MaxDepth = -1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "macro depth too large",
			mutate:  func(c *Config) { c.Macros.MaxDepth = MaxMacroDepth + 1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:   "extra accent",
			mutate: func(c *Config) { c.Accents = map[string]string{"~": "\u0303"} },
		},
		{
			name:    "accent code with plus",
			mutate:  func(c *Config) { c.Accents = map[string]string{"a+": "x"} },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "accent code with space",
			mutate:  func(c *Config) { c.Accents = map[string]string{"a b": "x"} },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "accent value too long",
			mutate:  func(c *Config) { c.Accents = map[string]string{"x": strings.Repeat("a", MaxAccentValueLen+1)} },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "title too long",
			mutate:  func(c *Config) { c.Document.Title = strings.Repeat("t", MaxTitleLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:   "pdf a4",
			mutate: func(c *Config) { c.PDF.Size = "A4" },
		},
		{
			name:    "pdf unknown size",
			mutate:  func(c *Config) { c.PDF.Size = "tabloid" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "pdf margin too small",
			mutate:  func(c *Config) { c.PDF.Margin = 0.1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:   "pdf margin in range",
			mutate: func(c *Config) { c.PDF.Margin = 1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	if err := validateFieldLength("f", "1234567890", 10); err != nil {
		t.Errorf("value at limit: unexpected error %v", err)
	}
	err := validateFieldLength("test.field", "12345678901", 10)
	if !errors.Is(err, ErrFieldTooLong) {
		t.Fatalf("error = %v, want ErrFieldTooLong", err)
	}
	if !strings.Contains(err.Error(), "test.field") {
		t.Errorf("error %q should name the field", err)
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig
// ---------------------------------------------------------------------------

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mdstack.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("full config", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `
document:
  title: Notes
  lang: fr
  date: auto:DD/MM/YYYY
style: print
icons:
  basePath: ./icons
  publicPath: /static/icons/
  defaultFile: set.svg
  mode: inline
macros:
  maxDepth: 5
accents:
  "~": "\u0303"
html:
  softWraps: true
pdf:
  enabled: true
  size: a4
  margin: 0.75
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Document.Title != "Notes" || cfg.Document.Lang != "fr" {
			t.Errorf("Document = %+v", cfg.Document)
		}
		if cfg.Icons.Mode != "inline" || cfg.Icons.PublicPath != "/static/icons/" || cfg.Icons.DefaultFile != "set.svg" {
			t.Errorf("Icons = %+v", cfg.Icons)
		}
		if cfg.Macros.MaxDepth != 5 {
			t.Errorf("Macros.MaxDepth = %d, want 5", cfg.Macros.MaxDepth)
		}
		if cfg.Accents["~"] != "\u0303" {
			t.Errorf("Accents = %q", cfg.Accents)
		}
		if !cfg.HTML.SoftWraps || !cfg.PDF.Enabled || cfg.PDF.Size != "a4" || cfg.PDF.Margin != 0.75 {
			t.Errorf("HTML = %+v, PDF = %+v", cfg.HTML, cfg.PDF)
		}
	})

	t.Run("defaults survive a partial file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfig(writeConfig(t, "style: default\n"))
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Document.Lang != "en" || cfg.Icons.Mode != "reference" {
			t.Errorf("defaults lost: %+v", cfg)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(writeConfig(t, "footer:\n  enabled: true\n"))
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value rejected", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(writeConfig(t, "icons:\n  mode: embed\n"))
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("LoadConfig() error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		if _, err := LoadConfig(""); !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("unknown name lists searched paths", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("no-such-config-xyz")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "no-such-config-xyz.yaml") {
			t.Errorf("error %q should list the tried paths", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("work")
	if len(paths) < 2 || paths[0] != "work.yaml" || paths[1] != "work.yml" {
		t.Fatalf("SearchPaths() = %v, want local candidates first", paths)
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, AppDirName) {
			t.Errorf("user path %q should live under %s", p, AppDirName)
		}
	}
}
