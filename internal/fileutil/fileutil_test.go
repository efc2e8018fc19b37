package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ext     string
		wantErr error
	}{
		{"html", nil},
		{"pdf", nil},
		{"", ErrExtensionEmpty},
		{"../html", ErrExtensionPathTraversal},
		{"a\\b", ErrExtensionPathTraversal},
		{"html\x00", ErrExtensionPathTraversal},
	}
	for _, tt := range tests {
		if err := ValidateExtension(tt.ext); !errors.Is(err, tt.wantErr) {
			t.Errorf("ValidateExtension(%q) = %v, want %v", tt.ext, err, tt.wantErr)
		}
	}
}

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	content := "<p>svg-stack</p>"
	path, cleanup, err := WriteTempFile(content, "html")
	if err != nil {
		t.Fatalf("WriteTempFile() error = %v", err)
	}

	if !strings.HasPrefix(filepath.Base(path), TempPrefix) || filepath.Ext(path) != ".html" {
		t.Errorf("unexpected temp name %q", path)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading temp file: %v", err)
	}
	if string(got) != content {
		t.Errorf("content = %q, want %q", got, content)
	}

	cleanup()
	if FileExists(path) {
		t.Error("cleanup did not remove the file")
	}

	if _, _, err := WriteTempFile("x", "a/b"); !errors.Is(err, ErrExtensionPathTraversal) {
		t.Errorf("invalid extension error = %v", err)
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !FileExists(file) {
		t.Error("FileExists(file) = false")
	}
	if FileExists(dir) {
		t.Error("FileExists(dir) = true")
	}
	if FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists(missing) = true")
	}
}

func TestClassifiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in                  string
		path, css, markdown bool
	}{
		{in: "print"},
		{in: "./print.css", path: true},
		{in: `C:\styles\a.css`, path: true},
		{in: ".big { color: red }", css: true},
		{in: "notes.md", markdown: true},
		{in: "docs/README.MARKDOWN", path: true, markdown: true},
		{in: "notes.txt"},
	}
	for _, tt := range tests {
		if got := IsFilePath(tt.in); got != tt.path {
			t.Errorf("IsFilePath(%q) = %v, want %v", tt.in, got, tt.path)
		}
		if got := IsCSS(tt.in); got != tt.css {
			t.Errorf("IsCSS(%q) = %v, want %v", tt.in, got, tt.css)
		}
		if got := IsMarkdown(tt.in); got != tt.markdown {
			t.Errorf("IsMarkdown(%q) = %v, want %v", tt.in, got, tt.markdown)
		}
	}
}

func TestReplaceExt(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"notes.md":         "notes.html",
		"dir/a.b.markdown": "dir/a.b.html",
		"noext":            "noext.html",
	}
	for in, want := range tests {
		if got := ReplaceExt(in, ".html"); got != want {
			t.Errorf("ReplaceExt(%q) = %q, want %q", in, got, want)
		}
	}
}
