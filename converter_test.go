package mdstack

// Notes:
// - Convert runs the real goldmark pipeline; only the PDF backend is mocked
//   so no browser is needed
// - Internal test options (withPDFConverter, withNow, ...) inject
//   dependencies the public API does not expose

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/alnah/go-mdstack/internal/pipeline"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockPDFConverter struct {
	mu        sync.Mutex
	called    bool
	inputHTML string
	inputOpts *pdfOptions
	err       error
	closed    bool
}

func (m *mockPDFConverter) ToPDF(_ context.Context, htmlContent string, opts *pdfOptions) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.called = true
	m.inputHTML = htmlContent
	m.inputOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return []byte("%PDF-1.7 mock"), nil
}

func (m *mockPDFConverter) Close() error {
	m.closed = true
	return nil
}

type panickingConverter struct{}

func (panickingConverter) ToHTML(context.Context, string) (string, error) {
	panic("boom")
}

type stubIconResolver struct{}

func (stubIconResolver) Lookup(file, id string) (IconAsset, bool) {
	if id != "dot" {
		return IconAsset{}, false
	}
	return IconAsset{Href: "mem:" + file + "#" + id}, true
}

func (stubIconResolver) Filter(string) (string, bool) { return "", false }

func withPDFConverter(c pdfConverter) Option {
	return func(conv *Converter) {
		conv.pdfConverter = c
	}
}

func withHTMLConverter(c pipeline.HTMLConverter) Option {
	return func(conv *Converter) {
		conv.htmlConverter = c
	}
}

func withNow(t time.Time) Option {
	return func(conv *Converter) {
		conv.now = func() time.Time { return t }
	}
}

// ---------------------------------------------------------------------------
// Test Helpers
// ---------------------------------------------------------------------------

const testIcons = `<svg xmlns="http://www.w3.org/2000/svg">
<symbol id="star" viewBox="0 0 16 16"><path d="M8 0L16 16H0Z"/></symbol>
</svg>`

func newTestConverter(t *testing.T, opts ...Option) (*Converter, *mockPDFConverter) {
	t.Helper()
	pdf := &mockPDFConverter{}
	base := []Option{
		withPDFConverter(pdf),
		withNow(time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)),
		WithIconFS(fstest.MapFS{"default.svg": {Data: []byte(testIcons)}}, "/i/", IconsReference),
	}
	conv, err := NewConverter(append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	t.Cleanup(func() { _ = conv.Close() })
	return conv, pdf
}

func convert(t *testing.T, conv *Converter, input Input) *Result {
	t.Helper()
	res, err := conv.Convert(context.Background(), input)
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	return res
}

func assertContains(t *testing.T, label, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("%s should contain %q\n got: %s", label, want, got)
		}
	}
}

// ---------------------------------------------------------------------------
// TestConvert - full pipeline
// ---------------------------------------------------------------------------

func TestConvert_Pipeline(t *testing.T) {
	t.Parallel()

	conv, pdf := newTestConverter(t)
	res := convert(t, conv, Input{
		Markdown: "# Caf+e'+ notes\n\n@count{} ^^big^^ ::star::\n\n@box{**inside**}",
		Date:     "auto",
		Lang:     "fr",
	})

	assertContains(t, "Body", res.Body,
		"Cafe\u0301 notes</h1>",
		"计数: <strong>1</strong>",
		`<span class="big">big</span>`,
		`<use href="/i/default.svg#star" x="0" y="0" />`,
		`<div class="macro-box"`, "<strong>inside</strong>",
	)
	if res.Title != "Cafe\u0301 notes" {
		t.Errorf("Title = %q, want heading text", res.Title)
	}

	page := string(res.HTML)
	assertContains(t, "HTML", page,
		"<!DOCTYPE html>",
		`<html lang="fr">`,
		"<title>Cafe\u0301 notes</title>",
		`<time class="page-date">2026-10-19</time>`,
		"<style>", ".svg-stack",
		res.Body,
	)
	if strings.Index(page, "<style>") > strings.Index(page, "</head>") {
		t.Error("style block should be injected in <head>")
	}
	if pdf.called || res.PDF != nil {
		t.Error("PDF rendered without being requested")
	}
}

func TestConvert_PDF(t *testing.T) {
	t.Parallel()

	t.Run("page settings reach the backend", func(t *testing.T) {
		t.Parallel()

		conv, pdf := newTestConverter(t)
		page := &PageSettings{Size: PageSizeA4, Margin: 1}
		res := convert(t, conv, Input{Markdown: "x", PDF: true, Page: page})

		if string(res.PDF) != "%PDF-1.7 mock" {
			t.Errorf("PDF = %q", res.PDF)
		}
		if pdf.inputOpts == nil || pdf.inputOpts.Page != page {
			t.Errorf("page settings not forwarded: %+v", pdf.inputOpts)
		}
		if pdf.inputHTML != string(res.HTML) {
			t.Error("backend should print the full page")
		}
	})

	t.Run("backend error wrapped", func(t *testing.T) {
		t.Parallel()

		conv, pdf := newTestConverter(t)
		pdf.err = ErrBrowserConnect
		_, err := conv.Convert(context.Background(), Input{Markdown: "x", PDF: true})
		if !errors.Is(err, ErrBrowserConnect) {
			t.Errorf("Convert() error = %v, want ErrBrowserConnect", err)
		}
	})
}

func TestConvert_InputErrors(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)

	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{"empty markdown", Input{}, ErrEmptyMarkdown},
		{"bad page size", Input{Markdown: "x", Page: &PageSettings{Size: "tabloid", Margin: 1}}, ErrInvalidPageSize},
		{"bad margin", Input{Markdown: "x", Page: &PageSettings{Size: "a4", Margin: 9}}, ErrInvalidMargin},
		{"bad date", Input{Markdown: "x", Date: "auto:"}, ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := conv.Convert(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Convert() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConvert_DocumentErrorsDoNotFail(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)
	res := convert(t, conv, Input{Markdown: "@nope{} ::missing:: +zz+"})

	assertContains(t, "Body", res.Body,
		`<span class="macro-error"`, "Error: @nope undefined",
		"::missing::", "+zz+",
	)
}

func TestConvert_Cancelled(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conv.Convert(ctx, Input{Markdown: "x"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
}

func TestConvert_RecoversPanic(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t, withHTMLConverter(panickingConverter{}))
	_, err := conv.Convert(context.Background(), Input{Markdown: "x"})
	if err == nil || !strings.Contains(err.Error(), "internal error: boom") {
		t.Errorf("Convert() error = %v, want recovered panic", err)
	}
}

func TestConvert_SourceDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	conv, _ := newTestConverter(t)
	res := convert(t, conv, Input{Markdown: "![logo](img/logo.png)", SourceDir: dir})

	abs, err := filepath.Abs(filepath.Join(dir, "img", "logo.png"))
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, "Body", res.Body, "file://", filepath.ToSlash(abs))
}

// Each Convert call starts from a fresh macro context, even concurrently.
func TestConvert_IsolatedContexts(t *testing.T) {
	t.Parallel()

	conv, _ := newTestConverter(t)

	var wg sync.WaitGroup
	bodies := make([]string, 8)
	for i := range bodies {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := conv.Convert(context.Background(), Input{Markdown: "@count{} @count{}"})
			if err != nil {
				t.Errorf("Convert() error = %v", err)
				return
			}
			bodies[i] = res.Body
		}()
	}
	wg.Wait()

	for i, body := range bodies {
		if !strings.Contains(body, "<strong>2</strong>") || strings.Contains(body, "<strong>3</strong>") {
			t.Errorf("render %d leaked counter state: %s", i, body)
		}
	}
}

// ---------------------------------------------------------------------------
// TestOptions
// ---------------------------------------------------------------------------

func TestOptions(t *testing.T) {
	t.Parallel()

	shout := func(args []string, _ *MacroEnv) MacroOutput {
		return TextOutput("**" + strings.ToUpper(args[0]) + "**")
	}
	nest := func(args []string, env *MacroEnv) MacroOutput {
		return HTMLOutput(env.RenderInline("@nest{}"))
	}

	tests := []struct {
		name         string
		opts         []Option
		input        Input
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "custom macro",
			opts:         []Option{WithMacros(Macros{"shout": shout})},
			input:        Input{Markdown: "@shout{hey} @count{}"},
			wantContains: []string{"<strong>HEY</strong>", "计数"},
		},
		{
			name:         "max depth",
			opts:         []Option{WithMacros(Macros{"nest": nest}), WithMaxDepth(2)},
			input:        Input{Markdown: "@nest{}"},
			wantContains: []string{`class="macro-error"`},
		},
		{
			name:         "extra accent",
			opts:         []Option{WithAccents(map[string]string{"~": "\u0303"})},
			input:        Input{Markdown: "+n~+ +e'+"},
			wantContains: []string{"n\u0303", "e\u0301"},
		},
		{
			name:         "inline css style",
			opts:         []Option{WithStyle(".big { color: teal; }")},
			input:        Input{Markdown: "x", CSS: "p { margin: 0; }"},
			wantContains: []string{".big { color: teal; }\np { margin: 0; }"},
			wantExcludes: []string{"prefers-color-scheme"},
		},
		{
			name:         "print style",
			opts:         []Option{WithStyle(PrintStyle)},
			input:        Input{Markdown: "x"},
			wantContains: []string{"@page"},
		},
		{
			name:         "custom icon resolver",
			opts:         []Option{WithIconResolver(stubIconResolver{}), WithDefaultIconFile("set.svg")},
			input:        Input{Markdown: "::dot::"},
			wantContains: []string{`href="mem:set.svg#dot"`},
		},
		{
			name:         "raw html escaped by default",
			input:        Input{Markdown: "<b>raw</b>"},
			wantContains: []string{"<!-- raw HTML omitted -->"},
		},
		{
			name:         "unsafe html",
			opts:         []Option{WithUnsafeHTML(true)},
			input:        Input{Markdown: "<b>raw</b>"},
			wantContains: []string{"<b>raw</b>"},
		},
		{
			name:         "soft wraps",
			opts:         []Option{WithSoftWraps(true)},
			input:        Input{Markdown: "a\nb"},
			wantContains: []string{"<p>a\nb</p>"},
			wantExcludes: []string{"<br />"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv, _ := newTestConverter(t, tt.opts...)
			res := convert(t, conv, tt.input)
			page := string(res.HTML)
			assertContains(t, "HTML", page, tt.wantContains...)
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(page, exclude) {
					t.Errorf("HTML should not contain %q", exclude)
				}
			}
		})
	}
}

func TestNewConverter_Errors(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing")

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"unknown style", []Option{WithStyle("nonexistent")}, ErrStyleNotFound},
		{"invalid asset path", []Option{WithAssetPath(missing)}, ErrInvalidAssetPath},
		{"invalid icon dir", []Option{WithIcons(missing, "", IconsInline)}, ErrInvalidIconDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewConverter(append(tt.opts, withPDFConverter(&mockPDFConverter{}))...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewConverter() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) should panic")
		}
	}()
	WithTimeout(0)
}

func TestClose_ReleasesBackend(t *testing.T) {
	t.Parallel()

	pdf := &mockPDFConverter{}
	conv, err := NewConverter(withPDFConverter(pdf))
	if err != nil {
		t.Fatalf("NewConverter() error = %v", err)
	}
	if err := conv.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !pdf.closed {
		t.Error("Close() did not close the PDF backend")
	}
}
