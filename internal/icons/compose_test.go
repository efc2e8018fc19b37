package icons

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Test Helpers
// ---------------------------------------------------------------------------

// stubResolver resolves ids listed in known, keyed "file#id".
type stubResolver struct {
	known   map[string]Asset
	filters map[string]string
}

func (s *stubResolver) Lookup(file, id string) (Asset, bool) {
	a, ok := s.known[file+"#"+id]
	return a, ok
}

func (s *stubResolver) Filter(color string) (string, bool) {
	u, ok := s.filters[color]
	return u, ok
}

func newStubResolver() *stubResolver {
	return &stubResolver{
		known: map[string]Asset{
			"default.svg#star":   {Href: "/i/default.svg#star"},
			"default.svg#circle": {Href: "/i/default.svg#circle"},
			"inline.svg#dot":     {Markup: `<circle r="2"></circle>`},
		},
		filters: map[string]string{
			"red": "/i/color-filter.svg#filter-red",
		},
	}
}

const svgOpen = `<svg viewBox="0 0 16 16" width="1em" height="1em" style="overflow: visible;">`

// ---------------------------------------------------------------------------
// TestCompose
// ---------------------------------------------------------------------------

func TestCompose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		want    []string
		wantOK  bool
	}{
		{
			name:    "single icon",
			payload: "star",
			want: []string{
				`<span class="svg-stack" style="width: 1em">` + svgOpen +
					`<use href="/i/default.svg#star" x="0" y="0" /></svg></span>`,
			},
			wantOK: true,
		},
		{
			name:    "stacked icon with color and scale",
			payload: "circle+cr,star+x2+y4+s2",
			want: []string{
				`<span class="svg-stack" style="width: 1em">` + svgOpen +
					`<use href="/i/default.svg#circle" x="0" y="0" filter="url(/i/color-filter.svg#filter-red)" />` +
					`<use href="/i/default.svg#star" x="1" y="2" transform="scale(2)" /></svg></span>`,
			},
			wantOK: true,
		},
		{
			name:    "missing filter drops color only",
			payload: "star+cg",
			want: []string{
				`<span class="svg-stack" style="width: 1em">` + svgOpen +
					`<use href="/i/default.svg#star" x="0" y="0" /></svg></span>`,
			},
			wantOK: true,
		},
		{
			name:    "two groups with half width",
			payload: "star+h:#A",
			want: []string{
				`<span class="svg-stack" style="width: 0.5em">` + svgOpen +
					`<use href="/i/default.svg#star" x="0" y="0" /></svg></span>`,
				`<span class="svg-stack" style="width: 1em">` + svgOpen +
					`<text x="0" y="14" font-size="16px">A</text></svg></span>`,
			},
			wantOK: true,
		},
		{
			name:    "spacer group",
			payload: "+z",
			want: []string{
				`<span class="svg-stack" style="width: 0em">` + svgOpen + `</svg></span>`,
			},
			wantOK: true,
		},
		{
			name:    "unknown layer skipped when another resolves",
			payload: "nope,star",
			want: []string{
				`<span class="svg-stack" style="width: 1em">` + svgOpen +
					`<use href="/i/default.svg#star" x="0" y="0" /></svg></span>`,
			},
			wantOK: true,
		},
		{
			name:    "unresolved group keeps its own text",
			payload: "star:nope",
			want: []string{
				`<span class="svg-stack" style="width: 1em">` + svgOpen +
					`<use href="/i/default.svg#star" x="0" y="0" /></svg></span>`,
				"::nope::",
			},
			wantOK: true,
		},
		{
			name:    "no drawable group fails the reference",
			payload: "nope:moon",
			wantOK:  false,
		},
		{
			name:    "text glyph takes the color filter",
			payload: "#A+cr",
			want: []string{
				`<span class="svg-stack" style="width: 1em">` + svgOpen +
					`<text x="0" y="14" font-size="16px" filter="url(/i/color-filter.svg#filter-red)">A</text></svg></span>`,
			},
			wantOK: true,
		},
		{
			name:    "text glyph baseline is not scaled",
			payload: "#A+y2+s2",
			want: []string{
				`<span class="svg-stack" style="width: 1em">` + svgOpen +
					`<text x="0" y="15" font-size="16px" transform="scale(2)">A</text></svg></span>`,
			},
			wantOK: true,
		},
		{
			name:    "empty file and id is a spacer",
			payload: "#",
			want: []string{
				`<span class="svg-stack" style="width: 1em">` + svgOpen + `</svg></span>`,
			},
			wantOK: true,
		},
		{
			name:    "inline markup",
			payload: "inline#dot+x4+s2",
			want: []string{
				`<span class="svg-stack" style="width: 1em">` + svgOpen +
					`<g transform="scale(2) translate(2 0)"><circle r="2"></circle></g></svg></span>`,
			},
			wantOK: true,
		},
		{
			name:    "text glyph is escaped",
			payload: "#<b>",
			want: []string{
				`<span class="svg-stack" style="width: 1em">` + svgOpen +
					`<text x="0" y="14" font-size="16px">&lt;b&gt;</text></svg></span>`,
			},
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := &Composer{Resolver: newStubResolver()}
			got, ok := c.Compose(Parse(tt.payload, ""))
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				if got != nil {
					t.Errorf("parts = %+v, want nil", got)
				}
				return
			}
			rendered := make([]string, 0, len(got))
			for _, p := range got {
				if p.Markup == "" {
					rendered = append(rendered, p.Text)
					continue
				}
				rendered = append(rendered, p.Markup)
			}
			if strings.Join(rendered, "\n") != strings.Join(tt.want, "\n") {
				t.Errorf("Compose(%q)\n got: %q\nwant: %q", tt.payload, rendered, tt.want)
			}
		})
	}
}

func TestWrapGroup(t *testing.T) {
	t.Parallel()

	got := WrapGroup(4, "X")
	want := `<span class="svg-stack" style="width: 0.25em">` + svgOpen + `X</svg></span>`
	if got != want {
		t.Errorf("WrapGroup = %q, want %q", got, want)
	}
}
