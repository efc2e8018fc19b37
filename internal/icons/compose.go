package icons

import (
	"html"
	"log/slog"
	"strings"
)

// Composer renders parsed references into markup.
type Composer struct {
	Resolver Resolver
	Logger   *slog.Logger
}

// Part is one composed group. A group with nothing to draw has no Markup and
// keeps its own reference as Text.
type Part struct {
	Markup string
	Text   string
}

// Compose renders every group of ref. ok is false when no group has a
// drawable layer, in which case the caller keeps the original text.
func (c *Composer) Compose(ref Ref) (parts []Part, ok bool) {
	parts = make([]Part, 0, len(ref.Groups))
	for _, g := range ref.Groups {
		markup, valid := c.composeGroup(g)
		if !valid {
			c.logger().Debug("icon group left as text", "ref", ref.Source, "group", g.Source)
			parts = append(parts, Part{Text: "::" + g.Source + "::"})
			continue
		}
		ok = true
		parts = append(parts, Part{Markup: markup})
	}
	if !ok {
		return nil, false
	}
	return parts, true
}

func (c *Composer) composeGroup(g Group) (string, bool) {
	var layers strings.Builder
	valid := false
	for _, l := range g.Layers {
		markup, ok := c.composeLayer(l)
		if !ok {
			continue
		}
		valid = true
		layers.WriteString(markup)
	}
	if !valid {
		return "", false
	}
	return WrapGroup(g.Width, layers.String()), true
}

// WrapGroup places layer markup in the 16-unit box of a group that is width
// units wide.
func WrapGroup(width float64, layers string) string {
	return `<span class="svg-stack" style="width: ` + formatNumber(width/16) + `em">` +
		`<svg viewBox="0 0 16 16" width="1em" height="1em" style="overflow: visible;">` +
		layers + `</svg></span>`
}

func (c *Composer) composeLayer(l Layer) (string, bool) {
	if l.IsSpacer() {
		return "", true
	}

	x, y := l.X/l.Scale, l.Y/l.Scale
	filter := c.filterAttr(l.Color)
	if l.IsText() {
		return `<text x="` + formatNumber(x) + `" y="` + formatNumber(14+y) + `" font-size="16px"` +
			filter + scaleAttr(l.Scale) + `>` + html.EscapeString(l.ID) + `</text>`, true
	}

	asset, ok := c.Resolver.Lookup(l.File, l.ID)
	if !ok {
		c.logger().Debug("icon layer not found", "file", l.File, "id", l.ID)
		return "", false
	}

	if asset.Markup != "" {
		transform := strings.TrimSpace(scaleFunc(l.Scale) + " " + translateFunc(x, y))
		attr := ""
		if transform != "" {
			attr = ` transform="` + transform + `"`
		}
		return `<g` + attr + filter + `>` + asset.Markup + `</g>`, true
	}

	return `<use href="` + html.EscapeString(asset.Href) + `" x="` + formatNumber(x) + `" y="` + formatNumber(y) + `"` +
		filter + scaleAttr(l.Scale) + ` />`, true
}

// filterAttr returns the filter attribute for color, or nothing when the
// color is unset or has no filter asset.
func (c *Composer) filterAttr(color string) string {
	if color == "" {
		return ""
	}
	u, ok := c.Resolver.Filter(color)
	if !ok {
		c.logger().Debug("color filter unavailable", "color", color)
		return ""
	}
	return ` filter="url(` + html.EscapeString(u) + `)"`
}

func scaleAttr(s float64) string {
	if f := scaleFunc(s); f != "" {
		return ` transform="` + f + `"`
	}
	return ""
}

func scaleFunc(s float64) string {
	if s == 1 {
		return ""
	}
	return "scale(" + formatNumber(s) + ")"
}

func translateFunc(x, y float64) string {
	if x == 0 && y == 0 {
		return ""
	}
	return "translate(" + formatNumber(x) + " " + formatNumber(y) + ")"
}

func (c *Composer) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
