package icons

import (
	"math"
	"strconv"
	"strings"
)

// DefaultWidth is the width of a group in the 16-unit icon box.
const DefaultWidth = 16.0

// DefaultFile is the file used by layers that do not name one.
const DefaultFile = "default.svg"

// Colors maps color modifier codes to filter names.
var Colors = map[string]string{
	"r": "red",
	"y": "yellow",
	"g": "green",
	"b": "blue",
}

// Layer is one drawn element of a group.
type Layer struct {
	// File is the asset file, always ending in ".svg". Empty means the ID is
	// drawn as a text glyph.
	File string
	// ID is the element id in File. Empty means a blank spacer.
	ID    string
	Color string
	X     float64
	Y     float64
	Scale float64
}

// IsText reports whether the layer draws its ID as text.
func (l Layer) IsText() bool { return l.File == "" }

// IsSpacer reports whether the layer draws nothing.
func (l Layer) IsSpacer() bool { return l.ID == "" }

// Group is a stack of layers sharing one box.
type Group struct {
	// Source is the group's text between ':' separators.
	Source string
	Width  float64
	Layers []Layer
}

// Ref is a parsed icon reference.
type Ref struct {
	// Source is the text between the :: delimiters.
	Source string
	Groups []Group
}

// Parse parses the text between :: delimiters. defaultFile is used by layers
// without an explicit file; an empty value selects DefaultFile.
func Parse(payload, defaultFile string) Ref {
	if defaultFile == "" {
		defaultFile = DefaultFile
	}
	defaultFile = strings.TrimSuffix(defaultFile, ".svg")

	ref := Ref{Source: payload}
	for _, g := range strings.Split(payload, ":") {
		ref.Groups = append(ref.Groups, parseGroup(g, defaultFile))
	}
	return ref
}

func parseGroup(s, defaultFile string) Group {
	g := Group{Source: s, Width: DefaultWidth}
	for _, l := range strings.Split(s, ",") {
		g.Layers = append(g.Layers, parseLayer(l, defaultFile, &g))
	}
	return g
}

func parseLayer(s, defaultFile string, g *Group) Layer {
	parts := strings.Split(s, "+")
	l := Layer{Scale: 1}

	target := parts[0]
	if file, id, ok := strings.Cut(target, "#"); ok {
		l.File, l.ID = file, id
	} else {
		l.File, l.ID = defaultFile, target
	}
	if l.File != "" && !strings.HasSuffix(l.File, ".svg") {
		l.File += ".svg"
	}

	for _, mod := range parts[1:] {
		if mod == "" {
			continue
		}
		key, val := mod[0], mod[1:]
		switch key {
		case 'w':
			if n, ok := parseNumber(val); ok {
				g.Width = n
			}
		case 'h':
			g.Width = DefaultWidth / 2
		case 'z':
			g.Width = 0
		case 'c':
			if c, ok := Colors[val]; ok {
				l.Color = c
			}
		case 'x':
			if n, ok := parseNumber(val); ok {
				l.X = n
			}
		case 'y':
			if n, ok := parseNumber(val); ok {
				l.Y = n
			}
		case 's':
			if n, ok := parseNumber(val); ok && n > 0 {
				l.Scale = n
			}
		}
	}
	return l
}

func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// formatNumber renders n without trailing zeros.
func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
