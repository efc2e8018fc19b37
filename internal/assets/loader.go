package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

// AssetLoader loads CSS styles and page templates by bare name.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// kind is one asset family: where it lives and what a miss reports.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = kind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// FSLoader reads styles/{name}.css and templates/{name}.html from a file
// system. The embedded assets and custom directories both go through it.
type FSLoader struct {
	fsys fs.FS
}

var _ AssetLoader = (*FSLoader)(nil)

// NewFSLoader returns a loader over fsys.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

func (l *FSLoader) LoadStyle(name string) (string, error) {
	return l.load(styleKind, name)
}

func (l *FSLoader) LoadTemplate(name string) (string, error) {
	return l.load(templateKind, name)
}

// Styles lists the style names found under styles/, sorted.
func (l *FSLoader) Styles() []string {
	entries, err := fs.ReadDir(l.fsys, styleKind.dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if name, ok := strings.CutSuffix(e.Name(), styleKind.ext); ok && !e.IsDir() {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

func (l *FSLoader) load(k kind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	data, err := fs.ReadFile(l.fsys, k.dir+"/"+name+k.ext)
	switch {
	case err == nil:
		return string(data), nil
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", k.notFound, name)
	case errors.Is(err, ErrPathTraversal):
		return "", err
	default:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
}
