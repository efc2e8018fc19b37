package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// rewriteTargets lists the attributes that may point at local files.
var rewriteTargets = []struct {
	selector string
	attr     string
}{
	{"img[src]", "src"},
	{"a[href]", "href"},
	{"use[href]", "href"},
}

// RewriteRelativePaths turns relative image, link and icon references into
// absolute file:// URLs so a page renders the same from a temporary file.
// Fragments (#id) are kept, which icon references rely on. Absolute paths,
// URLs and bare anchors are left alone, and so is anything resolving outside
// sourceDir. If sourceDir is empty, returns the HTML unchanged.
func RewriteRelativePaths(htmlContent, sourceDir string) (string, error) {
	if sourceDir == "" {
		return htmlContent, nil
	}

	absSourceDir, err := filepath.Abs(sourceDir)
	if err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	for _, t := range rewriteTargets {
		doc.Find(t.selector).Each(func(_ int, s *goquery.Selection) {
			val, _ := s.Attr(t.attr)
			if rewritten, ok := rewritePath(val, absSourceDir); ok {
				s.SetAttr(t.attr, rewritten)
			}
		})
	}

	if isFullDocument(htmlContent) {
		return goquery.OuterHtml(doc.Selection)
	}
	return doc.Find("body").Html()
}

// isFullDocument reports whether content carries its own document shell.
func isFullDocument(content string) bool {
	trimmed := strings.ToLower(strings.TrimSpace(content))
	return strings.HasPrefix(trimmed, "<!doctype") || strings.HasPrefix(trimmed, "<html")
}

// rewritePath resolves a relative reference against sourceDir.
func rewritePath(ref, sourceDir string) (string, bool) {
	path, fragment, _ := strings.Cut(ref, "#")
	if !isRelativePath(path) {
		return "", false
	}

	absPath := filepath.Join(sourceDir, path)
	if !isPathUnderDir(absPath, sourceDir) {
		return "", false
	}

	u := pathToFileURL(absPath)
	if fragment != "" {
		u += "#" + fragment
	}
	return u, true
}

// isRelativePath returns true if the path should be rewritten.
func isRelativePath(path string) bool {
	if path == "" {
		return false
	}
	for _, prefix := range []string{"http://", "https://", "file://", "data:", "mailto:", "//"} {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return !filepath.IsAbs(path)
}

// isPathUnderDir checks if absPath is under dir (prevents path traversal).
func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

// pathToFileURL converts an absolute path to a file:// URL.
func pathToFileURL(absPath string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absPath),
	}
	return u.String()
}
