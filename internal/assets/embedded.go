package assets

import "embed"

//go:embed styles/*.css templates/*.html
var embedded embed.FS

// NewEmbeddedLoader returns a loader over the assets compiled into the binary.
func NewEmbeddedLoader() *FSLoader {
	return NewFSLoader(embedded)
}
