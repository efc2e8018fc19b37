// Package assets provides the CSS styles and page templates used to wrap
// rendered documents.
//
// Every source is an [FSLoader] over the same layout:
//
//	styles/{name}.css
//	templates/{name}.html
//
// The embedded set ships a "default" style with light and dark palettes, a
// "print" style for PDF output and the "page" template. [NewAssetResolver]
// layers a custom directory over it; the directory may override any asset by
// name or add new ones.
//
// Names are bare file stems, and custom directories are read through
// os.Root, so neither a name nor a symlink can reach outside the tree.
package assets
