// Package icons parses and renders icon stacks written as ::group:group::.
//
// A group is a comma-separated list of layers drawn on top of each other in a
// 16x16 box. A layer names an SVG element by [file#]id and takes modifiers
// after '+': w<n> (group width), h (half width), z (zero width),
// c<r|y|g|b> (color filter), x<n>, y<n> (offset) and s<n> (scale).
//
// Parse never fails; whether a reference renders is decided by Compose once
// the layers have been resolved against the icon assets.
package icons
