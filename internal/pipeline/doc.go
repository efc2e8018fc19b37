// Package pipeline implements the Markdown-to-HTML conversion pipeline.
//
// Stages, in order:
//   - Preprocess: macro invocations are folded into markers, line endings
//     are normalized and blank lines compressed
//   - goldmark parse: markers are expanded by an inline parser as inline
//     content is read, so macro output reaches the AST before any pass runs
//   - AST passes: accents, then font sizes, then icon stacks
//   - rendering of the fragment, then the page shell and CSS injection
//
// Each render owns a macro context and a depth counter held in the goldmark
// parser context. Nested renders started by macros reuse both, which is how
// state and the depth limit carry across levels.
//
// PDF generation is handled separately by the root mdstack package using
// headless Chrome (go-rod).
package pipeline
