// Package macro implements the author macro language: @name{arg}{arg}.
//
// Expansion happens in two halves. Protect runs over the raw document before
// any Markdown parsing and folds every invocation, arguments included, into an
// opaque marker of the form @{percent-encoded-payload}. The marker survives
// block parsing intact, so arguments may span lines or contain Markdown
// syntax. The inline half (see internal/pipeline) recognises markers with
// MatchMarker, decodes them with Decode and invokes the registered Func.
//
// A Registry is fixed for the lifetime of an engine. A Context is created per
// render and carries the mutable state macros share within that render.
package macro
