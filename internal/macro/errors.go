package macro

import "errors"

// ErrMalformedMarker indicates a marker payload that does not decode to a
// macro invocation.
var ErrMalformedMarker = errors.New("malformed macro marker")
