package macro

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
)

const markerOpen = "@{"

const upperhex = "0123456789ABCDEF"

// Invocation is a decoded macro call.
type Invocation struct {
	Name string
	Args []string
}

// isMarkerSafe reports whether c is written literally inside a marker.
// Everything else is percent-encoded so no Markdown delimiter can appear in
// a marker payload.
func isMarkerSafe(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '.'
}

func encode(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isMarkerSafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}

// Encode returns the marker Protect would produce for name and args.
func Encode(name string, args ...string) string {
	var raw strings.Builder
	raw.WriteString(name)
	for _, a := range args {
		raw.WriteByte('{')
		raw.WriteString(a)
		raw.WriteByte('}')
	}
	return markerOpen + encode(raw.String()) + "}"
}

// MatchMarker reports whether line begins with a well-formed marker. It has no
// side effects and can be used as a trial before consuming input. width is the
// full length of the marker including the "@{" and "}" delimiters.
func MatchMarker(line []byte) (payload string, width int, ok bool) {
	if len(line) < 4 || line[0] != '@' || line[1] != '{' {
		return "", 0, false
	}
	for i := 2; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '}':
			if i == 2 {
				return "", 0, false
			}
			return string(line[2:i]), i + 1, true
		case c == '%' || isMarkerSafe(c):
		default:
			return "", 0, false
		}
	}
	return "", 0, false
}

// Decode turns a marker payload back into an invocation. The payload must
// decode to a name followed by at least one complete {...} block and nothing
// else.
func Decode(payload string) (Invocation, error) {
	raw, err := url.PathUnescape(payload)
	if err != nil {
		return Invocation{}, fmt.Errorf("%w: %v", ErrMalformedMarker, err)
	}
	nameEnd := scanName(raw, 0)
	if nameEnd == 0 {
		return Invocation{}, fmt.Errorf("%w: missing name in %q", ErrMalformedMarker, raw)
	}
	args, end := ScanArgs(raw, nameEnd)
	if len(args) == 0 || end != len(raw) {
		return Invocation{}, fmt.Errorf("%w: bad arguments in %q", ErrMalformedMarker, raw)
	}
	return Invocation{Name: raw[:nameEnd], Args: args}, nil
}

// Restore replaces every decodable marker in b with the invocation text it
// was made from. It undoes Protect where no macro runs, such as indented code
// and raw HTML. Anything else in b is copied unchanged.
func Restore(b []byte) []byte {
	if !bytes.Contains(b, []byte(markerOpen)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for {
		i := bytes.Index(b, []byte(markerOpen))
		if i < 0 {
			return append(out, b...)
		}
		out = append(out, b[:i]...)
		b = b[i:]
		if payload, width, ok := MatchMarker(b); ok {
			if _, err := Decode(payload); err == nil {
				raw, _ := url.PathUnescape(payload)
				out = append(out, '@')
				out = append(out, raw...)
				b = b[width:]
				continue
			}
		}
		out = append(out, b[0])
		b = b[1:]
	}
}
