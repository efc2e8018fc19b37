package macro

import (
	"regexp"
	"strings"
)

// fenceOpen matches the opening or closing line of a fenced code block.
var fenceOpen = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})")

// Protect rewrites every macro invocation in src into an opaque marker.
//
// An invocation is '@', a name of [A-Za-z0-9_] characters and one or more
// consecutive {...} blocks. The name and all raw blocks are percent-encoded
// into @{payload}. Invocations without a single complete block, escaped with
// a backslash, or placed inside code are copied unchanged. The scan is a single
// left-to-right pass and never revisits its own output.
func Protect(src string) string {
	if !strings.Contains(src, "@") {
		return src
	}

	var b strings.Builder
	b.Grow(len(src))

	var fence string // non-empty while inside a fenced code block
	i := 0
	for i < len(src) {
		lineEnd := strings.IndexByte(src[i:], '\n')
		if lineEnd < 0 {
			lineEnd = len(src)
		} else {
			lineEnd += i + 1
		}
		line := src[i:lineEnd]

		if m := fenceOpen.FindStringSubmatch(line); m != nil {
			switch {
			case fence == "":
				fence = m[1]
			case m[1][0] == fence[0] && len(m[1]) >= len(fence) &&
				strings.TrimSpace(line[len(m[0]):]) == "":
				fence = ""
			}
			b.WriteString(line)
			i = lineEnd
			continue
		}
		if fence != "" {
			b.WriteString(line)
			i = lineEnd
			continue
		}

		i = protectInline(&b, src, i, lineEnd)
	}
	return b.String()
}

// protectInline copies src[i:] up to at least lineEnd, rewriting invocations.
// Invocations and code spans may run past lineEnd; the returned index is where
// copying stopped.
func protectInline(b *strings.Builder, src string, i, lineEnd int) int {
	for i < lineEnd {
		c := src[i]
		switch {
		case c == '`':
			run := backtickRun(src, i)
			if end := closeCodeSpan(src, i+run, run); end > 0 {
				b.WriteString(src[i:end])
				i = end
				if i > lineEnd {
					lineEnd = nextLineEnd(src, i)
				}
				continue
			}
			b.WriteString(src[i : i+run])
			i += run
		case c == '@' && !isEscaped(src, i):
			nameEnd := scanName(src, i+1)
			if nameEnd == i+1 || nameEnd >= len(src) || src[nameEnd] != '{' {
				b.WriteByte(c)
				i++
				continue
			}
			args, end := ScanArgs(src, nameEnd)
			if len(args) == 0 {
				b.WriteByte(c)
				i++
				continue
			}
			b.WriteString(markerOpen)
			b.WriteString(encode(src[i+1 : end]))
			b.WriteByte('}')
			i = end
			if i > lineEnd {
				lineEnd = nextLineEnd(src, i)
			}
		default:
			b.WriteByte(c)
			i++
		}
	}
	return i
}

// nextLineEnd returns the index just past the newline that ends the line
// containing i.
func nextLineEnd(src string, i int) int {
	n := strings.IndexByte(src[i:], '\n')
	if n < 0 {
		return len(src)
	}
	return i + n + 1
}

func backtickRun(s string, i int) int {
	n := 0
	for i+n < len(s) && s[i+n] == '`' {
		n++
	}
	return n
}

// closeCodeSpan finds a backtick run of exactly n characters at or after
// start, within the current paragraph. It returns the index past that run, or
// -1 when the span is never closed.
func closeCodeSpan(s string, start, n int) int {
	limit := len(s)
	if p := strings.Index(s[start:], "\n\n"); p >= 0 {
		limit = start + p
	}
	for i := start; i < limit; {
		if s[i] != '`' {
			i++
			continue
		}
		run := backtickRun(s[:limit], i)
		if run == n {
			return i + run
		}
		i += run
	}
	return -1
}

// isEscaped reports whether s[i] is preceded by an odd number of backslashes.
func isEscaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}
