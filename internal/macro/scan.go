package macro

// FindClose returns the index of the '}' that closes a block whose opening
// '{' sits just before start. Nested braces are tracked. It returns -1 when
// the block is never closed.
func FindClose(s string, start int) int {
	depth := 1
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// ScanArgs consumes consecutive {...} blocks beginning at start and returns
// their inner text together with the index just past the last complete block.
// Scanning stops at the first character that does not open a block or at the
// first unterminated block.
func ScanArgs(s string, start int) (args []string, end int) {
	end = start
	for end < len(s) && s[end] == '{' {
		closeAt := FindClose(s, end+1)
		if closeAt < 0 {
			break
		}
		args = append(args, s[end+1:closeAt])
		end = closeAt + 1
	}
	return args, end
}

// scanName returns the end index of a macro name starting at start, or start
// when no name character is present.
func scanName(s string, start int) int {
	i := start
	for i < len(s) && isNameByte(s[i]) {
		i++
	}
	return i
}

func isNameByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
