package pipeline

import (
	"context"
	"regexp"
	"strings"

	"github.com/alnah/go-mdstack/internal/macro"
)

// lineEndings folds CRLF and lone CR into LF. CRLF is listed first so it
// wins over its own CR.
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// blankRun matches two or more blank lines in a row.
var blankRun = regexp.MustCompile(`\n{3,}`)

// MarkdownPreprocessor rewrites raw source before goldmark parses it.
type MarkdownPreprocessor interface {
	PreprocessMarkdown(ctx context.Context, content string) string
}

// CommonMarkPreprocessor is the MarkdownPreprocessor used by the converter.
type CommonMarkPreprocessor struct{}

// PreprocessMarkdown applies Preprocess unless ctx is already done.
func (p *CommonMarkPreprocessor) PreprocessMarkdown(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}
	return Preprocess(content)
}

// Preprocess folds macro invocations into markers, then normalizes line
// endings and squeezes blank lines. Markers go first: the bytes of a macro
// argument must reach the macro untouched.
func Preprocess(content string) string {
	content = macro.Protect(content)
	content = lineEndings.Replace(content)
	return blankRun.ReplaceAllString(content, "\n\n")
}
