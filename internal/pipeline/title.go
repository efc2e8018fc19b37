package pipeline

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractTitle returns the text of the first h1 in an HTML fragment, with
// whitespace collapsed. It returns "" when there is none.
func ExtractTitle(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("h1").First().Text()), " ")
}
