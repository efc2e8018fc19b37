package assets

// DefaultStyleName is the built-in style applied when none is configured.
const DefaultStyleName = "default"

// PrintStyleName is the built-in style suited to PDF output.
const PrintStyleName = "print"

// DefaultTemplateName is the built-in page template.
const DefaultTemplateName = "page"

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in CSS style by name.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads a built-in page template by name.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// Styles lists the built-in style names.
func Styles() []string {
	return defaultLoader.Styles()
}
