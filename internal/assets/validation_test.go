package assets

import (
	"errors"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	valid := []string{"default", "my-style", "my_style", "Print2"}
	invalid := []string{"", ".", "..", "path/to/style", `path\to\style`, "page.html", ".hidden"}

	for _, name := range valid {
		if err := ValidateAssetName(name); err != nil {
			t.Errorf("ValidateAssetName(%q) error = %v", name, err)
		}
	}
	for _, name := range invalid {
		if err := ValidateAssetName(name); !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("ValidateAssetName(%q) error = %v, want ErrInvalidAssetName", name, err)
		}
	}
}
