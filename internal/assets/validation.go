package assets

import (
	"fmt"
	"io/fs"
	"strings"
)

// ValidateAssetName accepts bare file stems only. Without separators or dots
// a name can neither climb out of its directory nor change extension.
func ValidateAssetName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\.`) || !fs.ValidPath(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
