package mdstack

import (
	"fmt"
	"time"

	"github.com/alnah/go-mdstack/internal/dateutil"
)

// ResolveDate expands "auto" and "auto:FORMAT" date values against t.
// FORMAT uses YYYY, YY, MMMM, MMM, MM, M, DD and D tokens, text in brackets
// is literal, and the presets iso, european, us and long are recognised.
// Any other value is returned unchanged.
func ResolveDate(value string, t time.Time) (string, error) {
	s, err := dateutil.ResolveDate(value, t)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return s, nil
}
