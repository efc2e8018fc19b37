package icons

import "errors"

// Sentinel errors for icon asset access.
var (
	// ErrInvalidIconDir indicates the configured icon directory is unusable.
	ErrInvalidIconDir = errors.New("invalid icon directory")

	// ErrInvalidIconFile indicates an icon file name or content that cannot be used.
	ErrInvalidIconFile = errors.New("invalid icon file")
)
