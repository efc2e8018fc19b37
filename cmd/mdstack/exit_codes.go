package main

import (
	"errors"
	"os"

	"github.com/alnah/go-mdstack"
	"github.com/alnah/go-mdstack/internal/config"
)

// Exit codes for the mdstack CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful build
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil || errors.Is(err, errHelpShown) {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, mdstack.ErrBrowserConnect) ||
		errors.Is(err, mdstack.ErrPageCreate) ||
		errors.Is(err, mdstack.ErrPageLoad) ||
		errors.Is(err, mdstack.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrReadCSS) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mdstack.ErrEmptyMarkdown) ||
		errors.Is(err, mdstack.ErrInvalidPageSize) ||
		errors.Is(err, mdstack.ErrInvalidMargin) ||
		errors.Is(err, mdstack.ErrInvalidDate) ||
		errors.Is(err, mdstack.ErrStyleNotFound) ||
		errors.Is(err, mdstack.ErrTemplateNotFound) ||
		errors.Is(err, mdstack.ErrInvalidAssetPath) ||
		errors.Is(err, mdstack.ErrInvalidIconDir) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrUsage) {
		return ExitUsage
	}

	return ExitGeneral
}
