package main

// Notes:
// - exitCodeFor: every sentinel the CLI can surface, plus wrapped errors to
//   verify the errors.Is chain.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/alnah/go-mdstack"
	"github.com/alnah/go-mdstack/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"help shown", errHelpShown, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", mdstack.ErrBrowserConnect, ExitBrowser},
		{"page create", mdstack.ErrPageCreate, ExitBrowser},
		{"page load", mdstack.ErrPageLoad, ExitBrowser},
		{"pdf generation", mdstack.ErrPDFGeneration, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("converting to PDF: %w", mdstack.ErrBrowserConnect), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read markdown", ErrReadMarkdown, ExitIO},
		{"read css", ErrReadCSS, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"wrapped file not exist", fmt.Errorf("discovering files: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"empty markdown", mdstack.ErrEmptyMarkdown, ExitUsage},
		{"invalid page size", mdstack.ErrInvalidPageSize, ExitUsage},
		{"invalid margin", mdstack.ErrInvalidMargin, ExitUsage},
		{"invalid date", mdstack.ErrInvalidDate, ExitUsage},
		{"style not found", mdstack.ErrStyleNotFound, ExitUsage},
		{"template not found", mdstack.ErrTemplateNotFound, ExitUsage},
		{"invalid asset path", mdstack.ErrInvalidAssetPath, ExitUsage},
		{"invalid icon dir", mdstack.ErrInvalidIconDir, ExitUsage},
		{"invalid workers", ErrInvalidWorkerCount, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"invalid timeout", ErrInvalidTimeout, ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"deadline", context.DeadlineExceeded, ExitGeneral},
		{"html conversion", mdstack.ErrHTMLConversion, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_Conventions(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("exit codes 0, 1 and 2 must follow Unix conventions")
	}
	for _, code := range []int{ExitIO, ExitBrowser} {
		if code >= 126 {
			t.Errorf("custom exit code %d collides with shell-reserved codes", code)
		}
	}
}
