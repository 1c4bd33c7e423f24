package main

import (
	"errors"
	"os"

	web2pdf "github.com/alnah/go-web2pdf"
	"github.com/alnah/go-web2pdf/internal/config"
	"github.com/alnah/go-web2pdf/internal/cookiejar"
)

// Exit codes for startup failures, following Unix conventions:
// 0=success, 1=general, 2=usage. A run that reaches rendering exits
// with the count of failed work items instead.
const (
	ExitSuccess = 0 // All PDFs created
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, pair list, config, or cookie data
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser launch errors
)

// exitCodeFor returns the exit code for a fatal startup error.
// It uses errors.Is to check wrapped errors, so callers must wrap with
// fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, web2pdf.ErrBrowserLaunch) {
		return ExitBrowser
	}

	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	if errors.Is(err, web2pdf.ErrNoWorkItems) ||
		errors.Is(err, web2pdf.ErrOddPairCount) ||
		errors.Is(err, web2pdf.ErrInvalidScale) ||
		errors.Is(err, web2pdf.ErrInvalidMargin) ||
		errors.Is(err, web2pdf.ErrInvalidPaperSize) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, cookiejar.ErrFieldCount) ||
		errors.Is(err, cookiejar.ErrBadExpiry) {
		return ExitUsage
	}

	return ExitGeneral
}
