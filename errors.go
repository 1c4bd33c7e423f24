package web2pdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrBrowserLaunch = errors.New("failed to launch browser")
	ErrPageCreate    = errors.New("failed to create browser page")
	ErrPageLoad      = errors.New("failed to load page")
	ErrPDFGeneration = errors.New("PDF generation failed")
	ErrWritePDF      = errors.New("failed to write PDF file")

	// Work item list errors.
	ErrNoWorkItems  = errors.New("no work items specified")
	ErrOddPairCount = errors.New("work items must be location/destination pairs")

	// Print options validation errors.
	ErrInvalidScale     = errors.New("invalid scale")
	ErrInvalidMargin    = errors.New("invalid margin")
	ErrInvalidPaperSize = errors.New("invalid paper size")

	// Cookie installation errors.
	ErrCookieInstall = errors.New("failed to install cookies")
)
