package web2pdf

import (
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/alnah/go-web2pdf/internal/fileutil"
)

// Print parameter bounds and defaults, in inches unless noted.
const (
	// DefaultMargin is 1cm expressed in inches, applied to each side
	// unless overridden.
	DefaultMargin = 0.3937

	// MinScale and MaxScale bound the Chrome rendering scale factor.
	MinScale = 0.1
	MaxScale = 2.0

	// DPI is the CSS pixel density Chrome assumes for print layout.
	DPI = 96.0
)

// WorkItem is one location/destination pair to convert.
// Immutable once constructed.
type WorkItem struct {
	ID          string // UUID, for log correlation
	Location    string // URL or local file path
	Destination string // output PDF path
}

// PairWorkItems splits a flat argument list into consecutive
// (location, destination) pairs. An odd-length list is a hard input
// error, not a per-item failure: the last location has no destination.
func PairWorkItems(args []string) ([]WorkItem, error) {
	if len(args) == 0 {
		return nil, ErrNoWorkItems
	}
	if len(args)%2 != 0 {
		return nil, fmt.Errorf("%w: no destination for %q", ErrOddPairCount, args[len(args)-1])
	}

	items := make([]WorkItem, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		items = append(items, WorkItem{
			ID:          uuid.NewString(),
			Location:    args[i],
			Destination: args[i+1],
		})
	}
	return items, nil
}

// NormalizeLocation rewrites a location that names an existing regular
// file to a file:// URL. Idempotent: a file:// URL is not stat-able as
// a bare path, so a second pass leaves it unchanged.
func NormalizeLocation(location string) string {
	if !fileutil.FileExists(location) {
		return location
	}
	abs, err := filepath.Abs(location)
	if err != nil {
		return location
	}
	return fileutil.ToFileURL(abs)
}

// NormalizeLocations normalizes every item's location in place.
// Call once, before any rendering task starts.
func NormalizeLocations(items []WorkItem) {
	for i := range items {
		items[i].Location = NormalizeLocation(items[i].Location)
	}
}

// PrintOptions holds the full set of Chrome print-to-PDF parameters.
// Optional fields are pointers: nil means "let Chrome decide".
type PrintOptions struct {
	Landscape           bool
	PrintBackground     bool
	DisplayHeaderFooter bool
	HeaderTemplate      string
	FooterTemplate      string

	MarginTop    *float64 // inches
	MarginBottom *float64
	MarginLeft   *float64
	MarginRight  *float64

	PaperWidth  *float64 // inches
	PaperHeight *float64

	Scale      *float64 // 0.1 to 2.0
	PageRanges string   // e.g. "1-5, 8, 11-13"; empty = all pages

	PreferCSSPageSize bool
	GenerateTaggedPDF *bool
}

// DefaultPrintOptions returns options matching the CLI defaults:
// backgrounds printed, CSS page size preferred, 1cm margins.
func DefaultPrintOptions() *PrintOptions {
	return &PrintOptions{
		PrintBackground:   true,
		PreferCSSPageSize: true,
		MarginTop:         Float(DefaultMargin),
		MarginBottom:      Float(DefaultMargin),
		MarginLeft:        Float(DefaultMargin),
		MarginRight:       Float(DefaultMargin),
	}
}

// Clone returns a deep copy. Concurrent tasks must not share mutable
// options state, and mono mode mutates its per-task copy.
func (o *PrintOptions) Clone() *PrintOptions {
	c := *o
	c.MarginTop = cloneFloat(o.MarginTop)
	c.MarginBottom = cloneFloat(o.MarginBottom)
	c.MarginLeft = cloneFloat(o.MarginLeft)
	c.MarginRight = cloneFloat(o.MarginRight)
	c.PaperWidth = cloneFloat(o.PaperWidth)
	c.PaperHeight = cloneFloat(o.PaperHeight)
	c.Scale = cloneFloat(o.Scale)
	c.GenerateTaggedPDF = cloneBool(o.GenerateTaggedPDF)
	return &c
}

// Validate checks that all set fields are within printable bounds.
func (o *PrintOptions) Validate() error {
	if o.Scale != nil && (*o.Scale < MinScale || *o.Scale > MaxScale) {
		return fmt.Errorf("%w: %.2f (must be between %.1f and %.1f)", ErrInvalidScale, *o.Scale, MinScale, MaxScale)
	}
	margins := []struct {
		side string
		val  *float64
	}{
		{"top", o.MarginTop},
		{"bottom", o.MarginBottom},
		{"left", o.MarginLeft},
		{"right", o.MarginRight},
	}
	for _, m := range margins {
		if m.val != nil && *m.val < 0 {
			return fmt.Errorf("%w: %s %.4f (must be >= 0)", ErrInvalidMargin, m.side, *m.val)
		}
	}
	if o.PaperWidth != nil && *o.PaperWidth <= 0 {
		return fmt.Errorf("%w: width %.4f (must be > 0)", ErrInvalidPaperSize, *o.PaperWidth)
	}
	if o.PaperHeight != nil && *o.PaperHeight <= 0 {
		return fmt.Errorf("%w: height %.4f (must be > 0)", ErrInvalidPaperSize, *o.PaperHeight)
	}
	return nil
}

// Float returns a pointer to v, for optional PrintOptions fields.
func Float(v float64) *float64 {
	return &v
}

// Bool returns a pointer to v, for optional PrintOptions fields.
func Bool(v bool) *bool {
	return &v
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
