package web2pdf

// monoDefaultMargin is the per-side margin assumed by mono sizing when
// a margin is unset. Historically a rounder value than DefaultMargin;
// both constants are load-bearing and must stay distinct.
const monoDefaultMargin = 0.4

// ContentSize is a page's measured CSS content box in device pixels at
// 96 DPI, taken after the page has loaded.
type ContentSize struct {
	Width  float64
	Height float64
}

// MonoDimensions derives custom paper dimensions in inches that fit the
// measured content plus margins on a single page. Unset margins default
// to monoDefaultMargin for this computation only.
//
// Pure: same inputs always yield the same dimensions, and the output
// grows monotonically with content size and with each margin.
func MonoDimensions(size ContentSize, marginTop, marginBottom, marginLeft, marginRight *float64) (paperWidth, paperHeight float64) {
	paperWidth = size.Width/DPI + monoMargin(marginLeft) + monoMargin(marginRight)
	paperHeight = size.Height/DPI + monoMargin(marginTop) + monoMargin(marginBottom)
	return paperWidth, paperHeight
}

func monoMargin(m *float64) float64 {
	if m == nil {
		return monoDefaultMargin
	}
	return *m
}

// ApplyMonoLayout rewrites o for single-page output sized to the
// measured content. Mono and scale are mutually exclusive, so any
// scale factor is cleared; orientation is forced to portrait. The page
// range is pinned to "1" because some sites' CSS forces a spurious
// blank second page once a very tall custom paper size is applied.
//
// Must run after the page has been measured and before the render call;
// the dimensions depend on post-load layout.
func (o *PrintOptions) ApplyMonoLayout(size ContentSize) {
	width, height := MonoDimensions(size, o.MarginTop, o.MarginBottom, o.MarginLeft, o.MarginRight)
	o.PaperWidth = Float(width)
	o.PaperHeight = Float(height)
	o.Scale = nil
	o.Landscape = false
	o.PageRanges = "1"
}
