package web2pdf

import (
	"math"
	"testing"
)

// floatEq compares within a tolerance that absorbs float64 rounding.
func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMonoDimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		size       ContentSize
		top        *float64
		bottom     *float64
		left       *float64
		right      *float64
		wantWidth  float64
		wantHeight float64
	}{
		{
			name:       "defaults all margins to 0.4",
			size:       ContentSize{Width: 960, Height: 1200},
			wantWidth:  10.8, // 960/96 + 0.4 + 0.4
			wantHeight: 13.3, // 1200/96 + 0.4 + 0.4
		},
		{
			name:       "explicit margins",
			size:       ContentSize{Width: 960, Height: 960},
			top:        Float(1.0),
			bottom:     Float(0.5),
			left:       Float(0.25),
			right:      Float(0.25),
			wantWidth:  10.5,
			wantHeight: 11.5,
		},
		{
			name:       "zero margins are respected, not defaulted",
			size:       ContentSize{Width: 96, Height: 96},
			top:        Float(0),
			bottom:     Float(0),
			left:       Float(0),
			right:      Float(0),
			wantWidth:  1.0,
			wantHeight: 1.0,
		},
		{
			name:       "mixed set and unset margins",
			size:       ContentSize{Width: 480, Height: 480},
			left:       Float(1.0),
			wantWidth:  6.4, // 5 + 1.0 + 0.4
			wantHeight: 5.8, // 5 + 0.4 + 0.4
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			width, height := MonoDimensions(tt.size, tt.top, tt.bottom, tt.left, tt.right)
			if !floatEq(width, tt.wantWidth) {
				t.Errorf("width = %v, want %v", width, tt.wantWidth)
			}
			if !floatEq(height, tt.wantHeight) {
				t.Errorf("height = %v, want %v", height, tt.wantHeight)
			}
		})
	}
}

func TestMonoDimensions_Deterministic(t *testing.T) {
	t.Parallel()

	size := ContentSize{Width: 1234.5, Height: 6789.25}
	w1, h1 := MonoDimensions(size, nil, nil, nil, nil)
	w2, h2 := MonoDimensions(size, nil, nil, nil, nil)
	if w1 != w2 || h1 != h2 {
		t.Errorf("repeated calls differ: (%v,%v) vs (%v,%v)", w1, h1, w2, h2)
	}
}

func TestMonoDimensions_Monotonic(t *testing.T) {
	t.Parallel()

	base := ContentSize{Width: 960, Height: 1200}
	baseW, baseH := MonoDimensions(base, nil, nil, nil, nil)

	t.Run("grows with content", func(t *testing.T) {
		t.Parallel()

		w, h := MonoDimensions(ContentSize{Width: 961, Height: 1201}, nil, nil, nil, nil)
		if w <= baseW || h <= baseH {
			t.Errorf("(%v,%v) not greater than (%v,%v)", w, h, baseW, baseH)
		}
	})

	t.Run("grows with each margin", func(t *testing.T) {
		t.Parallel()

		w, _ := MonoDimensions(base, nil, nil, Float(0.5), nil)
		if w <= baseW {
			t.Errorf("width %v not greater than %v after raising left margin", w, baseW)
		}
		_, h := MonoDimensions(base, Float(0.5), nil, nil, nil)
		if h <= baseH {
			t.Errorf("height %v not greater than %v after raising top margin", h, baseH)
		}
	})
}

func TestApplyMonoLayout(t *testing.T) {
	t.Parallel()

	t.Run("forces single portrait page and clears scale", func(t *testing.T) {
		t.Parallel()

		o := DefaultPrintOptions()
		o.Scale = Float(1.5)
		o.Landscape = true
		o.PageRanges = "2-4"

		o.ApplyMonoLayout(ContentSize{Width: 960, Height: 1200})

		if o.Scale != nil {
			t.Errorf("Scale = %v, want nil", *o.Scale)
		}
		if o.Landscape {
			t.Error("Landscape = true, want false")
		}
		if o.PageRanges != "1" {
			t.Errorf("PageRanges = %q, want %q", o.PageRanges, "1")
		}
		if o.PaperWidth == nil || o.PaperHeight == nil {
			t.Fatal("paper dimensions not set")
		}
		// Default options carry 0.3937 margins, not the mono 0.4 default.
		if !floatEq(*o.PaperWidth, 960/96.0+2*DefaultMargin) {
			t.Errorf("PaperWidth = %v, want %v", *o.PaperWidth, 960/96.0+2*DefaultMargin)
		}
		if !floatEq(*o.PaperHeight, 1200/96.0+2*DefaultMargin) {
			t.Errorf("PaperHeight = %v, want %v", *o.PaperHeight, 1200/96.0+2*DefaultMargin)
		}
	})

	t.Run("unset margins use the mono default", func(t *testing.T) {
		t.Parallel()

		o := &PrintOptions{}
		o.ApplyMonoLayout(ContentSize{Width: 960, Height: 1200})

		if !floatEq(*o.PaperWidth, 10.8) {
			t.Errorf("PaperWidth = %v, want 10.8", *o.PaperWidth)
		}
		if !floatEq(*o.PaperHeight, 13.3) {
			t.Errorf("PaperHeight = %v, want 13.3", *o.PaperHeight)
		}
	})

	t.Run("overwrites explicit paper size", func(t *testing.T) {
		t.Parallel()

		o := &PrintOptions{PaperWidth: Float(8.5), PaperHeight: Float(11)}
		o.ApplyMonoLayout(ContentSize{Width: 96, Height: 96})

		if !floatEq(*o.PaperWidth, 1.8) {
			t.Errorf("PaperWidth = %v, want 1.8", *o.PaperWidth)
		}
		if !floatEq(*o.PaperHeight, 1.8) {
			t.Errorf("PaperHeight = %v, want 1.8", *o.PaperHeight)
		}
	})
}
