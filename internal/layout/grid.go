package layout

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/math/fixed"

	"github.com/grodrigues/termprint/internal/font"
)

// familyMeasurer adapts a font.Family to the Measurer interface. Grid
// labels are always measured and drawn bold.
type familyMeasurer struct {
	fam  *font.Family
	bold bool
}

func (m familyMeasurer) Measure(s string, sizePx float64) (w, h int) {
	return m.fam.Measure(s, sizePx, m.bold)
}

// CircleSpec configures a grid of labeled circles. Out-of-range values are
// clamped to safe minimums before layout; a degraded print beats an
// aborted one.
type CircleSpec struct {
	Columns    int
	RadiusPx   int
	TextSizePx float64
	Fit        FitConfig
}

func (s CircleSpec) clamped() CircleSpec {
	if s.Columns < 1 {
		s.Columns = 1
	}
	if s.RadiusPx < 6 {
		s.RadiusPx = 6
	}
	if s.TextSizePx < 6 {
		s.TextSizePx = 6
	}
	return s
}

// CellSize returns the side of each (square) cell: the circle plus padding
// of max(4, radius/2) on every side.
func (s CircleSpec) CellSize() int {
	return 2*s.RadiusPx + 2*s.padding()
}

func (s CircleSpec) padding() int {
	return max(4, s.RadiusPx/2)
}

// GridDims returns the column and row count for n labels: labels fill the
// grid in row-major insertion order.
func gridDims(n, columns int) (cols, rows int) {
	return columns, (n + columns - 1) / columns
}

// CircleGrid renders the labels as a row-major grid of stroked circles with
// the label text centered inside each. The text size is fitted once for the
// whole grid against a span of 1.6 times the radius. Empty labels produce
// blank cells; an empty label list produces no image.
func CircleGrid(labels []string, spec CircleSpec, fam *font.Family) image.Image {
	if len(labels) == 0 {
		return nil
	}
	spec = spec.clamped()

	cols, rows := gridDims(len(labels), spec.Columns)
	cell := spec.CellSize()
	radius := spec.RadiusPx

	dst := newCanvas(cols*cell, rows*cell)

	span := 1.6 * float64(radius)
	fitted := ShrinkToFit(familyMeasurer{fam: fam, bold: true}, spec.TextSizePx, span, span, spec.Fit)
	face := fam.Face(fitted, true)

	stroke := max(float32(2), float32(radius)/8)
	for i, label := range labels {
		row, col := i/cols, i%cols

		cx := float32(col*cell) + float32(cell)/2
		cy := float32(row*cell) + float32(cell)/2
		strokeCircle(dst, cx, cy, float32(radius), stroke)

		drawCenteredString(dst, face, label,
			fixed.I(col*cell)+fixed.I(cell)/2,
			fixed.I(row*cell)+fixed.I(cell)/2)
	}
	return dst
}

// RoundedSpec configures a grid of labeled rounded boxes.
type RoundedSpec struct {
	Columns        int
	BoxWidthPx     int
	BoxHeightPx    int
	CornerRadiusPx int
	TextSizePx     float64
	// PaddingPx insets the text fit span from the box edge. Defaults to 4.
	PaddingPx int
	Fit       FitConfig
}

func (s RoundedSpec) clamped() RoundedSpec {
	if s.Columns < 1 {
		s.Columns = 1
	}
	if s.BoxWidthPx < 20 {
		s.BoxWidthPx = 20
	}
	if s.BoxHeightPx < 20 {
		s.BoxHeightPx = 20
	}
	if s.CornerRadiusPx < 2 {
		s.CornerRadiusPx = 2
	}
	if s.TextSizePx < 6 {
		s.TextSizePx = 6
	}
	if s.PaddingPx <= 0 {
		s.PaddingPx = 4
	}
	return s
}

// RoundedGrid renders the labels as a row-major grid of stroked rounded
// rectangles, each inset 1px from its cell boundary, with the label text
// fitted against the box interior minus padding.
func RoundedGrid(labels []string, spec RoundedSpec, fam *font.Family) image.Image {
	if len(labels) == 0 {
		return nil
	}
	spec = spec.clamped()

	cols, rows := gridDims(len(labels), spec.Columns)
	boxW, boxH := spec.BoxWidthPx, spec.BoxHeightPx

	dst := newCanvas(cols*boxW, rows*boxH)

	maxW := float64(boxW - 2*spec.PaddingPx)
	maxH := float64(boxH - 2*spec.PaddingPx)
	fitted := ShrinkToFit(familyMeasurer{fam: fam, bold: true}, spec.TextSizePx, maxW, maxH, spec.Fit)
	face := fam.Face(fitted, true)

	for i, label := range labels {
		row, col := i/cols, i%cols

		left, top := float32(col*boxW), float32(row*boxH)
		strokeRoundedRect(dst, left+1, top+1, left+float32(boxW)-1, top+float32(boxH)-1,
			float32(spec.CornerRadiusPx), 2)

		drawCenteredString(dst, face, label,
			fixed.I(col*boxW)+fixed.I(boxW)/2,
			fixed.I(row*boxH)+fixed.I(boxH)/2)
	}
	return dst
}

func newCanvas(w, h int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return dst
}
