package layout

import (
	"image"
	"math"
	"strings"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/grodrigues/termprint/internal/font"
)

// lineSpacing multiplies the face line height when stacking wrapped lines.
const lineSpacing = 1.2

// ParagraphSpec configures a wrapped paragraph inside a rounded frame. The
// font size is fixed: unlike the grids, paragraph text is not auto-shrunk,
// and overflow of individual words is the caller's responsibility.
type ParagraphSpec struct {
	TargetWidthPx  int
	FontSizePx     int
	PaddingPx      int
	CornerRadiusPx int
}

func (s ParagraphSpec) clamped() ParagraphSpec {
	if s.FontSizePx < 6 {
		s.FontSizePx = 6
	}
	if s.PaddingPx < 0 {
		s.PaddingPx = 0
	}
	if s.CornerRadiusPx < 0 {
		s.CornerRadiusPx = 0
	}
	return s
}

// innerWidth returns the wrap width: the target width minus padding on both
// sides, with a floor keeping degenerate configurations printable.
func (s ParagraphSpec) innerWidth() int {
	return max(s.TargetWidthPx-2*s.PaddingPx, 50)
}

// ParagraphBox wraps the text to the spec's inner width and renders it
// inside a stroked rounded-rectangle border. The canvas is exactly
// innerWidth+2*padding wide and wrappedHeight+2*padding tall.
func ParagraphBox(text string, spec ParagraphSpec, fam *font.Family) image.Image {
	spec = spec.clamped()
	face := fam.Face(float64(spec.FontSizePx), false)

	inner := spec.innerWidth()
	lines := wrap(text, face, inner)

	metrics := face.Metrics()
	advance := lineAdvance(metrics)
	textHeight := len(lines) * advance

	w := inner + 2*spec.PaddingPx
	h := textHeight + 2*spec.PaddingPx
	dst := newCanvas(w, h)

	strokeRoundedRect(dst, 0, 0, float32(w), float32(h), float32(spec.CornerRadiusPx), 3)

	for i, line := range lines {
		dot := fixed.Point26_6{
			X: fixed.I(spec.PaddingPx),
			Y: fixed.I(spec.PaddingPx+i*advance) + metrics.Ascent,
		}
		drawString(dst, face, line, dot)
	}
	return dst
}

func lineAdvance(m xfont.Metrics) int {
	return int(math.Round(lineSpacing * float64((m.Ascent + m.Descent).Ceil())))
}

// wrap breaks the text into lines no wider than maxWidthPx using greedy
// word wrapping. Explicit newlines force breaks; a word wider than the wrap
// width gets a line of its own and overflows.
func wrap(text string, face xfont.Face, maxWidthPx int) []string {
	limit := fixed.I(maxWidthPx)

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		line := words[0]
		for _, word := range words[1:] {
			if xfont.MeasureString(face, line+" "+word) <= limit {
				line += " " + word
				continue
			}
			lines = append(lines, line)
			line = word
		}
		lines = append(lines, line)
	}
	return lines
}
