package layout

import (
	"image"
	"image/color"
	"image/draw"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// kappa approximates a quarter circle with a cubic Bézier.
const kappa = 0.5522848

func fillPath(dst draw.Image, c color.Color, build func(z *vector.Rasterizer)) {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	build(z)
	z.Draw(dst, b, image.NewUniform(c), image.Point{})
}

func appendCircle(z *vector.Rasterizer, cx, cy, r float32) {
	if r <= 0 {
		return
	}
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+kappa*r, cx+kappa*r, cy+r, cx, cy+r)
	z.CubeTo(cx-kappa*r, cy+r, cx-r, cy+kappa*r, cx-r, cy)
	z.CubeTo(cx-r, cy-kappa*r, cx-kappa*r, cy-r, cx, cy-r)
	z.CubeTo(cx+kappa*r, cy-r, cx+r, cy-kappa*r, cx+r, cy)
	z.ClosePath()
}

func appendRoundedRect(z *vector.Rasterizer, x0, y0, x1, y1, r float32) {
	if x1 <= x0 || y1 <= y0 {
		return
	}
	r = min(r, (x1-x0)/2, (y1-y0)/2)
	if r < 0 {
		r = 0
	}
	z.MoveTo(x0+r, y0)
	z.LineTo(x1-r, y0)
	z.CubeTo(x1-r+kappa*r, y0, x1, y0+r-kappa*r, x1, y0+r)
	z.LineTo(x1, y1-r)
	z.CubeTo(x1, y1-r+kappa*r, x1-r+kappa*r, y1, x1-r, y1)
	z.LineTo(x0+r, y1)
	z.CubeTo(x0+r-kappa*r, y1, x0, y1-r+kappa*r, x0, y1-r)
	z.LineTo(x0, y0+r)
	z.CubeTo(x0, y0+r-kappa*r, x0+r-kappa*r, y0, x0+r, y0)
	z.ClosePath()
}

// strokeCircle draws a ring: a filled black circle with its interior
// knocked back out to white.
func strokeCircle(dst draw.Image, cx, cy, r, width float32) {
	fillPath(dst, color.Black, func(z *vector.Rasterizer) {
		appendCircle(z, cx, cy, r+width/2)
	})
	fillPath(dst, color.White, func(z *vector.Rasterizer) {
		appendCircle(z, cx, cy, r-width/2)
	})
}

// strokeRoundedRect draws a rounded-rectangle border whose stroke lies
// entirely inside the given rectangle.
func strokeRoundedRect(dst draw.Image, x0, y0, x1, y1, r, width float32) {
	fillPath(dst, color.Black, func(z *vector.Rasterizer) {
		appendRoundedRect(z, x0, y0, x1, y1, r)
	})
	fillPath(dst, color.White, func(z *vector.Rasterizer) {
		appendRoundedRect(z, x0+width, y0+width, x1-width, y1-width, max(r-width, 0))
	})
}

func drawString(dst draw.Image, face xfont.Face, s string, dot fixed.Point26_6) {
	src := image.NewUniform(color.Black)
	prev := rune(-1)
	for _, c := range s {
		if prev >= 0 {
			dot.X += face.Kern(prev, c)
		}
		dr, mask, maskp, advance, ok := face.Glyph(dot, c)
		if !ok {
			continue
		}
		draw.DrawMask(dst, dr, src, image.Point{}, mask, maskp, draw.Over)
		dot.X += advance
		prev = c
	}
}

// drawCenteredString draws s with the center of its bounding box at
// (cx, cy).
func drawCenteredString(dst draw.Image, face xfont.Face, s string, cx, cy fixed.Int26_6) {
	if s == "" {
		return
	}
	b, _ := xfont.BoundString(face, s)
	dot := fixed.Point26_6{
		X: cx - (b.Min.X+b.Max.X)/2,
		Y: cy - (b.Min.Y+b.Max.Y)/2,
	}
	drawString(dst, face, s, dot)
}
