package bitmap

import (
	"image"

	"github.com/nfnt/resize"
)

// ScaleAndBinarize converts the input image to a 1-bit bitmap no wider than
// maxWidthPx. Images wider than maxWidthPx are downscaled by
// maxWidthPx/width on both axes, preserving the aspect ratio; narrower
// images keep their dimensions. A pixel is marked iff the integer mean of
// its 8-bit R, G and B channels is below threshold.
func ScaleAndBinarize(img image.Image, maxWidthPx int, threshold byte) *Image {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == 0 || h == 0 {
		return NewThreshold(image.Rect(0, 0, w, h), threshold)
	}

	if w > maxWidthPx {
		ratio := float64(maxWidthPx) / float64(w)
		newH := int(float64(h)*ratio + 0.5)
		if newH < 1 {
			newH = 1
		}
		img = resize.Resize(uint(maxWidthPx), uint(newH), img, resize.Bilinear)
		w, h = maxWidthPx, newH
	}

	out := NewThreshold(image.Rect(0, 0, w, h), threshold)
	origin := img.Bounds().Min
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(origin.X+x, origin.Y+y).RGBA()
			lum := (int(r>>8) + int(g>>8) + int(b>>8)) / 3
			out.SetMark(x, y, lum < int(threshold))
		}
	}
	return out
}
