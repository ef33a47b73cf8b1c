package bitmap

import (
	"image"
	"image/color"
)

// ColorModel is the default color model for bitmaps.
var ColorModel color.Model = ThresholdColorModel(128)

type thresholdModel byte

func (t thresholdModel) Convert(c color.Color) color.Color {
	return model(color.GrayModel.Convert(c).(color.Gray), byte(t))
}

// ThresholdColorModel returns a color model with the given threshold.
func ThresholdColorModel(threshold byte) color.Model {
	return thresholdModel(threshold)
}

func model(c color.Gray, threshold byte) color.Color {
	if c.Y >= threshold {
		return color.White
	}
	return color.Black
}

// An Image is a 1-bit image. A marked pixel is a dot the thermal head will
// burn, rendered black.
type Image struct {
	src       *image.Gray
	threshold byte
}

// New creates a new Image with the given bounds.
func New(r image.Rectangle) *Image {
	return NewThreshold(r, 128)
}

// NewThreshold creates a new Image with the given bounds and threshold.
func NewThreshold(r image.Rectangle, threshold byte) *Image {
	src := image.NewGray(r)
	// Blank paper: every pixel starts unmarked.
	for i := range src.Pix {
		src.Pix[i] = 0xFF
	}
	return &Image{src: src, threshold: threshold}
}

// ColorModel returns the Image's color model.
func (b *Image) ColorModel() color.Model {
	return ThresholdColorModel(b.threshold)
}

// Bounds returns the domain for which At can return non-zero color.
func (b *Image) Bounds() image.Rectangle {
	return b.src.Bounds()
}

// At returns the color of the pixel at (x, y). Marked pixels return
// color.Black; unmarked pixels return color.White.
func (b *Image) At(x, y int) color.Color {
	return model(b.src.GrayAt(x, y), b.threshold)
}

// MarkAt returns true if the pixel at (x, y) is a mark.
func (b *Image) MarkAt(x, y int) bool {
	return b.src.GrayAt(x, y).Y < b.threshold
}

// Set sets the color of the pixel at (x, y).
func (b *Image) Set(x, y int, c color.Color) {
	b.src.Set(x, y, b.ColorModel().Convert(c))
}

// SetMark marks or clears the pixel at (x, y).
func (b *Image) SetMark(x, y int, v bool) {
	if v {
		b.src.Set(x, y, color.Black)
	} else {
		b.src.Set(x, y, color.White)
	}
}
