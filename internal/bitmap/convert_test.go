package bitmap

import (
	"image"
	"image/color"
	"testing"
)

func TestScaleAndBinarizeThreshold(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 1))
	src.Set(0, 0, color.RGBA{0, 0, 0, 255})       // mean 0: mark
	src.Set(1, 0, color.RGBA{255, 0, 0, 255})     // mean 85: mark
	src.Set(2, 0, color.RGBA{255, 255, 0, 255})   // mean 170: blank
	src.Set(3, 0, color.RGBA{128, 128, 128, 255}) // mean 128 == threshold: blank

	mono := ScaleAndBinarize(src, 384, 128)
	want := []bool{true, true, false, false}
	for x, w := range want {
		if got := mono.MarkAt(x, 0); got != w {
			t.Errorf("pixel %d: mark = %v, want %v", x, got, w)
		}
	}
}

func TestScaleAndBinarizeKeepsNarrowDimensions(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 100, 40))
	mono := ScaleAndBinarize(src, 384, 128)
	if mono.Bounds() != image.Rect(0, 0, 100, 40) {
		t.Errorf("bounds = %v, want unchanged 100x40", mono.Bounds())
	}
}

func TestScaleAndBinarizeDownscalesWideImages(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 768, 300))
	mono := ScaleAndBinarize(src, 384, 128)
	if mono.Bounds() != image.Rect(0, 0, 384, 150) {
		t.Errorf("bounds = %v, want 384x150 (both axes scaled by 0.5)", mono.Bounds())
	}
}

func TestScaleAndBinarizeZeroSize(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 0, 0))
	mono := ScaleAndBinarize(src, 384, 128)
	if mono.Bounds().Dx() != 0 || mono.Bounds().Dy() != 0 {
		t.Errorf("bounds = %v, want empty", mono.Bounds())
	}
}

func TestScaleAndBinarizeCustomThreshold(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.Set(0, 0, color.RGBA{100, 100, 100, 255})

	if !ScaleAndBinarize(src, 384, 128).MarkAt(0, 0) {
		t.Error("mean 100 should mark under threshold 128")
	}
	if ScaleAndBinarize(src, 384, 64).MarkAt(0, 0) {
		t.Error("mean 100 should stay blank under threshold 64")
	}
}
