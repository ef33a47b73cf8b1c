package raster

import (
	"bytes"
	"fmt"
	"image"
	"math/rand"
	"testing"

	"github.com/grodrigues/termprint/internal/bitmap"
)

func aRandomBitmap() *bitmap.Image {
	width, height := 1+rand.Intn(400), 1+rand.Intn(400)
	img := bitmap.New(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetMark(x, y, rand.Intn(2) == 1)
		}
	}
	return img
}

func assertRoundTrips(t *testing.T, mono *bitmap.Image, d *Data) {
	t.Helper()

	width, height := mono.Bounds().Dx(), mono.Bounds().Dy()
	if d.Width() != width || d.Height() != height {
		t.Fatalf("dimensions changed: got %dx%d, want %dx%d", d.Width(), d.Height(), width, height)
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if d.BitAt(x, y) != mono.MarkAt(x, y) {
				t.Errorf("bit at (%v, %v) doesn't match: %v vs %v", x, y, d.BitAt(x, y), mono.MarkAt(x, y))
			}
		}
	}
}

func TestPackInvariants(t *testing.T) {
	const testCaseCount = 30

	for i := 0; i < testCaseCount; i++ {
		mono := aRandomBitmap()
		t.Run(fmt.Sprintf("test %v: %dx%d", i, mono.Bounds().Dx(), mono.Bounds().Dy()), func(t *testing.T) {
			d := Pack(mono)

			wantBPR := (mono.Bounds().Dx() + 7) / 8
			if d.BytesPerRow() != wantBPR {
				t.Errorf("bytesPerRow = %v, want %v", d.BytesPerRow(), wantBPR)
			}
			if len(d.Bytes()) != d.BytesPerRow()*d.Height() {
				t.Errorf("buffer length = %v, want %v", len(d.Bytes()), d.BytesPerRow()*d.Height())
			}

			assertRoundTrips(t, mono, d)
		})
	}
}

func TestPackDeterministic(t *testing.T) {
	mono := aRandomBitmap()
	if !bytes.Equal(Pack(mono).Bytes(), Pack(mono).Bytes()) {
		t.Error("packing the same bitmap twice produced different bytes")
	}
}

func TestPackPadsPartialBytes(t *testing.T) {
	// 3 pixels wide: the single row byte carries the pixels in its high
	// bits and zero padding in the low bits.
	mono := bitmap.New(image.Rect(0, 0, 3, 1))
	mono.SetMark(0, 0, true)
	mono.SetMark(2, 0, true)

	d := Pack(mono)
	if d.BytesPerRow() != 1 {
		t.Fatalf("bytesPerRow = %v, want 1", d.BytesPerRow())
	}
	if got := d.Bytes()[0]; got != 0b10100000 {
		t.Errorf("packed byte = %08b, want 10100000", got)
	}
}

func TestPackAllWhite(t *testing.T) {
	// A blank 384x100 page packs to 48*100 zero bytes.
	mono := bitmap.New(image.Rect(0, 0, 384, 100))
	d := Pack(mono)
	if len(d.Bytes()) != 4800 {
		t.Fatalf("buffer length = %v, want 4800", len(d.Bytes()))
	}
	for i, b := range d.Bytes() {
		if b != 0 {
			t.Fatalf("byte %v = %#x, want 0", i, b)
		}
	}
}

func TestSliceLossless(t *testing.T) {
	const testCaseCount = 20

	for i := 0; i < testCaseCount; i++ {
		mono := aRandomBitmap()
		d := Pack(mono)
		maxH := 1 + rand.Intn(d.Height())

		t.Run(fmt.Sprintf("test %v: %dx%d max %d", i, d.Width(), d.Height(), maxH), func(t *testing.T) {
			stripes := d.Slice(maxH)

			wantCount := (d.Height() + maxH - 1) / maxH
			if len(stripes) != wantCount {
				t.Fatalf("stripe count = %v, want %v", len(stripes), wantCount)
			}

			var joined []byte
			total := 0
			for j, s := range stripes {
				if s.Width() != d.Width() || s.BytesPerRow() != d.BytesPerRow() {
					t.Errorf("stripe %v changed shape: %dx%d bpr %d", j, s.Width(), s.Height(), s.BytesPerRow())
				}
				if j < len(stripes)-1 && s.Height() != maxH {
					t.Errorf("stripe %v height = %v, want %v", j, s.Height(), maxH)
				}
				total += s.Height()
				joined = append(joined, s.Bytes()...)
			}
			if total != d.Height() {
				t.Errorf("stripe heights sum to %v, want %v", total, d.Height())
			}
			if !bytes.Equal(joined, d.Bytes()) {
				t.Error("concatenated stripes don't reproduce the source raster")
			}
		})
	}
}

func TestSliceHeights(t *testing.T) {
	mono := bitmap.New(image.Rect(0, 0, 384, 300))
	stripes := Pack(mono).Slice(128)

	heights := make([]int, len(stripes))
	for i, s := range stripes {
		heights[i] = s.Height()
	}
	want := []int{128, 128, 44}
	if len(heights) != len(want) {
		t.Fatalf("stripe heights = %v, want %v", heights, want)
	}
	for i := range want {
		if heights[i] != want[i] {
			t.Fatalf("stripe heights = %v, want %v", heights, want)
		}
	}
}

func TestSliceClampsLimit(t *testing.T) {
	mono := bitmap.New(image.Rect(0, 0, 8, 100))
	stripes := Pack(mono).Slice(0)
	if len(stripes) != 2 {
		t.Errorf("stripe count with clamped limit = %v, want 2", len(stripes))
	}
}
