// Package raster packs 1-bit bitmaps into the byte layout used by the
// printer's raster command and slices them into height-bounded stripes.
package raster

import (
	"github.com/grodrigues/termprint/internal/bitmap"
)

// DefaultStripeHeight bounds stripe height when the caller passes a
// non-positive limit. Values between 64 and 128 rows stay comfortably under
// the receive buffer of common 58mm printers.
const DefaultStripeHeight = 64

// Data is a packed 1bpp raster: 8 pixels per byte, most significant bit
// leftmost, bit 1 = mark. Rows whose width is not a multiple of 8 have the
// low bits of their final byte zero-padded.
type Data struct {
	width, height, bytesPerRow int
	data                       []byte
}

// Pack serializes a 1-bit bitmap into packed raster bytes. It is pure: the
// same bitmap always yields byte-identical output.
func Pack(mono *bitmap.Image) *Data {
	width, height := mono.Bounds().Dx(), mono.Bounds().Dy()
	bytesPerRow := (width + 7) / 8
	data := make([]byte, bytesPerRow*height)

	origin := mono.Bounds().Min
	idx := 0
	for y := 0; y < height; y++ {
		bitPos := 0
		var current byte
		for x := 0; x < width; x++ {
			current <<= 1
			if mono.MarkAt(origin.X+x, origin.Y+y) {
				current |= 0x01
			}
			bitPos++
			if bitPos == 8 {
				data[idx] = current
				idx++
				bitPos, current = 0, 0
			}
		}
		if bitPos != 0 {
			// Shift the partial byte so the leftmost pixel lands on the
			// most significant bit; the padding bits stay unmarked.
			current <<= 8 - bitPos
			data[idx] = current
			idx++
		}
	}

	return &Data{width: width, height: height, bytesPerRow: bytesPerRow, data: data}
}

// Width returns the raster width in pixels.
func (d *Data) Width() int { return d.width }

// Height returns the raster height in pixels.
func (d *Data) Height() int { return d.height }

// BytesPerRow returns the packed row width: ceil(width/8).
func (d *Data) BytesPerRow() int { return d.bytesPerRow }

// Bytes returns the packed buffer of length BytesPerRow()*Height().
func (d *Data) Bytes() []byte { return d.data }

// BitAt reports whether the pixel at (x, y) is marked, using the documented
// MSB-first bit order.
func (d *Data) BitAt(x, y int) bool {
	b := d.data[y*d.bytesPerRow+x/8]
	return b>>(7-x%8)&1 == 1
}

// A Stripe is a horizontal slice of a raster, short enough to transmit as a
// single command without overflowing the printer's receive buffer.
type Stripe struct {
	width, height, bytesPerRow int
	data                       []byte
}

// Width returns the stripe width in pixels.
func (s *Stripe) Width() int { return s.width }

// Height returns the stripe height in pixels.
func (s *Stripe) Height() int { return s.height }

// BytesPerRow returns the packed row width, identical to the parent raster's.
func (s *Stripe) BytesPerRow() int { return s.bytesPerRow }

// Bytes returns the stripe's packed bytes.
func (s *Stripe) Bytes() []byte { return s.data }

// Slice splits the raster into ceil(height/maxStripeHeightPx) stripes. Every
// stripe except possibly the last is exactly maxStripeHeightPx tall;
// concatenating the stripe bodies in order reproduces the raster buffer
// byte-exactly. Sending one oversized raster command can silently truncate
// the printed image or trip a device buffer overflow, so tall rasters must
// always go out as stripes.
func (d *Data) Slice(maxStripeHeightPx int) []Stripe {
	if maxStripeHeightPx < 1 {
		maxStripeHeightPx = DefaultStripeHeight
	}
	if d.height == 0 {
		return nil
	}

	count := (d.height + maxStripeHeightPx - 1) / maxStripeHeightPx
	stripes := make([]Stripe, count)
	for i := 0; i < count; i++ {
		startRow := i * maxStripeHeightPx
		h := min(maxStripeHeightPx, d.height-startRow)

		buf := make([]byte, h*d.bytesPerRow)
		copy(buf, d.data[startRow*d.bytesPerRow:])

		stripes[i] = Stripe{width: d.width, height: h, bytesPerRow: d.bytesPerRow, data: buf}
	}
	return stripes
}
