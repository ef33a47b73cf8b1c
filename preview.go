package main

import (
	"bytes"
	"image"
	"image/color"
	"sort"

	"github.com/grodrigues/termprint/internal/bitmap"
)

// A capture is a Transport that records the byte stream a job would have
// sent to the device.
type capture struct {
	bytes.Buffer
}

func (c *capture) Flush() error { return nil }

// feedAdvancePx approximates how far one line feed moves the paper on a
// 203dpi head.
const feedAdvancePx = 24

type previewStripe struct {
	data        []byte
	bytesPerRow int
	height      int
	yOrigin     int
}

// A previewPage is the printed page reconstructed from a captured command
// stream: raster stripe frames are decoded back into pixels, line feeds
// become blank paper, and any other command bytes are skipped. It
// implements image.Image for PNG encoding.
type previewPage struct {
	stripes []previewStripe
	width   int
	height  int
}

// decodePreview parses GS v 0 frames out of the captured stream.
func decodePreview(stream []byte, widthPx int) *previewPage {
	p := &previewPage{width: widthPx}
	for i := 0; i < len(stream); {
		if i+8 <= len(stream) &&
			stream[i] == 0x1D && stream[i+1] == 0x76 && stream[i+2] == 0x30 && stream[i+3] == 0x00 {
			bpr := int(stream[i+4]) | int(stream[i+5])<<8
			h := int(stream[i+6]) | int(stream[i+7])<<8
			if body := i + 8; body+bpr*h <= len(stream) {
				p.stripes = append(p.stripes, previewStripe{
					data:        stream[body : body+bpr*h],
					bytesPerRow: bpr,
					height:      h,
					yOrigin:     p.height,
				})
				p.height += h
				i = body + bpr*h
				continue
			}
		}
		if stream[i] == 0x0A {
			p.height += feedAdvancePx
		}
		i++
	}
	return p
}

func (p *previewPage) ColorModel() color.Model {
	return bitmap.ColorModel
}

func (p *previewPage) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

func (p *previewPage) At(x, y int) color.Color {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return color.White
	}

	i := sort.Search(len(p.stripes), func(i int) bool {
		s := p.stripes[i]
		return s.yOrigin+s.height > y
	})
	if i >= len(p.stripes) {
		return color.White
	}

	s := p.stripes[i]
	y -= s.yOrigin
	if y < 0 || x/8 >= s.bytesPerRow {
		return color.White
	}
	if s.data[y*s.bytesPerRow+x/8]>>(7-x%8)&1 == 1 {
		return color.Black
	}
	return color.White
}
