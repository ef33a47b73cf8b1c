// Package code generates QR and Code128 symbols as images ready for the
// raster pipeline.
package code

import (
	"fmt"
	"image"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/qr"
)

// QR encodes data as a medium-error-correction QR symbol scaled to
// sizePx square. Encode failures are resource errors: no partial symbol is
// produced.
func QR(data string, sizePx int) (image.Image, error) {
	c, err := qr.Encode(data, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}
	scaled, err := barcode.Scale(c, sizePx, sizePx)
	if err != nil {
		return nil, fmt.Errorf("qr scale to %dpx: %w", sizePx, err)
	}
	return scaled, nil
}

// Code128 encodes data as a Code128 symbol scaled to widthPx by heightPx.
func Code128(data string, widthPx, heightPx int) (image.Image, error) {
	c, err := code128.Encode(data)
	if err != nil {
		return nil, fmt.Errorf("code128 encode: %w", err)
	}
	scaled, err := barcode.Scale(c, widthPx, heightPx)
	if err != nil {
		return nil, fmt.Errorf("code128 scale to %dx%d: %w", widthPx, heightPx, err)
	}
	return scaled, nil
}
