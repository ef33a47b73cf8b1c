// Package font manages truetype faces for label and paragraph rendering and
// exposes the pixel measurements the layout engine fits against.
package font

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
)

// A Family is a pair of regular and bold truetype fonts with a cache of
// faces keyed by pixel size. Faces are rendered at 72 DPI so point sizes
// and pixel sizes coincide.
type Family struct {
	regularFont *truetype.Font
	boldFont    *truetype.Font

	mu    sync.Mutex
	sizes map[sizeKey]xfont.Face
}

type sizeKey struct {
	size float64
	bold bool
}

// ParseFamily parses regular and bold font programs into a Family.
func ParseFamily(regular, bold []byte) (*Family, error) {
	regularFont, err := truetype.Parse(regular)
	if err != nil {
		return nil, fmt.Errorf("failed to parse regular font: %w", err)
	}
	boldFont, err := truetype.Parse(bold)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bold font: %w", err)
	}

	return &Family{
		regularFont: regularFont,
		boldFont:    boldFont,
		sizes:       map[sizeKey]xfont.Face{},
	}, nil
}

var defaultFamily = sync.OnceValue(func() *Family {
	f, err := ParseFamily(gomono.TTF, gomonobold.TTF)
	if err != nil {
		panic(fmt.Errorf("failed to parse embedded fonts: %w", err))
	}
	return f
})

// Default returns a family backed by the embedded Go Mono fonts.
func Default() *Family {
	return defaultFamily()
}

// Face returns a face for the given pixel size and weight.
func (f *Family) Face(sizePx float64, bold bool) xfont.Face {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := sizeKey{size: sizePx, bold: bold}
	if face, ok := f.sizes[key]; ok {
		return face
	}

	ttf := f.regularFont
	if bold {
		ttf = f.boldFont
	}
	face := truetype.NewFace(ttf, &truetype.Options{Size: sizePx, DPI: 72})
	f.sizes[key] = face
	return face
}

// Measure returns the tight pixel bounding box of s at the given size and
// weight.
func (f *Family) Measure(s string, sizePx float64, bold bool) (w, h int) {
	b, _ := xfont.BoundString(f.Face(sizePx, bold), s)
	return (b.Max.X - b.Min.X).Ceil(), (b.Max.Y - b.Min.Y).Ceil()
}
