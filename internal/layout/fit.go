// Package layout renders labeled grids and framed paragraphs as bitmaps
// sized to a fixed print width, shrinking text until it fits its cell.
package layout

// A Measurer returns the pixel bounding box of a string rendered at the
// given size.
type Measurer interface {
	Measure(s string, sizePx float64) (w, h int)
}

// fitReference is the string measured when fitting label text: a pair of
// digits is the widest label content the grids render.
const fitReference = "88"

// FitConfig tunes the shrink-to-fit loop. Both values are policy defaults
// that worked in practice, not protocol constants.
type FitConfig struct {
	// ShrinkFactor scales the candidate size on each iteration. Defaults
	// to 0.9.
	ShrinkFactor float64
	// MinSizePx is the smallest size the loop will return. Once reached it
	// is used even if the text still overflows. Defaults to 6.
	MinSizePx float64
}

func (c FitConfig) withDefaults() FitConfig {
	if c.ShrinkFactor <= 0 || c.ShrinkFactor >= 1 {
		c.ShrinkFactor = 0.9
	}
	if c.MinSizePx <= 0 {
		c.MinSizePx = 6
	}
	return c
}

// ShrinkToFit returns the largest size not exceeding requestedPx at which
// the reference digit pair fits within maxW by maxH, scaling the candidate
// by the shrink factor until it fits or the floor is reached. The floor is
// a best-effort terminal case: it is returned even if it overflows.
func ShrinkToFit(m Measurer, requestedPx, maxW, maxH float64, cfg FitConfig) float64 {
	cfg = cfg.withDefaults()
	size := max(requestedPx, cfg.MinSizePx)
	for {
		w, h := m.Measure(fitReference, size)
		if float64(w) <= maxW && float64(h) <= maxH {
			return size
		}
		size *= cfg.ShrinkFactor
		if size < cfg.MinSizePx {
			return cfg.MinSizePx
		}
	}
}
