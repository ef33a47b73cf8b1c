package layout

import (
	"math"
	"testing"
)

// scaledMeasurer reports bounds proportional to the requested size, like a
// real face does for a fixed string.
type scaledMeasurer struct {
	wPerPx, hPerPx float64
}

func (m scaledMeasurer) Measure(s string, sizePx float64) (w, h int) {
	return int(math.Ceil(m.wPerPx * sizePx)), int(math.Ceil(m.hPerPx * sizePx))
}

func TestShrinkToFitAlreadyFits(t *testing.T) {
	got := ShrinkToFit(scaledMeasurer{1, 1}, 24, 100, 100, FitConfig{})
	if got != 24 {
		t.Errorf("size = %v, want the requested 24", got)
	}
}

func TestShrinkToFitShrinks(t *testing.T) {
	// Digit pair measures 2x its size wide: 40px at the requested 20,
	// against a 30px span. 0.9 steps land at 18 (36px, over), 16.2 (33px
	// after ceil, over) and 14.58 (30px, fits).
	got := ShrinkToFit(scaledMeasurer{2, 1}, 20, 30, 30, FitConfig{})
	want := 20 * 0.9 * 0.9 * 0.9
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("size = %v, want %v", got, want)
	}
	w, _ := (scaledMeasurer{2, 1}).Measure(fitReference, got)
	if w > 30 {
		t.Errorf("fitted size still overflows: width %v > 30", w)
	}
}

func TestShrinkToFitFloor(t *testing.T) {
	// Nothing fits in a 1px span; the floor is returned anyway.
	got := ShrinkToFit(scaledMeasurer{2, 2}, 48, 1, 1, FitConfig{})
	if got != 6 {
		t.Errorf("size = %v, want the 6px floor", got)
	}
}

func TestShrinkToFitBounded(t *testing.T) {
	for _, requested := range []float64{6, 10, 24, 96, 400} {
		got := ShrinkToFit(scaledMeasurer{3, 3}, requested, 12, 12, FitConfig{})
		if got < 6 || got > requested {
			t.Errorf("requested %v: size %v outside [6, %v]", requested, got, requested)
		}
	}
}

func TestShrinkToFitCustomConfig(t *testing.T) {
	cfg := FitConfig{ShrinkFactor: 0.5, MinSizePx: 8}
	got := ShrinkToFit(scaledMeasurer{2, 2}, 32, 1, 1, cfg)
	if got != 8 {
		t.Errorf("size = %v, want the configured 8px floor", got)
	}
}
