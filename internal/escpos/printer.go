// Package escpos drives 58mm thermal printers over the ESC/POS raster
// protocol. Images always go out as height-bounded GS v 0 stripes with a
// short pause in between: the target devices have small receive buffers,
// and a single oversized raster command truncates the tail of the printed
// image or trips a device buffer error.
package escpos

import (
	"errors"
	"fmt"
	"image"
	"io"
	"sync/atomic"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/grodrigues/termprint/internal/bitmap"
	"github.com/grodrigues/termprint/internal/raster"
)

// A Transport carries bytes to the physical printer. Write blocks until the
// bytes are handed to the underlying connection; Flush pushes any buffered
// bytes out before the next stripe is framed.
type Transport interface {
	io.Writer
	Flush() error
}

// Config holds the pipeline tunables. The defaults match a 58mm thermal
// head; other hardware may need different values, which is why none of
// these are constants.
type Config struct {
	// MaxPrintWidthPx is the dot width of the thermal head. Defaults to
	// 384 (58mm paper).
	MaxPrintWidthPx int
	// MaxStripeHeightPx bounds the height of each raster stripe. Defaults
	// to raster.DefaultStripeHeight.
	MaxStripeHeightPx int
	// Threshold is the luminance below which a pixel is marked. Defaults
	// to 128.
	Threshold byte
	// InterStripePause is slept between stripes so the device's buffer
	// drains. It may be tuned but not removed: it is the only backpressure
	// mechanism the protocol has. Defaults to 20ms.
	InterStripePause time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxPrintWidthPx <= 0 {
		c.MaxPrintWidthPx = 384
	}
	if c.MaxStripeHeightPx <= 0 {
		c.MaxStripeHeightPx = raster.DefaultStripeHeight
	}
	if c.Threshold == 0 {
		c.Threshold = 128
	}
	if c.InterStripePause <= 0 {
		c.InterStripePause = 20 * time.Millisecond
	}
	return c
}

// ErrNotReady is returned when an operation needs an initialized session.
var ErrNotReady = errors.New("printer session not ready: reset the device first")

// ErrAborted is returned by EmitRaster when Abort stops the stripe loop.
var ErrAborted = errors.New("print aborted")

var cp437 = encoding.ReplaceUnsupported(charmap.CodePage437.NewEncoder())

// A Printer drives one device over one transport. Apart from Abort it is
// not safe for concurrent use; serialize jobs through a single worker (see
// the jobs package) so stripes from different jobs never interleave.
type Printer struct {
	t     Transport
	cfg   Config
	state SessionState

	aborted atomic.Bool
	sleep   func(time.Duration)
}

// New creates a Printer over the given transport. The session starts
// uninitialized: call Reset or BeginJob before printing.
func New(t Transport, cfg Config) *Printer {
	return &Printer{t: t, cfg: cfg.withDefaults(), sleep: time.Sleep}
}

// Abort asks an in-flight EmitRaster to stop before its next stripe. It is
// the one method safe to call from another goroutine. The abort is sticky
// until the next Reset, so a canceled job cannot be followed by more output
// until the device is back in a known state.
func (p *Printer) Abort() {
	p.aborted.Store(true)
}

// Config returns the printer's effective configuration.
func (p *Printer) Config() Config { return p.cfg }

// State returns the current session state.
func (p *Printer) State() SessionState { return p.state }

func (p *Printer) writeRaw(stage string, data []byte) error {
	if _, err := p.t.Write(data); err != nil {
		p.state = StateUninitialized
		return fmt.Errorf("%s: write: %w", stage, err)
	}
	if err := p.t.Flush(); err != nil {
		p.state = StateUninitialized
		return fmt.Errorf("%s: flush: %w", stage, err)
	}
	return nil
}

func (p *Printer) ensureReady(stage string) error {
	if p.state != StateReady {
		return fmt.Errorf("%s: %w (session %s)", stage, ErrNotReady, p.state)
	}
	return nil
}

// Reset issues ESC @, clearing device styles and buffered state and moving
// the session to Ready. It is the only operation valid on an uninitialized
// session, and doubles as the cancellation path: after abandoning a job,
// reset before printing again.
func (p *Printer) Reset() error {
	if err := p.writeRaw("reset", initPrinter()); err != nil {
		return err
	}
	p.aborted.Store(false)
	p.state = StateReady
	return nil
}

// Feed advances the paper by n lines.
func (p *Printer) Feed(n int) error {
	if err := p.ensureReady("feed"); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := p.writeRaw("feed", []byte{lf}); err != nil {
			return err
		}
	}
	return nil
}

// SetAlign sets horizontal justification for subsequent output.
func (p *Printer) SetAlign(a Align) error {
	if err := p.ensureReady("set align"); err != nil {
		return err
	}
	return p.writeRaw("set align", setAlign(a))
}

// SetScale sets the text magnification.
func (p *Printer) SetScale(s Scale) error {
	if err := p.ensureReady("set scale"); err != nil {
		return err
	}
	return p.writeRaw("set scale", setTextSize(s.sizeByte()))
}

// SetBold switches bold text on or off.
func (p *Printer) SetBold(on bool) error {
	if err := p.ensureReady("set bold"); err != nil {
		return err
	}
	return p.writeRaw("set bold", setBold(on))
}

// PartialCut triggers the guillotine where one exists. Printers without a
// cutter ignore the command.
func (p *Printer) PartialCut() error {
	if err := p.ensureReady("partial cut"); err != nil {
		return err
	}
	return p.writeRaw("partial cut", partialCut())
}

// PrintLine prints one CP437-encoded text line. The command order (align,
// size, bold, text) is load-bearing: some embedded printers apply styles
// only when set in that order. Scaled text is always bolded.
func (p *Printer) PrintLine(text string, a Align, s Scale) error {
	if err := p.ensureReady("print line"); err != nil {
		return err
	}
	if err := p.writeRaw("print line", setAlign(a)); err != nil {
		return err
	}
	if err := p.writeRaw("print line", setTextSize(s.sizeByte())); err != nil {
		return err
	}
	if err := p.writeRaw("print line", setBold(s != ScaleNormal)); err != nil {
		return err
	}
	encoded, err := cp437.String(text + "\n")
	if err != nil {
		return fmt.Errorf("print line: encode: %w", err)
	}
	return p.writeRaw("print line", []byte(encoded))
}

// BeginJob puts the device into a known state: reset, left-aligned, normal
// size, bold off.
func (p *Printer) BeginJob() error {
	if err := p.Reset(); err != nil {
		return err
	}
	if err := p.SetBold(false); err != nil {
		return err
	}
	if err := p.SetScale(ScaleNormal); err != nil {
		return err
	}
	return p.SetAlign(AlignLeft)
}

// EndJob feeds the printed block clear of the tear bar and returns styles
// to neutral. Cutting stays a separate, explicit PartialCut call.
func (p *Printer) EndJob() error {
	if err := p.Feed(2); err != nil {
		return err
	}
	if err := p.SetBold(false); err != nil {
		return err
	}
	if err := p.SetScale(ScaleNormal); err != nil {
		return err
	}
	return p.SetAlign(AlignLeft)
}

// EmitRaster transmits a packed raster as a sequence of framed stripes,
// flushing each stripe and pausing between stripes so the device buffer
// drains. An Abort is honored between stripes: the remaining frames are
// dropped and the session falls back to uninitialized, the same as on a
// transport failure; a stripe already on the wire is never truncated.
// Errors name the failing stripe and its byte offset into the raster so the
// caller can decide whether to resend. A line feed after the last stripe
// separates the rendered block from whatever prints next.
func (p *Printer) EmitRaster(d *raster.Data) error {
	if err := p.ensureReady("emit raster"); err != nil {
		return err
	}
	p.state = StatePrinting

	stripes := d.Slice(p.cfg.MaxStripeHeightPx)
	offset := 0
	for i, s := range stripes {
		if p.aborted.Load() {
			p.state = StateUninitialized
			return fmt.Errorf("raster stripe %d/%d at byte offset %d: %w", i+1, len(stripes), offset, ErrAborted)
		}

		stage := fmt.Sprintf("raster stripe %d/%d at byte offset %d", i+1, len(stripes), offset)
		if err := p.writeRaw(stage+": header", rasterHeader(s.BytesPerRow(), s.Height())); err != nil {
			return err
		}
		if err := p.writeRaw(stage+": body", s.Bytes()); err != nil {
			return err
		}
		offset += len(s.Bytes())

		if i < len(stripes)-1 {
			p.sleep(p.cfg.InterStripePause)
		}
	}

	p.state = StateReady
	return p.Feed(1)
}

// PrintImage runs the full pipeline for one bitmap: scale to the print
// width, binarize, pack and emit as stripes. Generated layouts take this
// exact path; there is no special-case route to the device.
func (p *Printer) PrintImage(img image.Image) error {
	mono := bitmap.ScaleAndBinarize(img, p.cfg.MaxPrintWidthPx, p.cfg.Threshold)
	return p.EmitRaster(raster.Pack(mono))
}
