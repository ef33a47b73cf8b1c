package jobs

import (
	"bytes"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/grodrigues/termprint/internal/bitmap"
	"github.com/grodrigues/termprint/internal/escpos"
	"github.com/grodrigues/termprint/internal/raster"
)

type bufferTransport struct {
	bytes.Buffer
}

func (t *bufferTransport) Flush() error { return nil }

func newTestQueue() (*Queue, *bufferTransport) {
	tr := &bufferTransport{}
	p := escpos.New(tr, escpos.Config{InterStripePause: time.Nanosecond})
	return NewQueue(p), tr
}

func TestJobsRunInSubmissionOrder(t *testing.T) {
	q, _ := newTestQueue()
	defer q.Close()

	var order []int
	results := make([]<-chan error, 0, 5)
	for i := 0; i < 5; i++ {
		i := i
		results = append(results, q.Submit(func(p *escpos.Printer) error {
			order = append(order, i)
			return nil
		}))
	}
	for _, r := range results {
		if err := <-r; err != nil {
			t.Fatal(err)
		}
	}

	for i, got := range order {
		if got != i {
			t.Fatalf("jobs ran in order %v", order)
		}
	}
}

func TestPrintSurfacesJobError(t *testing.T) {
	q, _ := newTestQueue()
	defer q.Close()

	want := errors.New("out of paper")
	if err := q.Print(func(p *escpos.Printer) error { return want }); !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}

func TestCancelDropsPendingAndResets(t *testing.T) {
	q, tr := newTestQueue()
	defer q.Close()

	// Occupy the worker so subsequent submissions stay pending.
	release := make(chan struct{})
	running := q.Submit(func(p *escpos.Printer) error {
		<-release
		return nil
	})

	pending := q.Submit(func(p *escpos.Printer) error {
		t.Error("canceled job must not run")
		return nil
	})

	done := make(chan error, 1)
	go func() { done <- q.Cancel() }()

	if err := <-pending; !errors.Is(err, ErrCanceled) {
		t.Fatalf("pending job err = %v, want ErrCanceled", err)
	}

	// The running job is never interrupted.
	close(release)
	if err := <-running; err != nil {
		t.Fatal(err)
	}
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	if !bytes.Contains(tr.Bytes(), []byte{0x1B, 0x40}) {
		t.Error("cancel should reset the device")
	}
}

// stallTransport blocks its stallAt-th write until released, so a test can
// cancel while a stripe is on the wire.
type stallTransport struct {
	bytes.Buffer
	writes  int
	stallAt int
	reached chan struct{}
	release chan struct{}
}

func (t *stallTransport) Write(p []byte) (int, error) {
	t.writes++
	if t.writes == t.stallAt {
		close(t.reached)
		<-t.release
	}
	return t.Buffer.Write(p)
}

func (t *stallTransport) Flush() error { return nil }

func TestCancelAbortsInFlightRaster(t *testing.T) {
	tr := &stallTransport{stallAt: 6, reached: make(chan struct{}), release: make(chan struct{})}
	p := escpos.New(tr, escpos.Config{MaxStripeHeightPx: 1, InterStripePause: time.Nanosecond})
	q := NewQueue(p)
	defer q.Close()

	// 100 stripes; the transport stalls on stripe 3's header.
	mono := bitmap.New(image.Rect(0, 0, 8, 100))
	running := q.Submit(func(p *escpos.Printer) error {
		if err := p.Reset(); err != nil {
			return err
		}
		return p.EmitRaster(raster.Pack(mono))
	})
	<-tr.reached

	pending := q.Submit(func(p *escpos.Printer) error {
		t.Error("canceled job must not run")
		return nil
	})
	done := make(chan error, 1)
	go func() { done <- q.Cancel() }()

	// Cancel aborts the device before draining, so once the pending job has
	// been rejected the in-flight raster is guaranteed to see the abort.
	if err := <-pending; !errors.Is(err, ErrCanceled) {
		t.Fatalf("pending job err = %v, want ErrCanceled", err)
	}
	close(tr.release)

	if err := <-running; !errors.Is(err, escpos.ErrAborted) {
		t.Fatalf("in-flight job err = %v, want ErrAborted", err)
	}
	if err := <-done; err != nil {
		t.Fatal(err)
	}

	// Stripe 3 finishes (its header was already on the wire) and the loop
	// stops: 1 reset + 3 stripes + the cancel reset. A full print would be
	// 201 writes.
	if tr.writes > 8 {
		t.Errorf("writes after cancel = %v, want the emitter to stop before the next stripe", tr.writes)
	}
	if !bytes.HasSuffix(tr.Bytes(), []byte{0x1B, 0x40}) {
		t.Error("the cancel reset should be the last thing on the wire")
	}
}
