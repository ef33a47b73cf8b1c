package main

import (
	"flag"
	"fmt"
	"image"
	"io"
	"log"
	"os"

	"github.com/grodrigues/termprint/internal/escpos"
	"github.com/grodrigues/termprint/internal/jobs"
	"github.com/grodrigues/termprint/internal/transport"
)

// stdoutTransport dumps the command stream to a writer, handy for piping
// straight to a device node or capturing bytes for inspection.
type stdoutTransport struct {
	w io.Writer
}

func (t stdoutTransport) Write(p []byte) (int, error) { return t.w.Write(p) }
func (t stdoutTransport) Flush() error                { return nil }

func main() {
	var port, bluetoothName, filePath, serveAddress, stylePath string
	var baud int
	flag.StringVar(&port, "port", "", "the serial port to use for the printer")
	flag.IntVar(&baud, "baud", 9600, "the baud rate for the serial port")
	flag.StringVar(&bluetoothName, "bluetooth", "", "the advertised name of the bluetooth printer")
	flag.StringVar(&stylePath, "style", "", "the path to the stylesheet, if any")
	flag.StringVar(&filePath, "file", "", "the path to the image to print, if any")
	flag.StringVar(&serveAddress, "serve", "", "the address to serve on, if any")
	flag.Parse()

	if filePath != "" && serveAddress != "" {
		fmt.Fprintf(os.Stderr, "only one of -file and -serve may be specified")
		os.Exit(-1)
	}

	var t escpos.Transport
	switch {
	case port != "":
		s, err := transport.OpenSerial(port, baud)
		if err != nil {
			log.Fatalf("error opening '%v': %v", port, err)
		}
		defer s.Close()
		t = s
	case bluetoothName != "":
		b, err := transport.OpenBluetooth(bluetoothName)
		if err != nil {
			log.Fatalf("error connecting to '%v': %v", bluetoothName, err)
		}
		defer b.Close()
		t = b
	default:
		t = stdoutTransport{w: os.Stdout}
	}

	style := defaultStyle
	if stylePath != "" {
		s, err := loadStylesheet(stylePath)
		if err != nil {
			log.Fatalf("error loading style sheet: %v", err)
		}
		style = s
	}

	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			log.Fatalf("error reading '%v': %v", filePath, err)
		}
		defer f.Close()

		img, _, err := image.Decode(f)
		if err != nil {
			log.Fatalf("error decoding '%v': %v", filePath, err)
		}

		queue := jobs.NewQueue(escpos.New(t, style.config))
		defer queue.Close()
		if err := queue.Print(printBlock(img)); err != nil {
			log.Fatalf("error printing document: %v", err)
		}
	} else {
		if err := serve(serveAddress, style, t); err != nil {
			log.Fatalf("serve error: %v", err)
		}
	}
}
