package main

import (
	"encoding/json"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"net/http"
	"time"

	"github.com/grodrigues/termprint/internal/code"
	"github.com/grodrigues/termprint/internal/escpos"
	"github.com/grodrigues/termprint/internal/jobs"
	"github.com/grodrigues/termprint/internal/layout"
)

type server struct {
	style style
	// cfg is the device printer's effective configuration, defaults applied.
	cfg   escpos.Config
	queue *jobs.Queue
}

// run either queues the job for the device or, with ?preview=1, replays it
// against a capture transport and responds with a PNG of the decoded
// raster stream.
func (s *server) run(w http.ResponseWriter, req *http.Request, job jobs.Job) {
	if req.URL.Query().Get("preview") != "" {
		cfg := s.cfg
		cfg.InterStripePause = time.Nanosecond

		cap := &capture{}
		p := escpos.New(cap, cfg)
		if err := job(p); err != nil {
			slog.Error("preview job failed", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Add("Content-Type", "image/png")
		if err := png.Encode(w, decodePreview(cap.Bytes(), p.Config().MaxPrintWidthPx)); err != nil {
			slog.Error("error encoding preview", "err", err)
		}
		return
	}

	if err := s.queue.Print(job); err != nil {
		slog.Error("print job failed", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// printBlock brackets an image print: known device state, centered output,
// trailing feed.
func printBlock(img image.Image) jobs.Job {
	return func(p *escpos.Printer) error {
		if err := p.BeginJob(); err != nil {
			return err
		}
		if err := p.SetAlign(escpos.AlignCenter); err != nil {
			return err
		}
		if err := p.PrintImage(img); err != nil {
			return err
		}
		return p.EndJob()
	}
}

func (s *server) handlePrint(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	img, _, err := image.Decode(req.Body)
	if err != nil {
		slog.Error("error decoding image", "err", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.run(w, req, printBlock(img))
}

func (s *server) handleText(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Text  string `json:"text"`
		Align int    `json:"align"`
		Scale int    `json:"scale"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.run(w, req, func(p *escpos.Printer) error {
		if err := p.BeginJob(); err != nil {
			return err
		}
		if err := p.PrintLine(body.Text, escpos.Align(body.Align), escpos.Scale(body.Scale)); err != nil {
			return err
		}
		return p.EndJob()
	})
}

func (s *server) handleQR(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Data   string `json:"data"`
		SizePx int    `json:"sizePx"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	img, err := code.QR(body.Data, body.SizePx)
	if err != nil {
		slog.Error("error generating qr code", "err", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.run(w, req, printBlock(img))
}

func (s *server) handleCode128(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Data     string `json:"data"`
		WidthPx  int    `json:"widthPx"`
		HeightPx int    `json:"heightPx"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	img, err := code.Code128(body.Data, body.WidthPx, body.HeightPx)
	if err != nil {
		slog.Error("error generating code128", "err", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	s.run(w, req, printBlock(img))
}

func (s *server) handleGrid(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Labels     []string `json:"labels"`
		Columns    int      `json:"columns"`
		RadiusPx   int      `json:"radiusPx"`
		TextSizePx float64  `json:"textSizePx"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	img := layout.CircleGrid(body.Labels, layout.CircleSpec{
		Columns:    body.Columns,
		RadiusPx:   body.RadiusPx,
		TextSizePx: body.TextSizePx,
		Fit:        s.style.fit,
	}, s.style.family)
	if img == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	s.run(w, req, printBlock(img))
}

func (s *server) handleBoxes(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Labels         []string `json:"labels"`
		Columns        int      `json:"columns"`
		BoxWidthPx     int      `json:"boxWidthPx"`
		BoxHeightPx    int      `json:"boxHeightPx"`
		CornerRadiusPx int      `json:"cornerRadiusPx"`
		TextSizePx     float64  `json:"textSizePx"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	img := layout.RoundedGrid(body.Labels, layout.RoundedSpec{
		Columns:        body.Columns,
		BoxWidthPx:     body.BoxWidthPx,
		BoxHeightPx:    body.BoxHeightPx,
		CornerRadiusPx: body.CornerRadiusPx,
		TextSizePx:     body.TextSizePx,
		Fit:            s.style.fit,
	}, s.style.family)
	if img == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	s.run(w, req, printBlock(img))
}

func (s *server) handleParagraph(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Text           string `json:"text"`
		FontSizePx     int    `json:"fontSizePx"`
		PaddingPx      int    `json:"paddingPx"`
		CornerRadiusPx int    `json:"cornerRadiusPx"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	img := layout.ParagraphBox(body.Text, layout.ParagraphSpec{
		TargetWidthPx:  s.cfg.MaxPrintWidthPx,
		FontSizePx:     body.FontSizePx,
		PaddingPx:      body.PaddingPx,
		CornerRadiusPx: body.CornerRadiusPx,
	}, s.style.family)
	s.run(w, req, printBlock(img))
}

func (s *server) handleCancel(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := s.queue.Cancel(); err != nil {
		slog.Error("cancel failed", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func serve(address string, defaultStyle style, t escpos.Transport) error {
	printer := escpos.New(t, defaultStyle.config)
	server := &server{
		style: defaultStyle,
		cfg:   printer.Config(),
		queue: jobs.NewQueue(printer),
	}
	http.HandleFunc("/print", server.handlePrint)
	http.HandleFunc("/text", server.handleText)
	http.HandleFunc("/qr", server.handleQR)
	http.HandleFunc("/code128", server.handleCode128)
	http.HandleFunc("/grid", server.handleGrid)
	http.HandleFunc("/boxes", server.handleBoxes)
	http.HandleFunc("/paragraph", server.handleParagraph)
	http.HandleFunc("/cancel", server.handleCancel)
	return http.ListenAndServe(address, nil)
}
