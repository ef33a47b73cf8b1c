package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	woff "github.com/tdewolff/canvas/font"

	"github.com/grodrigues/termprint/internal/escpos"
	"github.com/grodrigues/termprint/internal/font"
	"github.com/grodrigues/termprint/internal/layout"
	"github.com/grodrigues/termprint/internal/util"
)

type fontSource struct {
	Regular string `json:"regular,omitempty"`
	Bold    string `json:"bold,omitempty"`
}

type styleSheet struct {
	Font               *fontSource `json:"font,omitempty"`
	MaxPrintWidthPx    int         `json:"maxPrintWidthPx,omitempty"`
	MaxStripeHeightPx  int         `json:"maxStripeHeightPx,omitempty"`
	Threshold          int         `json:"threshold,omitempty"`
	InterStripePauseMs int         `json:"interStripePauseMs,omitempty"`
	FontShrinkFactor   float64     `json:"fontShrinkFactor,omitempty"`
	MinFontSizePx      float64     `json:"minFontSizePx,omitempty"`
}

type style struct {
	family *font.Family
	config escpos.Config
	fit    layout.FitConfig
}

var defaultStyle = style{family: font.Default()}

// loadTTF fetches a font program from a file path or URL and converts
// WOFF/WOFF2/OTF containers to SFNT.
func loadTTF(source string) ([]byte, error) {
	var contents []byte
	var err error
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		contents, _, err = util.DownloadFile(source)
	} else {
		contents, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, err
	}
	return woff.ToSFNT(contents)
}

func loadFontFamily(source *fontSource, defaults *font.Family) (*font.Family, error) {
	if source == nil {
		return defaults, nil
	}
	if source.Regular == "" {
		return nil, fmt.Errorf("font must specify a regular typeface")
	}

	regular, err := loadTTF(source.Regular)
	if err != nil {
		return nil, fmt.Errorf("error loading regular typeface: %w", err)
	}

	bold := regular
	if source.Bold != "" {
		if bold, err = loadTTF(source.Bold); err != nil {
			return nil, fmt.Errorf("error loading bold typeface: %w", err)
		}
	}

	return font.ParseFamily(regular, bold)
}

func loadStylesheet(path string) (style, error) {
	f, err := os.Open(path)
	if err != nil {
		return style{}, err
	}
	defer f.Close()

	var sheet styleSheet
	if err = json.NewDecoder(f).Decode(&sheet); err != nil {
		return style{}, err
	}
	if sheet.Threshold < 0 || sheet.Threshold > 255 {
		return style{}, fmt.Errorf("threshold %d is out of range [0, 255]", sheet.Threshold)
	}

	family, err := loadFontFamily(sheet.Font, defaultStyle.family)
	if err != nil {
		return style{}, err
	}

	return style{
		family: family,
		config: escpos.Config{
			MaxPrintWidthPx:   sheet.MaxPrintWidthPx,
			MaxStripeHeightPx: sheet.MaxStripeHeightPx,
			Threshold:         byte(sheet.Threshold),
			InterStripePause:  time.Duration(sheet.InterStripePauseMs) * time.Millisecond,
		},
		fit: layout.FitConfig{
			ShrinkFactor: sheet.FontShrinkFactor,
			MinSizePx:    sheet.MinFontSizePx,
		},
	}, nil
}
