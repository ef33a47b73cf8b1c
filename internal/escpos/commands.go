package escpos

const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

// Align selects horizontal justification (ESC a n).
type Align byte

const (
	AlignLeft   Align = 0x00
	AlignCenter Align = 0x01
	AlignRight  Align = 0x02
)

// Scale is the friendly text magnification: 0 = normal, 1 = double,
// 3 = triple (where the hardware supports it).
type Scale int

const (
	ScaleNormal Scale = 0
	ScaleDouble Scale = 1
	ScaleTriple Scale = 3
)

// sizeByte maps a Scale to the GS ! n magnification byte. Unknown values
// fall back to normal size.
func (s Scale) sizeByte() byte {
	switch s {
	case ScaleDouble:
		return 0x11
	case ScaleTriple:
		return 0x22
	default:
		return 0x00
	}
}

func initPrinter() []byte {
	return []byte{esc, 0x40}
}

func setAlign(a Align) []byte {
	if a != AlignCenter && a != AlignRight {
		a = AlignLeft
	}
	return []byte{esc, 0x61, byte(a)}
}

func setTextSize(n byte) []byte {
	return []byte{gs, 0x21, n}
}

func setBold(on bool) []byte {
	n := byte(0)
	if on {
		n = 1
	}
	return []byte{esc, 0x45, n}
}

func partialCut() []byte {
	return []byte{gs, 0x56, 0x01}
}

// rasterHeader frames one stripe: GS v 0 m=0 (raster mode, normal) followed
// by the row byte width and stripe height as little-endian 16-bit pairs.
// This layout is the wire contract legacy devices depend on.
func rasterHeader(bytesPerRow, stripeHeight int) []byte {
	return []byte{
		gs, 0x76, 0x30, 0x00,
		byte(bytesPerRow & 0xFF), byte(bytesPerRow >> 8 & 0xFF),
		byte(stripeHeight & 0xFF), byte(stripeHeight >> 8 & 0xFF),
	}
}
