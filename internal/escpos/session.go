package escpos

// SessionState tracks what the device believes about the current
// connection. Raster mode, justification and text styles are device-global,
// so the session must be re-initialized (ESC @) before the first job and
// after any transport failure leaves the device in an unknown state.
type SessionState int

const (
	StateUninitialized SessionState = iota
	StateReady
	StatePrinting
)

func (s SessionState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StatePrinting:
		return "printing"
	default:
		return "unknown"
	}
}
