package editscene

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// Palette used by the default item and overlay rendering.
var (
	ColorWhite     = Color{1, 1, 1, 1}
	ColorBlack     = Color{0, 0, 0, 1}
	ColorGreen     = Color{0, 1, 0, 1}
	ColorDarkGreen = Color{0, 0.5, 0, 1}
	ColorRed       = Color{1, 0, 0, 1}
	ColorDarkRed   = Color{0.5, 0, 0, 1}
)

// WithAlpha returns c with its alpha multiplied by a.
func (c Color) WithAlpha(a float64) Color {
	c.A *= a
	return c
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Point is an integer world or screen position.
type Point struct {
	X, Y int64
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonNone   MouseButton = iota // no button changed (pure motion)
	MouseButtonLeft                      // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// MouseButtons is a bitmask of the buttons held down after an event.
type MouseButtons uint8

const (
	ButtonsLeft MouseButtons = 1 << iota
	ButtonsRight
	ButtonsMiddle
)

// Has reports whether b includes every button in other.
func (b MouseButtons) Has(other MouseButtons) bool {
	return b&other == other && other != 0
}

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

func (m KeyModifiers) shift() bool { return m&ModShift != 0 }
func (m KeyModifiers) ctrl() bool  { return m&ModCtrl != 0 }
func (m KeyModifiers) alt() bool   { return m&ModAlt != 0 }

// Key identifies the keys the editor surface reacts to.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyShift
	KeyDelete
	KeyEscape
)

// EventType identifies a kind of editor event forwarded to an EventStore.
type EventType uint8

const (
	EventItemAdded    EventType = iota // an item was created and indexed
	EventSelect                        // an item joined the selection
	EventDeselect                      // an item left the selection
	EventMove                          // the selection was translated
	EventDelete                        // an item was destroyed
	EventTaskStarted                   // a background population task started
	EventTaskFinished                  // a background task handed the index back
)

// CloseResult is the outcome of a surface close request.
type CloseResult uint8

const (
	CloseAccept CloseResult = iota // the surface may close now
	CloseDefer                     // clean-up was started; ask again when it signals
	CloseIgnore                    // a closing task is already running
)

func (r CloseResult) String() string {
	switch r {
	case CloseAccept:
		return "accept"
	case CloseDefer:
		return "defer"
	case CloseIgnore:
		return "ignore"
	default:
		return "unknown"
	}
}
