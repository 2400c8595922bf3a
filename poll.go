package editscene

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Key repeat timing in ticks, used to synthesize auto-repeat presses from
// polled key state.
const (
	keyRepeatDelay    = 30
	keyRepeatInterval = 3
)

// pollState is the previous frame's polled host state.
type pollState struct {
	x, y    int
	hasPos  bool
	focused bool
}

var polledButtons = [...]struct {
	eb  ebiten.MouseButton
	btn MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonRight, MouseButtonRight},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
}

var polledKeys = [...]struct {
	eb  ebiten.Key
	key Key
}{
	{ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyShift, KeyShift},
	{ebiten.KeyDelete, KeyDelete},
	{ebiten.KeyEscape, KeyEscape},
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// readButtons reads the held mouse buttons.
func readButtons() MouseButtons {
	var held MouseButtons
	for _, b := range polledButtons {
		if ebiten.IsMouseButtonPressed(b.eb) {
			held |= buttonBit(b.btn)
		}
	}
	return held
}

// processInput is called from Scene.Update to turn polled host state into
// handler events: focus changes, presses, motion, releases, wheel steps
// and key transitions, in that order.
func (s *Scene) processInput() {
	p := &s.poll
	if !ebiten.IsFocused() {
		if p.focused {
			p.focused = false
			s.HandleFocusLost()
		}
		return
	}
	p.focused = true

	mods := readModifiers()
	held := readButtons()
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	for _, b := range polledButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			s.HandlePointerPress(PointerEvent{X: x, Y: y, Button: b.btn, Buttons: held, Modifiers: mods})
		}
	}

	if !p.hasPos || mx != p.x || my != p.y {
		s.HandlePointerMove(PointerEvent{X: x, Y: y, Buttons: held, Modifiers: mods})
		p.x, p.y, p.hasPos = mx, my, true
	}

	for _, b := range polledButtons {
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			s.HandlePointerRelease(PointerEvent{X: x, Y: y, Button: b.btn, Buttons: held, Modifiers: mods})
		}
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		s.HandleWheel(WheelEvent{X: x, Y: y, Delta: dy, Modifiers: mods})
	}

	for _, k := range polledKeys {
		switch {
		case inpututil.IsKeyJustPressed(k.eb):
			s.HandleKeyPress(KeyEvent{Key: k.key, Modifiers: mods})
		case inpututil.IsKeyJustReleased(k.eb):
			s.HandleKeyRelease(KeyEvent{Key: k.key, Modifiers: mods})
		case keyRepeats(inpututil.KeyPressDuration(k.eb)):
			s.HandleKeyPress(KeyEvent{Key: k.key, Modifiers: mods, AutoRepeat: true})
		}
	}
}

// keyRepeats reports whether a key held for d ticks fires an auto-repeat
// press on this tick.
func keyRepeats(d int) bool {
	return d > keyRepeatDelay && (d-keyRepeatDelay)%keyRepeatInterval == 0
}
