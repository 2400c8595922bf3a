package editscene

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandItem            CommandType = iota // item outline over a filled box
	CommandMarquee                            // rubber-band selection overlay
	CommandSelectionBounds                    // selection bounds while dragging
	CommandText                               // status or HUD text
)

// ColorBackground is the surface clear color.
var ColorBackground = Color{0.75, 0.75, 0.75, 1}

// RenderCommand is a single draw instruction in screen space.
type RenderCommand struct {
	Type   CommandType
	Rect   Rect[float64]
	Fill   Color
	Stroke Color
	Text   string
	// Item is set for CommandItem.
	Item *Item
}

const (
	textX = 20
	textY = 20
)

// abortedMessage is shown instead of the content once a task was aborted.
const abortedMessage = "Aborted"

// buildCommands fills s.commands for the current state. A busy scene shows
// only the busy message and an aborted scene only the aborted message.
// Otherwise the viewport is queried with children, items are emitted in
// query order (parents before their children), then the marquee and the
// drag bounds overlays.
func (s *Scene) buildCommands() {
	s.commands = s.commands[:0]

	if s.Busy() {
		s.commands = append(s.commands, textCommand(s.task.message, textX, textY))
		return
	}
	if s.Aborted() {
		s.commands = append(s.commands, textCommand(abortedMessage, textX, textY))
		return
	}

	view := s.camera.VisibleBounds(s.width, s.height)
	s.queryBuf = s.queryItems(view, s.queryBuf[:0], true)
	for _, it := range s.queryBuf {
		stroke := ColorBlack
		if it.selected {
			stroke = ColorGreen
		}
		s.commands = append(s.commands, RenderCommand{
			Type:   CommandItem,
			Rect:   s.camera.RectToScreen(it.AbsRect()),
			Fill:   ColorWhite,
			Stroke: stroke,
			Item:   it,
		})
	}
	clear(s.queryBuf)

	if s.input.rectSelect {
		s.commands = append(s.commands, RenderCommand{
			Type:   CommandMarquee,
			Rect:   s.camera.RectToScreen(s.MarqueeRect()),
			Fill:   ColorGreen.WithAlpha(0.5),
			Stroke: ColorDarkGreen.WithAlpha(0.5),
		})
	}

	if s.input.moveInProcess {
		s.commands = append(s.commands, RenderCommand{
			Type:   CommandSelectionBounds,
			Rect:   s.camera.RectToScreen(s.selectionRect),
			Fill:   ColorRed.WithAlpha(0.2),
			Stroke: ColorDarkRed.WithAlpha(0.2),
		})
	}

	if s.hud {
		s.commands = append(s.commands, textCommand(s.hudText(), 4, 4))
	}
}

func textCommand(msg string, x, y float64) RenderCommand {
	return RenderCommand{Type: CommandText, Rect: NewRect(x, y, 0, 0), Text: msg}
}

// queryItems appends every top-level item touching zone to buf. With
// requireChildren each hit's children touching zone follow it, recursively.
func (s *Scene) queryItems(zone Rect[int64], buf []*Item, requireChildren bool) []*Item {
	var visit func(it *Item) bool
	visit = func(it *Item) bool {
		buf = append(buf, it)
		if requireChildren {
			it.QueryChildren(zone, visit)
		}
		return true
	}
	s.root.Query(zone, visit)
	return buf
}

// QueryItems returns every top-level item touching the world rectangle
// zone, followed by its touching descendants when requireChildren is set.
func (s *Scene) QueryItems(zone Rect[int64], requireChildren bool) []*Item {
	return s.queryItems(zone, nil, requireChildren)
}

// Draw paints the current viewport. Call it from ebiten.Game.Draw.
func (s *Scene) Draw(screen *ebiten.Image) {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.buildCommands()

	if s.debug {
		stats.queryTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		stats.itemCount = countItemCommands(s.commands)
		t0 = time.Now()
	}

	screen.Fill(ColorBackground.toRGBA())
	s.submitCommands(screen)
	s.flushScreenshots(screen)
	s.redraw = false

	if s.debug {
		stats.submitTime = time.Since(t0)
		s.debugLog(stats)
	}
}

// submitCommands draws the command list in order.
func (s *Scene) submitCommands(target *ebiten.Image) {
	for i := range s.commands {
		cmd := &s.commands[i]
		r := cmd.Rect
		switch cmd.Type {
		case CommandText:
			ebitenutil.DebugPrintAt(target, cmd.Text, int(r.X()), int(r.Y()))
		default:
			x, y := float32(r.X()), float32(r.Y())
			w, h := float32(r.W()), float32(r.H())
			vector.DrawFilledRect(target, x, y, w, h, cmd.Fill.toRGBA(), false)
			vector.StrokeRect(target, x, y, w, h, 1, cmd.Stroke.toRGBA(), false)
		}
	}
}
