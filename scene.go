package editscene

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// EventStore is the interface for optional ECS integration.
// When set on a Scene, editor events are forwarded to it.
type EventStore interface {
	EmitEvent(event Event)
}

// Event carries editor event data for the ECS bridge.
type Event struct {
	Type   EventType
	ItemID uint64
	// Item rectangle in world space at the time of the event.
	X, Y, W, H int64
	// Translation, valid for EventMove.
	DeltaX, DeltaY int64
	// Selection size for selection events, inserted item count for
	// EventTaskFinished.
	Count int
	// Task fields (valid for EventTaskStarted, EventTaskFinished)
	Task    TaskKind
	Aborted bool
}

// cursorPos is the last known pointer position on the surface.
type cursorPos struct {
	x, y  float64
	known bool
}

// Scene is the editor surface. It owns the root index of top-level items,
// the selection, the camera, the input state machine and the background
// population task.
//
// All methods must be called from a single interactive goroutine. A running
// background task owns the root index until it hands it back through Tick
// or Wait; while it runs every input handler is a no-op.
type Scene struct {
	root *Index
	cfg  Config

	// Selection
	selection     map[*Item]struct{}
	selectionRect Rect[int64]

	// Camera and surface
	camera        Camera
	width, height int
	cursor        cursorPos

	// Input state
	input inputState
	mover mover
	poll  pollState

	// Background task
	task taskState

	// Render state
	commands  []RenderCommand
	queryBuf  []*Item
	redraw    bool
	hud       bool
	lastCount int

	// Scripted input
	injectQueue []syntheticEvent
	injectHeld  MouseButtons
	testRunner  *TestRunner

	screenshotQueue []string

	store EventStore
	debug bool
	log   zerolog.Logger

	// OnClose is called on the interactive goroutine when depopulation
	// finished and the owning window should retry closing.
	OnClose func()
	// OnContextMenu is called for a right-button release with no other
	// button held, with the surface position of the release.
	OnContextMenu func(x, y float64)
	// OnSelectionChanged is called after an input gesture changed the
	// number of selected items.
	OnSelectionChanged func(count int)
}

// NewScene creates an empty scene with DefaultConfig.
func NewScene() *Scene {
	return NewSceneWithConfig(DefaultConfig())
}

// NewSceneWithConfig creates an empty scene using cfg. Invalid values are
// replaced by their defaults.
func NewSceneWithConfig(cfg Config) *Scene {
	cfg = cfg.withDefaults()
	return &Scene{
		root:      NewIndex(),
		cfg:       cfg,
		selection: make(map[*Item]struct{}),
		camera:    newCamera(cfg.MinZoom),
		mover:     newMover(cfg.ScrollStep, cfg.PanInterval, cfg.FastPanInterval),
		task:      newTaskState(),
		redraw:    true,
		log:       zerolog.Nop(),
	}
}

// Root returns the index of top-level items. It must not be touched while
// the scene is busy.
func (s *Scene) Root() *Index {
	return s.root
}

// Config returns the scene configuration.
func (s *Scene) Config() Config {
	return s.cfg
}

// SetSize sets the surface size in pixels.
func (s *Scene) SetSize(width, height int) {
	if width != s.width || height != s.height {
		s.width, s.height = width, height
		s.requestRedraw()
	}
}

// Size returns the surface size in pixels.
func (s *Scene) Size() (width, height int) {
	return s.width, s.height
}

// AddRect creates a square item of the configured size at the world
// position (x, y), registers it in the root index and returns it.
func (s *Scene) AddRect(x, y int64) *Item {
	it := s.NewItem(x, y, s.cfg.ItemSize, s.cfg.ItemSize)
	s.root.Insert(it)
	s.emitItemEvent(EventItemAdded, it)
	s.requestRedraw()
	return it
}

// NewItem creates an item owned by this scene without indexing it. It
// reads no scene state, so the population worker may call it.
func (s *Scene) NewItem(x, y, w, h int64) *Item {
	it := NewItem(x, y, w, h)
	it.scene = s
	return it
}

// AddItem registers an unparented item in the root index.
func (s *Scene) AddItem(it *Item) bool {
	if it == nil || it.parent != nil {
		return false
	}
	if it.scene == nil {
		it.scene = s
	}
	if !s.root.Insert(it) {
		s.log.Warn().Uint64("item", it.id).Msg("item already indexed")
		return false
	}
	s.emitItemEvent(EventItemAdded, it)
	s.requestRedraw()
	return true
}

// Update polls ebiten input and advances the scene by one tick. Call it
// from ebiten.Game.Update.
func (s *Scene) Update() {
	s.processInput()
	s.Tick(time.Second / time.Duration(ebiten.TPS()))
}

// Tick advances timers by dt: it hands back a finished background task,
// replays scripted input, steps the camera animation and fires the
// continuous-pan timer.
func (s *Scene) Tick(dt time.Duration) {
	s.drainTasks()
	if s.Busy() {
		return
	}

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInjectedInput()

	if dx, dy := s.camera.update(float32(dt.Seconds())); dx != 0 || dy != 0 {
		s.moveCameraUpdMouse(dx, dy)
		s.requestRedraw()
	}
	s.tickMover(dt)
}

// requestRedraw marks the surface as needing a repaint.
func (s *Scene) requestRedraw() {
	s.redraw = true
}

// NeedsRedraw reports whether something changed since the last Draw.
func (s *Scene) NeedsRedraw() bool {
	return s.redraw
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EventStore) {
	s.store = store
}

// SetLogger sets the logger used for diagnostics.
func (s *Scene) SetLogger(l zerolog.Logger) {
	s.log = l
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-item
// access panics, tree depth and child count warnings are logged, selection
// invariants are checked after every gesture, and per-frame render stats are
// logged. A scene without a logger gets a console logger on stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	if enabled && s.log.GetLevel() == zerolog.Disabled {
		s.log = newDebugLogger()
	}
}

// SetHUD enables or disables the status overlay.
func (s *Scene) SetHUD(enabled bool) {
	s.hud = enabled
	s.requestRedraw()
}

// emitItemEvent forwards an item event to the ECS bridge.
func (s *Scene) emitItemEvent(typ EventType, it *Item) {
	if s.store == nil {
		return
	}
	r := it.AbsRect()
	s.store.EmitEvent(Event{
		Type:   typ,
		ItemID: it.id,
		X:      r.X(), Y: r.Y(), W: r.W(), H: r.H(),
		Count: len(s.selection),
	})
}

func (s *Scene) emitEvent(e Event) {
	if s.store != nil {
		s.store.EmitEvent(e)
	}
}

// notifySelection calls OnSelectionChanged if the selection size changed
// since the last notification.
func (s *Scene) notifySelection() {
	n := len(s.selection)
	if n == s.lastCount {
		return
	}
	s.lastCount = n
	if s.OnSelectionChanged != nil {
		s.OnSelectionChanged(n)
	}
}
