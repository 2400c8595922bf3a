package editscene

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ShowHUD turns on the status overlay.
	ShowHUD   bool
	Resizable bool
}

// gameShell adapts a Scene to ebiten.Game and negotiates window closing
// through Scene.RequestClose.
type gameShell struct {
	scene      *Scene
	retryClose bool
}

// Run opens a window and drives scene until the window is closed. Closing
// the window is deferred while the scene depopulates; the window closes
// once the scene accepts.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 800
	}
	if cfg.Height <= 0 {
		cfg.Height = 600
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetWindowClosingHandled(true)
	scene.SetHUD(cfg.ShowHUD)
	scene.SetSize(cfg.Width, cfg.Height)

	g := &gameShell{scene: scene}
	prev := scene.OnClose
	scene.OnClose = func() {
		if prev != nil {
			prev()
		}
		g.retryClose = true
	}
	return ebiten.RunGame(g)
}

func (g *gameShell) Update() error {
	if ebiten.IsWindowBeingClosed() || g.retryClose {
		g.retryClose = false
		res := g.scene.RequestClose()
		g.scene.log.Debug().Stringer("result", res).Msg("close requested")
		if res == CloseAccept {
			return ebiten.Termination
		}
	}
	g.scene.Update()
	return nil
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *gameShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.SetSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
