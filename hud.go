package editscene

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// hudText returns the status overlay: frame rates, zoom, item and
// selection counts.
func (s *Scene) hudText() string {
	return fmt.Sprintf("FPS: %.1f  TPS: %.1f\nZoom: %.0f%%\nItems: %d  Selected: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		s.ZoomPercent(), s.root.Len(), len(s.selection))
}
