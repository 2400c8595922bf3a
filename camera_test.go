package editscene

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestCameraDefaults(t *testing.T) {
	cam := newCamera(0.05)
	if cam.Zoom() != 1.0 {
		t.Errorf("Zoom = %f, want 1.0", cam.Zoom())
	}
	if cam.X != 0 || cam.Y != 0 {
		t.Errorf("position = (%d,%d), want origin", cam.X, cam.Y)
	}
}

func TestCameraMapping(t *testing.T) {
	cam := newCamera(0.05)
	cam.X, cam.Y = 100, -50
	cam.setZoom(2)

	p := cam.ScreenToWorld(64, 32)
	if p.X != 132 || p.Y != -34 {
		t.Errorf("ScreenToWorld = %+v, want (132,-34)", p)
	}
	sx, sy := cam.WorldToScreen(132, -34)
	if sx != 64 || sy != 32 {
		t.Errorf("WorldToScreen = (%f,%f), want (64,32)", sx, sy)
	}
}

func TestCameraMappingRoundsEachStep(t *testing.T) {
	cam := newCamera(0.05)
	cam.setZoom(3)
	// 10/3 rounds to 3 world units, which maps back to 9 pixels.
	p := cam.ScreenToWorld(10, 10)
	if p.X != 3 {
		t.Errorf("ScreenToWorld(10) = %d, want 3", p.X)
	}
	sx, _ := cam.WorldToScreen(p.X, p.Y)
	if sx != 9 {
		t.Errorf("round trip = %f, want 9", sx)
	}
}

func TestCameraZoomFloor(t *testing.T) {
	cam := newCamera(0.05)
	cam.setZoom(0.01)
	if cam.Zoom() != 0.05 {
		t.Errorf("Zoom = %f, want floor 0.05", cam.Zoom())
	}
	cam.setZoom(-1)
	if cam.Zoom() != 0.05 {
		t.Errorf("negative zoom = %f, want floor 0.05", cam.Zoom())
	}
	cam.setZoom(40)
	if cam.Zoom() != 40 {
		t.Errorf("Zoom = %f, want 40 (no upper bound)", cam.Zoom())
	}
}

func TestCameraVisibleBounds(t *testing.T) {
	cam := newCamera(0.05)
	cam.X, cam.Y = 10, 20
	cam.setZoom(0.5)
	b := cam.VisibleBounds(800, 600)
	if b.X() != 10 || b.Y() != 20 || b.W() != 1600 || b.H() != 1200 {
		t.Errorf("VisibleBounds = %+v, want (10,20) 1600x1200", b)
	}
}

func TestCameraRectToScreen(t *testing.T) {
	cam := newCamera(0.05)
	cam.X, cam.Y = 100, 100
	cam.setZoom(2)
	r := cam.RectToScreen(NewRect[int64](110, 120, 32, 16))
	if r.X() != 20 || r.Y() != 40 || r.W() != 64 || r.H() != 32 {
		t.Errorf("RectToScreen = %+v", r)
	}
}

func TestCameraScrollTo(t *testing.T) {
	cam := newCamera(0.05)
	cam.ScrollTo(100, -50, 1.0, ease.Linear)
	if !cam.Scrolling() {
		t.Fatal("Scrolling = false after ScrollTo")
	}

	dx, dy := cam.update(0.5)
	if dx != 50 || dy != -25 {
		t.Errorf("half-way delta = (%d,%d), want (50,-25)", dx, dy)
	}
	cam.update(0.6)
	if cam.X != 100 || cam.Y != -50 {
		t.Errorf("end = (%d,%d), want (100,-50)", cam.X, cam.Y)
	}
	if cam.Scrolling() {
		t.Error("Scrolling = true after the tween finished")
	}
}

func TestCameraStopScroll(t *testing.T) {
	cam := newCamera(0.05)
	cam.ScrollTo(100, 100, 1.0, nil)
	cam.StopScroll()
	if dx, dy := cam.update(0.5); dx != 0 || dy != 0 {
		t.Errorf("delta after StopScroll = (%d,%d)", dx, dy)
	}
}

func TestSceneSetZoomAnchorsCursor(t *testing.T) {
	s := NewScene()
	s.SetSize(800, 600)
	s.cursor = cursorPos{x: 200, y: 100, known: true}
	before := s.MapToWorld(200, 100)

	s.SetZoom(2)
	after := s.MapToWorld(200, 100)
	if after != before {
		t.Errorf("world under cursor moved: %+v -> %+v", before, after)
	}

	s.SetZoom(0.5)
	after = s.MapToWorld(200, 100)
	if after != before {
		t.Errorf("world under cursor moved after zoom out: %+v -> %+v", before, after)
	}
}

func TestSceneSetZoomAnchorsCenterWhenCursorOff(t *testing.T) {
	s := NewScene()
	s.SetSize(800, 600)
	s.cursor = cursorPos{x: -10, y: 5000, known: true}
	before := s.MapToWorld(400, 300)

	s.SetZoom(4)
	if after := s.MapToWorld(400, 300); after != before {
		t.Errorf("world at center moved: %+v -> %+v", before, after)
	}
}

func TestSceneZoomHelpers(t *testing.T) {
	s := NewScene()
	s.SetSize(800, 600)
	s.SetZoomPercent(150)
	if !approxEqual(s.Zoom(), 1.5, 1e-9) {
		t.Errorf("Zoom = %f, want 1.5", s.Zoom())
	}
	s.AddZoom(-0.5)
	if !approxEqual(s.ZoomPercent(), 100, 1e-9) {
		t.Errorf("ZoomPercent = %f, want 100", s.ZoomPercent())
	}
	s.MultiplyZoom(0.01)
	if s.Zoom() != s.Config().MinZoom {
		t.Errorf("Zoom = %f, want floor %f", s.Zoom(), s.Config().MinZoom)
	}
}

func TestSceneMoveCameraDragsMarquee(t *testing.T) {
	s := NewScene()
	s.SetSize(800, 600)
	s.input.rectSelect = true
	s.input.old = Point{10, 10}

	s.MoveCameraTo(40, -20)
	if s.Camera().X != 40 || s.Camera().Y != -20 {
		t.Errorf("camera = (%d,%d)", s.Camera().X, s.Camera().Y)
	}
	if s.input.old != (Point{50, -10}) {
		t.Errorf("marquee end = %+v, want (50,-10)", s.input.old)
	}
}

func TestSceneOnScreen(t *testing.T) {
	s := NewScene()
	s.SetSize(100, 50)
	if !s.OnScreen(0, 0) || !s.OnScreen(99, 49) {
		t.Error("corners should be on screen")
	}
	if s.OnScreen(100, 10) || s.OnScreen(-1, 10) {
		t.Error("outside positions reported on screen")
	}
	if s.MouseOnScreen() {
		t.Error("unknown cursor reported on screen")
	}
}
