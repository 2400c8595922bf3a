package editscene

import (
	"testing"
	"time"
)

func TestNewScene(t *testing.T) {
	s := NewScene()
	if s.root == nil {
		t.Fatal("root should not be nil")
	}
	if !s.Root().Empty() {
		t.Error("new scene should be empty")
	}
	if s.Zoom() != 1 {
		t.Errorf("Zoom = %v, want 1", s.Zoom())
	}
	if s.Busy() || s.Aborted() {
		t.Error("new scene should be idle")
	}
	if s.Config() != DefaultConfig() {
		t.Error("NewScene should use DefaultConfig")
	}
}

func TestSceneRoot(t *testing.T) {
	s := NewScene()
	if s.Root() != s.root {
		t.Error("Root() should return the internal root index")
	}
	if s.Root().Owner() != nil {
		t.Error("root index has no owner")
	}
}

func TestSceneSetSize(t *testing.T) {
	s := NewScene()
	s.SetSize(640, 480)
	if w, h := s.Size(); w != 640 || h != 480 {
		t.Errorf("Size = %dx%d, want 640x480", w, h)
	}
	if b := s.Camera().VisibleBounds(s.Size()); b.W() != 640 || b.H() != 480 {
		t.Errorf("visible bounds = %dx%d", b.W(), b.H())
	}
}

func TestSceneAddRect(t *testing.T) {
	s := NewScene()
	store := &recordingStore{}
	s.SetEntityStore(store)

	it := s.AddRect(10, 20)
	if it.Scene() != s || it.Index() != s.Root() {
		t.Error("AddRect should register the item in the root index")
	}
	if it.W() != s.Config().ItemSize || it.H() != s.Config().ItemSize {
		t.Errorf("size = %dx%d, want configured item size", it.W(), it.H())
	}
	if len(store.events) != 1 {
		t.Fatalf("events = %d, want 1", len(store.events))
	}
	e := store.events[0]
	if e.Type != EventItemAdded || e.ItemID != it.ID() || e.X != 10 || e.Y != 20 {
		t.Errorf("event = %+v", e)
	}
}

func TestSceneAddItem(t *testing.T) {
	s := NewScene()
	it := NewItem(0, 0, 5, 5)
	if !s.AddItem(it) {
		t.Fatal("AddItem should accept a free item")
	}
	if it.Scene() != s {
		t.Error("AddItem should adopt the item")
	}
	if s.AddItem(it) {
		t.Error("AddItem should reject an item indexed twice")
	}
	child := it.NewChild(1, 1, 1, 1)
	if s.AddItem(child) {
		t.Error("AddItem should reject a parented item")
	}
	if s.AddItem(nil) {
		t.Error("AddItem should reject nil")
	}
	if s.Root().Len() != 1 {
		t.Errorf("root len = %d, want 1", s.Root().Len())
	}
}

func TestSceneSetEntityStore(t *testing.T) {
	s := NewScene()
	s.SetEntityStore(nil) // should not panic
	if s.store != nil {
		t.Error("store should be nil")
	}
	s.AddRect(0, 0)
}

func TestSceneSetDebugMode(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	if !s.debug {
		t.Error("debug should be true")
	}
	s.SetDebugMode(false)
	if s.debug {
		t.Error("debug should be false")
	}
}

func TestSceneScrollAnimation(t *testing.T) {
	s := newTestScene()
	s.ScrollCameraTo(100, -50, 0.1, nil)
	if !s.Camera().Scrolling() {
		t.Fatal("expected scroll animation")
	}
	for range 20 {
		s.Tick(10 * time.Millisecond)
	}
	if s.Camera().Scrolling() {
		t.Error("animation should have finished")
	}
	if s.Camera().X != 100 || s.Camera().Y != -50 {
		t.Errorf("camera = (%d,%d), want (100,-50)", s.Camera().X, s.Camera().Y)
	}
}

func TestSceneScrollCarriesDrag(t *testing.T) {
	s := newTestScene()
	it := s.AddRect(100, 100)
	press(s, 110, 110, 0)
	s.ScrollCameraTo(40, 0, 0.05, nil)
	for range 10 {
		s.Tick(10 * time.Millisecond)
	}
	if it.X() != 140 {
		t.Errorf("dragged item X = %d, want 140", it.X())
	}
	release(s, 110, 110, 0)
}

func TestCloseResultString(t *testing.T) {
	tests := map[CloseResult]string{
		CloseAccept:    "accept",
		CloseDefer:     "defer",
		CloseIgnore:    "ignore",
		CloseResult(9): "unknown",
	}
	for r, want := range tests {
		if r.String() != want {
			t.Errorf("%d.String() = %q, want %q", r, r.String(), want)
		}
	}
}

func TestTaskKindString(t *testing.T) {
	if TaskLoading.String() != "loading" || TaskClosing.String() != "closing" || TaskNone.String() != "none" {
		t.Error("unexpected TaskKind names")
	}
}
