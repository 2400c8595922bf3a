package editscene

import (
	"errors"
	"strings"
	"testing"

	"github.com/hay-kot/criterio"
)

// scriptErrors flattens err into "field: message" lines.
func scriptErrors(err error) string {
	var fe criterio.FieldErrors
	if !errors.As(err, &fe) {
		return err.Error()
	}
	var lines []string
	for _, f := range fe {
		lines = append(lines, f.Field+": "+f.Err.Error())
	}
	return strings.Join(lines, "\n")
}

func runScript(t *testing.T, s *Scene, r *TestRunner) {
	t.Helper()
	s.SetTestRunner(r)
	for range 1000 {
		if r.Done() && s.PendingInjections() == 0 {
			return
		}
		s.Tick(frame)
	}
	t.Fatal("script did not finish in 1000 ticks")
}

func TestLoadTestScriptJSON(t *testing.T) {
	r, err := LoadTestScript([]byte(`{"steps":[
		{"action":"click","x":10,"y":20},
		{"action":"drag","fromX":0,"fromY":0,"toX":10,"toY":10,"frames":4},
		{"action":"key","key":"Delete","mods":["ctrl"]}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(r.steps) != 3 {
		t.Fatalf("steps = %d, want 3", len(r.steps))
	}
	if r.steps[0].X != 10 || r.steps[0].Y != 20 {
		t.Errorf("click at (%v,%v), want (10,20)", r.steps[0].X, r.steps[0].Y)
	}
	if r.steps[1].ToX != 10 || r.steps[1].Frames != 4 {
		t.Errorf("drag step = %+v", r.steps[1])
	}
	if r.steps[2].modifiers() != ModCtrl {
		t.Errorf("mods = %b, want ctrl", r.steps[2].modifiers())
	}
}

func TestLoadTestScriptYAML(t *testing.T) {
	r, err := LoadTestScript([]byte(`
steps:
  - action: press
    x: 5
    y: 5
    button: middle
    mods: [shift, alt]
  - action: wait
    frames: 2
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(r.steps) != 2 {
		t.Fatalf("steps = %d, want 2", len(r.steps))
	}
	if r.steps[0].Button != "middle" {
		t.Errorf("button = %q, want middle", r.steps[0].Button)
	}
	if got := r.steps[0].modifiers(); got != ModShift|ModAlt {
		t.Errorf("mods = %b, want shift|alt", got)
	}
}

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   []string
	}{
		{"malformed", `{"steps": [`, []string{"parse test script"}},
		{"no steps", `{"steps": []}`, []string{"no steps"}},
		{"unknown action", `{"steps":[{"action":"jump"}]}`, []string{`unknown action "jump"`}},
		{"unknown key", `{"steps":[{"action":"key","key":"F13"}]}`, []string{`unknown key "F13"`}},
		{"unknown button", `{"steps":[{"action":"click","button":"fourth"}]}`, []string{`unknown button "fourth"`}},
		{"unknown modifier", `{"steps":[{"action":"click","mods":["hyper"]}]}`, []string{`unknown modifier "hyper"`}},
		{
			"every bad step reported",
			`{"steps":[{"action":"click"},{"action":"jump"},{"action":"key","key":"nope"}]}`,
			[]string{`steps[1]: unknown action "jump"`, `steps[2]: unknown key "nope"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.script))
			if err == nil {
				t.Fatal("expected error")
			}
			msg := scriptErrors(err)
			for _, want := range tt.want {
				if !strings.Contains(msg, want) {
					t.Errorf("error %q does not contain %q", msg, want)
				}
			}
		})
	}
}

func TestTestRunnerSession(t *testing.T) {
	s := newTestScene()
	a := s.AddRect(100, 100)
	b := s.AddRect(300, 100)

	r, err := LoadTestScript([]byte(`
steps:
  - action: click
    x: 110
    y: 110
  - action: drag
    fromX: 110
    fromY: 110
    toX: 150
    toY: 140
    frames: 4
  - action: click
    x: 310
    y: 110
    mods: [ctrl]
`))
	if err != nil {
		t.Fatal(err)
	}
	runScript(t, s, r)

	if a.X() != 140 || a.Y() != 130 {
		t.Errorf("a at (%d,%d), want (140,130)", a.X(), a.Y())
	}
	if !a.Selected() || !b.Selected() {
		t.Errorf("selected a=%v b=%v, want both", a.Selected(), b.Selected())
	}
}

func TestTestRunnerDragModifiers(t *testing.T) {
	s := newTestScene()
	a := s.AddRect(100, 100)
	b := s.AddRect(200, 100)
	c := s.AddRect(400, 400)
	s.Select(c)

	r, err := LoadTestScript([]byte(`
steps:
  - action: drag
    fromX: 90
    fromY: 90
    toX: 250
    toY: 150
    frames: 3
    mods: [shift]
`))
	if err != nil {
		t.Fatal(err)
	}
	runScript(t, s, r)

	if !a.Selected() || !b.Selected() || !c.Selected() {
		t.Errorf("selected a=%v b=%v c=%v, want shift marquee to add a and b", a.Selected(), b.Selected(), c.Selected())
	}
	if a.X() != 100 || c.X() != 400 {
		t.Errorf("items moved: a.X=%d c.X=%d", a.X(), c.X())
	}
}

func TestTestRunnerDragButton(t *testing.T) {
	s := newTestScene()
	a := s.AddRect(100, 100)
	s.Select(a)
	var menus int
	s.OnContextMenu = func(x, y float64) {
		menus++
		if x != 150 || y != 120 {
			t.Errorf("context menu at (%v,%v), want (150,120)", x, y)
		}
	}

	r, err := LoadTestScript([]byte(`
steps:
  - action: drag
    fromX: 110
    fromY: 110
    toX: 150
    toY: 120
    button: right
`))
	if err != nil {
		t.Fatal(err)
	}
	runScript(t, s, r)

	if menus != 1 {
		t.Errorf("context menu opened %d times, want 1", menus)
	}
	if a.X() != 100 || a.Y() != 100 {
		t.Errorf("right drag moved a to (%d,%d)", a.X(), a.Y())
	}
}

func TestTestRunnerKeyAndZoom(t *testing.T) {
	s := newTestScene()
	it := s.AddRect(0, 0)
	s.Select(it)

	r, err := LoadTestScript([]byte(`{"steps":[
		{"action":"key","key":"delete"},
		{"action":"zoom","percent":200}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	runScript(t, s, r)

	if !it.IsDisposed() {
		t.Error("delete step should destroy the selection")
	}
	if s.Zoom() != 2 {
		t.Errorf("zoom = %v, want 2", s.Zoom())
	}
}

func TestTestRunnerWait(t *testing.T) {
	s := newTestScene()
	it := s.AddRect(0, 0)

	r, err := LoadTestScript([]byte(`{"steps":[
		{"action":"wait","frames":3},
		{"action":"click","x":5,"y":5}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	s.SetTestRunner(r)

	tickN(s, 3)
	if it.Selected() || s.PendingInjections() != 0 {
		t.Fatal("click ran before the wait elapsed")
	}
	s.Tick(frame)
	if !it.Selected() {
		t.Error("click should run on the fourth frame")
	}
	s.Tick(frame)
	s.Tick(frame)
	if !r.Done() {
		t.Error("runner should be done")
	}
}

func TestTestRunnerWheel(t *testing.T) {
	s := newTestScene()
	r, err := LoadTestScript([]byte(`{"steps":[{"action":"wheel","x":10,"y":10,"delta":-1,"mods":["ctrl"]}]}`))
	if err != nil {
		t.Fatal(err)
	}
	runScript(t, s, r)
	if s.Camera().X != s.Config().ScrollStep || s.Camera().Y != 0 {
		t.Errorf("camera = (%d,%d), want (%d,0)", s.Camera().X, s.Camera().Y, s.Config().ScrollStep)
	}
}
