package editscene

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action  string   `yaml:"action"`
	X       float64  `yaml:"x,omitempty"`
	Y       float64  `yaml:"y,omitempty"`
	FromX   float64  `yaml:"fromX,omitempty"`
	FromY   float64  `yaml:"fromY,omitempty"`
	ToX     float64  `yaml:"toX,omitempty"`
	ToY     float64  `yaml:"toY,omitempty"`
	Frames  int      `yaml:"frames,omitempty"`
	Button  string   `yaml:"button,omitempty"`
	Key     string   `yaml:"key,omitempty"`
	Mods    []string `yaml:"mods,omitempty"`
	Delta   float64  `yaml:"delta,omitempty"`
	Percent float64  `yaml:"percent,omitempty"`
	Label   string   `yaml:"label,omitempty"`
}

// testScript is the top-level structure for a test script.
type testScript struct {
	Steps []testStep `yaml:"steps"`
}

// TestRunner sequences injected input events across frames for scripted
// editor sessions. Attach to a Scene via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

var (
	keyNames = map[string]Key{
		"left":   KeyLeft,
		"right":  KeyRight,
		"up":     KeyUp,
		"down":   KeyDown,
		"shift":  KeyShift,
		"delete": KeyDelete,
		"escape": KeyEscape,
	}
	modNames = map[string]KeyModifiers{
		"shift": ModShift,
		"ctrl":  ModCtrl,
		"alt":   ModAlt,
		"meta":  ModMeta,
	}
	buttonNames = map[string]MouseButton{
		"":       MouseButtonLeft,
		"left":   MouseButtonLeft,
		"right":  MouseButtonRight,
		"middle": MouseButtonMiddle,
	}
)

// LoadTestScript parses a test script and returns a TestRunner ready to be
// attached to a Scene via SetTestRunner. The script may be JSON or YAML.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var script testScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	var errs criterio.FieldErrorsBuilder
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			errs = errs.Append(fmt.Sprintf("steps[%d]", i), err)
		}
	}
	if err := errs.ToError(); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	return &TestRunner{steps: script.Steps}, nil
}

func (st testStep) validate() error {
	switch st.Action {
	case "click", "drag", "press", "move", "release", "wheel", "zoom", "wait", "screenshot":
	case "key":
		if _, ok := keyNames[strings.ToLower(st.Key)]; !ok {
			return fmt.Errorf("unknown key %q", st.Key)
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	if _, ok := buttonNames[strings.ToLower(st.Button)]; !ok {
		return fmt.Errorf("unknown button %q", st.Button)
	}
	for _, m := range st.Mods {
		if _, ok := modNames[strings.ToLower(m)]; !ok {
			return fmt.Errorf("unknown modifier %q", m)
		}
	}
	return nil
}

func (st testStep) modifiers() KeyModifiers {
	var mods KeyModifiers
	for _, m := range st.Mods {
		mods |= modNames[strings.ToLower(m)]
	}
	return mods
}

// SetTestRunner attaches a TestRunner to the scene. The runner's step
// method is called from Scene.Tick before injected input is processed.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Scene.Tick.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	mods := st.modifiers()
	button := buttonNames[strings.ToLower(st.Button)]

	switch st.Action {
	case "click":
		s.InjectButtonPress(st.X, st.Y, button, mods)
		s.InjectButtonRelease(st.X, st.Y, button, mods)
	case "press":
		s.InjectButtonPress(st.X, st.Y, button, mods)
	case "move":
		s.InjectMoveMods(st.X, st.Y, mods)
	case "release":
		s.InjectButtonRelease(st.X, st.Y, button, mods)
	case "drag":
		s.InjectButtonDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames, button, mods)
	case "key":
		s.InjectKey(keyNames[strings.ToLower(st.Key)], mods)
	case "wheel":
		s.InjectWheel(st.X, st.Y, st.Delta, mods)
	case "zoom":
		s.SetZoomPercent(st.Percent)
	case "screenshot":
		s.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
