package stage

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep is one action of an input script.
type scriptStep struct {
	Action string  `yaml:"action"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	FromX  float64 `yaml:"fromX"`
	FromY  float64 `yaml:"fromY"`
	ToX    float64 `yaml:"toX"`
	ToY    float64 `yaml:"toY"`
	Frames int     `yaml:"frames"`
}

type scriptFile struct {
	Steps []scriptStep `yaml:"steps"`
}

// Script replays clicks, drags and waits through the injection queue, one
// step per frame once the previous step's injections have drained. Scripts
// are YAML, so JSON scripts load as well.
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses an input script:
//
//	steps:
//	  - {action: click, x: 100, y: 80}
//	  - {action: drag, fromX: 10, fromY: 10, toX: 200, toY: 40, frames: 10}
//	  - {action: wait, frames: 30}
func LoadScript(data []byte) (*Script, error) {
	var f scriptFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "click", "drag", "wait":
		default:
			return nil, fmt.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// SetScript attaches an input script. It is stepped from Update before
// input is processed. Pass nil to detach.
func (s *Scene) SetScript(sc *Script) {
	s.script = sc
}

// Done reports whether every step has run and its input was delivered.
func (r *Script) Done() bool {
	return r.done
}

func (r *Script) step(s *Scene) {
	if r.done || len(s.injectQueue) > 0 {
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
	switch st.Action {
	case "click":
		s.InjectClick(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
	s.logger.Debug("script step", "action", st.Action, "index", r.cursor-1)

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
