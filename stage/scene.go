package stage

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the node tree, input state and
// running tweens.
type Scene struct {
	root   *Node
	store  EntityStore
	debug  bool
	logger *log.Logger

	// ClearColor fills the screen before drawing. Zero alpha skips the fill.
	ClearColor Color

	// Input state
	pointer      pointerState
	hitBuf       []*Node
	dragDeadZone float64
	injectQueue  []syntheticPointerEvent

	tweens []*TweenGroup
	script *Script
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	return &Scene{
		root:         NewContainer("root"),
		logger:       log.Default(),
		dragDeadZone: defaultDragDeadZone,
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Update processes input and advances tweens by one tick.
func (s *Scene) Update() {
	updateWorldTransform(s.root, identityTransform, false)
	if s.script != nil {
		s.script.step(s)
	}
	s.processInput()
	s.Advance(1.0 / float64(ebiten.TPS()))
}

// Advance steps every running tween by dt seconds and drops finished ones.
func (s *Scene) Advance(dt float64) {
	live := s.tweens[:0]
	for _, t := range s.tweens {
		t.Update(float32(dt))
		if !t.Done {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = live
}

// AddTween registers t to be stepped by Advance until it reports Done.
func (s *Scene) AddTween(t *TweenGroup) {
	if t == nil || t.Done {
		return
	}
	s.tweens = append(s.tweens, t)
}

// NumTweens returns the number of running tweens.
func (s *Scene) NumTweens() int {
	return len(s.tweens)
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetLogger replaces the logger used for debug output.
func (s *Scene) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.Default()
	}
	s.logger = l
}

// SetDebugMode enables or disables debug mode. When enabled, destroyed-node
// access panics, tree depth and child count warnings are logged, and
// per-frame draw stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	debugLogger = s.logger
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool
