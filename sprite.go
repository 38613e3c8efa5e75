package sapling

import (
	"github.com/charmbracelet/log"

	"github.com/phanxgames/sapling/stage"
)

// Sprite is a textured leaf.
type Sprite struct {
	engine Engine
	node   *stage.Node
	tween  *stage.TweenGroup
	logger *log.Logger
}

func newSprite(e Engine, props Props) Instance {
	n := e.AddSprite(props.Float("x", 0), props.Float("y", 0), props.String("image", ""))
	return &Sprite{engine: e, node: n, logger: log.Default()}
}

func (*Sprite) Kind() Kind { return KindSprite }

func (s *Sprite) Object() *stage.Node {
	if s == nil {
		return nil
	}
	return s.node
}

// Update applies position, uniform scale and the optional width and height
// overrides. With a positive tween duration the position change is animated
// instead of applied at once; any previous animation is cancelled first.
func (s *Sprite) Update(props Props) {
	if s.node == nil {
		return
	}
	s.cancelTween()

	x, y := props.Float("x", 0), props.Float("y", 0)
	if d := props.Float("tween", 0); d > 0 && (x != s.node.X || y != s.node.Y) {
		name := props.String("ease", "")
		fn, ok := stage.EaseByName(name)
		if !ok && name != "" {
			s.logger.Warn("unknown ease, using linear", "ease", name)
		}
		s.tween = stage.TweenPosition(s.node, x, y, float32(d), fn)
		s.engine.AddTween(s.tween)
	} else {
		s.node.SetPosition(x, y)
	}

	scale := props.Float("scale", 1)
	s.node.SetScale(scale, scale)
	if w := props.Float("width", 0); w != 0 {
		s.node.SetWidth(w)
	}
	if h := props.Float("height", 0); h != 0 {
		s.node.SetHeight(h)
	}
	s.node.EntityID = props.Uint32("entity", 0)
}

// Tweening reports whether a position animation is running.
func (s *Sprite) Tweening() bool {
	return s.tween != nil && !s.tween.Done
}

func (s *Sprite) cancelTween() {
	if s.tween != nil {
		s.tween.Done = true
		s.tween = nil
	}
}

// Destroy stops any animation and releases the sprite node.
func (s *Sprite) Destroy() {
	s.cancelTween()
	if s.node != nil {
		s.node.Destroy()
		s.node = nil
	}
}

func (s *Sprite) setLogger(l *log.Logger) { s.logger = l }
