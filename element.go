package sapling

// Kind identifies the node kind an element renders to.
type Kind uint8

const (
	KindGame     Kind = iota // top-level engine element; renders nothing
	KindGraphics             // canvas that replays its primitives
	KindGroup                // container with optional drag, click and background
	KindSprite               // textured leaf
	KindLine                 // stroked segment inside a canvas
	KindRect                 // filled rectangle inside a canvas
	KindCircle               // filled circle inside a canvas

	kindCount
)

var kindTags = [kindCount]string{
	KindGame:     "game",
	KindGraphics: "graphics",
	KindGroup:    "group",
	KindSprite:   "sprite",
	KindLine:     "phaser_line",
	KindRect:     "phaser_rect",
	KindCircle:   "phaser_circle",
}

// String returns the markup tag for k.
func (k Kind) String() string {
	if k < kindCount {
		return kindTags[k]
	}
	return "unknown"
}

// ParseKind maps a markup tag to its Kind.
func ParseKind(tag string) (Kind, bool) {
	for k, t := range kindTags {
		if t == tag {
			return Kind(k), true
		}
	}
	return 0, false
}

// Element is an immutable description of one node and its subtree.
// Build elements with E and hand the root to Renderer.Render.
type Element struct {
	Kind     Kind
	Key      string
	Props    Props
	Children []*Element

	// Ref, if set, receives the instance after mount and nil after removal.
	Ref func(Instance)
}

// E builds an element. Nil children are dropped so conditional subtrees can
// be written inline. The children are also exposed as Props[ChildrenKey].
func E(kind Kind, props Props, children ...*Element) *Element {
	p := make(Props, len(props)+1)
	for k, v := range props {
		p[k] = v
	}
	var kids []*Element
	for _, c := range children {
		if c != nil {
			kids = append(kids, c)
		}
	}
	if len(kids) > 0 {
		p[ChildrenKey] = kids
	}
	return &Element{Kind: kind, Props: p, Children: kids}
}

// WithKey sets the reconciliation key and returns e.
func (e *Element) WithKey(key string) *Element {
	e.Key = key
	return e
}

// WithRef sets the ref callback and returns e.
func (e *Element) WithRef(ref func(Instance)) *Element {
	e.Ref = ref
	return e
}

// Game is shorthand for E(KindGame, ...).
func Game(props Props, children ...*Element) *Element {
	return E(KindGame, props, children...)
}

// Graphics is shorthand for E(KindGraphics, ...).
func Graphics(props Props, children ...*Element) *Element {
	return E(KindGraphics, props, children...)
}

// GroupOf is shorthand for E(KindGroup, ...).
func GroupOf(props Props, children ...*Element) *Element {
	return E(KindGroup, props, children...)
}

// SpriteOf is shorthand for E(KindSprite, props).
func SpriteOf(props Props) *Element {
	return E(KindSprite, props)
}

// LineOf is shorthand for E(KindLine, props).
func LineOf(props Props) *Element {
	return E(KindLine, props)
}

// RectOf is shorthand for E(KindRect, props).
func RectOf(props Props) *Element {
	return E(KindRect, props)
}

// CircleOf is shorthand for E(KindCircle, props).
func CircleOf(props Props) *Element {
	return E(KindCircle, props)
}
