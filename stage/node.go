package stage

import "github.com/hajimehoshi/ebiten/v2"

// Texture is an image plus its logical size. Image may be nil for
// size-only textures (headless runs); such sprites are laid out and hit
// tested but draw nothing.
type Texture struct {
	Image         *ebiten.Image
	Width, Height int
}

// TextureFromImage wraps img, taking its size from its bounds.
func TextureFromImage(img *ebiten.Image) Texture {
	b := img.Bounds()
	return Texture{Image: img, Width: b.Dx(), Height: b.Dy()}
}

// nodeIDCounter is a plain counter (stage is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the fundamental scene graph element. A single flat struct is used for
// all node types to avoid interface dispatch on the hot path.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y   float64
	ScaleX float64
	ScaleY float64

	worldTransform [6]float64
	transformDirty bool

	Visible bool

	// Sprite fields (NodeTypeSprite)
	Texture Texture

	// Graphics fields (NodeTypeGraphics)
	Graphics *Graphics

	// Interaction
	InputEnabled bool
	draggable    bool
	Events       Events
	EntityID     uint32

	destroyed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Visible = true
	n.transformDirty = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node that renders tex.
func NewSprite(name string, tex Texture) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Texture: tex}
	nodeDefaults(n)
	return n
}

// NewGraphics creates a node owning an empty Graphics surface.
func NewGraphics(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeGraphics, Graphics: &Graphics{}}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	n.AddChildAt(child, -1)
}

// AddChildAt inserts child at the given index. An index of -1 appends.
// The index is interpreted after child has been detached from its old
// parent, so moving a child within the same parent works as expected.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("stage: cannot add nil child")
	}
	if globalDebug {
		debugCheckDestroyed(n, "AddChildAt (parent)")
		debugCheckDestroyed(child, "AddChildAt (child)")
	}
	if isAncestor(child, n) {
		panic("stage: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index == -1 {
		index = len(n.children)
	}
	if index < 0 || index > len(n.children) {
		panic("stage: child index out of range")
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// AddChildBefore inserts child directly in front of before. When before is
// nil or not a child of n, child is appended instead.
func (n *Node) AddChildBefore(child, before *Node) {
	if child == nil {
		panic("stage: cannot add nil child")
	}
	if child == before {
		return
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
		child.Parent = nil
	}
	n.AddChildAt(child, n.ChildIndex(before))
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("stage: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildIndex returns the index of child among n's children, or -1.
func (n *Node) ChildIndex(child *Node) int {
	if child == nil {
		return -1
	}
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// --- Interaction ---

// EnableDrag makes the node follow the pointer while dragged. Implies
// InputEnabled.
func (n *Node) EnableDrag() {
	n.InputEnabled = true
	n.draggable = true
}

// Draggable reports whether EnableDrag was called.
func (n *Node) Draggable() bool {
	return n.draggable
}

// --- Destruction ---

// Destroy removes this node from its parent, marks it as destroyed,
// and recursively destroys all descendants. Event bindings are dropped.
// Calling Destroy more than once is a no-op.
func (n *Node) Destroy() {
	if n.destroyed {
		return
	}
	n.RemoveFromParent()
	n.destroy()
}

func (n *Node) destroy() {
	n.destroyed = true
	for _, child := range n.children {
		child.Parent = nil
		child.destroy()
	}
	n.children = nil
	n.Parent = nil
	n.Texture = Texture{}
	n.Graphics = nil
	n.InputEnabled = false
	n.draggable = false
	n.Events.reset()
}

// IsDestroyed returns true if this node has been destroyed.
func (n *Node) IsDestroyed() bool {
	return n.destroyed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
