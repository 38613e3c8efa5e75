package sapling

import "github.com/phanxgames/sapling/stage"

// Instance is the adapter-side counterpart of one element. Every kind
// implements it; the optional capabilities below are discovered by type
// assertion and a missing capability is a silent no-op.
type Instance interface {
	Kind() Kind
	// Object returns the native scene node, or nil for kinds that own none
	// (primitives, the game element) or after Destroy.
	Object() *stage.Node
	// Update applies a full props map. It is called with the initial props
	// at mount and with the new props on every committed update.
	Update(props Props)
}

// ChildContainer is implemented by instances that hold children.
type ChildContainer interface {
	AppendInitialChild(child Instance)
	AppendChild(child Instance)
	InsertBefore(child, before Instance)
	RemoveChild(child Instance)
}

// InitialFinalizer overrides the default mount step, which applies the
// initial props via Update.
type InitialFinalizer interface {
	FinalizeInitialChildren(props Props)
}

// UpdatePreparer overrides the default diff, which is PrepareDiff.
type UpdatePreparer interface {
	PrepareUpdate(oldProps, newProps Props) *Diff
}

// Destroyer is implemented by instances that own native resources.
type Destroyer interface {
	Destroy()
}

// gameInstance stands for the top-level game element. The engine itself is
// the real container, so it holds nothing.
type gameInstance struct{}

func newGameInstance(Engine, Props) Instance { return gameInstance{} }

func (gameInstance) Kind() Kind          { return KindGame }
func (gameInstance) Object() *stage.Node { return nil }
func (gameInstance) Update(Props)        {}
