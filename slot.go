package sapling

import "github.com/phanxgames/sapling/stage"

// slot owns at most one auxiliary node (a group's background or input
// overlay). The old node is always fully released before a new one is built.
type slot struct {
	node *stage.Node
}

// replace releases the current node, then stores the result of build.
func (s *slot) replace(build func() *stage.Node) {
	s.release()
	s.node = build()
}

// release destroys the current node. Safe to call when empty.
func (s *slot) release() {
	if s.node == nil {
		return
	}
	s.node.Destroy()
	s.node = nil
}

func (s *slot) get() *stage.Node { return s.node }
