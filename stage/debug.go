package stage

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// debugLogger receives tree warnings from node operations, which have no
// Scene pointer. Set alongside globalDebug.
var debugLogger = log.Default()

// debugStats holds per-frame timing and draw-call metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	drawTime     time.Duration
	nodeCount    int
	commandCount int
}

// debugLog reports frame stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.logger.Debug("frame",
		"draw", stats.drawTime,
		"nodes", stats.nodeCount,
		"graphics_commands", stats.commandCount)
}

// debugCheckDestroyed panics with a descriptive message when a destroyed node
// is used in a tree operation. In release mode callers skip this entirely.
func debugCheckDestroyed(n *Node, op string) {
	if n.destroyed {
		panic(fmt.Sprintf("stage debug: %s on destroyed node %q (ID %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugLogger.Warn("tree depth exceeds threshold", "depth", depth, "max", debugMaxTreeDepth, "node", n.Name)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		debugLogger.Warn("child count exceeds threshold", "node", n.Name, "children", len(n.children), "max", debugMaxChildCount)
	}
}
