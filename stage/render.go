package stage

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Draw traverses the scene tree in painter order and draws every visible
// node onto screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.RGBA())
	}
	updateWorldTransform(s.root, identityTransform, false)
	s.drawNode(screen, s.root, &stats)

	if s.debug {
		stats.drawTime = time.Since(t0)
		s.debugLog(stats)
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS %0.1f  nodes %d  cmds %d",
			ebiten.ActualTPS(), stats.nodeCount, stats.commandCount))
	}
}

func (s *Scene) drawNode(dst *ebiten.Image, n *Node, stats *debugStats) {
	if !n.Visible {
		return
	}
	stats.nodeCount++
	switch n.Type {
	case NodeTypeSprite:
		if img := n.Texture.Image; img != nil {
			var op ebiten.DrawImageOptions
			m := n.worldTransform
			op.GeoM.SetElement(0, 0, m[0])
			op.GeoM.SetElement(1, 0, m[1])
			op.GeoM.SetElement(0, 1, m[2])
			op.GeoM.SetElement(1, 1, m[3])
			op.GeoM.SetElement(0, 2, m[4])
			op.GeoM.SetElement(1, 2, m[5])
			dst.DrawImage(img, &op)
		}
	case NodeTypeGraphics:
		if n.Graphics != nil {
			stats.commandCount += len(n.Graphics.commands)
			n.Graphics.replay(dst, n.worldTransform)
		}
	}
	for _, child := range n.children {
		s.drawNode(dst, child, stats)
	}
}
