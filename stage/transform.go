package stage

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix from the node's
// transform properties. Returns [a, b, c, d, tx, ty].
//
// Composition order: Scale -> Translate(X, Y)
func computeLocalTransform(n *Node) [6]float64 {
	return [6]float64{n.ScaleX, 0, 0, n.ScaleY, n.X, n.Y}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ≈ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// transformRect maps r through a scale+translate matrix.
func transformRect(m [6]float64, r Rect) Rect {
	x0, y0 := transformPoint(m, r.X, r.Y)
	x1, y1 := transformPoint(m, r.X+r.Width, r.Y+r.Height)
	return Rect{X: min(x0, x1), Y: min(y0, y1), Width: abs(x1 - x0), Height: abs(y1 - y0)}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// updateWorldTransform recomputes a node's worldTransform.
// parentRecomputed indicates whether the parent was recomputed this frame,
// which forces recomputation of this node even if it's not dirty.
func updateWorldTransform(n *Node, parentTransform [6]float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		n.worldTransform = multiplyAffine(parentTransform, computeLocalTransform(n))
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, recompute)
	}
}

// --- Transform property setters ---

// SetPosition sets the node's local X and Y and marks it dirty.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
	n.transformDirty = true
}

// Move offsets the node's local position by (dx, dy).
func (n *Node) Move(dx, dy float64) {
	n.SetPosition(n.X+dx, n.Y+dy)
}

// SetScale sets the node's ScaleX and ScaleY and marks it dirty.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
	n.transformDirty = true
}

// SetWidth scales the node horizontally so its displayed width is w.
// No-op for nodes without intrinsic width.
func (n *Node) SetWidth(w float64) {
	b := n.intrinsicBounds()
	if b.Width == 0 {
		return
	}
	n.ScaleX = w / b.Width
	n.transformDirty = true
}

// SetHeight scales the node vertically so its displayed height is h.
// No-op for nodes without intrinsic height.
func (n *Node) SetHeight(h float64) {
	b := n.intrinsicBounds()
	if b.Height == 0 {
		return
	}
	n.ScaleY = h / b.Height
	n.transformDirty = true
}

// Width returns the displayed width (intrinsic width times ScaleX).
func (n *Node) Width() float64 {
	return n.intrinsicBounds().Width * abs(n.ScaleX)
}

// Height returns the displayed height (intrinsic height times ScaleY).
func (n *Node) Height() float64 {
	return n.intrinsicBounds().Height * abs(n.ScaleY)
}

// MarkDirty marks the node's transform as dirty, forcing recomputation
// on the next frame. Useful after bulk-setting fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// --- Bounds ---

// LocalBounds returns the node's content bounds in its own coordinate
// space: the texture rectangle for sprites, the recorded shape extents for
// graphics, and the union of the children's bounds (in this node's space)
// for containers.
func (n *Node) LocalBounds() Rect {
	r := n.intrinsicBounds()
	for _, c := range n.children {
		r = r.Union(c.BoundsInParent())
	}
	return r
}

// BoundsInParent returns LocalBounds mapped into the parent's space.
func (n *Node) BoundsInParent() Rect {
	return transformRect(computeLocalTransform(n), n.LocalBounds())
}

func (n *Node) intrinsicBounds() Rect {
	switch n.Type {
	case NodeTypeSprite:
		return Rect{Width: float64(n.Texture.Width), Height: float64(n.Texture.Height)}
	case NodeTypeGraphics:
		if n.Graphics != nil {
			return n.Graphics.Bounds()
		}
	}
	return Rect{}
}

// --- Coordinate conversion ---

// WorldTransform returns the node's world matrix, recomputing the chain of
// ancestors so the result is valid outside of Scene.Update.
func (n *Node) WorldTransform() [6]float64 {
	m := computeLocalTransform(n)
	for p := n.Parent; p != nil; p = p.Parent {
		m = multiplyAffine(computeLocalTransform(p), m)
	}
	return m
}

// WorldToLocal converts a world-space point to this node's local coordinate space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	inv := invertAffine(n.WorldTransform())
	return transformPoint(inv, wx, wy)
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return transformPoint(n.WorldTransform(), lx, ly)
}

// WorldPosition returns the world-space position of the node's origin.
func (n *Node) WorldPosition() (float64, float64) {
	return n.LocalToWorld(0, 0)
}
