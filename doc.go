// Package sapling renders declarative element trees onto a retained-mode 2D
// scene graph (package stage, built on [Ebitengine]).
//
// # Quick start
//
// Describe the scene with elements and hand the root to a [Renderer]:
//
//	r := sapling.NewRenderer()
//	tree := sapling.Game(sapling.Props{"width": 640, "height": 480},
//		sapling.Graphics(nil,
//			sapling.CircleOf(sapling.Props{"x": 100, "y": 100, "diameter": 50, "color": 0x33aaff}),
//		),
//	)
//	if err := r.Render(tree, "main"); err != nil {
//		log.Fatal(err)
//	}
//	if err := r.Run("main"); err != nil {
//		log.Fatal(err)
//	}
//
// Calling Render again with the same container id diffs the new tree against
// the mounted one and applies only what changed.
//
// # Element kinds
//
// game is the top-level element and sizes the window. graphics is a canvas
// whose children (phaser_line, phaser_rect, phaser_circle) are replayed in
// order onto one drawing surface whenever any of them changes. group is a
// container whose children each own a scene node; it can be made draggable,
// clickable and given a background color. sprite draws a preloaded texture.
//
// # Drivers
//
// The adapter itself is the [HostConfig] returned by [NewHostConfig]. Any
// tree-diffing driver can call it; [Renderer] bundles a small synchronous
// reconciler with keyed and positional child matching.
//
// [Ebitengine]: https://ebitengine.org
package sapling
