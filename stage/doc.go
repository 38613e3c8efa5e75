// Package stage is a small retained-mode 2D scene graph for [Ebitengine].
//
// It is the engine half of sapling: everything the declarative adapter
// mutates lives here. A [Scene] owns a tree of [Node] values rooted at
// [Scene.Root]. Children inherit their parent's translation and scale.
//
// # Node kinds
//
// Containers group children and have no visual output. Sprites draw a
// [Texture]. Graphics nodes own a [Graphics] surface: a recorded list of
// drawing commands (line style, fill, move, line, rect, circle) that is
// rasterised with ebiten's vector package at draw time. Clearing the surface
// discards the recorded commands.
//
//	g := game.AddGraphics(0, 0)
//	g.Graphics.BeginFill(0xff0000, 1)
//	g.Graphics.DrawRect(0, 0, 10, 10)
//
// # Input
//
// Nodes with InputEnabled set take part in hit testing. Each node carries
// [Events], a set of signals for pointer down/up, click and drag. A node
// with drag enabled follows the pointer and reports its new local position
// through DragUpdate, then DragStop on release.
//
//	b := overlay.Events.DragUpdate.Add(func(e stage.DragEvent) { ... })
//	defer b.Detach()
//
// Tests and scripted runs can feed the pointer state machine directly with
// [Scene.HandlePointer] or queue events with the Inject helpers.
//
// # Game loop
//
// [Game] implements [ebiten.Game]. It preloads image assets on the first
// tick (or on an explicit [Game.Boot]), fires its ready callbacks once, and
// then updates and draws its scene every frame:
//
//	game := stage.NewGame(stage.Config{Title: "demo", Width: 640, Height: 480})
//	game.OnReady(func() { ... build nodes ... })
//	if err := game.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// [Ebitengine]: https://ebitengine.org
package stage
