package main

import (
	"github.com/charmbracelet/log"

	"github.com/phanxgames/sapling"
	"github.com/phanxgames/sapling/ecs"
)

const (
	cardTexture   = "card"
	markerTexture = "marker"
	cardWidth     = 64
	cardHeight    = 96
)

// markerStops are the positions the marker cycles through on each click.
var markerStops = [][2]float64{{420, 120}, {620, 120}, {620, 320}, {420, 320}}

type card struct {
	key    string
	entity uint32
	x, y   float64
	color  int
}

// app is the demo's state. Every callback mutates it and re-renders the
// whole tree; the reconciler applies only what changed.
type app struct {
	reg    *ecs.Registry
	logger *log.Logger
	render func()

	cards    []*card
	button   uint32
	stop     int
	ease     string
	selected string
}

func newApp(reg *ecs.Registry, logger *log.Logger) *app {
	a := &app{reg: reg, logger: logger, render: func() {}, ease: "outbounce"}
	for i, c := range []int{0x2d6a4f, 0x6a4c93, 0x1d3557} {
		a.cards = append(a.cards, &card{
			key:    string(rune('a' + i)),
			entity: reg.Spawn(),
			x:      60 + float64(i)*90,
			y:      80,
			color:  c,
		})
	}
	a.button = reg.Spawn()
	return a
}

// dropCard stores a card's new position and raises it to the top.
func (a *app) dropCard(key string, x, y float64) {
	idx := -1
	for i, c := range a.cards {
		if c.key == key {
			idx = i
		}
	}
	if idx < 0 {
		return
	}
	c := a.cards[idx]
	c.x, c.y = x, y
	a.cards = append(append(a.cards[:idx:idx], a.cards[idx+1:]...), c)
	a.selected = key
	if act, ok := a.reg.Activity(c.entity); ok {
		a.logger.Debug("card dropped", "card", key, "x", x, "y", y, "drops", act.Drops)
	}
	a.render()
}

// advanceMarker moves the marker to its next stop.
func (a *app) advanceMarker() {
	a.stop = (a.stop + 1) % len(markerStops)
	a.render()
}

func (a *app) tree() *sapling.Element {
	cards := make([]*sapling.Element, 0, len(a.cards))
	for _, c := range a.cards {
		key := c.key
		props := sapling.Props{
			"x":         c.x,
			"y":         c.y,
			"draggable": true,
			"entity":    c.entity,
			"onDrag":    func(x, y float64) { a.dropCard(key, x, y) },
		}
		if key == a.selected {
			props["backgroundColor"] = 0xffd166
		}
		cards = append(cards, sapling.GroupOf(props,
			sapling.SpriteOf(sapling.Props{"image": cardTexture, "x": 4, "y": 4}),
			sapling.Graphics(sapling.Props{"x": 4, "y": 4},
				sapling.RectOf(sapling.Props{"width": cardWidth, "height": 12, "color": c.color}),
				sapling.CircleOf(sapling.Props{"x": cardWidth / 2, "y": cardHeight / 2, "diameter": 24, "color": c.color}),
			),
		).WithKey(key))
	}

	stop := markerStops[a.stop]
	return sapling.Game(nil,
		sapling.Graphics(nil,
			sapling.LineOf(sapling.Props{"x": 0, "y": 40, "endX": 800, "endY": 40, "color": 0x888888, "width": 2}),
			sapling.RectOf(sapling.Props{"x": 400, "y": 100, "width": 260, "height": 260, "color": 0x222831}),
		),
		sapling.GroupOf(sapling.Props{}, cards...),
		sapling.GroupOf(sapling.Props{
			"x":               420,
			"y":               420,
			"entity":          a.button,
			"backgroundColor": 0x3a86ff,
			"onClick":         a.advanceMarker,
		},
			sapling.SpriteOf(sapling.Props{"image": markerTexture, "x": 8, "y": 8, "scale": 2}),
		),
		sapling.SpriteOf(sapling.Props{
			"image": markerTexture,
			"x":     stop[0],
			"y":     stop[1],
			"tween": 0.6,
			"ease":  a.ease,
		}).WithKey("marker"),
	)
}
