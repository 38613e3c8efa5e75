package sapling

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/charmbracelet/log"

	"github.com/phanxgames/sapling/stage"
)

var (
	// ErrNilElement is returned by Render when given a nil element.
	ErrNilElement = errors.New("sapling: nil element")
	// ErrUnknownContainer is returned for ids that were never rendered or
	// have been unmounted.
	ErrUnknownContainer = errors.New("sapling: unknown container")
)

// Default game size when the top-level element does not set one.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Engine is the scene capability surface instances are built on.
// *stage.Game implements it.
type Engine interface {
	AddSprite(x, y float64, key string) *stage.Node
	AddGraphics(x, y float64) *stage.Node
	AddGroup() *stage.Node
	AddTween(t *stage.TweenGroup)
	// OnReady runs fn once the engine can create nodes. Engines that are
	// already ready run fn immediately.
	OnReady(fn func())
	Run() error
	Close()
}

// EngineFactory builds the engine for a new container.
type EngineFactory func(cfg stage.Config) (Engine, error)

func defaultEngineFactory(cfg stage.Config) (Engine, error) {
	return stage.NewGame(cfg), nil
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger for the adapter and new engines.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithEngineFactory replaces the engine constructor.
func WithEngineFactory(f EngineFactory) Option {
	return func(r *Renderer) {
		if f != nil {
			r.factory = f
		}
	}
}

// WithAssets sets the filesystem image assets are loaded from.
func WithAssets(fsys fs.FS) Option {
	return func(r *Renderer) { r.assets = fsys }
}

// WithEngineConfig adjusts the engine config before each engine is built,
// after the size and assets have been taken from the game element.
func WithEngineConfig(fn func(*stage.Config)) Option {
	return func(r *Renderer) { r.configure = fn }
}

type entry struct {
	container *Container
	pending   *Element
	ready     bool
}

// Renderer maps container ids to mounted trees. The first Render for an id
// creates its engine; later calls update the tree in place.
type Renderer struct {
	host      HostConfig
	logger    *log.Logger
	factory   EngineFactory
	assets    fs.FS
	configure func(*stage.Config)
	entries   map[string]*entry
}

// NewRenderer creates an empty renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		logger:  log.Default(),
		factory: defaultEngineFactory,
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.host = NewHostConfig(r.logger)
	return r
}

// Host returns the adapter the renderer drives.
func (r *Renderer) Host() HostConfig { return r.host }

// Render commits elem into the container id. The first call builds an
// engine sized from elem's width and height props and defers the initial
// commit until the engine is ready; renders that arrive before then replace
// the pending element.
func (r *Renderer) Render(elem *Element, id string) error {
	if elem == nil {
		return ErrNilElement
	}
	if e, ok := r.entries[id]; ok {
		if !e.ready {
			e.pending = elem
			return nil
		}
		newCommit(r.host, e.container).render(elem)
		return nil
	}

	cfg := stage.Config{
		Title:  id,
		Width:  int(elem.Props.Float("width", DefaultWidth)),
		Height: int(elem.Props.Float("height", DefaultHeight)),
		Assets: assetsOf(elem.Props),
		FS:     r.assets,
		Logger: r.logger,
	}
	if r.configure != nil {
		r.configure(&cfg)
	}
	eng, err := r.factory(cfg)
	if err != nil {
		return fmt.Errorf("sapling: create engine for %q: %w", id, err)
	}

	e := &entry{container: &Container{ID: id, Engine: eng}, pending: elem}
	r.entries[id] = e
	r.logger.Debug("container registered", "id", id, "width", cfg.Width, "height", cfg.Height)

	eng.OnReady(func() {
		if r.entries[id] != e {
			return
		}
		e.ready = true
		pending := e.pending
		e.pending = nil
		newCommit(r.host, e.container).render(pending)
	})
	return nil
}

// Unmount deletes the tree in id and closes its engine. It reports whether
// the id was registered.
func (r *Renderer) Unmount(id string) bool {
	e, ok := r.entries[id]
	if !ok {
		return false
	}
	delete(r.entries, id)
	if e.ready {
		newCommit(r.host, e.container).unmount()
	}
	e.container.Engine.Close()
	r.logger.Debug("container unmounted", "id", id)
	return true
}

// Container returns the container registered under id.
func (r *Renderer) Container(id string) (*Container, bool) {
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	return e.container, true
}

// Engine returns the engine of container id.
func (r *Renderer) Engine(id string) (Engine, bool) {
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	return e.container.Engine, true
}

// Ready reports whether the initial commit for id has happened.
func (r *Renderer) Ready(id string) bool {
	e, ok := r.entries[id]
	return ok && e.ready
}

// Run blocks in the engine loop of container id.
func (r *Renderer) Run(id string) error {
	e, ok := r.entries[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownContainer, id)
	}
	return e.container.Engine.Run()
}

// assetsOf reads the game element's assets prop, accepting either typed
// assets or decoded maps with type, key and location.
func assetsOf(p Props) []stage.Asset {
	switch v := p["assets"].(type) {
	case []stage.Asset:
		return v
	case []map[string]any:
		out := make([]stage.Asset, 0, len(v))
		for _, m := range v {
			mp := Props(m)
			out = append(out, stage.Asset{
				Type:     mp.String("type", ""),
				Key:      mp.String("key", ""),
				Location: mp.String("location", ""),
			})
		}
		return out
	case []any:
		out := make([]stage.Asset, 0, len(v))
		for _, item := range v {
			switch a := item.(type) {
			case stage.Asset:
				out = append(out, a)
			case map[string]any:
				mp := Props(a)
				out = append(out, stage.Asset{
					Type:     mp.String("type", ""),
					Key:      mp.String("key", ""),
					Location: mp.String("location", ""),
				})
			}
		}
		return out
	}
	return nil
}
