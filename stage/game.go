package stage

import (
	"errors"
	"fmt"
	"image"
	_ "image/png" // register the PNG decoder for image assets
	"io/fs"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

// AssetImage is the only preloadable asset type.
const AssetImage = "image"

// Asset describes one file to preload during Boot.
type Asset struct {
	Type     string `toml:"type" yaml:"type"`
	Key      string `toml:"key" yaml:"key"`
	Location string `toml:"location" yaml:"location"`
}

// Config configures a Game.
type Config struct {
	Title  string
	Width  int
	Height int

	// Assets are preloaded from FS during Boot and registered as textures
	// under their Key.
	Assets []Asset
	FS     fs.FS

	// DragDeadZone overrides the default drag threshold when positive.
	DragDeadZone float64
	Debug        bool
	Logger       *log.Logger

	// Store receives interaction events of nodes with an EntityID.
	Store EntityStore

	// OnUpdate runs once per tick after input and tweens.
	OnUpdate func()

	// Script, if set, replays scripted input through the scene.
	Script *Script
}

// ErrClosed is returned by Game.Update once Close has been called; ebiten
// treats it as a clean shutdown.
var ErrClosed = ebiten.Termination

// Game owns a Scene and a texture cache and implements ebiten.Game.
type Game struct {
	cfg      Config
	scene    *Scene
	textures map[string]Texture
	logger   *log.Logger

	ready   []func()
	booted  bool
	closed  bool
	running bool
}

// NewGame creates a game with an empty scene. Nothing is loaded until Boot
// or Run is called.
func NewGame(cfg Config) *Game {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := NewScene()
	s.SetLogger(logger)
	if cfg.DragDeadZone > 0 {
		s.SetDragDeadZone(cfg.DragDeadZone)
	}
	if cfg.Debug {
		s.SetDebugMode(true)
	}
	if cfg.Store != nil {
		s.SetEntityStore(cfg.Store)
	}
	if cfg.Script != nil {
		s.SetScript(cfg.Script)
	}
	return &Game{
		cfg:      cfg,
		scene:    s,
		textures: make(map[string]Texture),
		logger:   logger,
	}
}

// Scene returns the game's scene.
func (g *Game) Scene() *Scene { return g.scene }

// Width returns the configured logical width.
func (g *Game) Width() int { return g.cfg.Width }

// Height returns the configured logical height.
func (g *Game) Height() int { return g.cfg.Height }

// AddTexture registers tex under key, replacing any previous texture.
func (g *Game) AddTexture(key string, tex Texture) {
	g.textures[key] = tex
}

// Texture returns the texture registered under key.
func (g *Game) Texture(key string) (Texture, bool) {
	tex, ok := g.textures[key]
	return tex, ok
}

// AddSprite creates a sprite for the texture key at (x, y) and attaches it
// to the scene root. An unknown key yields an empty sprite.
func (g *Game) AddSprite(x, y float64, key string) *Node {
	tex, ok := g.textures[key]
	if !ok {
		g.logger.Warn("unknown texture", "key", key)
	}
	n := NewSprite(key, tex)
	n.SetPosition(x, y)
	g.scene.Root().AddChild(n)
	return n
}

// AddGraphics creates a graphics node at (x, y) and attaches it to the
// scene root.
func (g *Game) AddGraphics(x, y float64) *Node {
	n := NewGraphics("graphics")
	n.SetPosition(x, y)
	g.scene.Root().AddChild(n)
	return n
}

// AddGroup creates a container node and attaches it to the scene root.
func (g *Game) AddGroup() *Node {
	n := NewContainer("group")
	g.scene.Root().AddChild(n)
	return n
}

// AddTween registers t with the scene.
func (g *Game) AddTween(t *TweenGroup) {
	g.scene.AddTween(t)
}

// OnReady registers fn to run once the game has booted. If the game is
// already booted, fn runs immediately.
func (g *Game) OnReady(fn func()) {
	if g.booted {
		fn()
		return
	}
	g.ready = append(g.ready, fn)
}

// Booted reports whether Boot has completed.
func (g *Game) Booted() bool { return g.booted }

// Boot preloads the configured assets and then fires the ready callbacks in
// registration order. Calling Boot again is a no-op.
func (g *Game) Boot() error {
	if g.booted {
		return nil
	}
	for _, a := range g.cfg.Assets {
		if err := g.loadAsset(a); err != nil {
			return err
		}
	}
	g.booted = true
	g.logger.Debug("game ready", "title", g.cfg.Title, "textures", len(g.textures))

	ready := g.ready
	g.ready = nil
	for _, fn := range ready {
		fn()
	}
	return nil
}

func (g *Game) loadAsset(a Asset) error {
	if a.Type != AssetImage {
		g.logger.Warn("skipping asset of unsupported type", "type", a.Type, "key", a.Key)
		return nil
	}
	if g.cfg.FS == nil {
		return fmt.Errorf("stage: load asset %q: no filesystem configured", a.Key)
	}
	f, err := g.cfg.FS.Open(a.Location)
	if err != nil {
		return fmt.Errorf("stage: load asset %q: %w", a.Key, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("stage: decode asset %q: %w", a.Key, err)
	}
	g.textures[a.Key] = TextureFromImage(ebiten.NewImageFromImage(img))
	g.logger.Debug("loaded asset", "key", a.Key, "location", a.Location)
	return nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.closed {
		return ErrClosed
	}
	g.scene.Update()
	if g.cfg.OnUpdate != nil {
		g.cfg.OnUpdate()
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Run boots the game if needed, opens the window and blocks until the game
// loop ends. A loop ended by Close returns nil.
func (g *Game) Run() error {
	if g.running {
		return errors.New("stage: game is already running")
	}
	if err := g.Boot(); err != nil {
		return err
	}
	g.running = true
	defer func() { g.running = false }()

	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ErrClosed) {
		return err
	}
	return nil
}

// Close stops the game loop at the next Update.
func (g *Game) Close() {
	g.closed = true
}

// Closed reports whether Close has been called.
func (g *Game) Closed() bool { return g.closed }
