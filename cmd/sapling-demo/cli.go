package main

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"github.com/yohamta/donburi"

	"github.com/phanxgames/sapling"
	"github.com/phanxgames/sapling/ecs"
	"github.com/phanxgames/sapling/internal/config"
	"github.com/phanxgames/sapling/stage"
)

const containerID = "demo"

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		scriptPath string
		verbose    bool
	)
	root := &cobra.Command{
		Use:          "sapling-demo",
		Short:        "Render a small declarative scene with sapling",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(configPath); err != nil {
					return err
				}
			}
			level := cfg.LogLevel()
			if verbose {
				level = log.DebugLevel
			}
			logger := newLogger(os.Stderr, level)

			var script *stage.Script
			if scriptPath != "" {
				data, err := os.ReadFile(scriptPath)
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				if script, err = stage.LoadScript(data); err != nil {
					return err
				}
			}

			r, a := newDemo(cmd.Context(), cfg, script, logger)
			if err := r.Render(a.tree(), containerID); err != nil {
				return err
			}
			logger.Info("window open", "title", cfg.Window.Title, "width", cfg.Window.Width, "height", cfg.Window.Height)
			return r.Run(containerID)
		},
	}
	root.Flags().StringVarP(&configPath, "config", "c", "", "TOML or YAML config file")
	root.Flags().StringVar(&scriptPath, "script", "", "replay scripted input, then exit")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every adapter callback")
	return root
}

// newDemo wires the renderer, the ECS registry and the configured assets.
// When no images are configured, placeholder textures are generated. The
// game closes on the tick after ctx is cancelled or script has finished.
func newDemo(ctx context.Context, cfg *config.Config, script *stage.Script, logger *log.Logger) (*sapling.Renderer, *app) {
	reg := ecs.NewRegistry(donburi.NewWorld())
	a := newApp(reg, logger)

	var r *sapling.Renderer
	onUpdate := func() {
		reg.Flush()
		if ctx.Err() != nil || (script != nil && script.Done()) {
			if e, ok := r.Engine(containerID); ok {
				e.Close()
			}
		}
	}

	opts := []sapling.Option{
		sapling.WithLogger(logger),
		sapling.WithEngineConfig(func(sc *stage.Config) {
			cfg.Apply(sc)
			sc.Assets = cfg.ImageAssets()
			sc.Store = reg
			sc.OnUpdate = onUpdate
			sc.Script = script
		}),
	}
	if cfg.Assets.Dir != "" {
		opts = append(opts, sapling.WithAssets(os.DirFS(cfg.Assets.Dir)))
	}
	if len(cfg.Assets.Images) == 0 {
		opts = append(opts, sapling.WithEngineFactory(func(sc stage.Config) (sapling.Engine, error) {
			g := stage.NewGame(sc)
			g.AddTexture(cardTexture, solidTexture(cardWidth, cardHeight, color.RGBA{0xf4, 0xe4, 0xc1, 0xff}))
			g.AddTexture(markerTexture, solidTexture(16, 16, color.RGBA{0xe0, 0x4f, 0x5f, 0xff}))
			return g, nil
		}))
	}

	r = sapling.NewRenderer(opts...)
	a.render = func() {
		if err := r.Render(a.tree(), containerID); err != nil {
			logger.Error("render", "err", err)
		}
	}
	return r, a
}

func solidTexture(w, h int, c color.Color) stage.Texture {
	img := ebiten.NewImage(w, h)
	img.Fill(c)
	return stage.TextureFromImage(img)
}
