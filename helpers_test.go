package sapling

import (
	"fmt"
	"io"
	"slices"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/sapling/stage"
)

// quietLogger logs at debug level into the void so every logging path runs
// without cluttering test output.
func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.DebugLevel})
}

// newTestGame returns a headless engine with size-only textures.
func newTestGame() *stage.Game {
	g := stage.NewGame(stage.Config{Width: DefaultWidth, Height: DefaultHeight, Logger: quietLogger()})
	g.AddTexture("hero", stage.Texture{Width: 32, Height: 32})
	g.AddTexture("tile", stage.Texture{Width: 16, Height: 8})
	return g
}

// newTestRenderer returns a renderer whose factory always hands out g and
// counts how often it was called.
func newTestRenderer(g *stage.Game) (*Renderer, *int) {
	calls := 0
	r := NewRenderer(
		WithLogger(quietLogger()),
		WithEngineFactory(func(stage.Config) (Engine, error) {
			calls++
			return g, nil
		}),
	)
	return r, &calls
}

// mountTree renders elem into a booted test game and returns the game.
func mountTree(t *testing.T, elem *Element) (*Renderer, *stage.Game) {
	t.Helper()
	g := newTestGame()
	r, _ := newTestRenderer(g)
	require.NoError(t, r.Render(elem, "test"))
	require.NoError(t, g.Boot())
	require.True(t, r.Ready("test"))
	return r, g
}

// capture returns a ref that stores the instance into *dst.
func capture[T Instance](dst *T) func(Instance) {
	return func(inst Instance) {
		if inst == nil {
			var zero T
			*dst = zero
			return
		}
		*dst = inst.(T)
	}
}

// commands snapshots the recorded graphics of n.
func commands(n *stage.Node) []stage.GraphicsCommand {
	if n == nil || n.Graphics == nil {
		return nil
	}
	return slices.Clone(n.Graphics.Commands())
}

// recordingHost wraps the adapter and records the callbacks a driver makes.
type recordingHost struct {
	HostConfig
	calls []string
}

func newRecordingHost() *recordingHost {
	return &recordingHost{HostConfig: NewHostConfig(quietLogger())}
}

func (h *recordingHost) record(format string, args ...any) {
	h.calls = append(h.calls, fmt.Sprintf(format, args...))
}

func (h *recordingHost) CreateInstance(kind Kind, props Props, c *Container, ctx HostContext) Instance {
	h.record("create %s", kind)
	return h.HostConfig.CreateInstance(kind, props, c, ctx)
}

func (h *recordingHost) AppendChild(parent, child Instance) {
	h.record("append %s", kindOf(child))
	h.HostConfig.AppendChild(parent, child)
}

func (h *recordingHost) InsertBefore(parent, child, before Instance) {
	h.record("insert %s", kindOf(child))
	h.HostConfig.InsertBefore(parent, child, before)
}

func (h *recordingHost) RemoveChild(parent, child Instance) {
	h.record("remove %s", kindOf(child))
	h.HostConfig.RemoveChild(parent, child)
}

func (h *recordingHost) CommitUpdate(inst Instance, diff *Diff, kind Kind, oldProps, newProps Props) {
	h.record("update %s", kind)
	h.HostConfig.CommitUpdate(inst, diff, kind, oldProps, newProps)
}

func (h *recordingHost) DetachDeletedInstance(inst Instance) {
	h.record("detach %s", kindOf(inst))
	h.HostConfig.DetachDeletedInstance(inst)
}

func (h *recordingHost) PrepareForCommit(c *Container) {
	h.record("prepare")
	h.HostConfig.PrepareForCommit(c)
}

func (h *recordingHost) ResetAfterCommit(c *Container) {
	h.record("reset")
	h.HostConfig.ResetAfterCommit(c)
}

func (h *recordingHost) reset() { h.calls = nil }
