package sapling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInstanceCoversEveryKind(t *testing.T) {
	g := newTestGame()
	host := NewHostConfig(quietLogger())
	ctx := HostContext{Engine: g}
	for k := Kind(0); k < kindCount; k++ {
		t.Run(k.String(), func(t *testing.T) {
			require.NotNil(t, constructors[k])
			inst := host.CreateInstance(k, Props{"image": "hero"}, nil, ctx)
			require.NotNil(t, inst)
			assert.Equal(t, k, inst.Kind())
			assert.Equal(t, engineKinds[k], inst.Object() != nil)
		})
	}
}

func TestCreateInstanceWithoutEngine(t *testing.T) {
	host := NewHostConfig(quietLogger())
	tests := []struct {
		kind    Kind
		wantNil bool
	}{
		{KindGame, false},
		{KindGraphics, true},
		{KindGroup, true},
		{KindSprite, true},
		{KindLine, false},
		{KindRect, false},
		{KindCircle, false},
		{kindCount, true},
		{Kind(200), true},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			inst := host.CreateInstance(tt.kind, Props{}, nil, HostContext{})
			assert.Equal(t, tt.wantNil, inst == nil)
		})
	}
}

func TestTextCallbacks(t *testing.T) {
	host := NewHostConfig(quietLogger())
	assert.False(t, host.ShouldSetTextContent(KindGroup, Props{}))
	assert.Nil(t, host.CreateTextInstance("hi", nil, HostContext{}))
	assert.NotPanics(t, func() { host.ResetTextContent(nil) })
	assert.PanicsWithError(t, errTextUpdate.Error(), func() {
		host.CommitTextUpdate(nil, "a", "b")
	})
}

func TestSchedulingCallbacksDoNotRun(t *testing.T) {
	host := NewHostConfig(quietLogger())
	ran := false
	host.ScheduleAnimationCallback(func() { ran = true })
	host.ScheduleDeferredCallback(func() { ran = true })
	assert.False(t, ran)
}

func TestPublicInstanceIsIdentity(t *testing.T) {
	g := newTestGame()
	host := NewHostConfig(quietLogger())
	inst := host.CreateInstance(KindGroup, Props{}, nil, HostContext{Engine: g})
	assert.Same(t, inst.(*Group), host.PublicInstance(inst).(*Group))
	assert.Nil(t, host.PublicInstance(nil))
}

func TestFinalizeAppliesInitialProps(t *testing.T) {
	g := newTestGame()
	host := NewHostConfig(quietLogger())
	props := Props{"image": "hero", "x": 3, "scale": 2}
	inst := host.CreateInstance(KindSprite, props, nil, HostContext{Engine: g})

	assert.False(t, host.FinalizeInitialChildren(inst, KindSprite, props, nil))
	assert.Equal(t, 2.0, inst.Object().ScaleX)
	assert.False(t, host.FinalizeInitialChildren(nil, KindSprite, props, nil))
}

func TestCommitUpdateAppliesFullProps(t *testing.T) {
	g := newTestGame()
	host := NewHostConfig(quietLogger())
	old := Props{"image": "hero", "x": 1, "y": 2}
	next := Props{"image": "hero", "x": 9, "y": 2}
	inst := host.CreateInstance(KindSprite, old, nil, HostContext{Engine: g})
	host.FinalizeInitialChildren(inst, KindSprite, old, nil)

	diff := host.PrepareUpdate(inst, KindSprite, old, next, nil, HostContext{})
	require.NotNil(t, diff)
	host.CommitUpdate(inst, diff, KindSprite, old, next)
	assert.Equal(t, 9.0, inst.Object().X)
	assert.Equal(t, 2.0, inst.Object().Y)

	assert.Nil(t, host.PrepareUpdate(nil, KindSprite, old, next, nil, HostContext{}))
	assert.NotPanics(t, func() { host.CommitUpdate(nil, diff, KindSprite, old, next) })
}

func TestStructuralCallbacksTolerateMismatches(t *testing.T) {
	g := newTestGame()
	host := NewHostConfig(quietLogger())
	ctx := HostContext{Engine: g}
	sprite := host.CreateInstance(KindSprite, Props{"image": "hero"}, nil, ctx)
	rect := host.CreateInstance(KindRect, Props{}, nil, ctx)
	c := &Container{ID: "test", Engine: g}

	assert.NotPanics(t, func() {
		// Leaves and the game element hold no children.
		host.AppendChild(sprite, rect)
		host.InsertBefore(rect, sprite, nil)
		host.RemoveChild(gameInstance{}, sprite)
		host.AppendInitialChild(nil, sprite)
		host.AppendChild(nil, nil)

		host.AppendChildToContainer(c, sprite)
		host.InsertInContainerBefore(c, sprite, rect)
		host.RemoveChildFromContainer(c, sprite)
		host.CommitMount(sprite, KindSprite, nil)
		host.DetachDeletedInstance(nil)
		host.DetachDeletedInstance(rect)
	})
	assert.False(t, sprite.Object().IsDestroyed())
}

func TestDetachDeletedInstanceDestroys(t *testing.T) {
	g := newTestGame()
	host := NewHostConfig(quietLogger())
	ctx := HostContext{Engine: g}
	for _, k := range []Kind{KindGraphics, KindGroup, KindSprite} {
		inst := host.CreateInstance(k, Props{"image": "hero"}, nil, ctx)
		n := inst.Object()
		host.DetachDeletedInstance(inst)
		assert.True(t, n.IsDestroyed(), k.String())
		assert.Nil(t, inst.Object(), k.String())
	}
}

func TestHostContext(t *testing.T) {
	g := newTestGame()
	host := NewHostConfig(nil)
	root := host.RootHostContext(&Container{ID: "c", Engine: g})
	assert.Equal(t, g, root.Engine)
	assert.Equal(t, root, host.ChildHostContext(root, KindGroup))
}
