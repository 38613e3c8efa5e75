package sapling

import (
	"errors"

	"github.com/charmbracelet/log"
)

// errTextUpdate is the panic value raised by CommitTextUpdate.
var errTextUpdate = errors.New("sapling: text updates are not supported by this adapter")

// HostContext is handed down the tree while instances are created.
type HostContext struct {
	Engine Engine
}

// HostConfig is the callback surface a tree-diffing driver invokes to turn
// its decisions into scene mutations. NewHostConfig returns the adapter's
// implementation; the bundled reconciler is one driver.
type HostConfig interface {
	RootHostContext(c *Container) HostContext
	ChildHostContext(parent HostContext, kind Kind) HostContext

	CreateInstance(kind Kind, props Props, c *Container, ctx HostContext) Instance
	AppendInitialChild(parent, child Instance)
	FinalizeInitialChildren(inst Instance, kind Kind, props Props, c *Container) bool

	PrepareUpdate(inst Instance, kind Kind, oldProps, newProps Props, c *Container, ctx HostContext) *Diff
	CommitUpdate(inst Instance, diff *Diff, kind Kind, oldProps, newProps Props)
	CommitMount(inst Instance, kind Kind, props Props)

	AppendChild(parent, child Instance)
	InsertBefore(parent, child, before Instance)
	RemoveChild(parent, child Instance)
	AppendChildToContainer(c *Container, child Instance)
	InsertInContainerBefore(c *Container, child, before Instance)
	RemoveChildFromContainer(c *Container, child Instance)

	ShouldSetTextContent(kind Kind, props Props) bool
	CreateTextInstance(text string, c *Container, ctx HostContext) Instance
	ResetTextContent(inst Instance)
	CommitTextUpdate(inst Instance, oldText, newText string)

	ScheduleAnimationCallback(fn func())
	ScheduleDeferredCallback(fn func())

	PublicInstance(inst Instance) Instance
	PrepareForCommit(c *Container)
	ResetAfterCommit(c *Container)
	DetachDeletedInstance(inst Instance)
}

type constructor func(e Engine, props Props) Instance

// constructors is indexed by Kind and covers every kind.
var constructors = [kindCount]constructor{
	KindGame:     newGameInstance,
	KindGraphics: newCanvas,
	KindGroup:    newGroup,
	KindSprite:   newSprite,
	KindLine:     newLine,
	KindRect:     newRect,
	KindCircle:   newCircle,
}

// engineKinds own a native node and cannot be built without an engine.
var engineKinds = [kindCount]bool{
	KindGraphics: true,
	KindGroup:    true,
	KindSprite:   true,
}

type loggerSetter interface {
	setLogger(l *log.Logger)
}

type adapter struct {
	logger *log.Logger
}

// NewHostConfig returns the adapter. Every callback is logged at debug level.
func NewHostConfig(logger *log.Logger) HostConfig {
	if logger == nil {
		logger = log.Default()
	}
	return &adapter{logger: logger}
}

func (a *adapter) RootHostContext(c *Container) HostContext {
	a.logger.Debug("getRootHostContext", "container", c.ID)
	return HostContext{Engine: c.Engine}
}

func (a *adapter) ChildHostContext(parent HostContext, _ Kind) HostContext {
	return parent
}

// CreateInstance builds the instance for kind. Unknown kinds, and engine
// kinds without an engine, yield nil.
func (a *adapter) CreateInstance(kind Kind, props Props, _ *Container, ctx HostContext) Instance {
	a.logger.Debug("createInstance", "kind", kind)
	if kind >= kindCount {
		return nil
	}
	if engineKinds[kind] && ctx.Engine == nil {
		return nil
	}
	inst := constructors[kind](ctx.Engine, props)
	if ls, ok := inst.(loggerSetter); ok {
		ls.setLogger(a.logger)
	}
	return inst
}

func (a *adapter) AppendInitialChild(parent, child Instance) {
	a.logger.Debug("appendInitialChild", "parent", kindOf(parent), "child", kindOf(child))
	if cc, ok := parent.(ChildContainer); ok && child != nil {
		cc.AppendInitialChild(child)
	}
}

// FinalizeInitialChildren applies the initial props. It never requests a
// CommitMount.
func (a *adapter) FinalizeInitialChildren(inst Instance, kind Kind, props Props, _ *Container) bool {
	a.logger.Debug("finalizeInitialChildren", "kind", kind)
	switch v := inst.(type) {
	case nil:
	case InitialFinalizer:
		v.FinalizeInitialChildren(props)
	default:
		v.Update(props)
	}
	return false
}

func (a *adapter) PrepareUpdate(inst Instance, kind Kind, oldProps, newProps Props, _ *Container, _ HostContext) *Diff {
	a.logger.Debug("prepareUpdate", "kind", kind)
	switch v := inst.(type) {
	case nil:
		return nil
	case UpdatePreparer:
		return v.PrepareUpdate(oldProps, newProps)
	default:
		return PrepareDiff(oldProps, newProps)
	}
}

// CommitUpdate applies the full new props; the diff only gates whether the
// driver calls this at all.
func (a *adapter) CommitUpdate(inst Instance, _ *Diff, kind Kind, _, newProps Props) {
	a.logger.Debug("commitUpdate", "kind", kind)
	if inst != nil {
		inst.Update(newProps)
	}
}

func (a *adapter) CommitMount(_ Instance, kind Kind, _ Props) {
	a.logger.Debug("commitMount", "kind", kind)
}

func (a *adapter) AppendChild(parent, child Instance) {
	a.logger.Debug("appendChild", "parent", kindOf(parent), "child", kindOf(child))
	if cc, ok := parent.(ChildContainer); ok && child != nil {
		cc.AppendChild(child)
	}
}

func (a *adapter) InsertBefore(parent, child, before Instance) {
	a.logger.Debug("insertBefore", "parent", kindOf(parent), "child", kindOf(child))
	if cc, ok := parent.(ChildContainer); ok && child != nil {
		cc.InsertBefore(child, before)
	}
}

func (a *adapter) RemoveChild(parent, child Instance) {
	a.logger.Debug("removeChild", "parent", kindOf(parent), "child", kindOf(child))
	if cc, ok := parent.(ChildContainer); ok && child != nil {
		cc.RemoveChild(child)
	}
}

// The engine's scene root is the container; instances attach themselves to
// it on creation, so the container-level operations only log.

func (a *adapter) AppendChildToContainer(c *Container, child Instance) {
	a.logger.Debug("appendChildToContainer", "container", c.ID, "child", kindOf(child))
}

func (a *adapter) InsertInContainerBefore(c *Container, child, _ Instance) {
	a.logger.Debug("insertInContainerBefore", "container", c.ID, "child", kindOf(child))
}

func (a *adapter) RemoveChildFromContainer(c *Container, child Instance) {
	a.logger.Debug("removeChildFromContainer", "container", c.ID, "child", kindOf(child))
}

func (a *adapter) ShouldSetTextContent(Kind, Props) bool { return false }

func (a *adapter) CreateTextInstance(string, *Container, HostContext) Instance { return nil }

func (a *adapter) ResetTextContent(Instance) {}

func (a *adapter) CommitTextUpdate(Instance, string, string) {
	panic(errTextUpdate)
}

func (a *adapter) ScheduleAnimationCallback(func()) {
	a.logger.Debug("scheduleAnimationCallback")
}

func (a *adapter) ScheduleDeferredCallback(func()) {
	a.logger.Debug("scheduleDeferredCallback")
}

func (a *adapter) PublicInstance(inst Instance) Instance { return inst }

func (a *adapter) PrepareForCommit(c *Container) {
	a.logger.Debug("prepareForCommit", "container", c.ID)
}

func (a *adapter) ResetAfterCommit(c *Container) {
	a.logger.Debug("resetAfterCommit", "container", c.ID)
}

// DetachDeletedInstance releases the native resources of a removed instance.
func (a *adapter) DetachDeletedInstance(inst Instance) {
	a.logger.Debug("detachDeletedInstance", "kind", kindOf(inst))
	if d, ok := inst.(Destroyer); ok {
		d.Destroy()
	}
}

func kindOf(inst Instance) string {
	if inst == nil {
		return "none"
	}
	return inst.Kind().String()
}
