package sapling

// fiber is the reconciler's record of one mounted element.
type fiber struct {
	elem     *Element
	kind     Kind
	key      string
	props    Props
	inst     Instance
	ctx      HostContext // context the instance was created in
	children []*fiber
}

// Container is the root of one rendered tree.
type Container struct {
	ID     string
	Engine Engine

	current []*fiber
}

// Root returns the instance of the top-level element, or nil before the
// first commit.
func (c *Container) Root() Instance {
	if c == nil || len(c.current) == 0 {
		return nil
	}
	return c.current[0].inst
}

// hostParent is where a list of children attaches: an instance, or the
// container itself for the top level.
type hostParent struct {
	inst      Instance
	container *Container
}

// commit is one synchronous pass of the reference driver. It walks the new
// element tree against the mounted fibers and issues host callbacks in the
// order a fiber driver would: deletions, then child work, then the parent's
// own update.
type commit struct {
	host      HostConfig
	container *Container
	mounts    []*fiber
	refs      []func()
}

func newCommit(host HostConfig, c *Container) *commit {
	return &commit{host: host, container: c}
}

// render commits elem as the container's whole tree.
func (cm *commit) render(elem *Element) {
	c := cm.container
	cm.host.PrepareForCommit(c)
	ctx := cm.host.RootHostContext(c)
	var elems []*Element
	if elem != nil {
		elems = []*Element{elem}
	}
	c.current = cm.reconcileChildren(hostParent{container: c}, ctx, c.current, elems)
	cm.host.ResetAfterCommit(c)
	cm.flushEffects()
}

// unmount deletes the container's whole tree.
func (cm *commit) unmount() {
	c := cm.container
	cm.host.PrepareForCommit(c)
	for _, f := range c.current {
		cm.delete(hostParent{container: c}, f)
	}
	c.current = nil
	cm.host.ResetAfterCommit(c)
	cm.flushEffects()
}

func (cm *commit) flushEffects() {
	for _, f := range cm.mounts {
		cm.host.CommitMount(f.inst, f.kind, f.props)
	}
	for _, fn := range cm.refs {
		fn()
	}
	cm.mounts, cm.refs = nil, nil
}

func (cm *commit) reconcileChildren(p hostParent, ctx HostContext, old []*fiber, elems []*Element) []*fiber {
	keyed := make(map[string]*fiber)
	for _, f := range old {
		if f.key != "" {
			keyed[f.key] = f
		}
	}
	oldIndex := make(map[*fiber]int, len(old))
	for i, f := range old {
		oldIndex[f] = i
	}

	next := make([]*fiber, len(elems))
	matched := make([]bool, len(elems))
	used := make(map[*fiber]bool, len(old))
	for i, el := range elems {
		var m *fiber
		if el.Key != "" {
			m = keyed[el.Key]
		} else if i < len(old) && old[i].key == "" {
			m = old[i]
		}
		if m != nil && m.kind == el.Kind && !used[m] {
			used[m] = true
			matched[i] = true
			next[i] = m
		}
	}

	for _, f := range old {
		if !used[f] {
			cm.delete(p, f)
		}
	}

	for i, el := range elems {
		if matched[i] {
			cm.update(next[i], el)
		} else {
			next[i] = cm.mount(el, ctx)
		}
	}

	// A matched child stays put while its old index keeps increasing;
	// anything else is placed.
	place := make([]bool, len(elems))
	last := -1
	for i, f := range next {
		if !matched[i] {
			place[i] = true
			continue
		}
		if oi := oldIndex[f]; oi > last {
			last = oi
		} else {
			place[i] = true
		}
	}
	for i := len(next) - 1; i >= 0; i-- {
		if !place[i] {
			continue
		}
		var before Instance
		for j := i + 1; j < len(next); j++ {
			if next[j].inst != nil {
				before = next[j].inst
				break
			}
		}
		cm.place(p, next[i].inst, before)
	}
	return next
}

func (cm *commit) place(p hostParent, child, before Instance) {
	switch {
	case p.container != nil && before != nil:
		cm.host.InsertInContainerBefore(p.container, child, before)
	case p.container != nil:
		cm.host.AppendChildToContainer(p.container, child)
	case before != nil:
		cm.host.InsertBefore(p.inst, child, before)
	default:
		cm.host.AppendChild(p.inst, child)
	}
}

// mount creates the instance for el and its whole subtree. The subtree is
// assembled with AppendInitialChild; attaching it to p is left to the caller.
func (cm *commit) mount(el *Element, ctx HostContext) *fiber {
	f := &fiber{elem: el, kind: el.Kind, key: el.Key, props: el.Props, ctx: ctx}
	f.inst = cm.host.CreateInstance(el.Kind, el.Props, cm.container, ctx)
	if !cm.host.ShouldSetTextContent(el.Kind, el.Props) {
		childCtx := cm.host.ChildHostContext(ctx, el.Kind)
		for _, ce := range el.Children {
			cf := cm.mount(ce, childCtx)
			f.children = append(f.children, cf)
			if f.inst != nil && cf.inst != nil {
				cm.host.AppendInitialChild(f.inst, cf.inst)
			}
		}
	}
	if cm.host.FinalizeInitialChildren(f.inst, el.Kind, el.Props, cm.container) {
		cm.mounts = append(cm.mounts, f)
	}
	if ref := el.Ref; ref != nil {
		inst := cm.host.PublicInstance(f.inst)
		cm.refs = append(cm.refs, func() { ref(inst) })
	}
	return f
}

// update brings a matched fiber up to date with el. An identical element
// pointer skips the whole subtree.
func (cm *commit) update(f *fiber, el *Element) {
	if f.elem == el {
		return
	}
	diff := cm.host.PrepareUpdate(f.inst, el.Kind, f.props, el.Props, cm.container, f.ctx)
	childCtx := cm.host.ChildHostContext(f.ctx, el.Kind)
	f.children = cm.reconcileChildren(hostParent{inst: f.inst}, childCtx, f.children, el.Children)
	if diff != nil {
		cm.host.CommitUpdate(f.inst, diff, el.Kind, f.props, el.Props)
	}
	f.elem = el
	f.props = el.Props
}

// delete removes f's top node from p, then detaches every instance in the
// subtree, children first.
func (cm *commit) delete(p hostParent, f *fiber) {
	if f.inst != nil {
		if p.container != nil {
			cm.host.RemoveChildFromContainer(p.container, f.inst)
		} else {
			cm.host.RemoveChild(p.inst, f.inst)
		}
	}
	cm.detach(f)
}

func (cm *commit) detach(f *fiber) {
	if f.elem.Ref != nil {
		ref := f.elem.Ref
		cm.refs = append(cm.refs, func() { ref(nil) })
	}
	for _, c := range f.children {
		cm.detach(c)
	}
	if f.inst != nil {
		cm.host.DetachDeletedInstance(f.inst)
	}
}
