package sapling

import (
	"reflect"
	"sort"
)

// Diff describes how a node's props changed between two renders.
type Diff struct {
	Removed  []string
	Added    Props
	Modified Props
}

// Empty reports whether d carries no change. A nil Diff is empty.
func (d *Diff) Empty() bool {
	return d == nil || (len(d.Removed) == 0 && len(d.Added) == 0 && len(d.Modified) == 0)
}

// PrepareDiff computes the shallow difference between oldProps and newProps.
// It returns nil when nothing changed. ChildrenKey is never reported as
// modified, since children are reconciled separately. Removed is sorted.
func PrepareDiff(oldProps, newProps Props) *Diff {
	if sameMap(oldProps, newProps) {
		return nil
	}
	d := &Diff{Added: Props{}, Modified: Props{}}
	for k := range oldProps {
		if _, ok := newProps[k]; !ok {
			d.Removed = append(d.Removed, k)
		}
	}
	for k, nv := range newProps {
		ov, ok := oldProps[k]
		if !ok {
			d.Added[k] = nv
			continue
		}
		if !shallowEqual(ov, nv) {
			d.Modified[k] = nv
		}
	}
	delete(d.Modified, ChildrenKey)
	if d.Empty() {
		return nil
	}
	sort.Strings(d.Removed)
	return d
}

func sameMap(a, b Props) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).UnsafePointer() == reflect.ValueOf(b).UnsafePointer()
}

// shallowEqual mirrors identity comparison: comparable values compare with
// ==, reference types compare by identity, funcs never compare equal.
func shallowEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Func:
		return false
	case reflect.Map, reflect.Pointer, reflect.UnsafePointer, reflect.Chan:
		return va.UnsafePointer() == vb.UnsafePointer()
	case reflect.Slice:
		return va.Len() == vb.Len() && va.UnsafePointer() == vb.UnsafePointer()
	}
	if va.Comparable() {
		return va.Equal(vb)
	}
	return false
}
