package sapling

// Props is the attribute map of an element. Values are treated as
// immutable once an element has been rendered: the diff compares maps,
// slices and pointers by identity, so mutating one in place goes unnoticed.
type Props map[string]any

// ChildrenKey is the reserved prop holding an element's children. It never
// appears in Diff.Modified.
const ChildrenKey = "children"

// Has reports whether key is present, even with a nil value.
func (p Props) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Float returns the numeric value of key, or def when the key is absent or
// not a number.
func (p Props) Float(key string, def float64) float64 {
	v, ok := p[key]
	if !ok {
		return def
	}
	f, ok := toFloat(v)
	if !ok {
		return def
	}
	return f
}

// Uint32 returns the value of key as a uint32 (colors, entity ids), or def
// when the key is absent or not a non-negative number.
func (p Props) Uint32(key string, def uint32) uint32 {
	v, ok := p[key]
	if !ok {
		return def
	}
	f, ok := toFloat(v)
	if !ok || f < 0 {
		return def
	}
	return uint32(f)
}

// String returns the string value of key, or def.
func (p Props) String(key, def string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return def
}

// Bool reports whether key holds true.
func (p Props) Bool(key string) bool {
	b, _ := p[key].(bool)
	return b
}

// Func returns the func() stored under key, or nil.
func (p Props) Func(key string) func() {
	fn, _ := p[key].(func())
	return fn
}

// PositionFunc returns the func(x, y float64) stored under key, or nil.
func (p Props) PositionFunc(key string) func(x, y float64) {
	fn, _ := p[key].(func(x, y float64))
	return fn
}

// Children returns the elements stored under ChildrenKey.
func (p Props) Children() []*Element {
	c, _ := p[ChildrenKey].([]*Element)
	return c
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
