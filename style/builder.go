package style

// Builder deduplicates style definitions into a stable ordered list. One
// builder serves exactly one package build and is not safe for concurrent
// use. Builder indices are zero-based over the unique definitions; the
// styles part prepends the mandatory default entry, so cells reference
// builder index + 1.
type Builder struct {
	defs  []Definition
	index map[Definition]int
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{index: make(map[Definition]int)}
}

// GetOrAdd returns the index for d, appending it when unseen. Equality is
// structural over the full definition tuple.
func (b *Builder) GetOrAdd(d Definition) int {
	if i, ok := b.index[d]; ok {
		return i
	}
	i := len(b.defs)
	b.defs = append(b.defs, d)
	b.index[d] = i
	return i
}

// Definitions returns the unique definitions in assignment order. The slice
// is the builder's backing store; callers must not modify it.
func (b *Builder) Definitions() []Definition {
	return b.defs
}

// Len is the number of unique definitions.
func (b *Builder) Len() int {
	return len(b.defs)
}
