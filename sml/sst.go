package sml

// SharedStrings is the bidirectional string-to-index deduplication table
// used by the writer (assign or reuse an index) and mirrored by the reader
// (resolve index to string). Indices are assigned on first insertion and
// never change; there is no removal. One table serves exactly one package
// build and is not safe for concurrent use.
type SharedStrings struct {
	ordered []string
	index   map[string]int
	count   int // total insertions, including repeats
}

// NewSharedStrings returns an empty table.
func NewSharedStrings() *SharedStrings {
	return &SharedStrings{index: make(map[string]int)}
}

// GetOrAdd returns the index for s, appending it when unseen. Every call
// counts toward Count; UniqueCount grows only on first insertion.
func (t *SharedStrings) GetOrAdd(s string) int {
	t.count++
	if i, ok := t.index[s]; ok {
		return i
	}
	i := len(t.ordered)
	t.ordered = append(t.ordered, s)
	t.index[s] = i
	return i
}

// Lookup returns the index for s without inserting.
func (t *SharedStrings) Lookup(s string) (int, bool) {
	i, ok := t.index[s]
	return i, ok
}

// Ordered returns the strings in insertion order, which is exactly index
// order. The returned slice is the table's backing store; callers must not
// modify it.
func (t *SharedStrings) Ordered() []string {
	return t.ordered
}

// Count is the total number of GetOrAdd calls: the sst count attribute.
func (t *SharedStrings) Count() int {
	return t.count
}

// UniqueCount is the number of distinct strings: the sst uniqueCount
// attribute.
func (t *SharedStrings) UniqueCount() int {
	return len(t.ordered)
}
