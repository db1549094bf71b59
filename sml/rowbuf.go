package sml

import (
	"sync"

	"github.com/hype-lab/sheetpack/model"
)

const initialRowCapacity = 16

var rowBufferPool = sync.Pool{
	New: func() any {
		return &RowBuffer{cells: make([]model.Cell, initialRowCapacity)}
	},
}

// RowBuffer is a reusable buffer holding one decoded row's cells indexed by
// column. The logical length is the high-water mark of indices set since the
// last Reset; physical capacity only grows (by doubling) and survives Reset,
// so decoding many rows of similar width allocates almost nothing.
//
// Buffers are pooled. Acquire one with AcquireRow, Reset it between rows,
// and Release it when the stream ends. A buffer must not be shared between
// goroutines.
type RowBuffer struct {
	cells []model.Cell
	n     int
}

// AcquireRow takes a cleared buffer from the pool.
func AcquireRow() *RowBuffer {
	b := rowBufferPool.Get().(*RowBuffer)
	b.Reset()
	return b
}

// Release returns the buffer to the pool. The caller must not use it again.
func (b *RowBuffer) Release() {
	rowBufferPool.Put(b)
}

// Set stores c at column col, growing capacity as needed. Negative columns
// are ignored (the reader's "no column" sentinel).
func (b *RowBuffer) Set(col int, c model.Cell) {
	if col < 0 {
		return
	}
	if col >= len(b.cells) {
		b.grow(col + 1)
	}
	b.cells[col] = c
	if col+1 > b.n {
		b.n = col + 1
	}
}

func (b *RowBuffer) grow(min int) {
	newCap := len(b.cells) * 2
	if newCap < min {
		newCap = min
	}
	grown := make([]model.Cell, newCap)
	copy(grown, b.cells)
	b.cells = grown
}

// Get returns the cell at col; columns never set are absent.
func (b *RowBuffer) Get(col int) model.Cell {
	if col < 0 || col >= b.n {
		return model.Cell{}
	}
	return b.cells[col]
}

// Len is the logical row width: one past the highest column set.
func (b *RowBuffer) Len() int {
	return b.n
}

// Reset clears the logical contents without shrinking capacity.
func (b *RowBuffer) Reset() {
	for i := 0; i < b.n; i++ {
		b.cells[i] = model.Cell{}
	}
	b.n = 0
}

// Cells copies the logical contents into a fresh slice owned by the caller.
func (b *RowBuffer) Cells() []model.Cell {
	out := make([]model.Cell, b.n)
	copy(out, b.cells[:b.n])
	return out
}
