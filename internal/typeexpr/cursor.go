package typeexpr

import (
	"fmt"

	"fortio.org/safecast"

	"tycho/internal/source"
)

// Cursor is a byte position inside one region of a source file. The region
// bound lets the batch driver scan a type expression embedded in a larger
// query file without copying it out.
type Cursor struct {
	file  *source.File
	off   uint32
	limit uint32 // exclusive upper bound
}

// NewCursor creates a cursor over the whole file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{file: f, off: 0, limit: limit}
}

// NewRegionCursor creates a cursor over [start, end) of the file.
func NewRegionCursor(f *source.File, start, end uint32) Cursor {
	lenContent, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	if end > lenContent {
		end = lenContent
	}
	if start > end {
		start = end
	}
	return Cursor{file: f, off: start, limit: end}
}

// EOF reports whether the region is exhausted.
func (c *Cursor) EOF() bool {
	return c.off >= c.limit
}

// Peek reads the current byte without advancing, 0 at EOF.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.file.Content[c.off]
}

// PeekAt reads the byte n positions ahead, 0 when out of range.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.off+n >= c.limit {
		return 0
	}
	return c.file.Content[c.off+n]
}

// Bump advances one byte and returns it.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.file.Content[c.off]
	c.off++
	return b
}

// Mark remembers the position so a Span can be produced later.
type Mark uint32

// Mark saves the current cursor position.
func (c *Cursor) Mark() Mark {
	return Mark(c.off)
}

// SpanFrom builds the span from a mark to the current position.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file.ID, Start: uint32(m), End: c.off}
}

// SpanHere builds an empty span at the current position, used for EOF
// diagnostics.
func (c *Cursor) SpanHere() source.Span {
	return source.Span{File: c.file.ID, Start: c.off, End: c.off}
}

// Text returns the raw bytes of a span.
func (c *Cursor) Text(sp source.Span) string {
	return string(c.file.Content[sp.Start:sp.End])
}
