package pagination

import "maps"

// Cursor is caller-owned navigation state: the page currently shown and the
// data already loaded per page. It is a value; Commit returns a new cursor
// and never mutates the receiver.
//
// The counter only moves in Commit, which the caller invokes after its fetch
// for that page resolved. A slow, failed or abandoned fetch therefore never
// leaves Page pointing at data that is not in the cache.
type Cursor[T any] struct {
	Page  int
	pages map[int]T
}

// NewCursor returns a cursor positioned on page with an empty cache.
func NewCursor[T any](page int) Cursor[T] {
	return Cursor[T]{Page: page}
}

// Cached returns the data stored for page, if any.
func (c Cursor[T]) Cached(page int) (T, bool) {
	v, ok := c.pages[page]
	return v, ok
}

// Has reports whether page has been committed.
func (c Cursor[T]) Has(page int) bool {
	_, ok := c.pages[page]
	return ok
}

// Commit stores data for page and moves the counter there.
func (c Cursor[T]) Commit(page int, data T) Cursor[T] {
	next := Cursor[T]{Page: page, pages: maps.Clone(c.pages)}
	if next.pages == nil {
		next.pages = make(map[int]T)
	}
	next.pages[page] = data
	return next
}

// Move switches to an already committed page. ok is false, and the cursor
// is returned unchanged, when the page has no data yet.
func (c Cursor[T]) Move(page int) (Cursor[T], bool) {
	if !c.Has(page) {
		return c, false
	}
	return Cursor[T]{Page: page, pages: c.pages}, true
}

// Current returns the data of the page the counter points to.
func (c Cursor[T]) Current() (T, bool) {
	return c.Cached(c.Page)
}

// Len returns the number of committed pages.
func (c Cursor[T]) Len() int {
	return len(c.pages)
}
