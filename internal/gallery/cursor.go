package gallery

// Cursor is the zero-based current page.
type Cursor struct {
	Page int `json:"page"`
}

// Set moves to page n, clamped to g.
func (c Cursor) Set(g *Gallery, n int) Cursor {
	return Cursor{Page: g.ClampPage(n)}
}

// Next advances one page, stopping at the last.
func (c Cursor) Next(g *Gallery) Cursor {
	return c.Set(g, c.Page+1)
}

// Prev goes back one page, stopping at the first.
func (c Cursor) Prev(g *Gallery) Cursor {
	return c.Set(g, c.Page-1)
}

// HasNext reports whether Next would move.
func (c Cursor) HasNext(g *Gallery) bool {
	return c.Page < g.PageCount()-1
}

// HasPrev reports whether Prev would move.
func (c Cursor) HasPrev(g *Gallery) bool {
	return c.Page > 0 && g.Len() > 0
}
