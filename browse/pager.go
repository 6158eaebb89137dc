package browse

// Pager tracks the current position in a paginated listing
type Pager struct {
	Page       int
	TotalPages int
}

// NewPager creates a pager positioned at page, clamped to [1, totalPages]
func NewPager(page, totalPages int) Pager {
	p := Pager{Page: page, TotalPages: max(totalPages, 1)}
	p.Page = min(max(p.Page, 1), p.TotalPages)
	return p
}

// HasNext checks if there is a page after the current one
func (p Pager) HasNext() bool {
	return p.Page < p.TotalPages
}

// HasPrev checks if there is a page before the current one
func (p Pager) HasPrev() bool {
	return p.Page > 1
}

// Next returns the pager advanced by one page, or unchanged on the last page
func (p Pager) Next() Pager {
	if p.HasNext() {
		p.Page++
	}
	return p
}

// Prev returns the pager moved back by one page, or unchanged on the first page
func (p Pager) Prev() Pager {
	if p.HasPrev() {
		p.Page--
	}
	return p
}
