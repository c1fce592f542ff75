package slideshow

// Pager mirrors the slideshow page's navigation: a 1-based index with
// exactly one visible slide, clamped to [1, count]. With no slides the
// index is 0 and nothing is visible.
type Pager struct {
	count int
	index int
}

// NewPager returns a pager showing the first of count slides.
func NewPager(count int) *Pager {
	p := &Pager{count: max(0, count)}
	p.Show(1)
	return p
}

// Show moves to slide n, clamped to the valid range.
func (p *Pager) Show(n int) int {
	switch {
	case p.count == 0:
		p.index = 0
	case n > p.count:
		p.index = p.count
	case n < 1:
		p.index = 1
	default:
		p.index = n
	}
	return p.index
}

// Next shows the following slide; a no-op on the last one.
func (p *Pager) Next() int { return p.Show(p.index + 1) }

// Prev shows the preceding slide; a no-op on the first one.
func (p *Pager) Prev() int { return p.Show(p.index - 1) }

// Index returns the visible slide, 1-based.
func (p *Pager) Index() int { return p.index }

// Count returns the number of slides.
func (p *Pager) Count() int { return p.count }

// Visible reports whether slide i (1-based) is the one displayed.
func (p *Pager) Visible(i int) bool {
	return p.count > 0 && i == p.index
}
