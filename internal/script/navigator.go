package script

// Navigator tracks the 0-based position within a script's blocks.
// Next stops at Segments-2, which is the last block since the text before
// the first header is not a block.
type Navigator struct {
	index    int
	segments int
}

// NewNavigator returns a navigator at index 0 over s. A nil script yields a
// navigator that never moves.
func NewNavigator(s *Script) *Navigator {
	n := &Navigator{}
	if s != nil {
		n.segments = s.Segments
	}
	return n
}

// Index returns the current position.
func (n *Navigator) Index() int { return n.index }

// Last returns the highest reachable index.
func (n *Navigator) Last() int {
	return max(0, n.segments-2)
}

// Next advances by one unless already at Last.
func (n *Navigator) Next() int {
	if n.index < n.Last() {
		n.index++
	}
	return n.index
}

// Prev moves back by one unless already at 0.
func (n *Navigator) Prev() int {
	if n.index > 0 {
		n.index--
	}
	return n.index
}

// HasNext reports whether Next would move.
func (n *Navigator) HasNext() bool { return n.index < n.Last() }

// HasPrev reports whether Prev would move.
func (n *Navigator) HasPrev() bool { return n.index > 0 }
