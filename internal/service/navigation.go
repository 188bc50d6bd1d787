package service

import (
	"folio/internal/domain/services"
)

// Navigation is the history-panel cursor over an ordered version list.
// It is a value type: Apply returns the successor state and never mutates.
//
// The cursor opens at the latest version. next/prev clamp at the ends,
// toggle flips between the remembered historical position and latest, and
// latest jumps to the end (also the state entered after a successful
// restore).
type Navigation struct {
	length     int
	index      int
	historical int // Position toggle returns to from latest
}

// NewNavigation creates a cursor over a list of the given length,
// positioned at the latest entry
func NewNavigation(length int) Navigation {
	return Navigation{
		length:     length,
		index:      length - 1,
		historical: length - 1,
	}
}

// Apply transitions the cursor by one navigation intent
func (n Navigation) Apply(intent services.NavigationIntent) Navigation {
	if n.length == 0 {
		return n
	}

	switch intent {
	case services.NavNext:
		if n.index < n.length-1 {
			n.index++
		}
	case services.NavPrev:
		if n.index > 0 {
			n.index--
		}
	case services.NavToggle:
		if n.IsAtLatest() {
			n.index = n.historical
		} else {
			n.historical = n.index
			n.index = n.length - 1
		}
	case services.NavLatest:
		n.index = n.length - 1
	}
	return n
}

// Index returns the currently viewed position
func (n Navigation) Index() int {
	return n.index
}

// IsAtLatest reports whether the cursor is on the newest version
func (n Navigation) IsAtLatest() bool {
	return n.index == n.length-1
}
