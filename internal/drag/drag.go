// Package drag tracks press-then-motion pointer gestures.
//
// Deltas are incremental: every motion reports the displacement since the
// previous recorded point and then records the current one, so a sequence
// of motions sums to the total displacement since the press.
package drag

import "github.com/1broseidon/keyviz/internal/grid"

// Tracker holds at most one active gesture per target.
type Tracker[T comparable] struct {
	active map[T]grid.Point
}

// NewTracker creates an empty tracker.
func NewTracker[T comparable]() *Tracker[T] {
	return &Tracker[T]{active: make(map[T]grid.Point)}
}

// Begin starts (or restarts) a gesture for target at p.
func (t *Tracker[T]) Begin(target T, p grid.Point) {
	t.active[target] = p
}

// Motion returns the delta since the last recorded point for target and
// records p. ok is false when no gesture is active for target.
func (t *Tracker[T]) Motion(target T, p grid.Point) (delta grid.Point, ok bool) {
	last, ok := t.active[target]
	if !ok {
		return grid.Point{}, false
	}
	t.active[target] = p
	return p.Sub(last), true
}

// End drops the gesture for target.
func (t *Tracker[T]) End(target T) {
	delete(t.active, target)
}

// Active reports whether target has a gesture in progress.
func (t *Tracker[T]) Active(target T) bool {
	_, ok := t.active[target]
	return ok
}

// Reset drops every gesture.
func (t *Tracker[T]) Reset() {
	clear(t.active)
}
