package overlay

import "github.com/1broseidon/keyviz/internal/grid"

// LockState controls whether individual keys can be dragged.
type LockState int

const (
	// Locked keeps keys in place. This is the initial state.
	Locked LockState = iota
	// Unlocked lets every key be dragged on its own.
	Unlocked
)

// String returns the string representation of the lock state
func (s LockState) String() string {
	switch s {
	case Locked:
		return "locked"
	case Unlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// Placement says how a key's position is resolved.
type Placement int

const (
	// PlacementGrid positions the key by its row and column.
	PlacementGrid Placement = iota
	// PlacementFree positions the key at an explicit point.
	PlacementFree
)

// String returns the string representation of the placement
func (p Placement) String() string {
	switch p {
	case PlacementGrid:
		return "grid"
	case PlacementFree:
		return "free"
	default:
		return "unknown"
	}
}

// TargetKind identifies what kind of widget a drag applies to.
type TargetKind int

const (
	TargetHandle TargetKind = iota
	TargetKey
)

// Target identifies a draggable widget.
type Target struct {
	Kind TargetKind
	Key  rune // set for TargetKey
}

var handleTarget = Target{Kind: TargetHandle}

func keyTarget(r rune) Target {
	return Target{Kind: TargetKey, Key: r}
}

// keySlot is the controller's view of one key widget's position.
type keySlot struct {
	row, col  int
	placement Placement
	pos       grid.Point // valid when placement is PlacementFree
}
