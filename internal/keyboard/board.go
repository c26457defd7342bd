package keyboard

import "unicode"

// KeyState is the pressed state shown by a key widget.
type KeyState int

const (
	// Idle means the key is not held.
	Idle KeyState = iota
	// Active means the key is held.
	Active
)

// String returns the string representation of the state
func (s KeyState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// Key is one on-screen key widget.
type Key struct {
	ID    rune // lower-case identifier
	Label string
	Row   int
	Col   int
	State KeyState
}

// Board maps key identifiers to their widgets.
type Board struct {
	layout *Layout
	keys   map[rune]*Key
	order  []*Key
}

// NewBoard creates one Idle key per layout entry.
func NewBoard(layout *Layout) *Board {
	b := &Board{
		layout: layout,
		keys:   make(map[rune]*Key, layout.Len()),
		order:  make([]*Key, 0, layout.Len()),
	}
	for r, row := range layout.rows {
		for c, id := range row {
			k := &Key{
				ID:    id,
				Label: label(id),
				Row:   r,
				Col:   c,
				State: Idle,
			}
			b.keys[id] = k
			b.order = append(b.order, k)
		}
	}
	return b
}

// label is the upper-case form of id, unless that falls outside Latin-1
// (ÿ and µ), since labels are drawn with Latin-1 core fonts.
func label(id rune) string {
	if up := unicode.ToUpper(id); up <= 0xff {
		return string(up)
	}
	return string(id)
}

// Layout returns the layout the board was built from.
func (b *Board) Layout() *Layout {
	return b.layout
}

// Lookup finds the key for r, ignoring case.
func (b *Board) Lookup(r rune) (*Key, bool) {
	k, ok := b.keys[unicode.ToLower(r)]
	return k, ok
}

// Keys returns every key in layout order.
func (b *Board) Keys() []*Key {
	return append([]*Key(nil), b.order...)
}

// Press marks the key for r Active. It reports the key and whether its
// state changed; a miss returns (nil, false).
func (b *Board) Press(r rune) (*Key, bool) {
	return b.set(r, Active)
}

// Release marks the key for r Idle.
func (b *Board) Release(r rune) (*Key, bool) {
	return b.set(r, Idle)
}

func (b *Board) set(r rune, state KeyState) (*Key, bool) {
	k, ok := b.Lookup(r)
	if !ok {
		return nil, false
	}
	changed := k.State != state
	k.State = state
	return k, changed
}
