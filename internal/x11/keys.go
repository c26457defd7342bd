package x11

import (
	"time"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

const keysymEscape = 0xff1b

// Keysyms 0x20-0x7e and 0xa0-0xff are the Latin-1 code points themselves.
// Other characters use the Unicode range 0x1000000 + code point.
const (
	keysymUnicodeBase = 0x1000000
	keysymUnicodeMax  = 0x110ffff
)

// keysymRune returns the character a keysym types. Space, function keys,
// modifiers and other non-printing keysyms yield false.
func keysymRune(sym xproto.Keysym) (rune, bool) {
	switch {
	case sym > 0x20 && sym <= 0x7e:
		return rune(sym), true
	case sym >= 0xa0 && sym <= 0xff:
		return rune(sym), true
	case sym >= keysymUnicodeBase && sym <= keysymUnicodeMax:
		return rune(sym - keysymUnicodeBase), true
	}
	return 0, false
}

// keysymFor returns the keysym for keycode, taking the shifted column when
// Shift is held. Keys without a shifted symbol fall back to the base one.
func keysymFor(xu *xgbutil.XUtil, state uint16, keycode xproto.Keycode) xproto.Keysym {
	if state&xproto.ModMaskShift != 0 {
		if sym := keybind.KeysymGet(xu, keycode, 1); sym != 0 {
			return sym
		}
	}
	return keybind.KeysymGet(xu, keycode, 0)
}

func keyRune(xu *xgbutil.XUtil, state uint16, keycode xproto.Keycode) (rune, bool) {
	return keysymRune(keysymFor(xu, state, keycode))
}

// raiseLimiter bounds how often the overlay restacks itself. Another
// always-on-top client doing the same would otherwise loop forever.
type raiseLimiter struct {
	interval time.Duration
	last     time.Time
}

func (l *raiseLimiter) allow(now time.Time) bool {
	if !l.last.IsZero() && now.Sub(l.last) < l.interval {
		return false
	}
	l.last = now
	return true
}
