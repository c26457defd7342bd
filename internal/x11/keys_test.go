package x11

import (
	"testing"
	"time"

	"github.com/BurntSushi/xgb/xproto"
)

func TestKeysymRune(t *testing.T) {
	tests := []struct {
		sym  xproto.Keysym
		want rune
		ok   bool
	}{
		{0x71, 'q', true},
		{0x51, 'Q', true},
		{0x37, '7', true},
		{0x3b, ';', true},
		{0x5b, '[', true},
		{0xe4, 'ä', true},
		{0xdf, 'ß', true},
		{0xfc, 'ü', true},
		{0xb5, 'µ', true},
		{0x10020ac, '€', true},
		{0x20, 0, false},
		{keysymEscape, 0, false},
		{0xffe1, 0, false}, // Shift_L
		{0xff0d, 0, false}, // Return
		{0, 0, false},
	}
	for _, tt := range tests {
		got, ok := keysymRune(tt.sym)
		if ok != tt.ok || got != tt.want {
			t.Errorf("keysymRune(%#x) = %q, %v; want %q, %v", tt.sym, got, ok, tt.want, tt.ok)
		}
	}
}

// Every Latin-1 character a layout may contain must map back from its keysym.
func TestKeysymRuneCoversLayoutCharacters(t *testing.T) {
	for _, row := range []string{"qwertyuiop", "äöüß", ",./;'[]", "ÿµéñ"} {
		for _, r := range row {
			got, ok := keysymRune(xproto.Keysym(r))
			if !ok || got != r {
				t.Errorf("keysymRune(%#x) = %q, %v; want %q", r, got, ok, r)
			}
		}
	}
}

func TestRaiseLimiter(t *testing.T) {
	l := raiseLimiter{interval: time.Second}
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	if !l.allow(start) {
		t.Fatal("expected first raise to be allowed")
	}
	if l.allow(start.Add(200 * time.Millisecond)) {
		t.Fatal("expected raise within the interval to be refused")
	}
	if l.allow(start.Add(999 * time.Millisecond)) {
		t.Fatal("expected raise just before the interval to be refused")
	}
	if !l.allow(start.Add(time.Second)) {
		t.Fatal("expected raise after the interval to be allowed")
	}
	if l.allow(start.Add(1500 * time.Millisecond)) {
		t.Fatal("expected interval to restart from the last allowed raise")
	}
}

func TestLatin1(t *testing.T) {
	if got := latin1("Schließen"); got != "Schlie\xdfen" {
		t.Fatalf("latin1 = %q", got)
	}
	if got := latin1("a☰b"); got != "a?b" {
		t.Fatalf("expected unsupported runes replaced, got %q", got)
	}
}

func TestCenterText(t *testing.T) {
	m := fontMetrics{ascent: 10, descent: 3, charWidth: 6}
	x, y := m.center("AB", 40, 36)
	if x != 14 {
		t.Fatalf("expected x=14, got %d", x)
	}
	if y != 21 {
		t.Fatalf("expected baseline y=21, got %d", y)
	}

	// Text wider than the box starts at the left edge.
	x, _ = m.center("ABCDEFGHIJ", 20, 10)
	if x != 0 {
		t.Fatalf("expected clamped x=0, got %d", x)
	}
}

func TestMenuRowAt(t *testing.T) {
	m := &menuWindow{rowHeight: 20, width: 80, rows: 2}
	tests := []struct {
		x, y int
		want int
	}{
		{5, 5, 0},
		{5, 25, 1},
		{5, 40, -1},
		{-1, 5, -1},
		{80, 5, -1},
		{5, -3, -1},
	}
	for _, tt := range tests {
		if got := m.rowAt(tt.x, tt.y); got != tt.want {
			t.Errorf("rowAt(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}
