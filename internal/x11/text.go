package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// fontMetrics holds the cell size of a fixed-width core font.
type fontMetrics struct {
	ascent    int
	descent   int
	charWidth int
}

// center returns the x offset and text baseline that center s in a w by h
// box.
func (m fontMetrics) center(s string, w, h int) (int, int) {
	x := (w - len(s)*m.charWidth) / 2
	if x < 0 {
		x = 0
	}
	y := (h + m.ascent - m.descent) / 2
	return x, y
}

// textPainter draws labels with a single core font and GC.
type textPainter struct {
	conn    *xgb.Conn
	font    xproto.Font
	gc      xproto.Gcontext
	metrics fontMetrics
}

// newTextPainter opens the first font in names that the server knows and
// creates a GC for drawables like drawable.
func newTextPainter(conn *xgb.Conn, drawable xproto.Drawable, names []string) (*textPainter, error) {
	font, err := xproto.NewFontId(conn)
	if err != nil {
		return nil, err
	}

	opened := ""
	for _, name := range names {
		if err := xproto.OpenFontChecked(conn, font, uint16(len(name)), name).Check(); err == nil {
			opened = name
			break
		}
	}
	if opened == "" {
		return nil, fmt.Errorf("none of the fonts %s could be opened", strings.Join(names, ", "))
	}

	info, err := xproto.QueryFont(conn, xproto.Fontable(font)).Reply()
	if err != nil {
		xproto.CloseFont(conn, font)
		return nil, fmt.Errorf("query font %q: %w", opened, err)
	}

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		xproto.CloseFont(conn, font)
		return nil, err
	}
	err = xproto.CreateGCChecked(
		conn,
		gc,
		drawable,
		xproto.GcForeground|xproto.GcBackground|xproto.GcFont|xproto.GcGraphicsExposures,
		[]uint32{
			0,            // foreground
			0xffffff,     // background
			uint32(font), // font
			0,            // graphics_exposures=false
		},
	).Check()
	if err != nil {
		xproto.CloseFont(conn, font)
		return nil, err
	}

	return &textPainter{
		conn: conn,
		font: font,
		gc:   gc,
		metrics: fontMetrics{
			ascent:    int(info.FontAscent),
			descent:   int(info.FontDescent),
			charWidth: int(info.MaxBounds.CharacterWidth),
		},
	}, nil
}

// draw centers text in a w by h window using fg on bg.
func (p *textPainter) draw(win xproto.Window, text string, w, h int, fg, bg uint32) {
	s := latin1(text)
	if s == "" {
		return
	}
	if len(s) > 255 {
		s = s[:255]
	}
	xproto.ChangeGC(p.conn, p.gc, xproto.GcForeground|xproto.GcBackground, []uint32{fg, bg})
	x, y := p.metrics.center(s, w, h)
	xproto.ImageText8(p.conn, byte(len(s)), xproto.Drawable(win), p.gc, int16(x), int16(y), s)
}

// lineHeight is the height of one text row including a small margin.
func (p *textPainter) lineHeight() int {
	return p.metrics.ascent + p.metrics.descent + 6
}

// textWidth is the rendered width of text in pixels.
func (p *textPainter) textWidth(text string) int {
	return len(latin1(text)) * p.metrics.charWidth
}

func (p *textPainter) free() {
	xproto.FreeGC(p.conn, p.gc)
	xproto.CloseFont(p.conn, p.font)
}

// latin1 encodes s for the 8-bit core font protocol. Runes above U+00FF
// become '?'.
func latin1(s string) string {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		if r > 0xff {
			r = '?'
		}
		b = append(b, byte(r))
	}
	return string(b)
}
