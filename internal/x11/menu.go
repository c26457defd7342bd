package x11

import (
	"fmt"

	"github.com/1broseidon/keyviz/internal/grid"
	"github.com/BurntSushi/xgb/xproto"
)

const (
	menuPaddingX = 12
	menuMinWidth = 80
)

// menuWindow is the popup that lists context menu rows.
type menuWindow struct {
	win       xproto.Window
	labels    []string
	rowHeight int
	width     int
	rows      int
	mapped    bool
	grabbed   bool
}

// rowAt returns the row under window point x, y, or -1 outside the menu.
func (m *menuWindow) rowAt(x, y int) int {
	if x < 0 || x >= m.width || y < 0 || m.rowHeight <= 0 {
		return -1
	}
	row := y / m.rowHeight
	if row >= m.rows {
		return -1
	}
	return row
}

// ShowMenu pops the menu up at screen point at and grabs the pointer so a
// click anywhere else reaches the menu and dismisses it.
func (o *Overlay) ShowMenu(at grid.Point, labels []string) error {
	conn := o.xu.Conn()
	m := o.menu

	m.labels = append(m.labels[:0], labels...)
	m.rows = len(labels)
	m.rowHeight = o.text.lineHeight()
	m.width = menuMinWidth
	for _, label := range labels {
		if w := o.text.textWidth(label) + 2*menuPaddingX; w > m.width {
			m.width = w
		}
	}
	height := m.rows * m.rowHeight
	if height < 1 {
		height = 1
	}

	xproto.ConfigureWindow(
		conn,
		m.win,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode,
		[]uint32{
			uint32(int32(at.X)),
			uint32(int32(at.Y)),
			uint32(m.width),
			uint32(height),
			xproto.StackModeAbove,
		},
	)
	xproto.MapWindow(conn, m.win)
	m.mapped = true
	o.drawMenu()

	reply, err := xproto.GrabPointer(
		conn,
		true, // owner_events: our own windows still get their clicks
		m.win,
		uint16(xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease),
		xproto.GrabModeAsync,
		xproto.GrabModeAsync,
		xproto.WindowNone,
		xproto.CursorNone,
		xproto.TimeCurrentTime,
	).Reply()
	if err != nil {
		return fmt.Errorf("grab pointer for menu: %w", err)
	}
	if reply.Status != xproto.GrabStatusSuccess {
		// The menu still works, it just won't close on outside clicks.
		o.logger.Warn("pointer grab for menu refused", "status", reply.Status)
		return nil
	}
	m.grabbed = true
	return nil
}

// HideMenu unmaps the menu and releases the pointer.
func (o *Overlay) HideMenu() error {
	conn := o.xu.Conn()
	m := o.menu
	if m.grabbed {
		xproto.UngrabPointer(conn, xproto.TimeCurrentTime)
		m.grabbed = false
	}
	if m.mapped {
		xproto.UnmapWindow(conn, m.win)
		m.mapped = false
	}
	return nil
}

func (o *Overlay) drawMenu() {
	m := o.menu
	if !m.mapped {
		return
	}
	for i, label := range m.labels {
		y := i * m.rowHeight
		s := latin1(label)
		if len(s) > 255 {
			s = s[:255]
		}
		_, baseline := o.text.metrics.center(s, m.width, m.rowHeight)
		xproto.ChangeGC(o.xu.Conn(), o.text.gc, xproto.GcForeground|xproto.GcBackground,
			[]uint32{o.palette.MenuText, o.palette.Menu})
		xproto.ImageText8(o.xu.Conn(), byte(len(s)), xproto.Drawable(m.win), o.text.gc,
			int16(menuPaddingX), int16(y+baseline), s)
	}
}
