package x11

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/1broseidon/keyviz/internal/config"
	"github.com/1broseidon/keyviz/internal/grid"
	"github.com/1broseidon/keyviz/internal/overlay"
	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const (
	closeAtomName = "KEYVIZ_CLOSE"

	// raiseInterval is the minimum time between restacks triggered by
	// visibility changes.
	raiseInterval = time.Second
)

// KeySpec describes one key widget to create.
type KeySpec struct {
	ID    rune
	Label string
	Rect  grid.Rect // initial position in window coordinates
}

// Options configures an Overlay.
type Options struct {
	Title   string
	Class   string
	Frame   grid.Frame
	Keys    []KeySpec
	Palette config.Palette
	Glyphs  config.Glyphs
	Fonts   []string
	Logger  *slog.Logger
}

// widget is a child window showing a short centered label.
type widget struct {
	win  *xwindow.Window
	text string
	w, h int
	bg   uint32
	fg   uint32
}

// Overlay is the X11 implementation of overlay.Surface: an undecorated,
// always-on-top window whose visible area is limited to its widgets.
type Overlay struct {
	conn   *Connection
	xu     *xgbutil.XUtil
	root   xproto.Window
	logger *slog.Logger

	frame   grid.Frame
	palette config.Palette
	glyphs  config.Glyphs

	top    *xwindow.Window
	keys   map[rune]*widget
	lock   *widget
	handle *widget
	menu   *menuWindow
	text   *textPainter

	shaped     bool
	inputShape bool
	closeAtom  xproto.Atom
	raises     raiseLimiter
	ctrl       *overlay.Controller
}

// NewOverlay creates the overlay windows on conn. Nothing is mapped until
// Show.
func NewOverlay(conn *Connection, opts Options) (*Overlay, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	o := &Overlay{
		conn:       conn,
		xu:         conn.XUtil,
		root:       conn.Root,
		logger:     logger,
		frame:      opts.Frame,
		palette:    opts.Palette,
		glyphs:     opts.Glyphs,
		keys:       make(map[rune]*widget, len(opts.Keys)),
		inputShape: true,
		raises:     raiseLimiter{interval: raiseInterval},
	}

	topID, err := o.createWindow(
		o.root,
		grid.Rect{Width: opts.Frame.Width, Height: opts.Frame.Height},
		true,
		opts.Palette.Transparent,
		xproto.EventMaskKeyPress|xproto.EventMaskKeyRelease|
			xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|
			xproto.EventMaskVisibilityChange,
	)
	if err != nil {
		return nil, fmt.Errorf("create overlay window: %w", err)
	}
	o.top = xwindow.New(o.xu, topID)

	o.text, err = newTextPainter(o.xu.Conn(), xproto.Drawable(topID), opts.Fonts)
	if err != nil {
		o.top.Destroy()
		return nil, err
	}

	childMask := xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease |
		xproto.EventMaskButton1Motion | xproto.EventMaskExposure
	for _, spec := range opts.Keys {
		w, err := o.createWidget(spec.Rect, spec.Label, opts.Palette.Idle, opts.Palette.Text, childMask)
		if err != nil {
			o.Destroy()
			return nil, fmt.Errorf("create key %q: %w", spec.Label, err)
		}
		o.keys[spec.ID] = w
	}
	if o.lock, err = o.createWidget(opts.Frame.Lock, opts.Glyphs.Locked, opts.Palette.Control, opts.Palette.ControlText, childMask); err != nil {
		o.Destroy()
		return nil, fmt.Errorf("create lock indicator: %w", err)
	}
	if o.handle, err = o.createWidget(opts.Frame.Handle, opts.Glyphs.Handle, opts.Palette.Control, opts.Palette.ControlText, childMask); err != nil {
		o.Destroy()
		return nil, fmt.Errorf("create drag handle: %w", err)
	}

	menuID, err := o.createWindow(
		o.root,
		grid.Rect{Width: 1, Height: 1},
		true,
		opts.Palette.Menu,
		xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskExposure,
	)
	if err != nil {
		o.Destroy()
		return nil, fmt.Errorf("create menu window: %w", err)
	}
	o.menu = &menuWindow{win: menuID}

	if err := shape.Init(o.xu.Conn()); err != nil {
		o.logger.Warn("SHAPE extension unavailable, overlay background will be visible", "error", err)
	} else {
		o.shaped = true
	}

	o.setProperties(opts.Title, opts.Class)

	if o.closeAtom, err = xprop.Atm(o.xu, closeAtomName); err != nil {
		o.Destroy()
		return nil, fmt.Errorf("intern %s: %w", closeAtomName, err)
	}

	return o, nil
}

// createWindow creates an InputOutput window. Top-level overlay windows use
// override_redirect so they bypass the window manager.
func (o *Overlay) createWindow(parent xproto.Window, r grid.Rect, override bool, bg uint32, events int) (xproto.Window, error) {
	conn := o.xu.Conn()
	screen := o.xu.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}

	width, height := r.Width, r.Height
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	// Value list order follows the bit positions of the mask (low to high).
	mask := uint32(xproto.CwBackPixel | xproto.CwEventMask)
	values := []uint32{bg, uint32(events)}
	if override {
		mask |= xproto.CwOverrideRedirect
		values = []uint32{bg, 1, uint32(events)}
	}

	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		parent,
		int16(r.X), int16(r.Y),
		uint16(width), uint16(height),
		0, // border_width
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		mask,
		values,
	).Check()
	if err != nil {
		return 0, err
	}
	return wid, nil
}

func (o *Overlay) createWidget(r grid.Rect, text string, bg, fg uint32, events int) (*widget, error) {
	wid, err := o.createWindow(o.top.Id, r, false, bg, events)
	if err != nil {
		return nil, err
	}
	return &widget{
		win:  xwindow.New(o.xu, wid),
		text: text,
		w:    r.Width,
		h:    r.Height,
		bg:   bg,
		fg:   fg,
	}, nil
}

// setProperties names the window and asks EWMH window managers to keep it
// above others. Failures only cost cosmetics.
func (o *Overlay) setProperties(title, class string) {
	if title != "" {
		if err := ewmh.WmNameSet(o.xu, o.top.Id, title); err != nil {
			o.logger.Warn("failed to set window name", "error", err)
		}
	}
	if class != "" {
		wmClass := &icccm.WmClass{Instance: class, Class: class}
		if err := icccm.WmClassSet(o.xu, o.top.Id, wmClass); err != nil {
			o.logger.Warn("failed to set window class", "error", err)
		}
	}
	if err := ewmh.WmStateSet(o.xu, o.top.Id, []string{"_NET_WM_STATE_ABOVE"}); err != nil {
		o.logger.Warn("failed to set window state", "error", err)
	}
}

// Show maps the overlay, raises it and takes keyboard focus.
func (o *Overlay) Show() {
	conn := o.xu.Conn()
	xproto.MapSubwindows(conn, o.top.Id)
	o.top.Map()
	o.raise()
	o.focus()
}

func (o *Overlay) raise() {
	xproto.ConfigureWindow(o.xu.Conn(), o.top.Id, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
}

func (o *Overlay) focus() {
	err := xproto.SetInputFocusChecked(o.xu.Conn(), xproto.InputFocusParent, o.top.Id, xproto.TimeCurrentTime).Check()
	if err != nil {
		o.logger.Debug("failed to take input focus", "error", err)
	}
}

// MoveWindow places the overlay's top-left corner at origin on screen.
func (o *Overlay) MoveWindow(origin grid.Point) error {
	o.top.Move(origin.X, origin.Y)
	return nil
}

// PaintKey sets the background of the key for id and redraws its label.
func (o *Overlay) PaintKey(id rune, color uint32) error {
	w, ok := o.keys[id]
	if !ok {
		return fmt.Errorf("no widget for key %q", id)
	}
	w.bg = color
	o.paint(w)
	return nil
}

// PlaceKey moves the key for id to pos in window coordinates.
func (o *Overlay) PlaceKey(id rune, pos grid.Point) error {
	w, ok := o.keys[id]
	if !ok {
		return fmt.Errorf("no widget for key %q", id)
	}
	w.win.Move(pos.X, pos.Y)
	return nil
}

// ShowLock switches the lock indicator glyph.
func (o *Overlay) ShowLock(state overlay.LockState) error {
	if state == overlay.Unlocked {
		o.lock.text = o.glyphs.Unlocked
	} else {
		o.lock.text = o.glyphs.Locked
	}
	o.paint(o.lock)
	return nil
}

// Reshape limits the window's visible and clickable area to rects.
func (o *Overlay) Reshape(rects []grid.Rect) error {
	if !o.shaped {
		return nil
	}

	bounds := grid.Rect{Width: o.frame.Width, Height: o.frame.Height}
	xrects := make([]xproto.Rectangle, 0, len(rects))
	for _, r := range rects {
		c, ok := grid.Clip(r, bounds)
		if !ok {
			continue
		}
		xrects = append(xrects, xproto.Rectangle{
			X:      int16(c.X),
			Y:      int16(c.Y),
			Width:  uint16(c.Width),
			Height: uint16(c.Height),
		})
	}

	conn := o.xu.Conn()
	err := shape.RectanglesChecked(conn, shape.SoSet, shape.SkBounding, xproto.ClipOrderingUnsorted,
		o.top.Id, 0, 0, xrects).Check()
	if err != nil {
		return fmt.Errorf("set bounding shape: %w", err)
	}

	// Input shapes need SHAPE 1.1; without them clicks in the see-through
	// area still reach the overlay.
	if o.inputShape {
		err = shape.RectanglesChecked(conn, shape.SoSet, shape.SkInput, xproto.ClipOrderingUnsorted,
			o.top.Id, 0, 0, xrects).Check()
		if err != nil {
			o.inputShape = false
			o.logger.Warn("input shape unsupported, transparent area stays clickable", "error", err)
		}
	}
	return nil
}

// Quit stops the event loop.
func (o *Overlay) Quit() {
	o.conn.Quit()
}

// RequestClose asks the event loop to close the overlay. Unlike the
// Surface methods it may be called from any goroutine.
func (o *Overlay) RequestClose() error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: o.top.Id,
		Type:   o.closeAtom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{0, 0, 0, 0, 0}),
	}
	return xproto.SendEventChecked(o.xu.Conn(), false, o.top.Id, xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}

// Destroy releases every X resource the overlay created.
func (o *Overlay) Destroy() {
	if o.menu != nil {
		_ = o.HideMenu()
		xwindow.New(o.xu, o.menu.win).Destroy()
		o.menu = nil
	}
	for id, w := range o.keys {
		w.win.Destroy()
		delete(o.keys, id)
	}
	for _, w := range []*widget{o.lock, o.handle} {
		if w != nil {
			w.win.Destroy()
		}
	}
	o.lock, o.handle = nil, nil
	if o.text != nil {
		o.text.free()
		o.text = nil
	}
	if o.top != nil {
		o.top.Destroy()
		o.top = nil
	}
}

// paint recolors w and redraws its label.
func (o *Overlay) paint(w *widget) {
	conn := o.xu.Conn()
	xproto.ChangeWindowAttributes(conn, w.win.Id, xproto.CwBackPixel, []uint32{w.bg})
	xproto.ClearArea(conn, false, w.win.Id, 0, 0, 0, 0)
	o.text.draw(w.win.Id, w.text, w.w, w.h, w.fg, w.bg)
}
