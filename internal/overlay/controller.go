package overlay

import (
	"io"
	"log/slog"

	"github.com/1broseidon/keyviz/internal/drag"
	"github.com/1broseidon/keyviz/internal/grid"
	"github.com/1broseidon/keyviz/internal/keyboard"
)

// Surface receives every visual change the controller makes. The X11
// implementation lives in internal/x11.
type Surface interface {
	MoveWindow(origin grid.Point) error
	PaintKey(id rune, color uint32) error
	PlaceKey(id rune, pos grid.Point) error
	ShowLock(state LockState) error
	// Reshape limits the visible and clickable area of the window to rects.
	Reshape(rects []grid.Rect) error
	ShowMenu(at grid.Point, labels []string) error
	HideMenu() error
	// Quit ends the event loop.
	Quit()
}

// Colors are the pixel values for the two key states.
type Colors struct {
	Idle   uint32
	Active uint32
}

// Options configures a Controller.
type Options struct {
	Metrics    grid.Metrics
	Origin     grid.Point // initial window position on screen
	Colors     Colors
	CloseLabel string
	Logger     *slog.Logger
}

// Controller owns all overlay state. Every method must be called from the
// event loop goroutine.
type Controller struct {
	board   *keyboard.Board
	surface Surface
	logger  *slog.Logger

	metrics grid.Metrics
	frame   grid.Frame
	colors  Colors

	origin grid.Point
	lock   LockState
	slots  map[rune]*keySlot
	drags  *drag.Tracker[Target]
	menu   *Menu
	closed bool
}

// NewController creates a controller for board drawing onto surface.
func NewController(board *keyboard.Board, surface Surface, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	closeLabel := opts.CloseLabel
	if closeLabel == "" {
		closeLabel = "Close"
	}

	layout := board.Layout()
	c := &Controller{
		board:   board,
		surface: surface,
		logger:  logger,
		metrics: opts.Metrics,
		frame:   opts.Metrics.Compute(layout.NumRows(), layout.NumCols()),
		colors:  opts.Colors,
		origin:  opts.Origin,
		lock:    Locked,
		slots:   make(map[rune]*keySlot, layout.Len()),
		drags:   drag.NewTracker[Target](),
		menu:    NewMenu([]MenuItem{{Label: closeLabel, Action: ActionClose}}),
	}
	for _, k := range board.Keys() {
		c.slots[k.ID] = &keySlot{row: k.Row, col: k.Col, placement: PlacementGrid}
	}
	return c
}

// Frame returns the overlay geometry in window coordinates.
func (c *Controller) Frame() grid.Frame {
	return c.frame
}

// Origin returns the window's top-left corner on screen.
func (c *Controller) Origin() grid.Point {
	return c.origin
}

// Lock returns the current lock state.
func (c *Controller) Lock() LockState {
	return c.lock
}

// Menu returns the context menu.
func (c *Controller) Menu() *Menu {
	return c.menu
}

// Closed reports whether Close has run.
func (c *Controller) Closed() bool {
	return c.closed
}

// KeyRect returns the current rectangle of the key widget for r in window
// coordinates.
func (c *Controller) KeyRect(r rune) (grid.Rect, bool) {
	k, ok := c.board.Lookup(r)
	if !ok {
		return grid.Rect{}, false
	}
	return c.keyRect(k.ID), true
}

// KeyPlacement returns how the key for r is positioned.
func (c *Controller) KeyPlacement(r rune) (Placement, bool) {
	k, ok := c.board.Lookup(r)
	if !ok {
		return PlacementGrid, false
	}
	return c.slots[k.ID].placement, true
}

func (c *Controller) keyRect(id rune) grid.Rect {
	slot := c.slots[id]
	cell := c.metrics.Cell(slot.row, slot.col)
	if slot.placement == PlacementFree {
		return cell.At(slot.pos)
	}
	return cell
}

// Regions returns the rectangles of every visible widget.
func (c *Controller) Regions() []grid.Rect {
	rects := make([]grid.Rect, 0, len(c.slots)+2)
	for _, k := range c.board.Keys() {
		rects = append(rects, c.keyRect(k.ID))
	}
	return append(rects, c.frame.Lock, c.frame.Handle)
}

// Start pushes the initial state to the surface.
func (c *Controller) Start() error {
	if err := c.surface.MoveWindow(c.origin); err != nil {
		return err
	}
	for _, k := range c.board.Keys() {
		if err := c.surface.PlaceKey(k.ID, c.keyRect(k.ID).Origin()); err != nil {
			return err
		}
		if err := c.surface.PaintKey(k.ID, c.colorFor(k.State)); err != nil {
			return err
		}
	}
	if err := c.surface.ShowLock(c.lock); err != nil {
		return err
	}
	if err := c.surface.Reshape(c.Regions()); err != nil {
		return err
	}
	c.logger.Info("overlay started",
		"keys", len(c.slots),
		"x", c.origin.X, "y", c.origin.Y,
		"width", c.frame.Width, "height", c.frame.Height)
	return nil
}

func (c *Controller) colorFor(state keyboard.KeyState) uint32 {
	if state == keyboard.Active {
		return c.colors.Active
	}
	return c.colors.Idle
}

// KeyPress highlights the key for r. Runes outside the layout are ignored.
func (c *Controller) KeyPress(r rune) bool {
	return c.setKey(r, (*keyboard.Board).Press)
}

// KeyRelease resets the key for r to idle.
func (c *Controller) KeyRelease(r rune) bool {
	return c.setKey(r, (*keyboard.Board).Release)
}

func (c *Controller) setKey(r rune, apply func(*keyboard.Board, rune) (*keyboard.Key, bool)) bool {
	if c.closed {
		return false
	}
	k, changed := apply(c.board, r)
	if k == nil || !changed {
		return false
	}
	c.logger.Debug("key state changed", "key", k.Label, "state", k.State)
	if err := c.surface.PaintKey(k.ID, c.colorFor(k.State)); err != nil {
		c.logger.Warn("failed to paint key", "key", k.Label, "error", err)
	}
	return true
}

// HandlePress starts a window drag at screen point p.
func (c *Controller) HandlePress(p grid.Point) {
	if c.closed {
		return
	}
	c.drags.Begin(handleTarget, p)
}

// HandleMotion moves the window by the pointer delta since the last event.
func (c *Controller) HandleMotion(p grid.Point) {
	if c.closed {
		return
	}
	delta, ok := c.drags.Motion(handleTarget, p)
	if !ok {
		return
	}
	c.origin = c.origin.Add(delta)
	if err := c.surface.MoveWindow(c.origin); err != nil {
		c.logger.Warn("failed to move window", "error", err)
	}
}

// HandleRelease ends a window drag.
func (c *Controller) HandleRelease() {
	if c.drags.Active(handleTarget) {
		c.logger.Debug("window moved", "x", c.origin.X, "y", c.origin.Y)
	}
	c.drags.End(handleTarget)
}

// KeyButtonPress starts dragging the key for r. Ignored while locked.
func (c *Controller) KeyButtonPress(r rune, p grid.Point) bool {
	if c.closed || c.lock == Locked {
		return false
	}
	k, ok := c.board.Lookup(r)
	if !ok {
		return false
	}
	c.drags.Begin(keyTarget(k.ID), p)
	return true
}

// KeyMotion moves the key for r by the pointer delta. Ignored while locked.
func (c *Controller) KeyMotion(r rune, p grid.Point) bool {
	if c.closed || c.lock == Locked {
		return false
	}
	k, ok := c.board.Lookup(r)
	if !ok {
		return false
	}
	delta, ok := c.drags.Motion(keyTarget(k.ID), p)
	if !ok {
		return false
	}

	slot := c.slots[k.ID]
	slot.pos = slot.pos.Add(delta)
	if err := c.surface.PlaceKey(k.ID, slot.pos); err != nil {
		c.logger.Warn("failed to place key", "key", k.Label, "error", err)
	}
	c.reshape()
	return true
}

// KeyButtonRelease ends dragging the key for r.
func (c *Controller) KeyButtonRelease(r rune) {
	k, ok := c.board.Lookup(r)
	if !ok {
		return
	}
	if c.drags.Active(keyTarget(k.ID)) {
		slot := c.slots[k.ID]
		c.logger.Debug("key moved", "key", k.Label, "x", slot.pos.X, "y", slot.pos.Y)
	}
	c.drags.End(keyTarget(k.ID))
}

// ToggleLock switches between Locked and Unlocked.
//
// Unlocking converts every grid-placed key to a free position at the point
// it currently occupies, so nothing moves on screen. Locking stops key
// drags and keeps keys where they are.
func (c *Controller) ToggleLock() LockState {
	if c.closed {
		return c.lock
	}

	if c.lock == Locked {
		for _, k := range c.board.Keys() {
			slot := c.slots[k.ID]
			if slot.placement != PlacementGrid {
				continue
			}
			slot.pos = c.keyRect(k.ID).Origin()
			slot.placement = PlacementFree
			if err := c.surface.PlaceKey(k.ID, slot.pos); err != nil {
				c.logger.Warn("failed to place key", "key", k.Label, "error", err)
			}
		}
		c.lock = Unlocked
	} else {
		for _, k := range c.board.Keys() {
			c.drags.End(keyTarget(k.ID))
		}
		c.lock = Locked
	}

	if err := c.surface.ShowLock(c.lock); err != nil {
		c.logger.Warn("failed to update lock indicator", "error", err)
	}
	c.logger.Info("key lock toggled", "state", c.lock)
	return c.lock
}

// OpenMenu shows the context menu at screen point p.
func (c *Controller) OpenMenu(p grid.Point) {
	if c.closed {
		return
	}
	if err := c.surface.ShowMenu(p, c.menu.Labels()); err != nil {
		c.logger.Warn("failed to show menu", "error", err)
		return
	}
	c.menu.show()
}

// DismissMenu hides the context menu. It reports whether the menu was open,
// so callers can swallow the click or key that dismissed it.
func (c *Controller) DismissMenu() bool {
	if !c.menu.IsOpen() {
		return false
	}
	c.menu.hide()
	if err := c.surface.HideMenu(); err != nil {
		c.logger.Warn("failed to hide menu", "error", err)
	}
	return true
}

// MenuSelect runs the menu row at index. Any index outside the menu just
// dismisses it.
func (c *Controller) MenuSelect(index int) {
	if !c.menu.IsOpen() {
		return
	}
	item, ok := c.menu.item(index)
	c.DismissMenu()
	if !ok {
		return
	}
	switch item.Action {
	case ActionClose:
		c.Close()
	}
}

// Close tears the overlay down and stops the event loop. Safe to call more
// than once.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.DismissMenu()
	c.drags.Reset()
	c.closed = true
	c.logger.Info("overlay closing")
	c.surface.Quit()
}

func (c *Controller) reshape() {
	if err := c.surface.Reshape(c.Regions()); err != nil {
		c.logger.Warn("failed to reshape window", "error", err)
	}
}
