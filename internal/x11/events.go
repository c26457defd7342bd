package x11

import (
	"time"

	"github.com/1broseidon/keyviz/internal/grid"
	"github.com/1broseidon/keyviz/internal/overlay"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

const (
	buttonLeft  = 1
	buttonRight = 3
)

func rootPoint(x, y int16) grid.Point {
	return grid.Point{X: int(x), Y: int(y)}
}

// Bind routes X events for every overlay window to ctrl. Call once, before
// the event loop starts.
func (o *Overlay) Bind(ctrl *overlay.Controller) {
	o.ctrl = ctrl
	xu := o.xu

	xevent.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		if keybind.KeysymGet(xu, ev.Detail, 0) == keysymEscape {
			ctrl.DismissMenu()
			return
		}
		if r, ok := keyRune(xu, ev.State, ev.Detail); ok {
			ctrl.KeyPress(r)
		}
	}).Connect(xu, o.top.Id)

	xevent.KeyReleaseFun(func(xu *xgbutil.XUtil, ev xevent.KeyReleaseEvent) {
		if r, ok := keyRune(xu, ev.State, ev.Detail); ok {
			ctrl.KeyRelease(r)
		}
	}).Connect(xu, o.top.Id)

	// Only reachable where the window is not shaped away.
	xevent.ButtonPressFun(func(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		if o.swallowForMenu() {
			return
		}
		o.focus()
		if ev.Detail == buttonRight {
			ctrl.OpenMenu(rootPoint(ev.RootX, ev.RootY))
		}
	}).Connect(xu, o.top.Id)

	xevent.VisibilityNotifyFun(func(xu *xgbutil.XUtil, ev xevent.VisibilityNotifyEvent) {
		if ev.State == xproto.VisibilityUnobscured || ctrl.Menu().IsOpen() {
			return
		}
		if !o.raises.allow(time.Now()) {
			o.logger.Debug("skipping raise, restacked too recently")
			return
		}
		o.raise()
	}).Connect(xu, o.top.Id)

	xevent.ClientMessageFun(func(xu *xgbutil.XUtil, ev xevent.ClientMessageEvent) {
		if ev.Type == o.closeAtom {
			ctrl.Close()
		}
	}).Connect(xu, o.top.Id)

	for id, w := range o.keys {
		o.bindKey(id, w)
	}
	o.bindLock()
	o.bindHandle()
	o.bindMenu()
}

// swallowForMenu dismisses an open menu and reports whether the click that
// triggered it should be ignored.
func (o *Overlay) swallowForMenu() bool {
	return o.ctrl.DismissMenu()
}

func (o *Overlay) bindExpose(w *widget) {
	xevent.ExposeFun(func(xu *xgbutil.XUtil, ev xevent.ExposeEvent) {
		if ev.Count == 0 {
			o.text.draw(w.win.Id, w.text, w.w, w.h, w.fg, w.bg)
		}
	}).Connect(o.xu, w.win.Id)
}

func (o *Overlay) bindKey(id rune, w *widget) {
	ctrl := o.ctrl
	o.bindExpose(w)

	xevent.ButtonPressFun(func(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		if o.swallowForMenu() {
			return
		}
		o.focus()
		switch ev.Detail {
		case buttonLeft:
			ctrl.KeyButtonPress(id, rootPoint(ev.RootX, ev.RootY))
		case buttonRight:
			ctrl.OpenMenu(rootPoint(ev.RootX, ev.RootY))
		}
	}).Connect(o.xu, w.win.Id)

	xevent.MotionNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		ctrl.KeyMotion(id, rootPoint(ev.RootX, ev.RootY))
	}).Connect(o.xu, w.win.Id)

	xevent.ButtonReleaseFun(func(xu *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
		if ev.Detail == buttonLeft {
			ctrl.KeyButtonRelease(id)
		}
	}).Connect(o.xu, w.win.Id)
}

func (o *Overlay) bindLock() {
	ctrl := o.ctrl
	o.bindExpose(o.lock)

	xevent.ButtonPressFun(func(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		if o.swallowForMenu() {
			return
		}
		o.focus()
		switch ev.Detail {
		case buttonLeft:
			ctrl.ToggleLock()
		case buttonRight:
			ctrl.OpenMenu(rootPoint(ev.RootX, ev.RootY))
		}
	}).Connect(o.xu, o.lock.win.Id)
}

func (o *Overlay) bindHandle() {
	ctrl := o.ctrl
	o.bindExpose(o.handle)

	xevent.ButtonPressFun(func(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		if o.swallowForMenu() {
			return
		}
		o.focus()
		switch ev.Detail {
		case buttonLeft:
			ctrl.HandlePress(rootPoint(ev.RootX, ev.RootY))
		case buttonRight:
			ctrl.OpenMenu(rootPoint(ev.RootX, ev.RootY))
		}
	}).Connect(o.xu, o.handle.win.Id)

	xevent.MotionNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		ctrl.HandleMotion(rootPoint(ev.RootX, ev.RootY))
	}).Connect(o.xu, o.handle.win.Id)

	xevent.ButtonReleaseFun(func(xu *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
		if ev.Detail == buttonLeft {
			ctrl.HandleRelease()
		}
	}).Connect(o.xu, o.handle.win.Id)
}

// bindMenu handles clicks delivered to the menu popup. While the pointer is
// grabbed this includes clicks on other clients, which arrive with
// coordinates outside the menu.
func (o *Overlay) bindMenu() {
	ctrl := o.ctrl

	xevent.ButtonPressFun(func(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		row := o.menu.rowAt(int(ev.EventX), int(ev.EventY))
		if ev.Detail == buttonLeft && row >= 0 {
			ctrl.MenuSelect(row)
			return
		}
		if row < 0 {
			ctrl.DismissMenu()
		}
	}).Connect(o.xu, o.menu.win)

	xevent.ExposeFun(func(xu *xgbutil.XUtil, ev xevent.ExposeEvent) {
		if ev.Count == 0 {
			o.drawMenu()
		}
	}).Connect(o.xu, o.menu.win)
}
