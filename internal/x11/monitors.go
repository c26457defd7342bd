package x11

import (
	"fmt"

	"github.com/1broseidon/keyviz/internal/grid"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
)

// Monitor represents a physical display
type Monitor struct {
	Name string
	Rect grid.Rect
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			name = string(outputInfo.Name)
		}

		monitors = append(monitors, Monitor{
			Name: name,
			Rect: grid.Rect{
				X:      int(crtcInfo.X),
				Y:      int(crtcInfo.Y),
				Width:  int(crtcInfo.Width),
				Height: int(crtcInfo.Height),
			},
		})
	}

	return monitors, nil
}

// pointer returns the pointer position on the root window.
func (c *Connection) pointer() (grid.Point, error) {
	reply, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return grid.Point{}, err
	}
	return grid.Point{X: int(reply.RootX), Y: int(reply.RootY)}, nil
}

// VisibleOrigin returns origin if a window of the given size placed there
// overlaps a monitor. Otherwise the window is moved to the same offset on
// the monitor under the pointer.
func (c *Connection) VisibleOrigin(origin grid.Point, width, height int) (grid.Point, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return origin, err
	}
	p, err := c.pointer()
	if err != nil {
		p = grid.Point{}
	}
	return visibleOrigin(origin, width, height, monitors, p), nil
}

func visibleOrigin(origin grid.Point, width, height int, monitors []Monitor, pointer grid.Point) grid.Point {
	if len(monitors) == 0 {
		return origin
	}
	win := grid.Rect{X: origin.X, Y: origin.Y, Width: width, Height: height}
	for _, mon := range monitors {
		if grid.Intersects(win, mon.Rect) {
			return origin
		}
	}

	target := monitors[0]
	for _, mon := range monitors {
		if mon.Rect.Contains(pointer) {
			target = mon
			break
		}
	}

	// Keep the configured offset when it fits, otherwise use the corner.
	offset := grid.Point{X: origin.X, Y: origin.Y}
	if offset.X < 0 || offset.X+width > target.Rect.Width {
		offset.X = 0
	}
	if offset.Y < 0 || offset.Y+height > target.Rect.Height {
		offset.Y = 0
	}
	return target.Rect.Origin().Add(offset)
}
