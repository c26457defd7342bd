package overlay

// MenuAction is what a context menu entry does.
type MenuAction int

const (
	ActionClose MenuAction = iota
)

// MenuItem is one row of the context menu.
type MenuItem struct {
	Label  string
	Action MenuAction
}

// Menu is the right-click context menu.
type Menu struct {
	items []MenuItem
	open  bool
}

// NewMenu creates a hidden menu with the given rows.
func NewMenu(items []MenuItem) *Menu {
	return &Menu{items: append([]MenuItem(nil), items...)}
}

// Labels returns the row labels in order.
func (m *Menu) Labels() []string {
	labels := make([]string, len(m.items))
	for i, item := range m.items {
		labels[i] = item.Label
	}
	return labels
}

// IsOpen reports whether the menu is shown.
func (m *Menu) IsOpen() bool {
	return m.open
}

func (m *Menu) show() {
	m.open = true
}

func (m *Menu) hide() {
	m.open = false
}

// item returns the row at index, if any.
func (m *Menu) item(index int) (MenuItem, bool) {
	if index < 0 || index >= len(m.items) {
		return MenuItem{}, false
	}
	return m.items[index], true
}
