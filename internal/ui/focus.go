package ui

import "chartgrid/internal/layout"

// FocusManager tracks the focused window and rotates focus in traversal
// order.
type FocusManager struct {
	Current  layout.NodeID
	Order    []layout.NodeID
	OnChange func(from, to layout.NodeID)
}

// Sync replaces the order with the windows of tree. Focus moves to the first
// window when the current one is gone.
func (f *FocusManager) Sync(tree layout.Node) {
	f.Order = f.Order[:0]
	for _, w := range layout.Windows(tree) {
		f.Order = append(f.Order, w.ID)
	}
	if f.index(f.Current) < 0 && len(f.Order) > 0 {
		f.set(f.Order[0])
	}
}

// Next focuses the next window and returns it.
func (f *FocusManager) Next() layout.NodeID {
	return f.step(1)
}

// Prev focuses the previous window and returns it.
func (f *FocusManager) Prev() layout.NodeID {
	return f.step(-1)
}

// SetFocus focuses id. Returns false when id is not a known window.
func (f *FocusManager) SetFocus(id layout.NodeID) bool {
	if f.index(id) < 0 {
		return false
	}
	f.set(id)
	return true
}

func (f *FocusManager) step(delta int) layout.NodeID {
	n := len(f.Order)
	if n == 0 {
		return ""
	}
	i := f.index(f.Current)
	if i < 0 {
		i = 0
	} else {
		i = ((i+delta)%n + n) % n
	}
	f.set(f.Order[i])
	return f.Current
}

func (f *FocusManager) index(id layout.NodeID) int {
	for i, o := range f.Order {
		if o == id {
			return i
		}
	}
	return -1
}

func (f *FocusManager) set(id layout.NodeID) {
	from := f.Current
	f.Current = id
	if f.OnChange != nil && from != id {
		f.OnChange(from, id)
	}
}
