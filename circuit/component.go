// SPDX-License-Identifier: MIT

package circuit

// Component is a read-only snapshot of one circuit element.
// From and To are the current vertex indices of its terminals.
// Current and Voltage hold the last solved values (zero before a solve).
type Component struct {
	Label   string
	Kind    Kind
	Value   float64
	From    int
	To      int
	Current float64
	Voltage float64
}

// handle addresses an arena slot. A stale handle (gen mismatch) resolves to nothing.
type handle struct {
	idx uint32
	gen uint32
}

// slot is one arena cell. Free slots keep their generation for reuse.
type slot struct {
	gen     uint32
	live    bool
	kind    Kind
	label   string
	value   float64
	current float64
	voltage float64
}

// arena owns every component. order lists live handles in edge-column order.
type arena struct {
	slots   []slot
	free    []uint32
	order   []handle
	byLabel map[string]handle
}

func newArena() arena {
	return arena{byLabel: make(map[string]handle)}
}

// insert stores a new live component at the end of the column order.
func (a *arena) insert(kind Kind, label string, value float64) handle {
	var h handle
	if n := len(a.free); n > 0 {
		h.idx = a.free[n-1]
		a.free = a.free[:n-1]
		h.gen = a.slots[h.idx].gen
	} else {
		h.idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot{})
	}
	a.slots[h.idx] = slot{gen: h.gen, live: true, kind: kind, label: label, value: value}
	a.order = append(a.order, h)
	a.byLabel[label] = h

	return h
}

// get resolves h to its slot, or nil when h is stale.
func (a *arena) get(h handle) *slot {
	if int(h.idx) >= len(a.slots) {
		return nil
	}
	s := &a.slots[h.idx]
	if !s.live || s.gen != h.gen {
		return nil
	}

	return s
}

// lookup resolves a label to its handle, slot and edge column.
func (a *arena) lookup(label string) (handle, *slot, int, bool) {
	h, ok := a.byLabel[label]
	if !ok {
		return handle{}, nil, 0, false
	}
	for col, oh := range a.order {
		if oh == h {
			return h, a.get(h), col, true
		}
	}

	return handle{}, nil, 0, false
}

// remove frees the slot behind h and drops column col from the order.
func (a *arena) remove(h handle, col int) {
	s := &a.slots[h.idx]
	delete(a.byLabel, s.label)
	*s = slot{gen: s.gen + 1}
	a.free = append(a.free, h.idx)
	a.order = append(a.order[:col], a.order[col+1:]...)
}

// rename moves h from one label key to another.
func (a *arena) rename(h handle, from, to string) {
	delete(a.byLabel, from)
	a.byLabel[to] = h
	a.slots[h.idx].label = to
}

// at returns the slot of the component owning edge column col.
func (a *arena) at(col int) *slot { return a.get(a.order[col]) }

// clone deep-copies the arena.
func (a *arena) clone() arena {
	c := arena{
		slots:   append([]slot(nil), a.slots...),
		free:    append([]uint32(nil), a.free...),
		order:   append([]handle(nil), a.order...),
		byLabel: make(map[string]handle, len(a.byLabel)),
	}
	for k, v := range a.byLabel {
		c.byLabel[k] = v
	}

	return c
}
